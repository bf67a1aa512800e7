package lambert

import (
	"fmt"
	"time"
)

// DegenerateGeometryError is returned when the two position vectors are
// collinear: the transfer plane is undefined and no unique transfer angle
// exists.
type DegenerateGeometryError struct {
	Δν float64 // apparent transfer angle, radian (~0 or ~π)
}

func (e DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry: position vectors are collinear (Δν=%g rad), transfer plane undefined", e.Δν)
}

// BelowMinTOFError is returned when the requested time of flight is below the
// minimum achievable for the geometry and revolution count: no transfer
// exists on the requested arc.
type BelowMinTOFError struct {
	Min       time.Duration
	Requested time.Duration
}

func (e BelowMinTOFError) Error() string {
	return fmt.Sprintf("requested time of flight %s below the minimum achievable %s for this geometry", e.Requested, e.Min)
}

// DomainError reports a trial ψ for which the time of flight equation is not
// defined (negative y, or a vanishing c2 at a bracket endpoint). The iterator
// catches it internally to adjust the trial parameter; it only escapes to the
// caller when the adjustment budget is exhausted.
type DomainError struct {
	Ψ float64
	Y float64 // offending auxiliary value (NaN when c2 vanished)
}

func (e DomainError) Error() string {
	return fmt.Sprintf("ψ=%g outside the admissible domain (y=%g)", e.Ψ, e.Y)
}

// ConvergenceError is returned when the iterator exhausts its iteration
// budget without meeting the time of flight tolerance.
type ConvergenceError struct {
	Iterations uint
	Residual   float64 // last time of flight residual, seconds
}

func (e ConvergenceError) Error() string {
	return fmt.Sprintf("did not converge after %d iterations (residual %g s)", e.Iterations, e.Residual)
}

// InconsistencyError reports a solution which failed the post-reconstruction
// check: the states at the two ends of the arc do not sit on the same conic.
// This flags a numeric defect in the solver, not an input error.
type InconsistencyError struct {
	Mismatch float64 // energy or eccentricity vector disagreement between the endpoints
}

func (e InconsistencyError) Error() string {
	return fmt.Sprintf("endpoint states disagree by %g, solution numerically inconsistent", e.Mismatch)
}

package lambert

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// Solution is the immutable output of the solver: the velocities at both ends
// of the arc and the classical elements derived from them.
type Solution struct {
	Vi, Vf     *mat64.Vector // velocities at Ri and Rf
	SMA        float64       // semi-major axis (negative hyperbolic, +Inf parabolic)
	Ecc        float64       // eccentricity
	Ψ          float64       // converged universal parameter
	Iterations uint
	Residual   float64 // time of flight residual at convergence, seconds
}

// Hyperbolic returns whether the transfer arc is hyperbolic.
func (s *Solution) Hyperbolic() bool {
	return s.Ecc > 1
}

// String implements the Stringer interface.
func (s *Solution) String() string {
	return fmt.Sprintf("a=%.3f e=%.6f ψ=%.6f (%d iterations, residual %g s)", s.SMA, s.Ecc, s.Ψ, s.Iterations, s.Residual)
}

// Reconstruct converts a solved universal parameter back into physical
// quantities: the Lagrange coefficients f, g, ḟ, ġ, the velocities at both
// radii, and the semi-major axis and eccentricity of the arc. The returned
// solution is checked for numerical consistency: the endpoint states must sit
// on the same conic, which means equal vis-viva energies and equal
// eccentricity vectors at both ends. A failed check is an InconsistencyError,
// flagging an upstream numeric defect rather than a user input error.
func Reconstruct(ψ float64, geom Geometry, Ri, Rf *mat64.Vector, μ float64) (*Solution, error) {
	y, _, _, err := auxY(ψ, geom)
	if err != nil {
		return nil, err
	}
	f := 1 - y/geom.RiNorm
	gDot := 1 - y/geom.RfNorm
	g := geom.A * math.Sqrt(y/μ)
	if floats.EqualWithinAbs(g, 0, 1e-12) || math.IsNaN(g) {
		return nil, InconsistencyError{Mismatch: math.Inf(1)}
	}
	// Vi = (Rf - f*Ri)/g
	Vi := mat64.NewVector(3, nil)
	Vi.AddScaledVec(Rf, -f, Ri)
	Vi.ScaleVec(1/g, Vi)
	// ḟ from the conic identity f·ġ - ḟ·g = 1, then Vf = ḟ*Ri + ġ*Vi.
	fDot := (f*gDot - 1) / g
	Vf := mat64.NewVector(3, nil)
	Vf.ScaleVec(fDot, Ri)
	Vf.AddScaledVec(Vf, gDot, Vi)
	// Consistency: both ends must sit on the same conic. Reproducing Ri or Rf
	// through the Lagrange coefficients is an identity of the same arithmetic
	// (fġ - ḟg = 1 makes ġ·Rf - g·Vf exactly Ri), so the conic itself is
	// compared instead: equal vis-viva energies and equal eccentricity vectors
	// at both endpoints.
	ξi := energyξ(geom.RiNorm, mat64.Norm(Vi, 2), μ)
	ξf := energyξ(geom.RfNorm, mat64.Norm(Vf, 2), μ)
	if !floats.EqualWithinAbs(ξi, ξf, ε*math.Max(1, math.Abs(ξi))) {
		return nil, InconsistencyError{Mismatch: math.Abs(ξi - ξf)}
	}
	eVecI := eccVector(vecData(Ri), vecData(Vi), μ)
	eVecF := eccVector(vecData(Rf), vecData(Vf), μ)
	eDiff := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eDiff[i] = eVecI[i] - eVecF[i]
	}
	if !floats.EqualWithinAbs(norm(eDiff), 0, ε) {
		return nil, InconsistencyError{Mismatch: norm(eDiff)}
	}
	a := math.Inf(1)
	if !floats.EqualWithinAbs(ξi, 0, 1e-12) {
		a = -μ / (2 * ξi)
	}
	return &Solution{Vi: Vi, Vf: Vf, SMA: a, Ecc: norm(eVecI), Ψ: ψ}, nil
}

// eccVector returns the eccentricity vector of the conic through one endpoint
// state, from Vallado's RV2COE (page 113).
func eccVector(R, V []float64, μ float64) []float64 {
	v := norm(V)
	r := norm(R)
	eVec := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eVec[i] = ((v*v-μ/r)*R[i] - dot(R, V)*V[i]) / μ
	}
	return eVec
}

// energyξ returns the specific mechanical energy ξ at one point of the arc.
func energyξ(r, v, μ float64) float64 {
	return v*v/2 - μ/r
}

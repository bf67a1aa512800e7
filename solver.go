package lambert

import (
	"errors"
	"math"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
)

const (
	ε = 1e-6 // General epsilon

	// Bounded ψ adjustment when a trial lands outside the admissible domain.
	domainStep       = 0.1
	maxDomainRetries = 1000
)

// Settings tunes the root finding iterator. The zero value of any field falls
// back to the configured default, so a nil *Settings is always valid.
type Settings struct {
	Tolerance     float64 // time of flight residual tolerance, in seconds
	MaxIterations uint
	Logger        kitlog.Logger // per iteration tracing, nop by default
}

// fill returns a complete copy of the settings, zero fields replaced by the
// configured defaults.
func (s *Settings) fill() *Settings {
	conf := lambertConfig()
	out := Settings{Tolerance: conf.tolerance, MaxIterations: conf.maxIterations, Logger: kitlog.NewNopLogger()}
	if s != nil {
		if s.Tolerance > 0 {
			out.Tolerance = s.Tolerance
		}
		if s.MaxIterations > 0 {
			out.MaxIterations = s.MaxIterations
		}
		if s.Logger != nil {
			out.Logger = s.Logger
		}
	}
	return &out
}

// DefaultSettings returns the solver tuning used when none is provided.
func DefaultSettings() *Settings {
	return (*Settings)(nil).fill()
}

// Solve solves the Lambert boundary problem: given the initial and final
// radii, the requested time of flight and the gravitational parameter of the
// central body, it finds the conic arc connecting both radii in exactly that
// time and returns the velocities at each end along with the orbital elements
// of the arc. The transfer type selects the direction of motion and the
// revolution count; nil settings use the defaults.
func Solve(Ri, Rf *mat64.Vector, Δt0 time.Duration, ttype TransferType, μ float64, settings *Settings) (*Solution, error) {
	return SolveMultiRev(Ri, Rf, Δt0, ttype.dm(), ttype.Revs(), ttype.highBranch(), μ, settings)
}

// SolveMultiRev solves the Lambert problem for an arbitrary revolution count.
// The time of flight is U-shaped in ψ on every revolution bracket, so each
// revolution count admits two solutions: highBranch selects the one on the
// large ψ (lower energy) side of the minimum. dm follows NewGeometry.
func SolveMultiRev(Ri, Rf *mat64.Vector, Δt0 time.Duration, dm float64, revs uint, highBranch bool, μ float64, settings *Settings) (*Solution, error) {
	if Δt0 <= 0 {
		return nil, errors.New("time of flight must be strictly positive")
	}
	if μ <= 0 {
		return nil, errors.New("gravitational parameter must be strictly positive")
	}
	geom, err := NewGeometry(Ri, Rf, dm)
	if err != nil {
		return nil, err
	}
	settings = settings.fill()
	ψ, iter, resid, err := iterateψ(Δt0.Seconds(), geom, μ, revs, highBranch, settings)
	if err != nil {
		return nil, err
	}
	sol, err := Reconstruct(ψ, geom, Ri, Rf, μ)
	if err != nil {
		return nil, err
	}
	sol.Iterations = iter
	sol.Residual = resid
	return sol, nil
}

// iterateψ inverts the time of flight function by bisection on ψ. The zero
// revolution bracket is [-4π, 4π²); each multi revolution bracket
// ((2πN)², (2π(N+1))²) is split at its minimum time of flight ψ into a
// decreasing and an increasing branch. The minimum achievable time of flight
// on the chosen branch is evaluated first: targets below it are rejected
// before any iteration takes place.
func iterateψ(Δt0 float64, geom Geometry, μ float64, revs uint, highBranch bool, settings *Settings) (ψ float64, iter uint, resid float64, err error) {
	logger := settings.Logger
	ψlow := -4 * math.Pi
	ψup := 4*math.Pi*math.Pi - ε
	decreasing := false
	var Δtmin float64
	if revs > 0 {
		ψlow = math.Pow(2*math.Pi*float64(revs), 2) + ε
		ψup = math.Pow(2*math.Pi*float64(revs+1), 2) - ε
		var ψbound float64
		ψbound, Δtmin = minTOF(ψlow, ψup, geom, μ)
		if math.IsInf(Δtmin, 1) {
			err = DomainError{Ψ: ψlow, Y: math.NaN()}
			return
		}
		if highBranch {
			ψlow = ψbound
		} else {
			// Time of flight decreases with ψ left of the minimum.
			ψup = ψbound
			decreasing = true
		}
	} else {
		// The minimum achievable time of flight sits at the lower edge of
		// the bracket, or at the y=0 cutoff when that edge is inadmissible.
		if Δtmin, err = TimeOfFlight(ψlow, geom, μ); err != nil {
			ψlow = yCutoff(ψlow, geom)
			if Δtmin, err = TimeOfFlight(ψlow, geom, μ); err != nil {
				return
			}
		}
	}
	if Δt0 < Δtmin-settings.Tolerance {
		err = BelowMinTOFError{Min: secToDuration(Δtmin), Requested: secToDuration(Δt0)}
		return
	}
	// Parabolic reference as the initial guess whenever it is in the bracket,
	// the midpoint otherwise.
	ψ = (ψlow + ψup) / 2
	if revs == 0 && ψlow < 0 {
		ψ = 0
	}
	resid = math.Inf(1)
	for iter = 1; iter <= settings.MaxIterations; iter++ {
		Δt, tofErr := TimeOfFlight(ψ, geom, μ)
		if tofErr != nil {
			// Short way arcs have a y<0 region at the hyperbolic end of the
			// bracket; step over it a bounded number of times.
			stepped := false
			for try := 0; try < maxDomainRetries; try++ {
				ψ += domainStep
				if ψ >= ψup {
					break
				}
				if Δt, tofErr = TimeOfFlight(ψ, geom, μ); tofErr == nil {
					stepped = true
					break
				}
			}
			if !stepped {
				err = tofErr
				return
			}
		}
		resid = Δt - Δt0
		logger.Log("iter", iter, "ψ", ψ, "tof", Δt, "target", Δt0, "resid", resid)
		if math.Abs(resid) < settings.Tolerance {
			return ψ, iter, resid, nil
		}
		below := Δt < Δt0
		if decreasing {
			below = !below
		}
		if below {
			ψlow = ψ
		} else {
			ψup = ψ
		}
		ψ = (ψlow + ψup) / 2
	}
	iter = settings.MaxIterations
	err = ConvergenceError{Iterations: iter, Residual: resid}
	return
}

// minTOF locates the ψ of minimum time of flight on a multi revolution
// bracket: a coarse scan first, then ternary refinement of the winning
// interval.
func minTOF(ψlow, ψup float64, geom Geometry, μ float64) (ψbound, Δtmin float64) {
	Δtmin = math.Inf(1)
	const step = 0.1
	for ψ := ψlow; ψ < ψup; ψ += step {
		Δt, err := TimeOfFlight(ψ, geom, μ)
		if err != nil {
			continue
		}
		if Δt < Δtmin {
			Δtmin, ψbound = Δt, ψ
		}
	}
	if math.IsInf(Δtmin, 1) {
		return
	}
	lo := math.Max(ψlow, ψbound-step)
	hi := math.Min(ψup, ψbound+step)
	for i := 0; i < 100; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		t1, err1 := TimeOfFlight(m1, geom, μ)
		t2, err2 := TimeOfFlight(m2, geom, μ)
		if err1 != nil || err2 != nil {
			break
		}
		if t1 > t2 {
			lo = m1
		} else {
			hi = m2
		}
	}
	if Δt, err := TimeOfFlight((lo+hi)/2, geom, μ); err == nil && Δt < Δtmin {
		ψbound, Δtmin = (lo+hi)/2, Δt
	}
	return
}

// yCutoff locates the ψ above which y becomes admissible, stepping up from
// the bracket edge and bisecting the crossing. Only reachable for short way
// arcs (A > 0), for which y grows with ψ.
func yCutoff(ψstart float64, geom Geometry) float64 {
	lo := ψstart
	hi := lo
	valid := false
	for try := 0; try < maxDomainRetries; try++ {
		hi += domainStep
		if _, _, _, err := auxY(hi, geom); err == nil {
			valid = true
			break
		}
		lo = hi
	}
	if !valid {
		return hi
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if _, _, _, err := auxY(mid, geom); err == nil {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

func secToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

package lambert

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func TestSolveVallado(t *testing.T) {
	// From Vallado 4th edition, page 497.
	Ri, Rf := valladoRadii()
	ViExp := mat64.NewVector(3, []float64{2.058913, 2.915965, 0})
	VfExp := mat64.NewVector(3, []float64{-3.451565, 0.910315, 0})
	for _, ttype := range []TransferType{TTypeAuto, TType1} {
		sol, err := Solve(Ri, Rf, 76*time.Minute, ttype, Earth.GM(), nil)
		if err != nil {
			t.Fatalf("err %s", err)
		}
		if !mat64.EqualApprox(sol.Vi, ViExp, 1e-5) {
			t.Logf("ψ=%f", sol.Ψ)
			t.Logf("\nGot %+v\nExp %+v\n", mat64.Formatted(sol.Vi.T()), mat64.Formatted(ViExp.T()))
			t.Fatalf("[%s] incorrect Vi computed", ttype)
		}
		if !mat64.EqualApprox(sol.Vf, VfExp, 1e-5) {
			t.Logf("ψ=%f", sol.Ψ)
			t.Logf("\nGot %+v\nExp %+v\n", mat64.Formatted(sol.Vf.T()), mat64.Formatted(VfExp.T()))
			t.Fatalf("[%s] incorrect Vf computed", ttype)
		}
		if sol.Ecc >= 1 || sol.SMA <= 0 {
			t.Fatalf("[%s] expected an elliptic arc, got %s", ttype, sol)
		}
		if sol.Iterations == 0 || math.Abs(sol.Residual) > 1e-6 {
			t.Fatalf("[%s] solver telemetry off: %s", ttype, sol)
		}
	}
	// Long way.
	ViExp = mat64.NewVector(3, []float64{-3.811158, -2.003854, 0})
	VfExp = mat64.NewVector(3, []float64{4.207569, 0.914724, 0})
	sol, err := Solve(Ri, Rf, 76*time.Minute, TType2, Earth.GM(), nil)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !mat64.EqualApprox(sol.Vi, ViExp, 1e-5) {
		t.Logf("\nGot %+v\nExp %+v\n", mat64.Formatted(sol.Vi.T()), mat64.Formatted(ViExp.T()))
		t.Fatalf("[%s] incorrect Vi computed", TType2)
	}
	if !mat64.EqualApprox(sol.Vf, VfExp, 1e-5) {
		t.Logf("\nGot %+v\nExp %+v\n", mat64.Formatted(sol.Vf.T()), mat64.Formatted(VfExp.T()))
		t.Fatalf("[%s] incorrect Vf computed", TType2)
	}
}

func TestSolveQuarterCircle(t *testing.T) {
	// In canonical units (|r|=1, μ=1), a quarter circular period between
	// orthogonal radii must recover the circular orbit itself.
	Ri := mat64.NewVector(3, []float64{1, 0, 0})
	Rf := mat64.NewVector(3, []float64{0, 1, 0})
	sol, err := Solve(Ri, Rf, secToDuration(math.Pi/2), TType1, 1, &Settings{Tolerance: 1e-9})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !floats.EqualWithinAbs(sol.SMA, 1, 1e-4) {
		t.Fatalf("a=%f, expected ~1", sol.SMA)
	}
	if !floats.EqualWithinAbs(sol.Ecc, 0, 1e-4) {
		t.Fatalf("e=%f, expected ~0", sol.Ecc)
	}
	if !floats.EqualWithinAbs(sol.Ψ, math.Pow(math.Pi/2, 2), 1e-3) {
		t.Fatalf("ψ=%f, expected ~(π/2)²", sol.Ψ)
	}
	if !mat64.EqualApprox(sol.Vi, mat64.NewVector(3, []float64{0, 1, 0}), 1e-4) {
		t.Fatalf("Vi=%+v", mat64.Formatted(sol.Vi.T()))
	}
	if !mat64.EqualApprox(sol.Vf, mat64.NewVector(3, []float64{-1, 0, 0}), 1e-4) {
		t.Fatalf("Vf=%+v", mat64.Formatted(sol.Vf.T()))
	}
}

// ellipseState returns the planar position, velocity and time since periapsis
// on a given ellipse, from the closed form Kepler relations.
func ellipseState(a, e, ν, μ float64) (R, V []float64, tSincePeriapsis float64) {
	p := a * (1 - e*e)
	r := p / (1 + e*math.Cos(ν))
	sν, cν := math.Sincos(ν)
	R = []float64{r * cν, r * sν, 0}
	vr := math.Sqrt(μ/p) * e * sν
	vt := math.Sqrt(μ/p) * (1 + e*cν)
	V = []float64{vr*cν - vt*sν, vr*sν + vt*cν, 0}
	sinE := math.Sqrt(1-e*e) * sν / (1 + e*cν)
	cosE := (e + cν) / (1 + e*cν)
	E := math.Atan2(sinE, cosE)
	M := E - e*sinE
	tSincePeriapsis = M / math.Sqrt(μ/math.Pow(a, 3))
	return
}

func TestSolveRoundTripEllipse(t *testing.T) {
	// Propagate a known ellipse between two true anomalies and check that the
	// solver recovers the exact velocities at both ends.
	a, e, μ := 10000.0, 0.2, Earth.GM()
	R1, V1, t1 := ellipseState(a, e, 30*deg2rad, μ)
	R2, V2, t2 := ellipseState(a, e, 150*deg2rad, μ)
	Ri := mat64.NewVector(3, R1)
	Rf := mat64.NewVector(3, R2)
	sol, err := Solve(Ri, Rf, secToDuration(t2-t1), TType1, μ, &Settings{Tolerance: 1e-9})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !mat64.EqualApprox(sol.Vi, mat64.NewVector(3, V1), 1e-6) {
		t.Fatalf("\nGot %+v\nExp %+v\n", mat64.Formatted(sol.Vi.T()), mat64.Formatted(mat64.NewVector(3, V1).T()))
	}
	if !mat64.EqualApprox(sol.Vf, mat64.NewVector(3, V2), 1e-6) {
		t.Fatalf("\nGot %+v\nExp %+v\n", mat64.Formatted(sol.Vf.T()), mat64.Formatted(mat64.NewVector(3, V2).T()))
	}
	if !floats.EqualWithinAbs(sol.SMA, a, 1e-1) {
		t.Fatalf("a=%f", sol.SMA)
	}
	if !floats.EqualWithinAbs(sol.Ecc, e, 1e-4) {
		t.Fatalf("e=%f", sol.Ecc)
	}
}

func TestSolveBelowMinTOF(t *testing.T) {
	Ri, Rf := valladoRadii()
	_, err := Solve(Ri, Rf, time.Minute, TType2, Earth.GM(), nil)
	var minErr BelowMinTOFError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected BelowMinTOFError, got %v", err)
	}
	if minErr.Min <= minErr.Requested {
		t.Fatalf("floor %s should exceed the requested %s", minErr.Min, minErr.Requested)
	}
}

func TestSolveNonConvergence(t *testing.T) {
	Ri, Rf := valladoRadii()
	_, err := Solve(Ri, Rf, 76*time.Minute, TType1, Earth.GM(), &Settings{Tolerance: 1e-13, MaxIterations: 4})
	var convErr ConvergenceError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConvergenceError, got %v", err)
	}
	if convErr.Iterations != 4 {
		t.Fatalf("iterations=%d", convErr.Iterations)
	}
	if convErr.Residual == 0 {
		t.Fatal("expected a non zero residual report")
	}
}

func TestSolveMultiRevCircle(t *testing.T) {
	// One full revolution plus a quarter on the unit circular orbit.
	Ri := mat64.NewVector(3, []float64{1, 0, 0})
	Rf := mat64.NewVector(3, []float64{0, 1, 0})
	Δt0 := secToDuration(2*math.Pi + math.Pi/2)
	settings := &Settings{Tolerance: 1e-9}
	low, err := SolveMultiRev(Ri, Rf, Δt0, 1, 1, false, 1, settings)
	if err != nil {
		t.Fatalf("low branch err %s", err)
	}
	if !floats.EqualWithinAbs(low.SMA, 1, 1e-3) {
		t.Fatalf("low branch a=%f, expected ~1", low.SMA)
	}
	if !floats.EqualWithinAbs(low.Ecc, 0, 1e-3) {
		t.Fatalf("low branch e=%f, expected ~0", low.Ecc)
	}
	if !floats.EqualWithinAbs(low.Ψ, math.Pow(2.5*math.Pi, 2), 5e-2) {
		t.Fatalf("low branch ψ=%f, expected ~(2.5π)²", low.Ψ)
	}
	// TType3 is the one revolution short way low branch spelled as a type.
	viaType, err := Solve(Ri, Rf, Δt0, TType3, 1, settings)
	if err != nil {
		t.Fatalf("type-3 err %s", err)
	}
	if !floats.EqualWithinAbs(viaType.Ψ, low.Ψ, 1e-9) {
		t.Fatalf("type-3 ψ=%f differs from the explicit low branch ψ=%f", viaType.Ψ, low.Ψ)
	}
	high, err := SolveMultiRev(Ri, Rf, Δt0, 1, 1, true, 1, settings)
	if err != nil {
		t.Fatalf("high branch err %s", err)
	}
	if high.Ψ <= low.Ψ+5 {
		t.Fatalf("high branch ψ=%f should clearly exceed the low branch ψ=%f", high.Ψ, low.Ψ)
	}
	// Both branches traverse the geometry in the same requested time.
	geom, _ := NewGeometry(Ri, Rf, 1)
	Δt, err := TimeOfFlight(high.Ψ, geom, 1)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !floats.EqualWithinAbs(Δt, 2*math.Pi+math.Pi/2, 1e-6) {
		t.Fatalf("high branch Δt=%f", Δt)
	}
}

func TestSolveMultiRevBelowMinTOF(t *testing.T) {
	// A single revolution cannot be flown faster than the bracket minimum.
	Ri := mat64.NewVector(3, []float64{1, 0, 0})
	Rf := mat64.NewVector(3, []float64{0, 1, 0})
	_, err := SolveMultiRev(Ri, Rf, secToDuration(1), 1, 1, false, 1, nil)
	var minErr BelowMinTOFError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected BelowMinTOFError, got %v", err)
	}
}

func TestSolveErrors(t *testing.T) {
	Ri, Rf := valladoRadii()
	if _, err := Solve(Ri, Rf, 0, TType1, Earth.GM(), nil); err == nil {
		t.Fatal("err should not be nil for a zero time of flight")
	}
	if _, err := Solve(Ri, Rf, time.Hour, TType1, -1, nil); err == nil {
		t.Fatal("err should not be nil for a negative μ")
	}
	colinear := mat64.NewVector(3, nil)
	colinear.ScaleVec(3, Ri)
	var degErr DegenerateGeometryError
	if _, err := Solve(Ri, colinear, time.Hour, TType1, Earth.GM(), nil); !errors.As(err, &degErr) {
		t.Fatalf("expected DegenerateGeometryError to propagate, got %v", err)
	}
}

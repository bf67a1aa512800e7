package lambert

import (
	"errors"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	// sin(Δν) below this means the transfer plane is undefined.
	collinearε = 1e-9
)

// Geometry holds the scalar transfer geometry derived from the two position
// vectors. It is immutable once computed, and shared by the time of flight
// function, the iterator and the reconstructor.
type Geometry struct {
	RiNorm, RfNorm float64 // radii magnitudes
	C              float64 // chord length |Rf - Ri|
	S              float64 // semi-perimeter of the transfer triangle
	CosΔν          float64
	Δν             float64 // transfer angle along the direction of motion, in (0, 2π)
	DM             float64 // direction of motion: +1 short way, -1 long way
	A              float64 // dm*sqrt(rI*rF*(1+cosΔν))
}

// NewGeometry derives the transfer geometry for the requested direction of
// motion. dm must be +1 (short way), -1 (long way) or 0 to resolve the
// direction from the z component of Ri×Rf, i.e. a prograde transfer about the
// +Z normal of the input frame. This is needed when sweeping launch windows
// for pork chop plots, where either way may be the prograde one.
func NewGeometry(Ri, Rf *mat64.Vector, dm float64) (Geometry, error) {
	var geom Geometry
	// Sanity checks
	Rir, _ := Ri.Dims()
	Rfr, _ := Rf.Dims()
	if Rir != Rfr || Rir != 3 {
		return geom, errors.New("initial and final radii must be 3x1 vectors")
	}
	if dm != 0 && dm != 1 && dm != -1 {
		return geom, errors.New("direction of motion must be either 0, -1 or 1")
	}
	rI := mat64.Norm(Ri, 2)
	rF := mat64.Norm(Rf, 2)
	if floats.EqualWithinAbs(rI, 0, 1e-12) || floats.EqualWithinAbs(rF, 0, 1e-12) {
		return geom, errors.New("radii must have a non zero magnitude")
	}
	cosΔν := mat64.Dot(Ri, Rf) / (rI * rF)
	cr := crossVec(Ri, Rf)
	sinΔν := mat64.Norm(cr, 2) / (rI * rF)
	if sinΔν < collinearε {
		return geom, DegenerateGeometryError{Δν: math.Atan2(sinΔν, cosΔν)}
	}
	Δνshort := math.Atan2(sinΔν, cosΔν) // in (0, π)
	if dm == 0 {
		dm = 1
		if cr.At(2, 0) < 0 {
			// The prograde sweep from Ri to Rf exceeds π.
			dm = -1
		}
	}
	Δν := Δνshort
	if dm == -1 {
		Δν = 2*math.Pi - Δνshort
	}
	chord := mat64.NewVector(3, nil)
	chord.SubVec(Rf, Ri)
	c := mat64.Norm(chord, 2)
	geom = Geometry{
		RiNorm: rI,
		RfNorm: rF,
		C:      c,
		S:      (rI + rF + c) / 2,
		CosΔν:  cosΔν,
		Δν:     Δν,
		DM:     dm,
		A:      dm * math.Sqrt(rI*rF*(1+cosΔν)),
	}
	return geom, nil
}

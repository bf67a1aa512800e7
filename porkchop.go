package lambert

import (
	"math"
	"sync"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/soniakeys/meeus/julian"
)

// StateFunc returns the position and velocity of a body relative to the
// central body at a given epoch. Callers plug in the ephemeris of their
// choice; this package does not ship one.
type StateFunc func(dt time.Time) (R, V *mat64.Vector)

// PorkchopData tabulates Lambert solutions over a departure/arrival window,
// keyed by departure date: characteristic energy C3 at departure in km^2/s^2,
// v-infinity at arrival in km/s, and time of flight in days. Pairs without a
// solution (including non causal ones where arrival precedes departure) hold
// NaN. The maps are safe for concurrent reads once returned.
type PorkchopData struct {
	Departures []time.Time
	Arrivals   []time.Time
	C3         map[time.Time][]float64
	VInf       map[time.Time][]float64
	TOF        map[time.Time][]float64
}

// Porkchop solves one Lambert problem per departure/arrival date pair between
// the two Julian day windows. The solver is pure and every problem instance
// independent, so the scan runs one departure column per goroutine with no
// locking. Used to feed pork chop (C3 contour) plots.
func Porkchop(depJD, depJDMax, arrJD, arrJDMax, ptsPerDepDay, ptsPerArrDay float64, depState, arrState StateFunc, body CelestialObject, settings *Settings) *PorkchopData {
	data := &PorkchopData{
		C3:   make(map[time.Time][]float64),
		VInf: make(map[time.Time][]float64),
		TOF:  make(map[time.Time][]float64),
	}
	for day := 0.0; day < depJDMax-depJD; day += 1 / ptsPerDepDay {
		data.Departures = append(data.Departures, julian.JDToTime(depJD+day))
	}
	for day := 0.0; day < arrJDMax-arrJD; day += 1 / ptsPerArrDay {
		data.Arrivals = append(data.Arrivals, julian.JDToTime(arrJD+day))
	}
	// Preallocate all map entries so the goroutines only touch their own row.
	for _, depDT := range data.Departures {
		data.C3[depDT] = make([]float64, len(data.Arrivals))
		data.VInf[depDT] = make([]float64, len(data.Arrivals))
		data.TOF[depDT] = make([]float64, len(data.Arrivals))
	}
	var wg sync.WaitGroup
	for _, depDT := range data.Departures {
		wg.Add(1)
		go func(depDT time.Time) {
			defer wg.Done()
			Rdep, Vdep := depState(depDT)
			for j, arrDT := range data.Arrivals {
				tof := arrDT.Sub(depDT)
				data.TOF[depDT][j] = tof.Hours() / 24
				if tof <= 0 {
					data.C3[depDT][j] = math.NaN()
					data.VInf[depDT][j] = math.NaN()
					continue
				}
				Rarr, Varr := arrState(arrDT)
				sol, err := Solve(Rdep, Rarr, tof, TTypeAuto, body.GM(), settings)
				if err != nil {
					data.C3[depDT][j] = math.NaN()
					data.VInf[depDT][j] = math.NaN()
					continue
				}
				vInfDep := mat64.NewVector(3, nil)
				vInfDep.SubVec(sol.Vi, Vdep)
				vInfArr := mat64.NewVector(3, nil)
				vInfArr.SubVec(sol.Vf, Varr)
				data.C3[depDT][j] = math.Pow(mat64.Norm(vInfDep, 2), 2)
				data.VInf[depDT][j] = mat64.Norm(vInfArr, 2)
			}
		}(depDT)
	}
	wg.Wait()
	return data
}

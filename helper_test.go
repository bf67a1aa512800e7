package lambert

import "github.com/gonum/floats"

const testε = 1e-12

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !floats.EqualWithinAbs(a[i], b[i], testε) {
			return false
		}
	}
	return true
}

package lambert

import "math"

// ψ within this distance of zero is treated as parabolic.
const parabolicψε = 1e-6

// c2c3 evaluates the Stumpff-like coefficients of the universal variable
// formulation at ψ: the trigonometric form for the elliptic branch (ψ>0), the
// hyperbolic form for ψ<0, and the series limit near the parabolic boundary
// where both closed forms cancel catastrophically.
func c2c3(ψ float64) (c2, c3 float64) {
	switch {
	case ψ > parabolicψε:
		sψ := math.Sqrt(ψ)
		ssψ, csψ := math.Sincos(sψ)
		c2 = (1 - csψ) / ψ
		c3 = (sψ - ssψ) / math.Sqrt(math.Pow(ψ, 3))
	case ψ < -parabolicψε:
		sψ := math.Sqrt(-ψ)
		c2 = (1 - math.Cosh(sψ)) / ψ
		c3 = (math.Sinh(sψ) - sψ) / math.Sqrt(math.Pow(-ψ, 3))
	default:
		c2 = 1/2. - ψ/24 + ψ*ψ/720
		c3 = 1/6. - ψ/120 + ψ*ψ/5040
	}
	return
}

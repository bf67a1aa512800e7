package lambert

import "math"

// auxY evaluates the auxiliary quantity y and the Stumpff coefficients at ψ.
// A negative y has no physical meaning for the chosen branch and is reported
// as a DomainError, as is a vanishing c2 (which happens exactly at the
// ψ = (2kπ)² bracket endpoints).
func auxY(ψ float64, geom Geometry) (y, c2, c3 float64, err error) {
	c2, c3 = c2c3(ψ)
	if c2 < 1e-12 {
		err = DomainError{Ψ: ψ, Y: math.NaN()}
		return
	}
	y = geom.RiNorm + geom.RfNorm + geom.A*(ψ*c3-1)/math.Sqrt(c2)
	if y < 0 {
		err = DomainError{Ψ: ψ, Y: y}
	}
	return
}

// TimeOfFlight evaluates the universal variable time of flight equation at ψ
// for the given geometry, in seconds. The expression is continuous across the
// hyperbolic (ψ<0), parabolic (ψ≈0) and elliptic (ψ>0) regimes, and
// monotonically increasing in ψ over the zero revolution bracket. Multi
// revolution arcs live at ψ > 4π²: the Stumpff coefficients carry the extra
// revolutions, no additive 2πN·sqrt(a³/μ) term is needed.
// It returns a DomainError when ψ yields an inadmissible intermediate value.
func TimeOfFlight(ψ float64, geom Geometry, μ float64) (float64, error) {
	y, c2, c3, err := auxY(ψ, geom)
	if err != nil {
		return 0, err
	}
	χ := math.Sqrt(y / c2)
	return (χ*χ*χ*c3 + geom.A*math.Sqrt(y)) / math.Sqrt(μ), nil
}

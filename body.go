package lambert

// CelestialObject defines a celestial object as a point-mass gravity source.
type CelestialObject struct {
	Name string
	μ    float64 // km^3/s^2
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Sun is our closest star.
var Sun = CelestialObject{"Sun", 1.32712440017987e11}

// Venus is poisonous.
var Venus = CelestialObject{"Venus", 3.24858599e5}

// Earth is home.
var Earth = CelestialObject{"Earth", 3.98600433e5}

// Mars is the vacation place.
var Mars = CelestialObject{"Mars", 4.28283100e4}

package boardview

import "math"

// Angle represents a rotation angle stored in radians.
//
// The zero value is a zero rotation. Angle is a value type; all methods
// return new values.
type Angle float64

// Radians creates an Angle from radians.
func Radians(rad float64) Angle {
	return Angle(rad)
}

// Degrees creates an Angle from degrees.
func Degrees(deg float64) Angle {
	return Angle(deg * math.Pi / 180)
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	return float64(a)
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 180 / math.Pi
}

// Normalize returns the angle wrapped into (-pi, pi].
func (a Angle) Normalize() Angle {
	r := math.Mod(float64(a), 2*math.Pi)
	switch {
	case r > math.Pi:
		r -= 2 * math.Pi
	case r <= -math.Pi:
		r += 2 * math.Pi
	}
	return Angle(r)
}

// Add returns the sum of two angles.
func (a Angle) Add(b Angle) Angle {
	return a + b
}

// Sub returns the difference of two angles.
func (a Angle) Sub(b Angle) Angle {
	return a - b
}

// Neg returns the negated angle.
func (a Angle) Neg() Angle {
	return -a
}

// Cos returns the cosine of the angle.
func (a Angle) Cos() float64 {
	return math.Cos(float64(a))
}

// Sin returns the sine of the angle.
func (a Angle) Sin() float64 {
	return math.Sin(float64(a))
}

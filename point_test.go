package boardview

import (
	"math"
	"testing"
)

// approx reports whether two floats agree within a small tolerance.
func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxVec(a, b Vec2) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func TestVec2Arithmetic(t *testing.T) {
	a := V2(3, 4)
	b := V2(-1, 2)

	if got := a.Add(b); !approxVec(got, V2(2, 6)) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !approxVec(got, V2(4, 2)) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(2); !approxVec(got, V2(6, 8)) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Div(2); !approxVec(got, V2(1.5, 2)) {
		t.Errorf("Div = %v", got)
	}
	if got := a.Neg(); !approxVec(got, V2(-3, -4)) {
		t.Errorf("Neg = %v", got)
	}
}

func TestVec2Products(t *testing.T) {
	a := V2(3, 4)
	b := V2(-1, 2)

	if got := a.Dot(b); !approx(got, 5) {
		t.Errorf("Dot = %v, want 5", got)
	}
	if got := a.Cross(b); !approx(got, 10) {
		t.Errorf("Cross = %v, want 10", got)
	}
	if got := a.Length(); !approx(got, 5) {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := a.LengthSq(); !approx(got, 25) {
		t.Errorf("LengthSq = %v, want 25", got)
	}
	if got := V2(0, 0).Distance(a); !approx(got, 5) {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	if got := V2(3, 4).Normalize(); !approxVec(got, V2(0.6, 0.8)) {
		t.Errorf("Normalize = %v", got)
	}
	if got := V2(0, 0).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestVec2Rotate(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		a    Angle
		want Vec2
	}{
		{"quarter turn", V2(1, 0), Degrees(90), V2(0, 1)},
		{"half turn", V2(1, 0), Degrees(180), V2(-1, 0)},
		{"perp equivalence", V2(2, 3), Degrees(90), V2(2, 3).Perp()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Rotate(tt.a); !approxVec(got, tt.want) {
				t.Errorf("Rotate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec2Angle(t *testing.T) {
	if got := V2(0, 1).Angle().Degrees(); !approx(got, 90) {
		t.Errorf("Angle = %v deg, want 90", got)
	}
	if got := V2(-1, 0).Angle().Degrees(); !approx(got, 180) {
		t.Errorf("Angle = %v deg, want 180", got)
	}
}

func TestVec2Lerp(t *testing.T) {
	a, b := V2(0, 0), V2(10, 20)
	if got := a.Lerp(b, 0.5); !approxVec(got, V2(5, 10)) {
		t.Errorf("Lerp(0.5) = %v", got)
	}
	if got := a.Lerp(b, 0); !approxVec(got, a) {
		t.Errorf("Lerp(0) = %v", got)
	}
	if got := a.Lerp(b, 1); !approxVec(got, b) {
		t.Errorf("Lerp(1) = %v", got)
	}
}

package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 4, true},
		{"right edge is exclusive", 6, 3, false},
		{"bottom edge is exclusive", 2, 5, false},
		{"left of rect", 1, 3, false},
		{"above rect", 3, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(8, 4)
	if b := s.Bounds(); b != NewRect(0, 0, 8, 4) {
		t.Errorf("Bounds() = %+v", b)
	}
	s.Resize(3, 2)
	if b := s.Bounds(); b.Right() != 3 || b.Bottom() != 2 {
		t.Errorf("Bounds() after resize = %+v", b)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestDist(t *testing.T) {
	if d := Dist(0, 0, 3, 4); math.Abs(d-5) > 1e-9 {
		t.Errorf("Dist(0,0,3,4) = %f, expected 5", d)
	}
	if d := Dist(7, 7, 7, 7); d != 0 {
		t.Errorf("Dist of identical points = %f, expected 0", d)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		v, world float64
		cells    int
		expected int
	}{
		{0, 384, 96, 0},
		{192, 384, 96, 48},
		{383.9, 384, 96, 95},
		{-4, 384, 96, -1},
		{10, 0, 96, 0},
	}

	for _, tc := range tests {
		if got := Scale(tc.v, tc.world, tc.cells); got != tc.expected {
			t.Errorf("Scale(%v, %v, %d) = %d, expected %d", tc.v, tc.world, tc.cells, got, tc.expected)
		}
	}
}

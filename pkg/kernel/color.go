package kernel

import "fmt"

// Color is a linear RGB triple with components in 0..1.
type Color [3]float32

var (
	Red     = Color{1, 0, 0}
	Green   = Color{0, 1, 0}
	Blue    = Color{0, 0, 1}
	Cyan    = Color{0, 1, 1}
	Magenta = Color{1, 0, 1}
	White   = Color{1, 1, 1}
)

// Gray returns a color with all three components set to v.
func Gray(v float32) Color {
	return Color{v, v, v}
}

// Valid reports whether every component lies in 0..1.
func (c Color) Valid() bool {
	for _, v := range c {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c[0]), channel(c[1]), channel(c[2]))
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

package kernel

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// HeightFunc samples a terrain height in 0..1 at texture coordinates u, v
// in 0..1. Builders clamp values outside 0..1.
type HeightFunc func(u, v float32) float32

// Named terrain reliefs.
const (
	ReliefFlat  = "flat"
	ReliefRamp  = "ramp"
	ReliefRidge = "ridge"
	ReliefHills = "hills"
)

// DefaultRelief is used by terrains that do not name one.
const DefaultRelief = ReliefHills

var reliefs = map[string]HeightFunc{
	ReliefFlat: nil,
	// Rises along +X.
	ReliefRamp: func(u, v float32) float32 { return u },
	// Peaks along the centre line x = 0.
	ReliefRidge: func(u, v float32) float32 { return 1 - abs32(2*u-1) },
	// Two interfering waves; stays within 0..1.
	ReliefHills: func(u, v float32) float32 {
		a := math.Sin(4*math.Pi*float64(u)) * math.Cos(4*math.Pi*float64(v))
		b := math.Sin(2 * math.Pi * float64(u+v))
		return float32(0.5 + 0.25*a + 0.25*b)
	},
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Reliefs returns the relief names in sorted order.
func Reliefs() []string {
	return slices.Sorted(maps.Keys(reliefs))
}

// Relief returns the height function registered under name. The empty name
// selects DefaultRelief; ReliefFlat has no height function and yields nil.
// Unknown names wrap ErrInvalidParameter.
func Relief(name string) (HeightFunc, error) {
	if name == "" {
		name = DefaultRelief
	}
	h, ok := reliefs[name]
	if !ok {
		return nil, fmt.Errorf("%w: terrain relief %q: want one of %s",
			ErrInvalidParameter, name, strings.Join(Reliefs(), ", "))
	}
	return h, nil
}

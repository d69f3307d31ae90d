package kernel

import (
	"fmt"
	"math"
)

// Minimum segment counts for a closed shape.
const (
	MinBaseVertices = 3
	MinGridCells    = 1
)

// MaxVertices is the largest vertex count a mesh may have, so that every
// vertex is addressable by a uint32 index.
const MaxVertices = math.MaxUint32

var tooManyVertices = fmt.Sprintf("needs more than %d vertices", uint64(MaxVertices))

func checkDimension(shape, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(shape, param, v, "must be finite")
	}
	if v <= 0 {
		return invalid(shape, param, v, "must be positive")
	}
	return nil
}

func checkCount(shape, param string, n, min int) error {
	if n < min {
		reason := "must be at least 1"
		if min == MinBaseVertices {
			reason = "must be at least 3 to close the base"
		}
		return invalid(shape, param, float64(n), reason)
	}
	return nil
}

// checkRings rejects a solid of revolution whose rings of n vertices plus
// two centre vertices exceed MaxVertices. n must already be positive.
func checkRings(shape string, n, rings int) error {
	if uint64(n) > (MaxVertices-2)/uint64(rings) {
		return invalid(shape, "numBaseVertices", float64(n), tooManyVertices)
	}
	return nil
}

// checkGrid rejects a grid whose (cols+1)*(rows+1) vertices exceed
// MaxVertices. cols and rows must already be positive.
func checkGrid(shape, colParam string, cols, rows int) error {
	c, r := uint64(cols)+1, uint64(rows)+1
	if c > MaxVertices/r {
		return invalid(shape, colParam, float64(cols), tooManyVertices)
	}
	return nil
}

func first(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateCone checks cone parameters.
func ValidateCone(height, radius float64, numBaseVertices int) error {
	err := first(
		checkDimension("cone", "height", height),
		checkDimension("cone", "radius", radius),
		checkCount("cone", "numBaseVertices", numBaseVertices, MinBaseVertices),
	)
	if err != nil {
		return err
	}
	return checkRings("cone", numBaseVertices, 1)
}

// ValidateCylinder checks cylinder parameters.
func ValidateCylinder(height, radius float64, numBaseVertices int) error {
	err := first(
		checkDimension("cylinder", "height", height),
		checkDimension("cylinder", "radius", radius),
		checkCount("cylinder", "numBaseVertices", numBaseVertices, MinBaseVertices),
	)
	if err != nil {
		return err
	}
	return checkRings("cylinder", numBaseVertices, 2)
}

// ValidatePlane checks plane grid parameters.
func ValidatePlane(width, height float64, cols, rows int) error {
	err := first(
		checkDimension("plane", "width", width),
		checkDimension("plane", "height", height),
		checkCount("plane", "cols", cols, MinGridCells),
		checkCount("plane", "rows", rows, MinGridCells),
	)
	if err != nil {
		return err
	}
	return checkGrid("plane", "cols", cols, rows)
}

// ValidateTerrain checks terrain grid parameters. A zero maxHeight is a
// flat terrain and is accepted.
func ValidateTerrain(width, depth float64, xSlices, zSlices int, maxHeight float64) error {
	err := first(
		checkDimension("terrain", "width", width),
		checkDimension("terrain", "depth", depth),
		checkCount("terrain", "xSlices", xSlices, MinGridCells),
		checkCount("terrain", "zSlices", zSlices, MinGridCells),
	)
	if err == nil {
		err = checkGrid("terrain", "xSlices", xSlices, zSlices)
	}
	if err != nil {
		return err
	}
	if math.IsNaN(maxHeight) || math.IsInf(maxHeight, 0) || maxHeight < 0 {
		return invalid("terrain", "maxHeight", maxHeight, "must be finite and non-negative")
	}
	return nil
}

// ValidateSkybox checks the skybox half-extent.
func ValidateSkybox(size float64) error {
	return checkDimension("skybox", "size", size)
}

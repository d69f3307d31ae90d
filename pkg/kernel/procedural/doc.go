// Package procedural builds meshes for simple solids directly from their
// parameters: cones and cylinders by sampling vertex rings around the Y
// axis, planes and terrains by sampling a regular grid. Builders are pure
// functions; the same parameters always produce bit-identical buffers.
package procedural

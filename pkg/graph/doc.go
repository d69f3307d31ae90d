// Package graph defines the scene graph types for meshform.
// The scene graph is an immutable DAG of shapes, transforms and scenes
// produced by evaluating a scene script. Each evaluation builds a new graph.
package graph

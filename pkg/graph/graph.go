package graph

import (
	"fmt"
	"sort"
)

// DefaultSegments is the ring resolution used when a script omits one.
const DefaultSegments = 32

// GlobalDefaults contains graph-wide default settings.
type GlobalDefaults struct {
	Segments int `json:"segments"` // ring vertices for cones and cylinders
}

// SceneGraph is the top-level immutable data structure produced by script
// evaluation. It is never mutated in place; each evaluation produces a new graph.
type SceneGraph struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`
	Defaults  GlobalDefaults    `json:"defaults"`
	Version   uint64            `json:"version"`
}

// New creates an empty SceneGraph with default settings.
func New() *SceneGraph {
	return &SceneGraph{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
		Defaults: GlobalDefaults{
			Segments: DefaultSegments,
		},
	}
}

// AddNode adds a node to the graph. It does not check for duplicates.
func (g *SceneGraph) AddNode(n *Node) {
	g.Nodes[n.ID] = n
	if n.Name != "" {
		g.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the graph.
func (g *SceneGraph) AddRoot(id NodeID) {
	g.Roots = append(g.Roots, id)
}

// Lookup returns the node with the given user-assigned name, or nil.
func (g *SceneGraph) Lookup(name string) *Node {
	id, ok := g.NameIndex[name]
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (g *SceneGraph) MustLookup(name string) *Node {
	n := g.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("graph: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (g *SceneGraph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// Primitives returns all primitive nodes ordered by display name, then ID.
func (g *SceneGraph) Primitives() []*Node {
	var prims []*Node
	for _, n := range g.Nodes {
		if n.Kind == NodePrimitive {
			prims = append(prims, n)
		}
	}
	sortNodes(prims)
	return prims
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i].DisplayName(), nodes[j].DisplayName()
		if a != b {
			return a < b
		}
		return nodes[i].ID.String() < nodes[j].ID.String()
	})
}

// Children returns the child nodes of the given node.
func (g *SceneGraph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// NodeCount returns the total number of nodes.
func (g *SceneGraph) NodeCount() int {
	return len(g.Nodes)
}

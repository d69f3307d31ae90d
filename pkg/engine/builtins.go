package engine

import (
	"fmt"
	"sort"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/xcanals/meshform/pkg/graph"
	"github.com/xcanals/meshform/pkg/kernel"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: top-color -> top_color
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpColor wraps a kernel.Color.
type sexpColor struct {
	c kernel.Color
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(color %g %g %g)", c.c[0], c.c[1], c.c[2])
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps shape parameters returned by the shape forms and
// consumed by defshape, place and scene.
type sexpShape struct {
	data graph.ShapeData
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %+v)", s.data.Shape(), s.data)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a graph.Vec3.
type sexpVec3 struct {
	vec graph.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	form       string
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(form string, args []zygo.Sexp) kwArgs {
	result := kwArgs{form: form, kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// only rejects keywords outside allowed so typos do not pass silently.
func (a kwArgs) only(allowed ...string) error {
	var unknown []string
	for k := range a.kw {
		found := false
		for _, name := range allowed {
			if k == name {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, ":"+k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%s: unknown keyword %s", a.form, strings.Join(unknown, ", "))
}

// float returns a required numeric keyword.
func (a kwArgs) float(key string) (float64, error) {
	v, ok := a.kw[key]
	if !ok {
		return 0, fmt.Errorf("%s: :%s is required", a.form, key)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", a.form, key, err)
	}
	return f, nil
}

// floatOr returns an optional numeric keyword.
func (a kwArgs) floatOr(key string, def float64) (float64, error) {
	if _, ok := a.kw[key]; !ok {
		return def, nil
	}
	return a.float(key)
}

// count returns a required integer keyword.
func (a kwArgs) count(key string) (int, error) {
	v, ok := a.kw[key]
	if !ok {
		return 0, fmt.Errorf("%s: :%s is required", a.form, key)
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", a.form, key, err)
	}
	return n, nil
}

// countOr returns an optional integer keyword.
func (a kwArgs) countOr(key string, def int) (int, error) {
	if _, ok := a.kw[key]; !ok {
		return def, nil
	}
	return a.count(key)
}

// stringOr returns an optional string keyword.
func (a kwArgs) stringOr(key, def string) (string, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	s, err := toString(v)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", a.form, key, err)
	}
	return s, nil
}

// paint builds a color override from :color and :top-color, filling the
// missing one from the shape defaults. It returns nil when neither is set.
func (a kwArgs) paint(base, top kernel.Color) (*graph.Paint, error) {
	_, hasBase := a.kw["color"]
	_, hasTop := a.kw["top-color"]
	if !hasBase && !hasTop {
		return nil, nil
	}
	p := &graph.Paint{Base: base, Top: top}
	if hasBase {
		c, err := toColor(a.kw["color"])
		if err != nil {
			return nil, fmt.Errorf("%s: color: %w", a.form, err)
		}
		p.Base = c
		if !hasTop && base == top {
			p.Top = c
		}
	}
	if hasTop {
		c, err := toColor(a.kw["top-color"])
		if err != nil {
			return nil, fmt.Errorf("%s: top-color: %w", a.form, err)
		}
		p.Top = c
	}
	return p, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt, or from a SexpFloat holding an
// integral value.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == float64(int(v.Val)) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected integer, got %g", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (graph.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return graph.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toColor extracts a kernel.Color from a sexpColor.
func toColor(s zygo.Sexp) (kernel.Color, error) {
	if c, ok := s.(*sexpColor); ok {
		return c.c, nil
	}
	return kernel.Color{}, fmt.Errorf("expected color, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Scene construction state
// ---------------------------------------------------------------------------

// sceneBuilder holds the graph being populated by one evaluation. Node IDs
// are derived from per-evaluation counters, so evaluating the same source
// twice yields the same IDs.
type sceneBuilder struct {
	g        *graph.SceneGraph
	counters map[string]int
}

func newSceneBuilder(g *graph.SceneGraph) *sceneBuilder {
	return &sceneBuilder{g: g, counters: make(map[string]int)}
}

// nextPath returns prefix/N with N counting up from 0 per prefix.
func (b *sceneBuilder) nextPath(prefix string) string {
	n := b.counters[prefix]
	b.counters[prefix] = n + 1
	return fmt.Sprintf("%s/%d", prefix, n)
}

// addPrimitive stores shape data as a primitive node.
func (b *sceneBuilder) addPrimitive(path, name string, data graph.ShapeData) *sexpNodeRef {
	id := graph.NewNodeID(path)
	b.g.AddNode(&graph.Node{
		ID:   id,
		Kind: graph.NodePrimitive,
		Name: name,
		Data: data,
	})
	return &sexpNodeRef{id: id, name: name}
}

// toNodeRef accepts a node reference or an inline shape. Inline shapes
// become anonymous primitives.
func (b *sceneBuilder) toNodeRef(s zygo.Sexp) (*sexpNodeRef, error) {
	switch v := s.(type) {
	case *sexpNodeRef:
		return v, nil
	case *sexpShape:
		return b.addPrimitive(b.nextPath(v.data.Shape()+"/anon"), "", v.data), nil
	}
	return nil, fmt.Errorf("expected node reference or shape, got %T (%s)", s, s.SexpString(nil))
}

// refName returns a readable name for ID paths derived from a reference.
func refName(ref *sexpNodeRef) string {
	if ref.name != "" {
		return ref.name
	}
	return ref.id.Short()
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all scene builtins into a zygomys environment.
// The builtins operate on the graph held by b, populating it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *sceneBuilder) {
	g := b.g

	// -----------------------------------------------------------------------
	// (color 1 0 0)
	// -----------------------------------------------------------------------
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("color requires exactly 3 arguments, got %d", len(args))
		}
		var c kernel.Color
		for i, arg := range args {
			f, err := toFloat64(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("color: component %d: %w", i, err)
			}
			c[i] = float32(f)
		}
		if !c.Valid() {
			return zygo.SexpNull, fmt.Errorf("color: components %v must lie in 0..1", c)
		}
		return &sexpColor{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: graph.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (cone :height 2 :radius 1 :segments 12 :color c :top-color c)
	// (cylinder :height 2 :radius 1 :segments 12 :color c :top-color c)
	// -----------------------------------------------------------------------
	revolve := func(form string, base, top kernel.Color, build func(h, r float64, n int, p *graph.Paint) graph.ShapeData) {
		env.AddFunction(form, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(form, args)
			if err := pa.only("height", "radius", "segments", "color", "top-color"); err != nil {
				return zygo.SexpNull, err
			}
			h, err := pa.float("height")
			if err != nil {
				return zygo.SexpNull, err
			}
			r, err := pa.float("radius")
			if err != nil {
				return zygo.SexpNull, err
			}
			n, err := pa.countOr("segments", g.Defaults.Segments)
			if err != nil {
				return zygo.SexpNull, err
			}
			p, err := pa.paint(base, top)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpShape{data: build(h, r, n, p)}, nil
		})
	}
	revolve("cone", kernel.Red, kernel.Blue, func(h, r float64, n int, p *graph.Paint) graph.ShapeData {
		return graph.ConeData{Height: h, Radius: r, Segments: n, Paint: p}
	})
	revolve("cylinder", kernel.Cyan, kernel.Green, func(h, r float64, n int, p *graph.Paint) graph.ShapeData {
		return graph.CylinderData{Height: h, Radius: r, Segments: n, Paint: p}
	})

	// -----------------------------------------------------------------------
	// (plane :width 8 :height 6 :cols 4 :rows 3 :color c)
	// -----------------------------------------------------------------------
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("plane", args)
		if err := pa.only("width", "height", "cols", "rows", "color"); err != nil {
			return zygo.SexpNull, err
		}
		w, err := pa.float("width")
		if err != nil {
			return zygo.SexpNull, err
		}
		h, err := pa.float("height")
		if err != nil {
			return zygo.SexpNull, err
		}
		cols, err := pa.countOr("cols", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		rows, err := pa.countOr("rows", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		p, err := pa.paint(kernel.Magenta, kernel.Magenta)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{data: graph.PlaneData{Width: w, Height: h, Cols: cols, Rows: rows, Paint: p}}, nil
	})

	// -----------------------------------------------------------------------
	// (terrain :width 100 :depth 100 :x-slices 64 :z-slices 64 :max-height 10 :relief "hills")
	// -----------------------------------------------------------------------
	env.AddFunction("terrain", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("terrain", args)
		if err := pa.only("width", "depth", "x-slices", "z-slices", "max-height", "relief"); err != nil {
			return zygo.SexpNull, err
		}
		w, err := pa.float("width")
		if err != nil {
			return zygo.SexpNull, err
		}
		d, err := pa.float("depth")
		if err != nil {
			return zygo.SexpNull, err
		}
		xs, err := pa.count("x-slices")
		if err != nil {
			return zygo.SexpNull, err
		}
		zs, err := pa.count("z-slices")
		if err != nil {
			return zygo.SexpNull, err
		}
		mh, err := pa.floatOr("max-height", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		relief, err := pa.stringOr("relief", "")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{data: graph.TerrainData{
			Width: w, Depth: d, XSlices: xs, ZSlices: zs,
			MaxHeight: mh, Relief: relief,
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (skybox :size 50 :color c)
	// -----------------------------------------------------------------------
	env.AddFunction("skybox", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("skybox", args)
		if err := pa.only("size", "color"); err != nil {
			return zygo.SexpNull, err
		}
		s, err := pa.float("size")
		if err != nil {
			return zygo.SexpNull, err
		}
		p, err := pa.paint(kernel.White, kernel.White)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpShape{data: graph.SkyboxData{Size: s, Paint: p}}, nil
	})

	// -----------------------------------------------------------------------
	// (defshape "name" (cone ...))
	// -----------------------------------------------------------------------
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defshape requires a name and a shape expression")
		}

		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		if shapeName == "" {
			return zygo.SexpNull, fmt.Errorf("defshape: name must not be empty")
		}
		if g.Lookup(shapeName) != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: %q is already defined", shapeName)
		}

		body, ok := args[1].(*sexpShape)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defshape: expected shape expression, got %T (%s)",
				args[1], args[1].SexpString(nil))
		}

		return b.addPrimitive("defshape/"+shapeName, shapeName, body.data), nil
	})

	// -----------------------------------------------------------------------
	// (shape "name")
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape requires a name argument")
		}

		shapeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: name: %w", err)
		}

		n := g.Lookup(shapeName)
		if n == nil || n.Kind != graph.NodePrimitive {
			return zygo.SexpNull, fmt.Errorf("shape: no shape named %q", shapeName)
		}

		return &sexpNodeRef{id: n.ID, name: shapeName}, nil
	})

	// -----------------------------------------------------------------------
	// (place (shape "spire") :at (vec3 -2 0 0) :rotate (vec3 0 45 0) :scale 2)
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("place", args)
		if err := pa.only("at", "rotate", "scale"); err != nil {
			return zygo.SexpNull, err
		}
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place requires exactly one shape reference, got %d", len(pa.positional))
		}

		child, err := b.toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}

		td := graph.TransformData{}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			td.Translation = &vec
		}
		if v, ok := pa.kw["rotate"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			td.Rotation = &vec
		}
		if _, ok := pa.kw["scale"]; ok {
			s, err := pa.float("scale")
			if err != nil {
				return zygo.SexpNull, err
			}
			td.Scale = &s
		}

		id := graph.NewNodeID(b.nextPath("place/" + refName(child)))
		g.AddNode(&graph.Node{
			ID:       id,
			Kind:     graph.NodeTransform,
			Children: []graph.NodeID{child.id},
			Data:     td,
		})

		return &sexpNodeRef{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (scene "name" (place ...) (shape "floor") (skybox :size 50) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("scene requires a name argument")
		}

		sceneName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scene: name: %w", err)
		}
		if g.Lookup(sceneName) != nil {
			return zygo.SexpNull, fmt.Errorf("scene: %q is already defined", sceneName)
		}

		var children []graph.NodeID
		for i := 1; i < len(args); i++ {
			ref, err := b.toNodeRef(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: child %d: %w", i, err)
			}
			children = append(children, ref.id)
		}

		id := graph.NewNodeID("scene/" + sceneName)
		g.AddNode(&graph.Node{
			ID:       id,
			Kind:     graph.NodeGroup,
			Name:     sceneName,
			Children: children,
			Data:     graph.GroupData{},
		})
		g.AddRoot(id)

		return &sexpNodeRef{id: id, name: sceneName}, nil
	})
}

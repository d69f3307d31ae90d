// Package engine provides the scene language evaluator for meshform.
// It wraps zygomys in a sandboxed environment and produces a SceneGraph
// from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/xcanals/meshform/pkg/graph"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for scene evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	gens generations

	timeout  time.Duration
	segments int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the hard limit for a single evaluation. Non-positive
// values keep EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithDefaultSegments sets the ring resolution used by cone and cylinder
// forms that omit :segments.
func WithDefaultSegments(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.segments = n
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		timeout:  EvalTimeout,
		segments: graph.DefaultSegments,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout returns the evaluation time limit.
func (e *Engine) Timeout() time.Duration {
	return e.timeout
}

// Evaluate takes scene source code and produces a new SceneGraph.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns graph + nil errors + nil error
//   - On parse/eval failure: returns nil graph + eval errors + nil error
//   - On fatal failure: returns nil + nil + error. Timeouts wrap
//     ErrTimeout; a call overtaken by a newer one gets ErrSuperseded.
func (e *Engine) Evaluate(source string) (*graph.SceneGraph, []EvalError, error) {
	gen := e.gens.next()
	return e.gens.run(gen, e.timeout, func() outcome {
		g, evalErrs, err := e.evaluate(source)
		return outcome{graph: g, errors: evalErrs, err: err}
	})
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*graph.SceneGraph, []EvalError, error) {
	g := graph.New()
	g.Defaults.Segments = e.segments

	// Empty source is a valid program that produces an empty graph.
	if strings.TrimSpace(source) == "" {
		return g, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, newSceneBuilder(g))

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	return g, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

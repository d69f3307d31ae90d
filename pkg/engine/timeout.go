package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/xcanals/meshform/pkg/graph"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when an evaluation runs past its limit. The
	// interpreter goroutine is left to finish and its result is dropped.
	ErrTimeout = errors.New("evaluation timed out")

	// ErrSuperseded is returned to callers whose evaluation completed after
	// a newer one had started.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// outcome carries what an evaluation goroutine produced.
type outcome struct {
	graph  *graph.SceneGraph
	errors []EvalError
	err    error
}

// generations numbers evaluations so that only the latest one may return
// a graph.
type generations struct {
	n atomic.Uint64
}

func (g *generations) next() uint64 {
	return g.n.Add(1)
}

func (g *generations) latest(gen uint64) bool {
	return g.n.Load() == gen
}

// run executes eval on its own goroutine as generation gen and waits at
// most timeout for it. A panic in eval is returned as an error.
func (g *generations) run(gen uint64, timeout time.Duration, eval func() outcome) (*graph.SceneGraph, []EvalError, error) {
	ch := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		ch <- eval()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if !g.latest(gen) {
			return nil, nil, ErrSuperseded
		}
		return res.graph, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}

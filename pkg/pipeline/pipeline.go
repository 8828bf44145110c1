package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// StepFunc is the work a step performs. The inputs map holds one entry
// per declared dependency, keyed by the producing step's name.
type StepFunc func(ctx context.Context, inputs map[string]any) (any, error)

type step struct {
	name     string
	deps     []string
	fn       StepFunc
	parallel bool
}

// Pipeline is a validated DAG of named steps
type Pipeline struct {
	steps  map[string]*step
	order  []string // registration order, used for deterministic scheduling
	logger zerolog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger attaches a logger; steps are logged as they start and finish
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// StepOption configures a single step
type StepOption func(*step)

// DependsOn declares the steps whose outputs this step consumes
func DependsOn(names ...string) StepOption {
	return func(s *step) { s.deps = append(s.deps, names...) }
}

// Parallel marks the step as safe to run concurrently with other ready
// parallel steps
func Parallel() StepOption {
	return func(s *step) { s.parallel = true }
}

// New creates an empty pipeline
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:  make(map[string]*step),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddStep registers a named step. Names must be unique and non-empty,
// and the function must not be nil.
func (p *Pipeline) AddStep(name string, fn StepFunc, opts ...StepOption) error {
	if name == "" {
		return fmt.Errorf("step name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("step %q has a nil function", name)
	}
	if _, exists := p.steps[name]; exists {
		return fmt.Errorf("duplicate step name %q", name)
	}

	s := &step{name: name, fn: fn}
	for _, opt := range opts {
		opt(s)
	}

	p.steps[name] = s
	p.order = append(p.order, name)
	return nil
}

// MustAddStep is AddStep that panics on error, for static graph setup
func (p *Pipeline) MustAddStep(name string, fn StepFunc, opts ...StepOption) {
	if err := p.AddStep(name, fn, opts...); err != nil {
		panic(err)
	}
}

// Validate checks the graph for unknown dependencies and cycles
func (p *Pipeline) Validate() error {
	for _, name := range p.order {
		for _, dep := range p.steps[name].deps {
			if _, exists := p.steps[dep]; !exists {
				return fmt.Errorf("step %q depends on unknown step %q", name, dep)
			}
		}
	}

	if _, err := p.levels(); err != nil {
		return err
	}
	return nil
}

// levels performs Kahn's algorithm, returning steps grouped by the wave
// in which they become ready
func (p *Pipeline) levels() ([][]string, error) {
	indegree := make(map[string]int, len(p.steps))
	dependents := make(map[string][]string, len(p.steps))

	for _, name := range p.order {
		indegree[name] = len(p.steps[name].deps)
		for _, dep := range p.steps[name].deps {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var waves [][]string
	remaining := len(p.steps)

	ready := make([]string, 0, len(p.steps))
	for _, name := range p.order {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	for len(ready) > 0 {
		waves = append(waves, ready)
		remaining -= len(ready)

		var next []string
		for _, done := range ready {
			for _, dep := range dependents[done] {
				indegree[dep]--
				if indegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		ready = next
	}

	if remaining > 0 {
		return nil, fmt.Errorf("pipeline contains a dependency cycle")
	}
	return waves, nil
}

// Run validates the graph, then executes every step in topological order.
// It returns the outputs of all steps keyed by step name. Within a wave,
// parallel-marked steps run concurrently and the rest run serially in
// registration order; the first error cancels the run.
func (p *Pipeline) Run(ctx context.Context) (map[string]any, error) {
	if len(p.steps) == 0 {
		return nil, fmt.Errorf("pipeline has no steps")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	waves, err := p.levels()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make(map[string]any, len(p.steps))

	for _, wave := range waves {
		var serial, concurrent []*step
		for _, name := range wave {
			s := p.steps[name]
			if s.parallel {
				concurrent = append(concurrent, s)
			} else {
				serial = append(serial, s)
			}
		}

		for _, s := range serial {
			out, err := p.runStep(ctx, s, p.gatherInputs(s, results))
			if err != nil {
				return nil, err
			}
			results[s.name] = out
		}

		if len(concurrent) > 0 {
			g, gctx := errgroup.WithContext(ctx)
			for _, s := range concurrent {
				// Inputs come from earlier waves, so snapshot them before
				// launching to keep the results map single-writer per wave
				inputs := p.gatherInputs(s, results)
				g.Go(func() error {
					out, err := p.runStep(gctx, s, inputs)
					if err != nil {
						return err
					}
					mu.Lock()
					results[s.name] = out
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}

func (p *Pipeline) gatherInputs(s *step, results map[string]any) map[string]any {
	inputs := make(map[string]any, len(s.deps))
	for _, dep := range s.deps {
		inputs[dep] = results[dep]
	}
	return inputs
}

func (p *Pipeline) runStep(ctx context.Context, s *step, inputs map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	p.logger.Debug().Str("step", s.name).Msg("step started")

	out, err := s.fn(ctx, inputs)
	if err != nil {
		p.logger.Error().Str("step", s.name).Dur("elapsed", time.Since(start)).Err(err).Msg("step failed")
		return nil, fmt.Errorf("step %q: %w", s.name, err)
	}

	p.logger.Debug().Str("step", s.name).Dur("elapsed", time.Since(start)).Msg("step finished")
	return out, nil
}

// Len returns the number of registered steps
func (p *Pipeline) Len() int {
	return len(p.steps)
}

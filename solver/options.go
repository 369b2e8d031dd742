package solver

import (
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/crillab/gophermdd/mdd"
)

// An Option configures a Solver.
type Option func(*Solver) error

// WithMaxWidth caps the width of the diagrams compiled at each iteration.
// A width <= 0 means diagrams are only bounded by the number of unbound variables.
func WithMaxWidth(width int) Option {
	return func(s *Solver) error {
		s.maxWidth = width
		return nil
	}
}

// WithTimeout sets the wall-clock budget of a search. A duration <= 0 means no budget.
func WithTimeout(d time.Duration) Option {
	return func(s *Solver) error {
		s.timeout = d
		return nil
	}
}

// WithFrontierOrder sets the order in which pending states are explored.
// Default is LeastPromisingFirst.
func WithFrontierOrder(order FrontierOrder) Option {
	return func(s *Solver) error {
		s.order = order
		return nil
	}
}

// WithLogger sets the logger of the solver and of its compiler. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Solver) error {
		s.logger = l
		return nil
	}
}

// WithVerbose logs every improvement of the incumbent at info level instead of debug level.
func WithVerbose(verbose bool) Option {
	return func(s *Solver) error {
		s.verbose = verbose
		return nil
	}
}

// WithMetrics publishes the progress of the search on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Solver) error {
		s.metrics = m
		return nil
	}
}

// WithTracer sets the tracer used for search and compilation spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

// WithHeuristics sets the heuristics used to compile diagrams.
// Nil heuristics keep their current value.
func WithHeuristics(merge mdd.MergeSelector, del mdd.DeleteSelector, vars mdd.VariableSelector) Option {
	return func(s *Solver) error {
		if merge != nil {
			s.merge = merge
		}
		if del != nil {
			s.del = del
		}
		if vars != nil {
			s.vars = vars
		}
		return nil
	}
}

// WithIncumbentHook calls f each time a better solution is found.
// f is called synchronously from the search loop.
func WithIncumbentHook(f func(Result)) Option {
	return func(s *Solver) error {
		s.hooks = append(s.hooks, f)
		return nil
	}
}

// WithConfig applies every setting of cfg. It fails if cfg is not valid.
func WithConfig(cfg Config) Option {
	return func(s *Solver) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		order, _ := ParseFrontierOrder(cfg.FrontierOrder)
		s.maxWidth = cfg.MaxWidth
		s.timeout = cfg.Timeout
		s.order = order
		s.verbose = cfg.Verbose
		s.merge, s.del, s.vars = cfg.heuristics(s.problem)
		return nil
	}
}

package solver

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/crillab/gophermdd/mdd"
)

const tracerName = "github.com/crillab/gophermdd/solver"

// A Solver finds the optimal solution of a problem by branch and bound over decision diagrams.
// A Solver is not safe for concurrent use, but distinct solvers can run concurrently.
type Solver struct {
	problem  mdd.Problem
	compiler *mdd.Compiler
	maxWidth int
	timeout  time.Duration
	order    FrontierOrder
	verbose  bool
	logger   logrus.FieldLogger
	metrics  *Metrics
	tracer   trace.Tracer
	merge    mdd.MergeSelector
	del      mdd.DeleteSelector
	vars     mdd.VariableSelector
	hooks    []func(Result)
}

// New returns a solver for pb.
// Unless configured otherwise, diagrams are only bounded by the number of unbound variables,
// there is no time budget, and the least promising states are explored first.
func New(pb mdd.Problem, opts ...Option) (*Solver, error) {
	s := &Solver{problem: pb, order: LeastPromisingFirst}
	s.merge, s.del, s.vars = DefaultConfig().heuristics(pb)
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.logger = l
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	s.compiler = mdd.NewCompiler(pb,
		mdd.WithMergeSelector(s.merge),
		mdd.WithDeleteSelector(s.del),
		mdd.WithVariableSelector(s.vars),
		mdd.WithLogger(s.logger),
		mdd.WithTracer(s.tracer),
	)
	return s, nil
}

// width returns the width of the diagrams rooted at root.
func (s *Solver) width(root *mdd.State) int {
	w := s.problem.NbVars() - root.LayerNumber()
	if s.maxWidth > 0 && s.maxWidth < w {
		w = s.maxWidth
	}
	if w < 1 {
		w = 1
	}
	return w
}

// search is the state of one call to Solve.
type search struct {
	*Solver
	logger logrus.FieldLogger
	span   trace.Span
	stats  Stats
	best   *mdd.State
	bound  float64 // Value of best, or -Inf
}

func (sr *search) result(status Status) Result {
	res := Result{Status: status, Best: sr.best, Stats: sr.stats}
	if sr.best != nil {
		res.Value = sr.best.Value()
		res.Assignment = sr.best.Assignment()
	}
	return res
}

// improve makes cand the incumbent if it is better than the current one.
func (sr *search) improve(cand *mdd.State) {
	if cand == nil || cand.Value() <= sr.bound {
		return
	}
	sr.best = cand
	sr.bound = cand.Value()
	sr.stats.NbImprovements++
	sr.metrics.observeIncumbent(sr.bound)
	sr.span.AddEvent("incumbent", trace.WithAttributes(attribute.Float64("value", sr.bound)))
	entry := sr.logger.WithField("value", sr.bound)
	if sr.verbose {
		entry.Info("improved solution")
	} else {
		entry.Debug("improved solution")
	}
	for _, hook := range sr.hooks {
		hook(sr.result(Feasible))
	}
}

// Solve searches for an optimal solution until the search space is exhausted,
// the configured timeout expires or ctx is done.
// Running out of time is not an error: the best solution found so far is returned with the Feasible status.
// An error means the problem or one of the heuristics broke its contract.
func (s *Solver) Solve(ctx context.Context) (res Result, err error) {
	runID := uuid.NewString()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ctx, span := s.tracer.Start(ctx, "solver.solve", trace.WithAttributes(
		attribute.String("run.id", runID),
		attribute.Int("problem.vars", s.problem.NbVars()),
		attribute.Int("solver.max_width", s.maxWidth),
		attribute.String("solver.frontier_order", s.order.String()),
	))
	sr := &search{
		Solver: s,
		logger: s.logger.WithField("run", runID),
		span:   span,
		bound:  math.Inf(-1),
	}
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(
				attribute.String("solver.status", res.Status.String()),
				attribute.Int("solver.iterations", res.Stats.NbIterations),
			)
		}
		span.End()
	}()

	q := newFrontier(s.order)
	q.push(s.problem.Root())
	sr.stats.MaxFrontier = 1
	for !q.empty() {
		root := q.pop()
		s.metrics.observeFrontier(q.len())
		sr.stats.NbIterations++
		if root.RelaxedValue() <= sr.bound {
			sr.stats.NbPruned++
			s.metrics.observePruned()
			continue
		}
		width := s.width(root)
		restricted, err := s.compiler.Restricted(ctx, root, width)
		if err != nil {
			return sr.result(Indeterminate), errors.Wrapf(err, "could not compile restricted diagram at layer %d", root.LayerNumber())
		}
		sr.stats.NbRestricted++
		s.metrics.observeCompilation(restricted)
		sr.improve(restricted.Best)
		if ctx.Err() != nil {
			return sr.interrupted(q), nil
		}
		if restricted.Exact {
			continue
		}
		relaxed, err := s.compiler.Relaxed(ctx, root, width)
		if err != nil {
			return sr.result(Indeterminate), errors.Wrapf(err, "could not compile relaxed diagram at layer %d", root.LayerNumber())
		}
		sr.stats.NbRelaxed++
		s.metrics.observeCompilation(relaxed)
		sr.improve(relaxed.ExactBest)
		if bound, ok := relaxed.Value(); ok && bound > sr.bound {
			for _, st := range relaxed.Cutset {
				q.push(st)
			}
			sr.stats.NbCutsetStates += len(relaxed.Cutset)
			s.metrics.observeCutset(len(relaxed.Cutset))
			s.metrics.observeFrontier(q.len())
			if q.len() > sr.stats.MaxFrontier {
				sr.stats.MaxFrontier = q.len()
			}
			sr.logger.WithFields(logrus.Fields{
				"layer":    root.LayerNumber(),
				"width":    width,
				"bound":    bound,
				"frontier": q.len(),
			}).Debug("pushed cutset")
		}
		if ctx.Err() != nil {
			return sr.interrupted(q), nil
		}
	}
	if sr.best == nil {
		sr.logger.Info("no solution found")
		return sr.result(Infeasible), nil
	}
	sr.logger.WithField("value", sr.bound).Info("search completed")
	return sr.result(Optimal), nil
}

func (sr *search) interrupted(q *frontier) Result {
	sr.logger.WithFields(logrus.Fields{"frontier": q.len(), "value": sr.bound}).Info("search interrupted")
	if sr.best == nil {
		return sr.result(Indeterminate)
	}
	return sr.result(Feasible)
}

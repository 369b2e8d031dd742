package mdd

import (
	"context"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Unbounded is a width no layer can exceed: diagrams compiled with it are exact.
const Unbounded = math.MaxInt

const tracerName = "github.com/crillab/gophermdd/mdd"

// Kind is the kind of diagram a compilation produces.
type Kind byte

const (
	// Restriction drops states from layers that are too wide: it yields feasible solutions.
	Restriction = Kind(iota)
	// Relaxation merges states from layers that are too wide: it yields upper bounds.
	Relaxation
)

func (k Kind) String() string {
	switch k {
	case Restriction:
		return "restricted"
	case Relaxation:
		return "relaxed"
	default:
		panic("invalid diagram kind")
	}
}

// DiagramStats are statistics about one compilation.
type DiagramStats struct {
	NbLayers      int // How many layers were built
	NbNodes       int // How many nodes were created
	MaxLayerWidth int // Width of the widest layer before it was truncated
	NbMerged      int // How many states were merged
	NbDeleted     int // How many states were dropped
}

// A Diagram is the outcome of a compilation.
type Diagram struct {
	Kind  Kind
	Width int
	// Best is the terminal state with the highest value, or nil if no terminal state was reached.
	// In a relaxed diagram its value is an upper bound, and its assignment may not be feasible.
	Best *State
	// ExactBest is the best terminal state reached through exact nodes only.
	// Its assignment is always feasible.
	ExactBest *State
	// Exact is true iff no layer was truncated: Best is then the optimum below the root.
	Exact bool
	// Complete is false if the compilation was interrupted before reaching the last layer.
	Complete bool
	// Cutset holds the exact nodes whose paths were approximated by merged nodes.
	// Their relaxed value is the value of Best. Only relaxed diagrams have a cutset.
	Cutset []*State
	Stats  DiagramStats
}

// Value returns the value of the best terminal state, if any.
func (d *Diagram) Value() (float64, bool) {
	if d.Best == nil {
		return 0, false
	}
	return d.Best.value, true
}

// A Compiler builds width-bounded decision diagrams for a problem.
// A Compiler is not safe for concurrent use.
type Compiler struct {
	problem Problem
	merge   MergeSelector
	del     DeleteSelector
	vars    VariableSelector
	logger  logrus.FieldLogger
	tracer  trace.Tracer
}

// An Option configures a Compiler.
type Option func(*Compiler)

// WithMergeSelector sets the heuristic choosing states to merge. Default is MinLPMergeSelector.
func WithMergeSelector(m MergeSelector) Option {
	return func(c *Compiler) { c.merge = m }
}

// WithDeleteSelector sets the heuristic choosing states to drop. Default is MinLPDeleteSelector.
func WithDeleteSelector(d DeleteSelector) Option {
	return func(c *Compiler) { c.del = d }
}

// WithVariableSelector sets the branching heuristic. Default is SimpleVariableSelector.
func WithVariableSelector(v VariableSelector) Option {
	return func(c *Compiler) { c.vars = v }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Compiler) { c.logger = l }
}

// WithTracer sets the tracer used for compilation spans. Default is the global tracer provider's.
func WithTracer(t trace.Tracer) Option {
	return func(c *Compiler) { c.tracer = t }
}

// NewCompiler returns a compiler for pb.
func NewCompiler(pb Problem, opts ...Option) *Compiler {
	c := &Compiler{
		problem: pb,
		merge:   MinLPMergeSelector{},
		del:     MinLPDeleteSelector{},
		vars:    SimpleVariableSelector{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.logger = l
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// Restricted compiles a diagram rooted at root whose layers hold at most width states,
// dropping the states in excess. Its best state, if any, is a feasible solution.
func (c *Compiler) Restricted(ctx context.Context, root *State, width int) (*Diagram, error) {
	return c.compile(ctx, root, width, Restriction)
}

// Relaxed compiles a diagram rooted at root whose layers hold at most width states,
// merging the states in excess. Its best value is an upper bound on the optimum below root.
func (c *Compiler) Relaxed(ctx context.Context, root *State, width int) (*Diagram, error) {
	return c.compile(ctx, root, width, Relaxation)
}

// Exact compiles the whole diagram rooted at root.
func (c *Compiler) Exact(ctx context.Context, root *State) (*Diagram, error) {
	return c.compile(ctx, root, Unbounded, Restriction)
}

// A width <= 0 is considered unbounded.
// Cancelling ctx stops the compilation at the next layer; the diagram is then incomplete.
func (c *Compiler) compile(ctx context.Context, root *State, width int, kind Kind) (d *Diagram, err error) {
	if width <= 0 {
		width = Unbounded
	}
	ctx, span := c.tracer.Start(ctx, "mdd.compile", trace.WithAttributes(
		attribute.String("mdd.kind", kind.String()),
		attribute.Int("mdd.width", width),
		attribute.Int("mdd.root_layer", root.layer),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(
				attribute.Bool("mdd.exact", d.Exact),
				attribute.Bool("mdd.complete", d.Complete),
				attribute.Int("mdd.layers", d.Stats.NbLayers),
				attribute.Int("mdd.nodes", d.Stats.NbNodes),
				attribute.Int("mdd.cutset", len(d.Cutset)),
			)
		}
		span.End()
	}()

	var a arena
	d = &Diagram{Kind: kind, Width: width, Exact: true}
	layer := newArenaLayer(root.layer, &a)
	// root may be shared with other compilations: only its copy joins the arena.
	start := *root
	a.register(&start)
	layer.Add(&start)
	nbVars := c.problem.NbVars()
	for layer.depth < nbVars && layer.Width() > 0 {
		if ctx.Err() != nil {
			d.Exact = false
			d.Stats.NbNodes = len(a.nodes)
			c.logger.WithFields(logrus.Fields{"kind": kind, "layer": layer.depth}).Debug("compilation interrupted")
			return d, nil
		}
		v, err := c.selectVariable(layer)
		if err != nil {
			return nil, err
		}
		next := newArenaLayer(layer.depth+1, &a)
		for _, s := range layer.states {
			if err := c.expand(s, v, next); err != nil {
				return nil, err
			}
		}
		d.Stats.NbLayers++
		if next.Width() > d.Stats.MaxLayerWidth {
			d.Stats.MaxLayerWidth = next.Width()
		}
		if next.Width() > width {
			c.logger.WithFields(logrus.Fields{
				"kind":  kind,
				"layer": next.depth,
				"size":  next.Width(),
				"width": width,
			}).Debug("truncating layer")
			d.Exact = false
			if kind == Restriction {
				err = c.restrict(next, width, d)
			} else {
				err = c.relax(next, width, d)
			}
			if err != nil {
				return nil, err
			}
		}
		layer = next
	}
	d.Complete = true
	d.Stats.NbNodes = len(a.nodes)
	d.Best = layer.Best()
	for _, s := range layer.states {
		if s.exact && (d.ExactBest == nil || s.value > d.ExactBest.value) {
			d.ExactBest = s
		}
	}
	if kind == Relaxation && !d.Exact && d.Best != nil {
		d.Cutset = extractCutset(layer, &a, d.Best.value)
	}
	return d, nil
}

// selectVariable asks the variable selector for the next variable to branch on and checks its answer.
func (c *Compiler) selectVariable(layer *Layer) (Variable, error) {
	vars := layer.states[0].vars
	v, ok := c.vars.Select(vars, layer)
	if !ok {
		return v, errors.Wrapf(ErrInvalidSelection, "no variable selected at layer %d", layer.depth)
	}
	if v.ID < 0 || v.ID >= len(vars) {
		return v, errors.Wrapf(ErrInvalidSelection, "unknown variable %d selected at layer %d", v.ID, layer.depth)
	}
	if vars[v.ID].Bound() {
		return v, errors.Wrapf(ErrInvalidSelection, "variable %d selected at layer %d is already bound", v.ID, layer.depth)
	}
	return vars[v.ID], nil
}

// expand adds the successors of s through v to next.
// Successors inherit the exactness and the exact parents of s.
func (c *Compiler) expand(s *State, v Variable, next *Layer) error {
	succs, err := c.problem.Successors(s, v)
	if err != nil {
		return errors.Wrapf(err, "could not expand %v on variable %d", s, v.ID)
	}
	for _, succ := range succs {
		if succ.layer != s.layer+1 || !succ.vars[v.ID].Bound() {
			return errors.Wrapf(ErrInvalidSuccessor, "successor %v of %v does not bind variable %d", succ, s, v.ID)
		}
		succ.exact = s.exact
		succ.parents = s.parents
		succ.relaxedValue = succ.value
		next.arena.register(succ)
		next.Add(succ)
	}
	return nil
}

// restrict drops states from l until it holds width states.
func (c *Compiler) restrict(l *Layer, width int, d *Diagram) error {
	n := l.Width() - width
	victims := c.del.Select(l, n)
	l.Remove(victims...)
	if l.Width() != width {
		return errors.Wrapf(ErrInvalidSelection, "delete selector returned %d states out of %d requested", len(victims), n)
	}
	d.Stats.NbDeleted += n
	return nil
}

// relax merges states of l until it holds at most width states.
// The merged node stands for the exact nodes it replaces.
func (c *Compiler) relax(l *Layer, width int, d *Diagram) error {
	n := l.Width() - width + 1
	selected := c.merge.Select(l, n)
	l.Remove(selected...)
	if l.Width() != width-1 || len(selected) != n {
		return errors.Wrapf(ErrInvalidSelection, "merge selector returned %d states out of %d requested", len(selected), n)
	}
	merged := c.problem.Merge(selected)
	if merged.layer != l.depth {
		return errors.Wrapf(ErrInvalidSuccessor, "merged state %v is not at layer %d", merged, l.depth)
	}
	var refs []nodeRef
	for _, s := range selected {
		if s.value > merged.value {
			merged.value = s.value
		}
		refs = unionRefs(refs, s.exactRefs())
	}
	merged.relaxedValue = merged.value
	merged.exact = false
	merged.parents = refs
	l.arena.register(merged)
	l.Add(merged)
	d.Stats.NbMerged += n
	return nil
}

// extractCutset returns the exact nodes referenced by the inexact nodes of the terminal layer,
// tagged with the bound of the diagram.
func extractCutset(terminal *Layer, a *arena, bound float64) []*State {
	var refs []nodeRef
	for _, s := range terminal.states {
		if !s.exact {
			refs = unionRefs(refs, s.parents)
		}
	}
	cutset := a.resolve(refs)
	for _, s := range cutset {
		s.ref = noRef
		s.parents = nil
		s.SetRelaxedValue(bound)
	}
	return cutset
}

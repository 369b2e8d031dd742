/*
Package solver finds optimal solutions of problems described as mdd.Problem,
by branch and bound over decision diagrams.

# Searching

At each iteration, the solver pops a state from its frontier and compiles a restricted diagram
rooted there, whose best state, if any, is a feasible solution. If that diagram was not exact,
it then compiles a relaxed diagram from the same state: its value is an upper bound on every
solution below the state, and the exact cutset of that diagram is pushed back to the frontier,
tagged with the bound. States whose bound cannot beat the best solution found so far are pruned.

	s, err := solver.New(pb, solver.WithMaxWidth(100), solver.WithTimeout(time.Minute))
	if err != nil {
	    return err
	}
	res, err := s.Solve(ctx)

If the frontier is exhausted, res.Status is Optimal, or Infeasible if the problem has no solution.
If the timeout expired first, res.Status is Feasible with the best solution found so far,
or Indeterminate if there is none.

# Configuration

Settings can also be read from a YAML file:

	max_width: 100
	timeout: 1m
	frontier_order: most-promising-first

and applied with WithConfig.
*/
package solver

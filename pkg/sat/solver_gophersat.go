package sat

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
)

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process solver backed by gophersat.
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (gophersatSolver) Solve(constraints *ConstraintSet) (Solution, error) {
	if constraints.Unsatisfiable {
		return nil, nil
	}
	if len(constraints.XorClauses) > 0 {
		return nil, fmt.Errorf("gophersat cannot handle parity constraints: convert them to CNF first")
	}

	problem := solver.ParseSlice(constraints.Clauses)
	engine := solver.New(problem)
	if engine.Solve() != solver.Sat {
		return nil, nil
	}

	// The model is indexed from 0 while clause variables start at 1; it may
	// also be shorter than the variable pool when trailing ids never occur.
	solution := make(Solution, constraints.Variables)
	copy(solution, engine.Model())
	return solution, nil
}

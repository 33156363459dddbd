package sat

import (
	"fmt"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

type giniSolver struct{}

// NewGiniSolver returns an in-process solver backed by gini.
func NewGiniSolver() Solver {
	return &giniSolver{}
}

func (giniSolver) Solve(constraints *ConstraintSet) (Solution, error) {
	if constraints.Unsatisfiable {
		return nil, nil
	}
	if len(constraints.XorClauses) > 0 {
		return nil, fmt.Errorf("gini cannot handle parity constraints: convert them to CNF first")
	}

	engine := gini.NewV(constraints.Variables)
	for _, clause := range constraints.Clauses {
		for _, literal := range clause {
			if literal > 0 {
				engine.Add(z.Var(literal).Pos())
			} else {
				engine.Add(z.Var(-literal).Neg())
			}
		}
		engine.Add(0)
	}

	if engine.Solve() != 1 {
		return nil, nil
	}

	solution := make(Solution, constraints.Variables)
	for id := 1; id <= constraints.Variables; id++ {
		solution[id-1] = engine.Value(z.Var(id).Pos())
	}
	return solution, nil
}

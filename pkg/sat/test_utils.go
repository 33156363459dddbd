package sat

import "math/rand"

// GenerateInstance builds a random CNF constraint set for solver tests.
func GenerateInstance(variables int, clauses int) *ConstraintSet {
	constraints := &ConstraintSet{Variables: variables}

	for i := 0; i < clauses; i++ {
		clause := make([]int, 0, variables)
		for v := 1; v <= variables; v++ {
			if rand.Float32() < 0.5 {
				sign := 1
				if rand.Float32() < 0.5 {
					sign = -1
				}
				clause = append(clause, sign*v)
			}
		}

		if len(clause) == 0 {
			sign := 1
			if rand.Float32() < 0.5 {
				sign = -1
			}
			clause = append(clause, sign*(1+rand.Intn(variables)))
		}

		constraints.AddClause(clause)
	}

	return constraints
}

// AssertSolution reports whether the solution satisfies every plain clause
// of the constraint set.
func AssertSolution(constraints *ConstraintSet, solution Solution) bool {
	for _, clause := range constraints.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literal > 0 && solution.Var(literal) || literal < 0 && !solution.Var(-literal) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

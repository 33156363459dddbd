package sat

// Solution is a satisfying assignment addressed by variable id (ids start
// at 1, the underlying array at 0).
type Solution []bool

func (solution Solution) Var(id int) bool {
	return solution[id-1]
}

// Solver is any engine deciding a ConstraintSet. A nil Solution means the
// set is unsatisfiable; a non-nil error means the backend itself failed
// (these are distinct outcomes where the other value shall be nil).
type Solver interface {
	Solve(*ConstraintSet) (Solution, error)
}

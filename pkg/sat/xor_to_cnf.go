package sat

// XorToCNF rewrites the remaining XOR constraints into plain clauses,
// chaining fresh auxiliary variables from the shared allocator. The XOR
// sub-system is cleared afterwards.
type XorToCNF struct {
	Allocator *VarAllocator
}

func NewXorToCNF(allocator *VarAllocator) XorToCNF {
	return XorToCNF{Allocator: allocator}
}

func (converter XorToCNF) Apply(constraints *ConstraintSet) {
	for _, clause := range constraints.XorClauses {
		converter.convert(constraints, clause)
	}
	constraints.XorClauses = nil
}

func (converter XorToCNF) convert(constraints *ConstraintSet, clause XorClause) {
	switch len(clause.Vars) {
	case 0:
		if clause.Rhs {
			constraints.Unsatisfiable = true
		}
		return
	case 1:
		v := clause.Vars[0]
		if clause.Rhs {
			constraints.AddClause([]int{v})
		} else {
			constraints.AddClause([]int{-v})
		}
		return
	}

	// Ladder decomposition: each auxiliary t is defined as t <-> current ^ v,
	// and the chain is closed with the two clauses of current ^ last = rhs.
	current := clause.Vars[0]
	for _, v := range clause.Vars[1 : len(clause.Vars)-1] {
		auxiliary := converter.Allocator.Fresh()
		constraints.AddClause([]int{-auxiliary, current, v})
		constraints.AddClause([]int{-auxiliary, -current, -v})
		constraints.AddClause([]int{auxiliary, -current, v})
		constraints.AddClause([]int{auxiliary, current, -v})
		current = auxiliary
	}

	last := clause.Vars[len(clause.Vars)-1]
	if clause.Rhs {
		constraints.AddClause([]int{current, last})
		constraints.AddClause([]int{-current, -last})
	} else {
		constraints.AddClause([]int{current, -last})
		constraints.AddClause([]int{-current, last})
	}
}

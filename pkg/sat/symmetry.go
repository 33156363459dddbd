package sat

// SymmetryBreaker appends clauses forcing the literal-indicator vectors of
// adjacent candidate terms into lexicographic non-decreasing order. Any
// term multiset can be arranged to satisfy the ordering, so no cover is
// lost; the pruning is partial and exhaustive enumeration still relies on
// blocking clauses.
type SymmetryBreaker struct {
	NumVars   int
	Terms     int
	Allocator *VarAllocator
}

func NewSymmetryBreaker(numVars, terms int, allocator *VarAllocator) SymmetryBreaker {
	return SymmetryBreaker{NumVars: numVars, Terms: terms, Allocator: allocator}
}

func (breaker SymmetryBreaker) Apply(constraints *ConstraintSet) {
	for j := 0; j+1 < breaker.Terms; j++ {
		breaker.orderTerms(constraints, j, j+1)
	}
}

// termVector lists the positive indicators followed by the negative
// indicators of term j, matching the encoder's id layout.
func (breaker SymmetryBreaker) termVector(j int) []int {
	vector := make([]int, 0, 2*breaker.NumVars)
	for l := 0; l < breaker.NumVars; l++ {
		vector = append(vector, 1+breaker.NumVars*j+l)
	}
	for l := 0; l < breaker.NumVars; l++ {
		vector = append(vector, 1+breaker.NumVars*breaker.Terms+breaker.NumVars*j+l)
	}
	return vector
}

// orderTerms encodes a <=lex b over the two term vectors with
// prefix-equality auxiliaries: e_i <-> e_(i-1) & (a_i <-> b_i), and a true
// prefix equality forces the next bit pair into order.
func (breaker SymmetryBreaker) orderTerms(constraints *ConstraintSet, first, second int) {
	a := breaker.termVector(first)
	b := breaker.termVector(second)
	if len(a) == 0 {
		return
	}

	constraints.AddClause([]int{-a[0], b[0]})

	equal := 0
	for i := 0; i+1 < len(a); i++ {
		e := breaker.Allocator.Fresh()
		if equal == 0 {
			constraints.AddClause([]int{-e, -a[i], b[i]})
			constraints.AddClause([]int{-e, a[i], -b[i]})
			constraints.AddClause([]int{e, -a[i], -b[i]})
			constraints.AddClause([]int{e, a[i], b[i]})
		} else {
			constraints.AddClause([]int{-e, equal})
			constraints.AddClause([]int{-e, -a[i], b[i]})
			constraints.AddClause([]int{-e, a[i], -b[i]})
			constraints.AddClause([]int{e, -equal, -a[i], -b[i]})
			constraints.AddClause([]int{e, -equal, a[i], b[i]})
		}
		constraints.AddClause([]int{-e, -a[i+1], b[i+1]})
		equal = e
	}
}

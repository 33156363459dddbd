package sat

import (
	"fmt"
	"io"
	"strings"
)

// XorClause is a parity constraint: the variables must XOR to Rhs.
type XorClause struct {
	Vars []int
	Rhs  bool
}

// ConstraintSet accumulates plain CNF clauses and XOR constraints over
// variables numbered from 1. It grows monotonically during encoding and is
// mutated in place by the preprocessing stages.
type ConstraintSet struct {
	Variables  int
	Clauses    [][]int
	XorClauses []XorClause

	// Unsatisfiable is set when a preprocessing stage derives a contradiction,
	// so solvers can answer without searching.
	Unsatisfiable bool
}

func (constraints *ConstraintSet) AddClause(literals []int) {
	for _, literal := range literals {
		constraints.observe(literal)
	}
	constraints.Clauses = append(constraints.Clauses, literals)
}

func (constraints *ConstraintSet) AddXorClause(vars []int, rhs bool) {
	for _, v := range vars {
		constraints.observe(v)
	}
	constraints.XorClauses = append(constraints.XorClauses, XorClause{Vars: vars, Rhs: rhs})
}

func (constraints *ConstraintSet) observe(literal int) {
	variable := literal
	if variable < 0 {
		variable = -variable
	}
	if variable > constraints.Variables {
		constraints.Variables = variable
	}
}

func (constraints *ConstraintSet) ToDIMACS() string {
	var builder strings.Builder
	_ = constraints.WriteCNF(&builder)
	return builder.String()
}

// WriteCNF streams the constraint set in DIMACS-CNF format. Remaining XOR
// constraints are written as "x"-prefixed lines (cryptominisat extension),
// with the first literal negated when the target parity is even.
func (constraints *ConstraintSet) WriteCNF(writer io.Writer) error {
	_, err := fmt.Fprintf(writer, "p cnf %d %d\n", constraints.Variables, len(constraints.Clauses)+len(constraints.XorClauses))
	if err != nil {
		return err
	}
	for _, clause := range constraints.Clauses {
		for _, literal := range clause {
			if _, err := fmt.Fprintf(writer, "%d ", literal); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(writer, "0\n"); err != nil {
			return err
		}
	}
	for _, xor := range constraints.XorClauses {
		if len(xor.Vars) == 0 {
			continue
		}
		if _, err := io.WriteString(writer, "x"); err != nil {
			return err
		}
		for i, v := range xor.Vars {
			if i == 0 && !xor.Rhs {
				v = -v
			}
			if _, err := fmt.Fprintf(writer, "%d ", v); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(writer, "0\n"); err != nil {
			return err
		}
	}
	return nil
}

// VarAllocator hands out fresh variable ids. The encoder, the XOR-to-CNF
// converter and the symmetry breaker share one allocator per synthesis
// attempt so no two conceptually distinct variables ever alias the same id.
type VarAllocator struct {
	next int
}

func NewVarAllocator(first int) *VarAllocator {
	return &VarAllocator{next: first}
}

func (allocator *VarAllocator) Fresh() int {
	id := allocator.next
	allocator.next++
	return id
}

// Next returns the id the next call to Fresh will hand out.
func (allocator *VarAllocator) Next() int {
	return allocator.next
}

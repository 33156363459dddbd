package sat

import (
	"slices"

	"github.com/samber/lo"
)

// GaussEliminator reduces a constraint set's XOR sub-system in place by
// forward elimination over variable pivots. Rows that reduce to 0 = 0 are
// dropped; a row reducing to 0 = 1 marks the whole set unsatisfiable.
type GaussEliminator struct{}

func NewGaussEliminator() GaussEliminator {
	return GaussEliminator{}
}

func (GaussEliminator) Apply(constraints *ConstraintSet) {
	rows := lo.Map(constraints.XorClauses, func(clause XorClause, _ int) *xorRow {
		return newXorRow(clause)
	})

	for i := range rows {
		pivot, ok := rows[i].minVar()
		if !ok {
			continue
		}
		for j := i + 1; j < len(rows); j++ {
			if rows[j].contains(pivot) {
				rows[j].xor(rows[i])
			}
		}
	}

	reduced := make([]XorClause, 0, len(rows))
	for _, row := range rows {
		if row.empty() {
			if row.rhs {
				constraints.Unsatisfiable = true
			}
			continue
		}
		reduced = append(reduced, row.toClause())
	}
	constraints.XorClauses = reduced
}

type xorRow struct {
	vars map[int]struct{}
	rhs  bool
}

func newXorRow(clause XorClause) *xorRow {
	row := &xorRow{vars: make(map[int]struct{}, len(clause.Vars)), rhs: clause.Rhs}
	for _, v := range clause.Vars {
		// a variable occurring twice in one constraint cancels out
		if _, ok := row.vars[v]; ok {
			delete(row.vars, v)
		} else {
			row.vars[v] = struct{}{}
		}
	}
	return row
}

func (row *xorRow) contains(v int) bool {
	_, ok := row.vars[v]
	return ok
}

func (row *xorRow) empty() bool {
	return len(row.vars) == 0
}

func (row *xorRow) minVar() (int, bool) {
	if row.empty() {
		return 0, false
	}
	minimum := 0
	for v := range row.vars {
		if minimum == 0 || v < minimum {
			minimum = v
		}
	}
	return minimum, true
}

// xor replaces the row with the symmetric difference of both rows, the
// row-combination step of Gauss elimination over GF(2).
func (row *xorRow) xor(other *xorRow) {
	for v := range other.vars {
		if row.contains(v) {
			delete(row.vars, v)
		} else {
			row.vars[v] = struct{}{}
		}
	}
	row.rhs = row.rhs != other.rhs
}

func (row *xorRow) toClause() XorClause {
	vars := lo.Keys(row.vars)
	slices.Sort(vars)
	return XorClause{Vars: vars, Rhs: row.rhs}
}

package esop

import (
	"fmt"
	"math/bits"
	"os"
	"slices"

	"github.com/sirupsen/logrus"

	"esopsynth/pkg/sat"
)

// Synthesizer computes exact minimum-term ESOP covers of a Boolean function
// by bounded SAT synthesis: for growing term counts k it builds a CNF+XOR
// system whose satisfying assignments are exactly the covers using at most
// k terms, and accepts the first k that admits any.
type Synthesizer struct {
	solver sat.Solver
	config Config
}

func NewSynthesizer(solver sat.Solver, options map[string]any) (*Synthesizer, error) {
	config, err := DecodeConfig(options)
	if err != nil {
		return nil, fmt.Errorf("cannot decode synthesis options: %w", err)
	}
	if config.MaximumCubes < 1 {
		return nil, fmt.Errorf("maximum_cubes must be positive: %v", config.MaximumCubes)
	}
	return &Synthesizer{solver: solver, config: config}, nil
}

// SynthesizeFromBinaryString computes ESOP covers of the function given as
// a truth-table bit string: character i is the function value on the
// assignment with binary encoding i, and any character other than '0' and
// '1' is a don't-care. In single-result mode the returned collection holds
// one cover; in enumeration mode it holds every structurally distinct cover
// of minimal size. An empty collection means no cover exists within the
// configured cube bound.
func (synthesizer *Synthesizer) SynthesizeFromBinaryString(binary string) (Esops, error) {
	numVars, err := tableVars(binary)
	if err != nil {
		return nil, err
	}

	var esops Esops
	for k := 1; k <= synthesizer.config.MaximumCubes; k++ {
		logrus.Debugf("bounded synthesis for k = %v", k)

		constraints, allocator := encode(binary, numVars, k)

		sat.NewGaussEliminator().Apply(constraints)
		sat.NewXorToCNF(allocator).Apply(constraints)
		sat.NewSymmetryBreaker(numVars, k, allocator).Apply(constraints)

		if synthesizer.config.DumpCNF {
			dumpCNF(constraints, binary, k)
		}

		for {
			solution, err := synthesizer.solver.Solve(constraints)
			if err != nil {
				return nil, fmt.Errorf("solver failed for k = %v: %w", k, err)
			}
			if solution == nil {
				break
			}

			cover := extract(solution, numVars, k)

			// The empty cover is the constant-0 function; no smaller cover
			// exists, so enumeration ends here.
			if len(cover) == 0 {
				return Esops{cover}, nil
			}
			if synthesizer.config.OneEsop {
				return Esops{cover}, nil
			}

			slices.SortFunc(cover, CompareCubes)
			esops = append(esops, cover)

			blockPermutations(constraints, solution, numVars, k)
		}

		if len(esops) > 0 {
			break
		}
	}

	return esops, nil
}

func tableVars(binary string) (int, error) {
	length := len(binary)
	if length == 0 || length&(length-1) != 0 {
		return 0, fmt.Errorf("table length is not a power of 2: %v", length)
	}
	numVars := bits.TrailingZeros(uint(length))
	if numVars > MaxVars {
		return 0, fmt.Errorf("cube representation cannot store more than %v variables: %v", MaxVars, numVars)
	}
	return numVars, nil
}

// pVar and qVar index the positive and negative literal indicators of term
// j on variable l. Both indicators set means the term is void. Ids start at
// 1: the p block first, then the q block, then the allocator's range.
func pVar(numVars, j, l int) int {
	return 1 + numVars*j + l
}

func qVar(numVars, k, j, l int) int {
	return 1 + numVars*k + numVars*j + l
}

// encode builds the constraint system whose satisfying assignments are
// exactly the ESOP covers of the table using at most k terms. Don't-care
// rows impose no constraint.
func encode(binary string, numVars, k int) (*sat.ConstraintSet, *sat.VarAllocator) {
	constraints := &sat.ConstraintSet{Variables: 2 * numVars * k}
	allocator := sat.NewVarAllocator(1 + 2*numVars*k)

	for row := 0; row < len(binary); row++ {
		if binary[row] != '0' && binary[row] != '1' {
			continue
		}

		zVars := make([]int, k)
		for j := range zVars {
			zVars[j] = allocator.Fresh()
		}

		// an asserted coverage variable disqualifies conflicting literals
		for j := 0; j < k; j++ {
			z := zVars[j]
			for l := 0; l < numVars; l++ {
				if row&(1<<l) != 0 {
					constraints.AddClause([]int{-z, -qVar(numVars, k, j, l)})
				} else {
					constraints.AddClause([]int{-z, -pVar(numVars, j, l)})
				}
			}
		}

		// a pattern compatible with the row must assert its coverage variable
		for j := 0; j < k; j++ {
			clause := make([]int, 0, 1+numVars)
			clause = append(clause, zVars[j])
			for l := 0; l < numVars; l++ {
				if row&(1<<l) != 0 {
					clause = append(clause, qVar(numVars, k, j, l))
				} else {
					clause = append(clause, pVar(numVars, j, l))
				}
			}
			constraints.AddClause(clause)
		}

		// the ESOP-value equation for the row
		constraints.AddXorClause(zVars, binary[row] == '1')
	}

	return constraints, allocator
}

// extract decodes the model's indicator variables into cubes, omitting void
// terms (both indicators set).
func extract(solution sat.Solution, numVars, k int) Esop {
	cover := Esop{}
	for j := 0; j < k; j++ {
		cube := NewCube()
		void := false
		for l := 0; l < numVars; l++ {
			pValue := solution.Var(pVar(numVars, j, l))
			qValue := solution.Var(qVar(numVars, k, j, l))

			switch {
			case pValue && qValue:
				void = true
			case pValue:
				cube.AddLiteral(l, true)
			case qValue:
				cube.AddLiteral(l, false)
			}
		}

		if void {
			continue
		}
		cover = append(cover, cube)
	}
	return cover
}

// blockPermutations forbids every term-slot reordering of the found
// assignment. The encoding treats terms as ordered slots while covers are
// order-independent, so without this the solver would rediscover the same
// cover up to k! times.
func blockPermutations(constraints *sat.ConstraintSet, solution sat.Solution, numVars, k int) {
	slots := make([]int, k)
	for i := range slots {
		slots[i] = i
	}

	for {
		clause := make([]int, 0, 2*numVars*k)
		for j := 0; j < k; j++ {
			for l := 0; l < numVars; l++ {
				pBlocked := pVar(numVars, slots[j], l)
				if solution.Var(pVar(numVars, j, l)) {
					clause = append(clause, -pBlocked)
				} else {
					clause = append(clause, pBlocked)
				}

				qBlocked := qVar(numVars, k, slots[j], l)
				if solution.Var(qVar(numVars, k, j, l)) {
					clause = append(clause, -qBlocked)
				} else {
					clause = append(clause, qBlocked)
				}
			}
		}

		if len(clause) == 0 {
			// no indicator variables (0-variable function): the assignment is
			// unique, so blocking it empties the solution space
			constraints.Unsatisfiable = true
			return
		}
		constraints.AddClause(clause)

		if !nextPermutation(slots) {
			return
		}
	}
}

// nextPermutation advances the slice to its next lexicographic permutation,
// reporting false after wrapping past the last one.
func nextPermutation(values []int) bool {
	i := len(values) - 2
	for i >= 0 && values[i] >= values[i+1] {
		i--
	}
	if i < 0 {
		slices.Reverse(values)
		return false
	}
	j := len(values) - 1
	for values[j] <= values[i] {
		j--
	}
	values[i], values[j] = values[j], values[i]
	slices.Reverse(values[i+1:])
	return true
}

// dumpCNF writes the constraint system for external inspection; failures
// are logged and otherwise ignored.
func dumpCNF(constraints *sat.ConstraintSet, binary string, k int) {
	filename := fmt.Sprintf("0x%s-%d.cnf", HexString(binary), k)
	logrus.Infof("write CNF file %v", filename)

	file, err := os.Create(filename)
	if err != nil {
		logrus.Warnf("cannot create CNF file %v: %v", filename, err)
		return
	}
	defer file.Close()

	if err := constraints.WriteCNF(file); err != nil {
		logrus.Warnf("cannot write CNF file %v: %v", filename, err)
	}
}

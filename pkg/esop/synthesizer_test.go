package esop

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"

	"esopsynth/pkg/sat"
)

func newTestSynthesizer(t *testing.T, options map[string]any) *Synthesizer {
	synthesizer, err := NewSynthesizer(sat.NewGophersatSolver(), options)
	if err != nil {
		t.Fatalf("cannot build synthesizer: %v", err)
	}
	return synthesizer
}

// coverMatches checks the cover against every defined row of the table;
// don't-care rows may take either value.
func coverMatches(cover Esop, table string) bool {
	for row := 0; row < len(table); row++ {
		if table[row] != '0' && table[row] != '1' {
			continue
		}
		if cover.Eval(uint32(row)) != (table[row] == '1') {
			return false
		}
	}
	return true
}

func TestSynthesizeXorTable(t *testing.T) {
	synthesizer := newTestSynthesizer(t, map[string]any{})

	esops, err := synthesizer.SynthesizeFromBinaryString("0110")

	assert.NoError(t, err)
	assert.Len(t, esops, 1)
	assert.Len(t, esops[0], 2)
	assert.True(t, coverMatches(esops[0], "0110"))
}

func TestSynthesizeConstantOne(t *testing.T) {
	synthesizer := newTestSynthesizer(t, map[string]any{})

	esops, err := synthesizer.SynthesizeFromBinaryString("1111")

	assert.NoError(t, err)
	assert.Len(t, esops, 1)
	assert.Len(t, esops[0], 1)
	assert.Equal(t, 0, esops[0][0].Weight())
}

func TestSynthesizeConstantZero(t *testing.T) {
	for _, maximumCubes := range []int{1, 10} {
		synthesizer := newTestSynthesizer(t, map[string]any{"maximum_cubes": maximumCubes})

		esops, err := synthesizer.SynthesizeFromBinaryString("00")

		assert.NoError(t, err)
		assert.Len(t, esops, 1)
		assert.Empty(t, esops[0])
	}
}

// the empty cover must be found at k = 1, not by escalating k
func TestSynthesizeConstantZeroEnumeration(t *testing.T) {
	synthesizer := newTestSynthesizer(t, map[string]any{"one_esop": false})

	esops, err := synthesizer.SynthesizeFromBinaryString("0000")

	assert.NoError(t, err)
	assert.Len(t, esops, 1)
	assert.Empty(t, esops[0])
}

func TestSynthesizeDontCareRows(t *testing.T) {
	synthesizer := newTestSynthesizer(t, map[string]any{})

	esops, err := synthesizer.SynthesizeFromBinaryString("01-0")

	assert.NoError(t, err)
	assert.Len(t, esops, 1)
	assert.Len(t, esops[0], 1)
	assert.True(t, coverMatches(esops[0], "01-0"))
}

func TestSynthesizeExhaustsCubeBound(t *testing.T) {
	synthesizer := newTestSynthesizer(t, map[string]any{"maximum_cubes": 1})

	esops, err := synthesizer.SynthesizeFromBinaryString("0110")

	assert.NoError(t, err)
	assert.Empty(t, esops)
}

// allTwoVarCubes enumerates the nine product terms over two variables.
func allTwoVarCubes() []Cube {
	states := []Polarity{DontCare, Positive, Negative}
	cubes := make([]Cube, 0, 9)
	for _, s0 := range states {
		for _, s1 := range states {
			cube := NewCube()
			if s0 != DontCare {
				cube.AddLiteral(0, s0 == Positive)
			}
			if s1 != DontCare {
				cube.AddLiteral(1, s1 == Positive)
			}
			cubes = append(cubes, cube)
		}
	}
	return cubes
}

func bruteForceMinimum(t *testing.T, table string) int {
	cubes := allTwoVarCubes()

	if coverMatches(Esop{}, table) {
		return 0
	}
	for i := range cubes {
		if coverMatches(Esop{cubes[i]}, table) {
			return 1
		}
	}
	for i := range cubes {
		for j := i + 1; j < len(cubes); j++ {
			if coverMatches(Esop{cubes[i], cubes[j]}, table) {
				return 2
			}
		}
	}
	for i := range cubes {
		for j := i + 1; j < len(cubes); j++ {
			for l := j + 1; l < len(cubes); l++ {
				if coverMatches(Esop{cubes[i], cubes[j], cubes[l]}, table) {
					return 3
				}
			}
		}
	}
	t.Fatalf("no ESOP of size <= 3 for table %v", table)
	return 0
}

// Every two-variable function: the synthesized cover must match the table
// and use exactly as many cubes as an independent brute-force search finds.
func TestSynthesizeMinimality(t *testing.T) {
	g := gomega.NewWithT(t)

	for value := 0; value < 16; value++ {
		table := fmt.Sprintf("%c%c%c%c",
			'0'+byte(value&1), '0'+byte(value>>1&1), '0'+byte(value>>2&1), '0'+byte(value>>3&1))
		synthesizer := newTestSynthesizer(t, map[string]any{})

		esops, err := synthesizer.SynthesizeFromBinaryString(table)

		g.Expect(err).NotTo(gomega.HaveOccurred())
		g.Expect(esops).To(gomega.HaveLen(1), table)
		g.Expect(coverMatches(esops[0], table)).To(gomega.BeTrue(), table)
		g.Expect(esops[0]).To(gomega.HaveLen(bruteForceMinimum(t, table)), table)
	}
}

// Enumeration of x0 ^ x1: the driver must report every two-cube cover the
// brute-force search finds, and no two returned covers may share their
// cube set.
func TestSynthesizeEnumeration(t *testing.T) {
	g := gomega.NewWithT(t)
	table := "0110"

	expected := 0
	cubes := allTwoVarCubes()
	for i := range cubes {
		for j := i + 1; j < len(cubes); j++ {
			if coverMatches(Esop{cubes[i], cubes[j]}, table) {
				expected++
			}
		}
	}

	synthesizer := newTestSynthesizer(t, map[string]any{"one_esop": false})
	esops, err := synthesizer.SynthesizeFromBinaryString(table)

	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(esops).To(gomega.HaveLen(expected))
	for i, cover := range esops {
		g.Expect(cover).To(gomega.HaveLen(2))
		g.Expect(coverMatches(cover, table)).To(gomega.BeTrue())
		for j := i + 1; j < len(esops); j++ {
			g.Expect(cover.EquivalentTo(esops[j])).To(gomega.BeFalse(),
				"covers %v and %v are permutations of each other", i, j)
		}
	}
}

func TestSynthesizeWithGiniBackend(t *testing.T) {
	synthesizer, err := NewSynthesizer(sat.NewGiniSolver(), map[string]any{})
	assert.NoError(t, err)

	esops, err := synthesizer.SynthesizeFromBinaryString("0110")

	assert.NoError(t, err)
	assert.Len(t, esops, 1)
	assert.Len(t, esops[0], 2)
	assert.True(t, coverMatches(esops[0], "0110"))
}

func TestSynthesizeRejectsMalformedTables(t *testing.T) {
	synthesizer := newTestSynthesizer(t, map[string]any{})

	_, err := synthesizer.SynthesizeFromBinaryString("011")
	assert.Error(t, err)

	_, err = synthesizer.SynthesizeFromBinaryString("")
	assert.Error(t, err)
}

func TestNewSynthesizerRejectsNonPositiveBound(t *testing.T) {
	_, err := NewSynthesizer(sat.NewGophersatSolver(), map[string]any{"maximum_cubes": 0})
	assert.Error(t, err)

	_, err = NewSynthesizer(sat.NewGophersatSolver(), map[string]any{"maximum_cubes": -2})
	assert.Error(t, err)
}

type failingSolver struct{}

func (failingSolver) Solve(*sat.ConstraintSet) (sat.Solution, error) {
	return nil, errors.New("backend exploded")
}

func TestSynthesizePropagatesSolverErrors(t *testing.T) {
	synthesizer, err := NewSynthesizer(failingSolver{}, map[string]any{})
	assert.NoError(t, err)

	_, err = synthesizer.SynthesizeFromBinaryString("0110")
	assert.ErrorContains(t, err, "backend exploded")
}

func TestSynthesizeDumpsCNFFiles(t *testing.T) {
	oldWd, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatal(wdErr)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatal(err)
		}
	})
	synthesizer := newTestSynthesizer(t, map[string]any{"dump_cnf": true})

	_, err := synthesizer.SynthesizeFromBinaryString("0110")
	assert.NoError(t, err)

	for _, filename := range []string{"0x6-1.cnf", "0x6-2.cnf"} {
		if _, err := os.Stat(filename); err != nil {
			t.Errorf("expected CNF dump %v: %v", filename, err)
		}
	}
}

// Pins the variable layout and the model-indexing convention: ids are
// 1-based, the p block comes first, then the q block, then per-row coverage
// variables in row order.
func TestEncodeVariableLayout(t *testing.T) {
	constraints, allocator := encode("0110", 2, 2)

	assert.Equal(t, 1, pVar(2, 0, 0))
	assert.Equal(t, 4, pVar(2, 1, 1))
	assert.Equal(t, 5, qVar(2, 2, 0, 0))
	assert.Equal(t, 8, qVar(2, 2, 1, 1))

	// four constrained rows, two coverage variables each
	assert.Equal(t, 17, allocator.Next())
	assert.Equal(t, 16, constraints.Variables)
	// per row: one implication clause per term and variable, plus one
	// converse clause per term
	assert.Len(t, constraints.Clauses, 24)
	assert.Len(t, constraints.XorClauses, 4)
}

func TestEncodeSkipsDontCareRows(t *testing.T) {
	constraints, allocator := encode("01-0", 2, 1)

	assert.Len(t, constraints.XorClauses, 3)
	// p and q blocks, then one coverage variable per constrained row
	assert.Equal(t, 8, allocator.Next())
}

// Decoding a model and reading it back through the indicator variables must
// reproduce the assignment the solver produced, and that assignment must
// satisfy every clause of the constraint set it came from.
func TestModelRoundTrip(t *testing.T) {
	const table, numVars, terms = "0110", 2, 2

	constraints, allocator := encode(table, numVars, terms)
	sat.NewGaussEliminator().Apply(constraints)
	sat.NewXorToCNF(allocator).Apply(constraints)
	sat.NewSymmetryBreaker(numVars, terms, allocator).Apply(constraints)

	solution, err := sat.NewGophersatSolver().Solve(constraints)
	assert.NoError(t, err)
	assert.NotNil(t, solution)
	assert.True(t, sat.AssertSolution(constraints, solution))

	cover := extract(solution, numVars, terms)
	assert.True(t, coverMatches(cover, table))

	// re-encode the extracted cubes as indicator values
	slot := 0
	for j := 0; j < terms; j++ {
		void := false
		for l := 0; l < numVars; l++ {
			if solution.Var(pVar(numVars, j, l)) && solution.Var(qVar(numVars, terms, j, l)) {
				void = true
			}
		}
		if void {
			continue // not part of the cover
		}
		for l := 0; l < numVars; l++ {
			switch cover[slot].Literal(l) {
			case Positive:
				assert.True(t, solution.Var(pVar(numVars, j, l)))
				assert.False(t, solution.Var(qVar(numVars, terms, j, l)))
			case Negative:
				assert.False(t, solution.Var(pVar(numVars, j, l)))
				assert.True(t, solution.Var(qVar(numVars, terms, j, l)))
			default:
				assert.False(t, solution.Var(pVar(numVars, j, l)))
				assert.False(t, solution.Var(qVar(numVars, terms, j, l)))
			}
		}
		slot++
	}
	assert.Equal(t, len(cover), slot)
}

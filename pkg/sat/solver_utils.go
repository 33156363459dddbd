package sat

import (
	"log"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parseSolution extracts the literal assignment from the "v" lines of a
// DIMACS solver's output. The trailing 0 terminator is dropped.
func parseSolution(solverOutput string) []int {
	values := lo.Map(
		lo.Reduce(
			lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
				return len(line) > 0 && line[0] == 'v'
			}),
			func(values []string, line string, _ int) []string {
				return append(values, strings.Fields(line[1:])...)
			},
			[]string{},
		),
		func(valueStr string, _ int) int {
			value, err := strconv.Atoi(valueStr)
			if err != nil {
				log.Panicf("invalid literal in solver output: %v", err)
			}
			return value
		},
	)

	if len(values) == 0 {
		return nil
	}
	return values[:len(values)-1]
}

func solutionFromLiterals(literals []int, variables int) Solution {
	if literals == nil {
		return nil
	}
	solution := make(Solution, variables)
	for _, literal := range literals {
		if literal > 0 && literal <= variables {
			solution[literal-1] = true
		}
	}
	return solution
}

package sat

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const kissatPath = "kissat"

type kissatSolver struct{}

// NewKissatSolver returns a solver that feeds DIMACS to an external kissat
// binary.
func NewKissatSolver() Solver {
	return &kissatSolver{}
}

func (solver *kissatSolver) Solve(constraints *ConstraintSet) (Solution, error) {
	if constraints.Unsatisfiable {
		return nil, nil
	}
	if len(constraints.XorClauses) > 0 {
		return nil, fmt.Errorf("kissat cannot handle parity constraints: convert them to CNF first")
	}

	dimacs := constraints.ToDIMACS()

	cmd := exec.Command(kissatPath, "-q", "--relaxed")
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into kissat's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	if err != nil && cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		return nil, fmt.Errorf("an error occurred during kissat execution: %v : %v", err, stderr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		return nil, nil
	}

	return solutionFromLiterals(parseSolution(stdOut.String()), constraints.Variables), nil
}

package sat

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const cryptominisatPath = "cryptominisat"

type cryptominisatSolver struct{}

// NewCryptominisatSolver returns a solver that feeds DIMACS to an external
// cryptominisat binary. Unlike the other backends it accepts constraint sets
// that still carry XOR constraints, since cryptominisat understands the
// "x"-line DIMACS extension natively.
func NewCryptominisatSolver() Solver {
	return &cryptominisatSolver{}
}

func (solver *cryptominisatSolver) Solve(constraints *ConstraintSet) (Solution, error) {
	if constraints.Unsatisfiable {
		return nil, nil
	}

	dimacs := constraints.ToDIMACS()

	cmd := exec.Command(cryptominisatPath, "--verb", "0")
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into cryptominisat's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	if err != nil && cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		return nil, fmt.Errorf("an error occurred during cryptominisat execution: %v : %v", err, stderr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		return nil, nil
	}

	return solutionFromLiterals(parseSolution(stdOut.String()), constraints.Variables), nil
}

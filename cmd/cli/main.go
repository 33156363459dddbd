package main

import (
	"flag"
	"fmt"
	"log"
	"math/bits"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"esopsynth/pkg/esop"
	"esopsynth/pkg/sat"
)

var (
	validSolvers = []string{"gophersat", "gini", "kissat", "cryptominisat"}
	solvers      = map[string]func() sat.Solver{
		"gophersat":     sat.NewGophersatSolver,
		"gini":          sat.NewGiniSolver,
		"kissat":        sat.NewKissatSolver,
		"cryptominisat": sat.NewCryptominisatSolver,
	}
)

func main() {
	// Define arguments
	tablePtr := flag.String("table", "", "Truth-table bit string: character i is the function value on the assignment with binary encoding i; any character other than '0' and '1' is a don't-care")
	solverPtr := flag.String("solver", "gophersat", "SAT solver to use. Allowed values are: \"gophersat\", \"gini\", \"kissat\", \"cryptominisat\", where \"gophersat\" is the default")
	maxCubesPtr := flag.Int("max-cubes", 10, "Upper bound on the number of product terms")
	allPtr := flag.Bool("all", false, "Enumerate every minimum-size cover instead of returning the first one")
	dumpPtr := flag.Bool("dump-cnf", false, "Write each candidate constraint system to a .cnf file")
	verbosePtr := flag.Bool("verbose", false, "Log synthesis progress")
	flag.Parse()
	table := *tablePtr
	solverStr := strings.ToLower(*solverPtr)

	// Validate arguments
	if table == "" {
		log.Fatal("a truth table must be specified")
	} else if !slices.Contains(validSolvers, solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	}

	if *verbosePtr {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Initialize engines
	solver := solvers[solverStr]()
	synthesizer, err := esop.NewSynthesizer(solver, map[string]any{
		"maximum_cubes": *maxCubesPtr,
		"dump_cnf":      *dumpPtr,
		"one_esop":      !*allPtr,
	})
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Synthesize covers
	esops, err := synthesizer.SynthesizeFromBinaryString(table)
	if err != nil {
		log.Fatalf("an error occurred during synthesis: %v", err)
	}
	if len(esops) == 0 {
		fmt.Printf("no cover with at most %v cubes\n", *maxCubesPtr)
		os.Exit(20)
	}

	// Verify cover correctness
	numVars := bits.TrailingZeros(uint(len(table)))
	for i, cover := range esops {
		if !verify(cover, table) {
			log.Fatalf("cover %v does not match the table", i)
		}
	}

	fmt.Printf("Cubes: %v\n", len(esops[0]))
	for _, cover := range esops {
		fmt.Println(cover.String(numVars))
	}
	os.Exit(10)
}

func verify(cover esop.Esop, table string) bool {
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

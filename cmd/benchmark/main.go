package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/samber/lo"

	"esopsynth/pkg/esop"
	"esopsynth/pkg/sat"
)

var backends = map[string]func() sat.Solver{
	"gophersat": sat.NewGophersatSolver,
	"gini":      sat.NewGiniSolver,
}

// randomTable draws a truth table over numVars variables with the given
// don't-care ratio.
func randomTable(numVars int, dontCareRatio float64) string {
	table := make([]byte, 1<<numVars)
	for i := range table {
		switch {
		case rand.Float64() < dontCareRatio:
			table[i] = '-'
		case rand.Float64() < 0.5:
			table[i] = '1'
		default:
			table[i] = '0'
		}
	}
	return string(table)
}

func main() {
	samplesPtr := flag.Int("samples", 20, "Random tables per variable count")
	maxVarsPtr := flag.Int("max-vars", 4, "Largest input-variable count to draw tables for")
	outPtr := flag.String("out", "", "Path of the CSV report; if empty, it'll be written into the Standard Output")
	flag.Parse()

	writer := csv.NewWriter(os.Stdout)
	if *outPtr != "" {
		file, err := os.Create(*outPtr)
		if err != nil {
			log.Fatalf("cannot create report file: %v", err)
		}
		defer file.Close()
		writer = csv.NewWriter(file)
	}
	defer writer.Flush()

	if err := writer.Write([]string{"solver", "vars", "table", "cubes", "milliseconds"}); err != nil {
		log.Fatalf("cannot write report: %v", err)
	}

	names := lo.Keys(backends)
	for numVars := 2; numVars <= *maxVarsPtr; numVars++ {
		for sample := 0; sample < *samplesPtr; sample++ {
			table := randomTable(numVars, 0.1)

			for _, name := range names {
				synthesizer, err := esop.NewSynthesizer(backends[name](), map[string]any{})
				if err != nil {
					log.Fatalf("cannot build synthesizer: %v", err)
				}

				start := time.Now()
				esops, err := synthesizer.SynthesizeFromBinaryString(table)
				if err != nil {
					log.Fatalf("synthesis failed on %v: %v", table, err)
				}
				elapsed := time.Since(start)

				cubes := -1
				if len(esops) > 0 {
					cubes = len(esops[0])
				}
				record := []string{
					name,
					strconv.Itoa(numVars),
					table,
					strconv.Itoa(cubes),
					fmt.Sprintf("%.3f", float64(elapsed.Microseconds())/1000),
				}
				if err := writer.Write(record); err != nil {
					log.Fatalf("cannot write report: %v", err)
				}
			}
		}
	}
}

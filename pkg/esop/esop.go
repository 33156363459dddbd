package esop

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Esop is an exclusive-or sum of product terms. Cube order does not affect
// its value.
type Esop []Cube

// Esops is an ordered collection of covers; the synthesis driver returns
// covers of identical minimal size.
type Esops []Esop

// Eval computes the function value at the assignment as the parity of cube
// coverage.
func (esop Esop) Eval(assignment uint32) bool {
	value := false
	for _, cube := range esop {
		if cube.Covers(assignment) {
			value = !value
		}
	}
	return value
}

// EquivalentTo reports whether both covers hold the same cubes regardless
// of order. Minimal covers never repeat a cube (a repeated pair cancels),
// so plain set equality suffices.
func (esop Esop) EquivalentTo(other Esop) bool {
	if len(esop) != len(other) {
		return false
	}
	cubes := mapset.NewSet[uint64]()
	for _, cube := range esop {
		cubes.Add(cube.key())
	}
	otherCubes := mapset.NewSet[uint64]()
	for _, cube := range other {
		otherCubes.Add(cube.key())
	}
	return cubes.Equal(otherCubes)
}

// String renders the cover as its cubes in PLA notation joined by XOR.
func (esop Esop) String(numVars int) string {
	if len(esop) == 0 {
		return "<empty>"
	}
	terms := make([]string, 0, len(esop))
	for _, cube := range esop {
		terms = append(terms, cube.String(numVars))
	}
	return strings.Join(terms, " ^ ")
}

const hexDigits = "0123456789abcdef"

// HexString returns the hexadecimal truth-table value of a binary string,
// row 0 being the least significant bit. Don't-care rows count as 0.
func HexString(binary string) string {
	var builder strings.Builder
	start := (len(binary)+3)/4*4 - 4
	for base := start; base >= 0; base -= 4 {
		nibble := 0
		for offset := 0; offset < 4; offset++ {
			index := base + offset
			if index < len(binary) && binary[index] == '1' {
				nibble |= 1 << offset
			}
		}
		builder.WriteByte(hexDigits[nibble])
	}
	return builder.String()
}

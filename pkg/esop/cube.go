package esop

import (
	"math/bits"
	"strings"
)

// MaxVars is the cube capacity: literals are stored in two 32-bit words.
const MaxVars = 32

type Polarity int

const (
	DontCare Polarity = iota
	Negative
	Positive
)

// Cube is a fixed-capacity product term: mask marks the constrained
// variables, bits holds their polarities. Unconstrained variables are
// don't-cares.
type Cube struct {
	bits uint32
	mask uint32
}

func NewCube() Cube {
	return Cube{}
}

func (cube *Cube) AddLiteral(variable int, polarity bool) {
	cube.mask |= 1 << variable
	if polarity {
		cube.bits |= 1 << variable
	} else {
		cube.bits &^= 1 << variable
	}
}

func (cube Cube) Literal(variable int) Polarity {
	if cube.mask&(1<<variable) == 0 {
		return DontCare
	}
	if cube.bits&(1<<variable) != 0 {
		return Positive
	}
	return Negative
}

// Covers reports whether the cube evaluates to true on the assignment
// (variable l lives in bit l).
func (cube Cube) Covers(assignment uint32) bool {
	return assignment&cube.mask == cube.bits
}

// Weight is the number of literals in the cube.
func (cube Cube) Weight() int {
	return bits.OnesCount32(cube.mask)
}

// CompareCubes orders cubes by literal count, breaking ties on the raw mask
// and bit patterns so repeated runs sort identically.
func CompareCubes(a, b Cube) int {
	if a.Weight() != b.Weight() {
		return a.Weight() - b.Weight()
	}
	if a.mask != b.mask {
		if a.mask < b.mask {
			return -1
		}
		return 1
	}
	if a.bits != b.bits {
		if a.bits < b.bits {
			return -1
		}
		return 1
	}
	return 0
}

// String renders the cube in PLA notation over numVars variables: '1' for a
// positive literal, '0' for a negative one and '-' for a don't-care.
func (cube Cube) String(numVars int) string {
	var builder strings.Builder
	for l := 0; l < numVars; l++ {
		switch cube.Literal(l) {
		case Positive:
			builder.WriteByte('1')
		case Negative:
			builder.WriteByte('0')
		default:
			builder.WriteByte('-')
		}
	}
	return builder.String()
}

// key packs the cube into a single comparable word for set membership.
func (cube Cube) key() uint64 {
	return uint64(cube.mask)<<32 | uint64(cube.bits)
}

// Package pla reads and writes boolean functions in the PLA format used by
// espresso-like two-level minimizers.
//
// A PLA file describes a (possibly multiple-valued, symbolic) function with
// directives such as .i, .o, .mv, .type, .ilb, .ob, .label, .phase, .pair
// and one row per product term:
//
//	.i 2
//	.o 1
//	11 1
//	00 1
//	.e
//
// Reading a PLA builds the schema of the function and its ON-set (F),
// DC-set (D) and OFF-set (R) covers. Writing a PLA renders those covers back
// to text, either as a PLA or as one of the derived formats (PLEASURE,
// EQNTOTT, KISS, symbolic constraints).
package pla

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/crillab/gopherpla/cube"
)

// A Type says which covers a PLA holds, or which format to output.
type Type int

// Logical types, and output formats. The F, D and R bits can be combined.
const (
	FType Type = 1 << iota
	DType
	RType
	PleasureType
	EqntottType
	KissType
	ConstraintsType
	SymbolicConstraintsType

	FDType  = FType | DType
	FRType  = FType | RType
	DRType  = DType | RType
	FDRType = FType | DType | RType
)

var types = []struct {
	key   string
	value Type
}{
	{"f", FType},
	{"r", RType},
	{"d", DType},
	{"fd", FDType},
	{"fr", FRType},
	{"dr", DRType},
	{"fdr", FDRType},
	{"fc", FType | ConstraintsType},
	{"rc", RType | ConstraintsType},
	{"dc", DType | ConstraintsType},
	{"fdc", FDType | ConstraintsType},
	{"frc", FRType | ConstraintsType},
	{"drc", DRType | ConstraintsType},
	{"fdrc", FDRType | ConstraintsType},
	{"pleasure", PleasureType},
	{"eqntott", EqntottType},
	{"eqn", EqntottType},
	{"kiss", KissType},
	{"cons", ConstraintsType},
	{"scons", SymbolicConstraintsType},
}

// ParseType returns the type associated with the given name, e.g "fd" or "eqntott".
func ParseType(name string) (Type, error) {
	for _, t := range types {
		if t.key == name {
			return t.value, nil
		}
	}
	return 0, errors.Errorf("unknown type %q", name)
}

func (t Type) String() string {
	for _, typ := range types {
		if typ.value == t {
			return typ.key
		}
	}
	var sb strings.Builder
	for _, typ := range types[:3] {
		if t&typ.value != 0 {
			sb.WriteString(typ.key)
		}
	}
	return sb.String()
}

// A Pair lists the binary variables paired for two-bit decoding.
// Variables are numbered from 1.
type Pair struct {
	Var1 []int
	Var2 []int
}

// Len returns the number of pairs.
func (p *Pair) Len() int {
	return len(p.Var1)
}

// A Ref references a column of the PLA: a variable and a position inside that variable.
type Ref struct {
	Var int
	Pos int
}

// A Symbolic declares that a list of columns must be mapped onto a new
// symbolic variable whose values have the given labels.
type Symbolic struct {
	Refs   []Ref
	Labels []string
}

// A PLA is a boolean function read from or to be written to a PLA file.
type PLA struct {
	Schema *cube.Schema
	Type   Type        // Logical type: which of F, D, R were read from the input
	F      *cube.Cover // ON-set
	D      *cube.Cover // DC-set
	R      *cube.Cover // OFF-set

	// Phase says, for each output bit, whether the output is kept in positive
	// phase (bit set) or was complemented. It is nil if no phase was given.
	Phase cube.Cube
	Pair  *Pair // nil if no pairing was declared

	// Labels holds one name per bit position; "" means no name was given.
	// It is nil until the schema is known.
	Labels []string

	Symbolic       []Symbolic
	SymbolicOutput []Symbolic
	Filename       string
}

// New returns an empty PLA for the given schema, with an allocated label table.
func New(s *cube.Schema) *PLA {
	p := &PLA{Schema: s}
	if s != nil {
		p.allocLabels()
	}
	return p
}

func (p *PLA) allocLabels() {
	p.Labels = make([]string, p.Schema.Size)
}

// Label returns the label of the given bit position, if any.
func (p *PLA) Label(i int) (string, bool) {
	if p.Labels == nil || i >= len(p.Labels) || p.Labels[i] == "" {
		return "", false
	}
	return p.Labels[i], true
}

// hasLabels is true iff at least one label was assigned.
func (p *PLA) hasLabels() bool {
	for _, l := range p.Labels {
		if l != "" {
			return true
		}
	}
	return false
}

// inLabel returns the name of binary var v, i.e the label of its ONE bit.
func (p *PLA) inLabel(v int) string {
	return p.Labels[p.Schema.FirstPart[v]+1]
}

// outLabel returns the label of the i-th output.
func (p *PLA) outLabel(i int) string {
	return p.Labels[p.Schema.FirstPart[p.Schema.Output]+i]
}

// LabelIndex finds the column named word. If no label was assigned yet,
// word must be an integer n and the column (n, n) is returned.
func (p *PLA) LabelIndex(word string) (Ref, bool) {
	if !p.hasLabels() {
		n, err := atoi(word)
		if err != nil {
			return Ref{}, false
		}
		return Ref{Var: n, Pos: n}, true
	}
	s := p.Schema
	for v := 0; v < s.NumVars; v++ {
		for i := 0; i < s.Width(v); i++ {
			if p.Labels[s.FirstPart[v]+i] == word {
				return Ref{Var: v, Pos: i}, true
			}
		}
	}
	return Ref{}, false
}

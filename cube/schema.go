package cube

import (
	"github.com/pkg/errors"
)

// A Schema describes how the variables of a function are laid out in a cube.
// Binary variables come first and use two bits each, then come the
// multiple-valued variables, one bit per value. When there is at least one
// multiple-valued variable, the last one is the output part.
type Schema struct {
	NumBinaryVars int   // Number of two-valued input variables
	NumVars       int   // Total number of variables, outputs included
	PartSize      []int // Number of values of each var. Negative for symbolic vars while parsing.

	// Derived by Setup.
	FirstPart []int  // First bit owned by each var
	LastPart  []int  // Last bit owned by each var (inclusive)
	Size      int    // Number of bits in a cube
	Output    int    // Index of the output var, or -1
	NumMVVars int    // Number of multiple-valued vars, outputs included
	VarMask   []Cube // For each var, the cube with only the bits of this var set
	Full      Cube   // The universal cube
	BinMask   Cube   // Bits of all binary vars
	MVMask    Cube   // Bits of all multiple-valued vars
}

// NewSchema returns a ready to use schema with nbBinary binary vars followed
// by one multiple-valued var per given size. The last size, if any, is the
// output part.
func NewSchema(nbBinary int, mvSizes ...int) (*Schema, error) {
	s := &Schema{
		NumBinaryVars: nbBinary,
		NumVars:       nbBinary + len(mvSizes),
		PartSize:      make([]int, nbBinary+len(mvSizes)),
	}
	copy(s.PartSize[nbBinary:], mvSizes)
	if err := s.Setup(); err != nil {
		return nil, err
	}
	return s, nil
}

// Width returns the number of bits owned by v.
func (s *Schema) Width(v int) int {
	if v < s.NumBinaryVars {
		return 2
	}
	return abs(s.PartSize[v])
}

// Symbolic is true iff v was declared with a negative size, meaning its values are labels.
func (s *Schema) Symbolic(v int) bool {
	return s.PartSize[v] < 0
}

// Setup computes the derived fields of s from NumBinaryVars, NumVars and PartSize.
func (s *Schema) Setup() error {
	if s.NumBinaryVars < 0 {
		return errors.Errorf("number of binary vars cannot be negative (%d)", s.NumBinaryVars)
	}
	if s.NumVars < s.NumBinaryVars {
		return errors.Errorf("number of vars (%d) must be at least the number of binary vars (%d)", s.NumVars, s.NumBinaryVars)
	}
	if len(s.PartSize) < s.NumVars {
		return errors.Errorf("%d part sizes for %d vars", len(s.PartSize), s.NumVars)
	}
	s.PartSize = s.PartSize[:s.NumVars]
	for v := 0; v < s.NumBinaryVars; v++ {
		s.PartSize[v] = 2
	}
	s.FirstPart = make([]int, s.NumVars)
	s.LastPart = make([]int, s.NumVars)
	s.Size = 0
	for v := 0; v < s.NumVars; v++ {
		w := s.Width(v)
		if w == 0 {
			return errors.Errorf("var %d has no value", v)
		}
		s.FirstPart[v] = s.Size
		s.Size += w
		s.LastPart[v] = s.Size - 1
	}
	s.NumMVVars = s.NumVars - s.NumBinaryVars
	s.Output = -1
	if s.NumMVVars > 0 {
		s.Output = s.NumVars - 1
	}
	s.Full = s.NewCube()
	s.BinMask = s.NewCube()
	s.MVMask = s.NewCube()
	s.VarMask = make([]Cube, s.NumVars)
	for v := 0; v < s.NumVars; v++ {
		m := s.NewCube()
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			m.Set(i)
			s.Full.Set(i)
			if v < s.NumBinaryVars {
				s.BinMask.Set(i)
			} else {
				s.MVMask.Set(i)
			}
		}
		s.VarMask[v] = m
	}
	return nil
}

// Equal is true iff s and o describe the same layout.
func (s *Schema) Equal(o *Schema) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || s.NumBinaryVars != o.NumBinaryVars || s.NumVars != o.NumVars {
		return false
	}
	for v := 0; v < s.NumVars; v++ {
		if s.Width(v) != o.Width(v) {
			return false
		}
	}
	return true
}

// VarOf returns the var owning the given bit.
func (s *Schema) VarOf(bit int) int {
	if bit < 2*s.NumBinaryVars {
		return bit / 2
	}
	for v := s.NumBinaryVars; v < s.NumVars; v++ {
		if bit <= s.LastPart[v] {
			return v
		}
	}
	return -1
}

// NewCube returns an empty cube for s.
func (s *Schema) NewCube() Cube {
	return make(Cube, (s.Size+wordSize-1)/wordSize)
}

func abs(val int) int {
	if val < 0 {
		return -val
	}
	return val
}

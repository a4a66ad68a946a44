package cube

import (
	"math/bits"
	"strings"
)

const wordSize = 64

// A Cube is a product term in positional notation: a fixed-width bit vector
// whose layout is given by a Schema.
type Cube []uint64

// Values of a binary variable, as returned by Schema.Input.
const (
	Infeasible = 0 // No bit set
	Zero       = 1 // ZERO bit only
	One        = 2 // ONE bit only
	Dash       = 3 // Both bits: don't care
)

// Has is true iff bit i is set in c.
func (c Cube) Has(i int) bool {
	return c[i/wordSize]&(1<<uint(i%wordSize)) != 0
}

// Set sets bit i in c.
func (c Cube) Set(i int) {
	c[i/wordSize] |= 1 << uint(i%wordSize)
}

// Clear clears bit i in c.
func (c Cube) Clear(i int) {
	c[i/wordSize] &^= 1 << uint(i%wordSize)
}

// Copy returns a copy of c.
func (c Cube) Copy() Cube {
	res := make(Cube, len(c))
	copy(res, c)
	return res
}

// And returns the intersection of c and o.
func (c Cube) And(o Cube) Cube {
	res := make(Cube, len(c))
	for i := range c {
		res[i] = c[i] & o[i]
	}
	return res
}

// Or returns the union of c and o.
func (c Cube) Or(o Cube) Cube {
	res := make(Cube, len(c))
	for i := range c {
		res[i] = c[i] | o[i]
	}
	return res
}

// Xor returns the symmetric difference of c and o.
func (c Cube) Xor(o Cube) Cube {
	res := make(Cube, len(c))
	for i := range c {
		res[i] = c[i] ^ o[i]
	}
	return res
}

// AndNot returns the bits of c that are not in o.
func (c Cube) AndNot(o Cube) Cube {
	res := make(Cube, len(c))
	for i := range c {
		res[i] = c[i] &^ o[i]
	}
	return res
}

// Equal is true iff c and o have the same bits.
func (c Cube) Equal(o Cube) bool {
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// Implies is true iff every bit of c is in o.
func (c Cube) Implies(o Cube) bool {
	for i := range c {
		if c[i]&^o[i] != 0 {
			return false
		}
	}
	return true
}

// Disjoint is true iff c and o have no bit in common.
func (c Cube) Disjoint(o Cube) bool {
	for i := range c {
		if c[i]&o[i] != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of bits set in c.
func (c Cube) Count() int {
	res := 0
	for _, w := range c {
		res += bits.OnesCount64(w)
	}
	return res
}


// Input returns the value of binary var v in c: Infeasible, Zero, One or Dash.
func (s *Schema) Input(c Cube, v int) int {
	res := 0
	if c.Has(2 * v) {
		res |= Zero
	}
	if c.Has(2*v + 1) {
		res |= One
	}
	return res
}

// VarEmpty is true iff no value of v is allowed by c.
func (s *Schema) VarEmpty(c Cube, v int) bool {
	for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
		if c.Has(i) {
			return false
		}
	}
	return true
}

// VarFull is true iff all values of v are allowed by c.
func (s *Schema) VarFull(c Cube, v int) bool {
	for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
		if !c.Has(i) {
			return false
		}
	}
	return true
}

// Empty is true iff c contains no point, i.e some var of c has no value.
func (s *Schema) Empty(c Cube) bool {
	for v := 0; v < s.NumVars; v++ {
		if s.VarEmpty(c, v) {
			return true
		}
	}
	return false
}

// Distance returns the number of vars on which a and b have no value in common.
func (s *Schema) Distance(a, b Cube) int {
	return s.distance(a.And(b))
}

func (s *Schema) distance(inter Cube) int {
	res := 0
	for v := 0; v < s.NumVars; v++ {
		if s.VarEmpty(inter, v) {
			res++
		}
	}
	return res
}

// Not returns the complement of c inside the bits of s.
func (s *Schema) Not(c Cube) Cube {
	return s.Full.AndNot(c)
}

// Literal returns the cube where var v is restricted to the single value at bit i.
func (s *Schema) Literal(v, i int) Cube {
	res := s.Full.AndNot(s.VarMask[v])
	res.Set(i)
	return res
}

// Format returns a textual representation of c: binary vars with "?01-",
// multiple-valued vars with "01" and the output part with outMap, which
// gives the char used for a cleared bit and for a set bit.
func (s *Schema) Format(c Cube, outMap string) string {
	var sb strings.Builder
	for v := 0; v < s.NumBinaryVars; v++ {
		sb.WriteByte("?01-"[s.Input(c, v)])
	}
	for v := s.NumBinaryVars; v < s.NumVars-1; v++ {
		sb.WriteByte(' ')
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			sb.WriteByte("01"[b2i(c.Has(i))])
		}
	}
	if s.Output != -1 {
		sb.WriteByte(' ')
		for i := s.FirstPart[s.Output]; i <= s.LastPart[s.Output]; i++ {
			sb.WriteByte(outMap[b2i(c.Has(i))])
		}
	}
	return sb.String()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

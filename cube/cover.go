package cube

import (
	"fmt"
	"strings"
)

// A Cover is an ordered list of cubes sharing a schema.
// The cover owns its cubes: Add copies its argument.
type Cover struct {
	schema *Schema
	cubes  []Cube
}

// NewCover returns an empty cover for s, with room for capHint cubes.
func NewCover(s *Schema, capHint int) *Cover {
	return &Cover{schema: s, cubes: make([]Cube, 0, capHint)}
}

// Schema returns the schema of f.
func (f *Cover) Schema() *Schema {
	return f.schema
}

// Len returns the number of cubes in f.
func (f *Cover) Len() int {
	if f == nil {
		return 0
	}
	return len(f.cubes)
}

// At returns the i-th cube of f. The returned cube is still owned by f.
func (f *Cover) At(i int) Cube {
	return f.cubes[i]
}

// Cubes returns the cubes of f. The slice must not be modified.
func (f *Cover) Cubes() []Cube {
	if f == nil {
		return nil
	}
	return f.cubes
}

// Add appends a copy of c to f.
func (f *Cover) Add(c Cube) {
	f.cubes = append(f.cubes, c.Copy())
}

// Delete removes the i-th cube. The last cube takes its place.
func (f *Cover) Delete(i int) {
	last := len(f.cubes) - 1
	f.cubes[i] = f.cubes[last]
	f.cubes[last] = nil
	f.cubes = f.cubes[:last]
}

// Copy returns a deep copy of f.
func (f *Cover) Copy() *Cover {
	res := NewCover(f.schema, len(f.cubes))
	for _, c := range f.cubes {
		res.Add(c)
	}
	return res
}

// Join returns a new cover containing the cubes of all covers, in order.
// Nil covers are ignored.
func Join(s *Schema, covers ...*Cover) *Cover {
	n := 0
	for _, f := range covers {
		n += f.Len()
	}
	res := NewCover(s, n)
	for _, f := range covers {
		for _, c := range f.Cubes() {
			res.Add(c)
		}
	}
	return res
}

// String returns the cubes of f, one per line.
func (f *Cover) String() string {
	var sb strings.Builder
	for _, c := range f.cubes {
		sb.WriteString(f.schema.Format(c, "01"))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// A Cost sums up the size of a cover.
type Cost struct {
	Cubes int // Number of cubes
	In    int // Number of input literals
	Out   int // Number of output literals
	Total int // In + Out
}

func (c Cost) String() string {
	return fmt.Sprintf("c=%d in=%d out=%d tot=%d", c.Cubes, c.In, c.Out, c.Total)
}

// CostOf computes the cost of f.
// A binary var counts for one literal unless it is a dash; a multiple-valued
// input var counts for its number of values unless it is full.
func CostOf(f *Cover) Cost {
	res := Cost{Cubes: f.Len()}
	if f == nil {
		return res
	}
	s := f.schema
	for _, c := range f.cubes {
		for v := 0; v < s.NumVars; v++ {
			switch {
			case v == s.Output:
				res.Out += c.And(s.VarMask[v]).Count()
			case v < s.NumBinaryVars:
				if s.Input(c, v) != Dash {
					res.In++
				}
			case !s.VarFull(c, v):
				res.In += c.And(s.VarMask[v]).Count()
			}
		}
	}
	res.Total = res.In + res.Out
	return res
}

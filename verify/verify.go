// Package verify checks that two covers describe the same function, using
// a SAT solver instead of the cube algebra used to compute them.
package verify

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/crillab/gopherpla/cube"
)

// Check returns nil iff G is a valid cover of the function whose ON-set is F
// and DC-set is D, i.e G is included in F ∪ D and F is included in G ∪ D.
// D can be nil.
func Check(F, D, G *cube.Cover) error {
	s := F.Schema()
	if !G.Schema().Equal(s) || (D != nil && !D.Schema().Equal(s)) {
		return errors.New("covers do not share the same schema")
	}
	onDC := newChecker(s, F, D)
	for _, c := range G.Cubes() {
		if !onDC.covers(c) {
			return errors.Errorf("cube %q is not included in the ON-set and the DC-set", s.Format(c, "01"))
		}
	}
	result := newChecker(s, G, D)
	for _, c := range F.Cubes() {
		if !result.covers(c) {
			return errors.Errorf("cube %q of the ON-set is not covered", s.Format(c, "01"))
		}
	}
	return nil
}

// Covers is true iff every point of c is in one of the covers.
func Covers(c cube.Cube, covers ...*cube.Cover) bool {
	if len(covers) == 0 {
		return false
	}
	return newChecker(covers[0].Schema(), covers...).covers(c)
}

// A checker holds a formula satisfied by exactly the points outside of a
// union of covers. Bit i of the schema is the gini var i+1; a model
// selects one bit per var, i.e a point.
type checker struct {
	s    *cube.Schema
	g    *gini.Gini
	full bool // The union contains the universal cube
}

func lit(i int) z.Var {
	return z.Var(i + 1)
}

func newChecker(s *cube.Schema, covers ...*cube.Cover) *checker {
	ch := &checker{s: s, g: gini.New()}
	for v := 0; v < s.NumVars; v++ {
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			ch.g.Add(lit(i).Pos())
		}
		ch.g.Add(0)
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			for j := i + 1; j <= s.LastPart[v]; j++ {
				ch.g.Add(lit(i).Neg())
				ch.g.Add(lit(j).Neg())
				ch.g.Add(0)
			}
		}
	}
	for _, f := range covers {
		for _, c := range f.Cubes() {
			if s.Empty(c) {
				continue
			}
			if c.Equal(s.Full) {
				ch.full = true
				continue
			}
			// The point is not in c: one of its bits is outside of c.
			for i := 0; i < s.Size; i++ {
				if !c.Has(i) {
					ch.g.Add(lit(i).Pos())
				}
			}
			ch.g.Add(0)
		}
	}
	return ch
}

// covers is true iff no point of c is outside of the union.
func (ch *checker) covers(c cube.Cube) bool {
	if ch.full {
		return true
	}
	var assumptions []z.Lit
	for i := 0; i < ch.s.Size; i++ {
		if !c.Has(i) {
			assumptions = append(assumptions, lit(i).Neg())
		}
	}
	ch.g.Assume(assumptions...)
	return ch.g.Solve() == -1
}

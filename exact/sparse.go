package exact

import (
	"github.com/crillab/gopherpla/cube"
)

// Sparsify returns a cover of the same function as F, with as few literals
// as possible: outputs that are covered by the other cubes and D are
// lowered, then input vars are raised to their full value as long as the
// cube stays disjoint from the OFF-set R. Cubes contained in another one
// are removed. F is not modified.
func Sparsify(F, D, R *cube.Cover) *cube.Cover {
	cur := F.Copy()
	for cost := cube.CostOf(cur); ; {
		cur = lowerOutputs(cur, D)
		cur = raiseInputs(cur, R)
		cur = cube.Absorb(cur)
		newCost := cube.CostOf(cur)
		if newCost.Total >= cost.Total {
			break
		}
		cost = newCost
	}
	return cur
}

// lowerOutputs removes from each cube the outputs for which the cube is not needed.
// A cube without any output left is removed.
func lowerOutputs(f, D *cube.Cover) *cube.Cover {
	s := f.Schema()
	if s.Output == -1 {
		return f
	}
	mask := s.VarMask[s.Output]
	cubes := make([]cube.Cube, f.Len())
	for i, c := range f.Cubes() {
		cubes[i] = c.Copy()
	}
	for i, c := range cubes {
		for o := s.FirstPart[s.Output]; o <= s.LastPart[s.Output]; o++ {
			if !c.Has(o) {
				continue
			}
			others := cube.NewCover(s, len(cubes)+D.Len())
			for j, d := range cubes {
				if j != i {
					others.Add(d)
				}
			}
			for _, d := range D.Cubes() {
				others.Add(d)
			}
			t := c.AndNot(mask)
			t.Set(o)
			if cube.Covers(others, t) {
				c.Clear(o)
			}
		}
	}
	res := cube.NewCover(s, len(cubes))
	for _, c := range cubes {
		if !s.VarEmpty(c, s.Output) {
			res.Add(c)
		}
	}
	return res
}

// raiseInputs sets each input var of each cube to its full value when the
// cube still does not intersect R.
func raiseInputs(f, R *cube.Cover) *cube.Cover {
	if R.Len() == 0 {
		return f
	}
	s := f.Schema()
	res := cube.NewCover(s, f.Len())
	for _, c := range f.Cubes() {
		c = c.Copy()
		for v := 0; v < s.NumVars; v++ {
			if v == s.Output || s.VarFull(c, v) {
				continue
			}
			if t := c.Or(s.VarMask[v]); disjoint(s, t, R) {
				c = t
			}
		}
		res.Add(c)
	}
	return res
}

func disjoint(s *cube.Schema, c cube.Cube, R *cube.Cover) bool {
	for _, r := range R.Cubes() {
		if !s.Empty(c.And(r)) {
			return false
		}
	}
	return true
}

package cube

// This file holds the set algebra on covers: cofactor, tautology,
// complementation, consensus-based prime generation and a few helpers.
// All algorithms are exact and work on any mix of binary and
// multiple-valued variables.

// nonEmpty returns the cubes of cs that contain at least one point.
func (s *Schema) nonEmpty(cs []Cube) []Cube {
	res := make([]Cube, 0, len(cs))
	for _, c := range cs {
		if !s.Empty(c) {
			res = append(res, c)
		}
	}
	return res
}

// cofactor returns the cofactor of cs with respect to p:
// every cube intersecting p, with the bits outside of p raised.
func (s *Schema) cofactor(cs []Cube, p Cube) []Cube {
	notP := s.Not(p)
	res := make([]Cube, 0, len(cs))
	for _, c := range cs {
		if s.Distance(c, p) == 0 {
			res = append(res, c.Or(notP))
		}
	}
	return res
}

// Cofactor returns the cofactor of f with respect to p.
func Cofactor(f *Cover, p Cube) *Cover {
	s := f.schema
	return &Cover{schema: s, cubes: s.cofactor(s.nonEmpty(f.cubes), p)}
}

// splitVar returns the var on which the most cubes are not full, or -1 if all cubes are full.
func (s *Schema) splitVar(cs []Cube) int {
	best, bestNb := -1, 0
	for v := 0; v < s.NumVars; v++ {
		nb := 0
		for _, c := range cs {
			if !s.VarFull(c, v) {
				nb++
			}
		}
		if nb > bestNb {
			best, bestNb = v, nb
		}
	}
	return best
}

// tautology is true iff the union of cs is the universal cube.
// cs must not contain empty cubes.
func (s *Schema) tautology(cs []Cube) bool {
	if len(cs) == 0 {
		return false
	}
	union := s.NewCube()
	for _, c := range cs {
		if c.Equal(s.Full) {
			return true
		}
		union = union.Or(c)
	}
	if !union.Equal(s.Full) { // Some value of some var is never reached
		return false
	}
	v := s.splitVar(cs)
	if v == -1 {
		return true
	}
	for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
		if !s.tautology(s.cofactor(cs, s.Literal(v, i))) {
			return false
		}
	}
	return true
}

// Tautology is true iff f covers the whole boolean space.
func Tautology(f *Cover) bool {
	return f.schema.tautology(f.schema.nonEmpty(f.cubes))
}

// Covers is true iff every point of c is in f.
func Covers(f *Cover, c Cube) bool {
	if f.schema.Empty(c) {
		return true
	}
	return Tautology(Cofactor(f, c))
}

// absorb removes duplicates and cubes contained in another cube.
func absorb(cs []Cube) []Cube {
	res := make([]Cube, 0, len(cs))
	for i, c := range cs {
		absorbed := false
		for j, d := range cs {
			if i == j || !c.Implies(d) {
				continue
			}
			if !d.Equal(c) || j < i { // Among equal cubes, keep the first one
				absorbed = true
				break
			}
		}
		if !absorbed {
			res = append(res, c)
		}
	}
	return res
}

// Absorb returns a copy of f without the cubes contained in another cube of f.
func Absorb(f *Cover) *Cover {
	res := NewCover(f.schema, f.Len())
	for _, c := range absorb(f.cubes) {
		res.Add(c)
	}
	return res
}

// merge ORs together the cubes of cs that only differ on var v.
func (s *Schema) merge(cs []Cube, v int) []Cube {
	others := s.Full.AndNot(s.VarMask[v])
	res := make([]Cube, 0, len(cs))
	used := make([]bool, len(cs))
	for i, c := range cs {
		if used[i] {
			continue
		}
		m := c.Copy()
		key := c.And(others)
		for j := i + 1; j < len(cs); j++ {
			if !used[j] && cs[j].And(others).Equal(key) {
				m = m.Or(cs[j])
				used[j] = true
			}
		}
		res = append(res, m)
	}
	return res
}

// D1Merge returns a copy of f where the cubes only differing on var v are merged.
func D1Merge(f *Cover, v int) *Cover {
	res := NewCover(f.schema, f.Len())
	for _, c := range f.schema.merge(f.cubes, v) {
		res.Add(c)
	}
	return res
}

// complement returns a list of cubes covering exactly the points not covered by cs.
// cs must not contain empty cubes.
func (s *Schema) complement(cs []Cube) []Cube {
	switch len(cs) {
	case 0:
		return []Cube{s.Full.Copy()}
	case 1:
		return s.deMorgan(cs[0])
	}
	for _, c := range cs {
		if c.Equal(s.Full) {
			return nil
		}
	}
	v := s.splitVar(cs)
	var res []Cube
	for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
		lit := s.Literal(v, i)
		for _, c := range s.complement(s.cofactor(cs, lit)) {
			res = append(res, c.And(lit))
		}
	}
	return absorb(s.merge(res, v))
}

// deMorgan returns the complement of a single non-empty cube.
func (s *Schema) deMorgan(c Cube) []Cube {
	var res []Cube
	for v := 0; v < s.NumVars; v++ {
		if s.VarFull(c, v) {
			continue
		}
		r := s.Full.AndNot(c.And(s.VarMask[v]))
		res = append(res, r)
	}
	return res
}

// Complement returns a cover of all the points that are not covered by f.
func Complement(f *Cover) *Cover {
	s := f.schema
	res := NewCover(s, 0)
	res.cubes = s.complement(s.nonEmpty(f.cubes))
	return res
}

// Intersect returns the pairwise intersections of the cubes of f and g.
func Intersect(f, g *Cover) *Cover {
	s := f.schema
	res := NewCover(s, 0)
	for _, a := range f.cubes {
		for _, b := range g.cubes {
			if c := a.And(b); !s.Empty(c) {
				res.cubes = append(res.cubes, c)
			}
		}
	}
	res.cubes = absorb(res.cubes)
	return res
}

// consensus returns the consensus of a and b on var v: the intersection of
// a and b on every other var and their union on v. The second value is false
// if the consensus is empty.
func (s *Schema) consensus(a, b Cube, v int) (Cube, bool) {
	mask := s.VarMask[v]
	res := a.And(b).AndNot(mask).Or(a.Or(b).And(mask))
	for u := 0; u < s.NumVars; u++ {
		if u != v && s.VarEmpty(res, u) {
			return nil, false
		}
	}
	return res, true
}

// Primes returns all the prime implicants of f, computed by iterated consensus.
// The cost is exponential in the worst case.
func Primes(f *Cover) *Cover {
	s := f.schema
	cur := absorb(s.nonEmpty(f.cubes))
	for changed := true; changed; {
		changed = false
		n := len(cur)
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				a, b := cur[i], cur[j]
				dist := s.Distance(a, b)
				if dist > 1 {
					continue
				}
				for v := 0; v < s.NumVars; v++ {
					if dist == 1 && !s.VarEmpty(a.And(b), v) {
						continue
					}
					c, ok := s.consensus(a, b, v)
					if !ok || c.Implies(a) || c.Implies(b) || contained(cur, c) {
						continue
					}
					cur = append(cur, c)
					changed = true
				}
			}
		}
		cur = absorb(cur)
	}
	res := NewCover(s, len(cur))
	res.cubes = cur
	return res
}

func contained(cs []Cube, c Cube) bool {
	for _, d := range cs {
		if c.Implies(d) {
			return true
		}
	}
	return false
}

// Minterms calls fn on every point of c, as a cube with exactly one bit per var.
// It stops as soon as fn returns false.
func (s *Schema) Minterms(c Cube, fn func(Cube) bool) {
	pt := s.NewCube()
	var rec func(v int) bool
	rec = func(v int) bool {
		if v == s.NumVars {
			return fn(pt.Copy())
		}
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			if !c.Has(i) {
				continue
			}
			pt.Set(i)
			ok := rec(v + 1)
			pt.Clear(i)
			if !ok {
				return false
			}
		}
		return true
	}
	rec(0)
}

package exact

import (
	"github.com/crillab/gopherpla/cube"
	"github.com/crillab/gopherpla/mincov"
)

// A partition splits a set of primes into relatively essential primes (e),
// totally redundant primes (rt) and partially redundant primes (rp).
// Each part is a list of indices into primes.
type partition struct {
	primes    *cube.Cover
	e, rt, rp []int
}

// split partitions primes. A prime is relatively essential if it is not
// covered by the other primes and D, totally redundant if it is covered by
// the essential primes and D, and partially redundant otherwise.
func split(primes, D *cube.Cover) *partition {
	s := primes.Schema()
	part := &partition{primes: primes}
	n := primes.Len()
	essential := make([]bool, n)
	for i, p := range primes.Cubes() {
		others := cube.NewCover(s, n+D.Len())
		for j, q := range primes.Cubes() {
			if j != i {
				others.Add(q)
			}
		}
		for _, d := range D.Cubes() {
			others.Add(d)
		}
		if !cube.Covers(others, p) {
			essential[i] = true
			part.e = append(part.e, i)
		}
	}
	ed := cube.Join(s, part.cover(part.e), D)
	for i, p := range primes.Cubes() {
		switch {
		case essential[i]:
		case cube.Covers(ed, p):
			part.rt = append(part.rt, i)
		default:
			part.rp = append(part.rp, i)
		}
	}
	return part
}

// cover returns the primes whose indices are listed.
func (part *partition) cover(indices []int) *cube.Cover {
	res := cube.NewCover(part.primes.Schema(), len(indices))
	for _, i := range indices {
		res.Add(part.primes.At(i))
	}
	return res
}

// table builds the covering problem of the partially redundant primes:
// one row per point of a partially redundant prime that is covered by
// neither an essential prime nor D, listing the partially redundant
// primes containing that point. Columns are indices into the primes.
// Identical rows are only added once.
func (part *partition) table(D *cube.Cover) *mincov.Matrix {
	s := part.primes.Schema()
	m := mincov.NewMatrix()
	ed := cube.Join(s, part.cover(part.e), D)
	for _, i := range part.rp {
		s.Minterms(part.primes.At(i), func(pt cube.Cube) bool {
			for _, c := range ed.Cubes() {
				if pt.Implies(c) {
					return true
				}
			}
			var row []int
			for _, j := range part.rp {
				if pt.Implies(part.primes.At(j)) {
					row = append(row, j)
				}
			}
			m.AddRow(row)
			return true
		})
	}
	return m
}

package cube

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseCube builds a cube from its Format representation (with "01" as output map).
func parseCube(t *testing.T, s *Schema, str string) Cube {
	t.Helper()
	c := s.NewCube()
	pos := 0
	next := func() byte {
		for str[pos] == ' ' {
			pos++
		}
		pos++
		return str[pos-1]
	}
	for v := 0; v < s.NumBinaryVars; v++ {
		switch next() {
		case '0':
			c.Set(2 * v)
		case '1':
			c.Set(2*v + 1)
		case '-':
			c.Set(2 * v)
			c.Set(2*v + 1)
		}
	}
	for v := s.NumBinaryVars; v < s.NumVars; v++ {
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			if next() == '1' {
				c.Set(i)
			}
		}
	}
	return c
}

func coverOf(t *testing.T, s *Schema, cubes ...string) *Cover {
	t.Helper()
	f := NewCover(s, len(cubes))
	for _, str := range cubes {
		f.Add(parseCube(t, s, str))
	}
	return f
}

func lines(f *Cover) []string {
	var res []string
	for _, c := range f.Cubes() {
		res = append(res, f.Schema().Format(c, "01"))
	}
	sort.Strings(res)
	return res
}

func TestSchemaInvariant(t *testing.T) {
	tests := []struct {
		nbBinary int
		sizes    []int
	}{
		{0, []int{1}},
		{3, []int{2}},
		{2, []int{3, 4, 5}},
		{40, []int{30}},
		{5, nil},
	}
	for _, test := range tests {
		s, err := NewSchema(test.nbBinary, test.sizes...)
		require.NoError(t, err)
		sum := 0
		for v := 0; v < s.NumVars; v++ {
			if v < s.NumBinaryVars {
				sum += 2
			} else {
				sum += s.PartSize[v]
			}
			assert.LessOrEqual(t, s.FirstPart[v], s.LastPart[v])
			if v+1 < s.NumVars {
				assert.Less(t, s.LastPart[v], s.FirstPart[v+1])
				assert.Equal(t, s.LastPart[v]+1, s.FirstPart[v+1])
			}
		}
		assert.Equal(t, sum, s.Size)
		assert.Equal(t, s.Size, s.Full.Count())
		if len(test.sizes) == 0 {
			assert.Equal(t, -1, s.Output)
		} else {
			assert.Equal(t, s.NumVars-1, s.Output)
		}
	}
}

func TestSchemaErrors(t *testing.T) {
	_, err := NewSchema(-1, 2)
	assert.Error(t, err)
	_, err = NewSchema(2, 0)
	assert.Error(t, err)
	s := &Schema{NumBinaryVars: 3, NumVars: 2, PartSize: make([]int, 3)}
	assert.Error(t, s.Setup())
}

func TestSchemaSymbolicWidth(t *testing.T) {
	s, err := NewSchema(1, -3, 2)
	require.NoError(t, err)
	assert.True(t, s.Symbolic(1))
	assert.Equal(t, 3, s.Width(1))
	assert.Equal(t, 7, s.Size)
	assert.Equal(t, 1, s.VarOf(2))
	assert.Equal(t, 2, s.VarOf(6))
}

func TestFormat(t *testing.T) {
	s, err := NewSchema(3, 3, 2)
	require.NoError(t, err)
	c := parseCube(t, s, "01- 101 10")
	assert.Equal(t, "01- 101 10", s.Format(c, "01"))
	assert.Equal(t, "01- 101 1~", s.Format(c, "~1"))
	assert.Equal(t, Zero, s.Input(c, 0))
	assert.Equal(t, One, s.Input(c, 1))
	assert.Equal(t, Dash, s.Input(c, 2))
}

func TestTautology(t *testing.T) {
	s, err := NewSchema(2, 1)
	require.NoError(t, err)
	assert.True(t, Tautology(coverOf(t, s, "-- 1")))
	assert.True(t, Tautology(coverOf(t, s, "0- 1", "1- 1")))
	assert.True(t, Tautology(coverOf(t, s, "00 1", "01 1", "1- 1")))
	assert.False(t, Tautology(coverOf(t, s, "00 1", "01 1", "10 1")))
	assert.False(t, Tautology(NewCover(s, 0)))
}

func TestComplement(t *testing.T) {
	s, err := NewSchema(3, 2)
	require.NoError(t, err)
	covers := []*Cover{
		coverOf(t, s, "11- 10", "0-1 01", "--- 00"),
		coverOf(t, s, "000 11"),
		coverOf(t, s, "--- 11"),
		NewCover(s, 0),
		coverOf(t, s, "1-0 11", "01- 10", "-11 01", "00- 01"),
	}
	for _, f := range covers {
		r := Complement(f)
		assert.True(t, Tautology(Join(s, f, r)), "f ∪ ¬f must be a tautology for\n%s", f)
		for _, c := range r.Cubes() {
			for _, d := range f.Cubes() {
				assert.NotZero(t, s.Distance(c, d), "complement cube %s intersects %s", s.Format(c, "01"), s.Format(d, "01"))
			}
		}
	}
}

func TestComplementMV(t *testing.T) {
	s, err := NewSchema(1, 3, 2)
	require.NoError(t, err)
	f := coverOf(t, s, "1 100 10", "- 011 01")
	r := Complement(f)
	assert.True(t, Tautology(Join(s, f, r)))
	s.Minterms(s.Full, func(pt Cube) bool {
		assert.NotEqual(t, Covers(f, pt), Covers(r, pt), "point %s", s.Format(pt, "01"))
		return true
	})
}

func TestPrimes(t *testing.T) {
	s, err := NewSchema(3, 1)
	require.NoError(t, err)
	// Minterms 0, 1, 2, 5, 6, 7 of a 3-input function: the classical cyclic core.
	f := coverOf(t, s, "000 1", "001 1", "010 1", "101 1", "110 1", "111 1")
	got := lines(Primes(f))
	want := []string{"-01 1", "-10 1", "0-0 1", "00- 1", "1-1 1", "11- 1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("invalid primes (-want +got):\n%s", diff)
	}
}

func TestPrimesMultipleOutput(t *testing.T) {
	s, err := NewSchema(2, 2)
	require.NoError(t, err)
	f := coverOf(t, s, "11 10", "11 01", "10 10")
	got := lines(Primes(f))
	want := []string{"1- 10", "11 11"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("invalid primes (-want +got):\n%s", diff)
	}
}

func TestCovers(t *testing.T) {
	s, err := NewSchema(2, 1)
	require.NoError(t, err)
	f := coverOf(t, s, "0- 1", "-1 1")
	assert.True(t, Covers(f, parseCube(t, s, "01 1")))
	assert.True(t, Covers(f, parseCube(t, s, "-1 1")))
	assert.False(t, Covers(f, parseCube(t, s, "1- 1")))
	assert.True(t, Covers(f, s.NewCube()), "empty cube is always covered")
}

func TestCofactor(t *testing.T) {
	s, err := NewSchema(3, 1)
	require.NoError(t, err)
	f := coverOf(t, s, "11- 1", "0-1 1", "10- 1")
	g := Cofactor(f, parseCube(t, s, "1-- 1"))
	assert.Equal(t, []string{"-0- 1", "-1- 1"}, lines(g))
	assert.True(t, Tautology(g))
	g = Cofactor(f, parseCube(t, s, "0-- 1"))
	assert.Equal(t, []string{"--1 1"}, lines(g))
	assert.False(t, Tautology(g))
	assert.Equal(t, 3, f.Len(), "f is unchanged")
}

func TestAbsorbAndMerge(t *testing.T) {
	s, err := NewSchema(2, 2)
	require.NoError(t, err)
	f := coverOf(t, s, "11 10", "1- 10", "1- 10", "00 01")
	assert.Equal(t, []string{"00 01", "1- 10"}, lines(Absorb(f)))
	g := coverOf(t, s, "11 10", "11 01", "00 01")
	assert.Equal(t, []string{"00 01", "11 11"}, lines(D1Merge(g, s.Output)))
}

func TestCoverDelete(t *testing.T) {
	s, err := NewSchema(2, 1)
	require.NoError(t, err)
	f := coverOf(t, s, "00 1", "01 1", "10 1")
	f.Delete(0)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, "10 1", s.Format(f.At(0), "01"))
	c := f.At(1)
	g := f.Copy()
	c.Clear(0)
	assert.NotEqual(t, s.Format(f.At(1), "01"), s.Format(g.At(1), "01"), "copies must not share storage")
}

func TestCost(t *testing.T) {
	s, err := NewSchema(3, 3, 2)
	require.NoError(t, err)
	f := coverOf(t, s, "01- 111 10", "1-- 101 11")
	cost := CostOf(f)
	assert.Equal(t, Cost{Cubes: 2, In: 5, Out: 3, Total: 8}, cost)
	assert.Equal(t, "c=2 in=5 out=3 tot=8", cost.String())
}

func TestMinterms(t *testing.T) {
	s, err := NewSchema(2, 3)
	require.NoError(t, err)
	nb := 0
	s.Minterms(parseCube(t, s, "-1 101"), func(pt Cube) bool {
		nb++
		assert.Equal(t, s.NumVars, pt.Count())
		return true
	})
	assert.Equal(t, 4, nb)
}

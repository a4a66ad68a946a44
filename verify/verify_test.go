package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gopherpla/cube"
)

// cover builds a cover of s from cubes written with "01-" for binary vars
// and "01" for the output part.
func cover(t *testing.T, s *cube.Schema, strs ...string) *cube.Cover {
	t.Helper()
	f := cube.NewCover(s, len(strs))
	for _, str := range strs {
		c := s.NewCube()
		v, i := 0, 0
		for _, ch := range str {
			if ch == ' ' {
				continue
			}
			if v < s.NumBinaryVars {
				switch ch {
				case '0':
					c.Set(2 * v)
				case '1':
					c.Set(2*v + 1)
				case '-':
					c.Set(2 * v)
					c.Set(2*v + 1)
				}
				v++
				i = 2 * v
				continue
			}
			if ch == '1' {
				c.Set(i)
			}
			i++
		}
		f.Add(c)
	}
	return f
}

func schema(t *testing.T, nbIn, nbOut int) *cube.Schema {
	s, err := cube.NewSchema(nbIn, nbOut)
	require.NoError(t, err)
	return s
}

func TestCheck(t *testing.T) {
	s := schema(t, 3, 1)
	F := cover(t, s, "000 1", "001 1", "010 1", "101 1", "110 1", "111 1")
	tests := []struct {
		name  string
		g     []string
		valid bool
	}{
		{"same", []string{"000 1", "001 1", "010 1", "101 1", "110 1", "111 1"}, true},
		{"minimum", []string{"00- 1", "-10 1", "1-1 1"}, true},
		{"overlapping", []string{"00- 1", "-10 1", "1-1 1", "11- 1"}, true},
		{"missing", []string{"00- 1", "-10 1"}, false},
		{"too large", []string{"0-- 1", "1-1 1", "-10 1"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		err := Check(F, nil, cover(t, s, tt.g...))
		if tt.valid {
			assert.NoError(t, err, tt.name)
		} else {
			assert.Error(t, err, tt.name)
		}
	}
}

func TestCheckDC(t *testing.T) {
	s := schema(t, 2, 1)
	F := cover(t, s, "11 1")
	D := cover(t, s, "10 1")
	assert.NoError(t, Check(F, D, cover(t, s, "1- 1")))
	assert.NoError(t, Check(F, D, cover(t, s, "11 1")))
	assert.Error(t, Check(F, D, cover(t, s, "-1 1")))
	assert.Error(t, Check(F, nil, cover(t, s, "1- 1")))
}

func TestCheckMultipleOutputs(t *testing.T) {
	s := schema(t, 2, 2)
	F := cover(t, s, "1- 10", "-1 01", "11 11")
	assert.NoError(t, Check(F, nil, cover(t, s, "1- 10", "-1 01")))
	assert.Error(t, Check(F, nil, cover(t, s, "1- 11")))
}

func TestCovers(t *testing.T) {
	s := schema(t, 2, 1)
	f := cover(t, s, "0- 1", "1- 1")
	full := cover(t, s, "-- 1")
	assert.True(t, Covers(full.At(0), f))
	assert.True(t, Covers(full.At(0), full))
	assert.False(t, Covers(full.At(0), cover(t, s, "0- 1")))
	assert.True(t, Covers(s.NewCube(), cover(t, s, "0- 1")))
	assert.False(t, Covers(full.At(0)))
}

func TestSchemaMismatch(t *testing.T) {
	F := cover(t, schema(t, 2, 1), "11 1")
	G := cover(t, schema(t, 3, 1), "111 1")
	assert.Error(t, Check(F, nil, G))
}

package exact

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gopherpla/cube"
	"github.com/crillab/gopherpla/pla"
	"github.com/crillab/gopherpla/verify"
)

func readPLA(t *testing.T, input string) *pla.PLA {
	t.Helper()
	log, _ := test.NewNullLogger()
	r := pla.NewReader(strings.NewReader(input))
	r.Log = log
	p, err := r.Read(false, true, pla.FDType)
	require.NoError(t, err)
	return p
}

func newMinimizer(stdout *bytes.Buffer) *Minimizer {
	log, _ := test.NewNullLogger()
	m := New()
	m.Log = log
	m.Stdout = stdout
	return m
}

func lines(f *cube.Cover) []string {
	var res []string
	for _, c := range f.Cubes() {
		res = append(res, f.Schema().Format(c, "01"))
	}
	sort.Strings(res)
	return res
}

// irredundant is true iff no cube of g can be removed.
func irredundant(g, D *cube.Cover) bool {
	s := g.Schema()
	for i, c := range g.Cubes() {
		others := cube.NewCover(s, g.Len()+D.Len())
		for j, d := range g.Cubes() {
			if j != i {
				others.Add(d)
			}
		}
		for _, d := range D.Cubes() {
			others.Add(d)
		}
		if verify.Covers(c, others) {
			return false
		}
	}
	return true
}

const (
	xnor = ".i 2\n.o 1\n11 1\n00 1\n.e\n"
	// Each minterm is covered by exactly two primes.
	cyclic = ".i 3\n.o 1\n000 1\n001 1\n010 1\n101 1\n110 1\n111 1\n.e\n"
	multi  = ".i 3\n.o 2\n11- 10\n1-1 10\n-11 01\n111 11\n0-0 01\n.e\n"
	dc     = ".i 3\n.o 1\n.type fd\n111 1\n110 1\n100 -\n011 1\n001 -\n.e\n"
)

func TestMinimizeXnor(t *testing.T) {
	p := readPLA(t, xnor)
	var stdout bytes.Buffer
	res, err := newMinimizer(&stdout).Minimize(p.F, p.D, p.R, true)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, pla.Write(&buf, &pla.PLA{Schema: res.Schema(), F: res}, pla.FType))
	assert.Equal(t, ".i 2\n.o 1\n.p 2\n11 1\n00 1\n.e\n", buf.String())
	assert.Empty(t, stdout.String())
}

func TestMinimize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cubes int
	}{
		{"xnor", xnor, 2},
		{"cyclic", cyclic, 3},
		{"multiple outputs", multi, 4},
		{"don't cares", dc, 2},
	}
	for _, tt := range tests {
		for _, exactCover := range []bool{true, false} {
			p := readPLA(t, tt.input)
			F, D, R := p.F.Copy(), p.D.Copy(), p.R.Copy()
			res, err := newMinimizer(nil).Minimize(p.F, p.D, p.R, exactCover)
			require.NoError(t, err, tt.name)
			assert.NoError(t, verify.Check(F, D, res), tt.name)
			assert.True(t, irredundant(res, D), "%s: %v is redundant", tt.name, lines(res))
			if exactCover {
				assert.Equal(t, tt.cubes, res.Len(), "%s: %v", tt.name, lines(res))
			} else {
				assert.GreaterOrEqual(t, res.Len(), tt.cubes, tt.name)
			}
			assert.Equal(t, lines(F), lines(p.F), "%s: input was modified", tt.name)
			assert.Equal(t, lines(R), lines(p.R), "%s: input was modified", tt.name)
		}
	}
}

func TestMinimizeKeepsEssentials(t *testing.T) {
	p := readPLA(t, ".i 3\n.o 1\n000 1\n001 1\n011 1\n111 1\n.e\n")
	primes := cube.Primes(p.F)
	part := split(primes, p.D)
	require.Len(t, part.e, 2)
	require.Len(t, part.rt, 1)
	assert.Empty(t, part.rp)
	m := newMinimizer(nil)
	m.SkipSparse = true
	res, err := m.Minimize(p.F, p.D, p.R, true)
	require.NoError(t, err)
	assert.Equal(t, lines(part.cover(part.e)), lines(res))
	assert.Equal(t, []string{"-11 1", "00- 1"}, lines(res))
}

func TestSplitCyclic(t *testing.T) {
	p := readPLA(t, cyclic)
	part := split(cube.Primes(p.F), p.D)
	assert.Empty(t, part.e)
	assert.Empty(t, part.rt)
	assert.Len(t, part.rp, 6)
	table := part.table(p.D)
	assert.Equal(t, 6, table.NumRows())
	for i := 0; i < table.NumRows(); i++ {
		assert.Len(t, table.Row(i), 2)
	}
}

func TestMinimizeLiterals(t *testing.T) {
	for _, input := range []string{xnor, cyclic, dc, ".i 4\n.o 1\n0000 1\n0001 1\n0011 1\n0111 1\n1111 1\n1110 1\n1100 1\n1000 1\n.e\n"} {
		p := readPLA(t, input)
		m := newMinimizer(nil)
		m.SkipSparse = true
		byCubes, err := m.Minimize(p.F, p.D, p.R, true)
		require.NoError(t, err)
		byLiterals, err := m.MinimizeLiterals(p.F, p.D, p.R, true)
		require.NoError(t, err)
		assert.NoError(t, verify.Check(p.F, p.D, byLiterals))
		assert.LessOrEqual(t, cube.CostOf(byLiterals).In, cube.CostOf(byCubes).In, input)
		assert.GreaterOrEqual(t, byLiterals.Len(), byCubes.Len(), input)
	}
}

func TestSchemaMismatch(t *testing.T) {
	p := readPLA(t, xnor)
	q := readPLA(t, cyclic)
	_, err := newMinimizer(nil).Minimize(p.F, q.F, nil, true)
	assert.Error(t, err)
	_, err = newMinimizer(nil).Minimize(nil, nil, nil, true)
	assert.Error(t, err)
}

func TestSparsify(t *testing.T) {
	p := readPLA(t, ".i 2\n.o 2\n1- 10\n-1 01\n11 11\n.e\n")
	res := Sparsify(p.F, p.D, p.R)
	assert.Equal(t, []string{"-1 01", "1- 10"}, lines(res))
	assert.Equal(t, 3, p.F.Len())

	p = readPLA(t, ".i 2\n.o 1\n.type fr\n11 1\n00 0\n.e\n")
	res = Sparsify(p.F, p.D, p.R)
	assert.Equal(t, []string{"-1 1"}, lines(res))
}

func TestDumpStdout(t *testing.T) {
	p := readPLA(t, xnor)
	var stdout bytes.Buffer
	m := newMinimizer(&stdout)
	m.Debug = true
	_, err := m.Minimize(p.F, p.D, p.R, true)
	require.NoError(t, err)
	assert.Equal(t, `.i 2
.o 1
# Essential primes are
11 1
00 1
# Totally redundant primes are
# Partially redundant primes are
`, stdout.String())
}

func TestDumpFiles(t *testing.T) {
	p := readPLA(t, cyclic)
	var stdout bytes.Buffer
	m := newMinimizer(&stdout)
	m.Debug = true
	m.Filename = filepath.Join(t.TempDir(), "cyclic.pla")
	_, err := m.Minimize(p.F, p.D, p.R, true)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	primes, err := os.ReadFile(m.Filename + ".primes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(primes), ".i 3\n.o 1\n# Essential primes are\n# Totally redundant primes are\n# Partially redundant primes are\n"))
	assert.Equal(t, 2+3+6, strings.Count(string(primes), "\n"))

	pi, err := os.ReadFile(m.Filename + ".pi")
	require.NoError(t, err)
	assert.Equal(t, 12, strings.Count(string(pi), "\n"))
}

func TestTrace(t *testing.T) {
	p := readPLA(t, cyclic)
	log, hook := test.NewNullLogger()
	m := New()
	m.Log = log
	m.Trace = true
	_, err := m.Minimize(p.F, p.D, p.R, true)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Stats.Calls[stepPrimes])
	assert.Equal(t, 1, m.Stats.Calls[stepMincov])
	assert.Equal(t, 1, m.Stats.Calls[stepSparse])
	assert.Len(t, hook.AllEntries(), 5)
	assert.Equal(t, "PRIMES     ", hook.AllEntries()[0].Message)
	assert.Contains(t, m.Stats.String(), "MINCOV")
}

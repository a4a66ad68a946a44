// Package exact computes minimum sum-of-products covers of (possibly
// multiple-valued) functions.
//
// The minimization enumerates all the prime implicants of the function,
// splits them into essential, totally redundant and partially redundant
// primes, and solves the covering problem induced by the partially redundant
// ones, either exactly or heuristically.
package exact

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/crillab/gopherpla/cube"
	"github.com/crillab/gopherpla/mincov"
)

// A Minimizer computes minimum covers. Its zero value is not usable: use New.
type Minimizer struct {
	Debug      bool   // Dump the primes and the covering table
	SkipSparse bool   // Do not try to make the result sparse
	Filename   string // Name of the input, used to name the dump files. "" or "(stdin)" means Stdout.
	Stdout     io.Writer
	Trace      bool // Log the time and cost of each step
	Log        logrus.FieldLogger
	Stats      Stats
}

// New returns a minimizer writing its dumps to os.Stdout and logging to the standard logger.
func New() *Minimizer {
	return &Minimizer{
		Stdout: os.Stdout,
		Log:    logrus.StandardLogger(),
	}
}

// Minimize returns a minimum cover of the function whose ON-set is F and whose
// DC-set is D, the cost being the number of cubes. R is the OFF-set; it
// is only used to make the result sparse and can be nil. If exactCover is
// false, the covering problem is solved heuristically and the result is only
// irredundant. F, D and R are not modified.
func (m *Minimizer) Minimize(F, D, R *cube.Cover, exactCover bool) (*cube.Cover, error) {
	return m.minimize(F, D, R, exactCover, false)
}

// MinimizeLiterals is like Minimize, but the cost of a prime is its number of literals.
// The weights are only accurate for binary functions.
func (m *Minimizer) MinimizeLiterals(F, D, R *cube.Cover, exactCover bool) (*cube.Cover, error) {
	return m.minimize(F, D, R, exactCover, true)
}

func (m *Minimizer) log() logrus.FieldLogger {
	if m.Log == nil {
		return logrus.StandardLogger()
	}
	return m.Log
}

func (m *Minimizer) minimize(F, D, R *cube.Cover, exactCover, weighted bool) (*cube.Cover, error) {
	if F == nil {
		return nil, errors.New("no ON-set to minimize")
	}
	s := F.Schema()
	for _, g := range []*cube.Cover{D, R} {
		if g != nil && !g.Schema().Equal(s) {
			return nil, errors.New("ON-set, DC-set and OFF-set must share the same schema")
		}
	}
	if D == nil {
		D = cube.NewCover(s, 0)
	}
	level := 0
	if m.Debug {
		level = 4
	}

	start := time.Now()
	primes := cube.Primes(cube.Join(s, F, D))
	m.trace(stepPrimes, start, primes)

	start = time.Now()
	part := split(primes, D)
	m.trace(stepEssentials, start, part.cover(part.e))

	start = time.Now()
	table := part.table(D)
	m.trace(stepTable, start, part.cover(part.rp))

	var weights []int
	if weighted {
		weights = make([]int, primes.Len())
		for _, i := range part.rp {
			weights[i] = s.Size - primes.At(i).Count()
		}
	}
	start = time.Now()
	cols, err := mincov.Solve(table, weights, !exactCover, level, m.log())
	if err != nil {
		return nil, errors.Wrap(err, "could not solve covering problem")
	}
	m.trace(stepMincov, start, primes)

	if m.Debug {
		if err := m.dump(part, table); err != nil {
			return nil, err
		}
	}

	res := cube.NewCover(s, len(part.e)+len(cols))
	for _, i := range part.e {
		res.Add(primes.At(i))
	}
	for _, col := range cols {
		res.Add(primes.At(col))
	}

	if !m.SkipSparse && R.Len() > 0 {
		start = time.Now()
		res = Sparsify(res, D, R)
		m.trace(stepSparse, start, res)
	}
	return res, nil
}

// trace records the time spent in a step and logs it if asked to.
func (m *Minimizer) trace(step int, start time.Time, f *cube.Cover) {
	d := time.Since(start)
	m.Stats.add(step, d)
	if m.Trace {
		m.log().WithFields(logrus.Fields{
			"time": d,
			"cost": cube.CostOf(f).String(),
		}).Infof("%-11s", stepNames[step])
	}
}

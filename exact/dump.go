package exact

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/crillab/gopherpla/cube"
	"github.com/crillab/gopherpla/mincov"
	"github.com/crillab/gopherpla/pla"
)

func (m *Minimizer) stdout() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}

// create opens the named file for writing, or returns Stdout if it cannot.
// The returned function closes the file.
func (m *Minimizer) create(name string) (io.Writer, func() error) {
	f, err := os.Create(name)
	if err != nil {
		m.log().WithError(err).Errorf("unable to open %s", name)
		return m.stdout(), func() error { return nil }
	}
	return f, f.Close
}

// dump writes the essential, totally redundant and partially redundant
// primes to <Filename>.primes and the covering table to <Filename>.pi.
func (m *Minimizer) dump(part *partition, table *mincov.Matrix) (err error) {
	primesOut, piOut := m.stdout(), m.stdout()
	if m.Filename != "" && m.Filename != "(stdin)" {
		var closePrimes, closePI func() error
		primesOut, closePrimes = m.create(m.Filename + ".primes")
		defer func() {
			if cerr := closePrimes(); err == nil {
				err = errors.Wrap(cerr, "could not close primes dump")
			}
		}()
		piOut, closePI = m.create(m.Filename + ".pi")
		defer func() {
			if cerr := closePI(); err == nil {
				err = errors.Wrap(cerr, "could not close PI table dump")
			}
		}()
	}

	s := part.primes.Schema()
	if err := pla.WriteHeader(primesOut, pla.New(s), pla.FType); err != nil {
		return err
	}
	w := bufio.NewWriter(primesOut)
	for _, sec := range []struct {
		title   string
		indices []int
	}{
		{"Essential", part.e},
		{"Totally redundant", part.rt},
		{"Partially redundant", part.rp},
	} {
		fmt.Fprintf(w, "# %s primes are\n", sec.title)
		writeCubes(w, s, part.cover(sec.indices))
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "could not dump primes")
	}
	return errors.Wrap(table.Write(piOut), "could not dump PI table")
}

func writeCubes(w *bufio.Writer, s *cube.Schema, f *cube.Cover) {
	for _, c := range f.Cubes() {
		w.WriteString(s.Format(c, "01"))
		w.WriteByte('\n')
	}
}

package pla

import (
	"github.com/pkg/errors"

	"github.com/crillab/gopherpla/cube"
)

// errBadRow is returned while scanning a row that must be ignored.
var errBadRow = errors.New("bad row")

// rowChar returns the next significant char of a row.
// Separators are skipped; a newline is tolerated once per row with a warning.
func (p *parser) rowChar() (byte, error) {
	for {
		ch, err := p.get()
		if err != nil {
			return 0, errBadRow
		}
		switch ch {
		case ' ', '|', '\t', '\r':
		case '\n':
			if !p.spanWarned {
				p.warn("product term(s) span more than one line (warning only)")
				p.spanWarned = true
			}
			p.line++
		default:
			return ch, nil
		}
	}
}

// readCube reads a row and adds the resulting cubes to F, D and/or R.
// A malformed row is skipped with a warning; only a symbolic variable whose
// declared size is too small is a fatal error.
func (p *parser) readCube() error {
	p.spanWarned = false
	err := p.scanCube()
	if err == errBadRow {
		rest := p.skipLine(false)
		p.log().WithField("line", p.line-1).WithField("rest", rest).Warn("input line ignored")
		return nil
	}
	return err
}

func (p *parser) scanCube() error {
	s := p.schema
	cf := s.NewCube()

	for v := 0; v < s.NumBinaryVars; v++ {
		ch, err := p.rowChar()
		if err != nil {
			return err
		}
		switch ch {
		case '2', '-':
			cf.Set(2 * v)
			cf.Set(2*v + 1)
		case '0':
			cf.Set(2 * v)
		case '1':
			cf.Set(2*v + 1)
		case '?':
		default:
			return errBadRow
		}
	}

	last := s.NumVars - 1
	for v := s.NumBinaryVars; v < last; v++ {
		if s.Symbolic(v) {
			if err := p.scanSymbolic(cf, v); err != nil {
				return err
			}
			continue
		}
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			ch, err := p.rowChar()
			if err != nil {
				return err
			}
			switch ch {
			case '1':
				cf.Set(i)
			case '0':
			default:
				return errBadRow
			}
		}
	}

	if s.Output == -1 { // No output part: the row is an ON-set cube
		p.pla.F.Add(cf)
		return nil
	}

	var cr cube.Cube
	saveF, saveD, saveR := false, false, false
	if p.kiss && s.NumVars >= 2 {
		saveF, saveR = true, true
		cr = cf.Xor(s.VarMask[s.NumVars-2])
	} else {
		cr = cf.Copy()
	}
	cd := cf.Copy()
	typ := p.pla.Type
	for i := s.FirstPart[last]; i <= s.LastPart[last]; i++ {
		ch, err := p.rowChar()
		if err != nil {
			return err
		}
		switch ch {
		case '4', '1':
			if typ&FType != 0 {
				cf.Set(i)
				saveF = true
			}
		case '3', '0':
			if typ&RType != 0 {
				cr.Set(i)
				saveR = true
			}
		case '2', '-':
			if typ&DType != 0 {
				cd.Set(i)
				saveD = true
			}
		case '~':
		default:
			return errBadRow
		}
	}
	if saveF {
		p.pla.F.Add(cf)
	}
	if saveD {
		p.pla.D.Add(cd)
	}
	if saveR {
		p.pla.R.Add(cr)
	}
	return nil
}

// scanSymbolic reads the value of symbolic var v as a label.
func (p *parser) scanSymbolic(cf cube.Cube, v int) error {
	s := p.schema
	token, err := p.word()
	if err != nil {
		return errBadRow
	}
	tail := p.kiss && v == s.NumVars-2 && v > s.NumBinaryVars // next-state field in kiss mode
	switch token {
	case "-", "ANY":
		if !tail {
			for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
				cf.Set(i)
			}
		}
		return nil
	case "~":
		return nil
	}
	varx, offset := v, 0
	if tail { // Next states share the labels of the present state
		varx, offset = v-1, s.Width(v-1)
	}
	for i := s.FirstPart[varx]; i <= s.LastPart[varx]; i++ {
		if p.pla.Labels[i] == "" {
			p.pla.Labels[i] = token
			cf.Set(i + offset)
			return nil
		}
		if p.pla.Labels[i] == token {
			cf.Set(i + offset)
			return nil
		}
	}
	return p.errorf("declared size of variable %d (counting from variable 0) is too small", v)
}

package pla

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/crillab/gopherpla/cube"
)

// Write writes p to w in the format given by typ.
// typ is either a combination of FType, DType and RType, meaning the PLA
// itself is written with the given covers, or one of the other output
// formats. ConstraintsType and SymbolicConstraintsType can be combined with
// another format: the constraints are written first.
func Write(w io.Writer, p *PLA, typ Type) error {
	bw := bufio.NewWriter(w)
	if err := write(bw, p, typ); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "could not write PLA")
}

func write(w *bufio.Writer, p *PLA, typ Type) error {
	if typ&ConstraintsType != 0 {
		writeConstraints(w, p, false)
		if typ &^= ConstraintsType; typ == 0 {
			return nil
		}
	}
	if typ&SymbolicConstraintsType != 0 {
		writeConstraints(w, p, true)
		if typ &^= SymbolicConstraintsType; typ == 0 {
			return nil
		}
	}
	switch typ {
	case PleasureType:
		writePleasure(w, p)
		return nil
	case EqntottType:
		return writeEqntott(w, p)
	case KissType:
		return writeKiss(w, p)
	}
	if typ&^FDRType != 0 {
		return errors.Errorf("cannot write PLA with type %d", typ)
	}
	writeHeader(w, p, typ)
	num := 0
	if typ&FType != 0 {
		num += p.F.Len()
	}
	if typ&DType != 0 {
		num += p.D.Len()
	}
	if typ&RType != 0 {
		num += p.R.Len()
	}
	fmt.Fprintf(w, ".p %d\n", num)
	s := p.Schema
	if typ == FType {
		for _, c := range p.F.Cubes() {
			writeCube(w, s, c, "01")
		}
		_, err := w.WriteString(".e\n")
		return err
	}
	if typ&FType != 0 {
		for _, c := range p.F.Cubes() {
			writeCube(w, s, c, "~1")
		}
	}
	if typ&DType != 0 {
		for _, c := range p.D.Cubes() {
			writeCube(w, s, c, "~2")
		}
	}
	if typ&RType != 0 {
		for _, c := range p.R.Cubes() {
			writeCube(w, s, c, "~0")
		}
	}
	_, err := w.WriteString(".end\n")
	return err
}

// WriteHeader writes the directives describing p: type, size, labels and phase.
func WriteHeader(w io.Writer, p *PLA, typ Type) error {
	bw := bufio.NewWriter(w)
	writeHeader(bw, p, typ)
	return errors.Wrap(bw.Flush(), "could not write PLA header")
}

func writeHeader(w *bufio.Writer, p *PLA, typ Type) {
	s := p.Schema
	if typ != FType {
		w.WriteString(".type ")
		for _, t := range types[:3] {
			if typ&t.value != 0 {
				w.WriteString(t.key)
			}
		}
		w.WriteByte('\n')
	}
	if s.NumMVVars <= 1 {
		fmt.Fprintf(w, ".i %d\n", s.NumBinaryVars)
		if s.Output != -1 {
			fmt.Fprintf(w, ".o %d\n", s.Width(s.Output))
		}
	} else {
		fmt.Fprintf(w, ".mv %d %d", s.NumVars, s.NumBinaryVars)
		for v := s.NumBinaryVars; v < s.NumVars; v++ {
			fmt.Fprintf(w, " %d", s.Width(v))
		}
		w.WriteByte('\n')
	}
	if _, ok := p.Label(1); ok && s.NumBinaryVars > 0 {
		w.WriteString(".ilb")
		for v := 0; v < s.NumBinaryVars; v++ {
			fmt.Fprintf(w, " %s", p.inLabel(v))
		}
		w.WriteByte('\n')
	}
	if s.Output != -1 {
		if _, ok := p.Label(s.FirstPart[s.Output]); ok {
			w.WriteString(".ob")
			for i := 0; i < s.Width(s.Output); i++ {
				fmt.Fprintf(w, " %s", p.outLabel(i))
			}
			w.WriteByte('\n')
		}
	}
	for v := s.NumBinaryVars; v < s.NumVars-1; v++ {
		if _, ok := p.Label(s.FirstPart[v]); !ok {
			continue
		}
		fmt.Fprintf(w, ".label var=%d", v)
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			fmt.Fprintf(w, " %s", p.Labels[i])
		}
		w.WriteByte('\n')
	}
	if p.Phase != nil && s.Output != -1 {
		w.WriteString("#.phase ")
		for i := s.FirstPart[s.Output]; i <= s.LastPart[s.Output]; i++ {
			w.WriteByte("01"[b2i(p.Phase.Has(i))])
		}
		w.WriteByte('\n')
	}
}

func writeCube(w *bufio.Writer, s *cube.Schema, c cube.Cube, outMap string) {
	w.WriteString(s.Format(c, outMap))
	w.WriteByte('\n')
}

// writePleasure writes p for a PLA folding tool: every bit of the cube is
// written, and each output is written according to its phase.
func writePleasure(w *bufio.Writer, p *PLA) {
	s := p.Schema
	w.WriteString(".option unmerged\n")
	p.MakeupLabels()

	w.WriteString(".label")
	col := 6
	for i := 0; i < s.Size; i++ {
		l := p.Labels[i]
		if col+len(l) > 75 {
			w.WriteString(" \\\n")
			col = 0
		} else {
			w.WriteByte(' ')
			col++
		}
		w.WriteString(l)
		col += len(l)
	}

	w.WriteString("\n.group")
	col = 6
	for v := 0; v < s.NumVars-1; v++ {
		w.WriteString(" (")
		col += 2
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			l := p.Labels[i]
			if col+len(l) > 75 {
				w.WriteString(" \\\n")
				col = 0
			} else if i != s.FirstPart[v] {
				w.WriteByte(' ')
				col++
			}
			w.WriteString(l)
			col += len(l)
		}
		w.WriteByte(')')
		col++
	}
	w.WriteByte('\n')

	fmt.Fprintf(w, ".p %d\n", p.F.Len())
	for _, c := range p.F.Cubes() {
		for i := 0; i < 2*s.NumBinaryVars; i++ {
			w.WriteByte("~1"[b2i(c.Has(i))])
		}
		for i := 2 * s.NumBinaryVars; i < s.Size; i++ {
			if s.Output != -1 && i == s.FirstPart[s.Output] {
				break
			}
			w.WriteByte("1~"[b2i(c.Has(i))])
		}
		if s.Output != -1 {
			w.WriteByte(' ')
			for i := s.FirstPart[s.Output]; i <= s.LastPart[s.Output]; i++ {
				outMap := "~1"
				if p.Phase != nil && !p.Phase.Has(i) {
					outMap = "~0"
				}
				w.WriteByte(outMap[b2i(c.Has(i))])
			}
		}
		w.WriteByte('\n')
	}
	w.WriteString(".end\n")
}

// writeEqntott writes one equation per output, as a sum of products.
func writeEqntott(w *bufio.Writer, p *PLA) error {
	s := p.Schema
	if s.Output == -1 {
		return errors.New("cannot have no-output function for EQNTOTT output mode")
	}
	if s.NumMVVars != 1 {
		return errors.New("must have binary-valued function for EQNTOTT output mode")
	}
	p.MakeupLabels()
	for i := 0; i < s.Width(s.Output); i++ {
		out := p.outLabel(i)
		fmt.Fprintf(w, "%s = ", out)
		col := len(out) + 3
		firstOr := true
		for _, c := range p.F.Cubes() {
			if !c.Has(s.FirstPart[s.Output] + i) {
				continue
			}
			if firstOr {
				w.WriteByte('(')
				col++
			} else {
				w.WriteString(" | (")
				col += 4
			}
			firstOr = false
			firstAnd := true
			for v := 0; v < s.NumBinaryVars; v++ {
				x := s.Input(c, v)
				if x == cube.Dash {
					continue
				}
				in := p.inLabel(v)
				if col+len(in) > 72 {
					w.WriteString("\n    ")
					col = 4
				}
				if !firstAnd {
					w.WriteByte('&')
					col++
				}
				firstAnd = false
				if x == cube.Zero {
					w.WriteByte('!')
					col++
				}
				w.WriteString(in)
				col += len(in)
			}
			w.WriteByte(')')
			col++
		}
		w.WriteString(";\n\n")
	}
	return nil
}

// writeKiss writes F and D with the labels of the multiple-valued vars
// instead of their positional encoding.
func writeKiss(w *bufio.Writer, p *PLA) error {
	for _, c := range p.F.Cubes() {
		if err := writeKissCube(w, p, c, "~1"); err != nil {
			return err
		}
	}
	for _, c := range p.D.Cubes() {
		if err := writeKissCube(w, p, c, "~2"); err != nil {
			return err
		}
	}
	return nil
}

func writeKissCube(w *bufio.Writer, p *PLA, c cube.Cube, outMap string) error {
	s := p.Schema
	for v := 0; v < s.NumBinaryVars; v++ {
		w.WriteByte("?01-"[s.Input(c, v)])
	}
	for v := s.NumBinaryVars; v < s.NumVars-1; v++ {
		w.WriteByte(' ')
		if s.VarFull(c, v) {
			w.WriteByte('-')
			continue
		}
		part := -1
		for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
			if !c.Has(i) {
				continue
			}
			if part != -1 {
				return errors.Errorf("more than 1 part in symbolic variable %d", v)
			}
			part = i
		}
		if part == -1 {
			w.WriteByte('~')
		} else {
			w.WriteString(p.Labels[part])
		}
	}
	if s.Output != -1 {
		w.WriteByte(' ')
		for i := s.FirstPart[s.Output]; i <= s.LastPart[s.Output]; i++ {
			w.WriteByte(outMap[b2i(c.Has(i))])
		}
	}
	w.WriteByte('\n')
	return nil
}

// writeConstraints writes, for each multiple-valued input var, the distinct
// sets of values appearing in F, with the number of cubes using them.
// Singletons and full sets carry no constraint.
func writeConstraints(w *bufio.Writer, p *PLA, symbolic bool) {
	s := p.Schema
	if s.NumVars-s.NumBinaryVars <= 1 {
		return
	}
	p.MakeupLabels()
	for v := s.NumBinaryVars; v < s.NumVars-1; v++ {
		width := s.Width(v)
		var sets [][]int
		unconstrained := 0
		for _, c := range p.F.Cubes() {
			var set []int
			for j := 0; j < width; j++ {
				if c.Has(s.FirstPart[v] + j) {
					set = append(set, j)
				}
			}
			if len(set) == 1 || len(set) == width {
				unconstrained++
				continue
			}
			sets = append(sets, set)
		}
		weights := make([]int, len(sets))
		counted := make([]bool, len(sets))
		for i := range sets {
			if counted[i] {
				continue
			}
			weights[i] = 1
			for j := i + 1; j < len(sets); j++ {
				if !counted[j] && equalInts(sets[i], sets[j]) {
					weights[i]++
					counted[j] = true
				}
			}
		}
		if !symbolic {
			fmt.Fprintf(w, "# Symbolic constraints for variable %d (Numeric form)\n", v)
			fmt.Fprintf(w, "# unconstrained weight = %d\n", unconstrained)
			fmt.Fprintf(w, "num_codes=%d\n", width)
			for i, set := range sets {
				if weights[i] == 0 {
					continue
				}
				fmt.Fprintf(w, "weight=%d: ", weights[i])
				for _, j := range set {
					fmt.Fprintf(w, " %d", j)
				}
				w.WriteByte('\n')
			}
			continue
		}
		fmt.Fprintf(w, "# Symbolic constraints for variable %d (Symbolic form)\n", v)
		for i, set := range sets {
			if weights[i] == 0 {
				continue
			}
			fmt.Fprintf(w, "#   w=%d: (", weights[i])
			for _, j := range set {
				fmt.Fprintf(w, " %s", p.Labels[s.FirstPart[v]+j])
			}
			w.WriteString(" )\n")
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

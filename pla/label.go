package pla

import (
	"fmt"
	"io"
	"strings"

	"github.com/crillab/gopherpla/cube"
)

// MakeupLabels gives a name to every bit position that has none:
// "v<var>.bar" and "v<var>" for the values of binary vars, "v<var>.<value>"
// for multiple-valued vars.
func (p *PLA) MakeupLabels() {
	s := p.Schema
	if p.Labels == nil {
		p.allocLabels()
	}
	for v := 0; v < s.NumVars; v++ {
		for i := 0; i < s.Width(v); i++ {
			ind := s.FirstPart[v] + i
			if p.Labels[ind] != "" {
				continue
			}
			switch {
			case v >= s.NumBinaryVars:
				p.Labels[ind] = fmt.Sprintf("v%d.%d", v, i)
			case i%2 == 0:
				p.Labels[ind] = fmt.Sprintf("v%d.bar", v)
			default:
				p.Labels[ind] = fmt.Sprintf("v%d", v)
			}
		}
	}
}

// Summary writes a short description of p: its size, the cost of its covers
// and, when they are set, its phase, pairs and symbolic declarations.
func (p *PLA) Summary(w io.Writer) error {
	s := p.Schema
	name := p.Filename
	if name == "" {
		name = "(stdin)"
	}
	_, err := fmt.Fprintf(w, "# %s: %d binary inputs, %d multiple-valued vars, %d outputs\n",
		name, s.NumBinaryVars, s.NumMVVars, outputs(s))
	if err != nil {
		return err
	}
	for _, c := range []struct {
		name string
		f    *cube.Cover
	}{{"F", p.F}, {"D", p.D}, {"R", p.R}} {
		if c.f == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "# %s: %s\n", c.name, cube.CostOf(c.f)); err != nil {
			return err
		}
	}
	var sb strings.Builder
	if p.Phase != nil && s.Output != -1 {
		sb.WriteString("# phase is ")
		for i := s.FirstPart[s.Output]; i <= s.LastPart[s.Output]; i++ {
			sb.WriteByte("01"[b2i(p.Phase.Has(i))])
		}
		sb.WriteByte('\n')
	}
	if p.Pair != nil {
		sb.WriteString("# two-bit decoders:")
		for i := 0; i < p.Pair.Len(); i++ {
			fmt.Fprintf(&sb, " (%d %d)", p.Pair.Var1[i], p.Pair.Var2[i])
		}
		sb.WriteByte('\n')
	}
	for _, decl := range p.Symbolic {
		sb.WriteString("# symbolic:")
		for _, ref := range decl.Refs {
			fmt.Fprintf(&sb, " %d", ref.Var)
		}
		sb.WriteByte('\n')
	}
	for _, decl := range p.SymbolicOutput {
		sb.WriteString("# output symbolic:")
		for _, ref := range decl.Refs {
			fmt.Fprintf(&sb, " %d", ref.Pos)
		}
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

func outputs(s *cube.Schema) int {
	if s.Output == -1 {
		return 0
	}
	return s.Width(s.Output)
}

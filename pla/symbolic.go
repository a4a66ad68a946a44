package pla

import (
	"github.com/pkg/errors"

	"github.com/crillab/gopherpla/cube"
)

// maxSymbolicBits is the max number of binary vars that can be grouped in a symbolic var.
const maxSymbolicBits = 16

// mapSymbolic replaces the binary vars listed in each .symbolic declaration
// by a multiple-valued var with one value per combination of these vars.
// The first listed var is the most significant bit of the value index.
// New vars are inserted after the existing multiple-valued inputs.
func (pla *PLA) mapSymbolic() error {
	s := pla.Schema
	if s.Output == -1 {
		return errors.New("symbolic inputs need an output part")
	}
	used := make([]bool, s.NumBinaryVars)
	for i, decl := range pla.Symbolic {
		n := len(decl.Refs)
		if n == 0 {
			return errors.Errorf("symbolic declaration #%d lists no variable", i+1)
		}
		if n > maxSymbolicBits {
			return errors.Errorf("symbolic declaration #%d lists %d variables, max is %d", i+1, n, maxSymbolicBits)
		}
		if len(decl.Labels) > 1<<n {
			return errors.Errorf("symbolic declaration #%d has %d labels for %d values", i+1, len(decl.Labels), 1<<n)
		}
		for _, ref := range decl.Refs {
			if ref.Var < 0 || ref.Var >= s.NumBinaryVars {
				return errors.Errorf("symbolic declaration #%d: variable %d is not a binary variable", i+1, ref.Var)
			}
			if used[ref.Var] {
				return errors.Errorf("symbolic declaration #%d: variable %d is already used", i+1, ref.Var)
			}
			used[ref.Var] = true
		}
	}

	var kept []int // Old binary vars still there, in order
	newIndex := make([]int, s.NumBinaryVars)
	for v := 0; v < s.NumBinaryVars; v++ {
		newIndex[v] = -1
		if !used[v] {
			newIndex[v] = len(kept)
			kept = append(kept, v)
		}
	}
	var sizes []int
	for v := s.NumBinaryVars; v < s.Output; v++ {
		sizes = append(sizes, s.Width(v))
	}
	for _, decl := range pla.Symbolic {
		sizes = append(sizes, 1<<len(decl.Refs))
	}
	sizes = append(sizes, s.Width(s.Output))
	ns, err := cube.NewSchema(len(kept), sizes...)
	if err != nil {
		return errors.Wrap(err, "could not map symbolic variables")
	}
	firstSym := ns.NumBinaryVars + s.Output - s.NumBinaryVars

	convert := func(c cube.Cube) cube.Cube {
		res := ns.NewCube()
		for j, v := range kept {
			if c.Has(2 * v) {
				res.Set(2 * j)
			}
			if c.Has(2*v + 1) {
				res.Set(2*j + 1)
			}
		}
		for v := s.NumBinaryVars; v < s.NumVars; v++ {
			nv := v - s.NumBinaryVars + ns.NumBinaryVars
			if v == s.Output {
				nv = ns.Output
			}
			for i := 0; i < s.Width(v); i++ {
				if c.Has(s.FirstPart[v] + i) {
					res.Set(ns.FirstPart[nv] + i)
				}
			}
		}
		for k, decl := range pla.Symbolic {
			nv := firstSym + k
			n := len(decl.Refs)
			for code := 0; code < 1<<n; code++ {
				ok := true
				for j, ref := range decl.Refs {
					bit := (code >> (n - 1 - j)) & 1
					if !c.Has(2*ref.Var + bit) {
						ok = false
						break
					}
				}
				if ok {
					res.Set(ns.FirstPart[nv] + code)
				}
			}
		}
		return res
	}
	remap := func(f *cube.Cover) *cube.Cover {
		if f == nil {
			return nil
		}
		res := cube.NewCover(ns, f.Len())
		for _, c := range f.Cubes() {
			res.Add(convert(c))
		}
		return res
	}

	labels := make([]string, ns.Size)
	for j, v := range kept {
		labels[2*j] = pla.Labels[2*v]
		labels[2*j+1] = pla.Labels[2*v+1]
	}
	for v := s.NumBinaryVars; v < s.NumVars; v++ {
		nv := v - s.NumBinaryVars + ns.NumBinaryVars
		if v == s.Output {
			nv = ns.Output
		}
		copy(labels[ns.FirstPart[nv]:ns.LastPart[nv]+1], pla.Labels[s.FirstPart[v]:s.LastPart[v]+1])
	}
	for k, decl := range pla.Symbolic {
		copy(labels[ns.FirstPart[firstSym+k]:], decl.Labels)
	}

	if pla.Pair != nil {
		for i := 0; i < pla.Pair.Len(); i++ {
			v1, v2 := newIndex[pla.Pair.Var1[i]-1], newIndex[pla.Pair.Var2[i]-1]
			if v1 == -1 || v2 == -1 {
				return errors.Errorf("paired variables %d and %d cannot be symbolic", pla.Pair.Var1[i], pla.Pair.Var2[i])
			}
			pla.Pair.Var1[i], pla.Pair.Var2[i] = v1+1, v2+1
		}
	}

	pla.F, pla.D, pla.R = remap(pla.F), remap(pla.D), remap(pla.R)
	if pla.Phase != nil {
		pla.Phase = convert(pla.Phase)
	}
	pla.Schema = ns
	pla.Labels = labels
	return nil
}

// mapOutputSymbolic replaces the outputs listed in each .symbolic-output
// declaration by one output per combination of these outputs. The output
// for combination m is on iff each listed output is on when its bit in m is
// 1 and off when it is 0. New outputs come after the remaining ones.
// The OFF-set is only kept for the remaining outputs and must be
// recomputed by the caller.
func (pla *PLA) mapOutputSymbolic() error {
	s := pla.Schema
	if s.Output == -1 {
		return errors.New("symbolic outputs need an output part")
	}
	if pla.R == nil {
		return errors.New("symbolic outputs need an OFF-set")
	}
	width := s.Width(s.Output)
	used := make([]bool, width)
	for i, decl := range pla.SymbolicOutput {
		n := len(decl.Refs)
		if n == 0 {
			return errors.Errorf("symbolic output declaration #%d lists no output", i+1)
		}
		if n > maxSymbolicBits {
			return errors.Errorf("symbolic output declaration #%d lists %d outputs, max is %d", i+1, n, maxSymbolicBits)
		}
		if len(decl.Labels) > 1<<n {
			return errors.Errorf("symbolic output declaration #%d has %d labels for %d values", i+1, len(decl.Labels), 1<<n)
		}
		for _, ref := range decl.Refs {
			if ref.Var != s.Output || ref.Pos < 0 || ref.Pos >= width {
				return errors.Errorf("symbolic output declaration #%d: column (%d, %d) is not an output", i+1, ref.Var, ref.Pos)
			}
			if used[ref.Pos] {
				return errors.Errorf("symbolic output declaration #%d: output %d is already used", i+1, ref.Pos)
			}
			used[ref.Pos] = true
		}
	}

	var kept []int
	for i := 0; i < width; i++ {
		if !used[i] {
			kept = append(kept, i)
		}
	}
	newWidth := len(kept)
	for _, decl := range pla.SymbolicOutput {
		newWidth += 1 << len(decl.Refs)
	}
	sizes := make([]int, 0, s.NumMVVars)
	for v := s.NumBinaryVars; v < s.Output; v++ {
		sizes = append(sizes, s.Width(v))
	}
	ns, err := cube.NewSchema(s.NumBinaryVars, append(sizes, newWidth)...)
	if err != nil {
		return errors.Wrap(err, "could not map symbolic outputs")
	}
	oldOut, newOut := s.FirstPart[s.Output], ns.FirstPart[ns.Output]

	// inputs returns the input part of c in the new schema, all outputs set.
	inputs := func(c cube.Cube) cube.Cube {
		res := ns.NewCube()
		for i := 0; i < oldOut; i++ {
			if c.Has(i) {
				res.Set(i)
			}
		}
		return res.Or(ns.VarMask[ns.Output])
	}
	// keep copies the cubes of f restricted to the remaining outputs.
	keep := func(f *cube.Cover, dst *cube.Cover) {
		for _, c := range f.Cubes() {
			res := inputs(c).AndNot(ns.VarMask[ns.Output])
			asserted := false
			for j, o := range kept {
				if c.Has(oldOut + o) {
					res.Set(newOut + j)
					asserted = true
				}
			}
			if asserted {
				dst.Add(res)
			}
		}
	}
	// restrict returns the input parts of the cubes of f asserting output o.
	restrict := func(f *cube.Cover, o int) *cube.Cover {
		res := cube.NewCover(ns, f.Len())
		for _, c := range f.Cubes() {
			if c.Has(oldOut + o) {
				res.Add(inputs(c))
			}
		}
		return res
	}

	f1 := cube.NewCover(ns, pla.F.Len())
	d1 := cube.NewCover(ns, pla.D.Len())
	r1 := cube.NewCover(ns, pla.R.Len())
	keep(pla.F, f1)
	keep(pla.D, d1)
	keep(pla.R, r1)

	labels := make([]string, ns.Size)
	copy(labels, pla.Labels[:oldOut])
	for j, o := range kept {
		labels[newOut+j] = pla.Labels[oldOut+o]
	}
	var phase cube.Cube
	if pla.Phase != nil {
		phase = inputs(pla.Phase).AndNot(ns.VarMask[ns.Output])
		for j, o := range kept {
			if pla.Phase.Has(oldOut + o) {
				phase.Set(newOut + j)
			}
		}
	}

	first := newOut + len(kept)
	for _, decl := range pla.SymbolicOutput {
		n := len(decl.Refs)
		on := make([]*cube.Cover, n)
		off := make([]*cube.Cover, n)
		dc := cube.NewCover(ns, 0)
		for j, ref := range decl.Refs {
			on[j] = restrict(pla.F, ref.Pos)
			off[j] = restrict(pla.R, ref.Pos)
			for _, c := range restrict(pla.D, ref.Pos).Cubes() {
				dc.Add(c)
			}
		}
		outs := ns.NewCube()
		for code := 0; code < 1<<n; code++ {
			outs.Set(first + code)
		}
		for code := 0; code < 1<<n; code++ {
			prod := cube.NewCover(ns, 1)
			prod.Add(ns.Full)
			for j := 0; j < n && prod.Len() > 0; j++ {
				if (code>>(n-1-j))&1 == 1 {
					prod = cube.Intersect(prod, on[j])
				} else {
					prod = cube.Intersect(prod, off[j])
				}
			}
			for _, c := range prod.Cubes() {
				c = c.AndNot(ns.VarMask[ns.Output])
				c.Set(first + code)
				f1.Add(c)
			}
		}
		for _, c := range cube.Absorb(dc).Cubes() {
			d1.Add(c.AndNot(ns.VarMask[ns.Output]).Or(outs))
		}
		for code := 0; code < 1<<n; code++ {
			if code < len(decl.Labels) {
				labels[first+code] = decl.Labels[code]
			}
			if phase != nil {
				phase.Set(first + code)
			}
		}
		first += 1 << n
	}

	pla.Schema = ns
	pla.F, pla.D, pla.R = f1, d1, r1
	pla.Labels = labels
	pla.Phase = phase
	return nil
}

package pla

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/crillab/gopherpla/cube"
)

// Read reads the next function from the input and returns it once its
// ON-set, DC-set and OFF-set are set up.
//
// typ is the logical type of the PLA, i.e which covers the rows may
// populate, unless a .type directive says otherwise. needsDCSet and
// needsOffset say whether the DC-set and the OFF-set must be computed
// by complementation when they are not given by the input. A .phase
// directive, a .symbolic-output directive or r.Pos imply needsOffset.
//
// Read returns io.EOF if the input ended before any row was read.
func (r *Reader) Read(needsDCSet, needsOffset bool, typ Type) (*PLA, error) {
	pla := &PLA{Type: typ, Filename: r.Filename}
	p := &parser{Reader: r, pla: pla}
	start := time.Now()
	if err := p.parse(); err != nil {
		return nil, err
	}
	if pla.F == nil {
		return nil, io.EOF
	}
	s := p.schema
	for v := range s.PartSize {
		if s.PartSize[v] < 0 {
			s.PartSize[v] = -s.PartSize[v]
		}
	}
	if p.kiss {
		if err := pla.mergeKiss(); err != nil {
			return nil, err
		}
	}
	log := r.log().WithFields(logrus.Fields{"file": pla.Filename})
	log.WithFields(logrus.Fields{"time": time.Since(start), "cost": cube.CostOf(pla.F).String()}).Debug("PLA read")

	start = time.Now()
	if r.Pos || pla.Phase != nil || pla.SymbolicOutput != nil {
		needsOffset = true
	}
	switch {
	case needsOffset && (pla.Type == FType || pla.Type == FDType):
		pla.R = cube.Complement(cube.Join(s, pla.F, pla.D))
		log.WithFields(logrus.Fields{"time": time.Since(start), "cost": cube.CostOf(pla.R).String()}).Debug("OFF-set computed")
	case needsDCSet && pla.Type == FRType:
		x := cube.Join(s, pla.F, pla.R)
		if s.Output != -1 {
			x = cube.D1Merge(x, s.Output)
		}
		pla.D = cube.Complement(x)
		log.WithFields(logrus.Fields{"time": time.Since(start), "cost": cube.CostOf(pla.D).String()}).Debug("DC-set computed")
	case pla.Type == RType || pla.Type == DRType:
		pla.F = cube.Complement(cube.Join(s, pla.D, pla.R))
		log.WithFields(logrus.Fields{"time": time.Since(start), "cost": cube.CostOf(pla.F).String()}).Debug("ON-set computed")
	}

	if r.Pos {
		if s.Output == -1 {
			return nil, errors.New("cannot invert the phase of a function without outputs")
		}
		pla.F, pla.R = pla.R, pla.F
		pla.Phase = s.Full.AndNot(s.VarMask[s.Output])
	} else if pla.Phase != nil {
		pla.SetPhase()
	}

	if pla.Pair != nil {
		if err := pla.checkPair(); err != nil {
			return nil, err
		}
	}

	if pla.Symbolic != nil {
		if err := pla.mapSymbolic(); err != nil {
			return nil, err
		}
		log.WithField("cost", cube.CostOf(pla.F).String()).Debug("input symbolic variables mapped")
	}
	if pla.SymbolicOutput != nil {
		if err := pla.mapOutputSymbolic(); err != nil {
			return nil, err
		}
		log.WithField("cost", cube.CostOf(pla.F).String()).Debug("output symbolic variables mapped")
		if needsOffset {
			pla.R = cube.Complement(cube.Join(pla.Schema, pla.F, pla.D))
		}
	}
	return pla, nil
}

// mergeKiss merges the next-state field with the outputs: the second to last
// var, which gets the labels of the third to last one, is widened by the
// output part, which disappears.
func (pla *PLA) mergeKiss() error {
	s := pla.Schema
	if s.NumVars-s.NumBinaryVars < 3 {
		return errors.New("with .kiss option, there must be at least three multiple-valued variables")
	}
	third, second := s.NumVars-3, s.NumVars-2
	if s.PartSize[third] != s.PartSize[second] {
		return errors.Errorf("with .kiss option, third to last and second to last variables must be the same size (%d != %d)", s.PartSize[third], s.PartSize[second])
	}
	for i := 0; i < s.PartSize[second]; i++ {
		pla.Labels[s.FirstPart[second]+i] = pla.Labels[s.FirstPart[third]+i]
	}
	s.PartSize[second] += s.PartSize[s.NumVars-1]
	s.NumVars--
	return s.Setup()
}

// SetPhase applies the phase of p: for each output whose phase bit is
// cleared, the ON-set and the OFF-set are exchanged.
func (pla *PLA) SetPhase() {
	s := pla.Schema
	outMask := s.VarMask[s.Output]
	inverted := s.Full.AndNot(outMask).Or(outMask.AndNot(pla.Phase))
	f1 := cube.NewCover(s, pla.F.Len()+pla.R.Len())
	r1 := cube.NewCover(s, pla.F.Len()+pla.R.Len())
	split := func(from, same, other *cube.Cover) {
		for _, c := range from.Cubes() {
			if t := c.And(pla.Phase); !t.Disjoint(outMask) {
				same.Add(t)
			}
			if t := c.And(inverted); !t.Disjoint(outMask) {
				other.Add(t)
			}
		}
	}
	split(pla.F, f1, r1)
	split(pla.R, r1, f1)
	pla.F, pla.R = f1, r1
}

// checkPair makes sure the pairs reference binary variables.
func (pla *PLA) checkPair() error {
	n := pla.Schema.NumBinaryVars
	for i := 0; i < pla.Pair.Len(); i++ {
		v1, v2 := pla.Pair.Var1[i], pla.Pair.Var2[i]
		if v1 < 1 || v1 > n || v2 < 1 || v2 > n {
			return errors.Errorf("pair (%d %d) does not reference binary variables", v1, v2)
		}
		if v1 == v2 {
			return errors.Errorf("variable %d cannot be paired with itself", v1)
		}
	}
	return nil
}

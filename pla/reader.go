package pla

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/crillab/gopherpla/cube"
)

// A Reader reads PLA functions from an input stream.
// Several functions can be read in a row from the same stream, each one
// ending with .e or .end.
type Reader struct {
	EchoComments bool      // Echo comment lines (and lines read before the PLA size) to Echo
	EchoUnknown  bool      // Echo unknown directives to Echo
	Echo         io.Writer // Where comments and unknown directives are echoed. Defaults to os.Stdout.
	// Pos asks for the complement of the function to be minimized: F and R
	// are swapped and the phase records that every output was inverted.
	Pos      bool
	Filename string             // Name of the input, recorded in each PLA read
	Log      logrus.FieldLogger // Defaults to the standard logrus logger

	r    *bufio.Reader
	line int
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		Echo: os.Stdout,
		r:    bufio.NewReader(r),
		line: 1,
	}
}

func (r *Reader) log() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

// parser holds the state of the function being read.
type parser struct {
	*Reader
	pla        *PLA
	schema     *cube.Schema // nil until .i or .mv is read
	fixed      bool         // true once the schema is set up
	kiss       bool         // .kiss was read
	spanWarned bool         // A warning was issued for a row spanning several lines
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *parser) warn(format string, args ...interface{}) {
	p.log().WithField("line", p.line).Warnf(format, args...)
}

func (p *parser) get() (byte, error) {
	return p.r.ReadByte()
}

func (p *parser) unget() {
	_ = p.r.UnreadByte()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// skipLine discards the rest of the current line, echoing it if asked to.
// It returns the discarded text.
func (p *parser) skipLine(echo bool) string {
	var sb strings.Builder
	for {
		ch, err := p.get()
		if err != nil || ch == '\n' {
			break
		}
		sb.WriteByte(ch)
	}
	if echo && p.Echo != nil {
		fmt.Fprintf(p.Echo, "%s\n", sb.String())
	}
	p.line++
	return sb.String()
}

// word skips spaces, then reads and returns the next whitespace-delimited word.
// The delimiter is left in the stream.
func (p *parser) word() (string, error) {
	ch, err := p.get()
	for err == nil && isSpace(ch) {
		if ch == '\n' {
			p.line++
		}
		ch, err = p.get()
	}
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for err == nil && !isSpace(ch) {
		sb.WriteByte(ch)
		ch, err = p.get()
	}
	if err == nil {
		p.unget()
	} else if err != io.EOF {
		return "", err
	}
	return sb.String(), nil
}

func atoi(word string) (int, error) {
	return strconv.Atoi(word)
}

// int reads the next word as an integer.
func (p *parser) int() (int, error) {
	w, err := p.word()
	if err != nil {
		return 0, err
	}
	return atoi(w)
}

// parse reads directives and rows until .e, .end or the end of the input.
func (p *parser) parse() error {
	for {
		ch, err := p.get()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "could not read PLA")
		}
		switch ch {
		case '\n':
			p.line++
		case ' ', '\t', '\f', '\r':
		case '#':
			p.unget()
			p.skipLine(p.EchoComments)
		case '.':
			done, err := p.directive()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		default:
			p.unget()
			if !p.fixed { // No size yet: this is a leading comment
				if p.EchoComments && p.Echo != nil {
					fmt.Fprint(p.Echo, "#")
				}
				p.skipLine(p.EchoComments)
				continue
			}
			if p.pla.F == nil {
				p.pla.F = cube.NewCover(p.schema, 10)
				p.pla.D = cube.NewCover(p.schema, 10)
				p.pla.R = cube.NewCover(p.schema, 10)
			}
			if err := p.readCube(); err != nil {
				return err
			}
		}
	}
}

// setup fixes the schema once its size is known.
func (p *parser) setup() error {
	if err := p.schema.Setup(); err != nil {
		return p.errorf("invalid PLA size: %v", err)
	}
	p.fixed = true
	p.pla.Schema = p.schema
	p.pla.allocLabels()
	return nil
}

// directive reads a directive, the leading '.' being already read.
// It returns true if the directive ends the PLA.
func (p *parser) directive() (done bool, err error) {
	word, err := p.word()
	if err != nil && err != io.EOF {
		return false, err
	}
	switch word {
	case "i":
		return false, p.readInputs()
	case "o":
		return false, p.readOutputs()
	case "mv":
		return false, p.readMV()
	case "p":
		if _, err := p.int(); err != nil {
			p.warn("invalid .p directive ignored")
		}
	case "e", "end":
		return true, nil
	case "kiss":
		p.kiss = true
	case "type":
		return false, p.readType()
	case "ilb":
		return false, p.readInputLabels()
	case "ob":
		return false, p.readOutputLabels()
	case "label":
		return false, p.readLabels()
	case "symbolic":
		sym, err := p.readSymbolic()
		if err != nil {
			return false, p.errorf("error reading .symbolic: %v", err)
		}
		p.pla.Symbolic = append(p.pla.Symbolic, sym)
	case "symbolic-output":
		sym, err := p.readSymbolic()
		if err != nil {
			return false, p.errorf("error reading .symbolic-output: %v", err)
		}
		p.pla.SymbolicOutput = append(p.pla.SymbolicOutput, sym)
	case "phase":
		return false, p.readPhase()
	case "pair":
		return false, p.readPair()
	default:
		if p.EchoUnknown && p.Echo != nil {
			fmt.Fprintf(p.Echo, ".%s ", word)
		}
		p.skipLine(p.EchoUnknown)
	}
	return false, nil
}

func (p *parser) readInputs() error {
	if p.fixed {
		p.warn("extra .i ignored")
		p.skipLine(false)
		return nil
	}
	n, err := p.int()
	if err != nil || n < 0 {
		return p.errorf("error reading .i")
	}
	p.schema = &cube.Schema{NumBinaryVars: n, NumVars: n + 1, PartSize: make([]int, n+1)}
	return nil
}

func (p *parser) readOutputs() error {
	if p.fixed {
		p.warn("extra .o ignored")
		p.skipLine(false)
		return nil
	}
	if p.schema == nil {
		return p.errorf(".o cannot appear before .i")
	}
	n, err := p.int()
	if err != nil {
		return p.errorf("error reading .o")
	}
	p.schema.PartSize[p.schema.NumVars-1] = n
	return p.setup()
}

func (p *parser) readMV() error {
	if p.fixed {
		p.warn("extra .mv ignored")
		p.skipLine(false)
		return nil
	}
	if p.schema != nil {
		return p.errorf("cannot mix .i and .mv")
	}
	nv, err := p.int()
	if err != nil {
		return p.errorf("error reading .mv")
	}
	nb, err := p.int()
	if err != nil {
		return p.errorf("error reading .mv")
	}
	if nb < 0 {
		return p.errorf("num_binary_vars (second field of .mv) cannot be negative")
	}
	if nv < nb {
		return p.errorf("num_vars (1st field of .mv) must exceed num_binary_vars (2nd field of .mv)")
	}
	s := &cube.Schema{NumBinaryVars: nb, NumVars: nv, PartSize: make([]int, nv)}
	for v := nb; v < nv; v++ {
		if s.PartSize[v], err = p.int(); err != nil {
			return p.errorf("error reading .mv")
		}
	}
	p.schema = s
	return p.setup()
}

func (p *parser) readType() error {
	word, err := p.word()
	if err != nil {
		return p.errorf("error reading .type")
	}
	for _, t := range types[:7] {
		if t.key == word {
			p.pla.Type = t.value
			return nil
		}
	}
	return p.errorf("unknown type %q in .type command", word)
}

func (p *parser) readInputLabels() error {
	if !p.fixed {
		return p.errorf("PLA size must be declared before .ilb or .ob")
	}
	s := p.schema
	for v := 0; v < s.NumBinaryVars; v++ {
		word, err := p.word()
		if err != nil {
			return p.errorf("error reading .ilb")
		}
		i := s.FirstPart[v]
		p.pla.Labels[i+1] = word
		p.pla.Labels[i] = word + ".bar"
	}
	return nil
}

func (p *parser) readOutputLabels() error {
	if !p.fixed {
		return p.errorf("PLA size must be declared before .ilb or .ob")
	}
	s := p.schema
	if s.Output == -1 {
		return p.errorf(".ob needs an output part")
	}
	for i := s.FirstPart[s.Output]; i <= s.LastPart[s.Output]; i++ {
		word, err := p.word()
		if err != nil {
			return p.errorf("error reading .ob")
		}
		p.pla.Labels[i] = word
	}
	return nil
}

// readLabels reads ".label var=<n> <names>...".
func (p *parser) readLabels() error {
	if !p.fixed {
		return p.errorf("PLA size must be declared before .label")
	}
	word, err := p.word()
	if err != nil || !strings.HasPrefix(word, "var=") {
		return p.errorf("error reading labels")
	}
	num := strings.TrimPrefix(word, "var=")
	if num == "" {
		if num, err = p.word(); err != nil {
			return p.errorf("error reading labels")
		}
	}
	s := p.schema
	v, err := atoi(num)
	if err != nil || v < 0 || v >= s.NumVars {
		return p.errorf("error reading labels: invalid var %q", num)
	}
	for i := s.FirstPart[v]; i <= s.LastPart[v]; i++ {
		word, err := p.word()
		if err != nil {
			return p.errorf("error reading labels")
		}
		p.pla.Labels[i] = word
	}
	return nil
}

// readSymbolic reads a list of column references and a list of labels, each terminated by ';'.
func (p *parser) readSymbolic() (Symbolic, error) {
	var sym Symbolic
	for {
		word, err := p.word()
		if err != nil {
			return sym, err
		}
		if word == ";" {
			break
		}
		ref, ok := p.pla.LabelIndex(word)
		if !ok {
			return sym, errors.Errorf("unknown column %q", word)
		}
		sym.Refs = append(sym.Refs, ref)
	}
	for {
		word, err := p.word()
		if err != nil {
			return sym, err
		}
		if word == ";" {
			break
		}
		sym.Labels = append(sym.Labels, word)
	}
	return sym, nil
}

func (p *parser) readPhase() error {
	if !p.fixed {
		return p.errorf("PLA size must be declared before .phase")
	}
	if p.pla.Phase != nil {
		p.warn("extra .phase ignored")
		p.skipLine(false)
		return nil
	}
	s := p.schema
	if s.Output == -1 {
		return p.errorf(".phase needs an output part")
	}
	ch, err := p.get()
	for err == nil && (ch == ' ' || ch == '\t') {
		ch, err = p.get()
	}
	if err == nil {
		p.unget()
	}
	phase := s.Full.Copy()
	for i := s.FirstPart[s.Output]; i <= s.LastPart[s.Output]; i++ {
		ch, err := p.get()
		switch {
		case err == nil && ch == '0':
			phase.Clear(i)
		case err == nil && ch == '1':
		default:
			return p.errorf("only 0 or 1 allowed in phase description")
		}
	}
	p.pla.Phase = phase
	return nil
}

// readPair reads ".pair <n> (a b) (c d) ...".
func (p *parser) readPair() error {
	if p.pla.Pair != nil {
		p.warn("extra .pair ignored")
		p.skipLine(false)
		return nil
	}
	n, err := p.int()
	if err != nil || n < 0 {
		return p.errorf("syntax error in .pair")
	}
	pair := &Pair{Var1: make([]int, n), Var2: make([]int, n)}
	for i := 0; i < n; i++ {
		word, err := p.word()
		if err != nil {
			return p.errorf("syntax error in .pair")
		}
		ref, ok := p.pla.LabelIndex(strings.TrimPrefix(word, "("))
		if !ok {
			return p.errorf("syntax error in .pair: unknown label %q", word)
		}
		pair.Var1[i] = ref.Var + 1
		if word, err = p.word(); err != nil {
			return p.errorf("syntax error in .pair")
		}
		ref, ok = p.pla.LabelIndex(strings.TrimSuffix(word, ")"))
		if !ok {
			return p.errorf("syntax error in .pair: unknown label %q", word)
		}
		pair.Var2[i] = ref.Var + 1
	}
	p.pla.Pair = pair
	return nil
}

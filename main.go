package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crillab/gopherpla/config"
	"github.com/crillab/gopherpla/cube"
	"github.com/crillab/gopherpla/exact"
	"github.com/crillab/gopherpla/pla"
	"github.com/crillab/gopherpla/verify"
)

func main() {
	debug.SetGCPercent(300)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gopherpla [flags] [file.pla]",
		Short: "Exact two-level minimization of PLA files",
		Long: `Reads one or several functions in PLA format from a file (or the
standard input), computes a minimum sum-of-products cover of each of them
and writes the result in the requested format.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd.Flags())
			if err != nil {
				return err
			}
			in, name := cmd.InOrStdin(), ""
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "could not open input")
				}
				defer f.Close()
				in, name = f, args[0]
			}
			return run(opts, in, name, cmd.OutOrStdout(), newLogger(opts, cmd.ErrOrStderr()))
		},
	}
	def := config.Default()
	flags := cmd.Flags()
	flags.StringP("out", "o", def.Out, "output type: f, fd, fr, fdr, pleasure, eqntott, kiss, cons or scons")
	flags.String("config", "", "YAML file holding the default options")
	flags.Bool("exact-cover", def.ExactCover, "solve the covering problem exactly (false: greedy heuristic)")
	flags.Bool("literals", def.Literals, "minimize the number of literals rather than the number of cubes")
	flags.Bool("pos", def.Pos, "minimize the complement of the function")
	flags.Bool("skip-sparse", def.SkipSparse, "do not make the result sparse")
	flags.Bool("no-minimize", def.NoMinimize, "only read and write the function")
	flags.Bool("verify", def.Verify, "check that the result is equivalent to the input")
	flags.Bool("summary", def.Summary, "print the size of the covers")
	flags.Bool("debug", def.Debug, "dump the primes and the covering table")
	flags.Bool("trace", def.Trace, "log the time and cost of each step")
	flags.Bool("echo-comments", def.EchoComments, "echo comments of the input")
	flags.Bool("echo-unknown", def.EchoUnknown, "echo unknown directives of the input")
	flags.BoolP("verbose", "v", def.Verbose, "sets verbose mode on")
	return cmd
}

// options returns the options from the config file, if any, overridden by
// the flags that were explicitly set.
func options(flags *pflag.FlagSet) (*config.Options, error) {
	opts := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if opts, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	bools := map[string]*bool{
		"exact-cover":   &opts.ExactCover,
		"literals":      &opts.Literals,
		"pos":           &opts.Pos,
		"skip-sparse":   &opts.SkipSparse,
		"no-minimize":   &opts.NoMinimize,
		"verify":        &opts.Verify,
		"summary":       &opts.Summary,
		"debug":         &opts.Debug,
		"trace":         &opts.Trace,
		"echo-comments": &opts.EchoComments,
		"echo-unknown":  &opts.EchoUnknown,
		"verbose":       &opts.Verbose,
	}
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if f.Name == "out" {
			opts.Out = f.Value.String()
		} else if ptr, ok := bools[f.Name]; ok {
			*ptr, err = flags.GetBool(f.Name)
		}
	})
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func newLogger(opts *config.Options, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	switch {
	case opts.Debug:
		log.SetLevel(logrus.DebugLevel)
	case opts.Verbose || opts.Trace:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// run reads every function from in, minimizes it and writes it to out.
func run(opts *config.Options, in io.Reader, name string, out io.Writer, log logrus.FieldLogger) error {
	outType, err := opts.OutType()
	if err != nil {
		return err
	}
	r := pla.NewReader(in)
	r.Filename = name
	r.Echo = out
	r.EchoComments = opts.EchoComments
	r.EchoUnknown = opts.EchoUnknown
	r.Pos = opts.Pos
	r.Log = log

	m := exact.New()
	m.Debug = opts.Debug
	m.SkipSparse = opts.SkipSparse
	m.Trace = opts.Trace
	m.Stdout = out
	m.Log = log

	needsOffset := outType&pla.RType != 0 || (!opts.NoMinimize && !opts.SkipSparse)
	nb := 0
	for {
		p, err := r.Read(!opts.NoMinimize, needsOffset, pla.FDType)
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "could not read %s", displayName(name))
		}
		nb++
		if !opts.NoMinimize {
			m.Filename = p.Filename
			if err := minimize(m, p, opts); err != nil {
				return err
			}
		}
		if opts.Summary {
			if err := summary(out, p); err != nil {
				return err
			}
		}
		if err := pla.Write(out, p, outType); err != nil {
			return errors.Wrap(err, "could not write result")
		}
	}
	if nb == 0 {
		return errors.Errorf("no PLA found in %s", displayName(name))
	}
	if opts.Trace {
		log.Infof("statistics:\n%s", m.Stats)
	}
	return nil
}

// minimize replaces the ON-set of p with a minimum cover.
func minimize(m *exact.Minimizer, p *pla.PLA, opts *config.Options) error {
	var (
		res *cube.Cover
		err error
	)
	if opts.Literals {
		res, err = m.MinimizeLiterals(p.F, p.D, p.R, opts.ExactCover)
	} else {
		res, err = m.Minimize(p.F, p.D, p.R, opts.ExactCover)
	}
	if err != nil {
		return errors.Wrapf(err, "could not minimize %s", displayName(p.Filename))
	}
	if opts.Verify {
		if err := verify.Check(p.F, p.D, res); err != nil {
			return errors.Wrap(err, "minimized cover is not equivalent to the input")
		}
	}
	p.F = res
	return nil
}

// summary writes the summary of p, in color when out is a terminal.
func summary(out io.Writer, p *pla.PLA) error {
	var buf bytes.Buffer
	if err := p.Summary(&buf); err != nil {
		return err
	}
	c := color.New(color.FgCyan)
	if isTerminal(out) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, err := c.Fprint(out, buf.String())
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func displayName(name string) string {
	if name == "" {
		return "(stdin)"
	}
	return fmt.Sprintf("%q", name)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xnor = ".i 2\n.o 1\n.ilb a b\n.ob f\n11 1\n00 1\n01 0\n10 0\n.e\n"

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMinimizeStdin(t *testing.T) {
	out, err := execute(t, ".i 3\n.o 1\n111 1\n110 1\n011 1\n010 1\n.e\n", "--verify")
	require.NoError(t, err)
	assert.Equal(t, ".i 3\n.o 1\n.p 1\n-1- 1\n.e\n", out)
}

func TestOffsetTypeVerify(t *testing.T) {
	// Points in neither F nor R are don't cares.
	out, err := execute(t, ".i 2\n.o 1\n.type fr\n11 1\n00 0\n.e\n", "--verify")
	require.NoError(t, err)
	assert.Contains(t, []string{
		".i 2\n.o 1\n.p 1\n-1 1\n.e\n",
		".i 2\n.o 1\n.p 1\n1- 1\n.e\n",
	}, out)
}

func TestEqntottOutput(t *testing.T) {
	out, err := execute(t, xnor, "-o", "eqntott")
	require.NoError(t, err)
	assert.Equal(t, "f = (a&b) | (!a&!b);\n\n", out)
}

func TestInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xnor.pla")
	require.NoError(t, os.WriteFile(path, []byte(xnor), 0o644))
	out, err := execute(t, "", "--summary", "--no-minimize", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# "+path+": 2 binary inputs, 0 multiple-valued vars, 1 outputs\n"), out)
	assert.Contains(t, out, "# F: ")
	assert.Contains(t, out, ".p 2\n")
}

func TestSeveralFunctions(t *testing.T) {
	out, err := execute(t, ".i 1\n.o 1\n1 1\n0 1\n.e\n.i 2\n.o 1\n11 1\n10 1\n.e\n")
	require.NoError(t, err)
	assert.Equal(t, ".i 1\n.o 1\n.p 1\n- 1\n.e\n.i 2\n.o 1\n.p 1\n1- 1\n.e\n", out)
}

func TestConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopherpla.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out: eqntott\nsummary: true\n"), 0o644))

	out, err := execute(t, xnor, "--config", path, "--summary=false")
	require.NoError(t, err)
	assert.Equal(t, "f = (a&b) | (!a&!b);\n\n", out, "flags override the config file")

	out, err = execute(t, xnor, "--config", path, "-o", "f")
	require.NoError(t, err)
	assert.Contains(t, out, "# (stdin): ")
	assert.Contains(t, out, ".ilb a b\n")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
	}{
		{"empty input", "", nil},
		{"bad output type", xnor, []string{"-o", "nope"}},
		{"bad directive", ".i x\n.o 1\n1 1\n.e\n", nil},
		{"missing file", "", []string{filepath.Join(t.TempDir(), "missing.pla")}},
		{"missing config", xnor, []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}},
		{"verify without minimization", xnor, []string{"--verify", "--no-minimize"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.input, tt.args...)
			assert.Error(t, err)
		})
	}
}

package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clements/clements"
	"github.com/katalvlaran/clements/codec"
	"github.com/katalvlaran/clements/matrix"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)

	return code, out.String(), errOut.String()
}

func readMatrixFile(t *testing.T, path string) *matrix.Dense {
	t.Helper()
	m, err := readMatrix(&env{}, path)
	require.NoError(t, err)

	return m
}

func TestRun_Pipeline(t *testing.T) {
	dir := t.TempDir()
	u := filepath.Join(dir, "u.json")
	dec := filepath.Join(dir, "d.json.zst")
	back := filepath.Join(dir, "back.json.lz4")

	code, _, stderr := runCLI(t, "haar", "-n", "5", "-seed", "7", "-o", u)
	require.Equal(t, 0, code, stderr)
	code, _, stderr = runCLI(t, "decompose", "-i", u, "-o", dec)
	require.Equal(t, 0, code, stderr)
	code, _, stderr = runCLI(t, "reconstruct", "-i", dec, "-o", back)
	require.Equal(t, 0, code, stderr)

	diff, err := matrix.MaxAbsDiff(readMatrixFile(t, u), readMatrixFile(t, back))
	require.NoError(t, err)
	assert.Less(t, diff, 1e-9)
}

func TestRun_Weights(t *testing.T) {
	dir := t.TempDir()
	u := filepath.Join(dir, "u.json")
	w := filepath.Join(dir, "w.json")
	back := filepath.Join(dir, "back.json")

	require.Equal(t, 0, run([]string{"haar", "-n", "3", "-o", u}, &bytes.Buffer{}, &bytes.Buffer{}))
	code, _, stderr := runCLI(t, "weights", "-i", u, "-o", w)
	require.Equal(t, 0, code, stderr)

	var doc codec.WeightsDocument
	require.NoError(t, codec.ReadFile(w, &doc))
	assert.Equal(t, 3, doc.Modes)
	assert.Len(t, doc.Weights, 9)

	code, _, stderr = runCLI(t, "unweights", "-i", w, "-o", back)
	require.Equal(t, 0, code, stderr)
	diff, err := matrix.MaxAbsDiff(readMatrixFile(t, u), readMatrixFile(t, back))
	require.NoError(t, err)
	assert.Less(t, diff, 1e-9)
}

func TestRun_InstructionsAndStdout(t *testing.T) {
	dir := t.TempDir()
	u := filepath.Join(dir, "u.json")
	dec := filepath.Join(dir, "d.json")
	require.Equal(t, 0, run([]string{"haar", "-n", "3", "-o", u}, &bytes.Buffer{}, &bytes.Buffer{}))

	// Without -o the decomposition is printed.
	code, stdout, _ := runCLI(t, "decompose", "-i", u)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"beamsplitters"`)

	require.Equal(t, 0, run([]string{"decompose", "-i", u, "-o", dec}, &bytes.Buffer{}, &bytes.Buffer{}))
	code, stdout, _ = runCLI(t, "instructions", "-i", dec)
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 2*3+3) // 3 beamsplitters, 3 phaseshifters
	assert.True(t, strings.HasPrefix(lines[0], "Phaseshifter("))
	assert.True(t, strings.HasPrefix(lines[1], "Beamsplitter("))
}

func TestRun_Verify(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json.lz4")}
	for k, p := range paths {
		require.Equal(t, 0, run([]string{"haar", "-n", "4", "-seed", fmt.Sprint(k + 1), "-o", p}, &bytes.Buffer{}, &bytes.Buffer{}))
	}

	code, stdout, stderr := runCLI(t, append([]string{"verify", "-workers", "2"}, paths...)...)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 2, strings.Count(stdout, "ok\t"))

	shear := filepath.Join(dir, "shear.json")
	m, err := matrix.NewDenseFrom(2, 2, []complex128{1, 1, 0, 1})
	require.NoError(t, err)
	doc, err := codec.NewMatrixDocument(m)
	require.NoError(t, err)
	require.NoError(t, codec.WriteFile(shear, doc))

	code, stdout, _ = runCLI(t, "verify", shear)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "FAIL")

	code, _, _ = runCLI(t, "verify", "-check", shear)
	assert.Equal(t, 1, code)
}

func TestRun_UsageErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"nope"},
		{"-log-format", "xml", "haar"},
		{"decompose"},
		{"decompose", "-i", "x.json", "-precision", "complex32"},
		{"haar", "-n", "0"},
		{"haar", "-bogus"},
		{"verify"},
	}
	for _, args := range cases {
		code, _, _ := runCLI(t, args...)
		assert.Equal(t, 2, code, "%v", args)
	}

	code, _, _ := runCLI(t, "decompose", "-i", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, code)
}

func TestRun_NonFiniteTolerances(t *testing.T) {
	dir := t.TempDir()
	u := filepath.Join(dir, "u.json")
	require.Equal(t, 0, run([]string{"haar", "-n", "2", "-o", u}, &bytes.Buffer{}, &bytes.Buffer{}))

	cases := [][]string{
		{"decompose", "-i", u, "-tol", "NaN"},
		{"decompose", "-i", u, "-tol", "-Inf"},
		{"decompose", "-i", u, "-check", "-check-eps", "Inf"},
		{"weights", "-i", u, "-check-eps", "NaN"},
		{"verify", "-atol", "NaN", u},
		{"verify", "-atol", "+Inf", u},
		{"verify", "-tol", "-1", u},
	}
	for _, args := range cases {
		var code int
		require.NotPanics(t, func() { code, _, _ = runCLI(t, args...) }, "%v", args)
		assert.Equal(t, 2, code, "%v", args)
	}
}

func TestRun_CodecOverride(t *testing.T) {
	dir := t.TempDir()
	u := filepath.Join(dir, "u.bin")
	dec := filepath.Join(dir, "d.bin")

	code, _, stderr := runCLI(t, "-codec", "json+lz4", "haar", "-n", "3", "-o", u)
	require.Equal(t, 0, code, stderr)
	code, _, stderr = runCLI(t, "-codec", "json+lz4", "decompose", "-i", u, "-o", dec)
	require.Equal(t, 0, code, stderr)

	var got clements.Decomposition
	require.NoError(t, codec.ReadFileWith(codec.Compressed{Codec: codec.JSON{}, Algorithm: codec.LZ4}, dec, &got))
	assert.Equal(t, 3, got.Dim())

	// The extension default (go-json) cannot read the compressed bytes.
	code, _, _ = runCLI(t, "decompose", "-i", u)
	assert.Equal(t, 1, code)

	code, _, stderr = runCLI(t, "-codec", "yaml", "haar")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown codec")
}

func TestRun_JSONLogs(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCLI(t, "-log-format", "json", "-v", "haar", "-n", "2", "-o", filepath.Join(dir, "u.json"))
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, `"command":"haar"`)
	assert.Contains(t, stderr, `"modes":2`)
	assert.Contains(t, stderr, `"msg":"wrote file"`)
}

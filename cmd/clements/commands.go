package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"

	"github.com/katalvlaran/clements/clements"
	"github.com/katalvlaran/clements/codec"
	"github.com/katalvlaran/clements/matrix"
	"github.com/katalvlaran/clements/matrix/ops"
)

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)

	return fs
}

// parse parses args and tags parse failures as usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return fmt.Errorf("%s: %w: %v", fs.Name(), errUsage, err)
	}

	return nil
}

func required(fs *flag.FlagSet, name, value string) error {
	if value == "" {
		return fmt.Errorf("%s: -%s is required: %w", fs.Name(), name, errUsage)
	}

	return nil
}

// tolerance rejects negative, NaN and infinite values of a tolerance flag.
func tolerance(fs *flag.FlagSet, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s: -%s must be finite and >= 0, got %v: %w", fs.Name(), name, v, errUsage)
	}

	return nil
}

// decomposeFlags registers the options shared by commands that decompose.
func decomposeFlags(fs *flag.FlagSet) func() ([]clements.Option, error) {
	tol := fs.Float64("tol", clements.DefaultZeroTolerance, "zero tolerance of angle extraction")
	prec := fs.String("precision", "complex128", "working precision: complex128 or complex64")
	check := fs.Bool("check", false, "reject non-unitary input")
	checkEps := fs.Float64("check-eps", clements.DefaultUnitaryEpsilon, "unitarity tolerance used by -check")
	workers := fs.Int("workers", 0, "batch concurrency (0 = GOMAXPROCS)")

	return func() ([]clements.Option, error) {
		if err := tolerance(fs, "tol", *tol); err != nil {
			return nil, err
		}
		if err := tolerance(fs, "check-eps", *checkEps); err != nil {
			return nil, err
		}
		if *workers < 0 {
			return nil, fmt.Errorf("%s: -workers must be >= 0: %w", fs.Name(), errUsage)
		}
		p, err := matrix.ParsePrecision(*prec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", fs.Name(), errUsage, err)
		}
		opts := []clements.Option{clements.WithZeroTolerance(*tol), clements.WithPrecision(p)}
		if *check {
			opts = append(opts, clements.WithUnitaryCheck(*checkEps))
		}
		if *workers > 0 {
			opts = append(opts, clements.WithConcurrency(*workers))
		}

		return opts, nil
	}
}

// writeOut stores v at path, or prints it as JSON when path is empty.
func writeOut(e *env, path string, v any) error {
	if path == "" {
		data, err := codec.JSON{}.Marshal(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(e.stdout, "%s\n", data)

		return err
	}
	c := e.codecFor(path)
	if err := codec.WriteFileWith(c, path, v); err != nil {
		return err
	}
	e.log.Debug("wrote file", "path", path, "codec", c.Name())

	return nil
}

// codecFor returns the -codec override, or the codec implied by the extension.
func (e *env) codecFor(path string) codec.Codec {
	if e.codec != nil {
		return e.codec
	}

	return codec.ForPath(path)
}

func readMatrix(e *env, path string) (*matrix.Dense, error) {
	var doc codec.MatrixDocument
	if err := codec.ReadFileWith(e.codecFor(path), path, &doc); err != nil {
		return nil, err
	}

	return doc.Dense()
}

func writeMatrix(e *env, path string, m matrix.Matrix) error {
	doc, err := codec.NewMatrixDocument(m)
	if err != nil {
		return err
	}

	return writeOut(e, path, doc)
}

func readDecomposition(e *env, path string) (*clements.Decomposition, error) {
	var dec clements.Decomposition
	if err := codec.ReadFileWith(e.codecFor(path), path, &dec); err != nil {
		return nil, err
	}

	return &dec, nil
}

func runHaar(e *env, args []string) error {
	fs := newFlagSet(e, "haar")
	n := fs.Int("n", 4, "number of modes")
	seed := fs.Uint64("seed", 1, "random seed")
	out := fs.String("o", "", "output matrix file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *n < 1 {
		return fmt.Errorf("haar: -n must be >= 1: %w", errUsage)
	}

	u, err := ops.HaarUnitary(*n, ops.NewRand(*seed))
	if err != nil {
		return err
	}
	e.log.WithModes(*n).Info("sampled unitary", "seed", *seed)

	return writeMatrix(e, *out, u)
}

func runDecompose(e *env, args []string) error {
	fs := newFlagSet(e, "decompose")
	in := fs.String("i", "", "input matrix file")
	out := fs.String("o", "", "output decomposition file")
	options := decomposeFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "i", *in); err != nil {
		return err
	}
	opts, err := options()
	if err != nil {
		return err
	}

	u, err := readMatrix(e, *in)
	if err != nil {
		return err
	}
	dec, err := clements.Decompose(u, opts...)
	if err != nil {
		return err
	}
	e.log.WithModes(dec.Dim()).Info("decomposed", "beamsplitters", len(dec.Beamsplitters))

	return writeOut(e, *out, dec)
}

func runReconstruct(e *env, args []string) error {
	fs := newFlagSet(e, "reconstruct")
	in := fs.String("i", "", "input decomposition file")
	out := fs.String("o", "", "output matrix file")
	prec := fs.String("precision", "complex128", "precision: complex128 or complex64")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "i", *in); err != nil {
		return err
	}
	p, err := matrix.ParsePrecision(*prec)
	if err != nil {
		return fmt.Errorf("reconstruct: %w: %v", errUsage, err)
	}

	dec, err := readDecomposition(e, *in)
	if err != nil {
		return err
	}
	u, err := clements.Reconstruct(dec, clements.WithPrecision(p))
	if err != nil {
		return err
	}
	e.log.WithModes(dec.Dim()).Info("reconstructed")

	return writeMatrix(e, *out, u)
}

func runWeights(e *env, args []string) error {
	fs := newFlagSet(e, "weights")
	in := fs.String("i", "", "input matrix file")
	out := fs.String("o", "", "output weights file")
	options := decomposeFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "i", *in); err != nil {
		return err
	}
	opts, err := options()
	if err != nil {
		return err
	}

	u, err := readMatrix(e, *in)
	if err != nil {
		return err
	}
	w, err := clements.WeightsFromMatrix(u, opts...)
	if err != nil {
		return err
	}
	e.log.WithModes(u.Rows()).Info("extracted weights", "count", len(w))

	return writeOut(e, *out, codec.WeightsDocument{Modes: u.Rows(), Weights: w})
}

func runUnweights(e *env, args []string) error {
	fs := newFlagSet(e, "unweights")
	in := fs.String("i", "", "input weights file")
	out := fs.String("o", "", "output matrix file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "i", *in); err != nil {
		return err
	}

	var doc codec.WeightsDocument
	if err := codec.ReadFileWith(e.codecFor(*in), *in, &doc); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	u, err := clements.MatrixFromWeights(doc.Weights, doc.Modes)
	if err != nil {
		return err
	}
	e.log.WithModes(doc.Modes).Info("rebuilt matrix from weights")

	return writeMatrix(e, *out, u)
}

func runInstructions(e *env, args []string) error {
	fs := newFlagSet(e, "instructions")
	in := fs.String("i", "", "input decomposition file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "i", *in); err != nil {
		return err
	}

	dec, err := readDecomposition(e, *in)
	if err != nil {
		return err
	}
	for _, instr := range clements.Instructions(dec) {
		if _, err := fmt.Fprintln(e.stdout, instr); err != nil {
			return err
		}
	}

	return nil
}

// runVerify decomposes and reconstructs every input concurrently and reports
// the worst elementwise error per file.
func runVerify(e *env, args []string) error {
	fs := newFlagSet(e, "verify")
	atol := fs.Float64("atol", 1e-6, "maximum accepted reconstruction error")
	options := decomposeFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("verify: no matrix files given: %w", errUsage)
	}
	if err := tolerance(fs, "atol", *atol); err != nil {
		return err
	}
	opts, err := options()
	if err != nil {
		return err
	}

	paths := fs.Args()
	us := make([]matrix.Matrix, len(paths))
	for k, path := range paths {
		if us[k], err = readMatrix(e, path); err != nil {
			return err
		}
	}

	ctx := context.Background()
	decs, err := clements.DecomposeBatch(ctx, us, opts...)
	if err != nil {
		return err
	}
	backs, err := clements.ReconstructBatch(ctx, decs, opts...)
	if err != nil {
		return err
	}

	failed := 0
	for k, path := range paths {
		diff, err := matrix.MaxAbsDiff(us[k], backs[k])
		if err != nil {
			return err
		}
		status := "ok"
		if diff > *atol {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(e.stdout, "%s\t%s\tmodes=%d\tmax_error=%.3e\n", status, path, decs[k].Dim(), diff)
	}
	if failed > 0 {
		return fmt.Errorf("verify: %d of %d matrices exceed atol %g", failed, len(paths), *atol)
	}

	return nil
}

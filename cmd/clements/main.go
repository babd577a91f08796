// Command clements decomposes unitaries into beamsplitter meshes and back.
//
// Usage:
//
//	clements [-log-format text|json] [-v] [-codec name] <command> [flags]
//
// Commands:
//
//	haar          sample a Haar-random unitary
//	decompose     matrix file -> decomposition file
//	reconstruct   decomposition file -> matrix file
//	weights       matrix file -> weight vector file
//	unweights     weight vector file -> matrix file
//	instructions  print the gate stream of a decomposition
//	verify        decompose and reconstruct matrix files, report the error
//
// File formats follow the extension (.json, .json.zst, .json.lz4) unless
// -codec names one explicitly.
// Without -o the result is printed as JSON on stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/katalvlaran/clements/codec"
)

// errUsage marks command-line mistakes (exit code 2).
var errUsage = errors.New("usage error")

type env struct {
	stdout io.Writer
	stderr io.Writer
	log    *Logger
	codec  codec.Codec // nil: chosen per file from its extension
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"haar":         {"sample a Haar-random unitary", runHaar},
	"decompose":    {"matrix file -> decomposition file", runDecompose},
	"reconstruct":  {"decomposition file -> matrix file", runReconstruct},
	"weights":      {"matrix file -> weight vector file", runWeights},
	"unweights":    {"weight vector file -> matrix file", runUnweights},
	"instructions": {"print the gate stream of a decomposition", runInstructions},
	"verify":       {"decompose, reconstruct and report the error", runVerify},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: clements [-log-format text|json] [-v] [-codec name] <command> [flags]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-13s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w, "\nglobal flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("clements", flag.ContinueOnError)
	global.SetOutput(stderr)
	logFormat := global.String("log-format", "text", "log output format: text or json")
	verbose := global.Bool("v", false, "verbose (debug) logging")
	codecName := global.String("codec", "", "file codec for reads and writes (json, go-json, go-json+zstd, ...); default by extension")
	global.Usage = func() { usage(stderr, global) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	log, err := NewLogger(stderr, *logFormat, *verbose)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 2
	}
	var fileCodec codec.Codec
	if *codecName != "" {
		if fileCodec, err = codec.Lookup(*codecName); err != nil {
			fmt.Fprintln(stderr, err)

			return 2
		}
	}
	if global.NArg() < 1 {
		usage(stderr, global)

		return 2
	}

	name := global.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		usage(stderr, global)

		return 2
	}

	e := &env{stdout: stdout, stderr: stderr, log: log.WithCommand(name), codec: fileCodec}
	if err := cmd.run(e, global.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		e.log.Error("command failed", "err", err)
		if errors.Is(err, errUsage) {
			return 2
		}

		return 1
	}

	return 0
}

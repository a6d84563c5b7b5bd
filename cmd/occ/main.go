// Package main implements the occ compiler entry point.
//
// occ takes a single program as a command-line argument and writes
// x86-64 assembly (AT&T syntax) to stdout:
//
//	occ '{ int x=3; return x; }' > tmp.s
//	cc -o tmp tmp.s && ./tmp
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/occ-lang/occ/internal/codegen"
	"github.com/occ-lang/occ/internal/syntax"
)

// Version information
const Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the testable body of main. It parses the flags and the single
// program argument and drives the tokenize/parse/generate pipeline.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("occ", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "occ compiler %s\n\n", Version)
		fmt.Fprintf(stderr, "Usage: occ [options] <program>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	emitTokens := fs.Bool("emit-tokens", false, "Output token stream")
	emitAST := fs.Bool("emit-ast", false, "Output typed AST")
	output := fs.String("o", "", "Output file (default stdout)")
	version := fs.Bool("version", false, "Print version")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *version {
		fmt.Fprintf(stdout, "occ version %s\n", Version)
		fmt.Fprintf(stdout, "go version %s\n", runtime.Version())
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "occ: invalid number of arguments")
		fmt.Fprintln(stderr, "usage: occ [options] <program>")
		return 1
	}
	src := fs.Arg(0)

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(stderr, "occ: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	toks, err := syntax.Tokenize(src)
	if err != nil {
		diagnose(stderr, err)
		return 1
	}

	if *emitTokens {
		printTokens(out, toks)
		return 0
	}

	fn, err := syntax.Parse(src, toks)
	if err != nil {
		diagnose(stderr, err)
		return 1
	}

	if *emitAST {
		syntax.Fprint(out, fn)
		return 0
	}

	if err := codegen.Generate(out, fn); err != nil {
		fmt.Fprintf(stderr, "occ: %v\n", err)
		return 1
	}
	return 0
}

// diagnose prints a compile error. Errors that carry a source offset
// are rendered with a caret pointing at the offending location.
func diagnose(stderr io.Writer, err error) {
	var serr *syntax.Error
	if errors.As(err, &serr) {
		fmt.Fprint(stderr, serr.Diagnostic())
		return
	}
	fmt.Fprintf(stderr, "occ: %v\n", err)
}

// printTokens dumps the token stream, one token per line.
func printTokens(w io.Writer, toks []syntax.Token) {
	fmt.Fprintf(w, "%-8s %-8s %s\n", "OFFSET", "KIND", "TEXT")
	for _, t := range toks {
		fmt.Fprintf(w, "%-8d %-8s %q\n", t.Off, t.Kind, t.Text)
	}
}

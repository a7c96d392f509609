// Package main is the ctxgen code generator entry point.
//
// ctxgen reads a YAML context-shape declaration and writes the generated Go
// source. Invoke it from a go:generate directive next to the declaration:
//
//	//go:generate go run github.com/jsamuelsen/go-api-runtime/cmd/ctxgen -decl contexts.yaml -out contexts_gen.go
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jsamuelsen/go-api-runtime/internal/codegen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("ctxgen", flag.ContinueOnError)
	declPath := flags.String("decl", "contexts.yaml", "path to the shape declaration file")
	outPath := flags.String("out", "", "output file (default stdout)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	src, err := codegen.GenerateFile(*declPath)
	if err != nil {
		return err
	}

	if *outPath == "" {
		_, err := os.Stdout.Write(src)
		return err
	}

	if err := os.WriteFile(*outPath, src, 0o644); err != nil { //nolint:gosec // Generated source is not sensitive
		return fmt.Errorf("writing %q: %w", *outPath, err)
	}

	return nil
}

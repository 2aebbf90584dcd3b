// Command jmesquery evaluates a single JMESPath expression against a JSON
// document. It exists to give config and logging wiring somewhere to
// run from; it is not a feature surface (the engine's public entry-point
// wrapper, CLI and packaging are explicitly out of scope).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/perbu/jmespath"
	"github.com/perbu/jmespath/config"
	"github.com/perbu/jmespath/value"
)

func main() {
	ctx := context.Background()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, input io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("jmesquery", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("v", false, "verbose (debug) logging")
	configPath := flags.String("config", "", "path to a YAML runtime options file")
	docPath := flags.String("data", "", "path to the JSON document (default: stdin)")

	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: jmesquery [-v] [-config file] [-data file] <expression>")
		return 1
	}
	expr := flags.Arg(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := jmespath.Options{Logger: logger}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "loading config: %v\n", err)
			return 1
		}
		loaded.Logger = logger
		opts = loaded
	}

	var raw []byte
	var err error
	if *docPath != "" {
		raw, err = os.ReadFile(*docPath)
	} else {
		raw, err = io.ReadAll(input)
	}
	if err != nil {
		fmt.Fprintf(stderr, "reading document: %v\n", err)
		return 1
	}

	data, err := value.Decode(raw)
	if err != nil {
		fmt.Fprintf(stderr, "decoding document: %v\n", err)
		return 1
	}

	rt := jmespath.NewRuntime(opts)
	result, err := rt.Search(expr, data)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, value.Encode(result))
	return 0
}

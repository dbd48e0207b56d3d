package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/geoknoesis/rdf-protect/pipeline"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if code := pipeline.Code(err); code != "" {
			fmt.Fprintf(os.Stderr, "code: %s\n", code)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return fmt.Errorf("subcommand required")
	}

	subcommand := args[0]
	switch subcommand {
	case "index", "create-type-map":
		return runIndex(ctx, args[1:], stderr)
	case "pseudonymize", "pseudo", "encrypt":
		return runPseudonymize(ctx, args[1:], stderr)
	case "version", "--version":
		fmt.Fprintf(stdout, "rdf-protect %s\n", version)
		return nil
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage: rdf-protect <subcommand> [flags]

Subcommands:
  index          Record the rdf:type objects of every subject (alias: create-type-map)
  pseudonymize   Pseudonymize triples selected by a rule file (aliases: pseudo, encrypt)
  version        Print version information

Run 'rdf-protect <subcommand> --help' for subcommand flags.
`)
}

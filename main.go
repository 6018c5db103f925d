package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/clippings/internal/cli"
	"github.com/mrlokans/clippings/internal/config"
	"github.com/mrlokans/clippings/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "serve":
		fs := flag.NewFlagSet("serve", flag.ExitOnError)
		markersPath := fs.String("config", "", "Path to a TOML, YAML or JSON file overriding the marker prefixes")
		fs.Parse(args)

		cfg := config.NewConfig()
		entrypoint.Run(cfg, *markersPath, Version)

	case "export":
		runExport(args)

	case "version":
		fmt.Printf("clippings %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		// "clippings <file>" is shorthand for "clippings export <file>"
		runExport(os.Args[1:])
	}
}

func runExport(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewExportCommand()
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  export    Convert 'My Clippings.txt' to CSV or Anki cards (default command)\n")
	fmt.Fprintf(os.Stderr, "  serve     Start the HTTP server\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}

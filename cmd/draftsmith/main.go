// Draftsmith: Structured Drafting MCP Server
//
// An MCP server that gives AI coding tools five structured drafting
// tools — reasoning chains, API designs, architecture decisions, code
// reviews, and implementation strategies — with validated documents
// and bounded per-conversation history.
//
// Usage:
//
//	draftsmith serve            # Start MCP server (stdio transport)
//	draftsmith serve --db PATH  # Same, with durable SQLite-backed sessions
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	dsserver "github.com/draftsmith/draftsmith/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("draftsmith v%s\n", dsserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := flags.String("db", "", "path to a SQLite database for durable sessions (default: in-memory)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	s, cleanup, err := dsserver.New(dsserver.Options{DBPath: *dbPath})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt: the deferred cleanup stops the
	// session eviction timers so the process can exit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ServeStdio(s)
	}()

	select {
	case <-sigCh:
		return nil
	case err := <-errCh:
		return err
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Draftsmith v%s — Structured Drafting MCP Server

Usage:
  draftsmith serve [--db PATH]   Start the MCP server (stdio transport)
  draftsmith version             Print the version

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "draftsmith": {
        "command": "draftsmith",
        "args": ["serve"]
      }
    }
  }

  Session lifecycle can be tuned via environment variables:
    DRAFTSMITH_SESSION_MAX_AGE    e.g. "48h"  (default 24h)
    DRAFTSMITH_SESSION_MAX_BYTES  e.g. "1048576"  (default 5 MiB)
    DRAFTSMITH_CLEANUP_INTERVAL   e.g. "30m"  (default 1h)
`, dsserver.Version)
}

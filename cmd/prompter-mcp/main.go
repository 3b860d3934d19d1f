// Command prompter-mcp serves the prompter library to assistants over MCP stdio.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwulff/prompter/internal/config"
	"github.com/jwulff/prompter/internal/db"
	"github.com/jwulff/prompter/internal/logging"
	"github.com/jwulff/prompter/internal/mcpserver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "prompter-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// stdout carries the protocol; keep a log file separate from the TUI's.
	cfg.Log.Path = filepath.Join(filepath.Dir(cfg.Log.Path), "prompter-mcp.log")
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return mcpserver.New(store, log).ServeStdio()
}

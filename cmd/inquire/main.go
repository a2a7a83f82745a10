// Package main is the entry point of inquire, the terminal client for the
// ReliableTeam.ai site.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"reliableteam-site/cmd/inquire/commands"
	"reliableteam-site/config"
	"reliableteam-site/pkg/logger"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.LoadClientConfig()

	// bubbletea owns the terminal, so logs go to a file
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Warning: cannot open log file: "+err.Error())
		} else {
			defer f.Close()
			logger.InitWithWriter(f)
		}
	}

	cli := commands.New(cfg)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		logger.Log.Error("Command failed", "error", err)
		return 1
	}
	return 0
}

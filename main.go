package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/streakr/internal/cli"
	"github.com/sadopc/streakr/internal/config"
	"github.com/sadopc/streakr/internal/log"
	"github.com/sadopc/streakr/internal/store"
	"github.com/sadopc/streakr/internal/tracker"
	"github.com/sadopc/streakr/internal/tui"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "error loading .env: %v\n", err)
		os.Exit(1)
	}

	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil && cfg == nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	cfgErr := err
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; continuing with defaults\n", cfgErr)
	}
	cfg.ApplyEnv()

	// The TUI owns stdout, so logs always go to a file.
	logFile, err := log.OpenFile(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger := log.New(log.Config{Level: level, Component: "main", Output: logFile})
	if cfgErr != nil {
		logger.Warn("config not saved, using defaults", "path", cfgPath, "error", cfgErr)
	}

	s, err := store.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening store: %v\n", err)
		os.Exit(1)
	}

	t, err := tracker.New(s,
		tracker.WithLogger(logger.WithComponent("tracker")),
		tracker.WithRejectDuplicates(cfg.RejectDuplicates),
	)
	if err != nil {
		s.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer t.Close()

	if len(os.Args) > 1 && cli.IsCommand(os.Args[1]) {
		if err := cli.Run(os.Args[1:], t, cfg.ExportDir, os.Stdout); err != nil {
			logger.Error("command failed", "command", os.Args[1], "error", err)
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			t.Close()
			os.Exit(1)
		}
		return
	}
	if len(os.Args) > 1 {
		fmt.Fprintf(os.Stderr, "error: %v: %s\n", cli.ErrUnknownCommand, os.Args[1])
		t.Close()
		os.Exit(2)
	}

	logger.Info("starting tui", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	app := tui.NewApp(t, cfg, cfgPath, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		t.Close()
		os.Exit(1)
	}
}

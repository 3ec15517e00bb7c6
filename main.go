// Package main is the entry point for the Trace-Aid terminal client.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/emerginginv/trace-aid-sub006/internal/app"
	"github.com/emerginginv/trace-aid-sub006/internal/config"
	"github.com/emerginginv/trace-aid-sub006/internal/tui"
	"github.com/emerginginv/trace-aid-sub006/internal/tui/events"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}

	cfg := config.NewManager(dir)
	if err := cfg.Load(); err != nil {
		return err
	}

	// The TUI owns the terminal, so the log goes to a file.
	logFile, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(cfg.Get().Log.Level); err == nil {
		logger.SetLevel(lvl)
	}

	eventBroker := events.NewBroker()

	application, err := app.New(cfg, logger, eventBroker)
	if err != nil {
		return err
	}
	defer application.Close()

	application.Start()

	p := tea.NewProgram(tui.New(application, eventBroker), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}

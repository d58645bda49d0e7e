// Package main is the entry point for the bikeshare explorer.
// It loads configuration, starts the services and runs the Bubble Tea program.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/report"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/version"
)

const historyLimit = 20

func main() {
	var showHistory bool

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--history":
			showHistory = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}

	if err := run(showHistory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run(showHistory bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := logger.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger.Info("starting",
		"version", version.GetVersion(),
		"commit", version.GetCommit(),
		"built", version.GetDate(),
		"data_dir", cfg.DataDir)
	beeep.AppName = version.AppName

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	if showHistory {
		return printHistory(os.Stdout, svcManager)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(app.NewModel(svcManager), tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printHistory writes the run log to w.
func printHistory(w io.Writer, m *services.Manager) error {
	runs, err := m.RecentRuns(historyLimit)
	if err != nil {
		return err
	}
	counts, err := m.CityRunCounts()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, report.RunLog(runs, counts, time.Now(), 100))
	return err
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Bikeshare explorer - US bike-share trip statistics in the terminal

Usage:
  bikeshare [flag]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information
  --history       Print recent analysis runs and exit

Keyboard Shortcuts:
  Enter           Submit an answer / continue to the next section
  j/k, Up/Down    Scroll a section
  PgUp/PgDn       Page through a section
  Esc             Start a new search
  Ctrl+C          Quit

Environment Variables:
  DATA_DIR                Directory holding the city CSV files (default: ./data)
  CHICAGO_FILE            Chicago export file name (default: chicago.csv)
  NEW_YORK_CITY_FILE      New York City export file name (default: new_york_city.csv)
  WASHINGTON_FILE         Washington export file name (default: washington.csv)
  DATABASE_PATH           SQLite run log path
  LOG_PATH                Log file path
  LOG_LEVEL               debug, info, warn or error (default: info)
  SAMPLE_ROWS             Raw rows shown from each end (default: 5)
  CACHE_TTL               How long a loaded city stays cached (default: 10m, 0 disables)
  WATCH_DATA              Reload city files when they change (default: true)
  NOTIFY_SLOW_LOAD        Desktop notification threshold (default: 5s, 0 disables)
  RUN_RETENTION_DAYS      Days of run log to keep (default: 90, 0 keeps all)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/bikeshare-tui/.env
  - Parent and grandparent directories`)
}

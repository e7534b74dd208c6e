package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/user-directory/internal/repository"
	"github.com/noah-isme/user-directory/internal/service"
	"github.com/noah-isme/user-directory/internal/tui"
	"github.com/noah-isme/user-directory/pkg/config"
	"github.com/noah-isme/user-directory/pkg/logger"
)

var (
	fixturePath string
	results     int
	seed        string
	logFile     string
)

var rootCmd = &cobra.Command{
	Use:   "directory-browser",
	Short: "Browse a directory of people in the terminal",
	Long: `Loads people once from randomuser.me (or a local fixture) and lets you
search, filter by gender and country, sort by name, email or age, and page
through the results.

Examples:
  directory-browser --results 200 --seed demo
  directory-browser --fixture internal/repository/testdata/randomuser.json`,
	SilenceUsage: true,
	RunE:         runBrowser,
}

func init() {
	rootCmd.Flags().StringVar(&fixturePath, "fixture", "", "read records from a randomuser.me JSON file instead of the network")
	rootCmd.Flags().IntVar(&results, "results", 0, "number of people to request (default SOURCE_RESULTS)")
	rootCmd.Flags().StringVar(&seed, "seed", "", "randomuser.me seed for a reproducible collection")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (logs are discarded otherwise)")
}

func runBrowser(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if fixturePath != "" {
		cfg.Source.FixturePath = fixturePath
	}
	if results > 0 {
		cfg.Source.Results = results
	}
	if seed != "" {
		cfg.Source.Seed = seed
	}

	logr := zap.NewNop()
	if logFile != "" {
		cfg.Log.Output = []string{logFile}
		logr, err = logger.New(cfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	directory := service.NewDirectoryService(repository.NewRecordSource(cfg.Source, logr), nil, nil, cfg.View, logr)

	p := tea.NewProgram(tui.New(ctx, directory), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package main provides the sheetroll binary: one-shot checks and combat
// rolls against character sheet files, and an interactive initiative tracker.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/sheetroll/internal/config"
	"github.com/cory-johannsen/sheetroll/internal/game/character"
	"github.com/cory-johannsen/sheetroll/internal/game/session"
	"github.com/cory-johannsen/sheetroll/internal/observability"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	sheetPaths []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "sheetroll",
		Short: "Combat rolls and initiative tracking for character sheets",
		Long: `sheetroll builds d20 dice pools from character sheet stats and skills,
rolls them with critical and fumble detection, and tracks initiative order
for an encounter.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to configuration file; empty uses defaults and SHEET_ environment overrides")
	root.PersistentFlags().StringArrayVar(&opts.sheetPaths, "sheet", nil, "character sheet YAML file (repeatable)")

	root.AddCommand(
		newCheckCmd(opts),
		newCombatCmd(opts, false),
		newCombatCmd(opts, true),
		newDiceCmd(opts),
		newTrackerCmd(opts),
	)
	return root
}

// app is the wired runtime for one invocation.
type app struct {
	logger *zap.Logger
	ctrl   *session.Controller
	sheets []character.Sheet
}

func newApp(opts *options) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	ctrl, err := session.NewFromConfig(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("building session: %w", err)
	}

	sheets := make([]character.Sheet, 0, len(opts.sheetPaths))
	for _, path := range opts.sheetPaths {
		s, err := character.LoadSheet(path)
		if err != nil {
			_ = logger.Sync()
			return nil, err
		}
		sheets = append(sheets, s)
	}

	logger.Debug("sheetroll started",
		zap.String("config", opts.configPath),
		zap.Int("sheets", len(sheets)),
	)
	return &app{logger: logger, ctrl: ctrl, sheets: sheets}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// sheet resolves ref against the loaded sheets by id, then by
// case-insensitive name. An empty ref selects the only loaded sheet.
func (a *app) sheet(ref string) (character.Sheet, error) {
	if ref == "" {
		if len(a.sheets) == 1 {
			return a.sheets[0], nil
		}
		return character.Sheet{}, fmt.Errorf("%d sheets loaded; name one with --character", len(a.sheets))
	}
	for _, s := range a.sheets {
		if s.ID == ref {
			return s, nil
		}
	}
	for _, s := range a.sheets {
		if strings.EqualFold(s.Name, ref) {
			return s, nil
		}
	}
	return character.Sheet{}, fmt.Errorf("no loaded sheet matches %q", ref)
}

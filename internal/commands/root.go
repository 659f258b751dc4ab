// Package commands implements the tydlig command-line interface. The bare
// command launches the interactive TUI; subcommands drive the recorder
// headlessly for scripting.
package commands

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tydligtid/tydlig/internal/config"
	"github.com/tydligtid/tydlig/internal/recorder"
	"github.com/tydligtid/tydlig/internal/state"
	"github.com/tydligtid/tydlig/internal/storage"
	"github.com/tydligtid/tydlig/internal/tui"
)

var version = "dev"

var (
	flagConfigDir string
	flagDBPath    string
)

var rootCmd = &cobra.Command{
	Use:   "tydlig",
	Short: "A personal workday tracker",
	Long: `tydlig tracks your workday: when it started, what you are working on,
lunch and breaks. Run without arguments for the interactive dashboard, or
use the subcommands to record from scripts.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, store, cfg, err := openRecorder()
		if err != nil {
			return err
		}
		defer store.Close()

		app := tui.NewApp(rec, cfg.TickInterval())
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tydlig version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tydlig", version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: <user config dir>/tydlig)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "snapshot database path (overrides config)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(lunchCmd)
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (config.Config, error) {
	dir := flagConfigDir
	if dir == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return config.Config{}, err
	}

	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if cfg.DBPath == "" {
		cfg.DBPath, err = storage.DefaultDBPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve db path: %w", err)
		}
	}
	return cfg, nil
}

// openRecorder wires config, storage and recorder for a command invocation.
// The caller closes the returned storage.
func openRecorder() (*recorder.Recorder, *storage.SQLite, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, config.Config{}, err
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, config.Config{}, fmt.Errorf("open storage: %w", err)
	}

	rec, err := recorder.NewWithWindow(store, time.Now, cfg.BeforeLunchWindow())
	if err != nil {
		store.Close()
		return nil, nil, config.Config{}, err
	}
	return rec, store, cfg, nil
}

// resolveActivity matches an id or name against the catalog.
func resolveActivity(rec *recorder.Recorder, arg string) (state.Activity, error) {
	for _, a := range rec.Activities() {
		if a.Name == arg || fmt.Sprintf("%d", a.ID) == arg {
			return a, nil
		}
	}
	return state.Activity{}, fmt.Errorf("unknown activity %q (see 'tydlig activities')", arg)
}

// parseTimeOfDay interprets an optional HH:mm argument on today's date,
// defaulting to now.
func parseTimeOfDay(arg string) (time.Time, error) {
	now := time.Now()
	if arg == "" {
		return now, nil
	}
	at, err := state.ClockTime(state.DayKey(now), arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want HH:mm: %w", arg, err)
	}
	return at, nil
}

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"svw.info/parsudoku/internal/config"
)

var (
	version string
	commit  string
	date    string
)

var (
	cfgPath  string
	noColor  bool
	logLevel string

	// resolved in PersistentPreRunE, shared by all subcommands
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "parsudoku",
	Short: "Parallel constraint-propagation Sudoku solver",
	Long: `Parsudoku solves 9x9 Sudoku puzzles by combining naked-single constraint
propagation with parallel backtracking search under a configurable worker
budget. It can also generate puzzles with a unique solution and validate
boards for row/column/box conflicts.

Puzzles are read as a single 81-character row-major line where '1'..'9'
are given clues and any other character is an empty cell.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true, // main prints the error once
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Default()
		}
		if noColor || cfg.NoColor {
			color.NoColor = true
		}
		logger = newLogger(logLevel)
		return nil
	},
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a parsudoku.yml config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")
}

// Package cli implements the cobra commands of the xlkit binary.
//
// Each subcommand (inspect, cells, repair, roundtrip) lives in its own file.
// This file defines the root command, which owns the global flags and builds
// the configuration and logger shared by every subcommand.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/xlkit/internal/config"
)

// Version, Commit, and Date are set from main at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootFlags holds the global flag values.
type rootFlags struct {
	configPath string
	output     string
	logLevel   string
	dataOnly   bool
	guessTypes bool
	verbose    bool
}

// app is the state built before any subcommand runs.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	out io.Writer
}

// NewRootCommand creates the root command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "xlkit",
		Short: "Inspect, repair, and rewrite xlsx workbooks",
		Long: `xlkit reads Office Open XML spreadsheet packages (.xlsx, .xlsm, .xltx).

It lists package parts and relationships, dumps cell values, repairs
packages with trailing bytes after the central directory, and rewrites
workbooks through the loader and writer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default: xlkit.yaml, .yml, .json or .jsonc in the working directory)")
	pf.StringVarP(&flags.output, "output", "o", "", "output format: text, json, yaml")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: panic, fatal, error, warn, info, debug, trace")
	pf.BoolVar(&flags.dataOnly, "data-only", false, "keep cached formula results and drop formulas")
	pf.BoolVar(&flags.guessTypes, "guess-types", false, "convert numeric, percentage, and time text to values")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "shorthand for --log-level debug")

	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newCellsCommand(a))
	rootCmd.AddCommand(newRepairCommand(a))
	rootCmd.AddCommand(newRoundtripCommand(a))

	return rootCmd
}

// setup loads the config file and applies flag overrides.
func (a *app) setup(cmd *cobra.Command, flags *rootFlags) error {
	cfg := config.Default()

	path := flags.configPath
	if path == "" {
		path, _ = config.Find(".")
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("output") {
		cfg.Output = flags.output
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if fs.Changed("data-only") {
		cfg.DataOnly = flags.dataOnly
	}
	if fs.Changed("guess-types") {
		cfg.GuessTypes = flags.guessTypes
	}
	if flags.verbose {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := cfg.Level()
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(lvl)
	if path != "" {
		log.WithField("config", path).Debug("configuration loaded")
	}

	a.cfg = cfg
	a.log = log
	a.out = cmd.OutOrStdout()
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

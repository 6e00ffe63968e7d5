package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	appName = "macrowatch"
	version = "v1.0.0"
)

// logLevelFlag is a pflag.Value for zerolog levels.
type logLevelFlag struct {
	level zerolog.Level
}

func (f *logLevelFlag) String() string { return f.level.String() }
func (f *logLevelFlag) Type() string   { return "level" }

func (f *logLevelFlag) Set(s string) error {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return fmt.Errorf("unknown log level %q", s)
	}
	f.level = lvl
	return nil
}

var _ pflag.Value = (*logLevelFlag)(nil)

var (
	configPath string
	logLevel   = logLevelFlag{level: zerolog.InfoLevel}
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Turkish macro-risk terminal: entity resolution, anomaly scanning and valuation",
		Version: version,
		Long: `macrowatch resolves macro and market entities to live readings and runs
the analysis pipeline on top: sigma anomaly scanning, cross-asset
divergence rules, fair-value models, impact chains, seasonality and
the composite macro scorecard.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config (optional)")
	rootCmd.PersistentFlags().Var(&logLevel, "log-level", "Log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(scorecardCmd())
	rootCmd.AddCommand(seasonalityCmd())
	rootCmd.AddCommand(searchCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setupLogging picks human-readable console output on a TTY and plain
// JSON lines otherwise.
func setupLogging() {
	zerolog.SetGlobalLevel(logLevel.level)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

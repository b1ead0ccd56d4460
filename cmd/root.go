// Package cmd implements the kb-jnlp CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kb-labs/jnlp/internal/config"
	"github.com/kb-labs/jnlp/internal/logger"
)

var (
	flagVerbose bool
	flagLogFile string
	flagConfig  string

	// activeLog is set by the root PersistentPreRunE and closed by Execute.
	activeLog *logger.Logger
)

// SetVersionInfo is called from main.go with values injected at build time via -ldflags.
// It must be called before Execute().
func SetVersionInfo(version, commit, date string) {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"kb-jnlp %s (commit %s, built %s)\n", version, commit, date,
	))
	rootCmd.Version = version
}

var rootCmd = &cobra.Command{
	Use:   "kb-jnlp [feature.jar]",
	Short: "JNLP descriptor generator for Eclipse features",
	Long: `kb-jnlp reads feature.xml from an Eclipse feature archive and writes a
JNLP descriptor next to it, listing every plugin jar as a resource
partitioned by operating system and architecture.

Examples:
  kb-jnlp target/site/features/my.feature_1.0.0.jar --codebase https://example.com/app
  kb-jnlp                        use settings from kb-jnlp.toml
  kb-jnlp init                   write kb-jnlp.toml interactively
  kb-jnlp inspect feature.jar    list plugins and their platforms
  kb-jnlp diff --check           fail if the descriptor is out of date`,
	RunE:              runGenerate,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if activeLog != nil {
		activeLog.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also write log output to this file")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "project file (default ./"+config.FileName+")")
}

// setupLogger builds the logger from the persistent flags and attaches it
// to the command context.
func setupLogger(cmd *cobra.Command, args []string) error {
	level := charmlog.InfoLevel
	if flagVerbose {
		level = charmlog.DebugLevel
	}
	l, err := logger.New(os.Stderr, level, flagLogFile)
	if err != nil {
		return err
	}
	activeLog = l
	cmd.SetContext(logger.WithLogger(cmd.Context(), l.Logger))
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kb-labs/jnlp/internal/config"
	"github.com/kb-labs/jnlp/internal/wizard"
)

var initFlags projectFlags

var initCmd = &cobra.Command{
	Use:   "init [feature.jar]",
	Short: "Write a kb-jnlp.toml project file",
	Long: `Prompts for the feature archive, vendor, title and codebase and saves
them to kb-jnlp.toml (or --config), so later runs need no arguments.
Existing values and flags pre-fill the prompt.`,
	RunE: runInit,
	Args: cobra.MaximumNArgs(1),
}

func init() {
	rootCmd.AddCommand(initCmd)
	initFlags.register(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := configPath()

	existing, err := config.Read(path)
	switch {
	case errors.Is(err, config.ErrNotFound):
		existing = &config.Project{}
	case err != nil:
		return err
	default:
		if !initFlags.yes && !confirm(fmt.Sprintf("Overwrite %s? [Y/n] ", path)) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	skipPrompt := initFlags.yes || !interactive()
	defaults := withFeatureDefaults(ctx, existing.Merge(initFlags.project(args)))
	p, err := wizard.Run(wizard.Options{Defaults: defaults, Yes: skipPrompt})
	if err != nil {
		return err
	}
	if missing := p.Missing(); skipPrompt && len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	// Paths typed on the command line or in the wizard are relative to the
	// working directory; config.Write stores them relative to the file.
	if p.Feature, err = absPath(p.Feature); err != nil {
		return err
	}
	if p.Output, err = absPath(p.Output); err != nil {
		return err
	}

	if err := config.Write(path, p); err != nil {
		return err
	}

	ok := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	fmt.Println(ok.Render("✓ Wrote " + path))
	if _, err := os.Stat(p.Feature); err != nil {
		fmt.Println(dimStr("  note: " + p.Feature + " does not exist yet"))
	}
	return nil
}

func absPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kb-labs/jnlp/internal/generator"
	"github.com/kb-labs/jnlp/internal/jnlp"
	"github.com/kb-labs/jnlp/internal/logger"
)

var (
	diffFlags projectFlags
	flagCheck bool
)

// errStale is returned by diff --check when the descriptor is out of date.
var errStale = errors.New("descriptor is out of date, run kb-jnlp generate")

var diffCmd = &cobra.Command{
	Use:   "diff [feature.jar]",
	Short: "Compare the existing descriptor with a freshly generated one",
	Long: `Builds the descriptor in memory and shows which resources would be
added or removed relative to the file on disk. Nothing is written.
With --check the command fails when the descriptor is out of date.`,
	RunE: runDiff,
	Args: cobra.MaximumNArgs(1),
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffFlags.register(diffCmd)
	diffCmd.Flags().BoolVar(&flagCheck, "check", false, "exit with an error if the descriptor is out of date")
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := resolveProject(ctx, &diffFlags, args, false)
	if err != nil {
		return err
	}

	g := &generator.Generator{Log: logger.FromContext(ctx)}
	diff, err := g.Diff(ctx, generator.Request{
		Archive: p.Feature,
		Output:  p.Output,
		Params: jnlp.Params{
			Vendor:   p.Vendor,
			Title:    p.Title,
			Codebase: p.Codebase,
		},
	})
	if err != nil {
		return err
	}

	if !diff.HasChanges() {
		fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓ " + diff.Output + " is up to date"))
		return nil
	}

	printDiff(diff)

	if flagCheck {
		return errStale
	}
	return nil
}

func printDiff(d *generator.Diff) {
	add := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	upd := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	rem := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	fmt.Println()
	if !d.Exists {
		fmt.Printf("  %s\n", dim.Render(d.Output+" does not exist yet"))
	}
	if d.HeaderChanged {
		fmt.Printf("  %s  %s\n", upd.Render("↑"), "codebase, title or vendor changed")
	}
	for _, p := range d.Added {
		fmt.Printf("  %s  %s\n", add.Render("+"), p)
	}
	for _, p := range d.Removed {
		fmt.Printf("  %s  %s\n", rem.Render("-"), p)
	}
	if d.Exists && !d.HeaderChanged && len(d.Added)+len(d.Removed) == 0 {
		fmt.Printf("  %s  %s\n", upd.Render("↑"), dim.Render("formatting or resource order changed"))
	}
	fmt.Println()
}

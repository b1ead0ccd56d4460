package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kb-labs/jnlp/internal/generator"
	"github.com/kb-labs/jnlp/internal/jnlp"
	"github.com/kb-labs/jnlp/internal/logger"
)

var (
	genFlags   projectFlags
	flagDryRun bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [feature.jar]",
	Short: "Write the JNLP descriptor for a feature archive",
	Long: `Reads feature.xml from the feature archive and writes the JNLP
descriptor next to it. This is also what kb-jnlp does without a subcommand.`,
	RunE: runGenerate,
	Args: cobra.MaximumNArgs(1),
}

func init() {
	rootCmd.AddCommand(generateCmd)
	for _, c := range []*cobra.Command{rootCmd, generateCmd} {
		genFlags.register(c)
		c.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the descriptor to stdout instead of writing it")
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := resolveProject(ctx, &genFlags, args, true)
	if err != nil {
		return err
	}

	g := &generator.Generator{
		Log: logger.FromContext(ctx),
	}
	if !flagDryRun {
		g.OnStep = printStep
	}

	res, err := g.Generate(ctx, generator.Request{
		Archive: p.Feature,
		Output:  p.Output,
		Params: jnlp.Params{
			Vendor:   p.Vendor,
			Title:    p.Title,
			Codebase: p.Codebase,
		},
		DryRun: flagDryRun,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if flagDryRun {
		_, err := os.Stdout.Write(res.Data)
		return err
	}
	printSuccess(res)
	return nil
}

// ── output ────────────────────────────────────────────────────────────────────

func printStep(step, total int, label string) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	fmt.Printf("  %s %s\n", dim.Render(fmt.Sprintf("[%d/%d]", step, total)), label)
}

func printSuccess(r *generator.Result) {
	ok := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	val := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Println()
	fmt.Println(ok.Render("✓ Descriptor written") + dim.Render(fmt.Sprintf("  (%s)", r.Duration.Round(time.Millisecond))))
	fmt.Println()
	fmt.Printf("  Feature:    %s\n", val.Render(r.Archive))
	fmt.Printf("  Descriptor: %s\n", val.Render(r.Output))
	fmt.Printf("  Plugins:    %s\n", pluginSummary(r))
	fmt.Printf("  Resources:  %d\n", r.Resources)
	if activeLog != nil && activeLog.LogPath() != "" {
		fmt.Printf("  Log:        %s\n", dim.Render(activeLog.LogPath()))
	}
	fmt.Println()
}

func pluginSummary(r *generator.Result) string {
	return fmt.Sprintf("%d shipped, %d skipped", r.Plugins-r.Skipped, r.Skipped)
}

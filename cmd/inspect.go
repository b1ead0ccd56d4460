package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kb-labs/jnlp/internal/feature"
	"github.com/kb-labs/jnlp/internal/jnlp"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [feature.jar]",
	Short: "List the plugins of a feature archive and their JNLP platforms",
	RunE:  runInspect,
	Args:  cobra.MaximumNArgs(1),
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd.Context())
	if err != nil {
		return err
	}
	if len(args) > 0 {
		p.Feature = args[0]
	}
	if p.Feature == "" {
		return errors.New("no feature archive given")
	}

	f, err := feature.Extract(p.Feature)
	if err != nil {
		return err
	}

	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	val := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skip := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	fmt.Println()
	fmt.Printf("  %s %s\n\n", label.Render("Feature:"), val.Render(p.Feature))
	fmt.Printf("  %s %s\n", label.Render("ID:      "), f.ID)
	fmt.Printf("  %s %s\n", label.Render("Version: "), f.Version)
	fmt.Printf("  %s %s\n", label.Render("Label:   "), f.Label)
	fmt.Printf("  %s %s\n", label.Render("Provider:"), f.ProviderName)
	fmt.Printf("  %s %s\n\n", label.Render("Output:  "), jnlp.OutputPath(p.Feature))

	fmt.Printf("  %s\n", label.Render(fmt.Sprintf("Plugins (%d):", len(f.Plugins))))
	for _, pl := range f.Plugins {
		if !pl.Shipped() {
			fmt.Printf("    %s %-40s  %s\n", skip.Render("○"), pl.ID, dimStr("skipped, version "+quoted(pl.Version)))
			continue
		}
		fmt.Printf("    %s %-40s  %-12s %s\n", ok.Render("●"), pl.ID, pl.Version, dimStr(platforms(pl)))
	}

	fmt.Println()
	return nil
}

// platforms describes the os/arch attributes the plugin's blocks will carry.
func platforms(p feature.Plugin) string {
	var parts []string
	if os := jnlp.OSFor(p.OS); os != "" {
		parts = append(parts, "os="+os)
	}
	if arches := jnlp.ArchFor(p.Arch); arches[0] != "" {
		parts = append(parts, "arch="+strings.Join(arches, "|"))
	}
	if len(parts) == 0 {
		return "all platforms"
	}
	return strings.Join(parts, " ")
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}

func dimStr(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(s)
}

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kb-labs/jnlp/internal/config"
	"github.com/kb-labs/jnlp/internal/feature"
	"github.com/kb-labs/jnlp/internal/logger"
	"github.com/kb-labs/jnlp/internal/wizard"
)

// projectFlags are the per-command overrides for project file values.
type projectFlags struct {
	vendor   string
	title    string
	codebase string
	output   string
	yes      bool
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.vendor, "vendor", "", "vendor shown by the launcher (default: feature provider-name)")
	cmd.Flags().StringVar(&f.title, "title", "", "title shown by the launcher (default: feature label)")
	cmd.Flags().StringVar(&f.codebase, "codebase", "", "base URL the plugin jars are served from")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "descriptor path (default: archive path with jar replaced by jnlp)")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "never prompt for missing settings")
}

func (f *projectFlags) project(args []string) config.Project {
	p := config.Project{
		Vendor:   f.vendor,
		Title:    f.title,
		Codebase: f.codebase,
		Output:   f.output,
	}
	if len(args) > 0 {
		p.Feature = args[0]
	}
	return p
}

// configPath returns --config or the project file in the working directory.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	cwd, _ := os.Getwd()
	return config.Find(cwd)
}

// loadProject reads the project file. A missing default file is not an
// error; a missing --config file is.
func loadProject(ctx context.Context) (config.Project, error) {
	path := configPath()
	p, err := config.Read(path)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) && flagConfig == "" {
			return config.Project{}, nil
		}
		return config.Project{}, err
	}
	logger.FromContext(ctx).Debug("Loaded project file", "path", path)
	return *p, nil
}

// resolveProject merges project file, flags and feature metadata, in
// increasing precedence of the first two. When required settings are
// still missing it prompts if allowed, or fails.
func resolveProject(ctx context.Context, flags *projectFlags, args []string, prompt bool) (config.Project, error) {
	base, err := loadProject(ctx)
	if err != nil {
		return config.Project{}, err
	}
	p := base.Merge(flags.project(args))
	p = withFeatureDefaults(ctx, p)

	missing := p.Missing()
	if len(missing) == 0 {
		return p, nil
	}
	if !prompt || flags.yes || !interactive() {
		return config.Project{}, fmt.Errorf("missing required settings: %s (use flags or %s)",
			strings.Join(missing, ", "), config.FileName)
	}

	out, err := wizard.Run(wizard.Options{Defaults: p})
	if err != nil {
		return config.Project{}, err
	}
	return *out, nil
}

// withFeatureDefaults fills vendor and title from the feature manifest when
// neither a flag nor the project file set them. Extraction errors are left
// for the generation step to report.
func withFeatureDefaults(ctx context.Context, p config.Project) config.Project {
	if p.Feature == "" || (p.Vendor != "" && p.Title != "") {
		return p
	}
	f, err := feature.Extract(p.Feature)
	if err != nil {
		logger.FromContext(ctx).Debug("No feature defaults", "err", err)
		return p
	}
	return config.Project{Vendor: literal(f.ProviderName), Title: literal(f.Label)}.Merge(p)
}

// literal drops externalized feature.properties references like "%featureName".
func literal(s string) string {
	if strings.HasPrefix(s, "%") {
		return ""
	}
	return s
}

func interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	r := bufio.NewReader(os.Stdin)
	line, _ := r.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "" || line == "y" || line == "yes"
}

// Package generator runs a descriptor generation: it extracts the feature
// manifest, builds the JNLP tree, and writes it next to the archive. It also
// compares an existing descriptor with what would be generated.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kb-labs/jnlp/internal/feature"
	"github.com/kb-labs/jnlp/internal/jnlp"
	"github.com/kb-labs/jnlp/internal/logger"
)

// ErrOutputWrite is returned when the descriptor cannot be written.
var ErrOutputWrite = errors.New("output write error")

// Request describes one generation run.
type Request struct {
	Archive string
	// Output overrides the descriptor path. Default: jnlp.OutputPath(Archive).
	Output string
	Params jnlp.Params
	// DryRun builds and serializes the descriptor without writing it.
	DryRun bool
}

// OutputPath returns the effective descriptor path for r.
func (r Request) OutputPath() string {
	if r.Output != "" {
		return r.Output
	}
	return jnlp.OutputPath(r.Archive)
}

// Result is returned after a successful Generate.
type Result struct {
	Archive    string
	Output     string
	Feature    *feature.Feature
	Descriptor *jnlp.Descriptor
	Data       []byte
	Plugins    int // plugin entries in feature.xml
	Skipped    int // placeholder entries without resources
	Resources  int // plugin resource blocks written
	Written    bool
	Duration   time.Duration
}

// Generator orchestrates descriptor generation.
type Generator struct {
	Log    *log.Logger
	OnStep func(step, total int, label string) // called at each named stage
}

const totalSteps = 3

// Generate extracts, builds and writes the descriptor for req. Nothing is
// written unless extraction, building and serialization all succeed.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	f, desc, data, err := g.render(ctx, req)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Archive:    req.Archive,
		Output:     req.OutputPath(),
		Feature:    f,
		Descriptor: desc,
		Data:       data,
		Plugins:    len(f.Plugins),
		Skipped:    len(f.Plugins) - len(f.Shipped()),
		Resources:  len(desc.PluginResources()),
	}

	if req.DryRun {
		g.step(ctx, 3, "Dry run, not writing "+res.Output)
	} else {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.step(ctx, 3, "Writing "+res.Output)
		if err := writeFile(res.Output, data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOutputWrite, err)
		}
		res.Written = true
	}

	res.Duration = time.Since(start)
	return res, nil
}

// render runs the extract and build steps and serializes the result.
func (g *Generator) render(ctx context.Context, req Request) (*feature.Feature, *jnlp.Descriptor, []byte, error) {
	g.step(ctx, 1, "Reading "+feature.ManifestName+" from "+req.Archive)
	f, err := feature.Extract(req.Archive)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("extract manifest: %w", err)
	}
	g.log(ctx).Debug("Parsed feature", "id", f.ID, "version", f.Version, "plugins", len(f.Plugins))

	if err := ctx.Err(); err != nil {
		return nil, nil, nil, err
	}

	g.step(ctx, 2, fmt.Sprintf("Building descriptor for %d plugins", len(f.Plugins)))
	desc := jnlp.Build(f, req.Params)
	for _, p := range f.Plugins {
		if !p.Shipped() {
			g.log(ctx).Debug("Skipping placeholder plugin", "id", p.ID, "version", p.Version)
		}
	}

	data, err := desc.Marshal()
	if err != nil {
		return nil, nil, nil, err
	}
	return f, desc, data, nil
}

// Diff describes how the descriptor on disk differs from a fresh one.
type Diff struct {
	Output        string
	Exists        bool     // a descriptor was found at Output
	Added         []string // resources only in the fresh descriptor
	Removed       []string // resources only in the existing descriptor
	HeaderChanged bool     // codebase, title or vendor differ
	Stale         bool     // bytes on disk differ from fresh output
}

// HasChanges returns true if regenerating would change the file.
func (d *Diff) HasChanges() bool {
	return d.Stale
}

// Diff compares the descriptor at req.OutputPath() with the one Generate
// would write. It never writes.
func (g *Generator) Diff(ctx context.Context, req Request) (*Diff, error) {
	_, fresh, data, err := g.render(ctx, req)
	if err != nil {
		return nil, err
	}

	diff := &Diff{Output: req.OutputPath()}
	existing, err := os.ReadFile(diff.Output)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read descriptor: %w", err)
		}
		diff.Added = fresh.Jars()
		diff.Stale = true
		return diff, nil
	}
	diff.Exists = true
	diff.Stale = !bytes.Equal(existing, data)

	old, err := jnlp.Parse(existing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", diff.Output, err)
	}
	diff.Added = subtract(fresh.Jars(), old.Jars())
	diff.Removed = subtract(old.Jars(), fresh.Jars())
	diff.HeaderChanged = old.Codebase != fresh.Codebase || old.Information != fresh.Information
	return diff, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (g *Generator) step(ctx context.Context, n int, label string) {
	g.log(ctx).Debugf("[%d/%d] %s", n, totalSteps, label)
	if g.OnStep != nil {
		g.OnStep(n, totalSteps, label)
	}
}

func (g *Generator) log(ctx context.Context) *log.Logger {
	if g.Log != nil {
		return g.Log
	}
	return logger.FromContext(ctx)
}

// writeFile writes data to a temporary file next to path and renames it into
// place, so path holds either the old or the new descriptor.
func writeFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// subtract returns the items of a not matched by an item of b, counting
// duplicates, in the order they appear in a.
func subtract(a, b []string) []string {
	counts := make(map[string]int, len(b))
	for _, s := range b {
		counts[s]++
	}
	var out []string
	for _, s := range a {
		if counts[s] > 0 {
			counts[s]--
			continue
		}
		out = append(out, s)
	}
	return out
}

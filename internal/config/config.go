// Package config manages the project file kb-jnlp.toml, which supplies the
// feature archive path and descriptor strings so they don't have to be
// repeated on every invocation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the default project file name.
const FileName = "kb-jnlp.toml"

// ErrNotFound is returned by Read when the project file does not exist.
var ErrNotFound = errors.New("project file not found")

// Project holds descriptor generation parameters.
type Project struct {
	Feature  string `toml:"feature"`
	Vendor   string `toml:"vendor"`
	Title    string `toml:"title"`
	Codebase string `toml:"codebase"`
	Output   string `toml:"output,omitempty"`
}

// Find returns the project file path inside dir.
func Find(dir string) string {
	return filepath.Join(dir, FileName)
}

// Read loads and parses the project file at path. Relative feature and
// output paths are resolved against the file's directory.
func Read(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var p Project
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}

	base := filepath.Dir(path)
	p.Feature = resolve(base, p.Feature)
	p.Output = resolve(base, p.Output)
	return &p, nil
}

// Write persists p to path, creating parent directories. Absolute feature
// and output paths are stored relative to the file's directory; relative
// ones are written as given.
func Write(path string, p *Project) error {
	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	out := *p
	out.Feature = relativize(base, out.Feature)
	out.Output = relativize(base, out.Output)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Merge returns a copy of p where every non-empty field of over wins.
func (p Project) Merge(over Project) Project {
	out := p
	if over.Feature != "" {
		out.Feature = over.Feature
	}
	if over.Vendor != "" {
		out.Vendor = over.Vendor
	}
	if over.Title != "" {
		out.Title = over.Title
	}
	if over.Codebase != "" {
		out.Codebase = over.Codebase
	}
	if over.Output != "" {
		out.Output = over.Output
	}
	return out
}

// Missing lists the required fields that are still empty.
func (p Project) Missing() []string {
	var missing []string
	if p.Feature == "" {
		missing = append(missing, "feature")
	}
	if p.Vendor == "" {
		missing = append(missing, "vendor")
	}
	if p.Title == "" {
		missing = append(missing, "title")
	}
	if p.Codebase == "" {
		missing = append(missing, "codebase")
	}
	return missing
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func relativize(base, path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

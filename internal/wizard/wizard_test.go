package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kb-labs/jnlp/internal/config"
)

// sampleDefaults returns a fully filled project for use in tests.
func sampleDefaults() config.Project {
	return config.Project{
		Feature:  "/work/target/site/features/com.example_1.0.0.jar",
		Vendor:   "Example Corp",
		Title:    "Example",
		Codebase: "https://example.com/app",
		Output:   "/work/out/app.jnlp",
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m wizardModel, keys ...string) wizardModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(wizardModel)
	}
	return m
}

// ── Run ──────────────────────────────────────────────────────────────────────

// TestRunYesReturnsDefaults verifies that Yes skips the TUI.
func TestRunYesReturnsDefaults(t *testing.T) {
	want := sampleDefaults()
	got, err := Run(Options{Defaults: want, Yes: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if *got != want {
		t.Errorf("Run() = %+v, want %+v", *got, want)
	}
}

// TestRunYesExpandsHome verifies ~/ in the feature path is expanded.
func TestRunYesExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("UserHomeDir unavailable:", err)
	}

	got, err := Run(Options{Defaults: config.Project{Feature: "~/f.jar"}, Yes: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := filepath.Join(home, "f.jar"); got.Feature != want {
		t.Errorf("Feature = %q, want %q", got.Feature, want)
	}
}

// ── model ────────────────────────────────────────────────────────────────────

// TestNewModelPrefills verifies inputs start with the default values.
func TestNewModelPrefills(t *testing.T) {
	d := sampleDefaults()
	m := newModel(Options{Defaults: d})

	if got := m.inputs[fieldVendor].Value(); got != d.Vendor {
		t.Errorf("vendor input = %q, want %q", got, d.Vendor)
	}
	if got := m.inputs[fieldCodebase].Value(); got != d.Codebase {
		t.Errorf("codebase input = %q, want %q", got, d.Codebase)
	}
	if !m.inputs[fieldFeature].Focused() {
		t.Error("feature input not focused initially")
	}
}

// TestToProjectKeepsOutput verifies fields without an input survive.
func TestToProjectKeepsOutput(t *testing.T) {
	d := sampleDefaults()
	p := newModel(Options{Defaults: d}).toProject()
	if *p != d {
		t.Errorf("toProject() = %+v, want %+v", *p, d)
	}
}

// TestTabCyclesFocus verifies tab and shift+tab move between inputs.
func TestTabCyclesFocus(t *testing.T) {
	m := newModel(Options{Defaults: sampleDefaults()})

	m = press(t, m, "tab")
	if m.active != fieldVendor || !m.inputs[fieldVendor].Focused() || m.inputs[fieldFeature].Focused() {
		t.Errorf("after tab active = %d, want vendor focused", m.active)
	}

	m = press(t, m, "shift+tab", "shift+tab")
	if m.active != fieldCodebase {
		t.Errorf("after wrap active = %d, want %d", m.active, fieldCodebase)
	}
}

// TestEnterRequiresAllFields verifies validation blocks the confirm stage.
func TestEnterRequiresAllFields(t *testing.T) {
	d := sampleDefaults()
	d.Codebase = ""
	m := press(t, newModel(Options{Defaults: d}), "enter")

	if m.stage != stageInputs {
		t.Errorf("stage = %d, want stageInputs", m.stage)
	}
	if !strings.Contains(m.errMsg, "codebase") {
		t.Errorf("errMsg = %q, want mention of codebase", m.errMsg)
	}
}

// TestEnterThenConfirm verifies the happy path ends confirmed.
func TestEnterThenConfirm(t *testing.T) {
	m := press(t, newModel(Options{Defaults: sampleDefaults()}), "enter")
	if m.stage != stageConfirm {
		t.Fatalf("stage = %d, want stageConfirm", m.stage)
	}
	if !strings.Contains(m.View(), "/work/out/app.jnlp") {
		t.Errorf("confirm view missing output path:\n%s", m.View())
	}

	m = press(t, m, "y")
	if !m.confirmed || m.cancelled {
		t.Errorf("confirmed = %v, cancelled = %v, want true, false", m.confirmed, m.cancelled)
	}
}

// TestConfirmBack verifies b returns to the inputs.
func TestConfirmBack(t *testing.T) {
	m := press(t, newModel(Options{Defaults: sampleDefaults()}), "enter", "b")
	if m.stage != stageInputs {
		t.Errorf("stage = %d, want stageInputs", m.stage)
	}
}

// TestEscCancels verifies esc cancels from either stage.
func TestEscCancels(t *testing.T) {
	m := press(t, newModel(Options{Defaults: sampleDefaults()}), "esc")
	if !m.cancelled {
		t.Error("esc on inputs did not cancel")
	}

	m = press(t, newModel(Options{Defaults: sampleDefaults()}), "enter", "n")
	if !m.cancelled {
		t.Error("n on confirm did not cancel")
	}
}

// TestTypingEditsActiveInput verifies runes go to the focused input.
func TestTypingEditsActiveInput(t *testing.T) {
	m := newModel(Options{})
	m = press(t, m, "tab", "A", "c", "m", "e")

	if got := m.inputs[fieldVendor].Value(); got != "Acme" {
		t.Errorf("vendor input = %q, want %q", got, "Acme")
	}
	if got := m.inputs[fieldFeature].Value(); got != "" {
		t.Errorf("feature input = %q, want empty", got)
	}
}

// ── expandHome ───────────────────────────────────────────────────────────────

// TestExpandHomeTilde verifies that a ~/... path is expanded to the real home.
func TestExpandHomeTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("UserHomeDir unavailable:", err)
	}

	got := expandHome("~/projects/foo")
	want := filepath.Join(home, "projects", "foo")
	if got != want {
		t.Errorf("expandHome(~/projects/foo) = %q, want %q", got, want)
	}
}

// TestExpandHomeAbsolute verifies that an absolute path is returned unchanged.
func TestExpandHomeAbsolute(t *testing.T) {
	path := "/usr/local/bin"
	if got := expandHome(path); got != path {
		t.Errorf("expandHome(%q) = %q, want %q", path, got, path)
	}
}

// Package wizard implements the interactive Bubble Tea prompt for kb-jnlp.
// It asks for the feature archive and the three descriptor strings, then
// shows a confirmation screen. When Options.Yes is true the TUI is skipped
// and Run returns the defaults unchanged.
package wizard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kb-labs/jnlp/internal/config"
	"github.com/kb-labs/jnlp/internal/jnlp"
)

// ErrCancelled is returned when the user quits the wizard.
var ErrCancelled = errors.New("cancelled")

// Options controls wizard behaviour.
type Options struct {
	// Defaults pre-fill the inputs.
	Defaults config.Project
	// Yes skips the TUI and returns Defaults immediately.
	Yes bool
}

// Run shows the interactive wizard and returns the entered project.
func Run(opts Options) (*config.Project, error) {
	if opts.Yes {
		p := opts.Defaults
		p.Feature = expandHome(p.Feature)
		return &p, nil
	}

	model := newModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	result := final.(wizardModel)
	if result.cancelled {
		return nil, ErrCancelled
	}
	return result.toProject(), nil
}

// ── styles ────────────────────────────────────────────────────────────────────

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = dimStyle
)

// ── model stages ─────────────────────────────────────────────────────────────

type stage int

const (
	stageInputs  stage = iota // entering archive path and descriptor strings
	stageConfirm              // confirm / cancel
)

// field indexes into wizardModel.inputs.
type field int

const (
	fieldFeature field = iota
	fieldVendor
	fieldTitle
	fieldCodebase
	fieldCount
)

var fieldLabels = [fieldCount]struct{ label, help string }{
	fieldFeature:  {"Feature archive", "The feature jar containing feature.xml"},
	fieldVendor:   {"Vendor", "Shown by the launcher as the application vendor"},
	fieldTitle:    {"Title", "Shown by the launcher as the application title"},
	fieldCodebase: {"Codebase URL", "Base URL the plugin jars are downloaded from"},
}

type wizardModel struct {
	defaults  config.Project
	errMsg    string
	inputs    [fieldCount]textinput.Model
	stage     stage
	active    field
	cancelled bool
	confirmed bool
}

func newModel(opts Options) wizardModel {
	d := opts.Defaults
	values := [fieldCount]string{
		fieldFeature:  d.Feature,
		fieldVendor:   d.Vendor,
		fieldTitle:    d.Title,
		fieldCodebase: d.Codebase,
	}
	placeholders := [fieldCount]string{
		fieldFeature:  "target/site/features/my.feature_1.0.0.jar",
		fieldVendor:   "Example Corp",
		fieldTitle:    "My Application",
		fieldCodebase: "https://downloads.example.com/app",
	}

	m := wizardModel{defaults: d, stage: stageInputs}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.SetValue(values[i])
		ti.Width = 60
		m.inputs[i] = ti
	}
	m.inputs[fieldFeature].Focus()
	return m
}

// ── tea.Model interface ───────────────────────────────────────────────────────

func (m wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	// forward to active input
	var cmd tea.Cmd
	if m.stage == stageInputs {
		m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
	}
	return m, cmd
}

func (m wizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageInputs:
		return m.handleInputsKey(msg)
	case stageConfirm:
		return m.handleConfirmKey(msg)
	}
	return m, nil
}

func (m wizardModel) handleInputsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "tab", "down":
		m.focus((m.active + 1) % fieldCount)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.focus((m.active + fieldCount - 1) % fieldCount)
		return m, textinput.Blink
	case "enter":
		if err := m.validate(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.stage = stageConfirm
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.active], cmd = m.inputs[m.active].Update(msg)
	return m, cmd
}

func (m wizardModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "n", "N":
		m.cancelled = true
		return m, tea.Quit
	case "b", "backspace":
		m.stage = stageInputs
		return m, textinput.Blink
	case "enter", "y", "Y":
		m.confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *wizardModel) focus(f field) {
	m.inputs[m.active].Blur()
	m.active = f
	m.inputs[m.active].Focus()
}

func (m wizardModel) value(f field) string {
	return strings.TrimSpace(m.inputs[f].Value())
}

func (m wizardModel) validate() error {
	for f := field(0); f < fieldCount; f++ {
		if m.value(f) == "" {
			return fmt.Errorf("%s is required", strings.ToLower(fieldLabels[f].label))
		}
	}
	return nil
}

// ── View ──────────────────────────────────────────────────────────────────────

func (m wizardModel) View() string {
	switch m.stage {
	case stageInputs:
		return m.viewInputs()
	case stageConfirm:
		return m.viewConfirm()
	}
	return ""
}

func (m wizardModel) viewInputs() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  kb-jnlp") + "  descriptor settings\n\n")

	for f := field(0); f < fieldCount; f++ {
		b.WriteString("  " + sectionStyle.Render(fieldLabels[f].label) + "\n")
		b.WriteString("  " + m.inputs[f].View() + "\n")
		b.WriteString(dimStyle.Render("  "+fieldLabels[f].help) + "\n\n")
	}

	if m.errMsg != "" {
		b.WriteString("  " + errorStyle.Render("✖ "+m.errMsg) + "\n\n")
	}

	b.WriteString(helpStyle.Render("  tab next · shift+tab back · enter continue · esc quit"))
	return b.String()
}

func (m wizardModel) viewConfirm() string {
	p := m.toProject()

	var b strings.Builder
	b.WriteString(titleStyle.Render("  kb-jnlp") + "  ready to generate\n\n")
	b.WriteString(fmt.Sprintf("  Feature:   %s\n", focusStyle.Render(p.Feature)))
	b.WriteString(fmt.Sprintf("  Output:    %s\n\n", focusStyle.Render(outputFor(p))))
	b.WriteString(fmt.Sprintf("  Vendor:    %s\n", p.Vendor))
	b.WriteString(fmt.Sprintf("  Title:     %s\n", p.Title))
	b.WriteString(fmt.Sprintf("  Codebase:  %s\n\n", p.Codebase))

	b.WriteString(helpStyle.Render("  Press enter to continue · b to go back · n to cancel"))
	return b.String()
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (m wizardModel) toProject() *config.Project {
	p := m.defaults
	p.Feature = expandHome(m.value(fieldFeature))
	p.Vendor = m.value(fieldVendor)
	p.Title = m.value(fieldTitle)
	p.Codebase = m.value(fieldCodebase)
	return &p
}

func outputFor(p *config.Project) string {
	if p.Output != "" {
		return p.Output
	}
	return jnlp.OutputPath(p.Feature)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

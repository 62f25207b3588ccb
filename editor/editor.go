package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlatu-lang/mlatu"
	"github.com/mlatu-lang/mlatu/engine"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddRule
	modeProbe
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the interactive rule editor. It keeps a local copy of the rule
// list and mirrors every addition to the engine thread, so probes run
// against the edited rule set.
type Model struct {
	path   string
	rules  []mlatu.Rule
	cursor int
	mode   mode
	input  textinput.Model
	client *mlatu.Interactive
	status string
	dirty  bool
}

func New(path string, rules []mlatu.Rule, client *mlatu.Interactive) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	return Model{path: path, rules: rules, client: client, input: ti}
}

func (m Model) Init() tea.Cmd {
	return nil
}

type evalMsg struct {
	input  string
	result engine.Term
	err    error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case evalMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = fmt.Sprintf("%s = %s", msg.input, msg.result)
		}
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.rules)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.mode = modeAddRule
		m.input.Placeholder = "pattern -> replacement ;"
		m.input.SetValue("")
		m.input.Focus()
	case "e":
		m.mode = modeProbe
		m.input.Placeholder = "term"
		m.input.SetValue("")
		m.input.Focus()
	case "d":
		m.deleteRule()
	case "s":
		m.save()
	}
	return m, nil
}

// deleteRule removes the rule under the cursor from the local list. The
// database is append-only, so the engine keeps the clause until the next
// session; the saved file will not.
func (m *Model) deleteRule() {
	if len(m.rules) == 0 {
		return
	}
	removed := m.rules[m.cursor]
	m.rules = append(m.rules[:m.cursor:m.cursor], m.rules[m.cursor+1:]...)
	if m.cursor >= len(m.rules) && m.cursor > 0 {
		m.cursor--
	}
	m.dirty = true
	m.status = fmt.Sprintf("removed %s (engine keeps it until restart)", removed.Format())
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		entered := m.mode
		m.mode = modeBrowse
		m.input.Blur()
		if line == "" {
			return m, nil
		}
		if entered == modeAddRule {
			return m.addRule(line), nil
		}
		return m.probe(line)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// addRule parses, compiles and asserts a rule line. New rules go to the
// front of the user module, shadowing older ones, and the local list
// mirrors that order.
func (m Model) addRule(line string) Model {
	if !strings.HasSuffix(line, ";") {
		line += " ;"
	}
	rules, err := mlatu.Rules(line)
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return m
	}
	clauses, err := mlatu.Generate(rules)
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return m
	}
	if err := m.client.Assert(mlatu.ModuleUser, clauses, engine.First); err != nil {
		m.status = errorStyle.Render(err.Error())
		return m
	}
	m.rules = append(append([]mlatu.Rule{}, rules...), m.rules...)
	m.cursor = 0
	m.dirty = true
	m.status = fmt.Sprintf("added %d rule(s)", len(rules))
	return m
}

// probe evaluates a term on the engine thread without blocking the UI.
func (m Model) probe(line string) (tea.Model, tea.Cmd) {
	terms, err := mlatu.Terms(line)
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return m, nil
	}
	client := m.client
	m.status = dimStyle.Render("evaluating " + line)
	return m, func() tea.Msg {
		out, err := client.Eval(terms[0])
		return evalMsg{input: line, result: out, err: err}
	}
}

// save writes the rule list back to its file, in the file's own format.
func (m *Model) save() {
	var data []byte
	if filepath.Ext(m.path) == ".mlb" {
		data = mlatu.SerializeRules(m.rules)
	} else {
		var sb strings.Builder
		for _, r := range m.rules {
			sb.WriteString(r.Format())
			sb.WriteByte('\n')
		}
		data = []byte(sb.String())
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.dirty = false
	m.status = fmt.Sprintf("saved %d rule(s) to %s", len(m.rules), m.path)
}

func (m Model) View() string {
	var sb strings.Builder

	title := m.path
	if m.dirty {
		title += " *"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	if len(m.rules) == 0 {
		sb.WriteString(dimStyle.Render("no rules"))
		sb.WriteByte('\n')
	}
	for i, r := range m.rules {
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("> " + r.Format()))
		} else {
			sb.WriteString("  " + r.Format())
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	switch m.mode {
	case modeAddRule:
		sb.WriteString("add rule: " + m.input.View())
	case modeProbe:
		sb.WriteString("evaluate: " + m.input.View())
	default:
		sb.WriteString(dimStyle.Render("a add  e evaluate  d delete  s save  j/k move  q quit"))
	}
	sb.WriteByte('\n')

	if m.status != "" {
		sb.WriteString(m.status)
		sb.WriteByte('\n')
	}
	return sb.String()
}

package editor

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/mlatu-lang/mlatu"
	"github.com/mlatu-lang/mlatu/engine"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	assert.True(t, ok)
	return model, cmd
}

func testRules(t *testing.T, src string) []mlatu.Rule {
	t.Helper()
	rules, err := mlatu.Rules(src)
	assert.NoError(t, err)
	return rules
}

// startThread runs an engine thread seeded with the given user rules and
// registers its shutdown with the test.
func startThread(t *testing.T, user []mlatu.Rule) *mlatu.Interactive {
	t.Helper()
	requests := make(chan mlatu.Request)
	responses := make(chan mlatu.Response)
	done := make(chan error, 1)
	go func() {
		done <- mlatu.Thread(mlatu.BootRules(nil, user), requests, responses)
	}()
	client := mlatu.NewInteractive(requests, responses)
	t.Cleanup(func() {
		client.Close()
		assert.NoError(t, <-done)
	})
	return client
}

func TestModel_Navigation(t *testing.T) {
	rules := testRules(t, `a -> b ; c -> d ; e -> f ;`)
	m := New("rules.mlt", rules, nil)

	assert.Equal(t, 0, m.cursor)
	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, 2, m.cursor)

	// The cursor stays on the last rule.
	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, 2, m.cursor)

	m, _ = update(t, m, keyRunes("k"))
	assert.Equal(t, 1, m.cursor)
}

func TestModel_DeleteRule(t *testing.T) {
	rules := testRules(t, `a -> b ; c -> d ; e -> f ;`)
	m := New("rules.mlt", rules, nil)

	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, keyRunes("d"))

	assert.Len(t, m.rules, 2)
	assert.Equal(t, "a -> b ;", m.rules[0].Format())
	assert.Equal(t, "e -> f ;", m.rules[1].Format())
	assert.True(t, m.dirty)

	// Deleting the last rule moves the cursor back.
	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, keyRunes("d"))
	assert.Equal(t, 0, m.cursor)

	m, _ = update(t, m, keyRunes("d"))
	assert.Empty(t, m.rules)
	m, _ = update(t, m, keyRunes("d"))
	assert.Empty(t, m.rules)
}

func TestModel_Quit(t *testing.T) {
	m := New("rules.mlt", nil, nil)
	_, cmd := update(t, m, keyRunes("q"))
	assert.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_AddRule(t *testing.T) {
	client := startThread(t, nil)
	m := New("rules.mlt", nil, client)

	m, _ = update(t, m, keyRunes("a"))
	assert.Equal(t, modeAddRule, m.mode)

	m.input.SetValue("greet(X) -> hello(X)")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeBrowse, m.mode)
	assert.Len(t, m.rules, 1)
	assert.True(t, m.dirty)

	// The rule reached the engine.
	in, err := mlatu.Terms(`greet(world)`)
	assert.NoError(t, err)
	out, err := client.Eval(in[0])
	assert.NoError(t, err)
	assert.Equal(t, engine.Atom("hello").Apply(engine.Atom("world")), out)
}

func TestModel_AddRuleParseError(t *testing.T) {
	m := New("rules.mlt", nil, nil)

	m, _ = update(t, m, keyRunes("a"))
	m.input.SetValue("f( ->")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.rules)
	assert.False(t, m.dirty)
	assert.NotEmpty(t, m.status)
}

func TestModel_NewRulesShadowOlder(t *testing.T) {
	rules := testRules(t, `f(a) -> old ;`)
	client := startThread(t, rules)
	m := New("rules.mlt", rules, client)

	m, _ = update(t, m, keyRunes("a"))
	m.input.SetValue("f(a) -> new")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Len(t, m.rules, 2)
	assert.Equal(t, "f(a) -> new ;", m.rules[0].Format())

	in, err := mlatu.Terms(`f(a)`)
	assert.NoError(t, err)
	out, err := client.Eval(in[0])
	assert.NoError(t, err)
	assert.Equal(t, engine.Term(engine.Atom("new")), out)
}

func TestModel_Probe(t *testing.T) {
	rules := testRules(t, `ping -> pong ;`)
	client := startThread(t, rules)
	m := New("rules.mlt", rules, client)

	m, _ = update(t, m, keyRunes("e"))
	assert.Equal(t, modeProbe, m.mode)

	m.input.SetValue("ping")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)

	msg, ok := cmd().(evalMsg)
	assert.True(t, ok)
	assert.NoError(t, msg.err)
	assert.Equal(t, engine.Term(engine.Atom("pong")), msg.result)

	m, _ = update(t, m, msg)
	assert.Equal(t, "ping = pong", m.status)
}

func TestModel_Save(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.mlt")
		rules := testRules(t, `add(zero, Y) -> Y ;`)
		m := New(path, rules, nil)
		m.dirty = true

		m, _ = update(t, m, keyRunes("s"))
		assert.False(t, m.dirty)

		b, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, "add(zero, A) -> A ;\n", string(b))
	})

	t.Run("binary", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.mlb")
		rules := testRules(t, `add(zero, Y) -> Y ;`)
		m := New(path, rules, nil)

		m, _ = update(t, m, keyRunes("s"))

		b, err := os.ReadFile(path)
		assert.NoError(t, err)
		decoded, ok := mlatu.DeserializeRules(b)
		assert.True(t, ok)
		assert.Len(t, decoded, 1)
		assert.Equal(t, rules[0].Format(), decoded[0].Format())
	})
}

func TestModel_View(t *testing.T) {
	rules := testRules(t, `a -> b ; c -> d ;`)
	m := New("rules.mlt", rules, nil)

	view := m.View()
	assert.Contains(t, view, "rules.mlt")
	assert.Contains(t, view, "a -> b ;")
	assert.Contains(t, view, "c -> d ;")
}

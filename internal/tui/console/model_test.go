package console

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	mdwlog "github.com/msto63/monkey/foundation/core/log"
	"github.com/msto63/monkey/foundation/lang"
	"github.com/msto63/monkey/internal/history/store"
	"github.com/msto63/monkey/internal/repl"
)

func newTestModel(hist store.HistoryStore) Model {
	r := repl.New(repl.Options{Logger: mdwlog.NewNop(), Store: hist})
	m := New(context.Background(), r, hist)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func typeAndEnter(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestUpdate_EnterEvaluates(t *testing.T) {
	m := newTestModel(nil)

	m, cmd := typeAndEnter(t, m, "let x = 5;")
	if cmd == nil {
		t.Fatal("Enter should return an evaluation command")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty after Enter", m.input.Value())
	}

	msg := cmd()
	result, ok := msg.(evalResultMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want evalResultMsg", msg)
	}
	if len(result.lines) != 5 {
		t.Errorf("got %d lines, want 5 tokens", len(result.lines))
	}

	updated, _ := m.Update(result)
	m = updated.(Model)

	out := m.Output()
	if len(out) != 2 {
		t.Fatalf("Output() = %q, want echo and token line", out)
	}
	if !strings.Contains(out[0], "let x = 5;") {
		t.Errorf("echo line = %q", out[0])
	}
	for _, tok := range []string{"LET", "IDENT(x)", "INT(5)", "SEMICOLON"} {
		if !strings.Contains(out[1], tok) {
			t.Errorf("token line %q missing %s", out[1], tok)
		}
	}
}

func TestUpdate_ExitQuits(t *testing.T) {
	m := newTestModel(nil)

	_, cmd := typeAndEnter(t, m, ".exit")
	if cmd == nil {
		t.Fatal("exit command should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestUpdate_BlankInputIgnored(t *testing.T) {
	m := newTestModel(nil)

	m, cmd := typeAndEnter(t, m, "   ")
	if cmd != nil {
		t.Error("blank input should not be evaluated")
	}
	if len(m.inputHistory) != 0 {
		t.Errorf("inputHistory = %v, want empty", m.inputHistory)
	}
}

func TestUpdate_ASTErrors(t *testing.T) {
	m := newTestModel(nil)

	m, cmd := typeAndEnter(t, m, ".mode ast")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	m, cmd = typeAndEnter(t, m, "let = 5;")
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	joined := strings.Join(m.Output(), "\n")
	if !strings.Contains(joined, "mode: ast") {
		t.Errorf("output missing mode switch: %q", joined)
	}
	if !strings.Contains(joined, "Expected IDENT but found ASSIGN") {
		t.Errorf("output missing parser error: %q", joined)
	}
}

func TestUpdate_HistoryNavigation(t *testing.T) {
	m := newTestModel(nil)
	m.inputHistory = []string{"first;", "second;"}

	m.input.SetValue("draft")
	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	steps := []struct {
		key  tea.KeyMsg
		want string
	}{
		{up, "second;"},
		{up, "first;"},
		{up, "first;"},
		{down, "second;"},
		{down, "draft"},
	}

	for i, s := range steps {
		updated, _ := m.Update(s.key)
		m = updated.(Model)
		if m.input.Value() != s.want {
			t.Errorf("step %d: input = %q, want %q", i, m.input.Value(), s.want)
		}
	}
}

func TestUpdate_ClearOutput(t *testing.T) {
	m := newTestModel(nil)
	m.output = []string{"a", "b"}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if out := updated.(Model).Output(); len(out) != 0 {
		t.Errorf("Output() = %v, want empty", out)
	}
}

func TestInit_LoadsHistory(t *testing.T) {
	ctx := context.Background()
	hist := store.NewMemoryHistoryStore(0)
	hist.Append(ctx, &store.Entry{Input: "old;", Mode: "tokens"})
	hist.Append(ctx, &store.Entry{Input: "newer;", Mode: "tokens"})

	m := newTestModel(hist)
	updated, _ := m.Update(m.loadHistory())
	m = updated.(Model)

	want := []string{"old;", "newer;"}
	if len(m.inputHistory) != 2 || m.inputHistory[0] != want[0] || m.inputHistory[1] != want[1] {
		t.Errorf("inputHistory = %v, want %v", m.inputHistory, want)
	}
}

func TestView(t *testing.T) {
	m := New(context.Background(), repl.New(repl.Options{Logger: mdwlog.NewNop()}), nil)
	if v := m.View(); !strings.Contains(v, "Starting") {
		t.Errorf("View() before size = %q", v)
	}

	m = newTestModel(nil)
	if v := m.View(); !strings.Contains(v, "mode: tokens") {
		t.Errorf("View() = %q, missing mode", v)
	}
}

// Run with -race: evaluation commands run while the UI renders
func TestView_WhileEvaluating(t *testing.T) {
	m := newTestModel(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.evaluate(".mode ast")()
	}()
	for i := 0; i < 50; i++ {
		_ = m.View()
	}
	<-done

	if !strings.Contains(m.View(), "mode: ast") {
		t.Error("header does not show the switched mode")
	}
}

func TestNew_CharLimitFromEngine(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"configured", 16, 16},
		{"default", 0, lang.DefaultMaxInputLength},
		{"unlimited", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := lang.New(lang.Options{Logger: mdwlog.NewNop(), MaxInputLength: tt.limit})
			r := repl.New(repl.Options{Logger: mdwlog.NewNop(), Engine: engine})

			m := New(context.Background(), r, nil)
			if m.input.CharLimit != tt.want {
				t.Errorf("CharLimit = %d, want %d", m.input.CharLimit, tt.want)
			}
		})
	}
}

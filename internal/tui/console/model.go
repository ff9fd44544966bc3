// ============================================================================
// monkey - Front end for the Monkey programming language
// ============================================================================
//
// Package:     console
// Description: Bubbletea model for the interactive monkey console
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package console is the terminal UI variant of the REPL: an input line at
// the bottom, a scrollable output area above it and colored tokens.
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/monkey/foundation/utils/stringx"
	"github.com/msto63/monkey/internal/history/store"
	"github.com/msto63/monkey/internal/repl"
)

// historyPreload is the number of stored inputs offered for Up/Down
const historyPreload = 100

// Model is the main Bubbletea model for the console
type Model struct {
	// State
	width  int
	height int
	ready  bool
	err    error

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Session
	ctx    context.Context
	repl   *repl.REPL
	store  store.HistoryStore
	output []string

	// Input history
	inputHistory []string
	historyIndex int    // -1 = new input
	currentInput string // input being typed before history navigation
}

// New creates a new console model around r. hist may be nil.
func New(ctx context.Context, r *repl.REPL, hist store.HistoryStore) Model {
	ti := textinput.New()
	ti.Prompt = r.Prompt()
	ti.Placeholder = "let x = 5;"
	if limit := r.InputLimit(); limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()

	return Model{
		input:        ti,
		ctx:          ctx,
		repl:         r,
		store:        hist,
		historyIndex: -1,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.store != nil {
		cmds = append(cmds, m.loadHistory)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title + mode
		footerHeight := 3 // Input + help
		viewportHeight := msg.Height - headerHeight - footerHeight - 2

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - len(m.input.Prompt) - 2
		m.updateViewportContent()

	case evalResultMsg:
		m.appendResult(msg)
		m.updateViewportContent()

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			// Stored newest first, navigation expects oldest first
			for i := len(msg.inputs) - 1; i >= 0; i-- {
				m.inputHistory = append(m.inputHistory, msg.inputs[i])
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.output = nil
		m.updateViewportContent()
		return m, nil

	case tea.KeyEnter:
		line := m.input.Value()
		if m.repl.IsExit(line) {
			return m, tea.Quit
		}
		m.input.Reset()
		m.historyIndex = -1
		if stringx.IsBlank(line) {
			return m, nil
		}
		m.inputHistory = append(m.inputHistory, line)
		return m, m.evaluate(line)

	case tea.KeyUp:
		m.navigateHistory(-1)
		return m, nil

	case tea.KeyDown:
		m.navigateHistory(1)
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// navigateHistory moves through previous inputs; dir -1 is older
func (m *Model) navigateHistory(dir int) {
	if len(m.inputHistory) == 0 {
		return
	}

	if m.historyIndex == -1 {
		if dir > 0 {
			return
		}
		m.currentInput = m.input.Value()
		m.historyIndex = len(m.inputHistory) - 1
	} else {
		m.historyIndex += dir
	}

	switch {
	case m.historyIndex < 0:
		m.historyIndex = 0
	case m.historyIndex >= len(m.inputHistory):
		m.historyIndex = -1
		m.input.SetValue(m.currentInput)
		m.input.CursorEnd()
		return
	}

	m.input.SetValue(m.inputHistory[m.historyIndex])
	m.input.CursorEnd()
}

// evaluate runs the line through the REPL
func (m Model) evaluate(line string) tea.Cmd {
	r, ctx := m.repl, m.ctx
	return func() tea.Msg {
		return evalResultMsg{input: line, lines: r.Eval(ctx, line)}
	}
}

// loadHistory reads previous inputs from the store
func (m Model) loadHistory() tea.Msg {
	entries, err := m.store.List(m.ctx, "", historyPreload, 0)
	if err != nil {
		return historyLoadedMsg{err: err}
	}

	inputs := make([]string, len(entries))
	for i, e := range entries {
		inputs[i] = e.Input
	}
	return historyLoadedMsg{inputs: inputs}
}

// appendResult renders an evaluation into the output buffer. Tokens are
// joined on one line.
func (m *Model) appendResult(msg evalResultMsg) {
	m.output = append(m.output, EchoStyle.Render(m.repl.Prompt()+msg.input))

	var tokens []string
	flush := func() {
		if len(tokens) > 0 {
			m.output = append(m.output, strings.Join(tokens, " "))
			tokens = nil
		}
	}

	for _, l := range msg.lines {
		if l.Kind == repl.LineToken {
			tokens = append(tokens, renderLine(l))
			continue
		}
		flush()
		m.output = append(m.output, renderLine(l))
	}
	flush()
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.output, "\n"))
	m.viewport.GotoBottom()
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Starting monkey console..."
	}

	var b strings.Builder

	// Header
	b.WriteString(LogoStyle.Render(Logo))
	b.WriteString("  ")
	b.WriteString(ModeStyle.Render("mode: " + m.repl.Mode()))
	b.WriteString("  ")
	b.WriteString(SubHeaderStyle.Render("session " + stringx.Truncate(m.repl.SessionID(), 8, "")))
	b.WriteString("\n")

	// Output
	b.WriteString(OutputBoxStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	// Input
	b.WriteString(m.input.View())
	b.WriteString("\n")

	// Help / error
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("history unavailable: %v", m.err)))
	} else {
		b.WriteString(HelpStyle.Render("enter: eval  ↑/↓: history  pgup/pgdn: scroll  ctrl+l: clear  esc: quit  .mode ast|tokens"))
	}

	return b.String()
}

// Output returns the rendered output lines
func (m Model) Output() []string {
	return m.output
}

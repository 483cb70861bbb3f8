package ui

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/crazywolf132/twig/internal/app"
	"github.com/crazywolf132/twig/internal/git"
)

// Rows shown before the first WindowSizeMsg arrives.
const defaultVisibleRows = 15

// checkoutResultMsg reports the outcome of a checkout attempt.
type checkoutResultMsg struct {
	branch string
	err    error
}

// Model is the interactive branch selector. The branch list is a snapshot
// taken before the program starts; the selector never re-reads the
// repository while running.
type Model struct {
	git      git.Service
	repoPath string
	keys     KeyMap

	branches []git.Branch
	cursor   int
	offset   int

	errMsg      string
	checkingOut bool
	switched    string
	quitting    bool

	width  int
	height int
}

// New builds a selector over the branch snapshot. The cursor starts on the
// current branch when the snapshot has one.
func New(g git.Service, repoPath string, branches []git.Branch) Model {
	m := Model{
		git:      g,
		repoPath: repoPath,
		keys:     DefaultKeyMap(),
		branches: branches,
	}
	for i, b := range branches {
		if b.IsCurrent {
			m.cursor = i
			break
		}
	}
	return m
}

// Switched returns the name of the branch checked out before quitting, or
// "" when the selector exited without switching.
func (m Model) Switched() string { return m.switched }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.scrollToCursor(), nil

	case checkoutResultMsg:
		m.checkingOut = false
		if msg.err != nil {
			m.errMsg = checkoutErrorText(msg.err)
			return m, nil
		}
		m.switched = msg.branch
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		// Keys are inert while a checkout is in flight; the result
		// message decides what happens next.
		if m.checkingOut {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			return m.move(-1), nil

		case key.Matches(msg, m.keys.Down):
			return m.move(1), nil

		case key.Matches(msg, m.keys.Checkout):
			if len(m.branches) == 0 {
				return m, nil
			}
			m.checkingOut = true
			m.errMsg = ""
			return m, checkoutCmd(m.git, m.branches[m.cursor].Name)
		}
	}
	return m, nil
}

func checkoutCmd(g git.Service, name string) tea.Cmd {
	return func() tea.Msg {
		return checkoutResultMsg{branch: name, err: app.SwitchBranch(g, name)}
	}
}

func checkoutErrorText(err error) string {
	if errors.Is(err, git.ErrDirtyWorkingTree) {
		return "checkout would overwrite uncommitted changes (commit or stash them first)"
	}
	return err.Error()
}

// move shifts the cursor by delta, wrapping at both ends.
func (m Model) move(delta int) Model {
	n := len(m.branches)
	if n == 0 {
		return m
	}
	m.cursor = (m.cursor + delta + n) % n
	return m.scrollToCursor()
}

// scrollToCursor keeps the cursor inside the visible window.
func (m Model) scrollToCursor() Model {
	if len(m.branches) == 0 {
		return m
	}
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if max := len(m.branches) - rows; m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
	return m
}

func (m Model) visibleRows() int {
	rows := defaultVisibleRows
	if m.height > 0 {
		// Title, border, and footer take seven rows.
		rows = m.height - 7
	}
	if rows < 1 {
		rows = 1
	}
	if rows > len(m.branches) {
		rows = len(m.branches)
	}
	return rows
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("twig"))
	b.WriteString("  ")
	b.WriteString(pathStyle.Render(m.repoPath))
	b.WriteString("\n\n")

	if len(m.branches) == 0 {
		b.WriteString(emptyStyle.Render("no local branches found"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("create one with `git branch <name>` and run twig again"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render(m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.visibleRows()
	if end > len(m.branches) {
		end = len(m.branches)
	}

	rows := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		br := m.branches[i]

		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		marker := "  "
		if br.IsCurrent {
			marker = "* "
		}

		name := br.Name
		switch {
		case br.IsCurrent:
			name = currentStyle.Render(name)
		case i == m.cursor:
			name = selectedStyle.Render(name)
		}
		rows = append(rows, prefix+marker+name)
	}

	b.WriteString(listStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if len(m.branches) > m.visibleRows() {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %d-%d of %d", m.offset+1, end, len(m.branches))))
		b.WriteString("\n")
	}

	switch {
	case m.checkingOut:
		b.WriteString(dimStyle.Render(" switching branch..."))
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(" ✗ " + m.errMsg))
	default:
		b.WriteString(dimStyle.Render(" " + m.keys.helpView()))
	}
	b.WriteString("\n")

	return b.String()
}

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tithmeassambo-coder/QCM/internal/game"
)

// Bell is a cue that rings the terminal bell on w.
func Bell(w io.Writer) game.Cue {
	return game.CueFunc(func(game.CueKind) {
		_, _ = io.WriteString(w, "\a")
	})
}

type Options struct {
	NoColor bool
}

// Model plays one attempt in the terminal.
type Model struct {
	subject string
	part    int
	session *game.Session
	mute    *game.Mutable
	keys    keyMap
	bar     progress.Model
	noColor bool
	done    bool
}

// NewModel wraps a started session. mute must be the cue the session was built with.
func NewModel(sess *game.Session, mute *game.Mutable, opts Options) Model {
	if mute == nil {
		mute = game.NewMutable(nil)
	}
	barOpts := []progress.Option{progress.WithWidth(40), progress.WithoutPercentage()}
	if opts.NoColor {
		barOpts = append(barOpts, progress.WithSolidFill("7"))
	} else {
		barOpts = append(barOpts, progress.WithDefaultGradient())
	}
	return Model{
		subject: sess.Subject(),
		part:    sess.PartIndex(),
		session: sess,
		mute:    mute,
		keys:    defaultKeys(),
		bar:     progress.New(barOpts...),
		noColor: opts.NoColor,
	}
}

// NewEmptyModel is shown for a part with no questions; it only offers exit.
func NewEmptyModel(subject string, part int, opts Options) Model {
	return Model{subject: subject, part: part, keys: defaultKeys(), noColor: opts.NoColor}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(typed.Width-4, 10), 60)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.done = true
		return m, tea.Quit
	}
	if m.session == nil {
		return m, nil
	}
	if m.session.Finished() {
		if key.Matches(msg, m.keys.Advance) {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	}

	if idx, ok := m.keys.answerIndex(msg); ok {
		m.session.SelectAnswer(idx)
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Advance):
		m.session.Advance()
	case key.Matches(msg, m.keys.Mute):
		m.mute.SetMuted(!m.mute.Muted())
	}
	return m, nil
}

// Session is nil for an empty part.
func (m Model) Session() *game.Session { return m.session }

func (m Model) View() string {
	if m.done {
		return ""
	}
	header := m.style(fmt.Sprintf("%s · Part %d", m.subject, m.part+1), lipgloss.Color("33"), true)
	if m.session == nil {
		body := m.style("This part has no questions.", lipgloss.Color("208"), false)
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", m.help(m.keys.Quit.Help().Key+" exit"))
	}

	st := m.session.State()
	if st.Finished {
		res, _ := m.session.Result()
		line := fmt.Sprintf("Finished: %d / %d correct (%d%%)", res.Score, res.Total, res.Percentage)
		return lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			m.style(line, lipgloss.Color("42"), true),
			m.bar.ViewAs(float64(res.Percentage)/100), "",
			m.help("enter/q exit"),
		)
	}

	q, _ := m.session.Current()
	status := fmt.Sprintf("Question %d / %d   Score %d", st.CurrentIndex+1, st.Total, st.Score)
	if m.mute.Muted() {
		status += "   (muted)"
	}

	lines := []string{
		header,
		m.style(status, lipgloss.Color("242"), false),
		m.bar.ViewAs(float64(st.CurrentIndex) / float64(max(st.Total, 1))),
		"",
		m.style(q.Text, lipgloss.Color("15"), true),
		"",
	}
	for i, opt := range q.Options {
		lines = append(lines, m.optionLine(i, opt, q.Correct, st))
	}
	lines = append(lines, "")
	if st.RevealAnswer {
		lines = append(lines, m.help("enter next · m mute · q exit"))
	} else {
		lines = append(lines, m.help("1-4 / a-d / ក-ឃ answer · m mute · q exit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) optionLine(i int, text string, correct int, st game.State) string {
	label := "?"
	if i < len(optionLabels) {
		label = optionLabels[i]
	}
	line := fmt.Sprintf("  %s. %s", label, text)
	if !st.RevealAnswer {
		return line
	}
	switch {
	case i == correct:
		return m.style(line+"  ✓", lipgloss.Color("42"), true)
	case st.SelectedAnswer != nil && *st.SelectedAnswer == i:
		return m.style(line+"  ✗", lipgloss.Color("196"), false)
	}
	return m.style(line, lipgloss.Color("240"), false)
}

func (m Model) help(text string) string {
	return m.style(text, lipgloss.Color("244"), false)
}

func (m Model) style(text string, color lipgloss.Color, bold bool) string {
	if m.noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
)

// chatModel is the bubbletea model behind "tempo chat": a transcript
// viewport above a single-line input, with one planning turn in flight at a
// time.
type chatModel struct {
	app *App

	session *domain.PlanSession

	vp    viewport.Model
	input textinput.Model
	spin  spinner.Model

	busy   bool
	errMsg string
	width  int
	height int
	ready  bool
}

// turnDoneMsg carries the result of one planning turn back into Update.
type turnDoneMsg struct {
	session *domain.PlanSession
	err     error
}

var chatKeys = struct {
	Quit key.Binding
}{
	Quit: key.NewBinding(key.WithKeys("ctrl+c", "esc")),
}

func newChatModel(app *App) chatModel {
	input := textinput.New()
	input.Placeholder = "What do you want to get done today?"
	input.Prompt = formatter.StyleHeader.Render("> ")
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(formatter.ColorPurple)

	return chatModel{
		app:   app,
		input: input,
		spin:  spin,
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 4
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, chatKeys.Quit) {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter && !m.busy {
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.errMsg = ""
			m.busy = true
			return m, tea.Batch(m.spin.Tick, m.runTurn(text))
		}

	case turnDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.session = msg.session
		}
		m.refreshTranscript()
		m.vp.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// runTurn maps the typed text onto the session's pending event and runs it.
func (m chatModel) runTurn(text string) tea.Cmd {
	app := m.app
	session := m.session

	return func() tea.Msg {
		ctx := context.Background()

		if session == nil {
			s, err := app.Planner.StartSession(ctx, text)
			return turnDoneMsg{session: s, err: err}
		}

		switch session.Phase {
		case domain.PhaseAwaitingClarification:
			s, err := app.Planner.SubmitClarification(ctx, session.ID, text)
			return turnDoneMsg{session: s, err: err}

		case domain.PhaseAwaitingApproval:
			ids, skip := parseApprovalInput(text, session.SuggestedEvents)
			if skip {
				s, err := app.Planner.SkipEvents(ctx, session.ID)
				return turnDoneMsg{session: s, err: err}
			}
			s, err := app.Planner.ApproveEvents(ctx, session.ID, ids)
			return turnDoneMsg{session: s, err: err}

		case domain.PhaseDone:
			// A finished session rolls straight into a fresh one.
			s, err := app.Planner.StartSession(ctx, text)
			return turnDoneMsg{session: s, err: err}

		default:
			return turnDoneMsg{err: fmt.Errorf("session is busy (%s); try again in a moment", session.Phase)}
		}
	}
}

// parseApprovalInput interprets free text typed at the approval prompt:
// "yes"/"all" approves everything, "no"/"skip" declines, anything else is
// read as a list of event IDs.
func parseApprovalInput(text string, suggested []domain.EventCandidate) (ids []string, skip bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "no", "skip", "none":
		return nil, true
	case "yes", "all", "y":
		for _, evt := range suggested {
			ids = append(ids, evt.ID)
		}
		return ids, false
	}
	for _, field := range strings.Fields(strings.ReplaceAll(text, ",", " ")) {
		ids = append(ids, field)
	}
	return ids, false
}

func (m *chatModel) refreshTranscript() {
	if !m.ready {
		return
	}
	var b strings.Builder
	if m.session == nil {
		b.WriteString(formatter.Dim("Tell me what you want to accomplish and I'll plan your day."))
	} else {
		b.WriteString(formatter.RenderConversation(m.session.Conversation))
		if m.session.Phase == domain.PhaseAwaitingApproval && len(m.session.SuggestedEvents) > 0 {
			b.WriteString("\n\n")
			b.WriteString(formatter.RenderSuggestedEvents(m.session.SuggestedEvents))
			b.WriteString("\n")
			b.WriteString(formatter.Dim("Type \"all\", event IDs, or \"skip\"."))
		}
	}
	m.vp.SetContent(lipgloss.NewStyle().Width(m.vp.Width).Render(b.String()))
}

func (m chatModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	status := ""
	switch {
	case m.busy:
		status = m.spin.View() + formatter.Dim(" thinking...")
	case m.errMsg != "":
		status = formatter.StyleRed.Render(m.errMsg)
	case m.session != nil:
		status = formatter.PhasePill(m.session.Phase)
	}

	return m.vp.View() + "\n" + status + "\n" + m.input.View()
}

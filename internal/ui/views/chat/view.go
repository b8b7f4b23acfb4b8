package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	candidatedto "intervue/internal/modules/candidate/dto"
	interviewdto "intervue/internal/modules/interview/dto"
	"intervue/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TranscriptPort interface {
	Get(ctx context.Context, id string) (candidatedto.CandidateDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type TranscriptLoadedMsg struct {
	Detail candidatedto.CandidateDetailOutput
	Err    error
}

// SubmitMsg bubbles typed input up to the app, which routes it to the
// session.
type SubmitMsg struct {
	Text string
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port TranscriptPort

	transcript viewport.Model
	input      textinput.Model
	spinner    spinner.Model

	state     interviewdto.StateOutput
	busyLabel string
	width     int
	height    int
}

func New(port TranscriptPort) Model {
	ti := textinput.New()
	ti.Placeholder = "type your answer…"
	ti.CharLimit = 2000
	ti.Focus()

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Hot

	return Model{port: port, transcript: vp, input: ti, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetState replaces the session view state. A non-empty busyLabel shows the
// spinner in the footer while an upstream call runs.
func (m *Model) SetState(state interviewdto.StateOutput, busyLabel string) {
	m.state = state
	m.busyLabel = busyLabel
}

func (m *Model) Busy() bool { return m.busyLabel != "" }

// Reload fetches the transcript for the active candidate.
func (m Model) Reload() tea.Cmd {
	id := m.state.CandidateID
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), id)
		return TranscriptLoadedMsg{Detail: detail, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.transcript.Width = msg.Width
		m.transcript.Height = max(msg.Height-4, 1)
		m.input.Width = max(msg.Width-6, 20)

	case TranscriptLoadedMsg:
		if msg.Err == nil {
			m.transcript.SetContent(renderTranscript(msg.Detail, m.transcript.Width))
			m.transcript.GotoBottom()
		}

	case spinner.TickMsg:
		if m.busyLabel != "" {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busyLabel != "" {
				return m, nil
			}
			m.input.SetValue("")
			return m, func() tea.Msg { return SubmitMsg{Text: text} }
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)
	return m, tea.Batch(cmds...)
}

// SpinnerTick starts the spinner loop when a busy label is set.
func (m Model) SpinnerTick() tea.Cmd {
	return m.spinner.Tick
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.transcript.View(),
		m.renderFooter(),
		"> "+m.input.View(),
	)
}

func (m Model) renderHeader() string {
	if m.state.CandidateID == "" {
		return theme.Title.Render("Interview") + theme.Muted.Render("  no active session — resume:upload <path> to begin")
	}
	name := m.state.CandidateName
	if name == "" {
		name = m.state.CandidateID
	}
	return theme.Title.Render("Interview") + "  " +
		theme.Hot.Render(name) + "  " +
		theme.Muted.Render("["+m.state.Phase+"]")
}

func (m Model) renderFooter() string {
	if m.busyLabel != "" {
		return m.spinner.View() + " " + theme.Muted.Render(m.busyLabel)
	}

	switch m.state.Phase {
	case "running":
		return fmt.Sprintf("%s  %s",
			theme.Muted.Render(fmt.Sprintf("Q%d/%d (%s)", m.state.QuestionIndex+1, m.state.QuestionCount, m.state.Difficulty)),
			renderTimer(m.state.RemainingSeconds, timeLimitFor(m.state.Difficulty)))
	case "paused":
		return theme.Warn.Render("⏸ paused") + theme.Muted.Render("  interview:resume to continue")
	case "collecting-profile":
		return theme.Muted.Render("collecting profile: " + m.state.AwaitingField)
	case "awaiting-start":
		return theme.Good.Render("profile complete") + theme.Muted.Render("  interview:start to begin the test")
	case "completed":
		return theme.Good.Render(fmt.Sprintf("✓ completed — total score %d", m.state.TotalScore))
	default:
		return ""
	}
}

func renderTimer(remaining, limit int) string {
	label := fmt.Sprintf("⏱ %ds", remaining)
	if limit <= 0 {
		return theme.Muted.Render(label)
	}
	switch {
	case remaining*2 > limit:
		return theme.Good.Render(label)
	case remaining*4 > limit:
		return theme.Warn.Render(label)
	default:
		return theme.Urgent.Render(label)
	}
}

// timeLimitFor mirrors the session's difficulty allowances for display.
func timeLimitFor(difficulty string) int {
	switch difficulty {
	case "easy":
		return 20
	case "hard":
		return 120
	case "medium":
		return 60
	default:
		return 0
	}
}

func renderTranscript(detail candidatedto.CandidateDetailOutput, width int) string {
	if len(detail.Chat) == 0 {
		return theme.Muted.Render("(no messages yet)")
	}

	wrap := lipgloss.NewStyle().Width(max(width-4, 20))
	var sb strings.Builder
	for _, msg := range detail.Chat {
		label := roleLabel(msg.Role)
		if msg.Score != nil {
			label += theme.Muted.Render(fmt.Sprintf(" (%d pts)", *msg.Score))
		}
		sb.WriteString(label + "\n")
		sb.WriteString(wrap.Render(msg.Text) + "\n\n")
	}
	return sb.String()
}

func roleLabel(role string) string {
	switch role {
	case "ai":
		return theme.Title.Render("AI")
	case "candidate":
		return theme.Good.Render("You")
	case "interviewer":
		return theme.Hot.Render("Interviewer")
	default:
		return theme.Muted.Render(role)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

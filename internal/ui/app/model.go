package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	candidatedto "intervue/internal/modules/candidate/dto"
	intakedto "intervue/internal/modules/intake/dto"
	interviewdto "intervue/internal/modules/interview/dto"
	apperrors "intervue/internal/platform/errors"
	"intervue/internal/ui/components"
	"intervue/internal/ui/theme"
	chatview "intervue/internal/ui/views/chat"
	dashboardview "intervue/internal/ui/views/dashboard"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type interviewPort interface {
	Activate(ctx context.Context, input interviewdto.ActivateInput) (interviewdto.StateOutput, error)
	Recover(ctx context.Context) (interviewdto.StateOutput, error)
	Submit(ctx context.Context, input interviewdto.SubmitInput) (interviewdto.StateOutput, error)
	StartTest(ctx context.Context) (interviewdto.StateOutput, error)
	Tick(ctx context.Context, input interviewdto.TickInput) (interviewdto.StateOutput, error)
	Pause(ctx context.Context) (interviewdto.StateOutput, error)
	Resume(ctx context.Context) (interviewdto.StateOutput, error)
	Evaluate(ctx context.Context) (interviewdto.StateOutput, error)
	DeleteCandidate(ctx context.Context, candidateID string) error
}

type intakePort interface {
	IngestFile(ctx context.Context, input intakedto.IngestFileInput) (intakedto.IngestOutput, error)
}

type candidatePort interface {
	List(ctx context.Context) ([]candidatedto.CandidateOutput, error)
	Get(ctx context.Context, id string) (candidatedto.CandidateDetailOutput, error)
	Reindex(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabInterview tabID = iota
	tabDashboard
	tabCount
)

var tabLabels = [tabCount]string{"Interview", "Dashboard"}

// ─── async messages ───────────────────────────────────────────────────────────

type recoveredMsg struct {
	state interviewdto.StateOutput
	err   error
}

// stateMsg is the result of any session operation.
type stateMsg struct {
	state interviewdto.StateOutput
	err   error
}

type tickMsg struct {
	seq   int
	index int
}

type ingestedMsg struct {
	out intakedto.IngestOutput
	err error
}

type deletedMsg struct {
	candidateID string
	err         error
}

type reindexedMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Delete  key.Binding
	Open    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help (dashboard)")),
		Palette: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh (dashboard)")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete candidate")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open interview")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Palette},
		{k.Refresh, k.Delete, k.Open},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the countdown
// loop, the global help overlay, and the command palette. All business logic
// is delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	interview  interviewPort
	intake     intakePort
	candidates candidatePort

	chatView chatview.Model
	dashView dashboardview.Model

	state   interviewdto.StateOutput
	tickSeq int

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(interview interviewPort, intake intakePort, candidates candidatePort) Model {
	return Model{
		interview:  interview,
		intake:     intake,
		candidates: candidates,
		chatView:   chatview.New(candidatePortBridge{p: candidates}),
		dashView:   dashboardview.New(candidatePortBridge{p: candidates}),
		activeTab:  tabInterview,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(),
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.chatView.Init(),
		m.dashView.Init(),
		m.recoverCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case recoveredMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveInterview) {
				m.status = "recovery: " + msg.err.Error()
			}
			return m, nil
		}
		return m.applyState(msg.state)

	case stateMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.chatView.SetState(m.state, "")
			return m, nil
		}
		return m.applyState(msg.state)

	case tickMsg:
		if msg.seq != m.tickSeq || m.state.Phase != "running" {
			return m, nil
		}
		return m, m.tickCmd(msg.index)

	case ingestedMsg:
		if msg.err != nil {
			m.status = "resume ingest failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "resume ingested: " + msg.out.ResumeFile
		m.activeTab = tabInterview
		return m, tea.Batch(m.activateCmd(msg.out.CandidateID), m.dashView.Refresh())

	case deletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "candidate deleted"
		if m.state.CandidateID == msg.candidateID {
			m.state = interviewdto.StateOutput{Phase: "idle"}
			m.chatView.SetState(m.state, "")
		}
		return m, m.dashView.Refresh()

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
		} else {
			m.status = "candidate index rebuilt"
		}
		return m, m.dashView.Refresh()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case chatview.SubmitMsg:
		return m, m.submitCmd(msg.Text)

	case dashboardview.DeleteRequestMsg:
		return m, m.deleteCmd(msg.CandidateID)

	case dashboardview.OpenRequestMsg:
		m.activeTab = tabInterview
		return m, m.activateCmd(msg.CandidateID)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "ctrl+p":
			return m, m.palette.Open()
		case "?":
			if m.activeTab == tabDashboard && !m.dashView.Filtering() {
				m.showHelp = true
				return m, nil
			}
		case "q":
			if m.activeTab == tabDashboard && !m.dashView.Filtering() {
				return m, tea.Quit
			}
		}
	}

	// Propagate the message to the active tab's sub-view. Transcript loads
	// are relevant regardless of the visible tab.
	var tabCmd tea.Cmd
	if _, isTranscript := msg.(chatview.TranscriptLoadedMsg); isTranscript || m.activeTab == tabInterview {
		m.chatView, tabCmd = m.chatView.Update(msg)
		cmds = append(cmds, tabCmd)
	}
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabDashboard {
		m.dashView, tabCmd = m.dashView.Update(msg)
		cmds = append(cmds, tabCmd)
	}

	return m, tea.Batch(cmds...)
}

// applyState installs a fresh session state, reschedules the countdown, and
// triggers evaluation when the queue has been exhausted.
func (m Model) applyState(state interviewdto.StateOutput) (tea.Model, tea.Cmd) {
	m.state = state
	if state.Notice != "" {
		m.status = state.Notice
	} else {
		m.status = "phase: " + state.Phase
	}

	busy := ""
	var cmds []tea.Cmd

	if state.NeedsEvaluation {
		busy = "evaluating answers…"
		cmds = append(cmds, m.evaluateCmd(), m.chatView.SpinnerTick())
	}
	m.chatView.SetState(state, busy)
	cmds = append(cmds, m.chatView.Reload())

	if state.Phase == "running" {
		m.tickSeq++
		cmds = append(cmds, m.scheduleTick(m.tickSeq, state.QuestionIndex))
	}
	if state.Phase == "completed" {
		cmds = append(cmds, m.dashView.Refresh())
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabInterview:
		content = m.chatView.View()
	default:
		content = m.dashView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "intervue  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.state.CandidateID != "" {
		name := m.state.CandidateName
		if name == "" {
			name = m.state.CandidateID
		}
		left = theme.Hot.Render("● "+name) + "  " + left
	}
	right := theme.Muted.Render("tab:switch  ctrl+p:palette  ctrl+c:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "resume:upload":
		if len(parts) < 2 {
			m.status = "usage: resume:upload <path>"
			return m, nil
		}
		path := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		m.status = "ingesting " + path
		return m, m.ingestCmd(path)

	case "interview:open":
		if len(parts) < 2 {
			m.status = "usage: interview:open <candidate-id>"
			return m, nil
		}
		m.activeTab = tabInterview
		return m, m.activateCmd(parts[1])

	case "interview:start":
		m.chatView.SetState(m.state, "generating questions…")
		return m, tea.Batch(m.startTestCmd(), m.chatView.SpinnerTick())

	case "interview:pause":
		return m, m.pauseCmd()

	case "interview:resume":
		return m, m.resumeCmd()

	case "interview:evaluate":
		m.chatView.SetState(m.state, "evaluating answers…")
		return m, tea.Batch(m.evaluateCmd(), m.chatView.SpinnerTick())

	case "candidate:delete":
		if len(parts) < 2 {
			m.status = "usage: candidate:delete <candidate-id>"
			return m, nil
		}
		return m, m.deleteCmd(parts[1])

	case "dashboard:refresh":
		m.activeTab = tabDashboard
		return m, m.dashView.Refresh()

	case "candidates:reindex":
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.chatView, _ = m.chatView.Update(sz)
	m.dashView, _ = m.dashView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) recoverCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.interview.Recover(context.Background())
		return recoveredMsg{state: state, err: err}
	}
}

func (m Model) activateCmd(candidateID string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.interview.Activate(context.Background(), interviewdto.ActivateInput{CandidateID: candidateID})
		return stateMsg{state: state, err: err}
	}
}

func (m Model) submitCmd(text string) tea.Cmd {
	return func() tea.Msg {
		state, err := m.interview.Submit(context.Background(), interviewdto.SubmitInput{Text: text})
		return stateMsg{state: state, err: err}
	}
}

func (m Model) startTestCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.interview.StartTest(context.Background())
		return stateMsg{state: state, err: err}
	}
}

func (m Model) scheduleTick(seq, index int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{seq: seq, index: index}
	})
}

func (m Model) tickCmd(index int) tea.Cmd {
	return func() tea.Msg {
		state, err := m.interview.Tick(context.Background(), interviewdto.TickInput{Index: index})
		return stateMsg{state: state, err: err}
	}
}

func (m Model) pauseCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.interview.Pause(context.Background())
		return stateMsg{state: state, err: err}
	}
}

func (m Model) resumeCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.interview.Resume(context.Background())
		return stateMsg{state: state, err: err}
	}
}

func (m Model) evaluateCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.interview.Evaluate(context.Background())
		return stateMsg{state: state, err: err}
	}
}

func (m Model) ingestCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.intake.IngestFile(context.Background(), intakedto.IngestFileInput{Path: path})
		return ingestedMsg{out: out, err: err}
	}
}

func (m Model) deleteCmd(candidateID string) tea.Cmd {
	return func() tea.Msg {
		err := m.interview.DeleteCandidate(context.Background(), candidateID)
		return deletedMsg{candidateID: candidateID, err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		return reindexedMsg{err: m.candidates.Reindex(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// The bridge narrows the candidate port to the minimal interfaces the
// sub-views need.

type candidatePortBridge struct{ p candidatePort }

func (b candidatePortBridge) List(ctx context.Context) ([]candidatedto.CandidateOutput, error) {
	return b.p.List(ctx)
}

func (b candidatePortBridge) Get(ctx context.Context, id string) (candidatedto.CandidateDetailOutput, error) {
	return b.p.Get(ctx, id)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

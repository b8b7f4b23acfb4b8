package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	candidatedto "intervue/internal/modules/candidate/dto"
	"intervue/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DashboardPort interface {
	List(ctx context.Context) ([]candidatedto.CandidateOutput, error)
	Get(ctx context.Context, id string) (candidatedto.CandidateDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CandidatesLoadedMsg struct {
	Candidates []candidatedto.CandidateOutput
	Err        error
}

type DetailLoadedMsg struct {
	Detail candidatedto.CandidateDetailOutput
	Err    error
}

// DeleteRequestMsg bubbles a delete up to the app so the active session can
// be dropped along with the record.
type DeleteRequestMsg struct {
	CandidateID string
}

// OpenRequestMsg asks the app to activate an interview for the selection.
type OpenRequestMsg struct {
	CandidateID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type candidateItem struct {
	candidate candidatedto.CandidateOutput
}

func (i candidateItem) Title() string { return displayName(i.candidate) }

func (i candidateItem) Description() string {
	if i.candidate.TestCompleted {
		return fmt.Sprintf("score %d  %s", i.candidate.Score, i.candidate.Email)
	}
	return "in progress  " + i.candidate.Email
}

func (i candidateItem) FilterValue() string {
	return displayName(i.candidate) + " " + i.candidate.Email
}

func displayName(c candidatedto.CandidateOutput) string {
	if c.Name != "" {
		return c.Name
	}
	return "(unnamed) " + c.ID
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    DashboardPort
	list    list.Model
	detail  candidatedto.CandidateDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port DashboardPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Candidates"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads the ranked candidate list.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		candidates, err := m.port.List(context.Background())
		return CandidatesLoadedMsg{Candidates: candidates, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case CandidatesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Candidates — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Candidates (%d)", len(msg.Candidates))
		items := make([]list.Item, len(msg.Candidates))
		for i, c := range msg.Candidates {
			items[i] = candidateItem{candidate: c}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Candidates) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Candidates[0].ID))
		} else {
			m.detail = candidatedto.CandidateDetailOutput{}
			m.preview.SetContent(theme.Muted.Render("No candidates yet"))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if !m.loading && m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "r":
				m.loading = true
				return m, tea.Batch(m.Refresh(), m.spinner.Tick)
			case "d":
				if id, ok := m.SelectedCandidateID(); ok {
					return m, func() tea.Msg { return DeleteRequestMsg{CandidateID: id} }
				}
			case "enter":
				if id, ok := m.SelectedCandidateID(); ok {
					return m, func() tea.Msg { return OpenRequestMsg{CandidateID: id} }
				}
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(candidateItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.candidate.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading candidates…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedCandidateID returns the current selection's ID, if any.
func (m Model) SelectedCandidateID() (string, bool) {
	if item, ok := m.list.SelectedItem().(candidateItem); ok {
		return item.candidate.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a candidate to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(displayName(d.CandidateOutput)) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:      ") + d.ID + "\n")
	sb.WriteString(theme.Muted.Render("email:   ") + orDash(d.Email) + "\n")
	sb.WriteString(theme.Muted.Render("phone:   ") + orDash(d.Phone) + "\n")
	sb.WriteString(theme.Muted.Render("resume:  ") + orDash(d.ResumeFile) + "\n")
	if d.TestCompleted {
		sb.WriteString(theme.Muted.Render("score:   ") + theme.Good.Render(fmt.Sprintf("%d", d.Score)) + "\n")
		sb.WriteString(theme.Muted.Render("summary: ") + d.Summary + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("status:  ") + theme.Warn.Render("test not completed") + "\n")
	}

	if len(d.Chat) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Transcript") + "\n")
		for _, msg := range d.Chat {
			line := fmt.Sprintf("[%s] %s", msg.Role, msg.Text)
			if msg.Score != nil {
				line += fmt.Sprintf(" (%d pts)", *msg.Score)
			}
			sb.WriteString(theme.Muted.Render(msg.Timestamp.Format("15:04:05")) + " " + line + "\n")
		}
	}
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

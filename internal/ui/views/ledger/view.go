package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	wagerdto "ghostnote/internal/modules/wager/dto"
	"ghostnote/internal/ui/theme"
)

type LedgerPort interface {
	List(ctx context.Context) ([]wagerdto.WagerOutput, error)
	Stats(ctx context.Context) (wagerdto.StatsOutput, error)
}

type LoadedMsg struct {
	Wagers []wagerdto.WagerOutput
	Stats  wagerdto.StatsOutput
	Err    error
}

type wagerItem struct {
	wager wagerdto.WagerOutput
}

func (i wagerItem) Title() string { return i.wager.Prediction }
func (i wagerItem) Description() string {
	desc := fmt.Sprintf("%s  %dd  review %s", i.wager.DisplayStatus, i.wager.Days, i.wager.ReviewDate.Local().Format("2006-01-02"))
	if i.wager.AccuracyScore != nil {
		desc += fmt.Sprintf("  %d%%", *i.wager.AccuracyScore)
	}
	return desc
}
func (i wagerItem) FilterValue() string { return i.wager.Prediction }

type Model struct {
	port    LedgerPort
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	stats   wagerdto.StatsOutput
	loading bool
	err     error
	width   int
	height  int
}

func New(port LedgerPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Judgment Ledger"
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

	return Model{port: port, list: l, preview: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload re-reads the ledger and its stats. Display statuses are computed
// at read time, so this also moves wagers from PENDING to DUE.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{}
		}
		ctx := context.Background()
		wagers, err := m.port.List(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		stats, err := m.port.Stats(ctx)
		return LoadedMsg{Wagers: wagers, Stats: stats, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.stats = msg.Stats
		items := make([]list.Item, len(msg.Wagers))
		for i, w := range msg.Wagers {
			items[i] = wagerItem{wager: w}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		prevIdx := m.list.Index()
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
			m.preview.GotoTop()
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
			m.spinner.View()+" Loading ledger…")
	}
	if m.err != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Error.Render("failed to load ledger: "+m.err.Error()))
	}

	header := m.renderStats()
	bodyH := m.height - lipgloss.Height(header)
	if bodyH < 1 {
		bodyH = 1
	}
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(bodyH).Render(m.list.View())
	detailPane := theme.DetailPane.
		Width(detailW - 2).
		Height(bodyH - 2).
		Render(m.preview.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane))
}

// Selected returns the highlighted wager, if any.
func (m Model) Selected() (wagerdto.WagerOutput, bool) {
	if item, ok := m.list.SelectedItem().(wagerItem); ok {
		return item.wager, true
	}
	return wagerdto.WagerOutput{}, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	bodyH := m.height - 1
	m.list.SetSize(listW, bodyH)
	m.preview.Width = detailW - 4
	m.preview.Height = bodyH - 4
	m.preview.SetContent(m.renderDetail())
}

func (m Model) renderStats() string {
	s := m.stats
	parts := []string{
		fmt.Sprintf("%d wagers", s.Total),
		fmt.Sprintf("%d pending", s.Pending),
		theme.Status("DUE") + fmt.Sprintf(" %d", s.Due),
		fmt.Sprintf("%d audited", s.Audited),
	}
	if s.Audited > 0 {
		parts = append(parts, "avg "+theme.Score(s.AverageAccuracy))
	}
	return theme.Muted.Render(strings.Join(parts, "  ·  "))
}

func (m Model) renderDetail() string {
	w, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No wagers yet. Use :seal <days> <prediction> to make one.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(w.Prediction) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + fmt.Sprint(w.ID) + "\n")
	sb.WriteString(theme.Muted.Render("status:   ") + theme.Status(w.DisplayStatus) + "\n")
	sb.WriteString(theme.Muted.Render("horizon:  ") + fmt.Sprintf("%d days", w.Days) + "\n")
	sb.WriteString(theme.Muted.Render("sealed:   ") + w.CreatedAt.Local().Format("2006-01-02") + "\n")
	sb.WriteString(theme.Muted.Render("review:   ") + w.ReviewDate.Local().Format("2006-01-02") + "\n")
	if w.SessionID != nil {
		sb.WriteString(theme.Muted.Render("session:  ") + *w.SessionID + "\n")
	}
	if w.AccuracyScore != nil {
		sb.WriteString("\n" + theme.Hot.Render("Accuracy ") + theme.Score(*w.AccuracyScore) + "\n")
		sb.WriteString("\n" + theme.Muted.Render("Blind spot") + "\n" + w.BlindSpot + "\n")
		sb.WriteString("\n" + theme.Muted.Render("Growth insight") + "\n" + w.GrowthInsight + "\n")
	} else {
		sb.WriteString("\n" + theme.Muted.Render("a: audit now  :audit <what happened>"))
	}
	return sb.String()
}

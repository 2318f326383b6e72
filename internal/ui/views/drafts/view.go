package drafts

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	draftdto "ghostnote/internal/modules/draft/dto"
	"ghostnote/internal/ui/theme"
)

type DraftsPort interface {
	List(ctx context.Context) ([]draftdto.DraftOutput, error)
}

type LoadedMsg struct {
	Drafts []draftdto.DraftOutput
	Err    error
}

type draftItem struct {
	draft draftdto.DraftOutput
}

func (i draftItem) Title() string { return i.draft.Title }
func (i draftItem) Description() string {
	return fmt.Sprintf("%s  %s  %s", i.draft.Status, i.draft.Tag, i.draft.CreatedAt.Local().Format("Jan 2 15:04"))
}
func (i draftItem) FilterValue() string { return i.draft.Title + " " + i.draft.Tag }

type Model struct {
	port    DraftsPort
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port DraftsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Drafts"
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

// Reload re-reads the draft collection.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{}
		}
		drafts, err := m.port.List(context.Background())
		return LoadedMsg{Drafts: drafts, Err: err}
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
		items := make([]list.Item, len(msg.Drafts))
		for i, d := range msg.Drafts {
			items[i] = draftItem{draft: d}
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
			m.spinner.View()+" Loading drafts…")
	}
	if m.err != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Error.Render("failed to load drafts: "+m.err.Error()))
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := theme.DetailPane.
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Selected returns the highlighted draft, if any.
func (m Model) Selected() (draftdto.DraftOutput, bool) {
	if item, ok := m.list.SelectedItem().(draftItem); ok {
		return item.draft, true
	}
	return draftdto.DraftOutput{}, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	m.preview.SetContent(m.renderDetail())
}

func (m Model) renderDetail() string {
	d, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("No drafts yet. Use :draft:new <title> to capture one.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:      ") + fmt.Sprint(d.ID) + "\n")
	sb.WriteString(theme.Muted.Render("status:  ") + theme.Status(d.Status) + "\n")
	sb.WriteString(theme.Muted.Render("tag:     ") + d.Tag + "\n")
	sb.WriteString(theme.Muted.Render("created: ") + d.CreatedAt.Local().Format("2006-01-02 15:04") + "\n")
	if d.HasAudio {
		sb.WriteString(theme.Muted.Render("audio:   ") + "attached\n")
	}
	if d.LastUpdated != nil {
		sb.WriteString(theme.Muted.Render("updated: ") + d.LastUpdated.Local().Format("2006-01-02 15:04") + "\n")
	}

	if c := d.Content; c != nil {
		if c.Scribe != nil && c.Scribe.CoreThesis != "" {
			sb.WriteString("\n" + theme.Hot.Render("Core thesis") + "\n" + c.Scribe.CoreThesis + "\n")
			for _, p := range c.Scribe.StrategicPillars {
				sb.WriteString("  • " + p.Title + "\n")
			}
		}
		if c.Strategist != nil && c.Strategist.Judgment != "" {
			sb.WriteString("\n" + theme.Hot.Render("Judgment") + "\n" + c.Strategist.Judgment + "\n")
		}
	}
	if a := d.Analysis; a != nil && a.WPM > 0 {
		sb.WriteString(fmt.Sprintf("\n%s %d wpm, %s\n", theme.Muted.Render("pace:"), a.WPM, a.Intensity))
	}

	sb.WriteString("\n" + theme.Muted.Render("Transcript") + "\n" + d.Transcript + "\n")
	return sb.String()
}

package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	auditdto "ghostnote/internal/modules/audit/dto"
	draftdto "ghostnote/internal/modules/draft/dto"
	wagerdto "ghostnote/internal/modules/wager/dto"
	"ghostnote/internal/platform/logging"
	"ghostnote/internal/platform/watch"
	"ghostnote/internal/ui/components"
	"ghostnote/internal/ui/theme"
	draftsview "ghostnote/internal/ui/views/drafts"
	ledgerview "ghostnote/internal/ui/views/ledger"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type draftPort interface {
	List(ctx context.Context) ([]draftdto.DraftOutput, error)
	Create(ctx context.Context, title, transcript, tag, audioData string) (draftdto.DraftOutput, error)
	Delete(ctx context.Context, id int64) error
}

type wagerPort interface {
	List(ctx context.Context) ([]wagerdto.WagerOutput, error)
	Stats(ctx context.Context) (wagerdto.StatsOutput, error)
	Seal(ctx context.Context, sessionID, prediction string, days int) (wagerdto.WagerOutput, error)
}

type auditPort interface {
	Audit(ctx context.Context, wagerID int64, followUp string) (auditdto.AuditOutput, error)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabDrafts tabID = iota
	tabLedger
	tabCount
)

var tabLabels = [tabCount]string{"Drafts", "Ledger"}

// hints must stay in sync with the switch in executePalette.
var paletteHints = []string{
	"draft:new [title]",
	"draft:delete",
	"seal <30|90|365> <prediction>",
	"audit [what happened]",
	"reload",
}

// ─── async messages ──────────────────────────────────────────────────────────

type dataChangedMsg struct{}

type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Audit   key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Audit:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "audit selected wager")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Audit, k.Reload},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, runs palette commands
// and reloads both views whenever the data directory changes on disk, so a
// CLI or server writing the same store shows up live.
type Model struct {
	ctx     context.Context
	drafts  draftPort
	wagers  wagerPort
	audits  auditPort
	changes <-chan struct{}
	logger  *zap.Logger

	draftView  draftsview.Model
	ledgerView ledgerview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(ctx context.Context, dataDir string, drafts draftPort, wagers wagerPort, audits auditPort, logger *zap.Logger) Model {
	logger = logging.OrNop(logger)
	m := Model{
		ctx:        ctx,
		drafts:     drafts,
		wagers:     wagers,
		audits:     audits,
		logger:     logger,
		draftView:  draftsview.New(drafts),
		ledgerView: ledgerview.New(wagers),
		activeTab:  tabDrafts,
		keys:       defaultKeys(),
		help:       help.New(),
		palette:    components.NewPalette(paletteHints),
		status:     "ready",
	}
	if dataDir != "" {
		dir, err := watch.NewDir(dataDir, logger)
		if err != nil {
			logger.Warn("live reload disabled", zap.Error(err))
		} else {
			m.changes = dir.Run(ctx)
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.draftView.Init(), m.ledgerView.Init(), m.waitForChange())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case dataChangedMsg:
		return m, tea.Batch(m.draftView.Reload(), m.ledgerView.Reload(), m.waitForChange())

	case actionDoneMsg:
		if msg.err != nil {
			m.status = theme.Error.Render(msg.err.Error())
			return m, nil
		}
		m.status = msg.status
		return m, tea.Batch(m.draftView.Reload(), m.ledgerView.Reload())

	case draftsview.LoadedMsg:
		var cmd tea.Cmd
		m.draftView, cmd = m.draftView.Update(msg)
		return m, cmd

	case ledgerview.LoadedMsg:
		var cmd tea.Cmd
		m.ledgerView, cmd = m.ledgerView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewFiltering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			return m, m.palette.Open()
		case "r":
			m.status = "reloading"
			return m, tea.Batch(m.draftView.Reload(), m.ledgerView.Reload())
		case "a":
			if m.activeTab == tabLedger {
				if _, ok := m.ledgerView.Selected(); ok {
					return m, m.palette.OpenWith("audit ")
				}
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDrafts:
		m.draftView, tabCmd = m.draftView.Update(msg)
	case tabLedger:
		m.ledgerView, tabCmd = m.ledgerView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabLedger:
		content = m.ledgerView.View()
	default:
		content = m.draftView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "ghostnote  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	right := theme.Muted.Render("?:help  tab:switch  ::command  q:quit")
	gap := m.width - lipgloss.Width(m.status) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := m.status + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette ─────────────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "draft:new":
		m.activeTab = tabDrafts
		return m, m.run(func(ctx context.Context) (string, error) {
			d, err := m.drafts.Create(ctx, rest, "", "", "")
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("draft %d saved", d.ID), nil
		})

	case "draft:delete":
		d, ok := m.draftView.Selected()
		if !ok {
			m.status = "no draft selected"
			return m, nil
		}
		return m, m.run(func(ctx context.Context) (string, error) {
			if err := m.drafts.Delete(ctx, d.ID); err != nil {
				return "", err
			}
			return fmt.Sprintf("draft %d deleted", d.ID), nil
		})

	case "seal":
		if len(parts) < 3 {
			m.status = "usage: seal <30|90|365> <prediction>"
			return m, nil
		}
		days, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid horizon: " + parts[1]
			return m, nil
		}
		prediction := strings.TrimSpace(strings.TrimPrefix(rest, parts[1]))
		m.activeTab = tabLedger
		return m, m.run(func(ctx context.Context) (string, error) {
			w, err := m.wagers.Seal(ctx, "", prediction, days)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("wager %d sealed, review %s", w.ID, w.ReviewDate.Local().Format("2006-01-02")), nil
		})

	case "audit":
		m.activeTab = tabLedger
		return m.auditSelected(rest)

	case "reload":
		return m, tea.Batch(m.draftView.Reload(), m.ledgerView.Reload())

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) auditSelected(followUp string) (tea.Model, tea.Cmd) {
	if followUp == "" {
		m.status = "usage: audit <what happened>"
		return m, nil
	}
	w, ok := m.ledgerView.Selected()
	if !ok {
		m.status = "no wager selected"
		return m, nil
	}
	if w.Status == "AUDITED" {
		m.status = fmt.Sprintf("wager %d is already audited", w.ID)
		return m, nil
	}
	m.status = fmt.Sprintf("auditing wager %d…", w.ID)
	return m, m.run(func(ctx context.Context) (string, error) {
		out, err := m.audits.Audit(ctx, w.ID, followUp)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("wager %d audited: %d%% (%s)", out.WagerID, out.AccuracyScore, out.Resolver), nil
	})
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	if m.activeTab == tabLedger {
		return m.ledgerView.Filtering()
	}
	return m.draftView.Filtering()
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.draftView, _ = m.draftView.Update(sz)
	m.ledgerView, _ = m.ledgerView.Update(sz)
}

func (m Model) run(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(m.ctx)
		if err != nil {
			m.logger.Warn("tui action failed", zap.Error(err))
		}
		return actionDoneMsg{status: status, err: err}
	}
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return dataChangedMsg{}
	}
}

package tui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daniilsolovey/newsly/internal/domain"
	"github.com/daniilsolovey/newsly/internal/headlines"
	"github.com/daniilsolovey/newsly/internal/view"
)

const defaultWidth = 80

// snapshotMsg carries a store change into the program loop.
type snapshotMsg headlines.Snapshot

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("21")).
			Padding(0, 1)
	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("250")).
			Padding(0, 1).
			MarginRight(1)
	selectedStyle = categoryStyle.
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("21"))
	statusStyle    = lipgloss.NewStyle().Faint(true)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// Model is the Bubble Tea screen over one headlines store.
type Model struct {
	store *headlines.Store
	log   *slog.Logger

	snap   headlines.Snapshot
	cursor int
	offset int
	width  int
	height int
}

func New(store *headlines.Store, log *slog.Logger) Model {
	snap := store.Snapshot()
	return Model{
		store:  store,
		log:    log,
		snap:   snap,
		cursor: categoryIndex(snap.Category),
		width:  defaultWidth,
	}
}

// Subscribe forwards store changes to p until the returned func is called.
func Subscribe(store *headlines.Store, p *tea.Program) func() {
	return store.Subscribe(func(s headlines.Snapshot) {
		p.Send(snapshotMsg(s))
	})
}

// Init fetches the initially selected category.
func (m Model) Init() tea.Cmd {
	return m.selectCmd(m.snap.Category)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = headlines.Snapshot(msg)
		m.clampOffset()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	categories := domain.Categories()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.cursor == 0 {
			return m, nil
		}
		m.cursor--
		m.offset = 0
		return m, m.selectCmd(categories[m.cursor])
	case "right", "l":
		if m.cursor == len(categories)-1 {
			return m, nil
		}
		m.cursor++
		m.offset = 0
		return m, m.selectCmd(categories[m.cursor])
	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
	case "down", "j":
		m.offset++
		m.clampOffset()
	case "r":
		return m, m.refreshCmd()
	}

	return m, nil
}

// selectCmd runs Select off the program loop: store subscribers call
// Program.Send, which waits for the loop.
func (m Model) selectCmd(category domain.Category) tea.Cmd {
	store, log := m.store, m.log
	return func() tea.Msg {
		if _, err := store.Select(category); err != nil {
			log.Error("failed to select category", "category", category, "error", err)
		}
		return nil
	}
}

func (m Model) refreshCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.Refresh()
		return nil
	}
}

func (m *Model) clampOffset() {
	last := len(m.snap.Articles) - 1
	if last < 0 {
		last = 0
	}
	if m.offset > last {
		m.offset = last
	}
}

func (m Model) View() string {
	page := view.NewPage(m.snap)
	page.Categories = view.Categories(domain.Categories()[m.cursor])

	var b strings.Builder
	b.WriteString(titleStyle.Width(m.width).Render(page.Title))
	b.WriteString("\n\n")
	b.WriteString(m.renderCategories(page.Categories))
	b.WriteString("\n")

	if page.Status != "" {
		b.WriteString(statusStyle.Render(page.Status))
	}
	b.WriteString("\n")

	used := lipgloss.Height(b.String())
	help := helpStyle.Render("←/→ category • ↑/↓ scroll • r refresh • q quit")
	budget := m.height - used - lipgloss.Height(help)

	b.WriteString(m.renderCards(page.Cards, budget))
	b.WriteString("\n")
	b.WriteString(help)

	return b.String()
}

// renderCategories scrolls the row so the cursor stays visible.
func (m Model) renderCategories(items []view.CategoryItem) string {
	rendered := make([]string, len(items))
	for i, item := range items {
		style := categoryStyle
		if item.Selected {
			style = selectedStyle
		}
		rendered[i] = style.Render(item.Label)
	}

	first := 0
	for first < m.cursor && lipgloss.Width(lipgloss.JoinHorizontal(lipgloss.Top, rendered[first:m.cursor+1]...)) > m.width {
		first++
	}

	row := rendered[first:]
	for len(row) > 1 && lipgloss.Width(lipgloss.JoinHorizontal(lipgloss.Top, row...)) > m.width {
		row = row[:len(row)-1]
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, row...)
}

// renderCards draws cards from the scroll offset; a non-positive budget
// means the height is unknown and every card is drawn.
func (m Model) renderCards(cards []view.Card, budget int) string {
	if m.offset >= len(cards) {
		return ""
	}

	width := m.width - cardStyle.GetHorizontalFrameSize()
	if width < 10 {
		width = 10
	}

	var out []string
	used := 0
	for _, card := range cards[m.offset:] {
		body := cardTitleStyle.Render(card.Title) + "\n" + card.Body
		rendered := cardStyle.Width(width).Render(body)
		h := lipgloss.Height(rendered)
		if budget > 0 && used+h > budget && len(out) > 0 {
			break
		}
		out = append(out, rendered)
		used += h
	}

	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func categoryIndex(c domain.Category) int {
	for i, known := range domain.Categories() {
		if known == c {
			return i
		}
	}
	return 0
}

// Package review provides a read-only terminal browser over stored
// postings, ranked by fit score.
package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmelton/jobdigest/internal/model"
)

// Lines per posting in the list view (title + subtitle + blank separator).
const postingItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	postingTitleStyle = lipgloss.NewStyle().
				Bold(true)

	postingSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(12)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
)

type reviewModel struct {
	source   string
	postings []model.Posting

	list   viewport.Model
	detail viewport.Model
	cursor int
	width  int
	height int
	ready  bool
	view   viewState
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list = viewport.New(m.width-2, m.height-4)
		m.detail = viewport.New(m.width-2, m.height-4)
		m.list.SetContent(m.renderList())
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m reviewModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.syncListScroll()
		}
	case "down", "j":
		if m.cursor < len(m.postings)-1 {
			m.cursor++
			m.syncListScroll()
		}
	case "enter":
		if len(m.postings) > 0 {
			m.view = viewDetail
			m.detail.SetContent(m.renderDetail(m.postings[m.cursor]))
			m.detail.SetYOffset(0)
		}
	}
	m.list.SetContent(m.renderList())
	return m, nil
}

func (m reviewModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	}

	// Forward other keys (arrows, pgup/pgdn) to the viewport.
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// syncListScroll keeps the cursor visible inside the list viewport.
func (m *reviewModel) syncListScroll() {
	top := m.list.YOffset / postingItemHeight
	visible := m.list.Height / postingItemHeight
	if m.cursor < top {
		m.list.SetYOffset(m.cursor * postingItemHeight)
	} else if m.cursor >= top+visible {
		m.list.SetYOffset((m.cursor - visible + 1) * postingItemHeight)
	}
}

func (m reviewModel) renderList() string {
	if len(m.postings) == 0 {
		return "No postings stored for this source yet."
	}

	var b strings.Builder
	for i, p := range m.postings {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		subtitle := fmt.Sprintf("%s · fit %s", companyLabel(p), scoreLabel(p))

		if i == m.cursor {
			b.WriteString(selectedTitleStyle.Render(title) + "\n")
			b.WriteString(selectedSubtitleStyle.Render(subtitle) + "\n\n")
		} else {
			b.WriteString(postingTitleStyle.Render(title) + "\n")
			b.WriteString(postingSubtitleStyle.Render(subtitle) + "\n\n")
		}
	}
	return b.String()
}

func (m reviewModel) renderDetail(p model.Posting) string {
	row := func(label, value string) string {
		return detailLabelStyle.Render(label) + value + "\n"
	}

	var b strings.Builder
	b.WriteString(postingTitleStyle.Render(p.Title) + "\n\n")
	b.WriteString(row("Company", companyLabel(p)))
	b.WriteString(row("Fit score", scoreLabel(p)))
	b.WriteString(row("Published", orDash(p.PublishedAt)))
	b.WriteString(row("Link", orDash(p.Link)))
	b.WriteString("\n")
	if p.Reasoning != "" {
		b.WriteString(detailLabelStyle.Render("Reasoning") + "\n")
		b.WriteString(p.Reasoning + "\n\n")
	}
	if p.Summary != "" {
		b.WriteString(detailLabelStyle.Render("Summary") + "\n")
		b.WriteString(p.Summary + "\n")
	}
	return b.String()
}

func (m reviewModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("jobdigest review — %s (%d postings)", m.source, len(m.postings)))

	var body string
	if m.view == viewDetail {
		body = borderStyle.Render(m.detail.View())
	} else {
		body = borderStyle.Render(m.list.View())
	}

	var hint string
	if m.view == viewDetail {
		hint = statusBarStyle.Render("esc back  ↑/↓ scroll  q quit")
	} else {
		hint = statusBarStyle.Render("↑/↓/j/k navigate  enter detail  q quit")
	}

	return header + "\n" + body + "\n" + hint
}

func companyLabel(p model.Posting) string {
	if p.CompanyName == nil || *p.CompanyName == "" {
		return "Unknown"
	}
	return *p.CompanyName
}

func scoreLabel(p model.Posting) string {
	if p.FitScore == nil {
		return "—"
	}
	return fmt.Sprintf("%d/10", *p.FitScore)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// Run opens the posting browser for one feed source. Postings should come
// pre-sorted (TopByFit order).
func Run(source string, postings []model.Posting) error {
	m := reviewModel{
		source:   source,
		postings: postings,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

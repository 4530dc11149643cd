// Package browse is the interactive terminal browser for stored postings.
package browse

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recruitiq/recruitiq/internal/model"
)

// Lines per posting in the list view (title + subtitle + blank separator).
const listItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true)

	itemSubtitleStyle = lipgloss.NewStyle().
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
				Width(14)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	descBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	estimateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

type browseModel struct {
	postings []model.JobPosting
	cursor   int
	width    int
	height   int
	ready    bool

	view           viewState
	listViewport   viewport.Model
	detailViewport viewport.Model
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m browseModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// Forward other keys (pgup/pgdn/home/end) to the viewport.
	var cmd tea.Cmd
	m.listViewport, cmd = m.listViewport.Update(msg)
	return m, cmd
}

func (m browseModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		if m.cursor < len(m.postings) {
			openURL(m.postings[m.cursor].URL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *browseModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.postings)-1, 0))
	m.listViewport.SetContent(renderList(m.postings, m.cursor))
	m.ensureCursorVisible()
}

func (m *browseModel) ensureCursorVisible() {
	cursorTop := m.cursor * listItemHeight
	cursorBottom := cursorTop + listItemHeight - 1

	if cursorTop < m.listViewport.YOffset {
		m.listViewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.listViewport.YOffset+m.listViewport.Height {
		m.listViewport.SetYOffset(cursorBottom - m.listViewport.Height + 1)
	}
}

func (m browseModel) openDetailView() (tea.Model, tea.Cmd) {
	if len(m.postings) == 0 {
		return m, nil
	}

	m.view = viewDetail
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *browseModel) recalcLayout() {
	width := max(m.width-2, 20)
	// Header (1) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	height := max(m.height-4, 5)

	if !m.ready {
		m.listViewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.listViewport.Width = width
		m.listViewport.Height = height
	}
	m.listViewport.SetContent(renderList(m.postings, m.cursor))
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m browseModel) viewList() string {
	header := headerStyle.Render(fmt.Sprintf(" Job Postings (%d)", len(m.postings)))
	pane := borderStyle.Width(m.listViewport.Width).Render(m.listViewport.View())
	statusBar := statusBarStyle.Width(m.width).Render(
		" ↑/↓ or j/k cursor  Enter detail  q quit")
	return header + "\n" + pane + "\n" + statusBar
}

func (m browseModel) viewDetail() string {
	title := detailTitleStyle.Render("Posting Details")
	content := borderStyle.Width(m.width - 2).Render(m.detailViewport.View())
	statusBar := statusBarStyle.Width(m.width).Render(
		" o open URL  esc/backspace back  ↑/↓ scroll  q quit")
	return title + "\n" + content + "\n" + statusBar
}

func (m browseModel) renderDetail() string {
	if m.cursor >= len(m.postings) {
		return ""
	}
	j := m.postings[m.cursor]
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Title", j.Title)
	addField("Company", j.CompanyName)
	addField("Location", j.Location)
	addField("Platform", j.SourcePlatform)
	addField("Type", j.EmploymentType)

	if j.PostedDate != nil {
		addField("Posted", j.PostedDate.Format("2006-01-02"))
	}
	addField("Scraped", j.LastScraped.Format("2006-01-02 15:04"))

	if j.HasSalary() {
		salary := formatSalary(j)
		if j.SalaryEstimated {
			salary += " " + estimateStyle.Render("(estimated)")
		}
		addField("Salary", salary)
	}

	if skills := j.SkillList(); len(skills) > 0 {
		addField("Skills", strings.Join(skills, ", "))
	}

	b.WriteByte('\n')
	addField("URL", j.URL)

	if j.Description != "" {
		wrapWidth := max(m.width-8, 20)
		fill := strings.Repeat("─", max(wrapWidth-15, 3))
		b.WriteByte('\n')
		b.WriteString(dividerStyle.Render("── Description "+fill) + "\n\n")
		b.WriteString(descBodyStyle.Render(wordWrap(j.Description, wrapWidth)) + "\n")
	}

	return b.String()
}

func formatSalary(j model.JobPosting) string {
	currency := j.SalaryCurrency
	if currency == "" {
		currency = "USD"
	}
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return fmt.Sprintf("%s %.0f - %.0f", currency, *j.SalaryMin, *j.SalaryMax)
	case j.SalaryMin != nil:
		return fmt.Sprintf("%s %.0f+", currency, *j.SalaryMin)
	default:
		return fmt.Sprintf("up to %s %.0f", currency, *j.SalaryMax)
	}
}

func renderList(postings []model.JobPosting, cursor int) string {
	if len(postings) == 0 {
		return "  (no postings — run a scrape first)"
	}

	var b strings.Builder
	for i, j := range postings {
		titleSt := itemTitleStyle
		subtitleSt := itemSubtitleStyle
		prefix := "  "
		if i == cursor {
			titleSt = selectedTitleStyle
			subtitleSt = selectedSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(j.Title))
		b.WriteByte('\n')

		subtitle := fmt.Sprintf("%s · %s · %s", j.CompanyName, orDefault(j.Location, "n/a"), j.SourcePlatform)
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(subtitle))
		b.WriteByte('\n')

		if i < len(postings)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// Run launches the interactive posting browser over the given postings.
func Run(postings []model.JobPosting) error {
	m := browseModel{postings: postings}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

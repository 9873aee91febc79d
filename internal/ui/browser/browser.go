package browser

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/cmdtree/internal/ui/style"
)

// Entry is one top-level command and every usage line below it.
type Entry struct {
	Name  string
	Usage []string
}

// Entries groups full usage lines by their first token, keeping the order
// in which commands first appear.
func Entries(lines []string) []Entry {
	var out []Entry
	index := make(map[string]int)
	for _, line := range lines {
		name, _, _ := strings.Cut(line, " ")
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Entry{Name: name})
		}
		out[i].Usage = append(out[i].Usage, line)
	}
	return out
}

// Run shows the browser on in and out until the user quits.
func Run(entries []Entry, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		New(entries),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Accept key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "confirm")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the browser state. It is exported so hosts can embed it in a
// larger program.
type Model struct {
	all       []Entry
	items     []Entry
	cursor    int
	searching bool
	search    textinput.Model
	keys      keyMap
	help      help.Model
	colors    style.ColorConfig
	width     int
	height    int
}

// New returns a browser over entries with the first one selected.
func New(entries []Entry) Model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "command"

	return Model{
		all:    entries,
		items:  entries,
		search: search,
		keys:   defaultKeys(),
		help:   help.New(),
		colors: style.GetColors(),
	}
}

// Selected returns the highlighted entry.
func (m Model) Selected() (Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return Entry{}, false
	}
	return m.items[m.cursor], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(len(m.items)-1, m.cursor+1)
			m.cursor = max(0, m.cursor)
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			return m, m.search.Focus()
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter()
		return m, nil
	case key.Matches(msg, m.keys.Accept):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter()
	return m, cmd
}

// filter keeps the entries whose name or usage contains the query.
func (m *Model) filter() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	m.cursor = 0
	if query == "" {
		m.items = m.all
		return
	}

	m.items = nil
	for _, e := range m.all {
		if strings.Contains(strings.ToLower(strings.Join(e.Usage, "\n")), query) {
			m.items = append(m.items, e)
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	sidebarWidth := min(max(width/4, 16), 28)

	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Render(m.renderSidebar())
	content := lipgloss.NewStyle().
		Width(max(width-sidebarWidth-2, 20)).
		PaddingLeft(2).
		Render(m.renderContent())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content),
		"",
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Info))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted))

	header := title.Render("cmdtree commands") + muted.Render(fmt.Sprintf(" (%d/%d)", len(m.items), len(m.all)))
	switch {
	case m.searching:
		header += "  " + m.search.View()
	case m.search.Value() != "":
		header += muted.Render("  filter: " + m.search.Value())
	}
	return header
}

func (m Model) renderSidebar() string {
	if len(m.items) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted)).Italic(true).Render("No matches")
	}

	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Literal))

	lines := make([]string, 0, len(m.items))
	for i, e := range m.items {
		if i == m.cursor {
			lines = append(lines, "> "+selected.Render(e.Name))
			continue
		}
		lines = append(lines, "  "+e.Name)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderContent() string {
	e, ok := m.Selected()
	if !ok {
		return ""
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Success))

	var b strings.Builder
	b.WriteString(heading.Render("USAGE"))
	b.WriteString("\n")
	for _, line := range e.Usage {
		b.WriteString("  /")
		b.WriteString(style.Usage(line))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderFooter() string {
	if m.searching {
		return m.help.ShortHelpView([]key.Binding{m.keys.Accept, m.keys.Cancel})
	}
	return m.help.ShortHelpView([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Search, m.keys.Quit})
}

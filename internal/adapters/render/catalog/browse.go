package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Service is the catalog behavior the browser drives.
type Service interface {
	SelectCategory(ctx context.Context, category string) ([]domain.Tool, error)
	SearchDebounced(ctx context.Context, query string, deliver func([]domain.Tool, error))
	CancelPendingSearch()
	ToggleBookmark(ctx context.Context, toolID domain.ToolID) (bool, error)
}

type categoryLoadedMsg struct {
	category string
	tools    []domain.Tool
	err      error
}

type searchResultMsg struct {
	query string
	tools []domain.Tool
	err   error
}

type bookmarkToggledMsg struct {
	id         domain.ToolID
	bookmarked bool
	err        error
}

type browseModel struct {
	ctx        context.Context
	svc        Service
	categories []string
	active     int
	input      textinput.Model
	lastQuery  string
	tools      []domain.Tool
	cursor     int
	status     string
	statusErr  bool
	results    chan searchResultMsg
	selected   *domain.Tool
	styles     styles
}

func newBrowseModel(ctx context.Context, svc Service, categories []string) browseModel {
	input := textinput.New()
	input.Placeholder = "search tools"
	input.Prompt = "/ "
	input.Focus()

	return browseModel{
		ctx:        ctx,
		svc:        svc,
		categories: categories,
		input:      input,
		status:     "loading...",
		results:    make(chan searchResultMsg, 1),
		styles:     newStyles(),
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCategory(), m.waitForSearch())
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case categoryLoadedMsg:
		if msg.category != m.category() || errors.Is(msg.err, domain.ErrSuperseded) {
			return m, nil
		}
		m.applyListing(msg.tools, msg.err)
		return m, nil
	case searchResultMsg:
		m.applyListing(msg.tools, msg.err)
		return m, m.waitForSearch()
	case bookmarkToggledMsg:
		m.setBookmarked(msg.id, msg.bookmarked)
		if msg.err != nil {
			m.status, m.statusErr = "bookmark not saved: "+errorText(msg.err), true
		} else {
			m.status, m.statusErr = "", false
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.svc.CancelPendingSearch()
		return m, tea.Quit
	case tea.KeyEnter:
		if len(m.tools) > 0 {
			tool := m.tools[m.cursor]
			m.selected = &tool
		}
		m.svc.CancelPendingSearch()
		return m, tea.Quit
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.tools)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyTab, tea.KeyShiftTab:
		if len(m.categories) == 0 {
			return m, nil
		}
		step := 1
		if msg.Type == tea.KeyShiftTab {
			step = len(m.categories) - 1
		}
		m.active = (m.active + step) % len(m.categories)
		m.svc.CancelPendingSearch()
		m.input.SetValue("")
		m.lastQuery = ""
		m.status, m.statusErr = "loading...", false
		return m, m.loadCategory()
	case tea.KeyCtrlB:
		if len(m.tools) == 0 {
			return m, nil
		}
		tool := m.tools[m.cursor]
		m.setBookmarked(tool.ID, !tool.IsBookmarked)
		return m, m.toggleBookmark(tool.ID)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if query := m.input.Value(); query != m.lastQuery {
		m.lastQuery = query
		m.status, m.statusErr = "searching...", false
		m.svc.SearchDebounced(m.ctx, query, m.deliver(query))
	}

	return m, cmd
}

func (m browseModel) View() string {
	s := m.styles
	tabs := make([]string, 0, len(m.categories))
	for i, category := range m.categories {
		if i == m.active {
			tabs = append(tabs, s.activeTab.Render(category))
		} else {
			tabs = append(tabs, s.category.Render(category))
		}
	}

	lines := []string{
		s.title.Render("ContentKit tools"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		m.input.View(),
	}

	if len(m.tools) == 0 {
		lines = append(lines, s.empty.Render("No tools found."))
	}
	for i, tool := range m.tools {
		prefix := "  "
		if i == m.cursor {
			prefix = s.cursor.Render("> ")
		}
		lines = append(lines, renderTool(tool, prefix, s))
	}

	if m.status != "" {
		style := s.status
		if m.statusErr {
			style = s.errStatus
		}
		lines = append(lines, style.Render(m.status))
	}
	lines = append(lines, s.help.Render("type to search • tab category • ↑/↓ move • ctrl+b bookmark • enter pick • esc quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m browseModel) category() string {
	if len(m.categories) == 0 {
		return ""
	}
	return m.categories[m.active]
}

func (m browseModel) loadCategory() tea.Cmd {
	ctx, svc, category := m.ctx, m.svc, m.category()
	if category == "" {
		return nil
	}

	return func() tea.Msg {
		tools, err := svc.SelectCategory(ctx, category)
		return categoryLoadedMsg{category: category, tools: tools, err: err}
	}
}

func (m browseModel) waitForSearch() tea.Cmd {
	results := m.results
	return func() tea.Msg {
		return <-results
	}
}

// deliver forwards a settled search to the program, giving up once ctx is done.
func (m browseModel) deliver(query string) func([]domain.Tool, error) {
	ctx, results := m.ctx, m.results
	return func(tools []domain.Tool, err error) {
		select {
		case results <- searchResultMsg{query: query, tools: tools, err: err}:
		case <-ctx.Done():
		}
	}
}

func (m browseModel) toggleBookmark(id domain.ToolID) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		bookmarked, err := svc.ToggleBookmark(ctx, id)
		return bookmarkToggledMsg{id: id, bookmarked: bookmarked, err: err}
	}
}

func (m *browseModel) applyListing(tools []domain.Tool, err error) {
	if err != nil {
		m.status, m.statusErr = errorText(err), true
		return
	}

	m.tools = tools
	m.cursor = min(m.cursor, max(len(tools)-1, 0))
	m.status, m.statusErr = fmt.Sprintf("%d tools", len(tools)), false
}

func (m *browseModel) setBookmarked(id domain.ToolID, bookmarked bool) {
	for i := range m.tools {
		if m.tools[i].ID == id {
			m.tools[i].IsBookmarked = bookmarked
		}
	}
}

func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrSignInRequired):
		return "sign in to see My Tools: ck login --account <id>"
	default:
		return domain.UserMessage(err)
	}
}

// Browse runs the interactive catalog browser and returns the tool picked with enter.
func Browse(ctx context.Context, svc Service, categories []string, in io.Reader, out io.Writer) (domain.Tool, bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	categories = append([]string(nil), categories...)
	for i := range categories {
		categories[i] = strings.TrimSpace(categories[i])
	}

	p := tea.NewProgram(
		newBrowseModel(ctx, svc, categories),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.Tool{}, false, err
	}

	result, ok := finalModel.(browseModel)
	if !ok {
		return domain.Tool{}, false, fmt.Errorf("unexpected final browser model type %T", finalModel)
	}
	if result.selected == nil {
		return domain.Tool{}, false, nil
	}

	return *result.selected, true, nil
}

// Package tui is the terminal presentation layer of the directory: a
// bubbletea program holding one ViewState, applying every interaction through
// the viewstate reducer and recomputing the visible page with the pipeline.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noah-isme/user-directory/internal/models"
	"github.com/noah-isme/user-directory/internal/pipeline"
	"github.com/noah-isme/user-directory/internal/viewstate"
)

// Directory is the record store the browser reads from.
type Directory interface {
	Load(ctx context.Context) error
	Records() []models.Record
	Options() pipeline.Options
}

type loadedMsg struct {
	records []models.Record
	err     error
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx  context.Context
	dir  Directory
	opts pipeline.Options

	records []models.Record
	state   models.ViewState
	view    models.View

	loading   bool
	status    string
	searching bool
	prevQuery string

	table  table.Model
	search textinput.Model
	help   help.Model
	keys   KeyMap
	styles Styles
	width  int
}

// New constructs the browser model. Records are fetched by the command
// returned from Init.
func New(ctx context.Context, dir Directory) Model {
	t := table.New(
		table.WithColumns(columns(models.DefaultViewState())),
		table.WithFocused(true),
		table.WithHeight(pipeline.DefaultPageSize+1),
	)

	search := textinput.New()
	search.Placeholder = "search name, email, phone, country..."
	search.Prompt = "/ "
	search.CharLimit = 128
	search.Width = 40

	m := Model{
		ctx:     ctx,
		dir:     dir,
		opts:    dir.Options(),
		records: []models.Record{},
		state:   models.DefaultViewState(),
		loading: true,
		table:   t,
		search:  search,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
	}
	m.recompute()
	return m
}

// Init starts the one-time load.
func (m Model) Init() tea.Cmd {
	dir, ctx := m.dir, m.ctx
	return func() tea.Msg {
		err := dir.Load(ctx)
		return loadedMsg{records: dir.Records(), err: err}
	}
}

// State returns the current view state.
func (m Model) State() models.ViewState {
	return m.state
}

// CurrentView returns the most recently computed view.
func (m Model) CurrentView() models.View {
	return m.view
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.loading = false
		m.records = msg.records
		if m.records == nil {
			m.records = []models.Record{}
		}
		if msg.err != nil {
			m.status = "source unavailable: " + msg.err.Error()
		}
		m.recompute()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Confirm):
		m.stopSearch()
		return m, nil
	case key.Matches(msg, m.keys.CancelEdit):
		m.search.SetValue(m.prevQuery)
		m.stopSearch()
		m.dispatch(viewstate.SetSearch{Text: m.prevQuery})
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.SearchText {
		m.dispatch(viewstate.SetSearch{Text: m.search.Value()})
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.prevQuery = m.state.SearchText
		m.table.Blur()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Gender):
		m.dispatch(viewstate.SetGender{Gender: m.state.Gender.Next()})
	case key.Matches(msg, m.keys.Country):
		m.dispatch(viewstate.SetCountry{Filter: nextCountry(m.state.Country, m.view.Countries)})
	case key.Matches(msg, m.keys.SortName):
		m.dispatch(viewstate.ToggleSort{Key: models.SortByName})
	case key.Matches(msg, m.keys.SortEmail):
		m.dispatch(viewstate.ToggleSort{Key: models.SortByEmail})
	case key.Matches(msg, m.keys.SortAge):
		m.dispatch(viewstate.ToggleSort{Key: models.SortByAge})
	case key.Matches(msg, m.keys.PrevPage):
		m.dispatch(viewstate.GoToPage{Page: m.view.Page - 1, TotalPages: m.view.TotalPages})
	case key.Matches(msg, m.keys.NextPage):
		m.dispatch(viewstate.GoToPage{Page: m.view.Page + 1, TotalPages: m.view.TotalPages})
	case key.Matches(msg, m.keys.Select):
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.view.Records) {
			m.dispatch(viewstate.SelectRecord{Record: m.view.Records[idx]})
		}
	case key.Matches(msg, m.keys.Clear):
		m.dispatch(viewstate.ClearSelection{})
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) stopSearch() {
	m.searching = false
	m.search.Blur()
	m.table.Focus()
}

func (m *Model) dispatch(action viewstate.Action) {
	previousPage := m.state.CurrentPage
	m.state = viewstate.Reduce(m.state, action)
	m.recompute()
	if m.state.CurrentPage != previousPage {
		m.table.SetCursor(0)
	}
}

func (m *Model) recompute() {
	m.view = m.opts.ComputeView(m.records, m.state)
	m.state = viewstate.Reconcile(m.state, m.view)

	rows := make([]table.Row, 0, len(m.view.Records))
	for _, r := range m.view.Records {
		rows = append(rows, table.Row{r.FullName(), r.Email, strconv.Itoa(r.Age)})
	}
	m.table.SetColumns(columns(m.state))
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// nextCountry cycles any -> first country -> ... -> last country -> any.
func nextCountry(current models.CountryFilter, countries []string) models.CountryFilter {
	if len(countries) == 0 {
		return models.AnyCountry()
	}
	if current.IsAny() {
		return models.OnlyCountry(countries[0])
	}
	for i, c := range countries {
		if c == current.Country() {
			if i+1 < len(countries) {
				return models.OnlyCountry(countries[i+1])
			}
			return models.AnyCountry()
		}
	}
	return models.AnyCountry()
}

func columns(state models.ViewState) []table.Column {
	title := func(label string, k models.SortKey) string {
		if state.SortKey != k {
			return label
		}
		if state.SortDirection == models.Descending {
			return label + " ▼"
		}
		return label + " ▲"
	}
	return []table.Column{
		{Title: title("Name", models.SortByName), Width: 28},
		{Title: title("Email", models.SortByEmail), Width: 34},
		{Title: title("Age", models.SortByAge), Width: 6},
	}
}

// View renders the browser.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("User Directory"))
	sb.WriteString("\n")

	inputStyle := m.styles.Input
	if m.searching {
		inputStyle = m.styles.InputOn
	}
	sb.WriteString(inputStyle.Render(m.search.View()))
	sb.WriteString("\n")
	sb.WriteString(m.renderFilters())
	sb.WriteString("\n\n")

	var body string
	switch {
	case m.loading:
		body = m.styles.Empty.Render("Loading users...")
	case len(m.view.Records) == 0:
		body = m.styles.Empty.Render("No users match the current filters.")
	default:
		body = m.table.View()
	}
	if m.state.Selected != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderDetail(*m.state.Selected))
	}
	sb.WriteString(body)

	sb.WriteString(m.styles.Footer.Render(fmt.Sprintf("Page %d of %d · %d users", m.view.Page, m.view.TotalPages, m.view.TotalCount)))
	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Status.Render(m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpLine.Render(m.help.View(m.keys)))
	return sb.String()
}

func (m Model) renderFilters() string {
	country := "any"
	if !m.state.Country.IsAny() {
		country = m.state.Country.Country()
	}
	parts := []string{
		"gender: " + m.styles.Active.Render(m.state.Gender.String()),
		"country: " + m.styles.Active.Render(country),
		"sort: " + m.styles.Active.Render(m.state.SortKey.String()+" "+m.state.SortDirection.String()),
	}
	return m.styles.Filters.Render(strings.Join(parts, "  |  "))
}

func (m Model) renderDetail(r models.Record) string {
	line := func(label, value string) string {
		return m.styles.Label.Render(label) + value
	}
	return m.styles.Detail.Render(strings.Join([]string{
		m.styles.Active.Render(r.FullName()),
		"",
		line("Email", r.Email),
		line("Phone", r.Phone),
		line("Age", strconv.Itoa(r.Age)),
		line("Gender", r.Gender),
		line("Country", r.Country),
		line("Picture", r.PictureURL),
	}, "\n"))
}

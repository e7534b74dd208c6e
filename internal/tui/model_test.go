package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/user-directory/internal/models"
	"github.com/noah-isme/user-directory/internal/pipeline"
)

type directoryStub struct {
	records []models.Record
	err     error
}

func (d *directoryStub) Load(ctx context.Context) error { return d.err }

func (d *directoryStub) Records() []models.Record {
	if d.err != nil {
		return []models.Record{}
	}
	return d.records
}

func (d *directoryStub) Options() pipeline.Options {
	return pipeline.Options{PageSize: 3}
}

func people() []models.Record {
	countries := []string{"Peru", "Chile"}
	out := make([]models.Record, 0, 7)
	for i := 0; i < 7; i++ {
		gender := "female"
		if i%2 == 0 {
			gender = "male"
		}
		out = append(out, models.Record{
			ID:      fmt.Sprintf("p%d", i),
			Name:    models.PersonName{First: fmt.Sprintf("Name%d", i), Last: "Test"},
			Email:   fmt.Sprintf("n%d@example.com", 9-i),
			Age:     60 - i*5,
			Gender:  gender,
			Country: countries[i%2],
		})
	}
	return out
}

func loaded(t *testing.T, dir *directoryStub) Model {
	t.Helper()
	m := New(context.Background(), dir)
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func visibleIDs(m Model) []string {
	out := []string{}
	for _, r := range m.CurrentView().Records {
		out = append(out, r.ID)
	}
	return out
}

func TestModelLoadsFirstPage(t *testing.T) {
	m := loaded(t, &directoryStub{records: people()})

	view := m.CurrentView()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 3, view.TotalPages)
	if diff := cmp.Diff([]string{"p0", "p1", "p2"}, visibleIDs(m)); diff != "" {
		t.Fatalf("first page mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, m.View(), "Page 1 of 3")
}

func TestModelSortToggleKeys(t *testing.T) {
	m := loaded(t, &directoryStub{records: people()})

	m = press(m, "3")
	assert.Equal(t, models.SortByAge, m.State().SortKey)
	assert.Equal(t, models.Ascending, m.State().SortDirection)
	assert.Equal(t, []string{"p6", "p5", "p4"}, visibleIDs(m))

	m = press(m, "3")
	assert.Equal(t, models.Descending, m.State().SortDirection)
	assert.Equal(t, []string{"p0", "p1", "p2"}, visibleIDs(m))
	assert.Contains(t, m.View(), "Age ▼")

	m = press(m, "1")
	assert.Equal(t, models.SortByName, m.State().SortKey)
	assert.Equal(t, models.Ascending, m.State().SortDirection)

	m = press(m, "2")
	assert.Equal(t, []string{"p6", "p5", "p4"}, visibleIDs(m))
}

func TestModelGenderAndCountryCycle(t *testing.T) {
	m := loaded(t, &directoryStub{records: people()})

	m = press(m, "g")
	assert.Equal(t, models.GenderMale, m.State().Gender)
	assert.Equal(t, 4, m.CurrentView().TotalCount)
	m = press(m, "g", "g")
	assert.Equal(t, models.GenderAll, m.State().Gender)

	m = press(m, "c")
	assert.Equal(t, "Chile", m.State().Country.Country())
	m = press(m, "c")
	assert.Equal(t, "Peru", m.State().Country.Country())
	m = press(m, "c")
	assert.True(t, m.State().Country.IsAny())
}

func TestModelPagingAndFilterReset(t *testing.T) {
	m := loaded(t, &directoryStub{records: people()})

	m = press(m, "right", "l")
	assert.Equal(t, 3, m.State().CurrentPage)
	m = press(m, "right")
	assert.Equal(t, 3, m.State().CurrentPage)
	m = press(m, "h")
	assert.Equal(t, 2, m.State().CurrentPage)

	m = press(m, "g")
	assert.Equal(t, 1, m.State().CurrentPage)
	m = press(m, "left")
	assert.Equal(t, 1, m.State().CurrentPage)
}

func TestModelSearchInput(t *testing.T) {
	m := loaded(t, &directoryStub{records: people()})

	m = press(m, "/", "n", "3", "@")
	assert.Equal(t, "n3@", m.State().SearchText)
	assert.Equal(t, []string{"p6"}, visibleIDs(m))

	m = press(m, "q")
	assert.Equal(t, "n3@q", m.State().SearchText, "q types while searching")

	m = press(m, "esc")
	assert.Equal(t, "", m.State().SearchText)

	m = press(m, "/", "6", "enter")
	assert.Equal(t, "6", m.State().SearchText)
	m = press(m, "g")
	assert.Equal(t, models.GenderMale, m.State().Gender, "keys act on the table after enter")
}

func TestModelSelectionPersists(t *testing.T) {
	m := loaded(t, &directoryStub{records: people()})

	m = press(m, "down", "enter")
	require.NotNil(t, m.State().Selected)
	assert.Equal(t, "p1", m.State().Selected.ID)
	assert.Contains(t, m.View(), "n8@example.com")

	m = press(m, "g", "c", "3")
	require.NotNil(t, m.State().Selected)
	assert.Equal(t, "p1", m.State().Selected.ID)

	m = press(m, "x")
	assert.Nil(t, m.State().Selected)
}

func TestModelSourceFailure(t *testing.T) {
	m := loaded(t, &directoryStub{err: errors.New("connection refused")})

	assert.Empty(t, m.CurrentView().Records)
	assert.Equal(t, 1, m.CurrentView().TotalPages)
	out := m.View()
	assert.Contains(t, out, "source unavailable")
	assert.Contains(t, out, "No users match")
}

func TestModelQuit(t *testing.T) {
	m := loaded(t, &directoryStub{records: people()})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/noah-isme/user-directory/internal/models"
)

func TestSortByNameUsesLocaleCollation(t *testing.T) {
	records := []models.Record{
		{ID: "1", Name: models.PersonName{First: "Zoe"}},
		{ID: "2", Name: models.PersonName{First: "Émile"}},
		{ID: "3", Name: models.PersonName{First: "Adam"}},
		{ID: "4", Name: models.PersonName{First: "eve"}},
	}

	asc := Sort(records, models.SortByName, models.Ascending)
	desc := Sort(records, models.SortByName, models.Descending)

	assert.Equal(t, []string{"Adam", "Émile", "eve", "Zoe"}, firstNames(asc))
	assert.Equal(t, []string{"Zoe", "eve", "Émile", "Adam"}, firstNames(desc))
}

func TestSortRespectsConfiguredLocale(t *testing.T) {
	records := []models.Record{
		{ID: "1", Name: models.PersonName{First: "Öle"}},
		{ID: "2", Name: models.PersonName{First: "Zara"}},
	}

	english := Options{Locale: language.English}.Sort(records, models.SortByName, models.Ascending)
	swedish := Options{Locale: language.Swedish}.Sort(records, models.SortByName, models.Ascending)

	// Swedish places Ö after Z.
	assert.Equal(t, []string{"Öle", "Zara"}, firstNames(english))
	assert.Equal(t, []string{"Zara", "Öle"}, firstNames(swedish))
}

func TestSortByEmailAndAge(t *testing.T) {
	records := []models.Record{
		{ID: "a", Email: "c@example.com", Age: 40},
		{ID: "b", Email: "a@example.com", Age: 18},
		{ID: "c", Email: "b@example.com", Age: 65},
	}

	assert.Equal(t, []string{"b", "c", "a"}, ids(Sort(records, models.SortByEmail, models.Ascending)))
	assert.Equal(t, []string{"a", "c", "b"}, ids(Sort(records, models.SortByEmail, models.Descending)))
	assert.Equal(t, []string{"b", "a", "c"}, ids(Sort(records, models.SortByAge, models.Ascending)))
	assert.Equal(t, []string{"c", "a", "b"}, ids(Sort(records, models.SortByAge, models.Descending)))
}

func TestSortIsStableInBothDirections(t *testing.T) {
	records := []models.Record{
		{ID: "first-30", Name: models.PersonName{First: "Kim"}, Email: "same@example.com", Age: 30},
		{ID: "only-20", Name: models.PersonName{First: "Ann"}, Email: "a@example.com", Age: 20},
		{ID: "second-30", Name: models.PersonName{First: "Kim"}, Email: "same@example.com", Age: 30},
		{ID: "third-30", Name: models.PersonName{First: "Kim"}, Email: "same@example.com", Age: 30},
	}

	tests := []struct {
		key  models.SortKey
		dir  models.SortDirection
		want []string
	}{
		{models.SortByAge, models.Ascending, []string{"only-20", "first-30", "second-30", "third-30"}},
		{models.SortByAge, models.Descending, []string{"first-30", "second-30", "third-30", "only-20"}},
		{models.SortByName, models.Ascending, []string{"only-20", "first-30", "second-30", "third-30"}},
		{models.SortByName, models.Descending, []string{"first-30", "second-30", "third-30", "only-20"}},
		{models.SortByEmail, models.Ascending, []string{"only-20", "first-30", "second-30", "third-30"}},
		{models.SortByEmail, models.Descending, []string{"first-30", "second-30", "third-30", "only-20"}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String()+"-"+tt.dir.String(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(Sort(records, tt.key, tt.dir))); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortReturnsCopy(t *testing.T) {
	records := directoryFixture()
	before := ids(records)

	sorted := Sort(records, models.SortByName, models.Descending)
	sorted[0].Name.First = "changed"

	assert.Equal(t, before, ids(records))
	assert.NotEqual(t, "changed", records[len(records)-1].Name.First)
}

func TestSortEmptyInput(t *testing.T) {
	got := Sort(nil, models.SortByAge, models.Descending)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

package pipeline

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/user-directory/internal/models"
)

func TestFilterEmptySearchMatchesEverything(t *testing.T) {
	records := directoryFixture()

	got := Filter(records, "", models.GenderAll, models.AnyCountry())

	if diff := cmp.Diff(ids(records), ids(got)); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestFilterSearchSpansFieldsCaseInsensitively(t *testing.T) {
	records := []models.Record{
		{ID: "a", Name: models.PersonName{First: "John", Last: "Doe"}, Email: "jd@example.com", Age: 34, Gender: "male", Country: "Norway"},
		{ID: "b", Name: models.PersonName{First: "Jane", Last: "Roe"}, Email: "jr@example.com", Age: 51, Gender: "female", Country: "Brazil"},
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "first name upper case", search: "JOHN", want: []string{"a"}},
		{name: "across first and last", search: "hndo", want: []string{"a"}},
		{name: "email fragment", search: "JR@", want: []string{"b"}},
		{name: "age", search: "51", want: []string{"b"}},
		{name: "country", search: "norw", want: []string{"a"}},
		{name: "gender word matches both via female", search: "male", want: []string{"a", "b"}},
		{name: "no match", search: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.search, models.GenderAll, models.AnyCountry())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterGenderAndCountryIgnoreCase(t *testing.T) {
	records := []models.Record{
		{ID: "a", Gender: "FEMALE", Country: "france"},
		{ID: "b", Gender: "male", Country: "France"},
		{ID: "c", Gender: "female", Country: "Spain"},
	}

	got := Filter(records, "", models.GenderFemale, models.OnlyCountry("France"))

	assert.Equal(t, []string{"a"}, ids(got))
}

func TestFilterCountryNamedAllIsNotASentinel(t *testing.T) {
	records := []models.Record{
		{ID: "a", Country: "All"},
		{ID: "b", Country: "Chile"},
	}

	assert.Equal(t, []string{"a", "b"}, ids(Filter(records, "", models.GenderAll, models.AnyCountry())))
	assert.Equal(t, []string{"a"}, ids(Filter(records, "", models.GenderAll, models.OnlyCountry("All"))))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := directoryFixture()
	before := ids(records)

	_ = Filter(records, "person1", models.GenderMale, models.OnlyCountry("US"))

	assert.Equal(t, before, ids(records))
}

func TestFilterResultSatisfiesEveryPredicate(t *testing.T) {
	records := directoryFixture()
	cases := []struct {
		search  string
		gender  models.GenderFilter
		country models.CountryFilter
	}{
		{"", models.GenderAll, models.AnyCountry()},
		{"person1", models.GenderAll, models.AnyCountry()},
		{"", models.GenderFemale, models.OnlyCountry("us")},
		{"EXAMPLE", models.GenderMale, models.OnlyCountry("FR")},
		{"23", models.GenderAll, models.OnlyCountry("US")},
	}

	for _, c := range cases {
		got := Filter(records, c.search, c.gender, c.country)
		require.LessOrEqual(t, len(got), len(records))

		// recompute the expected subset independently of Filter
		var want []string
		for _, r := range records {
			hay := strings.ToLower(r.Name.First + r.Name.Last + r.Email + r.Phone + strconv.Itoa(r.Age) + r.Gender + r.Country + r.PictureURL)
			if !strings.Contains(hay, strings.ToLower(c.search)) {
				continue
			}
			if c.gender != models.GenderAll && !strings.EqualFold(r.Gender, c.gender.String()) {
				continue
			}
			if !c.country.IsAny() && !strings.EqualFold(r.Country, c.country.Country()) {
				continue
			}
			want = append(want, r.ID)
		}
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, ids(got), "search=%q gender=%s country=%s", c.search, c.gender, c.country)
	}
}

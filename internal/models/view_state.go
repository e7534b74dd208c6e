package models

import (
	"fmt"
	"strings"
)

// GenderFilter narrows the directory by gender.
type GenderFilter int

const (
	GenderAll GenderFilter = iota
	GenderMale
	GenderFemale
)

// ParseGenderFilter accepts "all", "male" or "female" in any case. An empty
// value means all.
func ParseGenderFilter(raw string) (GenderFilter, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return GenderAll, nil
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	default:
		return GenderAll, fmt.Errorf("unknown gender filter %q", raw)
	}
}

func (g GenderFilter) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "all"
	}
}

// Matches reports whether a record gender passes the filter.
func (g GenderFilter) Matches(gender string) bool {
	if g == GenderAll {
		return true
	}
	return strings.EqualFold(g.String(), gender)
}

// Next cycles All -> Male -> Female -> All.
func (g GenderFilter) Next() GenderFilter {
	return (g + 1) % 3
}

// CountryFilter is either "any country" or one exact country. The zero value
// is AnyCountry, so no country name can ever be mistaken for "no filter".
type CountryFilter struct {
	country string
	set     bool
}

// AnyCountry disables country filtering.
func AnyCountry() CountryFilter {
	return CountryFilter{}
}

// OnlyCountry keeps records whose country equals name, ignoring case.
func OnlyCountry(name string) CountryFilter {
	return CountryFilter{country: name, set: true}
}

// IsAny reports whether the filter is disabled.
func (f CountryFilter) IsAny() bool {
	return !f.set
}

// Country returns the selected country, empty when IsAny.
func (f CountryFilter) Country() string {
	return f.country
}

// Matches reports whether a record country passes the filter.
func (f CountryFilter) Matches(country string) bool {
	return !f.set || strings.EqualFold(f.country, country)
}

func (f CountryFilter) String() string {
	if !f.set {
		return "any"
	}
	return f.country
}

// SortKey selects the comparator used to order records.
type SortKey int

const (
	SortByName SortKey = iota
	SortByEmail
	SortByAge
)

// ParseSortKey accepts "name", "email" or "age". Empty means name.
func ParseSortKey(raw string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "name":
		return SortByName, nil
	case "email":
		return SortByEmail, nil
	case "age":
		return SortByAge, nil
	default:
		return SortByName, fmt.Errorf("unknown sort key %q", raw)
	}
}

func (k SortKey) String() string {
	switch k {
	case SortByEmail:
		return "email"
	case SortByAge:
		return "age"
	default:
		return "name"
	}
}

// SortDirection orders ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// ParseSortDirection accepts "asc" or "desc". Empty means ascending.
func ParseSortDirection(raw string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort direction %q", raw)
	}
}

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ViewState captures every user-controlled parameter of the directory view.
// It is treated as a value: transitions return a new ViewState.
type ViewState struct {
	SearchText    string
	Gender        GenderFilter
	Country       CountryFilter
	SortKey       SortKey
	SortDirection SortDirection
	CurrentPage   int
	Selected      *Record
}

// DefaultViewState returns the state a session starts with.
func DefaultViewState() ViewState {
	return ViewState{
		Gender:        GenderAll,
		Country:       AnyCountry(),
		SortKey:       SortByName,
		SortDirection: Ascending,
		CurrentPage:   1,
	}
}

// CacheKey renders the parts of the state that influence a computed view.
// Text is kept verbatim so two keys only collide when the inputs are
// identical. The selection is excluded since it never changes the visible page.
func (s ViewState) CacheKey() string {
	country := "*"
	if !s.Country.IsAny() {
		country = "=" + s.Country.Country()
	}
	return fmt.Sprintf("q=%q|g=%s|c=%q|s=%s|o=%s|p=%d",
		s.SearchText, s.Gender, country, s.SortKey, s.SortDirection, s.CurrentPage)
}

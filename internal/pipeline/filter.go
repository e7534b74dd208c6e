package pipeline

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/noah-isme/user-directory/internal/models"
)

// Filter keeps the records that match the search text, the gender filter and
// the country filter, in their original relative order.
//
// The search is a case-insensitive substring match against
// Record.SearchText, so it may match across field boundaries. An empty
// search matches everything.
func Filter(records []models.Record, search string, gender models.GenderFilter, country models.CountryFilter) []models.Record {
	fold := cases.Fold()
	needle := fold.String(search)

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if !gender.Matches(r.Gender) || !country.Matches(r.Country) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(r.SearchText()), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

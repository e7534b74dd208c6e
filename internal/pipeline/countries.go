package pipeline

import (
	"slices"

	"golang.org/x/text/collate"

	"github.com/noah-isme/user-directory/internal/models"
)

// DeriveCountries lists each distinct country once, collated for o.Locale.
// Distinctness is exact: "France" and "france" are two options.
func (o Options) DeriveCountries(records []models.Record) []string {
	seen := make(map[string]struct{}, len(records))
	countries := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Country]; ok {
			continue
		}
		seen[r.Country] = struct{}{}
		countries = append(countries, r.Country)
	}

	collator := collate.New(o.Locale)
	slices.SortStableFunc(countries, collator.CompareString)
	return countries
}

// DeriveCountries is Options.DeriveCountries with DefaultOptions.
func DeriveCountries(records []models.Record) []string {
	return DefaultOptions().DeriveCountries(records)
}

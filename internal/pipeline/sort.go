package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"

	"github.com/noah-isme/user-directory/internal/models"
)

// Sort returns a stably sorted copy of records. Names use the collation rules
// of o.Locale, emails compare byte-wise and ages numerically. Descending
// negates the comparator, so ties keep their input order in both directions.
func (o Options) Sort(records []models.Record, key models.SortKey, dir models.SortDirection) []models.Record {
	out := slices.Clone(records)
	if out == nil {
		out = []models.Record{}
	}

	compare := comparator(key, collate.New(o.Locale))
	if dir == models.Descending {
		asc := compare
		compare = func(a, b models.Record) int { return -asc(a, b) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Sort is Options.Sort with DefaultOptions.
func Sort(records []models.Record, key models.SortKey, dir models.SortDirection) []models.Record {
	return DefaultOptions().Sort(records, key, dir)
}

// collator must not be shared across goroutines; Sort builds one per call.
func comparator(key models.SortKey, collator *collate.Collator) func(a, b models.Record) int {
	switch key {
	case models.SortByEmail:
		return func(a, b models.Record) int { return strings.Compare(a.Email, b.Email) }
	case models.SortByAge:
		return func(a, b models.Record) int { return cmp.Compare(a.Age, b.Age) }
	default:
		return func(a, b models.Record) int { return collator.CompareString(a.Name.First, b.Name.First) }
	}
}

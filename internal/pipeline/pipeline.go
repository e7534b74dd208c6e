// Package pipeline turns the immutable record collection and a ViewState
// into the page of records a presentation layer renders.
//
// Every function here is pure and total: no I/O, no logging, no errors, and
// no mutation of its inputs. Callers recompute the whole view on every state
// change; any memoization lives outside this package.
package pipeline

import (
	"golang.org/x/text/language"

	"github.com/noah-isme/user-directory/internal/models"
)

// DefaultPageSize is the number of records shown per page.
const DefaultPageSize = 10

// DefaultLocale drives name collation when none is configured.
var DefaultLocale = language.English

// Options tunes a recomputation. The zero value is usable.
type Options struct {
	PageSize int
	Locale   language.Tag
}

// DefaultOptions returns ten records per page collated for English.
func DefaultOptions() Options {
	return Options{PageSize: DefaultPageSize, Locale: DefaultLocale}
}

func (o Options) pageSize() int {
	if o.PageSize < 1 {
		return DefaultPageSize
	}
	return o.PageSize
}

// ComputeView runs filter, sort, clamp and paginate for state and derives the
// country options from the full collection. An empty collection yields an
// empty page, one total page and no countries.
func (o Options) ComputeView(records []models.Record, state models.ViewState) models.View {
	filtered := Filter(records, state.SearchText, state.Gender, state.Country)
	sorted := o.Sort(filtered, state.SortKey, state.SortDirection)

	size := o.pageSize()
	page := ClampPage(state.CurrentPage, TotalPages(len(sorted), size))
	window := Paginate(sorted, page, size)

	return models.View{
		Records:    window.Records,
		Page:       page,
		PageSize:   size,
		TotalPages: window.TotalPages,
		TotalCount: len(sorted),
		Countries:  o.DeriveCountries(records),
	}
}

// ComputeView is Options.ComputeView with DefaultOptions.
func ComputeView(records []models.Record, state models.ViewState) models.View {
	return DefaultOptions().ComputeView(records, state)
}

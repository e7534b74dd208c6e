package pipeline

import (
	"slices"

	"github.com/noah-isme/user-directory/internal/models"
)

// Page is one window of a sorted collection.
type Page struct {
	Records    []models.Record
	TotalPages int
}

// TotalPages is ceil(count/pageSize), never less than one.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage pulls page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		return 1
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// Paginate returns the records of the 1-based page. It does not clamp: a page
// outside [1, TotalPages] yields an empty window, so callers run ClampPage
// first whenever the collection may have shrunk.
func Paginate(records []models.Record, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(records), pageSize)
	if page < 1 || page > total {
		return Page{Records: []models.Record{}, TotalPages: total}
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(records))
	if start >= end {
		return Page{Records: []models.Record{}, TotalPages: total}
	}
	return Page{Records: slices.Clone(records[start:end]), TotalPages: total}
}

package dto

import (
	"strings"

	"github.com/noah-isme/user-directory/internal/models"
)

// ViewQuery captures GET /users query parameters.
type ViewQuery struct {
	Search  string `form:"search" validate:"max=256"`
	Gender  string `form:"gender" validate:"omitempty,oneof=all male female"`
	Country string `form:"country" validate:"max=128"`
	Sort    string `form:"sort" validate:"omitempty,oneof=name email age"`
	Order   string `form:"order" validate:"omitempty,oneof=asc desc"`
	Page    int    `form:"page"`
}

// Normalize lowercases the enum parameters so validation is case-insensitive.
func (q *ViewQuery) Normalize() {
	q.Gender = strings.ToLower(strings.TrimSpace(q.Gender))
	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	q.Order = strings.ToLower(strings.TrimSpace(q.Order))
	q.Country = strings.TrimSpace(q.Country)
}

// ViewState converts a validated query into the state it describes. An empty
// country means any country. A missing page means page 1; out-of-range pages
// are clamped by the pipeline, never rejected.
func (q ViewQuery) ViewState() (models.ViewState, error) {
	state := models.DefaultViewState()
	state.SearchText = q.Search

	gender, err := models.ParseGenderFilter(q.Gender)
	if err != nil {
		return state, err
	}
	state.Gender = gender

	if q.Country != "" {
		state.Country = models.OnlyCountry(q.Country)
	}

	if q.Sort != "" {
		key, err := models.ParseSortKey(q.Sort)
		if err != nil {
			return state, err
		}
		state.SortKey = key
	}
	if q.Order != "" {
		dir, err := models.ParseSortDirection(q.Order)
		if err != nil {
			return state, err
		}
		state.SortDirection = dir
	}

	if q.Page != 0 {
		state.CurrentPage = q.Page
	}
	return state, nil
}

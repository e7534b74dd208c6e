// Package viewstate holds the transitions a presentation layer applies to a
// models.ViewState in response to user actions.
package viewstate

import (
	"github.com/noah-isme/user-directory/internal/models"
	"github.com/noah-isme/user-directory/internal/pipeline"
)

// Action is one user intent. Each action maps to exactly one transition.
type Action interface {
	apply(models.ViewState) models.ViewState
}

// SetSearch replaces the search text and returns to the first page.
type SetSearch struct{ Text string }

// SetGender replaces the gender filter and returns to the first page.
type SetGender struct{ Gender models.GenderFilter }

// SetCountry replaces the country filter and returns to the first page.
type SetCountry struct{ Filter models.CountryFilter }

// ToggleSort flips the direction when Key is already active, otherwise
// switches to Key ascending. The page is kept.
type ToggleSort struct{ Key models.SortKey }

// SelectRecord marks one record for the detail panel.
type SelectRecord struct{ Record models.Record }

// ClearSelection hides the detail panel.
type ClearSelection struct{}

// GoToPage moves to Page when it lies within [1, TotalPages]; any other
// page leaves the state untouched.
type GoToPage struct {
	Page       int
	TotalPages int
}

// Reduce returns the state that results from applying action to state.
// A nil action returns state unchanged.
func Reduce(state models.ViewState, action Action) models.ViewState {
	if action == nil {
		return state
	}
	return action.apply(state)
}

// Reconcile stores the page the pipeline actually rendered, keeping
// CurrentPage inside [1, TotalPages] after filters shrink the result.
func Reconcile(state models.ViewState, view models.View) models.ViewState {
	state.CurrentPage = pipeline.ClampPage(state.CurrentPage, view.TotalPages)
	return state
}

func (a SetSearch) apply(s models.ViewState) models.ViewState {
	s.SearchText = a.Text
	s.CurrentPage = 1
	return s
}

func (a SetGender) apply(s models.ViewState) models.ViewState {
	s.Gender = a.Gender
	s.CurrentPage = 1
	return s
}

func (a SetCountry) apply(s models.ViewState) models.ViewState {
	s.Country = a.Filter
	s.CurrentPage = 1
	return s
}

func (a ToggleSort) apply(s models.ViewState) models.ViewState {
	if a.Key == s.SortKey {
		s.SortDirection = s.SortDirection.Flip()
		return s
	}
	s.SortKey = a.Key
	s.SortDirection = models.Ascending
	return s
}

func (a SelectRecord) apply(s models.ViewState) models.ViewState {
	selected := a.Record
	s.Selected = &selected
	return s
}

func (ClearSelection) apply(s models.ViewState) models.ViewState {
	s.Selected = nil
	return s
}

func (a GoToPage) apply(s models.ViewState) models.ViewState {
	if a.Page < 1 || a.Page > a.TotalPages {
		return s
	}
	s.CurrentPage = a.Page
	return s
}

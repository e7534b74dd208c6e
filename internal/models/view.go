package models

// View is the output of one pipeline recomputation.
type View struct {
	Records    []Record `json:"records"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
	TotalCount int      `json:"total_count"`
	Countries  []string `json:"countries"`
}

// Pagination describes paging metadata attached to list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// Pagination derives response metadata from the view.
func (v View) Pagination() *Pagination {
	return &Pagination{
		Page:       v.Page,
		PageSize:   v.PageSize,
		TotalCount: v.TotalCount,
		TotalPages: v.TotalPages,
	}
}

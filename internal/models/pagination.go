package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// NewPagination clamps page into [1, totalPages].
func NewPagination(page, totalPages int) Pagination {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, TotalPages: totalPages, HasPrev: page > 1, HasNext: page < totalPages}
}

// PrevPage returns the previous page number, clamped.
func (p Pagination) PrevPage() int {
	if p.HasPrev {
		return p.Page - 1
	}
	return p.Page
}

// NextPage returns the next page number, clamped.
func (p Pagination) NextPage() int {
	if p.HasNext {
		return p.Page + 1
	}
	return p.Page
}

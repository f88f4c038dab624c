package viewmodel

// Pagination drives the pager under a list. An empty link disables that
// direction.
type Pagination struct {
	Page, TotalPages, Total int
	PrevURL, NextURL        string
}

func (p Pagination) HasPrev() bool { return p.PrevURL != "" }

func (p Pagination) HasNext() bool { return p.NextURL != "" }

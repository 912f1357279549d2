package store

type Entity interface {
	EntityID() string
}

type Pagination struct {
	Page       int `json:"page" yaml:"page"`
	Limit      int `json:"limit" yaml:"limit"`
	Total      int `json:"total" yaml:"total"`
	TotalPages int `json:"totalPages" yaml:"total_pages"`
}

type Page[T any] struct {
	Records    []T        `json:"records"`
	Pagination Pagination `json:"pagination"`
}

func TotalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	if limit <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

func (p Pagination) withDerived() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Total < 0 {
		p.Total = 0
	}
	if p.TotalPages <= 0 {
		p.TotalPages = TotalPages(p.Total, p.Limit)
	}
	return p
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

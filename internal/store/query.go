package store

import (
	"maps"
	"net/url"
	"strconv"
)

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

type Query struct {
	Search  string            `yaml:"search,omitempty"`
	SortBy  string            `yaml:"sort_by,omitempty"`
	Order   SortOrder         `yaml:"order,omitempty"`
	Status  string            `yaml:"status,omitempty"`
	Filters map[string]string `yaml:"filters,omitempty"`
	Page    int               `yaml:"page,omitempty"`
	Limit   int               `yaml:"limit,omitempty"`
}

func (q Query) WithPage(page int) Query {
	newQ := q
	newQ.Page = page
	return newQ
}

func (q Query) WithFilter(key, value string) Query {
	newQ := q
	newQ.Filters = maps.Clone(q.Filters)
	if newQ.Filters == nil {
		newQ.Filters = make(map[string]string)
	}
	if value == "" {
		delete(newQ.Filters, key)
	} else {
		newQ.Filters[key] = value
	}
	return newQ
}

// SameFilters reports whether q and other select the same result set,
// ignoring which page of it is requested.
func (q Query) SameFilters(other Query) bool {
	if q.Search != other.Search || q.SortBy != other.SortBy ||
		q.Order != other.Order || q.Status != other.Status {
		return false
	}
	return maps.Equal(nonEmpty(q.Filters), nonEmpty(other.Filters))
}

func nonEmpty(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func (q Query) Params() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sort", q.SortBy)
	}
	if q.Order != "" {
		v.Set("order", string(q.Order))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Key is a stable encoding of the query, equal for equal queries.
func (q Query) Key() string {
	return q.Params().Encode()
}

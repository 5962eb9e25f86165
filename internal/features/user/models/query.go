package models

import (
	"net/url"
	"strconv"
)

// Sort is a "field,direction" specifier understood by the user API.
type Sort string

const (
	SortDefault       Sort = ""
	SortFirstNameAsc  Sort = "firstName,asc"
	SortFirstNameDesc Sort = "firstName,desc"
	SortLastNameAsc   Sort = "lastName,asc"
	SortLastNameDesc  Sort = "lastName,desc"
)

// Sorts is the enumerated set of sort options, in toolbar order.
var Sorts = []Sort{SortDefault, SortFirstNameAsc, SortFirstNameDesc, SortLastNameAsc, SortLastNameDesc}

// Valid reports whether s belongs to Sorts.
func (s Sort) Valid() bool {
	for _, v := range Sorts {
		if v == s {
			return true
		}
	}
	return false
}

// Label is the toolbar caption for s.
func (s Sort) Label() string {
	switch s {
	case SortFirstNameAsc:
		return "firstName ↑"
	case SortFirstNameDesc:
		return "firstName ↓"
	case SortLastNameAsc:
		return "lastName ↑"
	case SortLastNameDesc:
		return "lastName ↓"
	default:
		return "Sort: default (createdAt desc, id desc)"
	}
}

// ListQuery drives GET /api/users.
type ListQuery struct {
	Search     string `json:"q"`
	ActiveOnly bool   `json:"activeOnly"`
	Sort       Sort   `json:"sort"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
}

// DefaultListQuery is the query a fresh console starts with.
func DefaultListQuery() ListQuery {
	return ListQuery{ActiveOnly: true, Size: DefaultPageSize}
}

// Values encodes the query string; q and sort are sent only when set.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	v.Set("activeOnly", strconv.FormatBool(q.ActiveOnly))
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Sort != SortDefault {
		v.Set("sort", string(q.Sort))
	}
	return v
}

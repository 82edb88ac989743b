package models

import (
	"math"
	"time"
)

// Paging defaults and bounds for history queries.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100

	// MaxPage keeps (MaxPage-1)*MaxPerPage within int.
	MaxPage = math.MaxInt/MaxPerPage + 1
)

// Record is one validation attempt. Records are append-only: once stored they
// are never updated or deleted.
type Record struct {
	RFC       string    `json:"rfc"`
	IsValid   bool      `json:"is_valid"`
	CreatedAt time.Time `json:"created_at"`
}

// PageRequest selects a window of history, newest first.
type PageRequest struct {
	Page    int
	PerPage int
}

// Normalize clamps the request into a usable window: page is kept within
// [1, MaxPage], per-page within [1, MaxPerPage].
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset is the number of records to skip. It saturates at math.MaxInt
// instead of wrapping, so an unnormalized request still lands past the end.
func (p PageRequest) Offset() int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// Page is one window of history plus the total number of stored records.
type Page struct {
	Total   int
	Page    int
	PerPage int
	Items   []Record
}

// EmptyPage is the degraded answer used when the store cannot be read.
func EmptyPage(req PageRequest) *Page {
	return &Page{
		Total:   0,
		Page:    req.Page,
		PerPage: req.PerPage,
		Items:   []Record{},
	}
}

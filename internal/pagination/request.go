package pagination

import (
	"context"

	"hufschlaeger.net/monday-items-exporter/internal/domain/monday"
)

// PageRequest is either a FirstPage or a NextPage.
type PageRequest interface {
	PageLimit() int
	pageRequest()
}

// FirstPage requests the first page of a group's items.
type FirstPage struct {
	BoardID string
	GroupID string
	Limit   int
}

// NextPage requests the page behind Cursor. The cursor is passed back verbatim.
type NextPage struct {
	Cursor string
	Limit  int
}

func (r FirstPage) PageLimit() int { return r.Limit }
func (r NextPage) PageLimit() int  { return r.Limit }

func (FirstPage) pageRequest() {}
func (NextPage) pageRequest()  {}

// PageFetcher performs exactly one remote query per call.
type PageFetcher interface {
	FetchPage(ctx context.Context, req PageRequest) (monday.Page, error)
}

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc func(ctx context.Context, req PageRequest) (monday.Page, error)

func (f PageFetcherFunc) FetchPage(ctx context.Context, req PageRequest) (monday.Page, error) {
	return f(ctx, req)
}

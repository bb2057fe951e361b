// Package pagination drives cursor based item queries until the service
// stops handing out cursors.
//
// A traversal starts with a FirstPage request for one board and one group.
// Every response that carries a cursor is followed by a NextPage request
// with that cursor and the same limit. The first response without a cursor
// ends the traversal. Fetches are strictly sequential because each request
// depends on the cursor of the previous response.
//
// Any error ends the traversal immediately. No partial result is returned.
package pagination

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"hufschlaeger.net/monday-items-exporter/internal/domain/monday"
	"hufschlaeger.net/monday-items-exporter/internal/metrics"
)

var (
	// ErrInvalidPageSize is returned for page sizes below 1.
	ErrInvalidPageSize = errors.New("page size must be at least 1")

	// ErrPageLimitExceeded is returned when the configured page ceiling is
	// reached while the service still returns a cursor.
	ErrPageLimitExceeded = errors.New("page limit exceeded")
)

// PageLimitError wraps ErrPageLimitExceeded with the traversal state.
type PageLimitError struct {
	MaxPages   int
	LastCursor string
}

func (e *PageLimitError) Error() string {
	return fmt.Sprintf("%v: fetched %d pages and the service still returned cursor %q", ErrPageLimitExceeded, e.MaxPages, e.LastCursor)
}

func (e *PageLimitError) Unwrap() error { return ErrPageLimitExceeded }

func (e *PageLimitError) LimitExceeded() bool { return true }

type Driver struct {
	fetcher  PageFetcher
	maxPages int
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Driver)

// WithMaxPages sets a ceiling on fetches per traversal. 0 means unlimited.
func WithMaxPages(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxPages = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Driver) {
		d.metrics = m
	}
}

func NewDriver(fetcher PageFetcher, opts ...Option) *Driver {
	d := &Driver{
		fetcher: fetcher,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Collect fetches all items of one group in service order.
func (d *Driver) Collect(ctx context.Context, boardID, groupID string, pageSize int) ([]monday.Item, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidPageSize, pageSize)
	}

	logger := d.logger.With().Str("board_id", boardID).Str("group_id", groupID).Logger()

	var (
		items []monday.Item
		pages int
		req   PageRequest = FirstPage{BoardID: boardID, GroupID: groupID, Limit: pageSize}
	)

	for req != nil {
		page, err := d.fetcher.FetchPage(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pages+1, err)
		}
		pages++
		items = append(items, page.Items...)
		d.metrics.PageFetched(len(page.Items))

		logger.Debug().
			Int("page", pages).
			Int("items", len(page.Items)).
			Bool("has_cursor", page.HasNext()).
			Msg("page fetched")

		if !page.HasNext() {
			req = nil
			continue
		}
		if d.maxPages > 0 && pages >= d.maxPages {
			return nil, &PageLimitError{MaxPages: d.maxPages, LastCursor: page.Cursor}
		}
		req = NextPage{Cursor: page.Cursor, Limit: pageSize}
	}

	logger.Info().Int("pages", pages).Int("items", len(items)).Msg("group collected")
	return items, nil
}

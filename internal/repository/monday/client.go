package monday

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hasura/go-graphql-client"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"hufschlaeger.net/monday-items-exporter/internal/config"
	domain "hufschlaeger.net/monday-items-exporter/internal/domain/monday"
	"hufschlaeger.net/monday-items-exporter/internal/metrics"
	"hufschlaeger.net/monday-items-exporter/internal/pagination"
)

// Query names used as metric labels.
const (
	queryMe        = "me"
	queryGroups    = "groups"
	queryFirstPage = "first_page"
	queryNextPage  = "next_page"
)

type Repository struct {
	client  *graphql.Client
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

var _ pagination.PageFetcher = (*Repository)(nil)

func NewRepository(cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) *Repository {
	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &authTransport{
			token:      cfg.APIToken,
			apiVersion: cfg.APIVersion,
			base:       http.DefaultTransport,
		},
	}

	return &Repository{
		client:  graphql.NewClient(cfg.APIURL, httpClient),
		logger:  logger,
		metrics: m,
	}
}

// ValidateConnection prüft Token und Erreichbarkeit über die me-Query.
func (r *Repository) ValidateConnection(ctx context.Context) error {
	var q meQuery
	if err := r.query(ctx, queryMe, &q, nil); err != nil {
		return err
	}
	if q.Me == nil {
		return shapeError(queryMe, "me missing in response")
	}

	r.logger.Debug().Str("user_id", q.Me.ID).Str("user", q.Me.Name).Msg("connection validated")
	return nil
}

// GetGroups lädt alle Gruppen eines Boards in Board-Reihenfolge.
func (r *Repository) GetGroups(ctx context.Context, boardID string) ([]domain.Group, error) {
	var q groupsQuery
	variables := map[string]interface{}{
		"boardId": []graphql.ID{graphql.ID(boardID)},
	}

	if err := r.query(ctx, queryGroups, &q, variables); err != nil {
		return nil, err
	}

	if len(q.Boards) == 0 {
		return nil, shapeError(queryGroups, fmt.Sprintf("no board with id %s", boardID))
	}
	r.warnExtra("boards", len(q.Boards))

	groups := q.Boards[0].Groups
	if len(groups) == 0 {
		return nil, fmt.Errorf("%s query: board %s: %w", queryGroups, boardID, domain.ErrNoGroups)
	}

	return lo.Map(groups, func(g groupNode, _ int) domain.Group {
		return domain.Group{ID: g.ID, Title: g.Title}
	}), nil
}

// FetchPage führt genau eine paginierte Items-Query aus.
func (r *Repository) FetchPage(ctx context.Context, req pagination.PageRequest) (domain.Page, error) {
	switch req := req.(type) {
	case pagination.FirstPage:
		return r.fetchFirstPage(ctx, req)
	case pagination.NextPage:
		return r.fetchNextPage(ctx, req)
	default:
		return domain.Page{}, fmt.Errorf("unsupported page request %T", req)
	}
}

func (r *Repository) fetchFirstPage(ctx context.Context, req pagination.FirstPage) (domain.Page, error) {
	var q firstPageQuery
	variables := map[string]interface{}{
		"boardId": []graphql.ID{graphql.ID(req.BoardID)},
		"groupId": []graphql.String{graphql.String(req.GroupID)},
		"limit":   graphql.Int(req.Limit),
	}

	if err := r.query(ctx, queryFirstPage, &q, variables); err != nil {
		return domain.Page{}, err
	}

	if len(q.Boards) == 0 {
		return domain.Page{}, shapeError(queryFirstPage, fmt.Sprintf("no board with id %s", req.BoardID))
	}
	r.warnExtra("boards", len(q.Boards))

	groups := q.Boards[0].Groups
	if len(groups) == 0 {
		return domain.Page{}, shapeError(queryFirstPage, fmt.Sprintf("no group with id %q in board %s", req.GroupID, req.BoardID))
	}
	r.warnExtra("groups", len(groups))

	if groups[0].ItemsPage == nil {
		return domain.Page{}, shapeError(queryFirstPage, fmt.Sprintf("items_page missing for group %q", req.GroupID))
	}

	return groups[0].ItemsPage.toPage(), nil
}

func (r *Repository) fetchNextPage(ctx context.Context, req pagination.NextPage) (domain.Page, error) {
	var q nextPageQuery
	variables := map[string]interface{}{
		"cursor": graphql.String(req.Cursor),
		"limit":  graphql.Int(req.Limit),
	}

	if err := r.query(ctx, queryNextPage, &q, variables); err != nil {
		return domain.Page{}, err
	}

	if q.NextItemsPage == nil {
		return domain.Page{}, shapeError(queryNextPage, "next_items_page missing")
	}

	return q.NextItemsPage.toPage(), nil
}

// Private helper methods

func (r *Repository) query(ctx context.Context, name string, q interface{}, variables map[string]interface{}) error {
	ctx, rec := withStatusRecord(ctx)

	start := time.Now()
	err := classifyError(r.client.Query(ctx, q, variables), rec)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = string(domain.Classify(err))
	}
	r.metrics.ObserveRequest(name, outcome, time.Since(start))

	if err != nil {
		return fmt.Errorf("%s query: %w", name, err)
	}
	return nil
}

// shapeError trägt wie query() den Query-Namen im Fehlertext.
func shapeError(name, detail string) error {
	return fmt.Errorf("%s query: %w", name, &domain.ShapeError{Context: detail})
}

func (r *Repository) warnExtra(kind string, n int) {
	if n > 1 {
		r.logger.Warn().Str("kind", kind).Int("count", n).Msg("response has more than one entry, using the first")
	}
}

// classifyError ordnet Fehler des GraphQL-Clients der Fehler-Taxonomie zu.
func classifyError(err error, rec *statusRecord) error {
	if err == nil {
		return nil
	}

	if rec != nil && rec.StatusCode != 0 {
		return &domain.TransportError{StatusCode: rec.StatusCode, Body: rec.Body, Err: err}
	}
	if rec != nil && rec.Err != nil {
		return &domain.TransportError{Err: rec.Err}
	}

	var gqlErrs graphql.Errors
	if errors.As(err, &gqlErrs) && len(gqlErrs) > 0 {
		var (
			messages  []string
			decodeErr error
		)
		for _, e := range gqlErrs {
			code, _ := e.Extensions["code"].(string)
			switch code {
			case graphql.ErrRequestError:
				return &domain.TransportError{Err: err}
			case graphql.ErrJsonDecode, graphql.ErrGraphQLDecode:
				decodeErr = errors.New(e.Message)
			default:
				messages = append(messages, e.Message)
			}
		}

		// Service-Fehler haben Vorrang, der Decoder scheitert dann oft nur an data: null
		if len(messages) > 0 {
			return &domain.ServiceError{Messages: messages}
		}
		return &domain.ShapeError{Context: "undecodable response", Err: decodeErr}
	}

	return &domain.TransportError{Err: err}
}

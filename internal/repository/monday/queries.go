package monday

import (
	"github.com/samber/lo"

	domain "hufschlaeger.net/monday-items-exporter/internal/domain/monday"
)

// Die Queries arbeiten immer auf genau einem Board und einer Gruppe.

type meQuery struct {
	Me *struct {
		ID   string `graphql:"id"`
		Name string `graphql:"name"`
	} `graphql:"me"`
}

type groupNode struct {
	ID    string `graphql:"id"`
	Title string `graphql:"title"`
}

type groupsQuery struct {
	Boards []struct {
		Groups []groupNode `graphql:"groups"`
	} `graphql:"boards(ids: $boardId)"`
}

type columnValueNode struct {
	ID   string  `graphql:"id"`
	Text *string `graphql:"text"`
}

type itemNode struct {
	ID           string            `graphql:"id"`
	Name         string            `graphql:"name"`
	ColumnValues []columnValueNode `graphql:"column_values"`
}

type itemsPageNode struct {
	Cursor *string    `graphql:"cursor"`
	Items  []itemNode `graphql:"items"`
}

type firstPageQuery struct {
	Boards []struct {
		Groups []struct {
			ID        string         `graphql:"id"`
			ItemsPage *itemsPageNode `graphql:"items_page(limit: $limit)"`
		} `graphql:"groups(ids: $groupId)"`
	} `graphql:"boards(ids: $boardId)"`
}

type nextPageQuery struct {
	NextItemsPage *itemsPageNode `graphql:"next_items_page(limit: $limit, cursor: $cursor)"`
}

func (p *itemsPageNode) toPage() domain.Page {
	return domain.Page{
		Items:  toItems(p.Items),
		Cursor: lo.FromPtr(p.Cursor),
	}
}

func toItems(nodes []itemNode) []domain.Item {
	return lo.Map(nodes, func(n itemNode, _ int) domain.Item {
		return domain.Item{
			ID:   n.ID,
			Name: n.Name,
			ColumnValues: lo.Map(n.ColumnValues, func(cv columnValueNode, _ int) domain.ColumnValue {
				return domain.ColumnValue{ID: cv.ID, Text: lo.FromPtr(cv.Text)}
			}),
		}
	})
}

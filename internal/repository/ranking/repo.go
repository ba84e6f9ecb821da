package ranking

import (
	"context"
	"fmt"

	"github.com/rehui/toprank/internal/db"
	domrank "github.com/rehui/toprank/internal/domain/ranking"
)

// store is the consumer interface for ranking reads (ISP).
type store interface {
	Run(ctx context.Context, q *db.Query) ([]db.Row, error)
}

// Repo implements usecase/ranking.Repository.
type Repo struct {
	store store
}

// New creates a ranking repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// buildTopQuery renders the lookup. Only the fixed city/make columns can be
// filtered on, always with equality; ties keep the store's order. Unscored
// rows sort after every scored one.
func buildTopQuery(q domrank.Query) (*db.Query, error) {
	b := db.Select(rowColumns...).From(Table)
	if city, ok := q.City(); ok {
		b.WhereEq(ColumnCity, city)
	}
	if mk, ok := q.Make(); ok {
		b.WhereEq(ColumnMake, mk)
	}
	return b.OrderByNullsLast(ColumnScore, db.Desc).Limit(q.Limit()).Build()
}

// TopByScore returns up to q.Limit() rows matching q, highest score first.
func (r *Repo) TopByScore(ctx context.Context, q domrank.Query) ([]domrank.Row, error) {
	dq, err := buildTopQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build top query: %w", err)
	}

	rows, err := r.store.Run(ctx, dq)
	if err != nil {
		return nil, fmt.Errorf("run top query: %w", err)
	}

	out := make([]domrank.Row, 0, len(rows))
	for i, row := range rows {
		dr, err := rowFromDB(row)
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", i, err)
		}
		out = append(out, dr)
	}
	return out, nil
}

package ranking

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/rehui/toprank/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	runFn   func(ctx context.Context, q *db.Query) ([]db.Row, error)
	queries []*db.Query
}

func (m *mockStore) Run(ctx context.Context, q *db.Query) ([]db.Row, error) {
	m.queries = append(m.queries, q)
	if m.runFn != nil {
		return m.runFn(ctx, q)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

var (
	eqPredicateRe = regexp.MustCompile(`(\w+) = \$(\d+)`)
	limitRe       = regexp.MustCompile(`LIMIT \$(\d+)`)
)

// memTable evaluates builder-generated queries over in-memory rows:
// equality predicates, ORDER BY rehui_score DESC (stable), LIMIT.
// NULL scores sort first unless the query says NULLS LAST, as in Postgres.
func memTable(rows []db.Row) func(ctx context.Context, q *db.Query) ([]db.Row, error) {
	return func(_ context.Context, q *db.Query) ([]db.Row, error) {
		var out []db.Row
	rowLoop:
		for _, r := range rows {
			for _, m := range eqPredicateRe.FindAllStringSubmatch(q.SQL, -1) {
				idx, _ := strconv.Atoi(m[2])
				if r[m[1]] != q.Args[idx-1] {
					continue rowLoop
				}
			}
			out = append(out, r)
		}

		nullsLast := strings.Contains(q.SQL, ColumnScore+" DESC NULLS LAST")
		sort.SliceStable(out, func(i, j int) bool {
			si, iok := out[i][ColumnScore].(float64)
			sj, jok := out[j][ColumnScore].(float64)
			switch {
			case !iok && !jok:
				return false
			case !iok:
				return !nullsLast
			case !jok:
				return nullsLast
			}
			return si > sj
		})

		if m := limitRe.FindStringSubmatch(q.SQL); m != nil {
			idx, _ := strconv.Atoi(m[1])
			if n := q.Args[idx-1].(int); len(out) > n {
				out = out[:n]
			}
		}
		return out, nil
	}
}

func listing(id, city, mk string, score float64) db.Row {
	return db.Row{
		ColumnListingID: id,
		ColumnTitle:     "2019 " + mk,
		ColumnMake:      mk,
		ColumnModel:     "Model",
		ColumnTrim:      "Base",
		ColumnYear:      int32(2019),
		ColumnCity:      city,
		ColumnScore:     score,
	}
}

func fixtureRows() []db.Row {
	return []db.Row{
		listing("1", "Toronto", "Honda", 71.5),
		listing("2", "Toronto", "Toyota", 88.0),
		listing("3", "Vancouver", "Honda", 93.2),
		listing("4", "Montreal", "Ford", 40.0),
		listing("5", "Toronto", "Honda", 88.0),
		listing("6", "Vancouver", "Toyota", 12.5),
		listing("7", "Toronto", "Honda", 99.9),
	}
}

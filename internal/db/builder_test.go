package db

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSelectBuilder_Simple(t *testing.T) {
	q := Select("id", "score").
		From("ranks").
		MustBuild()

	if q.SQL != "SELECT id, score FROM ranks" {
		t.Errorf("SQL = %q", q.SQL)
	}
	if len(q.Args) != 0 {
		t.Errorf("Args = %v, want none", q.Args)
	}
}

func TestSelectBuilder_FiltersOrderLimit(t *testing.T) {
	q := Select("id", "city", "score").
		From("ranks").
		WhereEq("city", "Toronto").
		WhereEq("make", "Honda").
		OrderBy("score", Desc).
		Limit(10).
		MustBuild()

	want := "SELECT id, city, score FROM ranks WHERE city = $1 AND make = $2 ORDER BY score DESC LIMIT $3"
	if q.SQL != want {
		t.Errorf("SQL:\ngot:  %q\nwant: %q", q.SQL, want)
	}
	if !reflect.DeepEqual(q.Args, []any{"Toronto", "Honda", 10}) {
		t.Errorf("Args = %v", q.Args)
	}
}

func TestSelectBuilder_LimitIsBound(t *testing.T) {
	q := Select("id").From("ranks").Limit(7).MustBuild()

	if !strings.HasSuffix(q.SQL, "LIMIT $1") {
		t.Errorf("SQL = %q, expected bound LIMIT", q.SQL)
	}
	if strings.Contains(q.SQL, "7") {
		t.Errorf("limit value leaked into SQL text: %q", q.SQL)
	}
	if len(q.Args) != 1 || q.Args[0] != 7 {
		t.Errorf("Args = %v", q.Args)
	}
}

func TestSelectBuilder_ValuesNeverInSQL(t *testing.T) {
	hostile := "x'; DROP TABLE ranks; --"
	q := Select("id").From("ranks").WhereEq("city", hostile).MustBuild()

	if strings.Contains(q.SQL, "DROP") {
		t.Errorf("filter value leaked into SQL text: %q", q.SQL)
	}
	if q.Args[0] != hostile {
		t.Errorf("Args[0] = %v", q.Args[0])
	}
}

func TestSelectBuilder_MultipleOrderTerms(t *testing.T) {
	q := Select("id").From("ranks").OrderBy("score", Desc).OrderBy("id", Asc).MustBuild()

	if !strings.HasSuffix(q.SQL, "ORDER BY score DESC, id ASC") {
		t.Errorf("SQL = %q", q.SQL)
	}
}

func TestSelectBuilder_NullsLast(t *testing.T) {
	q := Select("id").From("ranks").OrderByNullsLast("score", Desc).OrderBy("id", Asc).Limit(3).MustBuild()

	want := "SELECT id FROM ranks ORDER BY score DESC NULLS LAST, id ASC LIMIT $1"
	if q.SQL != want {
		t.Errorf("SQL:\ngot:  %q\nwant: %q", q.SQL, want)
	}
}

func TestSelectBuilder_SchemaQualifiedTable(t *testing.T) {
	q := Select("id").From("public.ranks").MustBuild()

	if q.SQL != "SELECT id FROM public.ranks" {
		t.Errorf("SQL = %q", q.SQL)
	}
}

func TestSelectBuilder_Invalid(t *testing.T) {
	tests := []struct {
		name string
		b    *SelectBuilder
	}{
		{"no table", Select("id")},
		{"no columns", Select().From("ranks")},
		{"bad table", Select("id").From("ranks; DROP")},
		{"bad column", Select("id, 1").From("ranks")},
		{"bad filter column", Select("id").From("ranks").WhereEq("1=1 OR city", "x")},
		{"bad order column", Select("id").From("ranks").OrderBy("score desc", Desc)},
		{"bad direction", Select("id").From("ranks").OrderBy("score", Direction("SIDEWAYS"))},
		{"negative limit", Select("id").From("ranks").Limit(-1)},
		{"upper case ident", Select("ID").From("ranks")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestSelectBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Select("id").MustBuild()
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &Error{Op: OpQuery, Err: inner}

	if err.Error() != "QUERY: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to unwrap")
	}
}

package ranking

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rehui/toprank/internal/db"
	domrank "github.com/rehui/toprank/internal/domain/ranking"
)

// Ranking table layout, filled by the external batch job.
const (
	Table = "dws_rehui_rank_cargurus"

	ColumnListingID = "listing_id"
	ColumnTitle     = "title"
	ColumnMake      = "make"
	ColumnModel     = "model"
	ColumnTrim      = "trim"
	ColumnYear      = "year"
	ColumnCity      = "city"
	ColumnScore     = "rehui_score"
)

// rowColumns is the projection in response order.
var rowColumns = []string{
	ColumnListingID, ColumnTitle, ColumnMake, ColumnModel,
	ColumnTrim, ColumnYear, ColumnCity, ColumnScore,
}

// rowFromDB maps a store row onto the domain row. NULL text columns become "",
// NULL year and score become 0. NaN and infinite scores are rejected.
func rowFromDB(r db.Row) (domrank.Row, error) {
	year, err := toInt(r[ColumnYear])
	if err != nil {
		return domrank.Row{}, fmt.Errorf("column %s: %w", ColumnYear, err)
	}
	score, err := toFloat(r[ColumnScore])
	if err != nil {
		return domrank.Row{}, fmt.Errorf("column %s: %w", ColumnScore, err)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return domrank.Row{}, fmt.Errorf("column %s: %v is not a finite score", ColumnScore, score)
	}

	return domrank.Row{
		ListingID: toString(r[ColumnListingID]),
		Title:     toString(r[ColumnTitle]),
		Make:      toString(r[ColumnMake]),
		Model:     toString(r[ColumnModel]),
		Trim:      toString(r[ColumnTrim]),
		Year:      year,
		City:      toString(r[ColumnCity]),
		Score:     score,
	}, nil
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int:
		return t, nil
	case int16:
		return int(t), nil
	case int32:
		return int(t), nil
	case int64:
		return int(t), nil
	case float32:
		return int(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", t, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %q: %w", t, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

package toprank

import domrank "github.com/rehui/toprank/internal/domain/ranking"

// Limits applied to TopQuery.Limit.
const (
	MinLimit     = domrank.MinLimit
	MaxLimit     = domrank.MaxLimit
	DefaultLimit = domrank.DefaultLimit
)

// TopQuery selects the listings to return. Zero Limit means DefaultLimit;
// other values are clamped to [MinLimit, MaxLimit]. Empty City or Make
// matches any value.
type TopQuery struct {
	Limit int
	City  string
	Make  string
}

// Listing is one ranked row.
type Listing struct {
	ListingID  string
	Title      string
	Make       string
	Model      string
	Trim       string
	Year       int
	City       string
	RehuiScore float64
}

func listingsFromDomain(rows []domrank.Row) []Listing {
	out := make([]Listing, len(rows))
	for i, r := range rows {
		out[i] = Listing{
			ListingID:  r.ListingID,
			Title:      r.Title,
			Make:       r.Make,
			Model:      r.Model,
			Trim:       r.Trim,
			Year:       r.Year,
			City:       r.City,
			RehuiScore: r.Score,
		}
	}
	return out
}

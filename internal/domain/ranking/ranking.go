// Package ranking models the precomputed listing ranking and the lookups run against it.
package ranking

// Limit bounds for a top-N lookup.
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 5
	// HomeLimit is the size of the unfiltered list served at the API root.
	HomeLimit = 10
)

// Row is one ranked listing. Rows are produced by the batch job that fills the
// ranking table and are never modified here.
type Row struct {
	ListingID string
	Title     string
	Make      string
	Model     string
	Trim      string
	Year      int
	City      string
	Score     float64
}

// ClampLimit bounds limit to [MinLimit, upper]. An upper below MinLimit falls back to MaxLimit.
func ClampLimit(limit, upper int) int {
	if upper < MinLimit {
		upper = MaxLimit
	}
	return min(max(MinLimit, limit), upper)
}

// Query describes one top-N lookup. An empty city or make means "any".
type Query struct {
	limit int
	city  string
	brand string
}

// NewQuery builds a Query with limit clamped to [MinLimit, MaxLimit].
// Out-of-range limits are never an error.
func NewQuery(limit int, city, vehicleMake string) Query {
	return Query{
		limit: ClampLimit(limit, MaxLimit),
		city:  city,
		brand: vehicleMake,
	}
}

// Limit returns the clamped row cap.
func (q Query) Limit() int { return q.limit }

// City returns the city filter and whether it is set.
func (q Query) City() (string, bool) { return q.city, q.city != "" }

// Make returns the make filter and whether it is set.
func (q Query) Make() (string, bool) { return q.brand, q.brand != "" }

package chi

import (
	"bytes"
	"encoding/json"
	"net/http"

	domrank "github.com/rehui/toprank/internal/domain/ranking"
)

// Envelope codes. Zero is success; failures reuse the matching HTTP status number.
const (
	CodeSuccess    = 0
	CodeBadRequest = 400
	CodeInternal   = 500
)

const (
	msgSuccess     = "success"
	msgQueryFailed = "query failed, please try again later"
	msgInternal    = "internal error"
)

// Envelope is the {code, message, data} wrapper every API response uses.
// Data is null on failure.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// RankRow is the wire form of one ranked listing.
type RankRow struct {
	ListingID  string  `json:"listing_id"`
	Title      string  `json:"title"`
	Make       string  `json:"make"`
	Model      string  `json:"model"`
	Trim       string  `json:"trim"`
	Year       int     `json:"year"`
	City       string  `json:"city"`
	RehuiScore float64 `json:"rehui_score"`
}

// rowsToJSON keeps order and never returns nil, so an empty result is "data": [].
func rowsToJSON(rows []domrank.Row) []RankRow {
	out := make([]RankRow, len(rows))
	for i, r := range rows {
		out[i] = RankRow{
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

// failureBody is the internal error envelope, written when v cannot be encoded.
var failureBody = mustEncode(Envelope{Code: CodeInternal, Message: msgInternal})

func mustEncode(v any) []byte {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// writeJSON encodes v before committing the status. An unencodable value
// (a NaN score, for one) is answered with the 500 envelope.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.Write(failureBody)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Code: CodeSuccess, Message: msgSuccess, Data: data})
}

func writeFailure(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, Envelope{Code: code, Message: message})
}

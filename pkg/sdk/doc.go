// Package toprank provides an embedded Go client for the listing ranking table
// served by the toprank API.
//
// The client talks to Postgres directly and applies the same rules as the HTTP
// API: limits are clamped to [1, 50], empty filters mean "any", and results are
// ordered by rehui_score, highest first.
//
//	client, _ := toprank.New(ctx,
//	    toprank.WithPostgres("localhost", 5432, "rehui", "postgres", ""),
//	)
//	defer client.Close()
//
//	listings, _ := client.Top(ctx, toprank.TopQuery{Limit: 5, City: "Toronto", Make: "Honda"})
package toprank

package ranking

import (
	"context"

	domrank "github.com/rehui/toprank/internal/domain/ranking"
)

// Repository reads the precomputed ranking table.
type Repository interface {
	TopByScore(ctx context.Context, q domrank.Query) ([]domrank.Row, error)
}

package matches

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xaitan80/cricfanzz/internal/scorecard"
)

// DefaultLimit is how many matches ListRecent returns when no limit is given.
const DefaultLimit = 5

// Gateway stores scorecards and answers lookups. InsertBatch is all-or-nothing:
// when it fails, no record of the batch is visible afterwards.
type Gateway interface {
	InsertBatch(ctx context.Context, records []scorecard.Record) (int, error)
	ListRecent(ctx context.Context, limit int) ([]scorecard.Record, error)
	FindByID(ctx context.Context, id string) (scorecard.Record, error)
	Ping(ctx context.Context) error
}

// stamp gives every record of a batch a time-ordered id and the same creation
// time, so later elements of the batch list first.
func stamp(records []scorecard.Record, now time.Time) ([]scorecard.Record, error) {
	now = now.UTC().Truncate(time.Millisecond)
	out := make([]scorecard.Record, len(records))
	for i, r := range records {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}
		r.ID = id.String()
		r.CreatedAt = now
		r.Normalize()
		out[i] = r
	}
	return out, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

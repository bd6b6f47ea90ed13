// Package quotas stores fixed-window quota counters. Every backend applies a
// consumption as one atomic step so concurrent callers can never overspend.
package quotas

import "context"

// Record is the stored counter for one subject. WindowStart is Unix seconds.
type Record struct {
	Subject     string
	WindowStart int64
	Count       int64
	Limit       int64
}

type Repository interface {
	// Consume applies one consumption at time now (Unix seconds): roll the
	// window over if windowSecs have elapsed since WindowStart, then increment
	// Count if it is below limit. It returns the record after the step and
	// whether the unit was granted.
	Consume(ctx context.Context, subject string, limit, windowSecs, now int64) (Record, bool, error)

	// Get returns the record for subject, or common.ErrorNotFound.
	Get(ctx context.Context, subject string) (*Record, error)
}

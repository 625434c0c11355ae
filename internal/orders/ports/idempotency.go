package ports

import "context"

// StoredResponse is the replayable outcome of a processed payment
// notification.
type StoredResponse struct {
	StatusCode int
	Body       []byte
	OrderID    int64
}

// NotificationStore deduplicates payment provider notifications so a
// re-delivered webhook replays the original response instead of
// re-running the use case.
type NotificationStore interface {
	Get(ctx context.Context, key string) (*StoredResponse, error)
	Save(ctx context.Context, key string, response StoredResponse) error
}

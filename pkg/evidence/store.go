package evidence

import (
	"context"
	"io"
)

// Store persists violation evidence files (photos, documents) and hands
// back the public URL recorded on the evidence row. Implementations map
// I/O failures to storage errors so callers can surface them uniformly.
type Store interface {
	// Save writes the file content under a violation-scoped key and
	// returns the URL clients use to fetch it.
	Save(ctx context.Context, violationID string, filename string, content io.Reader) (string, error)

	// Delete removes a previously saved file by its URL. Deleting a URL
	// that no longer exists is not an error.
	Delete(ctx context.Context, url string) error
}

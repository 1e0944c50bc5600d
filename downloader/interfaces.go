package downloader

import (
	"context"
	"io"
)

// Fetcher performs the HTTP request for one target
type Fetcher interface {
	// Fetch executes a blocking GET. A returned error means no response was
	// received; any HTTP status, including errors, comes back as a Response
	// whose Body the caller must close.
	Fetch(ctx context.Context, target FetchTarget) (*Response, error)
}

// Writer persists response bytes to the filesystem
type Writer interface {
	// Write creates or truncates path and copies r into it verbatim,
	// returning the number of bytes written
	Write(path string, r io.Reader) (int64, error)
}

// ProgressReporter consumes one tick per saved file
type ProgressReporter interface {
	// Tick advances progress by one unit
	Tick() error

	// Finish stops progress reporting and releases the display
	Finish() error
}

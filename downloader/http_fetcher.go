package downloader

import (
	"context"
	"net/http"
	"time"

	"climate-bulk-download/config"
)

const userAgent = config.ProgramName

// HTTPFetcher implements Fetcher over net/http
type HTTPFetcher struct {
	client *http.Client

	// receiveTimeout is accepted from configuration but not applied; the
	// connect timeout bounds the whole request including the body read.
	receiveTimeout time.Duration
}

// NewHTTPFetcher creates a fetcher whose client timeout is the configured connect timeout
func NewHTTPFetcher(cfg *config.RunConfig) *HTTPFetcher {
	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DisableKeepAlives: true,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   cfg.ConnectTimeout,
			Transport: transport,
		},
		receiveTimeout: cfg.ReceiveTimeout,
	}
}

// NewHTTPFetcherWithClient creates a fetcher around an existing client
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// Timeouts returns the applied client timeout and the configured, unapplied receive timeout
func (hf *HTTPFetcher) Timeouts() (applied, receive time.Duration) {
	return hf.client.Timeout, hf.receiveTimeout
}

// Fetch implements the Fetcher interface
func (hf *HTTPFetcher) Fetch(ctx context.Context, target FetchTarget) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, NewDownloadErrorWithCause(ErrorInvalidRequest, "failed to build request", err).
			WithContext("url", target.URL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := hf.client.Do(req)
	if err != nil {
		return nil, NewDownloadErrorWithCause(ErrorTransientTransport, "I/O or transport error occurred", err).
			WithContext("url", target.URL)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         resp.Request.URL.String(),
		Body:        resp.Body,
	}, nil
}

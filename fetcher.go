package linkpreview

import "context"

// Fetcher retrieves raw page bytes from URLs.
type Fetcher interface {
	// Fetch retrieves the body of the page at url.
	// Transport failures and non-success responses are returned with code
	// EFETCH. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases resources held by the fetcher.
	Close() error
}

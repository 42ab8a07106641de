package linkpreview

import "context"

// URLSet tracks which URLs a batch has already scheduled.
type URLSet interface {
	// Add records url and returns false if it was already present.
	// URLs differing only by fragment are the same entry.
	Add(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

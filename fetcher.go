package domsift

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL and returns the HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

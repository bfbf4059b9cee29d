package batch

import (
	"context"
	"sync"

	"github.com/fwojciec/domsift"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the default per-domain request rate.
const DefaultRequestsPerSecond = 1.0

var _ domsift.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to the same host with one token bucket
// per domain. Different hosts never wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// per domain with a burst of 1. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the domain's bucket has a token or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

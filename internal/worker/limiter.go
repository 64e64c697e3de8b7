package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"triangulate/internal/evidence"
)

// Limiter rate-limits crawl requests per source domain. Buckets are
// keyed by the same normalized domain the corroboration ledger counts,
// so www and apex hosts of one source share a bucket.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a per-domain limiter with shared defaults
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the URL's domain bucket clears. URLs whose domain
// cannot be normalized share one fallback bucket.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	return l.bucket(evidence.NormalizeDomain(rawURL)).Wait(ctx)
}

// WaitWithDelay waits for rate limit clearance plus an additional
// delay, for robots.txt crawl-delay directives
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, additionalDelay time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}

	if additionalDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(additionalDelay):
		}
	}

	return nil
}

func (l *Limiter) bucket(domain string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
		l.limiters[domain] = limiter
	}
	return limiter
}

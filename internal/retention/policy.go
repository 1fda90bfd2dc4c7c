// Package retention removes ads that outlived the configured max age
package retention

import (
	"context"
	"log"
	"time"

	"adboard/internal/domain"
	"adboard/internal/repository"
)

// DefaultMaxAge is how long an ad stays listed
const DefaultMaxAge = 7 * 24 * time.Hour

// Policy purges ads older than MaxAge relative to its clock
type Policy struct {
	ads    repository.AdRepository
	clock  domain.Clock
	maxAge time.Duration
}

// NewPolicy creates a Policy. A nil clock means the system clock, a
// non-positive maxAge means DefaultMaxAge.
func NewPolicy(ads repository.AdRepository, clock domain.Clock, maxAge time.Duration) *Policy {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Policy{ads: ads, clock: clock, maxAge: maxAge}
}

// MaxAge returns the configured retention window
func (p *Policy) MaxAge() time.Duration {
	return p.maxAge
}

// Cutoff returns the oldest timestamp that is still retained at now
func (p *Policy) Cutoff(now time.Time) float64 {
	return domain.EpochSeconds(now) - p.maxAge.Seconds()
}

// Expired reports whether ad is past its retention window at now
func (p *Policy) Expired(ad *domain.Ad, now time.Time) bool {
	return ad.Timestamp < p.Cutoff(now)
}

// PurgeExpired deletes every ad with now - timestamp > maxAge
func (p *Policy) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := p.ads.DeleteOlderThan(ctx, p.Cutoff(p.clock.Now()))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("🧹 Purged %d expired ads", n)
	}
	return n, nil
}

// Package repository defines interfaces for data persistence
package repository

import (
	"context"

	"adboard/internal/domain"
)

// AdRepository defines the interface for ad data operations
type AdRepository interface {
	Create(ctx context.Context, ad *domain.Ad) error
	GetByID(ctx context.Context, id int64) (*domain.Ad, error)
	List(ctx context.Context) ([]domain.Ad, error)
	IncrementLikes(ctx context.Context, id int64) error
	// DeleteOlderThan removes ads whose timestamp is strictly before cutoff
	// (seconds since epoch) and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff float64) (int64, error)
}

// Repositories bundles all repository interfaces
type Repositories struct {
	Ads AdRepository
}

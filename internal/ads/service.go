// Package ads implements ad submission, listing and likes on top of the
// ad repository, the media store and the retention policy.
package ads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"adboard/internal/domain"
	"adboard/internal/media"
	"adboard/internal/repository"
	"adboard/internal/retention"

	"github.com/go-playground/validator/v10"
)

// NewAd is the client input for a new ad
type NewAd struct {
	Description string `json:"description"`
	SocialID    string `json:"socialId" validate:"required"`
	Category    string `json:"category"`
}

// Upload is an optional file sent with a new ad
type Upload struct {
	Filename string
	Content  io.Reader
}

// Service coordinates the ad lifecycle
type Service struct {
	ads       repository.AdRepository
	media     *media.Store
	retention *retention.Policy
	clock     domain.Clock
	validate  *validator.Validate
}

// NewService wires the collaborators. A nil clock means the system clock.
func NewService(ads repository.AdRepository, mediaStore *media.Store, policy *retention.Policy, clock domain.Clock) *Service {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &Service{
		ads:       ads,
		media:     mediaStore,
		retention: policy,
		clock:     clock,
		validate:  validator.New(),
	}
}

// Create stores the upload (if any), inserts the ad and purges expired ads.
// Media is written first so a failed upload never leaves an ad pointing at a
// missing file.
func (s *Service) Create(ctx context.Context, in NewAd, upload *Upload) (*domain.Ad, error) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, domain.NewValidationError("socialId", domain.MsgSocialIDRequired)
		}
		return nil, fmt.Errorf("failed to validate ad: %w", err)
	}

	var filePath string
	if upload != nil {
		name, err := s.media.Save(upload.Content, upload.Filename)
		if err != nil {
			return nil, err
		}
		filePath = name
	}

	ad := &domain.Ad{
		Description: in.Description,
		SocialID:    in.SocialID,
		Category:    in.Category,
		Timestamp:   domain.EpochSeconds(s.clock.Now()),
		FilePath:    filePath,
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}

	// The ad is already stored; a purge failure is only logged
	if _, err := s.retention.PurgeExpired(ctx); err != nil {
		log.Printf("⚠️ Retention purge failed: %v", err)
	}

	return ad, nil
}

// List returns every stored ad in insertion order
func (s *Service) List(ctx context.Context) ([]domain.Ad, error) {
	return s.ads.List(ctx)
}

// Get returns the ad with id or domain.ErrNotFound
func (s *Service) Get(ctx context.Context, id int64) (*domain.Ad, error) {
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, domain.ErrNotFound
	}
	return ad, nil
}

// Like adds one like to the ad. Unknown ids are ignored.
func (s *Service) Like(ctx context.Context, id int64) error {
	return s.ads.IncrementLikes(ctx, id)
}

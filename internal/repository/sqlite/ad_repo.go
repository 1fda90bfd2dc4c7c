package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"adboard/internal/domain"
	"adboard/internal/repository"
)

const adColumns = `id, COALESCE(description, ''), COALESCE(socialId, ''), COALESCE(category, ''), timestamp, COALESCE(file_path, ''), COALESCE(likes, 0)`

// AdRepo implements repository.AdRepository
type AdRepo struct {
	db *DB
}

func NewAdRepo(db *DB) repository.AdRepository {
	return &AdRepo{db: db}
}

func (r *AdRepo) Create(ctx context.Context, ad *domain.Ad) error {
	if ad.SocialID == "" {
		return domain.NewValidationError("socialId", domain.MsgSocialIDRequired)
	}

	query := `INSERT INTO ads (description, socialId, category, timestamp, file_path, likes) VALUES (?, ?, ?, ?, ?, 0)`
	result, err := r.db.ExecContext(ctx, query, ad.Description, ad.SocialID, ad.Category, ad.Timestamp, ad.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create ad: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read ad id: %w", err)
	}
	ad.ID = id
	ad.Likes = 0
	return nil
}

func (r *AdRepo) GetByID(ctx context.Context, id int64) (*domain.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads WHERE id = ?`
	ad := &domain.Ad{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ad.ID, &ad.Description, &ad.SocialID, &ad.Category, &ad.Timestamp, &ad.FilePath, &ad.Likes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	return ad, nil
}

func (r *AdRepo) List(ctx context.Context) ([]domain.Ad, error) {
	query := `SELECT ` + adColumns + ` FROM ads ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	defer rows.Close()

	ads := []domain.Ad{}
	for rows.Next() {
		var a domain.Ad
		if err := rows.Scan(&a.ID, &a.Description, &a.SocialID, &a.Category, &a.Timestamp, &a.FilePath, &a.Likes); err != nil {
			return nil, err
		}
		ads = append(ads, a)
	}
	return ads, rows.Err()
}

// IncrementLikes bumps the like counter. Unknown ids match no row and are ignored.
func (r *AdRepo) IncrementLikes(ctx context.Context, id int64) error {
	query := `UPDATE ads SET likes = COALESCE(likes, 0) + 1 WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to like ad: %w", err)
	}
	return nil
}

func (r *AdRepo) DeleteOlderThan(ctx context.Context, cutoff float64) (int64, error) {
	query := `DELETE FROM ads WHERE timestamp < ?`
	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge ads: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged ads: %w", err)
	}
	return n, nil
}

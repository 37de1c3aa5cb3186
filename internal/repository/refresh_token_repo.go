package repository

import (
	"context"
	"time"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh sessions.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// ListActiveByUser returns the non-revoked sessions for a user, newest first.
// The stored hashes are salted, so the caller must compare the presented
// token against each row; no direct lookup by value is possible.
func (r *RefreshTokenRepository) ListActiveByUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error) {
	var tokens []domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked = ?", userID, false).
		Order("created_at DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Revoke marks a single session revoked. Rows are never deleted here.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked = ?", id, false).
		Update("revoked", true).Error
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

// PurgeStale deletes rows that expired, plus revoked rows older than the
// retention window. Used only by cmd/auth_cleanup.
func (r *RefreshTokenRepository) PurgeStale(ctx context.Context, now time.Time, revokedRetention time.Duration) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Or("revoked = ? AND created_at < ?", true, now.Add(-revokedRetention)).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}

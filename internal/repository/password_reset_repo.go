package repository

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

type PasswordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, t *domain.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// MarkAllUsedByUser invalidates every outstanding token for the user, keeping
// at most one usable token alive at a time.
func (r *PasswordResetRepository) MarkAllUsedByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.PasswordResetToken{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}

// GetLatestUnused returns the newest unused token row for the user, or nil.
func (r *PasswordResetRepository) GetLatestUnused(ctx context.Context, userID int64) (*domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND used = ?", userID, false).
		Order("created_at DESC").
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.PasswordResetToken{}).
		Where("id = ?", id).
		Update("used", true).Error
}

// PurgeStale deletes used tokens and tokens past expiry. cmd/auth_cleanup only.
func (r *PasswordResetRepository) PurgeStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("used = ?", true).
		Or("expires_at < ?", now).
		Delete(&domain.PasswordResetToken{})
	return res.RowsAffected, res.Error
}

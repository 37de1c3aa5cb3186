package repository

import (
	"context"
	"time"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

// LoginAttemptRepository appends to and aggregates over the audit log.
// There is deliberately no update or delete method here.
type LoginAttemptRepository struct {
	db *gorm.DB
}

func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

func (r *LoginAttemptRepository) Create(ctx context.Context, a *domain.LoginAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// CountRecentFailures counts failed attempts for the same email and IP since
// the given time. Feeds the lockout decision.
func (r *LoginAttemptRepository) CountRecentFailures(ctx context.Context, email, ip string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LoginAttempt{}).
		Where("email = ? AND ip = ? AND success = ? AND created_at >= ?", normalizeEmail(email), ip, false, since).
		Count(&count).Error
	return count, err
}

// CountFailures counts all failed attempts ever recorded for an email.
// Feeds the exponential backoff delay.
func (r *LoginAttemptRepository) CountFailures(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LoginAttempt{}).
		Where("email = ? AND success = ?", normalizeEmail(email), false).
		Count(&count).Error
	return count, err
}

// PurgeOlderThan removes attempts past the retention window. Only the offline
// cleanup command calls this; request paths treat the log as append-only.
func (r *LoginAttemptRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.LoginAttempt{})
	return res.RowsAffected, res.Error
}

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmployeeID(ctx context.Context, employeeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) SetEmployeeID(ctx context.Context, userID, employeeID int64) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("employee_id", employeeID).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

// SetLockedUntilByEmail locks every user row matching the email. The email
// column is uniquely indexed, so exactly one row is affected in practice; the
// match-by-email breadth is deliberate and mirrors the lockout contract.
func (r *UserRepository) SetLockedUntilByEmail(ctx context.Context, email string, until time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", normalizeEmail(email)).
		Update("locked_until", until).Error
}

func (r *UserRepository) ClearLockByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", normalizeEmail(email)).
		Update("locked_until", nil).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

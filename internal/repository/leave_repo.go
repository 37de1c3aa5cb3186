package repository

import (
	"context"
	"errors"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, l *domain.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LeaveRepository) GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	var l domain.LeaveRequest
	err := r.db.WithContext(ctx).First(&l, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LeaveRepository) ListAll(ctx context.Context) ([]domain.LeaveRequest, error) {
	var leaves []domain.LeaveRequest
	err := r.db.WithContext(ctx).Order("id DESC").Find(&leaves).Error
	return leaves, err
}

func (r *LeaveRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.LeaveRequest, error) {
	var leaves []domain.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("id DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *LeaveRepository) UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus, reviewedBy int64) error {
	return r.db.WithContext(ctx).Model(&domain.LeaveRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "reviewed_by": reviewedBy}).Error
}

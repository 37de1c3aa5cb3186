package repository

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, a *domain.Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// GetForDay returns the employee's attendance row for the given calendar day,
// or nil when none exists yet.
func (r *AttendanceRepository) GetForDay(ctx context.Context, employeeID int64, day time.Time) (*domain.Attendance, error) {
	var a domain.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, day).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, a *domain.Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AttendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID int64, from, to time.Time) ([]domain.Attendance, error) {
	var rows []domain.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date >= ? AND date < ?", employeeID, from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

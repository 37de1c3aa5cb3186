package repository

import (
	"context"
	"errors"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	e.Email = normalizeEmail(e.Email)
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("Department").
		Order("id DESC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Preload("Department").
		First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Employee{}, id).Error
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).Count(&count).Error
	return count, err
}

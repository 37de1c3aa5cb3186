package repository

import (
	"context"
	"errors"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

// BranchRepository and DepartmentRepository are near-twins; both are simple
// name(+location) lookups used by the org CRUD modules.

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) Create(ctx context.Context, b *domain.Branch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BranchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	err := r.db.WithContext(ctx).Order("id DESC").Find(&branches).Error
	return branches, err
}

func (r *BranchRepository) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	var b domain.Branch
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepository) Update(ctx context.Context, b *domain.Branch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BranchRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Branch{}, id).Error
}

func (r *BranchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Branch{}).Count(&count).Error
	return count, err
}

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, d *domain.Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).Order("id DESC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var d domain.Department
	err := r.db.WithContext(ctx).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d *domain.Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Department{}, id).Error
}

func (r *DepartmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Department{}).Count(&count).Error
	return count, err
}

package repository

import (
	"context"
	"errors"

	"staffhub/internal/domain"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Preload("Members").
		Order("id DESC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).
		Preload("Members").
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Select("Members").Delete(&domain.Project{ID: id}).Error
}

// ReplaceMembers swaps the project's member set for the given employees.
func (r *ProjectRepository) ReplaceMembers(ctx context.Context, projectID int64, employees []domain.Employee) error {
	return r.db.WithContext(ctx).
		Model(&domain.Project{ID: projectID}).
		Association("Members").
		Replace(employees)
}

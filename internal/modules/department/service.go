package department

import (
	"context"
	"errors"

	"staffhub/internal/domain"
	"staffhub/internal/repository"
)

var ErrNotFound = errors.New("department not found")

type UpsertDepartmentRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

type Service struct {
	departments *repository.DepartmentRepository
}

func NewService(departments *repository.DepartmentRepository) *Service {
	return &Service{departments: departments}
}

func (s *Service) List(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Department, error) {
	d, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req UpsertDepartmentRequest) (*domain.Department, error) {
	d := &domain.Department{Name: req.Name, Location: req.Location}
	if err := s.departments.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertDepartmentRequest) (*domain.Department, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Name = req.Name
	d.Location = req.Location
	if err := s.departments.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.departments.Delete(ctx, id)
}

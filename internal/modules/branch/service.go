package branch

import (
	"context"
	"errors"

	"staffhub/internal/domain"
	"staffhub/internal/repository"
)

var ErrNotFound = errors.New("branch not found")

type UpsertBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

type Service struct {
	branches *repository.BranchRepository
}

func NewService(branches *repository.BranchRepository) *Service {
	return &Service{branches: branches}
}

func (s *Service) List(ctx context.Context) ([]domain.Branch, error) {
	return s.branches.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Branch, error) {
	b, err := s.branches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, req UpsertBranchRequest) (*domain.Branch, error) {
	b := &domain.Branch{Name: req.Name, Location: req.Location}
	if err := s.branches.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertBranchRequest) (*domain.Branch, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Name = req.Name
	b.Location = req.Location
	if err := s.branches.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.branches.Delete(ctx, id)
}

package employee

import (
	"context"
	"errors"
	"strings"

	"staffhub/internal/domain"
	"staffhub/internal/repository"
)

var (
	ErrEmailTaken = errors.New("employee email already in use")
	ErrNotFound   = errors.New("employee not found")
)

type Service struct {
	employees   *repository.EmployeeRepository
	branches    *repository.BranchRepository
	departments *repository.DepartmentRepository
	users       *repository.UserRepository
}

func NewService(
	employees *repository.EmployeeRepository,
	branches *repository.BranchRepository,
	departments *repository.DepartmentRepository,
	users *repository.UserRepository,
) *Service {
	return &Service{employees, branches, departments, users}
}

func (s *Service) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*domain.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	e := &domain.Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Phone:        req.Phone,
		Position:     req.Position,
		Status:       domain.EmployeeActive,
		BranchID:     req.BranchID,
		DepartmentID: req.DepartmentID,
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}

	// An account registered before the employee record existed gets linked now.
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil && user.EmployeeID == nil {
		if err := s.users.SetEmployeeID(ctx, user.ID, e.ID); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, e.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*domain.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Status != nil {
		e.Status = domain.EmployeeStatus(*req.Status)
	}
	if req.BranchID != nil {
		e.BranchID = req.BranchID
	}
	if req.DepartmentID != nil {
		e.DepartmentID = req.DepartmentID
	}

	if err := s.employees.Update(ctx, e); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.employees.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error
	if stats.Employees, err = s.employees.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Departments, err = s.departments.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Branches, err = s.branches.Count(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

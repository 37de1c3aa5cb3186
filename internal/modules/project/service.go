package project

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/domain"
	"staffhub/internal/repository"
)

var (
	ErrNotFound        = errors.New("project not found")
	ErrUnknownEmployee = errors.New("unknown employee in assignment")
)

type UpsertProjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=PLANNED ACTIVE COMPLETED"`
	Deadline    *string `json:"deadline"`
}

type AssignMembersRequest struct {
	EmployeeIDs []int64 `json:"employee_ids" binding:"required"`
}

type Service struct {
	projects  *repository.ProjectRepository
	employees *repository.EmployeeRepository
}

func NewService(projects *repository.ProjectRepository, employees *repository.EmployeeRepository) *Service {
	return &Service{projects: projects, employees: employees}
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req UpsertProjectRequest) (*domain.Project, error) {
	p := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectPlanned,
	}
	if req.Status != "" {
		p.Status = domain.ProjectStatus(req.Status)
	}
	if req.Deadline != nil {
		deadline, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return nil, err
		}
		p.Deadline = &deadline
	}

	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertProjectRequest) (*domain.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Description = req.Description
	if req.Status != "" {
		p.Status = domain.ProjectStatus(req.Status)
	}
	if req.Deadline != nil {
		deadline, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return nil, err
		}
		p.Deadline = &deadline
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

// AssignMembers replaces the project's member set. Every id must resolve to
// an existing employee.
func (s *Service) AssignMembers(ctx context.Context, id int64, employeeIDs []int64) (*domain.Project, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	members := make([]domain.Employee, 0, len(employeeIDs))
	for _, employeeID := range employeeIDs {
		e, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, ErrUnknownEmployee
		}
		members = append(members, *e)
	}

	if err := s.projects.ReplaceMembers(ctx, id, members); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

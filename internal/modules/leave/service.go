package leave

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/domain"
	"staffhub/internal/repository"
)

var (
	ErrNotFound       = errors.New("leave request not found")
	ErrInvalidRange   = errors.New("leave range is invalid")
	ErrAlreadyDecided = errors.New("leave request already decided")
)

type ApplyLeaveRequest struct {
	Type     string `json:"type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	FromDate string `json:"from_date" binding:"required"`
	ToDate   string `json:"to_date" binding:"required"`
	Reason   string `json:"reason"`
}

type Service struct {
	leaves *repository.LeaveRepository
}

func NewService(leaves *repository.LeaveRepository) *Service {
	return &Service{leaves: leaves}
}

// Apply files a new request in PENDING state for the calling employee.
func (s *Service) Apply(ctx context.Context, employeeID int64, req ApplyLeaveRequest) (*domain.LeaveRequest, error) {
	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return nil, ErrInvalidRange
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	l := &domain.LeaveRequest{
		EmployeeID: employeeID,
		Type:       domain.LeaveType(req.Type),
		FromDate:   from,
		ToDate:     to,
		Reason:     req.Reason,
		Status:     domain.LeavePending,
	}
	if err := s.leaves.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.LeaveRequest, error) {
	return s.leaves.ListAll(ctx)
}

func (s *Service) ListMine(ctx context.Context, employeeID int64) ([]domain.LeaveRequest, error) {
	return s.leaves.ListByEmployee(ctx, employeeID)
}

// Decide moves a PENDING request to APPROVED or REJECTED and records the
// reviewing account. Decisions are final.
func (s *Service) Decide(ctx context.Context, id int64, status domain.LeaveStatus, reviewerUserID int64) (*domain.LeaveRequest, error) {
	l, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNotFound
	}
	if l.Status != domain.LeavePending {
		return nil, ErrAlreadyDecided
	}

	if err := s.leaves.UpdateStatus(ctx, id, status, reviewerUserID); err != nil {
		return nil, err
	}
	return s.leaves.GetByID(ctx, id)
}

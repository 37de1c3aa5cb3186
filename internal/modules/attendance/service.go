package attendance

import (
	"context"
	"errors"
	"time"

	"staffhub/internal/domain"
	"staffhub/internal/repository"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("no open attendance for today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

type MonthlyStats struct {
	Month       string  `json:"month"`
	DaysPresent int     `json:"days_present"`
	TotalHours  float64 `json:"total_hours"`
}

type Service struct {
	attendance *repository.AttendanceRepository
	now        func() time.Time
}

func NewService(attendance *repository.AttendanceRepository) *Service {
	return &Service{attendance: attendance, now: time.Now}
}

// CheckIn opens today's row for the employee. One row per calendar day.
func (s *Service) CheckIn(ctx context.Context, employeeID int64) (*domain.Attendance, error) {
	now := s.now().UTC()
	day := truncateToDay(now)

	existing, err := s.attendance.GetForDay(ctx, employeeID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	a := &domain.Attendance{
		EmployeeID: employeeID,
		Date:       day,
		CheckIn:    now,
	}
	if err := s.attendance.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// CheckOut stamps the checkout time on today's open row and computes worked
// hours.
func (s *Service) CheckOut(ctx context.Context, employeeID int64) (*domain.Attendance, error) {
	now := s.now().UTC()
	day := truncateToDay(now)

	a, err := s.attendance.GetForDay(ctx, employeeID, day)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotCheckedIn
	}
	if a.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	a.CheckOut = &now
	a.WorkedHours = now.Sub(a.CheckIn).Hours()
	if err := s.attendance.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Stats aggregates one calendar month of rows for an employee.
func (s *Service) Stats(ctx context.Context, employeeID int64, year int, month time.Month) (*MonthlyStats, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	rows, err := s.attendance.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &MonthlyStats{Month: from.Format("2006-01")}
	for _, row := range rows {
		stats.DaysPresent++
		stats.TotalHours += row.WorkedHours
	}
	return stats, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

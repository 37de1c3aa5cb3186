package domain

import "time"

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

type LeaveType string

const (
	LeaveAnnual LeaveType = "ANNUAL"
	LeaveSick   LeaveType = "SICK"
	LeaveUnpaid LeaveType = "UNPAID"
)

type LeaveRequest struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	EmployeeID int64    `json:"employee_id" gorm:"index;not null"`
	Employee   Employee `json:"-" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`

	Type     LeaveType   `json:"type" gorm:"size:16;not null"`
	FromDate time.Time   `json:"from_date" gorm:"not null"`
	ToDate   time.Time   `json:"to_date" gorm:"not null"`
	Reason   string      `json:"reason,omitempty" gorm:"size:500"`
	Status   LeaveStatus `json:"status" gorm:"size:16;not null;default:PENDING"`

	// ReviewedBy is the user id of the ADMIN/HR account that decided it.
	ReviewedBy *int64 `json:"reviewed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package domain

import "time"

// Attendance records one working day per employee. CheckOut stays nil until
// the employee checks out; WorkedHours is computed at checkout time.
type Attendance struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	EmployeeID int64    `json:"employee_id" gorm:"index:idx_attendance_employee_date;not null"`
	Employee   Employee `json:"-" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`

	// Date is the calendar day (midnight UTC) the row belongs to.
	Date        time.Time  `json:"date" gorm:"index:idx_attendance_employee_date;not null"`
	CheckIn     time.Time  `json:"check_in" gorm:"not null"`
	CheckOut    *time.Time `json:"check_out,omitempty"`
	WorkedHours float64    `json:"worked_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

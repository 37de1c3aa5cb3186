package domain

import "time"

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Active"
	EmployeeInactive EmployeeStatus = "Inactive"
)

type Employee struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	FirstName string         `json:"first_name" gorm:"size:100;not null"`
	LastName  string         `json:"last_name" gorm:"size:100;not null"`
	Email     string         `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone     string         `json:"phone,omitempty" gorm:"size:32"`
	Position  string         `json:"position,omitempty" gorm:"size:100"`
	Status    EmployeeStatus `json:"status" gorm:"size:16;not null;default:Active"`

	BranchID     *int64      `json:"branch_id,omitempty" gorm:"index"`
	Branch       *Branch     `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	DepartmentID *int64      `json:"department_id,omitempty" gorm:"index"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Branch struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;uniqueIndex;not null"`
	Location  string    `json:"location,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Department struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;uniqueIndex;not null"`
	Location  string    `json:"location,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

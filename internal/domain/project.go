package domain

import "time"

type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "PLANNED"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

type Project struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"size:200;not null"`
	Description string        `json:"description,omitempty" gorm:"size:1000"`
	Status      ProjectStatus `json:"status" gorm:"size:16;not null;default:PLANNED"`
	Deadline    *time.Time    `json:"deadline,omitempty"`

	Members []Employee `json:"members,omitempty" gorm:"many2many:project_members"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

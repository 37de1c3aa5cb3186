package domain

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleHR       UserRole = "HR"
	RoleEmployee UserRole = "EMPLOYEE"
)

// ValidRole reports whether r is one of the known account roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"size:16;not null;default:EMPLOYEE"`
	EmployeeID   *int64     `json:"employee_id,omitempty" gorm:"uniqueIndex"`
	LockedUntil  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsLocked reports whether the account lock is still in force at now.
// An expired lock counts as unlocked; callers clear it lazily.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

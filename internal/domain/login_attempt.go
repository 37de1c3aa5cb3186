package domain

import "time"

// LoginAttempt is an append-only audit row. It is never updated or deleted in
// request paths; the lockout tracker only aggregates over it.
type LoginAttempt struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     *string   `json:"email,omitempty" gorm:"size:255;index:idx_login_attempts_email_ip"`
	UserID    *int64    `json:"user_id,omitempty" gorm:"index"`
	IP        string    `json:"ip" gorm:"size:45;index:idx_login_attempts_email_ip"`
	Success   bool      `json:"success" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

package domain

import "time"

// PasswordResetToken holds a single-use, short-lived reset secret (hashed).
// At most one usable row exists per user: creating a new token marks all prior
// unused ones used first.
type PasswordResetToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	TokenHash string `json:"-" gorm:"size:72;not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Used      bool      `json:"used" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

package domain

import "time"

// RefreshToken stores one refresh session per row.
//
// Security notes:
// - We never store the raw token in DB, only a salted one-way hash (TokenHash).
// - On refresh we rotate: the old row is marked revoked and a new one created.
// - Rows are never deleted in request paths; cmd/auth_cleanup purges old ones.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	TokenHash string `json:"-" gorm:"size:72;not null"`

	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	Revoked   bool      `json:"revoked" gorm:"index;not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

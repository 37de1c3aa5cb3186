package auth

import (
	"context"
	"time"

	"staffhub/internal/domain"
	"staffhub/internal/pkg/jwt"
)

// UserRepositoryInterface narrows UserRepository to what auth needs.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmployeeID(ctx context.Context, employeeID int64) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	SetLockedUntilByEmail(ctx context.Context, email string, until time.Time) error
	ClearLockByEmail(ctx context.Context, email string) error
}

// RefreshTokenRepositoryInterface is storage for refresh sessions.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	ListActiveByUser(ctx context.Context, userID int64) ([]domain.RefreshToken, error)
	Revoke(ctx context.Context, id int64) error
	RevokeAllByUser(ctx context.Context, userID int64) error
}

// LoginAttemptRepositoryInterface is the append-only attempt log.
type LoginAttemptRepositoryInterface interface {
	Create(ctx context.Context, a *domain.LoginAttempt) error
	CountRecentFailures(ctx context.Context, email, ip string, since time.Time) (int64, error)
	CountFailures(ctx context.Context, email string) (int64, error)
}

// PasswordResetRepositoryInterface is storage for reset tokens.
type PasswordResetRepositoryInterface interface {
	Create(ctx context.Context, t *domain.PasswordResetToken) error
	MarkAllUsedByUser(ctx context.Context, userID int64) error
	GetLatestUnused(ctx context.Context, userID int64) (*domain.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
}

// EmployeeReader lets registration auto-link accounts to employee rows by email.
type EmployeeReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
}

// TokenIssuer abstracts internal/pkg/jwt for tests.
type TokenIssuer interface {
	IssueAccess(userID int64, email, role string, employeeID *int64) (string, error)
	IssueRefresh(userID int64, email, role string, employeeID *int64) (string, error)
	VerifyAccess(tokenStr string) (*jwt.Claims, error)
	VerifyRefresh(tokenStr string) (*jwt.Claims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// Mailer delivers the password-reset link. Implementations must not echo the
// token anywhere but the recipient's mailbox.
type Mailer interface {
	SendPasswordResetEmail(to, resetURL string) error
}

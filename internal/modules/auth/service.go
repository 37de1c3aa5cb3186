package auth

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"staffhub/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Per-IP fixed-window limits in front of the credential endpoints.
const (
	loginMaxAttempts  = 8
	loginWindow       = 10 * time.Minute
	registerMax       = 5
	registerWindow    = 5 * time.Minute
	forgotMaxAttempts = 5
	forgotWindow      = 10 * time.Minute
)

// Service contains the authentication business logic: login with lockout and
// backoff, refresh rotation with reuse detection, registration, logout, and
// the password-reset flow.
type Service struct {
	users        UserRepositoryInterface
	employees    EmployeeReader
	refreshStore *RefreshTokenStore
	resetStore   *PasswordResetStore
	lockout      *LockoutTracker
	limiter      *RateLimiter
	tokens       TokenIssuer
	mailer       Mailer
	baseURL      string

	// Sleep is the deliberate login stall. Tests replace it with a no-op.
	Sleep func(time.Duration)
}

func NewService(
	users UserRepositoryInterface,
	employees EmployeeReader,
	refreshStore *RefreshTokenStore,
	resetStore *PasswordResetStore,
	lockout *LockoutTracker,
	limiter *RateLimiter,
	tokens TokenIssuer,
	mailer Mailer,
	baseURL string,
) *Service {
	return &Service{
		users:        users,
		employees:    employees,
		refreshStore: refreshStore,
		resetStore:   resetStore,
		lockout:      lockout,
		limiter:      limiter,
		tokens:       tokens,
		mailer:       mailer,
		baseURL:      strings.TrimRight(baseURL, "/"),
		Sleep:        time.Sleep,
	}
}

// Login flows rate limiter → lockout check → backoff stall → password
// compare → attempt logging → token issuance. Failures return the same
// ErrInvalidCredentials whether the email is unknown or the password wrong.
func (s *Service) Login(ctx context.Context, req LoginRequest, ip string) (*LoginResult, error) {
	if !s.limiter.Check(ip, "login", loginMaxAttempts, loginWindow) {
		return nil, ErrRateLimited
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	locked, err := s.lockout.IsLocked(ctx, email)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrAccountLocked
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if err := s.lockout.RecordAttempt(ctx, AttemptRecord{Email: email, IP: ip, Success: false}); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	// Stall proportionally to this account's failure history. Bounded at
	// 15s so a legitimate user is never locked out by latency alone.
	failures, err := s.lockout.attempts.CountFailures(ctx, email)
	if err != nil {
		return nil, err
	}
	s.Sleep(BackoffDelay(failures))

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		if err := s.lockout.RecordAttempt(ctx, AttemptRecord{Email: email, UserID: &user.ID, IP: ip, Success: false}); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.lockout.RecordAttempt(ctx, AttemptRecord{Email: email, UserID: &user.ID, IP: ip, Success: true}); err != nil {
		return nil, err
	}

	claims := ClaimsFromUser(user)
	accessToken, refreshToken, err := s.issuePair(claims)
	if err != nil {
		return nil, err
	}

	if _, err := s.refreshStore.Save(ctx, user.ID, refreshToken, time.Now().Add(s.tokens.RefreshTTL())); err != nil {
		return nil, err
	}

	return &LoginResult{User: claims, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh rotates a refresh token. The presented token must verify AND match
// a live session row; a verified token with no live row is treated as replay
// of an already-rotated token (ErrTokenReuseDetected). Rotation revokes the
// old row before saving the new one: if the save fails the user re-logs in,
// which is the fail-safe direction.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (*RefreshResult, error) {
	decoded, err := s.tokens.VerifyRefresh(refreshRaw)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, decoded.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	stored, err := s.refreshStore.Validate(ctx, user.ID, refreshRaw)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		log.Printf("token reuse detected: user_id=%d", user.ID)
		return nil, ErrTokenReuseDetected
	}

	if err := s.refreshStore.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	// Claims are rebuilt from the current user row, not copied from the old
	// token, so role changes take effect on rotation.
	claims := ClaimsFromUser(user)
	accessToken, refreshToken, err := s.issuePair(claims)
	if err != nil {
		return nil, err
	}

	if _, err := s.refreshStore.Save(ctx, user.ID, refreshToken, time.Now().Add(s.tokens.RefreshTTL())); err != nil {
		return nil, err
	}

	return &RefreshResult{User: claims, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout revokes the presented session only; other devices stay signed in.
// Unknown or already-dead tokens are ignored so logout is idempotent.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	if refreshRaw == "" {
		return nil
	}
	decoded, err := s.tokens.VerifyRefresh(refreshRaw)
	if err != nil {
		return nil
	}
	stored, err := s.refreshStore.Validate(ctx, decoded.UserID, refreshRaw)
	if err != nil {
		return err
	}
	if stored == nil {
		return nil
	}
	return s.refreshStore.Revoke(ctx, stored.ID)
}

// Register creates an account, auto-linking it to an existing employee row
// with the same email when one exists and is not yet claimed.
func (s *Service) Register(ctx context.Context, req RegisterRequest, ip string) (*domain.User, bool, error) {
	if !s.limiter.Check(ip, "register", registerMax, registerWindow) {
		return nil, false, ErrRateLimited
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, ErrEmailAlreadyExists
	}

	role := domain.UserRole(req.Role)
	if req.Role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return nil, false, fmt.Errorf("unknown role %q", req.Role)
	}

	var employeeID *int64
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if employee != nil {
		linked, err := s.users.ExistsByEmployeeID(ctx, employee.ID)
		if err != nil {
			return nil, false, err
		}
		if linked {
			return nil, false, ErrEmployeeLinked
		}
		employeeID = &employee.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		EmployeeID:   employeeID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}

	return user, employeeID != nil, nil
}

// RequestPasswordReset is enumeration-safe: an unknown email takes the same
// path to a silent success as a known one, and the handler responds 200
// either way.
func (s *Service) RequestPasswordReset(ctx context.Context, email, ip string) error {
	if !s.limiter.Check(ip, "forgot_password", forgotMaxAttempts, forgotWindow) {
		return ErrRateLimited
	}

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	plain, err := s.resetStore.Create(ctx, user.ID)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s&uid=%d", s.baseURL, plain, user.ID)
	return s.mailer.SendPasswordResetEmail(user.Email, resetURL)
}

// ResetPassword validates and burns the reset token, then replaces the
// password hash.
func (s *Service) ResetPassword(ctx context.Context, userID int64, token, newPassword string) error {
	record, err := s.resetStore.Validate(ctx, userID, token)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	return s.resetStore.MarkUsed(ctx, record.ID)
}

// CurrentUser returns the fresh user row for the authenticated id.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) issuePair(claims UserClaims) (access string, refresh string, err error) {
	access, err = s.tokens.IssueAccess(claims.ID, claims.Email, claims.Role, claims.EmployeeID)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.tokens.IssueRefresh(claims.ID, claims.Email, claims.Role, claims.EmployeeID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

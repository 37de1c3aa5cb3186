package auth

import (
	"context"
	"time"

	"staffhub/internal/domain"
)

const (
	maxFailedLoginAttempts = 5
	lockoutWindow          = 15 * time.Minute

	backoffBase = 2 * time.Second
	backoffCap  = 15 * time.Second
)

// LockoutTracker persists login attempts and locks accounts after repeated
// failures. It sits beneath the rate limiter: the limiter throttles raw
// request volume per IP, the tracker protects a specific account.
type LockoutTracker struct {
	attempts LoginAttemptRepositoryInterface
	users    UserRepositoryInterface
	now      func() time.Time
}

func NewLockoutTracker(attempts LoginAttemptRepositoryInterface, users UserRepositoryInterface) *LockoutTracker {
	return &LockoutTracker{attempts: attempts, users: users, now: time.Now}
}

type AttemptRecord struct {
	Email   string
	UserID  *int64
	IP      string
	Success bool
}

// RecordAttempt appends to the audit log. On failure it counts recent
// failures for the same email+IP and, at the threshold, locks every user row
// matching that email until now+lockoutWindow. Re-locking while locked only
// extends the expiry, never shortens it.
func (t *LockoutTracker) RecordAttempt(ctx context.Context, rec AttemptRecord) error {
	attempt := &domain.LoginAttempt{
		UserID:  rec.UserID,
		IP:      rec.IP,
		Success: rec.Success,
	}
	if rec.Email != "" {
		email := rec.Email
		attempt.Email = &email
	}
	if err := t.attempts.Create(ctx, attempt); err != nil {
		return err
	}

	if rec.Success || rec.Email == "" {
		return nil
	}

	now := t.now()
	failures, err := t.attempts.CountRecentFailures(ctx, rec.Email, rec.IP, now.Add(-lockoutWindow))
	if err != nil {
		return err
	}

	if failures >= maxFailedLoginAttempts {
		return t.users.SetLockedUntilByEmail(ctx, rec.Email, now.Add(lockoutWindow))
	}

	return nil
}

// IsLocked reads the account's locked-until stamp. An expired lock is cleared
// here (lazily) and reported as unlocked.
func (t *LockoutTracker) IsLocked(ctx context.Context, email string) (bool, error) {
	user, err := t.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user == nil || user.LockedUntil == nil {
		return false, nil
	}

	if user.LockedUntil.Before(t.now()) {
		if err := t.users.ClearLockByEmail(ctx, email); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}

// BackoffDelay returns min(2s·2ⁿ, 15s): enough to stall credential stuffing,
// capped so a legitimate retry never waits longer than 15 seconds.
func BackoffDelay(failureCount int64) time.Duration {
	if failureCount >= 3 {
		return backoffCap
	}
	d := backoffBase << uint(failureCount)
	if d > backoffCap {
		return backoffCap
	}
	return d
}

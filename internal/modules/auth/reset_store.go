package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"staffhub/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// PasswordResetStore manages single-use, time-boxed reset tokens.
type PasswordResetStore struct {
	repo PasswordResetRepositoryInterface
	ttl  time.Duration
	now  func() time.Time
}

func NewPasswordResetStore(repo PasswordResetRepositoryInterface, ttl time.Duration) *PasswordResetStore {
	return &PasswordResetStore{repo: repo, ttl: ttl, now: time.Now}
}

// Create invalidates all outstanding tokens for the user, then stores the
// bcrypt hash of a fresh random secret. The returned plaintext exists only
// here and in the reset email.
func (s *PasswordResetStore) Create(ctx context.Context, userID int64) (string, error) {
	if err := s.repo.MarkAllUsedByUser(ctx, userID); err != nil {
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	plain := hex.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	record := &domain.PasswordResetToken{
		UserID:    userID,
		TokenHash: string(hash),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return "", err
	}

	return plain, nil
}

// Validate returns the newest unused record when the plaintext matches and
// the token is not expired, nil otherwise. The nil result deliberately does
// not say which check failed; callers present one generic message.
func (s *PasswordResetStore) Validate(ctx context.Context, userID int64, plain string) (*domain.PasswordResetToken, error) {
	record, err := s.repo.GetLatestUnused(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.IsExpired(s.now()) {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(record.TokenHash), []byte(plain)) != nil {
		return nil, nil
	}
	return record, nil
}

// MarkUsed burns the token immediately after a successful password change so
// it cannot be replayed inside its expiry window.
func (s *PasswordResetStore) MarkUsed(ctx context.Context, id int64) error {
	return s.repo.MarkUsed(ctx, id)
}

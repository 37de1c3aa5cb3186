package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"staffhub/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// RefreshTokenStore persists hashed refresh tokens, one row per session.
// A refresh token grants new access tokens, so it gets the same storage
// discipline as a password: the plaintext never touches the database.
type RefreshTokenStore struct {
	repo RefreshTokenRepositoryInterface
	now  func() time.Time
}

func NewRefreshTokenStore(repo RefreshTokenRepositoryInterface) *RefreshTokenStore {
	return &RefreshTokenStore{repo: repo, now: time.Now}
}

// Save hashes the plaintext and persists a new session row. Refresh tokens
// are JWTs longer than bcrypt's 72-byte input limit, so the token is reduced
// to a SHA-256 digest first and the digest is bcrypt-hashed.
func (s *RefreshTokenStore) Save(ctx context.Context, userID int64, plainToken string, expiresAt time.Time) (*domain.RefreshToken, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(plainToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		UserID:    userID,
		TokenHash: string(hash),
		ExpiresAt: expiresAt,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Validate compares the plaintext against every non-revoked session for the
// user, newest first, and returns the matching record or nil. The hashes are
// salted, so there is no lookup by value. Exhausting the set without a match
// is the reuse-detection signal for callers.
func (s *RefreshTokenStore) Validate(ctx context.Context, userID int64, plainToken string) (*domain.RefreshToken, error) {
	records, err := s.repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := digest(plainToken)
	now := s.now()
	for i := range records {
		if records[i].IsExpired(now) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(records[i].TokenHash), d) == nil {
			return &records[i], nil
		}
	}
	return nil, nil
}

// Revoke marks one session dead. Records are flagged, never deleted, so the
// audit trail survives rotation.
func (s *RefreshTokenStore) Revoke(ctx context.Context, id int64) error {
	return s.repo.Revoke(ctx, id)
}

// RevokeAll kills every live session for a user.
func (s *RefreshTokenStore) RevokeAll(ctx context.Context, userID int64) error {
	return s.repo.RevokeAllByUser(ctx, userID)
}

func digest(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum[:])
	return out
}

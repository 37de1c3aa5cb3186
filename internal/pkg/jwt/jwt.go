package jwt

import (
	"errors"
	"time"

	"github.com/google/uuid"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, expired,
// malformed. Callers that care about "no token at all" must check for an empty
// token string before calling Verify*.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload carried by both token types. A claim set is
// always built fresh from the user row at issuance time, never mutated.
type Claims struct {
	UserID     int64  `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID *int64 `json:"employee_id,omitempty"`
	jwtlib.RegisteredClaims
}

// Issuer signs and verifies access and refresh tokens. The two token types use
// distinct secrets so a leak of one key space cannot forge the other.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Issuer) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Issuer) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Issuer) IssueAccess(userID int64, email, role string, employeeID *int64) (string, error) {
	return s.sign(userID, email, role, employeeID, s.accessSecret, s.accessTTL)
}

func (s *Issuer) IssueRefresh(userID int64, email, role string, employeeID *int64) (string, error) {
	return s.sign(userID, email, role, employeeID, s.refreshSecret, s.refreshTTL)
}

func (s *Issuer) VerifyAccess(tokenStr string) (*Claims, error) {
	return s.verify(tokenStr, s.accessSecret)
}

func (s *Issuer) VerifyRefresh(tokenStr string) (*Claims, error) {
	return s.verify(tokenStr, s.refreshSecret)
}

func (s *Issuer) sign(userID int64, email, role string, employeeID *int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Email:      email,
		Role:       role,
		EmployeeID: employeeID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *Issuer) verify(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssuer_AccessRoundTrip(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", 15*time.Minute, 30*24*time.Hour)

	empID := int64(7)
	token, err := issuer.IssueAccess(42, "user@example.com", "HR", &empID)
	assert.NoError(t, err)

	claims, err := issuer.VerifyAccess(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "HR", claims.Role)
	if assert.NotNil(t, claims.EmployeeID) {
		assert.Equal(t, int64(7), *claims.EmployeeID)
	}
	assert.NotEmpty(t, claims.ID) // jti
}

func TestIssuer_SecretsAreDistinct(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", 15*time.Minute, 30*24*time.Hour)

	access, err := issuer.IssueAccess(1, "a@example.com", "ADMIN", nil)
	assert.NoError(t, err)
	refresh, err := issuer.IssueRefresh(1, "a@example.com", "ADMIN", nil)
	assert.NoError(t, err)

	// A refresh token must not verify as an access token and vice versa.
	_, err = issuer.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = issuer.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_ExpiredToken(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", -time.Minute, 30*24*time.Hour)

	token, err := issuer.IssueAccess(1, "a@example.com", "EMPLOYEE", nil)
	assert.NoError(t, err)

	_, err = issuer.VerifyAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_Garbage(t *testing.T) {
	issuer := NewIssuer("access-secret", "refresh-secret", 15*time.Minute, 30*24*time.Hour)

	_, err := issuer.VerifyAccess("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"staffhub/internal/domain"
)

func TestRefreshTokenStore_SaveThenValidate(t *testing.T) {
	repo := new(mockRefreshTokenRepo)
	store := NewRefreshTokenStore(repo)

	var saved *domain.RefreshToken
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.RefreshToken)
		saved.ID = 1
	}).Return(nil)

	plain := "header.payload.signature-long-enough-to-exceed-bcrypt-input-limit-0123456789"
	_, err := store.Save(context.Background(), 10, plain, time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.NotEqual(t, plain, saved.TokenHash)

	repo.On("ListActiveByUser", mock.Anything, int64(10)).Return([]domain.RefreshToken{*saved}, nil)

	found, err := store.Validate(context.Background(), 10, plain)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, int64(1), found.ID)

	miss, err := store.Validate(context.Background(), 10, plain+"-tampered")
	assert.NoError(t, err)
	assert.Nil(t, miss)
}

func TestRefreshTokenStore_Validate_SkipsExpired(t *testing.T) {
	repo := new(mockRefreshTokenRepo)
	store := NewRefreshTokenStore(repo)

	var saved *domain.RefreshToken
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.RefreshToken)
	}).Return(nil)

	plain := "some-refresh-token"
	_, err := store.Save(context.Background(), 10, plain, time.Now().Add(-time.Minute))
	assert.NoError(t, err)

	repo.On("ListActiveByUser", mock.Anything, int64(10)).Return([]domain.RefreshToken{*saved}, nil)

	found, err := store.Validate(context.Background(), 10, plain)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

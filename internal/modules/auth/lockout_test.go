package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"staffhub/internal/domain"
)

func TestLockoutTracker_RecordAttempt_BelowThreshold(t *testing.T) {
	attempts := new(mockAttemptRepo)
	users := new(mockUserRepo)
	tracker := NewLockoutTracker(attempts, users)

	attempts.On("Create", mock.Anything, mock.Anything).Return(nil)
	attempts.On("CountRecentFailures", mock.Anything, "a@b.com", "1.2.3.4", mock.Anything).Return(int64(3), nil)

	err := tracker.RecordAttempt(context.Background(), AttemptRecord{
		Email: "a@b.com", IP: "1.2.3.4", Success: false,
	})

	assert.NoError(t, err)
	users.AssertNotCalled(t, "SetLockedUntilByEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestLockoutTracker_RecordAttempt_LocksAtThreshold(t *testing.T) {
	attempts := new(mockAttemptRepo)
	users := new(mockUserRepo)
	tracker := NewLockoutTracker(attempts, users)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return base }

	attempts.On("Create", mock.Anything, mock.Anything).Return(nil)
	attempts.On("CountRecentFailures", mock.Anything, "a@b.com", "1.2.3.4", base.Add(-lockoutWindow)).Return(int64(5), nil)
	users.On("SetLockedUntilByEmail", mock.Anything, "a@b.com", base.Add(lockoutWindow)).Return(nil)

	err := tracker.RecordAttempt(context.Background(), AttemptRecord{
		Email: "a@b.com", IP: "1.2.3.4", Success: false,
	})

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestLockoutTracker_RecordAttempt_SuccessSkipsCount(t *testing.T) {
	attempts := new(mockAttemptRepo)
	users := new(mockUserRepo)
	tracker := NewLockoutTracker(attempts, users)

	attempts.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := tracker.RecordAttempt(context.Background(), AttemptRecord{
		Email: "a@b.com", IP: "1.2.3.4", Success: true,
	})

	assert.NoError(t, err)
	attempts.AssertNotCalled(t, "CountRecentFailures", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLockoutTracker_IsLocked_ExpiredLockCleared(t *testing.T) {
	attempts := new(mockAttemptRepo)
	users := new(mockUserRepo)
	tracker := NewLockoutTracker(attempts, users)

	past := time.Now().Add(-time.Minute)
	user := &domain.User{ID: 1, Email: "a@b.com", LockedUntil: &past}

	users.On("GetByEmail", mock.Anything, "a@b.com").Return(user, nil)
	users.On("ClearLockByEmail", mock.Anything, "a@b.com").Return(nil)

	locked, err := tracker.IsLocked(context.Background(), "a@b.com")

	assert.NoError(t, err)
	assert.False(t, locked)
	users.AssertCalled(t, "ClearLockByEmail", mock.Anything, "a@b.com")
}

func TestLockoutTracker_IsLocked_ActiveLock(t *testing.T) {
	attempts := new(mockAttemptRepo)
	users := new(mockUserRepo)
	tracker := NewLockoutTracker(attempts, users)

	future := time.Now().Add(10 * time.Minute)
	user := &domain.User{ID: 1, Email: "a@b.com", LockedUntil: &future}

	users.On("GetByEmail", mock.Anything, "a@b.com").Return(user, nil)

	locked, err := tracker.IsLocked(context.Background(), "a@b.com")

	assert.NoError(t, err)
	assert.True(t, locked)
	users.AssertNotCalled(t, "ClearLockByEmail", mock.Anything, mock.Anything)
}

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, BackoffDelay(0))
	assert.Equal(t, 4*time.Second, BackoffDelay(1))
	assert.Equal(t, 8*time.Second, BackoffDelay(2))
	assert.Equal(t, 15*time.Second, BackoffDelay(3))
	assert.Equal(t, 15*time.Second, BackoffDelay(100))
}

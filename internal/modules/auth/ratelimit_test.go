package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_DeniesOverLimit(t *testing.T) {
	limiter := NewRateLimiter(NewMemoryCounterStore())

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Check("1.2.3.4", "login", 3, time.Minute), "call %d should pass", i+1)
	}
	assert.False(t, limiter.Check("1.2.3.4", "login", 3, time.Minute), "4th call should be denied")
	assert.False(t, limiter.Check("1.2.3.4", "login", 3, time.Minute), "denied calls stay denied within the window")
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(NewMemoryCounterStore())

	assert.True(t, limiter.Check("1.2.3.4", "login", 1, time.Minute))
	assert.False(t, limiter.Check("1.2.3.4", "login", 1, time.Minute))

	// Different IP and different action both get their own window.
	assert.True(t, limiter.Check("5.6.7.8", "login", 1, time.Minute))
	assert.True(t, limiter.Check("1.2.3.4", "register", 1, time.Minute))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	current := time.Now()
	limiter := NewRateLimiter(NewMemoryCounterStore())
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Check("1.2.3.4", "login", 1, time.Minute))
	assert.False(t, limiter.Check("1.2.3.4", "login", 1, time.Minute))

	// First call after window expiry succeeds even though the prior window
	// was exhausted.
	current = current.Add(61 * time.Second)
	assert.True(t, limiter.Check("1.2.3.4", "login", 1, time.Minute))
}

func TestRateLimiter_Concurrent(t *testing.T) {
	limiter := NewRateLimiter(NewMemoryCounterStore())

	const workers = 50
	allowed := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- limiter.Check("1.2.3.4", "login", 10, time.Minute)
		}()
	}
	wg.Wait()
	close(allowed)

	passed := 0
	for ok := range allowed {
		if ok {
			passed++
		}
	}
	assert.Equal(t, 10, passed)
}

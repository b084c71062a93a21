package guard_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"logistics/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("guard_is_safe_for_concurrent_reads", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, g.Validate(nil))
			}()
		}
		wg.Wait()
	})
}

// TestConstructorGuardEmbedded shows the guard embedded in a value object.
func TestConstructorGuardEmbedded(t *testing.T) {
	errWindowNotConstructed := errors.New("window must be created via newWindow")

	type window struct {
		from  time.Time
		to    time.Time
		guard guard.ConstructorGuard
	}

	newWindow := func(from, to time.Time) (window, error) {
		if to.Before(from) {
			return window{}, errors.New("window ends before it starts")
		}
		return window{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
	}

	validate := func(w window) error {
		return w.guard.Validate(errWindowNotConstructed)
	}

	t.Run("constructed_window_is_valid", func(t *testing.T) {
		now := time.Now()
		w, err := newWindow(now, now.Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, validate(w))
	})

	t.Run("literal_window_is_rejected", func(t *testing.T) {
		w := window{from: time.Now(), to: time.Now()}
		require.ErrorIs(t, validate(w), errWindowNotConstructed)
	})
}

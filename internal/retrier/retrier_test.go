package retrier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflare.io/kalori/internal/retrier"
)

type tempErr struct{}

func (tempErr) Error() string   { return "try again" }
func (tempErr) Temporary() bool { return true }

func fastSettings() retrier.Settings {
	s := retrier.DefaultSettings()
	s.BaseDelay = time.Millisecond
	s.MaxDelay = 2 * time.Millisecond
	return s
}

func TestNew_Validation(t *testing.T) {
	s := fastSettings()
	s.MaxAttempts = 0
	_, err := retrier.New(s)
	assert.ErrorIs(t, err, retrier.ErrInvalidMaxAttempts)

	s = fastSettings()
	s.BaseDelay = 0
	_, err = retrier.New(s)
	assert.ErrorIs(t, err, retrier.ErrInvalidBaseDelay)

	s = fastSettings()
	s.Factor = 0.5
	_, err = retrier.New(s)
	assert.ErrorIs(t, err, retrier.ErrInvalidFactor)

	s = fastSettings()
	s.Jitter = 2
	_, err = retrier.New(s)
	assert.ErrorIs(t, err, retrier.ErrInvalidJitter)
}

func TestRun_RetriesTemporary(t *testing.T) {
	r, err := retrier.New(fastSettings())
	require.NoError(t, err)

	attempts := 0
	err = r.Run(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return tempErr{}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRun_StopsOnPermanent(t *testing.T) {
	r, err := retrier.New(fastSettings())
	require.NoError(t, err)

	permanent := errors.New("bad request")
	attempts := 0
	err = r.Run(context.Background(), func() error {
		attempts++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestRun_ExhaustsAttempts(t *testing.T) {
	r, err := retrier.New(fastSettings())
	require.NoError(t, err)

	attempts := 0
	err = r.Run(context.Background(), func() error {
		attempts++
		return tempErr{}
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retry attempts reached")
	assert.Equal(t, 3, attempts)
}

func TestDelay_Capped(t *testing.T) {
	s := fastSettings()
	s.Jitter = 0
	r, err := retrier.New(s)
	require.NoError(t, err)

	assert.Equal(t, time.Millisecond, r.Delay(0))
	assert.Equal(t, 2*time.Millisecond, r.Delay(1))
	assert.Equal(t, 2*time.Millisecond, r.Delay(5))
}

func TestIsTemporary(t *testing.T) {
	assert.True(t, retrier.IsTemporary(tempErr{}))
	assert.False(t, retrier.IsTemporary(errors.New("x")))
	assert.False(t, retrier.IsTemporary(context.Canceled))
	assert.False(t, retrier.IsTemporary(nil))
}

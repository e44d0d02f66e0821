package utils

import (
	"context"
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"io/fs"
	"os"
	"syscall"
	"testing"
	"time"
)

var fastPolicy = RetryPolicy{
	Attempts:  3,
	BaseDelay: time.Millisecond,
	MaxDelay:  5 * time.Millisecond,
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fs.ErrNotExist))
	assert.True(t, IsRetryable(&fs.PathError{Op: "open", Path: "x", Err: syscall.ENOENT}))
	assert.True(t, IsRetryable(fs.ErrPermission))
	assert.True(t, IsRetryable(os.ErrDeadlineExceeded))
	assert.True(t, IsRetryable(fmt.Errorf("copy: %w", context.DeadlineExceeded)))
	assert.True(t, IsRetryable(syscall.ECONNRESET))
	assert.False(t, IsRetryable(errors.New("disk full")))
	assert.False(t, IsRetryable(nil))
}

func TestRetrySucceedsAfterRetryableErrors(t *testing.T) {
	calls := 0

	err := Retry(context.Background(), fastPolicy, "open share", func() error {
		calls++

		if calls < 3 {
			return fs.ErrNotExist
		}

		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryGivesUpAfterAttempts(t *testing.T) {
	calls := 0

	err := Retry(context.Background(), fastPolicy, "open share", func() error {
		calls++
		return fs.ErrPermission
	})

	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, 3, calls)
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	failure := errors.New("bad request")

	err := Retry(context.Background(), fastPolicy, "open share", func() error {
		calls++
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 1, calls)
}

func TestRetryStopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Retry(ctx, RetryPolicy{Attempts: 5, BaseDelay: time.Hour}, "open share", func() error {
		calls++
		cancel()
		return fs.ErrNotExist
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryDelayDoublesUpToMax(t *testing.T) {
	policy := RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, policy.delay(1))
	assert.Equal(t, 200*time.Millisecond, policy.delay(2))
	assert.Equal(t, 300*time.Millisecond, policy.delay(3))
}

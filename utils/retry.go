package utils

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"os"
	"syscall"
	"time"
)

type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

var retryableErrnos = []syscall.Errno{
	syscall.ECONNRESET,
	syscall.ECONNREFUSED,
	syscall.ECONNABORTED,
	syscall.ETIMEDOUT,
	syscall.EHOSTUNREACH,
	syscall.ENETUNREACH,
}

// IsRetryable reports whether err is a missing path, permission, timeout or connection error.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	for _, errno := range retryableErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}

func (policy RetryPolicy) delay(attempt int) time.Duration {
	delay := policy.BaseDelay << (attempt - 1)

	if policy.MaxDelay > 0 && (delay > policy.MaxDelay || delay <= 0) {
		return policy.MaxDelay
	}

	return delay
}

// Retry calls fn until it succeeds, returns a non-retryable error or runs out of attempts.
// The wait between attempts doubles each time.
func Retry(ctx context.Context, policy RetryPolicy, operation string, fn func() error) error {
	attempts := policy.Attempts

	if attempts < 1 {
		attempts = 1
	}

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return fmt.Errorf("%s: %w (last error: %v)", operation, ctxErr, err)
			}

			return fmt.Errorf("%s: %w", operation, ctxErr)
		}

		err = fn()

		if err == nil {
			return nil
		}

		if !IsRetryable(err) {
			return err
		}

		if attempt == attempts {
			break
		}

		delay := policy.delay(attempt)
		log.Printf("%s failed (attempt %d of %d), retrying in %s: %v", operation, attempt, attempts, delay, err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w (last error: %v)", operation, ctx.Err(), err)
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%s failed after %s: %w", operation, Pluralize("attempt", int64(attempts)), err)
}

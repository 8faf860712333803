package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxAttempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts:  maxAttempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithExponentialBackoffSucceedsFirstTry(t *testing.T) {
	calls := 0
	result := WithExponentialBackoff(context.Background(), fastConfig(3), func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})

	if !result.Success {
		t.Fatal("expected success")
	}
	if calls != 1 || result.Attempts != 1 {
		t.Errorf("calls = %d, attempts = %d, want 1/1", calls, result.Attempts)
	}
}

func TestWithExponentialBackoffRetriesUntilSuccess(t *testing.T) {
	calls := 0
	result := WithExponentialBackoff(context.Background(), fastConfig(3), func(ctx context.Context, attempt int) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if !result.Success {
		t.Fatalf("expected success, last error: %v", result.LastError)
	}
	if result.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", result.Attempts)
	}
}

func TestWithExponentialBackoffExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	result := WithExponentialBackoff(context.Background(), fastConfig(3), func(ctx context.Context, attempt int) error {
		calls++
		return boom
	})

	if result.Success {
		t.Fatal("expected failure")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if result.LastError != boom {
		t.Errorf("last error = %v, want boom", result.LastError)
	}
}

func TestWithExponentialBackoffHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	result := WithExponentialBackoff(ctx, &RetryConfig{
		MaxAttempts:  5,
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
	}, func(ctx context.Context, attempt int) error {
		cancel()
		return errors.New("transient")
	})

	if result.Success {
		t.Fatal("expected failure after cancellation")
	}
	if !errors.Is(result.LastError, context.Canceled) {
		t.Errorf("last error = %v, want context.Canceled", result.LastError)
	}
	if result.Attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry after cancel)", result.Attempts)
	}
}

func TestCalculateDelay(t *testing.T) {
	config := &RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second}, // capped at MaxDelay
		{10, time.Second},
	}

	for _, tt := range tests {
		if got := calculateDelay(config, tt.attempt); got != tt.want {
			t.Errorf("calculateDelay(attempt=%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestWithRetryWrapsLastError(t *testing.T) {
	boom := errors.New("boom")
	err := WithRetry(context.Background(), func(ctx context.Context, attempt int) error {
		return boom
	})

	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

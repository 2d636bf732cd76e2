package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type statusErr struct{ code int }

func (e statusErr) Error() string       { return fmt.Sprintf("status %d", e.code) }
func (e statusErr) HTTPStatusCode() int { return e.code }

func TestIsRetryableHTTPStatus(t *testing.T) {
	retryable := []int{408, 429, 500, 502, 503, 599}
	for _, code := range retryable {
		if !IsRetryableHTTPStatus(code) {
			t.Fatalf("status %d should be retryable", code)
		}
	}
	terminal := []int{200, 400, 401, 403, 404, 422}
	for _, code := range terminal {
		if IsRetryableHTTPStatus(code) {
			t.Fatalf("status %d should be terminal", code)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	if IsRetryableError(nil) {
		t.Fatal("nil error is not retryable")
	}
	if !IsRetryableError(context.DeadlineExceeded) {
		t.Fatal("deadline exceeded should be retryable")
	}
	if IsRetryableError(context.Canceled) {
		t.Fatal("cancellation is the caller's decision, not a retry signal")
	}
	if !IsRetryableError(fmt.Errorf("call failed: %w", statusErr{code: 503})) {
		t.Fatal("wrapped 503 should be retryable")
	}
	if IsRetryableError(fmt.Errorf("call failed: %w", statusErr{code: 401})) {
		t.Fatal("wrapped 401 should be terminal")
	}
	if IsRetryableError(errors.New("something else")) {
		t.Fatal("unclassified errors should be terminal")
	}
}

func TestRetryAfterDuration(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Retry-After": []string{"3"}}}
	if got := RetryAfterDuration(resp, time.Second, 30*time.Second); got != 3*time.Second {
		t.Fatalf("Retry-After not honored: %v", got)
	}

	resp = &http.Response{Header: http.Header{"Retry-After": []string{"120"}}}
	if got := RetryAfterDuration(resp, time.Second, 10*time.Second); got != 10*time.Second {
		t.Fatalf("cap not applied: %v", got)
	}

	if got := RetryAfterDuration(nil, 2*time.Second, 30*time.Second); got != 2*time.Second {
		t.Fatalf("fallback not used without response: %v", got)
	}

	resp = &http.Response{Header: http.Header{"Retry-After": []string{"not-a-number"}}}
	if got := RetryAfterDuration(resp, 2*time.Second, 30*time.Second); got != 2*time.Second {
		t.Fatalf("malformed header should fall back: %v", got)
	}
}

func TestJitterSleepBounds(t *testing.T) {
	base := time.Second
	for i := 0; i < 100; i++ {
		got := JitterSleep(base)
		if got < 800*time.Millisecond || got > 1200*time.Millisecond {
			t.Fatalf("jitter out of +-20%% band: %v", got)
		}
	}
	if got := JitterSleep(0); got != 0 {
		t.Fatalf("zero base should not sleep: %v", got)
	}
}

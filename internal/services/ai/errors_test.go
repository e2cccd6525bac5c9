package ai

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRateLimitError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "api error with 429", err: &APIError{StatusCode: 429}, want: true},
		{name: "api error with 500", err: &APIError{StatusCode: 500}, want: false},
		{name: "wrapped api error", err: fmt.Errorf("completion failed: %w", &APIError{StatusCode: 429}), want: true},
		{name: "message mentions 429", err: errors.New("upstream returned 429"), want: true},
		{name: "message mentions rate limit", err: errors.New("rate limit exceeded, retry later"), want: true},
		{name: "message mentions too many requests", err: errors.New("too many requests"), want: true},
		{name: "unrelated error", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsCreditsError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "api error with 402", err: &APIError{StatusCode: 402}, want: true},
		{name: "api error with quota code", err: &APIError{StatusCode: 429, Code: "insufficient_quota"}, want: true},
		{name: "api error with 429 only", err: &APIError{StatusCode: 429}, want: false},
		{name: "message mentions 402", err: errors.New("upstream returned 402"), want: true},
		{name: "message mentions billing", err: errors.New("billing hard limit reached"), want: true},
		{name: "unrelated error", err: errors.New("timeout"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsCreditsError(tt.err); got != tt.want {
				t.Errorf("IsCreditsError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExtractAPIError(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		if got := ExtractAPIError(nil); got != nil {
			t.Errorf("ExtractAPIError(nil) = %v, want nil", got)
		}
	})

	t.Run("unrecognized status", func(t *testing.T) {
		t.Parallel()
		if got := ExtractAPIError(errors.New("internal server error")); got != nil {
			t.Errorf("ExtractAPIError = %v, want nil", got)
		}
	})

	t.Run("plain 429 message", func(t *testing.T) {
		t.Parallel()
		got := ExtractAPIError(errors.New("request failed with status 429"))
		if got == nil || got.StatusCode != 429 || got.Type != "rate_limit_error" {
			t.Errorf("ExtractAPIError = %+v", got)
		}
	})

	t.Run("402 with embedded error body", func(t *testing.T) {
		t.Parallel()
		err := errors.New(`status 402: {"message": "account out of credits", "type": "invalid_request_error", "code": "insufficient_quota"}`)
		got := ExtractAPIError(err)
		if got == nil {
			t.Fatal("expected an APIError")
		}
		if got.StatusCode != 402 {
			t.Errorf("StatusCode = %d, want 402", got.StatusCode)
		}
		if got.Message != "account out of credits" {
			t.Errorf("Message = %q", got.Message)
		}
		if got.Type != "invalid_request_error" {
			t.Errorf("Type = %q", got.Type)
		}
		if got.Code != "insufficient_quota" {
			t.Errorf("Code = %q", got.Code)
		}
	})

	t.Run("429 with malformed body keeps defaults", func(t *testing.T) {
		t.Parallel()
		got := ExtractAPIError(errors.New("status 429: {not json}"))
		if got == nil || got.StatusCode != 429 || got.Type != "rate_limit_error" {
			t.Errorf("ExtractAPIError = %+v", got)
		}
	})
}

package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRateLimited indicates the gateway rate limit was exceeded
	ErrRateLimited = errors.New("rate limited")
	// ErrCreditsExhausted indicates the gateway account is out of credits
	ErrCreditsExhausted = errors.New("credits exhausted")
)

// APIError represents an error from the completion gateway
type APIError struct {
	Message    string
	Type       string
	Code       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d, type %s): %s", e.StatusCode, e.Type, e.Message)
}

// IsRateLimitError checks if an error is an upstream rate-limit error,
// forwarded to callers as 429 ("try later")
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}

	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

// IsCreditsError checks if an error is an upstream payment-required error,
// forwarded to callers as 402 ("add funds")
func IsCreditsError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 402 || apiErr.Code == "insufficient_quota"
	}

	errStr := err.Error()
	return strings.Contains(errStr, "402") ||
		strings.Contains(errStr, "insufficient_quota") ||
		strings.Contains(errStr, "billing")
}

// ExtractAPIError extracts gateway error details from an error. The SDK
// surfaces the upstream status and often embeds the error body JSON in the
// message, so both are inspected.
func ExtractAPIError(err error) *APIError {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	var statusCode int
	switch {
	case strings.Contains(errStr, "429"):
		statusCode = 429
	case strings.Contains(errStr, "402"):
		statusCode = 402
	default:
		return nil
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    errStr,
	}
	if statusCode == 429 {
		apiErr.Type = "rate_limit_error"
	} else {
		apiErr.Type = "payment_required_error"
	}

	// Try to parse JSON error details if present
	if jsonStart := strings.Index(errStr, "{"); jsonStart != -1 {
		jsonStr := errStr[jsonStart:]
		if jsonEnd := strings.LastIndex(jsonStr, "}"); jsonEnd != -1 {
			jsonStr = jsonStr[:jsonEnd+1]
			var errorData struct {
				Message string `json:"message"`
				Type    string `json:"type"`
				Code    string `json:"code"`
			}
			if json.Unmarshal([]byte(jsonStr), &errorData) == nil {
				if errorData.Message != "" {
					apiErr.Message = errorData.Message
				}
				if errorData.Type != "" {
					apiErr.Type = errorData.Type
				}
				apiErr.Code = errorData.Code
			}
		}
	}

	return apiErr
}

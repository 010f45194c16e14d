package review

import "errors"

// ErrCodeRequired is returned when a review is requested without any code.
var ErrCodeRequired = errors.New("code is required")

// ErrGenerationFailed is the only failure a caller sees when the provider call fails.
// The provider's own error is logged, never returned.
var ErrGenerationFailed = errors.New("failed to generate code review")

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

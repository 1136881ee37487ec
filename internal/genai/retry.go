package genai

import "time"

// RetryConfig holds retry configuration for generation requests.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts per request.
	MaxAttempts int

	// BackoffBase is the initial backoff duration.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to backoff on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the maximum backoff duration.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns sensible retry defaults for generation requests.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       2 * time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        30 * time.Second,
	}
}

// backoffFor returns the wait duration before the given attempt
// (1-based; attempt 1 has no wait).
func (c RetryConfig) backoffFor(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	wait := c.BackoffBase
	for i := 2; i < attempt; i++ {
		wait = time.Duration(float64(wait) * c.BackoffMultiplier)
	}
	if wait > c.MaxBackoff {
		wait = c.MaxBackoff
	}
	return wait
}

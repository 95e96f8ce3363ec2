package resilience

import "time"

// CircuitBreakerConfig tunes one provider's breaker. Zero fields take the defaults.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

var defaultBreaker = CircuitBreakerConfig{
	Enabled:          true,
	FailureThreshold: 5,
	OpenTimeout:      30 * time.Second,
	HalfOpenMaxReq:   1,
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return defaultBreaker
}

// Normalized fills unset or invalid fields from the defaults. Enabled is kept as is.
func (c CircuitBreakerConfig) Normalized() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultBreaker.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultBreaker.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultBreaker.HalfOpenMaxReq
	}
	return c
}

// RetryConfig drives provider request retries with linear backoff, capped at MaxBackoff when set.
type RetryConfig struct {
	MaxAttempts int
	Backoff     time.Duration
	MaxBackoff  time.Duration
}

func (c RetryConfig) Normalized() RetryConfig {
	c.MaxAttempts = max(c.MaxAttempts, 1)
	c.Backoff = max(c.Backoff, 0)
	c.MaxBackoff = max(c.MaxBackoff, 0)
	return c
}

// Delay returns the wait before the given 1-based retry attempt.
func (c RetryConfig) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	d := time.Duration(attempt) * c.Backoff
	if c.MaxBackoff > 0 && d > c.MaxBackoff {
		return c.MaxBackoff
	}
	return d
}

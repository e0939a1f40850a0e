package ratelimit

import "context"

// RateLimiter bounds how often a single caller may submit the contact form.
// Keys identify the caller, normally by client IP.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

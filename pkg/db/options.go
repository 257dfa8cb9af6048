package db

import "time"

// Option configures the connection pool.
type Option func(*options)

type options struct {
	maxConns          int32
	minConns          int32
	healthCheckPeriod time.Duration
	maxConnIdleTime   time.Duration
	maxConnLifetime   time.Duration
	retryAttempts     int
	retryInterval     time.Duration
}

func defaultOptions() *options {
	return &options{
		maxConns:          10,
		minConns:          2,
		healthCheckPeriod: time.Minute,
		maxConnIdleTime:   10 * time.Minute,
		maxConnLifetime:   30 * time.Minute,
		retryAttempts:     3,
		retryInterval:     5 * time.Second,
	}
}

// WithMaxConns sets the pool size limit.
func WithMaxConns(n int32) Option {
	return func(o *options) {
		o.maxConns = n
	}
}

// WithMinConns sets the number of idle connections kept open.
func WithMinConns(n int32) Option {
	return func(o *options) {
		o.minConns = n
	}
}

// WithConnLifetime sets max idle time and max lifetime of pooled connections.
func WithConnLifetime(idle, lifetime time.Duration) Option {
	return func(o *options) {
		o.maxConnIdleTime = idle
		o.maxConnLifetime = lifetime
	}
}

// WithRetry configures startup connection retries.
// Attempt i waits i*interval before the next one.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

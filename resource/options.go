package resource

import (
	"log/slog"

	engine "github.com/grimsleynate/ToD-Game-Engine"
)

// Option configures a Cache during creation.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	metrics     Metrics
	releaseHook func(key string, err error)
	hasher      Hasher
}

func defaultOptions() options {
	return options{
		logger:  engine.Logger(),
		metrics: NopMetrics(),
		hasher:  StringHasher,
	}
}

// WithLogger sets the logger used by the cache.
// By default the cache logs through engine.Logger(), which is silent
// until engine.SetLogger is called. Passing nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics installs a metrics sink. Passing nil keeps the nop sink.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithReleaseHook installs a callback invoked for every failed release.
// The hook runs synchronously on the goroutine performing the release and
// must not call back into the cache.
func WithReleaseHook(fn func(key string, err error)) Option {
	return func(o *options) {
		o.releaseHook = fn
	}
}

// WithHasher replaces the shard selection hash. Passing nil keeps FNV-1a.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		if h != nil {
			o.hasher = h
		}
	}
}

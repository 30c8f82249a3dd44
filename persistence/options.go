package persistence

import (
	"github.com/hupe1980/compactvec"
	"golang.org/x/time/rate"
)

// DefaultConcurrency bounds SaveAll/LoadAll when WithConcurrency is not set.
const DefaultConcurrency = 4

type options struct {
	compression Compression
	logger      *compactvec.Logger
	metrics     compactvec.MetricsCollector
	concurrency int
	limiter     *rate.Limiter
	decodeOpts  []compactvec.Option
}

// Option configures persistence operations.
type Option func(*options)

func defaultOptions() options {
	return options{
		compression: CompressionLZ4,
		logger:      compactvec.NoopLogger(),
		metrics:     compactvec.NoopMetricsCollector{},
		concurrency: DefaultConcurrency,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithCompression selects the payload codec used when encoding.
// Decoding always uses the codec recorded in the header.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger sets the logger for save/load events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *compactvec.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = compactvec.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector for save/load events.
//
// If nil is passed, metrics are disabled.
func WithMetrics(m compactvec.MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = compactvec.NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithConcurrency bounds the number of in-flight blob operations of
// SaveAll and LoadAll. Values < 1 mean DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultConcurrency
		}
		o.concurrency = n
	}
}

// WithRateLimit paces SaveAll and LoadAll to at most r blob operations per
// second with the given burst. Useful to stay under object store request
// quotas.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(o *options) {
		o.limiter = rate.NewLimiter(r, max(burst, 1))
	}
}

// WithDecodeOptions forwards options to compactvec.ReadFrom when decoding.
func WithDecodeOptions(opts ...compactvec.Option) Option {
	return func(o *options) {
		o.decodeOpts = append(o.decodeOpts, opts...)
	}
}

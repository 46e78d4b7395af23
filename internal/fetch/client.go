package fetch

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// Retry defaults
const (
	DefaultRetryMax     = 2
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 5 * time.Second
	DefaultTimeout      = 5 * time.Minute
)

// Option configures a Service.
type Option func(*retryablehttp.Client)

// WithRetryMax sets how many times a failed request is retried.
func WithRetryMax(n int) Option {
	return func(c *retryablehttp.Client) {
		if n < 0 {
			n = 0
		}
		c.RetryMax = n
	}
}

// WithRetryWait sets the backoff bounds between retries.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *retryablehttp.Client) {
		c.RetryWaitMin = min
		c.RetryWaitMax = max
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *retryablehttp.Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

func newRetryClient(log *logrus.Entry, opts ...Option) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = DefaultRetryMax
	c.RetryWaitMin = DefaultRetryWaitMin
	c.RetryWaitMax = DefaultRetryWaitMax
	c.HTTPClient.Timeout = DefaultTimeout
	c.Logger = leveledLogger{log}
	// Hand the last response back so the caller reports its status code.
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger.
type leveledLogger struct {
	entry *logrus.Entry
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

func (l leveledLogger) with(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return l.entry.WithFields(fields)
}

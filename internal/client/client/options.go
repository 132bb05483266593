package client

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/posclient/internal/client/metrics"
	"github.com/dmitrijs2005/posclient/internal/client/notify"
	"github.com/dmitrijs2005/posclient/internal/logging"
	"golang.org/x/time/rate"
)

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithDebug turns on the per-request trace.
func WithDebug(debug bool) Option {
	return func(c *HTTPClient) { c.debug = debug }
}

// WithTokenSource is where SetAuthHeader("") looks the token up.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithRateLimit caps outbound requests per second; rps <= 0 means no limit.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *HTTPClient) { c.metrics = r }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *HTTPClient) { c.notifier = n }
}

// WithTimeout bounds every request; 0 leaves it to ctx and the http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

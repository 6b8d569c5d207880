package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Collector receives reports about calls that exhausted their retry budget,
// tagged with the originating operation name and attempt count.
type Collector interface {
	ReportFailure(operation string, attempts int, err error)
}

type logCollector struct {
	logger *zap.SugaredLogger
}

func (c *logCollector) ReportFailure(operation string, attempts int, err error) {
	c.logger.Errorw("upstream call exhausted retries", "operation", operation, "attempts", attempts, "error", err)
}

// NewLogCollector reports retry exhaustion through the application logger.
func NewLogCollector(logger *zap.SugaredLogger) Collector {
	return &logCollector{logger: logger}
}

type Config struct {
	BaseURL       string
	AccessToken   string
	APIVersion    string
	Timeout       time.Duration
	MaxAttempts   int
	BackoffBase   time.Duration
	BackoffJitter time.Duration
}

// Client talks to the commerce platform API. Every call goes through do,
// which retries transient failures with exponential backoff plus jitter and
// validates the response shape before handing it to the caller.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	token         string
	version       string
	maxAttempts   int
	backoffBase   time.Duration
	backoffJitter time.Duration
	collector     Collector
	logger        *zap.SugaredLogger
}

func New(cfg Config, collector Collector, logger *zap.SugaredLogger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 3
	}
	backoffBase := cfg.BackoffBase
	if backoffBase == 0 {
		backoffBase = time.Second
	}
	backoffJitter := cfg.BackoffJitter
	if backoffJitter == 0 {
		backoffJitter = time.Second
	}

	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		baseURL:       cfg.BaseURL,
		token:         cfg.AccessToken,
		version:       cfg.APIVersion,
		maxAttempts:   maxAttempts,
		backoffBase:   backoffBase,
		backoffJitter: backoffJitter,
		collector:     collector,
		logger:        logger,
	}, nil
}

// requestFactory builds a fresh request for each attempt so bodies can be
// re-read on retry.
type requestFactory func(ctx context.Context) (*http.Request, error)

// do runs one upstream call with up to maxAttempts attempts. 4xx responses
// are terminal; 5xx responses and transport errors are retried with
// base * 2^(attempt-1) backoff plus 0..jitter. When expectedFields is given,
// each field must exist at the top level of the parsed response, otherwise
// the call fails with a ValidationError and is not retried.
func (c *Client) do(ctx context.Context, operation string, build requestFactory, expectedFields ...string) (map[string]interface{}, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.backoffBase<<(attempt-2) + time.Duration(rand.Int63n(int64(c.backoffJitter)))
			c.logger.Warnw("retrying upstream call", "operation", operation, "attempt", attempt, "delay", delay, "error", lastErr)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := build(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build request for %s: %w", operation, err)
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")
		if c.version != "" {
			req.Header.Set("Square-Version", c.version)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &NetworkError{Operation: operation, Err: err}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = &NetworkError{Operation: operation, Err: err}
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = &ServerError{Operation: operation, Status: resp.StatusCode}
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, &ClientError{Operation: operation, Status: resp.StatusCode}
		}

		var parsed map[string]interface{}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, &ValidationError{Operation: operation, Reason: "unparseable body"}
		}

		if missing := missingFields(parsed, expectedFields); len(missing) > 0 {
			return nil, &ValidationError{Operation: operation, Missing: missing}
		}

		return parsed, nil
	}

	c.collector.ReportFailure(operation, c.maxAttempts, lastErr)

	return nil, fmt.Errorf("%s failed after %d attempts: %w", operation, c.maxAttempts, lastErr)
}

func missingFields(parsed map[string]interface{}, expected []string) []string {
	var missing []string
	for _, field := range expected {
		if _, ok := parsed[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// decodeField re-marshals one top-level field of a loosely parsed response
// into a typed destination.
func decodeField(operation string, parsed map[string]interface{}, field string, dest interface{}) error {
	raw, ok := parsed[field]
	if !ok {
		// Tolerated: endpoints omit the field entirely when the result set is
		// empty.
		return nil
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to re-encode %s.%s: %w", operation, field, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return &ValidationError{Operation: operation, Reason: fmt.Sprintf("field %s has unexpected shape", field)}
	}

	return nil
}

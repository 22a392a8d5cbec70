// Package submit posts assembled documents to a remote endpoint.
package submit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// StatusCreated is the only status treated as success.
const StatusCreated = http.StatusCreated

// Defaults for a zero Client.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4
	maxBodyBytes       = 64 << 10
)

// Doer is the subset of *http.Client used for dispatch.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends payloads concurrently. Retries apply to transport errors only;
// a response with any status code is final.
type Client struct {
	HTTP          Doer
	Concurrency   int
	Retries       int
	Timeout       time.Duration
	RetryInterval time.Duration
}

// Result is the outcome of one payload submission.
type Result struct {
	Index      int
	RequestID  string
	StatusCode int
	Body       string
	Err        error
}

// OK reports whether the endpoint accepted the payload.
func (r Result) OK() bool {
	return r.Err == nil && r.StatusCode == StatusCreated
}

// Send posts every payload to endpoint and returns one Result per payload in
// input order. A failed submission never cancels the others.
func (c *Client) Send(ctx context.Context, endpoint string, payloads []string) []Result {
	results := make([]Result, len(payloads))
	limit := c.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, p := range payloads {
		i, p := i, p
		g.Go(func() error {
			results[i] = c.send(ctx, endpoint, i, p)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (c *Client) send(ctx context.Context, endpoint string, index int, payload string) Result {
	res := Result{Index: index, RequestID: uuid.NewString()}
	log := logrus.WithFields(logrus.Fields{
		"component":  "submit",
		"endpoint":   endpoint,
		"index":      index,
		"request_id": res.RequestID,
	})

	op := func() error {
		status, body, readErr, err := c.post(ctx, endpoint, res.RequestID, payload)
		if err != nil {
			log.WithError(err).Debug("submission attempt failed")
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		if readErr != nil {
			log.WithError(readErr).WithField("status", status).Warn("could not read response body")
		}
		res.StatusCode = status
		res.Body = body
		return nil
	}

	if err := backoff.Retry(op, c.policy(ctx)); err != nil {
		res.Err = err
		log.WithError(err).Warn("submission failed")
		return res
	}
	if res.OK() {
		log.WithField("status", res.StatusCode).Info("submission accepted")
	} else {
		log.WithField("status", res.StatusCode).Warn("submission rejected")
	}
	return res
}

// post sends one request. err is set only when no response was received; once
// the endpoint has answered, a failure to read the body is returned as readErr
// and the status stands.
func (c *Client) post(ctx context.Context, endpoint, requestID, payload string) (status int, body string, readErr, err error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload))
	if err != nil {
		return 0, "", nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-type", "application/json")
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.doer().Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if readErr != nil {
		readErr = fmt.Errorf("read response: %w", readErr)
	}
	return resp.StatusCode, string(b), readErr, nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	if c.RetryInterval > 0 {
		bo.InitialInterval = c.RetryInterval
	}
	retries := c.Retries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries)), ctx)
}

func (c *Client) doer() Doer {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

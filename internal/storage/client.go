package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

// Client talks to the object storage service over HTTP. Uploads retry
// with exponential backoff and surface one error after the retry budget
// is exhausted.
type Client struct {
	httpClient *resty.Client
	maxRetries int
	retryDelay time.Duration
	log        *zap.Logger
}

type ClientOpts struct {
	BaseURL    string
	Token      string
	MaxRetries int
	RetryDelay time.Duration
}

func NewClient(opts ClientOpts, log *zap.Logger) *Client {
	c := &Client{
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		log:        log,
	}
	if c.maxRetries <= 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.retryDelay <= 0 {
		c.retryDelay = defaultRetryDelay
	}
	c.httpClient = resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(30 * time.Second)
	if opts.Token != "" {
		c.httpClient.SetAuthToken(opts.Token)
	}
	return c
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload stores one object and returns its public URL. If progress is
// non-nil it receives a finite sequence of percentages and is closed
// when the upload terminates, in success or failure. Retries double the
// delay between attempts.
func (c *Client) Upload(ctx context.Context, path, contentType string, data []byte, meta map[string]string, progress chan<- int) (string, error) {
	if progress != nil {
		defer close(progress)
	}

	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("retrying upload",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		url, err := c.uploadOnce(ctx, path, contentType, data, meta, progress)
		if err == nil {
			return url, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("upload %s failed after %d attempts: %w", path, c.maxRetries, lastErr)
}

func (c *Client) uploadOnce(ctx context.Context, path, contentType string, data []byte, meta map[string]string, progress chan<- int) (string, error) {
	report(progress, 0)

	result := &uploadResponse{}
	req := c.httpClient.NewRequest().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(bytes.NewReader(data)).
		SetContentLength(true).
		SetResult(result)
	for k, v := range meta {
		req.SetHeader("X-Meta-"+k, v)
	}

	resp, err := req.Put("/objects/" + path)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage returned %d: %s", resp.StatusCode(), resp.String())
	}

	report(progress, 100)
	if result.URL == "" {
		return c.httpClient.BaseURL + "/objects/" + path, nil
	}
	return result.URL, nil
}

// DeleteObject removes an object. Missing objects are not an error.
func (c *Client) DeleteObject(ctx context.Context, path string) error {
	resp, err := c.httpClient.NewRequest().
		SetContext(ctx).
		Delete("/objects/" + path)
	if err != nil {
		return err
	}
	if resp.IsError() && resp.StatusCode() != 404 {
		return fmt.Errorf("storage returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// report sends without blocking; a slow consumer drops updates rather
// than stalling the upload.
func report(progress chan<- int, pct int) {
	if progress == nil {
		return
	}
	select {
	case progress <- pct:
	default:
	}
}

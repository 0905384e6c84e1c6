// Package queue publishes processing jobs to an HTTP job queue speaking the
// QStash wire contract: at-least-once delivery, deduplication by caller-chosen
// id, bounded retries and a bounded end-to-end timeout.
package queue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	// DefaultRetries is the queue-side retry budget per job.
	DefaultRetries = 3
	// DefaultJobTimeout bounds one delivery attempt end to end, independent of
	// the caller's request.
	DefaultJobTimeout = 300 * time.Second

	publishTimeout = 15 * time.Second
)

// Client publishes messages to the queue's HTTP publish endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New builds a publish client. baseURL is the queue endpoint root, e.g.
// https://qstash.upstash.io.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: publishTimeout},
	}
}

// Publish submits one JSON job for delivery to destinationURL. Identical
// deduplication ids collapse to a single in-flight job inside the queue's
// dedupe window. A non-2xx response means the job was not enqueued.
func (c *Client) Publish(ctx context.Context, destinationURL, dedupKey string, body []byte) error {
	url := fmt.Sprintf("%s/v2/publish/%s", c.baseURL, destinationURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build publish request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Upstash-Deduplication-Id", dedupKey)
	req.Header.Set("Upstash-Retries", strconv.Itoa(DefaultRetries))
	req.Header.Set("Upstash-Timeout", fmt.Sprintf("%ds", int(DefaultJobTimeout.Seconds())))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("queue publish failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("queue publish returned status %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}

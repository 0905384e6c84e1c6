package queue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPublishSendsDedupeAndRetryHeaders(t *testing.T) {
	var gotPath, gotAuth, gotDedup, gotRetries, gotTimeout, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		gotRetries = r.Header.Get("Upstash-Retries")
		gotTimeout = r.Header.Get("Upstash-Timeout")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := New(server.URL, "test-token")
	err := c.Publish(context.Background(), "https://worker.example/process", "dedup-key-1", []byte(`{"wardrobe_video_id":"v1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v2/publish/https://worker.example/process" {
		t.Fatalf("unexpected publish path: %q", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotDedup != "dedup-key-1" {
		t.Fatalf("unexpected dedup header: %q", gotDedup)
	}
	if gotRetries != "3" || gotTimeout != "300s" {
		t.Fatalf("unexpected retry/timeout headers: %q %q", gotRetries, gotTimeout)
	}
	if gotBody != `{"wardrobe_video_id":"v1"}` {
		t.Fatalf("unexpected body: %q", gotBody)
	}
}

func TestPublishTreatsNonSuccessAsNotEnqueued(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New(server.URL, "test-token")
	err := c.Publish(context.Background(), "https://worker.example/process", "k", []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestPublishConnectionErrors(t *testing.T) {
	c := New("http://127.0.0.1:1", "test-token")
	if err := c.Publish(context.Background(), "https://worker.example/process", "k", []byte(`{}`)); err == nil {
		t.Fatal("expected connection error")
	}
}

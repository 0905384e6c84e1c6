package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramonsanvesti/vesti-founder-sub001/models"
)

type transitionCall struct {
	from []string
	to   string
}

type stubVideoStore struct {
	mu          sync.Mutex
	video       models.WardrobeVideo
	getErr      error
	matched     bool
	transitions []transitionCall
	transErr    error
}

func (s *stubVideoStore) Get(ctx context.Context, tenantID, videoID string) (models.WardrobeVideo, error) {
	if s.getErr != nil {
		return models.WardrobeVideo{}, s.getErr
	}
	return s.video, nil
}

func (s *stubVideoStore) TransitionStatus(ctx context.Context, tenantID, videoID string, from []string, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transErr != nil {
		return false, s.transErr
	}
	s.transitions = append(s.transitions, transitionCall{from: from, to: to})
	return s.matched, nil
}

type publishCall struct {
	destination string
	dedupKey    string
	body        []byte
}

type stubPublisher struct {
	mu    sync.Mutex
	calls []publishCall
	err   error
}

func (p *stubPublisher) Publish(ctx context.Context, destinationURL, dedupKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, publishCall{destination: destinationURL, dedupKey: dedupKey, body: body})
	return p.err
}

func testVideo(status string) models.WardrobeVideo {
	return models.WardrobeVideo{
		ID:       primitive.NewObjectID(),
		UserID:   "founder-sub001",
		VideoURL: "https://cdn.example/video.mp4",
		Status:   status,
	}
}

var testTenant = TenantContext{UserID: "founder-sub001"}

func TestProcessUploadedTransitionsAndDispatches(t *testing.T) {
	store := &stubVideoStore{video: testVideo(models.VideoStatusUploaded), matched: true}
	pub := &stubPublisher{}
	orc := &Orchestrator{Videos: store, Queue: pub, WorkerURL: "https://worker.example/process"}

	result, err := orc.ProcessVideo(context.Background(), testTenant, store.video.ID.Hex(), ProcessOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != models.VideoStatusProcessing || !result.Dispatched {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(store.transitions) != 1 {
		t.Fatalf("expected one transition, got %d", len(store.transitions))
	}
	tr := store.transitions[0]
	if tr.to != models.VideoStatusProcessing {
		t.Fatalf("expected transition to processing, got %s", tr.to)
	}
	if len(tr.from) != 2 || tr.from[0] != models.VideoStatusUploaded || tr.from[1] != models.VideoStatusFailed {
		t.Fatalf("unexpected transition precondition: %v", tr.from)
	}

	if len(pub.calls) != 1 {
		t.Fatalf("expected one publish, got %d", len(pub.calls))
	}
	call := pub.calls[0]
	if call.destination != "https://worker.example/process" {
		t.Fatalf("unexpected destination: %s", call.destination)
	}
	if want := DedupKey(store.video.ID.Hex(), ProcessOptions{}.Clamped()); call.dedupKey != want {
		t.Fatalf("expected dedup key %s, got %s", want, call.dedupKey)
	}

	var payload JobPayload
	if err := json.Unmarshal(call.body, &payload); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if payload.WardrobeVideoID != store.video.ID.Hex() {
		t.Fatalf("unexpected payload video id: %s", payload.WardrobeVideoID)
	}
	if payload.SampleEverySeconds != DefaultSampleEverySeconds ||
		payload.MaxFrames != DefaultMaxFrames ||
		payload.MaxWidth != DefaultMaxWidth ||
		payload.MaxCandidates != DefaultMaxCandidates {
		t.Fatalf("expected default sampling parameters, got %+v", payload)
	}
}

func TestProcessFailedIsRetryable(t *testing.T) {
	store := &stubVideoStore{video: testVideo(models.VideoStatusFailed), matched: true}
	pub := &stubPublisher{}
	orc := &Orchestrator{Videos: store, Queue: pub, WorkerURL: "https://worker.example/process"}

	result, err := orc.ProcessVideo(context.Background(), testTenant, store.video.ID.Hex(), ProcessOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != models.VideoStatusProcessing || len(pub.calls) != 1 {
		t.Fatalf("expected retry dispatch, got %+v with %d publishes", result, len(pub.calls))
	}
}

func TestProcessProcessedIsNoOpWithoutDispatch(t *testing.T) {
	store := &stubVideoStore{video: testVideo(models.VideoStatusProcessed)}
	pub := &stubPublisher{}
	orc := &Orchestrator{Videos: store, Queue: pub, WorkerURL: "https://worker.example/process"}

	result, err := orc.ProcessVideo(context.Background(), testTenant, store.video.ID.Hex(), ProcessOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != models.VideoStatusProcessed || result.Dispatched {
		t.Fatalf("expected processed no-op, got %+v", result)
	}
	if len(store.transitions) != 0 || len(pub.calls) != 0 {
		t.Fatal("processed video must not transition or dispatch")
	}
}

func TestProcessWhileProcessingRedispatchesWithoutTransition(t *testing.T) {
	store := &stubVideoStore{video: testVideo(models.VideoStatusProcessing)}
	pub := &stubPublisher{}
	orc := &Orchestrator{Videos: store, Queue: pub, WorkerURL: "https://worker.example/process"}

	result, err := orc.ProcessVideo(context.Background(), testTenant, store.video.ID.Hex(), ProcessOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != models.VideoStatusProcessing || !result.Dispatched {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(store.transitions) != 0 {
		t.Fatal("processing video must not be transitioned again")
	}
	if len(pub.calls) != 1 {
		t.Fatalf("expected idempotent re-dispatch, got %d publishes", len(pub.calls))
	}
}

func TestProcessMissedPreconditionTreatedAsProcessing(t *testing.T) {
	// the conditional update lost the race; the video counts as processing and
	// the dispatch still happens
	store := &stubVideoStore{video: testVideo(models.VideoStatusUploaded), matched: false}
	pub := &stubPublisher{}
	orc := &Orchestrator{Videos: store, Queue: pub, WorkerURL: "https://worker.example/process"}

	result, err := orc.ProcessVideo(context.Background(), testTenant, store.video.ID.Hex(), ProcessOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != models.VideoStatusProcessing || len(pub.calls) != 1 {
		t.Fatalf("expected dispatch despite missed precondition, got %+v", result)
	}
}

func TestProcessNotFoundPropagates(t *testing.T) {
	store := &stubVideoStore{getErr: models.ErrNotFound}
	orc := &Orchestrator{Videos: store, Queue: &stubPublisher{}}

	_, err := orc.ProcessVideo(context.Background(), testTenant, primitive.NewObjectID().Hex(), ProcessOptions{})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessStoreWriteFailureAborts(t *testing.T) {
	store := &stubVideoStore{video: testVideo(models.VideoStatusUploaded), transErr: errors.New("write failed")}
	pub := &stubPublisher{}
	orc := &Orchestrator{Videos: store, Queue: pub}

	if _, err := orc.ProcessVideo(context.Background(), testTenant, store.video.ID.Hex(), ProcessOptions{}); err == nil {
		t.Fatal("expected store write failure to abort")
	}
	if len(pub.calls) != 0 {
		t.Fatal("must not dispatch after a failed status write")
	}
}

func TestQueueFailureFallsBackToDirectWorkerCall(t *testing.T) {
	received := make(chan JobPayload, 1)
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload JobPayload
		_ = json.Unmarshal(body, &payload)
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer worker.Close()

	store := &stubVideoStore{video: testVideo(models.VideoStatusUploaded), matched: true}
	orc := &Orchestrator{
		Videos:    store,
		Queue:     &stubPublisher{err: errors.New("queue down")},
		WorkerURL: worker.URL,
		Logf:      func(format string, args ...interface{}) {},
	}

	result, err := orc.ProcessVideo(context.Background(), testTenant, store.video.ID.Hex(), ProcessOptions{MaxFrames: 24})
	if err != nil {
		t.Fatalf("queue failure must not surface to the caller: %v", err)
	}
	if !result.Dispatched {
		t.Fatalf("expected dispatch, got %+v", result)
	}

	select {
	case payload := <-received:
		if payload.WardrobeVideoID != store.video.ID.Hex() || payload.MaxFrames != 24 {
			t.Fatalf("unexpected fallback payload: %+v", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("direct worker call never arrived")
	}
}

func TestNoQueueDispatchesDirectly(t *testing.T) {
	received := make(chan struct{}, 1)
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
		w.WriteHeader(http.StatusOK)
	}))
	defer worker.Close()

	store := &stubVideoStore{video: testVideo(models.VideoStatusUploaded), matched: true}
	orc := &Orchestrator{Videos: store, WorkerURL: worker.URL}

	if _, err := orc.ProcessVideo(context.Background(), testTenant, store.video.ID.Hex(), ProcessOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("direct worker call never arrived")
	}
}

func TestDedupKeyIsPureAndParameterSensitive(t *testing.T) {
	base := ProcessOptions{SampleEverySeconds: 2, MaxFrames: 60, MaxWidth: 1280, MaxCandidates: 12}
	if DedupKey("v1", base) != DedupKey("v1", base) {
		t.Fatal("identical tuples must produce identical keys")
	}

	variants := []ProcessOptions{
		{SampleEverySeconds: 3, MaxFrames: 60, MaxWidth: 1280, MaxCandidates: 12},
		{SampleEverySeconds: 2, MaxFrames: 61, MaxWidth: 1280, MaxCandidates: 12},
		{SampleEverySeconds: 2, MaxFrames: 60, MaxWidth: 1281, MaxCandidates: 12},
		{SampleEverySeconds: 2, MaxFrames: 60, MaxWidth: 1280, MaxCandidates: 13},
	}
	seen := map[string]bool{DedupKey("v1", base): true}
	for _, v := range variants {
		key := DedupKey("v1", v)
		if seen[key] {
			t.Fatalf("changing a parameter must change the key: %s", key)
		}
		seen[key] = true
	}
	if seen[DedupKey("v2", base)] {
		t.Fatal("changing the video id must change the key")
	}
}

func TestProcessOptionsClamping(t *testing.T) {
	defaults := ProcessOptions{}.Clamped()
	want := ProcessOptions{
		SampleEverySeconds: DefaultSampleEverySeconds,
		MaxFrames:          DefaultMaxFrames,
		MaxWidth:           DefaultMaxWidth,
		MaxCandidates:      DefaultMaxCandidates,
	}
	if defaults != want {
		t.Fatalf("expected defaults %+v, got %+v", want, defaults)
	}

	low := ProcessOptions{SampleEverySeconds: -1, MaxFrames: 1, MaxWidth: 100, MaxCandidates: -3}.Clamped()
	if low.SampleEverySeconds != MinSampleEverySeconds || low.MaxFrames != MinMaxFrames ||
		low.MaxWidth != MinMaxWidth || low.MaxCandidates != MinMaxCandidates {
		t.Fatalf("expected lower bounds, got %+v", low)
	}

	high := ProcessOptions{SampleEverySeconds: 99, MaxFrames: 999, MaxWidth: 9999, MaxCandidates: 99}.Clamped()
	if high.SampleEverySeconds != MaxSampleEverySeconds || high.MaxFrames != MaxMaxFrames ||
		high.MaxWidth != MaxMaxWidth || high.MaxCandidates != MaxMaxCandidates {
		t.Fatalf("expected upper bounds, got %+v", high)
	}
}

func TestAutoProcessSkipsNonUploadedVideo(t *testing.T) {
	store := &stubVideoStore{video: testVideo(models.VideoStatusProcessing)}
	pub := &stubPublisher{}
	orc := &Orchestrator{Videos: store, Queue: pub, WorkerURL: "https://worker.example/process"}

	orc.AutoProcess(testTenant, store.video.ID.Hex())

	if len(pub.calls) != 0 || len(store.transitions) != 0 {
		t.Fatal("auto-process must not touch a video that is already processing")
	}
}

func TestAutoProcessDispatchesUploadedVideo(t *testing.T) {
	store := &stubVideoStore{video: testVideo(models.VideoStatusUploaded), matched: true}
	pub := &stubPublisher{}
	orc := &Orchestrator{Videos: store, Queue: pub, WorkerURL: "https://worker.example/process"}

	orc.AutoProcess(testTenant, store.video.ID.Hex())

	if len(pub.calls) != 1 {
		t.Fatalf("expected auto-process dispatch, got %d publishes", len(pub.calls))
	}
}

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ramonsanvesti/vesti-founder-sub001/models"
)

// Sampling parameter bounds and defaults. These are part of the contract with
// the processing worker and must not drift.
const (
	MinSampleEverySeconds = 1
	MaxSampleEverySeconds = 10
	MinMaxFrames          = 6
	MaxMaxFrames          = 120
	MinMaxWidth           = 480
	MaxMaxWidth           = 1920
	MinMaxCandidates      = 1
	MaxMaxCandidates      = 25

	DefaultSampleEverySeconds = 2
	DefaultMaxFrames          = 60
	DefaultMaxWidth           = 1280
	DefaultMaxCandidates      = 12

	directCallTimeout = 300 * time.Second
)

// ProcessOptions are the caller-tunable sampling parameters. Zero values take
// the defaults; everything is clamped into its documented bounds.
type ProcessOptions struct {
	SampleEverySeconds int `json:"sample_every_seconds"`
	MaxFrames          int `json:"max_frames"`
	MaxWidth           int `json:"max_width"`
	MaxCandidates      int `json:"max_candidates"`
}

// Clamped fills defaults and bounds every parameter.
func (o ProcessOptions) Clamped() ProcessOptions {
	return ProcessOptions{
		SampleEverySeconds: clampInt(o.SampleEverySeconds, DefaultSampleEverySeconds, MinSampleEverySeconds, MaxSampleEverySeconds),
		MaxFrames:          clampInt(o.MaxFrames, DefaultMaxFrames, MinMaxFrames, MaxMaxFrames),
		MaxWidth:           clampInt(o.MaxWidth, DefaultMaxWidth, MinMaxWidth, MaxMaxWidth),
		MaxCandidates:      clampInt(o.MaxCandidates, DefaultMaxCandidates, MinMaxCandidates, MaxMaxCandidates),
	}
}

func clampInt(v, def, min, max int) int {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// JobPayload is the wire body delivered to the processing worker. Field names
// are part of the worker contract.
type JobPayload struct {
	WardrobeVideoID    string `json:"wardrobe_video_id"`
	SampleEverySeconds int    `json:"sample_every_seconds"`
	MaxFrames          int    `json:"max_frames"`
	MaxWidth           int    `json:"max_width"`
	MaxCandidates      int    `json:"max_candidates"`
}

// DedupKey derives the queue deduplication id from the video id and every
// bounded parameter: identical requests collapse to one in-flight job, while
// changing any parameter forces a fresh job so a caller can re-run with
// different sampling.
func DedupKey(videoID string, opts ProcessOptions) string {
	return fmt.Sprintf("wardrobe-process:%s:s%d:f%d:w%d:c%d",
		videoID, opts.SampleEverySeconds, opts.MaxFrames, opts.MaxWidth, opts.MaxCandidates)
}

// ProcessResult reports the outcome of a process request.
type ProcessResult struct {
	Status     string `json:"status"`
	Dispatched bool   `json:"dispatched"`
	DedupKey   string `json:"dedup_key,omitempty"`
}

// Orchestrator owns the video status state machine and job dispatch. With no
// Queue configured it falls back to a detached best-effort call straight to
// the worker; that call's errors go to Logf, never to the caller.
type Orchestrator struct {
	Videos    VideoStore
	Queue     Publisher // nil when the queue is not configured
	WorkerURL string

	HTTPClient *http.Client
	Logf       func(format string, args ...interface{})
}

// ProcessVideo runs one process request through the state machine:
//   - processed: success no-op, nothing dispatched
//   - uploaded/failed: conditional update to processing, then dispatch
//   - processing: no status change, dispatch anyway (the dedup key makes the
//     duplicate collapse inside the queue's window)
//
// The conditional update is the only linearization point; when its
// precondition misses the row is treated as already processing, which avoids a
// double-transition race without a distributed lock.
func (orc *Orchestrator) ProcessVideo(ctx context.Context, tenant TenantContext, videoID string, opts ProcessOptions) (ProcessResult, error) {
	video, err := orc.Videos.Get(ctx, tenant.UserID, videoID)
	if err != nil {
		return ProcessResult{}, err
	}

	if video.Status == models.VideoStatusProcessed {
		return ProcessResult{Status: models.VideoStatusProcessed}, nil
	}

	if video.Status == models.VideoStatusUploaded || video.Status == models.VideoStatusFailed {
		from := []string{models.VideoStatusUploaded, models.VideoStatusFailed}
		if _, err := orc.Videos.TransitionStatus(ctx, tenant.UserID, videoID, from, models.VideoStatusProcessing); err != nil {
			return ProcessResult{}, err
		}
		// A missed precondition means a concurrent request already flipped the
		// row; either way the video is processing now.
	}

	opts = opts.Clamped()
	key := DedupKey(videoID, opts)
	orc.dispatch(ctx, videoID, opts, key)

	return ProcessResult{
		Status:     models.VideoStatusProcessing,
		Dispatched: true,
		DedupKey:   key,
	}, nil
}

// AutoProcess is the fire-and-forget dispatch right after row creation. It
// re-checks the status first so it never races a video another request already
// picked up, and it swallows every error: enqueue failure must never surface
// into the synchronous create response.
func (orc *Orchestrator) AutoProcess(tenant TenantContext, videoID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	video, err := orc.Videos.Get(ctx, tenant.UserID, videoID)
	if err != nil {
		orc.logf("auto-process: fetch video %s: %v", videoID, err)
		return
	}
	if video.Status != models.VideoStatusUploaded {
		return
	}
	if _, err := orc.ProcessVideo(ctx, tenant, videoID, ProcessOptions{}); err != nil {
		orc.logf("auto-process: video %s: %v", videoID, err)
	}
}

func (orc *Orchestrator) dispatch(ctx context.Context, videoID string, opts ProcessOptions, dedupKey string) {
	payload := JobPayload{
		WardrobeVideoID:    videoID,
		SampleEverySeconds: opts.SampleEverySeconds,
		MaxFrames:          opts.MaxFrames,
		MaxWidth:           opts.MaxWidth,
		MaxCandidates:      opts.MaxCandidates,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		orc.logf("dispatch: marshal job for video %s: %v", videoID, err)
		return
	}

	if orc.Queue != nil {
		err := orc.Queue.Publish(ctx, orc.WorkerURL, dedupKey, body)
		if err == nil {
			return
		}
		orc.logf("dispatch: queue publish for video %s: %v, falling back to direct call", videoID, err)
	}

	// Best-effort direct call. Detached from the caller's request on purpose:
	// the API is fire-and-poll, so the response returns while the worker runs.
	go orc.callWorker(videoID, body)
}

func (orc *Orchestrator) callWorker(videoID string, body []byte) {
	if orc.WorkerURL == "" {
		orc.logf("dispatch: no worker URL configured, video %s not dispatched", videoID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), directCallTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, orc.WorkerURL, bytes.NewReader(body))
	if err != nil {
		orc.logf("dispatch: build worker request for video %s: %v", videoID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := orc.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		orc.logf("dispatch: direct worker call for video %s: %v", videoID, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		orc.logf("dispatch: worker returned status %d for video %s", resp.StatusCode, videoID)
	}
}

func (orc *Orchestrator) logf(format string, args ...interface{}) {
	if orc.Logf != nil {
		orc.Logf(format, args...)
	}
}

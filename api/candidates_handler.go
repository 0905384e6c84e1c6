package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ramonsanvesti/vesti-founder-sub001/models"
	"github.com/ramonsanvesti/vesti-founder-sub001/pipeline"
	"github.com/ramonsanvesti/vesti-founder-sub001/storage"
	"github.com/ramonsanvesti/vesti-founder-sub001/utils"
)

const maxUploadBytes = 10 << 20

// CandidateListResponse represents the response structure for the candidate listing API
type CandidateListResponse struct {
	Candidates []models.Candidate `json:"candidates"`
	Total      int                `json:"total"`
}

// ListCandidatesHandler returns a video's candidates with signed preview URLs
func ListCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[List Candidates API]")

	if r.Method != http.MethodGet {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		utils.RespondError(w, &logMessageBuilder, "video_id is required", http.StatusBadRequest)
		return
	}

	tenant, err := TenantFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := pipeline.ListOptions{}
	if v, err := strconv.ParseBool(r.URL.Query().Get("include_expired")); err == nil {
		opts.IncludeExpired = v
	}
	if v, err := strconv.ParseBool(r.URL.Query().Get("include_discarded")); err == nil {
		opts.IncludeDiscarded = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("ttl")); err == nil {
		opts.SignedURLTTLSeconds = v
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	rows, err := query.List(ctx, tenant, videoID, opts)
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondError(w, &logMessageBuilder, "Video not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to list candidates: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Video %s: %d candidates", videoID, len(rows)))
	utils.RespondJSON(w, http.StatusOK, CandidateListResponse{Candidates: rows, Total: len(rows)})
}

// UploadCandidateHandler stores one candidate image. This is the processing
// worker's write path into the blob store; the key is always derived from
// (tenant, video, candidate), never taken from the request.
func UploadCandidateHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Upload Candidate API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	videoID := r.URL.Query().Get("video_id")
	candidateID := r.URL.Query().Get("candidate_id")
	if videoID == "" || candidateID == "" {
		utils.RespondError(w, &logMessageBuilder, "video_id and candidate_id are required", http.StatusBadRequest)
		return
	}

	upsert := true
	if v, err := strconv.ParseBool(r.URL.Query().Get("upsert")); err == nil {
		upsert = v
	}

	tenant, err := TenantFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to read body: %v", err), http.StatusBadRequest)
		return
	}
	if len(data) > maxUploadBytes {
		utils.RespondError(w, &logMessageBuilder, "Payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	cacheControl := r.Header.Get("Cache-Control")
	if cacheControl == "" {
		cacheControl = "public, max-age=31536000, immutable"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := blob.Upload(ctx, tenant.UserID, videoID, candidateID, data, r.Header.Get("Content-Type"), cacheControl, upsert)
	if err != nil {
		respondStorageError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Stored %s (%d bytes)", result.Path, result.Bytes))
	utils.RespondJSON(w, http.StatusOK, result)
}

// respondStorageError maps a storage error to a status: validation failures
// (bad segment, bad content type, empty payload) are the caller's fault,
// everything else is an upstream blob store failure.
func respondStorageError(w http.ResponseWriter, logger *strings.Builder, err error) {
	var se *storage.Error
	if !errors.As(err, &se) {
		utils.RespondError(w, logger, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusBadGateway
	if se.Code == storage.CodeInvalidSegment || se.Field != "" {
		status = http.StatusBadRequest
	}
	utils.RespondErrorCode(w, logger, se.Code, se.Error(), status)
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ramonsanvesti/vesti-founder-sub001/config"
	"github.com/ramonsanvesti/vesti-founder-sub001/models"
	"github.com/ramonsanvesti/vesti-founder-sub001/pipeline"
	"github.com/ramonsanvesti/vesti-founder-sub001/utils"
)

// CreateVideoRequest represents the payload for registering a wardrobe video
type CreateVideoRequest struct {
	VideoURL string `json:"video_url"`
}

// ProcessVideoRequest represents the payload for a process request
type ProcessVideoRequest struct {
	VideoID            string `json:"video_id"`
	SampleEverySeconds int    `json:"sample_every_seconds"`
	MaxFrames          int    `json:"max_frames"`
	MaxWidth           int    `json:"max_width"`
	MaxCandidates      int    `json:"max_candidates"`
}

// CreateVideoHandler registers an uploaded wardrobe video and optionally kicks
// off processing in the background
func CreateVideoHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Video API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.VideoURL) == "" {
		utils.RespondError(w, &logMessageBuilder, "video_url is required", http.StatusBadRequest)
		return
	}

	tenant, err := TenantFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	video := models.WardrobeVideo{
		UserID:   tenant.UserID,
		VideoURL: req.VideoURL,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := videos.Insert(ctx, &video); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to save video: %v", err), http.StatusInternalServerError)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Video %s created for %s", video.ID.Hex(), tenant.UserID))

	// Best-effort: the create response never waits on (or fails with) the
	// dispatch. AutoProcess re-checks status before doing anything.
	if config.AutoProcessOnCreate {
		go orchestrator.AutoProcess(tenant, video.ID.Hex())
		utils.AddToLogMessage(&logMessageBuilder, "Auto-process dispatched")
	}

	utils.RespondJSON(w, http.StatusCreated, video)
}

// ProcessVideoHandler runs a process request through the orchestrator
func ProcessVideoHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Process Video API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.VideoID == "" {
		utils.RespondError(w, &logMessageBuilder, "video_id is required", http.StatusBadRequest)
		return
	}

	tenant, err := TenantFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	result, err := orchestrator.ProcessVideo(ctx, tenant, req.VideoID, pipeline.ProcessOptions{
		SampleEverySeconds: req.SampleEverySeconds,
		MaxFrames:          req.MaxFrames,
		MaxWidth:           req.MaxWidth,
		MaxCandidates:      req.MaxCandidates,
	})
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondError(w, &logMessageBuilder, "Video not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to process video: %v", err), http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Video %s status=%s dispatched=%v", req.VideoID, result.Status, result.Dispatched))
	utils.RespondJSON(w, http.StatusOK, result)
}

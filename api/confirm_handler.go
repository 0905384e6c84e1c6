package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ramonsanvesti/vesti-founder-sub001/labels"
	"github.com/ramonsanvesti/vesti-founder-sub001/models"
	"github.com/ramonsanvesti/vesti-founder-sub001/scoring"
	"github.com/ramonsanvesti/vesti-founder-sub001/utils"
)

// ConfirmItemRequest represents the payload for confirming a candidate as a
// wardrobe item
type ConfirmItemRequest struct {
	CandidateID     string   `json:"candidate_id"`
	GarmentType     string   `json:"garment_type"`
	Subcategory     string   `json:"subcategory"`
	Title           string   `json:"title"`
	Tags            []string `json:"tags"`
	WearTemperature string   `json:"wear_temperature"`
	FormalityFeel   string   `json:"formality_feel"`
}

// ConfirmItemResponse couples the saved item with the scoring audit trail
type ConfirmItemResponse struct {
	Item  models.WardrobeItem `json:"item"`
	Score scoring.ScoreResult `json:"score"`
}

// ConfirmItemHandler turns confirmed garment attributes into a categorized,
// scored wardrobe item. When the caller supplies no labels at all, the label
// provider fills in tags from the candidate image (best-effort: a labeling
// failure just means the defaults apply).
func ConfirmItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Confirm Item API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ConfirmItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.CandidateID == "" {
		utils.RespondError(w, &logMessageBuilder, "candidate_id is required", http.StatusBadRequest)
		return
	}

	tenant, err := TenantFromRequest(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	candidate, err := candidates.Get(ctx, tenant.UserID, req.CandidateID)
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondError(w, &logMessageBuilder, "Candidate not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to fetch candidate: %v", err), http.StatusInternalServerError)
		return
	}

	if req.GarmentType == "" && req.Subcategory == "" && req.Title == "" && len(req.Tags) == 0 {
		req.Tags = labelCandidate(r.Context(), &logMessageBuilder, candidate)
	}

	normalized := scoring.NormalizeCategory(scoring.GarmentAttributes{
		GarmentType: req.GarmentType,
		Subcategory: req.Subcategory,
		Title:       req.Title,
		Tags:        req.Tags,
	})
	score := scoring.Score(normalized.Category, normalized.Subcategory, req.WearTemperature, req.FormalityFeel)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Scored candidate %s: %s", req.CandidateID, score.Explanation()))

	item := models.WardrobeItem{
		UserID:           tenant.UserID,
		CandidateID:      candidate.ID,
		WardrobeVideoID:  candidate.WardrobeVideoID,
		Category:         normalized.Category,
		Subcategory:      normalized.Subcategory,
		Title:            req.Title,
		Tags:             req.Tags,
		Comfort:          score.Score.Comfort,
		Formality:        score.Score.Formality,
		ScoreExplanation: score.Explanation(),
	}

	if err := items.Insert(ctx, &item); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to save wardrobe item: %v", err), http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, ConfirmItemResponse{Item: item, Score: score})
}

// labelCandidate asks the label provider for garment tags. Heavier timeout
// than the store calls; any failure degrades to no tags.
func labelCandidate(ctx context.Context, logger *strings.Builder, candidate models.Candidate) []string {
	labelCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	signedURL, err := blob.SignedURL(labelCtx, candidate.StoragePath, 600)
	if err != nil {
		utils.AddToLogMessage(logger, fmt.Sprintf("Warning: failed to sign candidate image for labeling: %v", err))
		return nil
	}

	tags, err := labels.GarmentTags(labelCtx, signedURL)
	if err != nil {
		utils.AddToLogMessage(logger, fmt.Sprintf("Warning: label provider failed: %v", err))
		return nil
	}
	utils.AddToLogMessage(logger, fmt.Sprintf("Label provider returned %d tags", len(tags)))
	return tags
}

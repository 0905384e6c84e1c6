package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ramonsanvesti/vesti-founder-sub001/models"
	"github.com/ramonsanvesti/vesti-founder-sub001/utils"
)

const CandidatesCollection = "candidates"

// CandidateStore reads Candidate rows produced by the processing worker. This
// service never writes candidate rows.
type CandidateStore struct {
	col *mongo.Collection
}

func NewCandidateStore() *CandidateStore {
	return &CandidateStore{col: utils.GetCollection(DatabaseName, CandidatesCollection)}
}

// ListByVideo fetches a video's candidates for one tenant, excluding the given
// statuses. Rows come back ordered by created_at; the query service applies the
// final rank ordering (Mongo sorts missing rank values first on ascending sort,
// the presentation contract wants them last).
func (s *CandidateStore) ListByVideo(ctx context.Context, tenantID string, videoID primitive.ObjectID, excludeStatuses []string) ([]models.Candidate, error) {
	filter := bson.M{
		"user_id":           tenantID,
		"wardrobe_video_id": videoID,
	}
	if len(excludeStatuses) > 0 {
		filter["status"] = bson.M{"$nin": excludeStatuses}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	defer cursor.Close(ctx)

	var candidates []models.Candidate
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return candidates, nil
}

// Get fetches one candidate scoped to the tenant.
func (s *CandidateStore) Get(ctx context.Context, tenantID, candidateID string) (models.Candidate, error) {
	oid, err := primitive.ObjectIDFromHex(candidateID)
	if err != nil {
		return models.Candidate{}, models.ErrNotFound
	}

	var candidate models.Candidate
	err = s.col.FindOne(ctx, bson.M{"_id": oid, "user_id": tenantID}).Decode(&candidate)
	if err == mongo.ErrNoDocuments {
		return models.Candidate{}, models.ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to fetch candidate: %w", err)
	}
	return candidate, nil
}

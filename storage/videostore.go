package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ramonsanvesti/vesti-founder-sub001/models"
	"github.com/ramonsanvesti/vesti-founder-sub001/utils"
)

const (
	DatabaseName     = "vesti"
	VideosCollection = "wardrobe_videos"
)

// VideoStore persists WardrobeVideo rows in MongoDB. Rows are decoded into the
// explicit models.WardrobeVideo schema at this boundary; shape mismatches fail
// here instead of propagating loosely-typed documents.
type VideoStore struct {
	col *mongo.Collection
}

func NewVideoStore() *VideoStore {
	return &VideoStore{col: utils.GetCollection(DatabaseName, VideosCollection)}
}

// Insert creates the row with status uploaded and fills in the generated id.
func (s *VideoStore) Insert(ctx context.Context, video *models.WardrobeVideo) error {
	now := time.Now().UTC()
	video.Status = models.VideoStatusUploaded
	video.CreatedAt = now
	video.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, video)
	if err != nil {
		return fmt.Errorf("failed to insert wardrobe video: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		video.ID = oid
	}
	return nil
}

// Get fetches one video scoped to the tenant. A malformed id, a missing row and
// a row owned by another tenant all report models.ErrNotFound.
func (s *VideoStore) Get(ctx context.Context, tenantID, videoID string) (models.WardrobeVideo, error) {
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return models.WardrobeVideo{}, models.ErrNotFound
	}

	var video models.WardrobeVideo
	err = s.col.FindOne(ctx, bson.M{"_id": oid, "user_id": tenantID}).Decode(&video)
	if err == mongo.ErrNoDocuments {
		return models.WardrobeVideo{}, models.ErrNotFound
	}
	if err != nil {
		return models.WardrobeVideo{}, fmt.Errorf("failed to fetch wardrobe video: %w", err)
	}
	return video, nil
}

// TransitionStatus performs the conditional status update: the row moves to the
// target status only while its current status is in from. Returns whether the
// precondition held; a miss is not an error, the caller decides what it means.
func (s *VideoStore) TransitionStatus(ctx context.Context, tenantID, videoID string, from []string, to string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(videoID)
	if err != nil {
		return false, models.ErrNotFound
	}

	filter := bson.M{
		"_id":     oid,
		"user_id": tenantID,
		"status":  bson.M{"$in": from},
	}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update video status: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

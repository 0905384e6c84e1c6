package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video status values. Creation always yields uploaded; failed is retryable.
const (
	VideoStatusUploaded   = "uploaded"
	VideoStatusProcessing = "processing"
	VideoStatusProcessed  = "processed"
	VideoStatusFailed     = "failed"
)

// WardrobeVideo represents one uploaded wardrobe video awaiting frame extraction
type WardrobeVideo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"` // immutable after creation
	VideoURL  string             `bson:"video_url" json:"video_url"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

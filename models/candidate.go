package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidate status values. The processing worker may write its own transient
// states; only these three matter to the read path.
const (
	CandidateStatusActive    = "active"
	CandidateStatusDiscarded = "discarded"
	CandidateStatusExpired   = "expired"
)

// CropBox is the region of interest inside the extracted frame
type CropBox struct {
	X      int `bson:"x" json:"x"`
	Y      int `bson:"y" json:"y"`
	Width  int `bson:"width" json:"width"`
	Height int `bson:"height" json:"height"`
}

// Candidate represents one extracted, ranked frame proposed as a garment photo.
// (storage_bucket, storage_path) is unique and always derived through
// storage.CandidateKey, never hand-built.
type Candidate struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"user_id"`
	WardrobeVideoID primitive.ObjectID `bson:"wardrobe_video_id" json:"wardrobe_video_id"`
	Status          string             `bson:"status" json:"status"`
	StorageBucket   string             `bson:"storage_bucket" json:"storage_bucket"`
	StoragePath     string             `bson:"storage_path" json:"storage_path"`
	PHash           string             `bson:"phash,omitempty" json:"phash,omitempty"`
	SHA256          string             `bson:"sha256,omitempty" json:"sha256,omitempty"`
	CropBox         *CropBox           `bson:"crop_box,omitempty" json:"crop_box,omitempty"`
	FrameTsMs       int64              `bson:"frame_ts_ms" json:"frame_ts_ms"`
	Width           int                `bson:"width" json:"width"`
	Height          int                `bson:"height" json:"height"`
	MimeType        string             `bson:"mime_type" json:"mime_type"`
	Bytes           int64              `bson:"bytes" json:"bytes"`
	QualityScore    float64            `bson:"quality_score" json:"quality_score"`
	Confidence      float64            `bson:"confidence" json:"confidence"`
	ReasonCodes     []string           `bson:"reason_codes,omitempty" json:"reason_codes,omitempty"`
	EmbeddingModel  string             `bson:"embedding_model,omitempty" json:"embedding_model,omitempty"`
	Rank            *int               `bson:"rank,omitempty" json:"rank"` // lower = preferred, nil = unranked
	ExpiresAt       *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`

	// SignedURL / SignedURLError are filled per-request by the candidate query
	// service and never persisted.
	SignedURL      string `bson:"-" json:"signed_url,omitempty"`
	SignedURLError string `bson:"-" json:"signed_url_error,omitempty"`
}

// Expired reports whether the row's TTL has passed at the given instant.
func (c *Candidate) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

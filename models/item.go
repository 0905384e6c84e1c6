package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WardrobeItem is a confirmed garment: a candidate photo plus the normalized
// category and comfort/formality score produced from its attributes.
type WardrobeItem struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	CandidateID      primitive.ObjectID `bson:"candidate_id" json:"candidate_id"`
	WardrobeVideoID  primitive.ObjectID `bson:"wardrobe_video_id,omitempty" json:"wardrobe_video_id,omitempty"`
	Category         string             `bson:"category" json:"category"`
	Subcategory      string             `bson:"subcategory" json:"subcategory"`
	Title            string             `bson:"title,omitempty" json:"title,omitempty"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Comfort          int                `bson:"comfort" json:"comfort"`
	Formality        int                `bson:"formality" json:"formality"`
	ScoreExplanation string             `bson:"score_explanation,omitempty" json:"score_explanation,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

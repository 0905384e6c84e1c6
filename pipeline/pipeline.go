// Package pipeline owns the wardrobe video processing flow: the status state
// machine and job dispatch on one side, the gated candidate read path on the
// other. Stores, queue and signer are narrow interfaces so the flow is
// exercised against stubs in tests and against Mongo/S3/QStash in production.
package pipeline

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ramonsanvesti/vesti-founder-sub001/models"
)

// TenantContext scopes every operation to one tenant. Today it is built from
// the fixed founder id or a bearer token; a real auth layer would only change
// how it is constructed.
type TenantContext struct {
	UserID string
}

// VideoStore is the slice of the record store the pipeline needs for videos.
type VideoStore interface {
	Get(ctx context.Context, tenantID, videoID string) (models.WardrobeVideo, error)
	TransitionStatus(ctx context.Context, tenantID, videoID string, from []string, to string) (bool, error)
}

// CandidateStore reads candidate rows; this core never writes them.
type CandidateStore interface {
	ListByVideo(ctx context.Context, tenantID string, videoID primitive.ObjectID, excludeStatuses []string) ([]models.Candidate, error)
}

// Publisher submits one job to the HTTP queue.
type Publisher interface {
	Publish(ctx context.Context, destinationURL, dedupKey string, body []byte) error
}

// URLSigner issues time-limited read URLs for stored objects.
type URLSigner interface {
	SignedURL(ctx context.Context, path string, ttlSeconds int) (string, error)
}

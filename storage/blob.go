package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/ramonsanvesti/vesti-founder-sub001/config"
)

// CandidateContentType is the single accepted image encoding for candidate uploads.
const CandidateContentType = "image/webp"

// Signed URL TTLs are clamped, not rejected, so a misconfigured caller degrades
// instead of failing.
const (
	SignTTLMinSeconds     = 10
	SignTTLMaxSeconds     = 3600
	SignTTLDefaultSeconds = 900
)

// ObjectPutter is the slice of the S3 client the gateway needs for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectPresigner is the slice of the S3 presign client the gateway needs.
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// UploadResult reports what was written on a successful upload.
type UploadResult struct {
	Bucket      string `json:"bucket"`
	Path        string `json:"path"`
	Bytes       int64  `json:"bytes"`
	ContentType string `json:"content_type"`
}

// BlobGateway uploads candidate images and issues time-limited signed read URLs.
// The underlying S3 client is initialized lazily and reused.
type BlobGateway struct {
	bucket string

	once      sync.Once
	initErr   error
	putter    ObjectPutter
	presigner ObjectPresigner
}

// NewBlobGateway returns a gateway against the given bucket. The S3 connection
// is not opened until the first call.
func NewBlobGateway(bucket string) *BlobGateway {
	return &BlobGateway{bucket: bucket}
}

// NewBlobGatewayWithClients injects S3 clients directly (used by tests).
func NewBlobGatewayWithClients(bucket string, putter ObjectPutter, presigner ObjectPresigner) *BlobGateway {
	g := &BlobGateway{bucket: bucket, putter: putter, presigner: presigner}
	g.once.Do(func() {})
	return g
}

func (g *BlobGateway) ensureClients(ctx context.Context) error {
	g.once.Do(func() {
		cfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(appConfig.AWSRegion),
		)
		if err != nil {
			g.initErr = fmt.Errorf("unable to load SDK config: %w", err)
			return
		}
		client := s3.NewFromConfig(cfg)
		g.putter = client
		g.presigner = s3.NewPresignClient(client)
	})
	return g.initErr
}

// Upload stores one candidate image under the canonical key for
// (tenantID, videoID, candidateID). Only image/webp payloads are accepted and
// empty payloads are rejected. With upsert the write is idempotent: retrying
// with identical bytes is safe. Without it, an existing object fails the write.
func (g *BlobGateway) Upload(ctx context.Context, tenantID, videoID, candidateID string, data []byte, contentType, cacheControl string, upsert bool) (UploadResult, error) {
	key, err := CandidateKey(tenantID, videoID, candidateID)
	if err != nil {
		return UploadResult{}, err
	}

	// Validation failures carry the offending field so callers can tell them
	// apart from upstream store failures under the same code.
	if contentType != CandidateContentType {
		return UploadResult{}, &Error{
			Code: CodeStorageUploadFailed, Field: "content_type", Bucket: g.bucket, Path: key,
			Err: fmt.Errorf("unsupported content type %q, only %s is accepted", contentType, CandidateContentType),
		}
	}
	if len(data) == 0 {
		return UploadResult{}, &Error{
			Code: CodeStorageUploadFailed, Field: "payload", Bucket: g.bucket, Path: key,
			Err: errors.New("empty payload"),
		}
	}

	if err := g.ensureClients(ctx); err != nil {
		return UploadResult{}, &Error{Code: CodeStorageUploadFailed, Bucket: g.bucket, Path: key, Err: err}
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}
	if !upsert {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := g.putter.PutObject(ctx, input); err != nil {
		return UploadResult{}, &Error{Code: CodeStorageUploadFailed, Bucket: g.bucket, Path: key, Err: err}
	}

	return UploadResult{
		Bucket:      g.bucket,
		Path:        key,
		Bytes:       int64(len(data)),
		ContentType: contentType,
	}, nil
}

// SignedURL issues a time-limited read URL for an object key. ttlSeconds is
// clamped into [SignTTLMinSeconds, SignTTLMaxSeconds]; zero or negative values
// take the default.
func (g *BlobGateway) SignedURL(ctx context.Context, path string, ttlSeconds int) (string, error) {
	ttl := ClampSignTTL(ttlSeconds)

	if err := g.ensureClients(ctx); err != nil {
		return "", &Error{Code: CodeSignUrlFailed, Bucket: g.bucket, Path: path, Err: err}
	}

	req, err := g.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(time.Duration(ttl)*time.Second))
	if err != nil {
		return "", &Error{Code: CodeSignUrlFailed, Bucket: g.bucket, Path: path, Err: err}
	}
	return req.URL, nil
}

// ClampSignTTL applies the signed-URL TTL bounds and default.
func ClampSignTTL(ttlSeconds int) int {
	switch {
	case ttlSeconds <= 0:
		return SignTTLDefaultSeconds
	case ttlSeconds < SignTTLMinSeconds:
		return SignTTLMinSeconds
	case ttlSeconds > SignTTLMaxSeconds:
		return SignTTLMaxSeconds
	}
	return ttlSeconds
}

package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ramonsanvesti/vesti-founder-sub001/config"
)

// Candidate objects live under tenantID/videoID/candidates/candidateID.webp in a
// single well-known bucket. This is the only place keys are assembled; every
// caller goes through these helpers so a bad identifier can never become a path.

// Bucket returns the well-known candidate media bucket name.
func Bucket() string {
	return config.AWSBucketName
}

// CandidateKey builds the object key for one candidate image.
func CandidateKey(tenantID, videoID, candidateID string) (string, error) {
	prefix, err := CandidatePrefix(tenantID, videoID)
	if err != nil {
		return "", err
	}
	if err := checkSegment("candidate_id", candidateID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s.webp", prefix, candidateID), nil
}

// CandidatePrefix builds the key prefix holding all of a video's candidates.
func CandidatePrefix(tenantID, videoID string) (string, error) {
	if err := checkSegment("tenant_id", tenantID); err != nil {
		return "", err
	}
	if err := checkSegment("video_id", videoID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/candidates/", tenantID, videoID), nil
}

// checkSegment is the sole defense against path traversal and cross-tenant
// collisions, so it runs on every call rather than trusting upstream input.
func checkSegment(field, value string) error {
	switch {
	case value == "":
		return invalidSegment(field, errors.New("must not be empty"))
	case strings.Contains(value, "/"), strings.Contains(value, "\\"):
		return invalidSegment(field, errors.New("must not contain path separators"))
	case strings.Contains(value, ".."):
		return invalidSegment(field, errors.New("must not contain '..'"))
	}
	return nil
}

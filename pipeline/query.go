package pipeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ramonsanvesti/vesti-founder-sub001/models"
)

// DefaultListTTLSeconds is the signed-URL lifetime for candidate listings.
const DefaultListTTLSeconds = 1800

// signConcurrency bounds the signed-URL fan-out so one slow signing call
// cannot serialize the rest.
const signConcurrency = 5

// ListOptions tune one candidate listing.
type ListOptions struct {
	IncludeExpired      bool
	IncludeDiscarded    bool
	SignedURLTTLSeconds int
}

// QueryService lists a video's candidates with visibility filtering,
// deterministic ordering and per-row signed-URL resolution.
type QueryService struct {
	Videos     VideoStore
	Candidates CandidateStore
	Signer     URLSigner

	Now func() time.Time // defaults to time.Now, fixed in tests
}

// List returns the video's visible candidates in presentation order. The
// owning video must exist and belong to the tenant, else models.ErrNotFound.
// A signing failure is attached to its row instead of aborting the listing:
// losing one preview must not hide the rest.
func (s *QueryService) List(ctx context.Context, tenant TenantContext, videoID string, opts ListOptions) ([]models.Candidate, error) {
	video, err := s.Videos.Get(ctx, tenant.UserID, videoID)
	if err != nil {
		return nil, err
	}

	var exclude []string
	if !opts.IncludeDiscarded {
		exclude = append(exclude, models.CandidateStatusDiscarded)
	}
	if !opts.IncludeExpired {
		exclude = append(exclude, models.CandidateStatusExpired)
	}

	rows, err := s.Candidates.ListByVideo(ctx, tenant.UserID, video.ID, exclude)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if !opts.IncludeExpired {
		kept := rows[:0]
		for _, c := range rows {
			if !c.Expired(now) {
				kept = append(kept, c)
			}
		}
		rows = kept
	}

	// Rank ascending with nulls last, then created_at ascending. Stable, so
	// equal keys keep the store's order and the presentation is reproducible.
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Rank, rows[j].Rank
		switch {
		case ri != nil && rj != nil && *ri != *rj:
			return *ri < *rj
		case ri == nil && rj != nil:
			return false
		case ri != nil && rj == nil:
			return true
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})

	s.resolveSignedURLs(ctx, rows, opts.SignedURLTTLSeconds)

	if rows == nil {
		rows = []models.Candidate{}
	}
	return rows, nil
}

func (s *QueryService) resolveSignedURLs(ctx context.Context, rows []models.Candidate, ttlSeconds int) {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultListTTLSeconds
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, signConcurrency)

	for i := range rows {
		wg.Add(1)
		go func(c *models.Candidate) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			url, err := s.Signer.SignedURL(ctx, c.StoragePath, ttlSeconds)
			if err != nil {
				c.SignedURLError = err.Error()
				return
			}
			c.SignedURL = url
		}(&rows[i])
	}
	wg.Wait()
}

// Package listing owns the in-memory job collection for one UI session
// and runs the normalize → derive → filter → sort → window pipeline
// over it. The pipeline itself is pure; the service adds the session
// state around it (filter selections, sort key, pagination window and
// the fetch-supersession token).
package listing

import (
	"context"
	"sync"
	"time"

	"github.com/Soubhagyabehera/easyapply/internal/classify"
	"github.com/Soubhagyabehera/easyapply/internal/deadline"
	"github.com/Soubhagyabehera/easyapply/internal/models"
	"github.com/Soubhagyabehera/easyapply/internal/normalize"
	"github.com/Soubhagyabehera/easyapply/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("easyapply/listing")

// DefaultPageSize is the initial (and increment) size of the visible
// window.
const DefaultPageSize = 24

// Fetcher is the slice of the jobs API the service needs; the full
// client satisfies it.
type Fetcher interface {
	List(ctx context.Context, query ListQuery) ([]models.JobRecord, error)
}

// ListQuery carries the server-side filters forwarded to GET /jobs.
type ListQuery struct {
	Location     string
	Organization string
	Department   string
}

// Snapshot is what one read of the listing hands to the presentation
// layer.
type Snapshot struct {
	Jobs     []models.NormalizedJob `json:"jobs"`
	Visible  int                    `json:"visible"`
	Filtered int                    `json:"filtered"`
	Total    int                    `json:"total"`
	SortKey  SortKey                `json:"sortKey"`
	Filter   FilterState            `json:"filter"`
}

// Service holds the session state. All methods are safe for concurrent
// use; the HTTP surface serves many requests over one session.
type Service struct {
	logger   *zap.Logger
	fetcher  Fetcher
	now      func() time.Time
	pageSize int

	mu           sync.Mutex
	nextToken    uint64
	appliedToken uint64
	jobs         []models.NormalizedJob
	filter       FilterState
	sortKey      SortKey
	visible      int
	counts       map[models.CategoryID]int
}

func NewService(logger *zap.Logger, fetcher Fetcher, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		logger:   logger,
		fetcher:  fetcher,
		now:      time.Now,
		pageSize: pageSize,
		sortKey:  SortDefault,
		visible:  pageSize,
	}
}

// WithNow fixes the evaluation instant; tests use it to pin "today".
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Refresh fetches the collection and applies it. Each call takes a
// monotonically increasing token before the fetch starts; a completed
// fetch is applied only if no later-started fetch already applied, so a
// slow stale response can never overwrite a fresher one. A failed fetch
// leaves the previous collection untouched.
func (s *Service) Refresh(ctx context.Context, query ListQuery) error {
	ctx, span := tracer.Start(ctx, "listing.Refresh")
	defer span.End()

	s.mu.Lock()
	s.nextToken++
	token := s.nextToken
	s.mu.Unlock()

	records, err := s.fetcher.List(ctx, query)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("listing refresh failed", zap.Error(err))
		return err
	}

	applied := s.apply(token, records)
	span.SetAttributes(
		telemetry.Int("jobs.count", len(records)),
		telemetry.Bool("applied", applied),
	)
	if !applied {
		s.logger.Debug("discarded stale listing fetch",
			zap.Uint64("token", token),
			zap.Int("count", len(records)))
	}
	return nil
}

// Apply replaces the collection directly, bypassing the fetcher. Used
// by callers that already hold raw records (tests, warm starts).
func (s *Service) Apply(records []models.JobRecord) {
	s.mu.Lock()
	s.nextToken++
	token := s.nextToken
	s.mu.Unlock()
	s.apply(token, records)
}

func (s *Service) apply(token uint64, records []models.JobRecord) bool {
	now := s.now()
	jobs := make([]models.NormalizedJob, 0, len(records))
	counts := make(map[models.CategoryID]int)
	for _, rec := range records {
		job := normalize.Normalize(rec)
		job.Category = classify.Classify(job.Organization)
		eval := deadline.Evaluate(job.Deadline, now)
		job.Expired = eval.Expired
		job.DaysRemaining = eval.DaysRemaining
		jobs = append(jobs, job)
		if job.Category != models.CategoryUnknown {
			counts[job.Category]++
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token < s.appliedToken {
		return false
	}
	s.appliedToken = token
	s.jobs = jobs
	s.counts = counts
	s.visible = s.pageSize
	s.logger.Info("applied job collection",
		zap.Uint64("token", token),
		zap.Int("count", len(jobs)))
	return true
}

// SetFilter replaces the filter state with a new value and resets the
// visible window.
func (s *Service) SetFilter(state FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == s.filter {
		return
	}
	s.filter = state
	s.visible = s.pageSize
}

// SetSort replaces the sort key and resets the visible window.
func (s *Service) SetSort(key SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == s.sortKey {
		return
	}
	s.sortKey = key
	s.visible = s.pageSize
}

// Reveal grows the visible window by one page. The window only grows
// until the next filter, sort or collection change resets it.
func (s *Service) Reveal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible += s.pageSize
}

// Visible runs the filter → sort → window pass and returns the current
// snapshot. Same collection, filter, sort key and evaluation instant
// always produce the same window.
func (s *Service) Visible() Snapshot {
	s.mu.Lock()
	jobs := s.jobs
	state := s.filter
	key := s.sortKey
	visible := s.visible
	s.mu.Unlock()

	filtered := Filter(jobs, state)
	sorted := Sort(filtered, key)
	window := sorted
	if visible < len(sorted) {
		window = sorted[:visible]
	}

	return Snapshot{
		Jobs:     window,
		Visible:  len(window),
		Filtered: len(filtered),
		Total:    len(jobs),
		SortKey:  key,
		Filter:   state,
	}
}

// All returns the full normalized collection in fetch order.
func (s *Service) All() []models.NormalizedJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.NormalizedJob, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// CategoryCounts returns the per-category totals for the current
// collection. The counts are aggregated once when a collection is
// applied, not recomputed per read.
func (s *Service) CategoryCounts() map[models.CategoryID]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[models.CategoryID]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Package api is the HTTP client for the job listing backend. It never
// retries: callers re-invoke the same method, which is idempotent for
// the read paths.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Soubhagyabehera/easyapply/internal/cache"
	cacheredis "github.com/Soubhagyabehera/easyapply/internal/cache/redis"
	"github.com/Soubhagyabehera/easyapply/internal/config"
	"github.com/Soubhagyabehera/easyapply/internal/errors"
	"github.com/Soubhagyabehera/easyapply/internal/listing"
	"github.com/Soubhagyabehera/easyapply/internal/models"
	"github.com/Soubhagyabehera/easyapply/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("easyapply/api")

// Client is the listing-backend surface the rest of the service
// consumes.
type Client interface {
	List(ctx context.Context, query listing.ListQuery) ([]models.JobRecord, error)
	Get(ctx context.Context, id string) (*models.JobRecord, error)
	CreateManual(ctx context.Context, draft JobDraft) (*models.JobRecord, error)
}

// envelope is the backend's standard response wrapper. Older
// deployments of the listing endpoint return a bare array instead; List
// accepts both.
type envelope struct {
	Status  string          `json:"status"`
	Count   int             `json:"count,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

type httpClient struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
	cache   cache.Cache
	config  *config.Config
}

// NewClient builds the backend client. With no Redis address configured
// the cache degrades to a pass-through.
func NewClient(logger *zap.Logger, cfg *config.Config) Client {
	store := cache.Disabled()
	if cfg.RedisAddr != "" {
		store = cacheredis.New(cache.Options{
			RedisURL:      cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
			DefaultTTL:    cfg.CacheTTL,
		})
	}

	return &httpClient{
		client:  &http.Client{Timeout: cfg.JobsAPITimeout},
		baseURL: strings.TrimSuffix(cfg.JobsAPIBaseURL, "/"),
		logger:  logger,
		cache:   store,
		config:  cfg,
	}
}

// NewClientWith wires explicit collaborators; tests use it with an
// httptest server and a disabled cache.
func NewClientWith(logger *zap.Logger, baseURL string, client *http.Client, store cache.Cache, cfg *config.Config) Client {
	return &httpClient{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
		cache:   store,
		config:  cfg,
	}
}

func (c *httpClient) List(ctx context.Context, query listing.ListQuery) ([]models.JobRecord, error) {
	ctx, span := tracer.Start(ctx, "jobs.List")
	defer span.End()

	cacheKey := listCacheKey(query)
	var cached models.JobRecordList
	err := c.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		c.logger.Debug("cache hit for job listing", zap.String("key", cacheKey))
		return cached, nil
	} else if err != cache.ErrNotFound {
		span.SetAttributes(telemetry.String("cache.result", "error"))
		span.RecordError(err)
		c.logger.Warn("cache error for job listing", zap.Error(err))
	} else {
		span.SetAttributes(telemetry.String("cache.result", "miss"))
	}

	u := c.baseURL + "/jobs"
	if params := listParams(query); params != "" {
		u += "?" + params
	}
	span.SetAttributes(telemetry.String("http.url", u))

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	records, err := decodeJobList(body)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("failed to decode job listing", zap.Error(err))
		return nil, err
	}

	if err := c.cache.Set(ctx, cacheKey, models.JobRecordList(records), c.config.CacheTTL); err != nil {
		c.logger.Warn("failed to cache job listing", zap.Error(err))
	}

	c.logger.Debug("fetched job listing", zap.Int("count", len(records)))
	return records, nil
}

func (c *httpClient) Get(ctx context.Context, id string) (*models.JobRecord, error) {
	ctx, span := tracer.Start(ctx, "jobs.Get")
	defer span.End()
	span.SetAttributes(telemetry.String("job.id", id))

	if strings.TrimSpace(id) == "" {
		return nil, errors.InvalidInput("job id is required", nil)
	}

	cacheKey := "jobs:id:" + id
	var cached models.JobRecord
	err := c.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		return &cached, nil
	} else if err != cache.ErrNotFound {
		span.RecordError(err)
		c.logger.Warn("cache error for job", zap.String("id", id), zap.Error(err))
	}

	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Internal("decoding job response", err)
	}
	if env.Status != "success" {
		return nil, errors.Unavailable(fmt.Sprintf("job lookup failed: %s", env.Message), nil)
	}

	var record models.JobRecord
	if err := json.Unmarshal(env.Data, &record); err != nil {
		return nil, errors.Internal("decoding job record", err)
	}

	if err := c.cache.Set(ctx, cacheKey, record, c.config.CacheTTL); err != nil {
		c.logger.Warn("failed to cache job", zap.String("id", id), zap.Error(err))
	}

	return &record, nil
}

// JobDraft is the manual job-creation payload. Array-valued concepts
// are accepted as comma-separated strings and split client-side before
// the request goes out; the backend only ever sees arrays.
type JobDraft struct {
	Title           string `json:"title"`
	Organization    string `json:"organization"`
	Department      string `json:"department,omitempty"`
	Location        string `json:"location,omitempty"`
	Qualification   string `json:"qualification,omitempty"`
	JobType         string `json:"jobType,omitempty"`
	EmploymentType  string `json:"employmentType,omitempty"`
	ApplicationMode string `json:"applicationMode,omitempty"`
	Deadline        string `json:"applicationDeadline,omitempty"`
	ExamDate        string `json:"examDate,omitempty"`
	Vacancies       string `json:"vacancies,omitempty"`
	Salary          string `json:"salary,omitempty"`
	AgeLimit        string `json:"ageLimit,omitempty"`
	Fee             string `json:"fee,omitempty"`
	ApplyLink       string `json:"applyLink,omitempty"`
	Description     string `json:"description,omitempty"`

	// Comma-separated inputs.
	Posts       string `json:"-"`
	Eligibility string `json:"-"`
	Documents   string `json:"-"`
}

func (d JobDraft) payload() map[string]interface{} {
	raw, _ := json.Marshal(d)
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	if posts := SplitCSV(d.Posts); len(posts) > 0 {
		out["posts"] = posts
	}
	if elig := SplitCSV(d.Eligibility); len(elig) > 0 {
		out["eligibility"] = elig
	}
	if docs := SplitCSV(d.Documents); len(docs) > 0 {
		out["requiredDocuments"] = docs
	}
	return out
}

// SplitCSV splits a comma-separated input field, dropping empty parts.
func SplitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *httpClient) CreateManual(ctx context.Context, draft JobDraft) (*models.JobRecord, error) {
	ctx, span := tracer.Start(ctx, "jobs.CreateManual")
	defer span.End()

	if strings.TrimSpace(draft.Title) == "" {
		return nil, errors.InvalidInput("title is required", nil)
	}
	if strings.TrimSpace(draft.Organization) == "" {
		return nil, errors.InvalidInput("organization is required", nil)
	}

	payload, err := json.Marshal(draft.payload())
	if err != nil {
		return nil, errors.Internal("encoding job draft", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/jobs/manual", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Internal("decoding create response", err)
	}
	if env.Status != "success" {
		return nil, errors.Unavailable(fmt.Sprintf("job creation failed: %s", env.Message), nil)
	}

	var record models.JobRecord
	if err := json.Unmarshal(env.Data, &record); err != nil {
		return nil, errors.Internal("decoding created job", err)
	}

	// The listing is stale now; drop the unfiltered list entry so the
	// next refresh sees the new job.
	if err := c.cache.Delete(ctx, listCacheKey(listing.ListQuery{})); err != nil {
		c.logger.Warn("failed to invalidate listing cache", zap.Error(err))
	}

	c.logger.Info("created manual job", zap.String("title", record.Title))
	return &record, nil
}

func (c *httpClient) do(ctx context.Context, method, url string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Internal("creating request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("failed to execute request",
			zap.String("url", url),
			zap.Error(err))
		return nil, errors.Unavailable("job service unreachable", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Internal("reading response", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NotFound("job not found", nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("unexpected status code",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode))
		return nil, errors.Unavailable(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	return data, nil
}

// decodeJobList accepts either the {status, count, data} envelope or,
// for older deployments, a bare JSON array of records.
func decodeJobList(body []byte) ([]models.JobRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []models.JobRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, errors.Internal("decoding job array", err)
		}
		return records, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, errors.Internal("decoding listing envelope", err)
	}
	if env.Status != "success" {
		return nil, errors.Unavailable(fmt.Sprintf("job listing failed: %s", env.Message), nil)
	}
	var records []models.JobRecord
	if err := json.Unmarshal(env.Data, &records); err != nil {
		return nil, errors.Internal("decoding job records", err)
	}
	return records, nil
}

func listParams(query listing.ListQuery) string {
	params := url.Values{}
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	if query.Organization != "" {
		params.Set("organization", query.Organization)
	}
	if query.Department != "" {
		params.Set("department", query.Department)
	}
	return params.Encode()
}

func listCacheKey(query listing.ListQuery) string {
	return fmt.Sprintf("jobs:list:%s|%s|%s", query.Location, query.Organization, query.Department)
}

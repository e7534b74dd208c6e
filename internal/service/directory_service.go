package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/noah-isme/user-directory/internal/models"
	"github.com/noah-isme/user-directory/internal/pipeline"
	"github.com/noah-isme/user-directory/pkg/config"
	appErrors "github.com/noah-isme/user-directory/pkg/errors"
	"github.com/noah-isme/user-directory/pkg/middleware/requestid"
)

type recordSource interface {
	FetchAll(ctx context.Context) ([]models.Record, error)
}

// DirectoryService owns the immutable record collection and serves views of
// it. The collection is written once by Load and only read afterwards.
type DirectoryService struct {
	source  recordSource
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	opts    pipeline.Options

	once    sync.Once
	ready   chan struct{}
	loadErr error

	mu        sync.RWMutex
	records   []models.Record
	byID      map[string]int
	countries []string
	status    models.SourceStatus
}

// NewDirectoryService constructs the service. cache and metrics may be nil.
func NewDirectoryService(source recordSource, cache *CacheService, metrics *MetricsService, cfg config.ViewConfig, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		logger.Warn("invalid view locale, falling back", zap.String("locale", cfg.Locale), zap.Error(err))
		locale = pipeline.DefaultLocale
	}
	return &DirectoryService{
		source:  source,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		opts:    pipeline.Options{PageSize: cfg.PageSize, Locale: locale},
		ready:   make(chan struct{}),
		records: []models.Record{},
		byID:    map[string]int{},
	}
}

// Options returns the pipeline options the service computes views with.
func (s *DirectoryService) Options() pipeline.Options {
	return s.opts
}

// Load fetches the collection from the record source exactly once. A failed
// fetch leaves the collection empty but still marks the service ready; the
// returned error is informational.
func (s *DirectoryService) Load(ctx context.Context) error {
	s.once.Do(func() {
		s.loadErr = s.load(ctx)
		close(s.ready)
	})
	return s.loadErr
}

// LoadAsync runs Load in the background. Ready reports completion.
func (s *DirectoryService) LoadAsync(ctx context.Context) {
	go func() {
		_ = s.Load(ctx)
	}()
}

// Ready is closed once the load attempt has finished.
func (s *DirectoryService) Ready() <-chan struct{} {
	return s.ready
}

func (s *DirectoryService) load(ctx context.Context) error {
	start := time.Now()
	records, err := s.source.FetchAll(ctx)
	duration := time.Since(start)
	loadedAt := time.Now().UTC()

	status := models.SourceStatus{
		LoadID:   uuid.NewString(),
		LoadedAt: &loadedAt,
		Duration: duration.String(),
	}
	if err != nil {
		s.logger.Error("source unavailable", zap.Duration("duration", duration), zap.Error(err))
		records = []models.Record{}
		status.Error = err.Error()
	} else {
		status.Loaded = true
		if records == nil {
			records = []models.Record{}
		}
		s.logger.Info("records loaded", zap.Int("count", len(records)), zap.Duration("duration", duration), zap.String("load_id", status.LoadID))
	}
	status.RecordCount = len(records)
	s.metrics.ObserveSourceLoad(len(records), duration, err)

	byID := make(map[string]int, len(records))
	for i, record := range records {
		if _, dup := byID[record.ID]; !dup {
			byID[record.ID] = i
		}
	}
	countries := s.opts.DeriveCountries(records)

	s.mu.Lock()
	s.records = records
	s.byID = byID
	s.countries = countries
	s.status = status
	s.mu.Unlock()

	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, appErrors.ErrSourceUnavailable.Message)
	}
	return nil
}

// Evict drops the views memoized for this process's snapshot. Entries of
// other load ids are left to expire with their TTL.
func (s *DirectoryService) Evict(ctx context.Context) error {
	s.mu.RLock()
	loadID := s.status.LoadID
	s.mu.RUnlock()
	if loadID == "" {
		return nil
	}
	return s.cache.Invalidate(ctx, viewCachePrefix(loadID)+"*")
}

// Records returns the loaded collection. Callers must not modify it.
func (s *DirectoryService) Records() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// View validates state and computes the page it describes. The boolean
// reports whether the view came from the memoization cache.
func (s *DirectoryService) View(ctx context.Context, state models.ViewState) (*models.View, bool, error) {
	s.mu.RLock()
	records, countries, loadID := s.records, s.countries, s.status.LoadID
	s.mu.RUnlock()

	if !state.Country.IsAny() && !containsFold(countries, state.Country.Country()) {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown country %q", state.Country.Country()))
	}

	var key string
	if loadID != "" {
		key = viewCacheKey(loadID, state)
		var cached models.View
		if s.cache.Get(ctx, key, &cached) {
			return &cached, true, nil
		}
	}

	start := time.Now()
	view := s.opts.ComputeView(records, state)
	s.metrics.ObserveViewCompute(time.Since(start))

	if key != "" {
		s.cache.Set(ctx, key, view)
	}

	s.logger.Debug("view computed",
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.Int("page", view.Page),
		zap.Int("total", view.TotalCount),
	)
	return &view, false, nil
}

// Get returns the record with id.
func (s *DirectoryService) Get(ctx context.Context, id string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	record := s.records[idx]
	return &record, nil
}

// Countries lists the distinct countries of the loaded collection.
func (s *DirectoryService) Countries(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.countries)
}

// Status reports the outcome of the load.
func (s *DirectoryService) Status() models.SourceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func viewCacheKey(loadID string, state models.ViewState) string {
	sum := sha256.Sum256([]byte(state.CacheKey()))
	return viewCachePrefix(loadID) + hex.EncodeToString(sum[:])
}

func viewCachePrefix(loadID string) string {
	return "view:" + loadID + ":"
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

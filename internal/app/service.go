// Package service provides the rating service behind the HTTP API: it owns
// the loaded dataset, the weight profiles and the result cache.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/okian/pele/internal/adapters/export"
	"github.com/okian/pele/internal/adapters/ingest"
	"github.com/okian/pele/internal/adapters/repository"
	"github.com/okian/pele/internal/domain/dedupe"
	"github.com/okian/pele/internal/domain/model"
	"github.com/okian/pele/internal/domain/rating"
	"github.com/okian/pele/internal/domain/types"
	"github.com/okian/pele/pkg/logger"
	"github.com/okian/pele/pkg/metrics"
)

// Service serves rating queries over an in-memory dataset.
type Service struct {
	mu sync.RWMutex

	// Configuration
	paths       []string
	dedupe      bool
	groupBy     []string
	standardize bool
	weights     string
	presets     map[string]rating.Weights
	maxLimit    int
	cacheSize   int
	preloaded   *model.Table

	// State
	started  bool
	data     *dataset
	profiles *rating.Profiles
	cache    *repository.Cache

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataPaths sets the canonical CSV files loaded on Start and Reload.
func WithDataPaths(paths ...string) Option {
	return func(s *Service) { s.paths = paths }
}

// WithTable serves t instead of reading files. Used by tests and embedders.
func WithTable(t model.Table) Option {
	return func(s *Service) { s.preloaded = &t }
}

// WithDedupe toggles dropping repeated (player_id, match_id) rows.
func WithDedupe(enabled bool) Option {
	return func(s *Service) { s.dedupe = enabled }
}

// WithDefaultGroupBy sets the grouping used when a query does not name one.
// An empty list means row-level output.
func WithDefaultGroupBy(cols []string) Option {
	return func(s *Service) {
		if cols != nil {
			s.groupBy = cols
		}
	}
}

// WithDefaultStandardize sets whether queries standardize by default.
func WithDefaultStandardize(enabled bool) Option {
	return func(s *Service) { s.standardize = enabled }
}

// WithDefaultWeights sets the profile used when a query does not name one.
func WithDefaultWeights(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.weights = name
		}
	}
}

// WithWeightPresets registers named weight sets next to the built-in profiles.
func WithWeightPresets(presets map[string]rating.Weights) Option {
	return func(s *Service) { s.presets = presets }
}

// WithMaxLimit caps the number of ratings one query returns.
func WithMaxLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithCacheSize bounds the result cache; 0 disables it.
func WithCacheSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.cacheSize = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupe:      true,
		groupBy:     []string{model.ColPlayerID},
		standardize: true,
		weights:     rating.DefaultProfile,
		maxLimit:    500,
		cacheSize:   128,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start resolves the weight profiles and loads the dataset.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.profiles = rating.NewProfiles(s.presets)
	if _, err := s.profiles.Scorer(s.weights); err != nil {
		s.mu.Unlock()
		return err
	}
	cache, err := repository.NewCache(s.cacheSize)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("result cache: %w", err)
	}
	s.cache = cache
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting rating service",
		logger.Strings("profiles", s.profiles.Names()),
		logger.String("weights", s.weights),
		logger.Int("cache_size", s.cacheSize),
	)
	return s.Reload(ctx)
}

// Stop releases cached results.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.cache.Purge()
	s.data = nil
	s.started = false
	s.logger.Info(context.Background(), "rating service stopped")
}

// Reload reads the dataset again and swaps it in. Queries in flight keep
// the dataset they started with.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	start := time.Now()
	var res ingest.LoadResult
	switch {
	case s.preloaded != nil:
		res = ingest.LoadResult{Table: *s.preloaded, RowsRead: len(s.preloaded.Rows)}
		if s.dedupe {
			res.Table.Rows, res.Duplicates = dedupe.Rows(ctx, dedupe.NewInMemoryDeduper(), res.Table.Rows)
			metrics.RecordDuplicateRows(res.Duplicates)
		}
	case len(s.paths) > 0:
		var err error
		res, err = ingest.LoadFiles(ctx, s.paths, ingest.WithDedupe(s.dedupe))
		if err != nil {
			s.logger.Error(ctx, "dataset load failed", logger.Error(err))
			return err
		}
	default:
		return ErrNoData
	}

	d := newDataset(uuid.NewString(), res)
	s.mu.Lock()
	s.data = d
	s.cache.Purge()
	s.mu.Unlock()

	metrics.UpdateDataset(len(d.table.Rows), len(d.players), d.loadedAt.Unix())
	s.logger.Info(ctx, "dataset loaded",
		logger.String("run_id", d.runID),
		logger.Int("files", res.Files),
		logger.Int("rows", len(d.table.Rows)),
		logger.Int("duplicates", res.Duplicates),
		logger.Int("players", len(d.players)),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

func (s *Service) current() (*dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.data == nil {
		return nil, ErrNotStarted
	}
	return s.data, nil
}

// RatingsQuery selects and shapes one ratings result. Zero values fall back
// to the service defaults; a non-nil empty GroupBy means row-level.
type RatingsQuery struct {
	GroupBy     []string
	Standardize *bool
	Weights     string
	Season      string
	Team        string
	// Bucket keeps entries whose position resolves to it, after scoring.
	Bucket string
	Limit  int
}

func (s *Service) resolve(q RatingsQuery) (RatingsQuery, error) {
	if q.GroupBy == nil {
		q.GroupBy = s.groupBy
	}
	if q.Standardize == nil {
		v := s.standardize
		q.Standardize = &v
	}
	if q.Weights == "" {
		q.Weights = s.weights
	}
	q.Weights = strings.ToLower(q.Weights)
	if q.Bucket != "" {
		b := rating.Bucket(strings.ToUpper(strings.TrimSpace(q.Bucket)))
		if !knownBucket(b) {
			return q, fmt.Errorf("%w: %s", ErrUnknownBucket, q.Bucket)
		}
		q.Bucket = string(b)
	}
	switch {
	case q.Limit < 0:
		return q, fmt.Errorf("%w: %d", repository.ErrInvalidLimit, q.Limit)
	case q.Limit == 0 || q.Limit > s.maxLimit:
		q.Limit = s.maxLimit
	}
	return q, nil
}

func (q RatingsQuery) cacheKey(runID string) string {
	return strings.Join([]string{
		runID, strings.Join(q.GroupBy, ","), q.Weights,
		fmt.Sprint(*q.Standardize), q.Season, q.Team,
	}, "|")
}

// Ratings computes (or fetches from cache) the ranking for q. Season and
// team filters narrow the population before scoring, so the minutes
// reference and the 0-100 scale are relative to the filtered set. The
// bucket filter runs after scoring and keeps the ranks of the full result.
func (s *Service) Ratings(ctx context.Context, q RatingsQuery) ([]types.Entry, error) {
	snap, q, err := s.snapshot(ctx, q)
	if err != nil {
		return nil, err
	}
	if q.Bucket == "" {
		return snap.TopN(ctx, q.Limit)
	}
	out := snap.Filter(func(e types.Entry) bool { return entryBucket(e) == q.Bucket })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func knownBucket(b rating.Bucket) bool {
	for _, k := range rating.Buckets() {
		if k == b {
			return true
		}
	}
	return false
}

// entryBucket is the scorer's bucket when it assigned one, else the bucket
// of the position label. Entries without a position belong to no bucket.
func entryBucket(e types.Entry) string {
	switch {
	case e.Bucket != "":
		return e.Bucket
	case e.Position == "":
		return ""
	}
	return string(rating.ResolveBucket(e.Position))
}

func (s *Service) snapshot(ctx context.Context, q RatingsQuery) (repository.Store, RatingsQuery, error) {
	d, err := s.current()
	if err != nil {
		return nil, q, err
	}
	q, err = s.resolve(q)
	if err != nil {
		return nil, q, err
	}
	scorer, err := s.profiles.Scorer(q.Weights)
	if err != nil {
		metrics.RecordValidationError(reason(err))
		return nil, q, err
	}

	key := q.cacheKey(d.runID)
	if snap, ok := s.cache.Get(key); ok {
		return snap, q, nil
	}

	t := d.table
	if q.Season != "" || q.Team != "" {
		t = t.Filter(func(r model.MatchRow) bool {
			return (q.Season == "" || r.Season == q.Season) && (q.Team == "" || r.TeamID == q.Team)
		})
	}

	start := time.Now()
	recs, err := rating.Compute(t,
		rating.WithGroupBy(q.GroupBy...),
		rating.WithStandardize(*q.Standardize),
		rating.WithScorer(scorer),
	)
	if err != nil {
		metrics.RecordValidationError(reason(err))
		s.logger.Warn(ctx, "rating rejected", logger.String("run_id", d.runID), logger.Error(err))
		return nil, q, err
	}
	took := time.Since(start)

	grouped := len(q.GroupBy) > 0
	metrics.RecordRowsScored(len(t.Rows))
	if grouped {
		metrics.RecordGroupsScored(len(recs))
	}
	metrics.RecordComputeDuration(scorer.Name(), grouped, took.Seconds())
	s.logger.Debug(ctx, "ratings computed",
		logger.String("run_id", d.runID),
		logger.String("weights", q.Weights),
		logger.Strings("group_by", q.GroupBy),
		logger.Int("rows", len(t.Rows)),
		logger.Int("results", len(recs)),
		logger.Duration("took", took),
	)

	snap := repository.NewSnapshot(recs)
	s.cache.Add(key, snap)
	return snap, q, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, rating.ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, rating.ErrUnknownGroupColumn):
		return "unknown_group_column"
	case errors.Is(err, rating.ErrNegativeMinutes):
		return "negative_minutes"
	case errors.Is(err, rating.ErrUnknownWeights):
		return "unknown_weights"
	}
	return "other"
}

// Player returns a player's summary, their per-season ratings and their
// overall rank among all players under the default weights.
func (s *Service) Player(ctx context.Context, playerID string) (types.PlayerRatings, error) {
	d, err := s.current()
	if err != nil {
		return types.PlayerRatings{}, err
	}
	i, ok := d.byID[playerID]
	if !ok {
		return types.PlayerRatings{}, fmt.Errorf("%w: %s", repository.ErrNotFound, playerID)
	}

	groupBy := []string{model.ColPlayerID}
	if d.table.Has(model.ColSeason) {
		groupBy = append(groupBy, model.ColSeason)
	}
	seasons, _, err := s.snapshot(ctx, RatingsQuery{GroupBy: groupBy})
	if err != nil {
		return types.PlayerRatings{}, err
	}
	overall, _, err := s.snapshot(ctx, RatingsQuery{GroupBy: []string{model.ColPlayerID}})
	if err != nil {
		return types.PlayerRatings{}, err
	}
	best, err := overall.Rank(ctx, playerID)
	if err != nil {
		return types.PlayerRatings{}, err
	}
	return types.PlayerRatings{
		Player:  d.players[i],
		Overall: &best,
		Ranked:  overall.Count(ctx),
		Ratings: seasons.Entries(ctx, playerID),
	}, nil
}

// Search fuzzy-matches q against player names, best match first.
func (s *Service) Search(ctx context.Context, q string, limit int) ([]types.Match, error) {
	d, err := s.current()
	if err != nil {
		return nil, err
	}
	q = ingest.NormalizeText(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	found := fuzzy.FindFrom(q, playerSource(d.players))
	if len(found) > limit {
		found = found[:limit]
	}
	out := make([]types.Match, len(found))
	for i, m := range found {
		out[i] = types.Match{Player: d.players[m.Index], Score: m.Score}
	}
	s.logger.Debug(ctx, "player search", logger.String("query", q), logger.Int("hits", len(out)))
	return out, nil
}

// Filters returns the distinct seasons and teams of the dataset.
func (s *Service) Filters(ctx context.Context) (export.Filters, error) {
	d, err := s.current()
	if err != nil {
		return export.Filters{}, err
	}
	return d.filters, nil
}

// Profiles lists the selectable weight profiles.
func (s *Service) Profiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profiles == nil {
		return nil
	}
	return s.profiles.Names()
}

// GetStats describes the loaded dataset.
func (s *Service) GetStats(ctx context.Context) (types.Stats, error) {
	d, err := s.current()
	if err != nil {
		return types.Stats{}, err
	}
	return types.Stats{
		RunID:      d.runID,
		LoadedAt:   d.loadedAt,
		Files:      d.load.Files,
		Rows:       len(d.table.Rows),
		RowsRead:   d.load.RowsRead,
		Duplicates: d.load.Duplicates,
		Players:    len(d.players),
		Columns:    d.table.Columns,
		Profiles:   s.Profiles(),
		CacheSize:  s.cache.Len(),
	}, nil
}

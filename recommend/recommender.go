package recommend

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/core"
	"github.com/poiesic/courserec/normalize"
)

// Recommender answers queries against a loaded artifact bundle.
// It never modifies the bundle and is safe for concurrent use.
type Recommender struct {
	bundle  *artifact.Bundle
	folded  []string
	logger  *slog.Logger
	monitor Monitor
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMonitor sets the monitor used by Recommend.
// Default is a no-op monitor.
func WithMonitor(monitor Monitor) Option {
	return func(r *Recommender) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// New creates a recommender over bundle. The bundle is expected to have
// passed Validate; a similarity matrix that does not fit the course table
// is reported per query as a ConsistencyError.
func New(bundle *artifact.Bundle, opts ...Option) (*Recommender, error) {
	if bundle == nil {
		return nil, ErrBundleRequired
	}

	r := &Recommender{
		bundle:  bundle,
		folded:  make([]string, len(bundle.Courses)),
		logger:  slog.Default(),
		monitor: &noopMonitor{},
	}
	for i, c := range bundle.Courses {
		if c.HasCleanTitle() {
			r.folded[i] = normalize.Fold(c.CleanTitle)
		}
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Recommend returns up to limit course titles for query.
// A negative limit is treated as zero.
func (r *Recommender) Recommend(query string, limit int) (Result, error) {
	return r.RecommendWithMonitor(query, limit, r.monitor)
}

// RecommendWithMonitor is Recommend with a per-call monitor.
func (r *Recommender) RecommendWithMonitor(query string, limit int, monitor Monitor) (Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if limit < 0 {
		limit = 0
	}

	monitor.Start(query)

	// 1. Containment
	if !normalize.IsBlank(query) {
		matches := r.contains(normalize.Fold(query))
		monitor.AfterContainment(matches)
		if len(matches) > 0 {
			indices := matches[:min(limit, len(matches))]
			result := Result{
				Query:        query,
				Kind:         KindContainment,
				Titles:       r.titles(indices),
				Indices:      indices,
				MatchedIndex: -1,
			}
			r.logger.Debug("containment match", "query", query, "matches", len(matches), "returned", len(indices))
			monitor.Finish(result)
			return result, nil
		}
	}

	// 2. Normalize and exact match
	normalized := normalize.Query(query)
	monitor.AfterNormalize(normalized)

	matched := r.exactMatch(normalized)
	if matched < 0 {
		result := Result{Query: query, Kind: KindNotFound, MatchedIndex: -1}
		r.logger.Debug("no match", "query", query, "normalized", normalized)
		monitor.Finish(result)
		return result, nil
	}
	monitor.ExactMatch(matched)

	// 3. Similarity ranking
	ranked, err := r.rank(matched)
	if err != nil {
		r.logger.Error("similarity matrix does not fit course table", "query", query, "err", err)
		return Result{}, err
	}
	ranked = ranked[:min(limit, len(ranked))]

	result := Result{
		Query:        query,
		Kind:         KindSimilar,
		Titles:       make([]string, len(ranked)),
		Indices:      make([]int, len(ranked)),
		Scores:       make([]float64, len(ranked)),
		MatchedIndex: matched,
	}
	for i, s := range ranked {
		result.Titles[i] = r.bundle.Courses[s.Index].Title
		result.Indices[i] = s.Index
		result.Scores[i] = s.Score
	}
	r.logger.Debug("similarity match", "query", query, "matched", matched, "returned", len(ranked))
	monitor.Finish(result)
	return result, nil
}

// contains returns the rows whose clean title contains the folded query,
// in table order.
func (r *Recommender) contains(folded string) []int {
	var matches []int
	for i, title := range r.folded {
		if title != "" && strings.Contains(title, folded) {
			matches = append(matches, i)
		}
	}
	return matches
}

// exactMatch returns the first row whose clean title equals normalized, or -1.
func (r *Recommender) exactMatch(normalized string) int {
	if normalized == "" {
		return -1
	}
	for i, c := range r.bundle.Courses {
		if c.HasCleanTitle() && c.CleanTitle == normalized {
			return i
		}
	}
	return -1
}

// rank scores every other course against row index, highest first.
// Ties keep table order and NaN scores sort last.
func (r *Recommender) rank(index int) ([]core.ScoredIndex, error) {
	n := len(r.bundle.Courses)
	sim := r.bundle.Similarity
	if sim == nil || !sim.IsSquare() || sim.Rows != n || len(sim.Values) != sim.Rows*sim.Cols {
		e := &ConsistencyError{Rows: n, Index: index}
		if sim != nil {
			e.Dimension = [2]int{sim.Rows, sim.Cols}
		}
		return nil, e
	}

	row := sim.Row(index)
	scored := make([]core.ScoredIndex, 0, n-1)
	for j, score := range row {
		if j == index {
			continue
		}
		scored = append(scored, core.ScoredIndex{Index: j, Score: score})
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return higher(scored[a].Score, scored[b].Score)
	})
	return scored, nil
}

func higher(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

func (r *Recommender) titles(indices []int) []string {
	titles := make([]string, len(indices))
	for i, idx := range indices {
		titles[i] = r.bundle.Courses[idx].Title
	}
	return titles
}

// Len returns the number of courses the recommender searches.
func (r *Recommender) Len() int {
	return len(r.bundle.Courses)
}

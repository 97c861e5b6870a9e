package batch

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/courserec/recommend"
)

// Recommender answers a single query. *courserec.Catalog implements it.
type Recommender interface {
	Recommend(ctx context.Context, query string, limit int) (recommend.Result, error)
}

// Item is the outcome of one query.
type Item struct {
	Query  string
	Result recommend.Result
	Err    error
}

// Runner answers batches of queries over a worker pool.
type Runner struct {
	recommender    Recommender
	pool           *ants.Pool
	limit          int
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithPoolSize sets the number of concurrent workers.
// Default is runtime.NumCPU().
func WithPoolSize(size int) Option {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLimit sets the number of titles requested per query.
// Default is recommend.DefaultLimit.
func WithLimit(limit int) Option {
	return func(r *Runner) error {
		r.limit = limit
		return nil
	}
}

// WithProgress reports progress to w every interval queries.
// Default is no progress output.
func WithProgress(w io.Writer, interval int) Option {
	return func(r *Runner) error {
		r.progress = w
		r.reportInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRunner creates a runner. Call Release when done.
func NewRunner(recommender Recommender, opts ...Option) (*Runner, error) {
	if recommender == nil {
		return nil, ErrRecommenderRequired
	}

	pool, err := ants.NewPool(max(runtime.NumCPU(), 1))
	if err != nil {
		return nil, err
	}

	r := &Runner{
		recommender: recommender,
		pool:        pool,
		limit:       recommend.DefaultLimit,
		logger:      slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// Release stops the worker pool.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Run answers every query and returns one Item per query in input order.
// A failing query is recorded in its Item and does not stop the batch.
// If ctx is canceled, unanswered queries carry ctx.Err() and Run returns it.
func (r *Runner) Run(ctx context.Context, queries []string) ([]Item, error) {
	items := make([]Item, len(queries))

	var tracker *ProgressTracker
	if r.progress != nil {
		tracker = NewProgressTracker(r.progress, len(queries), r.reportInterval)
		tracker.Start()
	}

	var wg sync.WaitGroup
	for i, query := range queries {
		items[i].Query = query
		if err := ctx.Err(); err != nil {
			items[i].Err = err
			continue
		}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return
			}
			items[i].Result, items[i].Err = r.recommender.Recommend(ctx, query, r.limit)
			if items[i].Err != nil {
				r.logger.Error("error answering query", "query", query, "err", items[i].Err)
			}
			if tracker != nil {
				tracker.Done(items[i].Err)
			}
		})
		if err != nil {
			wg.Done()
			items[i].Err = err
			r.logger.Error("error submitting query", "query", query, "err", err)
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}
	r.logger.Info("batch finished", "queries", len(queries))
	return items, ctx.Err()
}

// ReadQueries reads one query per line, skipping blank lines.
// Other lines are kept verbatim apart from a CRLF terminator; the
// containment pass sees the raw query.
func ReadQueries(r io.Reader) ([]string, error) {
	var queries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		queries = append(queries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return queries, nil
}

// Record is the JSON line written for one Item.
type Record struct {
	Query   string   `json:"query"`
	Kind    string   `json:"kind,omitempty"`
	Titles  []string `json:"titles,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// NewRecord converts an Item to its JSON form.
func NewRecord(item Item) Record {
	rec := Record{Query: item.Query}
	if item.Err != nil {
		rec.Error = item.Err.Error()
		return rec
	}
	rec.Kind = item.Result.Kind.String()
	rec.Titles = item.Result.Titles
	if !item.Result.Found() {
		rec.Message = recommend.NotFoundMessage
	}
	return rec
}

// WriteJSONL writes one JSON object per item.
func WriteJSONL(w io.Writer, items []Item) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(NewRecord(item)); err != nil {
			return err
		}
	}
	return nil
}

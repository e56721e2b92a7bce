package search

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	resultsPerQuery = 5
	// Topics beyond the target are still attempted up to this margin, then
	// the final list is trimmed back to the target.
	overFetchMargin = 5
)

// Resolver turns topic requests into verified items: query build, search,
// dedup, filter, reachability check, first match wins per topic.
type Resolver struct {
	client      *BraveClient
	checker     *Checker
	logger      *zap.Logger
	queryDelay  time.Duration
	concurrency int
}

type ResolverConfig struct {
	Client      *BraveClient
	Checker     *Checker
	Logger      *zap.Logger
	QueryDelay  time.Duration
	Concurrency int
}

func NewResolver(cfg ResolverConfig) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	delay := cfg.QueryDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 || concurrency > 4 {
		concurrency = 4
	}
	return &Resolver{
		client:      cfg.Client,
		checker:     cfg.Checker,
		logger:      logger,
		queryDelay:  delay,
		concurrency: concurrency,
	}
}

// Resolve returns up to targetCount verified items, at most one per request,
// in request order. It never returns an error: a missing credential or a dead
// search upstream yields an empty slice and the caller treats that as "no
// items found".
func (r *Resolver) Resolve(ctx context.Context, mode Mode, requests []Request, targetCount int) []Item {
	if targetCount <= 0 {
		targetCount = 20
	}
	if !r.client.Configured() {
		r.logger.Warn("search credential missing, returning no items", zap.String("mode", string(mode)))
		return []Item{}
	}

	ceiling := int64(targetCount + overFetchMargin)
	var resolved atomic.Int64

	found := make([]*Item, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if resolved.Load() >= ceiling {
				return nil
			}
			item := r.resolveTopic(gctx, mode, req)
			if item != nil {
				found[i] = item
				resolved.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	items := make([]Item, 0, targetCount)
	for _, item := range found {
		if item == nil {
			continue
		}
		if len(items) >= targetCount {
			break
		}
		items = append(items, *item)
	}
	r.logger.Info("resolution finished",
		zap.String("mode", string(mode)),
		zap.Int("topics", len(requests)),
		zap.Int("items", len(items)))
	return items
}

// resolveTopic walks the ordered queries for one topic and returns the first
// result that survives dedup, filtering, and the reachability probe.
func (r *Resolver) resolveTopic(ctx context.Context, mode Mode, req Request) *Item {
	logger := r.logger.With(zap.String("mode", string(mode)), zap.String("topic", req.Topic))
	seen := map[string]struct{}{}

	for i, query := range BuildQueries(mode, req.Topic, req.Location) {
		if i > 0 {
			select {
			case <-time.After(r.queryDelay):
			case <-ctx.Done():
				return nil
			}
		}

		results, err := r.client.Search(ctx, query, resultsPerQuery)
		if err != nil {
			// One failed query is not fatal, the next one may land.
			logger.Warn("query failed", zap.String("query", query), zap.Error(err))
			continue
		}
		logger.Debug("query issued", zap.String("query", query), zap.Int("results", len(results)))

		for _, result := range results {
			key := StripFragment(result.URL)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			if Denied(result) {
				logger.Debug("result denied", zap.String("url", result.URL))
				continue
			}
			if !Allowed(mode, result) {
				logger.Debug("result not allow-listed", zap.String("url", result.URL))
				continue
			}
			if !r.checker.IsReachable(ctx, result.URL) {
				logger.Debug("result unreachable", zap.String("url", result.URL))
				continue
			}

			title := result.Title
			if title == "" {
				title = req.Topic
			}
			logger.Info("topic resolved", zap.String("url", result.URL))
			return &Item{Title: title, URL: result.URL, Description: result.Description}
		}
	}

	logger.Info("topic unresolved")
	return nil
}

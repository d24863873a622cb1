package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dara-lab/dara/internal/adapters/http/docs"
	"github.com/dara-lab/dara/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// ErrFailed is returned when at least one endpoint failed its checks.
var ErrFailed = errors.New("probe failed")

// PercentageMultiplier converts a ratio to a percentage.
const PercentageMultiplier = 100

// Run probes every catalogued endpoint and returns one result per endpoint
// in catalog order.
func Run(ctx context.Context, config *Config) ([]Result, Stats, error) {
	stats := Stats{StartTime: time.Now()}
	log := logger.Named("probe")

	catalog, err := docs.Load()
	if err != nil {
		return nil, stats, err
	}
	endpoints := selectEndpoints(catalog, config.Only)
	if len(endpoints) == 0 {
		return nil, stats, fmt.Errorf("no endpoints in group %q", config.Only)
	}

	log.Info(ctx, "starting probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("endpoints", len(endpoints)),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.Timeout)
	base := strings.TrimRight(config.BaseURL, "/")
	results := make([]Result, len(endpoints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Workers, 1))
	var mu sync.Mutex
	for i, e := range endpoints {
		g.Go(func() error {
			res := probeOne(gctx, client, base, e)
			results[i] = res

			mu.Lock()
			defer mu.Unlock()
			if !res.OK() {
				log.Warn(gctx, "endpoint failed",
					logger.String("path", res.Path),
					logger.Int("status", res.Status),
					logger.String("problems", strings.Join(res.Problems, "; ")))
			} else if config.Verbose {
				log.Info(gctx, "endpoint ok",
					logger.String("path", res.Path),
					logger.Duration("took", res.Duration))
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		stats.Checked++
		if r.OK() {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Failed > 0 {
		return results, stats, fmt.Errorf("%w: %d of %d endpoints", ErrFailed, stats.Failed, stats.Checked)
	}
	return results, stats, ctx.Err()
}

func selectEndpoints(c docs.Catalog, only string) []docs.Endpoint {
	if only == "" {
		return c.Endpoints()
	}
	for _, g := range c.Groups {
		if strings.EqualFold(g.Name, only) {
			return g.Endpoints
		}
	}
	return nil
}

// probeOne fetches an endpoint twice and verifies the pair.
func probeOne(ctx context.Context, client *HTTPClient, base string, e docs.Endpoint) Result {
	start := time.Now()
	first, err := client.get(ctx, base+e.Example)
	if err != nil {
		return Result{Path: e.Path, Example: e.Example, Problems: []string{err.Error()}}
	}
	second, err := client.get(ctx, base+e.Example)
	if err != nil {
		return Result{Path: e.Path, Example: e.Example, Status: first.status, Problems: []string{err.Error()}}
	}
	res := verify(e, first, second)
	res.Duration = time.Since(start)
	return res
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats Stats) {
	var passRate float64
	if stats.Checked > 0 {
		passRate = float64(stats.Passed) / float64(stats.Checked) * PercentageMultiplier
	}
	log.Info(ctx, "final statistics",
		logger.Int("checked", stats.Checked),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("passRate", passRate))
}

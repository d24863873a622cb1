// Package service owns the loaded datasets and runs queries against them on
// behalf of the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dara-lab/dara/internal/domain/energy"
	"github.com/dara-lab/dara/internal/domain/happiness"
	"github.com/dara-lab/dara/internal/domain/ipl"
	"github.com/dara-lab/dara/internal/domain/netflix"
	"github.com/dara-lab/dara/internal/domain/olympics"
	"github.com/dara-lab/dara/pkg/logger"
	"github.com/dara-lab/dara/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Dataset names used in logs and metric labels.
const (
	DatasetOlympics  = "olympics"
	DatasetIPL       = "ipl"
	DatasetNetflix   = "netflix"
	DatasetHappiness = "happiness"
	DatasetEnergy    = "energy"
)

// Paths locates the dataset files.
type Paths struct {
	Olympics   string
	IPLBalls   string
	IPLMatches string
	Netflix    string
	Happiness  string
	Energy     string
}

// Datasets are the loaded tables. A non-nil field given through
// WithDatasets is used as is and not read from disk.
type Datasets struct {
	Olympics  *olympics.Dataset
	IPL       *ipl.Dataset
	Netflix   *netflix.Dataset
	Happiness *happiness.Dataset
	Energy    *energy.Dataset
}

// Service holds the process-wide, read-only datasets. After Start returns the
// datasets are never written again, so queries take no locks.
type Service struct {
	mu sync.Mutex

	paths Paths
	data  Datasets

	started  bool
	loadedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPaths sets the dataset file locations.
func WithPaths(p Paths) Option {
	return func(s *Service) {
		s.paths = p
	}
}

// WithDatasets supplies already loaded datasets.
func WithDatasets(d Datasets) Option {
	return func(s *Service) {
		s.data = d
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

// New constructs a Service. Nothing is loaded until Start.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type loader struct {
	name string
	load func(ctx context.Context) (rows int, err error)
}

// Start loads every dataset not supplied through WithDatasets, concurrently.
// The first load failure cancels the others and is returned; the service is
// then unusable and the caller is expected to exit.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "loading datasets...")

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range s.loaders() {
		g.Go(func() error {
			start := time.Now()
			rows, err := l.load(gctx)
			elapsed := time.Since(start)
			if err != nil {
				metrics.RecordDatasetLoadError(l.name)
				return fmt.Errorf("load %s: %w", l.name, err)
			}
			metrics.SetDatasetRows(l.name, rows)
			metrics.SetDatasetLoadDuration(l.name, float64(elapsed.Microseconds())/1000)
			s.logger.Info(gctx, "dataset loaded",
				logger.String("dataset", l.name),
				logger.Int("rows", rows),
				logger.Duration("took", elapsed),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "dataset load failed", logger.Error(err))
		return err
	}

	s.started = true
	s.loadedAt = time.Now()
	s.logger.Info(ctx, "datasets ready")
	return nil
}

// loaders returns a loader per dataset; supplied datasets only report their
// size. Each loader writes a distinct field of s.data.
func (s *Service) loaders() []loader {
	p := s.paths
	return []loader{
		{DatasetOlympics, func(ctx context.Context) (int, error) {
			if s.data.Olympics == nil {
				d, err := olympics.Load(ctx, p.Olympics)
				if err != nil {
					return 0, err
				}
				s.data.Olympics = d
			}
			return s.data.Olympics.Len(), nil
		}},
		{DatasetIPL, func(ctx context.Context) (int, error) {
			if s.data.IPL == nil {
				d, err := ipl.Load(ctx, p.IPLBalls, p.IPLMatches)
				if err != nil {
					return 0, err
				}
				s.data.IPL = d
			}
			return s.data.IPL.Len(), nil
		}},
		{DatasetNetflix, func(ctx context.Context) (int, error) {
			if s.data.Netflix == nil {
				d, err := netflix.Load(ctx, p.Netflix)
				if err != nil {
					return 0, err
				}
				s.data.Netflix = d
			}
			return s.data.Netflix.Len(), nil
		}},
		{DatasetHappiness, func(ctx context.Context) (int, error) {
			if s.data.Happiness == nil {
				d, err := happiness.Load(ctx, p.Happiness)
				if err != nil {
					return 0, err
				}
				s.data.Happiness = d
			}
			return s.data.Happiness.Len(), nil
		}},
		{DatasetEnergy, func(ctx context.Context) (int, error) {
			if s.data.Energy == nil {
				d, err := energy.Load(ctx, p.Energy)
				if err != nil {
					return 0, err
				}
				s.data.Energy = d
			}
			return s.data.Energy.Len(), nil
		}},
	}
}

// Started reports whether every dataset is loaded.
func (s *Service) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Olympics returns the athlete history. Valid after Start.
func (s *Service) Olympics() *olympics.Dataset { return s.data.Olympics }

// IPL returns the cricket deliveries. Valid after Start.
func (s *Service) IPL() *ipl.Dataset { return s.data.IPL }

// Netflix returns the catalogue. Valid after Start.
func (s *Service) Netflix() *netflix.Dataset { return s.data.Netflix }

// Happiness returns the report panel. Valid after Start.
func (s *Service) Happiness() *happiness.Dataset { return s.data.Happiness }

// Energy returns the energy panel. Valid after Start.
func (s *Service) Energy() *energy.Dataset { return s.data.Energy }

// Observe runs one named query, recording its latency and whether it came
// back empty.
func (s *Service) Observe(ctx context.Context, query string, run func() (result any, empty bool)) any {
	start := time.Now()
	result, empty := run()
	elapsed := time.Since(start)

	metrics.RecordQuery(query, float64(elapsed.Microseconds())/1000, empty)
	if s.logger != nil {
		s.logger.Debug(ctx, "query evaluated",
			logger.String("query", query),
			logger.Duration("took", elapsed),
			logger.Bool("empty", empty),
		)
	}
	return result
}

// Stats describes the loaded service for monitoring.
type Stats struct {
	Started  bool           `json:"started"`
	LoadedAt string         `json:"loaded_at,omitempty"`
	Rows     map[string]int `json:"rows"`
}

// GetStats returns the row count of every loaded dataset.
func (s *Service) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Started: s.started, Rows: map[string]int{}}
	if !s.started {
		return st
	}
	st.LoadedAt = s.loadedAt.UTC().Format(time.RFC3339)
	st.Rows[DatasetOlympics] = s.data.Olympics.Len()
	st.Rows[DatasetIPL] = s.data.IPL.Len()
	st.Rows[DatasetNetflix] = s.data.Netflix.Len()
	st.Rows[DatasetHappiness] = s.data.Happiness.Len()
	st.Rows[DatasetEnergy] = s.data.Energy.Len()
	return st
}

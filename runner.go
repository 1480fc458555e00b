package bikeinfra

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Stats is summary of a single run
type Stats struct {
	Features  int64
	Decisions int64
	Bound     orb.Bound
	HasBound  bool
	Elapsed   time.Duration
}

func (stats *Stats) merge(other Stats) {
	stats.Features += other.Features
	stats.Decisions += other.Decisions
	stats.extend(other.Bound, other.HasBound)
}

func (stats *Stats) extend(bound orb.Bound, ok bool) {
	if !ok {
		return
	}
	if !stats.HasBound {
		stats.Bound = bound
		stats.HasBound = true
		return
	}
	stats.Bound = stats.Bound.Union(bound)
}

// Runner feeds source features to the profile from several goroutines and replays decisions into collector
type Runner struct {
	profile   Profile
	collector Collector
	workers   int
	queueSize int
	logger    *zap.Logger
}

// NewRunner returns runner with GOMAXPROCS workers by default
func NewRunner(profile Profile, collector Collector, options ...func(*Runner)) *Runner {
	runner := &Runner{
		profile:   profile,
		collector: collector,
		workers:   runtime.GOMAXPROCS(-1),
		queueSize: 1000,
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		option(runner)
	}
	if runner.workers < 1 {
		runner.workers = 1
	}
	return runner
}

func WithWorkers(workers int) func(*Runner) {
	return func(runner *Runner) {
		runner.workers = workers
	}
}

func WithQueueSize(queueSize int) func(*Runner) {
	return func(runner *Runner) {
		runner.queueSize = queueSize
	}
}

func WithRunnerLogger(logger *zap.Logger) func(*Runner) {
	return func(runner *Runner) {
		if logger != nil {
			runner.logger = logger
		}
	}
}

// Run processes features until channel is closed, context is done or collector fails
func (runner *Runner) Run(ctx context.Context, features <-chan SourceFeature) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := time.Now()
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		total    Stats
		firstErr error
	)
	for i := 0; i < runner.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local, err := runner.work(ctx, features)
			mu.Lock()
			defer mu.Unlock()
			total.merge(local)
			if err != nil && firstErr == nil {
				firstErr = err
				cancel()
			}
		}()
	}
	wg.Wait()
	total.Elapsed = time.Since(st)
	return total, firstErr
}

func (runner *Runner) work(ctx context.Context, features <-chan SourceFeature) (Stats, error) {
	stats := Stats{}
	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case feature, ok := <-features:
			if !ok {
				return stats, nil
			}
			stats.Features++
			decisions := runner.profile.Process(feature)
			if len(decisions) == 0 {
				continue
			}
			if err := Apply(runner.collector, feature, decisions); err != nil {
				return stats, err
			}
			stats.Decisions += int64(len(decisions))
			if feature.Geometry != nil {
				stats.extend(feature.Geometry.Bound(), true)
			}
		}
	}
}

// RunFile reads OSM file and processes every feature in it
func (runner *Runner) RunFile(ctx context.Context, filename string) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner.logger.Info("Start processing",
		zap.String("profile", runner.profile.Name()),
		zap.String("filename", filename),
		zap.Int("workers", runner.workers),
	)

	features := make(chan SourceFeature, runner.queueSize)
	readErr := make(chan error, 1)
	go func() {
		defer close(features)
		readErr <- ReadOSM(ctx, filename, runner.logger, func(feature SourceFeature) error {
			select {
			case features <- feature:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	stats, err := runner.Run(ctx, features)
	if err != nil {
		cancel()
		<-readErr
		return stats, errors.Wrap(err, "Can't process features")
	}
	if err := <-readErr; err != nil {
		return stats, errors.Wrap(err, "Can't read OSM data")
	}
	runner.logger.Info("Done processing",
		zap.Int64("features", stats.Features),
		zap.Int64("decisions", stats.Decisions),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

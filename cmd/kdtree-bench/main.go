package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/valyala/fastrand"
	"golang.org/x/sync/errgroup"

	"github.com/nvmd/libkdtree/internal/buildinfo"
	"github.com/nvmd/libkdtree/internal/config"
	"github.com/nvmd/libkdtree/internal/logging"
	"github.com/nvmd/libkdtree/pkg/container/kdtree"
	"github.com/nvmd/libkdtree/pkg/pqueue"
	"github.com/nvmd/libkdtree/pkg/rworker"
)

func randomCoord(dims int) []float64 {
	coord := make([]float64, dims)
	for i := range coord {
		coord[i] = float64(fastrand.Uint32n(10000)) / 100
	}
	return coord
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.Bench
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Dev)
	if err != nil {
		return err
	}
	defer logger.Sync()
	ctx := logging.NewContext(context.Background(), logger)
	logger = logging.FromContext(ctx)

	logger.Infow("starting bench",
		"name", buildinfo.Info.Name(),
		"tag", buildinfo.Info.Tag(),
		"dimensions", cfg.Dimensions,
		"points", cfg.Points,
		"queries", cfg.Queries,
		"workers", cfg.Workers,
	)

	tree := kdtree.New(cfg.Dimensions, kdtree.SliceAccessor)

	// Generate the point set concurrently: independent random coordinate
	// slices, collected once every generator returns.
	points := make([][]float64, cfg.Points)
	g, _ := errgroup.WithContext(ctx)
	const genWorkers = 8
	chunk := (cfg.Points + genWorkers - 1) / genWorkers
	for w := 0; w < genWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= cfg.Points {
			break
		}
		if end > cfg.Points {
			end = cfg.Points
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				points[i] = randomCoord(cfg.Dimensions)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("generate points: %w", err)
	}

	start := time.Now()
	for i, p := range points {
		if _, err := tree.Insert(p); err != nil {
			return fmt.Errorf("insert point %d: %w", i, err)
		}
	}
	if err := tree.Optimise(); err != nil {
		return fmt.Errorf("optimise: %w", err)
	}
	logger.Infow("tree built", "size", tree.Len(), "elapsed", time.Since(start))

	slow := pqueue.New(pqueue.WithOrderDesc(), pqueue.WithCap(cfg.SlowTop))
	var slowMu sync.Mutex

	var wg sync.WaitGroup
	rate := make(chan struct{}, cfg.Workers)
	errCh := make(chan error, cfg.Queries)

	queryStart := time.Now()
	for q := 0; q < cfg.Queries; q++ {
		query := randomCoord(cfg.Dimensions)
		rworker.Job(&wg, func() error {
			qStart := time.Now()
			tree.FindNearest(query, 1e9)
			elapsed := time.Since(qStart)

			slowMu.Lock()
			slow.Push(query, float64(elapsed))
			slowMu.Unlock()
			return nil
		}, rate, errCh)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		logger.Errorw("query failed", "error", err)
	}

	logger.Infow("queries done",
		"count", cfg.Queries,
		"elapsed", time.Since(queryStart),
	)

	for slow.Len() > 0 {
		v, prior := slow.Seek(0)
		logger.Infow("slow query", "coord", v, "duration", time.Duration(prior))
		slow.Head()
	}

	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/valyala/fastrand"

	"github.com/nvmd/libkdtree/internal/buildinfo"
	"github.com/nvmd/libkdtree/internal/config"
	"github.com/nvmd/libkdtree/internal/logging"
	"github.com/nvmd/libkdtree/pkg/container/kdtree"
)

// demoPoint is a stored value carrying an identity alongside its
// coordinates, so a demo run can report which point a query found
// rather than just its coordinates.
type demoPoint struct {
	id    uuid.UUID
	coord []float64
}

func demoAccessor(v demoPoint, axis int) float64 {
	return v.coord[axis]
}

func randomPoint(dims int) demoPoint {
	coord := make([]float64, dims)
	for i := range coord {
		coord[i] = float64(fastrand.Uint32n(10000)) / 100
	}
	return demoPoint{id: uuid.New(), coord: coord}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.Demo
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

	kdtree.Debug = cfg.Debug

	logger.Infow("starting demo",
		"name", buildinfo.Info.Name(),
		"tag", buildinfo.Info.Tag(),
		"dimensions", cfg.Dimensions,
		"points", cfg.Points,
	)

	tree := kdtree.New(cfg.Dimensions, demoAccessor)

	points := make([]demoPoint, cfg.Points)
	for i := range points {
		points[i] = randomPoint(cfg.Dimensions)
		if _, err := tree.Insert(points[i]); err != nil {
			return fmt.Errorf("insert point %d: %w", i, err)
		}
	}

	if err := tree.Optimise(); err != nil {
		return fmt.Errorf("optimise: %w", err)
	}
	logger.Infow("tree built", "size", tree.Len())

	query := points[0]
	if it := tree.Find(query); it.Valid() {
		logger.Infow("find hit", "id", it.Value().id)
	} else {
		logger.Warnw("find miss", "id", query.id)
	}

	within := tree.FindWithinRange(query, 5)
	logger.Infow("range query", "center", query.id, "radius", 5, "matches", len(within))

	nearest, dist := tree.FindNearest(randomPoint(cfg.Dimensions), 1e9)
	if nearest.Valid() {
		logger.Infow("nearest neighbor", "id", nearest.Value().id, "distance", dist)
	}

	tree.Dump(os.Stdout)
	return nil
}

// Package app is the composition root. Bootstrap wires the resource catalog,
// walker, substitution engine, writer and worker pool for a single run.
package app

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"l10nify.io/l10nify/internal/config"
	"l10nify.io/l10nify/internal/pkg/logger"
	"l10nify.io/l10nify/internal/pkg/worker"
	"l10nify.io/l10nify/internal/resource"
	"l10nify.io/l10nify/internal/substitute"
	"l10nify.io/l10nify/internal/walker"
	"l10nify.io/l10nify/internal/writer"
)

// Application holds composed run dependencies.
type Application struct {
	Config  *config.Config
	RunID   string
	Catalog *resource.Catalog
	Engine  *substitute.Engine
	Walker  *walker.Walker
	Writer  *writer.Writer
	Pool    *worker.Pool
}

// Bootstrap loads the resource catalog and builds everything Run needs.
// A resource file that cannot be loaded aborts here, before any target file
// is touched.
func Bootstrap(cfg *config.Config) (*Application, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}

	catalog, err := resource.Load(cfg.ResourcePath())
	if err != nil {
		return nil, err
	}

	w, err := walker.New(cfg.Root, walker.Options{
		Extension: cfg.Extension,
		Exclude:   cfg.Exclude,
	})
	if err != nil {
		return nil, err
	}

	pool, err := worker.NewPool(worker.PoolConfig{Name: "files", Size: cfg.Worker.PoolSize})
	if err != nil {
		return nil, fmt.Errorf("init worker pool: %w", err)
	}

	logger.Info("Bootstrap complete",
		zap.String("run_id", runID.String()),
		zap.String("root", cfg.Root),
		zap.String("resource", cfg.ResourcePath()),
		zap.Int("entries", catalog.Len()),
		zap.Bool("dry_run", cfg.DryRun),
	)

	return &Application{
		Config:  cfg,
		RunID:   runID.String(),
		Catalog: catalog,
		Engine:  substitute.NewEngine(catalog, cfg.Accessor),
		Walker:  w,
		Writer:  writer.New(cfg.DryRun || cfg.Check),
		Pool:    pool,
	}, nil
}

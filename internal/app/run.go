package app

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "l10nify.io/l10nify/internal/pkg/errors"
	"l10nify.io/l10nify/internal/pkg/logger"
	"l10nify.io/l10nify/internal/substitute"
)

// Messages printed to stdout after a successful run.
const (
	CompletionMessage  = "Hardcoded strings replaced with localization keys."
	CheckPassedMessage = "OK: no hardcoded strings duplicate localization values"
)

// FileChange lists the replacements made in one file.
type FileChange struct {
	Path         string                   `yaml:"path"`
	Replacements []substitute.Replacement `yaml:"replacements"`
}

// Summary describes a run. On failure it holds whatever finished before the
// first error; files already rewritten stay rewritten.
type Summary struct {
	RunID        string       `yaml:"run_id"`
	Root         string       `yaml:"root"`
	Resource     string       `yaml:"resource"`
	DryRun       bool         `yaml:"dry_run"`
	StartedAt    time.Time    `yaml:"started_at"`
	FinishedAt   time.Time    `yaml:"finished_at"`
	FilesScanned int          `yaml:"files_scanned"`
	FilesChanged int          `yaml:"files_changed"`
	Replacements int          `yaml:"replacements"`
	Files        []FileChange `yaml:"files,omitempty"`
}

// Run walks the root and rewrites every selected file. The first read or
// write failure cancels files not yet started and is returned.
func (a *Application) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     a.RunID,
		Root:      a.Config.Root,
		Resource:  a.Config.ResourcePath(),
		DryRun:    a.Writer.DryRun(),
		StartedAt: time.Now().UTC(),
	}

	log := logger.With(zap.String("run_id", a.RunID))

	var mu sync.Mutex
	group, gctx := a.Pool.NewGroup(ctx)
	walkErr := a.Walker.Walk(gctx, func(path string) error {
		return group.Go(func(ctx context.Context) error {
			change, err := a.processFile(log, path)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			summary.FilesScanned++
			if change != nil {
				summary.FilesChanged++
				for _, r := range change.Replacements {
					summary.Replacements += r.Count
				}
				summary.Files = append(summary.Files, *change)
			}
			return nil
		})
	})
	taskErr := group.Wait()

	sort.Slice(summary.Files, func(i, j int) bool {
		return summary.Files[i].Path < summary.Files[j].Path
	})
	summary.FinishedAt = time.Now().UTC()

	if taskErr != nil {
		return summary, taskErr
	}
	if walkErr != nil {
		return summary, walkErr
	}

	log.Info("Run finished",
		zap.Int("files_scanned", summary.FilesScanned),
		zap.Int("files_changed", summary.FilesChanged),
		zap.Int("replacements", summary.Replacements),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)

	if a.Config.Report != "" {
		if err := WriteReport(a.Config.Report, summary); err != nil {
			return summary, err
		}
	}
	if a.Config.Check && summary.FilesChanged > 0 {
		return summary, apperrors.ErrUnlocalizedLiteralsf(summary.Replacements, summary.FilesChanged)
	}
	return summary, nil
}

// Violations lists every replaced literal as "path: "literal" -> key (xN)",
// sorted by path and then by first appearance in the file.
func (s *Summary) Violations() []string {
	var out []string
	for _, f := range s.Files {
		for _, r := range f.Replacements {
			out = append(out, fmt.Sprintf("%s: %q -> %s (x%d)", f.Path, r.Literal, r.Key, r.Count))
		}
	}
	return out
}

// processFile rewrites one file. It returns nil when nothing matched, in
// which case the file is not reopened.
func (a *Application) processFile(log *zap.Logger, path string) (*FileChange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ErrFileReadFailedf(path, err)
	}

	res := a.Engine.Rewrite(string(data))
	if !res.Changed {
		log.Debug("No literals matched", zap.String("path", path))
		return nil, nil
	}

	written, err := a.Writer.Write(path, []byte(res.Text))
	if err != nil {
		return nil, err
	}
	log.Debug("File rewritten",
		zap.String("path", path),
		zap.Int("replacements", res.Total()),
		zap.Bool("written", written),
	)
	return &FileChange{Path: path, Replacements: res.Replacements}, nil
}

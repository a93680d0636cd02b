// Package walker enumerates the target source files under a root directory.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"

	apperrors "l10nify.io/l10nify/internal/pkg/errors"
	"l10nify.io/l10nify/internal/pkg/logger"
)

// Options selects which files are visited.
type Options struct {
	// Extension is the required file name suffix, including the dot.
	Extension string
	// Exclude holds glob patterns matched against the slash-separated path
	// relative to the root. "**" crosses directory boundaries, "*" does not.
	Exclude []string
}

// Walker visits every file under a root whose name ends with the extension.
// Hidden directories and symlinked files are visited like any other.
type Walker struct {
	root    string
	ext     string
	exclude []glob.Glob
}

// New compiles opts for root.
func New(root string, opts Options) (*Walker, error) {
	w := &Walker{root: root, ext: opts.Extension}
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, apperrors.ErrConfigInvalidf(fmt.Sprintf("exclude pattern %q: %v", pattern, err))
		}
		w.exclude = append(w.exclude, g)
	}
	return w, nil
}

// Walk calls fn for each selected file in lexical walk order. It stops at the
// first error from the filesystem, from fn, or from ctx.
func (w *Walker) Walk(ctx context.Context, fn func(path string) error) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return apperrors.ErrWalkFailedf(path, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if w.excluded(path) {
			logger.Debug("Path excluded", zap.String("path", path))
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), w.ext) {
			return nil
		}
		return fn(path)
	})
}

// Files collects the selected paths.
func (w *Walker) Files(ctx context.Context) ([]string, error) {
	var files []string
	err := w.Walk(ctx, func(path string) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (w *Walker) excluded(path string) bool {
	if len(w.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range w.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

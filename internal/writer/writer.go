// Package writer overwrites target files with their rewritten text.
//
// Writes are in place: no temporary file, no backup. A bad match can only be
// undone through version control.
package writer

import (
	"os"

	"go.uber.org/zap"

	apperrors "l10nify.io/l10nify/internal/pkg/errors"
	"l10nify.io/l10nify/internal/pkg/logger"
)

// Writer persists rewritten files unless it is in dry-run mode.
type Writer struct {
	dryRun bool
}

// New returns a Writer. A dry-run Writer never opens a file.
func New(dryRun bool) *Writer {
	return &Writer{dryRun: dryRun}
}

// DryRun reports whether writes are suppressed.
func (w *Writer) DryRun() bool {
	return w.dryRun
}

// Write truncates path and writes content. Existing permission bits are kept.
// It reports whether the file was actually written.
func (w *Writer) Write(path string, content []byte) (bool, error) {
	if w.dryRun {
		logger.Debug("Dry run: write suppressed", zap.String("path", path))
		return false, nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, apperrors.ErrFileWriteFailedf(path, err)
	}
	return true, nil
}

package app

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "l10nify.io/l10nify/internal/pkg/errors"
)

// WriteReport encodes s as YAML to path.
func WriteReport(path string, s *Summary) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return apperrors.ErrReportWriteFailedf(path, err)
	}
	if err := enc.Close(); err != nil {
		return apperrors.ErrReportWriteFailedf(path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.ErrReportWriteFailedf(path, err)
	}
	return nil
}

package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "l10nify.io/l10nify/internal/pkg/errors"
	"l10nify.io/l10nify/internal/pkg/logger"
)

func init() {
	_ = logger.Init("error", "json")
}

func buildTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// "+f), 0o644))
	}
	return root
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestWalk_ExtensionFilter(t *testing.T) {
	root := buildTree(t,
		"main.dart",
		"screens/home.dart",
		"screens/home.dart.bak",
		"screens/widgets/button.dart",
		".hidden/secret.dart",
		"l10n/app_en.arb",
		"README.md",
		"notdart",
	)

	w, err := New(root, Options{Extension: ".dart"})
	require.NoError(t, err)

	files, err := w.Files(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"main.dart",
		"screens/home.dart",
		"screens/widgets/button.dart",
		".hidden/secret.dart",
	}, relAll(t, root, files))
}

func TestWalk_Exclude(t *testing.T) {
	root := buildTree(t,
		"main.dart",
		"generated/intl.dart",
		"screens/home.dart",
		"screens/home.g.dart",
		"screens/deep/nested/model.g.dart",
	)

	tests := []struct {
		name    string
		exclude []string
		want    []string
	}{
		{
			name:    "no patterns",
			exclude: nil,
			want: []string{
				"main.dart", "generated/intl.dart", "screens/home.dart",
				"screens/home.g.dart", "screens/deep/nested/model.g.dart",
			},
		},
		{
			name:    "directory pattern skips subtree",
			exclude: []string{"generated"},
			want: []string{
				"main.dart", "screens/home.dart",
				"screens/home.g.dart", "screens/deep/nested/model.g.dart",
			},
		},
		{
			name:    "double star file pattern",
			exclude: []string{"**.g.dart"},
			want:    []string{"main.dart", "generated/intl.dart", "screens/home.dart"},
		},
		{
			name:    "single star stays in one segment",
			exclude: []string{"screens/*.g.dart"},
			want: []string{
				"main.dart", "generated/intl.dart", "screens/home.dart",
				"screens/deep/nested/model.g.dart",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(root, Options{Extension: ".dart", Exclude: tt.exclude})
			require.NoError(t, err)

			files, err := w.Files(context.Background())
			require.NoError(t, err)
			require.ElementsMatch(t, tt.want, relAll(t, root, files))
		})
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(t.TempDir(), Options{Extension: ".dart", Exclude: []string{"[unclosed"}})
	require.True(t, apperrors.HasCode(err, apperrors.CodeConfigInvalid), "error = %v", err)
}

func TestWalk_MissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "does-not-exist"), Options{Extension: ".dart"})
	require.NoError(t, err)

	err = w.Walk(context.Background(), func(string) error { return nil })
	require.True(t, apperrors.HasCode(err, apperrors.CodeWalkFailed), "error = %v", err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWalk_CallbackErrorStopsWalk(t *testing.T) {
	root := buildTree(t, "a.dart", "b.dart", "c.dart")
	w, err := New(root, Options{Extension: ".dart"})
	require.NoError(t, err)

	stop := apperrors.New(apperrors.CodeFileWriteFailed, "stop")
	calls := 0
	err = w.Walk(context.Background(), func(string) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}

func TestWalk_CancelledContext(t *testing.T) {
	root := buildTree(t, "a.dart")
	w, err := New(root, Options{Extension: ".dart"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = w.Walk(ctx, func(string) error {
		t.Error("callback should not run after cancellation")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func newTestManager(t *testing.T, baseDir string) (*Manager, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	return New(baseDir, &logger), &buf
}

func TestManagerFileOperations(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, dir string)
		operation   func(t *testing.T, mgr *Manager) error
		check       func(t *testing.T, dir string, mgr *Manager)
		wantErr     bool
		errContains string
	}{
		{
			name: "write_creates_parent_dirs",
			operation: func(t *testing.T, mgr *Manager) error {
				return mgr.WriteFile(context.Background(), "a/b/out.html", []byte("hello"))
			},
			check: func(t *testing.T, dir string, mgr *Manager) {
				content, err := os.ReadFile(filepath.Join(dir, "a/b/out.html"))
				require.NoError(t, err, "reading written file")
				assert.Equal(t, "hello", string(content), "content should match")
				assert.NoFileExists(t, filepath.Join(dir, "a/b/out.html.tmp"), "temp file should be gone")
			},
		},
		{
			name: "write_overwrites_existing",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "out.html"), []byte("old content"), 0644))
			},
			operation: func(t *testing.T, mgr *Manager) error {
				return mgr.WriteFileAtomic(context.Background(), "out.html", []byte("new"))
			},
			check: func(t *testing.T, dir string, mgr *Manager) {
				content, err := os.ReadFile(filepath.Join(dir, "out.html"))
				require.NoError(t, err, "reading written file")
				assert.Equal(t, "new", string(content), "content should be replaced")
			},
		},
		{
			name: "write_atomic_missing_dir",
			operation: func(t *testing.T, mgr *Manager) error {
				return mgr.WriteFileAtomic(context.Background(), "missing/out.html", []byte("x"))
			},
			wantErr:     true,
			errContains: "writing temp file",
		},
		{
			name: "read_missing_file",
			operation: func(t *testing.T, mgr *Manager) error {
				_, err := mgr.ReadFile(context.Background(), "nope.html")
				return err
			},
			wantErr:     true,
			errContains: "reading file",
		},
		{
			name: "file_exists",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "in.html"), []byte("x"), 0644))
			},
			operation: func(t *testing.T, mgr *Manager) error {
				ok, err := mgr.FileExists(context.Background(), "in.html")
				require.NoError(t, err)
				assert.True(t, ok, "in.html should exist")

				ok, err = mgr.FileExists(context.Background(), "other.html")
				require.NoError(t, err)
				assert.False(t, ok, "other.html should not exist")
				return nil
			},
		},
		{
			name: "line_endings_kept",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "in.html"), []byte("<p>a</p>\r\n<p>b</p>\r\n"), 0644))
			},
			operation: func(t *testing.T, mgr *Manager) error {
				content, err := mgr.ReadFile(context.Background(), "in.html")
				if err != nil {
					return err
				}
				assert.Equal(t, "<p>a</p>\r\n<p>b</p>\r\n", string(content), "read should not translate CRLF")
				return mgr.WriteFile(context.Background(), "out.html", content)
			},
			check: func(t *testing.T, dir string, mgr *Manager) {
				content, err := os.ReadFile(filepath.Join(dir, "out.html"))
				require.NoError(t, err)
				assert.Equal(t, "<p>a</p>\r\n<p>b</p>\r\n", string(content), "write should not translate line endings")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			mgr, _ := newTestManager(t, dir)
			err := tt.operation(t, mgr)
			if tt.wantErr {
				require.Error(t, err, "operation should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "operation should succeed")
			if tt.check != nil {
				tt.check(t, dir, mgr)
			}
		})
	}
}

func TestManagerClassify(t *testing.T) {
	dir := t.TempDir()
	mgr, _ := newTestManager(t, dir)
	ctx := context.Background()

	st, err := mgr.Classify(ctx, "out.html", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, StatusNew, st)

	require.NoError(t, mgr.WriteFile(ctx, "out.html", []byte("a")))

	st, err = mgr.Classify(ctx, "out.html", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, st)

	st, err = mgr.Classify(ctx, "out.html", []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, StatusModified, st)
}

func TestManagerAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	mgr, _ := newTestManager(t, "")

	abs := filepath.Join(dir, "abs.html")
	require.NoError(t, mgr.WriteFile(context.Background(), abs, []byte("x")))

	content, err := mgr.ReadFile(context.Background(), abs)
	require.NoError(t, err)
	assert.Equal(t, "x", string(content))
}

func TestManagerTracking(t *testing.T) {
	mgr, buf := newTestManager(t, t.TempDir())
	ctx := context.Background()

	mgr.StartOperation(ctx, 3)
	mgr.TrackFile(ctx, "b.html", FileInfo{Source: "in/b.html", Status: StatusModified, Matches: 2})
	mgr.UpdateProgress(ctx, 1)
	mgr.TrackFile(ctx, "a.html", FileInfo{Source: "in/a.html", Status: StatusNew, Matches: 1})
	mgr.UpdateProgress(ctx, 2)
	mgr.TrackFile(ctx, "c.html", FileInfo{Source: "in/c.html", Status: StatusFailed, Error: errors.New("boom")})
	mgr.UpdateProgress(ctx, 3)
	mgr.FinishOperation(ctx)

	files, err := mgr.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "a.html", files[0].Path, "files should be sorted by path")
	assert.Equal(t, "b.html", files[1].Path)
	assert.Equal(t, "c.html", files[2].Path)

	info, err := mgr.GetFileInfo(ctx, "b.html")
	require.NoError(t, err)
	assert.Equal(t, 2, info.Matches)
	assert.Equal(t, StatusModified, info.Status)

	_, err = mgr.GetFileInfo(ctx, "missing.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not tracked")

	assert.Equal(t, 3, mgr.Processed())

	logs := buf.String()
	assert.Contains(t, logs, "✨ Created a.html (1 confirm button)")
	assert.Contains(t, logs, "📝 Modified b.html (2 confirm buttons)")
	assert.Contains(t, logs, "❌ Error: boom")
	assert.Contains(t, logs, "✅ Progress: 3/3 (100%)")
}

func TestFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"new", f.FormatFileOperation("x.html", StatusNew, 2), "✨ Created x.html (2 confirm buttons)"},
		{"modified", f.FormatFileOperation("x.html", StatusModified, 1), "📝 Modified x.html (1 confirm button)"},
		{"unchanged", f.FormatFileOperation("x.html", StatusUnchanged, 0), "👍 Unchanged x.html"},
		{"skipped", f.FormatFileOperation("x.html", StatusSkipped, 0), "⏭️  Skipped x.html (0 confirm buttons)"},
		{"failed", f.FormatFileOperation("x.html", StatusFailed, 0), "❌ Failed x.html"},
		{"progress_partial", f.FormatProgress(1, 4), "⏳ Progress: 1/4 (25%)"},
		{"progress_done", f.FormatProgress(4, 4), "✅ Progress: 4/4 (100%)"},
		{"progress_empty", f.FormatProgress(0, 0), "✅ Progress: 0/0 (0%)"},
		{"error_nil", f.FormatError(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFileStatusString(t *testing.T) {
	assert.Equal(t, "new", StatusNew.String())
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

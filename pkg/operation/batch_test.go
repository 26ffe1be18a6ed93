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

package operation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/qtyconfirm/pkg/operation"
	"github.com/walteh/qtyconfirm/pkg/status"
	"github.com/walteh/qtyconfirm/pkg/text"
	"gitlab.com/tozd/go/errors"
)

func TestBatchOperation(t *testing.T) {
	env := createTestEnv(t, "out")
	root := filepath.Join(env.dir, "site")
	outDir := filepath.Join(env.dir, "out")

	files := map[string]string{
		"site/index.html":         button("a") + "\n" + button("b"),
		"site/cart/list.html":     "<ul><li>" + button("c") + "</li></ul>",
		"site/about.htm":          button("d"),
		"site/legacy/old.html":    button("e"),
		"site/notes.txt":          button("f"),
		"site/empty/plain.html":   "<p>no buttons</p>",
		"site/cart/nested/x.html": button("g"),
	}
	for rel, content := range files {
		env.write(t, rel, content)
	}

	op := operation.NewBatchOperation(env.opts, root, []string{"**/*.html", "**/*.htm"}, []string{"legacy/**"}, 2)
	op.OutDir = outDir
	require.NoError(t, op.Execute(env.ctx))

	for _, rel := range []string{"index.html", "cart/list.html", "about.htm", "empty/plain.html", "cart/nested/x.html"} {
		want := text.Transform(files["site/"+rel])
		assert.Equal(t, want, env.read(t, filepath.Join("out", rel)), "output for %s", rel)
	}

	assert.NoFileExists(t, filepath.Join(outDir, "legacy/old.html"), "ignored files should not be written")
	assert.NoFileExists(t, filepath.Join(outDir, "notes.txt"), "unmatched files should not be written")
	assert.Equal(t, 5, op.Matches(), "a, b, c, d and g should be injected")

	tracked, err := env.store.ListFiles(env.ctx)
	require.NoError(t, err)
	require.Len(t, tracked, 5)
	assert.Equal(t, "about.htm", tracked[0].Path)
	for _, info := range tracked {
		assert.Equal(t, status.StatusNew, info.Status, "%s should be new", info.Path)
	}
	assert.Equal(t, 5, env.store.Processed())

	assert.Contains(t, env.console.String(), "[injecting "+outDir+"]")
}

func TestBatchOperation_SkipsOutputInsideRoot(t *testing.T) {
	env := createTestEnv(t, "site/out")
	root := filepath.Join(env.dir, "site")

	env.write(t, "site/index.html", button("a"))
	env.write(t, "site/out/index.html", "previous output")

	op := operation.NewBatchOperation(env.opts, root, nil, nil, 0)
	op.OutDir = filepath.Join(root, "out")
	require.NoError(t, op.Execute(env.ctx))

	tracked, err := env.store.ListFiles(env.ctx)
	require.NoError(t, err)
	require.Len(t, tracked, 1, "only the source file should be processed")
	assert.Equal(t, "index.html", tracked[0].Path)
	assert.Equal(t, status.StatusModified, tracked[0].Status)
	assert.Equal(t, text.Transform(button("a")), env.read(t, "site/out/index.html"))
}

func TestBatchOperation_DryRun(t *testing.T) {
	env := createTestEnv(t, "out")
	env.opts.DryRun = true
	env.write(t, "site/a.html", button("a")+button("b"))

	op := operation.NewBatchOperation(env.opts, filepath.Join(env.dir, "site"), nil, nil, 1)
	require.NoError(t, op.Execute(env.ctx))

	assert.Equal(t, 2, op.Matches())
	assert.NoDirExists(t, filepath.Join(env.dir, "out"), "dry run should not create the output dir")
}

func TestBatchOperation_FailureStopsBatch(t *testing.T) {
	env := createTestEnv(t, "out")
	env.write(t, "site/good.html", button("a"))
	env.write(t, "site/bad.html", "bad\xff")

	op := operation.NewBatchOperation(env.opts, filepath.Join(env.dir, "site"), nil, nil, 1)
	err := op.Execute(env.ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "processing bad.html")
	assert.True(t, errors.Is(err, text.ErrInvalidUTF8))
}

func TestBatchOperation_InvalidGlob(t *testing.T) {
	env := createTestEnv(t, "out")
	require.NoError(t, os.MkdirAll(filepath.Join(env.dir, "site"), 0755))

	op := operation.NewBatchOperation(env.opts, filepath.Join(env.dir, "site"), []string{"[*.html"}, nil, 1)
	err := op.Execute(env.ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collecting files")
}

func TestBatchOperation_Cancelled(t *testing.T) {
	env := createTestEnv(t, "out")
	env.write(t, "site/a.html", button("a"))

	ctx, cancel := context.WithCancel(env.ctx)
	cancel()

	op := operation.NewBatchOperation(env.opts, filepath.Join(env.dir, "site"), nil, nil, 1)
	err := op.Execute(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NoFileExists(t, filepath.Join(env.dir, "out", "a.html"))
}

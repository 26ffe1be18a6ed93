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

package operation

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/qtyconfirm/pkg/log"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📦 BatchOperation injects confirm buttons into every document under Root
// that matches Globs, mirroring the relative layout into the Store's base dir
type BatchOperation struct {
	BaseOperation

	Root   string
	Globs  []string
	Ignore []string
	Jobs   int

	// OutDir is reported as the destination, and inputs inside it are never picked up
	OutDir string

	matches atomic.Int64
}

// 🏭 NewBatchOperation creates a batch operation
func NewBatchOperation(opts Options, root string, globs, ignore []string, jobs int) *BatchOperation {
	return &BatchOperation{
		BaseOperation: NewBaseOperation(opts),
		Root:          root,
		Globs:         globs,
		Ignore:        ignore,
		Jobs:          jobs,
	}
}

// 🏃 Execute runs the batch. The first failing file cancels the rest.
func (op *BatchOperation) Execute(ctx context.Context) error {
	if err := op.validate(); err != nil {
		return err
	}

	root, err := filepath.Abs(op.Root)
	if err != nil {
		return errors.Errorf("resolving root: %w", err)
	}

	files, err := op.collect(root)
	if err != nil {
		return errors.Errorf("collecting files: %w", err)
	}

	op.Store.StartOperation(ctx, len(files))
	defer op.Store.FinishOperation(ctx)

	op.Console.StartBatchOperation(ctx, log.BatchOperation{
		Root:        op.Root,
		Destination: op.OutDir,
		Globs:       op.Globs,
		Files:       len(files),
		DryRun:      op.DryRun,
	})
	defer op.Console.EndBatchOperation(ctx)

	jobs := op.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	var (
		mu        sync.Mutex
		processed int
	)
	for _, rel := range files {
		if gctx.Err() != nil {
			break
		}
		rel := rel // per-iteration copy; go directive lowered to 1.21 for the local toolchain
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			inject := NewInjectOperation(op.Options, filepath.Join(root, filepath.FromSlash(rel)), filepath.FromSlash(rel))
			if err := inject.Execute(gctx); err != nil {
				return errors.Errorf("processing %s: %w", rel, err)
			}

			op.matches.Add(int64(inject.Result().ReplacementCount))

			mu.Lock()
			processed++
			op.Store.UpdateProgress(gctx, processed)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// Matches returns the number of confirm buttons injected so far
func (op *BatchOperation) Matches() int {
	return int(op.matches.Load())
}

// 🔍 collect returns the sorted, de-duplicated slash paths relative to root
func (op *BatchOperation) collect(root string) ([]string, error) {
	globs := op.Globs
	if len(globs) == 0 {
		globs = []string{"**/*.html"}
	}

	outRel := ""
	if op.OutDir != "" {
		out, err := filepath.Abs(op.OutDir)
		if err != nil {
			return nil, errors.Errorf("resolving output dir: %w", err)
		}
		if rel, err := filepath.Rel(root, out); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			outRel = filepath.ToSlash(rel) + "/"
		}
	}

	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range globs {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}

			if outRel != "" && strings.HasPrefix(m, outRel) {
				continue
			}
			if op.shouldIgnore(m) {
				continue
			}
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// 🔍 shouldIgnore checks if a file should be ignored
func (op *BatchOperation) shouldIgnore(path string) bool {
	for _, pattern := range op.Ignore {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			op.Logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			op.Logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

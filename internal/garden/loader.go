package garden

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	gerrors "github.com/Chemchu/guslee/internal/errors"
)

// LoadTree walks the content root and parses every document file in it.
//
// A file that cannot be read or whose front matter cannot be parsed is
// logged and skipped; the rest of the tree still loads. An unreadable
// root is fatal and returns an error. Results are sorted by file path so
// ingestion order is deterministic regardless of walk or worker order.
func LoadTree(ctx context.Context, root, extension string) ([]*Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, gerrors.ContentRootError(root, err)
	}
	if !info.IsDir() {
		return nil, gerrors.ContentRootError(root, nil)
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("document_skipped",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if extension != "" && !strings.HasSuffix(path, extension) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, gerrors.ContentRootError(root, walkErr)
	}

	var (
		mu   sync.Mutex
		docs []*Document
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := loadFile(root, path)
			if err != nil {
				// Recoverable: the file is simply absent from the index.
				slog.Warn("document_skipped",
					slog.String("path", path),
					slog.String("error", err.Error()))
				return nil
			}

			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].FilePath < docs[j].FilePath })

	slog.Info("garden_loaded",
		slog.String("root", root),
		slog.Int("documents", len(docs)),
		slog.Int("skipped", len(paths)-len(docs)))

	return docs, nil
}

// loadFile reads and parses a single document file.
func loadFile(root, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeFileSkipped, err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeFileSkipped, err)
	}
	// File paths act as document keys; keep them slash-separated.
	rel = filepath.ToSlash(rel)

	return ParseDocument(filepath.Base(path), rel, string(data))
}

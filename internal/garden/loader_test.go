package garden

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/Chemchu/guslee/internal/errors"
)

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadTree_LoadsNestedDocuments(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "welcome.md", "---\ntitle: Welcome\n---\nhello\n")
	writeDoc(t, root, "notes/dublin.md", "---\ntitle: Dublin\ntopic: ireland\n---\nhowth\n")

	docs, err := LoadTree(context.Background(), root, ".md")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Sorted by file path.
	assert.Equal(t, "notes/dublin.md", docs[0].FilePath)
	assert.Equal(t, "dublin.md", docs[0].FileName)
	assert.Equal(t, "Dublin", docs[0].Metadata.Title)
	assert.Equal(t, "welcome.md", docs[1].FilePath)
}

func TestLoadTree_MissingRootIsFatal(t *testing.T) {
	_, err := LoadTree(context.Background(), filepath.Join(t.TempDir(), "absent"), ".md")
	require.Error(t, err)
	assert.Equal(t, gerrors.ErrCodeContentRoot, gerrors.GetCode(err))
	assert.True(t, gerrors.IsFatal(err))
}

func TestLoadTree_RootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := LoadTree(context.Background(), file, ".md")
	require.Error(t, err)
	assert.Equal(t, gerrors.ErrCodeContentRoot, gerrors.GetCode(err))
}

func TestLoadTree_SkipsMalformedFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "good.md", "---\ntitle: Good\n---\nbody\n")
	writeDoc(t, root, "bad.md", "---\ntitle: [broken\n---\nbody\n")

	docs, err := LoadTree(context.Background(), root, ".md")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "good.md", docs[0].FilePath)
}

func TestLoadTree_IgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "post.md", "---\ntitle: Post\n---\nbody\n")
	writeDoc(t, root, "image.png", "\x89PNG")
	writeDoc(t, root, "style.css", "body {}")

	docs, err := LoadTree(context.Background(), root, ".md")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "post.md", docs[0].FilePath)
}

func TestLoadTree_EmptyGardenIsNotAnError(t *testing.T) {
	docs, err := LoadTree(context.Background(), t.TempDir(), ".md")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

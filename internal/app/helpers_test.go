package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/jmoiron/rjview/rjson"
)

// writeTree creates files under a fresh temp dir and returns the dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

var sampleTree = map[string]string{
	"book.rjson":       `{"title": "Dune", "tags": ["desert", "spice"], "pages": 412}`,
	"nested/list.json": `[1, 2.5, "three"]`,
	"broken.rjson":     "[1,\n 2",
	"notes.txt":        "not a document",
}

func newTestLibrary(t *testing.T, files map[string]string, cfg rjson.Config) *Library {
	t.Helper()
	lib, err := NewLibrary(writeTree(t, files), cfg, log.NewNopLogger())
	require.NoError(t, err)
	return lib
}

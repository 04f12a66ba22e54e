// Shared helpers for bookshelf integration tests.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emarai/bookshelf/internal/sqlite"
	"github.com/emarai/bookshelf/pkg/types"
)

// newAttachedBackend creates a SQLite backend attached to a fresh temp
// data directory. Returns the backend and the data directory path.
func newAttachedBackend(t *testing.T) (*sqlite.Backend, string) {
	t.Helper()

	dataDir := t.TempDir()
	backend := sqlite.NewBackend()
	err := backend.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	})
	require.NoError(t, err)

	return backend, dataDir
}

// addBook creates a book with the given owner and title and returns its id.
func addBook(t *testing.T, backend *sqlite.Backend, owner, title string) string {
	t.Helper()

	id, err := backend.AddBook(owner, &types.Book{
		Title:       title,
		Description: "Tutorial for mechanics",
		Status:      types.StatusList,
		Image:       "https://example.com",
	})
	require.NoError(t, err)
	return id
}

func strptr(s string) *string { return &s }

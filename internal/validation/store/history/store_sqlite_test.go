package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"validarfc/internal/validation/models"
	"validarfc/internal/validation/store/history"
)

type SQLiteStoreSuite struct {
	contractSuite
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &SQLiteStoreSuite{
		contractSuite: contractSuite{
			newStore: func(t *testing.T) historyStore {
				store, err := history.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
				require.NoError(t, err)
				t.Cleanup(func() { _ = store.Close() })
				return store
			},
		},
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := history.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, models.Record{RFC: "ABC123456", IsValid: true, CreatedAt: time.Now().UTC()}))
	require.NoError(t, store.Close())

	reopened, err := history.OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	page, err := reopened.ListPage(ctx, models.PageRequest{Page: 1, PerPage: 5})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "ABC123456", page.Items[0].RFC)
}

func TestSQLiteStore_ClosedDatabaseFails(t *testing.T) {
	store, err := history.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.ListPage(context.Background(), models.PageRequest{Page: 1, PerPage: 5})
	require.Error(t, err)
}

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/dvrhub/internal/domain/model"
)

func TestRecordRepo_LoadAllEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)

	records, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRecordRepo_AppendThenLoadAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)
	ctx := context.Background()

	rec := model.Record{Brand: "Dahua", Model: "XVR5104", User: "admin", Pass: "admin", Info: "Factory default"}
	require.NoError(t, repo.Append(ctx, rec))

	records, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestRecordRepo_PreservesInsertionOrderAndDuplicates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)
	ctx := context.Background()

	first := model.Record{Brand: "Hikvision", Model: "DS-7204", User: "admin", Pass: "12345", Info: "Hold reset 10s"}
	second := model.Record{Brand: "Hikvision", Model: "DS-7204", User: "admin", Pass: "other"}
	third := model.Record{Brand: "Axis", Model: "M1065", User: "root", Pass: "pass"}

	for _, rec := range []model.Record{first, second, third} {
		require.NoError(t, repo.Append(ctx, rec))
	}

	records, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Record{first, second, third}, records)
}

func TestRecordRepo_EmptyOptionalFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, model.Record{Brand: "Uniview", Model: "NVR301"}))

	records, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].User)
	assert.Equal(t, "", records[0].Info)
}

func TestNewDB_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dvrhub.db")

	db, err := NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	assert.Equal(t, path, db.Path())

	require.NoError(t, RunMigrations(db.Writer))
	require.NoError(t, RunMigrations(db.Writer), "second run must be a no-op")

	repo := NewRecordRepo(db)
	require.NoError(t, repo.Append(context.Background(), model.Record{Brand: "TVT", Model: "TD-2104"}))

	records, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

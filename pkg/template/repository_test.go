package template

import (
	"os"
	"testing"
	"time"

	"github.com/bps3210/simkak/internal/test_utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) Repository {
	require.NoError(t, test_utils.TruncateAll(ctx, db))
	return NewRepository(db)
}

func newAsset(path string, createdAt time.Time) TemplateAsset {
	return TemplateAsset{
		Id:        uuid.New(),
		Name:      path,
		FilePath:  path,
		Profile:   "camel/v1",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestRepositoryImpl_FindDefault(t *testing.T) {
	t.Run("should return oldest template when none is flagged", func(t *testing.T) {
		// given
		repo := setupTestRepository(t)
		base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
		_, err := repo.Create(ctx, newAsset("template_2.docx", base.Add(time.Hour)))
		require.NoError(t, err)
		_, err = repo.Create(ctx, newAsset("template_1.docx", base))
		require.NoError(t, err)

		// when
		found, err := repo.FindDefault(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, "template_1.docx", found.FilePath)
	})

	t.Run("should report missing template on empty table", func(t *testing.T) {
		// given
		repo := setupTestRepository(t)

		// when
		_, err := repo.FindDefault(ctx)

		// then
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestRepositoryImpl_SetDefault(t *testing.T) {
	// given
	repo := setupTestRepository(t)
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	first, err := repo.Create(ctx, newAsset("template_1.docx", base))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newAsset("template_2.docx", base.Add(time.Hour)))
	require.NoError(t, err)

	// when
	_, err = repo.SetDefault(ctx, first.Id)
	require.NoError(t, err)
	updated, err := repo.SetDefault(ctx, second.Id)
	require.NoError(t, err)

	// then
	assert.True(t, updated.IsDefault)
	stored, err := repo.Get(ctx, first.Id)
	require.NoError(t, err)
	assert.False(t, stored.IsDefault)
	found, err := repo.FindDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.Id, found.Id)
}

func TestRepositoryImpl_GetByPathAndDelete(t *testing.T) {
	// given
	repo := setupTestRepository(t)
	asset, err := repo.Create(ctx, newAsset("template_1.docx", time.Now().UTC()))
	require.NoError(t, err)

	// when
	byPath, err := repo.GetByPath(ctx, "template_1.docx")
	require.NoError(t, err)
	deleted, err := repo.Delete(ctx, asset.Id)
	require.NoError(t, err)

	// then
	assert.Equal(t, asset.Id, byPath.Id)
	assert.True(t, deleted)
	_, err = repo.GetByPath(ctx, "template_1.docx")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

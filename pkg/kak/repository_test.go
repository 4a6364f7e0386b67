package kak

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/bps3210/simkak/internal/test_utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

func setupTestRepository(t *testing.T) (context.Context, Repository) {
	ctx := context.Background()
	require.NoError(t, test_utils.TruncateAll(ctx, db))
	return ctx, NewRepository(db)
}

func storedProposal() Proposal {
	p := validProposal()
	p.Id = uuid.New()
	p.CreatedBy = Creator{Name: "Fungsi Neraca", Role: "Neraca"}
	p.CreatedAt = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	p.UpdatedAt = p.CreatedAt
	p.Normalize()
	return p
}

func TestRepositoryImpl_CreateAndGet(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	p := storedProposal()
	p.Items[0].Volume = decimal.RequireFromString("2.5")

	// when
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)
	stored, err := repo.Get(ctx, p.Id)

	// then
	require.NoError(t, err)
	assert.Equal(t, p.JenisKAK, stored.JenisKAK)
	assert.Equal(t, p.CreatedBy, stored.CreatedBy)
	assert.True(t, p.TanggalMulai.Equal(stored.TanggalMulai))
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "Kertas A4", stored.Items[0].Nama)
	assert.True(t, decimal.RequireFromString("2.5").Equal(stored.Items[0].Volume))
	assert.Equal(t, int64(2_500_000), stored.Items[0].Subtotal)
}

func TestRepositoryImpl_Get_NotFound(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	_, err := repo.Get(ctx, uuid.New())

	// then
	assert.ErrorIs(t, err, ErrProposalNotFound)
}

func TestRepositoryImpl_Update_ReplacesItems(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	p := storedProposal()
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)
	p.Items = p.Items[1:]
	p.KomponenOutput = "changed"

	// when
	_, err = repo.Update(ctx, p)
	require.NoError(t, err)
	stored, err := repo.Get(ctx, p.Id)

	// then
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.KomponenOutput)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Toner", stored.Items[0].Nama)
}

func TestRepositoryImpl_ListWithFilter(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	bahan := storedProposal()
	modal := storedProposal()
	modal.JenisKAK = "Belanja Modal"
	modal.CreatedAt = modal.CreatedAt.Add(time.Hour)
	_, err := repo.Create(ctx, bahan)
	require.NoError(t, err)
	_, err = repo.Create(ctx, modal)
	require.NoError(t, err)

	// when
	all, err := repo.List(ctx, Filter{})
	require.NoError(t, err)
	onlyModal, err := repo.List(ctx, Filter{Jenis: "Belanja Modal"})
	require.NoError(t, err)
	searched, err := repo.List(ctx, Filter{Query: "METADATA"})
	require.NoError(t, err)

	// then
	require.Len(t, all, 2)
	assert.Equal(t, modal.Id, all[0].Id)
	assert.Len(t, all[1].Items, 2)
	assert.Len(t, onlyModal, 1)
	assert.Len(t, searched, 2)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	p := storedProposal()
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)

	// when
	deleted, err := repo.Delete(ctx, p.Id)
	require.NoError(t, err)
	again, err := repo.Delete(ctx, p.Id)
	require.NoError(t, err)

	// then
	assert.True(t, deleted)
	assert.False(t, again)
}

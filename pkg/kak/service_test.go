package kak

import (
	"context"
	"testing"
	"time"

	"github.com/bps3210/simkak/internal/test_utils"
	"github.com/bps3210/simkak/internal/utils"
	"github.com/bps3210/simkak/pkg/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Username: "SOSIAL3210", Name: "Fungsi Sosial", Role: "Sosial"})

var repoStub = NewStubRepository()

var clock = &utils.MockClock{FixedNow: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)}

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, DefaultCatalog(), clock)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should stamp id, creator and subtotals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		p := validProposal()
		p.Items[0].Subtotal = 1

		// when
		created, err := service.Create(ctx, p)

		// then
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.Id)
		assert.Equal(t, Creator{Name: "Fungsi Sosial", Role: "Sosial"}, created.CreatedBy)
		assert.Equal(t, clock.Now(), created.CreatedAt)
		assert.Equal(t, int64(5_000_000), created.Items[0].Subtotal)
		stored, err := repoStub.Get(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(10_000_000), stored.PaguDigunakan())
	})

	t.Run("should return validation errors", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		p := validProposal()
		p.PaguAnggaran = 1

		// when
		_, err := service.Create(ctx, p)

		// then
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "paguAnggaran")
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), validProposal())

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should keep creator and refresh update time", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, validProposal())
		require.NoError(t, err)
		clock.SetNow(clock.Now().Add(time.Hour))
		defer clock.SetNow(clock.Now().Add(-time.Hour))
		editor := test_utils.ContextWithTestUser(context.Background())
		changed := created
		changed.PaguAnggaran = 12_000_000
		changed.CreatedBy = Creator{}

		// when
		updated, err := service.Update(editor, changed)

		// then
		require.NoError(t, err)
		assert.Equal(t, int64(12_000_000), updated.PaguAnggaran)
		assert.Equal(t, "Fungsi Sosial", updated.CreatedBy.Name)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("should return not found for unknown proposal", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		p := validProposal()
		p.Id = uuid.New()

		// when
		_, err := service.Update(ctx, p)

		// then
		assert.ErrorIs(t, err, ErrProposalNotFound)
	})
}

func TestServiceImpl_Duplicate(t *testing.T) {
	t.Run("should copy every field except identifiers", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		original, err := service.Create(ctx, validProposal())
		require.NoError(t, err)

		// when
		dup, err := service.Duplicate(ctx, original.Id)

		// then
		require.NoError(t, err)
		assert.NotEqual(t, original.Id, dup.Id)
		assert.Equal(t, original.JenisKAK, dup.JenisKAK)
		assert.Equal(t, original.CreatedBy, dup.CreatedBy)
		assert.Equal(t, original.PaguDigunakan(), dup.PaguDigunakan())
		all, err := service.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete existing proposal", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, validProposal())
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, created.Id)

		// then
		require.NoError(t, err)
		_, err = service.Get(ctx, created.Id)
		assert.ErrorIs(t, err, ErrProposalNotFound)
	})

	t.Run("should return not found for unknown proposal", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, uuid.New())

		// then
		assert.ErrorIs(t, err, ErrProposalNotFound)
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should filter by jenis and search text", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, validProposal())
		require.NoError(t, err)
		modal := validProposal()
		modal.JenisKAK = "Belanja Modal"
		modal.AkunBelanja = "Belanja Modal Peralatan dan Mesin (532111)"
		_, err = service.Create(ctx, modal)
		require.NoError(t, err)

		// when
		byJenis, err := service.List(ctx, Filter{Jenis: "Belanja Modal"})
		require.NoError(t, err)
		byQuery, err := service.List(ctx, Filter{Query: "metadata"})
		require.NoError(t, err)

		// then
		assert.Len(t, byJenis, 1)
		assert.Len(t, byQuery, 2)
	})
}

func TestServiceImpl_Summary(t *testing.T) {
	t.Run("should aggregate totals per jenis and month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, validProposal())
		require.NoError(t, err)
		later := validProposal()
		later.PaguAnggaran = 20_000_000
		later.TanggalPengajuan = date(2025, time.April, 2)
		later.TanggalMulai = date(2025, time.April, 3)
		later.TanggalAkhir = date(2025, time.April, 30)
		_, err = service.Create(ctx, later)
		require.NoError(t, err)

		// when
		summary, err := service.Summary(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, summary.TotalProposals)
		assert.Equal(t, int64(30_000_000), summary.TotalPagu)
		assert.Equal(t, int64(20_000_000), summary.TotalDigunakan)
		require.Len(t, summary.ByJenis, 1)
		assert.Equal(t, 2, summary.ByJenis[0].Count)
		require.Len(t, summary.ByMonth, 2)
		assert.Equal(t, "Maret 2025", summary.ByMonth[0].Label)
		assert.Equal(t, "April 2025", summary.ByMonth[1].Label)
	})
}

package kak

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = DefaultCatalog()

func TestValidate(t *testing.T) {
	t.Run("should accept a complete proposal", func(t *testing.T) {
		assert.Nil(t, Validate(validProposal(), catalog))
	})

	t.Run("should require every selection", func(t *testing.T) {
		// when
		errs := Validate(Proposal{}, catalog)

		// then
		require.NotNil(t, errs)
		assert.Equal(t, "Jenis KAK harus dipilih", errs["jenisKAK"])
		assert.Equal(t, "Program pembebanan harus dipilih", errs["programPembebanan"])
		assert.Equal(t, "Kegiatan harus dipilih", errs["kegiatan"])
		assert.Equal(t, "Akun belanja harus dipilih", errs["akunBelanja"])
		assert.Equal(t, "Pagu anggaran harus diisi dan lebih dari 0", errs["paguAnggaran"])
		assert.Equal(t, "Tanggal pengajuan harus diisi", errs["tanggalPengajuan"])
		assert.Equal(t, "Harus ada minimal satu item kegiatan", errs["items"])
	})

	t.Run("should reject selections outside the cascade", func(t *testing.T) {
		// given
		p := validProposal()
		p.Kegiatan = "Dukungan Manajemen dan Pelaksanaan Tugas Teknis Lainnya BPS Provinsi (2886)"
		p.AkunBelanja = "Belanja Modal Peralatan dan Mesin (532111)"

		// when
		errs := Validate(p, catalog)

		// then
		assert.Equal(t, "Kegiatan tidak sesuai dengan program pembebanan", errs["kegiatan"])
		assert.Equal(t, "Akun belanja tidak sesuai dengan jenis KAK", errs["akunBelanja"])
	})

	t.Run("should reject ceiling below used amount", func(t *testing.T) {
		// given
		p := validProposal()
		p.PaguAnggaran = 9_999_999

		// when
		errs := Validate(p, catalog)

		// then
		assert.Equal(t, "Pagu anggaran harus lebih besar dari total yang digunakan", errs["paguAnggaran"])
	})

	t.Run("should enforce date ordering", func(t *testing.T) {
		// given
		p := validProposal()
		p.TanggalPengajuan = p.TanggalMulai.AddDate(0, 0, 1)
		p.TanggalAkhir = p.TanggalMulai.AddDate(0, 0, -1)

		// when
		errs := Validate(p, catalog)

		// then
		assert.Equal(t, "Tanggal pengajuan harus sebelum tanggal mulai", errs["tanggalPengajuan"])
		assert.Equal(t, "Tanggal akhir harus setelah tanggal mulai", errs["tanggalAkhir"])
	})

	t.Run("should accept equal dates", func(t *testing.T) {
		// given
		p := validProposal()
		p.TanggalPengajuan = p.TanggalMulai
		p.TanggalAkhir = p.TanggalMulai

		// then
		assert.Nil(t, Validate(p, catalog))
	})

	t.Run("should key item errors by index", func(t *testing.T) {
		// given
		p := validProposal()
		p.Items[1] = LineItem{Volume: decimal.Zero, Satuan: "Karung"}

		// when
		errs := Validate(p, catalog)

		// then
		assert.Equal(t, "Nama item harus diisi", errs["item_1_nama"])
		assert.Equal(t, "Volume harus lebih dari 0", errs["item_1_volume"])
		assert.Equal(t, "Satuan tidak dikenal", errs["item_1_satuan"])
		assert.Equal(t, "Harga satuan harus lebih dari 0", errs["item_1_hargaSatuan"])
		assert.NotContains(t, errs, "item_0_nama")
	})
}

func TestCatalog_OptionsFor(t *testing.T) {
	t.Run("should narrow options by upstream selection", func(t *testing.T) {
		// when
		options := catalog.OptionsFor(Selection{
			JenisKAK:          "Belanja Modal",
			ProgramPembebanan: programGG,
			Kegiatan:          kegiatan97,
			RincianOutput:     "Fasilitasi dan Pembinaan Lembaga (2897.QDB)",
		})

		// then
		assert.Len(t, options.JenisKAK, 5)
		assert.Contains(t, options.Kegiatan, kegiatan97)
		assert.Equal(t, []string{rincian97, "Fasilitasi dan Pembinaan Lembaga (2897.QDB)"}, options.RincianOutput)
		assert.Equal(t, []string{"PENGUATAN PENYELENGGARAAN PEMBINAAN STATISTIK SEKTORAL (2897.QDB.003)"}, options.KomponenOutput)
		assert.Len(t, options.AkunBelanja, 2)
	})

	t.Run("should return empty lists without selection", func(t *testing.T) {
		// when
		options := catalog.OptionsFor(Selection{})

		// then
		assert.Empty(t, options.Kegiatan)
		assert.NotNil(t, options.Kegiatan)
		assert.Len(t, options.Satuan, 17)
	})
}

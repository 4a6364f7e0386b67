package kak

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	programGG  = "Program Penyediaan dan Pelayanan Informasi Statistik (054.01.GG)"
	kegiatan97 = "Pelayanan dan Pengembangan Diseminasi Informasi Statistik (2897)"
	rincian97  = "Data dan Informasi Publik (2897.BMA)"
	komponen97 = "LAPORAN DISEMINASI DAN METADATA STATISTIK (2897.BMA.004)"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// validProposal has a ceiling of 10.000.000 fully used by 5×1.000.000 and 1×5.000.000.
func validProposal() Proposal {
	return Proposal{
		JenisKAK:          "Belanja Bahan",
		ProgramPembebanan: programGG,
		Kegiatan:          kegiatan97,
		RincianOutput:     rincian97,
		KomponenOutput:    komponen97,
		SubKomponen:       "PERSIAPAN (051)",
		AkunBelanja:       "Belanja Barang Operasional Lainnya (521119)",
		PaguAnggaran:      10_000_000,
		TanggalPengajuan:  date(2025, time.March, 1),
		TanggalMulai:      date(2025, time.March, 10),
		TanggalAkhir:      date(2025, time.April, 10),
		Items: []LineItem{
			{Nama: "Kertas A4", Volume: decimal.NewFromInt(5), Satuan: "Paket", HargaSatuan: 1_000_000},
			{Nama: "Toner", Volume: decimal.NewFromInt(1), Satuan: "Paket", HargaSatuan: 5_000_000},
		},
	}
}

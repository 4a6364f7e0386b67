package kak

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationErrors maps a form field (items as item_<index>_<field>) to an Indonesian message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "Data tidak lengkap: " + strings.Join(parts, "; ")
}

// Validate applies the proposal form rules against the catalog. Ceiling versus used
// amount is checked here only; storage and document generation accept any values.
func Validate(p Proposal, c Catalog) ValidationErrors {
	errs := ValidationErrors{}

	requireChoice(errs, "jenisKAK", p.JenisKAK, c.JenisKAK, "Jenis KAK harus dipilih", "Jenis KAK tidak dikenal")
	requireChoice(errs, "programPembebanan", p.ProgramPembebanan, c.Programs,
		"Program pembebanan harus dipilih", "Program pembebanan tidak dikenal")
	requireChoice(errs, "kegiatan", p.Kegiatan, c.KegiatanByProgram[p.ProgramPembebanan],
		"Kegiatan harus dipilih", "Kegiatan tidak sesuai dengan program pembebanan")
	requireChoice(errs, "rincianOutput", p.RincianOutput, c.RincianByKegiatan[p.Kegiatan],
		"Rincian output harus dipilih", "Rincian output tidak sesuai dengan kegiatan")
	requireChoice(errs, "komponenOutput", p.KomponenOutput, c.KomponenByRincian[p.RincianOutput],
		"Komponen output harus dipilih", "Komponen output tidak sesuai dengan rincian output")
	requireChoice(errs, "subKomponen", p.SubKomponen, c.SubKomponenByProgram[p.ProgramPembebanan],
		"Sub komponen harus dipilih", "Sub komponen tidak sesuai dengan program pembebanan")
	requireChoice(errs, "akunBelanja", p.AkunBelanja, c.AkunByJenis[p.JenisKAK],
		"Akun belanja harus dipilih", "Akun belanja tidak sesuai dengan jenis KAK")

	if p.PaguAnggaran <= 0 {
		errs["paguAnggaran"] = "Pagu anggaran harus diisi dan lebih dari 0"
	} else if p.PaguAnggaran < p.PaguDigunakan() {
		errs["paguAnggaran"] = "Pagu anggaran harus lebih besar dari total yang digunakan"
	}

	if p.TanggalMulai.IsZero() {
		errs["tanggalMulai"] = "Tanggal mulai harus diisi"
	}
	if p.TanggalAkhir.IsZero() {
		errs["tanggalAkhir"] = "Tanggal akhir harus diisi"
	}
	if p.TanggalPengajuan.IsZero() {
		errs["tanggalPengajuan"] = "Tanggal pengajuan harus diisi"
	}
	if !p.TanggalPengajuan.IsZero() && !p.TanggalMulai.IsZero() && p.TanggalPengajuan.After(p.TanggalMulai) {
		errs["tanggalPengajuan"] = "Tanggal pengajuan harus sebelum tanggal mulai"
	}
	if !p.TanggalMulai.IsZero() && !p.TanggalAkhir.IsZero() && p.TanggalMulai.After(p.TanggalAkhir) {
		errs["tanggalAkhir"] = "Tanggal akhir harus setelah tanggal mulai"
	}

	if len(p.Items) == 0 {
		errs["items"] = "Harus ada minimal satu item kegiatan"
	}
	for idx, item := range p.Items {
		key := func(field string) string { return fmt.Sprintf("item_%d_%s", idx, field) }
		if strings.TrimSpace(item.Nama) == "" {
			errs[key("nama")] = "Nama item harus diisi"
		}
		if !item.Volume.IsPositive() {
			errs[key("volume")] = "Volume harus lebih dari 0"
		}
		if item.Satuan == "" {
			errs[key("satuan")] = "Satuan harus dipilih"
		} else if !contains(c.Satuan, item.Satuan) {
			errs[key("satuan")] = "Satuan tidak dikenal"
		}
		if item.HargaSatuan <= 0 {
			errs[key("hargaSatuan")] = "Harga satuan harus lebih dari 0"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func requireChoice(errs ValidationErrors, field, value string, allowed []string, missing, mismatch string) {
	if value == "" {
		errs[field] = missing
		return
	}
	if !contains(allowed, value) {
		errs[field] = mismatch
	}
}

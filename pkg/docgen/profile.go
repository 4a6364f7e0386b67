package docgen

import (
	"sort"

	"github.com/bps3210/simkak/pkg/docx"
)

// Field is a logical placeholder produced by the mapper. Profiles decide how it is spelled in a template.
type Field string

const (
	FieldJenisKAK               Field = "jenisKAK"
	FieldProgramPembebanan      Field = "programPembebanan"
	FieldKegiatan               Field = "kegiatan"
	FieldRincianOutput          Field = "rincianOutput"
	FieldKomponenOutput         Field = "komponenOutput"
	FieldSubKomponen            Field = "subKomponen"
	FieldAkunBelanja            Field = "akunBelanja"
	FieldPaguAnggaran           Field = "paguAnggaran"
	FieldPaguAnggaranTerbilang  Field = "paguAnggaranTerbilang"
	FieldPaguDigunakan          Field = "paguDigunakan"
	FieldPaguDigunakanTerbilang Field = "paguDigunakanTerbilang"
	FieldSisaPagu               Field = "sisaPagu"
	FieldCreatedByName          Field = "createdByName"
	FieldCreatedByRole          Field = "createdByRole"
	FieldTanggalPengajuan       Field = "tanggalPengajuan"
	FieldTanggalMulai           Field = "tanggalMulai"
	FieldTanggalAkhir           Field = "tanggalAkhir"
	FieldItems                  Field = "items"
	FieldTotal                  Field = "total"
	FieldTotalTerbilang         Field = "totalTerbilang"

	FieldItemNo          Field = "no"
	FieldItemNama        Field = "nama"
	FieldItemVolume      Field = "volume"
	FieldItemSatuan      Field = "satuan"
	FieldItemHargaSatuan Field = "hargaSatuan"
	FieldItemSubtotal    Field = "subtotal"
)

var proposalFields = []Field{
	FieldJenisKAK, FieldProgramPembebanan, FieldKegiatan, FieldRincianOutput, FieldKomponenOutput, FieldSubKomponen,
	FieldAkunBelanja, FieldPaguAnggaran, FieldPaguAnggaranTerbilang, FieldPaguDigunakan, FieldPaguDigunakanTerbilang,
	FieldSisaPagu, FieldCreatedByName, FieldCreatedByRole, FieldTanggalPengajuan, FieldTanggalMulai, FieldTanggalAkhir,
	FieldItems, FieldTotal, FieldTotalTerbilang,
}

var itemFields = []Field{
	FieldItemNo, FieldItemNama, FieldItemVolume, FieldItemSatuan, FieldItemHargaSatuan, FieldItemSubtotal,
}

// Profile is the placeholder contract of a family of templates: which delimiters they use and
// how each logical field is named. Profiles are versioned; a changed contract gets a new id.
type Profile struct {
	Id         string
	Version    int
	Delimiters docx.Delimiters
	Keys       map[Field]string
}

// Key returns the template name for f. Fields without an explicit entry keep their logical name.
func (p Profile) Key(f Field) string {
	if key, ok := p.Keys[f]; ok {
		return key
	}
	return string(f)
}

// KnownKeys returns every placeholder name the mapper fills under this profile.
func (p Profile) KnownKeys() map[string]bool {
	keys := map[string]bool{}
	for _, f := range append(append([]Field{}, proposalFields...), itemFields...) {
		keys[p.Key(f)] = true
	}
	return keys
}

var CamelV1 = Profile{
	Id:         "camel/v1",
	Version:    1,
	Delimiters: docx.Delimiters{Open: "{", Close: "}"},
}

var SnakeV1 = Profile{
	Id:         "snake/v1",
	Version:    1,
	Delimiters: docx.Delimiters{Open: "{{", Close: "}}"},
	Keys: map[Field]string{
		FieldJenisKAK:               "jenis_kak",
		FieldProgramPembebanan:      "program_pembebanan",
		FieldRincianOutput:          "rincian_output",
		FieldKomponenOutput:         "komponen_output",
		FieldSubKomponen:            "sub_komponen",
		FieldAkunBelanja:            "akun_belanja",
		FieldPaguAnggaran:           "pagu_anggaran",
		FieldPaguAnggaranTerbilang:  "pagu_anggaran_terbilang",
		FieldPaguDigunakan:          "pagu_digunakan",
		FieldPaguDigunakanTerbilang: "pagu_digunakan_terbilang",
		FieldSisaPagu:               "sisa_pagu",
		FieldCreatedByName:          "created_by_name",
		FieldCreatedByRole:          "created_by_role",
		FieldTanggalPengajuan:       "tanggal_pengajuan",
		FieldTanggalMulai:           "tanggal_mulai",
		FieldTanggalAkhir:           "tanggal_akhir",
		FieldTotalTerbilang:         "total_terbilang",
		FieldItemHargaSatuan:        "harga_satuan",
	},
}

var profiles = map[string]Profile{
	CamelV1.Id: CamelV1,
	SnakeV1.Id: SnakeV1,
}

func LookupProfile(id string) (Profile, bool) {
	p, ok := profiles[id]
	return p, ok
}

func HasProfile(id string) bool {
	_, ok := profiles[id]
	return ok
}

func ProfileIds() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

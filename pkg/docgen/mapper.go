package docgen

import (
	"time"

	"github.com/bps3210/simkak/pkg/format"
	"github.com/bps3210/simkak/pkg/kak"
	log "github.com/sirupsen/logrus"
)

// Bag is the data merged into one document. It is built per render and never stored.
type Bag map[string]any

// Mapper turns a proposal into a Bag spelled according to a profile.
type Mapper struct {
}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Map never fails. Missing optional values become empty strings and are logged as degraded.
func (m *Mapper) Map(p kak.Proposal, profile Profile) Bag {
	bag := Bag{}
	put := func(f Field, value any) {
		bag[profile.Key(f)] = value
	}
	text := func(f Field, value string) {
		if value == "" {
			log.Warnf("Mapping degraded: %s of proposal %s is empty", f, p.Id)
		}
		put(f, value)
	}
	date := func(f Field, value time.Time) {
		if value.IsZero() {
			log.Warnf("Mapping degraded: %s of proposal %s is not set", f, p.Id)
		}
		put(f, format.LongDate(value))
	}

	text(FieldJenisKAK, p.JenisKAK)
	text(FieldProgramPembebanan, p.ProgramPembebanan)
	text(FieldKegiatan, p.Kegiatan)
	text(FieldRincianOutput, p.RincianOutput)
	text(FieldKomponenOutput, p.KomponenOutput)
	text(FieldSubKomponen, p.SubKomponen)
	text(FieldAkunBelanja, p.AkunBelanja)
	text(FieldCreatedByName, p.CreatedBy.Name)
	text(FieldCreatedByRole, p.CreatedBy.Role)
	date(FieldTanggalPengajuan, p.TanggalPengajuan)
	date(FieldTanggalMulai, p.TanggalMulai)
	date(FieldTanggalAkhir, p.TanggalAkhir)

	used := p.PaguDigunakan()
	put(FieldPaguAnggaran, format.Rupiah(p.PaguAnggaran))
	put(FieldPaguAnggaranTerbilang, format.TerbilangRupiah(p.PaguAnggaran))
	put(FieldPaguDigunakan, format.Rupiah(used))
	put(FieldPaguDigunakanTerbilang, format.TerbilangRupiah(used))
	put(FieldSisaPagu, format.Rupiah(p.PaguAnggaran-used))

	// the total is summed independently of PaguDigunakan so a template can show both as a cross-check
	var total int64
	items := make([]map[string]any, 0, len(p.Items))
	for i, item := range p.Items {
		subtotal := item.ComputeSubtotal()
		total += subtotal
		items = append(items, map[string]any{
			profile.Key(FieldItemNo):          i + 1,
			profile.Key(FieldItemNama):        item.Nama,
			profile.Key(FieldItemVolume):      format.Quantity(item.Volume),
			profile.Key(FieldItemSatuan):      item.Satuan,
			profile.Key(FieldItemHargaSatuan): format.Rupiah(item.HargaSatuan),
			profile.Key(FieldItemSubtotal):    format.Rupiah(subtotal),
		})
	}
	if len(p.Items) == 0 {
		log.Warnf("Mapping degraded: proposal %s has no items", p.Id)
	}
	put(FieldItems, items)
	put(FieldTotal, format.Rupiah(total))
	put(FieldTotalTerbilang, format.TerbilangRupiah(total))
	return bag
}

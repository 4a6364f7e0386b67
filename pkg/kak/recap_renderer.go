package kak

import (
	"fmt"

	"github.com/bps3210/simkak/pkg/format"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	proposalSheet = "KAK"
	itemSheet     = "Item"
)

var proposalHeader = []any{
	"No", "Jenis KAK", "Program Pembebanan", "Kegiatan", "Rincian Output", "Komponen Output", "Sub Komponen",
	"Akun Belanja", "Pagu Anggaran", "Pagu Digunakan", "Sisa Pagu", "Tanggal Pengajuan", "Tanggal Mulai",
	"Tanggal Akhir", "Dibuat Oleh", "Jabatan",
}

var itemHeader = []any{"No KAK", "Jenis KAK", "No", "Nama Item", "Volume", "Satuan", "Harga Satuan", "Subtotal"}

type RecapRendererImpl struct {
}

func NewRecapRenderer() *RecapRendererImpl {
	return &RecapRendererImpl{}
}

// RenderRecap writes proposals into an xlsx workbook with one proposal sheet and one line item sheet.
func (r *RecapRendererImpl) RenderRecap(proposals []Proposal) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("Error closing workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", proposalSheet); err != nil {
		log.Errorf("Error preparing workbook: %v", err)
		return nil, err
	}
	if _, err := f.NewSheet(itemSheet); err != nil {
		log.Errorf("Error preparing workbook: %v", err)
		return nil, err
	}

	moneyFmt := "#,##0"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := writeRow(f, proposalSheet, 1, proposalHeader); err != nil {
		return nil, err
	}
	if err := writeRow(f, itemSheet, 1, itemHeader); err != nil {
		return nil, err
	}
	_ = f.SetRowStyle(proposalSheet, 1, 1, headerStyle)
	_ = f.SetRowStyle(itemSheet, 1, 1, headerStyle)

	itemRow := 2
	for idx, p := range proposals {
		used := p.PaguDigunakan()
		row := []any{
			idx + 1, p.JenisKAK, p.ProgramPembebanan, p.Kegiatan, p.RincianOutput, p.KomponenOutput, p.SubKomponen,
			p.AkunBelanja, p.PaguAnggaran, used, p.PaguAnggaran - used, format.LongDate(p.TanggalPengajuan),
			format.LongDate(p.TanggalMulai), format.LongDate(p.TanggalAkhir), p.CreatedBy.Name, p.CreatedBy.Role,
		}
		if err := writeRow(f, proposalSheet, idx+2, row); err != nil {
			return nil, err
		}

		for itemIdx, item := range p.Items {
			volume, _ := item.Volume.Float64()
			row := []any{idx + 1, p.JenisKAK, itemIdx + 1, item.Nama, volume, item.Satuan, item.HargaSatuan, item.ComputeSubtotal()}
			if err := writeRow(f, itemSheet, itemRow, row); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	if len(proposals) > 0 {
		_ = f.SetCellStyle(proposalSheet, "I2", fmt.Sprintf("K%d", len(proposals)+1), moneyStyle)
	}
	if itemRow > 2 {
		_ = f.SetCellStyle(itemSheet, "G2", fmt.Sprintf("H%d", itemRow-1), moneyStyle)
	}
	_ = f.SetColWidth(proposalSheet, "B", "H", 32)
	_ = f.SetColWidth(itemSheet, "D", "D", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Errorf("Error writing workbook: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		log.Errorf("Error writing row %d to %s: %v", row, sheet, err)
		return err
	}
	return nil
}

package kak

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Proposal is a KAK (Kerangka Acuan Kerja) budget proposal.
type Proposal struct {
	Id                uuid.UUID
	JenisKAK          string
	ProgramPembebanan string
	Kegiatan          string
	RincianOutput     string
	KomponenOutput    string
	SubKomponen       string
	AkunBelanja       string
	// PaguAnggaran is the approved ceiling in whole rupiah.
	PaguAnggaran     int64
	TanggalPengajuan time.Time
	TanggalMulai     time.Time
	TanggalAkhir     time.Time
	CreatedBy        Creator
	Items            []LineItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Creator struct {
	Name string
	Role string
}

type LineItem struct {
	Id          uuid.UUID
	Nama        string
	Volume      decimal.Decimal
	Satuan      string
	HargaSatuan int64
	Subtotal    int64
}

// ComputeSubtotal is round(volume × unit price) in whole rupiah.
func (i LineItem) ComputeSubtotal() int64 {
	return i.Volume.Mul(decimal.NewFromInt(i.HargaSatuan)).Round(0).IntPart()
}

// PaguDigunakan sums the line item subtotals, recomputed from volume and price.
func (p Proposal) PaguDigunakan() int64 {
	var total int64
	for _, item := range p.Items {
		total += item.ComputeSubtotal()
	}
	return total
}

// Normalize refreshes every stored subtotal and fills missing item ids.
func (p *Proposal) Normalize() {
	for idx := range p.Items {
		if p.Items[idx].Id == uuid.Nil {
			p.Items[idx].Id = uuid.New()
		}
		p.Items[idx].Subtotal = p.Items[idx].ComputeSubtotal()
	}
}

// Copy returns a deep copy with fresh proposal and item ids.
func (p Proposal) Copy() Proposal {
	dup := p
	dup.Id = uuid.New()
	dup.Items = make([]LineItem, len(p.Items))
	for idx, item := range p.Items {
		item.Id = uuid.New()
		dup.Items[idx] = item
	}
	return dup
}

type Filter struct {
	Jenis string
	// Query matches jenis, program and komponen output, case-insensitively.
	Query string
}

package kak

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bps3210/simkak/internal/rest"
	"github.com/bps3210/simkak/internal/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type ProposalDTO struct {
	Id                string        `json:"id,omitempty"`
	JenisKAK          string        `json:"jenisKAK"`
	ProgramPembebanan string        `json:"programPembebanan"`
	Kegiatan          string        `json:"kegiatan"`
	RincianOutput     string        `json:"rincianOutput"`
	KomponenOutput    string        `json:"komponenOutput"`
	SubKomponen       string        `json:"subKomponen"`
	AkunBelanja       string        `json:"akunBelanja"`
	PaguAnggaran      int64         `json:"paguAnggaran"`
	PaguDigunakan     int64         `json:"paguDigunakan"`
	TanggalPengajuan  string        `json:"tanggalPengajuan"`
	TanggalMulai      string        `json:"tanggalMulai"`
	TanggalAkhir      string        `json:"tanggalAkhir"`
	CreatedBy         CreatorDTO    `json:"createdBy"`
	Items             []LineItemDTO `json:"items"`
	CreatedAt         *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time    `json:"updatedAt,omitempty"`
}

type CreatorDTO struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type LineItemDTO struct {
	Id          string  `json:"id,omitempty"`
	Nama        string  `json:"nama"`
	Volume      float64 `json:"volume"`
	Satuan      string  `json:"satuan"`
	HargaSatuan int64   `json:"hargaSatuan"`
	Subtotal    int64   `json:"subtotal"`
}

type OptionsDTO struct {
	JenisKAK          []string `json:"jenisKAK"`
	ProgramPembebanan []string `json:"programPembebanan"`
	Kegiatan          []string `json:"kegiatan"`
	SubKomponen       []string `json:"subKomponen"`
	RincianOutput     []string `json:"rincianOutput"`
	KomponenOutput    []string `json:"komponenOutput"`
	AkunBelanja       []string `json:"akunBelanja"`
	Satuan            []string `json:"satuan"`
}

type SummaryDTO struct {
	TotalProposals int             `json:"totalProposals"`
	TotalPagu      int64           `json:"totalPagu"`
	TotalDigunakan int64           `json:"totalDigunakan"`
	ByJenis        []GroupTotalDTO `json:"byJenis"`
	ByMonth        []GroupTotalDTO `json:"byMonth"`
}

type GroupTotalDTO struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Count     int    `json:"count"`
	Pagu      int64  `json:"pagu"`
	Digunakan int64  `json:"digunakan"`
}

type RecapRenderer interface {
	RenderRecap(proposals []Proposal) ([]byte, error)
}

type Handler struct {
	service  Service
	renderer RecapRenderer
	clock    utils.Clock
}

func NewHandler(service Service, renderer RecapRenderer, clock utils.Clock) *Handler {
	return &Handler{service: service, renderer: renderer, clock: clock}
}

// GetOptions godoc
// @Summary Get form options
// @Description Option lists for every form level, narrowed by the upstream selection
// @Tags KAK
// @Produce json
// @Param jenisKAK query string false "Jenis KAK"
// @Param programPembebanan query string false "Program pembebanan"
// @Param kegiatan query string false "Kegiatan"
// @Param rincianOutput query string false "Rincian output"
// @Success 200 {object} OptionsDTO
// @Router /api/kak/options [get]
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	options := h.service.Options(r.Context(), Selection{
		JenisKAK:          q.Get("jenisKAK"),
		ProgramPembebanan: q.Get("programPembebanan"),
		Kegiatan:          q.Get("kegiatan"),
		RincianOutput:     q.Get("rincianOutput"),
	})
	rest.WriteJSON(w, http.StatusOK, OptionsDTO(options))
}

// ListProposals godoc
// @Summary List proposals
// @Tags KAK
// @Produce json
// @Param jenis query string false "Exact jenis KAK"
// @Param q query string false "Search over jenis, program and komponen output"
// @Success 200 {array} ProposalDTO
// @Failure 403 {string} string "User not found"
// @Router /api/kak [get]
// @Security XUserId
func (h *Handler) ListProposals(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing proposals")
	proposals, err := h.service.List(r.Context(), Filter{Jenis: r.URL.Query().Get("jenis"), Query: r.URL.Query().Get("q")})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	dtos := make([]ProposalDTO, 0, len(proposals))
	for _, p := range proposals {
		dtos = append(dtos, ProposalToDTO(p))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetProposal godoc
// @Summary Get a proposal
// @Tags KAK
// @Produce json
// @Param kakId path string true "Proposal ID"
// @Success 200 {object} ProposalDTO
// @Failure 404 {object} rest.ErrorResponse "KAK tidak ditemukan"
// @Router /api/kak/{kakId} [get]
// @Security XUserId
func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := proposalId(w, r)
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ProposalToDTO(p))
}

// CreateProposal godoc
// @Summary Create a proposal
// @Description Validates the form and stores the proposal stamped with the current user
// @Tags KAK
// @Accept json
// @Produce json
// @Param proposal body ProposalDTO true "Proposal"
// @Success 201 {object} ProposalDTO
// @Failure 400 {object} rest.ErrorResponse "Data tidak lengkap"
// @Router /api/kak [post]
// @Security XUserId
func (h *Handler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating proposal")
	proposal, ok := decodeProposal(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), proposal)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ProposalToDTO(created))
}

// UpdateProposal godoc
// @Summary Update a proposal
// @Tags KAK
// @Accept json
// @Produce json
// @Param kakId path string true "Proposal ID"
// @Param proposal body ProposalDTO true "Proposal"
// @Success 200 {object} ProposalDTO
// @Failure 400 {object} rest.ErrorResponse "Data tidak lengkap"
// @Failure 404 {object} rest.ErrorResponse "KAK tidak ditemukan"
// @Router /api/kak/{kakId} [put]
// @Security XUserId
func (h *Handler) UpdateProposal(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating proposal")
	id, ok := proposalId(w, r)
	if !ok {
		return
	}
	proposal, ok := decodeProposal(w, r)
	if !ok {
		return
	}
	if proposal.Id != uuid.Nil && proposal.Id != id {
		rest.WriteError(w, http.StatusBadRequest, "ID KAK tidak sesuai", nil)
		return
	}
	proposal.Id = id
	updated, err := h.service.Update(r.Context(), proposal)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ProposalToDTO(updated))
}

// DeleteProposal godoc
// @Summary Delete a proposal
// @Tags KAK
// @Param kakId path string true "Proposal ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse "KAK tidak ditemukan"
// @Router /api/kak/{kakId} [delete]
// @Security XUserId
func (h *Handler) DeleteProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := proposalId(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateProposal godoc
// @Summary Duplicate a proposal
// @Tags KAK
// @Produce json
// @Param kakId path string true "Proposal ID"
// @Success 201 {object} ProposalDTO
// @Failure 404 {object} rest.ErrorResponse "KAK tidak ditemukan"
// @Router /api/kak/{kakId}/duplicate [post]
// @Security XUserId
func (h *Handler) DuplicateProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := proposalId(w, r)
	if !ok {
		return
	}
	dup, err := h.service.Duplicate(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ProposalToDTO(dup))
}

// GetSummary godoc
// @Summary Dashboard totals
// @Tags KAK
// @Produce json
// @Success 200 {object} SummaryDTO
// @Router /api/kak/summary [get]
// @Security XUserId
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	dto := SummaryDTO{
		TotalProposals: summary.TotalProposals,
		TotalPagu:      summary.TotalPagu,
		TotalDigunakan: summary.TotalDigunakan,
		ByJenis:        make([]GroupTotalDTO, 0, len(summary.ByJenis)),
		ByMonth:        make([]GroupTotalDTO, 0, len(summary.ByMonth)),
	}
	for _, g := range summary.ByJenis {
		dto.ByJenis = append(dto.ByJenis, GroupTotalDTO(g))
	}
	for _, g := range summary.ByMonth {
		dto.ByMonth = append(dto.ByMonth, GroupTotalDTO(g))
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

// ExportRecap godoc
// @Summary Export all proposals as xlsx
// @Tags KAK
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /api/kak/export.xlsx [get]
// @Security XUserId
func (h *Handler) ExportRecap(w http.ResponseWriter, r *http.Request) {
	log.Debug("Exporting proposal recap")
	proposals, err := h.service.List(r.Context(), Filter{})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	content, err := h.renderer.RenderRecap(proposals)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Gagal membuat rekap", err.Error())
		return
	}
	filename := fmt.Sprintf("Rekap_KAK_%s.xlsx", h.clock.Now().Format(dateLayout))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Errorf("failed to write recap: %v", err)
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		rest.WriteError(w, http.StatusBadRequest, "Data tidak lengkap", verrs)
	case errors.Is(err, ErrProposalNotFound):
		rest.WriteError(w, http.StatusNotFound, "KAK tidak ditemukan", nil)
	default:
		log.Errorf("proposal request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Terjadi kesalahan", err.Error())
	}
}

func proposalId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["kakId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "ID KAK tidak valid", nil)
		return uuid.Nil, false
	}
	return id, true
}

func decodeProposal(w http.ResponseWriter, r *http.Request) (Proposal, bool) {
	var dto ProposalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Format permintaan tidak valid", err.Error())
		return Proposal{}, false
	}
	p, err := DTOToProposal(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Format permintaan tidak valid", err.Error())
		return Proposal{}, false
	}
	return p, true
}

func ProposalToDTO(p Proposal) ProposalDTO {
	dto := ProposalDTO{
		Id:                p.Id.String(),
		JenisKAK:          p.JenisKAK,
		ProgramPembebanan: p.ProgramPembebanan,
		Kegiatan:          p.Kegiatan,
		RincianOutput:     p.RincianOutput,
		KomponenOutput:    p.KomponenOutput,
		SubKomponen:       p.SubKomponen,
		AkunBelanja:       p.AkunBelanja,
		PaguAnggaran:      p.PaguAnggaran,
		PaguDigunakan:     p.PaguDigunakan(),
		TanggalPengajuan:  formatDate(p.TanggalPengajuan),
		TanggalMulai:      formatDate(p.TanggalMulai),
		TanggalAkhir:      formatDate(p.TanggalAkhir),
		CreatedBy:         CreatorDTO(p.CreatedBy),
		Items:             make([]LineItemDTO, 0, len(p.Items)),
	}
	if !p.CreatedAt.IsZero() {
		dto.CreatedAt = &p.CreatedAt
	}
	if !p.UpdatedAt.IsZero() {
		dto.UpdatedAt = &p.UpdatedAt
	}
	for _, item := range p.Items {
		volume, _ := item.Volume.Float64()
		dto.Items = append(dto.Items, LineItemDTO{
			Id:          item.Id.String(),
			Nama:        item.Nama,
			Volume:      volume,
			Satuan:      item.Satuan,
			HargaSatuan: item.HargaSatuan,
			Subtotal:    item.ComputeSubtotal(),
		})
	}
	return dto
}

// DTOToProposal ignores client-sent subtotals and used amounts; both are derived.
func DTOToProposal(dto ProposalDTO) (Proposal, error) {
	p := Proposal{
		JenisKAK:          dto.JenisKAK,
		ProgramPembebanan: dto.ProgramPembebanan,
		Kegiatan:          dto.Kegiatan,
		RincianOutput:     dto.RincianOutput,
		KomponenOutput:    dto.KomponenOutput,
		SubKomponen:       dto.SubKomponen,
		AkunBelanja:       dto.AkunBelanja,
		PaguAnggaran:      dto.PaguAnggaran,
		Items:             make([]LineItem, 0, len(dto.Items)),
	}
	var err error
	if dto.Id != "" {
		if p.Id, err = uuid.Parse(dto.Id); err != nil {
			return Proposal{}, fmt.Errorf("invalid id: %w", err)
		}
	}
	if p.TanggalPengajuan, err = parseDate(dto.TanggalPengajuan); err != nil {
		return Proposal{}, fmt.Errorf("invalid tanggalPengajuan: %w", err)
	}
	if p.TanggalMulai, err = parseDate(dto.TanggalMulai); err != nil {
		return Proposal{}, fmt.Errorf("invalid tanggalMulai: %w", err)
	}
	if p.TanggalAkhir, err = parseDate(dto.TanggalAkhir); err != nil {
		return Proposal{}, fmt.Errorf("invalid tanggalAkhir: %w", err)
	}
	for _, itemDTO := range dto.Items {
		item := LineItem{
			Nama:        itemDTO.Nama,
			Volume:      decimal.NewFromFloat(itemDTO.Volume),
			Satuan:      itemDTO.Satuan,
			HargaSatuan: itemDTO.HargaSatuan,
		}
		if itemDTO.Id != "" {
			// ids from the form may be client-side placeholders
			if id, err := uuid.Parse(itemDTO.Id); err == nil {
				item.Id = id
			}
		}
		item.Subtotal = item.ComputeSubtotal()
		p.Items = append(p.Items, item)
	}
	return p, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

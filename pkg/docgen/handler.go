package docgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bps3210/simkak/internal/rest"
	"github.com/bps3210/simkak/pkg/kak"
	"github.com/bps3210/simkak/pkg/template"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ProposalSource interface {
	Get(ctx context.Context, id uuid.UUID) (kak.Proposal, error)
}

type TemplateFiles interface {
	Get(ctx context.Context, id uuid.UUID) (template.TemplateAsset, error)
	Download(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type Handler struct {
	generator *Generator
	proposals ProposalSource
	templates TemplateFiles
}

func NewHandler(generator *Generator, proposals ProposalSource, templates TemplateFiles) *Handler {
	return &Handler{generator: generator, proposals: proposals, templates: templates}
}

// GenerateDocument godoc
// @Summary Generate the KAK document
// @Description Merges the proposal into a template and returns the .docx
// @Tags Document
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param kakId path string true "Proposal ID"
// @Param template query string false "Template path in the store"
// @Param profile query string false "Mapping profile id"
// @Success 200 {file} binary
// @Failure 404 {object} rest.ErrorResponse "KAK tidak ditemukan"
// @Failure 422 {object} rest.ErrorResponse "Template tidak valid"
// @Failure 503 {object} rest.ErrorResponse "Template tidak ditemukan"
// @Router /api/kak/{kakId}/document [post]
// @Security XUserId
func (h *Handler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["kakId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "ID KAK tidak valid", nil)
		return
	}
	log.Debugf("Generating document for proposal %s", id)

	proposal, err := h.proposals.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, kak.ErrProposalNotFound) {
			rest.WriteError(w, http.StatusNotFound, "KAK tidak ditemukan", nil)
			return
		}
		log.Errorf("failed to load proposal %s: %v", id, err)
		rest.WriteError(w, http.StatusInternalServerError, "Terjadi kesalahan", err.Error())
		return
	}

	doc, err := h.generator.Generate(r.Context(), Request{
		Proposal:     proposal,
		TemplatePath: r.URL.Query().Get("template"),
		ProfileId:    r.URL.Query().Get("profile"),
	})
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	w.Header().Set("Content-Type", docxMimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	w.Header().Set("X-Template-Source", doc.Source)
	w.Header().Set("X-Template-Profile", doc.Profile)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Content); err != nil {
		log.Errorf("failed to write document: %v", err)
	}
}

// CheckTemplate godoc
// @Summary Check a stored template
// @Description Validates the file and lexes its placeholders without rendering
// @Tags Template
// @Produce json
// @Param id path string true "Template ID"
// @Param profile query string false "Mapping profile id, defaults to the template's own"
// @Success 200 {object} CheckResult
// @Failure 404 {object} rest.ErrorResponse "Template tidak ditemukan"
// @Router /api/templates/{id}/check [post]
// @Security XUserId
func (h *Handler) CheckTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "ID template tidak valid", nil)
		return
	}
	asset, err := h.templates.Get(r.Context(), id)
	if err != nil {
		writeTemplateError(w, err)
		return
	}
	content, err := h.templates.Download(r.Context(), id)
	if err != nil {
		writeTemplateError(w, err)
		return
	}

	profile := r.URL.Query().Get("profile")
	if profile == "" {
		profile = asset.Profile
	}
	if !HasProfile(profile) {
		rest.WriteError(w, http.StatusBadRequest, "Profil template tidak dikenal", profile)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.generator.Check(content, profile))
}

func writeGenerationError(w http.ResponseWriter, err error) {
	var invalid *TemplateInvalidError
	var renderFailed *RenderFailedError
	switch {
	case errors.Is(err, ErrUnknownProfile):
		rest.WriteError(w, http.StatusBadRequest, "Profil template tidak dikenal", err.Error())
	case errors.Is(err, ErrSourceUnavailable):
		rest.WriteError(w, http.StatusServiceUnavailable, "Template tidak ditemukan", "Unggah template atau atur template default terlebih dahulu")
	case errors.As(err, &invalid):
		rest.WriteError(w, http.StatusUnprocessableEntity, "Template tidak valid", invalid.Issues)
	case errors.As(err, &renderFailed):
		rest.WriteError(w, http.StatusUnprocessableEntity, "Gagal membuat dokumen", renderFailed.Diagnostic)
	default:
		log.Errorf("document generation failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Gagal membuat dokumen", err.Error())
	}
}

func writeTemplateError(w http.ResponseWriter, err error) {
	if errors.Is(err, template.ErrTemplateNotFound) || errors.Is(err, template.ErrObjectNotFound) {
		rest.WriteError(w, http.StatusNotFound, "Template tidak ditemukan", nil)
		return
	}
	log.Errorf("template check failed: %v", err)
	rest.WriteError(w, http.StatusInternalServerError, "Terjadi kesalahan", err.Error())
}

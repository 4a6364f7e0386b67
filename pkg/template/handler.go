package template

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bps3210/simkak/internal/rest"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxUploadSize = 10 << 20

type TemplateDTO struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	FilePath    string    `json:"filePath"`
	IsDefault   bool      `json:"isDefault"`
	Profile     string    `json:"profile"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListTemplates godoc
// @Summary List templates
// @Tags Template
// @Produce json
// @Success 200 {array} TemplateDTO
// @Router /api/templates [get]
// @Security XUserId
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]TemplateDTO, 0, len(assets))
	for _, a := range assets {
		dtos = append(dtos, TemplateToDTO(a))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// UploadTemplate godoc
// @Summary Upload a .docx template
// @Tags Template
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Template .docx"
// @Param name formData string false "Display name"
// @Param description formData string false "Description"
// @Param profile formData string false "Mapping profile id"
// @Success 201 {object} TemplateDTO
// @Failure 400 {object} rest.ErrorResponse "File tidak valid"
// @Router /api/templates [post]
// @Security XUserId
func (h *Handler) UploadTemplate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Uploading template")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Debugf("Template upload rejected: %v", err)
		rest.WriteError(w, http.StatusBadRequest, "File terlalu besar", "Ukuran maksimum 10MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "File tidak ditemukan", err.Error())
		return
	}
	defer file.Close()
	log.Debugf("Uploaded File: %s (%d bytes)", header.Filename, header.Size)

	content, err := io.ReadAll(file)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "File tidak dapat dibaca", err.Error())
		return
	}

	asset, err := h.service.Upload(r.Context(), UploadRequest{
		Filename:    header.Filename,
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Profile:     r.FormValue("profile"),
		Content:     content,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TemplateToDTO(asset))
}

// DownloadTemplate godoc
// @Summary Download the template file
// @Tags Template
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param id path string true "Template ID"
// @Success 200 {file} binary
// @Failure 404 {object} rest.ErrorResponse "Template tidak ditemukan"
// @Router /api/templates/{id}/file [get]
// @Security XUserId
func (h *Handler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := templateId(w, r)
	if !ok {
		return
	}
	asset, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	content, err := h.service.Download(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", DocxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, asset.FilePath))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Errorf("failed to write template: %v", err)
	}
}

// SetDefaultTemplate godoc
// @Summary Mark a template as the default
// @Tags Template
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} TemplateDTO
// @Failure 404 {object} rest.ErrorResponse "Template tidak ditemukan"
// @Router /api/templates/{id}/default [put]
// @Security XUserId
func (h *Handler) SetDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := templateId(w, r)
	if !ok {
		return
	}
	asset, err := h.service.SetDefault(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TemplateToDTO(asset))
}

// DeleteTemplate godoc
// @Summary Delete a template
// @Tags Template
// @Param id path string true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse "Template tidak ditemukan"
// @Router /api/templates/{id} [delete]
// @Security XUserId
func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := templateId(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTemplateNotFound), errors.Is(err, ErrObjectNotFound):
		rest.WriteError(w, http.StatusNotFound, "Template tidak ditemukan", nil)
	case errors.Is(err, ErrNotDocx):
		rest.WriteError(w, http.StatusBadRequest, "Hanya file .docx yang diperbolehkan", nil)
	case errors.Is(err, ErrEmptyTemplate):
		rest.WriteError(w, http.StatusBadRequest, "File template kosong", nil)
	case errors.Is(err, ErrUnknownProfile):
		rest.WriteError(w, http.StatusBadRequest, "Profil template tidak dikenal", err.Error())
	default:
		log.Errorf("template request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Terjadi kesalahan", err.Error())
	}
}

func templateId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "ID template tidak valid", nil)
		return uuid.Nil, false
	}
	return id, true
}

func TemplateToDTO(a TemplateAsset) TemplateDTO {
	return TemplateDTO{
		Id:          a.Id.String(),
		Name:        a.Name,
		Description: a.Description,
		FilePath:    a.FilePath,
		IsDefault:   a.IsDefault,
		Profile:     a.Profile,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

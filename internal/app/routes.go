package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Users
	r.HandleFunc("/api/auth/login", deps.UserHandler.Login).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// KAK
	r.HandleFunc("/api/kak/options", deps.KakHandler.GetOptions).Methods("GET")
	r.HandleFunc("/api/kak", deps.KakHandler.ListProposals).Methods("GET")
	r.HandleFunc("/api/kak", deps.KakHandler.CreateProposal).Methods("POST")
	r.HandleFunc("/api/kak/summary", deps.KakHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/kak/export.xlsx", deps.KakHandler.ExportRecap).Methods("GET")
	r.HandleFunc("/api/kak/{kakId}", deps.KakHandler.GetProposal).Methods("GET")
	r.HandleFunc("/api/kak/{kakId}", deps.KakHandler.UpdateProposal).Methods("PUT")
	r.HandleFunc("/api/kak/{kakId}", deps.KakHandler.DeleteProposal).Methods("DELETE")
	r.HandleFunc("/api/kak/{kakId}/duplicate", deps.KakHandler.DuplicateProposal).Methods("POST")

	// Document generation
	r.HandleFunc("/api/kak/{kakId}/document", deps.DocumentHandler.GenerateDocument).Methods("POST")

	// Templates
	r.HandleFunc("/api/templates", deps.TemplateHandler.ListTemplates).Methods("GET")
	r.HandleFunc("/api/templates", deps.TemplateHandler.UploadTemplate).Methods("POST")
	r.HandleFunc("/api/templates/{id}/file", deps.TemplateHandler.DownloadTemplate).Methods("GET")
	r.HandleFunc("/api/templates/{id}/default", deps.TemplateHandler.SetDefaultTemplate).Methods("PUT")
	r.HandleFunc("/api/templates/{id}/check", deps.DocumentHandler.CheckTemplate).Methods("POST")
	r.HandleFunc("/api/templates/{id}", deps.TemplateHandler.DeleteTemplate).Methods("DELETE")
}

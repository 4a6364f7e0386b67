package rest

import (
	"net/http"
	"os"
	"path/filepath"
)

// FrontendHandler serves a built single-page app. Unknown paths get the index page so client routing works.
type FrontendHandler struct {
	dir   string
	index string
	files http.Handler
}

func NewFrontendHandler(dir, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index, files: http.FileServer(http.Dir(dir))}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, h.index))
		return
	}
	h.files.ServeHTTP(w, r)
}

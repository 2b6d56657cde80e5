package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sitehost/internal/common/logger"
)

// Handler serves the public directory. Unknown paths fall back to
// index.html when one exists, so the hosted site can handle its own
// routing client-side.
type Handler struct {
	dir   string
	files http.Handler
	log   *logger.Logger
}

func NewHandler(dir string, log *logger.Logger) *Handler {
	return &Handler{
		dir:   dir,
		files: http.FileServer(http.Dir(dir)),
		log:   log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		h.files.ServeHTTP(w, r)
		return
	}

	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err == nil {
		h.log.Debugf("static fallback to index for %s", r.URL.Path)
		http.ServeFile(w, r, index)
		return
	}

	if strings.HasSuffix(r.URL.Path, "/") || r.URL.Path == "" {
		h.files.ServeHTTP(w, r)
		return
	}

	http.NotFound(w, r)
}

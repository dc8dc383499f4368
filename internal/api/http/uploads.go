package http

import (
	"io"
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openlearn/classroom/internal/storage"
)

// MountUploads serves stored assignment files back. The route sits
// behind the JWT middleware; keys are unguessable (uuid-suffixed).
func MountUploads(r chi.Router, bs storage.BlobStore) {
	r.Get("/*", func(w nethttp.ResponseWriter, req *nethttp.Request) {
		key := strings.TrimPrefix(chi.URLParam(req, "*"), "/")
		rc, err := bs.Get(key)
		if err != nil {
			nethttp.Error(w, "not found", nethttp.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	})
}

package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/dgallion1/stxdoc/internal/stx"
)

type renderRequest struct {
	Text  string `json:"text"`
	Level *int   `json:"level"`
	Page  bool   `json:"page"`
}

// handleRender converts a structured text body to HTML. The body is either
// raw text, with level and page as query parameters, or a JSON renderRequest.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "body exceeds max size", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	level, ok := s.levelParam(w, r)
	if !ok {
		return
	}
	page := r.URL.Query().Get("page") == "true"

	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		var req renderRequest
		if err := json.Unmarshal(data, &req); err != nil {
			jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Level != nil {
			if *req.Level < 0 {
				jsonError(w, "level must not be negative", http.StatusBadRequest)
				return
			}
			level = *req.Level
		}
		page = page || req.Page
		data = []byte(req.Text)
	}

	text, err := stx.Normalize(data)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeHTML(w, s.render(text, level, page))
}

// handleConvert imports an uploaded document. It responds with the
// structured text when format=stx, and with rendered HTML otherwise.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	level, ok := s.levelParam(w, r)
	if !ok {
		return
	}

	text, err := s.orchestrator.Importer().ImportBytes(data, filename)
	if err != nil {
		code := http.StatusUnprocessableEntity
		if errors.Is(err, stx.ErrInputKind) {
			code = http.StatusBadRequest
		}
		jsonError(w, "import failed: "+err.Error(), code)
		return
	}

	switch r.FormValue("format") {
	case "stx":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, text)
	case "", "html":
		s.writeHTML(w, s.render(text, level, r.FormValue("page") == "true"))
	default:
		jsonError(w, "format must be html or stx", http.StatusBadRequest)
	}
}

func (s *Server) render(text string, level int, page bool) string {
	var html string
	s.orchestrator.Stats().Time(len(text), func() {
		html = stx.HTML(text, level)
	})
	if page {
		html = stx.Page(html)
	}
	return html
}

func (s *Server) writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

// levelParam reads the optional "level" form or query value, defaulting to
// the configured heading level.
func (s *Server) levelParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.FormValue("level")
	if v == "" {
		return s.cfg.HeadingLevel, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		jsonError(w, "level must be a non-negative integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

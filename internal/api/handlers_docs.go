package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/stxdoc/internal/pathstore"
	"github.com/go-chi/chi/v5"
)

// pathstoreOr503 returns the pathstore client, or writes 503 when publishing
// is not configured.
func (s *Server) pathstoreOr503(w http.ResponseWriter) *pathstore.Client {
	ps := s.orchestrator.PathstoreClient()
	if ps == nil {
		jsonError(w, "publishing is not configured", http.StatusServiceUnavailable)
	}
	return ps
}

// handleListDocuments lists published documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ps := s.pathstoreOr503(w)
	if ps == nil {
		return
	}
	docs, err := ps.ListDocuments(r.Context())
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleGetDocument serves a published document's HTML.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	ps := s.pathstoreOr503(w)
	if ps == nil {
		return
	}
	docID := chi.URLParam(r, "docID")
	if !pathstore.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}
	html, ok, err := ps.DocumentHTML(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to read document: "+err.Error(), http.StatusBadGateway)
		return
	}
	if !ok {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	s.writeHTML(w, html)
}

// handleDeleteDocument deletes a published document and its hash index entry.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ps := s.pathstoreOr503(w)
	if ps == nil {
		return
	}
	docID := chi.URLParam(r, "docID")
	if !pathstore.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}
	found, err := ps.DeleteDocument(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusBadGateway)
		return
	}
	if !found {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

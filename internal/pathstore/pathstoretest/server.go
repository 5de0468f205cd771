// Package pathstoretest provides an in-memory pathstore server for tests.
package pathstoretest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
)

// Server is an in-memory pathstore KV API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nodes    map[string]json.RawMessage
	failWith int
}

func NewServer() *Server {
	s := &Server{nodes: make(map[string]json.RawMessage)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// FailWith makes every request fail with status. Zero restores normal
// service.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// Keys returns the stored keys in order.
func (s *Server) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.nodes))
	for k := range s.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the raw JSON stored at key.
func (s *Server) Value(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.nodes[key]
	return v, ok
}

type node struct {
	Key   string          `json:"key_path"`
	Value json.RawMessage `json:"value"`
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != 0 {
		http.Error(w, "injected failure", s.failWith)
		return
	}
	key, ok := strings.CutPrefix(r.URL.Path, "/kv/")
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.nodes[key] = req.Value
		w.WriteHeader(http.StatusCreated)

	case http.MethodGet:
		if prefix, scan := strings.CutSuffix(key, "/*"); scan {
			out := []node{}
			for _, k := range sortedKeys(s.nodes) {
				if strings.HasPrefix(k, prefix+"/") {
					out = append(out, node{Key: k, Value: s.nodes[k]})
				}
			}
			writeJSON(w, map[string]any{"nodes": out})
			return
		}
		v, ok := s.nodes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, node{Key: key, Value: v})

	case http.MethodDelete:
		delete(s.nodes, key)
		if r.URL.Query().Get("children") == "true" {
			for k := range s.nodes {
				if strings.HasPrefix(k, key+"/") {
					delete(s.nodes, k)
				}
			}
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

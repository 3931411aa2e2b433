// Package httpapi exposes the search engine over HTTP: a single scoped
// search endpoint plus a discovery endpoint listing known scopes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/termfx/roogle/internal/query"
	"github.com/termfx/roogle/internal/rlog"
	"github.com/termfx/roogle/internal/rqerr"
	"github.com/termfx/roogle/internal/rustdoc"
	"github.com/termfx/roogle/internal/search"
)

const defaultThreshold float32 = 0.75
const maxHits = 30

// Server is the roogle HTTP surface: a single immutable Index shared
// read-only across every request, so no locking is needed.
type Server struct {
	index  *rustdoc.Index
	log    *rlog.Logger
	server *http.Server
}

// New builds a Server bound to addr, serving queries against idx.
func New(addr string, idx *rustdoc.Index, log *rlog.Logger) *Server {
	s := &Server{index: idx, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.corsMiddleware(s.handleSearch))
	mux.HandleFunc("/scopes", s.corsMiddleware(s.handleScopes))

	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// corsMiddleware adds the permissive CORS headers the browser-based
// search UI needs, since the index is read-only and carries no secrets.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// ListenAndServe blocks serving HTTP until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	queryText := r.URL.Query().Get("query")
	if queryText == "" {
		if body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16)); err == nil {
			queryText = string(body)
		}
	}
	if queryText == "" {
		writeError(w, http.StatusBadRequest, rqerr.Error{Code: "ERR_MISSING_QUERY", Message: "query parameter or request body is required"})
		return
	}

	scopeText := r.URL.Query().Get("scope")
	scope, ok := search.ParseScope(scopeText)
	if !ok {
		scopeErr := &rqerr.ScopeSyntax{Text: scopeText}
		writeError(w, http.StatusBadRequest, rqerr.Error{Code: rqerr.CodeScopeSyntax, Message: scopeErr.Error()})
		return
	}

	q, err := query.Parse(queryText)
	if err != nil {
		s.log.Debugf("parse failed for %q: %v", queryText, err)
		writeError(w, http.StatusBadRequest, asAPIError(err))
		return
	}

	hits, err := search.Search(s.index, q, scope, defaultThreshold)
	if err != nil {
		s.log.Errorf("search failed: %v", err)
		writeError(w, http.StatusNotFound, asAPIError(err))
		return
	}

	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}

	writeJSON(w, http.StatusOK, toResponse(hits))
}

func (s *Server) handleScopes(w http.ResponseWriter, r *http.Request) {
	scopes := make([]string, 0, len(s.index.Crates)+len(s.index.Sets))
	for name := range s.index.Crates {
		scopes = append(scopes, "crate:"+name)
	}
	for name := range s.index.Sets {
		scopes = append(scopes, "set:"+name)
	}
	writeJSON(w, http.StatusOK, scopes)
}

type hitResponse struct {
	Name  string   `json:"name"`
	Path  []string `json:"path"`
	Link  []string `json:"link"`
	Docs  *string  `json:"docs,omitempty"`
	Score float32  `json:"score"`
}

func toResponse(hits []search.Hit) []hitResponse {
	out := make([]hitResponse, len(hits))
	for i, h := range hits {
		out[i] = hitResponse{Name: h.Name, Path: h.Path, Link: h.Link, Docs: h.Docs, Score: h.Similarities.Score()}
	}
	return out
}

func asAPIError(err error) rqerr.Error {
	switch e := err.(type) {
	case *rqerr.ParseError:
		return rqerr.Error{Code: rqerr.CodeParse, Message: e.Description}
	case *rqerr.CrateNotFound:
		return rqerr.Error{Code: rqerr.CodeCrateNotFound, Message: e.Error()}
	case *rqerr.SetNotFound:
		return rqerr.Error{Code: rqerr.CodeSetNotFound, Message: e.Error()}
	case *rqerr.ItemNotFound:
		return rqerr.Error{Code: rqerr.CodeItemNotFound, Message: e.Error()}
	default:
		return rqerr.Error{Code: "ERR_INTERNAL", Message: err.Error()}
	}
}

func writeError(w http.ResponseWriter, status int, apiErr rqerr.Error) {
	writeJSON(w, status, apiErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"code":"ERR_INTERNAL","message":%q}`, err.Error())
	}
}

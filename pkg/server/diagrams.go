package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
)

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"diagrams": names})
}

func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	var d diagram.Diagram
	if err := decodeBody(r, &d); err != nil {
		writeError(w, err)
		return
	}
	if d.Name == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "diagram must have a name"))
		return
	}
	if d.GridSize == 0 {
		d.GridSize = diagram.DefaultGridSize
	}

	if err := s.store.Put(r.Context(), &d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &d)
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handlePutDiagram(w http.ResponseWriter, r *http.Request) {
	var d diagram.Diagram
	if err := decodeBody(r, &d); err != nil {
		writeError(w, err)
		return
	}
	// The path owns the name.
	d.Name = chi.URLParam(r, "name")
	if d.GridSize == 0 {
		d.GridSize = diagram.DefaultGridSize
	}

	if err := s.store.Put(r.Context(), &d); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &d)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

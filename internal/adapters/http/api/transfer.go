package api

import (
	"bytes"
	"net/http"

	"github.com/okian/incentivo/internal/adapters/backup"
)

type notesBody struct {
	Notes string `json:"notes"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.deps.Export(r.Context(), &buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="incentivo-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	strategy, err := backup.ParseStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body := http.MaxBytesReader(w, r.Body, s.maxImportBytes)
	summary, err := s.deps.Import(r.Context(), body, strategy)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleGetNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.deps.Notes(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, notesBody{Notes: notes})
}

func (s *Server) handleSaveNotes(w http.ResponseWriter, r *http.Request) {
	var req notesBody
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.deps.SaveNotes(r.Context(), req.Notes); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusAccepted, req)
}

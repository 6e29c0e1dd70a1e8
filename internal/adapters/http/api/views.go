package api

import (
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.deps.Catalog().Types())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	st, err := s.deps.Stats(r.Context(), c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, st)
}

func (s *Server) handleEmployeeStats(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rows, err := s.deps.EmployeeStats(r.Context(), c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, rows)
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := criteriaFromQuery(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	attention := false
	if raw := strings.TrimSpace(q.Get("attention")); raw != "" {
		attention, err = strconv.ParseBool(raw)
		if err != nil {
			s.fail(w, r, NewKind(KindBadRequest, "invalid attention "+strconv.Quote(raw)))
			return
		}
	}
	list, err := s.deps.Impact(r.Context(), c, attention)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.deps.Dashboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, d)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	report, err := s.deps.Report(r.Context(), c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, report)
}

package api

import (
	"net/http"

	service "github.com/okian/incentivo/internal/app"
	"github.com/okian/incentivo/internal/domain/scoring"
)

// taskRequest mirrors the OpenAPI schema for POST and PUT /tasks.
// Evaluation values may be numbers, numeric strings, or empty for not entered.
type taskRequest struct {
	Title       string         `json:"title"`
	EmployeeID  int64          `json:"employeeId"`
	Type        string         `json:"type"`
	Date        string         `json:"date"`
	Evaluations map[string]any `json:"evaluations"`
	Comments    string         `json:"comments"`
}

func (t taskRequest) input() service.TaskInput {
	return service.TaskInput{
		Title:       t.Title,
		EmployeeID:  t.EmployeeID,
		Type:        t.Type,
		Date:        t.Date,
		Evaluations: scoring.ParseEvaluations(t.Evaluations),
		Comments:    t.Comments,
	}
}

type evaluationsRequest struct {
	Evaluations map[string]any `json:"evaluations"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	tasks, err := s.deps.Tasks(r.Context(), c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.deps.Task(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.deps.CreateTask(r.Context(), req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.deps.UpdateTask(r.Context(), id, req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req evaluationsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.deps.Evaluate(r.Context(), id, scoring.ParseEvaluations(req.Evaluations))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.deps.DeleteTask(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

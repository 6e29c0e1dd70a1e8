// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/okian/incentivo/internal/adapters/backup"
	service "github.com/okian/incentivo/internal/app"
	"github.com/okian/incentivo/internal/domain/catalog"
	"github.com/okian/incentivo/internal/domain/filter"
	"github.com/okian/incentivo/internal/domain/impact"
	"github.com/okian/incentivo/internal/domain/model"
	"github.com/okian/incentivo/internal/domain/stats"
	"github.com/okian/incentivo/internal/domain/types"
	"github.com/okian/incentivo/pkg/logger"
)

const defaultMaxImportBytes = 10 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Employees(ctx context.Context) ([]model.Employee, error)
	CreateEmployee(ctx context.Context, name string) (model.Employee, error)
	RenameEmployee(ctx context.Context, id int64, name string) (model.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) (int, error)

	Tasks(ctx context.Context, c filter.Criteria) ([]model.Task, error)
	Task(ctx context.Context, id int64) (model.Task, error)
	CreateTask(ctx context.Context, in service.TaskInput) (model.Task, error)
	UpdateTask(ctx context.Context, id int64, in service.TaskInput) (model.Task, error)
	Evaluate(ctx context.Context, id int64, evals model.Evaluations) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	Catalog() *catalog.Catalog
	Stats(ctx context.Context, c filter.Criteria) (stats.Stats, error)
	EmployeeStats(ctx context.Context, c filter.Criteria) ([]stats.EmployeeStats, error)
	Impact(ctx context.Context, c filter.Criteria, attentionOnly bool) ([]impact.CriterionImpact, error)
	Dashboard(ctx context.Context) (types.Dashboard, error)
	Report(ctx context.Context, c filter.Criteria) (types.Report, error)

	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader, strategy backup.Strategy) (backup.Summary, error)

	Notes(ctx context.Context) (string, error)
	SaveNotes(ctx context.Context, content string) error
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxImportBytes caps the size of POST /import bodies.
func WithMaxImportBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxImportBytes = n
		}
	}
}

// WithLogger sets a custom logger for request handling.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the evaluation API.
type Server struct {
	deps           Dependencies
	maxImportBytes int64
	logger         logger.Logger
	healthHandler  *HealthHandler
}

// NewServer creates a new API server over deps.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:           deps,
		maxImportBytes: defaultMaxImportBytes,
		healthHandler:  NewHealthHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))

	mux.HandleFunc("GET /employees", MetricsMiddleware(s.handleListEmployees, "employees"))
	mux.HandleFunc("POST /employees", MetricsMiddleware(s.handleCreateEmployee, "employees"))
	mux.HandleFunc("PUT /employees/{id}", MetricsMiddleware(s.handleRenameEmployee, "employee"))
	mux.HandleFunc("DELETE /employees/{id}", MetricsMiddleware(s.handleDeleteEmployee, "employee"))

	mux.HandleFunc("GET /tasks", MetricsMiddleware(s.handleListTasks, "tasks"))
	mux.HandleFunc("POST /tasks", MetricsMiddleware(s.handleCreateTask, "tasks"))
	mux.HandleFunc("GET /tasks/{id}", MetricsMiddleware(s.handleGetTask, "task"))
	mux.HandleFunc("PUT /tasks/{id}", MetricsMiddleware(s.handleUpdateTask, "task"))
	mux.HandleFunc("DELETE /tasks/{id}", MetricsMiddleware(s.handleDeleteTask, "task"))
	mux.HandleFunc("PUT /tasks/{id}/evaluations", MetricsMiddleware(s.handleEvaluate, "evaluations"))

	mux.HandleFunc("GET /catalog", MetricsMiddleware(s.handleCatalog, "catalog"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.handleStats, "stats"))
	mux.HandleFunc("GET /stats/employees", MetricsMiddleware(s.handleEmployeeStats, "employee_stats"))
	mux.HandleFunc("GET /impact", MetricsMiddleware(s.handleImpact, "impact"))
	mux.HandleFunc("GET /dashboard", MetricsMiddleware(s.handleDashboard, "dashboard"))
	mux.HandleFunc("GET /report", MetricsMiddleware(s.handleReport, "report"))

	mux.HandleFunc("GET /export", MetricsMiddleware(s.handleExport, "export"))
	mux.HandleFunc("POST /import", MetricsMiddleware(s.handleImport, "import"))

	mux.HandleFunc("GET /notes", MetricsMiddleware(s.handleGetNotes, "notes"))
	mux.HandleFunc("PUT /notes", MetricsMiddleware(s.handleSaveNotes, "notes"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before any header is sent so an encoding failure still
// yields a 500.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.fail(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	writeBody(w, status, buf.Bytes())
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code Kind, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	body, _ := json.Marshal(errorResponse{Code: string(code), Message: msg})
	writeBody(w, status, append(body, '\n'))
}

// fail maps err onto a status code and writes it. Internal errors are logged
// and their detail is not sent to the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := classify(err)
	switch kind {
	case KindBadRequest:
		writeError(w, http.StatusBadRequest, kind, err)
	case KindNotFound:
		writeError(w, http.StatusNotFound, kind, err)
	case KindPayloadTooLarge:
		writeError(w, http.StatusRequestEntityTooLarge, kind, err)
	default:
		s.logger.Error(r.Context(), "request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, KindInternal, nil)
	}
}

func classify(err error) Kind {
	if kind, ok := KindOf(err); ok {
		return kind
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, ErrPayloadTooLarge):
		return KindPayloadTooLarge
	case errors.Is(err, ErrNotFound),
		errors.Is(err, service.ErrEmployeeNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		return KindNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidEmployee),
		errors.Is(err, service.ErrInvalidTask),
		errors.Is(err, service.ErrUnknownType),
		errors.Is(err, backup.ErrInvalidBackup),
		errors.Is(err, backup.ErrUnsupportedVersion),
		errors.Is(err, backup.ErrUnknownStrategy):
		return KindBadRequest
	}
	return KindInternal
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return WrapKind(KindBadRequest, Wrap(err, "invalid JSON body"))
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewKind(KindBadRequest, "invalid id "+strconv.Quote(raw))
	}
	return id, nil
}

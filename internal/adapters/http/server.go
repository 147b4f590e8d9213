package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	statemachine "github.com/inventhouse/statemachine"
	"github.com/inventhouse/statemachine/pkg/domain"
)

// Server hosts machine instances over HTTP. Each instance is compiled from
// rule text at creation time and addressed by an opaque id.
type Server struct {
	mu        sync.RWMutex
	instances map[string]*instance

	metrics *Metrics
	logger  *slog.Logger
}

type instance struct {
	mu      sync.Mutex
	machine *statemachine.Machine
	report  *statemachine.Report
}

// NewServer creates an empty machine host. Metrics are registered on reg
// (prometheus.DefaultRegisterer when nil).
func NewServer(logger *slog.Logger, reg prometheus.Registerer) *Server {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Server{
		instances: make(map[string]*instance),
		metrics:   NewMetrics(reg),
		logger:    logger,
	}
}

// Handler builds the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/machines", s.createMachine)
	r.Get("/machines/{id}", s.getMachine)
	r.Delete("/machines/{id}", s.deleteMachine)
	r.Post("/machines/{id}/input", s.postInput)
	r.Get("/machines/{id}/trace", s.getTrace)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type createRequest struct {
	Start string   `json:"start"`
	Named []string `json:"named,omitempty"`
	Add   []string `json:"add,omitempty"`
	Files []string `json:"files,omitempty"`
}

type createResponse struct {
	ID         string   `json:"id"`
	State      string   `json:"state"`
	Rules      int      `json:"rules"`
	Aliases    []string `json:"aliases,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
}

func (s *Server) createMachine(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Start == "" {
		http.Error(w, "start state is required", http.StatusBadRequest)
		return
	}

	src := statemachine.Source{Named: body.Named, Add: body.Add, Files: body.Files}
	m, report, err := statemachine.Compile(body.Start, src, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.instances[id] = &instance{machine: m, report: report}
	s.mu.Unlock()
	s.metrics.MachinesCreated.Inc()
	s.logger.Info("machine created", "id", id, "start", body.Start, "rules", report.Rules)

	writeJSON(w, http.StatusCreated, createResponse{
		ID:         id,
		State:      m.State(),
		Rules:      report.Rules,
		Aliases:    report.Aliases,
		Unresolved: report.Unresolved,
	})
}

type machineResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Count int    `json:"count"`
}

func (s *Server) getMachine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst := s.lookup(id)
	if inst == nil {
		http.Error(w, "machine not found", http.StatusNotFound)
		return
	}
	inst.mu.Lock()
	resp := machineResponse{ID: id, State: inst.machine.State(), Count: inst.machine.Count()}
	inst.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteMachine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, found := s.instances[id]
	delete(s.instances, id)
	s.mu.Unlock()
	if !found {
		http.Error(w, "machine not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type inputRequest struct {
	Input string `json:"input"`
}

type inputResponse struct {
	Output    any    `json:"output,omitempty"`
	HasOutput bool   `json:"hasOutput"`
	State     string `json:"state"`
	Count     int    `json:"count"`
}

type inputError struct {
	Error string   `json:"error"`
	State string   `json:"state"`
	Trace []string `json:"trace,omitempty"`
}

func (s *Server) postInput(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst := s.lookup(id)
	if inst == nil {
		http.Error(w, "machine not found", http.StatusNotFound)
		return
	}

	var body inputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	inst.mu.Lock()
	out, ok, err := inst.machine.Input(body.Input)
	state := inst.machine.State()
	count := inst.machine.Count()
	inst.mu.Unlock()

	if err != nil {
		resp := inputError{Error: err.Error(), State: state}
		var unrec *domain.UnrecognizedError
		switch {
		case errors.As(err, &unrec):
			s.metrics.Inputs.WithLabelValues("unrecognized").Inc()
			for _, rec := range unrec.Trace {
				resp.Trace = append(resp.Trace, rec.Lines()...)
			}
		case errors.Is(err, domain.ErrCheckpoint):
			s.metrics.Inputs.WithLabelValues("checkpoint").Inc()
		default:
			s.metrics.Inputs.WithLabelValues("error").Inc()
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	s.metrics.Inputs.WithLabelValues("matched").Inc()
	writeJSON(w, http.StatusOK, inputResponse{Output: out, HasOutput: ok, State: state, Count: count})
}

type traceResponse struct {
	State string   `json:"state"`
	Lines []string `json:"lines"`
}

func (s *Server) getTrace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst := s.lookup(id)
	if inst == nil {
		http.Error(w, "machine not found", http.StatusNotFound)
		return
	}

	inst.mu.Lock()
	resp := traceResponse{State: inst.machine.State()}
	for _, rec := range inst.machine.Recent() {
		resp.Lines = append(resp.Lines, rec.Lines()...)
	}
	inst.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookup(id string) *instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instances[id]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/me/kborch/internal/job"
	"github.com/me/kborch/internal/oracle"
	"github.com/me/kborch/internal/scheduler"
	"github.com/me/kborch/internal/store"
	"github.com/me/kborch/pkg/model"
)

type discoveryResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Oracle    string `json:"oracle"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Service:   "kborch",
		Version:   "0.1.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Oracle:    string(s.config.Oracle.Mode),
	})
}

// handleHealth fetches one normalized oracle snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	health, err := s.oracle.Fetch(r.Context())
	if err != nil {
		s.respondForError(w, reqID, err)
		return
	}
	respondOK(w, reqID, health)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, map[string]any{"jobs": s.registry.IDs()})
}

type iterationRequest struct {
	JobID string `json:"job_id"`
}

// handleRunIteration performs one gated iteration around the named job.
func (s *Server) handleRunIteration(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req iterationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewAPIError(model.ErrValidation, err.Error()))
		return
	}
	if req.JobID == "" {
		req.JobID = s.config.Scheduler.DefaultJob
	}

	outcome, err := s.scheduler.RunIteration(r.Context(), req.JobID)
	if err != nil {
		s.respondForError(w, reqID, err)
		return
	}
	respondOK(w, reqID, outcome)
}

type runRequest struct {
	JobID      string `json:"job_id"`
	Iterations int    `json:"iterations"`
}

// handleCreateRun performs a full loop and persists the completed run.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req runRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewAPIError(model.ErrValidation, err.Error()))
		return
	}
	if req.JobID == "" {
		req.JobID = s.config.Scheduler.DefaultJob
	}
	if req.Iterations < 1 {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewAPIError(model.ErrValidation, "iterations must be a positive integer"))
		return
	}

	startedAt := time.Now().UTC()
	summary, err := s.scheduler.RunLoop(r.Context(), req.JobID, req.Iterations)
	if err != nil {
		s.respondForError(w, reqID, err)
		return
	}

	run := &model.Run{
		ID:          "run_" + uuid.New().String(),
		JobID:       req.JobID,
		Summary:     *summary,
		StartedAt:   startedAt,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.store.CreateRun(r.Context(), run); err != nil {
		s.logger.Error("persist run", "error", err)
		respondError(w, reqID, http.StatusInternalServerError,
			model.NewAPIError(model.ErrInternal, "failed to persist run"))
		return
	}
	respondCreated(w, reqID, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, reqID, http.StatusBadRequest,
				model.NewAPIError(model.ErrValidation, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("list runs", "error", err)
		respondError(w, reqID, http.StatusInternalServerError,
			model.NewAPIError(model.ErrInternal, "failed to list runs"))
		return
	}
	if runs == nil {
		runs = []*model.Run{}
	}
	respondOK(w, reqID, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, reqID, http.StatusNotFound,
			model.NewAPIError(model.ErrNotFound, "run '"+id+"' not found"))
		return
	}
	if err != nil {
		s.logger.Error("get run", "error", err)
		respondError(w, reqID, http.StatusInternalServerError,
			model.NewAPIError(model.ErrInternal, "failed to load run"))
		return
	}
	respondOK(w, reqID, run)
}

// decodeBody parses a JSON request body. An empty body is allowed and leaves
// dst at its zero value.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondForError maps the error taxonomy onto HTTP statuses and API codes.
func (s *Server) respondForError(w http.ResponseWriter, reqID string, err error) {
	var payloadErr *oracle.PayloadError
	var unknownJob *job.UnknownJobError
	var jobErr *scheduler.JobExecutionError

	switch {
	case errors.Is(err, oracle.ErrUnavailable):
		respondError(w, reqID, http.StatusBadGateway, model.NewAPIError(model.ErrOracleUnavailable, err.Error()))
	case errors.Is(err, oracle.ErrMalformed):
		respondError(w, reqID, http.StatusBadGateway, model.NewAPIError(model.ErrMalformedResponse, err.Error()))
	case errors.As(err, &payloadErr):
		respondError(w, reqID, http.StatusBadGateway, model.NewAPIError(model.ErrInvalidPayload, err.Error()))
	case errors.As(err, &unknownJob):
		respondError(w, reqID, http.StatusNotFound, model.NewAPIError(model.ErrUnknownJob, err.Error()))
	case errors.As(err, &jobErr):
		respondError(w, reqID, http.StatusBadGateway, model.NewAPIError(model.ErrJobFailed, err.Error()))
	default:
		s.logger.Error("unhandled error", "error", err)
		respondError(w, reqID, http.StatusInternalServerError, model.NewAPIError(model.ErrInternal, err.Error()))
	}
}

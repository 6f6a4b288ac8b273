package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rehabflow/rehabflow/internal/extract"
	"github.com/rehabflow/rehabflow/internal/matching"
	"github.com/rehabflow/rehabflow/internal/models"
	"github.com/rehabflow/rehabflow/internal/pipeline"
	"github.com/rehabflow/rehabflow/internal/storage"
)

type processPlanRequest struct {
	Path      string `json:"path"`
	PatientID string `json:"patient_id"`
	Title     string `json:"title,omitempty"`
	// StartDate is "2006-01-02"; empty means today.
	StartDate string `json:"start_date,omitempty"`
	Points    int    `json:"points,omitempty"`
}

func (s *Server) handleProcessPlan(w http.ResponseWriter, r *http.Request) {
	var req processPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" || req.PatientID == "" {
		s.respondError(w, http.StatusBadRequest, "path and patient_id are required")
		return
	}
	var start time.Time
	if req.StartDate != "" {
		var err error
		start, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
	}

	s.logger.Debug("process plan request",
		zap.String("path", req.Path), zap.String("patient_id", req.PatientID))

	result, err := s.pipe.Process(pipeline.Request{
		Path:          req.Path,
		PatientID:     req.PatientID,
		StartDate:     start,
		DefaultPoints: req.Points,
	})
	if err != nil {
		if errors.Is(err, extract.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "plan file not found")
			return
		}
		s.logger.Error("plan processing failed", zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	plan := &models.TreatmentPlan{
		PatientID:  req.PatientID,
		Title:      req.Title,
		SourcePath: req.Path,
		Text:       result.Text,
		Result:     result,
	}
	ctx := r.Context()
	if err := s.store.CreatePlan(ctx, plan); err != nil {
		s.logger.Error("plan save failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// The store owns id assignment, so the plan id exists only now.
	for _, m := range result.Missions {
		m.TreatmentPlanID = plan.ID
	}
	if err := s.store.SaveGenerated(ctx, result.Missions, result.Events); err != nil {
		s.logger.Error("mission save failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.index.Index(ctx, plan); err != nil {
		s.logger.Warn("plan indexing failed", zap.Error(err))
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"id":       plan.ID,
		"missions": len(result.Missions),
		"events":   len(result.Events),
		"metadata": result.Metadata,
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	plan, err := s.store.GetPlan(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "plan not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete plan request", zap.String("id", id))
	if err := s.store.DeletePlan(r.Context(), id); err != nil {
		s.logger.Error("plan deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.index.Delete(r.Context(), id); err != nil {
		s.logger.Warn("plan index removal failed", zap.Error(err))
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.config.Search.DefaultLimit
	}
	if limit > s.config.Search.MaxLimit {
		limit = s.config.Search.MaxLimit
	}

	results, err := s.index.Search(r.Context(), req.Query, limit)
	if err != nil {
		s.logger.Error("plan search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"results": results, "count": len(results)})
}

func (s *Server) handlePatientMissions(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "id")
	day, ok := s.parseDay(w, r)
	if !ok {
		return
	}
	missions, err := s.store.MissionsByPatient(r.Context(), patientID, day)
	if err != nil {
		s.logger.Error("mission query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"missions": missions, "count": len(missions)})
}

func (s *Server) handlePatientMatches(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "id")
	day, ok := s.parseDay(w, r)
	if !ok {
		return
	}
	if day.IsZero() {
		day = time.Now()
	}
	ctx := r.Context()

	target, err := s.store.GetUser(ctx, patientID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "user not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	targetMissions, err := s.store.MissionsByPatient(ctx, patientID, day)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var candidates []matching.Candidate
	for _, user := range users {
		if user.ID == patientID {
			continue
		}
		theirs, err := s.store.MissionsByPatient(ctx, user.ID, day)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(theirs) == 0 {
			continue
		}
		candidates = append(candidates, matching.Candidate{
			User:     *user,
			Missions: missionValues(theirs),
		})
	}

	matches := s.matcher.FindMatchingUsers(*target, missionValues(targetMissions), candidates, day)
	recommendations := s.matcher.LobbyRecommendations(matches)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"matches":         matches,
		"recommendations": recommendations,
	})
}

// parseDay reads the optional "date" query parameter. The bool is false
// when the value was present but malformed and an error was written.
func (s *Server) parseDay(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	value := r.URL.Query().Get("date")
	if value == "" {
		return time.Time{}, true
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}

func missionValues(missions []*models.Mission) []models.Mission {
	out := make([]models.Mission, len(missions))
	for i, m := range missions {
		out[i] = *m
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	planCount, err := s.store.CountPlans(ctx)
	if err != nil {
		s.logger.Error("status: count plans failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	missionCount, err := s.store.CountMissions(ctx)
	if err != nil {
		s.logger.Error("status: count missions failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	indexed, err := s.index.Count()
	if err != nil {
		s.logger.Error("status: index count failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]any{
		"plans":         planCount,
		"missions":      missionCount,
		"indexed_plans": indexed,
	}
	if diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.BleveIndexPath,
		s.config.Storage.ResultsDir,
	); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

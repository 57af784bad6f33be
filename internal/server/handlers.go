// ABOUTME: Handlers for the fitday HTTP API.
// ABOUTME: Storage failures that the tracker absorbed are reported as warnings.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/tracker"
)

type todayResponse struct {
	Workout   *models.Workout `json:"workout"`
	Minutes   int             `json:"minutes"`
	Completed bool            `json:"completed"`
}

type goalBody struct {
	WeeklyGoal int    `json:"weekly_goal"`
	Warning    string `json:"warning,omitempty"`
}

type completionRequest struct {
	ExercisesCompleted int `json:"exercises_completed"`
	DurationSeconds    int `json:"duration_seconds"`
}

type completionResponse struct {
	Record  *models.CompletionRecord `json:"record"`
	Warning string                   `json:"warning,omitempty"`
}

func (s *Server) handleTodayWorkout(w http.ResponseWriter, r *http.Request) {
	workout := s.tracker.TodayWorkout()
	writeJSON(w, http.StatusOK, todayResponse{
		Workout:   workout,
		Minutes:   workout.Minutes(),
		Completed: s.tracker.IsCompletedToday(),
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Summary())
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, goalBody{WeeklyGoal: s.tracker.WeeklyGoal()})
}

func (s *Server) handlePutGoal(w http.ResponseWriter, r *http.Request) {
	var body goalBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	err := s.tracker.SetWeeklyGoal(r.Context(), body.WeeklyGoal)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, goalBody{WeeklyGoal: body.WeeklyGoal})
	case errors.Is(err, tracker.ErrTransient):
		s.logger.Warn().Err(err).Msg("weekly goal not saved")
		writeJSON(w, http.StatusAccepted, goalBody{WeeklyGoal: body.WeeklyGoal, Warning: err.Error()})
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (s *Server) handleListCompletions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := s.tracker.History(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list completions")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if records == nil {
		records = []*models.CompletionRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleRecordCompletion(w http.ResponseWriter, r *http.Request) {
	var req completionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	}

	record, err := s.tracker.CompleteToday(r.Context(), req.ExercisesCompleted, req.DurationSeconds)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, completionResponse{Record: record})
	case errors.Is(err, tracker.ErrTransient):
		s.logger.Warn().Err(err).Msg("completion not saved")
		writeJSON(w, http.StatusAccepted, completionResponse{Record: record, Warning: err.Error()})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

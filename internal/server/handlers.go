package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/compliance-hub/internal/history"
	"github.com/sells-group/compliance-hub/internal/model"
	"github.com/sells-group/compliance-hub/internal/overlap"
	"github.com/sells-group/compliance-hub/internal/penalty"
	"github.com/sells-group/compliance-hub/internal/pillar"
	"github.com/sells-group/compliance-hub/internal/report"
	"github.com/sells-group/compliance-hub/internal/store"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	})
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "assessment not found")
		return
	}
	zap.L().Error("request failed", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal", "internal error")
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listRegulations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.reg.Regulations)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	assessments, err := s.store.ListAssessments(r.Context())
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assessments)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAssessment(r.Context(), chi.URLParam(r, "assessmentID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) getScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assessmentID")
	if _, err := s.store.GetAssessment(r.Context(), id); err != nil {
		s.respondStoreError(w, err)
		return
	}
	regs, err := s.builder.RegulationScores(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"regulations": regs,
		"overall_avg": report.OverallAverage(regs),
	})
}

func (s *Server) getPillars(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assessmentID")
	if _, err := s.store.GetAssessment(r.Context(), id); err != nil {
		s.respondStoreError(w, err)
		return
	}
	regs, err := s.builder.RegulationScores(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	perRegulation := make(map[string]model.OverallScore, len(regs))
	assessed := make(map[string]bool, len(regs))
	for _, reg := range regs {
		perRegulation[reg.RegulationID] = reg.Overall
		assessed[reg.RegulationID] = true
	}

	respondJSON(w, http.StatusOK, pillar.Score(s.reg.Pillars, pillar.BuildLookup(perRegulation), assessed))
}

func (s *Server) getSynergies(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assessmentID")
	if _, err := s.store.GetAssessment(r.Context(), id); err != nil {
		s.respondStoreError(w, err)
		return
	}
	regs, err := s.builder.RegulationScores(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	assessedIDs := make([]string, 0, len(regs))
	for _, reg := range regs {
		assessedIDs = append(assessedIDs, reg.RegulationID)
	}

	selected := overlap.FindSynergies(s.reg.Overlaps, assessedIDs)
	respondJSON(w, http.StatusOK, overlap.Annotate(selected, report.Scores(regs)))
}

func (s *Server) getRoadmap(w http.ResponseWriter, r *http.Request) {
	rep, err := s.builder.Build(r.Context(), chi.URLParam(r, "assessmentID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rep.Roadmap)
}

func (s *Server) getPenalty(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAssessment(r.Context(), chi.URLParam(r, "assessmentID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	calc := penalty.Calculate(s.reg.PenaltyTable, a.Profile.Classification, a.Profile.AnnualRevenue)
	respondJSON(w, http.StatusOK, calc)
}

func (s *Server) getTrend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assessmentID")
	if _, err := s.store.GetAssessment(r.Context(), id); err != nil {
		s.respondStoreError(w, err)
		return
	}
	log, err := s.store.LoadSnapshots(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"trend":     history.ComputeTrend(log),
		"snapshots": log,
	})
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.builder.Build(r.Context(), chi.URLParam(r, "assessmentID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

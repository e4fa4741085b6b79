package server

import (
	"io"
	"net/http"

	"github.com/jonathan/apply-assistant/internal/completeness"
	"github.com/jonathan/apply-assistant/internal/types"
)

// handleGetProfile returns the stored profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handlePutProfile replaces the stored profile
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p types.Profile
	if err := s.decodeJSON(w, r, &p); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.profiles.Replace(r.Context(), &p); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, &p)
}

// handleExportProfile returns the profile as a downloadable JSON document
func (s *Server) handleExportProfile(w http.ResponseWriter, r *http.Request) {
	data, err := s.profiles.Export(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="profile.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImportProfile validates and stores an exported profile document
func (s *Server) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	p, err := s.profiles.Import(r.Context(), data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

// handleCompleteness reports how complete the stored profile is
func (s *Server) handleCompleteness(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.CompletenessResponse{
		Completeness: completeness.Percentage(p),
		ResumeScore:  completeness.ResumeScore(p),
		Ready:        completeness.Ready(p),
	})
}

// handleAddApplication records an application in the history
func (s *Server) handleAddApplication(w http.ResponseWriter, r *http.Request) {
	var req types.AddApplicationRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	rec, err := s.profiles.AddApplication(r.Context(), types.ApplicationRecord{
		URL:            req.URL,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		Source:         req.Source,
		Status:         req.Status,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, rec)
}

// handleClearApplications empties the application history
func (s *Server) handleClearApplications(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.ClearHistory(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package server

import (
	"net/http"

	"github.com/jonathan/apply-assistant/internal/classify"
	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/fields"
	"github.com/jonathan/apply-assistant/internal/logging"
	"github.com/jonathan/apply-assistant/internal/types"
)

// ExtractResponse is the extractor output, plus page details when the request named a URL.
type ExtractResponse struct {
	types.ExtractionResult
	Posting *fetch.Posting `json:"posting,omitempty"`
}

// handleClassify assigns roles to the form controls of a page or to prepared descriptors.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req types.ClassifyRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	descriptors := req.Descriptors
	if req.HTML != "" {
		parsed, err := fields.FromHTML(req.HTML)
		if err != nil {
			s.fail(w, r, &ErrValidation{Field: "html", Message: err.Error()})
			return
		}
		descriptors = append(parsed, descriptors...)
	}

	assignments := s.classifier.Classify(descriptors)
	s.log.Debug("classified form",
		logging.Int("fields", len(descriptors)),
		logging.Int("assigned", assignments.Len()))

	resp := types.ClassifyResponse{
		Assignments: assignments,
		Fields:      len(descriptors),
	}
	if req.WantsFill() {
		if err := s.fillForm(r, &req, &resp); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// fillForm resolves the profile values for the assigned controls and, when
// asked, records the fill in the application history.
func (s *Server) fillForm(r *http.Request, req *types.ClassifyRequest, resp *types.ClassifyResponse) error {
	profile := req.Profile
	if profile == nil {
		stored, err := s.profiles.Get(r.Context())
		if err != nil {
			return err
		}
		profile = stored
	}

	resp.Fills = classify.FillValues(resp.Assignments, profile)
	resp.Filled = len(resp.Fills)
	s.log.Debug("filled form", logging.Int("filled", resp.Filled))

	if !req.Record || resp.Filled == 0 {
		return nil
	}
	rec, err := s.profiles.AddApplication(r.Context(), types.ApplicationRecord{
		URL:      req.URL,
		JobTitle: req.JobTitle,
		Source:   types.SourceAutoFilled,
		Status:   types.StatusFilled,
	})
	if err != nil {
		return err
	}
	resp.Application = &rec
	return nil
}

// handleExtract finds the job description in posted HTML, prepared blocks, or a fetched URL.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	switch {
	case len(req.Blocks) > 0:
		s.jsonResponse(w, http.StatusOK, ExtractResponse{ExtractionResult: s.extractor.Extract(req.Blocks)})

	case req.HTML != "":
		result, err := s.extractor.FromHTML(req.HTML)
		if err != nil {
			s.fail(w, r, &ErrValidation{Field: "html", Message: err.Error()})
			return
		}
		s.jsonResponse(w, http.StatusOK, ExtractResponse{ExtractionResult: result})

	default:
		if s.loader == nil {
			s.fail(w, r, &ErrUnavailable{Feature: "URL extraction"})
			return
		}
		posting, err := s.loader.Load(r.Context(), req.URL)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, ExtractResponse{
			ExtractionResult: posting.Description,
			Posting:          posting,
		})
	}
}

// handleSuggestions generates suggestions for one target field, using the
// stored profile unless the request carries one.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req types.SuggestRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	profile := req.Profile
	if profile == nil {
		stored, err := s.profiles.Get(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		profile = stored
	}
	profile.Normalize()

	s.jsonResponse(w, http.StatusOK, types.SuggestResponse{
		FieldType:   req.FieldType,
		Suggestions: s.generator.Generate(profile, req.FieldType, req.JobDescription),
	})
}

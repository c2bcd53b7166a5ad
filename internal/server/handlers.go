package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/careersync/careersync/internal/caption"
	"github.com/careersync/careersync/internal/db"
	"github.com/careersync/careersync/internal/ingestion"
	"github.com/careersync/careersync/internal/insight"
	"github.com/careersync/careersync/internal/screening"
	"github.com/careersync/careersync/internal/server/middleware"
	"github.com/careersync/careersync/internal/types"
)

// AnalysisStore is the subset of database operations the handlers need.
type AnalysisStore interface {
	CreateAnalysis(ctx context.Context, userID *uuid.UUID, kind, label string) (uuid.UUID, error)
	CompleteAnalysis(ctx context.Context, analysisID uuid.UUID, status string) error
	SaveArtifact(ctx context.Context, analysisID uuid.UUID, name string, content any) error
	GetArtifact(ctx context.Context, analysisID uuid.UUID, name string) ([]byte, error)
	GetAnalysis(ctx context.Context, analysisID uuid.UUID) (*db.Analysis, error)
	ListAnalyses(ctx context.Context, filters db.AnalysisFilters) ([]db.Analysis, error)
	DeleteAnalysis(ctx context.Context, analysisID uuid.UUID) error
}

// CaptionResponse is the response body for POST /captions
type CaptionResponse struct {
	AnalysisID string `json:"analysis_id"`
	Style      string `json:"style"`
	Draft      string `json:"draft"`
	Caption    string `json:"caption"`
}

// ScreeningResponse is the response body for POST /screenings
type ScreeningResponse struct {
	AnalysisID string            `json:"analysis_id"`
	Report     *screening.Report `json:"report"`
}

// InsightResponse is the response body for POST /insights
type InsightResponse struct {
	AnalysisID string          `json:"analysis_id"`
	Report     *insight.Report `json:"report"`
}

// handleCaption runs the two-step caption chain
func (s *Server) handleCaption(w http.ResponseWriter, r *http.Request) {
	var req types.CaptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	style, err := caption.ParseStyle(req.Style)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	analysisID, err := s.store.CreateAnalysis(r.Context(), s.ownerID(r), db.KindCaption, makeLabel(req.Topic))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	result, err := caption.Generate(r.Context(), s.llm, req.Topic, style)
	if err != nil {
		s.failAnalysis(r.Context(), analysisID)
		s.errorResponse(w, analysisErrorStatus(err), err.Error())
		return
	}

	s.finishAnalysis(r.Context(), analysisID, result)
	s.jsonResponse(w, http.StatusOK, CaptionResponse{
		AnalysisID: analysisID.String(),
		Style:      string(result.Style),
		Draft:      result.Draft,
		Caption:    result.Caption,
	})
}

// handleScreening runs the four-branch screening fan-out
func (s *Server) handleScreening(w http.ResponseWriter, r *http.Request) {
	var req types.ScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobDescription, err := s.resolveJobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to fetch job posting: "+err.Error())
		return
	}

	analysisID, err := s.store.CreateAnalysis(r.Context(), s.ownerID(r), db.KindScreening, makeLabel(jobDescription))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	report, err := screening.Analyze(r.Context(), s.llm, req.Resume, jobDescription)
	if err != nil {
		s.failAnalysis(r.Context(), analysisID)
		s.errorResponse(w, analysisErrorStatus(err), err.Error())
		return
	}

	s.finishAnalysis(r.Context(), analysisID, report)
	s.jsonResponse(w, http.StatusOK, ScreeningResponse{
		AnalysisID: analysisID.String(),
		Report:     report,
	})
}

// handleInsight runs the structured career intelligence analysis
func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	var req types.InsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobDescription, err := s.resolveJobDescription(r.Context(), req.JobDescription, req.JobURL)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to fetch job posting: "+err.Error())
		return
	}

	analysisID, err := s.store.CreateAnalysis(r.Context(), s.ownerID(r), db.KindInsight, makeLabel(jobDescription))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	report, err := insight.Analyze(r.Context(), s.llm, req.Resume, jobDescription, studentContext(req))
	if err != nil {
		s.failAnalysis(r.Context(), analysisID)
		s.errorResponse(w, analysisErrorStatus(err), err.Error())
		return
	}

	s.finishAnalysis(r.Context(), analysisID, report)
	s.jsonResponse(w, http.StatusOK, InsightResponse{
		AnalysisID: analysisID.String(),
		Report:     report,
	})
}

// handleInsightStream runs the insight analysis and streams progress via SSE
func (s *Server) handleInsightStream(w http.ResponseWriter, r *http.Request) {
	var req types.InsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()

	var jobDescription string
	if req.JobURL != "" {
		sse.WriteStep("ingest", "Fetching job posting")
	}
	jobDescription, err = s.resolveJobDescription(ctx, req.JobDescription, req.JobURL)
	if err != nil {
		sse.WriteError("Failed to fetch job posting: " + err.Error())
		return
	}

	analysisID, err := s.store.CreateAnalysis(ctx, s.ownerID(r), db.KindInsight, makeLabel(jobDescription))
	if err != nil {
		sse.WriteError("Database error: " + err.Error())
		return
	}

	sse.WriteStep("analyze", "Generating career intelligence report")
	report, err := insight.Analyze(ctx, s.llm, req.Resume, jobDescription, studentContext(req))
	if err != nil {
		s.failAnalysis(ctx, analysisID)
		sse.WriteError(err.Error())
		return
	}

	s.finishAnalysis(ctx, analysisID, report)
	if err := sse.WriteEvent("report", report); err != nil {
		log.Printf("Error writing SSE report event: %v", err)
	}
	sse.WriteComplete(analysisID.String(), db.StatusCompleted)
}

// handleListAnalyses lists recent analyses with optional kind/status filters
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	filters := db.AnalysisFilters{
		Kind:   r.URL.Query().Get("kind"),
		Status: r.URL.Query().Get("status"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		filters.Limit = limit
	}

	analyses, err := s.store.ListAnalyses(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if analyses == nil {
		analyses = []db.Analysis{}
	}

	s.jsonResponse(w, http.StatusOK, analyses)
}

// handleGetAnalysis returns a single analysis record
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), analysisID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if analysis == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleGetAnalysisResult returns the stored result artifact for an analysis
func (s *Server) handleGetAnalysisResult(w http.ResponseWriter, r *http.Request) {
	analysisID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	content, err := s.store.GetArtifact(r.Context(), analysisID, db.ArtifactResult)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "Result not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		log.Printf("Error writing result response: %v", err)
	}
}

// handleDeleteAnalysis deletes an analysis and its artifacts
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	analysisID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), analysisID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if analysis == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	if err := s.store.DeleteAnalysis(r.Context(), analysisID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses a UUID path value, writing an error response on failure
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	idStr := r.PathValue(name)
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Analysis ID is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID format")
		return uuid.Nil, false
	}
	return id, true
}

// resolveJobDescription returns the job text directly or fetches it from a URL
func (s *Server) resolveJobDescription(ctx context.Context, jobDescription, jobURL string) (string, error) {
	if jobURL == "" {
		return ingestion.CleanText(jobDescription), nil
	}
	return ingestion.FromURL(ctx, jobURL, s.useBrowser, false)
}

// finishAnalysis saves the result artifact and marks the analysis completed.
// Persistence failures are logged, not surfaced; the result is already in hand.
func (s *Server) finishAnalysis(ctx context.Context, analysisID uuid.UUID, result any) {
	if err := s.store.SaveArtifact(ctx, analysisID, db.ArtifactResult, result); err != nil {
		log.Printf("Failed to save result for analysis %s: %v", analysisID, err)
	}
	if err := s.store.CompleteAnalysis(ctx, analysisID, db.StatusCompleted); err != nil {
		log.Printf("Failed to complete analysis %s: %v", analysisID, err)
	}
}

// failAnalysis marks the analysis failed, leaving no result artifact behind
func (s *Server) failAnalysis(ctx context.Context, analysisID uuid.UUID) {
	if err := s.store.CompleteAnalysis(ctx, analysisID, db.StatusFailed); err != nil {
		log.Printf("Failed to mark analysis %s failed: %v", analysisID, err)
	}
}

// ownerID returns the authenticated user's ID if a valid token is present.
// Analyses created without a token are anonymous.
func (s *Server) ownerID(r *http.Request) *uuid.UUID {
	if s.jwtService == nil {
		return nil
	}
	token, ok := middleware.BearerToken(r)
	if !ok {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	id := claims.GetUserID()
	return &id
}

// analysisErrorStatus maps analysis errors to HTTP status codes
func analysisErrorStatus(err error) int {
	var captionVal *caption.ValidationError
	var screeningVal *screening.ValidationError
	var insightVal *insight.ValidationError
	if errors.As(err, &captionVal) || errors.As(err, &screeningVal) || errors.As(err, &insightVal) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// studentContext builds the optional student background from an insight request
func studentContext(req types.InsightRequest) insight.StudentContext {
	return insight.StudentContext{
		AcademicLevel: req.AcademicLevel,
		FieldOfStudy:  req.FieldOfStudy,
		Graduation:    req.Graduation,
		CareerGoals:   req.CareerGoals,
		Internships:   req.Internships,
	}
}

// makeLabel derives a short label from free text
func makeLabel(text string) string {
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if len(line) > 80 {
		line = line[:77] + "..."
	}
	return line
}

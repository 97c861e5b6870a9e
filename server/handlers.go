package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/recommend"
)

// Error codes returned in error responses.
const (
	CodeInvalidQuery = "invalid_query"
	CodeInvalidLimit = "invalid_limit"
	CodeLoadFailed   = "load_failed"
	CodeInconsistent = "inconsistent_artifacts"
	CodeInternal     = "internal_error"
	CodeNotReady     = "not_ready"
)

const blankQueryMessage = "Please enter a course name to get recommendations."

type successResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type errorResponse struct {
	Status string    `json:"status"`
	Error  errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RecommendationData is the payload of a successful recommendation.
type RecommendationData struct {
	Query   string   `json:"query"`
	Kind    string   `json:"kind"`
	Titles  []string `json:"titles"`
	Message string   `json:"message,omitempty"`
}

// HealthData is the payload of a successful health check.
type HealthData struct {
	State string `json:"state"`
}

func newRecommendationData(result recommend.Result) RecommendationData {
	data := RecommendationData{
		Query:  result.Query,
		Kind:   result.Kind.String(),
		Titles: result.Titles,
	}
	if data.Titles == nil {
		data.Titles = []string{}
	}
	if !result.Found() {
		data.Message = recommend.NotFoundMessage
	}
	return data
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveDuration(time.Since(start))
	}()

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		s.writeError(w, http.StatusBadRequest, CodeInvalidQuery, blankQueryMessage)
		return
	}

	limit := s.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, CodeInvalidLimit, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	result, err := s.catalog.Recommend(r.Context(), query, limit)
	if err != nil {
		code := CodeInternal
		switch {
		case errors.Is(err, artifact.ErrLoad):
			code = CodeLoadFailed
		case errors.Is(err, recommend.ErrConsistency):
			code = CodeInconsistent
		}
		s.logger.Error("error answering query", "query", query, "code", code, "err", err)
		s.writeError(w, http.StatusInternalServerError, code, err.Error())
		return
	}

	s.metrics.ObserveResult(result)
	s.writeJSON(w, http.StatusOK, successResponse{
		Status: "success",
		Data:   newRecommendationData(result),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if !s.catalog.Ready() {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Status: "error",
			Error:  errorBody{Code: CodeNotReady, Message: "artifacts not loaded"},
		})
		return
	}
	s.writeJSON(w, http.StatusOK, successResponse{
		Status: "success",
		Data:   HealthData{State: "ready"},
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.metrics.ObserveError(code)
	s.writeJSON(w, status, errorResponse{
		Status: "error",
		Error:  errorBody{Code: code, Message: message},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("error writing response", "err", err)
	}
}

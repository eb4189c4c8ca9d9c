// Package handler provides the HTTP handlers for the codelens API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dshills/codelens/internal/providers"
	"github.com/dshills/codelens/internal/review"
)

// Reviewer submits code for review.
type Reviewer interface {
	Submit(ctx context.Context, req review.Request) (*review.Result, error)
}

type reviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	APIKey   string `json:"apiKey"`
	Model    string `json:"model"`
}

// ReviewHandler serves POST /api/review.
type ReviewHandler struct {
	reviewer     Reviewer
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewReviewHandler creates a handler that caps request bodies at maxBodyBytes.
func NewReviewHandler(reviewer Reviewer, maxBodyBytes int64, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewer:     reviewer,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Handle decodes the request, runs one review and writes the validated
// result as JSON.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	res, err := h.reviewer.Submit(r.Context(), review.Request{
		Code:     req.Code,
		Language: req.Language,
		Model:    req.Model,
		APIKey:   req.APIKey,
	})
	if err != nil {
		status := StatusFor(err)
		h.logger.Warn("review request failed", "kind", review.KindOf(err), "status", status, "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// StatusFor maps a review error to the HTTP status the API reports.
func StatusFor(err error) int {
	switch review.KindOf(err) {
	case review.KindConfiguration:
		return http.StatusBadRequest
	case review.KindTransport, review.KindEmptyResponse, review.KindExtraction, review.KindValidation:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type modelsResponse struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}

// Models serves GET /api/models.
func Models(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, modelsResponse{
		Default: review.DefaultModel,
		Models:  providers.GeminiModels,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

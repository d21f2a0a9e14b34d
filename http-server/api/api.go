// Package api holds the pieces every handler shares: error responses, error to
// status mapping and URL parameter parsing.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"steel-estimator/internal/service/costing"
	"steel-estimator/internal/service/pricing"
	"steel-estimator/internal/service/takeoff"
	"steel-estimator/internal/storage"
)

var ErrBadProjectID = errors.New("invalid project id")

type ErrorResp struct {
	Error string `json:"error"`
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResp{Error: msg})
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, takeoff.ErrMissingColumns), errors.Is(err, takeoff.ErrEmptyData),
		errors.Is(err, costing.ErrNestedChildMaterial), errors.Is(err, costing.ErrInvalidMaterial):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pricing.ErrInvalidPricing), errors.Is(err, ErrBadProjectID):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// Message is the client-facing text for an error. Internal failures are not
// described to the client.
func Message(err error) string {
	var missing *takeoff.MissingColumnsError
	switch status := StatusFor(err); {
	case errors.As(err, &missing):
		return missing.Error()
	case errors.Is(err, takeoff.ErrEmptyData):
		return takeoff.ErrEmptyData.Error()
	case status == http.StatusInternalServerError:
		return "internal error"
	case status == http.StatusGatewayTimeout:
		return "request timed out"
	default:
		return rootMessage(err)
	}
}

// rootMessage drops the op prefixes and keeps the innermost error text.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// ProjectID parses the {projectID} URL parameter.
func ProjectID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "projectID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadProjectID, raw)
	}
	return id, nil
}

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/invoice"
	"github.com/rshade/solarsizer/internal/logging"
	"github.com/rshade/solarsizer/internal/report"
)

// Error codes returned in the error body.
const (
	codeZoneNotFound  = "zone_not_found"
	codeInvalidInput  = "invalid_input"
	codeMissingField  = "missing_field"
	codeUnknownBrand  = "unknown_brand"
	codeUnsupported   = "unsupported_document"
	codeUnreadable    = "unreadable_invoice"
	codeUnavailable   = "extraction_unavailable"
	codeUpstream      = "extraction_failed"
	codeRequestTooBig = "request_too_large"
	codeInternal      = "internal"
)

// ErrorBody is the error object returned by every failing endpoint.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	ctx := c.Request.Context()
	event := logging.FromContext(ctx).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.FromContext(ctx).Error()
	}
	event.Ctx(ctx).
		Str("component", "server").
		Int("status", status).
		Str("code", code).
		Str("message", message).
		Msg("request failed")

	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// respondEngineError maps engine and report errors onto HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrZoneNotFound):
		respondError(c, http.StatusUnprocessableEntity, codeZoneNotFound, err.Error())
	case errors.Is(err, engine.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, codeInvalidInput, err.Error())
	case errors.Is(err, report.ErrMissingField):
		respondError(c, http.StatusBadRequest, codeMissingField, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, codeInternal, err.Error())
	}
}

func respondExtractionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, invoice.ErrUnsupportedDocument):
		respondError(c, http.StatusUnsupportedMediaType, codeUnsupported, err.Error())
	case errors.Is(err, invoice.ErrEmptyDocument):
		respondError(c, http.StatusBadRequest, codeInvalidInput, err.Error())
	case errors.Is(err, invoice.ErrMissingField), errors.Is(err, invoice.ErrInvalidField):
		respondError(c, http.StatusUnprocessableEntity, codeUnreadable, err.Error())
	default:
		respondError(c, http.StatusBadGateway, codeUpstream, err.Error())
	}
}

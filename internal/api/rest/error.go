package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/verifyx/provenance-api/internal/domain"
	"github.com/verifyx/provenance-api/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest ErrorCode = "bad_request"
	errCodeNotFound   ErrorCode = "not_found"
	errCodeConflict   ErrorCode = "conflict"

	// Ledger and coordination errors (5xx)
	errCodeLedgerRejected    ErrorCode = "ledger_rejected"
	errCodeLedgerTimeout     ErrorCode = "ledger_timeout"
	errCodeLedgerUnavailable ErrorCode = "ledger_unavailable"
	errCodeMetadataWriteLost ErrorCode = "metadata_write_lost"
	errCodeInternalError     ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information. LedgerRef is present when a confirmed
// ledger transaction exists behind the failure, so callers can retry safely.
type errorDetail struct {
	Code      ErrorCode         `json:"code"`
	Message   string            `json:"message"`
	LedgerRef *domain.LedgerRef `json:"ledger_ref,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	c.JSON(statusCode, errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message)
}

// respondDomainError maps the coordination error taxonomy to HTTP status codes.
// Every failure carries a distinguishable code; the partial-failure case
// additionally carries the confirmed ledger reference for idempotent retry.
func respondDomainError(c *gin.Context, err error) {
	if lost, ok := domain.AsMetadataWriteLost(err); ok {
		logger.Error(err,
			zap.Uint64("ledger_id", lost.Ref.LedgerID),
			zap.String("tx_hash", lost.Ref.TxHash))
		c.JSON(http.StatusBadGateway, errorResponse{
			Error: errorDetail{
				Code:      errCodeMetadataWriteLost,
				Message:   "ledger write confirmed but metadata write failed; retry with the same request",
				LedgerRef: &lost.Ref,
			},
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		respondBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrBatchNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateSerial):
		respondWithError(c, http.StatusConflict, errCodeConflict, err.Error())
	case errors.Is(err, domain.ErrLedgerRejected):
		respondWithError(c, http.StatusConflict, errCodeLedgerRejected, err.Error())
	case errors.Is(err, domain.ErrLedgerTimeout):
		respondWithError(c, http.StatusGatewayTimeout, errCodeLedgerTimeout, err.Error())
	case errors.Is(err, domain.ErrLedgerUnavailable):
		respondWithError(c, http.StatusBadGateway, errCodeLedgerUnavailable, err.Error())
	default:
		logger.Error(err)
		respondWithError(c, http.StatusInternalServerError, errCodeInternalError, "internal error")
	}
}

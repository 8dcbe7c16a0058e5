package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/middleware"
)

// clientMessages are the messages exposed for each error code
var clientMessages = map[int]string{
	domainerr.CodeInsufficientFunds: "Insufficient funds",
	domainerr.CodeInvalidAmount:     "Amount must not be negative",
	domainerr.CodeInvalidPlayerID:   "Invalid player ID",
	domainerr.CodeInvalidBet:        "Bet must be a positive integer",
	domainerr.CodeDuplicatePlayer:   "Player already exists",
	domainerr.CodeAmountOverflow:    "Amount is too large",
	domainerr.CodeInvalidRequest:    "Invalid request",
	domainerr.CodePlayerNotFound:    "Player not found",
	domainerr.CodeTransientStore:    "Service temporarily unavailable, retry the request",
	domainerr.CodeInternalServer:    "Internal server error",
}

// statusFor maps a domain error to its HTTP status and API code
func statusFor(err error) (int, int) {
	code := domainerr.ErrorCode(err)

	switch {
	case code == domainerr.CodePlayerNotFound:
		return http.StatusNotFound, code
	case code == domainerr.CodeDuplicatePlayer:
		return http.StatusConflict, code
	case domainerr.IsClientError(err):
		return http.StatusBadRequest, code
	case code == domainerr.CodeTransientStore,
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, domainerr.CodeTransientStore
	default:
		return http.StatusInternalServerError, domainerr.CodeInternalServer
	}
}

// respondError writes the error body. Server-side failures are logged with
// their full cause; clients only see the generic message.
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status, code := statusFor(err)

	fields := map[string]any{
		"operation":  operation,
		"status":     status,
		"error_code": code,
		"error":      err.Error(),
		"request_id": c.GetString(middleware.RequestIDKey),
	}
	var spinErr *domainerr.SpinError
	if errors.As(err, &spinErr) {
		for k, v := range spinErr.LogFields() {
			fields[k] = v
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
	} else {
		logger.Info("Request rejected", fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    code,
		Message: clientMessages[code],
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/middleware"
)

// SpinHandler handles spin requests
type SpinHandler struct {
	spinUseCase usecase.SpinUseCase
	logger      coreport.Logger
}

// NewSpinHandler creates a new spin handler instance
func NewSpinHandler(spinUseCase usecase.SpinUseCase, logger coreport.Logger) *SpinHandler {
	return &SpinHandler{
		spinUseCase: spinUseCase,
		logger:      logger,
	}
}

// Spin handles the POST /api/spin endpoint
func (h *SpinHandler) Spin(c *gin.Context) {
	var req dto.SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Invalid spin request", map[string]any{
			"error":      err.Error(),
			"request_id": c.GetString(middleware.RequestIDKey),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidRequest,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.spinUseCase.Spin(c.Request.Context(), req.PlayerID, *req.Bet)
	if err != nil {
		respondError(c, h.logger, "spin", err)
		return
	}

	c.JSON(http.StatusOK, dto.SpinResponse{
		PlayerID:   result.PlayerID,
		Bet:        result.Bet,
		Win:        result.Win,
		NewBalance: result.NewBalance,
	})
}

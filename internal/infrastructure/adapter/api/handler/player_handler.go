package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	coreport "github.com/amirhossein-jamali/spin-engine/internal/domain/port/core"
	"github.com/amirhossein-jamali/spin-engine/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/middleware"
)

// PlayerHandler handles player-related HTTP requests
type PlayerHandler struct {
	playerUseCase usecase.PlayerUseCase
	logger        coreport.Logger
}

// NewPlayerHandler creates a new player handler instance
func NewPlayerHandler(
	playerUseCase usecase.PlayerUseCase,
	logger coreport.Logger,
) *PlayerHandler {
	return &PlayerHandler{
		playerUseCase: playerUseCase,
		logger:        logger,
	}
}

// CreatePlayer handles the POST /api/player endpoint
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req dto.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Invalid create player request", map[string]any{
			"error":      err.Error(),
			"request_id": c.GetString(middleware.RequestIDKey),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidRequest,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	player, err := h.playerUseCase.CreatePlayer(c.Request.Context(), *req.InitialBalance)
	if err != nil {
		respondError(c, h.logger, "create_player", err)
		return
	}

	c.JSON(http.StatusOK, dto.PlayerResponse{
		PlayerID: player.ID,
		Balance:  player.Balance(),
	})
}

// GetBalance handles the GET /api/balance/:playerId endpoint
func (h *PlayerHandler) GetBalance(c *gin.Context) {
	playerID := strings.TrimSpace(c.Param("playerId"))
	if playerID == "" {
		respondError(c, h.logger, "get_balance", domainerr.ErrInvalidPlayerID)
		return
	}

	player, err := h.playerUseCase.GetBalance(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, h.logger, "get_balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.PlayerResponse{
		PlayerID: player.ID,
		Balance:  player.Balance(),
	})
}

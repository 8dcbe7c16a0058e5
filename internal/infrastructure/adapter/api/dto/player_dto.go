package dto

// CreatePlayerRequest represents the API request for opening an account
type CreatePlayerRequest struct {
	InitialBalance *int64 `json:"initialBalance" binding:"required"`
}

// PlayerResponse represents a player's identifier and balance
type PlayerResponse struct {
	PlayerID string `json:"playerId"`
	Balance  int64  `json:"balance"`
}

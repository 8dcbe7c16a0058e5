package dto

// SpinRequest represents the API request for a spin.
// Bet is checked by the engine so that zero and negative wagers get the InvalidBet code.
type SpinRequest struct {
	PlayerID string `json:"playerId" binding:"required"`
	Bet      *int64 `json:"bet" binding:"required"`
}

// SpinResponse represents the outcome of a committed spin
type SpinResponse struct {
	PlayerID   string `json:"playerId"`
	Bet        int64  `json:"bet"`
	Win        int64  `json:"win"`
	NewBalance int64  `json:"newBalance"`
}

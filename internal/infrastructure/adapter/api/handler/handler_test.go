package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/logger"
	mockusecase "github.com/amirhossein-jamali/spin-engine/mocks/port/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(players *mockusecase.MockPlayerUseCase, spins *mockusecase.MockSpinUseCase) *gin.Engine {
	log := logger.NewNoopLogger()
	router := gin.New()
	playerHandler := NewPlayerHandler(players, log)
	spinHandler := NewSpinHandler(spins, log)
	router.POST("/api/player", playerHandler.CreatePlayer)
	router.GET("/api/balance/:playerId", playerHandler.GetBalance)
	router.POST("/api/spin", spinHandler.Spin)
	return router
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreatePlayer(t *testing.T) {
	t.Run("Returns the new player", func(t *testing.T) {
		players := mockusecase.NewMockPlayerUseCase(t)
		players.EXPECT().CreatePlayer(mock.Anything, int64(1000)).
			Return(entity.RestorePlayer("p1", 1000, 0, 0, time.Time{}, time.Time{}), nil).Once()

		rec := perform(newTestRouter(players, nil), http.MethodPost, "/api/player", `{"initialBalance":1000}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.PlayerResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, dto.PlayerResponse{PlayerID: "p1", Balance: 1000}, body)
	})

	t.Run("Zero opening balance is accepted", func(t *testing.T) {
		players := mockusecase.NewMockPlayerUseCase(t)
		players.EXPECT().CreatePlayer(mock.Anything, int64(0)).
			Return(entity.RestorePlayer("p0", 0, 0, 0, time.Time{}, time.Time{}), nil).Once()

		rec := perform(newTestRouter(players, nil), http.MethodPost, "/api/player", `{"initialBalance":0}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing balance", func(t *testing.T) {
		players := mockusecase.NewMockPlayerUseCase(t)

		rec := perform(newTestRouter(players, nil), http.MethodPost, "/api/player", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domainerr.CodeInvalidRequest, decodeError(t, rec).Code)
	})

	t.Run("Negative balance", func(t *testing.T) {
		players := mockusecase.NewMockPlayerUseCase(t)
		players.EXPECT().CreatePlayer(mock.Anything, int64(-5)).Return(nil, domainerr.ErrInvalidAmount).Once()

		rec := perform(newTestRouter(players, nil), http.MethodPost, "/api/player", `{"initialBalance":-5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domainerr.CodeInvalidAmount, decodeError(t, rec).Code)
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("Existing player", func(t *testing.T) {
		players := mockusecase.NewMockPlayerUseCase(t)
		players.EXPECT().GetBalance(mock.Anything, "p1").
			Return(entity.RestorePlayer("p1", 150, 1, 1, time.Time{}, time.Time{}), nil).Once()

		rec := perform(newTestRouter(players, nil), http.MethodGet, "/api/balance/p1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"playerId":"p1","balance":150}`, rec.Body.String())
	})

	t.Run("Unknown player", func(t *testing.T) {
		players := mockusecase.NewMockPlayerUseCase(t)
		players.EXPECT().GetBalance(mock.Anything, "ghost").Return(nil, domainerr.ErrPlayerNotFound).Once()

		rec := perform(newTestRouter(players, nil), http.MethodGet, "/api/balance/ghost", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, domainerr.CodePlayerNotFound, body.Code)
		assert.Equal(t, "Player not found", body.Message)
	})
}

func TestSpin(t *testing.T) {
	t.Run("Winning spin", func(t *testing.T) {
		spins := mockusecase.NewMockSpinUseCase(t)
		spins.EXPECT().Spin(mock.Anything, "p1", int64(50)).Return(&entity.SpinResult{
			PlayerID:   "p1",
			Bet:        50,
			Win:        100,
			NewBalance: 150,
			Sequence:   3,
		}, nil).Once()

		rec := perform(newTestRouter(nil, spins), http.MethodPost, "/api/spin", `{"playerId":"p1","bet":50}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"playerId":"p1","bet":50,"win":100,"newBalance":150}`, rec.Body.String())
	})

	t.Run("Malformed body", func(t *testing.T) {
		spins := mockusecase.NewMockSpinUseCase(t)

		rec := perform(newTestRouter(nil, spins), http.MethodPost, "/api/spin", `{"playerId":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domainerr.CodeInvalidRequest, decodeError(t, rec).Code)
	})

	t.Run("Missing bet", func(t *testing.T) {
		spins := mockusecase.NewMockSpinUseCase(t)

		rec := perform(newTestRouter(nil, spins), http.MethodPost, "/api/spin", `{"playerId":"p1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"Zero bet", domainerr.NewSpinError("p1", 0, "Received", domainerr.ErrInvalidBet), http.StatusBadRequest, domainerr.CodeInvalidBet},
		{"Insufficient funds", domainerr.NewSpinError("p1", 50, "Validated", domainerr.NewInsufficientFundsError("p1", 50, 10)), http.StatusBadRequest, domainerr.CodeInsufficientFunds},
		{"Unknown player", domainerr.NewSpinError("p1", 50, "Validated", domainerr.ErrPlayerNotFound), http.StatusNotFound, domainerr.CodePlayerNotFound},
		{"Transient store", fmt.Errorf("commit: %w", domainerr.ErrTransientStore), http.StatusServiceUnavailable, domainerr.CodeTransientStore},
		{"Deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, domainerr.CodeTransientStore},
		{"Unexpected", errors.New("boom"), http.StatusInternalServerError, domainerr.CodeInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spins := mockusecase.NewMockSpinUseCase(t)
			spins.EXPECT().Spin(mock.Anything, "p1", mock.Anything).Return(nil, tc.err).Once()

			rec := perform(newTestRouter(nil, spins), http.MethodPost, "/api/spin", `{"playerId":"p1","bet":50}`)

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.wantCode, body.Code)
			assert.NotContains(t, body.Message, "boom")
		})
	}
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func TestHealth(t *testing.T) {
	log := logger.NewNoopLogger()

	t.Run("Healthy", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthHandler(stubPinger{}, time.Second, log).Health)

		rec := perform(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("No pinger", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthHandler(nil, 0, log).Health)

		rec := perform(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Store down", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthHandler(stubPinger{err: errors.New("refused")}, time.Second, log).Health)

		rec := perform(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "refused")
	})
}

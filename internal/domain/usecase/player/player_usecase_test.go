package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	mockcore "github.com/amirhossein-jamali/spin-engine/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/spin-engine/mocks/port/persistence"
)

func setupPlayerUseCase(t *testing.T) (*PlayerUseCase, *mockpersistence.MockPlayerRepository) {
	mockLogger := mockcore.NewMockLogger(t)
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	mockTime := mockcore.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Maybe()

	repo := mockpersistence.NewMockPlayerRepository(t)
	uow := mockpersistence.NewMockUnitOfWork(t)
	uow.EXPECT().GetPlayerRepository(mock.Anything).Return(repo).Maybe()

	return NewPlayerUseCase(uow, mockTime, mockLogger), repo
}

func TestCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful creation", func(t *testing.T) {
		useCase, repo := setupPlayerUseCase(t)
		repo.EXPECT().Create(ctx, mock.MatchedBy(func(p *entity.Player) bool {
			return p.Balance() == 1000 && p.ID != ""
		})).Return(nil).Once()

		player, err := useCase.CreatePlayer(ctx, 1000)

		require.NoError(t, err)
		assert.Equal(t, int64(1000), player.Balance())
	})

	t.Run("Negative opening balance", func(t *testing.T) {
		useCase, repo := setupPlayerUseCase(t)

		_, err := useCase.CreatePlayer(ctx, -10)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Store failure", func(t *testing.T) {
		useCase, repo := setupPlayerUseCase(t)
		repo.EXPECT().Create(ctx, mock.Anything).Return(errs.ErrTransientStore).Once()

		_, err := useCase.CreatePlayer(ctx, 10)

		assert.ErrorIs(t, err, errs.ErrTransientStore)
	})
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing player", func(t *testing.T) {
		useCase, repo := setupPlayerUseCase(t)
		stored := entity.RestorePlayer("p1", 75, 2, 1, time.Time{}, time.Time{})
		repo.EXPECT().GetByID(ctx, "p1").Return(stored, nil).Once()

		player, err := useCase.GetBalance(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, int64(75), player.Balance())
	})

	t.Run("Unknown player", func(t *testing.T) {
		useCase, repo := setupPlayerUseCase(t)
		repo.EXPECT().GetByID(ctx, "ghost").Return(nil, errs.ErrPlayerNotFound).Once()

		_, err := useCase.GetBalance(ctx, "ghost")

		assert.ErrorIs(t, err, errs.ErrPlayerNotFound)
	})

	t.Run("Empty ID", func(t *testing.T) {
		useCase, _ := setupPlayerUseCase(t)

		_, err := useCase.GetBalance(ctx, "")

		assert.ErrorIs(t, err, errs.ErrPlayerNotFound)
	})
}

func TestSeedPlayers(t *testing.T) {
	ctx := context.Background()
	useCase, repo := setupPlayerUseCase(t)
	repo.EXPECT().Create(ctx, mock.Anything).Return(nil).Times(3)

	players, err := useCase.SeedPlayers(ctx, []int64{1000, 500, 0})

	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, int64(500), players[1].Balance())
}

package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/spin-engine/internal/domain/entity"
	errs "github.com/amirhossein-jamali/spin-engine/internal/domain/error"
	"github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/logger"
	timeadapter "github.com/amirhossein-jamali/spin-engine/internal/infrastructure/adapter/time"
)

var (
	epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock = timeadapter.NewRealTimeProvider()
)

func setup(t *testing.T, balances ...int64) (*Store, *UnitOfWork, []string) {
	t.Helper()
	store := NewStore()
	uow := NewUnitOfWork(store, logger.NewNoopLogger()).(*UnitOfWork)

	ids := make([]string, 0, len(balances))
	for i, balance := range balances {
		id := string(rune('a' + i))
		player := entity.RestorePlayer(id, balance, 0, 0, epoch, epoch)
		require.NoError(t, uow.GetPlayerRepository(context.Background()).Create(context.Background(), player))
		ids = append(ids, id)
	}
	return store, uow, ids
}

func TestCommit_AppliesPlayerAndOutboxTogether(t *testing.T) {
	store, uow, ids := setup(t, 100)
	ctx := context.Background()

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)

	player, err := uow.GetPlayerRepository(txCtx).GetForUpdate(txCtx, ids[0])
	require.NoError(t, err)
	require.NoError(t, player.Debit(40, clock))
	require.NoError(t, uow.GetPlayerRepository(txCtx).Update(txCtx, player))

	seq, err := uow.GetOutboxRepository(txCtx).Append(txCtx, entity.NewOutboxEntry("spins", ids[0], []byte(`{}`), epoch))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	// nothing visible before commit
	committed, err := uow.GetPlayerRepository(ctx).GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(100), committed.Balance())
	assert.Empty(t, store.OutboxEntries())

	require.NoError(t, uow.Commit(txCtx))

	committed, err = uow.GetPlayerRepository(ctx).GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(60), committed.Balance())
	require.Len(t, store.OutboxEntries(), 1)
	assert.Equal(t, ids[0], store.OutboxEntries()[0].Key)
}

func TestRollback_DiscardsEverything(t *testing.T) {
	store, uow, ids := setup(t, 100)
	ctx := context.Background()

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	player, err := uow.GetPlayerRepository(txCtx).GetForUpdate(txCtx, ids[0])
	require.NoError(t, err)
	require.NoError(t, player.Debit(100, clock))
	require.NoError(t, uow.GetPlayerRepository(txCtx).Update(txCtx, player))
	_, err = uow.GetOutboxRepository(txCtx).Append(txCtx, entity.NewOutboxEntry("spins", ids[0], nil, epoch))
	require.NoError(t, err)

	require.NoError(t, uow.Rollback(txCtx))
	require.NoError(t, uow.Rollback(txCtx), "second rollback is a no-op")

	assert.Equal(t, int64(100), store.TotalBalance())
	assert.Empty(t, store.OutboxEntries())

	// row lock released
	next, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = uow.GetPlayerRepository(next).GetForUpdate(next, ids[0])
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(next))
}

func TestGetForUpdate_BlocksSecondTransaction(t *testing.T) {
	_, uow, ids := setup(t, 100)
	ctx := context.Background()

	first, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = uow.GetPlayerRepository(first).GetForUpdate(first, ids[0])
	require.NoError(t, err)

	second, err := uow.Begin(ctx)
	require.NoError(t, err)
	waitCtx, cancel := context.WithTimeout(second, 30*time.Millisecond)
	defer cancel()

	_, err = uow.GetPlayerRepository(waitCtx).GetForUpdate(waitCtx, ids[0])
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, uow.Commit(first))
	require.NoError(t, uow.Rollback(second))
}

func TestCommit_VersionConflict(t *testing.T) {
	_, uow, ids := setup(t, 100)
	ctx := context.Background()

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	player, err := uow.GetPlayerRepository(txCtx).GetByID(txCtx, ids[0])
	require.NoError(t, err)

	// a write outside the transaction moves the version
	other, err := uow.GetPlayerRepository(ctx).GetByID(ctx, ids[0])
	require.NoError(t, err)
	require.NoError(t, other.Credit(5, clock))
	require.NoError(t, uow.GetPlayerRepository(ctx).Update(ctx, other))

	require.NoError(t, player.Debit(10, clock))
	require.NoError(t, uow.GetPlayerRepository(txCtx).Update(txCtx, player))

	err = uow.Commit(txCtx)
	assert.ErrorIs(t, err, errs.ErrTransientStore)

	current, err := uow.GetPlayerRepository(ctx).GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, int64(105), current.Balance())
}

func TestCommit_WithoutTransaction(t *testing.T) {
	_, uow, _ := setup(t)
	assert.Error(t, uow.Commit(context.Background()))
	assert.Error(t, uow.Rollback(context.Background()))
}

func TestPlayerRepository_Errors(t *testing.T) {
	_, uow, ids := setup(t, 10)
	ctx := context.Background()
	repo := uow.GetPlayerRepository(ctx)

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrPlayerNotFound)

	err = repo.Create(ctx, entity.RestorePlayer(ids[0], 1, 0, 0, epoch, epoch))
	assert.ErrorIs(t, err, errs.ErrDuplicatePlayer)

	err = repo.Update(ctx, entity.RestorePlayer("missing", 1, 0, 0, epoch, epoch))
	assert.ErrorIs(t, err, errs.ErrPlayerNotFound)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = uow.GetPlayerRepository(txCtx).GetForUpdate(txCtx, "missing")
	assert.ErrorIs(t, err, errs.ErrPlayerNotFound)
	require.NoError(t, uow.Rollback(txCtx))
}

func TestConcurrentTransactions_Serialize(t *testing.T) {
	store, uow, ids := setup(t, 1000)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			txCtx, err := uow.Begin(ctx)
			if !assert.NoError(t, err) {
				return
			}
			player, err := uow.GetPlayerRepository(txCtx).GetForUpdate(txCtx, ids[0])
			if !assert.NoError(t, err) {
				_ = uow.Rollback(txCtx)
				return
			}
			assert.NoError(t, player.Debit(10, clock))
			assert.NoError(t, uow.GetPlayerRepository(txCtx).Update(txCtx, player))
			assert.NoError(t, uow.Commit(txCtx))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(500), store.TotalBalance())
}

func TestOutboxRepository_DeliveryBookkeeping(t *testing.T) {
	_, uow, _ := setup(t)
	ctx := context.Background()
	repo := uow.GetOutboxRepository(ctx)

	for i := 0; i < 3; i++ {
		_, err := repo.Append(ctx, entity.NewOutboxEntry("spins", "p", []byte{byte(i)}, epoch))
		require.NoError(t, err)
	}

	pending, err := repo.ListUndelivered(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, uint64(1), pending[0].Sequence)
	assert.Equal(t, uint64(2), pending[1].Sequence)

	require.NoError(t, repo.RecordFailure(ctx, 1, "bus down"))
	require.NoError(t, repo.MarkDelivered(ctx, 2, epoch))
	assert.ErrorIs(t, repo.MarkDelivered(ctx, 99, epoch), errs.ErrOutboxEntryNotFound)

	count, err := repo.CountUndelivered(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	pending, err = repo.ListUndelivered(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, "bus down", pending[0].LastError)

	purged, err := repo.PurgeDelivered(ctx, epoch.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

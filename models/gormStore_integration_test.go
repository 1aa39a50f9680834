package models_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIntegration(t *testing.T) *models.GormStore {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })
	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "goodland_test")

	require.NoError(t, config.ConnectDatabaseWithRetry(30))
	require.NoError(t, config.ConnectRedisWithRetry(10))
	require.NoError(t, models.MigrateTable(config.GetDB()))
	return models.NewGormStore(config.GetDB())
}

func TestGormStore_Integration(t *testing.T) {
	store := setupIntegration(t)
	ctx := context.Background()

	t.Run("transaction round trip", func(t *testing.T) {
		txn := sampleTransaction(t, "11111111-1111-1111-1111-111111111111", 1)
		require.NoError(t, store.AppendTransaction(ctx, txn))

		got, err := store.GetTransaction(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, txn.OrderNumber, got.OrderNumber)
		assert.Equal(t, txn.OrderType, got.OrderType)
		assert.True(t, txn.TotalAmount.Equal(got.TotalAmount))
		assert.True(t, txn.Change.Equal(got.Change))
		assert.True(t, txn.TimeOrdered.Equal(got.TimeOrdered))
		require.Len(t, got.Lines, 1)
		assert.Equal(t, txn.Lines[0].MenuItem.Name, got.Lines[0].MenuItem.Name)
		assert.True(t, txn.Lines[0].MenuItem.TotalPrice.Equal(got.Lines[0].MenuItem.TotalPrice))

		dup := sampleTransaction(t, "22222222-2222-2222-2222-222222222222", 1)
		assert.ErrorIs(t, store.AppendTransaction(ctx, dup), models.ErrDuplicateOrderNumber)
	})

	t.Run("complete once", func(t *testing.T) {
		txn := sampleTransaction(t, "33333333-3333-3333-3333-333333333333", 2)
		require.NoError(t, store.AppendTransaction(ctx, txn))
		_, err := store.UpdateTransactionStatus(ctx, txn.ID, time.Now())
		require.NoError(t, err)
		_, err = store.UpdateTransactionStatus(ctx, txn.ID, time.Now())
		assert.ErrorIs(t, err, models.ErrAlreadyCompleted)
	})

	t.Run("open stock adjusts atomically", func(t *testing.T) {
		item, err := models.NewInventoryItem{Name: "Coffee Beans", UnitCost: "850", PackStock: 3}.ToInventoryItem()
		require.NoError(t, err)
		require.NoError(t, store.CreateInventoryItem(ctx, item))

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.AdjustOpenStock(ctx, item.ID, dec("-5"))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		got, err := store.GetInventoryItem(ctx, item.ID)
		require.NoError(t, err)
		assertMoney(t, "-100", got.OpenStock, "open stock")
	})

	t.Run("redis sequence continues after persisted orders", func(t *testing.T) {
		seq := models.NewRedisOrderSequence(config.GetRedisDB(), store)
		n, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Greater(t, n, int64(2))
	})
	t.Run("redis sequence seeds once across instances", func(t *testing.T) {
		require.NoError(t, config.RemoveRedisKey(ctx, models.OrderSequenceKey))
		a := models.NewRedisOrderSequence(config.GetRedisDB(), store)
		b := models.NewRedisOrderSequence(config.GetRedisDB(), store)

		got := make(chan int64, 20)
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			seq := a
			if i%2 == 1 {
				seq = b
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := seq.Next(ctx)
				assert.NoError(t, err)
				got <- n
			}()
		}
		wg.Wait()
		close(got)

		seen := map[int64]bool{}
		for n := range got {
			assert.Falsef(t, seen[n], "order number %d handed out twice", n)
			assert.Greater(t, n, int64(2))
			seen[n] = true
		}
		assert.Len(t, seen, 20)
	})

	t.Run("row update keeps concurrent deductions", func(t *testing.T) {
		item, err := models.NewInventoryItem{Name: "Fresh Milk", UnitCost: "95", PackStock: 10, MeasurementUnit: "ml"}.ToInventoryItem()
		require.NoError(t, err)
		require.NoError(t, store.CreateInventoryItem(ctx, item))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := store.UpdateInventoryItem(ctx, item.ID, func(it *models.InventoryItem) error {
					return it.OpenPacks(1)
				})
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				_, err := store.AdjustOpenStock(ctx, item.ID, dec("-50"))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := store.GetInventoryItem(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.PackStock)
		assertMoney(t, "9500", got.OpenStock, "open stock")
	})
}

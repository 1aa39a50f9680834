package models_test

import (
	"context"
	"sync"
	"testing"

	"github.com/goodlandcafe/pos_backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreOrderSequence_ConcurrentCallsAreDistinct(t *testing.T) {
	ctx := context.Background()
	store := models.NewMemoryStore()
	require.NoError(t, store.AppendTransaction(ctx, sampleTransaction(t, "t0", 41)))
	seq := models.StoreOrderSequence{Store: store}

	const workers = 50
	got := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
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
		assert.Greater(t, n, int64(41))
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}

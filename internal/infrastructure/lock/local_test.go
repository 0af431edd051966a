package lock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_SerializaMismaClave(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Lock(ctx, "inventory-item:a", "inventory-item:b")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestLocalLocker_ClavesDuplicadasNoBloquean(t *testing.T) {
	l := NewLocalLocker()
	release, err := l.Lock(context.Background(), "k", "k")
	require.NoError(t, err)
	release()

	release, err = l.Lock(context.Background(), "k")
	require.NoError(t, err)
	release()
}

func TestLocalLocker_CancelacionMientrasEspera(t *testing.T) {
	l := NewLocalLocker()
	release, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocalLocker_LiberaClavesSinUso(t *testing.T) {
	l := NewLocalLocker()
	for i := 0; i < 50; i++ {
		release, err := l.Lock(context.Background(), fmt.Sprintf("inventory-item:%d", i), "inventory-item:comun")
		require.NoError(t, err)
		release()
	}
	assert.Equal(t, 0, l.Len())

	release, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.Len(), "la espera cancelada no deja referencias")
	release()
	assert.Equal(t, 0, l.Len())
}

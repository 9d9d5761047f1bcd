package chainstate

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestHashLocker(t *testing.T) {
	t.Run("stripe is stable and in range", func(t *testing.T) {
		sut := newHashLocker(7)

		for i := 0; i < 64; i++ {
			h := common.BytesToHash([]byte{byte(i), 0x10})
			s := sut.stripe(h)
			require.GreaterOrEqual(t, s, 0)
			require.Less(t, s, 7)
			require.Equal(t, s, sut.stripe(h))
		}
	})

	t.Run("repeated and colliding hashes do not deadlock", func(t *testing.T) {
		sut := newHashLocker(1)
		a := common.BytesToHash([]byte{0x01})
		b := common.BytesToHash([]byte{0x02})

		unlock := sut.lock(a, b, a)
		unlock()

		unlock = sut.lock(b)
		unlock()
	})

	t.Run("same hash serialized", func(t *testing.T) {
		// given
		sut := newHashLocker(16)
		h := common.BytesToHash([]byte{0x0a})

		var active, maxActive int32
		wg := sync.WaitGroup{}

		// when
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				unlock := sut.lock(h)
				defer unlock()

				n := atomic.AddInt32(&active, 1)
				for {
					m := atomic.LoadInt32(&maxActive)
					if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
			}()
		}
		wg.Wait()

		// then
		require.Equal(t, int32(1), maxActive)
	})

	t.Run("lock all waits for keyed holders", func(t *testing.T) {
		// given
		sut := newHashLocker(16)
		unlock := sut.lock(common.BytesToHash([]byte{0x01}))

		acquired := make(chan struct{})
		go func() {
			unlockAll := sut.lockAll()
			close(acquired)
			unlockAll()
		}()

		// then
		select {
		case <-acquired:
			t.Fatal("lock all acquired while a hash is locked")
		case <-time.After(50 * time.Millisecond):
		}

		unlock()

		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("lock all not acquired after release")
		}
	})

	t.Run("engine without serialized mutations", func(t *testing.T) {
		e := &Engine{}

		unlock := e.lockHashes(common.Hash{})
		unlock()
		unlockAll := e.lockAll()
		unlockAll()
	})
}

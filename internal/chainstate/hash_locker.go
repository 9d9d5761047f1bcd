package chainstate

import (
	"encoding/binary"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

const defaultLockStripes = 256

// hashLocker serializes mutations per hash over a fixed number of lock stripes. Handlers which touch a range
// of rows rather than known hashes take the exclusive side of rw and so wait for every keyed handler.
type hashLocker struct {
	rw      sync.RWMutex
	stripes []sync.Mutex
}

func newHashLocker(stripes int) *hashLocker {
	return &hashLocker{stripes: make([]sync.Mutex, stripes)}
}

func (l *hashLocker) stripe(hash common.Hash) int {
	return int(binary.BigEndian.Uint64(hash[common.HashLength-8:]) % uint64(len(l.stripes)))
}

// lock acquires the stripes of all hashes in ascending stripe order.
func (l *hashLocker) lock(hashes ...common.Hash) func() {
	idx := make([]int, 0, len(hashes))
	for _, h := range hashes {
		idx = append(idx, l.stripe(h))
	}
	slices.Sort(idx)
	idx = slices.Compact(idx)

	l.rw.RLock()
	for _, i := range idx {
		l.stripes[i].Lock()
	}

	return func() {
		for j := len(idx) - 1; j >= 0; j-- {
			l.stripes[idx[j]].Unlock()
		}
		l.rw.RUnlock()
	}
}

func (l *hashLocker) lockAll() func() {
	l.rw.Lock()
	return l.rw.Unlock
}

func (e *Engine) lockHashes(hashes ...common.Hash) func() {
	if e.locker == nil {
		return func() {}
	}

	return e.locker.lock(hashes...)
}

func (e *Engine) lockAll() func() {
	if e.locker == nil {
		return func() {}
	}

	return e.locker.lockAll()
}

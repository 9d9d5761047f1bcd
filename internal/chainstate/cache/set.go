package cache

import (
	"github.com/ethereum/go-ethereum/common"
)

// PendingHeight is the height stored for transactions which are not included in a block yet.
const PendingHeight int64 = -1

const (
	DefaultConfirmedTxSize = 100_000
	DefaultPendingTxSize   = 100_000
	DefaultBlockSize       = 1_000
)

type TxEntry struct {
	Height        int64
	LastTimestamp int64
}

func (e TxEntry) Pending() bool {
	return e.Height == PendingHeight
}

type Sizes struct {
	ConfirmedTxs int
	PendingTxs   int
	Blocks       int
}

func DefaultSizes() Sizes {
	return Sizes{
		ConfirmedTxs: DefaultConfirmedTxSize,
		PendingTxs:   DefaultPendingTxSize,
		Blocks:       DefaultBlockSize,
	}
}

// Set groups the three caches kept in step with the chain-state store. The store stays authoritative.
type Set struct {
	ConfirmedTxs *Bounded[common.Hash, TxEntry]
	PendingTxs   *Bounded[common.Hash, TxEntry]
	Blocks       *Bounded[common.Hash, uint64]
}

func NewSet(sizes Sizes) (*Set, error) {
	confirmed, err := NewBounded[common.Hash, TxEntry]("confirmed_txs", sizes.ConfirmedTxs)
	if err != nil {
		return nil, err
	}

	pending, err := NewBounded[common.Hash, TxEntry]("pending_txs", sizes.PendingTxs)
	if err != nil {
		return nil, err
	}

	blocks, err := NewBounded[common.Hash, uint64]("blocks", sizes.Blocks)
	if err != nil {
		return nil, err
	}

	return &Set{
		ConfirmedTxs: confirmed,
		PendingTxs:   pending,
		Blocks:       blocks,
	}, nil
}

// SetConfirmed records hash as confirmed at height and drops any pending entry for it. Heights handed in
// here have passed the store's INT4 binding.
func (s *Set) SetConfirmed(hash common.Hash, height uint64, lastTimestamp int64) {
	s.ConfirmedTxs.Set(hash, TxEntry{Height: int64(height), LastTimestamp: lastTimestamp})
	s.PendingTxs.Remove(hash)
}

// SetPending records hash as pending and drops any confirmed entry for it.
func (s *Set) SetPending(hash common.Hash, lastTimestamp int64) {
	s.PendingTxs.Set(hash, TxEntry{Height: PendingHeight, LastTimestamp: lastTimestamp})
	s.ConfirmedTxs.Remove(hash)
}

// RemoveTx drops hash from both transaction caches.
func (s *Set) RemoveTx(hash common.Hash) {
	s.PendingTxs.Remove(hash)
	s.ConfirmedTxs.Remove(hash)
}

// Tx looks hash up in the pending cache first and then in the confirmed cache.
func (s *Set) Tx(hash common.Hash) (TxEntry, bool) {
	if e, ok := s.PendingTxs.Get(hash); ok {
		return e, true
	}

	return s.ConfirmedTxs.Get(hash)
}

func (s *Set) Purge() {
	s.ConfirmedTxs.Purge()
	s.PendingTxs.Purge()
	s.Blocks.Purge()
}

package chainstate

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	TopicBlock            = "block"
	TopicTransaction      = "transaction"
	TopicPendingSeen      = "pending-seen"
	TopicPendingExpired   = "pending-expired"
	TopicConfirmedExpired = "confirmed-expired"
	TopicOrphaned         = "orphaned"
)

// Topics lists every event topic in the order the subscriber subscribes to them.
var Topics = []string{
	TopicBlock,
	TopicTransaction,
	TopicPendingSeen,
	TopicPendingExpired,
	TopicConfirmedExpired,
	TopicOrphaned,
}

// Event is a chain-state change delivered by the upstream source.
type Event interface {
	Topic() string
}

type NewBlock struct {
	Hash       common.Hash
	Height     uint64
	ParentHash *common.Hash
	Timestamp  int64
	TxHashes   []common.Hash
}

type NewTransaction struct {
	Hash      common.Hash
	Timestamp int64
	Affected  bool
}

// PendingSeen reports that a tracked transaction was observed again.
type PendingSeen struct {
	Hash      common.Hash
	Timestamp int64
}

// PendingExpired lists transactions the upstream source considers stale. Only pending hashes are expected.
type PendingExpired struct {
	Hashes []common.Hash
}

type ConfirmedExpired struct {
	RetentionBlocks uint64
}

// Orphaned reports a block which is no longer part of the canonical chain.
type Orphaned struct {
	Height uint64
	Hash   common.Hash
}

func (NewBlock) Topic() string         { return TopicBlock }
func (NewTransaction) Topic() string   { return TopicTransaction }
func (PendingSeen) Topic() string      { return TopicPendingSeen }
func (PendingExpired) Topic() string   { return TopicPendingExpired }
func (ConfirmedExpired) Topic() string { return TopicConfirmedExpired }
func (Orphaned) Topic() string         { return TopicOrphaned }

func hashesToBytes(hashes []common.Hash) [][]byte {
	b := make([][]byte, len(hashes))
	for i, h := range hashes {
		b[i] = h.Bytes()
	}

	return b
}

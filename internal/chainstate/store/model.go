package store

type Block struct {
	Hash         []byte
	Height       uint64
	PreviousHash []byte
	Timestamp    int64
}

type Transaction struct {
	Hash      []byte
	Timestamp int64
	Affected  bool
}

// TxState is the cache-visible part of a transaction row. Height is nil while the transaction is pending.
type TxState struct {
	Hash          []byte
	Height        *uint64
	LastTimestamp int64
}

func (t TxState) Pending() bool {
	return t.Height == nil
}

type BlockState struct {
	Hash   []byte
	Height uint64
}

type Stats struct {
	PendingTxs   int64
	ConfirmedTxs int64
	AffectedTxs  int64
	Blocks       int64
	ChainTip     uint64
}

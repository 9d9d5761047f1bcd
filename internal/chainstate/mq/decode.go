package mq

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ccoveille/go-safecast"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/txsync/chainstate/internal/chainstate"
)

var (
	ErrUnknownTopic    = errors.New("unknown topic")
	ErrFailedToDecode  = errors.New("failed to decode event")
	ErrMissingField    = errors.New("missing required field")
	ErrTimestampTooBig = errors.New("timestamp out of range")
)

type blockPayload struct {
	Hash         *common.Hash    `json:"hash"`
	Number       *hexutil.Uint64 `json:"number"`
	ParentHash   *common.Hash    `json:"parentHash"`
	Timestamp    *quantity       `json:"timestamp"`
	Transactions []txRef         `json:"transactions"`
}

// txRef accepts a transaction either as a bare hash or as an object with a hash field.
type txRef struct {
	Hash common.Hash
}

func (r *txRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Hash)
	}

	var obj struct {
		Hash *common.Hash `json:"hash"`
	}
	err := json.Unmarshal(data, &obj)
	if err != nil {
		return err
	}
	if obj.Hash == nil {
		return errors.Join(ErrMissingField, errors.New("transactions[].hash"))
	}

	r.Hash = *obj.Hash
	return nil
}

// quantity is a hex encoded quantity or a plain JSON integer.
type quantity uint64

func (q *quantity) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v hexutil.Uint64
		err := json.Unmarshal(data, &v)
		if err != nil {
			return err
		}

		*q = quantity(v)
		return nil
	}

	var v uint64
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}

	*q = quantity(v)
	return nil
}

// transactionPayload accepts the affected flag as either affected or handler_result.
type transactionPayload struct {
	Hash          *common.Hash `json:"hash"`
	Timestamp     *quantity    `json:"timestamp"`
	Affected      bool         `json:"affected"`
	HandlerResult bool         `json:"handler_result"`
}

type pendingExpiredPayload struct {
	Hashes []common.Hash `json:"hashes"`
}

type confirmedExpiredPayload struct {
	RetentionBlocks *hexutil.Uint64 `json:"retentionBlocks"`
}

type orphanedPayload struct {
	Number *hexutil.Uint64 `json:"number"`
	Hash   *common.Hash    `json:"hash"`
}

// DecodeEvent turns the JSON payload published on the given topic into an engine event. Quantities are hex
// encoded and hashes are 0x prefixed as in Ethereum JSON-RPC. Timestamps may also be plain integers.
func DecodeEvent(topic string, data []byte) (chainstate.Event, error) {
	event, err := decodeEvent(topic, data)
	if err != nil {
		return nil, errors.Join(ErrFailedToDecode, fmt.Errorf("topic %s", topic), err)
	}

	return event, nil
}

func decodeEvent(topic string, data []byte) (chainstate.Event, error) {
	switch topic {
	case chainstate.TopicBlock:
		var p blockPayload
		err := json.Unmarshal(data, &p)
		if err != nil {
			return nil, err
		}
		if p.Hash == nil || p.Number == nil {
			return nil, errors.Join(ErrMissingField, errors.New("hash and number"))
		}

		ts, err := timestamp(p.Timestamp)
		if err != nil {
			return nil, err
		}

		txHashes := make([]common.Hash, 0, len(p.Transactions))
		for _, tx := range p.Transactions {
			txHashes = append(txHashes, tx.Hash)
		}

		return chainstate.NewBlock{
			Hash:       *p.Hash,
			Height:     uint64(*p.Number),
			ParentHash: p.ParentHash,
			Timestamp:  ts,
			TxHashes:   txHashes,
		}, nil

	case chainstate.TopicTransaction:
		var p transactionPayload
		err := json.Unmarshal(data, &p)
		if err != nil {
			return nil, err
		}
		if p.Hash == nil {
			return nil, errors.Join(ErrMissingField, errors.New("hash"))
		}

		ts, err := timestamp(p.Timestamp)
		if err != nil {
			return nil, err
		}

		return chainstate.NewTransaction{Hash: *p.Hash, Timestamp: ts, Affected: p.Affected || p.HandlerResult}, nil

	case chainstate.TopicPendingSeen:
		var p transactionPayload
		err := json.Unmarshal(data, &p)
		if err != nil {
			return nil, err
		}
		if p.Hash == nil {
			return nil, errors.Join(ErrMissingField, errors.New("hash"))
		}

		ts, err := timestamp(p.Timestamp)
		if err != nil {
			return nil, err
		}

		return chainstate.PendingSeen{Hash: *p.Hash, Timestamp: ts}, nil

	case chainstate.TopicPendingExpired:
		var p pendingExpiredPayload
		err := json.Unmarshal(data, &p)
		if err != nil {
			return nil, err
		}

		return chainstate.PendingExpired{Hashes: p.Hashes}, nil

	case chainstate.TopicConfirmedExpired:
		var p confirmedExpiredPayload
		err := json.Unmarshal(data, &p)
		if err != nil {
			return nil, err
		}
		if p.RetentionBlocks == nil {
			return nil, errors.Join(ErrMissingField, errors.New("retentionBlocks"))
		}

		return chainstate.ConfirmedExpired{RetentionBlocks: uint64(*p.RetentionBlocks)}, nil

	case chainstate.TopicOrphaned:
		var p orphanedPayload
		err := json.Unmarshal(data, &p)
		if err != nil {
			return nil, err
		}
		if p.Hash == nil || p.Number == nil {
			return nil, errors.Join(ErrMissingField, errors.New("hash and number"))
		}

		return chainstate.Orphaned{Height: uint64(*p.Number), Hash: *p.Hash}, nil
	}

	return nil, ErrUnknownTopic
}

func timestamp(v *quantity) (int64, error) {
	if v == nil {
		return 0, errors.Join(ErrMissingField, errors.New("timestamp"))
	}

	ts, err := safecast.ToInt64(uint64(*v))
	if err != nil {
		return 0, errors.Join(ErrTimestampTooBig, err)
	}

	return ts, nil
}

package chainstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/chainstate/cache"
	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

var (
	ErrNotReady                       = errors.New("caches are not warmed up yet")
	ErrUnknownEvent                   = errors.New("unknown event")
	ErrFailedToWarmUp                 = errors.New("failed to warm up caches")
	ErrFailedToHandleBlock            = errors.New("failed to handle new block")
	ErrFailedToHandleTransaction      = errors.New("failed to handle new transaction")
	ErrFailedToHandlePendingSeen      = errors.New("failed to handle pending transaction seen")
	ErrFailedToHandlePendingExpired   = errors.New("failed to handle pending transactions expired")
	ErrFailedToHandleConfirmedExpired = errors.New("failed to handle confirmed transactions expired")
	ErrFailedToHandleOrphaned         = errors.New("failed to handle orphaned block")
)

// OrphanInvalidation selects how the caches follow an orphaned block.
type OrphanInvalidation string

const (
	// OrphanInvalidationEager drops the orphaned block from the block cache and moves the reverted
	// transactions from the confirmed cache to the pending cache.
	OrphanInvalidationEager OrphanInvalidation = "eager"
	// OrphanInvalidationLazy leaves the caches untouched. They are corrected by the next warm-up or by the
	// block which confirms the reverted transactions again.
	OrphanInvalidationLazy OrphanInvalidation = "lazy"
)

func ParseOrphanInvalidation(s string) (OrphanInvalidation, error) {
	switch OrphanInvalidation(s) {
	case OrphanInvalidationEager, OrphanInvalidationLazy:
		return OrphanInvalidation(s), nil
	}

	return "", fmt.Errorf("invalid orphan invalidation mode %q", s)
}

type ChainTip struct {
	Hash   common.Hash
	Height uint64
}

// Engine applies chain-state events to the store and keeps the cache set in step with the outcome.
type Engine struct {
	logger             *slog.Logger
	store              store.ChainStateStore
	caches             *cache.Set
	orphanInvalidation OrphanInvalidation
	locker             *hashLocker
	lockStripes        int

	ready atomic.Bool

	tipMu sync.RWMutex
	tip   *ChainTip

	stats                  *engineStats
	statCollectionInterval time.Duration

	tracingEnabled    bool
	tracingAttributes []attribute.KeyValue

	waitGroup *sync.WaitGroup
	cancelAll context.CancelFunc
	ctx       context.Context
}

func NewEngine(logger *slog.Logger, storeI store.ChainStateStore, caches *cache.Set, opts ...func(*Engine)) *Engine {
	e := &Engine{
		logger:                 logger.With(slog.String("module", "engine")),
		store:                  storeI,
		caches:                 caches,
		orphanInvalidation:     OrphanInvalidationEager,
		lockStripes:            defaultLockStripes,
		stats:                  newEngineStats(),
		statCollectionInterval: statCollectionIntervalDefault,
		waitGroup:              &sync.WaitGroup{},
	}

	for _, opt := range opts {
		opt(e)
	}

	ctx, cancelAll := context.WithCancel(context.Background())
	e.cancelAll = cancelAll
	e.ctx = ctx

	return e
}

// Ready reports whether warm-up has completed and live events are accepted.
func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// ChainTip returns the highest block known to the engine or nil if no block is recorded.
func (e *Engine) ChainTip() *ChainTip {
	e.tipMu.RLock()
	defer e.tipMu.RUnlock()

	if e.tip == nil {
		return nil
	}

	tip := *e.tip
	return &tip
}

func (e *Engine) advanceTip(hash common.Hash, height uint64) {
	e.tipMu.Lock()
	defer e.tipMu.Unlock()

	if e.tip == nil || height > e.tip.Height {
		e.tip = &ChainTip{Hash: hash, Height: height}
	}
}

func (e *Engine) setTip(tip *ChainTip) {
	e.tipMu.Lock()
	e.tip = tip
	e.tipMu.Unlock()
}

// reloadTip replaces the in-memory tip with the highest block in the store.
func (e *Engine) reloadTip(ctx context.Context) error {
	tip, err := e.store.GetChainTip(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.setTip(nil)
			return nil
		}
		return err
	}

	e.setTip(&ChainTip{Hash: common.BytesToHash(tip.Hash), Height: tip.Height})
	return nil
}

// Dispatch routes the event to its handler. Events are rejected with ErrNotReady until WarmUp has completed.
func (e *Engine) Dispatch(ctx context.Context, event Event) (err error) {
	if !e.Ready() {
		return ErrNotReady
	}

	topic := "unknown"
	if event != nil {
		topic = event.Topic()
	}

	defer func() {
		e.stats.observeEvent(topic, err)
	}()

	switch ev := event.(type) {
	case NewBlock:
		return e.HandleBlock(ctx, ev)
	case NewTransaction:
		return e.HandleTransaction(ctx, ev)
	case PendingSeen:
		return e.HandlePendingSeen(ctx, ev)
	case PendingExpired:
		return e.HandlePendingExpired(ctx, ev)
	case ConfirmedExpired:
		return e.HandleConfirmedExpired(ctx, ev)
	case Orphaned:
		return e.HandleOrphaned(ctx, ev)
	}

	return errors.Join(ErrUnknownEvent, fmt.Errorf("type %T", event))
}

func (e *Engine) startTracing(ctx context.Context, spanName string, attr ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracing.StartTracing(ctx, spanName, e.tracingEnabled, append(e.tracingAttributes, attr...)...)
	return ctx, func(err error) {
		tracing.EndTracing(span, err)
	}
}

// Shutdown stops the stats collection.
func (e *Engine) Shutdown() {
	e.cancelAll()
	e.waitGroup.Wait()
}

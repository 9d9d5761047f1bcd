package chainstate

import (
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/tracing"
)

func WithOrphanInvalidation(mode OrphanInvalidation) func(*Engine) {
	return func(e *Engine) {
		e.orphanInvalidation = mode
	}
}

// WithSerializedMutations makes handlers lock the hashes they touch so that handlers for the same
// transaction or block never overlap. Range handlers take the whole lock.
func WithSerializedMutations(stripes int) func(*Engine) {
	return func(e *Engine) {
		if stripes > 0 {
			e.lockStripes = stripes
		}
		e.locker = newHashLocker(e.lockStripes)
	}
}

func WithStatCollectionInterval(d time.Duration) func(*Engine) {
	return func(e *Engine) {
		e.statCollectionInterval = d
	}
}

func WithTracer(attr ...attribute.KeyValue) func(*Engine) {
	return func(e *Engine) {
		e.tracingEnabled = true
		e.tracingAttributes = tracing.CallerAttributes(e.tracingAttributes, attr...)
	}
}

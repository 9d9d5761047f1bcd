package chainstate

import (
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

const (
	statCollectionIntervalDefault = 60 * time.Second
)

var ErrFailedToRegisterStats = errors.New("failed to register stats collector")

type engineStats struct {
	pendingTxs   prometheus.Gauge
	confirmedTxs prometheus.Gauge
	affectedTxs  prometheus.Gauge
	blocks       prometheus.Gauge
	chainTip     prometheus.Gauge
	cacheEntries *prometheus.GaugeVec
	events       *prometheus.CounterVec
}

func newEngineStats() *engineStats {
	return &engineStats{
		pendingTxs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chainstate_pending_txs_count",
			Help: "Number of pending transactions in the store",
		}),
		confirmedTxs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chainstate_confirmed_txs_count",
			Help: "Number of confirmed transactions in the store",
		}),
		affectedTxs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chainstate_affected_txs_count",
			Help: "Number of transactions exempt from confirmed expiry",
		}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chainstate_blocks_count",
			Help: "Number of blocks in the store",
		}),
		chainTip: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "chainstate_chain_tip_height",
			Help: "Height of the highest block in the store",
		}),
		cacheEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chainstate_cache_entries",
			Help: "Number of entries per cache",
		}, []string{"cache"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chainstate_events_total",
			Help: "Number of dispatched events by topic and result",
		}, []string{"topic", "result"}),
	}
}

func (s *engineStats) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		s.pendingTxs,
		s.confirmedTxs,
		s.affectedTxs,
		s.blocks,
		s.chainTip,
		s.cacheEntries,
		s.events,
	}
}

func (s *engineStats) observeEvent(topic string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if store.IsTransient(err) {
			result = "transient_error"
		}
	}

	s.events.WithLabelValues(topic, result).Inc()
}

func (s *engineStats) setStoreStats(stats *store.Stats) {
	s.pendingTxs.Set(float64(stats.PendingTxs))
	s.confirmedTxs.Set(float64(stats.ConfirmedTxs))
	s.affectedTxs.Set(float64(stats.AffectedTxs))
	s.blocks.Set(float64(stats.Blocks))
	s.chainTip.Set(float64(stats.ChainTip))
}

func (e *Engine) collectCacheStats() {
	e.stats.cacheEntries.WithLabelValues(e.caches.ConfirmedTxs.Name()).Set(float64(e.caches.ConfirmedTxs.Len()))
	e.stats.cacheEntries.WithLabelValues(e.caches.PendingTxs.Name()).Set(float64(e.caches.PendingTxs.Len()))
	e.stats.cacheEntries.WithLabelValues(e.caches.Blocks.Name()).Set(float64(e.caches.Blocks.Len()))
}

// StartCollectStats registers the engine metrics and refreshes the store and cache gauges periodically until
// Shutdown is called.
func (e *Engine) StartCollectStats() error {
	err := registerStats(e.stats.collectors()...)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(e.statCollectionInterval)

	e.waitGroup.Add(1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("Recovered from panic", "panic", r, slog.String("stacktrace", string(debug.Stack())))
			}
		}()
		defer func() {
			ticker.Stop()
			unregisterStats(e.stats.collectors()...)
			e.waitGroup.Done()
		}()

		for {
			select {
			case <-e.ctx.Done():
				return
			case <-ticker.C:
				e.collectCacheStats()

				collectedStats, err := e.store.GetStats(e.ctx)
				if err != nil {
					e.logger.Error("Failed to get stats", slog.String("err", err.Error()))
					continue
				}

				e.stats.setStoreStats(collectedStats)
			}
		}
	}()

	return nil
}

func registerStats(cs ...prometheus.Collector) error {
	for _, c := range cs {
		err := prometheus.Register(c)
		if err != nil {
			return errors.Join(ErrFailedToRegisterStats, err)
		}
	}

	return nil
}

func unregisterStats(cs ...prometheus.Collector) {
	for _, c := range cs {
		_ = prometheus.Unregister(c)
	}
}

package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	gocache "github.com/patrickmn/go-cache"

	"github.com/txsync/chainstate/internal/chainstate"
	"github.com/txsync/chainstate/internal/chainstate/store"
)

const (
	DefaultSubjectPrefix = "chainstate"
	DefaultQueueGroup    = "chainstate"
	DefaultWorkers       = 16
	DefaultQueueSize     = 1000
	DefaultMaxRetries    = 5
	DefaultRetryInterval = 100 * time.Millisecond
	DefaultDedupWindow   = 10 * time.Minute
)

var (
	ErrFailedToSubscribe = errors.New("failed to subscribe")
	ErrAlreadyStarted    = errors.New("subscriber already started")
)

type NatsConnection interface {
	QueueSubscribe(subj, queue string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// Subscriber receives chain-state events from NATS core subjects and dispatches each message as one task of a
// bounded worker pool.
type Subscriber struct {
	nc         NatsConnection
	dispatcher chainstate.EventDispatcher
	logger     *slog.Logger

	subjectPrefix string
	queueGroup    string
	workers       int
	queueSize     int
	maxRetries    uint64
	retryInterval time.Duration
	dedup         *gocache.Cache

	pool          pond.Pool
	subscriptions []*nats.Subscription

	ctx       context.Context
	cancelAll context.CancelFunc
}

func WithSubjectPrefix(prefix string) func(*Subscriber) {
	return func(s *Subscriber) {
		s.subjectPrefix = prefix
	}
}

func WithQueueGroup(group string) func(*Subscriber) {
	return func(s *Subscriber) {
		s.queueGroup = group
	}
}

// WithWorkers limits the number of events handled concurrently and the number of events waiting for a worker.
func WithWorkers(workers int, queueSize int) func(*Subscriber) {
	return func(s *Subscriber) {
		if workers > 0 {
			s.workers = workers
		}
		if queueSize > 0 {
			s.queueSize = queueSize
		}
	}
}

func WithRetry(maxRetries uint64, initialInterval time.Duration) func(*Subscriber) {
	return func(s *Subscriber) {
		s.maxRetries = maxRetries
		if initialInterval > 0 {
			s.retryInterval = initialInterval
		}
	}
}

// WithDedupWindow sets how long a Nats-Msg-Id is remembered. A zero window disables deduplication.
func WithDedupWindow(window time.Duration) func(*Subscriber) {
	return func(s *Subscriber) {
		if window <= 0 {
			s.dedup = nil
			return
		}
		s.dedup = gocache.New(window, 2*window)
	}
}

func NewSubscriber(logger *slog.Logger, nc NatsConnection, dispatcher chainstate.EventDispatcher, opts ...func(*Subscriber)) *Subscriber {
	s := &Subscriber{
		nc:            nc,
		dispatcher:    dispatcher,
		logger:        logger.With(slog.String("module", "subscriber")),
		subjectPrefix: DefaultSubjectPrefix,
		queueGroup:    DefaultQueueGroup,
		workers:       DefaultWorkers,
		queueSize:     DefaultQueueSize,
		maxRetries:    DefaultMaxRetries,
		retryInterval: DefaultRetryInterval,
		dedup:         gocache.New(DefaultDedupWindow, 2*DefaultDedupWindow),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.ctx, s.cancelAll = context.WithCancel(context.Background())

	return s
}

// Subject returns the NATS subject events of the given topic are published on.
func (s *Subscriber) Subject(topic string) string {
	return fmt.Sprintf("%s.%s", s.subjectPrefix, topic)
}

// Start subscribes to the subjects of all event topics.
func (s *Subscriber) Start() error {
	if s.pool != nil {
		return ErrAlreadyStarted
	}

	s.pool = pond.NewPool(s.workers, pond.WithQueueSize(s.queueSize), pond.WithContext(s.ctx))

	for _, topic := range chainstate.Topics {
		subject := s.Subject(topic)

		sub, err := s.nc.QueueSubscribe(subject, s.queueGroup, s.msgHandler(topic))
		if err != nil {
			return errors.Join(ErrFailedToSubscribe, fmt.Errorf("subject %s", subject), err)
		}

		s.subscriptions = append(s.subscriptions, sub)
	}

	s.logger.Info("Subscribed to events",
		slog.String("prefix", s.subjectPrefix),
		slog.String("queue_group", s.queueGroup),
		slog.Int("workers", s.workers),
	)

	return nil
}

func (s *Subscriber) msgHandler(topic string) nats.MsgHandler {
	return func(msg *nats.Msg) {
		s.pool.Submit(func() {
			s.process(topic, msg)
		})
	}
}

func (s *Subscriber) process(topic string, msg *nats.Msg) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic", "panic", r, slog.String("stacktrace", string(debug.Stack())))
		}
	}()

	msgID := msg.Header.Get(nats.MsgIdHdr)
	dedupKey := topic + ":" + msgID
	if msgID != "" && s.dedup != nil {
		err := s.dedup.Add(dedupKey, struct{}{}, gocache.DefaultExpiration)
		if err != nil {
			s.logger.Debug("Skipping redelivered event", slog.String("topic", topic), slog.String("msg_id", msgID))
			return
		}
	}

	event, err := DecodeEvent(topic, msg.Data)
	if err != nil {
		s.logger.Error("Failed to decode event", slog.String("subject", msg.Subject), slog.String("err", err.Error()))
		return
	}

	err = s.dispatch(event)
	if err == nil {
		return
	}

	if errors.Is(err, store.ErrDuplicateKey) {
		s.logger.Warn("Event already recorded", slog.String("topic", topic), slog.String("err", err.Error()))
		return
	}

	// a delivery which failed may be processed again if it is published again
	if msgID != "" && s.dedup != nil {
		s.dedup.Delete(dedupKey)
	}

	s.logger.Error("Failed to handle event", slog.String("topic", topic), slog.String("err", err.Error()))
}

// dispatch hands the event to the dispatcher and retries errors which may succeed on a later attempt.
func (s *Subscriber) dispatch(event chainstate.Event) error {
	operation := func() error {
		err := s.dispatcher.Dispatch(s.ctx, event)
		if err == nil {
			return nil
		}

		if store.IsTransient(err) || errors.Is(err, chainstate.ErrNotReady) {
			return err
		}

		return backoff.Permanent(err)
	}

	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = s.retryInterval

	policy := backoff.WithContext(backoff.WithMaxRetries(exponential, s.maxRetries), s.ctx)

	notify := func(err error, nextTry time.Duration) {
		s.logger.Warn("Retrying event", slog.String("topic", event.Topic()), slog.String("next_try", nextTry.String()), slog.String("err", err.Error()))
	}

	return backoff.RetryNotify(operation, policy, notify)
}

// GracefulStop drains the subscriptions and waits for queued events to be handled.
func (s *Subscriber) GracefulStop() {
	s.logger.Info("Shutting down")

	for _, sub := range s.subscriptions {
		if sub == nil {
			continue
		}

		err := sub.Drain()
		if err != nil {
			s.logger.Error("Failed to drain subscription", slog.String("subject", sub.Subject), slog.String("err", err.Error()))
		}
	}

	if s.pool != nil {
		s.pool.StopAndWait()
		s.logger.Info("Worker pool stopped",
			slog.Uint64("submitted", s.pool.SubmittedTasks()),
			slog.Uint64("completed", s.pool.CompletedTasks()),
		)
	}

	s.cancelAll()

	s.logger.Info("Shutdown complete")
}

package mq_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/txsync/chainstate/internal/chainstate"
	csMocks "github.com/txsync/chainstate/internal/chainstate/mocks"
	"github.com/txsync/chainstate/internal/chainstate/mq"
	"github.com/txsync/chainstate/internal/chainstate/mq/mocks"
	"github.com/txsync/chainstate/internal/chainstate/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

type subscriptions struct {
	mu       sync.Mutex
	handlers map[string]nats.MsgHandler
}

func (s *subscriptions) natsMock(subscribeErr error) *mocks.NatsConnectionMock {
	s.handlers = map[string]nats.MsgHandler{}

	return &mocks.NatsConnectionMock{
		QueueSubscribeFunc: func(subj string, _ string, cb nats.MsgHandler) (*nats.Subscription, error) {
			if subscribeErr != nil {
				return nil, subscribeErr
			}

			s.mu.Lock()
			s.handlers[subj] = cb
			s.mu.Unlock()

			return nil, nil
		},
	}
}

func (s *subscriptions) deliver(t *testing.T, msg *nats.Msg) {
	t.Helper()

	s.mu.Lock()
	handler, found := s.handlers[msg.Subject]
	s.mu.Unlock()

	require.True(t, found, "no subscription for %s", msg.Subject)
	handler(msg)
}

func TestSubscriberStart(t *testing.T) {
	t.Run("subscribes to every topic", func(t *testing.T) {
		// given
		subs := &subscriptions{}
		natsMock := subs.natsMock(nil)
		sut := mq.NewSubscriber(logger, natsMock, &csMocks.EventDispatcherMock{}, mq.WithSubjectPrefix("eth"), mq.WithQueueGroup("sync"))

		// when
		err := sut.Start()

		// then
		require.NoError(t, err)
		require.Len(t, natsMock.QueueSubscribeCalls(), len(chainstate.Topics))
		for i, topic := range chainstate.Topics {
			require.Equal(t, "eth."+topic, natsMock.QueueSubscribeCalls()[i].Subj)
			require.Equal(t, "sync", natsMock.QueueSubscribeCalls()[i].Queue)
		}

		require.ErrorIs(t, sut.Start(), mq.ErrAlreadyStarted)

		sut.GracefulStop()
	})

	t.Run("subscribe error", func(t *testing.T) {
		// given
		subs := &subscriptions{}
		sut := mq.NewSubscriber(logger, subs.natsMock(nats.ErrConnectionClosed), &csMocks.EventDispatcherMock{})

		// when
		err := sut.Start()

		// then
		require.ErrorIs(t, err, mq.ErrFailedToSubscribe)
		require.ErrorIs(t, err, nats.ErrConnectionClosed)

		sut.GracefulStop()
	})
}

func TestSubscriberProcess(t *testing.T) {
	txPayload := []byte(`{"hash":"` + hashB + `","timestamp":"0x3e8"}`)

	tt := []struct {
		name        string
		msgs        []*nats.Msg
		dispatchErr []error

		expectedDispatchCalls int
	}{
		{
			name: "dispatch decoded event",
			msgs: []*nats.Msg{
				{Subject: "chainstate.transaction", Data: txPayload},
			},

			expectedDispatchCalls: 1,
		},
		{
			name: "decode failure is not dispatched",
			msgs: []*nats.Msg{
				{Subject: "chainstate.transaction", Data: []byte(`{"hash":`)},
			},

			expectedDispatchCalls: 0,
		},
		{
			name: "transient error retried",
			msgs: []*nats.Msg{
				{Subject: "chainstate.transaction", Data: txPayload},
			},
			dispatchErr: []error{
				errors.Join(chainstate.ErrFailedToHandleTransaction, store.ErrSerializationFailure),
				errors.Join(chainstate.ErrFailedToHandleTransaction, store.ErrUnableToGetSQLConnection),
			},

			expectedDispatchCalls: 3,
		},
		{
			name: "retries exhausted",
			msgs: []*nats.Msg{
				{Subject: "chainstate.transaction", Data: txPayload},
			},
			dispatchErr: []error{
				store.ErrSerializationFailure,
				store.ErrSerializationFailure,
				store.ErrSerializationFailure,
				store.ErrSerializationFailure,
				store.ErrSerializationFailure,
			},

			expectedDispatchCalls: 3,
		},
		{
			name: "not ready retried",
			msgs: []*nats.Msg{
				{Subject: "chainstate.transaction", Data: txPayload},
			},
			dispatchErr: []error{chainstate.ErrNotReady},

			expectedDispatchCalls: 2,
		},
		{
			name: "duplicate not retried",
			msgs: []*nats.Msg{
				{Subject: "chainstate.transaction", Data: txPayload},
			},
			dispatchErr: []error{errors.Join(chainstate.ErrFailedToHandleTransaction, store.ErrDuplicateKey)},

			expectedDispatchCalls: 1,
		},
		{
			name: "redelivered message id skipped",
			msgs: []*nats.Msg{
				{Subject: "chainstate.transaction", Data: txPayload, Header: nats.Header{nats.MsgIdHdr: []string{"tx-1"}}},
				{Subject: "chainstate.transaction", Data: txPayload, Header: nats.Header{nats.MsgIdHdr: []string{"tx-1"}}},
				{Subject: "chainstate.transaction", Data: txPayload, Header: nats.Header{nats.MsgIdHdr: []string{"tx-2"}}},
			},

			expectedDispatchCalls: 2,
		},
		{
			name: "failed message id processed again",
			msgs: []*nats.Msg{
				{Subject: "chainstate.transaction", Data: txPayload, Header: nats.Header{nats.MsgIdHdr: []string{"tx-1"}}},
				{Subject: "chainstate.transaction", Data: txPayload, Header: nats.Header{nats.MsgIdHdr: []string{"tx-1"}}},
			},
			dispatchErr: []error{errors.New("unexpected")},

			expectedDispatchCalls: 2,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var mu sync.Mutex
			call := 0
			var dispatched []chainstate.Event

			dispatcher := &csMocks.EventDispatcherMock{
				DispatchFunc: func(_ context.Context, event chainstate.Event) error {
					mu.Lock()
					defer mu.Unlock()

					dispatched = append(dispatched, event)
					defer func() { call++ }()
					if call < len(tc.dispatchErr) {
						return tc.dispatchErr[call]
					}
					return nil
				},
			}

			subs := &subscriptions{}
			sut := mq.NewSubscriber(logger, subs.natsMock(nil), dispatcher,
				mq.WithWorkers(1, 10),
				mq.WithRetry(2, time.Millisecond),
			)
			require.NoError(t, sut.Start())

			// when
			for _, msg := range tc.msgs {
				subs.deliver(t, msg)
			}
			sut.GracefulStop()

			// then
			require.Len(t, dispatcher.DispatchCalls(), tc.expectedDispatchCalls)
			for _, event := range dispatched {
				require.Equal(t, chainstate.NewTransaction{Hash: common.HexToHash(hashB), Timestamp: 1000}, event)
			}
		})
	}
}

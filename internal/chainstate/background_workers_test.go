package chainstate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/txsync/chainstate/internal/chainstate"
	"github.com/txsync/chainstate/internal/chainstate/mocks"
)

func TestStartConfirmedExpiry(t *testing.T) {
	tt := []struct {
		name        string
		dispatchErr error
	}{
		{
			name: "success",
		},
		{
			name:        "dispatch error",
			dispatchErr: errors.New("db connection lost"),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			dispatched := make(chan chainstate.Event, 10)
			dispatcher := &mocks.EventDispatcherMock{
				DispatchFunc: func(_ context.Context, event chainstate.Event) error {
					select {
					case dispatched <- event:
					default:
					}
					return tc.dispatchErr
				},
			}
			sut := chainstate.NewBackgroundWorkers(dispatcher, logger)

			// when
			sut.StartConfirmedExpiry(20*time.Millisecond, 144)

			// then
			select {
			case event := <-dispatched:
				require.Equal(t, chainstate.ConfirmedExpired{RetentionBlocks: 144}, event)
			case <-time.After(time.Second):
				t.Fatal("confirmed expiry not dispatched")
			}

			sut.GracefulStop()

			calls := len(dispatcher.DispatchCalls())
			time.Sleep(50 * time.Millisecond)
			require.Equal(t, calls, len(dispatcher.DispatchCalls()))
		})
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace_escrow/internal/usecase/interfaces"
	mock_interfaces "marketplace_escrow/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEngine_RunTx(t *testing.T) {
	noop := func(ctx context.Context, tx interfaces.ITx) error { return nil }

	t.Run("retries a conflict and succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockIStore(ctrl)
		gomock.InOrder(
			store.EXPECT().RunInTransaction(gomock.Any(), gomock.Any()).Return(interfaces.ErrTxConflict),
			store.EXPECT().RunInTransaction(gomock.Any(), gomock.Any()).Return(nil),
		)
		e := newEngine(store, nil, WithSettings(Settings{TxBaseBackoff: time.Millisecond}))

		require.NoError(t, e.runTx(context.Background(), "test", noop))
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockIStore(ctrl)
		store.EXPECT().RunInTransaction(gomock.Any(), gomock.Any()).Return(interfaces.ErrTxConflict).Times(3)
		e := newEngine(store, nil, WithSettings(Settings{TxBaseBackoff: time.Millisecond}))

		err := e.runTx(context.Background(), "test", noop)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTransientStoreConflict)
		assert.ErrorIs(t, err, interfaces.ErrTxConflict)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockIStore(ctrl)
		store.EXPECT().RunInTransaction(gomock.Any(), gomock.Any()).Return(ErrOrderNotFound).Times(1)
		e := newEngine(store, nil)

		err := e.runTx(context.Background(), "test", noop)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrTransientStoreConflict)
	})

	t.Run("stops waiting when the context is done", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mock_interfaces.NewMockIStore(ctrl)
		store.EXPECT().RunInTransaction(gomock.Any(), gomock.Any()).Return(interfaces.ErrTxConflict).Times(1)
		e := newEngine(store, nil, WithSettings(Settings{TxBaseBackoff: time.Hour}))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := e.runTx(ctx, "test", noop)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestSettings_WithDefaults(t *testing.T) {
	s := Settings{ClearingPeriod: time.Hour}.withDefaults()
	d := DefaultSettings()

	assert.Equal(t, time.Hour, s.ClearingPeriod)
	assert.Equal(t, d.StornoBlockThreshold, s.StornoBlockThreshold)
	assert.Equal(t, 3, s.TxMaxAttempts)
	assert.Equal(t, 14*24*time.Hour, d.ClearingPeriod)
}

func TestError_KindMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"draft missing", ErrDraftNotFound, ErrNotFound},
		{"open storno", ErrOpenStornoExists, ErrConflict},
		{"capture in progress", ErrCaptureInProgress, ErrConflict},
		{"not clearing", ErrOrderNotClearing, ErrInvalidState},
		{"capture pending", ErrHoursCapturePending, ErrInvalidState},
		{"blocked provider", ErrProviderBlocked, ErrForbidden},
		{"refund amount", ErrInvalidRefundAmount, ErrInvalidInput},
		{"wrapped cause", &Error{Kind: ErrUpstreamPaymentFailure, Msg: "capture failed", Err: errors.New("timeout")}, ErrUpstreamPaymentFailure},
	}
	all := []error{ErrNotFound, ErrInvalidState, ErrConflict, ErrTransientStoreConflict, ErrUpstreamPaymentFailure, ErrForbidden, ErrInvalidInput}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range all {
				assert.Equal(t, k == tt.kind, errors.Is(tt.err, k), "kind %v", k)
			}
		})
	}

	err := &Error{Kind: ErrUpstreamPaymentFailure, Msg: "capture failed", Err: errors.New("timeout")}
	assert.Equal(t, "capture failed: timeout", err.Error())
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const clearingPeriod = 14 * 24 * time.Hour

func TestSettlementUseCase_SweepClearing(t *testing.T) {
	ctx := context.Background()

	t.Run("releases orders whose clearing period ended", func(t *testing.T) {
		f := newFixture(t)
		orderID, _ := f.paidOrderWithEscrow(t, "d-1")

		res, err := f.settlement.SweepClearing(ctx, fixedStart.Add(clearingPeriod-time.Second), 0)
		require.NoError(t, err)
		assert.Zero(t, res.Released)
		assert.Equal(t, entities.OrderStatusPaymentReceivedClearing, f.order(t, orderID).Status)

		f.clock.Advance(clearingPeriod + time.Hour)
		res, err = f.settlement.SweepClearing(ctx, f.clock.Now(), 0)
		require.NoError(t, err)
		assert.Equal(t, SweepResult{Scanned: 1, Released: 1}, res)

		o := f.order(t, orderID)
		assert.Equal(t, entities.OrderStatusReleasedToProvider, o.Status)
		assert.Equal(t, int64(10000), o.SettledAmount)
		require.NotNil(t, o.SettledAt)

		e, err := f.escrows.GetEscrow(ctx, "esc-d-1")
		require.NoError(t, err)
		assert.Equal(t, entities.EscrowStatusReleased, e.Status)
		assert.Len(t, f.events.ofType(entities.EventOrderReleased), 1)

		// a second sweep finds nothing to do
		res, err = f.settlement.SweepClearing(ctx, f.clock.Now(), 0)
		require.NoError(t, err)
		assert.Zero(t, res.Scanned)
	})

	t.Run("orders waiting on a capture do not hold back the batch", func(t *testing.T) {
		f := newFixture(t)
		stuckID := f.paidOrder(t, "d-1")
		entry, err := f.hours.SubmitHours(ctx, provider, stuckID, HoursInput{Hours: 1, Amount: 3000})
		require.NoError(t, err)
		f.gateway.EXPECT().Capture(gomock.Any(), gomock.Any()).Return(interfaces.ProviderResult{}, errors.New("processor timeout"))
		_, err = f.hours.ApproveHours(ctx, customer, stuckID, entry.ID)
		require.ErrorIs(t, err, ErrUpstreamPaymentFailure)

		f.clock.Advance(time.Minute)
		laterID := f.paidOrder(t, "d-2")

		f.clock.Advance(clearingPeriod + time.Hour)
		res, err := f.settlement.SweepClearing(ctx, f.clock.Now(), 1)
		require.NoError(t, err)
		assert.Equal(t, SweepResult{Scanned: 2, Released: 1, Skipped: 1}, res)
		assert.Equal(t, entities.OrderStatusPaymentReceivedClearing, f.order(t, stuckID).Status)
		assert.Equal(t, entities.OrderStatusReleasedToProvider, f.order(t, laterID).Status)
	})

	t.Run("leaves disputed orders alone", func(t *testing.T) {
		f := newFixture(t)
		orderID := f.paidOrder(t, "d-1")
		_, err := f.storno.RequestCancellation(ctx, customer, orderID, CancellationInput{Reason: "no show"})
		require.NoError(t, err)

		f.clock.Advance(clearingPeriod + time.Hour)
		res, err := f.settlement.SweepClearing(ctx, f.clock.Now(), 0)
		require.NoError(t, err)
		assert.Zero(t, res.Released)
		assert.Equal(t, entities.OrderStatusDisputed, f.order(t, orderID).Status)
	})
}

func TestSettlementUseCase_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("customer approves early release", func(t *testing.T) {
		f := newFixture(t)
		orderID := f.paidOrder(t, "d-1")

		o, err := f.settlement.Release(ctx, customer, orderID)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusReleasedToProvider, o.Status)

		// terminal orders never move again
		_, err = f.settlement.Release(ctx, admin, orderID)
		assert.ErrorIs(t, err, ErrInvalidState)
		_, err = f.storno.RequestCancellation(ctx, customer, orderID, CancellationInput{Reason: "late"})
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, entities.OrderStatusReleasedToProvider, f.order(t, orderID).Status)
	})

	t.Run("provider cannot release", func(t *testing.T) {
		f := newFixture(t)
		orderID := f.paidOrder(t, "d-1")

		_, err := f.settlement.Release(ctx, provider, orderID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("open dispute blocks release", func(t *testing.T) {
		f := newFixture(t)
		orderID := f.paidOrder(t, "d-1")
		_, err := f.storno.RequestCancellation(ctx, customer, orderID, CancellationInput{Reason: "broken"})
		require.NoError(t, err)

		_, err = f.settlement.Release(ctx, admin, orderID)
		assert.ErrorIs(t, err, ErrOrderHasOpenStorno)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.settlement.Release(ctx, admin, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = f.settlement.GetOrder(ctx, admin, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("outsiders cannot read orders", func(t *testing.T) {
		f := newFixture(t)
		orderID := f.paidOrder(t, "d-1")
		_, err := f.settlement.GetOrder(ctx, stranger, orderID)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = f.settlement.GetOrder(ctx, provider, orderID)
		assert.NoError(t, err)
	})
}

package settlement

import (
	"errors"
	"testing"
	"time"

	"marketplace_escrow/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		from    entities.OrderStatus
		trigger Trigger
		want    entities.OrderStatus
		wantErr bool
	}{
		{name: "finalize draft", from: entities.OrderStatusDraft, trigger: TriggerFinalize, want: entities.OrderStatusPaymentReceivedClearing},
		{name: "sweep releases clearing", from: entities.OrderStatusPaymentReceivedClearing, trigger: TriggerClearingSweep, want: entities.OrderStatusReleasedToProvider},
		{name: "manual release", from: entities.OrderStatusPaymentReceivedClearing, trigger: TriggerManualRelease, want: entities.OrderStatusReleasedToProvider},
		{name: "storno opens dispute", from: entities.OrderStatusPaymentReceivedClearing, trigger: TriggerStornoOpened, want: entities.OrderStatusDisputed},
		{name: "storno approve refunds", from: entities.OrderStatusDisputed, trigger: TriggerStornoApprove, want: entities.OrderStatusRefundedToCustomer},
		{name: "storno reject back to clearing", from: entities.OrderStatusDisputed, trigger: TriggerStornoReject, want: entities.OrderStatusPaymentReceivedClearing},
		{name: "storno reject with release settles", from: entities.OrderStatusDisputed, trigger: TriggerStornoRelease, want: entities.OrderStatusReleasedToProvider},
		{name: "storno release needs a dispute", from: entities.OrderStatusPaymentReceivedClearing, trigger: TriggerStornoRelease, wantErr: true},
		{name: "sweep never settles disputed", from: entities.OrderStatusDisputed, trigger: TriggerClearingSweep, wantErr: true},
		{name: "manual release never settles disputed", from: entities.OrderStatusDisputed, trigger: TriggerManualRelease, wantErr: true},
		{name: "finalize only from draft", from: entities.OrderStatusPaymentReceivedClearing, trigger: TriggerFinalize, wantErr: true},
		{name: "second dispute rejected", from: entities.OrderStatusDisputed, trigger: TriggerStornoOpened, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.trigger)
			if tt.wantErr {
				var te *TransitionError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, tt.from, te.From)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerminalStatusesNeverTransition(t *testing.T) {
	triggers := []Trigger{TriggerFinalize, TriggerClearingSweep, TriggerManualRelease, TriggerStornoOpened, TriggerStornoApprove, TriggerStornoReject, TriggerStornoRelease}
	for _, from := range []entities.OrderStatus{entities.OrderStatusReleasedToProvider, entities.OrderStatusRefundedToCustomer} {
		for _, tr := range triggers {
			assert.False(t, CanFire(from, tr), "%s via %s", from, tr)
		}
	}
}

func TestApply_FreezesSettledAmountOnTerminal(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	o := entities.Order{Status: entities.OrderStatusPaymentReceivedClearing, TotalAmount: 13000}

	require.NoError(t, Apply(&o, TriggerManualRelease, now))
	assert.Equal(t, entities.OrderStatusReleasedToProvider, o.Status)
	assert.Equal(t, int64(13000), o.SettledAmount)
	require.NotNil(t, o.SettledAt)
	assert.True(t, o.SettledAt.Equal(now))

	o.TotalAmount = 99999
	err := Apply(&o, TriggerStornoApprove, now)
	require.Error(t, err)
	assert.Equal(t, int64(13000), o.SettledAmount)
}

func TestApply_NonTerminalDoesNotFreeze(t *testing.T) {
	o := entities.Order{Status: entities.OrderStatusPaymentReceivedClearing, TotalAmount: 10000}
	require.NoError(t, Apply(&o, TriggerStornoOpened, time.Now()))
	assert.Equal(t, entities.OrderStatusDisputed, o.Status)
	assert.Zero(t, o.SettledAmount)
	assert.Nil(t, o.SettledAt)
}

func TestPayableTotal_OnlyTransferredEntries(t *testing.T) {
	entries := []entities.TimeEntry{
		{Amount: 3000, Status: entities.BillingStatusTransferred},
		{Amount: 1000, Status: entities.BillingStatusBillablePending},
		{Amount: 2000, Status: entities.BillingStatusApproved},
		{Amount: 500, Status: entities.BillingStatusRejected},
		{Amount: 700, Status: entities.BillingStatusPending},
		{Amount: 250, Status: entities.BillingStatusTransferred},
	}
	additional, total := PayableTotal(10000, entries)
	assert.Equal(t, int64(3250), additional)
	assert.Equal(t, int64(13250), total)
}

func TestProvisionalRefund(t *testing.T) {
	assert.Equal(t, int64(9000), ProvisionalRefund(entities.Order{TotalAmount: 10000, PlatformFee: 1000}))
	assert.Equal(t, int64(0), ProvisionalRefund(entities.Order{TotalAmount: 100, PlatformFee: 1000}))
}

func TestTotalCalculatedHours(t *testing.T) {
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6.0, TotalCalculatedHours(day, day, 6))
	assert.Equal(t, 18.0, TotalCalculatedHours(day, day.AddDate(0, 0, 2), 6))
	assert.Equal(t, 16.0, TotalCalculatedHours(day, day.AddDate(0, 0, 1), 0))
	assert.Equal(t, 4.0, TotalCalculatedHours(time.Time{}, time.Time{}, 4))
}

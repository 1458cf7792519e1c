package settlement

import (
	"fmt"
	"math"
	"time"

	"marketplace_escrow/internal/domain/entities"
)

// Trigger names the cause of an order transition. Each edge of the machine is
// reachable only through its trigger, so e.g. a clearing sweep can never
// settle a disputed order.
type Trigger string

const (
	TriggerFinalize      Trigger = "finalize"
	TriggerClearingSweep Trigger = "clearing_sweep"
	TriggerManualRelease Trigger = "manual_release"
	TriggerStornoOpened  Trigger = "storno_opened"
	TriggerStornoApprove Trigger = "storno_approve"
	TriggerStornoReject  Trigger = "storno_reject"
	TriggerStornoRelease Trigger = "storno_release"
)

type edge struct {
	from entities.OrderStatus
	via  Trigger
}

var transitions = map[edge]entities.OrderStatus{
	{entities.OrderStatusDraft, TriggerFinalize}:                        entities.OrderStatusPaymentReceivedClearing,
	{entities.OrderStatusPaymentReceivedClearing, TriggerClearingSweep}: entities.OrderStatusReleasedToProvider,
	{entities.OrderStatusPaymentReceivedClearing, TriggerManualRelease}: entities.OrderStatusReleasedToProvider,
	{entities.OrderStatusPaymentReceivedClearing, TriggerStornoOpened}:  entities.OrderStatusDisputed,
	{entities.OrderStatusDisputed, TriggerStornoApprove}:                entities.OrderStatusRefundedToCustomer,
	{entities.OrderStatusDisputed, TriggerStornoReject}:                 entities.OrderStatusPaymentReceivedClearing,
	{entities.OrderStatusDisputed, TriggerStornoRelease}:                entities.OrderStatusReleasedToProvider,
}

// TransitionError is returned for an edge that is not in the machine.
type TransitionError struct {
	From    entities.OrderStatus
	Trigger Trigger
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order in status %q cannot handle %q", e.From, e.Trigger)
}

// Next returns the status reached from `from` via trigger.
func Next(from entities.OrderStatus, trigger Trigger) (entities.OrderStatus, error) {
	if from.IsTerminal() {
		return "", &TransitionError{From: from, Trigger: trigger}
	}
	to, ok := transitions[edge{from, trigger}]
	if !ok {
		return "", &TransitionError{From: from, Trigger: trigger}
	}
	return to, nil
}

// CanFire reports whether trigger is permitted from status.
func CanFire(from entities.OrderStatus, trigger Trigger) bool {
	_, err := Next(from, trigger)
	return err == nil
}

// Apply moves the order through trigger and stamps UpdatedAt. On a terminal
// target the payable total is frozen into SettledAmount.
func Apply(o *entities.Order, trigger Trigger, now time.Time) error {
	to, err := Next(o.Status, trigger)
	if err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = now
	if to.IsTerminal() {
		o.SettledAmount = o.TotalAmount
		o.SettledAt = &now
	}
	return nil
}

// PayableTotal is the base amount plus every transferred additional-hours entry.
// Entries in any other billing status never contribute.
func PayableTotal(base int64, entries []entities.TimeEntry) (additional, total int64) {
	for _, e := range entries {
		if e.Status == entities.BillingStatusTransferred {
			additional += e.Amount
		}
	}
	return additional, base + additional
}

// ProvisionalRefund is what the customer gets back by default: total paid minus
// the platform commission, never negative.
func ProvisionalRefund(o entities.Order) int64 {
	r := o.TotalAmount - o.PlatformFee
	if r < 0 {
		return 0
	}
	return r
}

const defaultHoursPerDay = 8

// TotalCalculatedHours corrects the billed hours of multi-day jobs: calendar
// days (inclusive) times the hours per day. Single-day jobs keep hoursPerDay.
func TotalCalculatedHours(from, to time.Time, hoursPerDay float64) float64 {
	if hoursPerDay <= 0 {
		hoursPerDay = defaultHoursPerDay
	}
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return hoursPerDay
	}
	days := math.Ceil(to.Sub(from).Hours()/24) + 1
	return hoursPerDay * days
}

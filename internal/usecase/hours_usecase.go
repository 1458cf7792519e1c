package usecase

import (
	"context"
	"fmt"
	"strings"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/domain/settlement"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HoursInput is a provider's claim for additional billable time.
type HoursInput struct {
	Hours       float64
	Amount      int64
	Description string
}

// IHoursUseCase runs the additional-hours approval flow:
// pending -> billable_pending -> approved -> transferred | rejected.
type IHoursUseCase interface {
	RecordHours(ctx context.Context, actor entities.Actor, orderID string, in HoursInput) (entities.TimeEntry, error)
	SubmitForApproval(ctx context.Context, actor entities.Actor, orderID, entryID string) (entities.TimeEntry, error)
	SubmitHours(ctx context.Context, actor entities.Actor, orderID string, in HoursInput) (entities.TimeEntry, error)
	ApproveHours(ctx context.Context, actor entities.Actor, orderID, entryID string) (entities.TimeEntry, error)
	RetryCapture(ctx context.Context, actor entities.Actor, orderID, entryID string) (entities.TimeEntry, error)
	ConfirmTransfer(ctx context.Context, orderID, entryID, processorPaymentID string) (entities.TimeEntry, error)
	RejectHours(ctx context.Context, actor entities.Actor, orderID, entryID, reason string) (entities.TimeEntry, error)
	ListHours(ctx context.Context, actor entities.Actor, orderID string) ([]entities.TimeEntry, error)
}

type HoursUseCase struct {
	engine
	gateway interfaces.IPaymentGateway
}

var _ IHoursUseCase = (*HoursUseCase)(nil)

func NewHoursUseCase(store interfaces.IStore, gateway interfaces.IPaymentGateway, publisher interfaces.IEventPublisher, opts ...Option) *HoursUseCase {
	return &HoursUseCase{engine: newEngine(store, publisher, opts...), gateway: gateway}
}

func (u *HoursUseCase) RecordHours(ctx context.Context, actor entities.Actor, orderID string, in HoursInput) (entities.TimeEntry, error) {
	return u.createEntry(ctx, actor, orderID, in, entities.BillingStatusPending)
}

// SubmitHours records an entry and submits it for customer approval in one step.
func (u *HoursUseCase) SubmitHours(ctx context.Context, actor entities.Actor, orderID string, in HoursInput) (entities.TimeEntry, error) {
	return u.createEntry(ctx, actor, orderID, in, entities.BillingStatusBillablePending)
}

func (u *HoursUseCase) createEntry(ctx context.Context, actor entities.Actor, orderID string, in HoursInput, status entities.BillingStatus) (entities.TimeEntry, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.TimeEntry{}, ErrInvalidOrderID
	}
	if in.Amount <= 0 || in.Hours < 0 {
		return entities.TimeEntry{}, ErrInvalidHours
	}

	var out entities.TimeEntry
	err := u.runTx(ctx, "hours", func(ctx context.Context, tx interfaces.ITx) error {
		out = entities.TimeEntry{}
		o, err := u.providerOrder(ctx, tx, actor, orderID)
		if err != nil {
			return err
		}
		now := u.now()
		e := entities.TimeEntry{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ProviderID:  o.ProviderID,
			Hours:       in.Hours,
			Amount:      in.Amount,
			Description: strings.TrimSpace(in.Description),
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.PutTimeEntry(ctx, &e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		u.logger.Warn("[hours][usecase] record failed", zap.String("order_id", orderID), zap.Error(err))
		return entities.TimeEntry{}, err
	}
	u.logger.Info("[hours][usecase] entry recorded",
		zap.String("order_id", orderID),
		zap.String("entry_id", out.ID),
		zap.String("billing_status", string(out.Status)),
		zap.Int64("amount", out.Amount))
	return out, nil
}

func (u *HoursUseCase) SubmitForApproval(ctx context.Context, actor entities.Actor, orderID, entryID string) (entities.TimeEntry, error) {
	orderID, entryID, err := entryKeys(orderID, entryID)
	if err != nil {
		return entities.TimeEntry{}, err
	}
	var out entities.TimeEntry
	err = u.runTx(ctx, "hours", func(ctx context.Context, tx interfaces.ITx) error {
		out = entities.TimeEntry{}
		if _, err := u.providerOrder(ctx, tx, actor, orderID); err != nil {
			return err
		}
		e, err := getEntry(ctx, tx, orderID, entryID)
		if err != nil {
			return err
		}
		if e.Status != entities.BillingStatusPending {
			return ErrEntryNotPending
		}
		e.Status = entities.BillingStatusBillablePending
		e.UpdatedAt = u.now()
		if err := tx.PutTimeEntry(ctx, &e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return entities.TimeEntry{}, err
	}
	return out, nil
}

// ApproveHours confirms a billable entry and captures its amount. The order total
// only grows once the processor confirms the capture; any failure leaves the
// entry approved so the capture can be retried.
func (u *HoursUseCase) ApproveHours(ctx context.Context, actor entities.Actor, orderID, entryID string) (entities.TimeEntry, error) {
	orderID, entryID, err := entryKeys(orderID, entryID)
	if err != nil {
		return entities.TimeEntry{}, err
	}
	var (
		order entities.Order
		entry entities.TimeEntry
	)
	err = u.runTx(ctx, "hours", func(ctx context.Context, tx interfaces.ITx) error {
		o, err := getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !o.IsCustomer(actor) {
			return ErrNotAuthorized
		}
		if o.Status != entities.OrderStatusPaymentReceivedClearing {
			return ErrOrderNotClearing
		}
		e, err := getEntry(ctx, tx, orderID, entryID)
		if err != nil {
			return err
		}
		if e.Status != entities.BillingStatusBillablePending {
			return ErrEntryNotBillable
		}
		now := u.now()
		e.Status = entities.BillingStatusApproved
		e.ApprovedAt = &now
		e.CaptureStartedAt = &now
		e.CaptureAttempts++
		e.UpdatedAt = now
		if err := tx.PutTimeEntry(ctx, &e); err != nil {
			return err
		}
		order, entry = o, e
		return nil
	})
	if err != nil {
		u.logger.Warn("[hours][usecase] approve failed", zap.String("entry_id", entryID), zap.Error(err))
		return entities.TimeEntry{}, err
	}
	u.logger.Info("[hours][usecase] entry approved", zap.String("order_id", orderID), zap.String("entry_id", entryID))
	return u.capture(ctx, order, entry)
}

// RetryCapture re-runs the capture of an approved entry whose previous attempt
// failed. It refuses while another attempt holds the capture lease or the
// processor already accepted a payment for the entry.
func (u *HoursUseCase) RetryCapture(ctx context.Context, actor entities.Actor, orderID, entryID string) (entities.TimeEntry, error) {
	orderID, entryID, err := entryKeys(orderID, entryID)
	if err != nil {
		return entities.TimeEntry{}, err
	}
	var (
		order entities.Order
		entry entities.TimeEntry
	)
	err = u.runTx(ctx, "hours", func(ctx context.Context, tx interfaces.ITx) error {
		o, err := getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !o.IsCustomer(actor) {
			return ErrNotAuthorized
		}
		e, err := getEntry(ctx, tx, orderID, entryID)
		if err != nil {
			return err
		}
		if e.Status != entities.BillingStatusApproved {
			return ErrEntryNotApproved
		}
		if e.ProcessorPaymentID != "" {
			return ErrEntryAwaitingConfirm
		}
		now := u.now()
		if e.CaptureLeaseHeld(now, u.settings.CaptureLease) {
			return ErrCaptureInProgress
		}
		e.CaptureStartedAt = &now
		e.CaptureAttempts++
		e.UpdatedAt = now
		if err := tx.PutTimeEntry(ctx, &e); err != nil {
			return err
		}
		order, entry = o, e
		return nil
	})
	if err != nil {
		return entities.TimeEntry{}, err
	}
	u.logger.Info("[hours][usecase] retrying capture",
		zap.String("entry_id", entryID),
		zap.Int("attempt", entry.CaptureAttempts))
	return u.capture(ctx, order, entry)
}

// capture calls the processor outside any store transaction. The amount always
// comes from the stored entry.
func (u *HoursUseCase) capture(ctx context.Context, o entities.Order, e entities.TimeEntry) (entities.TimeEntry, error) {
	if u.gateway == nil {
		return e, &Error{Kind: ErrUpstreamPaymentFailure, Msg: "payment gateway not configured"}
	}
	req := interfaces.CaptureRequest{
		Reference:   e.ID,
		Amount:      e.Amount,
		Currency:    o.Currency,
		Description: fmt.Sprintf("Additional hours for order %s", o.ID),
		PayerID:     o.CustomerID,
	}
	u.logger.Info("[hours][usecase] calling payment gateway", zap.String("entry_id", e.ID), zap.Int64("amount", e.Amount))
	result, err := u.gateway.Capture(ctx, req)
	if err == nil && !result.Settled() && !captureAwaitingConfirmation(result.ProviderStatus) {
		err = fmt.Errorf("capture %s by processor", result.ProviderStatus)
	}
	if err != nil {
		u.logger.Warn("[hours][usecase] capture failed", zap.String("entry_id", e.ID), zap.Error(err))
		u.recordCaptureFailure(ctx, o.ID, e.ID, err)
		return entities.TimeEntry{}, &Error{Kind: ErrUpstreamPaymentFailure, Msg: "additional hours capture failed", Err: err}
	}

	if !result.Settled() {
		u.logger.Info("[hours][usecase] capture awaiting processor confirmation",
			zap.String("entry_id", e.ID),
			zap.String("provider_payment_id", result.ProviderPaymentID),
			zap.String("provider_status", result.ProviderStatus))
		return u.recordPendingCapture(ctx, o.ID, e.ID, result.ProviderPaymentID)
	}

	out, err := u.ConfirmTransfer(ctx, o.ID, e.ID, result.ProviderPaymentID)
	if err != nil {
		// The processor charged the customer; the hours.captured webhook completes the transfer.
		u.logger.Error("[hours][usecase] capture succeeded but transfer was not recorded",
			zap.String("entry_id", e.ID),
			zap.String("provider_payment_id", result.ProviderPaymentID),
			zap.Error(err))
		return entities.TimeEntry{}, err
	}
	return out, nil
}

func captureAwaitingConfirmation(status string) bool {
	switch status {
	case "pending", "in_process", "authorized":
		return true
	}
	return false
}

func (u *HoursUseCase) recordCaptureFailure(ctx context.Context, orderID, entryID string, cause error) {
	err := u.runTx(ctx, "hours", func(ctx context.Context, tx interfaces.ITx) error {
		e, err := getEntry(ctx, tx, orderID, entryID)
		if err != nil {
			return err
		}
		if e.Status != entities.BillingStatusApproved || e.ProcessorPaymentID != "" {
			return nil
		}
		e.LastCaptureError = cause.Error()
		e.CaptureStartedAt = nil
		e.UpdatedAt = u.now()
		return tx.PutTimeEntry(ctx, &e)
	})
	if err != nil {
		u.logger.Error("[hours][usecase] recording capture failure failed", zap.String("entry_id", entryID), zap.Error(err))
	}
}

func (u *HoursUseCase) recordPendingCapture(ctx context.Context, orderID, entryID, paymentID string) (entities.TimeEntry, error) {
	var out entities.TimeEntry
	err := u.runTx(ctx, "hours", func(ctx context.Context, tx interfaces.ITx) error {
		e, err := getEntry(ctx, tx, orderID, entryID)
		if err != nil {
			return err
		}
		out = e
		if e.Status != entities.BillingStatusApproved {
			return nil
		}
		e.ProcessorPaymentID = paymentID
		e.LastCaptureError = ""
		e.UpdatedAt = u.now()
		if err := tx.PutTimeEntry(ctx, &e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return entities.TimeEntry{}, err
	}
	return out, nil
}

// ConfirmTransfer marks an approved entry transferred once the processor settled
// its capture, and recomputes the order total from transferred entries. It is
// idempotent for entries already transferred.
func (u *HoursUseCase) ConfirmTransfer(ctx context.Context, orderID, entryID, processorPaymentID string) (entities.TimeEntry, error) {
	orderID, entryID, err := entryKeys(orderID, entryID)
	if err != nil {
		return entities.TimeEntry{}, err
	}
	var (
		out         entities.TimeEntry
		order       entities.Order
		transferred bool
	)
	err = u.runTx(ctx, "hours", func(ctx context.Context, tx interfaces.ITx) error {
		out, order, transferred = entities.TimeEntry{}, entities.Order{}, false
		o, err := getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		e, err := getEntry(ctx, tx, orderID, entryID)
		if err != nil {
			return err
		}
		if e.Status == entities.BillingStatusTransferred {
			out = e
			return nil
		}
		if e.Status != entities.BillingStatusApproved {
			return ErrEntryNotApproved
		}
		if o.Status.IsTerminal() {
			return &Error{Kind: ErrInvalidState, Msg: "order is already settled"}
		}

		now := u.now()
		e.Status = entities.BillingStatusTransferred
		e.TransferredAt = &now
		if processorPaymentID != "" {
			e.ProcessorPaymentID = processorPaymentID
		}
		e.CaptureStartedAt = nil
		e.LastCaptureError = ""
		e.UpdatedAt = now
		if err := tx.PutTimeEntry(ctx, &e); err != nil {
			return err
		}

		entries, err := tx.ListTimeEntriesByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		entries = replaceEntry(entries, e)
		o.AdditionalAmount, o.TotalAmount = settlement.PayableTotal(o.BaseAmount, entries)
		o.UpdatedAt = now
		if err := tx.PutOrder(ctx, &o); err != nil {
			return err
		}
		out, order, transferred = e, o, true
		return nil
	})
	if err != nil {
		u.logger.Warn("[hours][usecase] transfer failed", zap.String("entry_id", entryID), zap.Error(err))
		return entities.TimeEntry{}, err
	}
	if transferred {
		u.logger.Info("[hours][usecase] entry transferred",
			zap.String("order_id", orderID),
			zap.String("entry_id", entryID),
			zap.Int64("order_total", order.TotalAmount))
		u.publish(ctx, newEvent(entities.EventHoursTransferred, orderID, order.UpdatedAt, map[string]any{
			"entry_id":             out.ID,
			"amount":               out.Amount,
			"provider_payment_id":  out.ProcessorPaymentID,
			"order_total_amount":   order.TotalAmount,
			"order_additional_sum": order.AdditionalAmount,
		}))
	}
	return out, nil
}

func (u *HoursUseCase) RejectHours(ctx context.Context, actor entities.Actor, orderID, entryID, reason string) (entities.TimeEntry, error) {
	orderID, entryID, err := entryKeys(orderID, entryID)
	if err != nil {
		return entities.TimeEntry{}, err
	}
	var out entities.TimeEntry
	err = u.runTx(ctx, "hours", func(ctx context.Context, tx interfaces.ITx) error {
		out = entities.TimeEntry{}
		o, err := getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !o.IsCustomer(actor) {
			return ErrNotAuthorized
		}
		e, err := getEntry(ctx, tx, orderID, entryID)
		if err != nil {
			return err
		}
		if e.Status != entities.BillingStatusPending && e.Status != entities.BillingStatusBillablePending {
			return ErrEntryNotBillable
		}
		now := u.now()
		e.Status = entities.BillingStatusRejected
		e.RejectedAt = &now
		e.RejectionReason = strings.TrimSpace(reason)
		e.UpdatedAt = now
		if err := tx.PutTimeEntry(ctx, &e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return entities.TimeEntry{}, err
	}
	u.logger.Info("[hours][usecase] entry rejected", zap.String("order_id", orderID), zap.String("entry_id", entryID))
	return out, nil
}

func (u *HoursUseCase) ListHours(ctx context.Context, actor entities.Actor, orderID string) ([]entities.TimeEntry, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	var out []entities.TimeEntry
	err := u.store.RunInTransaction(ctx, func(ctx context.Context, tx interfaces.ITx) error {
		o, err := getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !actor.IsTrusted() && !o.IsParty(actor) {
			return ErrNotAuthorized
		}
		out, err = tx.ListTimeEntriesByOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// providerOrder loads an order the actor may bill hours on: the actor is its
// provider, the provider is not blocked and the order is still clearing.
func (u *HoursUseCase) providerOrder(ctx context.Context, tx interfaces.ITx, actor entities.Actor, orderID string) (entities.Order, error) {
	o, err := getOrder(ctx, tx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !o.IsProvider(actor) {
		return entities.Order{}, ErrNotAuthorized
	}
	stats, err := tx.GetProviderStats(ctx, o.ProviderID)
	if err != nil {
		return entities.Order{}, err
	}
	if stats.IsBlocked {
		return entities.Order{}, ErrProviderBlocked
	}
	if o.Status != entities.OrderStatusPaymentReceivedClearing {
		return entities.Order{}, ErrOrderNotClearing
	}
	return o, nil
}

func getOrder(ctx context.Context, tx interfaces.ITx, orderID string) (entities.Order, error) {
	o, err := tx.GetOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func getEntry(ctx context.Context, tx interfaces.ITx, orderID, entryID string) (entities.TimeEntry, error) {
	e, err := tx.GetTimeEntry(ctx, orderID, entryID)
	if err != nil {
		return entities.TimeEntry{}, err
	}
	if e.ID == "" {
		return entities.TimeEntry{}, ErrTimeEntryNotFound
	}
	return e, nil
}

func entryKeys(orderID, entryID string) (string, string, error) {
	orderID = strings.TrimSpace(orderID)
	entryID = strings.TrimSpace(entryID)
	if orderID == "" {
		return "", "", ErrInvalidOrderID
	}
	if entryID == "" {
		return "", "", ErrInvalidEntryID
	}
	return orderID, entryID, nil
}

func replaceEntry(entries []entities.TimeEntry, e entities.TimeEntry) []entities.TimeEntry {
	out := make([]entities.TimeEntry, 0, len(entries)+1)
	found := false
	for _, cur := range entries {
		if cur.ID == e.ID {
			cur = e
			found = true
		}
		out = append(out, cur)
	}
	if !found {
		out = append(out, e)
	}
	return out
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/domain/settlement"
	"marketplace_escrow/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// SweepResult summarizes one clearing sweep.
type SweepResult struct {
	Scanned  int `json:"scanned"`
	Released int `json:"released"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// ISettlementUseCase moves paid orders to their final money state.
type ISettlementUseCase interface {
	GetOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	Release(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error)
	SweepClearing(ctx context.Context, now time.Time, limit int) (SweepResult, error)
}

type SettlementUseCase struct {
	engine
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

func NewSettlementUseCase(store interfaces.IStore, publisher interfaces.IEventPublisher, opts ...Option) *SettlementUseCase {
	return &SettlementUseCase{engine: newEngine(store, publisher, opts...)}
}

func (u *SettlementUseCase) GetOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	var out entities.Order
	err := u.store.RunInTransaction(ctx, func(ctx context.Context, tx interfaces.ITx) error {
		o, err := tx.GetOrder(ctx, orderID)
		out = o
		return err
	})
	if err != nil {
		return entities.Order{}, err
	}
	if out.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	if !actor.IsTrusted() && !out.IsParty(actor) {
		return entities.Order{}, ErrNotAuthorized
	}
	return out, nil
}

// Release pays the provider before the clearing period ends. Admins and the
// order's customer (buyer approval) may release.
func (u *SettlementUseCase) Release(ctx context.Context, actor entities.Actor, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	var out entities.Order
	err := u.runTx(ctx, "settlement", func(ctx context.Context, tx interfaces.ITx) error {
		out = entities.Order{}
		o, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if o.ID == "" {
			return ErrOrderNotFound
		}
		if !actor.IsTrusted() && !o.IsCustomer(actor) {
			return ErrNotAuthorized
		}
		if o.Status == entities.OrderStatusDisputed || o.OpenStornoRequestID != "" {
			return ErrOrderHasOpenStorno
		}
		if o.Status != entities.OrderStatusPaymentReceivedClearing {
			return ErrOrderNotClearing
		}
		if err := u.settle(ctx, tx, &o, settlement.TriggerManualRelease, u.now()); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		u.logger.Warn("[settlement][usecase] release failed", zap.String("order_id", orderID), zap.Error(err))
		return entities.Order{}, err
	}
	u.logger.Info("[settlement][usecase] order released",
		zap.String("order_id", out.ID),
		zap.String("by", actor.UserID),
		zap.Int64("settled_amount", out.SettledAmount))
	u.publish(ctx, releasedEvent(out, "manual"))
	return out, nil
}

// SweepClearing releases up to limit orders whose clearing period has elapsed.
// Each candidate is re-read inside its own transaction; orders that were disputed
// or settled in the meantime are skipped. Skipped and failed orders stay due, so
// the listing is widened past them until limit orders were attempted or no
// unseen candidate is left.
func (u *SettlementUseCase) SweepClearing(ctx context.Context, now time.Time, limit int) (SweepResult, error) {
	if now.IsZero() {
		now = u.now()
	}
	if limit <= 0 {
		limit = u.settings.SweepBatchSize
	}

	var res SweepResult
	seen := make(map[string]bool)
	for res.Released+res.Failed < limit {
		want := limit + len(seen)
		candidates, err := u.store.ListClearingDue(ctx, now, want)
		if err != nil {
			u.logger.Error("[settlement][usecase] listing clearing candidates failed", zap.Error(err))
			return res, err
		}
		fresh := 0
		for _, c := range candidates {
			if seen[c.ID] {
				continue
			}
			if res.Released+res.Failed >= limit {
				break
			}
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			seen[c.ID] = true
			fresh++
			res.Scanned++
			u.sweepOne(ctx, c.ID, now, &res)
		}
		if fresh == 0 || len(candidates) < want {
			break
		}
	}
	u.logger.Info("[settlement][usecase] sweep done",
		zap.Int("scanned", res.Scanned),
		zap.Int("released", res.Released),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))
	return res, nil
}

func (u *SettlementUseCase) sweepOne(ctx context.Context, orderID string, now time.Time, res *SweepResult) {
	var (
		released entities.Order
		skipped  bool
	)
	err := u.runTx(ctx, "settlement", func(ctx context.Context, tx interfaces.ITx) error {
		released, skipped = entities.Order{}, false
		o, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if o.ID == "" || o.Status != entities.OrderStatusPaymentReceivedClearing ||
			o.OpenStornoRequestID != "" || o.ClearingEndsAt.After(now) {
			skipped = true
			return nil
		}
		if err := u.settle(ctx, tx, &o, settlement.TriggerClearingSweep, now); err != nil {
			if errors.Is(err, ErrHoursCapturePending) {
				skipped = true
				return nil
			}
			return err
		}
		released = o
		return nil
	})
	switch {
	case err != nil:
		res.Failed++
		u.logger.Warn("[settlement][usecase] sweep release failed", zap.String("order_id", orderID), zap.Error(err))
	case skipped:
		res.Skipped++
	default:
		res.Released++
		u.publish(ctx, releasedEvent(released, "clearing_sweep"))
	}
}

// settle fires a terminal trigger on o inside tx. The payable total is frozen
// from the entries transferred at this instant, the escrow follows the order,
// and the order is written.
func (e engine) settle(ctx context.Context, tx interfaces.ITx, o *entities.Order, trigger settlement.Trigger, now time.Time) error {
	entries, err := tx.ListTimeEntriesByOrder(ctx, o.ID)
	if err != nil {
		return err
	}
	for _, te := range entries {
		if te.Status == entities.BillingStatusApproved {
			return ErrHoursCapturePending
		}
	}
	o.AdditionalAmount, o.TotalAmount = settlement.PayableTotal(o.BaseAmount, entries)
	if err := settlement.Apply(o, trigger, now); err != nil {
		return &Error{Kind: ErrInvalidState, Msg: "order cannot be settled", Err: err}
	}
	o.OpenStornoRequestID = ""

	if o.EscrowID != "" {
		escrow, err := tx.GetEscrow(ctx, o.EscrowID)
		if err != nil {
			return err
		}
		if escrow.ID != "" && escrow.Status.IsLinkable() {
			if o.Status == entities.OrderStatusRefundedToCustomer {
				escrow.Status = entities.EscrowStatusRefunded
			} else {
				escrow.Status = entities.EscrowStatusReleased
			}
			escrow.UpdatedAt = now
			if err := tx.PutEscrow(ctx, &escrow); err != nil {
				return err
			}
		}
	}
	return tx.PutOrder(ctx, o)
}

func releasedEvent(o entities.Order, via string) entities.Event {
	return newEvent(entities.EventOrderReleased, o.ID, o.UpdatedAt, map[string]any{
		"provider_id":    o.ProviderID,
		"settled_amount": o.SettledAmount,
		"currency":       o.Currency,
		"via":            via,
	})
}

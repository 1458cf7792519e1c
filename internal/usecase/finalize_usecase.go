package usecase

import (
	"context"
	"strings"
	"time"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/domain/settlement"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FinalizeResult reports the order produced for a draft. Created is false when
// an earlier call already converted the draft.
type FinalizeResult struct {
	OrderID string `json:"order_id"`
	Created bool   `json:"created"`
}

// IFinalizeUseCase turns a paid draft into exactly one order. The payment webhook
// and the checkout success page both call Finalize.
type IFinalizeUseCase interface {
	Finalize(ctx context.Context, actor entities.Actor, draftID, escrowID string) (FinalizeResult, error)
}

type FinalizeUseCase struct {
	engine
}

var _ IFinalizeUseCase = (*FinalizeUseCase)(nil)

func NewFinalizeUseCase(store interfaces.IStore, publisher interfaces.IEventPublisher, opts ...Option) *FinalizeUseCase {
	return &FinalizeUseCase{engine: newEngine(store, publisher, opts...)}
}

func (u *FinalizeUseCase) Finalize(ctx context.Context, actor entities.Actor, draftID, escrowID string) (FinalizeResult, error) {
	draftID = strings.TrimSpace(draftID)
	escrowID = strings.TrimSpace(escrowID)
	if draftID == "" {
		return FinalizeResult{}, ErrInvalidDraftID
	}
	u.logger.Info("[finalize][usecase] start",
		zap.String("draft_id", draftID),
		zap.String("escrow_id", escrowID),
		zap.String("actor", actor.UserID))

	var (
		res     FinalizeResult
		created entities.Order
		blocked bool
	)
	err := u.runTx(ctx, "finalize", func(ctx context.Context, tx interfaces.ITx) error {
		res, created, blocked = FinalizeResult{}, entities.Order{}, false

		d, err := tx.GetDraft(ctx, draftID)
		if err != nil {
			return err
		}
		if d.ID == "" {
			return ErrDraftNotFound
		}
		if !actor.IsTrusted() && d.CustomerID != actor.UserID {
			return ErrNotAuthorized
		}
		if d.IsConverted() {
			res = FinalizeResult{OrderID: d.ConvertedToOrderID}
			return nil
		}

		var escrow entities.Escrow
		if escrowID != "" {
			escrow, err = tx.GetEscrow(ctx, escrowID)
			if err != nil {
				return err
			}
			if escrow.ID == "" {
				return ErrEscrowMissing
			}
			if !escrow.Status.IsLinkable() {
				return ErrEscrowNotLinkable
			}
			if escrow.FinalOrderID != "" {
				return ErrEscrowAlreadyLinked
			}
		}

		now := u.now()
		order := orderFromDraft(d, escrowID, now)
		if err := settlement.Apply(&order, settlement.TriggerFinalize, now); err != nil {
			return err
		}
		order.PaidAt = now
		order.ClearingEndsAt = now.Add(u.settings.ClearingPeriod)
		if err := tx.PutOrder(ctx, &order); err != nil {
			return err
		}

		d.Status = entities.DraftStatusConverted
		d.ConvertedToOrderID = order.ID
		d.ConvertedAt = &now
		d.UpdatedAt = now
		if err := tx.PutDraft(ctx, &d); err != nil {
			return err
		}

		if escrow.ID != "" {
			escrow.FinalOrderID = order.ID
			escrow.UpdatedAt = now
			if err := tx.PutEscrow(ctx, &escrow); err != nil {
				return err
			}
		}

		if order.ProviderID != "" {
			stats, err := tx.GetProviderStats(ctx, order.ProviderID)
			if err != nil {
				return err
			}
			if stats.ProviderID == "" {
				stats = entities.ProviderStats{ProviderID: order.ProviderID, CreatedAt: now}
			}
			stats.TotalOrders++
			blocked = stats.Recompute(u.settings.StornoBlockThreshold, now)
			stats.UpdatedAt = now
			if err := tx.PutProviderStats(ctx, &stats); err != nil {
				return err
			}
		}

		res = FinalizeResult{OrderID: order.ID, Created: true}
		created = order
		return nil
	})
	if err != nil {
		u.logger.Warn("[finalize][usecase] failed", zap.String("draft_id", draftID), zap.Error(err))
		return FinalizeResult{}, err
	}

	if res.Created {
		events := []entities.Event{newEvent(entities.EventOrderCreated, created.ID, created.CreatedAt, map[string]any{
			"draft_id":         draftID,
			"escrow_id":        escrowID,
			"customer_id":      created.CustomerID,
			"provider_id":      created.ProviderID,
			"total_amount":     created.TotalAmount,
			"currency":         created.Currency,
			"clearing_ends_at": created.ClearingEndsAt,
		})}
		if blocked {
			events = append(events, newEvent(entities.EventProviderBlocked, created.ID, created.CreatedAt, map[string]any{
				"provider_id": created.ProviderID,
			}))
		}
		u.publish(ctx, events...)
	}
	u.logger.Info("[finalize][usecase] done",
		zap.String("draft_id", draftID),
		zap.String("order_id", res.OrderID),
		zap.Bool("created", res.Created))
	return res, nil
}

func orderFromDraft(d entities.Draft, escrowID string, now time.Time) entities.Order {
	return entities.Order{
		ID:                   uuid.NewString(),
		CustomerID:           d.CustomerID,
		ProviderID:           d.ProviderID,
		CompanyID:            d.CompanyID,
		Category:             d.Category,
		Subcategory:          d.Subcategory,
		Description:          d.Description,
		JobDateFrom:          d.JobDateFrom,
		JobDateTo:            d.JobDateTo,
		TotalCalculatedHours: settlement.TotalCalculatedHours(d.JobDateFrom, d.JobDateTo, d.JobDurationHours),
		BaseAmount:           d.PriceAmount,
		TotalAmount:          d.PriceAmount,
		PlatformFee:          d.BuyerServiceFee + d.SellerCommission,
		Currency:             d.Currency,
		Status:               entities.OrderStatusDraft,
		EscrowID:             escrowID,
		SourceDraftID:        d.ID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

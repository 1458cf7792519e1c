package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/domain/settlement"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CancellationInput is what a party supplies when disputing an order.
type CancellationInput struct {
	Reason   string
	Type     entities.StornoType
	Priority entities.StornoPriority
}

// DecisionInput is an admin's ruling on a storno request. RefundAmount 0 means
// the provisional refund. Release settles a rejected dispute to the provider
// right away instead of returning the order to clearing.
type DecisionInput struct {
	Outcome      entities.StornoOutcome
	RefundAmount int64
	AdminNotes   string
	Release      bool
}

// IStornoUseCase runs the human-reviewed cancellation workflow and the
// provider abuse statistics it feeds.
type IStornoUseCase interface {
	RequestCancellation(ctx context.Context, actor entities.Actor, orderID string, in CancellationInput) (entities.StornoRequest, error)
	MarkUnderReview(ctx context.Context, actor entities.Actor, requestID string) (entities.StornoRequest, error)
	Decide(ctx context.Context, actor entities.Actor, requestID string, in DecisionInput) (entities.StornoRequest, error)
	ListRequests(ctx context.Context, actor entities.Actor, status entities.StornoStatus, limit int) ([]entities.StornoRequest, error)
	GetProviderStats(ctx context.Context, actor entities.Actor, providerID string) (entities.ProviderStats, error)
	UnblockProvider(ctx context.Context, actor entities.Actor, providerID, note string) (entities.ProviderStats, error)
}

type StornoUseCase struct {
	engine
	gateway interfaces.IPaymentGateway
}

var _ IStornoUseCase = (*StornoUseCase)(nil)

func NewStornoUseCase(store interfaces.IStore, gateway interfaces.IPaymentGateway, publisher interfaces.IEventPublisher, opts ...Option) *StornoUseCase {
	return &StornoUseCase{engine: newEngine(store, publisher, opts...), gateway: gateway}
}

// RequestCancellation opens a dispute. The order status and the open-request
// reference are written in the same transaction as the request, so two
// concurrent requests for one order cannot both commit.
func (u *StornoUseCase) RequestCancellation(ctx context.Context, actor entities.Actor, orderID string, in CancellationInput) (entities.StornoRequest, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.StornoRequest{}, ErrInvalidOrderID
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return entities.StornoRequest{}, ErrInvalidReason
	}
	stornoType := in.Type
	switch stornoType {
	case "":
		stornoType = entities.StornoTypeNormal
	case entities.StornoTypeNormal, entities.StornoTypeDeliveryDelay:
	default:
		return entities.StornoRequest{}, &Error{Kind: ErrInvalidInput, Msg: fmt.Sprintf("unknown storno type %q", in.Type)}
	}
	priority := in.Priority
	switch priority {
	case "":
		priority = entities.StornoPriorityNormal
	case entities.StornoPriorityNormal, entities.StornoPriorityHigh, entities.StornoPriorityUrgent:
	default:
		return entities.StornoRequest{}, &Error{Kind: ErrInvalidInput, Msg: fmt.Sprintf("unknown priority %q", in.Priority)}
	}

	var (
		out     entities.StornoRequest
		stats   entities.ProviderStats
		blocked bool
	)
	err := u.runTx(ctx, "storno", func(ctx context.Context, tx interfaces.ITx) error {
		out, stats, blocked = entities.StornoRequest{}, entities.ProviderStats{}, false
		o, err := getOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		var requester entities.Requester
		switch {
		case o.IsCustomer(actor):
			requester = entities.Requester{Kind: entities.RequesterCustomer, ID: actor.UserID}
		case o.IsProvider(actor):
			requester = entities.Requester{Kind: entities.RequesterProvider, ID: actor.UserID}
		default:
			return ErrNotAuthorized
		}
		if o.OpenStornoRequestID != "" || o.Status == entities.OrderStatusDisputed {
			return ErrOpenStornoExists
		}
		if o.Status != entities.OrderStatusPaymentReceivedClearing {
			return ErrOrderNotClearing
		}

		now := u.now()
		r := entities.StornoRequest{
			ID:                uuid.NewString(),
			OrderID:           o.ID,
			ProviderID:        o.ProviderID,
			RequestedBy:       requester,
			Reason:            reason,
			Type:              stornoType,
			Priority:          priority,
			Status:            entities.StornoStatusPending,
			ProvisionalRefund: settlement.ProvisionalRefund(o),
			Currency:          o.Currency,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := settlement.Apply(&o, settlement.TriggerStornoOpened, now); err != nil {
			return &Error{Kind: ErrInvalidState, Msg: "order cannot be disputed", Err: err}
		}
		o.OpenStornoRequestID = r.ID
		if err := tx.PutOrder(ctx, &o); err != nil {
			return err
		}
		if err := tx.PutStornoRequest(ctx, &r); err != nil {
			return err
		}

		if o.ProviderID != "" {
			s, err := tx.GetProviderStats(ctx, o.ProviderID)
			if err != nil {
				return err
			}
			if s.ProviderID == "" {
				s = entities.ProviderStats{ProviderID: o.ProviderID, CreatedAt: now}
			}
			s.StornoRequests++
			blocked = s.Recompute(u.settings.StornoBlockThreshold, now)
			s.UpdatedAt = now
			if err := tx.PutProviderStats(ctx, &s); err != nil {
				return err
			}
			stats = s
		}
		out = r
		return nil
	})
	if err != nil {
		u.logger.Warn("[storno][usecase] request failed", zap.String("order_id", orderID), zap.Error(err))
		return entities.StornoRequest{}, err
	}

	u.logger.Info("[storno][usecase] request opened",
		zap.String("order_id", orderID),
		zap.String("request_id", out.ID),
		zap.String("requested_by", string(out.RequestedBy.Kind)),
		zap.Float64("provider_storno_rate", stats.StornoRate))
	events := []entities.Event{newEvent(entities.EventOrderDisputed, orderID, out.CreatedAt, map[string]any{
		"request_id":         out.ID,
		"requested_by":       out.RequestedBy,
		"storno_type":        out.Type,
		"provisional_refund": out.ProvisionalRefund,
	})}
	if blocked {
		u.logger.Warn("[storno][usecase] provider auto-blocked",
			zap.String("provider_id", stats.ProviderID),
			zap.Float64("storno_rate", stats.StornoRate))
		events = append(events, newEvent(entities.EventProviderBlocked, orderID, out.CreatedAt, map[string]any{
			"provider_id":     stats.ProviderID,
			"storno_rate":     stats.StornoRate,
			"total_orders":    stats.TotalOrders,
			"storno_requests": stats.StornoRequests,
		}))
	}
	u.publish(ctx, events...)
	return out, nil
}

func (u *StornoUseCase) MarkUnderReview(ctx context.Context, actor entities.Actor, requestID string) (entities.StornoRequest, error) {
	if !actor.IsAdmin() {
		return entities.StornoRequest{}, ErrNotAuthorized
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.StornoRequest{}, ErrInvalidRequestID
	}
	var out entities.StornoRequest
	err := u.runTx(ctx, "storno", func(ctx context.Context, tx interfaces.ITx) error {
		out = entities.StornoRequest{}
		r, err := getOpenRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if r.Status == entities.StornoStatusPending {
			r.Status = entities.StornoStatusUnderReview
			r.ReviewedBy = actor.UserID
			r.UpdatedAt = u.now()
			if err := tx.PutStornoRequest(ctx, &r); err != nil {
				return err
			}
		}
		out = r
		return nil
	})
	if err != nil {
		return entities.StornoRequest{}, err
	}
	return out, nil
}

// Decide completes an open request. An approval refunds the customer through the
// processor before any state changes; a failed refund leaves the dispute open.
func (u *StornoUseCase) Decide(ctx context.Context, actor entities.Actor, requestID string, in DecisionInput) (entities.StornoRequest, error) {
	if !actor.IsAdmin() {
		return entities.StornoRequest{}, ErrNotAuthorized
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.StornoRequest{}, ErrInvalidRequestID
	}
	if in.RefundAmount < 0 {
		return entities.StornoRequest{}, ErrInvalidRefundAmount
	}
	switch in.Outcome {
	case entities.StornoOutcomeApprove:
		return u.approve(ctx, actor, requestID, in)
	case entities.StornoOutcomeReject:
		return u.reject(ctx, actor, requestID, in)
	}
	return entities.StornoRequest{}, ErrInvalidOutcome
}

type refundPlan struct {
	request entities.StornoRequest
	escrow  entities.Escrow
	amount  int64
}

func (u *StornoUseCase) approve(ctx context.Context, actor entities.Actor, requestID string, in DecisionInput) (entities.StornoRequest, error) {
	var plan refundPlan
	err := u.runTx(ctx, "storno", func(ctx context.Context, tx interfaces.ITx) error {
		plan = refundPlan{}
		r, err := getOpenRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		now := u.now()
		if r.RefundLeaseHeld(now, u.settings.RefundLease) {
			return ErrDecisionInProgress
		}
		o, err := getOrder(ctx, tx, r.OrderID)
		if err != nil {
			return err
		}
		if o.Status != entities.OrderStatusDisputed {
			return &Error{Kind: ErrInvalidState, Msg: "order is not disputed"}
		}
		entries, err := tx.ListTimeEntriesByOrder(ctx, o.ID)
		if err != nil {
			return err
		}
		for _, te := range entries {
			if te.Status == entities.BillingStatusApproved {
				return ErrHoursCapturePending
			}
		}
		_, payable := settlement.PayableTotal(o.BaseAmount, entries)

		amount := r.ProvisionalRefund
		if in.RefundAmount > 0 {
			amount = in.RefundAmount
		}
		if amount > payable {
			return ErrInvalidRefundAmount
		}

		var escrow entities.Escrow
		if amount > 0 {
			if o.EscrowID == "" {
				return ErrNoRefundableEscrow
			}
			escrow, err = tx.GetEscrow(ctx, o.EscrowID)
			if err != nil {
				return err
			}
			if escrow.ID == "" || escrow.ProcessorReference == "" || !escrow.Status.IsLinkable() {
				return ErrNoRefundableEscrow
			}
		}

		r.RefundStartedAt = &now
		r.RefundAmount = amount
		r.UpdatedAt = now
		if err := tx.PutStornoRequest(ctx, &r); err != nil {
			return err
		}
		plan = refundPlan{request: r, escrow: escrow, amount: amount}
		return nil
	})
	if err != nil {
		u.logger.Warn("[storno][usecase] approve failed", zap.String("request_id", requestID), zap.Error(err))
		return entities.StornoRequest{}, err
	}

	if plan.amount > 0 {
		if err := u.refund(ctx, plan); err != nil {
			u.releaseRefundLease(ctx, requestID)
			return entities.StornoRequest{}, err
		}
	}

	var (
		out   entities.StornoRequest
		order entities.Order
	)
	err = u.runTx(ctx, "storno", func(ctx context.Context, tx interfaces.ITx) error {
		out, order = entities.StornoRequest{}, entities.Order{}
		r, err := getOpenRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		o, err := getOrder(ctx, tx, r.OrderID)
		if err != nil {
			return err
		}
		now := u.now()
		o.RefundedAmount = plan.amount
		if err := u.settle(ctx, tx, &o, settlement.TriggerStornoApprove, now); err != nil {
			return err
		}
		complete(&r, actor, entities.StornoOutcomeApprove, in.AdminNotes, now)
		r.RefundAmount = plan.amount
		r.RefundStartedAt = nil
		if err := tx.PutStornoRequest(ctx, &r); err != nil {
			return err
		}
		out, order = r, o
		return nil
	})
	if err != nil {
		u.logger.Error("[storno][usecase] refund issued but decision was not recorded",
			zap.String("request_id", requestID),
			zap.Int64("refund_amount", plan.amount),
			zap.Error(err))
		return entities.StornoRequest{}, err
	}

	u.logger.Info("[storno][usecase] request approved",
		zap.String("request_id", out.ID),
		zap.String("order_id", out.OrderID),
		zap.Int64("refund_amount", out.RefundAmount))
	u.publish(ctx,
		decidedEvent(out),
		newEvent(entities.EventOrderRefunded, order.ID, order.UpdatedAt, map[string]any{
			"customer_id":     order.CustomerID,
			"refunded_amount": order.RefundedAmount,
			"settled_amount":  order.SettledAmount,
			"currency":        order.Currency,
		}))
	return out, nil
}

func (u *StornoUseCase) refund(ctx context.Context, plan refundPlan) error {
	if u.gateway == nil {
		return &Error{Kind: ErrUpstreamPaymentFailure, Msg: "payment gateway not configured"}
	}
	req := interfaces.RefundRequest{
		Reference:          plan.request.ID,
		ProcessorReference: plan.escrow.ProcessorReference,
		Amount:             plan.amount,
		FullAmount:         plan.escrow.Amount,
	}
	u.logger.Info("[storno][usecase] calling payment gateway refund",
		zap.String("request_id", plan.request.ID),
		zap.Int64("amount", plan.amount),
		zap.Int64("paid_amount", plan.escrow.Amount))
	result, err := u.gateway.Refund(ctx, req)
	if err == nil && !result.Settled() && result.ProviderStatus != "in_process" && result.ProviderStatus != "pending" {
		err = fmt.Errorf("refund %s by processor", result.ProviderStatus)
	}
	if err != nil {
		u.logger.Warn("[storno][usecase] refund failed", zap.String("request_id", plan.request.ID), zap.Error(err))
		return &Error{Kind: ErrUpstreamPaymentFailure, Msg: "refund failed", Err: err}
	}
	return nil
}

func (u *StornoUseCase) releaseRefundLease(ctx context.Context, requestID string) {
	err := u.runTx(ctx, "storno", func(ctx context.Context, tx interfaces.ITx) error {
		r, err := tx.GetStornoRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if r.ID == "" || !r.Status.IsOpen() || r.RefundStartedAt == nil {
			return nil
		}
		r.RefundStartedAt = nil
		r.UpdatedAt = u.now()
		return tx.PutStornoRequest(ctx, &r)
	})
	if err != nil {
		u.logger.Error("[storno][usecase] releasing refund lease failed", zap.String("request_id", requestID), zap.Error(err))
	}
}

func (u *StornoUseCase) reject(ctx context.Context, actor entities.Actor, requestID string, in DecisionInput) (entities.StornoRequest, error) {
	var (
		out   entities.StornoRequest
		order entities.Order
	)
	err := u.runTx(ctx, "storno", func(ctx context.Context, tx interfaces.ITx) error {
		out, order = entities.StornoRequest{}, entities.Order{}
		r, err := getOpenRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		now := u.now()
		if r.RefundLeaseHeld(now, u.settings.RefundLease) {
			return ErrDecisionInProgress
		}
		o, err := getOrder(ctx, tx, r.OrderID)
		if err != nil {
			return err
		}
		if o.Status != entities.OrderStatusDisputed {
			return &Error{Kind: ErrInvalidState, Msg: "order is not disputed"}
		}
		if in.Release {
			if err := u.settle(ctx, tx, &o, settlement.TriggerStornoRelease, now); err != nil {
				return err
			}
		} else {
			if err := settlement.Apply(&o, settlement.TriggerStornoReject, now); err != nil {
				return &Error{Kind: ErrInvalidState, Msg: "order cannot leave the dispute", Err: err}
			}
			o.OpenStornoRequestID = ""
			if err := tx.PutOrder(ctx, &o); err != nil {
				return err
			}
		}
		complete(&r, actor, entities.StornoOutcomeReject, in.AdminNotes, now)
		r.RefundAmount = 0
		if err := tx.PutStornoRequest(ctx, &r); err != nil {
			return err
		}
		out, order = r, o
		return nil
	})
	if err != nil {
		u.logger.Warn("[storno][usecase] reject failed", zap.String("request_id", requestID), zap.Error(err))
		return entities.StornoRequest{}, err
	}
	u.logger.Info("[storno][usecase] request rejected",
		zap.String("request_id", out.ID),
		zap.String("order_id", out.OrderID),
		zap.String("order_status", string(order.Status)))
	events := []entities.Event{decidedEvent(out)}
	if order.Status == entities.OrderStatusReleasedToProvider {
		events = append(events, releasedEvent(order, "storno_reject"))
	}
	u.publish(ctx, events...)
	return out, nil
}

func (u *StornoUseCase) ListRequests(ctx context.Context, actor entities.Actor, status entities.StornoStatus, limit int) ([]entities.StornoRequest, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	if limit <= 0 {
		limit = 100
	}
	if status != "" {
		return u.store.ListStornoRequestsByStatus(ctx, status, limit)
	}
	var out []entities.StornoRequest
	for _, s := range []entities.StornoStatus{entities.StornoStatusPending, entities.StornoStatusUnderReview} {
		remaining := limit - len(out)
		if remaining <= 0 {
			break
		}
		list, err := u.store.ListStornoRequestsByStatus(ctx, s, remaining)
		if err != nil {
			return nil, err
		}
		if len(list) > remaining {
			list = list[:remaining]
		}
		out = append(out, list...)
	}
	return out, nil
}

func (u *StornoUseCase) GetProviderStats(ctx context.Context, actor entities.Actor, providerID string) (entities.ProviderStats, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return entities.ProviderStats{}, &Error{Kind: ErrInvalidInput, Msg: "invalid provider id"}
	}
	if !actor.IsTrusted() && !(actor.Role == entities.RoleProvider && actor.UserID == providerID) {
		return entities.ProviderStats{}, ErrNotAuthorized
	}
	var out entities.ProviderStats
	err := u.store.RunInTransaction(ctx, func(ctx context.Context, tx interfaces.ITx) error {
		s, err := tx.GetProviderStats(ctx, providerID)
		out = s
		return err
	})
	if err != nil {
		return entities.ProviderStats{}, err
	}
	if out.ProviderID == "" {
		return entities.ProviderStats{}, ErrProviderStatsNotFound
	}
	return out, nil
}

// UnblockProvider is the only way a blocked provider becomes active again.
func (u *StornoUseCase) UnblockProvider(ctx context.Context, actor entities.Actor, providerID, note string) (entities.ProviderStats, error) {
	if !actor.IsAdmin() {
		return entities.ProviderStats{}, ErrNotAuthorized
	}
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return entities.ProviderStats{}, &Error{Kind: ErrInvalidInput, Msg: "invalid provider id"}
	}
	var out entities.ProviderStats
	err := u.runTx(ctx, "storno", func(ctx context.Context, tx interfaces.ITx) error {
		out = entities.ProviderStats{}
		s, err := tx.GetProviderStats(ctx, providerID)
		if err != nil {
			return err
		}
		if s.ProviderID == "" {
			return ErrProviderStatsNotFound
		}
		if s.IsBlocked {
			s.IsBlocked = false
			s.BlockReason = strings.TrimSpace(note)
			s.BlockedAt = nil
			s.UnblockedBy = actor.UserID
			s.UpdatedAt = u.now()
			if err := tx.PutProviderStats(ctx, &s); err != nil {
				return err
			}
		}
		out = s
		return nil
	})
	if err != nil {
		return entities.ProviderStats{}, err
	}
	u.logger.Info("[storno][usecase] provider unblocked", zap.String("provider_id", providerID), zap.String("by", actor.UserID))
	return out, nil
}

// getOpenRequest loads a request that still awaits a decision; anything else is
// reported as not found.
func getOpenRequest(ctx context.Context, tx interfaces.ITx, requestID string) (entities.StornoRequest, error) {
	r, err := tx.GetStornoRequest(ctx, requestID)
	if err != nil {
		return entities.StornoRequest{}, err
	}
	if r.ID == "" || !r.Status.IsOpen() {
		return entities.StornoRequest{}, ErrStornoRequestNotFound
	}
	return r, nil
}

func complete(r *entities.StornoRequest, actor entities.Actor, outcome entities.StornoOutcome, notes string, now time.Time) {
	r.Status = entities.StornoStatusCompleted
	r.Outcome = outcome
	r.ReviewedBy = actor.UserID
	r.ReviewedAt = &now
	if n := strings.TrimSpace(notes); n != "" {
		r.AdminNotes = n
	}
	r.UpdatedAt = now
}

func decidedEvent(r entities.StornoRequest) entities.Event {
	return newEvent(entities.EventStornoDecided, r.OrderID, r.UpdatedAt, map[string]any{
		"request_id":    r.ID,
		"outcome":       r.Outcome,
		"refund_amount": r.RefundAmount,
		"reviewed_by":   r.ReviewedBy,
	})
}

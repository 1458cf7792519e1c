package usecase

import (
	"context"
	"strings"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// IDraftUseCase manages checkout drafts, the pre-payment side of an order.
type IDraftUseCase interface {
	CreateDraft(ctx context.Context, actor entities.Actor, d entities.Draft) (entities.Draft, error)
	GetDraft(ctx context.Context, actor entities.Actor, id string) (entities.Draft, error)
}

type DraftUseCase struct {
	engine
	validate *validator.Validate
}

var _ IDraftUseCase = (*DraftUseCase)(nil)

func NewDraftUseCase(store interfaces.IStore, opts ...Option) *DraftUseCase {
	return &DraftUseCase{engine: newEngine(store, nil, opts...), validate: validator.New()}
}

// CreateDraft stores a new open draft. Resubmitting an identical draft returns the
// stored one, so checkout pages can retry safely.
func (u *DraftUseCase) CreateDraft(ctx context.Context, actor entities.Actor, d entities.Draft) (entities.Draft, error) {
	d.ID = strings.TrimSpace(d.ID)
	if actor.Role == entities.RoleCustomer {
		if d.CustomerID == "" {
			d.CustomerID = actor.UserID
		}
		if d.CustomerID != actor.UserID {
			return entities.Draft{}, ErrNotAuthorized
		}
	} else if !actor.IsTrusted() {
		return entities.Draft{}, ErrNotAuthorized
	}
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	if err := u.validate.Struct(d); err != nil {
		u.logger.Info("[draft][usecase] validation failed", zap.String("draft_id", d.ID), zap.Error(err))
		return entities.Draft{}, &Error{Kind: ErrInvalidInput, Msg: ErrInvalidDraft.Msg, Err: err}
	}
	if !d.JobDateFrom.IsZero() && !d.JobDateTo.IsZero() && d.JobDateTo.Before(d.JobDateFrom) {
		return entities.Draft{}, &Error{Kind: ErrInvalidInput, Msg: "job end date is before its start date"}
	}

	now := u.now()
	d.Status = entities.DraftStatusOpen
	d.ConvertedToOrderID = ""
	d.ConvertedAt = nil
	d.CreatedAt = now
	d.UpdatedAt = now

	var out entities.Draft
	err := u.runTx(ctx, "draft", func(ctx context.Context, tx interfaces.ITx) error {
		existing, err := tx.GetDraft(ctx, d.ID)
		if err != nil {
			return err
		}
		if existing.ID != "" {
			if !sameDraft(existing, d) {
				return ErrDraftAlreadyExists
			}
			out = existing
			return nil
		}
		fresh := d
		fresh.Version = 0
		if err := tx.PutDraft(ctx, &fresh); err != nil {
			return err
		}
		out = fresh
		return nil
	})
	if err != nil {
		u.logger.Warn("[draft][usecase] create failed", zap.String("draft_id", d.ID), zap.Error(err))
		return entities.Draft{}, err
	}
	u.logger.Info("[draft][usecase] draft stored", zap.String("draft_id", out.ID), zap.String("status", string(out.Status)))
	return out, nil
}

func (u *DraftUseCase) GetDraft(ctx context.Context, actor entities.Actor, id string) (entities.Draft, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Draft{}, ErrInvalidDraftID
	}
	var out entities.Draft
	err := u.store.RunInTransaction(ctx, func(ctx context.Context, tx interfaces.ITx) error {
		d, err := tx.GetDraft(ctx, id)
		out = d
		return err
	})
	if err != nil {
		return entities.Draft{}, err
	}
	if out.ID == "" {
		return entities.Draft{}, ErrDraftNotFound
	}
	if !actor.IsTrusted() && out.CustomerID != actor.UserID {
		return entities.Draft{}, ErrNotAuthorized
	}
	return out, nil
}

// sameDraft compares the caller-controlled commercial fields of two drafts.
func sameDraft(a, b entities.Draft) bool {
	return a.CustomerID == b.CustomerID &&
		a.ProviderID == b.ProviderID &&
		a.Category == b.Category &&
		a.PriceAmount == b.PriceAmount &&
		a.Currency == b.Currency &&
		a.BuyerServiceFee == b.BuyerServiceFee &&
		a.SellerCommission == b.SellerCommission
}

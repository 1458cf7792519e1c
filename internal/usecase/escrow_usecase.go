package usecase

import (
	"context"
	"strings"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// IEscrowUseCase keeps the escrow ledger: one custody record per processor payment.
type IEscrowUseCase interface {
	CreateEscrow(ctx context.Context, e entities.Escrow) (entities.Escrow, error)
	MarkFunded(ctx context.Context, id string, status entities.EscrowStatus, processorReference string) (entities.Escrow, error)
	GetEscrow(ctx context.Context, id string) (entities.Escrow, error)
}

type EscrowUseCase struct {
	engine
	validate *validator.Validate
}

var _ IEscrowUseCase = (*EscrowUseCase)(nil)

func NewEscrowUseCase(store interfaces.IStore, opts ...Option) *EscrowUseCase {
	return &EscrowUseCase{engine: newEngine(store, nil, opts...), validate: validator.New()}
}

func (u *EscrowUseCase) CreateEscrow(ctx context.Context, e entities.Escrow) (entities.Escrow, error) {
	e.ID = strings.TrimSpace(e.ID)
	e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))
	if err := u.validate.Struct(e); err != nil {
		return entities.Escrow{}, &Error{Kind: ErrInvalidInput, Msg: ErrInvalidEscrow.Msg, Err: err}
	}
	now := u.now()
	e.Status = entities.EscrowStatusPending
	e.FinalOrderID = ""
	e.CreatedAt = now
	e.UpdatedAt = now

	var out entities.Escrow
	err := u.runTx(ctx, "escrow", func(ctx context.Context, tx interfaces.ITx) error {
		existing, err := tx.GetEscrow(ctx, e.ID)
		if err != nil {
			return err
		}
		if existing.ID != "" {
			return ErrEscrowAlreadyExists
		}
		fresh := e
		fresh.Version = 0
		if err := tx.PutEscrow(ctx, &fresh); err != nil {
			return err
		}
		out = fresh
		return nil
	})
	if err != nil {
		return entities.Escrow{}, err
	}
	u.logger.Info("[escrow][usecase] escrow created", zap.String("escrow_id", out.ID), zap.Int64("amount", out.Amount))
	return out, nil
}

// MarkFunded advances the funding status reported by the processor. A replayed or
// out-of-order notification for a status already reached or passed, including a
// settled escrow, is a no-op.
func (u *EscrowUseCase) MarkFunded(ctx context.Context, id string, status entities.EscrowStatus, processorReference string) (entities.Escrow, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Escrow{}, &Error{Kind: ErrInvalidInput, Msg: "invalid escrow id"}
	}
	if status != entities.EscrowStatusHeld && status != entities.EscrowStatusFunded {
		return entities.Escrow{}, ErrInvalidFundingState
	}

	var out entities.Escrow
	err := u.runTx(ctx, "escrow", func(ctx context.Context, tx interfaces.ITx) error {
		e, err := tx.GetEscrow(ctx, id)
		if err != nil {
			return err
		}
		if e.ID == "" {
			return ErrEscrowNotFound
		}
		if e.Status.IsSettled() || e.Status == status || (e.Status == entities.EscrowStatusFunded && status == entities.EscrowStatusHeld) {
			out = e
			return nil
		}
		if !e.Status.CanAdvanceTo(status) {
			return ErrEscrowNotAdvanceable
		}
		e.Status = status
		if ref := strings.TrimSpace(processorReference); ref != "" {
			e.ProcessorReference = ref
		}
		e.UpdatedAt = u.now()
		if err := tx.PutEscrow(ctx, &e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		u.logger.Warn("[escrow][usecase] funding update failed", zap.String("escrow_id", id), zap.String("status", string(status)), zap.Error(err))
		return entities.Escrow{}, err
	}
	return out, nil
}

func (u *EscrowUseCase) GetEscrow(ctx context.Context, id string) (entities.Escrow, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Escrow{}, &Error{Kind: ErrInvalidInput, Msg: "invalid escrow id"}
	}
	var out entities.Escrow
	err := u.store.RunInTransaction(ctx, func(ctx context.Context, tx interfaces.ITx) error {
		e, err := tx.GetEscrow(ctx, id)
		out = e
		return err
	})
	if err != nil {
		return entities.Escrow{}, err
	}
	if out.ID == "" {
		return entities.Escrow{}, ErrEscrowNotFound
	}
	return out, nil
}

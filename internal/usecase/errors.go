package usecase

import "errors"

// Error kinds. Every error returned by a use case matches exactly one kind via errors.Is,
// which is what the transport layer maps to a response.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidState           = errors.New("invalid state")
	ErrConflict               = errors.New("conflict")
	ErrTransientStoreConflict = errors.New("transient store conflict")
	ErrUpstreamPaymentFailure = errors.New("upstream payment failure")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidInput           = errors.New("invalid input")
)

// Error is a specific use-case failure tagged with its kind.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

var (
	ErrDraftNotFound         = newError(ErrNotFound, "draft not found")
	ErrEscrowNotFound        = newError(ErrNotFound, "escrow not found")
	ErrOrderNotFound         = newError(ErrNotFound, "order not found")
	ErrTimeEntryNotFound     = newError(ErrNotFound, "time entry not found")
	ErrStornoRequestNotFound = newError(ErrNotFound, "open storno request not found")
	ErrProviderStatsNotFound = newError(ErrNotFound, "provider statistics not found")

	ErrDraftAlreadyExists   = newError(ErrConflict, "draft already exists with different content")
	ErrEscrowAlreadyExists  = newError(ErrConflict, "escrow already exists")
	ErrOpenStornoExists     = newError(ErrConflict, "an open storno request already exists for this order")
	ErrDecisionInProgress   = newError(ErrConflict, "another decision for this request is in progress")
	ErrCaptureInProgress    = newError(ErrConflict, "a capture for this entry is in progress")
	ErrEscrowMissing        = newError(ErrInvalidState, "escrow does not exist")
	ErrEscrowNotLinkable    = newError(ErrInvalidState, "escrow is not in a linkable status")
	ErrEscrowAlreadyLinked  = newError(ErrInvalidState, "escrow already belongs to another order")
	ErrEscrowNotAdvanceable = newError(ErrInvalidState, "escrow funding status can only move forward")
	ErrOrderNotClearing     = newError(ErrInvalidState, "order is not in payment_received_clearing")
	ErrOrderHasOpenStorno   = newError(ErrInvalidState, "order has an open storno request")
	ErrEntryNotBillable     = newError(ErrInvalidState, "time entry is not awaiting customer approval")
	ErrEntryNotPending      = newError(ErrInvalidState, "time entry is not in pending")
	ErrEntryNotApproved     = newError(ErrInvalidState, "time entry is not approved")
	ErrEntryAwaitingConfirm = newError(ErrInvalidState, "capture is awaiting processor confirmation")
	ErrNoRefundableEscrow   = newError(ErrInvalidState, "order has no escrow payment to refund")
	ErrHoursCapturePending  = newError(ErrInvalidState, "an additional-hours capture is still pending on this order")

	ErrNotAuthorized   = newError(ErrForbidden, "actor is not allowed to perform this operation")
	ErrProviderBlocked = newError(ErrForbidden, "provider is blocked")

	ErrInvalidDraft        = newError(ErrInvalidInput, "invalid draft")
	ErrInvalidEscrow       = newError(ErrInvalidInput, "invalid escrow")
	ErrInvalidDraftID      = newError(ErrInvalidInput, "invalid draft id")
	ErrInvalidOrderID      = newError(ErrInvalidInput, "invalid order id")
	ErrInvalidEntryID      = newError(ErrInvalidInput, "invalid time entry id")
	ErrInvalidRequestID    = newError(ErrInvalidInput, "invalid storno request id")
	ErrInvalidHours        = newError(ErrInvalidInput, "additional hours need a positive amount")
	ErrInvalidReason       = newError(ErrInvalidInput, "a cancellation reason is required")
	ErrInvalidOutcome      = newError(ErrInvalidInput, "outcome must be approve or reject")
	ErrInvalidRefundAmount = newError(ErrInvalidInput, "refund amount must be between 0 and the order total")
	ErrInvalidFundingState = newError(ErrInvalidInput, "escrow funding status must be held or funded")
)

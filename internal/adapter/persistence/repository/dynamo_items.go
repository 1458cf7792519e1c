package repository

import (
	"fmt"
	"time"

	"marketplace_escrow/internal/domain/entities"
)

// sortableTimeLayout is fixed-width so that string comparison in key conditions
// (clearing_ends_at <= :now) matches chronological order.
const sortableTimeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(sortableTimeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(sortableTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func parseTimePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// timeParser collects the first parse error so item conversions stay linear.
type timeParser struct {
	err error
}

func (p *timeParser) at(s string) time.Time {
	t, err := parseTime(s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return t
}

func (p *timeParser) ptr(s string) *time.Time {
	t, err := parseTimePtr(s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return t
}

type draftItem struct {
	ID                 string  `dynamodbav:"id"`
	Category           string  `dynamodbav:"category"`
	Subcategory        string  `dynamodbav:"subcategory,omitempty"`
	Description        string  `dynamodbav:"description,omitempty"`
	CustomerID         string  `dynamodbav:"customer_id"`
	ProviderID         string  `dynamodbav:"provider_id,omitempty"`
	CompanyID          string  `dynamodbav:"company_id,omitempty"`
	JobDateFrom        string  `dynamodbav:"job_date_from,omitempty"`
	JobDateTo          string  `dynamodbav:"job_date_to,omitempty"`
	JobDurationHours   float64 `dynamodbav:"job_duration_hours"`
	PriceAmount        int64   `dynamodbav:"price_amount"`
	Currency           string  `dynamodbav:"currency"`
	BuyerServiceFee    int64   `dynamodbav:"buyer_service_fee"`
	SellerCommission   int64   `dynamodbav:"seller_commission"`
	Status             string  `dynamodbav:"status"`
	ConvertedToOrderID string  `dynamodbav:"converted_to_order_id,omitempty"`
	ConvertedAt        string  `dynamodbav:"converted_at,omitempty"`
	Version            int64   `dynamodbav:"version"`
	CreatedAt          string  `dynamodbav:"created_at"`
	UpdatedAt          string  `dynamodbav:"updated_at"`
}

func toDraftItem(d entities.Draft) draftItem {
	return draftItem{
		ID:                 d.ID,
		Category:           d.Category,
		Subcategory:        d.Subcategory,
		Description:        d.Description,
		CustomerID:         d.CustomerID,
		ProviderID:         d.ProviderID,
		CompanyID:          d.CompanyID,
		JobDateFrom:        formatTime(d.JobDateFrom),
		JobDateTo:          formatTime(d.JobDateTo),
		JobDurationHours:   d.JobDurationHours,
		PriceAmount:        d.PriceAmount,
		Currency:           d.Currency,
		BuyerServiceFee:    d.BuyerServiceFee,
		SellerCommission:   d.SellerCommission,
		Status:             string(d.Status),
		ConvertedToOrderID: d.ConvertedToOrderID,
		ConvertedAt:        formatTimePtr(d.ConvertedAt),
		Version:            d.Version,
		CreatedAt:          formatTime(d.CreatedAt),
		UpdatedAt:          formatTime(d.UpdatedAt),
	}
}

func fromDraftItem(it draftItem) (entities.Draft, error) {
	var p timeParser
	d := entities.Draft{
		ID:                 it.ID,
		Category:           it.Category,
		Subcategory:        it.Subcategory,
		Description:        it.Description,
		CustomerID:         it.CustomerID,
		ProviderID:         it.ProviderID,
		CompanyID:          it.CompanyID,
		JobDateFrom:        p.at(it.JobDateFrom),
		JobDateTo:          p.at(it.JobDateTo),
		JobDurationHours:   it.JobDurationHours,
		PriceAmount:        it.PriceAmount,
		Currency:           it.Currency,
		BuyerServiceFee:    it.BuyerServiceFee,
		SellerCommission:   it.SellerCommission,
		Status:             entities.DraftStatus(it.Status),
		ConvertedToOrderID: it.ConvertedToOrderID,
		ConvertedAt:        p.ptr(it.ConvertedAt),
		Version:            it.Version,
		CreatedAt:          p.at(it.CreatedAt),
		UpdatedAt:          p.at(it.UpdatedAt),
	}
	return d, p.err
}

type escrowItem struct {
	ID                 string `dynamodbav:"id"`
	Amount             int64  `dynamodbav:"amount"`
	Currency           string `dynamodbav:"currency"`
	Status             string `dynamodbav:"status"`
	ProcessorReference string `dynamodbav:"processor_reference,omitempty"`
	FinalOrderID       string `dynamodbav:"final_order_id,omitempty"`
	Version            int64  `dynamodbav:"version"`
	CreatedAt          string `dynamodbav:"created_at"`
	UpdatedAt          string `dynamodbav:"updated_at"`
}

func toEscrowItem(e entities.Escrow) escrowItem {
	return escrowItem{
		ID:                 e.ID,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Status:             string(e.Status),
		ProcessorReference: e.ProcessorReference,
		FinalOrderID:       e.FinalOrderID,
		Version:            e.Version,
		CreatedAt:          formatTime(e.CreatedAt),
		UpdatedAt:          formatTime(e.UpdatedAt),
	}
}

func fromEscrowItem(it escrowItem) (entities.Escrow, error) {
	var p timeParser
	e := entities.Escrow{
		ID:                 it.ID,
		Amount:             it.Amount,
		Currency:           it.Currency,
		Status:             entities.EscrowStatus(it.Status),
		ProcessorReference: it.ProcessorReference,
		FinalOrderID:       it.FinalOrderID,
		Version:            it.Version,
		CreatedAt:          p.at(it.CreatedAt),
		UpdatedAt:          p.at(it.UpdatedAt),
	}
	return e, p.err
}

type orderItem struct {
	ID                   string  `dynamodbav:"id"`
	CustomerID           string  `dynamodbav:"customer_id"`
	ProviderID           string  `dynamodbav:"provider_id,omitempty"`
	CompanyID            string  `dynamodbav:"company_id,omitempty"`
	Category             string  `dynamodbav:"category"`
	Subcategory          string  `dynamodbav:"subcategory,omitempty"`
	Description          string  `dynamodbav:"description,omitempty"`
	JobDateFrom          string  `dynamodbav:"job_date_from,omitempty"`
	JobDateTo            string  `dynamodbav:"job_date_to,omitempty"`
	TotalCalculatedHours float64 `dynamodbav:"total_calculated_hours"`
	BaseAmount           int64   `dynamodbav:"base_amount"`
	AdditionalAmount     int64   `dynamodbav:"additional_amount"`
	TotalAmount          int64   `dynamodbav:"total_amount"`
	PlatformFee          int64   `dynamodbav:"platform_fee"`
	Currency             string  `dynamodbav:"currency"`
	Status               string  `dynamodbav:"status"`
	EscrowID             string  `dynamodbav:"escrow_id,omitempty"`
	SourceDraftID        string  `dynamodbav:"source_draft_id"`
	OpenStornoRequestID  string  `dynamodbav:"open_storno_request_id,omitempty"`
	PaidAt               string  `dynamodbav:"paid_at,omitempty"`
	ClearingEndsAt       string  `dynamodbav:"clearing_ends_at,omitempty"`
	SettledAmount        int64   `dynamodbav:"settled_amount"`
	RefundedAmount       int64   `dynamodbav:"refunded_amount"`
	SettledAt            string  `dynamodbav:"settled_at,omitempty"`
	Version              int64   `dynamodbav:"version"`
	CreatedAt            string  `dynamodbav:"created_at"`
	UpdatedAt            string  `dynamodbav:"updated_at"`
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		ProviderID:           o.ProviderID,
		CompanyID:            o.CompanyID,
		Category:             o.Category,
		Subcategory:          o.Subcategory,
		Description:          o.Description,
		JobDateFrom:          formatTime(o.JobDateFrom),
		JobDateTo:            formatTime(o.JobDateTo),
		TotalCalculatedHours: o.TotalCalculatedHours,
		BaseAmount:           o.BaseAmount,
		AdditionalAmount:     o.AdditionalAmount,
		TotalAmount:          o.TotalAmount,
		PlatformFee:          o.PlatformFee,
		Currency:             o.Currency,
		Status:               string(o.Status),
		EscrowID:             o.EscrowID,
		SourceDraftID:        o.SourceDraftID,
		OpenStornoRequestID:  o.OpenStornoRequestID,
		PaidAt:               formatTime(o.PaidAt),
		ClearingEndsAt:       formatTime(o.ClearingEndsAt),
		SettledAmount:        o.SettledAmount,
		RefundedAmount:       o.RefundedAmount,
		SettledAt:            formatTimePtr(o.SettledAt),
		Version:              o.Version,
		CreatedAt:            formatTime(o.CreatedAt),
		UpdatedAt:            formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	var p timeParser
	o := entities.Order{
		ID:                   it.ID,
		CustomerID:           it.CustomerID,
		ProviderID:           it.ProviderID,
		CompanyID:            it.CompanyID,
		Category:             it.Category,
		Subcategory:          it.Subcategory,
		Description:          it.Description,
		JobDateFrom:          p.at(it.JobDateFrom),
		JobDateTo:            p.at(it.JobDateTo),
		TotalCalculatedHours: it.TotalCalculatedHours,
		BaseAmount:           it.BaseAmount,
		AdditionalAmount:     it.AdditionalAmount,
		TotalAmount:          it.TotalAmount,
		PlatformFee:          it.PlatformFee,
		Currency:             it.Currency,
		Status:               entities.OrderStatus(it.Status),
		EscrowID:             it.EscrowID,
		SourceDraftID:        it.SourceDraftID,
		OpenStornoRequestID:  it.OpenStornoRequestID,
		PaidAt:               p.at(it.PaidAt),
		ClearingEndsAt:       p.at(it.ClearingEndsAt),
		SettledAmount:        it.SettledAmount,
		RefundedAmount:       it.RefundedAmount,
		SettledAt:            p.ptr(it.SettledAt),
		Version:              it.Version,
		CreatedAt:            p.at(it.CreatedAt),
		UpdatedAt:            p.at(it.UpdatedAt),
	}
	return o, p.err
}

type timeEntryItem struct {
	OrderID            string  `dynamodbav:"order_id"`
	ID                 string  `dynamodbav:"id"`
	ProviderID         string  `dynamodbav:"provider_id"`
	Hours              float64 `dynamodbav:"hours"`
	Amount             int64   `dynamodbav:"amount"`
	Description        string  `dynamodbav:"description,omitempty"`
	BillingStatus      string  `dynamodbav:"billing_status"`
	ProcessorPaymentID string  `dynamodbav:"processor_payment_id,omitempty"`
	CaptureStartedAt   string  `dynamodbav:"capture_started_at,omitempty"`
	CaptureAttempts    int     `dynamodbav:"capture_attempts"`
	LastCaptureError   string  `dynamodbav:"last_capture_error,omitempty"`
	RejectionReason    string  `dynamodbav:"rejection_reason,omitempty"`
	ApprovedAt         string  `dynamodbav:"approved_at,omitempty"`
	TransferredAt      string  `dynamodbav:"transferred_at,omitempty"`
	RejectedAt         string  `dynamodbav:"rejected_at,omitempty"`
	Version            int64   `dynamodbav:"version"`
	CreatedAt          string  `dynamodbav:"created_at"`
	UpdatedAt          string  `dynamodbav:"updated_at"`
}

func toTimeEntryItem(e entities.TimeEntry) timeEntryItem {
	return timeEntryItem{
		OrderID:            e.OrderID,
		ID:                 e.ID,
		ProviderID:         e.ProviderID,
		Hours:              e.Hours,
		Amount:             e.Amount,
		Description:        e.Description,
		BillingStatus:      string(e.Status),
		ProcessorPaymentID: e.ProcessorPaymentID,
		CaptureStartedAt:   formatTimePtr(e.CaptureStartedAt),
		CaptureAttempts:    e.CaptureAttempts,
		LastCaptureError:   e.LastCaptureError,
		RejectionReason:    e.RejectionReason,
		ApprovedAt:         formatTimePtr(e.ApprovedAt),
		TransferredAt:      formatTimePtr(e.TransferredAt),
		RejectedAt:         formatTimePtr(e.RejectedAt),
		Version:            e.Version,
		CreatedAt:          formatTime(e.CreatedAt),
		UpdatedAt:          formatTime(e.UpdatedAt),
	}
}

func fromTimeEntryItem(it timeEntryItem) (entities.TimeEntry, error) {
	var p timeParser
	e := entities.TimeEntry{
		ID:                 it.ID,
		OrderID:            it.OrderID,
		ProviderID:         it.ProviderID,
		Hours:              it.Hours,
		Amount:             it.Amount,
		Description:        it.Description,
		Status:             entities.BillingStatus(it.BillingStatus),
		ProcessorPaymentID: it.ProcessorPaymentID,
		CaptureStartedAt:   p.ptr(it.CaptureStartedAt),
		CaptureAttempts:    it.CaptureAttempts,
		LastCaptureError:   it.LastCaptureError,
		RejectionReason:    it.RejectionReason,
		ApprovedAt:         p.ptr(it.ApprovedAt),
		TransferredAt:      p.ptr(it.TransferredAt),
		RejectedAt:         p.ptr(it.RejectedAt),
		Version:            it.Version,
		CreatedAt:          p.at(it.CreatedAt),
		UpdatedAt:          p.at(it.UpdatedAt),
	}
	return e, p.err
}

type stornoRequestItem struct {
	ID                string `dynamodbav:"id"`
	OrderID           string `dynamodbav:"order_id"`
	ProviderID        string `dynamodbav:"provider_id,omitempty"`
	RequestedByKind   string `dynamodbav:"requested_by_kind"`
	RequestedByID     string `dynamodbav:"requested_by_id"`
	Reason            string `dynamodbav:"reason"`
	StornoType        string `dynamodbav:"storno_type"`
	Priority          string `dynamodbav:"priority"`
	Status            string `dynamodbav:"status"`
	ProvisionalRefund int64  `dynamodbav:"provisional_refund"`
	Currency          string `dynamodbav:"currency"`
	Outcome           string `dynamodbav:"outcome,omitempty"`
	RefundAmount      int64  `dynamodbav:"refund_amount"`
	RefundStartedAt   string `dynamodbav:"refund_started_at,omitempty"`
	AdminNotes        string `dynamodbav:"admin_notes,omitempty"`
	ReviewedBy        string `dynamodbav:"reviewed_by,omitempty"`
	ReviewedAt        string `dynamodbav:"reviewed_at,omitempty"`
	Version           int64  `dynamodbav:"version"`
	CreatedAt         string `dynamodbav:"created_at"`
	UpdatedAt         string `dynamodbav:"updated_at"`
}

func toStornoRequestItem(r entities.StornoRequest) stornoRequestItem {
	return stornoRequestItem{
		ID:                r.ID,
		OrderID:           r.OrderID,
		ProviderID:        r.ProviderID,
		RequestedByKind:   string(r.RequestedBy.Kind),
		RequestedByID:     r.RequestedBy.ID,
		Reason:            r.Reason,
		StornoType:        string(r.Type),
		Priority:          string(r.Priority),
		Status:            string(r.Status),
		ProvisionalRefund: r.ProvisionalRefund,
		Currency:          r.Currency,
		Outcome:           string(r.Outcome),
		RefundAmount:      r.RefundAmount,
		RefundStartedAt:   formatTimePtr(r.RefundStartedAt),
		AdminNotes:        r.AdminNotes,
		ReviewedBy:        r.ReviewedBy,
		ReviewedAt:        formatTimePtr(r.ReviewedAt),
		Version:           r.Version,
		CreatedAt:         formatTime(r.CreatedAt),
		UpdatedAt:         formatTime(r.UpdatedAt),
	}
}

func fromStornoRequestItem(it stornoRequestItem) (entities.StornoRequest, error) {
	var p timeParser
	r := entities.StornoRequest{
		ID:                it.ID,
		OrderID:           it.OrderID,
		ProviderID:        it.ProviderID,
		RequestedBy:       entities.Requester{Kind: entities.RequesterKind(it.RequestedByKind), ID: it.RequestedByID},
		Reason:            it.Reason,
		Type:              entities.StornoType(it.StornoType),
		Priority:          entities.StornoPriority(it.Priority),
		Status:            entities.StornoStatus(it.Status),
		ProvisionalRefund: it.ProvisionalRefund,
		Currency:          it.Currency,
		Outcome:           entities.StornoOutcome(it.Outcome),
		RefundAmount:      it.RefundAmount,
		RefundStartedAt:   p.ptr(it.RefundStartedAt),
		AdminNotes:        it.AdminNotes,
		ReviewedBy:        it.ReviewedBy,
		ReviewedAt:        p.ptr(it.ReviewedAt),
		Version:           it.Version,
		CreatedAt:         p.at(it.CreatedAt),
		UpdatedAt:         p.at(it.UpdatedAt),
	}
	return r, p.err
}

type providerStatsItem struct {
	ProviderID     string  `dynamodbav:"provider_id"`
	TotalOrders    int64   `dynamodbav:"total_orders"`
	StornoRequests int64   `dynamodbav:"storno_requests"`
	StornoRate     float64 `dynamodbav:"storno_rate"`
	IsBlocked      bool    `dynamodbav:"is_blocked"`
	BlockReason    string  `dynamodbav:"block_reason,omitempty"`
	BlockedAt      string  `dynamodbav:"blocked_at,omitempty"`
	UnblockedBy    string  `dynamodbav:"unblocked_by,omitempty"`
	Version        int64   `dynamodbav:"version"`
	CreatedAt      string  `dynamodbav:"created_at"`
	UpdatedAt      string  `dynamodbav:"updated_at"`
}

func toProviderStatsItem(s entities.ProviderStats) providerStatsItem {
	return providerStatsItem{
		ProviderID:     s.ProviderID,
		TotalOrders:    s.TotalOrders,
		StornoRequests: s.StornoRequests,
		StornoRate:     s.StornoRate,
		IsBlocked:      s.IsBlocked,
		BlockReason:    s.BlockReason,
		BlockedAt:      formatTimePtr(s.BlockedAt),
		UnblockedBy:    s.UnblockedBy,
		Version:        s.Version,
		CreatedAt:      formatTime(s.CreatedAt),
		UpdatedAt:      formatTime(s.UpdatedAt),
	}
}

func fromProviderStatsItem(it providerStatsItem) (entities.ProviderStats, error) {
	var p timeParser
	s := entities.ProviderStats{
		ProviderID:     it.ProviderID,
		TotalOrders:    it.TotalOrders,
		StornoRequests: it.StornoRequests,
		StornoRate:     it.StornoRate,
		IsBlocked:      it.IsBlocked,
		BlockReason:    it.BlockReason,
		BlockedAt:      p.ptr(it.BlockedAt),
		UnblockedBy:    it.UnblockedBy,
		Version:        it.Version,
		CreatedAt:      p.at(it.CreatedAt),
		UpdatedAt:      p.at(it.UpdatedAt),
	}
	return s, p.err
}

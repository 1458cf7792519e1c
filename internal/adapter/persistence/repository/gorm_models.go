package repository

import (
	"time"

	"marketplace_escrow/internal/domain/entities"
)

// Relational rows. Timestamps are kept in UTC and managed by the use cases,
// so gorm's automatic create/update time tracking is disabled.

type draftRow struct {
	ID                 string `gorm:"primaryKey;size:128"`
	Category           string `gorm:"not null"`
	Subcategory        string
	Description        string
	CustomerID         string `gorm:"not null;index"`
	ProviderID         string `gorm:"index"`
	CompanyID          string
	JobDateFrom        time.Time
	JobDateTo          time.Time
	JobDurationHours   float64
	PriceAmount        int64  `gorm:"not null"`
	Currency           string `gorm:"size:3;not null"`
	BuyerServiceFee    int64
	SellerCommission   int64
	Status             string `gorm:"not null"`
	ConvertedToOrderID string
	ConvertedAt        *time.Time
	Version            int64     `gorm:"not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (draftRow) TableName() string { return "drafts" }

type escrowRow struct {
	ID                 string `gorm:"primaryKey;size:128"`
	Amount             int64  `gorm:"not null"`
	Currency           string `gorm:"size:3;not null"`
	Status             string `gorm:"not null"`
	ProcessorReference string
	FinalOrderID       string
	Version            int64     `gorm:"not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (escrowRow) TableName() string { return "escrows" }

type orderRow struct {
	ID                   string `gorm:"primaryKey;size:64"`
	CustomerID           string `gorm:"not null;index"`
	ProviderID           string `gorm:"index"`
	CompanyID            string
	Category             string
	Subcategory          string
	Description          string
	JobDateFrom          time.Time
	JobDateTo            time.Time
	TotalCalculatedHours float64
	BaseAmount           int64  `gorm:"not null"`
	AdditionalAmount     int64  `gorm:"not null"`
	TotalAmount          int64  `gorm:"not null"`
	PlatformFee          int64  `gorm:"not null"`
	Currency             string `gorm:"size:3;not null"`
	Status               string `gorm:"not null;index:idx_orders_clearing,priority:1"`
	EscrowID             string
	SourceDraftID        string `gorm:"not null;uniqueIndex"`
	OpenStornoRequestID  string
	PaidAt               time.Time
	ClearingEndsAt       time.Time `gorm:"index:idx_orders_clearing,priority:2"`
	SettledAmount        int64
	RefundedAmount       int64
	SettledAt            *time.Time
	Version              int64     `gorm:"not null"`
	CreatedAt            time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime:false"`
}

func (orderRow) TableName() string { return "orders" }

type timeEntryRow struct {
	ID                 string `gorm:"primaryKey;size:64"`
	OrderID            string `gorm:"not null;index"`
	ProviderID         string
	Hours              float64
	Amount             int64 `gorm:"not null"`
	Description        string
	BillingStatus      string `gorm:"not null"`
	ProcessorPaymentID string
	CaptureStartedAt   *time.Time
	CaptureAttempts    int
	LastCaptureError   string
	RejectionReason    string
	ApprovedAt         *time.Time
	TransferredAt      *time.Time
	RejectedAt         *time.Time
	Version            int64     `gorm:"not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (timeEntryRow) TableName() string { return "time_entries" }

type stornoRequestRow struct {
	ID                string `gorm:"primaryKey;size:64"`
	OrderID           string `gorm:"not null;index"`
	ProviderID        string `gorm:"index"`
	RequestedByKind   string `gorm:"not null"`
	RequestedByID     string `gorm:"not null"`
	Reason            string
	StornoType        string
	Priority          string
	Status            string `gorm:"not null;index"`
	ProvisionalRefund int64
	Currency          string `gorm:"size:3"`
	Outcome           string
	RefundAmount      int64
	RefundStartedAt   *time.Time
	AdminNotes        string
	ReviewedBy        string
	ReviewedAt        *time.Time
	Version           int64     `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
}

func (stornoRequestRow) TableName() string { return "storno_requests" }

type providerStatsRow struct {
	ProviderID     string `gorm:"primaryKey;size:128"`
	TotalOrders    int64
	StornoRequests int64
	StornoRate     float64
	IsBlocked      bool
	BlockReason    string
	BlockedAt      *time.Time
	UnblockedBy    string
	Version        int64     `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (providerStatsRow) TableName() string { return "provider_stats" }

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func toDraftRow(d entities.Draft) draftRow {
	return draftRow{
		ID:                 d.ID,
		Category:           d.Category,
		Subcategory:        d.Subcategory,
		Description:        d.Description,
		CustomerID:         d.CustomerID,
		ProviderID:         d.ProviderID,
		CompanyID:          d.CompanyID,
		JobDateFrom:        utc(d.JobDateFrom),
		JobDateTo:          utc(d.JobDateTo),
		JobDurationHours:   d.JobDurationHours,
		PriceAmount:        d.PriceAmount,
		Currency:           d.Currency,
		BuyerServiceFee:    d.BuyerServiceFee,
		SellerCommission:   d.SellerCommission,
		Status:             string(d.Status),
		ConvertedToOrderID: d.ConvertedToOrderID,
		ConvertedAt:        utcPtr(d.ConvertedAt),
		Version:            d.Version,
		CreatedAt:          utc(d.CreatedAt),
		UpdatedAt:          utc(d.UpdatedAt),
	}
}

func fromDraftRow(r draftRow) entities.Draft {
	return entities.Draft{
		ID:                 r.ID,
		Category:           r.Category,
		Subcategory:        r.Subcategory,
		Description:        r.Description,
		CustomerID:         r.CustomerID,
		ProviderID:         r.ProviderID,
		CompanyID:          r.CompanyID,
		JobDateFrom:        utc(r.JobDateFrom),
		JobDateTo:          utc(r.JobDateTo),
		JobDurationHours:   r.JobDurationHours,
		PriceAmount:        r.PriceAmount,
		Currency:           r.Currency,
		BuyerServiceFee:    r.BuyerServiceFee,
		SellerCommission:   r.SellerCommission,
		Status:             entities.DraftStatus(r.Status),
		ConvertedToOrderID: r.ConvertedToOrderID,
		ConvertedAt:        utcPtr(r.ConvertedAt),
		Version:            r.Version,
		CreatedAt:          utc(r.CreatedAt),
		UpdatedAt:          utc(r.UpdatedAt),
	}
}

func toEscrowRow(e entities.Escrow) escrowRow {
	return escrowRow{
		ID:                 e.ID,
		Amount:             e.Amount,
		Currency:           e.Currency,
		Status:             string(e.Status),
		ProcessorReference: e.ProcessorReference,
		FinalOrderID:       e.FinalOrderID,
		Version:            e.Version,
		CreatedAt:          utc(e.CreatedAt),
		UpdatedAt:          utc(e.UpdatedAt),
	}
}

func fromEscrowRow(r escrowRow) entities.Escrow {
	return entities.Escrow{
		ID:                 r.ID,
		Amount:             r.Amount,
		Currency:           r.Currency,
		Status:             entities.EscrowStatus(r.Status),
		ProcessorReference: r.ProcessorReference,
		FinalOrderID:       r.FinalOrderID,
		Version:            r.Version,
		CreatedAt:          utc(r.CreatedAt),
		UpdatedAt:          utc(r.UpdatedAt),
	}
}

func toOrderRow(o entities.Order) orderRow {
	return orderRow{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		ProviderID:           o.ProviderID,
		CompanyID:            o.CompanyID,
		Category:             o.Category,
		Subcategory:          o.Subcategory,
		Description:          o.Description,
		JobDateFrom:          utc(o.JobDateFrom),
		JobDateTo:            utc(o.JobDateTo),
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
		PaidAt:               utc(o.PaidAt),
		ClearingEndsAt:       utc(o.ClearingEndsAt),
		SettledAmount:        o.SettledAmount,
		RefundedAmount:       o.RefundedAmount,
		SettledAt:            utcPtr(o.SettledAt),
		Version:              o.Version,
		CreatedAt:            utc(o.CreatedAt),
		UpdatedAt:            utc(o.UpdatedAt),
	}
}

func fromOrderRow(r orderRow) entities.Order {
	return entities.Order{
		ID:                   r.ID,
		CustomerID:           r.CustomerID,
		ProviderID:           r.ProviderID,
		CompanyID:            r.CompanyID,
		Category:             r.Category,
		Subcategory:          r.Subcategory,
		Description:          r.Description,
		JobDateFrom:          utc(r.JobDateFrom),
		JobDateTo:            utc(r.JobDateTo),
		TotalCalculatedHours: r.TotalCalculatedHours,
		BaseAmount:           r.BaseAmount,
		AdditionalAmount:     r.AdditionalAmount,
		TotalAmount:          r.TotalAmount,
		PlatformFee:          r.PlatformFee,
		Currency:             r.Currency,
		Status:               entities.OrderStatus(r.Status),
		EscrowID:             r.EscrowID,
		SourceDraftID:        r.SourceDraftID,
		OpenStornoRequestID:  r.OpenStornoRequestID,
		PaidAt:               utc(r.PaidAt),
		ClearingEndsAt:       utc(r.ClearingEndsAt),
		SettledAmount:        r.SettledAmount,
		RefundedAmount:       r.RefundedAmount,
		SettledAt:            utcPtr(r.SettledAt),
		Version:              r.Version,
		CreatedAt:            utc(r.CreatedAt),
		UpdatedAt:            utc(r.UpdatedAt),
	}
}

func toTimeEntryRow(e entities.TimeEntry) timeEntryRow {
	return timeEntryRow{
		ID:                 e.ID,
		OrderID:            e.OrderID,
		ProviderID:         e.ProviderID,
		Hours:              e.Hours,
		Amount:             e.Amount,
		Description:        e.Description,
		BillingStatus:      string(e.Status),
		ProcessorPaymentID: e.ProcessorPaymentID,
		CaptureStartedAt:   utcPtr(e.CaptureStartedAt),
		CaptureAttempts:    e.CaptureAttempts,
		LastCaptureError:   e.LastCaptureError,
		RejectionReason:    e.RejectionReason,
		ApprovedAt:         utcPtr(e.ApprovedAt),
		TransferredAt:      utcPtr(e.TransferredAt),
		RejectedAt:         utcPtr(e.RejectedAt),
		Version:            e.Version,
		CreatedAt:          utc(e.CreatedAt),
		UpdatedAt:          utc(e.UpdatedAt),
	}
}

func fromTimeEntryRow(r timeEntryRow) entities.TimeEntry {
	return entities.TimeEntry{
		ID:                 r.ID,
		OrderID:            r.OrderID,
		ProviderID:         r.ProviderID,
		Hours:              r.Hours,
		Amount:             r.Amount,
		Description:        r.Description,
		Status:             entities.BillingStatus(r.BillingStatus),
		ProcessorPaymentID: r.ProcessorPaymentID,
		CaptureStartedAt:   utcPtr(r.CaptureStartedAt),
		CaptureAttempts:    r.CaptureAttempts,
		LastCaptureError:   r.LastCaptureError,
		RejectionReason:    r.RejectionReason,
		ApprovedAt:         utcPtr(r.ApprovedAt),
		TransferredAt:      utcPtr(r.TransferredAt),
		RejectedAt:         utcPtr(r.RejectedAt),
		Version:            r.Version,
		CreatedAt:          utc(r.CreatedAt),
		UpdatedAt:          utc(r.UpdatedAt),
	}
}

func toStornoRequestRow(s entities.StornoRequest) stornoRequestRow {
	return stornoRequestRow{
		ID:                s.ID,
		OrderID:           s.OrderID,
		ProviderID:        s.ProviderID,
		RequestedByKind:   string(s.RequestedBy.Kind),
		RequestedByID:     s.RequestedBy.ID,
		Reason:            s.Reason,
		StornoType:        string(s.Type),
		Priority:          string(s.Priority),
		Status:            string(s.Status),
		ProvisionalRefund: s.ProvisionalRefund,
		Currency:          s.Currency,
		Outcome:           string(s.Outcome),
		RefundAmount:      s.RefundAmount,
		RefundStartedAt:   utcPtr(s.RefundStartedAt),
		AdminNotes:        s.AdminNotes,
		ReviewedBy:        s.ReviewedBy,
		ReviewedAt:        utcPtr(s.ReviewedAt),
		Version:           s.Version,
		CreatedAt:         utc(s.CreatedAt),
		UpdatedAt:         utc(s.UpdatedAt),
	}
}

func fromStornoRequestRow(r stornoRequestRow) entities.StornoRequest {
	return entities.StornoRequest{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ProviderID: r.ProviderID,
		RequestedBy: entities.Requester{
			Kind: entities.RequesterKind(r.RequestedByKind),
			ID:   r.RequestedByID,
		},
		Reason:            r.Reason,
		Type:              entities.StornoType(r.StornoType),
		Priority:          entities.StornoPriority(r.Priority),
		Status:            entities.StornoStatus(r.Status),
		ProvisionalRefund: r.ProvisionalRefund,
		Currency:          r.Currency,
		Outcome:           entities.StornoOutcome(r.Outcome),
		RefundAmount:      r.RefundAmount,
		RefundStartedAt:   utcPtr(r.RefundStartedAt),
		AdminNotes:        r.AdminNotes,
		ReviewedBy:        r.ReviewedBy,
		ReviewedAt:        utcPtr(r.ReviewedAt),
		Version:           r.Version,
		CreatedAt:         utc(r.CreatedAt),
		UpdatedAt:         utc(r.UpdatedAt),
	}
}

func toProviderStatsRow(s entities.ProviderStats) providerStatsRow {
	return providerStatsRow{
		ProviderID:     s.ProviderID,
		TotalOrders:    s.TotalOrders,
		StornoRequests: s.StornoRequests,
		StornoRate:     s.StornoRate,
		IsBlocked:      s.IsBlocked,
		BlockReason:    s.BlockReason,
		BlockedAt:      utcPtr(s.BlockedAt),
		UnblockedBy:    s.UnblockedBy,
		Version:        s.Version,
		CreatedAt:      utc(s.CreatedAt),
		UpdatedAt:      utc(s.UpdatedAt),
	}
}

func fromProviderStatsRow(r providerStatsRow) entities.ProviderStats {
	return entities.ProviderStats{
		ProviderID:     r.ProviderID,
		TotalOrders:    r.TotalOrders,
		StornoRequests: r.StornoRequests,
		StornoRate:     r.StornoRate,
		IsBlocked:      r.IsBlocked,
		BlockReason:    r.BlockReason,
		BlockedAt:      utcPtr(r.BlockedAt),
		UnblockedBy:    r.UnblockedBy,
		Version:        r.Version,
		CreatedAt:      utc(r.CreatedAt),
		UpdatedAt:      utc(r.UpdatedAt),
	}
}

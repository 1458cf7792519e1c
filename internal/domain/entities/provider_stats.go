package entities

import (
	"fmt"
	"time"
)

// ProviderStats is the cancellation-abuse aggregate of a provider.
//
// Storage model (DynamoDB):
//   - PK: provider_id
//
// The record is updated inside the same transaction as the event that changes it.
type ProviderStats struct {
	ProviderID     string     `json:"provider_id"`
	TotalOrders    int64      `json:"total_orders"`
	StornoRequests int64      `json:"storno_requests"`
	StornoRate     float64    `json:"storno_rate"`
	IsBlocked      bool       `json:"is_blocked"`
	BlockReason    string     `json:"block_reason,omitempty"`
	BlockedAt      *time.Time `json:"blocked_at,omitempty"`
	UnblockedBy    string     `json:"unblocked_by,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recompute refreshes StornoRate and applies the auto-block threshold.
// It returns true when this call flipped the provider to blocked.
// Blocking is sticky: only an explicit unblock clears it.
func (s *ProviderStats) Recompute(threshold float64, now time.Time) bool {
	if s.TotalOrders > 0 {
		s.StornoRate = float64(s.StornoRequests) / float64(s.TotalOrders) * 100
	} else {
		s.StornoRate = 0
	}
	if s.IsBlocked || s.StornoRate < threshold {
		return false
	}
	s.IsBlocked = true
	s.BlockReason = fmt.Sprintf("storno rate %.1f%% reached threshold %.0f%%", s.StornoRate, threshold)
	s.BlockedAt = &now
	s.UnblockedBy = ""
	return true
}

package response

import (
	"testing"
	"time"

	"marketplace_escrow/internal/domain/entities"
)

func TestFromDraft(t *testing.T) {
	now := time.Now().UTC()
	res := FromDraft(entities.Draft{
		ID:              "d-1",
		CustomerID:      "cust-1",
		PriceAmount:     10000,
		BuyerServiceFee: 500,
		Currency:        "EUR",
		Status:          entities.DraftStatusOpen,
		CreatedAt:       now,
	})

	if res.ID != "d-1" || res.Status != "open" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.CheckoutTotal != 10500 {
		t.Fatalf("expected checkout total 10500, got %d", res.CheckoutTotal)
	}
	if !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
}

func TestFromOrder(t *testing.T) {
	res := FromOrder(entities.Order{
		ID:                  "ord-1",
		Status:              entities.OrderStatusDisputed,
		BaseAmount:          10000,
		TotalAmount:         13000,
		OpenStornoRequestID: "st-1",
	})

	if res.Status != "disputed" || res.OpenStornoRequestID != "st-1" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
	if res.BaseAmount != 10000 || res.TotalAmount != 13000 {
		t.Fatalf("unexpected amounts: %+v", res)
	}
}

func TestFromStornoRequest(t *testing.T) {
	res := FromStornoRequest(entities.StornoRequest{
		ID:          "st-1",
		RequestedBy: entities.Requester{Kind: entities.RequesterProvider, ID: "prov-1"},
		Type:        entities.StornoTypeDeliveryDelay,
		Status:      entities.StornoStatusPending,
	})

	if res.RequestedByKind != "provider" || res.RequestedByID != "prov-1" {
		t.Fatalf("unexpected requester: %+v", res)
	}
	if res.StornoType != "delivery_delay" || res.Status != "pending" {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
}

func TestNewListResponse(t *testing.T) {
	list := NewListResponse([]entities.TimeEntry{{ID: "e-1", Status: entities.BillingStatusApproved}, {ID: "e-2"}}, FromTimeEntry)
	if list.Count != 2 || list.Items[0].BillingStatus != "approved" {
		t.Fatalf("unexpected list: %+v", list)
	}

	empty := NewListResponse(nil, FromProviderStats)
	if empty.Items == nil || empty.Count != 0 {
		t.Fatalf("expected empty non-nil items: %+v", empty)
	}
}

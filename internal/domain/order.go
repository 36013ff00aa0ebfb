// Package domain defines the order types shared by the store, the receipt
// renderer and the HTTP boundary.
//
// An Order is the immutable payload as submitted by the storefront; an
// OrderRecord is the stored, status-tracked wrapper around it. Monetary
// values use shopspring/decimal so that totals compare exactly and the
// receipt always prints with two decimal places, independent of any
// float rounding.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a single line of an order. JSON field names are part of the
// storefront contract and must not change.
type OrderItem struct {
	Qty        int             `json:"qty"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"price"`
	Exclusions []string        `json:"exclusions,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// Order is the customer-submitted purchase payload. It is immutable after
// creation: the store persists it verbatim and nothing mutates it later.
type Order struct {
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	Total         decimal.Decimal `json:"total"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	OrderNote     string          `json:"orderNote,omitempty"`
}

// OrderRecord is the stored entity owned by the order store.
// PrintedAt is non-nil iff Status is StatusPrinted.
type OrderRecord struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	Status    Status     `json:"status"`
	PrintedAt *time.Time `json:"printedAt,omitempty"`
	Order     Order      `json:"order"`
}

// ValidationError reports which order field failed validation and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order: %s: %s", e.Field, e.Reason)
}

// Validate checks the submission invariants at the ingestion boundary:
// non-empty customer info, at least one well-formed item, non-negative
// amounts, and total == subtotal + deliveryFee. The arithmetic check is
// decimal-exact; a payload whose totals don't add up is rejected rather
// than printed with numbers that disagree.
func (o Order) Validate() error {
	if o.CustomerName == "" {
		return &ValidationError{Field: "customerName", Reason: "must not be empty"}
	}
	if o.CustomerPhone == "" {
		return &ValidationError{Field: "customerPhone", Reason: "must not be empty"}
	}
	if len(o.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "at least one item is required"}
	}
	for i, it := range o.Items {
		if it.Qty <= 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].qty", i), Reason: "must be positive"}
		}
		if it.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("items[%d].name", i), Reason: "must not be empty"}
		}
		if it.UnitPrice.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].price", i), Reason: "must not be negative"}
		}
	}
	if o.Subtotal.IsNegative() {
		return &ValidationError{Field: "subtotal", Reason: "must not be negative"}
	}
	if o.DeliveryFee.IsNegative() {
		return &ValidationError{Field: "deliveryFee", Reason: "must not be negative"}
	}
	if o.Total.IsNegative() {
		return &ValidationError{Field: "total", Reason: "must not be negative"}
	}
	if !o.Total.Equal(o.Subtotal.Add(o.DeliveryFee)) {
		return &ValidationError{Field: "total", Reason: "must equal subtotal + deliveryFee"}
	}
	return nil
}

package httpx

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carlaolanches/printer-server/internal/domain"
)

// createOrderEnvelope is the storefront submission format:
// {"action": "create_order", "order": {...}}.
type createOrderEnvelope struct {
	Action string        `json:"action"`
	Order  *domain.Order `json:"order"`
}

type createOrderResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// orderSummary is the list-view projection of a record.
type orderSummary struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"createdAt"`
	Status       domain.Status   `json:"status"`
	PrintedAt    *time.Time      `json:"printedAt,omitempty"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"itemCount"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapRecordToSummary(rec domain.OrderRecord) orderSummary {
	return orderSummary{
		ID:           rec.ID,
		CreatedAt:    rec.CreatedAt,
		Status:       rec.Status,
		PrintedAt:    rec.PrintedAt,
		CustomerName: rec.Order.CustomerName,
		Total:        rec.Order.Total,
		ItemCount:    len(rec.Order.Items),
	}
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() Order {
	return Order{
		Items: []OrderItem{
			{Qty: 2, Name: "Burger", UnitPrice: decimal.RequireFromString("12.50")},
		},
		Subtotal:      decimal.RequireFromString("25.00"),
		DeliveryFee:   decimal.RequireFromString("5.00"),
		Total:         decimal.RequireFromString("30.00"),
		CustomerName:  "Ana",
		CustomerPhone: "5599999",
	}
}

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Order)
		wantField string
	}{
		{
			name:   "valid order: ok",
			mutate: func(o *Order) {},
		},
		{
			name: "valid order without delivery fee: ok",
			mutate: func(o *Order) {
				o.DeliveryFee = decimal.Zero
				o.Total = o.Subtotal
			},
		},
		{
			name:      "empty customer name: fail",
			mutate:    func(o *Order) { o.CustomerName = "" },
			wantField: "customerName",
		},
		{
			name:      "empty customer phone: fail",
			mutate:    func(o *Order) { o.CustomerPhone = "" },
			wantField: "customerPhone",
		},
		{
			name:      "no items: fail",
			mutate:    func(o *Order) { o.Items = nil },
			wantField: "items",
		},
		{
			name:      "zero quantity: fail",
			mutate:    func(o *Order) { o.Items[0].Qty = 0 },
			wantField: "items[0].qty",
		},
		{
			name:      "empty item name: fail",
			mutate:    func(o *Order) { o.Items[0].Name = "" },
			wantField: "items[0].name",
		},
		{
			name:      "negative unit price: fail",
			mutate:    func(o *Order) { o.Items[0].UnitPrice = decimal.RequireFromString("-1") },
			wantField: "items[0].price",
		},
		{
			name:      "negative delivery fee: fail",
			mutate:    func(o *Order) { o.DeliveryFee = decimal.RequireFromString("-5") },
			wantField: "deliveryFee",
		},
		{
			name:      "total does not add up: fail",
			mutate:    func(o *Order) { o.Total = decimal.RequireFromString("31.00") },
			wantField: "total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			tt.mutate(&o)

			err := o.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestOrderJSONCarriesDeliveryFee(t *testing.T) {
	o := validOrder()
	o.DeliveryFee = decimal.Zero
	o.Total = o.Subtotal

	// A zero fee is still part of the payload: the storefront relies on
	// the field being present.
	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"deliveryFee"`)
}

func TestToStatus(t *testing.T) {
	status, err := ToStatus("pendente")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)

	status, err = ToStatus("impresso")
	require.NoError(t, err)
	assert.Equal(t, StatusPrinted, status)

	_, err = ToStatus("shipped")
	require.Error(t, err)
}

package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlaolanches/printer-server/internal/domain"
	"github.com/carlaolanches/printer-server/internal/store"
)

func TestMemoryContract(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	order := domain.Order{
		Items:         []domain.OrderItem{{Qty: 1, Name: "Coxinha", UnitPrice: decimal.RequireFromString("8.00")}},
		Subtotal:      decimal.RequireFromString("8.00"),
		Total:         decimal.RequireFromString("8.00"),
		CustomerName:  "Bruno",
		CustomerPhone: "5588888",
	}

	first, err := m.Create(ctx, order)
	require.NoError(t, err)
	second, err := m.Create(ctx, order)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	records, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)

	printed, err := m.MarkPrinted(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPrinted, printed.Status)
	require.NotNil(t, printed.PrintedAt)

	_, err = m.MarkPrinted(ctx, first.ID)
	require.ErrorIs(t, err, store.ErrAlreadyPrinted)

	_, err = m.Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlaolanches/printer-server/internal/domain"
	"github.com/carlaolanches/printer-server/internal/store"
	"github.com/carlaolanches/printer-server/internal/store/sqlite"
)

func openStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "orders.db")
	st, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func randomOrder() domain.Order {
	qty := gofakeit.Number(1, 5)
	price := decimal.NewFromInt(int64(gofakeit.Number(100, 5000))).Div(decimal.NewFromInt(100))
	subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
	fee := decimal.NewFromInt(int64(gofakeit.Number(0, 1000))).Div(decimal.NewFromInt(100))

	return domain.Order{
		Items: []domain.OrderItem{
			{Qty: qty, Name: gofakeit.ProductName(), UnitPrice: price},
		},
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Total:         subtotal.Add(fee),
		CustomerName:  gofakeit.Name(),
		CustomerPhone: gofakeit.Phone(),
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	st, _ := openStore(t)
	ctx := context.Background()

	order := randomOrder()
	created, err := st.Create(ctx, order)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Nil(t, created.PrintedAt)

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)

	// decimal.Decimal needs Equal-based comparison, not struct equality.
	diff := cmp.Diff(order, got.Order, decimalComparer())
	assert.Empty(t, diff)
}

func TestGetUnknownID(t *testing.T) {
	st, _ := openStore(t)

	_, err := st.Get(context.Background(), "no-such-id")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	st, _ := openStore(t)
	ctx := context.Background()

	first, err := st.Create(ctx, randomOrder())
	require.NoError(t, err)
	second, err := st.Create(ctx, randomOrder())
	require.NoError(t, err)
	third, err := st.Create(ctx, randomOrder())
	require.NoError(t, err)

	records, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, third.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
	assert.Equal(t, first.ID, records[2].ID)
}

func TestMarkPrintedOnce(t *testing.T) {
	st, _ := openStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, randomOrder())
	require.NoError(t, err)

	printed, err := st.MarkPrinted(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPrinted, printed.Status)
	require.NotNil(t, printed.PrintedAt)

	// Second call must surface the invalid transition, never double-apply.
	_, err = st.MarkPrinted(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrAlreadyPrinted)

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPrinted, got.Status)
	require.NotNil(t, got.PrintedAt)
	assert.Equal(t, *printed.PrintedAt, *got.PrintedAt)
}

func TestMarkPrintedUnknownID(t *testing.T) {
	st, _ := openStore(t)

	_, err := st.MarkPrinted(context.Background(), "no-such-id")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDurabilityAcrossReopen(t *testing.T) {
	st, path := openStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, randomOrder())
	require.NoError(t, err)
	_, err = st.MarkPrinted(ctx, created.ID)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPrinted, got.Status)
	assert.NotNil(t, got.PrintedAt)
}

func decimalComparer() cmp.Option {
	return cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
}

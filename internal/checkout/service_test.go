package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeSaleStore struct {
	sales    map[string]*v1.Sale
	countErr error
	saveErr  error
}

func newFakeSaleStore() *fakeSaleStore {
	return &fakeSaleStore{sales: map[string]*v1.Sale{}}
}

func (f *fakeSaleStore) SaveSale(_ context.Context, sale *v1.Sale) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.sales[sale.ID]; ok {
		return storage.ErrDuplicate
	}
	sale.IngestSeq = int64(len(f.sales) + 1)
	f.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleStore) UpdateSaleLines(_ context.Context, id string, lines []v1.LineItem, total decimal.Decimal) error {
	s, ok := f.sales[id]
	if !ok {
		return storage.ErrNotFound
	}
	s.LineItems = lines
	s.Total = &total
	return nil
}

func (f *fakeSaleStore) CountSales(_ context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.sales)), nil
}

func (f *fakeSaleStore) RetrieveSalesAfterCursor(_ context.Context, _ int64, _ int) ([]*v1.Sale, error) {
	return nil, nil
}

func (f *fakeSaleStore) Ping(_ context.Context) error { return nil }

func testService(store storage.SaleStore) *Service {
	svc := NewService(store, 1)
	svc.nowFn = func() time.Time {
		return time.Date(2024, 5, 12, 14, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestService_Checkout(t *testing.T) {
	store := newFakeSaleStore()
	svc := testService(store)

	cart := NewCart()
	cart.AddQuantity("Arroz", decimal.NewFromInt(20), 2)
	cart.Add("Leche Entera", decimal.NewFromInt(25))

	sale, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)
	require.NotEmpty(t, sale.ID)
	require.Equal(t, "Cliente 1", sale.CustomerName)
	require.Equal(t, "2024-05-12T14:30:00", sale.Timestamp)
	require.NotNil(t, sale.Total)
	require.Equal(t, "65.00", sale.Total.StringFixed(2))
	require.Len(t, sale.LineItems, 2)
	require.Contains(t, store.sales, sale.ID)
}

func TestService_CheckoutSequentialCustomerLabels(t *testing.T) {
	store := newFakeSaleStore()
	svc := testService(store)

	for i, want := range []string{"Cliente 1", "Cliente 2", "Cliente 3"} {
		cart := NewCart()
		cart.Add("Arroz", decimal.NewFromInt(20))
		sale, err := svc.Checkout(context.Background(), cart)
		require.NoError(t, err, "sale %d", i)
		require.Equal(t, want, sale.CustomerName)
	}
}

func TestService_CheckoutEmptyCart(t *testing.T) {
	svc := testService(newFakeSaleStore())

	_, err := svc.Checkout(context.Background(), NewCart())
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.Checkout(context.Background(), nil)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestService_CheckoutCountFailure(t *testing.T) {
	store := newFakeSaleStore()
	store.countErr = errors.New("connection refused")
	svc := testService(store)

	cart := NewCart()
	cart.Add("Arroz", decimal.NewFromInt(20))

	_, err := svc.Checkout(context.Background(), cart)
	require.Error(t, err)
	require.Empty(t, store.sales)
}

func TestService_EditLinesRecomputesTotal(t *testing.T) {
	store := newFakeSaleStore()
	svc := testService(store)

	cart := NewCart()
	cart.Add("Arroz", decimal.NewFromInt(20))
	sale, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)

	total, err := svc.EditLines(context.Background(), sale.ID, []v1.LineItem{
		{ProductName: "Arroz", UnitPrice: decimal.NewFromInt(20), Quantity: 3},
		{ProductName: "Cloro", UnitPrice: decimal.NewFromInt(15), Quantity: 1},
	})
	require.NoError(t, err)
	require.Equal(t, "75.00", total.StringFixed(2))

	stored := store.sales[sale.ID]
	require.Len(t, stored.LineItems, 2)
	require.Equal(t, "75.00", stored.Total.StringFixed(2))
}

func TestService_EditLinesUnknownSale(t *testing.T) {
	svc := testService(newFakeSaleStore())

	_, err := svc.EditLines(context.Background(), "missing", []v1.LineItem{
		{ProductName: "Arroz", UnitPrice: decimal.NewFromInt(20), Quantity: 1},
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_EditLinesRejectsInvalidLines(t *testing.T) {
	svc := testService(newFakeSaleStore())

	_, err := svc.EditLines(context.Background(), "s1", []v1.LineItem{
		{ProductName: "", UnitPrice: decimal.NewFromInt(20), Quantity: 1},
	})
	require.Error(t, err)
}

package analysis

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory SaleStore for service tests.
type memStore struct {
	mu      sync.Mutex
	sales   []*v1.Sale
	failing bool
}

func (m *memStore) SaveSale(_ context.Context, sale *v1.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sale.IngestSeq = int64(len(m.sales) + 1)
	m.sales = append(m.sales, sale)
	return nil
}

func (m *memStore) setFailing(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = v
}

func (m *memStore) UpdateSaleLines(_ context.Context, id string, lines []v1.LineItem, total decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sales {
		if s.ID == id {
			s.LineItems = lines
			s.Total = &total
			return nil
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) CountSales(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sales)), nil
}

func (m *memStore) RetrieveSalesAfterCursor(_ context.Context, cursor int64, limit int) ([]*v1.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, errors.New("connection refused")
	}
	var page []*v1.Sale
	for _, s := range m.sales {
		if s.IngestSeq > cursor {
			page = append(page, s)
		}
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func (m *memStore) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("connection refused")
	}
	return nil
}

func newTestService(store storage.SaleStore) *Service {
	return NewService(store, fixedPipeline(10), 2, "")
}

func TestService_RunProducesReport(t *testing.T) {
	store := &memStore{}
	for _, s := range []*v1.Sale{
		saleAt("s1", "Cliente 1", "2024-01-01T09:00:00", dec("10.00")),
		saleAt("s2", "Cliente 2", "2024-01-01T12:00:00", dec("20.00")),
		saleAt("s3", "Cliente 3", "2024-01-02T10:00:00", dec("30.00")),
	} {
		require.NoError(t, store.SaveSale(context.Background(), s))
	}

	svc := newTestService(store)
	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, report, "Total records: 3")

	// Page size 2 forces multiple cursor fetches; the snapshot still covers
	// every record.
	require.Contains(t, report, "   - To: 2024-01-02")

	last, at, ok := svc.LastReport()
	require.True(t, ok)
	require.Equal(t, report, last)
	require.False(t, at.IsZero())
}

func TestService_RunStoreDown(t *testing.T) {
	svc := newTestService(&memStore{failing: true})

	_, err := svc.Run(context.Background())
	require.Error(t, err)

	var connErr *ConnectivityError
	require.ErrorAs(t, err, &connErr)
	require.Contains(t, err.Error(), "Check that:")
	require.Contains(t, err.Error(), "1. PostgreSQL is running")

	_, _, ok := svc.LastReport()
	require.False(t, ok)
}

func TestService_ExportBeforeRun(t *testing.T) {
	svc := newTestService(&memStore{})

	var buf bytes.Buffer
	err := svc.ExportTo(&buf)
	require.ErrorIs(t, err, ErrNoResults)
	require.Zero(t, buf.Len())
}

func TestService_ExportAfterRun(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.SaveSale(context.Background(),
		saleAt("s1", "Cliente 1", "2024-01-01T09:00:00", dec("10.00"))))

	svc := newTestService(store)
	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportTo(&buf))
	require.Contains(t, buf.String(), "Total records,1\n")
}

func TestService_ExportFile(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.SaveSale(context.Background(),
		saleAt("s1", "Cliente 1", "2024-01-01T09:00:00", dec("10.00"))))

	path := t.TempDir() + "/analisis_supermercado.csv"
	svc := NewService(store, fixedPipeline(10), 0, path)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	got, err := svc.ExportFile()
	require.NoError(t, err)
	require.Equal(t, path, got)
}

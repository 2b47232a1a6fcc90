package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCatalogAdapter_ListAreas(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryListAreas)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Abarrotes").
			AddRow(int64(6), "Bebidas"))

	areas, err := NewCatalogAdapter(db).ListAreas(context.Background())
	require.NoError(t, err)
	require.Equal(t, []v1.Area{
		{ID: 1, Name: "Abarrotes"},
		{ID: 6, Name: "Bebidas"},
	}, areas)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogAdapter_ListProductsByArea(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryListProductsByArea)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "area_id"}).
			AddRow(int64(10), "Arroz", "20.00", int64(1)))

	products, err := NewCatalogAdapter(db).ListProductsByArea(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Arroz", products[0].Name)
	require.Equal(t, "20.00", products[0].Price.StringFixed(2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogAdapter_SaveProductPopulatesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(querySaveProduct)).
		WithArgs("Arroz", "20", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(77)))

	product := &v1.Product{Name: "Arroz", Price: decimal.NewFromInt(20), AreaID: 1}
	require.NoError(t, NewCatalogAdapter(db).SaveProduct(context.Background(), product))
	require.Equal(t, int64(77), product.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogAdapter_CountAreas(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryCountAreas)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(11)))

	count, err := NewCatalogAdapter(db).CountAreas(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(11), count)
}

func TestUserAdapter_FindUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryFindUser)).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "role"}).
			AddRow("admin", "$2a$10$hash", "admin"))

	user, err := NewUserAdapter(db).FindUser(context.Background(), "admin")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)
	require.Equal(t, v1.RoleAdmin, user.Role)
}

func TestUserAdapter_FindUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryFindUser)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "role"}))

	_, err = NewUserAdapter(db).FindUser(context.Background(), "ghost")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

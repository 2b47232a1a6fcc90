package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"github.com/bodega-labs/bodega/internal/users"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
areas:
  - id: 1
    name: Abarrotes
    products:
      - { name: Arroz, price: 20 }
      - { name: Aceite Vegetal, price: 35.50 }
  - id: 2
    name: Bebidas
    products:
      - { name: Agua Mineral, price: 10 }
users:
  - { username: admin, password: admin123, role: admin }
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type fakeCatalogStore struct {
	areas    []v1.Area
	products []v1.Product
}

func (f *fakeCatalogStore) ListAreas(_ context.Context) ([]v1.Area, error) {
	return f.areas, nil
}

func (f *fakeCatalogStore) ListProductsByArea(_ context.Context, areaID int64) ([]v1.Product, error) {
	var out []v1.Product
	for _, p := range f.products {
		if p.AreaID == areaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalogStore) SaveArea(_ context.Context, area *v1.Area) error {
	f.areas = append(f.areas, *area)
	return nil
}

func (f *fakeCatalogStore) SaveProduct(_ context.Context, product *v1.Product) error {
	product.ID = int64(len(f.products) + 1)
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeCatalogStore) CountAreas(_ context.Context) (int64, error) {
	return int64(len(f.areas)), nil
}

type fakeUserStore struct {
	users map[string]*v1.User
}

func (f *fakeUserStore) FindUser(_ context.Context, username string) (*v1.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) SaveUser(_ context.Context, user *v1.User) error {
	f.users[user.Username] = user
	return nil
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeedFile(t, seedYAML)

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seed.Areas, 2)
	require.Equal(t, "Abarrotes", seed.Areas[0].Name)
	require.Len(t, seed.Areas[0].Products, 2)
	require.Equal(t, 35.50, seed.Areas[0].Products[1].Price)
	require.Len(t, seed.Users, 1)
}

func TestLoadSeedFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"duplicate area id", "areas:\n  - { id: 1, name: A }\n  - { id: 1, name: B }\n"},
		{"missing area name", "areas:\n  - { id: 1 }\n"},
		{"non-positive area id", "areas:\n  - { id: 0, name: A }\n"},
		{"negative price", "areas:\n  - id: 1\n    name: A\n    products:\n      - { name: X, price: -1 }\n"},
		{"missing product name", "areas:\n  - id: 1\n    name: A\n    products:\n      - { price: 5 }\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSeedFile(writeSeedFile(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestSeed_PopulatesEmptyCatalog(t *testing.T) {
	store := &fakeCatalogStore{}
	userStore := &fakeUserStore{users: map[string]*v1.User{}}
	userSvc := users.NewService(userStore)

	path := writeSeedFile(t, seedYAML)
	require.NoError(t, Seed(context.Background(), path, store, userSvc))

	require.Len(t, store.areas, 2)
	require.Len(t, store.products, 3)
	require.Equal(t, "20.00", store.products[0].Price.StringFixed(2))
	require.Equal(t, int64(1), store.products[0].AreaID)

	admin, ok := userStore.users["admin"]
	require.True(t, ok)
	require.Equal(t, v1.RoleAdmin, admin.Role)
	require.NotEqual(t, "admin123", admin.PasswordHash)
}

func TestSeed_SkipsPopulatedCatalog(t *testing.T) {
	store := &fakeCatalogStore{areas: []v1.Area{{ID: 99, Name: "Existing"}}}
	userStore := &fakeUserStore{users: map[string]*v1.User{}}

	path := writeSeedFile(t, seedYAML)
	require.NoError(t, Seed(context.Background(), path, store, users.NewService(userStore)))

	require.Len(t, store.areas, 1)
	require.Empty(t, store.products)
	require.Empty(t, userStore.users)
}

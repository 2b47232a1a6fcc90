package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	v1 "github.com/bodega-labs/bodega/internal/api/v1"
	"github.com/bodega-labs/bodega/internal/core/storage"
	"github.com/bodega-labs/bodega/internal/users"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SeedFile is the on-disk shape of the catalog seed: the store's areas with
// their products, plus the initial operator accounts. Passwords are plain text
// in the file and hashed on the way into the store.
type SeedFile struct {
	Areas []SeedArea `yaml:"areas"`
	Users []SeedUser `yaml:"users"`
}

type SeedArea struct {
	ID       int64         `yaml:"id"`
	Name     string        `yaml:"name"`
	Products []SeedProduct `yaml:"products"`
}

// SeedProduct carries the price as a YAML number; it is converted to decimal
// on the way into the store.
type SeedProduct struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

type SeedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// LoadSeedFile parses and validates a catalog seed file.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	seen := make(map[int64]bool)
	for _, area := range seed.Areas {
		if area.ID <= 0 {
			return nil, fmt.Errorf("seed area %q: id must be positive", area.Name)
		}
		if area.Name == "" {
			return nil, fmt.Errorf("seed area %d: name is required", area.ID)
		}
		if seen[area.ID] {
			return nil, fmt.Errorf("seed area %d: duplicate id", area.ID)
		}
		seen[area.ID] = true

		for _, p := range area.Products {
			if p.Name == "" {
				return nil, fmt.Errorf("seed area %q: product name is required", area.Name)
			}
			if p.Price < 0 {
				return nil, fmt.Errorf("seed product %q: price must not be negative", p.Name)
			}
		}
	}

	return &seed, nil
}

// Seed populates the catalog and the operator accounts from a seed file.
// It is a no-op when the catalog already has areas, so restarting the service
// never duplicates data.
func Seed(ctx context.Context, path string, catalogStore storage.CatalogStore, userSvc *users.Service) error {
	count, err := catalogStore.CountAreas(ctx)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if count > 0 {
		slog.Info("Catalog already populated, skipping seed", "areas", count)
		return nil
	}

	seed, err := LoadSeedFile(path)
	if err != nil {
		return err
	}

	products := 0
	for _, sa := range seed.Areas {
		area := v1.Area{ID: sa.ID, Name: sa.Name}
		if err := catalogStore.SaveArea(ctx, &area); err != nil {
			return fmt.Errorf("seed area %q: %w", sa.Name, err)
		}
		for _, sp := range sa.Products {
			product := v1.Product{Name: sp.Name, Price: decimal.NewFromFloat(sp.Price), AreaID: sa.ID}
			if err := catalogStore.SaveProduct(ctx, &product); err != nil {
				return fmt.Errorf("seed product %q: %w", sp.Name, err)
			}
			products++
		}
	}

	for _, su := range seed.Users {
		if _, err := userSvc.Register(ctx, su.Username, su.Password, su.Role); err != nil {
			return fmt.Errorf("seed user %q: %w", su.Username, err)
		}
	}

	slog.Info("Catalog seeded",
		"areas", len(seed.Areas),
		"products", products,
		"users", len(seed.Users),
	)
	return nil
}

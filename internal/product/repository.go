package product

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"plataforma-pedidos/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Products []catalogEntry `yaml:"products"`
}

type catalogEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Weight      string `yaml:"weight"`
	Image       string `yaml:"image"`
}

// YAMLRepository serves the catalog compiled into the binary. Entries never
// change after start-up.
type YAMLRepository struct {
	products []domain.Product
	byID     map[string]int
}

func NewDefaultRepository() (*YAMLRepository, error) {
	return NewYAMLRepository(defaultCatalog)
}

func NewYAMLRepository(data []byte) (*YAMLRepository, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	repo := &YAMLRepository{
		products: make([]domain.Product, 0, len(file.Products)),
		byID:     make(map[string]int, len(file.Products)),
	}

	for i, e := range file.Products {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: id is required", i)
		}
		if _, dup := repo.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, e.ID)
		}

		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: parsing price: %w", e.ID, err)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("catalog entry %q: price must be positive", e.ID)
		}

		repo.byID[e.ID] = len(repo.products)
		repo.products = append(repo.products, domain.Product{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Price:       price,
			Weight:      e.Weight,
			Image:       e.Image,
		})
	}

	return repo, nil
}

func (r *YAMLRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *YAMLRepository) FindByID(ctx context.Context, id string) (*domain.Product, bool, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false, nil
	}
	p := r.products[i]
	return &p, true, nil
}

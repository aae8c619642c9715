package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// memoryRepository serves a catalog that was supplied fully-formed, the
// way the storefront receives it from its data-fetch collaborator.
type memoryRepository struct {
	ordered []*Product
	bySlug  map[string]*Product
	byID    map[string]*Product
}

func NewMemoryRepository(products []*Product) Repository {
	repo := &memoryRepository{
		ordered: products,
		bySlug:  make(map[string]*Product, len(products)),
		byID:    make(map[string]*Product, len(products)),
	}
	for _, p := range products {
		repo.bySlug[p.Slug] = p
		repo.byID[p.ID] = p
	}
	return repo
}

// NewFileRepository loads a JSON catalog file into a memory repository.
func NewFileRepository(path string) (Repository, error) {
	products, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(products), nil
}

func LoadCatalogFile(path string) ([]*Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []*Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return products, nil
}

func (r *memoryRepository) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (r *memoryRepository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// ListProducts preserves the order the catalog was supplied in.
func (r *memoryRepository) ListProducts(ctx context.Context, featuredOnly bool) ([]*Product, error) {
	products := make([]*Product, 0, len(r.ordered))
	for _, p := range r.ordered {
		if featuredOnly && !p.Featured {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

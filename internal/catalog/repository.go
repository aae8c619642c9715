package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Repository is the read interface to the product catalog. The catalog
// is owned elsewhere; this core never writes to it.
type Repository interface {
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, featuredOnly bool) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return r.getProduct(ctx, `
		SELECT id, slug, title, description, price, compare_at_price, images, featured, stock
		FROM products
		WHERE slug = $1
	`, slug)
}

func (r *repository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	return r.getProduct(ctx, `
		SELECT id, slug, title, description, price, compare_at_price, images, featured, stock
		FROM products
		WHERE id = $1
	`, id)
}

// ListProducts serves the storefront index. Variants are loaded so the
// stock signal stays the OR across variants; options are left out, the
// index never renders them.
func (r *repository) ListProducts(ctx context.Context, featuredOnly bool) ([]*Product, error) {
	query := `
		SELECT id, slug, title, description, price, compare_at_price, images, featured, stock
		FROM products
	`
	if featuredOnly {
		query += " WHERE featured = TRUE"
	}
	query += " ORDER BY title"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Slug,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.CompareAtPrice,
			pq.Array(&p.Images),
			&p.Featured,
			&p.Stock,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	rows.Close()

	for _, p := range products {
		if p.Variants, err = r.getVariants(ctx, p.ID); err != nil {
			return nil, err
		}
	}

	return products, nil
}

func (r *repository) getProduct(ctx context.Context, query, arg string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.CompareAtPrice,
		pq.Array(&p.Images),
		&p.Featured,
		&p.Stock,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}

	if p.Options, err = r.getOptions(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.Variants, err = r.getVariants(ctx, p.ID); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) getOptions(ctx context.Context, productID string) ([]Option, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, option_values, swatches
		FROM product_options
		WHERE product_id = $1
		ORDER BY position
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var (
			opt      Option
			swatches []byte
		)
		if err := rows.Scan(&opt.Name, pq.Array(&opt.Values), &swatches); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
		}
		if len(swatches) > 0 {
			if err := json.Unmarshal(swatches, &opt.Swatches); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
			}
		}
		options = append(options, opt)
	}

	return options, rows.Err()
}

func (r *repository) getVariants(ctx context.Context, productID string) ([]Variant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, options, price, compare_at_price, image_url, stock
		FROM variants
		WHERE product_id = $1
		ORDER BY position
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		var (
			v       Variant
			options []byte
		)
		if err := rows.Scan(&v.ID, &v.ProductID, &options, &v.Price, &v.CompareAtPrice, &v.ImageURL, &v.Stock); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
		}
		if err := json.Unmarshal(options, &v.Options); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
		}
		variants = append(variants, v)
	}

	return variants, rows.Err()
}

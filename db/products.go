package db

import (
	"context"

	"catalog-services/types"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/ninja-software/terror/v2"
)

// ProductStore is the postgres record store for products.
type ProductStore struct {
	Conn Conn
}

const productGetQuery string = `--sql
SELECT
	id, name, description, price, stock, image, created_at, updated_at
FROM products
`

// All returns every product. Order is stable for a given table state.
func (s *ProductStore) All(ctx context.Context) ([]*types.Product, error) {
	products := []*types.Product{}
	q := productGetQuery + ` ORDER BY created_at, id`
	err := pgxscan.Select(ctx, s.Conn, &products, q)
	if err != nil {
		return nil, terror.Error(err)
	}
	return products, nil
}

// Get returns a product by given ID
func (s *ProductStore) Get(ctx context.Context, productID types.ProductID) (*types.Product, error) {
	product := &types.Product{}
	q := productGetQuery + ` WHERE id = $1`
	err := pgxscan.Get(ctx, s.Conn, product, q, productID)
	if err != nil {
		return nil, terror.Error(err)
	}
	return product, nil
}

// Insert will create a new product, filling in the assigned ID and timestamps
func (s *ProductStore) Insert(ctx context.Context, product *types.Product) error {
	q := `--sql
		INSERT INTO products (name, description, price, stock, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
			id, name, description, price, stock, image, created_at, updated_at`
	err := pgxscan.Get(ctx,
		s.Conn,
		product,
		q,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Image,
	)
	if err != nil {
		return terror.Error(err)
	}
	return nil
}

// Update will update an existing product
func (s *ProductStore) Update(ctx context.Context, product *types.Product) error {
	q := `--sql
		UPDATE products
		SET
			name = $2, description = $3, price = $4, stock = $5, image = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING
			id, name, description, price, stock, image, created_at, updated_at`
	err := pgxscan.Get(ctx,
		s.Conn,
		product,
		q,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Image,
	)
	if err != nil {
		return terror.Error(err)
	}
	return nil
}

// Delete removes a product row. The image blob is left in place.
func (s *ProductStore) Delete(ctx context.Context, productID types.ProductID) error {
	q := `--sql
		DELETE FROM products
		WHERE id = $1`
	_, err := s.Conn.Exec(ctx, q, productID)
	if err != nil {
		return terror.Error(err)
	}
	return nil
}

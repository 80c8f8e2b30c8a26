package seed

import (
	"context"

	"catalog-services/db"

	"github.com/ninja-software/terror/v2"
)

// Seeder inserts sample data for development environments
type Seeder struct {
	ProductStore *db.ProductStore
	BlobStore    *db.BlobStore
}

// New returns a seeder over the given connection
func New(conn db.Conn) *Seeder {
	return &Seeder{
		ProductStore: &db.ProductStore{Conn: conn},
		BlobStore:    &db.BlobStore{Conn: conn},
	}
}

// Run seeds all sample data
func (s *Seeder) Run(ctx context.Context) error {
	err := s.Products(ctx)
	if err != nil {
		return terror.Error(err, "seed products")
	}
	return nil
}

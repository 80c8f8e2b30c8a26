package api

import (
	"context"
	"fmt"

	"catalog-services/db"

	"github.com/ninja-software/terror/v2"
)

var (
	ErrCheckDBQuery = fmt.Errorf("error: executing db query")
	ErrCheckDBEmpty = fmt.Errorf("db schema is missing")
)

// check checks server is working correctly
func check(ctx context.Context, conn db.Conn) error {
	count := 0
	err := db.IsSchemaUp(ctx, conn, &count)
	if err != nil {
		return terror.Error(ErrCheckDBQuery)
	}
	if count < 2 {
		return terror.Error(ErrCheckDBEmpty)
	}
	return nil
}

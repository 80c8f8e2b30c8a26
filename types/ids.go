package types

import (
	"database/sql/driver"

	"github.com/gofrs/uuid"
	"github.com/ninja-software/terror/v2"
)

// ProductID aliases uuid.UUID.
type ProductID uuid.UUID

// IsNil returns true for a nil uuid (uuid.UUID{} works too)
func (id ProductID) IsNil() bool {
	return id == ProductID{}
}

// String aliases UUID.String
func (id ProductID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText aliases UUID.MarshalText
func (id ProductID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText aliases UUID.UnmarshalText
func (id *ProductID) UnmarshalText(text []byte) error {
	uid := uuid.UUID(*id)
	err := uid.UnmarshalText(text)
	if err != nil {
		return terror.Error(err)
	}
	*id = ProductID(uid)
	return nil
}

// Value aliases UUID.Value
func (id ProductID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

// Scan aliases UUID.Scan
func (id *ProductID) Scan(src interface{}) error {
	uid := uuid.UUID(*id)
	err := uid.Scan(src)
	if err != nil {
		return terror.Error(err)
	}
	*id = ProductID(uid)
	return nil
}

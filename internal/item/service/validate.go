package service

import (
	"fmt"

	"github.com/stocklab/itemd/internal/item/domain"
)

// validateItem checks the business rules shared by create, update and patch.
// Structural constraints on name/description length belong to the transport
// binding schema, not here.
func validateItem(item *domain.Item) error {
	if item.Price.Sign() <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", domain.ErrInvalidItem)
	}
	if item.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidItem)
	}
	return nil
}

package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stocklab/itemd/internal/item/domain"
)

// applyField merges one raw key/value pair from an untyped patch payload into
// the item. Dispatch is an explicit allow-list keyed by field name; anything
// outside it is rejected rather than assigned reflectively.
func applyField(item *domain.Item, field string, value any) error {
	if value == nil {
		return fmt.Errorf("%w: field %q has no value", domain.ErrInvalidField, field)
	}

	switch field {
	case "price":
		price, err := coerceDecimal(value)
		if err != nil {
			return fmt.Errorf("%w: cannot read %v as price: %v", domain.ErrInvalidField, value, err)
		}
		item.Price = price
	case "stock":
		stock, err := coerceInt(value)
		if err != nil {
			return fmt.Errorf("%w: cannot read %v as stock: %v", domain.ErrInvalidField, value, err)
		}
		item.Stock = stock
	case "active":
		item.Active = coerceBool(value)
	case "name":
		item.Name = coerceString(value)
	case "description":
		description := coerceString(value)
		item.Description = &description
	default:
		return fmt.Errorf("%w: item has no field %q", domain.ErrUnknownField, field)
	}

	return nil
}

func coerceDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported type %T", value)
	}
}

// coerceInt truncates fractional numbers instead of rejecting them.
func coerceInt(value any) (int, error) {
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		return int(f), nil
	default:
		return strconv.Atoi(fmt.Sprint(value))
	}
}

// coerceBool never fails: non-boolean input is true only when its string form
// is "true" (any case). Everything else reads as false.
func coerceBool(value any) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	return strings.EqualFold(fmt.Sprint(value), "true")
}

func coerceString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

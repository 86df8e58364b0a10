package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Service interface {
	ListAll(ctx context.Context, page int) (*Page, error)
	ListActive(ctx context.Context, page int) (*Page, error)
	Get(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Item, error)
	Patch(ctx context.Context, id int64, fields map[string]any) (*Item, error)
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
	ListLowStock(ctx context.Context, threshold int) ([]Item, error)
}

type CreateRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      *bool           `json:"active"`
}

// UpdateRequest is a full replacement: every field overwrites the stored one.
type UpdateRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
}

type Page struct {
	Items      []Item `json:"items"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalItems int64  `json:"total_items"`
	TotalPages int64  `json:"total_pages"`
}

var (
	ErrNotFound        = errors.New("item_not_found")
	ErrInvalidItem     = errors.New("invalid_item")
	ErrInvalidField    = errors.New("invalid_field")
	ErrUnknownField    = errors.New("unknown_field")
	ErrDuplicateName   = errors.New("duplicate_name")
	ErrInvalidArgument = errors.New("invalid_argument")
)

package domain

import (
	"context"

	"github.com/stocklab/itemd/pkg/db/pagination"
	"gorm.io/gorm"
)

// Repository methods take the *gorm.DB handle per call so the service can run
// a whole operation inside one transaction.
type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Item, error)
	FindAll(ctx context.Context, db *gorm.DB, page pagination.PageRequest) ([]Item, int64, error)
	FindActive(ctx context.Context, db *gorm.DB, page pagination.PageRequest) ([]Item, int64, error)
	FindByNameIgnoreCase(ctx context.Context, db *gorm.DB, name string) (*Item, error)
	FindByStockAtMost(ctx context.Context, db *gorm.DB, threshold int) ([]Item, error)
	Save(ctx context.Context, db *gorm.DB, item *Item) error
	ExistsByID(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	DeleteByID(ctx context.Context, db *gorm.DB, id int64) error
}

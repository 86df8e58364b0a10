package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/stocklab/itemd/internal/clock"
	"github.com/stocklab/itemd/internal/item/domain"
	"github.com/stocklab/itemd/pkg/db"
	"github.com/stocklab/itemd/pkg/db/pagination"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	GenID *snowflake.Node
	Clock clock.Clock
}

type repo struct {
	genID *snowflake.Node
	clock clock.Clock
}

func Provide(p Params) domain.Repository {
	return &repo{genID: p.GenID, clock: p.Clock}
}

func New(genID *snowflake.Node, clk clock.Clock) domain.Repository {
	return &repo{genID: genID, clock: clk}
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id int64) (*domain.Item, error) {
	var item domain.Item
	err := conn.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindAll(ctx context.Context, conn *gorm.DB, page pagination.PageRequest) ([]domain.Item, int64, error) {
	return r.findPaged(ctx, conn.WithContext(ctx).Model(&domain.Item{}), page)
}

func (r *repo) FindActive(ctx context.Context, conn *gorm.DB, page pagination.PageRequest) ([]domain.Item, int64, error) {
	stmt := conn.WithContext(ctx).Model(&domain.Item{}).Where("active = ?", true)
	return r.findPaged(ctx, stmt, page)
}

func (r *repo) findPaged(_ context.Context, stmt *gorm.DB, page pagination.PageRequest) ([]domain.Item, int64, error) {
	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []domain.Item
	err := stmt.
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *repo) FindByNameIgnoreCase(ctx context.Context, conn *gorm.DB, name string) (*domain.Item, error) {
	var item domain.Item
	err := conn.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindByStockAtMost(ctx context.Context, conn *gorm.DB, threshold int) ([]domain.Item, error) {
	var items []domain.Item
	err := conn.WithContext(ctx).
		Where("stock <= ?", threshold).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Save inserts or replaces. Storage owns id assignment and the timestamps:
// created_at is set exactly once, updated_at on every save. Unique-index
// violations on the name column surface as the duplicate-name error so the
// index stays the source of truth for the uniqueness invariant.
func (r *repo) Save(ctx context.Context, conn *gorm.DB, item *domain.Item) error {
	now := r.clock.Now()
	item.UpdatedAt = now

	var err error
	if item.ID == 0 {
		item.ID = r.genID.Generate().Int64()
		item.CreatedAt = now
		err = conn.WithContext(ctx).Create(item).Error
	} else {
		err = conn.WithContext(ctx).Save(item).Error
	}
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return fmt.Errorf("%w: an item named %q already exists", domain.ErrDuplicateName, item.Name)
		}
		return err
	}
	return nil
}

func (r *repo) ExistsByID(ctx context.Context, conn *gorm.DB, id int64) (bool, error) {
	var count int64
	err := conn.WithContext(ctx).
		Model(&domain.Item{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) DeleteByID(ctx context.Context, conn *gorm.DB, id int64) error {
	return conn.WithContext(ctx).Delete(&domain.Item{}, "id = ?", id).Error
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/stocklab/itemd/internal/item/domain"
	"github.com/stocklab/itemd/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("item.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListAll(ctx context.Context, page int) (*domain.Page, error) {
	req := pagination.NewPageRequest(page)
	items, total, err := s.repo.FindAll(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	return buildPage(items, req, total), nil
}

func (s *Service) ListActive(ctx context.Context, page int) (*domain.Page, error) {
	req := pagination.NewPageRequest(page)
	items, total, err := s.repo.FindActive(ctx, s.db, req)
	if err != nil {
		return nil, err
	}
	return buildPage(items, req, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.get(ctx, s.db, id)
}

func (s *Service) get(ctx context.Context, db *gorm.DB, id int64) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: no item with id %d", domain.ErrNotFound, id)
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Item, error) {
	item := &domain.Item{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureNameFree(ctx, tx, item.Name); err != nil {
			return err
		}
		return s.repo.Save(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("item created", zap.Int64("id", item.ID), zap.String("name", item.Name))
	return item, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateRequest) (*domain.Item, error) {
	var item *domain.Item
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}

		replacement := &domain.Item{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			Active:      req.Active,
		}
		if err := validateItem(replacement); err != nil {
			return err
		}

		// The item keeps its own name without an id-exclusion filter: the
		// duplicate lookup only runs when the name actually changes.
		if !strings.EqualFold(existing.Name, replacement.Name) {
			if err := s.ensureNameFree(ctx, tx, replacement.Name); err != nil {
				return err
			}
		}

		existing.Name = replacement.Name
		existing.Description = replacement.Description
		existing.Price = replacement.Price
		existing.Stock = replacement.Stock
		existing.Active = replacement.Active

		if err := s.repo.Save(ctx, tx, existing); err != nil {
			return err
		}
		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("item updated", zap.Int64("id", item.ID))
	return item, nil
}

func (s *Service) Patch(ctx context.Context, id int64, fields map[string]any) (*domain.Item, error) {
	var item *domain.Item
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}

		// Fields are independent, so only stability matters here; sorted keys
		// keep failures deterministic. Nothing is persisted until every merge
		// and the validation pass succeed.
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if err := applyField(existing, name, fields[name]); err != nil {
				return err
			}
		}

		if err := validateItem(existing); err != nil {
			return err
		}

		if err := s.repo.Save(ctx, tx, existing); err != nil {
			return err
		}
		item = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("item patched", zap.Int64("id", item.ID), zap.Int("fields", len(fields)))
	return item, nil
}

func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		item, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		item.Active = false
		return s.repo.Save(ctx, tx, item)
	})
	if err != nil {
		return err
	}

	s.log.Info("item deactivated", zap.Int64("id", id))
	return nil
}

func (s *Service) HardDelete(ctx context.Context, id int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.ExistsByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: no item with id %d", domain.ErrNotFound, id)
		}
		return s.repo.DeleteByID(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("item deleted", zap.Int64("id", id))
	return nil
}

func (s *Service) ListLowStock(ctx context.Context, threshold int) ([]domain.Item, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: stock threshold cannot be negative", domain.ErrInvalidArgument)
	}
	return s.repo.FindByStockAtMost(ctx, s.db, threshold)
}

func (s *Service) ensureNameFree(ctx context.Context, db *gorm.DB, name string) error {
	existing, err := s.repo.FindByNameIgnoreCase(ctx, db, name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: an item named %q already exists", domain.ErrDuplicateName, existing.Name)
	}
	return nil
}

func buildPage(items []domain.Item, req pagination.PageRequest, total int64) *domain.Page {
	if items == nil {
		items = []domain.Item{}
	}
	return &domain.Page{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: pagination.TotalPages(total, req.Size),
	}
}

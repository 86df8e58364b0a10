package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stocklab/itemd/internal/clock"
	"github.com/stocklab/itemd/internal/item/domain"
	"github.com/stocklab/itemd/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T, dsn string) (domain.Repository, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`CREATE TABLE IF NOT EXISTS items (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(10,2) NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`).Error)
	require.NoError(t, conn.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_items_name_lower ON items (LOWER(name))`,
	).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return New(node, clk), conn, clk
}

func seedItem(t *testing.T, r domain.Repository, conn *gorm.DB, name string, stock int, active bool) *domain.Item {
	t.Helper()
	item := &domain.Item{
		Name:   name,
		Price:  decimal.RequireFromString("9.99"),
		Stock:  stock,
		Active: active,
	}
	require.NoError(t, r.Save(context.Background(), conn, item))
	return item
}

func TestSave(t *testing.T) {
	r, conn, clk := newTestRepo(t, "file:item_repo_save?mode=memory&cache=shared")
	ctx := context.Background()

	t.Run("insert assigns id and timestamps", func(t *testing.T) {
		item := seedItem(t, r, conn, "Widget", 5, true)

		assert.NotZero(t, item.ID)
		assert.True(t, item.CreatedAt.Equal(clk.Now()))
		assert.True(t, item.UpdatedAt.Equal(clk.Now()))
	})

	t.Run("update keeps created_at and bumps updated_at", func(t *testing.T) {
		item := seedItem(t, r, conn, "Gadget", 2, true)
		created := item.CreatedAt
		clk.Advance(time.Minute)

		item.Stock = 4
		require.NoError(t, r.Save(ctx, conn, item))

		stored, err := r.FindByID(ctx, conn, item.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 4, stored.Stock)
		assert.True(t, stored.CreatedAt.Equal(created))
		assert.True(t, stored.UpdatedAt.After(created))
	})

	t.Run("duplicate name hits the unique index", func(t *testing.T) {
		seedItem(t, r, conn, "Anvil", 1, true)

		dup := &domain.Item{
			Name:  "anvil",
			Price: decimal.RequireFromString("1.00"),
		}
		err := r.Save(ctx, conn, dup)
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
		assert.Contains(t, err.Error(), `"anvil"`)
	})
}

func TestFindByID(t *testing.T) {
	r, conn, _ := newTestRepo(t, "file:item_repo_find?mode=memory&cache=shared")
	ctx := context.Background()

	item, err := r.FindByID(ctx, conn, 123456)
	require.NoError(t, err)
	assert.Nil(t, item)

	seeded := seedItem(t, r, conn, "Bolt", 3, true)
	found, err := r.FindByID(ctx, conn, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Bolt", found.Name)
}

func TestFindByNameIgnoreCase(t *testing.T) {
	r, conn, _ := newTestRepo(t, "file:item_repo_name?mode=memory&cache=shared")
	ctx := context.Background()

	seedItem(t, r, conn, "Hammer", 1, true)

	for _, name := range []string{"Hammer", "hammer", "HAMMER"} {
		found, err := r.FindByNameIgnoreCase(ctx, conn, name)
		require.NoError(t, err)
		require.NotNil(t, found, name)
		assert.Equal(t, "Hammer", found.Name)
	}

	missing, err := r.FindByNameIgnoreCase(ctx, conn, "Screwdriver")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByStockAtMost(t *testing.T) {
	r, conn, _ := newTestRepo(t, "file:item_repo_stock?mode=memory&cache=shared")
	ctx := context.Background()

	seedItem(t, r, conn, "Nut", 10, true)
	seedItem(t, r, conn, "Washer", 11, true)
	seedItem(t, r, conn, "Rivet", 2, false)

	items, err := r.FindByStockAtMost(ctx, conn, 10)
	require.NoError(t, err)

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	assert.ElementsMatch(t, []string{"Nut", "Rivet"}, names)
}

func TestFindPaged(t *testing.T) {
	r, conn, clk := newTestRepo(t, "file:item_repo_paged?mode=memory&cache=shared")
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C", "D", "E"} {
		seedItem(t, r, conn, name, i, i%2 == 0)
		clk.Advance(time.Second)
	}

	t.Run("all items, oldest first", func(t *testing.T) {
		items, total, err := r.FindAll(ctx, conn, pagination.PageRequest{Page: 0, Size: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, items, 3)
		assert.Equal(t, "A", items[0].Name)
		assert.Equal(t, "C", items[2].Name)

		rest, total, err := r.FindAll(ctx, conn, pagination.PageRequest{Page: 1, Size: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, rest, 2)
		assert.Equal(t, "D", rest[0].Name)
	})

	t.Run("active only", func(t *testing.T) {
		items, total, err := r.FindActive(ctx, conn, pagination.NewPageRequest(0))
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, item := range items {
			assert.True(t, item.Active)
		}
	})
}

func TestDeleteByID(t *testing.T) {
	r, conn, _ := newTestRepo(t, "file:item_repo_delete?mode=memory&cache=shared")
	ctx := context.Background()

	seeded := seedItem(t, r, conn, "Crowbar", 1, true)

	exists, err := r.ExistsByID(ctx, conn, seeded.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, r.DeleteByID(ctx, conn, seeded.ID))

	exists, err = r.ExistsByID(ctx, conn, seeded.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

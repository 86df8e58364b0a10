package migration

import (
	"github.com/stocklab/itemd/internal/config"
	"github.com/stocklab/itemd/internal/item/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned migrations target postgres. The other dialects get the
		// schema through AutoMigrate plus a dialect-appropriate uniqueness
		// index on LOWER(name).
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		if err := conn.AutoMigrate(&domain.Item{}); err != nil {
			return err
		}
		return ensureUniqueNameIndex(conn, cfg.DBType)
	}),
)

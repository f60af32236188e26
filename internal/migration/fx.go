package migration

import (
	"github.com/smallbiznis/derent/internal/config"
	"github.com/smallbiznis/derent/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		if err := seed.EnsurePlatformState(conn, cfg.FeeBps); err != nil {
			return err
		}
		if cfg.Environment != "production" {
			return seed.SeedTokenAccounts(conn, cfg.TokenSeedAccounts)
		}
		return nil
	}),
)

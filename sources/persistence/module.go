package persistence

import (
	"context"
	"toolscout/sources/persistence/entities"
	"toolscout/sources/tracing"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("persistence",
	fx.Provide(NewSqliteDatabase),

	fx.Invoke(func(db *gorm.DB, lc fx.Lifecycle, log *tracing.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if db == nil {
					return nil
				}

				if err := db.WithContext(ctx).AutoMigrate(&entities.Run{}, &entities.RunModel{}); err != nil {
					log.F("Failed to migrate run archive", tracing.InnerError, err)
				}

				log.I("Run archive schema verified")
				return nil
			},
			OnStop: func(ctx context.Context) error {
				if db == nil {
					return nil
				}

				log.I("Closing run archive")
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				} else {
					log.E("Failed to close run archive", tracing.InnerError, err)
				}

				return nil
			},
		})
	}),
)

package persistence

import (
	"time"

	"toolscout/sources/configuration"
	"toolscout/sources/tracing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSqliteDatabase opens the run archive. A nil return means archiving is
// disabled (no path configured); repositories treat nil as a no-op sink.
func NewSqliteDatabase(config *configuration.Config, log *tracing.Logger) *gorm.DB {
	if config.Archive.Path == "" {
		log.I("Run archive disabled, no path configured")
		return nil
	}

	gormlogger := logger.New(
		&gormtracer{logger: log},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(config.Archive.Path), &gorm.Config{Logger: gormlogger})
	if err != nil {
		log.F("Failed to open run archive", tracing.InnerError, err)
	}

	log.I("Run archive initialized", tracing.ArtifactPath, config.Archive.Path)
	return db
}

package db

import (
	"database/sql"
	"fmt"
	"time"

	"bookseed/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a session for cfg and verifies it with a ping. Writes are not
// wrapped in transactions, so every statement commits as it executes. On
// failure no handle is returned and the error wraps ErrConnect.
func Connect(cfg config.Config, log *zap.SugaredLogger, sqlLogLevel logger.LogLevel) (*gorm.DB, error) {
	log.Infow("connecting to database", "driver", cfg.Driver, "dsn", cfg.Redacted())

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	sqlLogger := logger.New(
		zap.NewStdLog(log.Desugar()), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  sqlLogLevel,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 sqlLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		if db != nil {
			_ = Close(db)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrConnect, cfg.Redacted(), err)
	}

	log.Infow("connected to database", "driver", cfg.Driver)
	return db, nil
}

// Close releases the connection pool behind db. A nil db is ignored.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// openDialector picks the gorm dialect for cfg. Postgres sessions run over the
// lib/pq driver rather than the dialect's default pgx pool.
func openDialector(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		sqlDB, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, err
		}
		return postgres.New(postgres.Config{Conn: sqlDB}), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

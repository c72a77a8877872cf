package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"readscape/internal/config"
	"readscape/internal/model"
)

// PoolOptions bounds the connection pool behind a GORM DB.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// Open returns a connected GORM DB for the configured driver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	pool := PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		PingTimeout:     cfg.DBQueryTimeout,
	}
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return NewSQLite(cfg.SQLitePath, pool)
	default:
		return NewMySQL(cfg.DSN(), pool)
	}
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string, pool PoolOptions) (*gorm.DB, error) {
	gormDB, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if err := configurePool(gormDB, pool); err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return gormDB, nil
}

// NewSQLite opens (or creates) a SQLite database at path. Foreign keys are
// enforced and writers wait on the busy timeout instead of failing fast.
func NewSQLite(path string, pool PoolOptions) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_journal_mode=WAL", path)
	gormDB, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := configurePool(gormDB, pool); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return gormDB, nil
}

// Migrate creates or updates the schema. When reset is set every table is
// dropped first.
func Migrate(gormDB *gorm.DB, reset bool) error {
	if reset {
		// Children first so foreign keys do not block the drop.
		for _, table := range []interface{}{&model.SavedBook{}, &model.Book{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Book{}, &model.SavedBook{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// Maps driver specific unique violations to gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

func configurePool(gormDB *gorm.DB, pool PoolOptions) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	timeout := pool.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

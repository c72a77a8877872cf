package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DefaultQueryTimeout bounds a single storage call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// scoped returns a DB session bound to a timeout-limited context. The cancel
// func must be called once the statement has finished.
func scoped(ctx context.Context, db *gorm.DB, timeout time.Duration) (*gorm.DB, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return db.WithContext(ctx), cancel
}

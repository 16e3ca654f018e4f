package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitSchema creates the users table when it does not exist yet. Running it
// against an initialized database is a no-op.
func InitSchema(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	m := db.WithContext(ctx).Migrator()
	if m.HasTable(&UserSchema{}) {
		log.Info("users table already exists")
		return nil
	}

	if err := m.CreateTable(&UserSchema{}); err != nil {
		// another instance may have created it between the two calls
		if m.HasTable(&UserSchema{}) {
			return nil
		}
		return fmt.Errorf("failed to create users table: %w", err)
	}

	log.Info("users table created")
	return nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db           *gorm.DB      // GORM database connection
	log          *zap.Logger   // Structured logger for database operations
	queryTimeout time.Duration // Upper bound for a single repository call, 0 disables it
}

// Option configures a UserRepoPG.
type Option func(*UserRepoPG)

// WithQueryTimeout bounds every repository call by d.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *UserRepoPG) {
		r.queryTimeout = d
	}
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger, opts ...Option) *UserRepoPG {
	r := &UserRepoPG{db: db, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`              // Unique identifier with auto-increment
	Name         string  `gorm:"type:varchar(80);not null"`             // User's full name (required)
	Email        string  `gorm:"type:varchar(120);not null;unique"`     // User's unique email address
	PlaceOfBirth *string `gorm:"column:placeofbirth;type:varchar(120)"` // Optional place of birth
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() user.User {
	return user.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PlaceOfBirth: m.PlaceOfBirth,
	}
}

func (r *UserRepoPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Create inserts a new user into the database.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (int64, error) {
	log := logger.WithContext(ctx, r.log)
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	model := UserSchema{
		Name:         u.Name,
		Email:        u.Email,
		PlaceOfBirth: u.PlaceOfBirth,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return 0, classifyError("create user", err)
	}

	log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*user.User, error) {
	log := logger.WithContext(ctx, r.log)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var model UserSchema
	if err := r.db.WithContext(ctx).Where(columnID+" = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("user not found", zap.Int64("id", id))
			return nil, pkgerrors.ErrUserNotFound
		}
		log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, classifyError("get user", err)
	}

	u := model.toDomain()
	return &u, nil
}

// List retrieves users matching the filter ordered by id.
func (r *UserRepoPG) List(ctx context.Context, f user.Filter) ([]user.User, error) {
	log := logger.WithContext(ctx, r.log)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).Model(&UserSchema{})
	if cond, args := filterClause(f); cond != "" {
		tx = tx.Where(cond, args...)
	}

	var models []UserSchema
	if err := tx.Order(columnID).Find(&models).Error; err != nil {
		log.Error("failed to list users from db", zap.Error(err))
		return nil, classifyError("list users", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = model.toDomain()
	}

	return users, nil
}

// Update sets exactly the supplied patch fields of the user with the given id
// and returns the number of affected rows.
func (r *UserRepoPG) Update(ctx context.Context, id int64, p user.Patch) (int64, error) {
	log := logger.WithContext(ctx, r.log)
	set := assignments(p)
	if len(set) == 0 {
		return 0, pkgerrors.ErrNoFieldsToUpdate
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	clause, args := setClause(set)
	args = append(args, id)
	stmt := "UPDATE " + UserSchema{}.TableName() + " SET " + clause + " WHERE " + columnID + " = ?"

	res := r.db.WithContext(ctx).Exec(stmt, args...)
	if res.Error != nil {
		log.Error("failed to update user in db", zap.Error(res.Error), zap.Int64("id", id))
		return 0, classifyError("update user", res.Error)
	}

	log.Info("user updated in db", zap.Int64("id", id), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

// Delete removes a user from the database by ID and returns the number of
// affected rows.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.WithContext(ctx, r.log)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Where(columnID+" = ?", id).Delete(&UserSchema{})
	if res.Error != nil {
		log.Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return 0, classifyError("delete user", res.Error)
	}

	log.Info("user deleted in db", zap.Int64("id", id), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

// DeleteAll removes every user and returns how many rows were deleted.
func (r *UserRepoPG) DeleteAll(ctx context.Context) (int64, error) {
	log := logger.WithContext(ctx, r.log)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&UserSchema{})
	if res.Error != nil {
		log.Error("failed to delete all users in db", zap.Error(res.Error))
		return 0, classifyError("delete all users", res.Error)
	}

	log.Info("all users deleted in db", zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

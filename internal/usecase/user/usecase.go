package user

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

// Repository defines the interface for user data access operations.
// Update and Delete report the number of affected rows so callers decide
// what a miss means.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)           // Create a new user
	GetByID(ctx context.Context, id int64) (*domain.User, error)         // Retrieve user by ID
	List(ctx context.Context, f domain.Filter) ([]domain.User, error)    // List users matching the filter
	Update(ctx context.Context, id int64, p domain.Patch) (int64, error) // Apply a partial update
	Delete(ctx context.Context, id int64) (int64, error)                 // Delete user by ID
	DeleteAll(ctx context.Context) (int64, error)                        // Delete every user
}

// Usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type Usecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

var _ UserUsecase = (*Usecase)(nil)

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Usecase{repo: r, log: log, validate: v}
}

// missingFields converts validator.ValidationErrors into a MissingFieldError
// naming every failed field in declaration order.
func missingFields(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, e.Field())
	}
	return pkgerrors.NewMissingFieldError(fields...)
}

func toDTO(u domain.User) User {
	return User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PlaceOfBirth: u.PlaceOfBirth,
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// suppliedRequired drops an empty value of a required field so an update
// never stores what create would reject.
func suppliedRequired(s *string) *string {
	if s == nil {
		return nil
	}
	return nonEmpty(*s)
}

// CreateUser creates a new user after checking the required fields.
// Email uniqueness is enforced by storage.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, missingFields(err)
	}

	log.Info("creating user", zap.String("name", *in.Name), zap.String("email", *in.Email))

	id, err := uc.repo.Create(ctx, &domain.User{
		Name:         *in.Name,
		Email:        *in.Email,
		PlaceOfBirth: in.PlaceOfBirth,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}
	return &CreateUserResponse{ID: id}, nil
}

// UpdateUser applies the supplied fields to an existing user. An update that
// matches no row is reported as not found.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	patch := domain.Patch{
		Name:         suppliedRequired(in.Name),
		Email:        suppliedRequired(in.Email),
		PlaceOfBirth: in.PlaceOfBirth,
	}
	if patch.IsEmpty() {
		log.Warn("update user rejected", zap.Int64("id", in.ID), zap.String("reason", "no fields"))
		return nil, pkgerrors.ErrNoFieldsToUpdate
	}

	log.Info("updating user", zap.Int64("id", in.ID))

	rows, err := uc.repo.Update(ctx, in.ID, patch)
	if err != nil {
		log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		log.Warn("update matched no user", zap.Int64("id", in.ID))
		return nil, pkgerrors.ErrUserNotFound
	}

	return &UpdateUserResponse{ID: in.ID}, nil
}

// DeleteUser deletes a user by ID. Deleting a missing user succeeds.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.Int64("id", in.ID))

	rows, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	if rows == 0 {
		log.Debug("delete matched no user", zap.Int64("id", in.ID))
	}

	return &DeleteUserResponse{ID: in.ID}, nil
}

// DeleteAllUsers removes every user.
func (uc *Usecase) DeleteAllUsers(ctx context.Context) (*DeleteAllUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting all users")

	n, err := uc.repo.DeleteAll(ctx)
	if err != nil {
		log.Error("failed to delete all users", zap.Error(err))
		return nil, err
	}

	return &DeleteAllUsersResponse{Deleted: n}, nil
}

// GetUser retrieves a user by ID.
func (uc *Usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		log.Warn("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &GetUserResponse{User: toDTO(*u)}, nil
}

// ListUsers retrieves users matching the optional exact-match filters.
func (uc *Usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	filter := domain.Filter{
		Name:  nonEmpty(in.Name),
		Email: nonEmpty(in.Email),
	}

	log.Info("listing users", zap.String("name", in.Name), zap.String("email", in.Email))

	domainUsers, err := uc.repo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}

	return &ListUsersResponse{Users: users}, nil
}

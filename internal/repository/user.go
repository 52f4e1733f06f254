package repository

import (
	"context"
	"errors"

	"technews/internal/cache"
	"technews/internal/models"
	"technews/internal/validation"

	"gorm.io/gorm"
)

// UpdateUserInput carries the optional fields of a partial user update.
// Nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, in UpdateUserInput) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// List returns all users with the password column omitted from the query.
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Select("id", "username", "email").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).
			Select("id", "username", "email").
			First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("user")
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns the full row, password hash included, for login checks.
// Absence is reported as (nil, nil) so callers can distinguish it from errors.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// Create validates, hashes the plaintext password and persists the user.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Username == "" || user.Email == "" || user.Password == "" {
		return models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateEmail(user.Email); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(user.Password); err != nil {
		return models.NewValidationError(err.Error())
	}

	// Explicit password transform on the create path.
	hashed, err := models.HashPassword(user.Password)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = hashed

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewUniqueViolationError("A user with this email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update applies the provided fields to the matching row and returns the
// number of rows affected. Zero rows means the filter matched nothing.
func (r *userRepository) Update(ctx context.Context, id uint, in UpdateUserInput) (int64, error) {
	fields := map[string]interface{}{}

	if in.Username != nil {
		if *in.Username == "" {
			return 0, models.NewValidationError("Username cannot be empty")
		}
		fields["username"] = *in.Username
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return 0, models.NewValidationError(err.Error())
		}
		fields["email"] = *in.Email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return 0, models.NewValidationError(err.Error())
		}
		// Explicit password transform on the update path, symmetric with Create.
		hashed, err := models.HashPassword(*in.Password)
		if err != nil {
			return 0, models.NewInternalError(err)
		}
		fields["password"] = hashed
	}

	if len(fields) == 0 {
		return 0, models.NewValidationError("No fields to update")
	}

	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return 0, models.NewUniqueViolationError("A user with this email already exists")
		}
		return 0, models.NewInternalError(res.Error)
	}

	cache.InvalidateUser(ctx, id)
	return res.RowsAffected, nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return 0, models.NewForeignKeyError("User still has posts, comments, or votes")
		}
		return 0, models.NewInternalError(res.Error)
	}
	cache.InvalidateUser(ctx, id)
	return res.RowsAffected, nil
}

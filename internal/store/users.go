package store

import (
	"context"
	"fmt"

	"github.com/oapi-codegen/nullable"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const userEntity = "User"

type NewUser struct {
	Username              string
	Email                 string
	FullName              string
	Role                  types.Role
	Password              *string
	PasswordResetRequired bool
}

// UserPatch carries the fields of a partial update. Omitted fields are left
// untouched. A null Password clears the stored password.
type UserPatch struct {
	Username              nullable.Nullable[string]
	Email                 nullable.Nullable[string]
	FullName              nullable.Nullable[string]
	Role                  nullable.Nullable[types.Role]
	Password              nullable.Nullable[string]
	PasswordResetRequired nullable.Nullable[bool]
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, s.db, nil)
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return get[models.User](ctx, s.db, id, userEntity)
}

func (s *Store) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = types.RoleMember
	}

	user := models.User{
		Username:              in.Username,
		Email:                 in.Email,
		FullName:              in.FullName,
		Role:                  role,
		PasswordResetRequired: in.PasswordResetRequired,
	}

	hash, err := hashPassword(in.Password)

	if err != nil {
		return nil, err
	}

	user.Password = hash

	err = s.unitOfWork(ctx, func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})

	if err != nil {
		return nil, translate(err, userEntity)
	}

	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id uint, patch UserPatch) (*models.User, error) {
	var user models.User

	err := s.unitOfWork(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if v, ok := types.Value(patch.Username); ok {
			user.Username = v
		}

		if v, ok := types.Value(patch.Email); ok {
			user.Email = v
		}

		if v, ok := types.Value(patch.FullName); ok {
			user.FullName = v
		}

		if v, ok := types.Value(patch.Role); ok {
			user.Role = v
		}

		if v, ok := types.Value(patch.PasswordResetRequired); ok {
			user.PasswordResetRequired = v
		}

		if patch.Password.IsSpecified() {
			hash, err := hashPassword(types.Ptr(patch.Password))

			if err != nil {
				return err
			}

			user.Password = hash
		}

		return tx.Save(&user).Error
	})

	if err != nil {
		return nil, translate(err, userEntity)
	}

	return &user, nil
}

// DeleteUser removes the user together with the tasks it owns and its
// notifications. Tasks it was only assigned to, or assigned by it, are kept
// with the reference cleared.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	err := s.unitOfWork(ctx, func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		owned := tx.Model(&models.Task{}).Select("id").Where("user_id = ?", id)

		if err := tx.Model(&models.Notification{}).Where("task_id IN (?)", owned).Update("task_id", nil).Error; err != nil {
			return fmt.Errorf("detach notifications: %w", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return fmt.Errorf("delete notifications: %w", err)
		}

		if err := tx.Model(&models.Task{}).Where("assigned_to = ?", id).Update("assigned_to", nil).Error; err != nil {
			return fmt.Errorf("unassign tasks: %w", err)
		}

		if err := tx.Model(&models.Task{}).Where("assigned_by = ?", id).Update("assigned_by", nil).Error; err != nil {
			return fmt.Errorf("clear task assigners: %w", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("delete owned tasks: %w", err)
		}

		return tx.Delete(&user).Error
	})

	return translate(err, userEntity)
}

func hashPassword(password *string) (*string, error) {
	if password == nil {
		return nil, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	hashed := string(hash)
	return &hashed, nil
}

// CheckPassword reports whether password matches the user's stored hash.
func CheckPassword(user *models.User, password string) bool {
	if user.Password == nil {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)) == nil
}

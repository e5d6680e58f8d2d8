package store

import (
	"context"

	"github.com/oapi-codegen/nullable"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/types"
	"gorm.io/gorm"
)

const notificationEntity = "Notification"

type NotificationFilter struct {
	UserID     *uint
	UnreadOnly bool
}

type NewNotification struct {
	UserID  uint
	TaskID  *uint
	Message string
}

type NotificationPatch struct {
	Message nullable.Nullable[string]
	Read    nullable.Nullable[bool]
}

func (s *Store) ListNotifications(ctx context.Context, filter NotificationFilter) ([]models.Notification, error) {
	where := map[string]interface{}{}

	if filter.UserID != nil {
		where["user_id"] = *filter.UserID
	}

	if filter.UnreadOnly {
		where["read"] = false
	}

	return list[models.Notification](ctx, s.db, where)
}

func (s *Store) GetNotification(ctx context.Context, id uint) (*models.Notification, error) {
	return get[models.Notification](ctx, s.db, id, notificationEntity)
}

func (s *Store) CreateNotification(ctx context.Context, in NewNotification) (*models.Notification, error) {
	notification := models.Notification{
		UserID:  in.UserID,
		TaskID:  in.TaskID,
		Message: in.Message,
	}

	err := s.unitOfWork(ctx, func(tx *gorm.DB) error {
		if err := requireUsers(tx, &in.UserID); err != nil {
			return err
		}

		if in.TaskID != nil {
			ok, err := exists[models.Task](tx, *in.TaskID)

			if err != nil {
				return err
			}

			if !ok {
				return &NotFoundError{Entity: taskEntity}
			}
		}

		return tx.Create(&notification).Error
	})

	if err != nil {
		return nil, translate(err, notificationEntity)
	}

	return &notification, nil
}

func (s *Store) UpdateNotification(ctx context.Context, id uint, patch NotificationPatch) (*models.Notification, error) {
	var notification models.Notification

	err := s.unitOfWork(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&notification, id).Error; err != nil {
			return err
		}

		if v, ok := types.Value(patch.Message); ok {
			notification.Message = v
		}

		if v, ok := types.Value(patch.Read); ok {
			notification.Read = v
		}

		return tx.Save(&notification).Error
	})

	if err != nil {
		return nil, translate(err, notificationEntity)
	}

	return &notification, nil
}

func (s *Store) DeleteNotification(ctx context.Context, id uint) error {
	err := s.unitOfWork(ctx, func(tx *gorm.DB) error {
		var notification models.Notification

		if err := tx.First(&notification, id).Error; err != nil {
			return err
		}

		return tx.Delete(&notification).Error
	})

	return translate(err, notificationEntity)
}

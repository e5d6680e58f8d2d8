package store

import (
	"context"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/types"
	"gorm.io/gorm"
)

const taskEntity = "Task"

// TaskFilter narrows ListTasks by equality. Nil fields do not filter.
type TaskFilter struct {
	UserID     *uint
	AssignedTo *uint
}

type NewTask struct {
	UserID      uint
	Title       string
	Description *string
	Priority    types.Priority
	Status      types.Status
	DueDate     *time.Time
	AssignedTo  *uint
	AssignedBy  *uint
}

// TaskPatch carries the fields of a partial update. Omitted fields are left
// untouched; null clears a nullable column.
type TaskPatch struct {
	Title       nullable.Nullable[string]
	Description nullable.Nullable[string]
	Completed   nullable.Nullable[bool]
	Approved    nullable.Nullable[bool]
	Priority    nullable.Nullable[types.Priority]
	Status      nullable.Nullable[types.Status]
	Result      nullable.Nullable[string]
	DueDate     nullable.Nullable[time.Time]
	AssignedTo  nullable.Nullable[uint]
	AssignedBy  nullable.Nullable[uint]
}

func (s *Store) ListTasks(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	where := map[string]interface{}{}

	if filter.UserID != nil {
		where["user_id"] = *filter.UserID
	}

	if filter.AssignedTo != nil {
		where["assigned_to"] = *filter.AssignedTo
	}

	return list[models.Task](ctx, s.db, where)
}

func (s *Store) GetTask(ctx context.Context, id uint) (*models.Task, error) {
	return get[models.Task](ctx, s.db, id, taskEntity)
}

// CreateTask inserts a task after checking that its owner, and any assignee
// or assigner, exist. A missing user is reported as a User NotFoundError.
func (s *Store) CreateTask(ctx context.Context, in NewTask) (*models.Task, error) {
	task := models.Task{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
		AssignedTo:  in.AssignedTo,
		AssignedBy:  in.AssignedBy,
	}

	if task.Priority == "" {
		task.Priority = types.PriorityMedium
	}

	if task.Status == "" {
		task.Status = types.StatusPending
	}

	err := s.unitOfWork(ctx, func(tx *gorm.DB) error {
		if err := requireUsers(tx, &in.UserID, in.AssignedTo, in.AssignedBy); err != nil {
			return err
		}

		return tx.Create(&task).Error
	})

	if err != nil {
		return nil, translate(err, taskEntity)
	}

	return &task, nil
}

// UpdateTask applies patch to the task. completed and status are independent;
// completed_at follows the completed flag.
func (s *Store) UpdateTask(ctx context.Context, id uint, patch TaskPatch) (*models.Task, error) {
	var task models.Task

	err := s.unitOfWork(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return translate(err, taskEntity)
		}

		if err := requireUsers(tx, types.Ptr(patch.AssignedTo), types.Ptr(patch.AssignedBy)); err != nil {
			return err
		}

		applyTaskPatch(&task, patch, time.Now().UTC())

		return tx.Save(&task).Error
	})

	if err != nil {
		return nil, translate(err, taskEntity)
	}

	return &task, nil
}

// DeleteTask removes the task. Notifications that pointed at it are kept
// with task_id cleared.
func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	err := s.unitOfWork(ctx, func(tx *gorm.DB) error {
		var task models.Task

		if err := tx.First(&task, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Notification{}).Where("task_id = ?", id).Update("task_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&task).Error
	})

	return translate(err, taskEntity)
}

func applyTaskPatch(task *models.Task, patch TaskPatch, now time.Time) {
	if v, ok := types.Value(patch.Title); ok {
		task.Title = v
	}

	if patch.Description.IsSpecified() {
		task.Description = types.Ptr(patch.Description)
	}

	if v, ok := types.Value(patch.Completed); ok {
		switch {
		case v && !task.Completed:
			task.CompletedAt = &now
		case !v:
			task.CompletedAt = nil
		}
		task.Completed = v
	}

	if v, ok := types.Value(patch.Approved); ok {
		task.Approved = v
	}

	if v, ok := types.Value(patch.Priority); ok {
		task.Priority = v
	}

	if v, ok := types.Value(patch.Status); ok {
		task.Status = v
	}

	if patch.Result.IsSpecified() {
		task.Result = types.Ptr(patch.Result)
	}

	if patch.DueDate.IsSpecified() {
		task.DueDate = types.Ptr(patch.DueDate)
	}

	if patch.AssignedTo.IsSpecified() {
		task.AssignedTo = types.Ptr(patch.AssignedTo)
	}

	if patch.AssignedBy.IsSpecified() {
		task.AssignedBy = types.Ptr(patch.AssignedBy)
	}
}

// requireUsers checks that every non-nil id refers to an existing user.
func requireUsers(tx *gorm.DB, ids ...*uint) error {
	for _, id := range ids {
		if id == nil {
			continue
		}

		ok, err := exists[models.User](tx, *id)

		if err != nil {
			return err
		}

		if !ok {
			return &NotFoundError{Entity: userEntity}
		}
	}

	return nil
}

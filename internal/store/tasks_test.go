package store

import (
	"context"
	"testing"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/types"
)

func TestCreateTaskDefaults(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")

	task := createTestTask(t, s, user.ID, "Write docs")

	assert.NotZero(t, task.ID)
	assert.Equal(t, user.ID, task.UserID)
	assert.Equal(t, types.StatusPending, task.Status)
	assert.Equal(t, types.PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.False(t, task.Approved)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.AssignedTo)
}

func TestCreateTaskMissingOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTask(ctx, NewTask{UserID: 12, Title: "orphan"})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User", nf.Entity)

	tasks, err := s.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTaskMissingAssignee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	_, err := s.CreateTask(ctx, NewTask{UserID: user.ID, Title: "x", AssignedTo: uintPtr(user.ID + 100)})
	assert.True(t, IsNotFound(err))

	tasks, err := s.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListTasksByUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	first := createTestTask(t, s, alice.ID, "first")
	createTestTask(t, s, bob.ID, "bob's")
	second := createTestTask(t, s, alice.ID, "second")

	tasks, err := s.ListTasks(ctx, TaskFilter{UserID: &alice.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)

	none, err := s.ListTasks(ctx, TaskFilter{UserID: &carol.ID})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := s.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListTasksByAssignee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lead := createTestUser(t, s, "lead")
	member := createTestUser(t, s, "member")

	createTestTask(t, s, lead.ID, "unassigned")
	assigned, err := s.CreateTask(ctx, NewTask{UserID: lead.ID, Title: "assigned", AssignedTo: &member.ID, AssignedBy: &lead.ID})
	require.NoError(t, err)

	tasks, err := s.ListTasks(ctx, TaskFilter{AssignedTo: &member.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, assigned.ID, tasks[0].ID)
}

func TestUpdateTaskOnlyChangesSuppliedFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	due := time.Date(2030, 5, 1, 9, 30, 0, 0, time.UTC)
	task, err := s.CreateTask(ctx, NewTask{
		UserID:      user.ID,
		Title:       "Write docs",
		Description: strPtr("all of them"),
		Priority:    types.PriorityHigh,
		DueDate:     &due,
	})
	require.NoError(t, err)

	updated, err := s.UpdateTask(ctx, task.ID, TaskPatch{Completed: nullable.NewNullableWithValue(true)})
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, types.StatusPending, updated.Status)
	assert.Equal(t, "Write docs", updated.Title)
	assert.Equal(t, types.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "all of them", *updated.Description)
	require.NotNil(t, updated.DueDate)
	assert.WithinDuration(t, due, *updated.DueDate, time.Second)
	assert.NotNil(t, updated.CompletedAt)

	stored, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	require.NotNil(t, stored.DueDate)
	assert.WithinDuration(t, due, *stored.DueDate, time.Second)
}

func TestUpdateTaskClearsNullableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")

	due := time.Now().UTC().Add(48 * time.Hour)
	task, err := s.CreateTask(ctx, NewTask{UserID: user.ID, Title: "t", Description: strPtr("d"), DueDate: &due, AssignedTo: &user.ID})
	require.NoError(t, err)

	updated, err := s.UpdateTask(ctx, task.ID, TaskPatch{
		Description: nullable.NewNullNullable[string](),
		DueDate:     nullable.NewNullNullable[time.Time](),
		AssignedTo:  nullable.NewNullNullable[uint](),
	})
	require.NoError(t, err)

	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.DueDate)
	assert.Nil(t, updated.AssignedTo)
	assert.Equal(t, "t", updated.Title)
}

func TestUpdateTaskLifecycleFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lead := createTestUser(t, s, "lead")
	member := createTestUser(t, s, "member")
	task := createTestTask(t, s, lead.ID, "ship it")

	updated, err := s.UpdateTask(ctx, task.ID, TaskPatch{
		AssignedTo: nullable.NewNullableWithValue(member.ID),
		AssignedBy: nullable.NewNullableWithValue(lead.ID),
		Status:     nullable.NewNullableWithValue(types.StatusInProgress),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, member.ID, *updated.AssignedTo)
	assert.Equal(t, types.StatusInProgress, updated.Status)
	assert.False(t, updated.Completed)

	updated, err = s.UpdateTask(ctx, task.ID, TaskPatch{
		Result:   nullable.NewNullableWithValue("done and dusted"),
		Approved: nullable.NewNullableWithValue(true),
		Status:   nullable.NewNullableWithValue(types.StatusApproved),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Result)
	assert.Equal(t, "done and dusted", *updated.Result)
	assert.True(t, updated.Approved)
	assert.Equal(t, types.StatusApproved, updated.Status)
}

func TestUpdateTaskUnknownAssignee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	task := createTestTask(t, s, user.ID, "t")

	_, err := s.UpdateTask(ctx, task.ID, TaskPatch{AssignedTo: nullable.NewNullableWithValue(uint(999))})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "User", nf.Entity)

	stored, err := s.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AssignedTo)
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateTask(context.Background(), 5, TaskPatch{Title: nullable.NewNullableWithValue("x")})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Task not found", nf.Error())
}

func TestDeleteTaskDetachesNotifications(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, s, "alice")
	task := createTestTask(t, s, user.ID, "t")

	note, err := s.CreateNotification(ctx, NewNotification{UserID: user.ID, TaskID: &task.ID, Message: "due soon"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	_, err = s.GetTask(ctx, task.ID)
	assert.True(t, IsNotFound(err))

	stored, err := s.GetNotification(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.TaskID)

	assert.True(t, IsNotFound(s.DeleteTask(ctx, task.ID)))
}

func TestApplyTaskPatchCompletedAt(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	task := &models.Task{Title: "t"}

	applyTaskPatch(task, TaskPatch{Completed: nullable.NewNullableWithValue(true)}, now)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)

	later := now.Add(time.Hour)
	applyTaskPatch(task, TaskPatch{Completed: nullable.NewNullableWithValue(true)}, later)
	assert.Equal(t, now, *task.CompletedAt)

	applyTaskPatch(task, TaskPatch{Completed: nullable.NewNullableWithValue(false)}, later)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.Completed)
}

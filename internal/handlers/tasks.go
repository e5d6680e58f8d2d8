package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"
	"github.com/taskboard-dev/taskboard/internal/store"
	"github.com/taskboard-dev/taskboard/internal/types"
	"github.com/taskboard-dev/taskboard/internal/utils"
)

type CreateTaskRequest struct {
	UserID      nullable.Nullable[uint]           `json:"user_id"`
	Title       nullable.Nullable[string]         `json:"title"`
	Description nullable.Nullable[string]         `json:"description"`
	Priority    nullable.Nullable[types.Priority] `json:"priority"`
	Status      nullable.Nullable[types.Status]   `json:"status"`
	DueDate     nullable.Nullable[string]         `json:"due_date"`
	AssignedTo  nullable.Nullable[uint]           `json:"assigned_to"`
	AssignedBy  nullable.Nullable[uint]           `json:"assigned_by"`
}

type UpdateTaskRequest struct {
	Title       nullable.Nullable[string]         `json:"title"`
	Description nullable.Nullable[string]         `json:"description"`
	Completed   nullable.Nullable[bool]           `json:"completed"`
	Approved    nullable.Nullable[bool]           `json:"approved"`
	Priority    nullable.Nullable[types.Priority] `json:"priority"`
	Status      nullable.Nullable[types.Status]   `json:"status"`
	Result      nullable.Nullable[string]         `json:"result"`
	DueDate     nullable.Nullable[string]         `json:"due_date"`
	AssignedTo  nullable.Nullable[uint]           `json:"assigned_to"`
	AssignedBy  nullable.Nullable[uint]           `json:"assigned_by"`
}

// ListTasks handles GET /tasks?user_id=&assigned_to=.
func (h *Handler) ListTasks(ctx *gin.Context) {
	filter := store.TaskFilter{
		UserID:     utils.GetUintQuery(ctx, "user_id"),
		AssignedTo: utils.GetUintQuery(ctx, "assigned_to"),
	}

	tasks, err := h.store.ListTasks(ctx.Request.Context(), filter)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "Task")

	if !ok {
		return
	}

	task, err := h.store.GetTask(ctx.Request.Context(), id)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	var body CreateTaskRequest

	if !h.bindJSON(ctx, &body) {
		return
	}

	userID, hasUserID := types.Value(body.UserID)
	title, hasTitle := types.Value(body.Title)

	if !hasUserID || !hasTitle {
		h.respondError(ctx, invalid(types.MsgMissingFields))
		return
	}

	dueDate, err := timestampPatch(body.DueDate, "due_date")

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	task, err := h.store.CreateTask(ctx.Request.Context(), store.NewTask{
		UserID:      userID,
		Title:       title,
		Description: types.Ptr(body.Description),
		Priority:    valueOrZero(body.Priority),
		Status:      valueOrZero(body.Status),
		DueDate:     types.Ptr(dueDate),
		AssignedTo:  types.Ptr(body.AssignedTo),
		AssignedBy:  types.Ptr(body.AssignedBy),
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.logger.Infow("task created", "task_id", task.ID, "user_id", task.UserID)
	ctx.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "Task")

	if !ok {
		return
	}

	var body UpdateTaskRequest

	if !h.bindJSON(ctx, &body) {
		return
	}

	err := firstError(
		notNull(body.Title, "title"),
		notNull(body.Completed, "completed"),
		notNull(body.Approved, "approved"),
		notNull(body.Priority, "priority"),
		notNull(body.Status, "status"),
	)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	dueDate, err := timestampPatch(body.DueDate, "due_date")

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	task, err := h.store.UpdateTask(ctx.Request.Context(), id, store.TaskPatch{
		Title:       body.Title,
		Description: body.Description,
		Completed:   body.Completed,
		Approved:    body.Approved,
		Priority:    body.Priority,
		Status:      body.Status,
		Result:      body.Result,
		DueDate:     dueDate,
		AssignedTo:  body.AssignedTo,
		AssignedBy:  body.AssignedBy,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "Task")

	if !ok {
		return
	}

	if err := h.store.DeleteTask(ctx.Request.Context(), id); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.logger.Infow("task deleted", "task_id", id)
	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

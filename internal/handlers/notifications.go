package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"
	"github.com/taskboard-dev/taskboard/internal/store"
	"github.com/taskboard-dev/taskboard/internal/types"
	"github.com/taskboard-dev/taskboard/internal/utils"
)

type CreateNotificationRequest struct {
	UserID  nullable.Nullable[uint]   `json:"user_id"`
	TaskID  nullable.Nullable[uint]   `json:"task_id"`
	Message nullable.Nullable[string] `json:"message"`
}

type UpdateNotificationRequest struct {
	Message nullable.Nullable[string] `json:"message"`
	Read    nullable.Nullable[bool]   `json:"read"`
}

// ListNotifications handles GET /notifications?user_id=&unread=.
func (h *Handler) ListNotifications(ctx *gin.Context) {
	filter := store.NotificationFilter{
		UserID:     utils.GetUintQuery(ctx, "user_id"),
		UnreadOnly: utils.GetBoolQuery(ctx, "unread"),
	}

	notifications, err := h.store.ListNotifications(ctx.Request.Context(), filter)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func (h *Handler) GetNotification(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "Notification")

	if !ok {
		return
	}

	notification, err := h.store.GetNotification(ctx.Request.Context(), id)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notification)
}

func (h *Handler) CreateNotification(ctx *gin.Context) {
	var body CreateNotificationRequest

	if !h.bindJSON(ctx, &body) {
		return
	}

	userID, hasUserID := types.Value(body.UserID)
	message, hasMessage := types.Value(body.Message)

	if !hasUserID || !hasMessage {
		h.respondError(ctx, invalid(types.MsgMissingFields))
		return
	}

	notification, err := h.store.CreateNotification(ctx.Request.Context(), store.NewNotification{
		UserID:  userID,
		TaskID:  types.Ptr(body.TaskID),
		Message: message,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, notification)
}

func (h *Handler) UpdateNotification(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "Notification")

	if !ok {
		return
	}

	var body UpdateNotificationRequest

	if !h.bindJSON(ctx, &body) {
		return
	}

	if err := firstError(notNull(body.Message, "message"), notNull(body.Read, "read")); err != nil {
		h.respondError(ctx, err)
		return
	}

	notification, err := h.store.UpdateNotification(ctx.Request.Context(), id, store.NotificationPatch{
		Message: body.Message,
		Read:    body.Read,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notification)
}

func (h *Handler) DeleteNotification(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "Notification")

	if !ok {
		return
	}

	if err := h.store.DeleteNotification(ctx.Request.Context(), id); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

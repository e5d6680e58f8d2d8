package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/nullable"
	"github.com/taskboard-dev/taskboard/internal/store"
	"github.com/taskboard-dev/taskboard/internal/types"
)

type CreateUserRequest struct {
	Username              nullable.Nullable[string]     `json:"username"`
	Email                 nullable.Nullable[string]     `json:"email"`
	FullName              nullable.Nullable[string]     `json:"full_name"`
	Role                  nullable.Nullable[types.Role] `json:"role"`
	Password              nullable.Nullable[string]     `json:"password"`
	PasswordResetRequired nullable.Nullable[bool]       `json:"password_reset_required"`
}

type UpdateUserRequest struct {
	Username              nullable.Nullable[string]     `json:"username"`
	Email                 nullable.Nullable[string]     `json:"email"`
	FullName              nullable.Nullable[string]     `json:"full_name"`
	Role                  nullable.Nullable[types.Role] `json:"role"`
	Password              nullable.Nullable[string]     `json:"password"`
	PasswordResetRequired nullable.Nullable[bool]       `json:"password_reset_required"`
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	users, err := h.store.ListUsers(ctx.Request.Context())

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "User")

	if !ok {
		return
	}

	user, err := h.store.GetUser(ctx.Request.Context(), id)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if !h.bindJSON(ctx, &body) {
		return
	}

	username, hasUsername := types.Value(body.Username)
	email, hasEmail := types.Value(body.Email)
	fullName, hasFullName := types.Value(body.FullName)

	if !hasUsername || !hasEmail || !hasFullName {
		h.respondError(ctx, invalid(types.MsgMissingFields))
		return
	}

	in := store.NewUser{
		Username: username,
		Email:    email,
		FullName: fullName,
		Password: types.Ptr(body.Password),
	}

	if v, ok := types.Value(body.Role); ok {
		in.Role = v
	}

	if v, ok := types.Value(body.PasswordResetRequired); ok {
		in.PasswordResetRequired = v
	}

	user, err := h.store.CreateUser(ctx.Request.Context(), in)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.logger.Infow("user created", "user_id", user.ID, "username", user.Username)
	ctx.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateUser(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "User")

	if !ok {
		return
	}

	var body UpdateUserRequest

	if !h.bindJSON(ctx, &body) {
		return
	}

	err := firstError(
		notNull(body.Username, "username"),
		notNull(body.Email, "email"),
		notNull(body.FullName, "full_name"),
		notNull(body.Role, "role"),
		notNull(body.PasswordResetRequired, "password_reset_required"),
	)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	user, err := h.store.UpdateUser(ctx.Request.Context(), id, store.UserPatch{
		Username:              body.Username,
		Email:                 body.Email,
		FullName:              body.FullName,
		Role:                  body.Role,
		Password:              body.Password,
		PasswordResetRequired: body.PasswordResetRequired,
	})

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	id, ok := h.idParam(ctx, "User")

	if !ok {
		return
	}

	if err := h.store.DeleteUser(ctx.Request.Context(), id); err != nil {
		h.respondError(ctx, err)
		return
	}

	h.logger.Infow("user deleted", "user_id", id)
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

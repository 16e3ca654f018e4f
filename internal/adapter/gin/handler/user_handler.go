package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-crud-service/internal/usecase/user"
	pkgerrors "user-crud-service/pkg/errors"
)

// Response messages returned on success.
const (
	msgUserAdded       = "User added successfully!"
	msgUserUpdated     = "User updated successfully!"
	msgUserDeleted     = "User deleted successfully!"
	msgAllUsersDeleted = "All users deleted successfully!"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.UserUsecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	PlaceOfBirth *string `json:"placeOfBirth"`
}

// UpdateUserRequest represents the HTTP request body for updating a user.
// Absent and null fields are left unchanged.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	PlaceOfBirth *string `json:"placeOfBirth"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	PlaceOfBirth *string `json:"placeOfBirth,omitempty"`
}

// CreateUserResponse is returned after a user is added
type CreateUserResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// MessageResponse carries a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// DeleteAllResponse is returned after all users are removed
type DeleteAllResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PlaceOfBirth: u.PlaceOfBirth,
	}
}

// bindJSON decodes the request body into dst. An empty body decodes as {}.
func bindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// parseID reads the :id path parameter. Anything that is not a non-negative
// integer cannot name a user.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 0 {
		h.log.Warn("invalid user id", zap.String("id", idStr))
		h.handleError(c, pkgerrors.ErrUserNotFound)
		return 0, false
	}
	return id, true
}

func (h *UserHandler) invalidBody(c *gin.Context, err error) {
	h.log.Warn("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_body",
		Message: "Request body must be a JSON object",
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	ucReq := user.ListUsersRequest{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	}

	resp, err := h.uc.ListUsers(c.Request.Context(), ucReq)
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = toUserResponse(u)
	}

	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(resp.User))
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:         req.Name,
		Email:        req.Email,
		PlaceOfBirth: req.PlaceOfBirth,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateUserResponse{
		ID:      resp.ID,
		Message: msgUserAdded,
	})
}

// UpdateUser handles PUT and PATCH /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		h.invalidBody(c, err)
		return
	}

	_, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		PlaceOfBirth: req.PlaceOfBirth,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msgUserUpdated})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if _, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id}); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msgUserDeleted})
}

// DeleteAllUsers handles DELETE /users
func (h *UserHandler) DeleteAllUsers(c *gin.Context) {
	resp, err := h.uc.DeleteAllUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteAllResponse{
		Message: msgAllUsersDeleted,
		Deleted: resp.Deleted,
	})
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var se pkgerrors.StatusError
	if !errors.As(err, &se) {
		h.log.Error("unclassified error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	status := se.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	message := se.Error()
	if p, ok := se.(interface{ PublicMessage() string }); ok {
		message = p.PublicMessage()
	}

	c.JSON(status, ErrorResponse{
		Error:   se.Code(),
		Message: message,
	})
}

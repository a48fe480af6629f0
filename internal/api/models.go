package api

import (
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name"  validate:"max=150"`
}

// RegisterResponse echoes the public fields of the newly created user.
type RegisterResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CSRFResponse carries the CSRF token for header-based submission. The same
// value is set as the csrftoken cookie.
type CSRFResponse struct {
	CSRFToken string `json:"csrf_token"`
}

// UserResponse defines the representation of the authenticated user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsStaff   bool      `json:"is_staff"`
}

// NewUserResponse builds the public representation of a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsStaff:   user.IsStaff,
	}
}

// UpdateMeRequest defines the payload for partial profile updates. Nil
// fields are left unchanged.
type UpdateMeRequest struct {
	Email     *string `json:"email"      validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name"  validate:"omitempty,max=150"`
}

// DeleteMeRequest defines the payload for self-service account deletion.
type DeleteMeRequest struct {
	Password string `json:"password"`
}

// ResetPasswordRequest defines the payload for requesting a reset email.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordConfirmRequest defines the payload for consuming a reset
// token.
type ResetPasswordConfirmRequest struct {
	Password string `json:"password" validate:"required"`
	Token    string `json:"token"    validate:"required"`
}

// ChangePasswordRequest defines the payload for an authenticated password
// change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

// ListResponse defines the representation of a task list.
type ListResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewListResponse builds the public representation of a list.
func NewListResponse(list *domain.List) ListResponse {
	return ListResponse{ID: list.ID, Name: list.Name}
}

// CreateListRequest defines the payload for creating a list.
type CreateListRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateListRequest defines the payload for partially updating a list.
type UpdateListRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// TaskResponse defines the representation of a task.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	ListID      uuid.UUID `json:"list_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// NewTaskResponse builds the public representation of a task.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		ListID:      task.ListID,
		Name:        task.Name,
		Description: task.Description,
	}
}

// CreateTaskRequest defines the payload for creating a task. The owning
// list comes from the URL path, never from the body.
type CreateTaskRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

// UpdateTaskRequest defines the payload for partially updating a task.
// ListID is accepted for compatibility but may only restate the current
// list; task reassignment between lists is not supported.
type UpdateTaskRequest struct {
	ListID      *uuid.UUID `json:"list_id"`
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
}

// PageResponse is the envelope for paginated collections.
type PageResponse struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

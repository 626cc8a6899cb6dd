package errors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Error codes. These strings are the contract the HTTP layer and its
// clients depend on.
const (
	// Authentication errors
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"

	// User errors
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeEmailAlreadyExists = "USER_EMAIL_ALREADY_EXISTS"

	// Task errors
	ErrCodeTaskNotFound      = "TASK_NOT_FOUND"
	ErrCodeInvalidTaskStatus = "INVALID_TASK_STATUS"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Service errors
	ErrCodeInternalError = "INTERNAL_SERVER_ERROR"
)

// Success codes
const (
	CodeUserCreated = "USER_CREATED_SUCCESSFULLY"
	CodeUserUpdated = "USER_UPDATED_SUCCESSFULLY"
	CodeUserDeleted = "USER_DELETED_SUCCESSFULLY"
	CodeTaskCreated = "TASK_CREATED_SUCCESSFULLY"
	CodeTaskUpdated = "TASK_UPDATED_SUCCESSFULLY"
	CodeTaskDeleted = "TASK_DELETED_SUCCESSFULLY"
)

// Response is the uniform envelope returned by every endpoint.
type Response[T any] struct {
	IsSuccess   bool   `json:"is_success"`
	ErrorCode   string `json:"error_code,omitempty"`
	SuccessCode string `json:"success_code,omitempty"`
	Data        *T     `json:"data,omitempty"`
}

// Success writes a 200 envelope with data and an optional success code.
func Success[T any](c *gin.Context, data T, successCode string) {
	c.JSON(http.StatusOK, Response[T]{
		IsSuccess:   true,
		SuccessCode: successCode,
		Data:        &data,
	})
}

// Created writes a 201 envelope with data and an optional success code.
func Created[T any](c *gin.Context, data T, successCode string) {
	c.JSON(http.StatusCreated, Response[T]{
		IsSuccess:   true,
		SuccessCode: successCode,
		Data:        &data,
	})
}

// Fail writes a failure envelope, mapping the error code to an HTTP status.
func Fail(c *gin.Context, errorCode string) {
	c.JSON(StatusForCode(errorCode), Response[struct{}]{
		IsSuccess: false,
		ErrorCode: errorCode,
	})
}

// FailWithStatus writes a failure envelope with an explicit status.
func FailWithStatus(c *gin.Context, status int, errorCode string) {
	c.JSON(status, Response[struct{}]{
		IsSuccess: false,
		ErrorCode: errorCode,
	})
}

// StatusForCode maps an error code to its transport status.
func StatusForCode(code string) int {
	switch {
	case strings.Contains(code, "NOT_FOUND"):
		return http.StatusNotFound
	case strings.Contains(code, "ALREADY_EXISTS"):
		return http.StatusConflict
	case code == ErrCodeUnauthorized,
		code == ErrCodeInvalidCredentials,
		code == ErrCodeInvalidRefreshToken:
		return http.StatusUnauthorized
	case code == ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Helper responders for common error cases

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context) {
	FailWithStatus(c, http.StatusUnauthorized, ErrCodeUnauthorized)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context) {
	FailWithStatus(c, http.StatusBadRequest, ErrCodeInvalidInput)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context) {
	FailWithStatus(c, http.StatusInternalServerError, ErrCodeInternalError)
}

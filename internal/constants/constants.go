package constants

import "time"

// Session / auth
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"

	MinPasswordLength = 8

	// Lifetime of a refresh token issued on login or rotation.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Cleanup job: completed tasks older than this are soft deleted.
const CompletedTaskRetention = 5 * 24 * time.Hour

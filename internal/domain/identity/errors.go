package identity

import "errors"

var (
	ErrUnauthenticated         = errors.New("not authenticated")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrUserNotFound            = errors.New("user not found")
)

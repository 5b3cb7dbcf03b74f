package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmptySearchQuery  = errors.New("search query is required")
	ErrInvalidEmployeeID = errors.New("invalid employee id")
)

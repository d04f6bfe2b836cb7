package common

import "github.com/google/uuid"

// Deref returns the zero value for nil. The Azure DevOps SDK models
// almost every field as a pointer.
func Deref[T any](ptr *T) T {
	var zero T
	if ptr == nil {
		return zero
	}
	return *ptr
}

func Ptr[T any](v T) *T {
	return &v
}

func GetUUIDString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// Package utils holds small generic helpers shared across packages.
package utils

// Value dereferences v, substituting the zero value when v is nil.
// Handy when reading optional fields such as an announcement's
// target semester.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v, for populating optional fields from
// literals.
func Ptr[T any](v T) *T {
	return &v
}

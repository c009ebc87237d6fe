package mapping

func Pointer[T any](v T) *T {
	return &v
}

// ApplyPointer replaces the destination pointer only when src is non-nil,
// so stored data is never erased by blanks.
func ApplyPointer[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

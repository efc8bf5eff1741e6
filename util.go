package metadb

func nonNil[T any](v *T) *T {
	if v == nil {
		panic("nil")
	}
	return v
}

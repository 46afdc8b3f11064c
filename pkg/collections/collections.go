package collections

// Apply applies the applicator function to each item in the input slice.
// A nil input yields an empty, non-nil result so it encodes as [] in JSON.
func Apply[T, V any](items []T, applicator func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = applicator(item)
	}
	return result
}

package model

// Two bounded-collection policies are in play and they are deliberately
// different: findings evict the single oldest entry per insert, while the
// timeline is trimmed to a trailing window in one step.

// evictOldest drops elements from the front one at a time until the slice
// fits the cap. Used for findings, where the front is the oldest entry.
func evictOldest[T any](s []T, max int) []T {
	for len(s) > max {
		s = s[1:]
	}
	return s
}

// keepLast slices to the trailing max elements in a single step. Used for
// the timeline.
func keepLast[T any](s []T, max int) []T {
	if len(s) > max {
		return s[len(s)-max:]
	}
	return s
}

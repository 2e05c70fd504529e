package textutil

// Ellipsize shortens s to at most max runes, appending "..." when it was
// cut. Values of max below 4 still produce at least "...".
func Ellipsize(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 4 {
		return "..."
	}
	return string(runes[:max-3]) + "..."
}

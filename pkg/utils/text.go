// Package utils provides the logger constructor and small text helpers
// shared by the rehabflow CLI and server.
package utils

// Truncate shortens s to at most max runes for display, appending "..."
// when anything was cut. Rune-based so multi-byte plan text is never split
// mid-character. A non-positive max returns s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Package diff compares two normalised responses line by line.
package diff

import (
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
)

const (
	LabelReq1 = "req1"
	LabelReq2 = "req2"
)

// Text returns the unified diff between a and b labelled req1 and req2, or
// an empty string when they are identical.
func Text(a, b string) string {
	return Labeled(LabelReq1, LabelReq2, a, b)
}

func Labeled(labelA, labelB, a, b string) string {
	a = ensureTrailingNewline(a)
	b = ensureTrailingNewline(b)
	if a == b {
		return ""
	}
	return udiff.Unified(labelA, labelB, a, b)
}

// Stats counts added and removed lines in a unified diff.
func Stats(unified string) (added, removed int) {
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

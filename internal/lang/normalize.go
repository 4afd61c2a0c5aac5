package lang

import "strings"

// normalizeSignature collapses runs of whitespace (including newlines
// from multi-line declarations) into single spaces, per spec.md §4.3's
// "whitespace collapsed" normalization rule.
func normalizeSignature(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func nodeText(content []byte, start, end uint32) string {
	if int(end) > len(content) || start > end {
		return ""
	}
	return string(content[start:end])
}

package content

import "strings"

// StripFences removes the conversational wrapping a model reply may carry
// around a JSON payload: a leading code fence (optionally annotated with a
// language tag) and a trailing closing fence. The two markers are handled
// independently, so partial fences are tolerated, and input with no fences
// passes through untouched. The result is best-effort JSON-looking text;
// validity is the parser's problem.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// Drop an optional language tag occupying the rest of the fence line.
		if i := strings.IndexByte(s, '\n'); i >= 0 && isFenceTag(s[:i]) {
			s = s[i+1:]
		} else if isFenceTag(s) {
			// A fence with only a tag and no newline leaves nothing behind.
			s = ""
		}
	}

	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		s = strings.TrimSpace(s)
		s = s[:len(s)-3]
	}

	return strings.TrimSpace(s)
}

// isFenceTag reports whether s looks like a fence language annotation
// ("json", "JSON", "" for a bare fence) rather than payload text.
func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) > 16 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

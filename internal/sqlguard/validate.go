package sqlguard

import (
	"fmt"
	"strings"
)

// forbiddenKeywords is matched as a coarse case-insensitive substring scan.
// A column named "updated_at" trips it too; that false positive costs one
// wasted retry, while a false negative would let a destructive statement
// reach the store.
var forbiddenKeywords = []string{
	"delete", "drop", "update", "insert", "truncate", "alter", "grant", "revoke",
}

// UnsafeError reports a statement rejected by the static safety gate.
type UnsafeError struct {
	Reason string
}

func (e *UnsafeError) Error() string {
	return "unsafe query: " + e.Reason
}

// Validate is the defense-in-depth gate run before any execution. Only
// SELECT and WITH statements pass, and none may contain a forbidden
// keyword anywhere. On success it returns the statement with stray code
// fences stripped.
func Validate(sqlText string) (string, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(sqlText, "```", ""))
	folded := strings.ToLower(cleaned)

	if !strings.HasPrefix(folded, "select") && !strings.HasPrefix(folded, "with") {
		return "", &UnsafeError{Reason: "only SELECT queries or CTE-based SELECT queries are allowed"}
	}
	for _, keyword := range forbiddenKeywords {
		if strings.Contains(folded, keyword) {
			return "", &UnsafeError{Reason: fmt.Sprintf("statement contains forbidden keyword %q", keyword)}
		}
	}
	return cleaned, nil
}

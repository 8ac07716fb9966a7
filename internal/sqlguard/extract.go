// Package sqlguard isolates SQL statements from raw model output and gates
// them against destructive operations before anything reaches the store.
package sqlguard

import (
	"errors"
	"strings"
)

// ErrNoSQL reports model output with no recognizable SQL start token.
// Callers treat this as fatal: there is no statement to anchor a repair on.
var ErrNoSQL = errors.New("no SELECT or WITH statement found in model output")

// Extract locates the SQL statement inside raw model output. It strips
// fenced-code markers, starts the result at the first case-insensitive WITH
// or SELECT (WITH wins when it precedes SELECT, so CTEs stay intact), and
// guarantees a trailing semicolon. It deliberately does not parse SQL; the
// model's output format is not guaranteed, so this only finds a plausible
// start.
func Extract(raw string) (string, error) {
	cleaned := strings.ReplaceAll(raw, "```sql", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	folded := strings.ToLower(cleaned)

	selectPos := strings.Index(folded, "select")
	withPos := strings.Index(folded, "with")

	start := -1
	switch {
	case withPos != -1 && (selectPos == -1 || withPos < selectPos):
		start = withPos
	case selectPos != -1:
		start = selectPos
	}
	if start == -1 {
		return "", ErrNoSQL
	}

	statement := strings.TrimSpace(cleaned[start:])
	if !strings.HasSuffix(statement, ";") {
		statement += ";"
	}
	return statement, nil
}

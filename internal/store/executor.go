package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Result is a fully materialized query result. Rows are decoded into
// column-keyed maps so callers can render or serialize them without
// holding a connection.
type Result struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
	// RowsAffected is set only for statements that produce no result
	// set, such as SELECT ... INTO.
	RowsAffected int64         `json:"rows_affected,omitempty"`
	Duration     time.Duration `json:"-"`
}

// Executor runs read-only SQL against the financial store. Each call
// checks out a dedicated connection, drains the result set eagerly, and
// releases the connection before returning.
type Executor struct {
	db *sql.DB
}

func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// Execute runs sqlText and materializes every row. Execution errors are
// returned alongside a zero Result; callers feed them back into the
// repair loop rather than treating them as fatal.
func (e *Executor) Execute(ctx context.Context, sqlText string) (Result, error) {
	statement := stripTrailingSemicolons(sqlText)
	if statement == "" {
		return Result{}, fmt.Errorf("sql is required")
	}

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("acquire store connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	start := time.Now()

	// SELECT ... INTO mutates state and yields no result set. It has to
	// go through Exec: database/sql discards the affected count once
	// QueryContext has run, and re-running the statement is not an option.
	if selectsInto(statement) {
		execResult, err := conn.ExecContext(ctx, statement)
		if err != nil {
			return Result{}, fmt.Errorf("execute statement: %w", err)
		}
		affected, err := execResult.RowsAffected()
		if err != nil {
			return Result{}, fmt.Errorf("affected row count: %w", err)
		}
		return Result{
			Columns:      []string{},
			Rows:         []map[string]any{},
			RowsAffected: affected,
			Duration:     time.Since(start),
		}, nil
	}

	rows, err := conn.QueryContext(ctx, statement)
	if err != nil {
		return Result{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("query columns: %w", err)
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return Result{}, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		resultRows = append(resultRows, row)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterate rows: %w", err)
	}

	return Result{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: len(resultRows),
		Duration: time.Since(start),
	}, nil
}

// Check plans sqlText without running it, using EXPLAIN as a cheap
// syntax and schema probe.
func (e *Executor) Check(ctx context.Context, sqlText string) error {
	statement := stripTrailingSemicolons(sqlText)
	if statement == "" {
		return fmt.Errorf("sql is required")
	}

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire store connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, "EXPLAIN "+statement)
	if err != nil {
		return fmt.Errorf("explain query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate explain rows: %w", err)
	}
	return nil
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case []byte:
		return string(typed)
	default:
		return typed
	}
}

// selectsInto reports whether the statement carries a bare INTO token,
// which routes the result set into a table instead of returning it. Same
// coarse token scan as the safety gate; INSERT INTO never reaches here
// because the gate rejects it first.
func selectsInto(statement string) bool {
	for _, field := range strings.Fields(strings.ToLower(statement)) {
		if field == "into" {
			return true
		}
	}
	return false
}

func stripTrailingSemicolons(sqlText string) string {
	trimmed := strings.TrimSpace(sqlText)
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ";"))
	}
	return trimmed
}

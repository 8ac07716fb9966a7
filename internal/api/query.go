package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/finsight/finsight/internal/sqlguard"
)

type queryRequest struct {
	SQL string `json:"sql"`
}

type queryResponse struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
	Stats    map[string]any   `json:"stats"`
}

// handleQuery runs caller-supplied SQL through the same safety gate as
// generated SQL before executing it.
func handleQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Executor == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "QUERY_NOT_CONFIGURED", "query executor is not configured", false, nil)
		return
	}

	var request queryRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid query request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(request.SQL) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "SQL_REQUIRED", "sql is required", false, nil)
		return
	}

	safe, err := sqlguard.Validate(request.SQL)
	if err != nil {
		var unsafeErr *sqlguard.UnsafeError
		if errors.As(err, &unsafeErr) {
			writeError(r.Context(), w, http.StatusBadRequest, "SQL_NOT_ALLOWED", unsafeErr.Reason, false, nil)
			return
		}
		writeError(r.Context(), w, http.StatusBadRequest, "SQL_NOT_ALLOWED", err.Error(), false, nil)
		return
	}

	result, err := deps.Executor.Execute(r.Context(), safe)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "QUERY_EXECUTION_FAILED", "query execution failed", false, map[string]any{"details": err.Error()})
		return
	}

	stats := map[string]any{
		"duration_ms": result.Duration.Milliseconds(),
	}
	if len(result.Columns) == 0 {
		// No result set: the statement reports what it touched instead.
		stats["rows_affected"] = result.RowsAffected
	}
	writeJSON(w, http.StatusOK, queryResponse{
		Columns:  result.Columns,
		Rows:     result.Rows,
		RowCount: result.RowCount,
		Stats:    stats,
	})
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/finsight/finsight/internal/pipeline"
)

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	AnalysisID string           `json:"analysis_id"`
	Question   string           `json:"question"`
	Status     string           `json:"status"`
	SQL        string           `json:"sql,omitempty"`
	Columns    []string         `json:"columns,omitempty"`
	Rows       []map[string]any `json:"rows,omitempty"`
	RowCount   int              `json:"row_count"`
	Attempts   int              `json:"attempts"`
	Insights   string           `json:"insights,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func handleAsk(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Pipeline == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "ASK_NOT_CONFIGURED", "question pipeline is not configured", false, nil)
		return
	}

	var request askRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid ask request body", false, map[string]any{"details": err.Error()})
		return
	}
	question := strings.TrimSpace(request.Question)
	if question == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	ctx := r.Context()
	if deps.QuestionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deps.QuestionTimeout)
		defer cancel()
	}

	outcome, err := deps.Pipeline.Answer(ctx, question)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadGateway, "PIPELINE_ERROR", "question pipeline failed", true, map[string]any{"details": err.Error()})
		return
	}

	response := askResponse{
		AnalysisID: uuid.NewString(),
		Question:   outcome.Question,
		Status:     string(outcome.Status),
		SQL:        outcome.SQL,
		Columns:    outcome.Result.Columns,
		Rows:       outcome.Result.Rows,
		RowCount:   outcome.Result.RowCount,
		Attempts:   outcome.Attempts,
		Error:      outcome.LastError,
	}

	// Insight generation is best-effort: a summarizer failure drops the
	// narrative, never the data.
	if deps.Summarizer != nil && outcome.Status == pipeline.StatusSuccess {
		insights, err := deps.Summarizer.Summarize(ctx, question, outcome.SQL, outcome.Result)
		if err != nil {
			if deps.Logger != nil {
				deps.Logger.WarnContext(r.Context(), "insight generation failed", "error", err)
			}
		} else {
			response.Insights = insights
		}
	}

	status := http.StatusOK
	if outcome.Status == pipeline.StatusFailed {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, response)
}

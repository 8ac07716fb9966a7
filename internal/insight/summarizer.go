// Package insight produces a short analyst narrative for an executed
// query result.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/finsight/finsight/internal/nl2sql"
	"github.com/finsight/finsight/internal/store"
)

// maxRenderedRows bounds how much of the result set goes into the
// prompt; summaries rarely need more than the head of the data.
const maxRenderedRows = 20

// Summarizer turns a question and its query result into a few sentences
// of commentary. Failures here never fail the question; callers drop the
// summary and return the data.
type Summarizer struct {
	client nl2sql.Client
}

func NewSummarizer(client nl2sql.Client) *Summarizer {
	return &Summarizer{client: client}
}

func (s *Summarizer) Summarize(ctx context.Context, question, sqlText string, result store.Result) (string, error) {
	prompt := buildSummaryPrompt(question, sqlText, result)
	summary, err := s.client.Invoke(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize result: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

func buildSummaryPrompt(question, sqlText string, result store.Result) string {
	var sb strings.Builder
	sb.WriteString("You are a financial analyst. Write 2-4 sentences of insight about the query result below.\n")
	sb.WriteString("All monetary values are in INR crores.\n")
	sb.WriteString("Only describe what the data shows. Do not invent figures and do not give investment recommendations.\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n\nSQL:\n")
	sb.WriteString(strings.TrimSpace(sqlText))
	sb.WriteString("\n\nResult (")
	fmt.Fprintf(&sb, "%d rows", result.RowCount)
	sb.WriteString("):\n")
	sb.WriteString(renderResult(result))
	return sb.String()
}

func renderResult(result store.Result) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(result.Columns, " | "))
	sb.WriteString("\n")
	for i, row := range result.Rows {
		if i == maxRenderedRows {
			fmt.Fprintf(&sb, "... %d more rows\n", result.RowCount-maxRenderedRows)
			break
		}
		cells := make([]string, 0, len(result.Columns))
		for _, column := range result.Columns {
			cells = append(cells, fmt.Sprintf("%v", row[column]))
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}
	return sb.String()
}

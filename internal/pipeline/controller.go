// Package pipeline drives the generate/validate/execute/repair loop that
// turns an analyst question into an executed SQL result.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsight/finsight/internal/fewshot"
	"github.com/finsight/finsight/internal/nl2sql"
	"github.com/finsight/finsight/internal/observability"
	"github.com/finsight/finsight/internal/sqlguard"
	"github.com/finsight/finsight/internal/store"
)

// Status is the terminal state of one question.
type Status string

const (
	StatusSuccess Status = "success"
	StatusNoData  Status = "no_data"
	StatusFailed  Status = "failed"
)

const (
	// DefaultMaxRetries bounds repair attempts after the initial
	// generation; 2 retries means at most 3 model calls per question.
	DefaultMaxRetries  = 2
	DefaultMaxExamples = 5
)

// Runner executes a validated statement against the store.
type Runner interface {
	Execute(ctx context.Context, sqlText string) (store.Result, error)
}

// Outcome is the full record of one question's trip through the loop.
type Outcome struct {
	Status   Status       `json:"status"`
	Question string       `json:"question"`
	SQL      string       `json:"sql,omitempty"`
	Result   store.Result `json:"result"`
	// Attempts counts model calls, starting at 1: a question answered
	// without repair reports 1, one repair round reports 2.
	Attempts  int    `json:"attempts"`
	LastError string `json:"last_error,omitempty"`
}

type Config struct {
	MaxRetries  int
	MaxExamples int
}

type Controller struct {
	client      nl2sql.Client
	builder     *nl2sql.Builder
	selector    fewshot.Selector
	runner      Runner
	logger      *slog.Logger
	maxRetries  int
	maxExamples int
}

func NewController(client nl2sql.Client, builder *nl2sql.Builder, selector fewshot.Selector, runner Runner, logger *slog.Logger, cfg Config) *Controller {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	maxExamples := cfg.MaxExamples
	if maxExamples <= 0 {
		maxExamples = DefaultMaxExamples
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client:      client,
		builder:     builder,
		selector:    selector,
		runner:      runner,
		logger:      logger,
		maxRetries:  maxRetries,
		maxExamples: maxExamples,
	}
}

// Answer runs the question through generation, static validation, and
// execution. Validation and execution failures feed a repair prompt and
// consume one retry each; output with no recognizable SQL fails
// immediately, and an empty result set terminates as no_data without
// consuming a retry.
func (c *Controller) Answer(ctx context.Context, question string) (Outcome, error) {
	outcome := Outcome{Status: StatusFailed, Question: question}

	examples, err := c.selector.Select(ctx, question, c.maxExamples)
	if err != nil {
		return outcome, fmt.Errorf("select examples: %w", err)
	}

	prompt := c.builder.BuildGenerate(question, examples)
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		outcome.Attempts = attempt + 1

		modelStart := time.Now()
		raw, err := c.client.Invoke(ctx, prompt)
		observability.ObserveModelLatency(time.Since(modelStart))
		if err != nil {
			outcome.LastError = err.Error()
			observability.ObserveQuestionOutcome(string(StatusFailed))
			return outcome, fmt.Errorf("invoke model: %w", err)
		}

		statement, err := sqlguard.Extract(raw)
		if err != nil {
			// No SQL to anchor a repair on; retrying the same
			// prompt would not help.
			outcome.LastError = err.Error()
			observability.ObserveQuestionOutcome(string(StatusFailed))
			return outcome, nil
		}
		outcome.SQL = statement

		safe, err := sqlguard.Validate(statement)
		if err != nil {
			c.logger.WarnContext(ctx, "generated SQL rejected",
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()),
			)
			observability.ObserveFailedAttempt("validate")
			outcome.LastError = err.Error()
			prompt = c.builder.BuildFix(question, statement, err.Error())
			continue
		}
		outcome.SQL = safe

		queryStart := time.Now()
		result, err := c.runner.Execute(ctx, safe)
		observability.ObserveQueryLatency(time.Since(queryStart))
		if err != nil {
			c.logger.WarnContext(ctx, "generated SQL failed to execute",
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()),
			)
			observability.ObserveFailedAttempt("execute")
			outcome.LastError = err.Error()
			prompt = c.builder.BuildFix(question, safe, err.Error())
			continue
		}

		outcome.Result = result
		if result.RowCount == 0 {
			outcome.Status = StatusNoData
			observability.ObserveQuestionOutcome(string(StatusNoData))
			return outcome, nil
		}
		outcome.Status = StatusSuccess
		observability.ObserveQuestionOutcome(string(StatusSuccess))
		return outcome, nil
	}

	observability.ObserveQuestionOutcome(string(StatusFailed))
	return outcome, nil
}

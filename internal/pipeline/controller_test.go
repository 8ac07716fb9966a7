package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/finsight/finsight/internal/fewshot"
	"github.com/finsight/finsight/internal/nl2sql"
	"github.com/finsight/finsight/internal/schema"
	"github.com/finsight/finsight/internal/store"
)

// scriptClient returns canned completions in sequence and records the
// prompts it was asked.
type scriptClient struct {
	responses []string
	prompts   []string
}

func (s *scriptClient) Invoke(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.prompts) > len(s.responses) {
		return "", fmt.Errorf("unexpected model call %d", len(s.prompts))
	}
	return s.responses[len(s.prompts)-1], nil
}

// scriptRunner returns canned results or errors in sequence.
type scriptRunner struct {
	results []store.Result
	errs    []error
	calls   int
}

func (s *scriptRunner) Execute(_ context.Context, _ string) (store.Result, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return store.Result{}, s.errs[i]
	}
	if i < len(s.results) {
		return s.results[i], nil
	}
	return store.Result{}, fmt.Errorf("unexpected execution %d", i+1)
}

func newController(client nl2sql.Client, runner Runner, cfg Config) *Controller {
	builder := nl2sql.NewBuilder(schema.Default())
	selector := fewshot.NewStaticSelector(fewshot.Store())
	return NewController(client, builder, selector, runner, slog.New(slog.DiscardHandler), cfg)
}

func TestAnswerHappyPath(t *testing.T) {
	client := &scriptClient{responses: []string{"SELECT value FROM financial_fact"}}
	runner := &scriptRunner{results: []store.Result{{
		Columns:  []string{"value"},
		Rows:     []map[string]any{{"value": 61896.0}},
		RowCount: 1,
	}}}

	outcome, err := newController(client, runner, Config{}).Answer(context.Background(), "What was revenue?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if outcome.Status != StatusSuccess {
		t.Fatalf("status = %s", outcome.Status)
	}
	if outcome.Attempts != 1 {
		t.Fatalf("attempts = %d", outcome.Attempts)
	}
	if !strings.HasSuffix(outcome.SQL, ";") {
		t.Fatalf("sql = %q", outcome.SQL)
	}
	if outcome.Result.RowCount != 1 {
		t.Fatalf("row count = %d", outcome.Result.RowCount)
	}
}

func TestAnswerRepairsExecutionFailure(t *testing.T) {
	client := &scriptClient{responses: []string{
		"SELECT revenu FROM financial_fact",
		"SELECT value FROM financial_fact",
	}}
	runner := &scriptRunner{
		errs: []error{fmt.Errorf(`column "revenu" does not exist`), nil},
		results: []store.Result{{}, {
			Columns:  []string{"value"},
			Rows:     []map[string]any{{"value": 1.0}},
			RowCount: 1,
		}},
	}

	outcome, err := newController(client, runner, Config{}).Answer(context.Background(), "What was revenue?")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if outcome.Status != StatusSuccess {
		t.Fatalf("status = %s", outcome.Status)
	}
	if outcome.Attempts != 2 {
		t.Fatalf("attempts = %d", outcome.Attempts)
	}
	// The second prompt is a repair prompt carrying the failure.
	if !strings.Contains(client.prompts[1], `column "revenu" does not exist`) {
		t.Fatal("repair prompt missing error text")
	}
	if !strings.Contains(client.prompts[1], "SELECT revenu FROM financial_fact") {
		t.Fatal("repair prompt missing failed SQL")
	}
}

func TestAnswerRepairsUnsafeStatement(t *testing.T) {
	// The forbidden keyword follows the SELECT, so extraction keeps it
	// and the safety gate rejects the whole statement.
	client := &scriptClient{responses: []string{
		"SELECT 1; DROP TABLE financial_fact",
		"SELECT value FROM financial_fact",
	}}
	runner := &scriptRunner{results: []store.Result{{
		Columns:  []string{"value"},
		Rows:     []map[string]any{{"value": 1.0}},
		RowCount: 1,
	}}}

	outcome, err := newController(client, runner, Config{}).Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if outcome.Status != StatusSuccess || outcome.Attempts != 2 {
		t.Fatalf("outcome = %#v", outcome)
	}
	if runner.calls != 1 {
		t.Fatalf("unsafe statement reached the store, calls = %d", runner.calls)
	}
	// The second prompt is a repair prompt carrying the rejected statement.
	if len(client.prompts) != 2 || !strings.Contains(client.prompts[1], "DROP TABLE financial_fact") {
		t.Fatal("repair prompt missing rejected SQL")
	}
}

func TestAnswerExhaustsRetries(t *testing.T) {
	client := &scriptClient{responses: []string{
		"SELECT bad FROM financial_fact",
		"SELECT bad FROM financial_fact",
		"SELECT bad FROM financial_fact",
	}}
	runner := &scriptRunner{errs: []error{
		fmt.Errorf("boom"), fmt.Errorf("boom"), fmt.Errorf("boom"),
	}}

	outcome, err := newController(client, runner, Config{MaxRetries: 2}).Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if outcome.Status != StatusFailed {
		t.Fatalf("status = %s", outcome.Status)
	}
	if outcome.Attempts != 3 {
		t.Fatalf("attempts = %d", outcome.Attempts)
	}
	// Exactly maxRetries+1 model calls, never more.
	if len(client.prompts) != 3 {
		t.Fatalf("model calls = %d", len(client.prompts))
	}
	if outcome.LastError != "boom" {
		t.Fatalf("last error = %q", outcome.LastError)
	}
}

func TestAnswerNoSQLFailsImmediately(t *testing.T) {
	client := &scriptClient{responses: []string{
		"I cannot answer questions about that topic.",
	}}
	runner := &scriptRunner{}

	outcome, err := newController(client, runner, Config{MaxRetries: 2}).Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if outcome.Status != StatusFailed {
		t.Fatalf("status = %s", outcome.Status)
	}
	if len(client.prompts) != 1 {
		t.Fatalf("model calls = %d, want 1", len(client.prompts))
	}
	if runner.calls != 0 {
		t.Fatalf("runner calls = %d", runner.calls)
	}
}

func TestAnswerZeroRowsIsNoData(t *testing.T) {
	client := &scriptClient{responses: []string{
		"SELECT value FROM financial_fact WHERE fiscal_year = 1999",
	}}
	runner := &scriptRunner{results: []store.Result{{Columns: []string{"value"}, Rows: []map[string]any{}}}}

	outcome, err := newController(client, runner, Config{}).Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if outcome.Status != StatusNoData {
		t.Fatalf("status = %s", outcome.Status)
	}
	// An empty result is an answer, not a defect; no repair happens.
	if len(client.prompts) != 1 {
		t.Fatalf("model calls = %d", len(client.prompts))
	}
}

func TestAnswerModelErrorIsReturned(t *testing.T) {
	client := &scriptClient{responses: nil}
	runner := &scriptRunner{}

	_, err := newController(client, runner, Config{}).Answer(context.Background(), "q")
	if err == nil {
		t.Fatal("expected model error")
	}
}

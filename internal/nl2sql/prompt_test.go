package nl2sql

import (
	"strings"
	"testing"

	"github.com/finsight/finsight/internal/fewshot"
	"github.com/finsight/finsight/internal/schema"
)

func TestBuildGenerateIncludesSchemaRulesAndExamples(t *testing.T) {
	builder := NewBuilder(schema.Default())
	examples := []fewshot.Example{
		{Question: "What was revenue in 2024?", SQL: "SELECT 1;"},
		{Question: "How did cash flow trend?", SQL: "SELECT 2;"},
	}

	prompt := builder.BuildGenerate("What is the profit margin?", examples)

	for _, want := range []string{
		"financial_fact",
		"CRITICAL RULES:",
		"Question: What was revenue in 2024?",
		"Question: How did cash flow trend?",
		"Question: What is the profit margin?",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if !strings.HasSuffix(prompt, "SQL:\n") {
		t.Fatalf("prompt does not end with open SQL slot: %q", prompt[len(prompt)-20:])
	}
}

func TestBuildGeneratePreservesExampleOrder(t *testing.T) {
	builder := NewBuilder(schema.Default())
	examples := []fewshot.Example{
		{Question: "alpha", SQL: "SELECT 1;"},
		{Question: "beta", SQL: "SELECT 2;"},
	}

	prompt := builder.BuildGenerate("q", examples)
	if strings.Index(prompt, "alpha") > strings.Index(prompt, "beta") {
		t.Fatal("examples rendered out of selector order")
	}
}

func TestBuildGenerateZeroShot(t *testing.T) {
	builder := NewBuilder(schema.Default())
	prompt := builder.BuildGenerate("q", nil)
	if strings.Contains(prompt, "EXAMPLES:") {
		t.Fatal("zero-shot prompt contains examples header")
	}
}

func TestBuildFixIncludesFailureContext(t *testing.T) {
	builder := NewBuilder(schema.Default())
	prompt := builder.BuildFix(
		"What was revenue?",
		"SELECT revenu FROM financial_fact;",
		`column "revenu" does not exist`,
	)

	for _, want := range []string{
		"SELECT revenu FROM financial_fact;",
		`column "revenu" does not exist`,
		"Question: What was revenue?",
		"Common mistakes",
		"NULLIF",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("fix prompt missing %q", want)
		}
	}
}

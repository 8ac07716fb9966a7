package nl2sql

import (
	"fmt"
	"strings"

	"github.com/finsight/finsight/internal/fewshot"
	"github.com/finsight/finsight/internal/schema"
)

// Builder renders the two prompt shapes the pipeline needs: a generation
// prompt built from the schema, generation rules, and few-shot examples,
// and a repair prompt built from a failing statement and its error text.
// Prompts are never truncated; selectors bound how many examples go in.
type Builder struct {
	descriptor schema.Descriptor
}

func NewBuilder(descriptor schema.Descriptor) *Builder {
	return &Builder{descriptor: descriptor}
}

// BuildGenerate renders the text-to-SQL prompt for a fresh question.
// Examples appear in selector order, each as a question/SQL pair, and the
// prompt ends with the open "SQL:" slot the model is expected to fill.
func (b *Builder) BuildGenerate(question string, examples []fewshot.Example) string {
	var sb strings.Builder
	sb.WriteString("You are an expert SQL developer for a financial analysis database.\n")
	sb.WriteString("Generate a single SQL query that answers the user's question.\n\n")
	sb.WriteString("DATABASE SCHEMA:\n")
	sb.WriteString(b.descriptor.PromptText())
	sb.WriteString("\nCRITICAL RULES:\n")
	for i, rule := range schema.Rules() {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, rule)
	}
	if len(examples) > 0 {
		sb.WriteString("\nEXAMPLES:\n\n")
		for _, example := range examples {
			sb.WriteString("Question: ")
			sb.WriteString(example.Question)
			sb.WriteString("\nSQL:\n")
			sb.WriteString(strings.TrimSpace(example.SQL))
			sb.WriteString("\n\n")
		}
	}
	sb.WriteString("Return only the SQL query, no explanation.\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\nSQL:\n")
	return sb.String()
}

// commonMistakes is appended to every repair prompt; these are the
// failure modes seen most often in generated statements against this
// schema.
var commonMistakes = []string{
	"Wrong normalized_code values; codes must carry the HUL_ prefix exactly as listed in the schema.",
	"Missing joins between financial_fact, line_item, statement, and fiscal_period.",
	"Filtering on the raw line item label instead of li.normalized_code.",
	"Division without a NULLIF guard on the denominator.",
	"Forgetting fp.period_type = 'ANNUAL' when the question asks about years.",
	"Referencing columns that do not exist in the schema.",
}

// BuildFix renders the repair prompt for a statement that failed
// validation or execution.
func (b *Builder) BuildFix(question, brokenSQL, errText string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert SQL developer for a financial analysis database.\n")
	sb.WriteString("The SQL query below failed. Fix it so it answers the question.\n\n")
	sb.WriteString("DATABASE SCHEMA:\n")
	sb.WriteString(b.descriptor.PromptText())
	sb.WriteString("\nQuestion: ")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n\nFailed SQL:\n")
	sb.WriteString(strings.TrimSpace(brokenSQL))
	sb.WriteString("\n\nError:\n")
	sb.WriteString(strings.TrimSpace(errText))
	sb.WriteString("\n\nCommon mistakes to check:\n")
	for _, mistake := range commonMistakes {
		sb.WriteString("- ")
		sb.WriteString(mistake)
		sb.WriteString("\n")
	}
	sb.WriteString("\nReturn only the corrected SQL query, no explanation.\n\nSQL:\n")
	return sb.String()
}

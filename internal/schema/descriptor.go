package schema

import (
	"fmt"
	"strings"
)

// Column describes one column of a financial store table.
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
	References string
}

// Table describes one of the five financial store tables.
type Table struct {
	Name    string
	Columns []Column
	Notes   string
}

// Descriptor is the fixed description of the financial schema that prompt
// construction reasons about. It is built once and treated as read-only.
type Descriptor struct {
	DatasetName     string
	Tables          []Table
	JoinPath        string
	CodeNamespace   string
	NormalizedCodes map[string]string
	FiscalYears     []int
	Currency        string
	Units           string
}

// Default returns the descriptor for the HUL annual dataset (2021-2025).
func Default() Descriptor {
	return Descriptor{
		DatasetName: "HUL (Hindustan Unilever Limited) Financial Data (2021-2025)",
		Tables: []Table{
			{
				Name: "company",
				Columns: []Column{
					{Name: "company_id", Type: "BIGINT", PrimaryKey: true},
					{Name: "name", Type: "TEXT"},
					{Name: "ticker", Type: "TEXT"},
					{Name: "country", Type: "TEXT"},
					{Name: "industry", Type: "TEXT"},
				},
				Notes: "Single company: HUL (ID: 1)",
			},
			{
				Name: "fiscal_period",
				Columns: []Column{
					{Name: "period_id", Type: "BIGINT", PrimaryKey: true},
					{Name: "company_id", Type: "BIGINT", References: "company(company_id)"},
					{Name: "fiscal_year", Type: "INT"},
					{Name: "fiscal_quarter", Type: "TEXT"},
					{Name: "period_type", Type: "TEXT"},
					{Name: "start_date", Type: "DATE"},
					{Name: "end_date", Type: "DATE"},
				},
				Notes: "fiscal_year: 2021-2025; fiscal_quarter: 'FY'; period_type: 'ANNUAL'",
			},
			{
				Name: "statement",
				Columns: []Column{
					{Name: "statement_id", Type: "BIGINT", PrimaryKey: true},
					{Name: "period_id", Type: "BIGINT", References: "fiscal_period(period_id)"},
					{Name: "statement_type", Type: "TEXT"},
					{Name: "currency", Type: "TEXT"},
					{Name: "units", Type: "TEXT"},
				},
				Notes: "statement_type: 'BALANCE', 'CASH_FLOW', 'RATIOS', 'PROFIT_LOSS'; currency 'INR'; units 'CRORES'",
			},
			{
				Name: "line_item",
				Columns: []Column{
					{Name: "line_item_id", Type: "BIGINT", PrimaryKey: true},
					{Name: "name", Type: "TEXT"},
					{Name: "normalized_code", Type: "TEXT"},
					{Name: "statement_category", Type: "TEXT"},
					{Name: "description", Type: "TEXT"},
				},
				Notes: "Categories: ASSET, LIABILITY, REVENUE, EXPENSE, RATIO, CF_OPERATING, CF_INVESTING, CF_FINANCING",
			},
			{
				Name: "financial_fact",
				Columns: []Column{
					{Name: "fact_id", Type: "BIGINT", PrimaryKey: true},
					{Name: "statement_id", Type: "BIGINT", References: "statement(statement_id)"},
					{Name: "line_item_id", Type: "BIGINT", References: "line_item(line_item_id)"},
					{Name: "value", Type: "NUMERIC"},
					{Name: "note", Type: "TEXT"},
					{Name: "source_page", Type: "INT"},
				},
				Notes: "Central fact table with all financial values",
			},
		},
		JoinPath:      "financial_fact -> statement -> fiscal_period -> company; financial_fact -> line_item",
		CodeNamespace: "HUL_",
		NormalizedCodes: map[string]string{
			"Revenue":             "HUL_PROFIT_LOSS_REVENUE_FROM_OPERATIONS_NET",
			"Net Profit":          "HUL_PROFIT_LOSS_PROFIT_LOSS_FOR_THE_PERIOD",
			"Operating Cash Flow": "HUL_CASH_FLOW_NET_CASH_FROM_OPERATING_ACTIVITIES",
			"Total Assets":        "HUL_BALANCE_TOTAL_ASSETS",
			"Current Ratio":       "HUL_RATIOS_CURRENT_RATIO",
			"Net Profit Margin":   "HUL_RATIOS_NET_PROFIT_MARGIN",
			"Debt Equity Ratio":   "HUL_RATIOS_DEBT_EQUITY_RATIO",
		},
		FiscalYears: []int{2021, 2022, 2023, 2024, 2025},
		Currency:    "INR",
		Units:       "CRORES",
	}
}

// PromptText renders the descriptor as the schema block embedded in every
// generation and fix prompt.
func (d Descriptor) PromptText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Database: %s\n\nTables:\n", d.DatasetName)
	for i, table := range d.Tables {
		cols := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			cols = append(cols, col.Name)
		}
		fmt.Fprintf(&b, "%d. %s: (%s)\n", i+1, table.Name, strings.Join(cols, ", "))
		if table.Notes != "" {
			fmt.Fprintf(&b, "   - %s\n", table.Notes)
		}
	}
	b.WriteString("\nKey normalized_code values:\n")
	for _, label := range codeLabels {
		if code, ok := d.NormalizedCodes[label]; ok {
			fmt.Fprintf(&b, "   * %s: %s\n", label, code)
		}
	}
	fmt.Fprintf(&b, "\nJoin Pattern:\n%s\n", d.JoinPath)
	return b.String()
}

// codeLabels fixes the render order so prompts are byte-stable across runs.
var codeLabels = []string{
	"Revenue",
	"Net Profit",
	"Operating Cash Flow",
	"Total Assets",
	"Current Ratio",
	"Net Profit Margin",
	"Debt Equity Ratio",
}

// Rules returns the fixed generation rule set appended to every generate
// prompt. The wording tracks what the upstream dataset requires: exact join
// structure, normalized codes, and numeric safety.
func Rules() []string {
	return []string{
		"Return ONLY the SQL query, no explanations or markdown",
		"ALWAYS use normalized_code from the line_item table - these codes start with the 'HUL_' prefix",
		"REQUIRED JOIN PATTERN: FROM financial_fact ff JOIN statement s ON ff.statement_id = s.statement_id JOIN fiscal_period fp ON s.period_id = fp.period_id JOIN company c ON fp.company_id = c.company_id JOIN line_item li ON ff.line_item_id = li.line_item_id",
		"ALWAYS filter on li.normalized_code, s.statement_type, and fp.fiscal_year as the question requires",
		"Include contextual data: prior years, YoY changes, percentages, averages",
		"Use window functions (LAG, LEAD, FIRST_VALUE, AVG OVER, RANK) for trends and comparisons",
		"Use CASE statements with MAX/GROUP BY for year pivots and CTEs for multi-metric analysis",
		"Handle NULLs with NULLIF in divisions to prevent division by zero",
		"Round percentages to 2 decimals, ratios to 2-3 decimals",
		"All years are ANNUAL (period_type = 'ANNUAL'), fiscal_year range: 2021-2025",
		"Values are in INR Crores",
		"Always select c.name as company_name plus fiscal_year, metric name, and value columns",
	}
}

package fewshot

// Example is one (question, SQL) demonstration pair used for in-context
// steering of the SQL generator.
type Example struct {
	Question string `json:"question"`
	SQL      string `json:"sql"`
}

// Store returns the static demonstration set. The slice header is fresh on
// every call so callers can subset it without touching the backing data;
// the Example values themselves are never mutated.
func Store() []Example {
	return append([]Example(nil), staticExamples...)
}

var staticExamples = []Example{
	{
		Question: "What is the revenue variance between 2022 and 2023?",
		SQL: `SELECT
    c.name as company_name,
    MAX(CASE WHEN fp.fiscal_year = 2022 THEN ff.value END) as revenue_2022,
    MAX(CASE WHEN fp.fiscal_year = 2023 THEN ff.value END) as revenue_2023,
    MAX(CASE WHEN fp.fiscal_year = 2023 THEN ff.value END) -
    MAX(CASE WHEN fp.fiscal_year = 2022 THEN ff.value END) as absolute_variance,
    ROUND(((MAX(CASE WHEN fp.fiscal_year = 2023 THEN ff.value END) -
            MAX(CASE WHEN fp.fiscal_year = 2022 THEN ff.value END)) /
            NULLIF(MAX(CASE WHEN fp.fiscal_year = 2022 THEN ff.value END), 0)) * 100, 2) as variance_percentage
FROM financial_fact ff
JOIN statement s ON ff.statement_id = s.statement_id
JOIN fiscal_period fp ON s.period_id = fp.period_id
JOIN company c ON fp.company_id = c.company_id
JOIN line_item li ON ff.line_item_id = li.line_item_id
WHERE li.normalized_code = 'HUL_PROFIT_LOSS_REVENUE_FROM_OPERATIONS_NET'
    AND s.statement_type = 'PROFIT_LOSS'
    AND fp.fiscal_year IN (2022, 2023)
GROUP BY c.name;`,
	},
	{
		Question: "Show me the trend of net cash from operating activities over all years",
		SQL: `SELECT
    c.name as company_name,
    fp.fiscal_year,
    li.name as metric,
    ff.value,
    s.currency,
    s.units,
    LAG(ff.value) OVER (ORDER BY fp.fiscal_year) as previous_year,
    ff.value - LAG(ff.value) OVER (ORDER BY fp.fiscal_year) as yoy_change,
    ROUND(((ff.value - LAG(ff.value) OVER (ORDER BY fp.fiscal_year)) /
           NULLIF(LAG(ff.value) OVER (ORDER BY fp.fiscal_year), 0)) * 100, 2) as yoy_change_pct
FROM financial_fact ff
JOIN statement s ON ff.statement_id = s.statement_id
JOIN fiscal_period fp ON s.period_id = fp.period_id
JOIN company c ON fp.company_id = c.company_id
JOIN line_item li ON ff.line_item_id = li.line_item_id
WHERE li.normalized_code = 'HUL_CASH_FLOW_NET_CASH_FROM_OPERATING_ACTIVITIES'
    AND s.statement_type = 'CASH_FLOW'
ORDER BY fp.fiscal_year;`,
	},
	{
		Question: "Compare the current ratio across all years",
		SQL: `SELECT
    c.name as company_name,
    MAX(CASE WHEN fp.fiscal_year = 2021 THEN ff.value END) as year_2021,
    MAX(CASE WHEN fp.fiscal_year = 2022 THEN ff.value END) as year_2022,
    MAX(CASE WHEN fp.fiscal_year = 2023 THEN ff.value END) as year_2023,
    MAX(CASE WHEN fp.fiscal_year = 2024 THEN ff.value END) as year_2024,
    MAX(CASE WHEN fp.fiscal_year = 2025 THEN ff.value END) as year_2025,
    ROUND(AVG(ff.value), 2) as avg_ratio,
    ROUND(MIN(ff.value), 2) as min_ratio,
    ROUND(MAX(ff.value), 2) as max_ratio
FROM financial_fact ff
JOIN statement s ON ff.statement_id = s.statement_id
JOIN fiscal_period fp ON s.period_id = fp.period_id
JOIN company c ON fp.company_id = c.company_id
JOIN line_item li ON ff.line_item_id = li.line_item_id
WHERE li.normalized_code = 'HUL_RATIOS_CURRENT_RATIO'
    AND s.statement_type = 'RATIOS'
GROUP BY c.name;`,
	},
	{
		Question: "What is the profit margin trend over the years?",
		SQL: `SELECT
    c.name as company_name,
    fp.fiscal_year,
    li.name as metric,
    ff.value as net_profit_margin,
    LAG(ff.value, 1) OVER (ORDER BY fp.fiscal_year) as prev_year_margin,
    ff.value - LAG(ff.value, 1) OVER (ORDER BY fp.fiscal_year) as margin_change,
    ROUND(AVG(ff.value) OVER (), 2) as avg_margin_all_years
FROM financial_fact ff
JOIN statement s ON ff.statement_id = s.statement_id
JOIN fiscal_period fp ON s.period_id = fp.period_id
JOIN company c ON fp.company_id = c.company_id
JOIN line_item li ON ff.line_item_id = li.line_item_id
WHERE li.normalized_code = 'HUL_RATIOS_NET_PROFIT_MARGIN'
    AND s.statement_type = 'RATIOS'
ORDER BY fp.fiscal_year;`,
	},
	{
		Question: "Show me total assets growth from 2021 to 2025",
		SQL: `SELECT
    c.name as company_name,
    fp.fiscal_year,
    li.name as metric,
    ff.value as total_assets,
    s.units,
    LAG(ff.value, 1) OVER (ORDER BY fp.fiscal_year) as prev_year_assets,
    ff.value - LAG(ff.value, 1) OVER (ORDER BY fp.fiscal_year) as yoy_growth,
    ROUND(((ff.value - LAG(ff.value, 1) OVER (ORDER BY fp.fiscal_year)) /
           NULLIF(LAG(ff.value, 1) OVER (ORDER BY fp.fiscal_year), 0)) * 100, 2) as yoy_growth_pct,
    ROUND(((ff.value - FIRST_VALUE(ff.value) OVER (ORDER BY fp.fiscal_year)) /
           NULLIF(FIRST_VALUE(ff.value) OVER (ORDER BY fp.fiscal_year), 0)) * 100, 2) as cumulative_growth_pct
FROM financial_fact ff
JOIN statement s ON ff.statement_id = s.statement_id
JOIN fiscal_period fp ON s.period_id = fp.period_id
JOIN company c ON fp.company_id = c.company_id
JOIN line_item li ON ff.line_item_id = li.line_item_id
WHERE li.normalized_code = 'HUL_BALANCE_TOTAL_ASSETS'
    AND s.statement_type = 'BALANCE'
ORDER BY fp.fiscal_year;`,
	},
	{
		Question: "Compare debt equity ratio with return on net worth",
		SQL: `WITH debt_equity AS (
    SELECT
        fp.fiscal_year,
        ff.value as debt_equity_ratio
    FROM financial_fact ff
    JOIN statement s ON ff.statement_id = s.statement_id
    JOIN fiscal_period fp ON s.period_id = fp.period_id
    JOIN line_item li ON ff.line_item_id = li.line_item_id
    WHERE li.normalized_code = 'HUL_RATIOS_DEBT_EQUITY_RATIO'
        AND s.statement_type = 'RATIOS'
),
return_metrics AS (
    SELECT
        fp.fiscal_year,
        ff.value as return_on_net_worth
    FROM financial_fact ff
    JOIN statement s ON ff.statement_id = s.statement_id
    JOIN fiscal_period fp ON s.period_id = fp.period_id
    JOIN line_item li ON ff.line_item_id = li.line_item_id
    WHERE li.normalized_code = 'HUL_RATIOS_RETURN_ON_NET_WORTH'
        AND s.statement_type = 'RATIOS'
)
SELECT
    de.fiscal_year,
    de.debt_equity_ratio,
    rm.return_on_net_worth,
    ROUND(de.debt_equity_ratio * rm.return_on_net_worth, 2) as leverage_adjusted_return
FROM debt_equity de
JOIN return_metrics rm ON de.fiscal_year = rm.fiscal_year
ORDER BY de.fiscal_year;`,
	},
	{
		Question: "What are the key profitability metrics for 2024?",
		SQL: `SELECT
    c.name as company_name,
    fp.fiscal_year,
    li.name as metric,
    ff.value,
    ROUND(AVG(ff.value) OVER (PARTITION BY li.line_item_id), 2) as avg_across_years,
    ff.value - AVG(ff.value) OVER (PARTITION BY li.line_item_id) as variance_from_avg
FROM financial_fact ff
JOIN statement s ON ff.statement_id = s.statement_id
JOIN fiscal_period fp ON s.period_id = fp.period_id
JOIN company c ON fp.company_id = c.company_id
JOIN line_item li ON ff.line_item_id = li.line_item_id
WHERE li.normalized_code IN (
        'HUL_RATIOS_NET_PROFIT_MARGIN',
        'HUL_RATIOS_OPERATING_PROFIT_MARGIN',
        'HUL_RATIOS_RETURN_ON_NET_WORTH',
        'HUL_RATIOS_RETURN_ON_CAPITAL_EMPLOYED'
    )
    AND s.statement_type = 'RATIOS'
    AND fp.fiscal_year = 2024
ORDER BY li.name;`,
	},
	{
		Question: "Analyze working capital efficiency over time",
		SQL: `WITH current_assets AS (
    SELECT
        fp.fiscal_year,
        ff.value as current_assets
    FROM financial_fact ff
    JOIN statement s ON ff.statement_id = s.statement_id
    JOIN fiscal_period fp ON s.period_id = fp.period_id
    JOIN line_item li ON ff.line_item_id = li.line_item_id
    WHERE li.normalized_code = 'HUL_BALANCE_TOTAL_CURRENT_ASSETS'
        AND s.statement_type = 'BALANCE'
),
current_liabilities AS (
    SELECT
        fp.fiscal_year,
        ff.value as current_liabilities
    FROM financial_fact ff
    JOIN statement s ON ff.statement_id = s.statement_id
    JOIN fiscal_period fp ON s.period_id = fp.period_id
    JOIN line_item li ON ff.line_item_id = li.line_item_id
    WHERE li.normalized_code = 'HUL_BALANCE_TOTAL_CURRENT_LIABILITIES'
        AND s.statement_type = 'BALANCE'
)
SELECT
    ca.fiscal_year,
    ca.current_assets,
    cl.current_liabilities,
    ca.current_assets - cl.current_liabilities as working_capital,
    ROUND(ca.current_assets / NULLIF(cl.current_liabilities, 0), 2) as current_ratio
FROM current_assets ca
JOIN current_liabilities cl ON ca.fiscal_year = cl.fiscal_year
ORDER BY ca.fiscal_year;`,
	},
}

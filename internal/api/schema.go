package api

import (
	"net/http"

	"github.com/finsight/finsight/internal/fewshot"
)

type schemaTable struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Notes   string   `json:"notes,omitempty"`
}

type schemaResponse struct {
	Dataset         string            `json:"dataset"`
	Tables          []schemaTable     `json:"tables"`
	JoinPath        string            `json:"join_path"`
	NormalizedCodes map[string]string `json:"normalized_codes"`
	FiscalYears     []int             `json:"fiscal_years"`
	Currency        string            `json:"currency"`
	Units           string            `json:"units"`
}

func handleSchema(deps Dependencies, w http.ResponseWriter, _ *http.Request) {
	descriptor := deps.Descriptor
	tables := make([]schemaTable, 0, len(descriptor.Tables))
	for _, table := range descriptor.Tables {
		cols := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			cols = append(cols, col.Name)
		}
		tables = append(tables, schemaTable{Name: table.Name, Columns: cols, Notes: table.Notes})
	}
	writeJSON(w, http.StatusOK, schemaResponse{
		Dataset:         descriptor.DatasetName,
		Tables:          tables,
		JoinPath:        descriptor.JoinPath,
		NormalizedCodes: descriptor.NormalizedCodes,
		FiscalYears:     descriptor.FiscalYears,
		Currency:        descriptor.Currency,
		Units:           descriptor.Units,
	})
}

func handleExamples(deps Dependencies, w http.ResponseWriter, _ *http.Request) {
	examples := deps.Examples
	if examples == nil {
		examples = []fewshot.Example{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"examples": examples,
		"count":    len(examples),
	})
}

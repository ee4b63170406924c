package utils

import (
	"encoding/json"
	"fmt"

	"github.com/kerem-kaynak/fabrika/internal/entity"
)

// StorageModelDocuments flattens an imported storage model into documents
// for the resources index: one per table, one per column. Column entries are
// read out of each table's schema document, so a table whose schema fails to
// decode still gets its own document.
func StorageModelDocuments(model *entity.StorageModel) []map[string]interface{} {
	var documents []map[string]interface{}

	for i := range model.Tables {
		table := &model.Tables[i]
		documents = append(documents, map[string]interface{}{
			"id":                 table.ID.String(),
			"type":               "table",
			"name":               table.Name,
			"description":        table.Description,
			"storage_model_id":   model.ID.String(),
			"storage_model_name": model.Name,
		})

		var schema struct {
			Columns []struct {
				Name    string `json:"name"`
				Type    string `json:"type"`
				Comment string `json:"comment"`
			} `json:"columns"`
		}
		if err := json.Unmarshal(table.Schema, &schema); err != nil {
			continue
		}

		for idx, column := range schema.Columns {
			documents = append(documents, map[string]interface{}{
				"id":               fmt.Sprintf("%s_col_%d", table.ID.String(), idx),
				"type":             "column",
				"name":             column.Name,
				"description":      column.Comment,
				"column_type":      column.Type,
				"storage_table_id": table.ID.String(),
				"storage_model_id": model.ID.String(),
				"table_name":       table.Name,
			})
		}
	}

	return documents
}

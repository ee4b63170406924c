package utils

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DocumentFields decodes the fields array of a free-form {"fields": [...]}
// document. Malformed input yields nil, the caller decides whether an empty
// list is acceptable.
func DocumentFields(raw json.RawMessage) []map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var doc struct {
		Fields []map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc.Fields
}

// FieldString returns the first non-empty string value among the given keys.
func FieldString(field map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := field[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// ParseIDs parses an id list into uuids, dropping duplicates while keeping
// the original order. Returns the first invalid entry's raw value alongside
// the parsed list.
func ParseIDs(raw []string) ([]uuid.UUID, string) {
	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, value
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, ""
}

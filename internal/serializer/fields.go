package serializer

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// DomainFields extracts the normalized field list out of a domain's schema
// document. Schema documents are free-form JSON, so extraction tolerates
// missing or malformed input and legacy spellings: "column" for "key" and
// "label" for "name". Entries without a resolved key or name are dropped.
func DomainFields(schema datatypes.JSON) []map[string]interface{} {
	fields := []map[string]interface{}{}
	if len(schema) == 0 {
		return fields
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(schema, &doc); err != nil {
		return fields
	}

	raw, ok := doc["fields"].([]interface{})
	if !ok {
		return fields
	}

	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		key := stringValue(entry["key"])
		if key == "" {
			key = stringValue(entry["column"])
		}
		name := stringValue(entry["name"])
		if name == "" {
			name = stringValue(entry["label"])
		}
		if key == "" || name == "" {
			continue
		}

		field := map[string]interface{}{
			"key":  key,
			"name": name,
		}
		if fieldType := stringValue(entry["type"]); fieldType != "" {
			field["type"] = fieldType
		} else if fieldType := stringValue(entry["dataType"]); fieldType != "" {
			field["type"] = fieldType
		}
		if required, ok := entry["required"].(bool); ok {
			field["required"] = required
		}
		// An explicit null description is preserved, an absent one is not.
		if description, present := entry["description"]; present {
			switch value := description.(type) {
			case string:
				field["description"] = value
			case nil:
				field["description"] = nil
			}
		}
		fields = append(fields, field)
	}

	return fields
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/kerem-kaynak/fabrika/internal/entity"
)

func TestCreateFormModelRejectsUnknownComponent(t *testing.T) {
	ctx := testContext(t)
	_, table := seedStorageTable(t, ctx.DB, "users")

	w := postJSON(t, CreateFormModel(ctx), "/api/v1/form-models/", map[string]interface{}{
		"name":           "user form",
		"storageTableId": table.ID.String(),
		"schema": map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{"column": "name", "label": "Name", "required": true, "component": "checkbox"},
			},
		},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(decodeBody(t, w)["error"].(string), "component") {
		t.Fatalf("expected component validation message")
	}

	var count int64
	if err := ctx.DB.Model(&entity.FormModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count forms: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no form persisted, got %d", count)
	}
}

func TestCreateFormModelRoundTrip(t *testing.T) {
	ctx := testContext(t)
	_, table := seedStorageTable(t, ctx.DB, "users")

	w := postJSON(t, CreateFormModel(ctx), "/api/v1/form-models/", map[string]interface{}{
		"name":           "user form",
		"storageTableId": table.ID.String(),
		"schema": map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{"column": "name", "label": "Name", "required": true, "component": "text"},
				map[string]interface{}{"column": "bio", "label": "Bio", "required": false, "component": "textarea"},
			},
			"meta": map[string]interface{}{"submitLabel": "Save"},
		},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["name"] != "user form" {
		t.Fatalf("unexpected name: %v", body["name"])
	}

	schema := body["schema"].(map[string]interface{})
	fields := schema["fields"].([]interface{})
	if len(fields) != 2 {
		t.Fatalf("schema fields not round-tripped: %v", fields)
	}
	second := fields[1].(map[string]interface{})
	if second["component"] != "textarea" || second["required"] != false {
		t.Fatalf("field content lost: %v", second)
	}
	// Free-form keys outside the fields array survive verbatim.
	meta := schema["meta"].(map[string]interface{})
	if meta["submitLabel"] != "Save" {
		t.Fatalf("meta lost: %v", schema["meta"])
	}

	operations, ok := body["operations"].([]interface{})
	if !ok || len(operations) != 0 {
		t.Fatalf("expected empty operations, got %v", body["operations"])
	}
}

func TestCreateFormModelRequiresSchemaFields(t *testing.T) {
	ctx := testContext(t)
	_, table := seedStorageTable(t, ctx.DB, "users")

	w := postJSON(t, CreateFormModel(ctx), "/api/v1/form-models/", map[string]interface{}{
		"name":           "user form",
		"storageTableId": table.ID.String(),
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(decodeBody(t, w)["error"].(string), "schema.fields") {
		t.Fatalf("expected schema.fields validation message")
	}
}

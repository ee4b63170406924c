package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/kerem-kaynak/fabrika/internal/entity"
)

func TestCreateDomainModelDeduplicatesLinks(t *testing.T) {
	ctx := testContext(t)
	_, table := seedStorageTable(t, ctx.DB, "users")

	w := postJSON(t, CreateDomainModel(ctx), "/api/v1/domain-models/", map[string]interface{}{
		"name": "customer",
		"schema": map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{"key": "uid", "name": "User ID"},
			},
		},
		"storageTableIds": []string{table.ID.String(), table.ID.String()},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := ctx.DB.Model(&entity.DomainModelTable{}).Count(&count).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one deduplicated link, got %d", count)
	}

	body := decodeBody(t, w)
	tables := body["storageTables"].([]interface{})
	if len(tables) != 1 {
		t.Fatalf("expected one linked table in response, got %d", len(tables))
	}
	if tables[0].(map[string]interface{})["name"] != "users" {
		t.Fatalf("unexpected linked table: %v", tables[0])
	}

	fields := body["fields"].([]interface{})
	if len(fields) != 1 {
		t.Fatalf("expected one extracted field, got %v", body["fields"])
	}
	field := fields[0].(map[string]interface{})
	if field["key"] != "uid" || field["name"] != "User ID" {
		t.Fatalf("unexpected field: %v", field)
	}
}

func TestCreateDomainModelRequiresKeyAndName(t *testing.T) {
	ctx := testContext(t)

	w := postJSON(t, CreateDomainModel(ctx), "/api/v1/domain-models/", map[string]interface{}{
		"name": "customer",
		"schema": map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{"key": "uid"},
			},
		},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(decodeBody(t, w)["error"].(string), "schema.fields[0].name is required") {
		t.Fatalf("expected field name validation message")
	}

	var count int64
	if err := ctx.DB.Model(&entity.DomainModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count domains: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no domain persisted, got %d", count)
	}
}

func TestCreateDomainModelRejectsInvalidLinkID(t *testing.T) {
	ctx := testContext(t)

	w := postJSON(t, CreateDomainModel(ctx), "/api/v1/domain-models/", map[string]interface{}{
		"name": "customer",
		"schema": map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{"key": "uid", "name": "User ID"},
			},
		},
		"viewModelIds": []string{"not-a-uuid"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(decodeBody(t, w)["error"].(string), "viewModelIds") {
		t.Fatalf("expected viewModelIds validation message")
	}
}

func TestCreateDomainModelLinksAllFourKinds(t *testing.T) {
	ctx := testContext(t)
	_, table := seedStorageTable(t, ctx.DB, "users")

	view := entity.ViewModel{
		Name:           "user list",
		StorageModelID: table.StorageModelID,
		StorageTableID: table.ID,
		Layout:         []byte(`{"fields":[{"column":"name","label":"Name"}]}`),
	}
	if err := ctx.DB.Create(&view).Error; err != nil {
		t.Fatalf("create view: %v", err)
	}
	form := entity.FormModel{
		Name:           "user form",
		StorageTableID: table.ID,
		Schema:         []byte(`{"fields":[{"column":"name","label":"Name","required":true,"component":"text"}]}`),
	}
	if err := ctx.DB.Create(&form).Error; err != nil {
		t.Fatalf("create form: %v", err)
	}
	operation := entity.OperationModel{Name: "list users", Type: entity.OperationTypeRead}
	if err := ctx.DB.Create(&operation).Error; err != nil {
		t.Fatalf("create operation: %v", err)
	}

	w := postJSON(t, CreateDomainModel(ctx), "/api/v1/domain-models/", map[string]interface{}{
		"name": "customer",
		"schema": map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{"key": "uid", "name": "User ID", "type": "string", "required": true},
			},
		},
		"storageTableIds":   []string{table.ID.String()},
		"viewModelIds":      []string{view.ID.String()},
		"formModelIds":      []string{form.ID.String()},
		"operationModelIds": []string{operation.ID.String()},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	for key, want := range map[string]string{
		"storageTables":   "users",
		"viewModels":      "user list",
		"formModels":      "user form",
		"operationModels": "list users",
	} {
		list, ok := body[key].([]interface{})
		if !ok || len(list) != 1 {
			t.Fatalf("expected one %s entry, got %v", key, body[key])
		}
		if list[0].(map[string]interface{})["name"] != want {
			t.Fatalf("unexpected %s entry: %v", key, list[0])
		}
	}
}

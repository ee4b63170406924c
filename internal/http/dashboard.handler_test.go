package http

import (
	"net/http"
	"testing"

	"github.com/kerem-kaynak/fabrika/internal/entity"
)

func TestGetDashboardCombinesAllEntityTypes(t *testing.T) {
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
	domain := entity.DomainModel{
		Name:   "customer",
		Schema: []byte(`{"fields":[{"key":"uid","name":"User ID"}]}`),
		Tables: []entity.DomainModelTable{{StorageTableID: table.ID}},
	}
	if err := ctx.DB.Create(&domain).Error; err != nil {
		t.Fatalf("create domain: %v", err)
	}

	w := getJSON(t, GetDashboard(ctx), "/api/v1/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	for key, want := range map[string]int{
		"storageModels":   1,
		"viewModels":      1,
		"formModels":      1,
		"operationModels": 1,
		"domainModels":    1,
	} {
		list, ok := body[key].([]interface{})
		if !ok {
			t.Fatalf("missing %s in dashboard payload", key)
		}
		if len(list) != want {
			t.Fatalf("expected %d %s, got %d", want, key, len(list))
		}
	}

	// The view list carries its shallow table back-reference.
	viewDoc := body["viewModels"].([]interface{})[0].(map[string]interface{})
	backRef, ok := viewDoc["storageTable"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected view storage table back-reference")
	}
	if forms, ok := backRef["forms"].([]interface{}); !ok || len(forms) != 0 {
		t.Fatalf("view back-reference must stay shallow, got %v", backRef["forms"])
	}

	// The domain payload resolves its join rows into the linked table.
	domainDoc := body["domainModels"].([]interface{})[0].(map[string]interface{})
	linkedTables := domainDoc["storageTables"].([]interface{})
	if len(linkedTables) != 1 {
		t.Fatalf("expected one linked table, got %v", domainDoc["storageTables"])
	}
}

func TestGetDashboardEmpty(t *testing.T) {
	ctx := testContext(t)

	w := getJSON(t, GetDashboard(ctx), "/api/v1/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	for _, key := range []string{"storageModels", "viewModels", "formModels", "operationModels", "domainModels"} {
		list, ok := body[key].([]interface{})
		if !ok {
			t.Fatalf("expected %s to be an empty array, got %v", key, body[key])
		}
		if len(list) != 0 {
			t.Fatalf("expected empty %s, got %d entries", key, len(list))
		}
	}
}

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/kerem-kaynak/fabrika/internal/appcontext"
	"github.com/kerem-kaynak/fabrika/internal/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.AutoMigrate(
		&entity.StorageModel{},
		&entity.StorageTable{},
		&entity.ViewModel{},
		&entity.FormModel{},
		&entity.OperationModel{},
		&entity.DomainModel{},
		&entity.DomainModelTable{},
		&entity.DomainModelView{},
		&entity.DomainModelForm{},
		&entity.DomainModelOperation{},
	); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return db
}

func testContext(t *testing.T) *appcontext.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &appcontext.Context{
		DB:     setupTestDB(t),
		Logger: zap.NewNop(),
	}
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func getJSON(t *testing.T, handler gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", path, nil)
	handler(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func seedStorageTable(t *testing.T, db *gorm.DB, name string) (*entity.StorageModel, *entity.StorageTable) {
	t.Helper()
	model := entity.StorageModel{
		Name:     "seed model",
		Database: "seed",
		Schema:   []byte(`{"tables":[]}`),
		Tables: []entity.StorageTable{
			{Name: name, Schema: []byte(`{"columns":[]}`)},
		},
	}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("seed storage model: %v", err)
	}
	return &model, &model.Tables[0]
}

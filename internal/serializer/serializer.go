// Package serializer flattens persisted aggregates into plain nested
// documents for the API. Relations that were not loaded degrade to empty
// arrays or are left out instead of failing, and nesting depth is bounded by
// an explicit shallow/deep switch so mutually-referencing entities cannot
// recurse forever.
package serializer

import (
	"encoding/json"
	"time"

	"github.com/kerem-kaynak/fabrika/internal/entity"
	"gorm.io/datatypes"
)

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// document decodes a free-form JSON column. Empty or invalid payloads come
// back as nil rather than an error, documents have no enforced shape.
func document(raw datatypes.JSON) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return value
}

func base(id string, name string, description string, createdAt time.Time, updatedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		"id":          id,
		"name":        name,
		"description": description,
		"createdAt":   timestamp(createdAt),
		"updatedAt":   timestamp(updatedAt),
	}
}

// StorageModel serializes a model with its full relation graph: tables deep,
// operations and views shallow.
func StorageModel(m *entity.StorageModel) map[string]interface{} {
	doc := base(m.ID.String(), m.Name, m.Description, m.CreatedAt, m.UpdatedAt)
	doc["database"] = m.Database
	doc["connection"] = m.Connection
	doc["schema"] = document(m.Schema)

	tables := make([]map[string]interface{}, 0, len(m.Tables))
	for idx := range m.Tables {
		tables = append(tables, StorageTable(&m.Tables[idx], true))
	}
	doc["tables"] = tables

	operations := make([]map[string]interface{}, 0, len(m.Operations))
	for idx := range m.Operations {
		operations = append(operations, OperationModel(&m.Operations[idx], false))
	}
	doc["operations"] = operations

	views := make([]map[string]interface{}, 0, len(m.Views))
	for idx := range m.Views {
		views = append(views, ViewModel(&m.Views[idx]))
	}
	doc["views"] = views

	return doc
}

// StorageTable serializes a table. Deep includes its forms (with their
// operations) and views; shallow renders both as empty arrays, which breaks
// the Table→Form→Table cycle when a table appears as a back-reference.
func StorageTable(t *entity.StorageTable, deep bool) map[string]interface{} {
	doc := base(t.ID.String(), t.Name, t.Description, t.CreatedAt, t.UpdatedAt)
	doc["storageModelId"] = t.StorageModelID.String()
	doc["schema"] = document(t.Schema)

	forms := []map[string]interface{}{}
	views := []map[string]interface{}{}
	if deep {
		for idx := range t.Forms {
			forms = append(forms, FormModel(&t.Forms[idx], true))
		}
		for idx := range t.Views {
			views = append(views, ViewModel(&t.Views[idx]))
		}
	}
	doc["forms"] = forms
	doc["views"] = views

	return doc
}

// ViewModel serializes a view with its layout and, when loaded, a shallow
// storage table back-reference.
func ViewModel(v *entity.ViewModel) map[string]interface{} {
	doc := base(v.ID.String(), v.Name, v.Description, v.CreatedAt, v.UpdatedAt)
	doc["storageModelId"] = v.StorageModelID.String()
	doc["storageTableId"] = v.StorageTableID.String()
	doc["layout"] = document(v.Layout)
	if v.StorageTable != nil {
		doc["storageTable"] = StorageTable(v.StorageTable, false)
	}
	return doc
}

// FormModel serializes a form. Deep carries its operations and, when loaded,
// a shallow storage table back-reference; shallow carries neither so an
// operation's form back-reference stays flat.
func FormModel(f *entity.FormModel, deep bool) map[string]interface{} {
	doc := base(f.ID.String(), f.Name, f.Description, f.CreatedAt, f.UpdatedAt)
	doc["storageTableId"] = f.StorageTableID.String()
	doc["schema"] = document(f.Schema)
	if deep {
		operations := make([]map[string]interface{}, 0, len(f.Operations))
		for idx := range f.Operations {
			operations = append(operations, OperationModel(&f.Operations[idx], false))
		}
		doc["operations"] = operations
		if f.StorageTable != nil {
			doc["storageTable"] = StorageTable(f.StorageTable, false)
		}
	}
	return doc
}

// OperationModel serializes an operation. Deep includes the form model
// back-reference (shallow, without its own operations) when loaded.
func OperationModel(o *entity.OperationModel, deep bool) map[string]interface{} {
	doc := base(o.ID.String(), o.Name, o.Description, o.CreatedAt, o.UpdatedAt)
	doc["type"] = o.Type
	doc["endpoint"] = o.Endpoint
	doc["method"] = o.Method
	if o.StorageModelID != nil {
		doc["storageModelId"] = o.StorageModelID.String()
	} else {
		doc["storageModelId"] = nil
	}
	if o.FormModelID != nil {
		doc["formModelId"] = o.FormModelID.String()
	} else {
		doc["formModelId"] = nil
	}
	doc["requestSchema"] = document(o.RequestSchema)
	doc["responseSchema"] = document(o.ResponseSchema)
	if deep && o.FormModel != nil {
		doc["formModel"] = FormModel(o.FormModel, false)
	}
	return doc
}

// DomainModel serializes a domain: normalized fields plus the four linked
// collections with the join-row indirection unwrapped.
func DomainModel(d *entity.DomainModel) map[string]interface{} {
	doc := base(d.ID.String(), d.Name, d.Description, d.CreatedAt, d.UpdatedAt)
	doc["schema"] = document(d.Schema)
	doc["fields"] = DomainFields(d.Schema)

	tables := []map[string]interface{}{}
	for idx := range d.Tables {
		if d.Tables[idx].StorageTable == nil {
			continue
		}
		tables = append(tables, StorageTable(d.Tables[idx].StorageTable, false))
	}
	doc["storageTables"] = tables

	views := []map[string]interface{}{}
	for idx := range d.Views {
		if d.Views[idx].ViewModel == nil {
			continue
		}
		views = append(views, ViewModel(d.Views[idx].ViewModel))
	}
	doc["viewModels"] = views

	forms := []map[string]interface{}{}
	for idx := range d.Forms {
		if d.Forms[idx].FormModel == nil {
			continue
		}
		forms = append(forms, FormModel(d.Forms[idx].FormModel, false))
	}
	doc["formModels"] = forms

	operations := []map[string]interface{}{}
	for idx := range d.Operations {
		if d.Operations[idx].OperationModel == nil {
			continue
		}
		operations = append(operations, OperationModel(d.Operations[idx].OperationModel, false))
	}
	doc["operationModels"] = operations

	return doc
}

// Dashboard bundles all five entity lists into one combined payload.
func Dashboard(models []entity.StorageModel, views []entity.ViewModel, forms []entity.FormModel, operations []entity.OperationModel, domains []entity.DomainModel) map[string]interface{} {
	storageModels := make([]map[string]interface{}, 0, len(models))
	for idx := range models {
		storageModels = append(storageModels, StorageModel(&models[idx]))
	}
	viewModels := make([]map[string]interface{}, 0, len(views))
	for idx := range views {
		viewModels = append(viewModels, ViewModel(&views[idx]))
	}
	formModels := make([]map[string]interface{}, 0, len(forms))
	for idx := range forms {
		formModels = append(formModels, FormModel(&forms[idx], true))
	}
	operationModels := make([]map[string]interface{}, 0, len(operations))
	for idx := range operations {
		operationModels = append(operationModels, OperationModel(&operations[idx], true))
	}
	domainModels := make([]map[string]interface{}, 0, len(domains))
	for idx := range domains {
		domainModels = append(domainModels, DomainModel(&domains[idx]))
	}
	return map[string]interface{}{
		"storageModels":   storageModels,
		"viewModels":      viewModels,
		"formModels":      formModels,
		"operationModels": operationModels,
		"domainModels":    domainModels,
	}
}

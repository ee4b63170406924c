package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kerem-kaynak/fabrika/internal/entity"
	"gorm.io/gorm"
)

// ErrNoTables means the import target contains no base tables. Terminal, not
// retried.
var ErrNoTables = errors.New("no tables found in target database")

// ConnectionError wraps a failure to reach the import target or a rejected
// credential set.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "failed to connect to target database: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ColumnMeta is the per-column entry stored in a table's schema document.
type ColumnMeta struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Key      string  `json:"key"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
	Comment  string  `json:"comment"`
}

// TableDocument is one table inside a storage model's schema snapshot.
type TableDocument struct {
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Columns     []ColumnMeta `json:"columns"`
}

// SchemaDocument is the snapshot persisted on the storage model itself.
type SchemaDocument struct {
	ImportedAt time.Time       `json:"importedAt"`
	Tables     []TableDocument `json:"tables"`
}

// TableSchema is the schema document persisted on each child storage table.
type TableSchema struct {
	Columns []ColumnMeta `json:"columns"`
}

// Request carries everything needed to import a storage model from a live
// database.
type Request struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Connection  Connection `json:"connection"`
}

// Validate returns one message per missing or malformed field.
func (r *Request) Validate() []string {
	var messages []string
	if strings.TrimSpace(r.Name) == "" {
		messages = append(messages, "name is required")
	}
	if strings.TrimSpace(r.Connection.Host) == "" {
		messages = append(messages, "connection.host is required")
	}
	if strings.TrimSpace(r.Connection.User) == "" {
		messages = append(messages, "connection.user is required")
	}
	if strings.TrimSpace(r.Connection.Database) == "" {
		messages = append(messages, "connection.database is required")
	}
	return messages
}

// Importer turns live connection parameters into a persisted storage model
// with its child tables.
type Importer struct {
	db   *gorm.DB
	open Opener
}

func New(db *gorm.DB) *Importer {
	return &Importer{db: db, open: OpenMySQLCatalog}
}

// NewWithOpener substitutes the catalog opener, used by tests.
func NewWithOpener(db *gorm.DB, open Opener) *Importer {
	return &Importer{db: db, open: open}
}

// Import queries the target's catalog, persists the storage model and its
// tables in one transaction and returns the result with all relations loaded.
// The catalog connection is released on every exit path.
func (i *Importer) Import(ctx context.Context, req Request) (*entity.StorageModel, error) {
	conn := req.Connection.withDefaults()

	catalog, err := i.open(conn)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer catalog.Close()

	tables, err := catalog.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query table catalog: %w", err)
	}
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	columns, err := catalog.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query column catalog: %w", err)
	}

	// Group columns by owning table, keeping the catalog's ordinal order.
	// Duplicate column names are kept as returned.
	grouped := make(map[string][]ColumnMeta)
	for _, col := range columns {
		grouped[col.TableName] = append(grouped[col.TableName], ColumnMeta{
			Name:     col.Name,
			Type:     col.Type,
			Key:      col.Key,
			Nullable: col.Nullable == "YES",
			Default:  col.Default,
			Comment:  col.Comment,
		})
	}

	documents := make([]TableDocument, 0, len(tables))
	children := make([]entity.StorageTable, 0, len(tables))
	for _, table := range tables {
		var description *string
		if table.Comment != "" {
			comment := table.Comment
			description = &comment
		}

		// A table with zero columns is still imported, with an empty list.
		cols := grouped[table.Name]
		if cols == nil {
			cols = []ColumnMeta{}
		}

		documents = append(documents, TableDocument{
			Name:        table.Name,
			Description: description,
			Columns:     cols,
		})

		tableSchema, err := json.Marshal(TableSchema{Columns: cols})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal table schema: %w", err)
		}
		children = append(children, entity.StorageTable{
			Name:        table.Name,
			Description: table.Comment,
			Schema:      tableSchema,
		})
	}

	snapshot, err := json.Marshal(SchemaDocument{ImportedAt: time.Now().UTC(), Tables: documents})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema snapshot: %w", err)
	}

	model := entity.StorageModel{
		Name:        req.Name,
		Description: req.Description,
		Database:    conn.Database,
		Connection:  conn.Descriptor(),
		Schema:      snapshot,
		Tables:      children,
	}

	if err := i.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to persist storage model: %w", err)
	}

	return i.Reload(ctx, model.ID)
}

// Reload fetches a storage model with the relation graph the serializer
// expects. The create above does not hand back nested children in query-able
// form, so the handler always responds with a fresh read.
func (i *Importer) Reload(ctx context.Context, id uuid.UUID) (*entity.StorageModel, error) {
	var model entity.StorageModel
	err := i.db.WithContext(ctx).
		Preload("Tables", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Tables.Forms").
		Preload("Tables.Forms.Operations").
		Preload("Tables.Views").
		Preload("Operations").
		Preload("Views").
		First(&model, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &model, nil
}

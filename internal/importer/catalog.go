package importer

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection holds the parameters for reaching the database whose schema
// gets imported. The password lives only in memory for the duration of the
// request and is never written to the store.
type Connection struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

const defaultPort = 3306

func (c Connection) withDefaults() Connection {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	return c
}

// Descriptor renders the connection without the password, safe to persist.
func (c Connection) Descriptor() string {
	return fmt.Sprintf("mysql://%s@%s:%d/%s", c.User, c.Host, c.Port, c.Database)
}

func (c Connection) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True", c.User, c.Password, c.Host, c.Port, c.Database)
}

// TableInfo is one base table from the target's catalog.
type TableInfo struct {
	Name    string
	Comment string
}

// ColumnInfo is one column from the target's catalog, in ordinal order.
type ColumnInfo struct {
	TableName string
	Name      string
	Type      string
	Key       string
	Nullable  string
	Default   *string
	Comment   string
}

// Catalog reads table and column metadata out of a live database. It is an
// interface so the importer can be exercised against a substitute in tests.
type Catalog interface {
	Tables(ctx context.Context) ([]TableInfo, error)
	Columns(ctx context.Context) ([]ColumnInfo, error)
	Close() error
}

// Opener establishes a catalog session against the given connection.
type Opener func(conn Connection) (Catalog, error)

type mysqlCatalog struct {
	db       *gorm.DB
	database string
}

// OpenMySQLCatalog connects to the target MySQL server and returns a catalog
// backed by its information schema.
func OpenMySQLCatalog(conn Connection) (Catalog, error) {
	db, err := gorm.Open(mysql.Open(conn.dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// gorm opens lazily in some driver configurations, so ping to surface
	// unreachable hosts and rejected credentials here.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &mysqlCatalog{db: db, database: conn.Database}, nil
}

func (c *mysqlCatalog) Tables(ctx context.Context) ([]TableInfo, error) {
	var rows []struct {
		TableName    string
		TableComment string
	}
	err := c.db.WithContext(ctx).Raw(`
		SELECT TABLE_NAME AS table_name, TABLE_COMMENT AS table_comment
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`, c.database).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tables := make([]TableInfo, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, TableInfo{Name: row.TableName, Comment: row.TableComment})
	}
	return tables, nil
}

func (c *mysqlCatalog) Columns(ctx context.Context) ([]ColumnInfo, error) {
	var rows []struct {
		TableName     string
		ColumnName    string
		ColumnType    string
		ColumnKey     string
		IsNullable    string
		ColumnDefault *string
		ColumnComment string
	}
	err := c.db.WithContext(ctx).Raw(`
		SELECT TABLE_NAME AS table_name, COLUMN_NAME AS column_name, COLUMN_TYPE AS column_type,
		       COLUMN_KEY AS column_key, IS_NULLABLE AS is_nullable,
		       COLUMN_DEFAULT AS column_default, COLUMN_COMMENT AS column_comment
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ?
		ORDER BY TABLE_NAME, ORDINAL_POSITION`, c.database).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, ColumnInfo{
			TableName: row.TableName,
			Name:      row.ColumnName,
			Type:      row.ColumnType,
			Key:       row.ColumnKey,
			Nullable:  row.IsNullable,
			Default:   row.ColumnDefault,
			Comment:   row.ColumnComment,
		})
	}
	return columns, nil
}

func (c *mysqlCatalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

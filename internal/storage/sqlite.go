package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// dialect holds what differs between the supported databases
type dialect struct {
	name            string
	open            func(dsn string) (*sql.DB, error)
	migrations      []string
	upsertCondition string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "", "sqlite", "sqlite3":
		return sqliteDialect, nil
	case "mysql":
		return mysqlDialect, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

var sqliteDialect = dialect{
	name: "sqlite3",
	open: openSQLite,
	migrations: []string{
		`CREATE TABLE IF NOT EXISTS conditions (
			id INTEGER PRIMARY KEY,
			code TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			series TEXT NOT NULL,
			issue TEXT NOT NULL,
			purchase_price TEXT NOT NULL DEFAULT '0',
			current_value TEXT NOT NULL DEFAULT '0',
			notes TEXT NOT NULL DEFAULT '',
			tags TEXT,
			condition_id INTEGER REFERENCES conditions(id) ON DELETE SET NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_user ON items(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_series ON items(user_id, series, issue)`,
	},
	upsertCondition: `
		INSERT INTO conditions (id, code, description) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET code = excluded.code, description = excluded.description
	`,
}

func openSQLite(dsn string) (*sql.DB, error) {
	dsn, err := sqliteDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// one writer at a time; avoids SQLITE_BUSY under concurrent handlers
	db.SetMaxOpenConns(1)
	return db, nil
}

// sqliteDSN adds foreign key enforcement and WAL to dsn unless it sets them itself
func sqliteDSN(dsn string) (string, error) {
	path, rawQuery, _ := strings.Cut(dsn, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("invalid sqlite dsn options: %w", err)
	}
	if !query.Has("_foreign_keys") && !query.Has("_fk") {
		query.Set("_foreign_keys", "on")
	}
	if !query.Has("_journal_mode") && !query.Has("_journal") {
		query.Set("_journal_mode", "WAL")
	}
	return path + "?" + query.Encode(), nil
}

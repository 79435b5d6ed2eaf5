package storage

import (
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

var mysqlDialect = dialect{
	name: "mysql",
	open: openMySQL,
	migrations: []string{
		`CREATE TABLE IF NOT EXISTS conditions (
			id BIGINT PRIMARY KEY,
			code VARCHAR(16) NOT NULL,
			description VARCHAR(255) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			series VARCHAR(200) NOT NULL,
			issue VARCHAR(32) NOT NULL,
			purchase_price DECIMAL(12,2) NOT NULL DEFAULT 0,
			current_value DECIMAL(12,2) NOT NULL DEFAULT 0,
			notes TEXT NOT NULL,
			tags VARCHAR(500) NULL,
			condition_id BIGINT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_items_user (user_id),
			INDEX idx_items_series (user_id, series, issue),
			CONSTRAINT fk_items_condition FOREIGN KEY (condition_id) REFERENCES conditions(id) ON DELETE SET NULL
		)`,
	},
	upsertCondition: `
		INSERT INTO conditions (id, code, description) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE code = VALUES(code), description = VALUES(description)
	`,
}

// openMySQL forces the DSN options the store relies on: parsed DATETIME
// columns and matched (not changed) row counts for UPDATE.
func openMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Loc = time.UTC

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

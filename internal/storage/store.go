package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meur/shortbox/internal/models"
)

// ErrNotFound is returned when an item does not exist for the requesting user
var ErrNotFound = errors.New("item not found")

// Store handles all database operations
type Store struct {
	db      *sql.DB
	dialect dialect
}

// New opens the database for driver ("sqlite3" or "mysql") and runs migrations
func New(driver, dsn string) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := d.open(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, dialect: d}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Driver returns the name of the database driver in use
func (s *Store) Driver() string {
	return s.dialect.name
}

// migrate runs database migrations
func (s *Store) migrate() error {
	for _, m := range s.dialect.migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// --- Conditions ---

// ListConditions returns every condition grade ordered by identifier (best first)
func (s *Store) ListConditions(ctx context.Context) ([]models.ConditionGrade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, description
		FROM conditions ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := []models.ConditionGrade{}
	for rows.Next() {
		var g models.ConditionGrade
		if err := rows.Scan(&g.ID, &g.Code, &g.Description); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// UpsertConditions writes reference grades, updating existing rows with the same id
func (s *Store) UpsertConditions(ctx context.Context, grades []models.ConditionGrade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.dialect.upsertCondition)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range grades {
		if _, err := stmt.ExecContext(ctx, g.ID, g.Code, g.Description); err != nil {
			return fmt.Errorf("condition %s: %w", g.Code, err)
		}
	}

	return tx.Commit()
}

// --- Items ---

const itemColumns = `
	i.id, i.user_id, i.series, i.issue, i.purchase_price, i.current_value,
	i.notes, i.tags, i.created_at, i.condition_id, c.id, c.code, c.description
`

// ListItems returns every item owned by userID with its grade embedded
func (s *Store) ListItems(ctx context.Context, userID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM items i LEFT JOIN conditions c ON c.id = i.condition_id
		WHERE i.user_id = ? ORDER BY i.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(rows *sql.Rows) (models.Item, error) {
	var item models.Item
	var tags sql.NullString
	var conditionID, gradeID sql.NullInt64
	var gradeCode, gradeDesc sql.NullString

	err := rows.Scan(&item.ID, &item.UserID, &item.Series, &item.Issue,
		&item.PurchasePrice, &item.CurrentValue, &item.Notes, &tags,
		&item.CreatedAt, &conditionID, &gradeID, &gradeCode, &gradeDesc)
	if err != nil {
		return item, err
	}

	if tags.Valid {
		item.Tags = &tags.String
	}
	if conditionID.Valid {
		id := conditionID.Int64
		item.ConditionID = &id
	}
	if gradeID.Valid {
		item.Condition = &models.ConditionGrade{
			ID:          gradeID.Int64,
			Code:        gradeCode.String,
			Description: gradeDesc.String,
		}
	}
	return item, nil
}

// CreateItem inserts a new item for userID and returns its identifier
func (s *Store) CreateItem(ctx context.Context, userID string, c *models.ItemCreate) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO items (user_id, series, issue, purchase_price, current_value, notes, tags, condition_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, userID, c.Series, c.Issue, c.PurchasePrice, c.CurrentValue, c.Notes,
		nullString(c.Tags), c.ConditionID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// BulkCreateItems inserts multiple items for userID in a transaction
func (s *Store) BulkCreateItems(ctx context.Context, userID string, items []models.ItemCreate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (user_id, series, issue, purchase_price, current_value, notes, tags, condition_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, c := range items {
		_, err := stmt.ExecContext(ctx, userID, c.Series, c.Issue, c.PurchasePrice,
			c.CurrentValue, c.Notes, nullString(c.Tags), c.ConditionID, now)
		if err != nil {
			return fmt.Errorf("%s #%s: %w", c.Series, c.Issue, err)
		}
	}

	return tx.Commit()
}

// UpdateItem updates the mutable fields of an item owned by userID.
// The purchase price is never written.
func (s *Store) UpdateItem(ctx context.Context, userID string, id int64, u *models.ItemUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET series = ?, issue = ?, current_value = ?, notes = ?, tags = ?, condition_id = ?
		WHERE id = ? AND user_id = ?
	`, u.Series, u.Issue, u.CurrentValue, u.Notes, nullString(u.Tags), u.ConditionID, id, userID)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// DeleteItem removes an item owned by userID
func (s *Store) DeleteItem(ctx context.Context, userID string, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM items WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

package design

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flanksource/commons/logger"
	_ "github.com/mattn/go-sqlite3"

	"github.com/flanksource/pdfo/api"
)

// SQLiteStore keeps saved designs in a SQLite database, one JSON document per design
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  logger.Logger
}

// DefaultDBPath is ~/.local/share/pdfo/designs.db
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "pdfo", "designs.db"), nil
}

// OpenSQLite opens (creating if needed) the database at path. An empty path uses
// DefaultDBPath.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		var err error
		if path, err = DefaultDBPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path, log: logger.GetLogger("design")}
	s.log.Debugf("opened design store %s", path)
	return s, nil
}

// Path is the database file
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) List(ctx context.Context) ([]api.ProductDesign, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT body FROM product_designs ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	defer rows.Close()

	var designs []api.ProductDesign
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		d, err := decodeDesign(body)
		if err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (api.ProductDesign, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM product_designs WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return api.ProductDesign{}, ErrNotFound
	}
	if err != nil {
		return api.ProductDesign{}, fmt.Errorf("failed to get design %s: %w", id, err)
	}
	return decodeDesign(body)
}

func (s *SQLiteStore) Put(ctx context.Context, d api.ProductDesign) error {
	if d.ID == "" {
		return errors.New("cannot store a design without an id")
	}
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode design %s: %w", d.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO product_designs (id, model_code, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			model_code = excluded.model_code,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, d.ID, d.ModelCode, string(body), d.CreatedAt.UnixNano(), d.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save design %s: %w", d.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM product_designs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete design %s: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func decodeDesign(body string) (api.ProductDesign, error) {
	var d api.ProductDesign
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		return d, fmt.Errorf("failed to decode design: %w", err)
	}
	return d, nil
}

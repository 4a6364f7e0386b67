package preference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bps3210/simkak/internal/utils"
	log "github.com/sirupsen/logrus"
)

// DefaultTemplatePathKey stores the object path of the template picked as default on this installation.
const DefaultTemplatePathKey = "defaultTemplatePath"

// Store is a small key-value store for per-installation preferences.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type SqliteStore struct {
	db    *sql.DB
	clock utils.Clock
}

func NewSqliteStore(db *sql.DB, clock utils.Clock) *SqliteStore {
	return &SqliteStore{db: db, clock: clock}
}

func (s *SqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM preferences WHERE key = ?`
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return "", false, err
	}
	return value, true, nil
}

func (s *SqliteStore) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, key, value, s.clock.Now().Unix())
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SqliteStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM preferences WHERE key = ?`
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"refdataservice/internal/refdata"
)

var _ refdata.Slot = (*PostgresSlot)(nil)

// PostgresSlot keeps the encoded state in one row of refdata_slots.
type PostgresSlot struct {
	db  *sql.DB
	key string
}

// NewPostgresSlot creates a slot bound to key.
func NewPostgresSlot(db *sql.DB, key string) *PostgresSlot {
	return &PostgresSlot{db: db, key: key}
}

// Load reads the payload row, reporting found=false when the row does not exist.
func (s *PostgresSlot) Load(ctx context.Context) ([]byte, bool, error) {
	query := `SELECT payload FROM refdata_slots WHERE key=$1`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select slot %s: %w", s.key, err)
	}
	return payload, true, nil
}

// Save upserts the payload row.
func (s *PostgresSlot) Save(ctx context.Context, payload []byte) error {
	query := `INSERT INTO refdata_slots (key, payload, updated_at)
              VALUES ($1, $2, NOW())
              ON CONFLICT (key)
              DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, s.key, payload); err != nil {
		return fmt.Errorf("upsert slot %s: %w", s.key, err)
	}
	return nil
}

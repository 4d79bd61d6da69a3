package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SQLiteSlot struct {
	db  *sql.DB
	key string
}

func NewSQLiteSlot(db *sql.DB, key string) *SQLiteSlot {
	return &SQLiteSlot{db: db, key: key}
}

func (s *SQLiteSlot) Load(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM chat_slots WHERE slot_key = ?`, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	return []byte(payload), nil
}

func (s *SQLiteSlot) Save(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_slots (slot_key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (slot_key) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`, s.key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}

func (s *SQLiteSlot) Remove(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chat_slots WHERE slot_key = ?`, s.key); err != nil {
		return fmt.Errorf("failed to remove slot %s: %w", s.key, err)
	}
	return nil
}

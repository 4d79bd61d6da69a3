package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSlot struct {
	pool *pgxpool.Pool
	key  string
}

func NewPostgresSlot(pool *pgxpool.Pool, key string) *PostgresSlot {
	return &PostgresSlot{pool: pool, key: key}
}

func (s *PostgresSlot) Load(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.pool.QueryRow(ctx, `SELECT payload FROM chat_slots WHERE slot_key = $1`, s.key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	return []byte(payload), nil
}

func (s *PostgresSlot) Save(ctx context.Context, payload []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_slots (slot_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
	`, s.key, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}

func (s *PostgresSlot) Remove(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM chat_slots WHERE slot_key = $1`, s.key); err != nil {
		return fmt.Errorf("failed to remove slot %s: %w", s.key, err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by Slot.Load when nothing has been saved under
// the slot's key.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a single named durable key-value location holding one serialised
// conversation.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
	Remove(ctx context.Context) error
}

package conversation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rehnuma-chat/internal/models"
	"rehnuma-chat/internal/repository"
)

type memorySlot struct {
	mu      sync.Mutex
	data    []byte
	saveErr error
	saves   int
}

func (m *memorySlot) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, repository.ErrSlotEmpty
	}
	return m.data, nil
}

func (m *memorySlot) Save(ctx context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), payload...)
	return nil
}

func (m *memorySlot) Remove(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func turn(i int) models.Turn {
	return models.Turn{
		User:      fmt.Sprintf("question %d", i),
		Bot:       fmt.Sprintf("answer %d", i),
		Timestamp: fmt.Sprintf("2026-03-01T09:%02d:00.000Z", i),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	slot, err := repository.NewFileSlot(t.TempDir(), "rehnumaChatHistory")
	require.NoError(t, err)

	s := NewStore(slot, nil)
	for i := 1; i <= 4; i++ {
		s.Append(ctx, turn(i))
	}

	restored := NewStore(slot, nil)
	recent := restored.Restore(ctx)

	assert.Equal(t, s.Turns(), restored.Turns())
	assert.Equal(t, []models.Turn{turn(2), turn(3), turn(4)}, recent)
}

func TestStore_RestoreEmptySlot(t *testing.T) {
	s := NewStore(&memorySlot{}, nil)

	assert.Empty(t, s.Restore(context.Background()))
	assert.Equal(t, 0, s.Len())
}

func TestStore_RestoreCorruptData(t *testing.T) {
	var logs bytes.Buffer
	s := NewStore(&memorySlot{data: []byte("{not json")}, log.New(&logs, "", 0))

	assert.Empty(t, s.Restore(context.Background()))
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, logs.String(), "Could not load chat history")
}

func TestStore_RestoreSkipsMalformedEntries(t *testing.T) {
	payload := `[{"user":"hi","bot":"hello","timestamp":"2026-03-01T09:00:00.000Z"}, 42, "junk"]`
	s := NewStore(&memorySlot{data: []byte(payload)}, nil)

	recent := s.Restore(context.Background())

	require.Len(t, recent, 1)
	assert.Equal(t, "hi", recent[0].User)
}

func TestStore_AppendSurvivesSaveFailure(t *testing.T) {
	var logs bytes.Buffer
	slot := &memorySlot{saveErr: errors.New("quota exceeded")}
	s := NewStore(slot, log.New(&logs, "", 0))

	s.Append(context.Background(), turn(1))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, slot.saves)
	assert.Contains(t, logs.String(), "quota exceeded")
}

func TestStore_Window(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&memorySlot{}, nil)
	for i := 1; i <= 7; i++ {
		s.Append(ctx, turn(i))
	}

	window := s.Window(ContextTurns)

	require.Len(t, window, 5)
	assert.Equal(t, turn(3), window[0])
	assert.Equal(t, turn(7), window[4])

	// Mutating the copy must not leak into the store.
	window[0].User = "changed"
	assert.Equal(t, "question 3", s.Window(5)[0].User)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	slot, err := repository.NewFileSlot(filepath.Join(dir, "history"), "chat")
	require.NoError(t, err)

	s := NewStore(slot, nil)
	s.Append(ctx, turn(1))
	s.Clear(ctx)

	assert.Equal(t, 0, s.Len())
	_, err = slot.Load(ctx)
	assert.ErrorIs(t, err, repository.ErrSlotEmpty)
	assert.Empty(t, NewStore(slot, nil).Restore(ctx))
}

func TestStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{}
	s := NewStore(slot, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append(ctx, turn(i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
	assert.Equal(t, 20, slot.saves)
}

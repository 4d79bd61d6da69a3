// Package conversation holds the client's ordered list of turns and mirrors
// it to a durable slot.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"rehnuma-chat/internal/models"
	"rehnuma-chat/internal/repository"
)

// Read-time truncation windows.
const (
	ContextTurns = 5
	RestoreTurns = 3
)

// Store is safe for concurrent use. Persistence failures are logged and
// never returned: the in-memory sequence is the source of truth for the
// running session.
type Store struct {
	// saveMu orders slot writes so the slot never ends up holding an older
	// snapshot than memory. mu guards turns only.
	saveMu sync.Mutex
	mu     sync.Mutex
	turns  []models.Turn
	slot   repository.Slot
	logger *log.Logger
}

func NewStore(slot repository.Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{slot: slot, logger: logger}
}

// Restore replaces the in-memory sequence with the persisted one and returns
// the most recent RestoreTurns turns for display. Absent or corrupt data
// yields an empty conversation.
func (s *Store) Restore(ctx context.Context) []models.Turn {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	turns := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = turns
	return tail(s.turns, RestoreTurns)
}

func (s *Store) load(ctx context.Context) []models.Turn {
	data, err := s.slot.Load(ctx)
	if errors.Is(err, repository.ErrSlotEmpty) {
		return nil
	}
	if err != nil {
		s.logger.Printf("Could not load chat history: %v", err)
		return nil
	}

	turns, err := decodeTurns(data)
	if err != nil {
		s.logger.Printf("Could not load chat history: %v", err)
		return nil
	}
	return turns
}

// decodeTurns parses a persisted payload. Entries that are not objects are
// dropped rather than failing the whole restore.
func decodeTurns(data []byte) ([]models.Turn, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	turns := make([]models.Turn, 0, len(raw))
	for _, item := range raw {
		var turn models.Turn
		if err := json.Unmarshal(item, &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Append adds turn to the end and persists the full sequence.
func (s *Store) Append(ctx context.Context, turn models.Turn) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.turns = append(s.turns, turn)
	data, err := json.Marshal(s.turns)
	s.mu.Unlock()

	if err != nil {
		s.logger.Printf("Could not save chat history: %v", err)
		return
	}
	if err := s.slot.Save(ctx, data); err != nil {
		s.logger.Printf("Could not save chat history: %v", err)
	}
}

// Clear empties the conversation and removes the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	s.turns = nil
	s.mu.Unlock()

	if err := s.slot.Remove(ctx); err != nil {
		s.logger.Printf("Could not remove chat history: %v", err)
	}
}

// Turns returns a copy of every turn, oldest first.
func (s *Store) Turns() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tail(s.turns, len(s.turns))
}

// Window returns a copy of the last n turns in original order.
func (s *Store) Window(n int) []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tail(s.turns, n)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

func tail(turns []models.Turn, n int) []models.Turn {
	if n > len(turns) {
		n = len(turns)
	}
	if n <= 0 {
		return []models.Turn{}
	}
	out := make([]models.Turn, n)
	copy(out, turns[len(turns)-n:])
	return out
}

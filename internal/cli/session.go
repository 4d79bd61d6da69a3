package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"rehnuma-chat/internal/chat"
	"rehnuma-chat/internal/client"
	"rehnuma-chat/internal/config"
	"rehnuma-chat/internal/conversation"
	"rehnuma-chat/internal/database"
	"rehnuma-chat/internal/render"
	"rehnuma-chat/internal/repository"
)

// session bundles everything a command needs for one run.
type session struct {
	cfg        *config.ClientConfig
	store      *conversation.Store
	surface    *render.TerminalSurface
	client     *client.Client
	controller *chat.Controller
	closers    []func()
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openSession() (*session, error) {
	cfg, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	slot, err := s.openSlot()
	if err != nil {
		s.Close()
		return nil, err
	}

	logger := newLogger()
	s.store = conversation.NewStore(slot, logger)
	s.surface = render.NewTerminalSurface(os.Stdout, cfg.Width, term.IsTerminal(int(os.Stdout.Fd())))
	s.client = client.New(cfg.ServerURL, nil)
	s.controller = chat.NewController(s.store, s.surface, s.client, logger)
	return s, nil
}

func (s *session) openSlot() (repository.Slot, error) {
	switch s.cfg.Storage {
	case config.StorageSQLite:
		db, err := database.OpenSQLite(filepath.Join(s.cfg.StoragePath, "rehnuma.db"))
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { db.Close() })
		return repository.NewSQLiteSlot(db, s.cfg.SlotKey), nil

	case config.StorageRedis:
		rdb, err := database.NewRedisClient(s.cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { rdb.Close() })
		return repository.NewRedisSlot(rdb, s.cfg.SlotKey), nil

	case config.StoragePostgres:
		pool, err := database.NewPostgresPool(s.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)
		return repository.NewPostgresSlot(pool, s.cfg.SlotKey), nil

	case config.StorageFile:
		return repository.NewFileSlot(s.cfg.StoragePath, s.cfg.SlotKey)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", s.cfg.Storage)
	}
}

package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/docpublish/internal/common"
	"github.com/dmitrijs2005/docpublish/internal/logging"
)

// Store owns the current Settings. It is the only component allowed to
// mutate them; readers take a Snapshot.
type Store struct {
	mu        sync.RWMutex
	current   Settings
	persister Persister
	logger    logging.Logger
}

func NewStore(p Persister, l logging.Logger) *Store {
	return &Store{
		current:   Defaults(),
		persister: p,
		logger:    l.With("module", "settings"),
	}
}

// Load overlays persisted state on the defaults and makes the result
// current. It never fails: unreadable state is logged and ignored.
func (s *Store) Load(ctx context.Context) Settings {
	loaded := Defaults()

	data, err := s.persister.LoadData(ctx)
	if err != nil {
		s.logger.Warn(ctx, "persisted settings unreadable, using defaults", "error", err)
	} else {
		loaded = overlay(loaded, data)
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	return loaded
}

// Save persists the full settings object and makes it current.
func (s *Store) Save(ctx context.Context, v Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.SaveData(ctx, v.data()); err != nil {
		return fmt.Errorf("%w: %w", common.ErrSettings, err)
	}
	s.current = v
	return nil
}

// Update sets one field and persists immediately.
func (s *Store) Update(ctx context.Context, f Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.With(f, value)
	if err := s.persister.SaveData(ctx, next.data()); err != nil {
		return fmt.Errorf("%w: save %s: %w", common.ErrSettings, f, err)
	}
	s.current = next
	s.logger.Debug(ctx, "settings field updated", "field", string(f))
	return nil
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Close releases the persister.
func (s *Store) Close() error {
	return s.persister.Close()
}

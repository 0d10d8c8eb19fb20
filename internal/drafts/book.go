package drafts

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sant0-9/patra/internal/logging"
)

var (
	// ErrPersist wraps any failure to write the store. The in-memory list is
	// left as it was before the call.
	ErrPersist  = errors.New("draft could not be saved")
	ErrNotFound = errors.New("draft not found")
	// ErrLoad wraps any failure to read the store when the Book is opened.
	ErrLoad = errors.New("saved drafts could not be loaded")
)

// Book is the draft list as the app sees it. Every change is a
// read-modify-write of the whole store; the last writer wins.
type Book struct {
	store  Store
	logger *zap.Logger
	list   []Draft
}

// Open loads the store into a Book.
func Open(store Store, logger *zap.Logger) (*Book, error) {
	logger = logging.OrNop(logger)
	list, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	logger.Debug("drafts loaded", zap.Int("count", len(list)))
	return &Book{store: store, logger: logger, list: list}, nil
}

// OpenOrEmpty is Open that never fails. When the store cannot be read the
// Book starts empty and is kept in memory only, so the unreadable file is
// left untouched; the load error is returned with it.
func OpenOrEmpty(store Store, logger *zap.Logger) (*Book, error) {
	book, err := Open(store, logger)
	if err == nil {
		return book, nil
	}
	logging.OrNop(logger).Warn("drafts unavailable, keeping this session in memory", zap.Error(err))
	return &Book{store: &MemoryStore{}, logger: logging.OrNop(logger)}, err
}

// List returns the drafts, most recent first.
func (b *Book) List() []Draft {
	out := make([]Draft, len(b.list))
	copy(out, b.list)
	return out
}

func (b *Book) Len() int {
	return len(b.list)
}

func (b *Book) Get(id string) (Draft, bool) {
	for _, d := range b.list {
		if d.ID == id {
			return d, true
		}
	}
	return Draft{}, false
}

// Add puts d at the front of the list and persists it.
func (b *Book) Add(d Draft) error {
	next := make([]Draft, 0, len(b.list)+1)
	next = append(next, d)
	next = append(next, b.list...)
	if err := b.commit(next); err != nil {
		return err
	}
	b.logger.Info("draft saved", zap.String("id", d.ID), zap.String("title", d.Title))
	return nil
}

// Delete removes the draft with id and persists the shorter list.
func (b *Book) Delete(id string) error {
	next := make([]Draft, 0, len(b.list))
	found := false
	for _, d := range b.list {
		if d.ID == id {
			found = true
			continue
		}
		next = append(next, d)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := b.commit(next); err != nil {
		return err
	}
	b.logger.Info("draft deleted", zap.String("id", id))
	return nil
}

func (b *Book) commit(next []Draft) error {
	if err := b.store.Save(next); err != nil {
		b.logger.Warn("draft store save failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	b.list = next
	return nil
}

package drafts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FormatVersion is the schema version written to the drafts file.
const FormatVersion = 1

var (
	ErrUnsupportedVersion = errors.New("drafts file was written by a newer version")
	ErrCorrupt            = errors.New("drafts file is corrupt")
)

// Store loads and saves the whole draft list at once.
type Store interface {
	Load() ([]Draft, error)
	Save([]Draft) error
}

type fileFormat struct {
	Version int     `json:"version"`
	Drafts  []Draft `json:"drafts"`
}

// legacyDraft is a record from an unversioned file, where lastModified is
// epoch milliseconds and there is no language.
type legacyDraft struct {
	ID           string  `json:"id"`
	TemplateID   *string `json:"templateId"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	LastModified int64   `json:"lastModified"`
}

func (l legacyDraft) draft() Draft {
	return Draft{
		ID:           l.ID,
		TemplateID:   l.TemplateID,
		Title:        l.Title,
		Content:      l.Content,
		LastModified: time.UnixMilli(l.LastModified).UTC(),
	}
}

// FileStore keeps drafts in a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns the stored drafts. A missing or empty file is an empty list.
// Files holding a bare array, as written before versioning, are accepted.
func (s *FileStore) Load() ([]Draft, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read drafts: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var legacy []legacyDraft
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		list := make([]Draft, 0, len(legacy))
		for _, l := range legacy {
			list = append(list, l.draft())
		}
		return list, nil
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if f.Version > FormatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, f.Version)
	}
	return f.Drafts, nil
}

// Save replaces the file contents atomically.
func (s *FileStore) Save(list []Draft) error {
	if list == nil {
		list = []Draft{}
	}
	data, err := json.MarshalIndent(fileFormat{Version: FormatVersion, Drafts: list}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode drafts: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create drafts dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".drafts-*.json")
	if err != nil {
		return fmt.Errorf("write drafts: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write drafts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write drafts: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write drafts: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store, used when no file is configured.
type MemoryStore struct {
	drafts []Draft
	// Err, when set, is returned by Save.
	Err error
}

func (m *MemoryStore) Load() ([]Draft, error) {
	out := make([]Draft, len(m.drafts))
	copy(out, m.drafts)
	return out, nil
}

func (m *MemoryStore) Save(list []Draft) error {
	if m.Err != nil {
		return m.Err
	}
	m.drafts = make([]Draft, len(list))
	copy(m.drafts, list)
	return nil
}

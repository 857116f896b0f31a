package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// FileSchemaVersion is the current version of the session file format.
const FileSchemaVersion = 2

// fileDocument is the on-disk layout of a File store.
type fileDocument struct {
	SchemaVersion int                  `json:"schema_version"`
	Entries       map[string]fileEntry `json:"entries"`
}

type fileEntry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at,omitzero"` // zero = never
}

// File is a Store persisted to a single JSON document. Every operation reads
// the file, so writes made by other processes are visible immediately.
// Writes go through a temp file and rename.
type File struct {
	mu     sync.Mutex
	path   string
	clock  clockwork.Clock
	logger *slog.Logger
	closed bool
}

// NewFile creates a File store at path, creating the parent directory.
// A nil clock uses the real clock.
func NewFile(path string, clock clockwork.Clock) (*File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: create directory %s: %w", ErrUnavailable, dir, err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &File{
		path:   path,
		clock:  clock,
		logger: slog.Default(),
	}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the value for key if it is set and not expired.
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", false, ErrClosed
	}

	doc, err := f.load()
	if err != nil {
		return "", false, err
	}

	e, ok := doc.Entries[key]
	if !ok {
		return "", false, nil
	}
	if expired(e.ExpiresAt, f.clock.Now()) {
		return "", false, nil
	}
	return e.Value, true, nil
}

// Set stores value under key and prunes expired entries.
func (f *File) Set(_ context.Context, key, value string, opts SetOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	doc, err := f.load()
	if err != nil {
		return err
	}

	now := f.clock.Now()
	f.prune(doc, now)

	doc.Entries[key] = fileEntry{Value: value, ExpiresAt: expiresAt(now, opts.TTL)}

	return f.save(doc)
}

// Delete removes key. The file is only rewritten when something changed.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	doc, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Entries[key]; !ok {
		return nil
	}

	delete(doc.Entries, key)
	return f.save(doc)
}

// Close marks the store closed. There are no open handles to release.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// load reads the document. A missing file is empty; a corrupted file is
// treated as empty so the next write replaces it.
func (f *File) load() (*fileDocument, error) {
	doc := &fileDocument{
		SchemaVersion: FileSchemaVersion,
		Entries:       make(map[string]fileEntry),
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, f.path, err)
	}

	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, doc); err != nil {
		f.logger.Warn("session file corrupted, starting empty", "path", f.path, "error", err)
		return &fileDocument{
			SchemaVersion: FileSchemaVersion,
			Entries:       make(map[string]fileEntry),
		}, nil
	}

	if doc.SchemaVersion > FileSchemaVersion {
		return nil, fmt.Errorf("unsupported session schema version %d (max: %d)",
			doc.SchemaVersion, FileSchemaVersion)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]fileEntry)
	}
	doc.SchemaVersion = FileSchemaVersion

	return doc, nil
}

// save writes the document atomically via a temp file.
func (f *File) save(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrUnavailable, tmpPath, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename %s: %w", ErrUnavailable, f.path, err)
	}
	return nil
}

func (f *File) prune(doc *fileDocument, now time.Time) {
	for k, e := range doc.Entries {
		if expired(e.ExpiresAt, now) {
			delete(doc.Entries, k)
		}
	}
}

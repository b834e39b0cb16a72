// Package keystore persists named popsign key pairs in a local JSON
// file. It backs the popsign CLI; the signing core itself never touches
// storage.
package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Bidon15/popsign"
)

// Sentinel errors.
var (
	ErrKeyNotFound = errors.New("keystore: key not found")
	ErrKeyExists   = errors.New("keystore: key already exists")
)

// Entry is a stored key pair. Private keys are stored in the clear;
// the file itself is written with 0600 permissions.
type Entry struct {
	// ID uniquely identifies the entry.
	ID uuid.UUID `json:"id"`
	// Name is the caller-chosen lookup name.
	Name string `json:"name"`
	// Scheme identifies the curve the pair was generated on.
	Scheme string `json:"scheme"`
	// PublicKey is the compressed public key, hex-encoded.
	PublicKey string `json:"public_key"`
	// PrivateKey is the private scalar, hex-encoded.
	PrivateKey string `json:"private_key"`
	// CreatedAt is the timestamp the entry was added.
	CreatedAt time.Time `json:"created_at"`
}

// storeFile is the on-disk layout.
type storeFile struct {
	Version int      `json:"version"`
	Entries []*Entry `json:"entries"`
}

const storeVersion = 1

// Store is a file-backed key store. Thread-safe for concurrent access;
// every mutation is flushed to disk before it returns.
type Store struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*Entry // name -> entry
}

// Open loads the store at path, creating parent directories as needed.
// A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]*Entry),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("keystore corrupted: %w", err)
	}
	for _, e := range file.Entries {
		s.entries[e.Name] = e
	}
	return s, nil
}

// Add stores a key pair under name and persists the store.
func (s *Store) Add(name string, pair *popsign.KeyPair) (*Entry, error) {
	if name == "" {
		return nil, errors.New("keystore: name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrKeyExists, name)
	}

	entry := &Entry{
		ID:         uuid.New(),
		Name:       name,
		Scheme:     pair.Scheme,
		PublicKey:  pair.PublicKey,
		PrivateKey: pair.PrivateKey,
		CreatedAt:  time.Now().UTC(),
	}
	s.entries[name] = entry

	if err := s.save(); err != nil {
		delete(s.entries, name)
		return nil, err
	}
	return entry, nil
}

// Get retrieves an entry by name.
func (s *Store) Get(name string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}
	return entry, nil
}

// List returns all entries sorted by name.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Delete removes an entry by name and persists the store.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, name)
	}

	delete(s.entries, name)
	if err := s.save(); err != nil {
		s.entries[name] = entry
		return err
	}
	return nil
}

// save writes the store atomically: temp file in the same directory,
// then rename. Caller holds the write lock.
func (s *Store) save() error {
	entries := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	data, err := json.MarshalIndent(storeFile{Version: storeVersion, Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode keystore: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".keystore-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set keystore permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write keystore: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close keystore: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to persist keystore: %w", err)
	}
	return nil
}

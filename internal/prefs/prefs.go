// ABOUTME: Device-local preference store backed by badger.
// ABOUTME: Holds settings that belong to this machine, never to the account.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dgraph-io/badger/v3"
)

const soundKey = "sound_enabled"

// Store is a small key-value store for device settings.
type Store struct {
	db *badger.DB
}

// DefaultDir returns the prefs directory following XDG spec.
func DefaultDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitday", "prefs")
}

// Open opens or creates the store in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// SoundEnabled reports whether the session bell is on. Defaults to true.
func (s *Store) SoundEnabled() (bool, error) {
	v, err := s.get(soundKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("read sound setting: %w", err)
	}

	enabled, err := strconv.ParseBool(string(v))
	if err != nil {
		return true, fmt.Errorf("parse sound setting: %w", err)
	}
	return enabled, nil
}

// SetSoundEnabled stores the sound setting.
func (s *Store) SetSoundEnabled(enabled bool) error {
	if err := s.set(soundKey, []byte(strconv.FormatBool(enabled))); err != nil {
		return fmt.Errorf("write sound setting: %w", err)
	}
	return nil
}

func (s *Store) get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

func (s *Store) set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Package file implements credstore.Store on top of a single JSON document on
// disk, optionally sealed with a passphrase.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/aussiebroadwan/eventcart/pkg/credstore"
	"github.com/aussiebroadwan/eventcart/pkg/cryptox"
)

// document is the on-disk layout. Both values are strings, like local storage.
type document struct {
	Token string `json:"token,omitempty"`
	User  string `json:"user,omitempty"`
}

// Store keeps credentials in one file. Writes go to a temp file in the same
// directory and are renamed into place, so a reader sees the old pair or the
// new pair and nothing in between.
type Store struct {
	path       string
	passphrase []byte

	mu sync.Mutex
}

var _ credstore.Store = (*Store)(nil)

// New returns a Store at path. When passphrase is non-empty the document is
// sealed with cryptox.Seal.
func New(path string, passphrase []byte) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file store: create directory: %w", err)
	}
	return &Store{path: path, passphrase: passphrase}, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/eventcart/credentials (or the
// platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "eventcart", "credentials"), nil
}

func (s *Store) Get(_ context.Context) (credstore.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return credstore.Credentials{}, err
	}

	if doc.User != "" && !credstore.ValidUser([]byte(doc.User)) {
		doc.User = ""
		if err := s.write(doc); err != nil {
			return credstore.Credentials{}, err
		}
		return credstore.Credentials{}, credstore.ErrNotFound
	}
	if doc.Token == "" || doc.User == "" {
		return credstore.Credentials{}, credstore.ErrNotFound
	}

	return credstore.Credentials{Token: doc.Token, User: json.RawMessage(doc.User)}, nil
}

func (s *Store) Set(_ context.Context, user json.RawMessage, token string) error {
	if err := credstore.CheckSet(user, token); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(document{Token: token, User: string(user)})
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file store: clear: %w", err)
	}
	return nil
}

// read loads the document. A missing file or an undecodable document both
// count as "nothing stored"; the latter is removed. A wrong passphrase is an
// error so that a typo does not silently log the user out.
func (s *Store) read() (document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{}, credstore.ErrNotFound
	}
	if err != nil {
		return document{}, fmt.Errorf("file store: read: %w", err)
	}

	if len(s.passphrase) > 0 {
		data, err = cryptox.Open(s.passphrase, data)
		if err != nil {
			return document{}, fmt.Errorf("file store: %w", err)
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		_ = os.Remove(s.path)
		return document{}, credstore.ErrNotFound
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("file store: encode: %w", err)
	}
	if len(s.passphrase) > 0 {
		if data, err = cryptox.Seal(s.passphrase, data); err != nil {
			return fmt.Errorf("file store: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("file store: create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("file store: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("file store: rename: %w", err)
	}
	return nil
}

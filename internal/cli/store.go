package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/eventcart/pkg/credstore"
	"github.com/aussiebroadwan/eventcart/pkg/credstore/file"
	"github.com/aussiebroadwan/eventcart/pkg/credstore/sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore opens the credential store selected by cfg. The returned closer
// must be called when the command is done.
func OpenStore(cfg Config) (credstore.Store, io.Closer, error) {
	switch cfg.Store {
	case StoreMemory:
		return credstore.NewMemory(), nopCloser{}, nil

	case StoreFile:
		path := cfg.StorePath
		if path == "" {
			p, err := file.DefaultPath()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve credential path: %w", err)
			}
			path = p
		}
		st, err := file.New(path, []byte(cfg.Passphrase))
		if err != nil {
			return nil, nil, err
		}
		return st, nopCloser{}, nil

	case StoreSQLite:
		dsn := cfg.StorePath
		if dsn == "" {
			dir, err := os.UserConfigDir()
			if err != nil {
				return nil, nil, fmt.Errorf("resolve credential path: %w", err)
			}
			if err := os.MkdirAll(filepath.Join(dir, "eventcart"), 0o700); err != nil {
				return nil, nil, err
			}
			dsn = "file:" + filepath.Join(dir, "eventcart", "credentials.db") + "?_pragma=busy_timeout(5000)"
		}
		st, err := sqlite.NewStore(dsn)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil

	default:
		return nil, nil, fmt.Errorf("unknown credential store %q (want file, sqlite or memory)", cfg.Store)
	}
}

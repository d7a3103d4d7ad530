package i18n

import (
	"fmt"
	"os"
	"sync/atomic"
)

// Source produces a fresh bundle.
type Source func() (*Bundle, error)

// EmbeddedSource loads the catalogs compiled into the binary.
func EmbeddedSource() Source {
	return LoadEmbedded
}

// DirSource loads catalogs from a directory on disk.
func DirSource(dir string) Source {
	return func() (*Bundle, error) {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("open locale dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("locale dir %s is not a directory", dir)
		}
		return Load(os.DirFS(dir))
	}
}

// Store holds the active bundle. Reloads swap the bundle atomically, so a
// reader sees either the old or the new catalog, never a mix.
type Store struct {
	source  Source
	current atomic.Pointer[Bundle]
}

// NewStore loads the initial bundle from source.
func NewStore(source Source) (*Store, error) {
	s := &Store{source: source}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Bundle returns the active bundle.
func (s *Store) Bundle() *Bundle {
	return s.current.Load()
}

// Reload rebuilds the bundle from the source. On error the active bundle is
// left in place.
func (s *Store) Reload() error {
	b, err := s.source()
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}
	s.current.Store(b)
	return nil
}

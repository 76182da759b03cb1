// Package store implements the data persistence layer: one human-readable
// JSON file per collection, read and rewritten wholesale on every operation.
// The files are the sole source of truth; there is no cache and no
// cross-request locking, so the last writer wins (an accepted limitation of
// this service).
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-whatsapp-backoffice/internal/domain"
)

// Collection file names inside the data directory.
const (
	productsFile = "produtos.json"
	usersFile    = "usuarios.json"
	configFile   = "config.json"
)

// Store reads and writes the three collection documents under Dir.
//
// Reads never fail from the caller's point of view: a missing or unparsable
// file yields the collection's empty shape (empty list, empty map, default
// config) and a warning in the logs. Writes report I/O failures as errors so
// handlers can answer 500; they never panic.
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created on Seed.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory backing this store.
func (s *Store) Dir() string { return s.dir }

// Seed creates the data directory and writes a default document for every
// collection that does not exist yet: an empty product list, an empty user
// map, and the placeholder configuration. Existing files are left untouched.
func (s *Store) Seed() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := s.seedFile(productsFile, []domain.Product{}); err != nil {
		return err
	}
	if err := s.seedFile(usersFile, map[string]domain.User{}); err != nil {
		return err
	}
	return s.seedFile(configFile, domain.DefaultAppConfig())
}

func (s *Store) seedFile(name string, doc any) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return writeDoc(path, doc)
}

// Products returns the whole catalog in insertion order. Missing or corrupt
// files are recovered as an empty catalog.
func (s *Store) Products() []domain.Product {
	var out []domain.Product
	if !s.readDoc(productsFile, &out) || out == nil {
		return []domain.Product{}
	}
	return out
}

// SaveProducts rewrites the whole catalog document.
func (s *Store) SaveProducts(products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return writeDoc(filepath.Join(s.dir, productsFile), products)
}

// Users returns the whole registry keyed by phone number. Missing or corrupt
// files are recovered as an empty registry.
func (s *Store) Users() map[string]domain.User {
	var out map[string]domain.User
	if !s.readDoc(usersFile, &out) || out == nil {
		return map[string]domain.User{}
	}
	return out
}

// SaveUsers rewrites the whole registry document.
func (s *Store) SaveUsers(users map[string]domain.User) error {
	if users == nil {
		users = map[string]domain.User{}
	}
	return writeDoc(filepath.Join(s.dir, usersFile), users)
}

// Config returns the configuration document, falling back to the default
// document when the file is missing or corrupt.
func (s *Store) Config() domain.AppConfig {
	var out domain.AppConfig
	if !s.readDoc(configFile, &out) {
		return domain.DefaultAppConfig()
	}
	return out
}

// SaveConfig rewrites the configuration document.
func (s *Store) SaveConfig(cfg domain.AppConfig) error {
	return writeDoc(filepath.Join(s.dir, configFile), cfg)
}

// readDoc loads one collection into dst and reports whether the file was
// readable and parseable. Failures are logged for operators but deliberately
// not surfaced to API clients (availability over strictness).
func (s *Store) readDoc(name string, dst any) bool {
	path := filepath.Join(s.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", path).Msg("store: read failed, serving empty document")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("store: unparsable document, serving empty document")
		return false
	}
	return true
}

// writeDoc marshals doc with indentation (the admin occasionally inspects
// these files by hand) and overwrites the target synchronously.
func writeDoc(path string, doc any) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		log.Error().Err(err).Str("file", path).Msg("store: write failed")
		return err
	}
	return nil
}

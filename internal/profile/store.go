package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/adrg/xdg"
)

const (
	globalConfigFile = "config.json"
	profilesDir      = "profiles"
	configFile       = "config.json"
	credentialsFile  = "credentials.json"
)

// validName restricts profile names to filesystem-safe identifiers.
// A leading dot is rejected to keep profiles visible and to avoid
// colliding with hidden files.
var validName = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// ValidName reports whether name is an acceptable profile name.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// Store provides persistent storage for profiles and the global config.
// Implementations can use the filesystem or an in-memory fake for tests.
//
// Load methods return (nil, nil) when the requested record is absent.
type Store interface {
	// List enumerates existing profile names, sorted.
	List() ([]string, error)

	// Exists reports whether a profile namespace exists.
	Exists(name string) bool

	// LoadCredentials retrieves the credentials record for a profile.
	LoadCredentials(name string) (*Credentials, error)

	// SaveCredentials stores the credentials record, creating the profile
	// namespace if missing. The write is an idempotent overwrite.
	SaveCredentials(name string, creds *Credentials) error

	// LoadConfig retrieves the per-profile config record.
	LoadConfig(name string) (*Config, error)

	// SaveConfig stores the per-profile config record.
	SaveConfig(name string, cfg *Config) error

	// Remove deletes the profile namespace. It returns false if the
	// profile did not exist. If the profile was the default, the default
	// pointer is cleared.
	Remove(name string) (bool, error)

	// Default returns the default profile name, or "" if none is set.
	Default() (string, error)

	// SetDefault marks an existing profile as the default.
	SetDefault(name string) error
}

// FileStore is a Store backed by a local configuration directory:
//
//	<root>/config.json                      global config
//	<root>/profiles/<name>/config.json      per-profile config
//	<root>/profiles/<name>/credentials.json per-profile credentials
//
// Writes are synchronous single-file JSON writes. The store is not
// lock-protected; concurrent processes refreshing the same profile race
// last-writer-wins, which is accepted behavior.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

// DefaultFileStore creates a FileStore rooted at the XDG config home.
func DefaultFileStore() *FileStore {
	return NewFileStore(filepath.Join(xdg.ConfigHome, "gogctl"))
}

// Root returns the store's configuration directory.
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) profileDir(name string) string {
	return filepath.Join(s.root, profilesDir, name)
}

// List enumerates existing profile names, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, profilesDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && ValidName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a profile namespace exists on disk.
func (s *FileStore) Exists(name string) bool {
	info, err := os.Stat(s.profileDir(name))
	return err == nil && info.IsDir()
}

// LoadCredentials retrieves the credentials record, or (nil, nil) if absent.
func (s *FileStore) LoadCredentials(name string) (*Credentials, error) {
	var creds Credentials
	ok, err := s.readJSON(filepath.Join(s.profileDir(name), credentialsFile), &creds)
	if err != nil || !ok {
		return nil, err
	}
	return &creds, nil
}

// SaveCredentials stores the credentials record, creating the namespace if
// missing.
func (s *FileStore) SaveCredentials(name string, creds *Credentials) error {
	if !ValidName(name) {
		return &InvalidNameError{Name: name}
	}
	return s.writeJSON(filepath.Join(s.profileDir(name), credentialsFile), creds)
}

// LoadConfig retrieves the per-profile config record, or (nil, nil) if
// absent.
func (s *FileStore) LoadConfig(name string) (*Config, error) {
	var cfg Config
	ok, err := s.readJSON(filepath.Join(s.profileDir(name), configFile), &cfg)
	if err != nil || !ok {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig stores the per-profile config record.
func (s *FileStore) SaveConfig(name string, cfg *Config) error {
	if !ValidName(name) {
		return &InvalidNameError{Name: name}
	}
	return s.writeJSON(filepath.Join(s.profileDir(name), configFile), cfg)
}

// Remove deletes the profile namespace, clearing the default pointer if it
// referenced the removed profile.
func (s *FileStore) Remove(name string) (bool, error) {
	dir := s.profileDir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("failed to remove profile %q: %w", name, err)
	}

	global, err := s.loadGlobal()
	if err != nil {
		return true, err
	}
	if global.DefaultProfile == name {
		global.DefaultProfile = ""
		if err := s.saveGlobal(global); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Default returns the default profile name, or "" if none is set.
func (s *FileStore) Default() (string, error) {
	global, err := s.loadGlobal()
	if err != nil {
		return "", err
	}
	return global.DefaultProfile, nil
}

// SetDefault marks an existing profile as the default.
func (s *FileStore) SetDefault(name string) error {
	if !s.Exists(name) {
		return &UnknownProfileError{Name: name}
	}
	global, err := s.loadGlobal()
	if err != nil {
		return err
	}
	global.DefaultProfile = name
	return s.saveGlobal(global)
}

// loadGlobal reads the global config, lazily creating defaults if absent.
func (s *FileStore) loadGlobal() (*GlobalConfig, error) {
	var global GlobalConfig
	ok, err := s.readJSON(filepath.Join(s.root, globalConfigFile), &global)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &GlobalConfig{Version: ConfigVersion}, nil
	}
	return &global, nil
}

func (s *FileStore) saveGlobal(global *GlobalConfig) error {
	if global.Version == 0 {
		global.Version = ConfigVersion
	}
	return s.writeJSON(filepath.Join(s.root, globalConfigFile), global)
}

func (s *FileStore) readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return true, nil
}

func (s *FileStore) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	// Credentials must not be world-readable.
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

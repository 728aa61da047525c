package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// defaultTTL bounds how long a persisted session is trusted when the server
// stopped telling us the token lifetime.
const defaultTTL = 24 * time.Hour

// FileCache persists the session snapshot across runs so a login survives
// restarting the program. The file carries the token, so it is written with
// owner-only permissions.
type FileCache struct {
	path string
	ttl  time.Duration
}

// NewFileCache creates a cache at the given path.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path, ttl: defaultTTL}
}

type cacheFile struct {
	Token   string    `json:"token"`
	UserID  int       `json:"user_id"`
	SavedAt time.Time `json:"saved_at"`
}

// Load reads the persisted snapshot. A missing file or an entry older than
// the TTL yields a logged-out snapshot and no error.
func (c *FileCache) Load() (Snapshot, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("reading session from %s: %w", c.path, err)
	}

	var f cacheFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Snapshot{}, fmt.Errorf("parsing session file %s: %w", c.path, err)
	}
	if f.Token == "" || time.Since(f.SavedAt) > c.ttl {
		return Snapshot{}, nil
	}
	return Snapshot{Token: f.Token, UserID: f.UserID}, nil
}

// Save writes the snapshot. A logged-out snapshot removes the file instead.
func (c *FileCache) Save(snap Snapshot) error {
	if !snap.LoggedIn() {
		if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing session file %s: %w", c.path, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	data, err := json.Marshal(cacheFile{
		Token:   snap.Token,
		UserID:  snap.UserID,
		SavedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file %s: %w", c.path, err)
	}
	return nil
}

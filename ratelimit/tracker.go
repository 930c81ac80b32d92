package ratelimit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Entry is the persisted verdict of one check in one environment. Unknown
// JSON fields in persisted files are ignored, so the format can grow
// without breaking older readers.
type Entry struct {
	// LastRun is the UTC epoch second of the last completed attempt.
	LastRun int64 `json:"last_run"`

	// Status is the string form of the last verdict.
	Status string `json:"status"`

	// Message is the last verdict's message, without cache qualifier.
	Message string `json:"message"`
}

// Tracker is a file-backed store of last verdicts, namespaced per
// environment: one JSON file per environment under the tracker's root
// directory. Files are plain JSON so operators can inspect them or delete
// one to reset an environment's rate limiting.
//
// All persistence is fail-open: a missing, unreadable, or corrupt file is
// treated as "no record", so the cache can never cause a false skip of real
// work.
type Tracker struct {
	dir string

	mu   sync.Mutex
	envs map[string]*sync.Mutex

	now func() time.Time
}

// NewTracker creates a tracker rooted at dir. The directory is created on
// first write.
func NewTracker(dir string) *Tracker {
	return &Tracker{
		dir:  dir,
		envs: make(map[string]*sync.Mutex),
		now:  time.Now,
	}
}

// NewDefaultTracker creates a tracker under the user cache directory,
// falling back to the system temp directory when none is available.
func NewDefaultTracker() *Tracker {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return NewTracker(filepath.Join(base, "allgood"))
}

// Dir returns the tracker's root directory.
func (t *Tracker) Dir() string { return t.dir }

// ShouldRun reports whether a check due every `every` must run now. When it
// returns false, the returned entry holds the verdict to reuse. The
// read-decide sequence is serialized per environment so concurrent runs
// observe a consistent record.
func (t *Tracker) ShouldRun(environment, name string, every time.Duration) (bool, *Entry) {
	if every <= 0 {
		return true, nil
	}

	lock := t.envLock(environment)
	lock.Lock()
	defer lock.Unlock()

	entries := t.load(environment)
	entry, ok := entries[name]
	if !ok {
		return true, nil
	}

	elapsed := t.now().UTC().Sub(time.Unix(entry.LastRun, 0).UTC())
	if elapsed >= every {
		return true, nil
	}
	return false, &entry
}

// Record persists the verdict of a completed attempt. The write is
// read-merge-write under the environment lock and lands via a temp file
// rename, so a crash mid-write cannot leave a half-written file and
// concurrent writers cannot interleave.
func (t *Tracker) Record(environment, name, status, message string) error {
	lock := t.envLock(environment)
	lock.Lock()
	defer lock.Unlock()

	entries := t.load(environment)
	entries[name] = Entry{
		LastRun: t.now().UTC().Unix(),
		Status:  status,
		Message: message,
	}
	return t.store(environment, entries)
}

// Reset deletes every record for an environment. Missing files are not an
// error.
func (t *Tracker) Reset(environment string) error {
	lock := t.envLock(environment)
	lock.Lock()
	defer lock.Unlock()

	err := os.Remove(t.path(environment))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (t *Tracker) envLock(environment string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.envs[environment]
	if !ok {
		lock = &sync.Mutex{}
		t.envs[environment] = lock
	}
	return lock
}

// load reads an environment's records. Any read or parse failure yields an
// empty map; the next Record overwrites the bad file.
func (t *Tracker) load(environment string) map[string]Entry {
	data, err := os.ReadFile(t.path(environment))
	if err != nil {
		return make(map[string]Entry)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return make(map[string]Entry)
	}
	return entries
}

func (t *Tracker) store(environment string, entries map[string]Entry) error {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(t.dir, "."+sanitize(environment)+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), t.path(environment))
}

func (t *Tracker) path(environment string) string {
	return filepath.Join(t.dir, sanitize(environment)+".json")
}

// sanitize maps an environment name to a safe file name component.
func sanitize(environment string) string {
	if environment == "" {
		return "default"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, environment)
}

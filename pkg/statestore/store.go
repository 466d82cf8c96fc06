// Package statestore persists saved toggle states between runs.
//
// States are kept in a bbolt database keyed by widget id, using the binary
// layout of [toggle.State]. The database carries a format version; a store
// written by an incompatible major version is refused rather than
// misread.
package statestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/mod/semver"

	"github.com/go-aretha/aretha/pkg/errors"
	"github.com/go-aretha/aretha/pkg/toggle"
)

// FormatVersion is the version stamped into new stores.
const FormatVersion = "v1.0.0"

var (
	bucketStates = []byte("toggle_states")
	bucketMeta   = []byte("meta")
	keyVersion   = []byte("format_version")
)

// Store is a persistent map from widget id to toggle.State.
type Store struct {
	db      *bolt.DB
	version string
}

// Entry is one saved state.
type Entry struct {
	ID    string
	State toggle.State
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.New("statestore.Open", errors.KindStorage, err)
	}
	s := &Store{db: db}
	if err := db.Update(s.init); err != nil {
		db.Close()
		return nil, errors.New("statestore.Open", errors.KindStorage, err)
	}
	return s, nil
}

func (s *Store) init(tx *bolt.Tx) error {
	if _, err := tx.CreateBucketIfNotExists(bucketStates); err != nil {
		return err
	}
	meta, err := tx.CreateBucketIfNotExists(bucketMeta)
	if err != nil {
		return err
	}

	stored := string(meta.Get(keyVersion))
	switch {
	case stored == "":
		s.version = FormatVersion
		return meta.Put(keyVersion, []byte(FormatVersion))
	case !semver.IsValid(stored):
		return fmt.Errorf("invalid format version %q", stored)
	case semver.Major(stored) != semver.Major(FormatVersion):
		return fmt.Errorf("format version %s is incompatible with %s", stored, FormatVersion)
	case semver.Compare(stored, FormatVersion) < 0:
		s.version = FormatVersion
		return meta.Put(keyVersion, []byte(FormatVersion))
	default:
		s.version = stored
		return nil
	}
}

// Version returns the format version recorded in the store.
func (s *Store) Version() string {
	return s.version
}

// Save writes the state for id, replacing any previous value.
func (s *Store) Save(id string, state toggle.State) error {
	if id == "" {
		return errors.New("statestore.Save", errors.KindStorage, fmt.Errorf("empty id"))
	}
	data, err := state.MarshalBinary()
	if err != nil {
		return errors.New("statestore.Save", errors.KindState, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketStates).Put([]byte(id), data)
	})
	if err != nil {
		return errors.New("statestore.Save", errors.KindStorage, err)
	}
	return nil
}

// Load returns the state saved for id. ok is false if nothing was saved.
func (s *Store) Load(id string) (state toggle.State, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketStates).Get([]byte(id))
		if data == nil {
			return nil
		}
		ok = true
		return state.UnmarshalBinary(data)
	})
	if err != nil {
		return toggle.State{}, false, errors.New("statestore.Load", errors.KindState, err)
	}
	return state, ok, nil
}

// Delete removes the state saved for id. Deleting a missing id is not an
// error.
func (s *Store) Delete(id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketStates).Delete([]byte(id))
	})
	if err != nil {
		return errors.New("statestore.Delete", errors.KindStorage, err)
	}
	return nil
}

// List returns all saved states sorted by id.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketStates).ForEach(func(k, v []byte) error {
			var st toggle.State
			if err := st.UnmarshalBinary(v); err != nil {
				return fmt.Errorf("entry %q: %w", k, err)
			}
			entries = append(entries, Entry{ID: string(k), State: st})
			return nil
		})
	})
	if err != nil {
		return nil, errors.New("statestore.List", errors.KindState, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DefaultPath returns the store location used when none is configured:
// $ARETHA_STATE_DIR/state.db, or state.db under the user config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("ARETHA_STATE_DIR"); dir != "" {
		return filepath.Join(dir, "state.db"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "aretha")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}

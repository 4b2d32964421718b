// Package store is the embedded persistence layer: a single versioned
// Badger database holding the four collections the application needs
// offline. Records are JSON-encoded under "<collection>/<key>" keys, so a
// prefix scan returns one collection.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/fundicaobk/equipcheck/models"
	"github.com/fundicaobk/equipcheck/seed"
)

// Collection names. The layout is shared with older installations, so the
// names and the keying rules must not change.
const (
	CollectionEquipments = "equipments"
	CollectionOperators  = "operators"
	CollectionSectors    = "sectors"
	CollectionChecklists = "checklists"
)

// SchemaVersion is written on first open. Bump it together with a
// migration when the persisted layout changes.
const SchemaVersion = 1

const (
	schemaVersionKey = "meta/schema_version"
	checklistSeqKey  = "meta/checklist_seq"
	seededKeyPrefix  = "meta/seeded/"
)

var (
	// ErrStoreUnavailable reports that the host environment could not
	// provide persistent storage.
	ErrStoreUnavailable = errors.New("store: persistent storage unavailable")
	// ErrDuplicateKey reports an Add whose natural key already exists.
	ErrDuplicateKey = errors.New("store: key already exists")
)

// Store wraps one Badger database. Concurrent use is safe; Badger
// serializes conflicting writes itself and the store adds no locking.
type Store struct {
	db  *badger.DB
	seq *badger.Sequence
	log *zap.Logger
}

// Open opens (creating on first use) the store at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	return open(opts, log)
}

// OpenInMemory opens a non-persistent store. Intended for tests.
func OpenInMemory(log *zap.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, log)
}

func open(opts badger.Options, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s := &Store{db: db, log: log}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	// Submissions use a surrogate key so an add can never collide.
	seq, err := db.GetSequence([]byte(checklistSeqKey), 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.seq = seq
	return s, nil
}

// Close releases the sequence lease and closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if s.seq != nil {
		if err := s.seq.Release(); err != nil {
			s.log.Warn("releasing checklist sequence", zap.Error(err))
		}
	}
	return s.db.Close()
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return ErrStoreUnavailable
	}
	return nil
}

func (s *Store) ensureSchema() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(schemaVersionKey))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set([]byte(schemaVersionKey), []byte(fmt.Sprintf("%d", SchemaVersion)))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func recordKey(collection, key string) []byte {
	return []byte(collection + "/" + key)
}

// GetAll returns every record of a collection in key order. An unpopulated
// collection yields an empty slice, except equipments and operators, which
// are seeded from the built-in lists on first read and persisted so later
// reads are served locally.
func GetAll[T any](s *Store, collection string) ([]T, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	records, err := scan[T](s, collection)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		return records, nil
	}
	seeded, err := s.seedCollection(collection)
	if err != nil {
		return nil, err
	}
	if !seeded {
		return records, nil
	}
	return scan[T](s, collection)
}

func scan[T any](s *Store, collection string) ([]T, error) {
	records := []T{}
	prefix := []byte(collection + "/")
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record T
				if err := json.Unmarshal(val, &record); err != nil {
					return fmt.Errorf("decoding %s record: %w", collection, err)
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// seedCollection populates an empty equipment or operator collection from
// the built-in lists, exactly once per store. Other collections have no
// static default and stay empty.
func (s *Store) seedCollection(collection string) (bool, error) {
	var marshaled map[string][]byte
	switch collection {
	case CollectionEquipments:
		marshaled = map[string][]byte{}
		for _, e := range seed.Equipments() {
			data, err := json.Marshal(e)
			if err != nil {
				return false, err
			}
			marshaled[e.ID] = data
		}
	case CollectionOperators:
		marshaled = map[string][]byte{}
		for _, o := range seed.Operators() {
			data, err := json.Marshal(o)
			if err != nil {
				return false, err
			}
			marshaled[o.ID] = data
		}
	default:
		return false, nil
	}

	flag := []byte(seededKeyPrefix + collection)
	seeded := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(flag)
		if err == nil {
			// Seeded before and later emptied on purpose; leave it alone.
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		for key, data := range marshaled {
			if err := txn.Set(recordKey(collection, key), data); err != nil {
				return err
			}
		}
		if err := txn.Set(flag, []byte("1")); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		s.log.Info("seeded embedded collection", zap.String("collection", collection), zap.Int("records", len(marshaled)))
	}
	return seeded, nil
}

// Add inserts a record under its natural key and fails with
// ErrDuplicateKey when the key is already present.
func Add[T any](s *Store, collection, key string, record T) error {
	if err := s.ready(); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	k := recordKey(collection, key)
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(k)
		if err == nil {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateKey, collection, key)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(k, data)
	})
}

// Put upserts a record under its key. Used for admin edits.
func Put[T any](s *Store, collection, key string, record T) error {
	if err := s.ready(); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(collection, key), data)
	})
}

// Delete removes a record by key. Deleting an absent key is not an error.
func (s *Store) Delete(collection, key string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(recordKey(collection, key))
	})
}

// AppendChecklist persists a history record under the next surrogate key.
// Zero-padding keeps prefix scans in insertion order.
func (s *Store) AppendChecklist(record models.ChecklistHistory) error {
	if err := s.ready(); err != nil {
		return err
	}
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("allocating checklist key: %w", err)
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	key := recordKey(CollectionChecklists, fmt.Sprintf("%012d", n))
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// ClearChecklists drops every record of the submissions collection.
func (s *Store) ClearChecklists() error {
	if err := s.ready(); err != nil {
		return err
	}
	prefix := []byte(CollectionChecklists + "/")
	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		keys := [][]byte{}
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

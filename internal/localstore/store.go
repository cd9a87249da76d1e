package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/petdesk/internal/pets"
)

// PetsKey is the key the collection is stored under.
const PetsKey = "pets"

// ErrCorrupt marks a stored value that could not be parsed.
var ErrCorrupt = errors.New("local store corrupt")

// KV is the durable storage the Store writes through.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Log is the subset of the application logger the store writes to.
type Log interface {
	Warn(msg string, fields ...zap.Field)
}

// Store is the local fallback copy of the pet collection.
type Store struct {
	mu  sync.Mutex
	kv  KV
	log Log
}

// New returns a Store persisting through kv. log may be nil.
func New(kv KV, log Log) *Store {
	return &Store{kv: kv, log: log}
}

// Load returns the persisted collection. Missing or unreadable data yields an
// empty collection.
func (s *Store) Load() []pets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.readLocked()
	if err != nil {
		s.warn("local pets unreadable, using empty collection", err)
		return []pets.Pet{}
	}
	return list
}

// Append stores a new pet built from in with id max+1. It returns the new pet
// and the resulting stored collection.
func (s *Store) Append(in pets.Input) (pets.Pet, []pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.readLocked()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return pets.Pet{}, nil, fmt.Errorf("read local pets: %w", err)
		}
		s.warn("local pets unreadable, starting over", err)
		list = []pets.Pet{}
	}
	p := in.Pet(nextID(list))
	list = append(list, p)
	if err := s.writeLocked(list); err != nil {
		return pets.Pet{}, nil, err
	}
	return p, pets.Clone(list), nil
}

// Remove deletes id and returns the resulting collection. An absent id leaves
// the stored value untouched. Unparsable data counts as empty, but a failed
// read is returned.
func (s *Store) Remove(id int64) ([]pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.readLocked()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return nil, fmt.Errorf("read local pets: %w", err)
		}
		s.warn("local pets unreadable, using empty collection", err)
		return []pets.Pet{}, nil
	}
	kept := make([]pets.Pet, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(list) {
		return list, nil
	}
	if err := s.writeLocked(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *Store) readLocked() ([]pets.Pet, error) {
	data, ok, err := s.kv.Get(PetsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []pets.Pet{}, nil
	}
	var list []pets.Pet
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return pets.NormalizeAll(list), nil
}

func (s *Store) writeLocked(list []pets.Pet) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode local pets: %w", err)
	}
	if err := s.kv.Set(PetsKey, data); err != nil {
		return fmt.Errorf("save local pets: %w", err)
	}
	return nil
}

func (s *Store) warn(msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(msg, zap.Error(err))
}

func nextID(list []pets.Pet) int64 {
	var maxID int64
	for _, p := range list {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

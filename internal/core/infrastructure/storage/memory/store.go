// Package memory provides a map backed state context.
//
// Store is safe for concurrent use. Begin returns a Txn that buffers writes
// and deletes until Commit, so a failed transaction leaves the store
// untouched.
package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/dgc-network/smart/pkg/interfaces/state"
)

// ErrTxnClosed is returned by a Txn used after Commit or Discard.
var ErrTxnClosed = errors.New("transaction already closed")

var (
	_ state.TransactionContext = (*Store)(nil)
	_ state.TransactionContext = (*Txn)(nil)
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) GetState(addresses []string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(addresses))
	for _, address := range addresses {
		if v, ok := s.data[address]; ok {
			result[address] = append([]byte(nil), v...)
		}
	}
	return result, nil
}

func (s *Store) SetState(entries map[string][]byte) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	written := make([]string, 0, len(entries))
	for address, v := range entries {
		s.data[address] = append([]byte(nil), v...)
		written = append(written, address)
	}
	sort.Strings(written)
	return written, nil
}

func (s *Store) DeleteState(addresses []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted []string
	for _, address := range addresses {
		if _, ok := s.data[address]; ok {
			delete(s.data, address)
			deleted = append(deleted, address)
		}
	}
	return deleted, nil
}

// Keys returns every stored address in order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Begin starts a buffered transaction over the store.
func (s *Store) Begin() *Txn {
	return &Txn{
		store:   s,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

// Txn overlays pending writes on a Store. It is not safe for concurrent use.
type Txn struct {
	store   *Store
	writes  map[string][]byte
	deletes map[string]struct{}
	closed  bool
}

func (t *Txn) GetState(addresses []string) (map[string][]byte, error) {
	if t.closed {
		return nil, ErrTxnClosed
	}

	result := make(map[string][]byte, len(addresses))
	var missing []string
	for _, address := range addresses {
		if _, gone := t.deletes[address]; gone {
			continue
		}
		if v, ok := t.writes[address]; ok {
			result[address] = append([]byte(nil), v...)
			continue
		}
		missing = append(missing, address)
	}

	if len(missing) > 0 {
		committed, err := t.store.GetState(missing)
		if err != nil {
			return nil, err
		}
		for k, v := range committed {
			result[k] = v
		}
	}
	return result, nil
}

func (t *Txn) SetState(entries map[string][]byte) ([]string, error) {
	if t.closed {
		return nil, ErrTxnClosed
	}

	written := make([]string, 0, len(entries))
	for address, v := range entries {
		t.writes[address] = append([]byte(nil), v...)
		delete(t.deletes, address)
		written = append(written, address)
	}
	sort.Strings(written)
	return written, nil
}

func (t *Txn) DeleteState(addresses []string) ([]string, error) {
	if t.closed {
		return nil, ErrTxnClosed
	}

	existing, err := t.GetState(addresses)
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, address := range addresses {
		if _, ok := existing[address]; !ok {
			continue
		}
		delete(t.writes, address)
		t.deletes[address] = struct{}{}
		deleted = append(deleted, address)
	}
	return deleted, nil
}

// Commit applies the buffered changes to the store atomically.
func (t *Txn) Commit() error {
	if t.closed {
		return ErrTxnClosed
	}
	t.closed = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for address := range t.deletes {
		delete(t.store.data, address)
	}
	for address, v := range t.writes {
		t.store.data[address] = v
	}
	return nil
}

// Discard drops the buffered changes. Calling it after Commit is a no-op.
func (t *Txn) Discard() {
	t.closed = true
}

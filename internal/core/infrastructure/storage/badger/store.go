// Package badger persists global state in BadgerDB for local runs of the
// processor.
//
// Store opens the database and an optional bigcache read cache of committed
// values. Begin returns a Transaction that implements the state context and
// is committed or discarded as a unit.
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/allegro/bigcache/v3"
	badgerdb "github.com/dgraph-io/badger/v3"

	badgerconfig "github.com/dgc-network/smart/internal/config/storage/badger"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/log"
	"github.com/dgc-network/smart/pkg/interfaces/state"
)

var _ state.TransactionContext = (*Store)(nil)

type Store struct {
	db      *badgerdb.DB
	cache   *bigcache.BigCache
	options *badgerconfig.BadgerOptions
	logger  log.Logger

	mu     sync.RWMutex
	closed bool

	// cacheMu orders cache fills against commit invalidation. commits counts
	// finished commits; a transaction may fill the cache only while it is
	// unchanged since Begin.
	cacheMu sync.Mutex
	commits uint64
}

// New opens the database described by options.
func New(options *badgerconfig.BadgerOptions, logger log.Logger) (*Store, error) {
	var opts badgerdb.Options
	if options.InMemory {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(options.Path, 0700); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", options.Path, err)
		}
		opts = badgerdb.DefaultOptions(options.Path)
	}
	opts = opts.WithSyncWrites(options.SyncWrites).WithLogger(&badgerLogger{logger: logger})

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", options.Path, err)
	}

	store := &Store{
		db:      db,
		options: options,
		logger:  logger,
	}

	if options.CacheEnabled {
		cacheConfig := bigcache.DefaultConfig(options.CacheLifeWindow)
		cacheConfig.Shards = 64
		cacheConfig.HardMaxCacheSize = options.CacheMaxSizeMB
		cacheConfig.Verbose = false
		cache, err := bigcache.New(context.Background(), cacheConfig)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create state cache: %w", err)
		}
		store.cache = cache
	}

	if options.InMemory {
		logger.Info("badger state store opened in memory")
	} else {
		logger.Infof("badger state store opened at %s", options.Path)
	}
	return store, nil
}

// Close releases the database and the cache. Calling it twice is harmless.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	errs = append(errs, s.db.Close())
	return errors.Join(errs...)
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Begin starts a read-write transaction.
func (s *Store) Begin() (*Transaction, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}
	s.cacheMu.Lock()
	seq := s.commits
	s.cacheMu.Unlock()
	return &Transaction{
		store:   s,
		seq:     seq,
		txn:     s.db.NewTransaction(true),
		touched: make(map[string]bool),
	}, nil
}

// GetState reads committed values.
func (s *Store) GetState(addresses []string) (map[string][]byte, error) {
	txn, err := s.Begin()
	if err != nil {
		return nil, err
	}
	defer txn.Discard()
	return txn.GetState(addresses)
}

// SetState writes entries in a transaction of their own.
func (s *Store) SetState(entries map[string][]byte) ([]string, error) {
	txn, err := s.Begin()
	if err != nil {
		return nil, err
	}
	defer txn.Discard()

	written, err := txn.SetState(entries)
	if err != nil {
		return nil, err
	}
	return written, txn.Commit()
}

// DeleteState deletes addresses in a transaction of their own.
func (s *Store) DeleteState(addresses []string) ([]string, error) {
	txn, err := s.Begin()
	if err != nil {
		return nil, err
	}
	defer txn.Discard()

	deleted, err := txn.DeleteState(addresses)
	if err != nil {
		return nil, err
	}
	return deleted, txn.Commit()
}

// Keys lists stored addresses with the given prefix, in order.
func (s *Store) Keys(prefix string) ([]string, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}
	var keys []string
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) cacheGet(address string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	v, err := s.cache.Get(address)
	if err != nil {
		return nil, false
	}
	return v, true
}

// cachePut stores a value read by a transaction that began at seq. A commit
// since then may have changed the value, so the fill is skipped.
func (s *Store) cachePut(seq uint64, address string, value []byte) {
	if s.cache == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.commits != seq {
		return
	}
	if err := s.cache.Set(address, value); err != nil {
		s.logger.Debugf("state cache set %s: %v", address, err)
	}
}

// invalidate records a finished commit and drops the addresses it wrote.
func (s *Store) invalidate(addresses map[string]bool) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.commits++
	if s.cache == nil {
		return
	}
	for address := range addresses {
		_ = s.cache.Delete(address)
	}
}

// badgerLogger routes badger's internal logging to the processor logger.
type badgerLogger struct {
	logger log.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf("[badger] "+format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf("[badger] "+format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf("[badger] "+format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("[badger] "+format, args...)
}

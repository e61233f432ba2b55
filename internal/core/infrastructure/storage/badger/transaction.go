package badger

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	badgerdb "github.com/dgraph-io/badger/v3"

	"github.com/dgc-network/smart/pkg/interfaces/state"
)

var _ state.TransactionContext = (*Transaction)(nil)

type TransactionState int32

const (
	TxActive TransactionState = iota
	TxCommitted
	TxDiscarded
)

// Transaction is a state context over one badger read-write transaction.
// Reads of addresses the transaction has not touched may be served from the
// store cache; touched addresses always go to badger, which sees pending
// writes.
type Transaction struct {
	store   *Store
	seq     uint64 // store commit count at Begin
	txn     *badgerdb.Txn
	state   int32
	touched map[string]bool // address -> deleted
}

func (t *Transaction) active() error {
	if TransactionState(atomic.LoadInt32(&t.state)) != TxActive {
		return ErrTxnClosed
	}
	return nil
}

func (t *Transaction) get(address string) ([]byte, bool, error) {
	if _, dirty := t.touched[address]; !dirty {
		if v, ok := t.store.cacheGet(address); ok {
			return v, true, nil
		}
	}

	item, err := t.txn.Get([]byte(address))
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", address, err)
	}
	v, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, fmt.Errorf("copy value of %s: %w", address, err)
	}
	if _, dirty := t.touched[address]; !dirty {
		t.store.cachePut(t.seq, address, v)
	}
	return v, true, nil
}

func (t *Transaction) GetState(addresses []string) (map[string][]byte, error) {
	if err := t.active(); err != nil {
		return nil, err
	}
	result := make(map[string][]byte, len(addresses))
	for _, address := range addresses {
		v, ok, err := t.get(address)
		if err != nil {
			return nil, err
		}
		if ok {
			result[address] = v
		}
	}
	return result, nil
}

func (t *Transaction) SetState(entries map[string][]byte) ([]string, error) {
	if err := t.active(); err != nil {
		return nil, err
	}
	written := make([]string, 0, len(entries))
	for address, v := range entries {
		if err := t.txn.Set([]byte(address), append([]byte(nil), v...)); err != nil {
			return nil, fmt.Errorf("set %s: %w", address, err)
		}
		t.touched[address] = false
		written = append(written, address)
	}
	sort.Strings(written)
	return written, nil
}

func (t *Transaction) DeleteState(addresses []string) ([]string, error) {
	if err := t.active(); err != nil {
		return nil, err
	}
	var deleted []string
	for _, address := range addresses {
		_, ok, err := t.get(address)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := t.txn.Delete([]byte(address)); err != nil {
			return nil, fmt.Errorf("delete %s: %w", address, err)
		}
		t.touched[address] = true
		deleted = append(deleted, address)
	}
	return deleted, nil
}

// Commit persists the transaction and drops every touched address from the
// cache.
func (t *Transaction) Commit() error {
	if !atomic.CompareAndSwapInt32(&t.state, int32(TxActive), int32(TxCommitted)) {
		return ErrTxnClosed
	}
	if err := t.txn.Commit(); err != nil {
		return fmt.Errorf("commit state transaction: %w", err)
	}
	t.store.invalidate(t.touched)
	return nil
}

// Discard abandons the transaction. It is safe to call after Commit.
func (t *Transaction) Discard() {
	if atomic.CompareAndSwapInt32(&t.state, int32(TxActive), int32(TxDiscarded)) {
		t.txn.Discard()
	}
}

func (t *Transaction) IsCommitted() bool {
	return TransactionState(atomic.LoadInt32(&t.state)) == TxCommitted
}

package wasm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	statectx "github.com/dgc-network/smart/pkg/interfaces/state"
)

const pageSize = 65536

type externalsKey struct{}

// externals is the per-instance state behind the host functions: the
// transaction context, the scratch arena and the pointer tables shared with
// the guest.
type externals struct {
	engine *Engine
	state  statectx.TransactionContext
	depth  int

	memory api.Memory
	next   uint64
	limit  uint64

	// pointers maps every host allocated pointer to its length.
	pointers map[uint32]uint32
	// collections maps a head pointer to the pointers of the list.
	collections map[uint32][]uint32

	fault error
}

func newExternals(e *Engine, state statectx.TransactionContext, depth int) *externals {
	return &externals{
		engine:      e,
		state:       state,
		depth:       depth,
		pointers:    make(map[uint32]uint32),
		collections: make(map[uint32][]uint32),
	}
}

func withExternals(ctx context.Context, x *externals) context.Context {
	return context.WithValue(ctx, externalsKey{}, x)
}

// externalsFrom returns the externals of the running call. Host functions
// are only reachable from inside a call, so a miss is fatal.
func externalsFrom(ctx context.Context) *externals {
	x, ok := ctx.Value(externalsKey{}).(*externals)
	if !ok {
		panic(ErrNoExecution)
	}
	return x
}

// attach grows memory by pages and uses the new pages as the arena.
func (x *externals) attach(memory api.Memory, pages uint32) error {
	previous, ok := memory.Grow(pages)
	if !ok {
		return fmt.Errorf("%w: cannot grow memory by %d pages", ErrArenaExhausted, pages)
	}
	x.memory = memory
	x.next = uint64(previous) * pageSize
	x.limit = uint64(previous+pages) * pageSize
	if x.next == 0 {
		// pointer 0 means "nothing" to the guest
		x.next = 8
	}
	return nil
}

// check records the first fatal error and aborts the guest.
func (x *externals) check(err error) {
	if err == nil {
		return
	}
	if x.fault == nil {
		x.fault = err
	}
	panic(err)
}

func (x *externals) alloc(length uint32) (uint32, error) {
	size := uint64(length)
	if size == 0 {
		size = 1
	}
	if x.next+size > x.limit {
		return 0, fmt.Errorf("%w: %d bytes requested, %d left", ErrArenaExhausted, length, x.limit-x.next)
	}
	ptr := uint32(x.next)
	x.next = (x.next + size + 7) &^ 7
	x.pointers[ptr] = length
	return ptr, nil
}

func (x *externals) writeByte(ptr, offset uint32, b byte) error {
	length, ok := x.pointers[ptr]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPointer, ptr)
	}
	if offset >= length || !x.memory.WriteByte(ptr+offset, b) {
		return fmt.Errorf("%w: write at %d+%d", ErrOutOfBounds, ptr, offset)
	}
	return nil
}

func (x *externals) readByte(offset uint32) (byte, error) {
	b, ok := x.memory.ReadByte(offset)
	if !ok {
		return 0, fmt.Errorf("%w: read at %d", ErrOutOfBounds, offset)
	}
	return b, nil
}

func (x *externals) pointerLen(ptr uint32) int32 {
	if length, ok := x.pointers[ptr]; ok {
		return int32(length)
	}
	return -1
}

func (x *externals) createCollection(head uint32) uint32 {
	x.collections[head] = []uint32{head}
	return head
}

func (x *externals) addToCollection(head, ptr uint32) (uint32, error) {
	list, ok := x.collections[head]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCollection, head)
	}
	x.collections[head] = append(list, ptr)
	return head, nil
}

func (x *externals) collectionLen(head uint32) int32 {
	if list, ok := x.collections[head]; ok {
		return int32(len(list))
	}
	return -1
}

func (x *externals) collectionItem(head, index uint32) (uint32, error) {
	list, ok := x.collections[head]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCollection, head)
	}
	if int(index) >= len(list) {
		return 0, fmt.Errorf("%w: index %d of collection %d (len %d)", ErrOutOfBounds, index, head, len(list))
	}
	return list[index], nil
}

// write copies data into a fresh arena pointer.
func (x *externals) write(data []byte) (uint32, error) {
	ptr, err := x.alloc(uint32(len(data)))
	if err != nil {
		return 0, err
	}
	if len(data) > 0 && !x.memory.Write(ptr, data) {
		return 0, fmt.Errorf("%w: write %d bytes at %d", ErrOutOfBounds, len(data), ptr)
	}
	return ptr, nil
}

// writeList copies every item and links them into a collection. An empty
// list is pointer 0.
func (x *externals) writeList(items [][]byte) (uint32, error) {
	if len(items) == 0 {
		return 0, nil
	}
	ptrs := make([]uint32, 0, len(items))
	for _, item := range items {
		ptr, err := x.write(item)
		if err != nil {
			return 0, err
		}
		ptrs = append(ptrs, ptr)
	}
	x.collections[ptrs[0]] = ptrs
	return ptrs[0], nil
}

func (x *externals) writeStrings(items []string) (uint32, error) {
	list := make([][]byte, len(items))
	for i, s := range items {
		list[i] = []byte(s)
	}
	return x.writeList(list)
}

// read copies the contents of a registered pointer out of guest memory.
func (x *externals) read(ptr uint32) ([]byte, error) {
	length, ok := x.pointers[ptr]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPointer, ptr)
	}
	data, ok := x.memory.Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("%w: read %d bytes at %d", ErrOutOfBounds, length, ptr)
	}
	return append([]byte(nil), data...), nil
}

func (x *externals) readString(ptr uint32) (string, error) {
	data, err := x.read(ptr)
	return string(data), err
}

func (x *externals) readList(head uint32) ([][]byte, error) {
	ptrs, ok := x.collections[head]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCollection, head)
	}
	items := make([][]byte, 0, len(ptrs))
	for _, ptr := range ptrs {
		data, err := x.read(ptr)
		if err != nil {
			return nil, err
		}
		items = append(items, data)
	}
	return items, nil
}

func (x *externals) readStrings(head uint32) ([]string, error) {
	items, err := x.readList(head)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = string(item)
	}
	return out, nil
}

// readOptionalStrings accepts 0 (empty), a collection, or a lone pointer.
func (x *externals) readOptionalStrings(head uint32) ([]string, error) {
	if head == 0 {
		return nil, nil
	}
	if _, ok := x.collections[head]; ok {
		return x.readStrings(head)
	}
	s, err := x.readString(head)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func (x *externals) getState(head uint32) (uint32, error) {
	addresses, err := x.readStrings(head)
	if err != nil {
		return 0, err
	}
	values, err := x.state.GetState(addresses)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateAccess, err)
	}
	var found [][]byte
	for _, address := range addresses {
		if value, ok := values[address]; ok && value != nil {
			found = append(found, value)
		}
	}
	return x.writeList(found)
}

func (x *externals) setState(head uint32) (int32, error) {
	items, err := x.readList(head)
	if err != nil {
		return 0, err
	}
	if len(items)%2 != 0 {
		return 0, fmt.Errorf("%w: %d items", ErrOddStateList, len(items))
	}
	entries := make(map[string][]byte, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		entries[string(items[i])] = items[i+1]
	}
	if _, err := x.state.SetState(entries); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateAccess, err)
	}
	return 1, nil
}

func (x *externals) deleteState(head uint32) (uint32, error) {
	addresses, err := x.readStrings(head)
	if err != nil {
		return 0, err
	}
	deleted, err := x.state.DeleteState(addresses)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateAccess, err)
	}
	return x.writeStrings(deleted)
}

package wasm

import "fmt"

// Hand assembled WebAssembly binaries for tests. Only the handful of
// instructions the tests need are supported.

const (
	valueI32 byte = 0x7f

	opUnreachable byte = 0x00
	opLoop        byte = 0x03
	opBr          byte = 0x0c
	opEnd         byte = 0x0b
	opCall        byte = 0x10
	opDrop        byte = 0x1a
	opLocalGet    byte = 0x20
	opI32Const    byte = 0x41
	opI32Add      byte = 0x6a

	blockEmpty byte = 0x40
)

type funcType struct {
	params  int
	results int
}

var hostSignatures = map[string]funcType{
	"alloc":                   {1, 1},
	"write_byte":              {3, 1},
	"read_byte":               {1, 1},
	"get_ptr_len":             {1, 1},
	"create_collection":       {1, 1},
	"add_to_collection":       {2, 1},
	"get_ptr_collection_len":  {1, 1},
	"get_ptr_from_collection": {2, 1},
	"get_state":               {1, 1},
	"set_state":               {1, 1},
	"delete_state":            {1, 1},
	"invoke_smart_permission": {6, 1},
	"log_buffer":              {2, 0},
	"log_level":               {0, 1},
}

// testModule is a contract with host imports, one exported function and,
// unless noMemory is set, one exported page of memory.
type testModule struct {
	imports  []string
	export   string
	params   int
	results  int
	noMemory bool
	body     []byte
}

// contract returns a module exporting entrypoint(i32, i32, i32) -> i32.
func contract(imports ...string) *testModule {
	return &testModule{imports: imports, export: entrypointName, params: 3, results: 1}
}

func (m *testModule) code(instructions ...[]byte) *testModule {
	for _, in := range instructions {
		m.body = append(m.body, in...)
	}
	return m
}

func (m *testModule) call(name string) []byte {
	for i, imported := range m.imports {
		if imported == name {
			return append([]byte{opCall}, uleb(uint64(i))...)
		}
	}
	panic(fmt.Sprintf("%s is not imported", name))
}

func localGet(i int) []byte { return []byte{opLocalGet, byte(i)} }

func i32Const(v int32) []byte { return append([]byte{opI32Const}, sleb(int64(v))...) }

// loopForever spins until the runtime interrupts it.
func loopForever() []byte { return []byte{opLoop, blockEmpty, opBr, 0x00, opEnd} }

func (m *testModule) bytes() []byte {
	var types [][]byte
	for _, name := range m.imports {
		sig, ok := hostSignatures[name]
		if !ok {
			panic(fmt.Sprintf("unknown host function %s", name))
		}
		types = append(types, encodeFuncType(sig))
	}
	types = append(types, encodeFuncType(funcType{m.params, m.results}))

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = appendSection(out, 1, vec(types))

	if len(m.imports) > 0 {
		var imports [][]byte
		for i, name := range m.imports {
			entry := append(encodeName("env"), encodeName(name)...)
			entry = append(entry, 0x00)
			entry = append(entry, uleb(uint64(i))...)
			imports = append(imports, entry)
		}
		out = appendSection(out, 2, vec(imports))
	}

	funcIndex := uleb(uint64(len(m.imports)))
	out = appendSection(out, 3, vec([][]byte{funcIndex}))

	if !m.noMemory {
		out = appendSection(out, 5, vec([][]byte{{0x00, 0x01}}))
	}

	exports := [][]byte{append(append(encodeName(m.export), 0x00), funcIndex...)}
	if !m.noMemory {
		exports = append(exports, append(encodeName("memory"), 0x02, 0x00))
	}
	out = appendSection(out, 7, vec(exports))

	body := append([]byte{0x00}, m.body...)
	body = append(body, opEnd)
	out = appendSection(out, 10, vec([][]byte{append(uleb(uint64(len(body))), body...)}))
	return out
}

func encodeFuncType(sig funcType) []byte {
	out := []byte{0x60}
	out = append(out, uleb(uint64(sig.params))...)
	for i := 0; i < sig.params; i++ {
		out = append(out, valueI32)
	}
	out = append(out, uleb(uint64(sig.results))...)
	for i := 0; i < sig.results; i++ {
		out = append(out, valueI32)
	}
	return out
}

func encodeName(s string) []byte {
	return append(uleb(uint64(len(s))), s...)
}

func vec(items [][]byte) []byte {
	out := uleb(uint64(len(items)))
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

func appendSection(out []byte, id byte, content []byte) []byte {
	out = append(out, id)
	out = append(out, uleb(uint64(len(content)))...)
	return append(out, content...)
}

func uleb(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func sleb(v int64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

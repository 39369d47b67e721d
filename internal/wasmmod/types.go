// Package wasmmod holds the in-memory description of a generated
// WebAssembly module: the closed type system, the instruction enum, and
// the module-level containers the builder (internal/genmodule) fills in
// and the encoder (internal/encoder) serialises.
//
// Nothing in this package consumes entropy or applies policy; it is purely
// the data model from spec §3.
package wasmmod

import "github.com/Concordium/wasm-tools/api"

// ValType is re-exported from api so callers of this package never need to
// import api directly just to spell out a value type.
type ValType = api.ValType

// Index is a WebAssembly index-space reference (type, function, table,
// memory, global, element, data).
type Index = uint32

// FuncType is an ordered list of parameter types and an optional single
// result type. The source encoder only ever emits single-result functions
// even though wasm itself allows multi-value returns as of the multi-value
// proposal; this port keeps that restriction (see DESIGN.md).
type FuncType struct {
	Params []ValType
	Result *ValType
}

// Results returns the result type list (0 or 1 element) for encoding.
func (f *FuncType) Results() []ValType {
	if f.Result == nil {
		return nil
	}
	return []ValType{*f.Result}
}

// Equal reports whether f and o describe the same signature.
func (f *FuncType) Equal(o *FuncType) bool {
	if len(f.Params) != len(o.Params) {
		return false
	}
	for i, p := range f.Params {
		if p != o.Params[i] {
			return false
		}
	}
	if (f.Result == nil) != (o.Result == nil) {
		return false
	}
	return f.Result == nil || *f.Result == *o.Result
}

// Limits is a resizable entity's min/max page or element count.
type Limits struct {
	Min uint32
	Max *uint32
}

// TableType describes a table of references.
type TableType struct {
	ElemType ValType
	Limits   Limits
}

// MemoryType describes a linear memory.
type MemoryType struct {
	Limits Limits
}

// GlobalType describes a global variable's value type and mutability.
type GlobalType struct {
	ValType ValType
	Mutable bool
}

// Import is a function import drawn from the configuration's host function
// set. This core only models function imports: the source's "host function
// model" means tables, memories, and globals may only be declared (defined
// locally), never imported, which keeps the index-space bookkeeping in
// internal/genmodule simple (imported functions always occupy a contiguous
// prefix of the function index space; the other three spaces are entirely
// defined).
type Import struct {
	Module    string
	Name      string
	TypeIndex Index
}

// HostFunction is a single importable function signature, as offered by a
// Config's HostFunctions().
type HostFunction struct {
	ModName string
	Name    string
	Params  []ValType
	Result  *ValType
}

// FuncType returns the signature of the host function as a FuncType value,
// suitable for deduplicating against the module's type section.
func (h HostFunction) FuncType() FuncType {
	return FuncType{Params: append([]ValType(nil), h.Params...), Result: h.Result}
}

// ConstExpr is a single-instruction constant initializer: i32.const,
// i64.const, ref.null or ref.func.
type ConstExpr struct {
	Instr Instruction
}

// Export pairs an export name with the kind and index of the entity it
// exposes.
type Export struct {
	Name  string
	Kind  api.ExternType
	Index Index
}

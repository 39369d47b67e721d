package selector

import (
	"github.com/Concordium/wasm-tools/internal/config"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
)

// Context is the read-only view of the rest of the module that one
// function body's generation needs: the type table, the other index
// spaces, and which functions may legally appear in a ref.func.
type Context struct {
	Locals []wasmmod.ValType

	Globals []wasmmod.GlobalType

	// FuncTypeIndices[i] is the type index of function i.
	FuncTypeIndices []wasmmod.Index
	Types           []*wasmmod.FuncType

	NumTables     int
	TableElemType wasmmod.ValType

	NumMemories  int
	MemoryLimits []wasmmod.Limits

	// DeclarableFuncs holds every function index legal as a ref.func
	// operand: one that's already exported, named in a declared element
	// segment, or used in a global initializer.
	DeclarableFuncs map[wasmmod.Index]bool

	Cfg config.Config
}

func (c *Context) funcType(idx wasmmod.Index) *wasmmod.FuncType {
	return c.Types[c.FuncTypeIndices[idx]]
}

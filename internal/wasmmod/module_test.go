package wasmmod

import (
	"testing"

	"github.com/Concordium/wasm-tools/api"
	"github.com/stretchr/testify/require"
)

func i32() *ValType {
	v := ValType(api.ValTypeI32)
	return &v
}

func newTestModule() *Module {
	m := &Module{}
	m.InitialSections = append(m.InitialSections, InitialSection{
		Kind:  InitialSectionType,
		Types: []*FuncType{{Params: nil, Result: i32()}},
	})
	m.InitialSections = append(m.InitialSections, InitialSection{
		Kind: InitialSectionImport,
		Imports: []*Import{
			{Module: "concordium", Name: "accept", TypeIndex: 0},
		},
	})
	m.Funcs = append(m.Funcs, Function{TypeIndex: 0, Defined: false})
	m.Funcs = append(m.Funcs, Function{TypeIndex: 0, Defined: true})
	m.NumDefinedFuncs = 1

	m.Tables = append(m.Tables, TableType{ElemType: api.ValTypeFuncRef, Limits: Limits{Min: 1}})
	m.NumDefinedTables = 1

	m.Memories = append(m.Memories, MemoryType{Limits: Limits{Min: 1}})
	m.NumDefinedMemories = 1

	m.Globals = append(m.Globals, GlobalType{ValType: api.ValTypeI32, Mutable: true})
	m.DefinedGlobals = append(m.DefinedGlobals, DefinedGlobal{
		Index: 0,
		Init:  ConstExpr{Instr: Instruction{Op: OpI32Const, I32: 7}},
	})

	m.Code = append(m.Code, Code{
		Locals: nil,
		Instructions: Instructions{Generated: []Instruction{
			{Op: OpI32Const, I32: 42},
			{Op: OpEnd},
		}},
	})
	return m
}

func TestModule_indexSpaceSplits(t *testing.T) {
	m := newTestModule()

	require.Equal(t, 1, m.NumImportedFuncs())
	require.Equal(t, 0, m.NumImportedTables())
	require.Equal(t, 0, m.NumImportedMemories())
	require.Equal(t, 0, m.NumImportedGlobals())

	require.Len(t, m.DefinedFuncs(), 1)
	require.True(t, m.DefinedFuncs()[0].Defined)
	require.Len(t, m.DefinedTables(), 1)
	require.Len(t, m.DefinedMemories(), 1)
}

func TestModule_typesAndImportsReadFromInitialSections(t *testing.T) {
	m := newTestModule()
	require.Len(t, m.Types(), 1)
	require.Len(t, m.Imports(), 1)
	require.Equal(t, "accept", m.Imports()[0].Name)
}

func TestModule_funcTypeLookup(t *testing.T) {
	m := newTestModule()
	ft := m.FuncType(1)
	require.NotNil(t, ft.Result)
	require.Equal(t, ValType(api.ValTypeI32), *ft.Result)
}

func TestFuncType_equal(t *testing.T) {
	a := &FuncType{Params: []ValType{api.ValTypeI32}, Result: i32()}
	b := &FuncType{Params: []ValType{api.ValTypeI32}, Result: i32()}
	c := &FuncType{Params: []ValType{api.ValTypeI64}, Result: i32()}
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestHostFunction_funcType(t *testing.T) {
	h := HostFunction{ModName: "concordium", Name: "state_size", Result: i32()}
	ft := h.FuncType()
	require.Nil(t, ft.Params)
	require.Equal(t, ValType(api.ValTypeI32), *ft.Result)
}

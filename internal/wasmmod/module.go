package wasmmod

// Function is one entry of the function index space: its type index and
// whether it is defined in this module (its body is then the matching
// Module.Code entry) or imported.
type Function struct {
	TypeIndex Index
	Defined   bool
}

// Instructions is the tagged choice between a type-checked instruction
// sequence and an opaque arbitrary byte body. The latter is only ever
// populated when the configuration's AllowArbitraryInstr() is true.
type Instructions struct {
	Arbitrary      bool
	Generated      []Instruction
	ArbitraryBytes []byte
}

// Code is one defined function's locals and body.
type Code struct {
	Locals       []ValType
	Instructions Instructions
}

// ElementKind is the active/passive/declared distinction for an element
// segment.
type ElementKind byte

const (
	ElementActive ElementKind = iota
	ElementPassive
	ElementDeclared
)

// ElemItems is the tagged choice between a plain function-index vector
// (legacy encoding) and a vector of reference constant expressions.
type ElemItems struct {
	IsExpressions bool
	FuncIndices   []Index
	// Expressions holds a function index per entry, or nil for a null
	// reference, when IsExpressions is true.
	Expressions []*Index
}

// ElemSegment is one entry of the element section.
type ElemSegment struct {
	Type   ValType
	Items  ElemItems
	Kind   ElementKind
	Table  Index
	Offset ConstExpr
}

// DataSegmentKind is the active/passive distinction for a data segment.
type DataSegmentKind byte

const (
	DataActive DataSegmentKind = iota
	DataPassive
)

// DataSegment is one entry of the data section.
type DataSegment struct {
	Init   []byte
	Kind   DataSegmentKind
	Memory Index
	Offset ConstExpr
}

// DefinedGlobal pairs a global's index with its initializer expression; the
// type is looked up in Module.Globals[Index].
type DefinedGlobal struct {
	Index Index
	Init  ConstExpr
}

// InitialSectionKind distinguishes the two section kinds that may be
// interleaved at the start of a module: type and import.
type InitialSectionKind byte

const (
	InitialSectionType InitialSectionKind = iota
	InitialSectionImport
)

// InitialSection is one interleaved type-or-import section, in the order
// the generator emitted them.
type InitialSection struct {
	Kind    InitialSectionKind
	Types   []*FuncType
	Imports []*Import
}

// Module is the append-only, then-immutable, in-memory description of a
// generated WebAssembly module. Index spaces are the concatenation of the
// imported prefix followed by the defined suffix, exactly as WebAssembly
// requires; NumDefined* record where that boundary falls so the encoder
// can emit only the defined tail of each space.
type Module struct {
	InitialSections []InitialSection

	Funcs     []Function
	Tables    []TableType
	Memories  []MemoryType
	Globals   []GlobalType

	DefinedGlobals []DefinedGlobal
	Exports        []Export
	Start          *Index
	Elems          []ElemSegment
	Code           []Code
	Data           []DataSegment

	NumDefinedFuncs    int
	NumDefinedTables   int
	NumDefinedMemories int
}

// Types returns the concatenation of every type-section entry across
// InitialSections, in index order.
func (m *Module) Types() []*FuncType {
	var out []*FuncType
	for _, s := range m.InitialSections {
		if s.Kind == InitialSectionType {
			out = append(out, s.Types...)
		}
	}
	return out
}

// Imports returns every import across InitialSections, in index order.
func (m *Module) Imports() []*Import {
	var out []*Import
	for _, s := range m.InitialSections {
		if s.Kind == InitialSectionImport {
			out = append(out, s.Imports...)
		}
	}
	return out
}

// NumImportedFuncs is the size of the imported prefix of the function
// index space.
func (m *Module) NumImportedFuncs() int {
	return len(m.Funcs) - m.NumDefinedFuncs
}

// NumImportedTables is the size of the imported prefix of the table index
// space. This core's host-function model never imports tables, so this is
// always 0; the method exists so callers can treat all four index spaces
// uniformly.
func (m *Module) NumImportedTables() int {
	return len(m.Tables) - m.NumDefinedTables
}

// NumImportedMemories is the size of the imported prefix of the memory
// index space. Always 0 for the same reason as NumImportedTables.
func (m *Module) NumImportedMemories() int {
	return len(m.Memories) - m.NumDefinedMemories
}

// NumImportedGlobals is the size of the imported prefix of the global
// index space.
func (m *Module) NumImportedGlobals() int {
	return len(m.Globals) - len(m.DefinedGlobals)
}

// DefinedFuncs returns the defined suffix of the function index space.
func (m *Module) DefinedFuncs() []Function {
	return m.Funcs[len(m.Funcs)-m.NumDefinedFuncs:]
}

// DefinedTables returns the defined suffix of the table index space.
func (m *Module) DefinedTables() []TableType {
	return m.Tables[len(m.Tables)-m.NumDefinedTables:]
}

// DefinedMemories returns the defined suffix of the memory index space.
func (m *Module) DefinedMemories() []MemoryType {
	return m.Memories[len(m.Memories)-m.NumDefinedMemories:]
}

// FuncType looks up the signature of function index idx.
func (m *Module) FuncType(idx Index) *FuncType {
	types := m.Types()
	return types[m.Funcs[idx].TypeIndex]
}

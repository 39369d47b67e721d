package wasmmod

// Op identifies one of the closed set of instructions the generator may
// emit. The set matches the source generator's instruction enum: control,
// parametric, variable, memory, i32/i64 numeric, conversion, reference, and
// bulk-memory/table instructions. Floating point opcodes are never part of
// this enum — spec.md deliberately omits F32/F64.
type Op byte

const (
	OpUnreachable Op = iota
	OpNop
	OpBlock
	OpLoop
	OpIf
	OpElse
	OpEnd
	OpBr
	OpBrIf
	OpBrTable
	OpReturn
	OpCall
	OpCallIndirect

	OpDrop
	OpSelect

	OpLocalGet
	OpLocalSet
	OpLocalTee
	OpGlobalGet
	OpGlobalSet

	OpI32Load
	OpI64Load
	OpI32Load8S
	OpI32Load8U
	OpI32Load16S
	OpI32Load16U
	OpI64Load8S
	OpI64Load8U
	OpI64Load16S
	OpI64Load16U
	OpI64Load32S
	OpI64Load32U
	OpI32Store
	OpI64Store
	OpI32Store8
	OpI32Store16
	OpI64Store8
	OpI64Store16
	OpI64Store32
	OpMemorySize
	OpMemoryGrow
	OpMemoryInit
	OpDataDrop
	OpMemoryCopy
	OpMemoryFill

	OpI32Const
	OpI64Const

	OpI32Eqz
	OpI32Eq
	OpI32Ne
	OpI32LtS
	OpI32LtU
	OpI32GtS
	OpI32GtU
	OpI32LeS
	OpI32LeU
	OpI32GeS
	OpI32GeU
	OpI64Eqz
	OpI64Eq
	OpI64Ne
	OpI64LtS
	OpI64LtU
	OpI64GtS
	OpI64GtU
	OpI64LeS
	OpI64LeU
	OpI64GeS
	OpI64GeU

	OpI32Clz
	OpI32Ctz
	OpI32Popcnt
	OpI32Add
	OpI32Sub
	OpI32Mul
	OpI32DivS
	OpI32DivU
	OpI32RemS
	OpI32RemU
	OpI32And
	OpI32Or
	OpI32Xor
	OpI32Shl
	OpI32ShrS
	OpI32ShrU
	OpI32Rotl
	OpI32Rotr
	OpI64Clz
	OpI64Ctz
	OpI64Popcnt
	OpI64Add
	OpI64Sub
	OpI64Mul
	OpI64DivS
	OpI64DivU
	OpI64RemS
	OpI64RemU
	OpI64And
	OpI64Or
	OpI64Xor
	OpI64Shl
	OpI64ShrS
	OpI64ShrU
	OpI64Rotl
	OpI64Rotr

	OpI32WrapI64
	OpI64ExtendI32S
	OpI64ExtendI32U
	OpI64Extend32S

	OpTypedSelect
	OpRefNull
	OpRefIsNull
	OpRefFunc

	OpTableInit
	OpElemDrop
	OpTableFill
	OpTableSet
	OpTableGet
	OpTableGrow
	OpTableSize
	OpTableCopy
)

// BlockTypeKind distinguishes the three shapes a structured-control block
// signature can take.
type BlockTypeKind byte

const (
	BlockTypeEmpty BlockTypeKind = iota
	BlockTypeResult
	BlockTypeFunc
)

// BlockType is the signature attached to block/loop/if.
type BlockType struct {
	Kind      BlockTypeKind
	Result    ValType
	TypeIndex Index
}

// MemArg is the offset/align/memory-index immediate of a memory access
// instruction.
type MemArg struct {
	Offset   uint32
	Align    uint32
	MemIndex Index
}

// Instruction is a flat, tagged representation of one instruction plus
// whichever immediates its Op needs. A real sum type would be more natural,
// but Go has no compact tagged union, and boxing every instruction behind
// an interface would cost the encoder a pointer-chase and allocation per
// instruction for no benefit — see DESIGN.md's note on this tradeoff.
type Instruction struct {
	Op Op

	// Index is the single-index immediate: local/global/func/table/memory
	// index, branch depth, or the type index of call_indirect. A block
	// type's index lives in Block.TypeIndex instead.
	Index Index
	// Index2 is a second index immediate: call_indirect's table index,
	// the source of memory.copy/table.copy, etc.
	Index2 Index

	I32 int32
	I64 int64

	Mem   MemArg
	Block BlockType

	// RefType is the operand of ref.null / typed_select.
	RefType ValType

	// BrTableTargets/BrTableDefault hold br_table's label vector.
	BrTableTargets []Index
	BrTableDefault Index
}

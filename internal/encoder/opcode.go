package encoder

import "github.com/Concordium/wasm-tools/internal/wasmmod"

// wire opcodes, taken from the Wasm core spec binary format. Only the
// opcodes wasmmod.Op can name are listed; float opcodes never appear since
// Op has no variants for them.
const (
	opUnreachable = 0x00
	opNop         = 0x01
	opBlock       = 0x02
	opLoop        = 0x03
	opIf          = 0x04
	opElse        = 0x05
	opEnd         = 0x0B
	opBr          = 0x0C
	opBrIf        = 0x0D
	opBrTable     = 0x0E
	opReturn      = 0x0F
	opCall        = 0x10
	opCallIndirect = 0x11

	opDrop        = 0x1A
	opSelect      = 0x1B
	opTypedSelect = 0x1C

	opLocalGet  = 0x20
	opLocalSet  = 0x21
	opLocalTee  = 0x22
	opGlobalGet = 0x23
	opGlobalSet = 0x24
	opTableGet  = 0x25
	opTableSet  = 0x26

	opI32Load    = 0x28
	opI64Load    = 0x29
	opI32Load8S  = 0x2C
	opI32Load8U  = 0x2D
	opI32Load16S = 0x2E
	opI32Load16U = 0x2F
	opI64Load8S  = 0x30
	opI64Load8U  = 0x31
	opI64Load16S = 0x32
	opI64Load16U = 0x33
	opI64Load32S = 0x34
	opI64Load32U = 0x35
	opI32Store   = 0x36
	opI64Store   = 0x37
	opI32Store8  = 0x3A
	opI32Store16 = 0x3B
	opI64Store8  = 0x3C
	opI64Store16 = 0x3D
	opI64Store32 = 0x3E
	opMemorySize = 0x3F
	opMemoryGrow = 0x40

	opI32Const = 0x41
	opI64Const = 0x42

	opI32Eqz = 0x45
	opI32Eq  = 0x46
	opI32Ne  = 0x47
	opI32LtS = 0x48
	opI32LtU = 0x49
	opI32GtS = 0x4A
	opI32GtU = 0x4B
	opI32LeS = 0x4C
	opI32LeU = 0x4D
	opI32GeS = 0x4E
	opI32GeU = 0x4F
	opI64Eqz = 0x50
	opI64Eq  = 0x51
	opI64Ne  = 0x52
	opI64LtS = 0x53
	opI64LtU = 0x54
	opI64GtS = 0x55
	opI64GtU = 0x56
	opI64LeS = 0x57
	opI64LeU = 0x58
	opI64GeS = 0x59
	opI64GeU = 0x5A

	opI32Clz    = 0x67
	opI32Ctz    = 0x68
	opI32Popcnt = 0x69
	opI32Add    = 0x6A
	opI32Sub    = 0x6B
	opI32Mul    = 0x6C
	opI32DivS   = 0x6D
	opI32DivU   = 0x6E
	opI32RemS   = 0x6F
	opI32RemU   = 0x70
	opI32And    = 0x71
	opI32Or     = 0x72
	opI32Xor    = 0x73
	opI32Shl    = 0x74
	opI32ShrS   = 0x75
	opI32ShrU   = 0x76
	opI32Rotl   = 0x77
	opI32Rotr   = 0x78
	opI64Clz    = 0x79
	opI64Ctz    = 0x7A
	opI64Popcnt = 0x7B
	opI64Add    = 0x7C
	opI64Sub    = 0x7D
	opI64Mul    = 0x7E
	opI64DivS   = 0x7F
	opI64DivU   = 0x80
	opI64RemS   = 0x81
	opI64RemU   = 0x82
	opI64And    = 0x83
	opI64Or     = 0x84
	opI64Xor    = 0x85
	opI64Shl    = 0x86
	opI64ShrS   = 0x87
	opI64ShrU   = 0x88
	opI64Rotl   = 0x89
	opI64Rotr   = 0x8A

	opI32WrapI64    = 0xA7
	opI64ExtendI32S = 0xAC
	opI64ExtendI32U = 0xAD

	opI64Extend32S = 0xC4

	opRefNull   = 0xD0
	opRefIsNull = 0xD1
	opRefFunc   = 0xD2

	// 0xFC-prefixed bulk-memory and table instructions; the byte after 0xFC
	// is itself a ULEB128 sub-opcode.
	opMiscPrefix    = 0xFC
	subMemoryInit   = 0x08
	subDataDrop     = 0x09
	subMemoryCopy   = 0x0A
	subMemoryFill   = 0x0B
	subTableInit    = 0x0C
	subElemDrop     = 0x0D
	subTableCopy    = 0x0E
	subTableGrow    = 0x0F
	subTableSize    = 0x10
	subTableFill    = 0x11
)

// simpleOpcode is the wire byte for every Op that takes no immediate at
// all, or whose only immediate is handled generically elsewhere (e.g. a
// single index). Ops needing bespoke encoding (block headers, br_table,
// memory/table instructions with a sub-opcode) are handled directly in
// encodeInstruction and are absent here.
var simpleOpcode = map[wasmmod.Op]byte{
	wasmmod.OpUnreachable: opUnreachable,
	wasmmod.OpNop:         opNop,
	wasmmod.OpElse:        opElse,
	wasmmod.OpEnd:         opEnd,
	wasmmod.OpReturn:      opReturn,

	wasmmod.OpDrop:   opDrop,
	wasmmod.OpSelect: opSelect,

	wasmmod.OpLocalGet:  opLocalGet,
	wasmmod.OpLocalSet:  opLocalSet,
	wasmmod.OpLocalTee:  opLocalTee,
	wasmmod.OpGlobalGet: opGlobalGet,
	wasmmod.OpGlobalSet: opGlobalSet,

	wasmmod.OpI32Load:    opI32Load,
	wasmmod.OpI64Load:    opI64Load,
	wasmmod.OpI32Load8S:  opI32Load8S,
	wasmmod.OpI32Load8U:  opI32Load8U,
	wasmmod.OpI32Load16S: opI32Load16S,
	wasmmod.OpI32Load16U: opI32Load16U,
	wasmmod.OpI64Load8S:  opI64Load8S,
	wasmmod.OpI64Load8U:  opI64Load8U,
	wasmmod.OpI64Load16S: opI64Load16S,
	wasmmod.OpI64Load16U: opI64Load16U,
	wasmmod.OpI64Load32S: opI64Load32S,
	wasmmod.OpI64Load32U: opI64Load32U,
	wasmmod.OpI32Store:   opI32Store,
	wasmmod.OpI64Store:   opI64Store,
	wasmmod.OpI32Store8:  opI32Store8,
	wasmmod.OpI32Store16: opI32Store16,
	wasmmod.OpI64Store8:  opI64Store8,
	wasmmod.OpI64Store16: opI64Store16,
	wasmmod.OpI64Store32: opI64Store32,

	wasmmod.OpI32Const: opI32Const,
	wasmmod.OpI64Const: opI64Const,

	wasmmod.OpI32Eqz: opI32Eqz,
	wasmmod.OpI32Eq:  opI32Eq,
	wasmmod.OpI32Ne:  opI32Ne,
	wasmmod.OpI32LtS: opI32LtS,
	wasmmod.OpI32LtU: opI32LtU,
	wasmmod.OpI32GtS: opI32GtS,
	wasmmod.OpI32GtU: opI32GtU,
	wasmmod.OpI32LeS: opI32LeS,
	wasmmod.OpI32LeU: opI32LeU,
	wasmmod.OpI32GeS: opI32GeS,
	wasmmod.OpI32GeU: opI32GeU,
	wasmmod.OpI64Eqz: opI64Eqz,
	wasmmod.OpI64Eq:  opI64Eq,
	wasmmod.OpI64Ne:  opI64Ne,
	wasmmod.OpI64LtS: opI64LtS,
	wasmmod.OpI64LtU: opI64LtU,
	wasmmod.OpI64GtS: opI64GtS,
	wasmmod.OpI64GtU: opI64GtU,
	wasmmod.OpI64LeS: opI64LeS,
	wasmmod.OpI64LeU: opI64LeU,
	wasmmod.OpI64GeS: opI64GeS,
	wasmmod.OpI64GeU: opI64GeU,

	wasmmod.OpI32Clz:    opI32Clz,
	wasmmod.OpI32Ctz:    opI32Ctz,
	wasmmod.OpI32Popcnt: opI32Popcnt,
	wasmmod.OpI32Add:    opI32Add,
	wasmmod.OpI32Sub:    opI32Sub,
	wasmmod.OpI32Mul:    opI32Mul,
	wasmmod.OpI32DivS:   opI32DivS,
	wasmmod.OpI32DivU:   opI32DivU,
	wasmmod.OpI32RemS:   opI32RemS,
	wasmmod.OpI32RemU:   opI32RemU,
	wasmmod.OpI32And:    opI32And,
	wasmmod.OpI32Or:     opI32Or,
	wasmmod.OpI32Xor:    opI32Xor,
	wasmmod.OpI32Shl:    opI32Shl,
	wasmmod.OpI32ShrS:   opI32ShrS,
	wasmmod.OpI32ShrU:   opI32ShrU,
	wasmmod.OpI32Rotl:   opI32Rotl,
	wasmmod.OpI32Rotr:   opI32Rotr,
	wasmmod.OpI64Clz:    opI64Clz,
	wasmmod.OpI64Ctz:    opI64Ctz,
	wasmmod.OpI64Popcnt: opI64Popcnt,
	wasmmod.OpI64Add:    opI64Add,
	wasmmod.OpI64Sub:    opI64Sub,
	wasmmod.OpI64Mul:    opI64Mul,
	wasmmod.OpI64DivS:   opI64DivS,
	wasmmod.OpI64DivU:   opI64DivU,
	wasmmod.OpI64RemS:   opI64RemS,
	wasmmod.OpI64RemU:   opI64RemU,
	wasmmod.OpI64And:    opI64And,
	wasmmod.OpI64Or:     opI64Or,
	wasmmod.OpI64Xor:    opI64Xor,
	wasmmod.OpI64Shl:    opI64Shl,
	wasmmod.OpI64ShrS:   opI64ShrS,
	wasmmod.OpI64ShrU:   opI64ShrU,
	wasmmod.OpI64Rotl:   opI64Rotl,
	wasmmod.OpI64Rotr:   opI64Rotr,

	wasmmod.OpI32WrapI64:    opI32WrapI64,
	wasmmod.OpI64ExtendI32S: opI64ExtendI32S,
	wasmmod.OpI64ExtendI32U: opI64ExtendI32U,
	wasmmod.OpI64Extend32S:  opI64Extend32S,

	wasmmod.OpRefIsNull: opRefIsNull,

	wasmmod.OpTableGet: opTableGet,
	wasmmod.OpTableSet: opTableSet,
}

// miscSubOpcode carries the sub-opcode for the 0xFC-prefixed instructions.
var miscSubOpcode = map[wasmmod.Op]byte{
	wasmmod.OpMemoryInit: subMemoryInit,
	wasmmod.OpDataDrop:   subDataDrop,
	wasmmod.OpMemoryCopy: subMemoryCopy,
	wasmmod.OpMemoryFill: subMemoryFill,
	wasmmod.OpTableInit:  subTableInit,
	wasmmod.OpElemDrop:   subElemDrop,
	wasmmod.OpTableCopy:  subTableCopy,
	wasmmod.OpTableGrow:  subTableGrow,
	wasmmod.OpTableSize:  subTableSize,
	wasmmod.OpTableFill:  subTableFill,
}

package encoder

import (
	"fmt"

	"github.com/Concordium/wasm-tools/internal/leb128"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
)

// encodeBlockType appends a structured-control block's signature: a single
// byte for the empty type or a value type, or an s33 type index for a
// multi-value signature.
func encodeBlockType(dst []byte, bt wasmmod.BlockType, minWidth int) []byte {
	switch bt.Kind {
	case wasmmod.BlockTypeEmpty:
		return append(dst, 0x40)
	case wasmmod.BlockTypeResult:
		return append(dst, bt.Result)
	case wasmmod.BlockTypeFunc:
		return leb128.EncodeInt64(dst, int64(bt.TypeIndex), minWidth)
	default:
		panic(fmt.Sprintf("encoder: unknown block type kind %d", bt.Kind))
	}
}

func encodeMemArg(dst []byte, m wasmmod.MemArg, minWidth int) []byte {
	dst = leb128.EncodeUint32(dst, m.Align, minWidth)
	return leb128.EncodeUint32(dst, m.Offset, minWidth)
}

// encodeInstruction appends the wire encoding of one instruction to dst.
func encodeInstruction(dst []byte, in wasmmod.Instruction, minWidth int) []byte {
	if op, ok := simpleOpcode[in.Op]; ok {
		dst = append(dst, op)
		switch in.Op {
		case wasmmod.OpLocalGet, wasmmod.OpLocalSet, wasmmod.OpLocalTee,
			wasmmod.OpGlobalGet, wasmmod.OpGlobalSet,
			wasmmod.OpTableGet, wasmmod.OpTableSet:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)
		case wasmmod.OpI32Load, wasmmod.OpI64Load,
			wasmmod.OpI32Load8S, wasmmod.OpI32Load8U, wasmmod.OpI32Load16S, wasmmod.OpI32Load16U,
			wasmmod.OpI64Load8S, wasmmod.OpI64Load8U, wasmmod.OpI64Load16S, wasmmod.OpI64Load16U,
			wasmmod.OpI64Load32S, wasmmod.OpI64Load32U,
			wasmmod.OpI32Store, wasmmod.OpI64Store,
			wasmmod.OpI32Store8, wasmmod.OpI32Store16,
			wasmmod.OpI64Store8, wasmmod.OpI64Store16, wasmmod.OpI64Store32:
			dst = encodeMemArg(dst, in.Mem, minWidth)
		case wasmmod.OpI32Const:
			dst = leb128.EncodeInt32(dst, in.I32, minWidth)
		case wasmmod.OpI64Const:
			dst = leb128.EncodeInt64(dst, in.I64, minWidth)
		}
		return dst
	}

	if sub, ok := miscSubOpcode[in.Op]; ok {
		dst = append(dst, opMiscPrefix)
		dst = leb128.EncodeUint32(dst, uint32(sub), minWidth)
		switch in.Op {
		case wasmmod.OpMemoryInit:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)  // data index
			dst = leb128.EncodeUint32(dst, in.Index2, minWidth) // memory index
		case wasmmod.OpDataDrop:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)
		case wasmmod.OpMemoryCopy:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)  // destination memory
			dst = leb128.EncodeUint32(dst, in.Index2, minWidth) // source memory
		case wasmmod.OpMemoryFill:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)
		case wasmmod.OpTableInit:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)  // elem index
			dst = leb128.EncodeUint32(dst, in.Index2, minWidth) // table index
		case wasmmod.OpElemDrop:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)
		case wasmmod.OpTableCopy:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)  // destination table
			dst = leb128.EncodeUint32(dst, in.Index2, minWidth) // source table
		case wasmmod.OpTableGrow, wasmmod.OpTableSize, wasmmod.OpTableFill:
			dst = leb128.EncodeUint32(dst, in.Index, minWidth)
		}
		return dst
	}

	switch in.Op {
	case wasmmod.OpBlock:
		dst = append(dst, opBlock)
		return encodeBlockType(dst, in.Block, minWidth)
	case wasmmod.OpLoop:
		dst = append(dst, opLoop)
		return encodeBlockType(dst, in.Block, minWidth)
	case wasmmod.OpIf:
		dst = append(dst, opIf)
		return encodeBlockType(dst, in.Block, minWidth)

	case wasmmod.OpBr:
		dst = append(dst, opBr)
		return leb128.EncodeUint32(dst, in.Index, minWidth)
	case wasmmod.OpBrIf:
		dst = append(dst, opBrIf)
		return leb128.EncodeUint32(dst, in.Index, minWidth)
	case wasmmod.OpBrTable:
		dst = append(dst, opBrTable)
		dst = leb128.EncodeUint32(dst, uint32(len(in.BrTableTargets)), minWidth)
		for _, t := range in.BrTableTargets {
			dst = leb128.EncodeUint32(dst, t, minWidth)
		}
		return leb128.EncodeUint32(dst, in.BrTableDefault, minWidth)

	case wasmmod.OpCall:
		dst = append(dst, opCall)
		return leb128.EncodeUint32(dst, in.Index, minWidth)
	case wasmmod.OpCallIndirect:
		dst = append(dst, opCallIndirect)
		dst = leb128.EncodeUint32(dst, in.Index, minWidth) // type index
		return leb128.EncodeUint32(dst, in.Index2, minWidth) // table index

	case wasmmod.OpMemorySize:
		dst = append(dst, opMemorySize)
		return leb128.EncodeUint32(dst, in.Mem.MemIndex, minWidth)
	case wasmmod.OpMemoryGrow:
		dst = append(dst, opMemoryGrow)
		return leb128.EncodeUint32(dst, in.Mem.MemIndex, minWidth)

	case wasmmod.OpTypedSelect:
		dst = append(dst, opTypedSelect)
		dst = leb128.EncodeUint32(dst, 1, minWidth)
		return append(dst, in.RefType)
	case wasmmod.OpRefNull:
		dst = append(dst, opRefNull)
		return append(dst, in.RefType)
	case wasmmod.OpRefFunc:
		dst = append(dst, opRefFunc)
		return leb128.EncodeUint32(dst, in.Index, minWidth)

	default:
		panic(fmt.Sprintf("encoder: unhandled op %d", in.Op))
	}
}

// EncodeInstruction is the exported form of encodeInstruction, for callers
// (tests, the arbitrary-instruction fallback path) that encode one
// instruction at a time.
func EncodeInstruction(dst []byte, in wasmmod.Instruction, minWidth int) []byte {
	return encodeInstruction(dst, in, minWidth)
}

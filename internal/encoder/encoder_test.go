package encoder

import (
	"testing"

	"github.com/Concordium/wasm-tools/api"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
	"github.com/stretchr/testify/require"
)

func i32ptr() *wasmmod.ValType {
	v := wasmmod.ValType(api.ValTypeI32)
	return &v
}

func TestEncode_emptyModuleIsJustPreamble(t *testing.T) {
	out := Encode(&wasmmod.Module{}, 1, false)
	require.Equal(t, []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, out)
}

func TestEncodeLimits_minOnly(t *testing.T) {
	out := encodeLimits(nil, wasmmod.Limits{Min: 3}, 1)
	require.Equal(t, []byte{0x00, 0x03}, out)
}

func TestEncodeLimits_minAndMax(t *testing.T) {
	max := uint32(9)
	out := encodeLimits(nil, wasmmod.Limits{Min: 3, Max: &max}, 1)
	require.Equal(t, []byte{0x01, 0x03, 0x09}, out)
}

func TestEncodeFuncType_funcTag(t *testing.T) {
	ft := &wasmmod.FuncType{Params: []wasmmod.ValType{api.ValTypeI32, api.ValTypeI64}, Result: i32ptr()}
	out := encodeFuncType(nil, ft, 1)
	require.Equal(t, []byte{0x60, 0x02, 0x7f, 0x7e, 0x01, 0x7f}, out)
}

func TestEncodeInstruction_i32ConstAndEnd(t *testing.T) {
	out := encodeInstruction(nil, wasmmod.Instruction{Op: wasmmod.OpI32Const, I32: 42}, 1)
	out = encodeInstruction(out, wasmmod.Instruction{Op: wasmmod.OpEnd}, 1)
	require.Equal(t, []byte{0x41, 0x2a, 0x0b}, out)
}

func TestEncodeInstruction_localGet(t *testing.T) {
	out := encodeInstruction(nil, wasmmod.Instruction{Op: wasmmod.OpLocalGet, Index: 2}, 1)
	require.Equal(t, []byte{0x20, 0x02}, out)
}

func TestEncodeInstruction_memoryInitIsMiscPrefixed(t *testing.T) {
	out := encodeInstruction(nil, wasmmod.Instruction{Op: wasmmod.OpMemoryInit, Index: 1, Index2: 0}, 1)
	require.Equal(t, []byte{0xFC, 0x08, 0x01, 0x00}, out)
}

func TestEncodeInstruction_brTable(t *testing.T) {
	in := wasmmod.Instruction{Op: wasmmod.OpBrTable, BrTableTargets: []wasmmod.Index{1, 2}, BrTableDefault: 0}
	out := encodeInstruction(nil, in, 1)
	require.Equal(t, []byte{0x0E, 0x02, 0x01, 0x02, 0x00}, out)
}

func TestEncodeInstruction_refFunc(t *testing.T) {
	out := encodeInstruction(nil, wasmmod.Instruction{Op: wasmmod.OpRefFunc, Index: 3}, 1)
	require.Equal(t, []byte{0xD2, 0x03}, out)
}

func TestEncodeGlobalSection_layout(t *testing.T) {
	globals := []wasmmod.GlobalType{{ValType: api.ValTypeI32, Mutable: true}}
	defined := []wasmmod.DefinedGlobal{{Index: 0, Init: wasmmod.ConstExpr{Instr: wasmmod.Instruction{Op: wasmmod.OpI32Const, I32: 7}}}}
	body := encodeGlobalSection(globals, defined, 1)
	require.Equal(t, []byte{0x01, 0x7f, 0x01, 0x41, 0x07, 0x0b}, body)
}

func TestEncode_codeSectionSkipsLocalsRLE(t *testing.T) {
	m := &wasmmod.Module{
		InitialSections: []wasmmod.InitialSection{
			{Kind: wasmmod.InitialSectionType, Types: []*wasmmod.FuncType{{Result: i32ptr()}}},
		},
		Funcs:           []wasmmod.Function{{TypeIndex: 0, Defined: true}},
		NumDefinedFuncs: 1,
		Code: []wasmmod.Code{{
			Locals: []wasmmod.ValType{api.ValTypeI32, api.ValTypeI32},
			Instructions: wasmmod.Instructions{Generated: []wasmmod.Instruction{
				{Op: wasmmod.OpI32Const, I32: 1},
				{Op: wasmmod.OpEnd},
			}},
		}},
	}
	out := Encode(m, 1, false)
	require.Contains(t, string(out), string([]byte{0x02, 0x01, 0x7f, 0x01, 0x7f}))
}

// TestEncode_dataCountIsAPureFunctionOfBulkMemoryAndDataSegments: the
// data-count section depends only on bulkMemoryEnabled and len(m.Data),
// never on what a generated function body happens to contain.
func TestEncode_dataCountIsAPureFunctionOfBulkMemoryAndDataSegments(t *testing.T) {
	m := &wasmmod.Module{
		Data: []wasmmod.DataSegment{{Init: []byte{1}, Kind: wasmmod.DataPassive}},
		Code: []wasmmod.Code{{Instructions: wasmmod.Instructions{Generated: []wasmmod.Instruction{
			{Op: wasmmod.OpEnd},
		}}}},
	}

	withBulkMemory := Encode(m, 1, true)
	require.Contains(t, withBulkMemory, api.SectionIDDataCount)

	withoutBulkMemory := Encode(m, 1, false)
	require.NotContains(t, withoutBulkMemory, api.SectionIDDataCount)

	noData := &wasmmod.Module{}
	require.NotContains(t, Encode(noData, 1, true), api.SectionIDDataCount)
}

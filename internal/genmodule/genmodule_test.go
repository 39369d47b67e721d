package genmodule

import (
	"testing"

	"github.com/Concordium/wasm-tools/api"
	"github.com/Concordium/wasm-tools/internal/config"
	"github.com/Concordium/wasm-tools/internal/encoder"
	"github.com/Concordium/wasm-tools/internal/entropy"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
	"github.com/stretchr/testify/require"
)

// TestGenerate_emptyEntropyDefaultConfigIsJustPreamble exercises S1: an
// empty entropy slice under DefaultConfig produces every count as its
// minimum (0 for every default profile knob), so the encoded module is
// nothing but the magic number and version.
func TestGenerate_emptyEntropyDefaultConfigIsJustPreamble(t *testing.T) {
	m := Generate(config.DefaultConfig{}, nil)
	out := encoder.Encode(m, 1, false)
	require.Equal(t, []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, out)
}

func deterministicSeed(n int) []byte {
	seed := make([]byte, n)
	for i := range seed {
		seed[i] = byte((i*37 + 11) % 256)
	}
	return seed
}

// TestGenerate_interpreterConfigHonoursItsOwnBounds is S3: under
// InterpreterConfig and a large deterministic entropy stream, the number of
// imports is at least MinImports, no start section is ever produced, every
// memory stays within MaxMemoryPages, and every function export's
// signature is in the whitelist.
func TestGenerate_interpreterConfigHonoursItsOwnBounds(t *testing.T) {
	cfg := config.InterpreterConfig{}
	m := Generate(cfg, deterministicSeed(256))

	require.GreaterOrEqual(t, len(m.Imports()), cfg.MinImports())
	require.Nil(t, m.Start)

	for _, mt := range m.DefinedMemories() {
		require.LessOrEqual(t, mt.Limits.Min, cfg.MaxMemoryPages())
		if mt.Limits.Max != nil {
			require.LessOrEqual(t, *mt.Limits.Max, cfg.MaxMemoryPages())
		}
	}

	whitelist := cfg.AllowedExportTypes()
	types := m.Types()
	for _, exp := range m.Exports {
		if exp.Kind != api.ExternTypeFunc {
			continue
		}
		sig := types[m.Funcs[exp.Index].TypeIndex]
		require.True(t, inWhitelist(whitelist, sig), "export %q has non-whitelisted signature", exp.Name)
	}
}

// countFloorConfig overrides just enough of Defaults to force out-of-bounds
// memory offsets (S4) while still declaring one memory.
type countFloorConfig struct {
	config.Defaults
}

func (countFloorConfig) MinMemories() uint32 { return 1 }
func (countFloorConfig) MaxMemories() int    { return 1 }
func (countFloorConfig) MemoryOffsetChoices() (uint32, uint32, uint32) { return 0, 0, 1 }
func (countFloorConfig) MaxMemoryPages() uint32                       { return 1 }
func (countFloorConfig) MaxFuncs() int                                { return 4 }
func (countFloorConfig) MinFuncs() int                                { return 4 }
func (countFloorConfig) MaxTypes() int                                { return 4 }
func (countFloorConfig) MinTypes() int                                { return 4 }
func (countFloorConfig) MaxInstructions() int                         { return 40 }

// TestGenerate_outOfBoundsOffsetChoiceBiasesEveryMemoryAccess is S4: with
// memory_offset_choices = (0, 0, 1) every emitted memory access offset must
// land at or beyond the declared memory's limits.
func TestGenerate_outOfBoundsOffsetChoiceBiasesEveryMemoryAccess(t *testing.T) {
	m := Generate(countFloorConfig{}, deterministicSeed(512))
	require.NotEmpty(t, m.DefinedMemories())

	var sawAny bool
	for _, c := range m.Code {
		for _, in := range c.Instructions.Generated {
			switch in.Op {
			case wasmmod.OpI32Load, wasmmod.OpI64Load, wasmmod.OpI32Store, wasmmod.OpI64Store,
				wasmmod.OpI32Load8S, wasmmod.OpI32Load8U, wasmmod.OpI32Load16S, wasmmod.OpI32Load16U,
				wasmmod.OpI64Load8S, wasmmod.OpI64Load8U, wasmmod.OpI64Load16S, wasmmod.OpI64Load16U,
				wasmmod.OpI64Load32S, wasmmod.OpI64Load32U, wasmmod.OpI32Store8, wasmmod.OpI32Store16,
				wasmmod.OpI64Store8, wasmmod.OpI64Store16, wasmmod.OpI64Store32:
				sawAny = true
				require.GreaterOrEqual(t, in.Mem.Offset, uint32(65536))
			}
		}
	}
	require.True(t, sawAny, "expected at least one memory access in a 512-byte run")
}

// TestGenerate_defaultConfigNeverEmitsFuncBlocktype is S6: AllowFunctionBlocktype
// defaults to false, so no Block/Loop/If may carry a FuncType blocktype.
func TestGenerate_defaultConfigNeverEmitsFuncBlocktype(t *testing.T) {
	m := Generate(config.DefaultConfig{}, deterministicSeed(300))
	for _, c := range m.Code {
		for _, in := range c.Instructions.Generated {
			if in.Op == wasmmod.OpBlock || in.Op == wasmmod.OpLoop || in.Op == wasmmod.OpIf {
				require.NotEqual(t, wasmmod.BlockTypeFunc, in.Block.Kind)
			}
		}
	}
}

// TestBuilder_count_maxIsAHardCeiling: max is never exceeded, even when a
// conflicting min is requested — min clips down to meet max, not the other
// way around (spec §4.1, §8 Property 3).
func TestBuilder_count_maxIsAHardCeiling(t *testing.T) {
	g := &builder{r: entropy.New(nil)}
	require.Equal(t, 2, g.count(5, 2))
	require.LessOrEqual(t, g.count(3, 9), 9)
}

func TestBuilder_typeIndexFor_reusesStructurallyEqualSignature(t *testing.T) {
	g := &builder{}
	i32 := wasmmod.ValType(0x7f)
	a := &wasmmod.FuncType{Params: []wasmmod.ValType{i32}, Result: &i32}
	b := &wasmmod.FuncType{Params: []wasmmod.ValType{i32}, Result: &i32}

	idxA := g.typeIndexFor(a)
	idxB := g.typeIndexFor(b)
	require.Equal(t, idxA, idxB)
	require.Len(t, g.types, 1)
}

func TestGenerate_indexSpaceConsistency(t *testing.T) {
	cfg := config.InterpreterConfig{}
	m := Generate(cfg, deterministicSeed(400))

	for _, f := range m.Funcs {
		require.Less(t, int(f.TypeIndex), len(m.Types()))
	}
	require.Equal(t, len(m.Code), m.NumDefinedFuncs)
	for _, c := range m.Code {
		for _, in := range c.Instructions.Generated {
			if in.Op == wasmmod.OpCall {
				require.Less(t, int(in.Index), len(m.Funcs))
			}
		}
	}
}

package wasmtools

import (
	"testing"

	"github.com/Concordium/wasm-tools/internal/config"
	"github.com/Concordium/wasm-tools/internal/encoder"
	"github.com/Concordium/wasm-tools/internal/genmodule"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
	"github.com/stretchr/testify/require"
)

func TestGenerate_emptyEntropyIsJustThePreamble(t *testing.T) {
	out, err := Generate(config.DefaultConfig{}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, out)
}

// TestGenerate_rejectsContradictoryConfig is the entry-point half of
// spec.md §7: a Config describing an empty generation domain is rejected
// before any generation happens, as a ConfigError, rather than silently
// producing something.
func TestGenerate_rejectsContradictoryConfig(t *testing.T) {
	_, err := Generate(zeroOffsetWeightConfig{}, nil)
	require.Error(t, err)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
}

type zeroOffsetWeightConfig struct {
	config.Defaults
}

func (zeroOffsetWeightConfig) MemoryOffsetChoices() (uint32, uint32, uint32) { return 0, 0, 0 }

// le8 renders v as the 8 little-endian bytes entropy.Reader.Uint64 expects
// to fully satisfy one IntInRange/Uint32InRange draw without running dry
// mid-call.
func le8(v uint64) []byte {
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

// minimalOneFuncSeed is calibrated, draw by draw, to DefaultConfig's stage
// order so that it produces exactly one minimal FuncType, no imports, one
// defined function of that type, nothing else, and a body of just End:
// typeSection's count draw, newFuncType's param-count draw and result-bool,
// functionSection's count draw and its single type-index pick, table/
// memory/global/export count draws (all zero), the start-export coin flip
// (no), element/data count draws (zero), and the one function's local-count
// draw all land exactly on reader exhaustion so the body selector never
// iterates.
func minimalOneFuncSeed() []byte {
	var seed []byte
	seed = append(seed, le8(1)...) // typeSection: one type
	seed = append(seed, le8(0)...) // newFuncType: zero params
	seed = append(seed, 0)         // newFuncType: no result
	seed = append(seed, le8(1)...) // functionSection: one defined function
	seed = append(seed, 0)         // functionSection: its type index (only one type exists)
	seed = append(seed, le8(0)...) // tableSection: zero tables
	seed = append(seed, le8(0)...) // memorySection: zero memories
	seed = append(seed, le8(0)...) // globalSection: zero globals
	seed = append(seed, le8(0)...) // exportSection: zero exports
	seed = append(seed, 0)         // startSection: decline
	seed = append(seed, le8(0)...) // elementSection: zero segments
	seed = append(seed, le8(0)...) // dataSection: zero segments
	seed = append(seed, le8(0)...) // codeSection: zero extra locals
	return seed
}

// TestGenerateModule_minimalSeedProducesOneTrivialFunction is S2: a short,
// specific entropy input under the default profile produces exactly one
// minimum FuncType, one defined function of that type, a body of just End,
// and no imports.
func TestGenerateModule_minimalSeedProducesOneTrivialFunction(t *testing.T) {
	m, err := GenerateModule(config.DefaultConfig{}, minimalOneFuncSeed())
	require.NoError(t, err)

	require.Len(t, m.Types(), 1)
	require.Empty(t, m.Types()[0].Params)
	require.Nil(t, m.Types()[0].Result)

	require.Empty(t, m.Imports())
	require.Equal(t, 1, m.NumDefinedFuncs)
	require.Len(t, m.Code, 1)
	require.Equal(t, []wasmmod.Instruction{{Op: wasmmod.OpEnd}}, m.Code[0].Instructions.Generated)
}

func TestGenerate_sameConfigAndSeedIsDeterministic(t *testing.T) {
	cfg := config.InterpreterConfig{}
	seed := minimalOneFuncSeed()
	first, err := Generate(cfg, seed)
	require.NoError(t, err)
	second, err := Generate(cfg, seed)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestGenerate_minUlebSizePadsEveryLEB128Field is S5: re-encoding the same
// generated module at a wider min_uleb_size grows every LEB128 field inside
// the section bodies by (widerWidth - narrowWidth) bytes. The seed yields a
// single type, (i32) -> (), and nothing else, so the only section is the
// type section with three such fields: its vector length, the param count
// and the result count. The section-size prefix stays one byte either way.
func TestGenerate_minUlebSizePadsEveryLEB128Field(t *testing.T) {
	cfg := onceTypeConfig{}
	m := genmodule.Generate(cfg, le8(1))

	narrow := encoder.Encode(m, 1, cfg.BulkMemoryEnabled())
	wide := encoder.Encode(m, 5, cfg.BulkMemoryEnabled())

	require.Greater(t, len(wide), len(narrow))
	require.Equal(t, len(narrow)+3*(5-1), len(wide))
}

type onceTypeConfig struct {
	config.Defaults
}

func (onceTypeConfig) MinTypes() int { return 1 }
func (onceTypeConfig) MaxTypes() int { return 1 }

// Package config defines the knobs that steer module generation: how many
// of each section to produce, which Wasm proposals are enabled, and which
// host functions are importable.
//
// The source this is ported from expresses Config as a Rust trait with
// default method implementations, so a caller only overrides the handful of
// knobs they care about. Go has no default methods, so the same ergonomics
// are obtained by embedding: Defaults implements every method of the Config
// interface, and each concrete profile (DefaultConfig, SwarmConfig,
// InterpreterConfig) embeds Defaults and redefines only the methods it needs
// to change.
package config

import "github.com/Concordium/wasm-tools/internal/wasmmod"

// Config is the full set of generation knobs. Every method has a sensible
// default via Defaults; see its doc comments for the meaning and default of
// each knob.
type Config interface {
	MinTypes() int
	MaxTypes() int
	MaxReturnValues() int

	MinImports() int
	MaxImports() int

	MinFuncs() int
	MaxFuncs() int

	MinGlobals() int
	MaxGlobals() int

	MinExports() int
	MaxExports() int

	MinElementSegments() int
	MaxElementSegments() int
	MinElements() int
	MaxElements() int

	MinDataSegments() int
	MaxDataSegments() int

	MaxInstructions() int

	MinMemories() uint32
	MaxMemories() int
	MinTables() uint32
	MaxTables() int

	MaxMemoryPages() uint32
	MemoryMaxSizeRequired() bool

	// MemoryOffsetChoices returns the (in-bounds, maybe-in-bounds,
	// out-of-bounds) weight triple used to bias generated memory offsets.
	MemoryOffsetChoices() (uint32, uint32, uint32)

	MinUlebSize() uint8

	BulkMemoryEnabled() bool
	ReferenceTypesEnabled() bool
	ModuleLinkingEnabled() bool

	AllowStartExport() bool

	MaxAliases() int
	MaxNestingDepth() int

	// MaxParameters bounds a FuncType's parameter arity.
	MaxParameters() int

	// MaxInitTableSize bounds a declared table's limits.min/limits.max.
	MaxInitTableSize() uint32

	// AllowFunctionBlocktype permits Block/Loop/If to carry a FuncType(idx)
	// blocktype (multiple params, optionally one result) in addition to the
	// Empty/Result(t) shapes every profile always allows.
	AllowFunctionBlocktype() bool

	// AllowGlobalGetInElemAndDataOffsets permits an active element/data
	// segment's offset to be global.get of an imported immutable global of
	// type i32, instead of always an i32.const. This core's host-function
	// import model never imports globals (see wasmmod.Import), so this knob
	// has no observable effect here; it is kept for parity with the
	// source's Config surface and documented as reserved in DESIGN.md.
	AllowGlobalGetInElemAndDataOffsets() bool

	// AllowedExportTypes, when non-nil, whitelists the signatures a
	// function export's target may have; nil means any signature may be
	// exported.
	AllowedExportTypes() []wasmmod.FuncType

	HostFunctions() []wasmmod.HostFunction
	AllowArbitraryInstr() bool
}

// Defaults implements Config with every knob set to the source's documented
// default. Profiles embed Defaults and override only what differs.
type Defaults struct{}

func (Defaults) MinTypes() int        { return 0 }
func (Defaults) MaxTypes() int        { return 100 }
func (Defaults) MaxReturnValues() int { return 20 }

func (Defaults) MinImports() int { return 0 }
func (Defaults) MaxImports() int { return 20 }

func (Defaults) MinFuncs() int { return 0 }
func (Defaults) MaxFuncs() int { return 100 }

func (Defaults) MinGlobals() int { return 0 }
func (Defaults) MaxGlobals() int { return 100 }

func (Defaults) MinExports() int { return 0 }
func (Defaults) MaxExports() int { return 100 }

func (Defaults) MinElementSegments() int { return 0 }
func (Defaults) MaxElementSegments() int { return 100 }
func (Defaults) MinElements() int        { return 0 }
func (Defaults) MaxElements() int        { return 100 }

func (Defaults) MinDataSegments() int { return 0 }
func (Defaults) MaxDataSegments() int { return 100 }

func (Defaults) MaxInstructions() int { return 100 }

func (Defaults) MinMemories() uint32 { return 0 }
func (Defaults) MaxMemories() int    { return 1 }
func (Defaults) MinTables() uint32   { return 0 }
func (Defaults) MaxTables() int      { return 1 }

func (Defaults) MaxMemoryPages() uint32        { return 65536 }
func (Defaults) MemoryMaxSizeRequired() bool    { return false }

func (Defaults) MemoryOffsetChoices() (uint32, uint32, uint32) { return 75, 24, 1 }

func (Defaults) MinUlebSize() uint8 { return 1 }

func (Defaults) BulkMemoryEnabled() bool      { return false }
func (Defaults) ReferenceTypesEnabled() bool  { return false }
func (Defaults) ModuleLinkingEnabled() bool   { return false }

func (Defaults) AllowStartExport() bool { return true }

func (Defaults) MaxAliases() int      { return 1000 }
func (Defaults) MaxNestingDepth() int { return 10 }

func (Defaults) MaxParameters() int    { return 20 }
func (Defaults) MaxInitTableSize() uint32 { return 1_000_000 }

func (Defaults) AllowFunctionBlocktype() bool             { return false }
func (Defaults) AllowGlobalGetInElemAndDataOffsets() bool { return true }
func (Defaults) AllowedExportTypes() []wasmmod.FuncType   { return nil }

func (Defaults) HostFunctions() []wasmmod.HostFunction { return nil }
func (Defaults) AllowArbitraryInstr() bool             { return false }

// concordiumHostFunctions is the fixed set of host imports offered by both
// SwarmConfig and InterpreterConfig: the Concordium smart-contract ABI.
func concordiumHostFunctions() []wasmmod.HostFunction {
	i32 := func() *wasmmod.ValType { v := wasmmod.ValType(0x7f); return &v }
	i64 := func() *wasmmod.ValType { v := wasmmod.ValType(0x7e); return &v }
	const mod = "concordium"
	return []wasmmod.HostFunction{
		{ModName: mod, Name: "accept", Result: i32()},
		{ModName: mod, Name: "simple_transfer", Params: []wasmmod.ValType{0x7f, 0x7e}, Result: i32()},
		{ModName: mod, Name: "send", Params: []wasmmod.ValType{0x7e, 0x7e, 0x7f, 0x7f, 0x7e, 0x7f, 0x7f}, Result: i32()},
		{ModName: mod, Name: "combine_and", Params: []wasmmod.ValType{0x7f, 0x7f}, Result: i32()},
		{ModName: mod, Name: "combine_or", Params: []wasmmod.ValType{0x7f, 0x7f}, Result: i32()},
		{ModName: mod, Name: "get_parameter_size", Result: i32()},
		{ModName: mod, Name: "get_parameter_section", Params: []wasmmod.ValType{0x7f, 0x7f, 0x7f}, Result: i32()},
		{ModName: mod, Name: "get_policy_section", Params: []wasmmod.ValType{0x7f, 0x7f, 0x7f}, Result: i32()},
		{ModName: mod, Name: "log_event", Params: []wasmmod.ValType{0x7f, 0x7f}},
		{ModName: mod, Name: "load_state", Params: []wasmmod.ValType{0x7f, 0x7f, 0x7f}, Result: i32()},
		{ModName: mod, Name: "write_state", Params: []wasmmod.ValType{0x7f, 0x7f, 0x7f}, Result: i32()},
		{ModName: mod, Name: "resize_state", Params: []wasmmod.ValType{0x7f}, Result: i32()},
		{ModName: mod, Name: "state_size", Result: i32()},
		{ModName: mod, Name: "get_init_origin", Params: []wasmmod.ValType{0x7f}},
		{ModName: mod, Name: "get_receive_invoker", Params: []wasmmod.ValType{0x7f}},
		{ModName: mod, Name: "get_receive_self_address", Params: []wasmmod.ValType{0x7f}},
		{ModName: mod, Name: "get_receive_self_balance", Result: i64()},
		{ModName: mod, Name: "get_receive_sender", Params: []wasmmod.ValType{0x7f}},
		{ModName: mod, Name: "get_receive_owner", Params: []wasmmod.ValType{0x7f}},
		{ModName: mod, Name: "get_slot_time", Result: i64()},
	}
}

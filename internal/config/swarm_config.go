package config

import (
	"github.com/Concordium/wasm-tools/internal/entropy"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
)

// SwarmConfig dynamically narrows the space of generated modules by picking
// random maximums up front, the way swarm testing narrows a fuzzing
// campaign to a random feature subset per run:
// https://www.cs.utah.edu/~regehr/papers/swarm12.pdf
//
// The source draws these maximums from the fuzzer's own entropy via its
// Arbitrary implementation. This port does the same, consuming from the
// same entropy.Reader the rest of the generator draws from, rather than
// reaching for math/rand as the teacher's modgen.go does — the source's
// SwarmConfig is itself part of the arbitrary-encoded input, and keeping it
// on the same entropy stream preserves that a given seed always produces
// the same module.
//
// Only maximums are chosen, never minimums: describing the valid domain of
// a config needs min <= max for every knob, and minimums exist to guarantee
// presence rather than to widen what can be generated.
type SwarmConfig struct {
	Defaults

	maxTypes            int
	maxImports          int
	maxFuncs            int
	maxGlobals          int
	maxExports          int
	maxElementSegments  int
	maxElements         int
	maxDataSegments     int
	maxInstructions     int
	maxMemories         int
	minUlebSize         uint8
	maxTables           int
	maxMemoryPages      uint32
	bulkMemoryEnabled   bool
	referenceTypesEnabled bool
	moduleLinkingEnabled  bool
	maxAliases          int
	maxNestingDepth     int
}

const swarmMaxMaximum = 1000

// NewSwarmConfig consumes entropy to pick this run's maximums, mirroring the
// source's Arbitrary impl for SwarmConfig field-for-field.
func NewSwarmConfig(r *entropy.Reader) *SwarmConfig {
	referenceTypesEnabled := r.Bool()
	maxTables := 1
	if referenceTypesEnabled {
		maxTables = 100
	}
	return &SwarmConfig{
		maxTypes:              r.IntInRange(0, swarmMaxMaximum),
		maxImports:            r.IntInRange(0, swarmMaxMaximum),
		maxFuncs:              r.IntInRange(0, swarmMaxMaximum),
		maxGlobals:            r.IntInRange(0, swarmMaxMaximum),
		maxExports:            r.IntInRange(0, swarmMaxMaximum),
		maxElementSegments:    r.IntInRange(0, swarmMaxMaximum),
		maxElements:           r.IntInRange(0, swarmMaxMaximum),
		maxDataSegments:       r.IntInRange(0, swarmMaxMaximum),
		maxInstructions:       r.IntInRange(0, swarmMaxMaximum),
		maxMemories:           r.IntInRange(0, 100),
		maxTables:             maxTables,
		maxMemoryPages:        r.Uint32InRange(0, 65536),
		minUlebSize:           uint8(r.IntInRange(0, 5)),
		bulkMemoryEnabled:     r.Bool(),
		referenceTypesEnabled: referenceTypesEnabled,
		moduleLinkingEnabled:  false,
		maxAliases:            r.IntInRange(0, swarmMaxMaximum),
		maxNestingDepth:       r.IntInRange(0, 10),
	}
}

func (c *SwarmConfig) MaxTypes() int              { return c.maxTypes }
func (c *SwarmConfig) MaxImports() int            { return c.maxImports }
func (c *SwarmConfig) MaxFuncs() int              { return c.maxFuncs }
func (c *SwarmConfig) MaxGlobals() int            { return c.maxGlobals }
func (c *SwarmConfig) MaxExports() int            { return c.maxExports }
func (c *SwarmConfig) MaxElementSegments() int    { return c.maxElementSegments }
func (c *SwarmConfig) MaxElements() int           { return c.maxElements }
func (c *SwarmConfig) MaxDataSegments() int       { return c.maxDataSegments }
func (c *SwarmConfig) MaxInstructions() int       { return c.maxInstructions }
func (c *SwarmConfig) MaxMemories() int           { return c.maxMemories }
func (c *SwarmConfig) MaxTables() int             { return c.maxTables }
func (c *SwarmConfig) MaxMemoryPages() uint32     { return c.maxMemoryPages }
func (c *SwarmConfig) MinUlebSize() uint8         { return c.minUlebSize }
func (c *SwarmConfig) BulkMemoryEnabled() bool    { return c.bulkMemoryEnabled }
func (c *SwarmConfig) ReferenceTypesEnabled() bool { return c.referenceTypesEnabled }
func (c *SwarmConfig) ModuleLinkingEnabled() bool  { return c.moduleLinkingEnabled }
func (c *SwarmConfig) MaxAliases() int             { return c.maxAliases }
func (c *SwarmConfig) MaxNestingDepth() int        { return c.maxNestingDepth }

// HostFunctions offers the Concordium smart-contract host ABI, same as
// InterpreterConfig.
func (c *SwarmConfig) HostFunctions() []wasmmod.HostFunction {
	return concordiumHostFunctions()
}

// Package wasmtools generates structurally valid, fuzzer-quality WebAssembly
// modules: every section is assembled in canonical order and every function
// body is built instruction-by-instruction so it type-checks by
// construction, never by post-hoc repair.
//
// # Profiles
//
// A Config chooses the shape of the modules produced. DefaultConfig is the
// generic, maximally permissive profile; SwarmConfig and InterpreterConfig
// narrow it to, respectively, fuzzing-harness modules and Concordium
// smart-contract modules. See package config.
//
// # Determinism
//
// Generate is a pure function of cfg and seed: the same pair always
// produces byte-identical output, and a shorter or empty seed degrades
// gracefully to minimal/default choices rather than panicking.
package wasmtools

import (
	"github.com/Concordium/wasm-tools/internal/config"
	"github.com/Concordium/wasm-tools/internal/encoder"
	"github.com/Concordium/wasm-tools/internal/genmodule"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
)

// Config is re-exported so callers need not import the internal config
// package directly to reference the interface type.
type Config = config.Config

// Module is the in-memory structure Generate builds before encoding it; see
// GenerateModule.
type Module = wasmmod.Module

// DefaultConfig, SwarmConfig, and InterpreterConfig are re-exported so the
// common profiles are reachable without an import of the internal config
// package. See their doc comments in package config for what each narrows.
type (
	DefaultConfig     = config.DefaultConfig
	SwarmConfig       = config.SwarmConfig
	InterpreterConfig = config.InterpreterConfig
)

// ConfigError is re-exported so callers can type-assert Generate's error
// without importing the internal config package.
type ConfigError = config.ConfigError

// Generate produces a module from seed under cfg and returns it encoded as
// a binary (%.wasm) module. Generation itself is total — any seed is valid
// entropy — so the only error Generate can return is a ConfigError from a
// cfg whose knobs describe an empty or contradictory domain, detected
// before generation begins.
func Generate(cfg Config, seed []byte) ([]byte, error) {
	m, err := GenerateModule(cfg, seed)
	if err != nil {
		return nil, err
	}
	return encoder.Encode(m, int(cfg.MinUlebSize()), cfg.BulkMemoryEnabled()), nil
}

// GenerateModule is Generate without the final encoding step, for callers
// that want to inspect or further transform the module's structure before
// serializing it.
func GenerateModule(cfg Config, seed []byte) (*Module, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return genmodule.Generate(cfg, seed), nil
}

// Package wasmvalidate is a test-only harness around two independent Wasm
// engines, used exclusively as validation oracles: Validate parses and
// validates a byte-encoded module without ever instantiating it, so no
// generated module is executed.
//
// Grounded on wazero's internal/integration_test/vs runtime wrappers, which
// drive both engines the same way this package does (NewStore, then
// NewModule) up to the point this package stops short of: neither wrapper's
// instantiation step is used here.
package wasmvalidate

import (
	"fmt"

	"github.com/bytecodealliance/wasmtime-go/v3"
	"github.com/wasmerio/wasmer-go/wasmer"
)

// Validate parses and validates raw against both wasmtime and wasmer,
// returning the first error either engine reports. Neither engine's module
// is ever instantiated or run.
func Validate(raw []byte) error {
	if err := ValidateWasmtime(raw); err != nil {
		return fmt.Errorf("wasmtime: %w", err)
	}
	if err := ValidateWasmer(raw); err != nil {
		return fmt.Errorf("wasmer: %w", err)
	}
	return nil
}

// ValidateWasmtime runs raw through wasmtime's module compilation, which
// includes full validation, and discards the resulting module.
func ValidateWasmtime(raw []byte) error {
	store := wasmtime.NewStore(wasmtime.NewEngine())
	_, err := wasmtime.NewModule(store.Engine, raw)
	return err
}

// ValidateWasmer runs raw through wasmer's module compilation, which
// includes full validation, and discards the resulting module.
func ValidateWasmer(raw []byte) error {
	store := wasmer.NewStore(wasmer.NewEngine())
	_, err := wasmer.NewModule(store, raw)
	return err
}

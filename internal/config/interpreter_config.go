package config

import "github.com/Concordium/wasm-tools/internal/wasmmod"

// InterpreterConfig is the profile for generating Concordium smart-contract
// modules: it narrows imports/exports to the shapes a contract interpreter
// actually accepts, forbids a start export (contracts are invoked by named
// export only), and restricts functions to at most one return value.
type InterpreterConfig struct {
	Defaults
}

func (InterpreterConfig) HostFunctions() []wasmmod.HostFunction {
	return concordiumHostFunctions()
}

func (InterpreterConfig) MaxImports() int { return 20 }
func (InterpreterConfig) MinImports() int { return 10 }

func (InterpreterConfig) MaxExports() int { return 100 }
func (InterpreterConfig) MinExports() int { return 1 }

func (InterpreterConfig) AllowStartExport() bool { return false }

func (InterpreterConfig) MaxReturnValues() int { return 1 }

func (InterpreterConfig) MaxMemoryPages() uint32 { return 32 }

func (InterpreterConfig) AllowGlobalGetInElemAndDataOffsets() bool { return false }

// AllowedExportTypes whitelists the one signature a Concordium entry point
// may have: an i64 parameter (the call-context pointer) returning an i32
// status code.
func (InterpreterConfig) AllowedExportTypes() []wasmmod.FuncType {
	result := wasmmod.ValType(0x7f)
	return []wasmmod.FuncType{{Params: []wasmmod.ValType{0x7e}, Result: &result}}
}

// ReferenceTypesEnabled is unstated in the source for this profile; per
// DESIGN.md this is treated as false (inherited from Defaults).

func (InterpreterConfig) AllowArbitraryInstr() bool { return false }

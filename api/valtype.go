// Package api includes constants shared by every internal package that
// needs to talk about WebAssembly value types without importing the
// generator's internal packages.
package api

import "fmt"

// ValType is a WebAssembly value type. Unlike the upstream binary format,
// this generator's closed world has no floating point types: the generator
// targets a deterministic i32/i64/funcref/externref subset.
//
// See https://www.w3.org/TR/2019/REC-wasm-core-1-20191205/#binary-valtype
type ValType = byte

const (
	// ValTypeI32 is a 32-bit integer.
	ValTypeI32 ValType = 0x7f
	// ValTypeI64 is a 64-bit integer.
	ValTypeI64 ValType = 0x7e
	// ValTypeFuncRef is a nullable reference to a function.
	ValTypeFuncRef ValType = 0x70
	// ValTypeExternRef is a nullable reference to an external (host) value.
	ValTypeExternRef ValType = 0x6f
)

// IsRefType reports whether t is one of the reference types.
func IsRefType(t ValType) bool {
	return t == ValTypeFuncRef || t == ValTypeExternRef
}

// ValTypeName returns the WebAssembly text format name of t, or "unknown".
func ValTypeName(t ValType) string {
	switch t {
	case ValTypeI32:
		return "i32"
	case ValTypeI64:
		return "i64"
	case ValTypeFuncRef:
		return "funcref"
	case ValTypeExternRef:
		return "externref"
	default:
		return fmt.Sprintf("unknown(%#x)", t)
	}
}

// ExternType classifies imports and exports by kind.
type ExternType = byte

const (
	ExternTypeFunc   ExternType = 0x00
	ExternTypeTable  ExternType = 0x01
	ExternTypeMemory ExternType = 0x02
	ExternTypeGlobal ExternType = 0x03
)

// SectionID identifies a WebAssembly binary module section.
type SectionID = byte

const (
	SectionIDCustom    SectionID = 0
	SectionIDType      SectionID = 1
	SectionIDImport    SectionID = 2
	SectionIDFunction  SectionID = 3
	SectionIDTable     SectionID = 4
	SectionIDMemory    SectionID = 5
	SectionIDGlobal    SectionID = 6
	SectionIDExport    SectionID = 7
	SectionIDStart     SectionID = 8
	SectionIDElement   SectionID = 9
	SectionIDCode      SectionID = 10
	SectionIDData      SectionID = 11
	SectionIDDataCount SectionID = 12
)

// Package encoder serialises a wasmmod.Module into the Wasm binary format:
// magic number, version, then every section in the canonical fixed order
// the spec requires. The section-ordering and per-section byte layouts are
// grounded on the teacher's internal/wasm/binary encoder and its tests;
// the only addition this port makes is threading a minWidth parameter
// through the LEB128 integers inside section bodies so a Config can force
// over-long encodings. Each section's size prefix is always written in its
// minimal width; minWidth does not apply to it.
package encoder

import (
	"github.com/Concordium/wasm-tools/api"
	"github.com/Concordium/wasm-tools/internal/leb128"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
)

var magic = []byte{0x00, 0x61, 0x73, 0x6D}
var version = []byte{0x01, 0x00, 0x00, 0x00}

// Encode serialises m to its canonical Wasm binary encoding. minWidth is
// the minimum byte width every LEB128-encoded integer in the module must
// occupy (Config.MinUlebSize()); pass 1 for the natural minimal encoding.
// bulkMemoryEnabled is Config.BulkMemoryEnabled(), the one piece of
// configuration the encoder needs to decide whether a data-count section
// belongs in the output; see needsDataCount.
func Encode(m *wasmmod.Module, minWidth int, bulkMemoryEnabled bool) []byte {
	out := append([]byte{}, magic...)
	out = append(out, version...)

	// Type and import sections may be interleaved in InitialSections (the
	// source generator can emit a run of imports, then more types, then
	// more imports again, to vary the shape of the module's front matter),
	// but the binary format has exactly one type section and one import
	// section; flatten before encoding.
	types := m.Types()
	imports := m.Imports()

	if len(types) > 0 {
		out = section(out, api.SectionIDType, encodeTypeSection(types, minWidth))
	}
	if len(imports) > 0 {
		out = section(out, api.SectionIDImport, encodeImportSection(imports, minWidth))
	}

	definedFuncs := m.DefinedFuncs()
	if len(definedFuncs) > 0 {
		out = section(out, api.SectionIDFunction, encodeFunctionSection(definedFuncs, minWidth))
	}

	definedTables := m.DefinedTables()
	if len(definedTables) > 0 {
		out = section(out, api.SectionIDTable, encodeTableSection(definedTables, minWidth))
	}

	definedMemories := m.DefinedMemories()
	if len(definedMemories) > 0 {
		out = section(out, api.SectionIDMemory, encodeMemorySection(definedMemories, minWidth))
	}

	if len(m.DefinedGlobals) > 0 {
		out = section(out, api.SectionIDGlobal, encodeGlobalSection(m.Globals, m.DefinedGlobals, minWidth))
	}

	if len(m.Exports) > 0 {
		out = section(out, api.SectionIDExport, encodeExportSection(m.Exports, minWidth))
	}

	if m.Start != nil {
		out = section(out, api.SectionIDStart, leb128.EncodeUint32(nil, *m.Start, minWidth))
	}

	if len(m.Elems) > 0 {
		out = section(out, api.SectionIDElement, encodeElementSection(m.Elems, minWidth))
	}

	if needsDataCount(bulkMemoryEnabled, m) {
		out = section(out, api.SectionIDDataCount, leb128.EncodeUint32(nil, uint32(len(m.Data)), minWidth))
	}

	if len(m.Code) > 0 {
		out = section(out, api.SectionIDCode, encodeCodeSection(m.Code, minWidth))
	}

	if len(m.Data) > 0 {
		out = section(out, api.SectionIDData, encodeDataSection(m.Data, minWidth))
	}

	return out
}

// needsDataCount reports whether the data-count section belongs in the
// output: only when bulk-memory is enabled and there is at least one data
// segment to count, never on any inspection of generated function bodies.
func needsDataCount(bulkMemoryEnabled bool, m *wasmmod.Module) bool {
	return bulkMemoryEnabled && len(m.Data) > 0
}

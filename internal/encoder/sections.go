package encoder

import (
	"github.com/Concordium/wasm-tools/internal/leb128"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
)

func encodeName(dst []byte, s string, minWidth int) []byte {
	dst = leb128.EncodeUint32(dst, uint32(len(s)), minWidth)
	return append(dst, s...)
}

func encodeLimits(dst []byte, l wasmmod.Limits, minWidth int) []byte {
	if l.Max != nil {
		dst = append(dst, 0x01)
		dst = leb128.EncodeUint32(dst, l.Min, minWidth)
		return leb128.EncodeUint32(dst, *l.Max, minWidth)
	}
	dst = append(dst, 0x00)
	return leb128.EncodeUint32(dst, l.Min, minWidth)
}

func encodeFuncType(dst []byte, ft *wasmmod.FuncType, minWidth int) []byte {
	dst = append(dst, 0x60)
	dst = leb128.EncodeUint32(dst, uint32(len(ft.Params)), minWidth)
	dst = append(dst, ft.Params...)
	results := ft.Results()
	dst = leb128.EncodeUint32(dst, uint32(len(results)), minWidth)
	return append(dst, results...)
}

func encodeConstExpr(dst []byte, c wasmmod.ConstExpr, minWidth int) []byte {
	dst = encodeInstruction(dst, c.Instr, minWidth)
	return append(dst, opEnd)
}

// section wraps body with its section id and a ULEB128 byte-length prefix,
// appending it to dst. An empty body (id != custom) still gets emitted with
// a zero count prefix by the caller when the section is non-optional;
// omitting wholly-empty sections is the caller's job.
func section(dst []byte, id byte, body []byte) []byte {
	dst = append(dst, id)
	dst = leb128.EncodeUint32(dst, uint32(len(body)), 1)
	return append(dst, body...)
}

func encodeTypeSection(types []*wasmmod.FuncType, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(types)), minWidth)
	for _, t := range types {
		body = encodeFuncType(body, t, minWidth)
	}
	return body
}

func encodeImportSection(imports []*wasmmod.Import, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(imports)), minWidth)
	for _, imp := range imports {
		body = encodeName(body, imp.Module, minWidth)
		body = encodeName(body, imp.Name, minWidth)
		body = append(body, 0x00) // import kind: func
		body = leb128.EncodeUint32(body, imp.TypeIndex, minWidth)
	}
	return body
}

func encodeFunctionSection(funcs []wasmmod.Function, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(funcs)), minWidth)
	for _, f := range funcs {
		body = leb128.EncodeUint32(body, f.TypeIndex, minWidth)
	}
	return body
}

func encodeTableSection(tables []wasmmod.TableType, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(tables)), minWidth)
	for _, tt := range tables {
		body = append(body, tt.ElemType)
		body = encodeLimits(body, tt.Limits, minWidth)
	}
	return body
}

func encodeMemorySection(mems []wasmmod.MemoryType, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(mems)), minWidth)
	for _, mt := range mems {
		body = encodeLimits(body, mt.Limits, minWidth)
	}
	return body
}

func encodeGlobalSection(globals []wasmmod.GlobalType, defined []wasmmod.DefinedGlobal, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(defined)), minWidth)
	for _, dg := range defined {
		gt := globals[dg.Index]
		body = append(body, gt.ValType)
		if gt.Mutable {
			body = append(body, 0x01)
		} else {
			body = append(body, 0x00)
		}
		body = encodeConstExpr(body, dg.Init, minWidth)
	}
	return body
}

func encodeExportSection(exports []wasmmod.Export, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(exports)), minWidth)
	for _, e := range exports {
		body = encodeName(body, e.Name, minWidth)
		body = append(body, e.Kind)
		body = leb128.EncodeUint32(body, e.Index, minWidth)
	}
	return body
}

func encodeElementSection(elems []wasmmod.ElemSegment, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(elems)), minWidth)
	for _, el := range elems {
		body = encodeElemSegment(body, el, minWidth)
	}
	return body
}

func encodeElemSegment(dst []byte, el wasmmod.ElemSegment, minWidth int) []byte {
	isFuncRefExprs := el.Items.IsExpressions
	// Bit 2 of the segment flag marks items given as expressions (preceded
	// by a reftype byte) rather than function indices (preceded by an
	// elemkind byte).
	exprBit := uint32(0)
	if isFuncRefExprs {
		exprBit = 4
	}
	switch el.Kind {
	case wasmmod.ElementActive:
		if el.Table == 0 && !isFuncRefExprs {
			dst = leb128.EncodeUint32(dst, 0, minWidth)
			dst = encodeConstExpr(dst, el.Offset, minWidth)
			dst = leb128.EncodeUint32(dst, uint32(len(el.Items.FuncIndices)), minWidth)
			for _, f := range el.Items.FuncIndices {
				dst = leb128.EncodeUint32(dst, f, minWidth)
			}
			return dst
		}
		dst = leb128.EncodeUint32(dst, 2|exprBit, minWidth)
		dst = leb128.EncodeUint32(dst, el.Table, minWidth)
		dst = encodeConstExpr(dst, el.Offset, minWidth)
		return encodeElemItems(dst, el, minWidth)
	case wasmmod.ElementPassive:
		dst = leb128.EncodeUint32(dst, 1|exprBit, minWidth)
		return encodeElemItems(dst, el, minWidth)
	case wasmmod.ElementDeclared:
		dst = leb128.EncodeUint32(dst, 3|exprBit, minWidth)
		return encodeElemItems(dst, el, minWidth)
	}
	return dst
}

func encodeElemItems(dst []byte, el wasmmod.ElemSegment, minWidth int) []byte {
	if !el.Items.IsExpressions {
		dst = append(dst, 0x00) // elemkind: funcref
		dst = leb128.EncodeUint32(dst, uint32(len(el.Items.FuncIndices)), minWidth)
		for _, f := range el.Items.FuncIndices {
			dst = leb128.EncodeUint32(dst, f, minWidth)
		}
		return dst
	}
	dst = append(dst, el.Type)
	dst = leb128.EncodeUint32(dst, uint32(len(el.Items.Expressions)), minWidth)
	for _, f := range el.Items.Expressions {
		if f == nil {
			dst = append(dst, opRefNull, el.Type, opEnd)
			continue
		}
		dst = append(dst, opRefFunc)
		dst = leb128.EncodeUint32(dst, *f, minWidth)
		dst = append(dst, opEnd)
	}
	return dst
}

func encodeDataSection(data []wasmmod.DataSegment, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(data)), minWidth)
	for _, d := range data {
		switch d.Kind {
		case wasmmod.DataActive:
			if d.Memory == 0 {
				body = leb128.EncodeUint32(body, 0, minWidth)
			} else {
				body = leb128.EncodeUint32(body, 2, minWidth)
				body = leb128.EncodeUint32(body, d.Memory, minWidth)
			}
			body = encodeConstExpr(body, d.Offset, minWidth)
		case wasmmod.DataPassive:
			body = leb128.EncodeUint32(body, 1, minWidth)
		}
		body = leb128.EncodeUint32(body, uint32(len(d.Init)), minWidth)
		body = append(body, d.Init...)
	}
	return body
}

// encodeCodeSection encodes one function body per Code entry. Locals are
// emitted one declaration per local rather than run-length encoded by
// type-run: computing the RLE grouping buys nothing for a generator that
// doesn't care about output size, and skipping it matches the source
// encoder's own choice (see its comment to the same effect).
func encodeCodeSection(code []wasmmod.Code, minWidth int) []byte {
	var body []byte
	body = leb128.EncodeUint32(body, uint32(len(code)), minWidth)
	for _, c := range code {
		var fn []byte
		fn = leb128.EncodeUint32(fn, uint32(len(c.Locals)), minWidth)
		for _, l := range c.Locals {
			fn = leb128.EncodeUint32(fn, 1, minWidth)
			fn = append(fn, l)
		}
		if c.Instructions.Arbitrary {
			fn = append(fn, c.Instructions.ArbitraryBytes...)
		} else {
			for _, in := range c.Instructions.Generated {
				fn = encodeInstruction(fn, in, minWidth)
			}
		}
		body = leb128.EncodeUint32(body, uint32(len(fn)), minWidth)
		body = append(body, fn...)
	}
	return body
}

package selector

import (
	"github.com/Concordium/wasm-tools/internal/entropy"
	"github.com/Concordium/wasm-tools/internal/wasmmod"
)

type candidate struct {
	weight uint32
	build  func()
}

type adder func(weight uint32, build func())

// Generate produces one function body's instructions against the given
// result types. ctx.Locals must already be params followed by declared
// locals, per the source's convention.
func Generate(ctx *Context, r *entropy.Reader, resultTypes []wasmmod.ValType) wasmmod.Instructions {
	if ctx.Cfg.AllowArbitraryInstr() && r.Bool() {
		n := r.IntInRange(0, ctx.Cfg.MaxInstructions()*4)
		return wasmmod.Instructions{Arbitrary: true, ArbitraryBytes: r.Bytes(n)}
	}

	s := &state{}
	s.pushFrame(controlFrame{kind: frameBody, resultTypes: resultTypes})

	maxInstr := ctx.Cfg.MaxInstructions()
	for i := 0; i < maxInstr && s.depth() > 0 && !r.IsEmpty(); i++ {
		candidates := buildCandidates(ctx, s, r)
		weights := make([]uint32, len(candidates))
		for j, c := range candidates {
			weights[j] = c.weight
		}
		choice := r.WeightedChoose(weights)
		candidates[choice].build()
	}

	terminate(s)
	return wasmmod.Instructions{Generated: s.instrs}
}

// terminate closes every still-open frame, inserting Unreachable first
// whenever a frame's result types can't be produced from the current
// stack. Unreachable is always admissible, so this always succeeds.
func terminate(s *state) {
	for s.depth() > 0 {
		f := s.top()
		if !s.requireTypes(f.resultTypes) {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpUnreachable})
			s.enterUnreachable()
		}
		s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpEnd})
		s.popFrame()
	}
}

const (
	i32 = wasmmod.ValType(0x7f)
	i64 = wasmmod.ValType(0x7e)
)

func buildCandidates(ctx *Context, s *state, r *entropy.Reader) []candidate {
	var cs []candidate
	add := func(weight uint32, build func()) {
		if weight == 0 {
			return
		}
		cs = append(cs, candidate{weight: weight, build: build})
	}

	add(1, func() {
		s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpUnreachable})
		s.enterUnreachable()
	})
	add(3, func() { s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpNop}) })

	add(10, func() {
		s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpI32Const, I32: 0})
		s.push(known(i32))
	})
	add(10, func() {
		s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpI64Const, I64: 0})
		s.push(known(i64))
	})

	addDrop(s, add)
	addSelect(ctx, s, add)
	addLocals(ctx, s, add)
	addGlobals(ctx, s, add)
	addNumeric(s, add)
	addMemory(ctx, s, add, r)
	addControl(ctx, s, add)
	addCalls(ctx, s, add)
	addReferences(ctx, s, add)
	addBulk(ctx, s, add)

	if len(cs) == 0 {
		cs = append(cs, candidate{weight: 1, build: func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpUnreachable})
			s.enterUnreachable()
		}})
	}
	return cs
}

func addDrop(s *state, add adder) {
	if !s.top().unreachable && !s.requireTypes([]wasmmod.ValType{i32}) && !s.requireTypes([]wasmmod.ValType{i64}) {
		return
	}
	add(4, func() {
		s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpDrop})
		s.pop()
	})
}

func addSelect(ctx *Context, s *state, add adder) {
	for _, t := range []wasmmod.ValType{i32, i64} {
		t := t
		if s.requireTypes([]wasmmod.ValType{t, t, i32}) {
			add(3, func() {
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpSelect})
				s.popTypes([]wasmmod.ValType{t, t, i32})
				s.push(known(t))
			})
		}
	}
}

func addLocals(ctx *Context, s *state, add adder) {
	for idx, t := range ctx.Locals {
		idx, t := wasmmod.Index(idx), t
		add(6, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpLocalGet, Index: idx})
			s.push(known(t))
		})
		if s.requireTypes([]wasmmod.ValType{t}) {
			add(4, func() {
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpLocalSet, Index: idx})
				s.popTypes([]wasmmod.ValType{t})
			})
			add(4, func() {
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpLocalTee, Index: idx})
				s.popTypes([]wasmmod.ValType{t})
				s.push(known(t))
			})
		}
	}
}

func addGlobals(ctx *Context, s *state, add adder) {
	for idx, g := range ctx.Globals {
		idx, g := wasmmod.Index(idx), g
		add(5, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpGlobalGet, Index: idx})
			s.push(known(g.ValType))
		})
		if g.Mutable && s.requireTypes([]wasmmod.ValType{g.ValType}) {
			add(4, func() {
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpGlobalSet, Index: idx})
				s.popTypes([]wasmmod.ValType{g.ValType})
			})
		}
	}
}

type numOp struct {
	op      wasmmod.Op
	operand wasmmod.ValType
	arity   int
	result  wasmmod.ValType
}

var numericOps = buildNumericOps()

func buildNumericOps() []numOp {
	unaryI32 := []wasmmod.Op{wasmmod.OpI32Clz, wasmmod.OpI32Ctz, wasmmod.OpI32Popcnt}
	unaryI64 := []wasmmod.Op{wasmmod.OpI64Clz, wasmmod.OpI64Ctz, wasmmod.OpI64Popcnt}
	binI32 := []wasmmod.Op{
		wasmmod.OpI32Add, wasmmod.OpI32Sub, wasmmod.OpI32Mul, wasmmod.OpI32DivS, wasmmod.OpI32DivU,
		wasmmod.OpI32RemS, wasmmod.OpI32RemU, wasmmod.OpI32And, wasmmod.OpI32Or, wasmmod.OpI32Xor,
		wasmmod.OpI32Shl, wasmmod.OpI32ShrS, wasmmod.OpI32ShrU, wasmmod.OpI32Rotl, wasmmod.OpI32Rotr,
	}
	binI64 := []wasmmod.Op{
		wasmmod.OpI64Add, wasmmod.OpI64Sub, wasmmod.OpI64Mul, wasmmod.OpI64DivS, wasmmod.OpI64DivU,
		wasmmod.OpI64RemS, wasmmod.OpI64RemU, wasmmod.OpI64And, wasmmod.OpI64Or, wasmmod.OpI64Xor,
		wasmmod.OpI64Shl, wasmmod.OpI64ShrS, wasmmod.OpI64ShrU, wasmmod.OpI64Rotl, wasmmod.OpI64Rotr,
	}
	cmpI32 := []wasmmod.Op{
		wasmmod.OpI32Eq, wasmmod.OpI32Ne, wasmmod.OpI32LtS, wasmmod.OpI32LtU, wasmmod.OpI32GtS,
		wasmmod.OpI32GtU, wasmmod.OpI32LeS, wasmmod.OpI32LeU, wasmmod.OpI32GeS, wasmmod.OpI32GeU,
	}
	cmpI64 := []wasmmod.Op{
		wasmmod.OpI64Eq, wasmmod.OpI64Ne, wasmmod.OpI64LtS, wasmmod.OpI64LtU, wasmmod.OpI64GtS,
		wasmmod.OpI64GtU, wasmmod.OpI64LeS, wasmmod.OpI64LeU, wasmmod.OpI64GeS, wasmmod.OpI64GeU,
	}

	var out []numOp
	for _, op := range unaryI32 {
		out = append(out, numOp{op, i32, 1, i32})
	}
	for _, op := range unaryI64 {
		out = append(out, numOp{op, i64, 1, i64})
	}
	for _, op := range binI32 {
		out = append(out, numOp{op, i32, 2, i32})
	}
	for _, op := range binI64 {
		out = append(out, numOp{op, i64, 2, i64})
	}
	for _, op := range cmpI32 {
		out = append(out, numOp{op, i32, 2, i32})
	}
	for _, op := range cmpI64 {
		out = append(out, numOp{op, i64, 2, i32})
	}
	out = append(out,
		numOp{wasmmod.OpI32Eqz, i32, 1, i32},
		numOp{wasmmod.OpI64Eqz, i64, 1, i32},
		numOp{wasmmod.OpI32WrapI64, i64, 1, i32},
		numOp{wasmmod.OpI64ExtendI32S, i32, 1, i64},
		numOp{wasmmod.OpI64ExtendI32U, i32, 1, i64},
		numOp{wasmmod.OpI64Extend32S, i64, 1, i64},
	)
	return out
}

func addNumeric(s *state, add adder) {
	for _, n := range numericOps {
		n := n
		operands := make([]wasmmod.ValType, n.arity)
		for i := range operands {
			operands[i] = n.operand
		}
		if !s.requireTypes(operands) {
			continue
		}
		add(6, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: n.op})
			s.popTypes(operands)
			s.push(known(n.result))
		})
	}
}

func naturalWidth(op wasmmod.Op) (width uint32, valType wasmmod.ValType) {
	switch op {
	case wasmmod.OpI32Load, wasmmod.OpI32Store:
		return 4, i32
	case wasmmod.OpI64Load, wasmmod.OpI64Store:
		return 8, i64
	case wasmmod.OpI32Load8S, wasmmod.OpI32Load8U, wasmmod.OpI32Store8:
		return 1, i32
	case wasmmod.OpI32Load16S, wasmmod.OpI32Load16U, wasmmod.OpI32Store16:
		return 2, i32
	case wasmmod.OpI64Load8S, wasmmod.OpI64Load8U, wasmmod.OpI64Store8:
		return 1, i64
	case wasmmod.OpI64Load16S, wasmmod.OpI64Load16U, wasmmod.OpI64Store16:
		return 2, i64
	case wasmmod.OpI64Load32S, wasmmod.OpI64Load32U, wasmmod.OpI64Store32:
		return 4, i64
	}
	return 4, i32
}

// log2Floor returns the floor of log2(n) for n >= 1.
func log2Floor(n uint32) uint32 {
	var l uint32
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

func genMemOffset(ctx *Context, r *entropy.Reader) uint32 {
	lim := wasmmod.Limits{}
	if ctx.NumMemories > 0 {
		lim = ctx.MemoryLimits[0]
	}
	// Limits count 64 KiB pages; offsets are in bytes.
	pageBytes := func(p uint32) uint32 {
		if p >= 1<<16 {
			return ^uint32(0)
		}
		return p << 16
	}
	lim.Min = pageBytes(lim.Min)
	if lim.Max != nil {
		maxBytes := pageBytes(*lim.Max)
		lim.Max = &maxBytes
	}
	a, b, c := ctx.Cfg.MemoryOffsetChoices()
	switch r.WeightedChoose([]uint32{a, b, c}) {
	case 0:
		if lim.Min == 0 {
			return 0
		}
		return r.Uint32InRange(0, lim.Min-1)
	case 1:
		max := lim.Min
		if lim.Max != nil {
			max = *lim.Max
		}
		if max <= lim.Min {
			return lim.Min
		}
		return r.Uint32InRange(lim.Min, max-1)
	default:
		base := lim.Min
		if lim.Max != nil {
			base = *lim.Max
		}
		return r.Uint32InRange(base, base+65536)
	}
}

func genMemArg(ctx *Context, r *entropy.Reader, naturalW uint32) wasmmod.MemArg {
	align := r.Uint32InRange(0, log2Floor(naturalW))
	offset := genMemOffset(ctx, r)
	return wasmmod.MemArg{Offset: offset, Align: align, MemIndex: 0}
}

func addMemory(ctx *Context, s *state, add adder, r *entropy.Reader) {
	if ctx.NumMemories == 0 {
		return
	}
	loads := []wasmmod.Op{
		wasmmod.OpI32Load, wasmmod.OpI64Load, wasmmod.OpI32Load8S, wasmmod.OpI32Load8U,
		wasmmod.OpI32Load16S, wasmmod.OpI32Load16U, wasmmod.OpI64Load8S, wasmmod.OpI64Load8U,
		wasmmod.OpI64Load16S, wasmmod.OpI64Load16U, wasmmod.OpI64Load32S, wasmmod.OpI64Load32U,
	}
	stores := []wasmmod.Op{
		wasmmod.OpI32Store, wasmmod.OpI64Store, wasmmod.OpI32Store8, wasmmod.OpI32Store16,
		wasmmod.OpI64Store8, wasmmod.OpI64Store16, wasmmod.OpI64Store32,
	}
	if s.requireTypes([]wasmmod.ValType{i32}) {
		for _, op := range loads {
			op := op
			width, resultType := naturalWidth(op)
			add(4, func() {
				s.popTypes([]wasmmod.ValType{i32})
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: op, Mem: genMemArg(ctx, r, width)})
				s.push(known(resultType))
			})
		}
	}
	for _, op := range stores {
		op := op
		width, valType := naturalWidth(op)
		if s.requireTypes([]wasmmod.ValType{i32, valType}) {
			add(4, func() {
				s.popTypes([]wasmmod.ValType{i32, valType})
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: op, Mem: genMemArg(ctx, r, width)})
			})
		}
	}
	add(2, func() {
		s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpMemorySize})
		s.push(known(i32))
	})
	if s.requireTypes([]wasmmod.ValType{i32}) {
		add(2, func() {
			s.popTypes([]wasmmod.ValType{i32})
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpMemoryGrow})
			s.push(known(i32))
		})
	}
}

func addControl(ctx *Context, s *state, add adder) {
	for _, rt := range []struct {
		kind  wasmmod.BlockTypeKind
		typ   wasmmod.ValType
		empty bool
	}{{wasmmod.BlockTypeEmpty, 0, true}, {wasmmod.BlockTypeResult, i32, false}, {wasmmod.BlockTypeResult, i64, false}} {
		rt := rt
		var results []wasmmod.ValType
		if !rt.empty {
			results = []wasmmod.ValType{rt.typ}
		}
		bt := wasmmod.BlockType{Kind: rt.kind, Result: rt.typ}

		add(3, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpBlock, Block: bt})
			s.pushFrame(controlFrame{kind: frameBlock, blockType: bt, resultTypes: results})
		})
		add(2, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpLoop, Block: bt})
			s.pushFrame(controlFrame{kind: frameLoop, blockType: bt, resultTypes: results})
		})
		if s.requireTypes([]wasmmod.ValType{i32}) {
			add(2, func() {
				s.popTypes([]wasmmod.ValType{i32})
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpIf, Block: bt})
				s.pushFrame(controlFrame{kind: frameIf, blockType: bt, resultTypes: results})
			})
		}
	}

	if ctx.Cfg.AllowFunctionBlocktype() {
		for tyIdx, ft := range ctx.Types {
			tyIdx, ft := wasmmod.Index(tyIdx), ft
			bt := wasmmod.BlockType{Kind: wasmmod.BlockTypeFunc, TypeIndex: tyIdx}
			results := ft.Results()

			if s.requireTypes(ft.Params) {
				add(1, func() {
					s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpBlock, Block: bt})
					s.pushFrame(controlFrame{kind: frameBlock, blockType: bt, paramTypes: ft.Params, resultTypes: results})
					s.top().height -= len(ft.Params)
				})
				add(1, func() {
					s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpLoop, Block: bt})
					s.pushFrame(controlFrame{kind: frameLoop, blockType: bt, paramTypes: ft.Params, resultTypes: results})
					s.top().height -= len(ft.Params)
				})
			}
			required := append(append([]wasmmod.ValType{}, ft.Params...), i32)
			if s.requireTypes(required) {
				add(1, func() {
					s.pop() // the i32 condition, topmost
					s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpIf, Block: bt})
					s.pushFrame(controlFrame{kind: frameIf, blockType: bt, paramTypes: ft.Params, resultTypes: results})
					s.top().height -= len(ft.Params)
				})
			}
		}
	}

	if s.depth() > 1 && s.top().kind == frameIf && s.requireTypes(s.top().resultTypes) {
		add(3, func() {
			f := s.top()
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpElse})
			s.stack = s.stack[:f.height]
			s.pushTypes(f.paramTypes)
			f.kind = frameElse
			f.unreachable = false
		})
	}

	if s.requireTypes(s.top().resultTypes) {
		add(5, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpEnd})
			s.popFrame()
		})
	}

	for l := 0; l < s.depth(); l++ {
		l := l
		label := s.control[len(s.control)-1-l].labelTypes()
		if s.requireTypes(append(append([]wasmmod.ValType{}, label...), i32)) {
			add(2, func() {
				s.pop() // the i32 condition, topmost
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpBrIf, Index: wasmmod.Index(l)})
			})
		}
		if s.requireLabelTypes(l) {
			add(2, func() {
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpBr, Index: wasmmod.Index(l)})
				s.enterUnreachable()
			})
		}
	}
	if s.requireTypes(s.control[0].resultTypes) {
		add(2, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpReturn})
			s.enterUnreachable()
		})
	}
}

func addCalls(ctx *Context, s *state, add adder) {
	for idx, tyIdx := range ctx.FuncTypeIndices {
		idx := wasmmod.Index(idx)
		ft := ctx.Types[tyIdx]
		if !s.requireTypes(ft.Params) {
			continue
		}
		add(4, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpCall, Index: idx})
			s.popTypes(ft.Params)
			s.pushTypes(ft.Results())
		})
	}
	if ctx.NumTables > 0 && ctx.TableElemType == wasmmod.ValType(0x70) {
		for tyIdx, ft := range ctx.Types {
			required := append(append([]wasmmod.ValType{}, ft.Params...), i32)
			if !s.requireTypes(required) {
				continue
			}
			tyIdx, ft := wasmmod.Index(tyIdx), ft
			add(2, func() {
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpCallIndirect, Index: tyIdx, Index2: 0})
				s.pop() // the i32 table index, topmost
				s.popTypes(ft.Params)
				s.pushTypes(ft.Results())
			})
		}
	}
}

func addReferences(ctx *Context, s *state, add adder) {
	if !ctx.Cfg.ReferenceTypesEnabled() {
		return
	}
	for _, rt := range []wasmmod.ValType{0x70, 0x6f} {
		rt := rt
		add(2, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpRefNull, RefType: rt})
			s.push(known(rt))
		})
	}
	if s.requireTypes([]wasmmod.ValType{0x70}) || s.requireTypes([]wasmmod.ValType{0x6f}) {
		add(2, func() {
			if s.requireTypes([]wasmmod.ValType{0x70}) {
				s.popTypes([]wasmmod.ValType{0x70})
			} else {
				s.popTypes([]wasmmod.ValType{0x6f})
			}
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpRefIsNull})
			s.push(known(i32))
		})
	}
	for i := range ctx.FuncTypeIndices {
		idx := wasmmod.Index(i)
		if !ctx.DeclarableFuncs[idx] {
			continue
		}
		add(2, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpRefFunc, Index: idx})
			s.push(known(0x70))
		})
	}
	if ctx.NumTables > 0 {
		if s.requireTypes([]wasmmod.ValType{i32}) {
			add(2, func() {
				s.popTypes([]wasmmod.ValType{i32})
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpTableGet, Index: 0})
				s.push(known(ctx.TableElemType))
			})
		}
		if s.requireTypes([]wasmmod.ValType{i32, ctx.TableElemType}) {
			add(2, func() {
				s.popTypes([]wasmmod.ValType{i32, ctx.TableElemType})
				s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpTableSet, Index: 0})
			})
		}
	}
}

func addBulk(ctx *Context, s *state, add adder) {
	if !ctx.Cfg.BulkMemoryEnabled() {
		return
	}
	if ctx.NumMemories > 0 && s.requireTypes([]wasmmod.ValType{i32, i32, i32}) {
		add(1, func() {
			s.popTypes([]wasmmod.ValType{i32, i32, i32})
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpMemoryFill})
		})
		add(1, func() {
			s.popTypes([]wasmmod.ValType{i32, i32, i32})
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpMemoryCopy})
		})
		add(1, func() {
			s.popTypes([]wasmmod.ValType{i32, i32, i32})
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpMemoryInit, Index: 0})
		})
	}
	if ctx.NumTables > 0 {
		add(1, func() {
			s.instrs = append(s.instrs, wasmmod.Instruction{Op: wasmmod.OpTableSize})
			s.push(known(i32))
		})
	}
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"fmt"
	"strings"

	"firefly-os.dev/xed/x86"
)

// Inst is a decoded instruction.
//
// An Inst is immutable once returned by
// Decode and may be shared between
// goroutines.
type Inst struct {
	code  []byte
	form  *Form
	state State
	chip  Chip

	operands [MaxOperands]OperandValue
	nops     int
	mems     [2]MemoryOperand
	nmems    int

	// Encoding details.
	space     x86.Space
	nprefixes int
	lock      bool
	osz       bool
	asz       bool
	rep       x86.Prefix
	seg       x86.Prefix
	rex       x86.REX
	hasREX    bool
	vex       x86.VEX
	evex      x86.EVEX
	modrm     x86.ModRM
	hasModRM  bool
	eosz      int
	easz      int
	vl        int
	bcst      bool
	relbr     int64
	relbrBits int
}

// addMemory records a memory operand.
func (inst *Inst) addMemory(op *Operand, m x86.Memory, bits, addressBits int, segment *x86.Register) *MemoryOperand {
	mem := &inst.mems[inst.nmems]
	inst.nmems++
	*mem = MemoryOperand{
		Memory:      m,
		op:          op,
		action:      op.action,
		bits:        bits,
		addressBits: addressBits,
		segment:     segment,
	}

	return mem
}

func (inst *Inst) Form() *Form             { return inst.form }
func (inst *Inst) IClass() IClass          { return inst.form.iclass }
func (inst *Inst) IForm() IForm            { return inst.form.iform }
func (inst *Inst) IFormDispatch() int      { return inst.form.dispatch }
func (inst *Inst) Category() Category      { return inst.form.category }
func (inst *Inst) Extension() Extension    { return inst.form.extension }
func (inst *Inst) ISASet() ISASet          { return inst.form.isa }
func (inst *Inst) Attributes() Attributes  { return inst.form.attrs }
func (inst *Inst) Has(attr Attribute) bool { return inst.form.attrs.Has(attr) }
func (inst *Inst) State() State            { return inst.state }

// Length returns the instruction's length
// in bytes.
func (inst *Inst) Length() int { return len(inst.code) }

// Bytes returns the instruction's machine
// code.
func (inst *Inst) Bytes() []byte { return inst.code }

// NumPrefixes returns the number of legacy
// and REX prefixes.
func (inst *Inst) NumPrefixes() int { return inst.nprefixes }

// ModRM returns the ModR/M byte, if the
// instruction has one.
func (inst *Inst) ModRM() (x86.ModRM, bool) { return inst.modrm, inst.hasModRM }

// LockPrefix reports whether the
// instruction has a lock prefix.
func (inst *Inst) LockPrefix() bool { return inst.lock }

// RepPrefix returns any F2 or F3 prefix
// that is not part of the opcode, or zero.
func (inst *Inst) RepPrefix() x86.Prefix {
	if inst.space != x86.SpaceLegacy || inst.rep == inst.form.encoding.MandatoryPrefix() {
		return 0
	}

	return inst.rep
}

// SegmentPrefix returns any segment
// override prefix, or zero.
func (inst *Inst) SegmentPrefix() x86.Prefix { return inst.seg }

// Operands returns the resolved operands,
// in the order of the form's templates.
func (inst *Inst) Operands() []OperandValue { return inst.operands[:inst.nops] }

// NumOperands returns the number of
// operands.
func (inst *Inst) NumOperands() int { return inst.nops }

// Operand returns the i'th operand, if it
// exists.
func (inst *Inst) Operand(i int) (*OperandValue, bool) {
	if i < 0 || i >= inst.nops {
		return nil, false
	}

	return &inst.operands[i], true
}

// MemoryOperands returns the memory
// operands, including any address
// generation.
func (inst *Inst) MemoryOperands() []MemoryOperand { return inst.mems[:inst.nmems] }

// NumMemoryOperands returns the number of
// memory operands.
func (inst *Inst) NumMemoryOperands() int { return inst.nmems }

// MemoryOperand returns the i'th memory
// operand, if it exists.
func (inst *Inst) MemoryOperand(i int) (*MemoryOperand, bool) {
	if i < 0 || i >= inst.nmems {
		return nil, false
	}

	return &inst.mems[i], true
}

// Reg returns the register chosen for the
// named operand, or nil.
func (inst *Inst) Reg(name OperandName) *x86.Register {
	for i := range inst.operands[:inst.nops] {
		if inst.operands[i].op.name == name {
			return inst.operands[i].register
		}
	}

	return nil
}

// immediate returns the first immediate
// operand, if any.
func (inst *Inst) immediate() (*OperandValue, bool) {
	for i := range inst.operands[:inst.nops] {
		if inst.operands[i].op.name == OperandImm0 {
			return &inst.operands[i], true
		}
	}

	return nil, false
}

// HasImmediate reports whether the
// instruction has an immediate operand.
func (inst *Inst) HasImmediate() bool {
	_, ok := inst.immediate()
	return ok
}

// UnsignedImmediate returns the first
// immediate, zero-extended.
func (inst *Inst) UnsignedImmediate() uint64 {
	v, ok := inst.immediate()
	if !ok {
		return 0
	}

	return v.imm
}

// SignedImmediate returns the first
// immediate, sign-extended from its
// encoded width.
func (inst *Inst) SignedImmediate() int64 {
	v, ok := inst.immediate()
	if !ok || v.bits == 0 {
		return 0
	}

	return signExtend(v.imm, v.bits)
}

// ImmediateIsSigned reports whether the
// first immediate is sign-extended to the
// operand size.
func (inst *Inst) ImmediateIsSigned() bool {
	v, ok := inst.immediate()
	return ok && v.op.signed
}

// ImmediateBits returns the encoded width
// of the first immediate.
func (inst *Inst) ImmediateBits() int {
	v, ok := inst.immediate()
	if !ok {
		return 0
	}

	return v.bits
}

// SecondImmediate returns the second
// immediate, as used by ENTER.
func (inst *Inst) SecondImmediate() uint8 {
	for _, v := range inst.operands[:inst.nops] {
		if v.op.name == OperandImm1 {
			return uint8(v.imm)
		}
	}

	return 0
}

// BranchDisplacement returns the relative
// branch displacement, sign-extended.
func (inst *Inst) BranchDisplacement() int64 { return inst.relbr }

// BranchDisplacementBits returns the
// encoded width of the branch
// displacement, or zero.
func (inst *Inst) BranchDisplacementBits() int { return inst.relbrBits }

// BranchTarget returns the target of a
// relative branch, given the address of
// the instruction.
func (inst *Inst) BranchTarget(pc uint64) (uint64, bool) {
	if inst.relbrBits == 0 {
		return 0, false
	}

	target := pc + uint64(len(inst.code)) + uint64(inst.relbr)
	if inst.state.Long64() {
		return target, true
	}

	switch inst.eosz {
	case 16:
		target &= 0xffff
	case 32:
		target &= 0xffff_ffff
	}

	return target, true
}

// RFLAGSInfo returns the instruction's
// effect on the flags, if it has any.
func (inst *Inst) RFLAGSInfo() (*SimpleFlag, bool) {
	return inst.form.Flags()
}

// UsesRFLAGS reports whether the
// instruction reads or writes the
// architectural flags.
//
// Shifts and rotates by an immediate
// count of zero leave the flags alone.
func (inst *Inst) UsesRFLAGS() bool {
	flags := inst.form.flags
	if flags == nil || flags.x87Only() {
		return false
	}

	if inst.form.Has(AttrFlagsDependOnCount) {
		if v, ok := inst.immediate(); ok && v.op.kind == kindImm {
			mask := uint64(0x1f)
			if inst.eosz == 64 {
				mask = 0x3f
			}

			if v.imm&mask == 0 {
				return false
			}
		}
	}

	return true
}

// IsXacquire reports whether an F2 prefix
// starts a hardware lock elision region.
func (inst *Inst) IsXacquire() bool {
	return inst.rep == x86.PrefixRepeatNot &&
		inst.Has(AttrHLEAcqAble) &&
		(inst.lock || inst.Has(AttrLocked))
}

// IsXrelease reports whether an F3 prefix
// ends a hardware lock elision region.
func (inst *Inst) IsXrelease() bool {
	return inst.rep == x86.PrefixRepeat &&
		inst.Has(AttrHLERelAble) &&
		(inst.lock || inst.Has(AttrLocked) || !inst.Has(AttrLockable))
}

// EffectiveOperandSize returns the
// effective operand size in bits.
func (inst *Inst) EffectiveOperandSize() int { return inst.eosz }

// EffectiveAddressSize returns the
// effective address size in bits.
func (inst *Inst) EffectiveAddressSize() int { return inst.easz }

// OperandWidth returns the operand width
// in bits, which is 8 for byte operations
// and the effective operand size
// otherwise.
func (inst *Inst) OperandWidth() int {
	if inst.Has(AttrByteOp) {
		return 8
	}

	return inst.eosz
}

// MachineModeBits returns the code size
// of the decoding mode.
func (inst *Inst) MachineModeBits() int { return inst.state.mode.CodeSize() }

// StackAddressModeBits returns the stack
// address width of the decoding state.
func (inst *Inst) StackAddressModeBits() int { return int(inst.state.width) }

// VectorLengthBits returns the vector
// length in bits, or zero for instructions
// with no vector operands.
func (inst *Inst) VectorLengthBits() int { return inst.vl }

// AVX512DestElements returns the number of
// elements in a vector destination.
func (inst *Inst) AVX512DestElements() int {
	if inst.nops == 0 {
		return 0
	}

	return inst.operands[0].Elements()
}

// Masking reports whether an EVEX opmask
// selects the elements written.
func (inst *Inst) Masking() bool {
	return inst.space == x86.SpaceEVEX &&
		inst.form.hasMask &&
		inst.evex.AAA() != 0 &&
		!inst.Has(AttrMaskAsControl)
}

// destIsOpmask reports whether the first
// operand is an opmask register.
func (inst *Inst) destIsOpmask() bool {
	return inst.nops > 0 && inst.operands[0].op.kind == kindOpmask
}

// Merging reports whether unselected
// elements keep their previous value.
func (inst *Inst) Merging() bool {
	return inst.Masking() && !inst.evex.Z() && !inst.destIsOpmask()
}

// Zeroing reports whether unselected
// elements are zeroed.
func (inst *Inst) Zeroing() bool {
	return inst.Masking() && (inst.evex.Z() || inst.destIsOpmask())
}

// MaskedVectorOperation reports whether
// the instruction uses a non-k0 opmask,
// including as a control input.
func (inst *Inst) MaskedVectorOperation() bool {
	return inst.space == x86.SpaceEVEX && inst.form.hasMask && inst.evex.AAA() != 0
}

// UsesEmbeddedBroadcast reports whether
// the memory operand is broadcast by
// EVEX.b.
func (inst *Inst) UsesEmbeddedBroadcast() bool { return inst.bcst }

// IsBroadcastInstruction reports whether
// the instruction is a dedicated broadcast
// instruction.
func (inst *Inst) IsBroadcastInstruction() bool {
	return inst.form.category == CategoryBroadcast
}

// IsBroadcast reports whether the
// instruction broadcasts by either means.
func (inst *Inst) IsBroadcast() bool {
	return inst.UsesEmbeddedBroadcast() || inst.IsBroadcastInstruction()
}

// ConditionallyWritesRegisters reports
// whether any register operand is written
// only under some conditions.
func (inst *Inst) ConditionallyWritesRegisters() bool {
	for _, v := range inst.operands[:inst.nops] {
		if v.register != nil && v.action.ConditionalWrite() {
			return true
		}
	}

	return false
}

// IsPrefetch reports whether the
// instruction is a prefetch.
func (inst *Inst) IsPrefetch() bool { return inst.Has(AttrPrefetch) }

// InputChip returns the chip whose feature
// mask was used to decode the instruction,
// if any.
func (inst *Inst) InputChip() (Chip, bool) {
	return inst.chip, inst.chip != ChipInvalid
}

// ValidForChip reports whether the chip
// supports the instruction.
func (inst *Inst) ValidForChip(chip Chip) bool {
	mask := FeatureMaskFromChip(chip)
	return mask.Has(inst.form.isa)
}

func (inst *Inst) String() string {
	var b strings.Builder
	b.WriteString(inst.form.iform.String())
	for i, v := range inst.operands[:inst.nops] {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}

		b.WriteString(v.String())
	}

	return b.String()
}

// OperandValue is an operand of a decoded
// instruction.
type OperandValue struct {
	op       *Operand
	action   Action
	bits     int
	register *x86.Register
	memory   *MemoryOperand
	imm      uint64
}

func (v *OperandValue) Template() *Operand         { return v.op }
func (v *OperandValue) Name() OperandName          { return v.op.name }
func (v *OperandValue) Visibility() Visibility     { return v.op.visibility }
func (v *OperandValue) Register() *x86.Register    { return v.register }
func (v *OperandValue) IsRegister() bool           { return v.register != nil }
func (v *OperandValue) IsMemory() bool             { return v.memory != nil }
func (v *OperandValue) IsImmediate() bool          { return v.op.name == OperandImm0 || v.op.name == OperandImm1 }
func (v *OperandValue) IsBranchDisplacement() bool { return v.op.name == OperandRelbr }

// Action returns how the operand is
// accessed. Merge masking makes a
// written destination read and
// conditionally written.
func (v *OperandValue) Action() (Action, bool) {
	return v.action, v.action != ActionInvalid
}

// Memory returns the memory reference, if
// the operand has one.
func (v *OperandValue) Memory() (*MemoryOperand, bool) {
	return v.memory, v.memory != nil
}

// Immediate returns the raw value of an
// immediate or branch displacement.
func (v *OperandValue) Immediate() uint64 { return v.imm }

// Bits returns the operand's width in
// bits, once the effective sizes are
// applied.
func (v *OperandValue) Bits() int { return v.bits }

// ElementType returns the type of the
// operand's elements, if known.
func (v *OperandValue) ElementType() (ElementType, bool) {
	return v.op.ElementType()
}

// ElementBits returns the size of each
// element in bits.
func (v *OperandValue) ElementBits() int {
	if v.op.elemBits != 0 {
		return v.op.elemBits
	}

	if v.op.elemType != ElementInvalid {
		return v.bits
	}

	return 0
}

// Elements returns the number of elements
// in the operand.
func (v *OperandValue) Elements() int {
	elem := v.ElementBits()
	if elem == 0 || v.bits == 0 {
		return 0
	}

	if v.bits < elem {
		return 1
	}

	return v.bits / elem
}

func (v *OperandValue) String() string {
	switch {
	case v.register != nil:
		return v.register.Name
	case v.memory != nil:
		return v.memory.String()
	case v.op.name == OperandRelbr:
		return fmt.Sprintf("%#x", int64(v.imm))
	}

	return fmt.Sprintf("%#x", v.imm)
}

// MemoryOperand is a memory reference
// made by a decoded instruction.
type MemoryOperand struct {
	x86.Memory

	op          *Operand
	action      Action
	bits        int
	addressBits int
	segment     *x86.Register // Used without an override.
}

// Name returns the name of the operand.
func (m *MemoryOperand) Name() OperandName { return m.op.name }

// IsAgen reports whether the operand is
// an address computation with no memory
// access.
func (m *MemoryOperand) IsAgen() bool { return m.op.kind == kindAgen }

// EffectiveSegment returns the segment the
// reference uses, after any override. It
// is nil for flat references in 64-bit
// mode.
func (m *MemoryOperand) EffectiveSegment() *x86.Register {
	if m.Segment != nil {
		return m.Segment
	}

	return m.segment
}

// Bits returns the size of the access in
// bits. Broadcasts access one element.
func (m *MemoryOperand) Bits() int { return m.bits }

// Length returns the size of the access
// in bytes.
func (m *MemoryOperand) Length() int { return m.bits / 8 }

// AddressWidth returns the width of the
// address computation in bits.
func (m *MemoryOperand) AddressWidth() int { return m.addressBits }

func (m *MemoryOperand) Action() Action     { return m.action }
func (m *MemoryOperand) Read() bool         { return m.action.Read() }
func (m *MemoryOperand) Written() bool      { return m.action.Written() }
func (m *MemoryOperand) WrittenOnly() bool  { return m.action.WrittenOnly() }
func (m *MemoryOperand) Template() *Operand { return m.op }

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"firefly-os.dev/xed/x86"
)

// 16-bit addressing, indexed by ModR/M.rm.
var (
	base16  = [8]uint8{3, 3, 5, 5, 6, 7, 5, 3} // BX, BX, BP, BP, SI, DI, BP, BX.
	index16 = [8]int8{6, 7, 6, 7, -1, -1, -1, -1}
)

// readOperandBytes consumes everything
// after the ModR/M byte: the SIB byte,
// displacement, absolute offset,
// immediates, and branch displacement.
func (d *decoder) readOperandBytes() error {
	f := d.form
	if f.encoding.ModRM && d.modrm.Mod() != 0b11 {
		err := d.readAddress()
		if err != nil {
			return err
		}
	}

	imm := 0
	for _, op := range f.operands {
		switch op.kind {
		case kindMoffs:
			v, err := d.readUint(d.sizes.easz / 8)
			if err != nil {
				return err
			}

			d.moffs = v
		case kindImm:
			bits := op.WidthBits(d.sizes.eosz)
			v, err := d.readUint(bits / 8)
			if err != nil {
				return err
			}

			d.imm[imm] = v
			d.immBits[imm] = bits
			imm++
		case kindRelbr:
			bits := op.WidthBits(d.sizes.eosz)
			v, err := d.readUint(bits / 8)
			if err != nil {
				return err
			}

			d.relbr = signExtend(v, bits)
			d.relbrBits = bits
		}
	}

	if f.encoding.VEXis4 {
		b, err := d.readByte()
		if err != nil {
			return err
		}

		d.is4 = b
	}

	return nil
}

// readAddress parses the memory reference
// described by the ModR/M byte, consuming
// any SIB byte and displacement.
func (d *decoder) readAddress() error {
	var m x86.Memory
	mod, rm := d.modrm.Mod(), d.modrm.RM()
	easz := d.sizes.easz
	disp := 0 // Displacement size in bytes.
	if easz == 16 {
		if mod == 0b00 && rm == 0b110 {
			disp = 2
		} else {
			m.Base = x86.GeneralPurpose(16, base16[rm], false)
			if index16[rm] >= 0 {
				m.Index = x86.GeneralPurpose(16, uint8(index16[rm]), false)
				m.Scale = 1
			}
		}

		switch mod {
		case 0b01:
			disp = 1
		case 0b10:
			disp = 2
		}
	} else {
		switch {
		case rm == 0b100:
			b, err := d.readByte()
			if err != nil {
				return err
			}

			d.sib, d.hasSIB = x86.SIB(b), true
			index := d.sib.Index() | d.x<<3
			if d.form.encoding.VSIB {
				// The index register is a vector,
				// chosen once the operand is known.
				m.Scale = 1 << d.sib.Scale()
			} else if index != 0b100 {
				m.Index = x86.GeneralPurpose(easz, index, true)
				m.Scale = 1 << d.sib.Scale()
			}

			if d.sib.Base() == 0b101 && mod == 0b00 {
				disp = 4
			} else {
				m.Base = x86.GeneralPurpose(easz, d.sib.Base()|d.b<<3, true)
			}
		case rm == 0b101 && mod == 0b00:
			disp = 4
			if d.mode == 64 {
				m.Base = x86.InstructionPointer(easz)
			}
		default:
			m.Base = x86.GeneralPurpose(easz, rm|d.b<<3, true)
		}

		switch mod {
		case 0b01:
			disp = 1
		case 0b10:
			disp = 4
		}
	}

	if disp != 0 {
		v, err := d.readUint(disp)
		if err != nil {
			return err
		}

		m.Displacement = signExtend(v, disp*8)
		m.DisplacementBits = disp * 8
	}

	// EVEX compresses 8-bit displacements.
	if d.space == x86.SpaceEVEX && disp == 1 {
		n, err := d.form.encoding.Tuple.DisplacementScale(d.vl, d.memoryElementBits(), d.embeddedBroadcast())
		if err != nil {
			return ErrGeneralError
		}

		m.Displacement *= n
	}

	d.mem = m

	return nil
}

// memoryElementBits returns the element
// size of the form's memory operand.
func (d *decoder) memoryElementBits() int {
	for _, op := range d.form.operands {
		if op.kind != kindMemory && op.kind != kindVSIB {
			continue
		}

		if op.elemBits != 0 {
			return op.elemBits
		}

		return op.widthBits(&d.sizes)
	}

	return 0
}

// embeddedBroadcast reports whether the
// memory operand is broadcast.
func (d *decoder) embeddedBroadcast() bool {
	return d.space == x86.SpaceEVEX && d.evex.Br() && !d.register() && d.form.hasBroadcast
}

// merging reports whether an EVEX opmask
// merges into the destination.
func (d *decoder) merging() bool {
	f := d.form
	return d.space == x86.SpaceEVEX &&
		f.hasMask &&
		d.evex.AAA() != 0 &&
		!d.evex.Z() &&
		!f.Has(AttrMaskAsControl)
}

func (d *decoder) newInst() *Inst {
	return &Inst{
		form:      d.form,
		state:     d.state,
		space:     d.space,
		nprefixes: d.nprefixes,
		lock:      d.lock,
		osz:       d.osz,
		asz:       d.asz,
		rep:       d.rep,
		seg:       d.seg,
		rex:       d.rex,
		hasREX:    d.hasREX,
		vex:       d.vex,
		evex:      d.evex,
		modrm:     d.modrm,
		hasModRM:  d.form.encoding.ModRM,
		eosz:      d.sizes.eosz,
		easz:      d.sizes.easz,
		vl:        d.vl,
		bcst:      d.embeddedBroadcast(),
		relbr:     d.relbr,
		relbrBits: d.relbrBits,
	}
}

// registerNumber returns the register
// number encoded for op.
func (d *decoder) registerNumber(op *Operand) uint8 {
	switch op.encoding {
	case EncodingModRMreg:
		return d.modrm.Reg() | d.r<<3 | d.rp<<4
	case EncodingModRMrm:
		n := d.modrm.RM() | d.b<<3
		if d.space == x86.SpaceEVEX && op.kind == kindVector {
			n |= d.x << 4
		}

		return n
	case EncodingRegisterModifier:
		return d.opcode&0b111 | d.b<<3
	case EncodingVEXvvvv:
		return d.vvvv
	case EncodingVEXis4:
		n := d.is4 >> 4
		if d.mode != 64 {
			n &= 0b111
		}

		return n
	case EncodingEVEXaaa:
		return d.evex.AAA()
	case EncodingStackIndex:
		return d.modrm.RM()
	}

	return 0
}

// defaultSegment returns the segment used
// by a memory reference with no override.
func (d *decoder) defaultSegment(base *x86.Register) *x86.Register {
	if d.mode == 64 {
		return nil
	}

	if base != nil && base.Type == x86.TypeGeneralPurpose && (base.Num == 4 || base.Num == 5) {
		return x86.SS
	}

	return x86.DS
}

// resolveOperands turns the form's
// operand templates into the registers,
// memory references, and values they
// select.
func (d *decoder) resolveOperands(inst *Inst) error {
	f := d.form
	if d.space != x86.SpaceLegacy && !f.usesVVVV && d.vvvv&0b1111 != 0 {
		return ErrBadRegister
	}

	override := d.seg.Segment()
	imm := 0
	inst.nops = len(f.operands)
	for i, op := range f.operands {
		v := &inst.operands[i]
		v.op = op
		v.action = op.action
		v.bits = op.widthBits(&d.sizes)

		switch op.kind {
		case kindGPR:
			reg := x86.GeneralPurpose(v.bits, d.registerNumber(op), d.hasREX)
			if reg == nil {
				return ErrBadRegister
			}

			v.register = reg
		case kindVector:
			reg := x86.Vector(v.bits, d.registerNumber(op))
			if reg == nil {
				return ErrBadRegister
			}

			v.register = reg
		case kindMMX:
			v.register = x86.MMX(d.registerNumber(op) & 0b111)
		case kindTile:
			v.register = x86.Tile(d.registerNumber(op) & 0b111)
		case kindOpmask:
			n := d.registerNumber(op)
			switch op.encoding {
			case EncodingModRMrm:
				n &= 0b111
			case EncodingEVEXaaa:
				if n == 0 && f.Has(AttrGather) {
					return ErrBadRegister
				}
			}

			if n >= 8 {
				return ErrBadRegister
			}

			v.register = x86.Opmask(n)
		case kindSegment:
			n := d.modrm.Reg()
			if n > 5 || (n == 1 && op.action.Written()) {
				return ErrBadRegister
			}

			v.register = x86.Segment(n)
		case kindControl:
			n := d.modrm.Reg() | d.r<<3
			switch n {
			case 0, 2, 3, 4, 8:
			default:
				return ErrBadRegister
			}

			v.register = x86.Control(n)
		case kindDebug:
			n := d.modrm.Reg() | d.r<<3
			if n >= 8 {
				return ErrBadRegister
			}

			v.register = x86.Debug(n)
		case kindX87:
			v.register = x86.X87(d.modrm.RM())
		case kindFixed:
			v.register = op.register
		case kindFamily:
			switch op.regType {
			case x86.TypeInstructionPointer:
				v.register = x86.InstructionPointer(v.bits)
			case x86.TypeFlags:
				v.register = x86.Flags(v.bits)
			default:
				v.register = x86.GeneralPurpose(v.bits, op.num, true)
			}
		case kindMemory, kindAgen, kindVSIB:
			m := d.mem
			m.Segment = override
			if op.kind == kindVSIB && d.hasSIB {
				index := d.sib.Index() | d.x<<3
				if d.space == x86.SpaceEVEX {
					index |= d.vp << 4
				}

				m.Index = x86.Vector(op.indexBits, index)
			}

			bits := v.bits
			if op.bcstBits != 0 && inst.bcst {
				bits = op.bcstBits
			}

			v.bits = bits
			v.memory = inst.addMemory(op, m, bits, d.sizes.easz, d.defaultSegment(m.Base))
		case kindMoffs:
			m := x86.Memory{
				Segment:          override,
				Displacement:     int64(d.moffs),
				DisplacementBits: d.sizes.easz,
			}

			v.memory = inst.addMemory(op, m, v.bits, d.sizes.easz, d.defaultSegment(nil))
		case kindString:
			m := x86.Memory{
				Segment: override,
				Base:    x86.GeneralPurpose(d.sizes.easz, 6, true),
			}

			if op.stringDst {
				m.Segment = x86.ES
				m.Base = x86.GeneralPurpose(d.sizes.easz, 7, true)
			}

			v.memory = inst.addMemory(op, m, v.bits, d.sizes.easz, x86.DS)
		case kindStack:
			m := x86.Memory{
				Base: x86.GeneralPurpose(d.sizes.stack, 4, true),
			}

			v.memory = inst.addMemory(op, m, v.bits, d.sizes.stack, x86.SS)
		case kindImm:
			v.imm = d.imm[imm]
			imm++
		case kindImmConst:
			v.imm = 1
		case kindRelbr:
			v.imm = uint64(d.relbr)
		}
	}

	// Merge masking keeps the unselected
	// elements of the destination.
	if inst.nops > 0 && d.merging() {
		v := &inst.operands[0]
		switch v.op.kind {
		case kindVector, kindMemory:
			if v.action.Written() {
				v.action = ActionRCW
				if v.memory != nil {
					v.memory.action = ActionRCW
				}
			}
		}
	}

	return nil
}

// checkOperands applies the checks that
// need the resolved operands.
func (d *decoder) checkOperands(inst *Inst) error {
	f := d.form
	if f.encoding.VSIB && (!d.hasSIB || d.sizes.easz == 16) {
		return ErrBadMemopIndex
	}

	if f.Has(AttrGather) {
		var dest, index, mask *x86.Register
		for i := range inst.operands[:inst.nops] {
			v := &inst.operands[i]
			switch {
			case i == 0:
				dest = v.register
			case v.op.kind == kindVSIB:
				index = v.memory.Index
			case v.op.encoding == EncodingVEXvvvv:
				mask = v.register
			}
		}

		if dest != nil && index != nil {
			if dest.Num == index.Num {
				return ErrGatherRegs
			}

			if d.space == x86.SpaceVEX && mask != nil && (mask.Num == dest.Num || mask.Num == index.Num) {
				return ErrGatherRegs
			}
		}
	}

	if f.Has(AttrAMXDistinctTiles) {
		var seen [8]bool
		for _, v := range inst.operands[:inst.nops] {
			if v.op.kind != kindTile {
				continue
			}

			if seen[v.register.Num] {
				return ErrBadRegMatch
			}

			seen[v.register.Num] = true
		}
	}

	return nil
}

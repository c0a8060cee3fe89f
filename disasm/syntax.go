// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package disasm

import (
	"strings"

	"firefly-os.dev/xed"
	"firefly-os.dev/xed/x86"
)

// intelSizes names memory access sizes
// in Intel syntax.
var intelSizes = map[int]string{
	8:   "byte",
	16:  "word",
	32:  "dword",
	48:  "fword",
	64:  "qword",
	80:  "tbyte",
	128: "xmmword",
	256: "ymmword",
	512: "zmmword",
}

// decorations returns the opmask and
// zeroing decorations for the mask
// operand, or an empty string if none
// are shown.
func (p *printer) decorations(v *xed.OperandValue, sigil string) string {
	reg := v.Register()
	if reg == nil || (reg.Num == 0 && !p.opts.WriteMaskCurlyK0) {
		return ""
	}

	s := "{" + sigil + reg.Name + "}"
	dst, ok := p.inst.Operand(0)
	toMask := ok && dst.Register() != nil && dst.Register().Type == x86.TypeOpmask
	if p.inst.Zeroing() && !toMask {
		s += "{z}"
	}

	return s
}

// displacement returns the displacement of
// a memory reference with a base or index,
// including its sign, or an empty string.
func (p *printer) displacement(m *xed.MemoryOperand, plus string) string {
	switch {
	case m.Displacement == 0:
		return ""
	case m.Displacement < 0 && !p.opts.PositiveMemoryDisplacement:
		return p.signedHex(m.Displacement)
	}

	return plus + p.hex(mask(uint64(m.Displacement), m.AddressWidth()))
}

func (p *printer) intel() {
	p.b.WriteString(p.mnemonic())
	var ops []string
	for i := range p.inst.Operands() {
		if p.failed() {
			return
		}

		v, _ := p.inst.Operand(i)
		if v.Visibility() == xed.VisibilitySuppressed {
			continue
		}

		if isMask(v) {
			if len(ops) > 0 {
				ops[len(ops)-1] += p.decorations(v, "")
			}

			continue
		}

		ops = append(ops, p.intelOperand(v))
	}

	if p.failed() {
		return
	}

	for i, op := range ops {
		if i == 0 {
			p.b.WriteByte(' ')
		} else {
			p.b.WriteString(", ")
		}

		p.b.WriteString(op)
	}

	p.finish()
}

func (p *printer) intelOperand(v *xed.OperandValue) string {
	if reg := v.Register(); reg != nil {
		return reg.Name
	}

	if m, ok := v.Memory(); ok {
		return p.intelMemory(v, m)
	}

	if v.IsBranchDisplacement() {
		return p.branch()
	}

	return p.hex(p.immediate(v))
}

// intelAddress returns the bracketed
// address of a memory reference.
func (p *printer) intelAddress(m *xed.MemoryOperand) string {
	var b strings.Builder
	if seg := p.segment(m); seg != "" {
		b.WriteString(seg)
		b.WriteByte(':')
	}

	b.WriteByte('[')
	if m.Base == nil && m.Index == nil {
		b.WriteString(p.hex(mask(uint64(m.Displacement), m.AddressWidth())))
		b.WriteByte(']')
		return b.String()
	}

	if m.Base != nil {
		b.WriteString(m.Base.Name)
	}

	if m.Index != nil {
		if m.Base != nil {
			b.WriteByte('+')
		}

		b.WriteString(m.Index.Name)
		if m.Scale != 1 || !p.opts.OmitUnitScale {
			b.WriteByte('*')
			b.WriteByte('0' + m.Scale)
		}
	}

	b.WriteString(p.displacement(m, "+"))
	b.WriteByte(']')

	return b.String()
}

func (p *printer) intelMemory(v *xed.OperandValue, m *xed.MemoryOperand) string {
	p.ripRelative(m)
	addr := p.intelAddress(m)
	if m.IsAgen() {
		return addr
	}

	size, ok := intelSizes[m.Bits()]
	if !ok {
		return addr + p.broadcast(v, m)
	}

	return size + " ptr " + addr + p.broadcast(v, m)
}

// attSuffixes are the mnemonic suffixes
// for memory access sizes in AT&T syntax.
var attSuffixes = map[int]string{
	8:  "b",
	16: "w",
	32: "l",
	64: "q",
}

// attSuffix returns the size suffix for the
// mnemonic. A suffix is only used when the
// instruction accesses memory and has no
// register operands other than general
// purpose registers.
func (p *printer) attSuffix() string {
	var suffix string
	for _, v := range p.inst.Operands() {
		if v.Visibility() == xed.VisibilitySuppressed {
			continue
		}

		if reg := v.Register(); reg != nil && reg.Type != x86.TypeGeneralPurpose {
			return ""
		}

		m, ok := v.Memory()
		if !ok || m.IsAgen() || v.Visibility() != xed.VisibilityExplicit || p.inst.UsesEmbeddedBroadcast() {
			continue
		}

		suffix = attSuffixes[m.Bits()]
	}

	return suffix
}

func (p *printer) att() {
	p.b.WriteString(p.mnemonic())
	p.b.WriteString(p.attSuffix())
	var ops []string
	for i := range p.inst.Operands() {
		if p.failed() {
			return
		}

		v, _ := p.inst.Operand(i)
		if v.Visibility() == xed.VisibilitySuppressed {
			continue
		}

		if isMask(v) {
			if len(ops) > 0 {
				ops[len(ops)-1] += p.decorations(v, "%")
			}

			continue
		}

		ops = append(ops, p.attOperand(v))
	}

	if p.failed() {
		return
	}

	for i := range ops {
		if i == 0 {
			p.b.WriteByte(' ')
		} else {
			p.b.WriteString(", ")
		}

		p.b.WriteString(ops[len(ops)-1-i])
	}

	p.finish()
}

func (p *printer) attOperand(v *xed.OperandValue) string {
	if reg := v.Register(); reg != nil {
		return "%" + reg.Name
	}

	if m, ok := v.Memory(); ok {
		return p.attMemory(v, m)
	}

	if v.IsBranchDisplacement() {
		return p.branch()
	}

	return "$" + p.hex(p.immediate(v))
}

func (p *printer) attMemory(v *xed.OperandValue, m *xed.MemoryOperand) string {
	p.ripRelative(m)
	var b strings.Builder
	if seg := p.segment(m); seg != "" {
		b.WriteString("%" + seg + ":")
	}

	if m.Base == nil && m.Index == nil {
		b.WriteString(p.hex(mask(uint64(m.Displacement), m.AddressWidth())))
		b.WriteString(p.broadcast(v, m))
		return b.String()
	}

	b.WriteString(p.displacement(m, ""))
	b.WriteByte('(')
	if m.Base != nil {
		b.WriteString("%" + m.Base.Name)
	}

	if m.Index != nil {
		b.WriteString(",%" + m.Index.Name)
		if m.Scale != 1 || !p.opts.OmitUnitScale {
			b.WriteByte(',')
			b.WriteByte('0' + m.Scale)
		}
	}

	b.WriteByte(')')
	b.WriteString(p.broadcast(v, m))

	return b.String()
}

// visibilityTags abbreviate the visibility
// of operands not written in assembly.
var visibilityTags = map[xed.Visibility]string{
	xed.VisibilityImplicit:   ":IMPL",
	xed.VisibilitySuppressed: ":SUPP",
}

func (p *printer) xed() {
	p.b.WriteString(p.inst.IForm().String())
	for i := range p.inst.Operands() {
		if p.failed() {
			return
		}

		v, _ := p.inst.Operand(i)
		var text string
		switch {
		case v.Register() != nil:
			text = v.Register().Name
		case v.IsMemory():
			m, _ := v.Memory()
			text = p.intelMemory(v, m)
		case v.IsBranchDisplacement():
			text = p.branch()
		default:
			text = p.hex(p.immediate(v))
		}

		if p.failed() {
			return
		}

		p.b.WriteByte(' ')
		p.b.WriteString(v.Name().String())
		p.b.WriteByte('=')
		p.b.WriteString(text)
		if action, ok := v.Action(); ok {
			p.b.WriteByte(':')
			p.b.WriteString(action.String())
		}

		p.b.WriteString(visibilityTags[v.Visibility()])
	}

	p.finish()
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package disasm renders decoded instructions as
// assembly text.
//
// Three syntaxes are supported. Intel syntax
// follows the Intel manuals, with operands in
// destination-first order and memory sizes
// spelled out, as in:
//
//	lzcnt edx, dword ptr [rdi]
//
// AT&T syntax reverses the operand order and
// uses sigils and size suffixes:
//
//	lzcntl (%rdi), %edx
//
// XED syntax names the instruction form and
// lists every operand, including those that
// are not written in assembly:
//
//	LZCNT_GPRv_MEMv REG0=edx:w MEM0=dword ptr [rdi]:r REG1=rflags:w:SUPP
//
// Addresses can be shown symbolically by
// providing a [Resolver].
package disasm

import (
	"fmt"
	"strconv"
	"strings"

	"firefly-os.dev/xed"
	"firefly-os.dev/xed/x86"
)

// Syntax is an assembly language syntax.
type Syntax uint8

const (
	SyntaxIntel Syntax = iota
	SyntaxATT
	SyntaxXED
)

var syntaxNames = [...]string{
	SyntaxIntel: "intel",
	SyntaxATT:   "att",
	SyntaxXED:   "xed",
}

func (s Syntax) String() string {
	if int(s) < len(syntaxNames) {
		return syntaxNames[s]
	}

	return fmt.Sprintf("Syntax(%d)", uint8(s))
}

// ParseSyntax returns the syntax with the
// given name.
func ParseSyntax(name string) (Syntax, error) {
	for s, n := range syntaxNames {
		if n == strings.ToLower(name) {
			return Syntax(s), nil
		}
	}

	return 0, fmt.Errorf("invalid syntax %q: want intel, att, or xed", name)
}

// Options control how an instruction is
// formatted.
type Options struct {
	Syntax Syntax

	// Address is the runtime address of the
	// instruction, used to compute branch
	// targets and RIP-relative addresses.
	Address uint64

	// Resolver, if not nil, is used to
	// show addresses symbolically.
	Resolver Resolver

	// HexAddressBeforeSymbol shows the
	// numeric address before any symbol.
	HexAddressBeforeSymbol bool

	// WriteMaskCurlyK0 shows {k0} when an
	// EVEX instruction is unmasked.
	WriteMaskCurlyK0 bool

	LowercaseHex bool

	// PositiveMemoryDisplacement shows
	// negative displacements as their two's
	// complement, truncated to the address
	// width.
	PositiveMemoryDisplacement bool

	// OmitUnitScale leaves out an index
	// scale of one.
	OmitUnitScale bool

	// SignExtendSignedImmediates shows
	// sign-extended immediates at the
	// operand width, rather than as they
	// were encoded.
	SignExtendSignedImmediates bool
}

// DefaultOptions returns the options used
// when none are given.
func DefaultOptions() Options {
	return Options{
		LowercaseHex:               true,
		SignExtendSignedImmediates: true,
	}
}

// Format returns the assembly text for the
// instruction. If opts is nil, the default
// options are used.
//
// Format only fails if the resolver does.
// The first resolver error stops formatting
// and is returned. If the resolver panics,
// Format stops formatting and panics with
// the same value.
func Format(inst *xed.Inst, opts *Options) (string, error) {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}

	p := &printer{inst: inst, opts: opts}
	switch opts.Syntax {
	case SyntaxIntel:
		p.intel()
	case SyntaxATT:
		p.att()
	case SyntaxXED:
		p.xed()
	default:
		return "", fmt.Errorf("invalid syntax %s", opts.Syntax)
	}

	if p.fault != nil {
		panic(p.fault.value)
	}

	if p.err != nil {
		return "", p.err
	}

	return p.b.String(), nil
}

// fault holds a value recovered from a
// panicking resolver.
type fault struct {
	value any
}

// printer holds the state for formatting
// one instruction.
type printer struct {
	inst *xed.Inst
	opts *Options
	b    strings.Builder
	sym  SymbolBuffer

	err   error
	fault *fault

	// A comment to append, such as the
	// symbol for a RIP-relative address.
	comment string
}

// failed reports whether the resolver has
// failed, in which case formatting stops.
func (p *printer) failed() bool {
	return p.err != nil || p.fault != nil
}

// resolve looks up the symbol for addr,
// returning its text, if any.
func (p *printer) resolve(addr uint64) (string, bool) {
	if p.opts.Resolver == nil || p.failed() {
		return "", false
	}

	p.sym.Reset()
	offset, found, err := p.call(addr)
	if p.fault != nil {
		return "", false
	}

	if err != nil {
		p.err = fmt.Errorf("failed to resolve symbol for %s: %w", p.hex(addr), err)
		return "", false
	}

	if !found {
		return "", false
	}

	var b strings.Builder
	if p.opts.HexAddressBeforeSymbol {
		b.WriteString(p.hex(addr))
		b.WriteByte(' ')
	}

	b.WriteByte('<')
	b.WriteString(p.sym.String())
	if offset != 0 {
		b.WriteByte('+')
		b.WriteString(p.hex(offset))
	}

	b.WriteByte('>')

	return b.String(), true
}

// call invokes the resolver, catching
// any panic.
func (p *printer) call(addr uint64) (offset uint64, found bool, err error) {
	defer func() {
		if v := recover(); v != nil {
			p.fault = &fault{value: v}
		}
	}()

	return p.opts.Resolver.Resolve(addr, &p.sym)
}

// hex formats v as a hexadecimal number.
func (p *printer) hex(v uint64) string {
	s := strconv.FormatUint(v, 16)
	if !p.opts.LowercaseHex {
		s = strings.ToUpper(s)
	}

	return "0x" + s
}

// signedHex formats v with a leading
// sign when it is negative.
func (p *printer) signedHex(v int64) string {
	if v < 0 {
		return "-" + p.hex(uint64(-v))
	}

	return p.hex(uint64(v))
}

// mask returns v truncated to the given
// number of bits.
func mask(v uint64, bits int) uint64 {
	if bits <= 0 || bits >= 64 {
		return v
	}

	return v & (1<<bits - 1)
}

// signExtend sign-extends the low bits
// of v.
func signExtend(v uint64, bits int) int64 {
	if bits <= 0 || bits >= 64 {
		return int64(v)
	}

	shift := 64 - bits
	return int64(v<<shift) >> shift
}

// mnemonics maps iclasses to mnemonics,
// where they differ.
var mnemonics = map[string]string{
	"call_near": "call",
	"ret_near":  "ret",
	"mov_cr":    "mov",
	"mov_dr":    "mov",
}

// mnemonic returns the lower-case mnemonic
// with any prefixes, such as "lock add".
func (p *printer) mnemonic() string {
	inst := p.inst
	name := strings.ToLower(inst.IClass().String())
	if short, ok := mnemonics[name]; ok {
		name = short
	}

	repeat := false
	for _, prefix := range []string{"rep_", "repe_", "repne_"} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			name = strings.TrimSuffix(prefix, "_") + " " + rest
			repeat = true
			break
		}
	}

	var b strings.Builder
	switch {
	case inst.IsXacquire():
		b.WriteString("xacquire ")
	case inst.IsXrelease():
		b.WriteString("xrelease ")
	case !repeat && inst.RepPrefix() != 0:
		b.WriteString(inst.RepPrefix().String())
		b.WriteByte(' ')
	}

	if inst.LockPrefix() {
		b.WriteString("lock ")
	}

	b.WriteString(name)

	return b.String()
}

// isMask reports whether the operand is an
// EVEX opmask selecting the elements written.
func isMask(v *xed.OperandValue) bool {
	return v.Template().Encoding() == xed.EncodingEVEXaaa
}

// immediate returns the value of an
// immediate operand, as it is shown.
func (p *printer) immediate(v *xed.OperandValue) uint64 {
	val := v.Immediate()
	if v.Template().ImmediateIsSigned() && p.opts.SignExtendSignedImmediates {
		val = mask(uint64(signExtend(val, v.Bits())), p.inst.OperandWidth())
	}

	return val
}

// branch returns the text for a relative
// branch operand.
func (p *printer) branch() string {
	target, _ := p.inst.BranchTarget(p.opts.Address)
	if sym, ok := p.resolve(target); ok {
		return sym
	}

	return p.hex(target)
}

// ripRelative notes the symbol for a
// RIP-relative memory reference in the
// comment, if one is found.
func (p *printer) ripRelative(m *xed.MemoryOperand) {
	if m.Base == nil || m.Base.Type != x86.TypeInstructionPointer || m.Index != nil {
		return
	}

	addr := p.opts.Address + uint64(p.inst.Length()) + uint64(m.Displacement)
	addr = mask(addr, m.AddressWidth())
	if sym, ok := p.resolve(addr); ok {
		p.comment = sym
	}
}

// segment returns the segment override
// used by a memory operand, or nil.
func (p *printer) segment(m *xed.MemoryOperand) string {
	prefix := p.inst.SegmentPrefix()
	if m.Segment == nil || prefix == 0 || m.Segment != prefix.Segment() {
		return ""
	}

	return m.Segment.Name
}

// broadcast returns the {1toN} decoration
// for a broadcast memory operand.
func (p *printer) broadcast(v *xed.OperandValue, m *xed.MemoryOperand) string {
	if !p.inst.UsesEmbeddedBroadcast() || !v.Template().IsBroadcastable() || m.Bits() == 0 {
		return ""
	}

	return fmt.Sprintf("{1to%d}", p.inst.VectorLengthBits()/m.Bits())
}

// finish appends any comment.
func (p *printer) finish() {
	if p.comment != "" && !p.failed() {
		p.b.WriteString(" # ")
		p.b.WriteString(p.comment)
	}
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"fmt"
	"strconv"
	"strings"

	"firefly-os.dev/xed/x86"
)

// MaxOperands is the largest number of
// operands in any instruction form.
const MaxOperands = 10

// OperandEncoding represents a way in
// which an instruction's operand is
// encoded (or not) in the machine code.
type OperandEncoding uint8

const (
	_                        OperandEncoding = iota
	EncodingImplicit                         // The operand is not encoded.
	EncodingVEXvvvv                          // The operand is encoded in the VEX.vvvv field of the machine code.
	EncodingRegisterModifier                 // The operand is encoded in the opcode byte.
	EncodingStackIndex                       // The operand is an x87 stack index, encoded in ModR/M.rm.
	EncodingCodeOffset                       // The operand is encoded as a code offset after the opcode.
	EncodingModRMreg                         // The operand is encoded in the ModR/M.reg field of the machine code.
	EncodingModRMrm                          // The operand is encoded in the ModR/M.rm field of the machine code.
	EncodingSIB                              // The operand is encoded in a vector SIB byte.
	EncodingDisplacement                     // The operand is encoded in the displacement field of the machine code.
	EncodingImmediate                        // The operand is encoded in the immediate field of the machine code.
	EncodingVEXis4                           // The operand is encoded in the VEX /is4 immediate byte.
	EncodingEVEXaaa                          // The operand is encoded in the EVEX.aaa field of the machine code.
)

func (e OperandEncoding) String() string {
	switch e {
	case EncodingImplicit:
		return "implicit"
	case EncodingVEXvvvv:
		return "VEX.vvvv"
	case EncodingRegisterModifier:
		return "register modifier"
	case EncodingStackIndex:
		return "stack index"
	case EncodingCodeOffset:
		return "code offset"
	case EncodingModRMreg:
		return "ModR/M reg"
	case EncodingModRMrm:
		return "ModR/M r/m"
	case EncodingSIB:
		return "SIB"
	case EncodingDisplacement:
		return "displacement"
	case EncodingImmediate:
		return "immediate"
	case EncodingVEXis4:
		return "VEX /is4"
	case EncodingEVEXaaa:
		return "EVEX.aaa"
	default:
		return fmt.Sprintf("OperandEncoding(%d)", e)
	}
}

// operandKind determines how an operand's
// value is found while decoding.
type operandKind uint8

const (
	kindInvalid operandKind = iota
	kindGPR                 // General purpose register from an encoded field.
	kindVector              // XMM, YMM, or ZMM register.
	kindMMX                 // MMX register.
	kindOpmask              // Opmask register.
	kindTile                // AMX tile register.
	kindSegment             // Segment register.
	kindControl             // Control register.
	kindDebug               // Debug register.
	kindX87                 // x87 stack register.
	kindFixed               // One specific register.
	kindFamily              // A register chosen by an effective size, such as rAX.
	kindMemory              // Memory addressed by ModR/M.
	kindVSIB                // Memory addressed by a vector SIB.
	kindMoffs               // Memory at an absolute offset.
	kindString              // String source or destination memory.
	kindStack               // Stack memory pushed or popped.
	kindAgen                // Address generation, with no memory access.
	kindImm                 // Immediate.
	kindImmConst            // Constant immediate.
	kindRelbr               // Relative branch displacement.
)

// widthClass determines how an operand's
// width follows the effective sizes.
type widthClass uint8

const (
	widthFixed widthClass = iota
	widthV                // 16, 32, or 64 bits, by operand size.
	widthZ                // 16 or 32 bits, by operand size.
	widthY                // 32 or 64 bits, by operand size.
	widthA                // 16, 32, or 64 bits, by address size.
	widthS                // 16, 32, or 64 bits, by stack address width.
	widthM                // 16, 32, or 64 bits, by machine mode.
)

// Operand describes one operand in an
// instruction form. Operands are part of
// the shared form table and are read-only.
type Operand struct {
	name       OperandName
	visibility Visibility
	typ        OperandType
	action     Action
	encoding   OperandEncoding
	syntax     string
	kind       operandKind
	width      widthClass
	bits       int
	elemType   ElementType
	elemBits   int
	register   *x86.Register
	regType    x86.RegisterType
	num        uint8
	signed     bool
	bcstBits   int
	indexBits  int
	indexElem  int
	stringDst  bool
}

func (op *Operand) Name() OperandName         { return op.name }
func (op *Operand) Visibility() Visibility    { return op.visibility }
func (op *Operand) Type() OperandType         { return op.typ }
func (op *Operand) Action() Action            { return op.action }
func (op *Operand) Encoding() OperandEncoding { return op.encoding }
func (op *Operand) Syntax() string            { return op.syntax }
func (op *Operand) ElementBits() int          { return op.elemBits }
func (op *Operand) Read() bool                { return op.action.Read() }
func (op *Operand) ReadOnly() bool            { return op.action.ReadOnly() }
func (op *Operand) Written() bool             { return op.action.Written() }
func (op *Operand) WrittenOnly() bool         { return op.action.WrittenOnly() }
func (op *Operand) ReadAndWritten() bool      { return op.action.ReadAndWritten() }
func (op *Operand) ConditionalRead() bool     { return op.action.ConditionalRead() }
func (op *Operand) ConditionalWrite() bool    { return op.action.ConditionalWrite() }
func (op *Operand) IsRegister() bool          { return op.name.IsRegister() }
func (op *Operand) IsMemory() bool            { return op.name.IsMemory() }
func (op *Operand) IsImmediate() bool         { return op.name == OperandImm0 || op.name == OperandImm1 }
func (op *Operand) IsBroadcastable() bool     { return op.bcstBits != 0 }
func (op *Operand) ImmediateIsSigned() bool   { return op.signed }

// ElementType returns the type of each
// element in the operand, if it has one.
func (op *Operand) ElementType() (ElementType, bool) {
	return op.elemType, op.elemType != ElementInvalid
}

// Register returns the register used by
// the operand, if it always uses the same
// register.
func (op *Operand) Register() *x86.Register {
	if op.kind == kindFixed {
		return op.register
	}

	return nil
}

// WidthBits returns the operand's width in
// bits, given the effective operand size.
// Operands whose width follows the address
// size or machine mode report zero.
func (op *Operand) WidthBits(eosz int) int {
	switch op.width {
	case widthFixed:
		return op.bits
	case widthV:
		return eosz
	case widthZ:
		if eosz == 16 {
			return 16
		}

		return 32
	case widthY:
		if eosz == 64 {
			return 64
		}

		return 32
	}

	return 0
}

// widthBits returns the operand's width in
// bits, given the decoder's sizes.
func (op *Operand) widthBits(s *sizes) int {
	switch op.width {
	case widthA:
		return s.easz
	case widthS:
		return s.stack
	case widthM:
		return s.mode
	}

	return op.WidthBits(s.eosz)
}

func (op *Operand) String() string {
	var b strings.Builder
	b.WriteString(op.name.String())
	b.WriteByte('=')
	b.WriteString(op.syntax)
	if op.action != ActionInvalid {
		b.WriteByte(':')
		b.WriteString(op.action.String())
	}

	b.WriteByte(':')
	b.WriteString(op.visibility.String())
	if op.elemType != ElementInvalid {
		fmt.Fprintf(&b, ":%s%d", op.elemType, op.elemBits)
	}

	return b.String()
}

// sizes holds the effective sizes used to
// resolve operand widths, in bits.
type sizes struct {
	eosz  int
	easz  int
	stack int
	mode  int
}

// Parsing of operand templates.
//
// Each template is a syntax followed by
// optional colon-separated modifiers, such
// as "rmrv:rw", "xmm2:r:f32", or "rSP:rw:supp".
//
// Modifiers are an action (r, w, rw, rcw,
// cw, crw, cr), a visibility (expl, impl,
// supp), and an element type (u8-u256,
// i8-i64, f16, f32, f64, f80, bf16, b80,
// struct, var).

var gprSizes = map[string]struct {
	width widthClass
	bits  int
}{
	"8":  {widthFixed, 8},
	"16": {widthFixed, 16},
	"32": {widthFixed, 32},
	"64": {widthFixed, 64},
	"v":  {widthV, 0},
	"y":  {widthY, 0},
	"z":  {widthZ, 0},
}

var families = map[string]struct {
	regType    x86.RegisterType
	num        uint8
	width      widthClass
	visibility Visibility
}{
	"rAX":    {x86.TypeGeneralPurpose, 0, widthV, VisibilityImplicit},
	"rCX":    {x86.TypeGeneralPurpose, 1, widthV, VisibilityImplicit},
	"rDX":    {x86.TypeGeneralPurpose, 2, widthV, VisibilityImplicit},
	"rBX":    {x86.TypeGeneralPurpose, 3, widthV, VisibilityImplicit},
	"rSP":    {x86.TypeGeneralPurpose, 4, widthV, VisibilityImplicit},
	"rBP":    {x86.TypeGeneralPurpose, 5, widthV, VisibilityImplicit},
	"rSI":    {x86.TypeGeneralPurpose, 6, widthV, VisibilityImplicit},
	"rDI":    {x86.TypeGeneralPurpose, 7, widthV, VisibilityImplicit},
	"eAX":    {x86.TypeGeneralPurpose, 0, widthZ, VisibilityImplicit},
	"eDX":    {x86.TypeGeneralPurpose, 2, widthZ, VisibilityImplicit},
	"aCX":    {x86.TypeGeneralPurpose, 1, widthA, VisibilitySuppressed},
	"aSI":    {x86.TypeGeneralPurpose, 6, widthA, VisibilitySuppressed},
	"aDI":    {x86.TypeGeneralPurpose, 7, widthA, VisibilitySuppressed},
	"sSP":    {x86.TypeGeneralPurpose, 4, widthS, VisibilitySuppressed},
	"sBP":    {x86.TypeGeneralPurpose, 5, widthS, VisibilitySuppressed},
	"rIP":    {x86.TypeInstructionPointer, 0, widthM, VisibilitySuppressed},
	"rFLAGS": {x86.TypeFlags, 0, widthS, VisibilitySuppressed},
}

var elementTags = map[string]struct {
	typ  ElementType
	bits int
}{
	"u8":     {ElementUint, 8},
	"u16":    {ElementUint, 16},
	"u32":    {ElementUint, 32},
	"u64":    {ElementUint, 64},
	"u128":   {ElementUint, 128},
	"u256":   {ElementUint, 256},
	"i8":     {ElementInt, 8},
	"i16":    {ElementInt, 16},
	"i32":    {ElementInt, 32},
	"i64":    {ElementInt, 64},
	"f16":    {ElementFloat16, 16},
	"f32":    {ElementSingle, 32},
	"f64":    {ElementDouble, 64},
	"f80":    {ElementLongDouble, 80},
	"bf16":   {ElementBFloat16, 16},
	"b80":    {ElementLongBCD, 80},
	"struct": {ElementStruct, 0},
	"var":    {ElementVariable, 0},
}

// parseOperand parses an operand template.
// The operand's name is assigned later, once
// the form's other operands are known.
func parseOperand(template string) (*Operand, error) {
	parts := strings.Split(template, ":")
	op, err := operandSyntax(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid operand %q: %v", template, err)
	}

	for _, part := range parts[1:] {
		if action, ok := enumByName[Action](actionNames[:], part); ok && action != ActionInvalid {
			if op.action != ActionInvalid {
				return nil, fmt.Errorf("invalid operand %q: multiple actions", template)
			}

			op.action = action
			continue
		}

		switch part {
		case "expl":
			op.visibility = VisibilityExplicit
			continue
		case "impl":
			op.visibility = VisibilityImplicit
			continue
		case "supp":
			op.visibility = VisibilitySuppressed
			continue
		}

		tag, ok := elementTags[part]
		if !ok {
			return nil, fmt.Errorf("invalid operand %q: unknown modifier %q", template, part)
		}

		op.elemType = tag.typ
		op.elemBits = tag.bits
		if op.elemBits == 0 {
			op.elemBits = op.bits
		}
	}

	switch op.kind {
	case kindImm, kindImmConst, kindRelbr, kindAgen:
	default:
		if op.action == ActionInvalid {
			return nil, fmt.Errorf("invalid operand %q: missing action", template)
		}
	}

	if op.kind == kindVSIB {
		if op.elemBits == 0 {
			op.elemType = ElementUint
			op.elemBits = op.indexElem
		}

		op.bits = op.indexBits / op.indexElem * op.elemBits
	}

	if op.elemType == ElementInvalid && op.width == widthFixed && op.bits != 0 {
		switch op.kind {
		case kindGPR, kindFixed, kindFamily, kindMemory, kindMoffs, kindString, kindStack, kindVector, kindMMX, kindOpmask:
			op.elemType = ElementUint
			op.elemBits = op.bits
		}
	}

	if op.elemType == ElementInvalid && op.width != widthFixed {
		switch op.kind {
		case kindGPR, kindFamily, kindMemory, kindMoffs, kindString, kindStack:
			// Sized when decoded.
			op.elemType = ElementUint
		}
	}

	if op.bcstBits != 0 && op.elemBits != op.bcstBits {
		return nil, fmt.Errorf("invalid operand %q: broadcast of %d bits with %d-bit elements", template, op.bcstBits, op.elemBits)
	}

	return op, nil
}

// operandSyntax returns the operand
// described by the syntax, with default
// visibility and no action.
func operandSyntax(syntax string) (*Operand, error) {
	op := &Operand{
		syntax:     syntax,
		visibility: VisibilityExplicit,
		typ:        OperandTypeNTLookupFn,
	}

	if fam, ok := families[syntax]; ok {
		op.kind = kindFamily
		op.encoding = EncodingImplicit
		op.visibility = fam.visibility
		op.regType = fam.regType
		op.num = fam.num
		op.width = fam.width
		return op, nil
	}

	switch syntax {
	case "1":
		op.kind = kindImmConst
		op.typ = OperandTypeImmConst
		op.encoding = EncodingImplicit
		op.bits = 8
		return op, nil
	case "imm8", "imm8u", "imm16", "immz", "immv":
		op.kind = kindImm
		op.typ = OperandTypeImm
		op.encoding = EncodingImmediate
		switch syntax {
		case "imm8":
			op.bits = 8
			op.signed = true
		case "imm8u":
			op.bits = 8
		case "imm16":
			op.bits = 16
		case "immz":
			op.width = widthZ
			op.signed = true
		case "immv":
			op.width = widthV
		}

		return op, nil
	case "rel8", "relz":
		op.kind = kindRelbr
		op.typ = OperandTypeImm
		op.encoding = EncodingCodeOffset
		op.signed = true
		if syntax == "rel8" {
			op.bits = 8
		} else {
			op.width = widthZ
		}

		return op, nil
	case "agen":
		op.kind = kindAgen
		op.typ = OperandTypeImmConst
		op.encoding = EncodingModRMrm
		return op, nil
	case "moffs8", "moffsv":
		op.kind = kindMoffs
		op.typ = OperandTypeImmConst
		op.encoding = EncodingDisplacement
		if syntax == "moffs8" {
			op.bits = 8
		} else {
			op.width = widthV
		}

		return op, nil
	case "src8", "srcv", "dst8", "dstv":
		op.kind = kindString
		op.typ = OperandTypeImmConst
		op.encoding = EncodingImplicit
		op.visibility = VisibilityImplicit
		op.stringDst = strings.HasPrefix(syntax, "dst")
		if strings.HasSuffix(syntax, "8") {
			op.bits = 8
		} else {
			op.width = widthV
		}

		return op, nil
	case "stackv":
		op.kind = kindStack
		op.typ = OperandTypeImmConst
		op.encoding = EncodingImplicit
		op.visibility = VisibilitySuppressed
		op.width = widthV
		return op, nil
	case "{k}":
		op.kind = kindOpmask
		op.encoding = EncodingEVEXaaa
		op.bits = 64
		return op, nil
	case "sreg":
		op.kind = kindSegment
		op.encoding = EncodingModRMreg
		op.bits = 16
		return op, nil
	case "cr", "dr":
		op.kind = kindControl
		if syntax == "dr" {
			op.kind = kindDebug
		}

		op.encoding = EncodingModRMreg
		op.width = widthM
		return op, nil
	case "ST(i)":
		op.kind = kindX87
		op.encoding = EncodingStackIndex
		op.bits = 80
		return op, nil
	case "ST", "ST(0)":
		op.kind = kindFixed
		op.typ = OperandTypeReg
		op.encoding = EncodingImplicit
		op.visibility = VisibilityImplicit
		op.register = x86.ST0
		op.bits = 80
		return op, nil
	}

	// General purpose registers.
	if rest, ok := strings.CutPrefix(syntax, "rmr"); ok {
		if size, ok := gprSizes[rest]; ok {
			op.kind = kindGPR
			op.encoding = EncodingModRMrm
			op.width, op.bits = size.width, size.bits
			return op, nil
		}
	}

	if rest, ok := strings.CutPrefix(syntax, "r"); ok {
		encoding := EncodingModRMreg
		switch {
		case strings.HasSuffix(rest, "op"):
			encoding = EncodingRegisterModifier
			rest = strings.TrimSuffix(rest, "op")
		case strings.HasSuffix(rest, "V"):
			encoding = EncodingVEXvvvv
			rest = strings.TrimSuffix(rest, "V")
		}

		if size, ok := gprSizes[rest]; ok {
			op.kind = kindGPR
			op.encoding = encoding
			op.width, op.bits = size.width, size.bits
			return op, nil
		}
	}

	// Other register files.
	for _, file := range registerFiles {
		rest, ok := strings.CutPrefix(syntax, file.prefix)
		if !ok {
			continue
		}

		encoding, ok := registerFields[rest]
		if !ok {
			continue
		}

		op.kind = file.kind
		op.encoding = encoding
		op.bits = file.bits
		return op, nil
	}

	// Vector SIB memory.
	if rest, ok := strings.CutPrefix(syntax, "vm"); ok && len(rest) == 3 {
		elem, err := strconv.Atoi(rest[:2])
		if err != nil || (elem != 32 && elem != 64) {
			return nil, fmt.Errorf("bad vector index size %q", rest[:2])
		}

		var index int
		switch rest[2] {
		case 'x':
			index = 128
		case 'y':
			index = 256
		case 'z':
			index = 512
		default:
			return nil, fmt.Errorf("bad vector index length %q", rest[2:])
		}

		op.kind = kindVSIB
		op.typ = OperandTypeImmConst
		op.encoding = EncodingSIB
		op.indexBits = index
		op.indexElem = elem
		return op, nil
	}

	// Fixed registers.
	if reg, ok := x86.RegistersByName[syntax]; ok {
		op.kind = kindFixed
		op.typ = OperandTypeReg
		op.encoding = EncodingImplicit
		op.visibility = VisibilityImplicit
		op.register = reg
		op.bits = reg.Bits
		return op, nil
	}

	// Memory.
	if rest, ok := strings.CutPrefix(syntax, "m"); ok {
		size, bcst, hasBcst := strings.Cut(rest, "/")
		op.kind = kindMemory
		op.typ = OperandTypeImmConst
		op.encoding = EncodingModRMrm
		switch size {
		case "":
		case "v":
			op.width = widthV
		case "y":
			op.width = widthY
		case "z":
			op.width = widthZ
		default:
			bits, err := strconv.Atoi(size)
			if err != nil || bits <= 0 || bits%8 != 0 {
				return nil, fmt.Errorf("bad memory size %q", size)
			}

			op.bits = bits
		}

		if hasBcst {
			b, ok := strings.CutPrefix(bcst, "m")
			b, ok2 := strings.CutSuffix(b, "bcst")
			bits, err := strconv.Atoi(b)
			if !ok || !ok2 || err != nil || (bits != 16 && bits != 32 && bits != 64) {
				return nil, fmt.Errorf("bad broadcast %q", bcst)
			}

			op.bcstBits = bits
		}

		return op, nil
	}

	return nil, fmt.Errorf("unknown syntax")
}

var registerFiles = []struct {
	prefix string
	kind   operandKind
	bits   int
}{
	{"xmm", kindVector, 128},
	{"ymm", kindVector, 256},
	{"zmm", kindVector, 512},
	{"mm", kindMMX, 64},
	{"tmm", kindTile, 8192},
	{"k", kindOpmask, 64},
}

var registerFields = map[string]OperandEncoding{
	"1":  EncodingModRMreg,
	"2":  EncodingModRMrm,
	"V":  EncodingVEXvvvv,
	"IH": EncodingVEXis4,
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import (
	"fmt"
	"strconv"
	"strings"
)

// Encoding includes the textual description of
// an x86 instruction's encoding, as described
// in the Intel manuals, plus a structured
// representation of the same information.
type Encoding struct {
	// The textual representation.
	Syntax string

	// Legacy prefixes.
	NoVEXPrefixes     bool     // Whether non-mandatory prefixes 66, F2, and F3 are forbidden.
	NoRepPrefixes     bool     // Whether non-mandatory prefixes F2 and F3 are forbidden.
	MandatoryPrefixes []Prefix // Any mandatory prefixes that precede the opcode.

	// REX prefixes.
	REX_W   bool // Whether REX.W must be set.
	NoREX_B bool // Whether REX.B must be clear.

	// Effective size constraints.
	OperandSize uint8 // Any required effective operand size in bits.
	AddressSize uint8 // Any required effective address size in bits.

	// Opcode location.
	Space Space // The encoding space.
	Map   Map   // The opcode map.

	// VEX, EVEX, and XOP payload.
	VEX_L   bool  // Any VEX.L value.
	EVEX_Lp bool  // Any EVEX.L' value.
	VEX_LIG bool  // Whether to ignore VEX.L and EVEX.L'.
	VEXpp   uint8 // Any VEX.pp value (2 bits).
	VEX_W   bool  // Any VEX.W value.
	VEX_WIG bool  // Whether to ignore VEX.W.
	VEXis4  bool  // Whether a register is expected in the 4-bit immediate.

	// EVEX features.
	Mask     bool      // Any EVEX opmask support.
	Zero     bool      // Any EVEX zeroing support.
	Rounding bool      // Any EVEX embedded rounding support.
	Suppress bool      // Any EVEX suppress all exceptions support.
	Tuple    TupleType // The EVEX tuple type, for compressed displacements.

	// Opcode data.
	Opcode           byte // The opcode byte, after any escape bytes.
	RegisterModifier bool // Whether a register is encoded in the opcode's low 3 bits.
	StackIndex       bool // Whether an FPU stack index is encoded in ModR/M.r/m.

	// Code offset after the opcode.
	CodeOffset bool // Whether a code offset is expected.

	// ModR/M byte.
	ModRM    bool  // Whether a ModR/M byte is always required.
	ModRMmod uint8 // Any fixed value used as the ModR/M byte's mod field, plus one. Zero for no value. Five for any value except 0b11.
	ModRMreg uint8 // Any fixed value used as the ModR/M byte's reg field, plus one. Zero for no value.
	ModRMrm  uint8 // Any fixed value used as the ModR/M byte's r/m field, plus one. Zero for no value.

	// Vector SIB.
	VSIB bool // Whether the instruction uses the Vector SIB.
}

// ModRMmodNotRegister is the value of
// Encoding.ModRMmod used for any mod
// except 0b11.
const ModRMmodNotRegister = 5

// VectorSize returns the instruction's vector size,
// if any.
func (e *Encoding) VectorSize() int {
	if e.Space == SpaceLegacy {
		return 0
	}

	L := e.VEX_L
	Lp := e.EVEX_Lp
	switch {
	case !L && !Lp:
		return 128
	case L && !Lp:
		return 256
	case !L && Lp:
		return 512
	default:
		panic(fmt.Sprintf("invalid VEX encoding: L: %v, L': %v", L, Lp))
	}
}

// MandatoryPrefix returns any mandatory
// 66, F2, or F3 prefix, or zero.
func (e *Encoding) MandatoryPrefix() Prefix {
	var out Prefix
	for _, prefix := range e.MandatoryPrefixes {
		switch prefix {
		case PrefixRepeat, PrefixRepeatNot:
			return prefix
		case PrefixOperandSize:
			out = prefix
		}
	}

	return out
}

// Specificity returns a score that grows with
// the number of constraints the encoding puts
// on machine code. When several encodings share
// an opcode, the most specific should be tried
// first.
func (e *Encoding) Specificity() int {
	score := 0
	switch e.MandatoryPrefix() {
	case PrefixRepeat, PrefixRepeatNot:
		score += 8
	case PrefixOperandSize:
		score += 6
	}
	if e.NoVEXPrefixes {
		score++
	}
	if e.REX_W {
		score += 4
	}
	if e.NoREX_B {
		score += 2
	}
	if e.OperandSize != 0 {
		score += 4
	}
	if e.AddressSize != 0 {
		score += 4
	}
	if e.ModRMrm != 0 {
		score += 4
	}
	if e.ModRMreg != 0 {
		score += 2
	}
	if e.ModRMmod != 0 {
		score++
	}

	return score
}

// ParseEncoding processes the textual description
// of an x86 instruction's encoding, producing
// a structured representation of the same
// information.
//
// The syntax follows the Intel x86 manuals, Volume
// 2A, section 3.1.1.1, with these additions:
//
//   - o16, o32, o64: the effective operand size must match.
//   - a16, a32, a64: the effective address size must match.
//   - REX.B=0: REX.B must be clear.
//   - XOP.{128,256}.{08,09,0A}.{W0,W1,WIG}: an XOP prefix.
//   - {k}, {z}, {er}, {sae}: EVEX opmask, zeroing, embedded
//     rounding, and suppressed exceptions support.
//   - FV, HV, FVM, T1S, T1F, T2, T4, T8, HVM, QVM, OVM,
//     M128, DUP: the EVEX tuple type.
func ParseEncoding(s string) (*Encoding, error) {
	e := &Encoding{
		Syntax: s,
	}

	// Start with any prefixes.
	parts := strings.Fields(s)
	rest := len(parts)
prefixes:
	for i, clause := range parts {
		switch clause {
		case "NP":
			e.NoVEXPrefixes = true
		case "NFx":
			e.NoRepPrefixes = true
		case "REX.W":
			e.REX_W = true
		case "REX.B=0":
			e.NoREX_B = true
		case "o16":
			e.OperandSize = 16
		case "o32":
			e.OperandSize = 32
		case "o64":
			e.OperandSize = 64
		case "a16":
			e.AddressSize = 16
		case "a32":
			e.AddressSize = 32
		case "a64":
			e.AddressSize = 64
		case "F2": // REPNE/REPNZ.
			e.MandatoryPrefixes = append(e.MandatoryPrefixes, PrefixRepeatNot)
		case "F3": // REP or REPE/REPZ.
			e.MandatoryPrefixes = append(e.MandatoryPrefixes, PrefixRepeat)
		case "66": // operand size.
			e.MandatoryPrefixes = append(e.MandatoryPrefixes, PrefixOperandSize)
		default:
			rest = i
			break prefixes
		}
	}

	parts = parts[rest:]

	// The raw opcode bytes, including
	// any escapes and trailing ModR/M
	// values. These are split up at the
	// end.
	var opcode []byte
	modifier := -1   // Index into opcode of any +r byte.
	stackIndex := -1 // Index into opcode of any +i byte.

	// Parse the remaining encoding
	// to identify the different fields.
	for _, clause := range parts {
		switch {
		case strings.HasSuffix(clause, "+rb"), strings.HasSuffix(clause, "+rw"), strings.HasSuffix(clause, "+rd"), strings.HasSuffix(clause, "+ro"):
			op, _, _ := strings.Cut(clause, "+")
			b, err := strconv.ParseUint(op, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid opcode register modifier clause %q: %v", clause, err)
			}

			opcode = append(opcode, byte(b))
			modifier = len(opcode) - 1
			continue
		case strings.HasSuffix(clause, "+i"):
			op := strings.TrimSuffix(clause, "+i")
			b, err := strconv.ParseUint(op, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("invalid FPU stack index clause %q: %v", clause, err)
			}

			opcode = append(opcode, byte(b))
			stackIndex = len(opcode) - 1
			continue
		}

		// Handle EVEX, VEX, and XOP clauses,
		// as they're complex.
		if space, ok := vexSpaces[strings.SplitN(clause, ".", 2)[0]]; ok && strings.Contains(clause, ".") {
			err := e.parseVEX(clause, space)
			if err != nil {
				return nil, err
			}

			continue
		}

		// Handle fixed ModR/M clauses, as they're complex.
		if strings.Contains(clause, ":") {
			err := e.parseModRM(clause)
			if err != nil {
				return nil, err
			}

			continue
		}

		if tuple, ok := tupleAbbreviations[clause]; ok {
			e.Tuple = tuple
			continue
		}

		switch clause {
		// Unused syntax.
		case "+":
		// Opcode extensions.
		case "/0", "/1", "/2", "/3", "/4", "/5", "/6", "/7":
			digit := byte(clause[1] - '0')
			e.ModRMreg = digit + 1
			e.ModRM = true
		// R/M operand.
		case "/r":
			e.ModRM = true
		// Code offset.
		case "cb", "cw", "cd", "cp", "co", "ct":
			if e.CodeOffset {
				return nil, fmt.Errorf("invalid encoding clause: unexpected second code offset clause %q", clause)
			}

			e.CodeOffset = true
		// Immediate values.
		case "ib", "iw", "id", "io":
			// Nothing to do here, as
			// the information is also
			// in the operands.
		case "/is4":
			if e.VEXis4 {
				return nil, fmt.Errorf("invalid encoding clause: unexpected second %q clause", clause)
			}

			e.VEXis4 = true
		case "/vsib":
			e.VSIB = true
		case "{k}":
			e.Mask = true
		case "{z}":
			e.Zero = true
		case "{er}":
			e.Rounding = true
		case "{sae}":
			e.Suppress = true
		default:
			b, err := strconv.ParseUint(clause, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("bad encoding syntax %q: failed to handle encoding clause %q", s, clause)
			}

			opcode = append(opcode, byte(b))
		}
	}

	if len(opcode) == 0 {
		return nil, fmt.Errorf("bad encoding syntax %q: no opcode", s)
	}

	// Strip any legacy escape bytes.
	start := 0
	if e.Space == SpaceLegacy && opcode[0] == 0x0f && len(opcode) > 1 {
		switch opcode[1] {
		case 0x38:
			e.Map = Map0F38
			start = 2
		case 0x3a:
			e.Map = Map0F3A
			start = 2
		default:
			e.Map = Map0F
			start = 1
		}
	}

	if start >= len(opcode) {
		return nil, fmt.Errorf("bad encoding syntax %q: no opcode after escape bytes", s)
	}

	e.Opcode = opcode[start]
	modrm := opcode[start+1:]
	switch {
	case modifier == start:
		e.RegisterModifier = true
	case modifier >= 0:
		return nil, fmt.Errorf("bad encoding syntax %q: register modifier on a non-opcode byte", s)
	}

	// Any remaining byte is a fixed
	// ModR/M byte, perhaps with an
	// FPU stack index in r/m.
	switch len(modrm) {
	case 0:
		if stackIndex >= 0 {
			return nil, fmt.Errorf("bad encoding syntax %q: stack index on the opcode byte", s)
		}
	case 1:
		if e.ModRM && !e.StackIndex {
			return nil, fmt.Errorf("bad encoding syntax %q: fixed ModR/M byte after a ModR/M clause", s)
		}

		fixed := ModRM(modrm[0])
		e.ModRM = true
		e.ModRMmod = fixed.Mod() + 1
		e.ModRMreg = fixed.Reg() + 1
		if stackIndex == start+1 {
			e.StackIndex = true
		} else {
			e.ModRMrm = fixed.RM() + 1
		}
	default:
		return nil, fmt.Errorf("bad encoding syntax %q: too many opcode bytes", s)
	}

	return e, nil
}

var vexSpaces = map[string]Space{
	"VEX":  SpaceVEX,
	"EVEX": SpaceEVEX,
	"XOP":  SpaceXOP,
}

var tupleAbbreviations = map[string]TupleType{
	"FV":   TupleFull,
	"HV":   TupleHalf,
	"FVM":  TupleFullMem,
	"T1S":  Tuple1Scalar,
	"T1F":  Tuple1Fixed,
	"T2":   Tuple2,
	"T4":   Tuple4,
	"T8":   Tuple8,
	"HVM":  TupleHalfMem,
	"QVM":  TupleQuarterMem,
	"OVM":  TupleEighthMem,
	"M128": TupleMem128,
	"DUP":  TupleMOVDDUP,
}

// parseVEX handles a VEX, EVEX, or XOP
// clause, such as "EVEX.512.66.0F38.W1".
func (e *Encoding) parseVEX(clause string, space Space) error {
	e.Space = space
	haveMap := false
	parts := strings.Split(clause, ".")
	for _, part := range parts[1:] {
		switch part {
		case "NDS", "NDD", "DDS":
			// The NDS/NDD/DDS terms can be ignored,
			// as their information is also encoded
			// in the operands.
		case "128", "L0", "LZ":
			e.VEX_L = false
			e.EVEX_Lp = false
		case "256", "L1":
			e.VEX_L = true
			e.EVEX_Lp = false
		case "512":
			if space != SpaceEVEX {
				return fmt.Errorf("invalid encoding clause %s: 512-bit vectors need EVEX", clause)
			}

			e.VEX_L = false
			e.EVEX_Lp = true
		case "LIG", "LLIG":
			e.VEX_LIG = true
		case "NP":
			e.VEXpp = 0b00
		case "66":
			e.VEXpp = 0b01
		case "F3":
			e.VEXpp = 0b10
		case "F2":
			e.VEXpp = 0b11
		case "0F":
			e.Map = Map0F
			haveMap = true
		case "0F38":
			e.Map = Map0F38
			haveMap = true
		case "0F3A":
			e.Map = Map0F3A
			haveMap = true
		case "MAP5":
			e.Map = Map5
			haveMap = true
		case "MAP6":
			e.Map = Map6
			haveMap = true
		case "08":
			e.Map = MapXOP8
			haveMap = true
		case "09":
			e.Map = MapXOP9
			haveMap = true
		case "0A":
			e.Map = MapXOPA
			haveMap = true
		case "WIG":
			e.VEX_WIG = true
			e.VEX_W = false
		case "W0":
			e.VEX_W = false
		case "W1":
			e.VEX_W = true
		default:
			return fmt.Errorf("invalid encoding clause %s: bad %s clause %q", clause, space, part)
		}
	}

	// Check mandatory fields.
	if !haveMap {
		return fmt.Errorf("invalid encoding clause %s: missing opcode map", clause)
	}

	if !e.Map.ValidFor(space) {
		return fmt.Errorf("invalid encoding clause %s: map %s cannot be used with %s", clause, e.Map, space)
	}

	return nil
}

// parseModRM handles a fixed ModR/M clause,
// such as "11:rrr:bbb".
func (e *Encoding) parseModRM(clause string) error {
	fields := strings.Split(clause, ":")
	if len(fields) != 3 {
		return fmt.Errorf("invalid encoding clause %s: failed to parse ModR/M fields", clause)
	}

	switch fields[0] {
	case "11":
		e.ModRMmod = 0b11 + 1
	case "!(11)":
		e.ModRMmod = ModRMmodNotRegister
	default:
		return fmt.Errorf("invalid encoding clause %s: invalid ModR/M.mod field %q", clause, fields[0])
	}

	field := func(name, s, any string) (uint8, error) {
		if s == any {
			return 0, nil
		}

		n, err := strconv.ParseUint(s, 2, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid encoding clause %s: invalid ModR/M.%s field %q: %v", clause, name, s, err)
		}

		if n > 0b111 {
			return 0, fmt.Errorf("invalid encoding clause %s: invalid ModR/M.%s field %q: exceeds bounds", clause, name, s)
		}

		return uint8(n) + 1, nil
	}

	var err error
	e.ModRMreg, err = field("reg", fields[1], "rrr")
	if err != nil {
		return err
	}

	e.ModRMrm, err = field("r/m", fields[2], "bbb")
	if err != nil {
		return err
	}

	e.ModRM = true

	return nil
}

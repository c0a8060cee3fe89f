// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Package x86 contains the machine code primitives
// of the x86 instruction set architecture, such as
// prefixes, ModR/M and SIB bytes, and registers.
package x86

import (
	"fmt"
)

// Mode represents an x86 code
// size, as a number of bits.
type Mode struct {
	Int    uint8
	String string
}

var (
	Mode16 = Mode{16, "16"}
	Mode32 = Mode{32, "32"}
	Mode64 = Mode{64, "64"}
	Modes  = []Mode{Mode16, Mode32, Mode64}
)

// Space identifies the encoding space
// an instruction's opcode lives in.
type Space uint8

const (
	SpaceLegacy Space = iota
	SpaceVEX
	SpaceEVEX
	SpaceXOP
)

func (s Space) String() string {
	switch s {
	case SpaceLegacy:
		return "legacy"
	case SpaceVEX:
		return "VEX"
	case SpaceEVEX:
		return "EVEX"
	case SpaceXOP:
		return "XOP"
	default:
		return fmt.Sprintf("Space(%d)", s)
	}
}

// Map identifies an opcode map.
//
// Legacy maps are selected with escape
// bytes, while the VEX, EVEX, and XOP
// spaces carry the map number in their
// payload.
type Map uint8

const (
	Map0    Map = 0  // One-byte opcodes.
	Map0F   Map = 1  // 0F xx.
	Map0F38 Map = 2  // 0F 38 xx.
	Map0F3A Map = 3  // 0F 3A xx.
	Map5    Map = 5  // EVEX map 5 (FP16).
	Map6    Map = 6  // EVEX map 6 (FP16).
	MapXOP8 Map = 8  // XOP map 8.
	MapXOP9 Map = 9  // XOP map 9.
	MapXOPA Map = 10 // XOP map 10.
)

func (m Map) String() string {
	switch m {
	case Map0:
		return "map0"
	case Map0F:
		return "0F"
	case Map0F38:
		return "0F38"
	case Map0F3A:
		return "0F3A"
	case Map5:
		return "MAP5"
	case Map6:
		return "MAP6"
	case MapXOP8:
		return "XOP8"
	case MapXOP9:
		return "XOP9"
	case MapXOPA:
		return "XOPA"
	default:
		return fmt.Sprintf("Map(%d)", uint8(m))
	}
}

// ValidFor returns whether the map can
// be selected in the given encoding space.
func (m Map) ValidFor(space Space) bool {
	switch space {
	case SpaceLegacy:
		return m <= Map0F3A
	case SpaceVEX:
		return Map0F <= m && m <= Map0F3A
	case SpaceEVEX:
		return (Map0F <= m && m <= Map0F3A) || m == Map5 || m == Map6
	case SpaceXOP:
		return MapXOP8 <= m && m <= MapXOPA
	}

	return false
}

// Prefix represents a legacy x86 prefix.
type Prefix byte

const (
	PrefixLock        Prefix = 0xf0
	PrefixRepeatNot   Prefix = 0xf2
	PrefixRepeat      Prefix = 0xf3
	PrefixCS          Prefix = 0x2e
	PrefixSS          Prefix = 0x36
	PrefixDS          Prefix = 0x3e
	PrefixES          Prefix = 0x26
	PrefixFS          Prefix = 0x64
	PrefixGS          Prefix = 0x65
	PrefixOperandSize Prefix = 0x66
	PrefixAddressSize Prefix = 0x67
)

// IsLegacy returns whether b is one
// of the eleven legacy prefix bytes.
func IsLegacy(b byte) bool {
	switch Prefix(b) {
	case PrefixLock,
		PrefixRepeatNot,
		PrefixRepeat,
		PrefixCS,
		PrefixSS,
		PrefixDS,
		PrefixES,
		PrefixFS,
		PrefixGS,
		PrefixOperandSize,
		PrefixAddressSize:
		return true
	}

	return false
}

// IsSegment returns whether p is a
// segment override prefix.
func (p Prefix) IsSegment() bool {
	switch p {
	case PrefixCS, PrefixSS, PrefixDS, PrefixES, PrefixFS, PrefixGS:
		return true
	}

	return false
}

// Segment returns the segment register
// selected by a segment override prefix,
// or nil.
func (p Prefix) Segment() *Register {
	switch p {
	case PrefixCS:
		return CS
	case PrefixSS:
		return SS
	case PrefixDS:
		return DS
	case PrefixES:
		return ES
	case PrefixFS:
		return FS
	case PrefixGS:
		return GS
	}

	return nil
}

func (p Prefix) String() string {
	switch p {
	case PrefixLock:
		return "lock"
	case PrefixRepeatNot:
		return "repne"
	case PrefixRepeat:
		return "rep"
	case PrefixCS:
		return "cs"
	case PrefixSS:
		return "ss"
	case PrefixDS:
		return "ds"
	case PrefixES:
		return "es"
	case PrefixFS:
		return "fs"
	case PrefixGS:
		return "gs"
	case PrefixOperandSize:
		return "data16"
	case PrefixAddressSize:
		return "addr32"
	default:
		return fmt.Sprintf("Prefix(%#02x)", byte(p))
	}
}

// b2i converts a boolean to a bit.
func b2i(b bool) byte {
	if b {
		return 1
	}

	return 0
}

// VEX holds the payload of a VEX
// prefix, always in the 3-byte
// form. The 2-byte form is widened
// with VEX2.
//
// XOP prefixes share the same
// payload layout.
type VEX [2]byte

// Intel x86 manuals, Volume 2A,
// Section 2.3.5, Table 2-9.
//
// 3-byte form:
//
// 	| 7  6  5  4   3  2  1  0 |
// 	+-------------------------|
// 	| 1  1  0  0   0  1  0  0 | // 0xc4 prefix (0x8f for XOP).
// 	| R  X  B  m   m  m  m  m | // P0.
// 	| W  v  v  v   v  L  p  p | // P1.
//
// 2-byte form:
//
// 	| 7  6  5  4   3  2  1  0 |
// 	+-------------------------|
// 	| 1  1  0  0   0  1  0  1 | // 0xc5 prefix.
// 	| R  v  v  v   v  L  p  p | // P0.
//
// R, X, B, and vvvv are stored inverted.

// VEX2 widens the payload of a
// 2-byte VEX prefix.
func VEX2(p0 byte) VEX {
	return VEX{
		p0&0b1000_0000 | 0b0110_0001, // R, X=1, B=1, m-mmmm=0F.
		p0 & 0b0111_1111,             // W=0.
	}
}

// P0.
func (v VEX) R() bool      { return ((v[0] >> 7) & 1) == 1 }
func (v VEX) X() bool      { return ((v[0] >> 6) & 1) == 1 }
func (v VEX) B() bool      { return ((v[0] >> 5) & 1) == 1 }
func (v VEX) M_MMMM() byte { return v[0] & 0b1_1111 }

// P1.
func (v VEX) W() bool    { return ((v[1] >> 7) & 1) == 1 }
func (v VEX) VVVV() byte { return (v[1] >> 3) & 0b1111 }
func (v VEX) L() bool    { return ((v[1] >> 2) & 1) == 1 }
func (v VEX) PP() byte   { return v[1] & 0b11 }

func (v VEX) String() string {
	return fmt.Sprintf("{R: %b, X: %b, B: %b, m-mmmm: %05b, W: %b, vvvv: %04b, L: %b, pp: %02b}",
		b2i(v.R()), b2i(v.X()), b2i(v.B()), v.M_MMMM(),
		b2i(v.W()), v.VVVV(), b2i(v.L()), v.PP())
}

// EVEX holds the payload of an
// EVEX prefix.
type EVEX [3]byte

// Intel x86 manuals, Volume 2A,
// Section 2.6.1, Table 2-11.
//
// 	| 7  6  5  4   3  2  1  0 |
// 	+-------------------------|
// 	| 0  1  1  0   0  0  1  0 | // 0x62 prefix.
// 	| R  X  B  R'  0  m  m  m | // P0.
// 	| W  v  v  v   v  1  p  p | // P1.
// 	| z  L' L  b   V' a  a  a | // P2.
//
// R, X, B, R', vvvv, and V' are stored
// inverted.

// P0.
func (p EVEX) R() bool   { return ((p[0] >> 7) & 1) == 1 }
func (p EVEX) X() bool   { return ((p[0] >> 6) & 1) == 1 }
func (p EVEX) B() bool   { return ((p[0] >> 5) & 1) == 1 }
func (p EVEX) Rp() bool  { return ((p[0] >> 4) & 1) == 1 }
func (p EVEX) MMM() byte { return p[0] & 0b111 }

// P1.
func (p EVEX) W() bool    { return ((p[1] >> 7) & 1) == 1 }
func (p EVEX) VVVV() byte { return (p[1] >> 3) & 0b1111 }
func (p EVEX) PP() byte   { return p[1] & 0b11 }

// P2.
func (p EVEX) Z() bool   { return ((p[2] >> 7) & 1) == 1 }
func (p EVEX) Lp() bool  { return ((p[2] >> 6) & 1) == 1 }
func (p EVEX) L() bool   { return ((p[2] >> 5) & 1) == 1 }
func (p EVEX) Br() bool  { return ((p[2] >> 4) & 1) == 1 }
func (p EVEX) Vp() bool  { return ((p[2] >> 3) & 1) == 1 }
func (p EVEX) AAA() byte { return p[2] & 0b111 }

// LL returns the two-bit vector
// length field L'L.
func (p EVEX) LL() byte { return (p[2] >> 5) & 0b11 }

// On reports whether the fixed bit
// in P1 is set, as it must be.
func (p EVEX) On() bool { return ((p[1] >> 2) & 1) == 1 }

func (p EVEX) String() string {
	return fmt.Sprintf("{R: %b, X: %b, B: %b, R': %b, mm: %03b // W: %b, vvvv: %04b, pp: %02b // z: %b, L': %b, L: %b, b: %b, V': %b, aaa: %03b}",
		b2i(p.R()), b2i(p.X()), b2i(p.B()), b2i(p.Rp()), p.MMM(),
		b2i(p.W()), p.VVVV(), p.PP(),
		b2i(p.Z()), b2i(p.Lp()), b2i(p.L()), b2i(p.Br()), b2i(p.Vp()), p.AAA())
}

// REX holds a REX prefix byte.
type REX byte

// Intel x86 manuals, Volume 2A,
// Section 2.2.1.2, Table 2-4.
//
// 	| 7  6  5  4   3  2  1  0 |
// 	+-------------------------|
// 	| 0  1  0  0   W  R  X  B |

// IsREX returns whether b is a REX
// prefix byte in 64-bit mode.
func IsREX(b byte) bool { return b&0xf0 == 0x40 }

func (r REX) On() bool { return ((r >> 6) & 1) == 1 }
func (r REX) W() bool  { return ((r >> 3) & 1) == 1 }
func (r REX) R() bool  { return ((r >> 2) & 1) == 1 }
func (r REX) X() bool  { return ((r >> 1) & 1) == 1 }
func (r REX) B() bool  { return ((r >> 0) & 1) == 1 }

func (r REX) String() string {
	out := []byte("0100WRXB")
	for i, c := range out[4:] {
		if (r>>(3-i))&1 == 0 {
			out[4+i] = '0'
		} else {
			out[4+i] = c
		}
	}

	return string(out)
}

// ModRM holds a ModR/M byte.
type ModRM byte

const (
	// Section 2.1.5, table 2.2, Mod column.
	ModRMmodDereferenceRegister    = 0b00
	ModRMmodSmallDisplacedRegister = 0b01
	ModRMmodLargeDisplacedRegister = 0b10
	ModRMmodRegister               = 0b11

	// Section 2.1.5, table 2.2, Effective address column.
	ModRMrmSIB                = 0b100
	ModRMrmDisplacementOnly32 = 0b101
	ModRMrmDisplacementOnly16 = 0b110
)

func (m ModRM) Mod() byte { return byte(m&0b11000000) >> 6 }
func (m ModRM) Reg() byte { return byte(m&0b00111000) >> 3 }
func (m ModRM) RM() byte  { return byte(m&0b00000111) >> 0 }

func (m ModRM) String() string {
	return fmt.Sprintf("{Mod: %02b, Reg: %03b, R/M: %03b}", m.Mod(), m.Reg(), m.RM())
}

// SIB holds a Scale/Index/Base byte.
type SIB byte

const (
	// Section 2.1.5, table 2.3, Index column.
	SIBindexNone = 0b100

	// Section 2.1.5, table 2.3, Base row.
	SIBbaseNone = 0b101
)

func (s SIB) Scale() byte { return byte(s&0b11000000) >> 6 }
func (s SIB) Index() byte { return byte(s&0b00111000) >> 3 }
func (s SIB) Base() byte  { return byte(s&0b00000111) >> 0 }

func (s SIB) String() string {
	return fmt.Sprintf("{Scale: %02b, Index: %03b, Base: %03b}", s.Scale(), s.Index(), s.Base())
}

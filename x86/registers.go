// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import (
	"fmt"
)

// Register describes an x86 register.
//
// Registers are compared by identity,
// so each register exists exactly once.
type Register struct {
	Name string
	Type RegisterType
	Bits int
	Num  uint8 // The register number, as encoded in machine code.
}

func (r *Register) String() string { return r.Name }

// IsGeneralPurpose returns whether r
// is a general purpose register.
func (r *Register) IsGeneralPurpose() bool {
	return r != nil && r.Type == TypeGeneralPurpose
}

// IsVector returns whether r is an
// XMM, YMM, or ZMM register.
func (r *Register) IsVector() bool {
	if r == nil {
		return false
	}

	switch r.Type {
	case TypeXMM, TypeYMM, TypeZMM:
		return true
	}

	return false
}

var (
	// 8-bit registers.
	AL   = &Register{"al", TypeGeneralPurpose, 8, 0}
	CL   = &Register{"cl", TypeGeneralPurpose, 8, 1}
	DL   = &Register{"dl", TypeGeneralPurpose, 8, 2}
	BL   = &Register{"bl", TypeGeneralPurpose, 8, 3}
	SPL  = &Register{"spl", TypeGeneralPurpose, 8, 4}
	BPL  = &Register{"bpl", TypeGeneralPurpose, 8, 5}
	SIL  = &Register{"sil", TypeGeneralPurpose, 8, 6}
	DIL  = &Register{"dil", TypeGeneralPurpose, 8, 7}
	R8B  = &Register{"r8b", TypeGeneralPurpose, 8, 8}
	R9B  = &Register{"r9b", TypeGeneralPurpose, 8, 9}
	R10B = &Register{"r10b", TypeGeneralPurpose, 8, 10}
	R11B = &Register{"r11b", TypeGeneralPurpose, 8, 11}
	R12B = &Register{"r12b", TypeGeneralPurpose, 8, 12}
	R13B = &Register{"r13b", TypeGeneralPurpose, 8, 13}
	R14B = &Register{"r14b", TypeGeneralPurpose, 8, 14}
	R15B = &Register{"r15b", TypeGeneralPurpose, 8, 15}
	AH   = &Register{"ah", TypeGeneralPurpose, 8, 4}
	CH   = &Register{"ch", TypeGeneralPurpose, 8, 5}
	DH   = &Register{"dh", TypeGeneralPurpose, 8, 6}
	BH   = &Register{"bh", TypeGeneralPurpose, 8, 7}

	// 16-bit registers.
	AX   = &Register{"ax", TypeGeneralPurpose, 16, 0}
	CX   = &Register{"cx", TypeGeneralPurpose, 16, 1}
	DX   = &Register{"dx", TypeGeneralPurpose, 16, 2}
	BX   = &Register{"bx", TypeGeneralPurpose, 16, 3}
	SP   = &Register{"sp", TypeGeneralPurpose, 16, 4}
	BP   = &Register{"bp", TypeGeneralPurpose, 16, 5}
	SI   = &Register{"si", TypeGeneralPurpose, 16, 6}
	DI   = &Register{"di", TypeGeneralPurpose, 16, 7}
	R8W  = &Register{"r8w", TypeGeneralPurpose, 16, 8}
	R9W  = &Register{"r9w", TypeGeneralPurpose, 16, 9}
	R10W = &Register{"r10w", TypeGeneralPurpose, 16, 10}
	R11W = &Register{"r11w", TypeGeneralPurpose, 16, 11}
	R12W = &Register{"r12w", TypeGeneralPurpose, 16, 12}
	R13W = &Register{"r13w", TypeGeneralPurpose, 16, 13}
	R14W = &Register{"r14w", TypeGeneralPurpose, 16, 14}
	R15W = &Register{"r15w", TypeGeneralPurpose, 16, 15}

	// 32-bit registers.
	EAX  = &Register{"eax", TypeGeneralPurpose, 32, 0}
	ECX  = &Register{"ecx", TypeGeneralPurpose, 32, 1}
	EDX  = &Register{"edx", TypeGeneralPurpose, 32, 2}
	EBX  = &Register{"ebx", TypeGeneralPurpose, 32, 3}
	ESP  = &Register{"esp", TypeGeneralPurpose, 32, 4}
	EBP  = &Register{"ebp", TypeGeneralPurpose, 32, 5}
	ESI  = &Register{"esi", TypeGeneralPurpose, 32, 6}
	EDI  = &Register{"edi", TypeGeneralPurpose, 32, 7}
	R8D  = &Register{"r8d", TypeGeneralPurpose, 32, 8}
	R9D  = &Register{"r9d", TypeGeneralPurpose, 32, 9}
	R10D = &Register{"r10d", TypeGeneralPurpose, 32, 10}
	R11D = &Register{"r11d", TypeGeneralPurpose, 32, 11}
	R12D = &Register{"r12d", TypeGeneralPurpose, 32, 12}
	R13D = &Register{"r13d", TypeGeneralPurpose, 32, 13}
	R14D = &Register{"r14d", TypeGeneralPurpose, 32, 14}
	R15D = &Register{"r15d", TypeGeneralPurpose, 32, 15}

	// 64-bit registers.
	RAX = &Register{"rax", TypeGeneralPurpose, 64, 0}
	RCX = &Register{"rcx", TypeGeneralPurpose, 64, 1}
	RDX = &Register{"rdx", TypeGeneralPurpose, 64, 2}
	RBX = &Register{"rbx", TypeGeneralPurpose, 64, 3}
	RSP = &Register{"rsp", TypeGeneralPurpose, 64, 4}
	RBP = &Register{"rbp", TypeGeneralPurpose, 64, 5}
	RSI = &Register{"rsi", TypeGeneralPurpose, 64, 6}
	RDI = &Register{"rdi", TypeGeneralPurpose, 64, 7}
	R8  = &Register{"r8", TypeGeneralPurpose, 64, 8}
	R9  = &Register{"r9", TypeGeneralPurpose, 64, 9}
	R10 = &Register{"r10", TypeGeneralPurpose, 64, 10}
	R11 = &Register{"r11", TypeGeneralPurpose, 64, 11}
	R12 = &Register{"r12", TypeGeneralPurpose, 64, 12}
	R13 = &Register{"r13", TypeGeneralPurpose, 64, 13}
	R14 = &Register{"r14", TypeGeneralPurpose, 64, 14}
	R15 = &Register{"r15", TypeGeneralPurpose, 64, 15}

	// Instruction pointer.
	IP  = &Register{"ip", TypeInstructionPointer, 16, 0}
	EIP = &Register{"eip", TypeInstructionPointer, 32, 0}
	RIP = &Register{"rip", TypeInstructionPointer, 64, 0}

	// Flags.
	FLAGS  = &Register{"flags", TypeFlags, 16, 0}
	EFLAGS = &Register{"eflags", TypeFlags, 32, 0}
	RFLAGS = &Register{"rflags", TypeFlags, 64, 0}
	MXCSR  = &Register{"mxcsr", TypeStatus, 32, 0}

	// Segment registers.
	ES = &Register{"es", TypeSegment, 16, 0}
	CS = &Register{"cs", TypeSegment, 16, 1}
	SS = &Register{"ss", TypeSegment, 16, 2}
	DS = &Register{"ds", TypeSegment, 16, 3}
	FS = &Register{"fs", TypeSegment, 16, 4}
	GS = &Register{"gs", TypeSegment, 16, 5}

	// x87 floating point stack positions.
	ST0 = &Register{"st0", TypeX87, 80, 0}
	ST1 = &Register{"st1", TypeX87, 80, 1}
	ST2 = &Register{"st2", TypeX87, 80, 2}
	ST3 = &Register{"st3", TypeX87, 80, 3}
	ST4 = &Register{"st4", TypeX87, 80, 4}
	ST5 = &Register{"st5", TypeX87, 80, 5}
	ST6 = &Register{"st6", TypeX87, 80, 6}
	ST7 = &Register{"st7", TypeX87, 80, 7}

	// Control registers.
	CR0  = &Register{"cr0", TypeControl, 64, 0}
	CR1  = &Register{"cr1", TypeControl, 64, 1}
	CR2  = &Register{"cr2", TypeControl, 64, 2}
	CR3  = &Register{"cr3", TypeControl, 64, 3}
	CR4  = &Register{"cr4", TypeControl, 64, 4}
	CR5  = &Register{"cr5", TypeControl, 64, 5}
	CR6  = &Register{"cr6", TypeControl, 64, 6}
	CR7  = &Register{"cr7", TypeControl, 64, 7}
	CR8  = &Register{"cr8", TypeControl, 64, 8}
	CR9  = &Register{"cr9", TypeControl, 64, 9}
	CR10 = &Register{"cr10", TypeControl, 64, 10}
	CR11 = &Register{"cr11", TypeControl, 64, 11}
	CR12 = &Register{"cr12", TypeControl, 64, 12}
	CR13 = &Register{"cr13", TypeControl, 64, 13}
	CR14 = &Register{"cr14", TypeControl, 64, 14}
	CR15 = &Register{"cr15", TypeControl, 64, 15}

	// Debug registers.
	DR0  = &Register{"dr0", TypeDebug, 64, 0}
	DR1  = &Register{"dr1", TypeDebug, 64, 1}
	DR2  = &Register{"dr2", TypeDebug, 64, 2}
	DR3  = &Register{"dr3", TypeDebug, 64, 3}
	DR4  = &Register{"dr4", TypeDebug, 64, 4}
	DR5  = &Register{"dr5", TypeDebug, 64, 5}
	DR6  = &Register{"dr6", TypeDebug, 64, 6}
	DR7  = &Register{"dr7", TypeDebug, 64, 7}
	DR8  = &Register{"dr8", TypeDebug, 64, 8}
	DR9  = &Register{"dr9", TypeDebug, 64, 9}
	DR10 = &Register{"dr10", TypeDebug, 64, 10}
	DR11 = &Register{"dr11", TypeDebug, 64, 11}
	DR12 = &Register{"dr12", TypeDebug, 64, 12}
	DR13 = &Register{"dr13", TypeDebug, 64, 13}
	DR14 = &Register{"dr14", TypeDebug, 64, 14}
	DR15 = &Register{"dr15", TypeDebug, 64, 15}

	// Opmask registers.
	K0 = &Register{"k0", TypeOpmask, 64, 0}
	K1 = &Register{"k1", TypeOpmask, 64, 1}
	K2 = &Register{"k2", TypeOpmask, 64, 2}
	K3 = &Register{"k3", TypeOpmask, 64, 3}
	K4 = &Register{"k4", TypeOpmask, 64, 4}
	K5 = &Register{"k5", TypeOpmask, 64, 5}
	K6 = &Register{"k6", TypeOpmask, 64, 6}
	K7 = &Register{"k7", TypeOpmask, 64, 7}

	// MMX registers.
	MM0 = &Register{"mm0", TypeMMX, 64, 0}
	MM1 = &Register{"mm1", TypeMMX, 64, 1}
	MM2 = &Register{"mm2", TypeMMX, 64, 2}
	MM3 = &Register{"mm3", TypeMMX, 64, 3}
	MM4 = &Register{"mm4", TypeMMX, 64, 4}
	MM5 = &Register{"mm5", TypeMMX, 64, 5}
	MM6 = &Register{"mm6", TypeMMX, 64, 6}
	MM7 = &Register{"mm7", TypeMMX, 64, 7}

	// AMX tile registers.
	TMM0 = &Register{"tmm0", TypeTMM, 8192, 0}
	TMM1 = &Register{"tmm1", TypeTMM, 8192, 1}
	TMM2 = &Register{"tmm2", TypeTMM, 8192, 2}
	TMM3 = &Register{"tmm3", TypeTMM, 8192, 3}
	TMM4 = &Register{"tmm4", TypeTMM, 8192, 4}
	TMM5 = &Register{"tmm5", TypeTMM, 8192, 5}
	TMM6 = &Register{"tmm6", TypeTMM, 8192, 6}
	TMM7 = &Register{"tmm7", TypeTMM, 8192, 7}

	// 128-bit XMM registers.
	XMM0  = &Register{"xmm0", TypeXMM, 128, 0}
	XMM1  = &Register{"xmm1", TypeXMM, 128, 1}
	XMM2  = &Register{"xmm2", TypeXMM, 128, 2}
	XMM3  = &Register{"xmm3", TypeXMM, 128, 3}
	XMM4  = &Register{"xmm4", TypeXMM, 128, 4}
	XMM5  = &Register{"xmm5", TypeXMM, 128, 5}
	XMM6  = &Register{"xmm6", TypeXMM, 128, 6}
	XMM7  = &Register{"xmm7", TypeXMM, 128, 7}
	XMM8  = &Register{"xmm8", TypeXMM, 128, 8}
	XMM9  = &Register{"xmm9", TypeXMM, 128, 9}
	XMM10 = &Register{"xmm10", TypeXMM, 128, 10}
	XMM11 = &Register{"xmm11", TypeXMM, 128, 11}
	XMM12 = &Register{"xmm12", TypeXMM, 128, 12}
	XMM13 = &Register{"xmm13", TypeXMM, 128, 13}
	XMM14 = &Register{"xmm14", TypeXMM, 128, 14}
	XMM15 = &Register{"xmm15", TypeXMM, 128, 15}
	XMM16 = &Register{"xmm16", TypeXMM, 128, 16}
	XMM17 = &Register{"xmm17", TypeXMM, 128, 17}
	XMM18 = &Register{"xmm18", TypeXMM, 128, 18}
	XMM19 = &Register{"xmm19", TypeXMM, 128, 19}
	XMM20 = &Register{"xmm20", TypeXMM, 128, 20}
	XMM21 = &Register{"xmm21", TypeXMM, 128, 21}
	XMM22 = &Register{"xmm22", TypeXMM, 128, 22}
	XMM23 = &Register{"xmm23", TypeXMM, 128, 23}
	XMM24 = &Register{"xmm24", TypeXMM, 128, 24}
	XMM25 = &Register{"xmm25", TypeXMM, 128, 25}
	XMM26 = &Register{"xmm26", TypeXMM, 128, 26}
	XMM27 = &Register{"xmm27", TypeXMM, 128, 27}
	XMM28 = &Register{"xmm28", TypeXMM, 128, 28}
	XMM29 = &Register{"xmm29", TypeXMM, 128, 29}
	XMM30 = &Register{"xmm30", TypeXMM, 128, 30}
	XMM31 = &Register{"xmm31", TypeXMM, 128, 31}

	// 256-bit YMM registers.
	YMM0  = &Register{"ymm0", TypeYMM, 256, 0}
	YMM1  = &Register{"ymm1", TypeYMM, 256, 1}
	YMM2  = &Register{"ymm2", TypeYMM, 256, 2}
	YMM3  = &Register{"ymm3", TypeYMM, 256, 3}
	YMM4  = &Register{"ymm4", TypeYMM, 256, 4}
	YMM5  = &Register{"ymm5", TypeYMM, 256, 5}
	YMM6  = &Register{"ymm6", TypeYMM, 256, 6}
	YMM7  = &Register{"ymm7", TypeYMM, 256, 7}
	YMM8  = &Register{"ymm8", TypeYMM, 256, 8}
	YMM9  = &Register{"ymm9", TypeYMM, 256, 9}
	YMM10 = &Register{"ymm10", TypeYMM, 256, 10}
	YMM11 = &Register{"ymm11", TypeYMM, 256, 11}
	YMM12 = &Register{"ymm12", TypeYMM, 256, 12}
	YMM13 = &Register{"ymm13", TypeYMM, 256, 13}
	YMM14 = &Register{"ymm14", TypeYMM, 256, 14}
	YMM15 = &Register{"ymm15", TypeYMM, 256, 15}
	YMM16 = &Register{"ymm16", TypeYMM, 256, 16}
	YMM17 = &Register{"ymm17", TypeYMM, 256, 17}
	YMM18 = &Register{"ymm18", TypeYMM, 256, 18}
	YMM19 = &Register{"ymm19", TypeYMM, 256, 19}
	YMM20 = &Register{"ymm20", TypeYMM, 256, 20}
	YMM21 = &Register{"ymm21", TypeYMM, 256, 21}
	YMM22 = &Register{"ymm22", TypeYMM, 256, 22}
	YMM23 = &Register{"ymm23", TypeYMM, 256, 23}
	YMM24 = &Register{"ymm24", TypeYMM, 256, 24}
	YMM25 = &Register{"ymm25", TypeYMM, 256, 25}
	YMM26 = &Register{"ymm26", TypeYMM, 256, 26}
	YMM27 = &Register{"ymm27", TypeYMM, 256, 27}
	YMM28 = &Register{"ymm28", TypeYMM, 256, 28}
	YMM29 = &Register{"ymm29", TypeYMM, 256, 29}
	YMM30 = &Register{"ymm30", TypeYMM, 256, 30}
	YMM31 = &Register{"ymm31", TypeYMM, 256, 31}

	// 512-bit ZMM registers.
	ZMM0  = &Register{"zmm0", TypeZMM, 512, 0}
	ZMM1  = &Register{"zmm1", TypeZMM, 512, 1}
	ZMM2  = &Register{"zmm2", TypeZMM, 512, 2}
	ZMM3  = &Register{"zmm3", TypeZMM, 512, 3}
	ZMM4  = &Register{"zmm4", TypeZMM, 512, 4}
	ZMM5  = &Register{"zmm5", TypeZMM, 512, 5}
	ZMM6  = &Register{"zmm6", TypeZMM, 512, 6}
	ZMM7  = &Register{"zmm7", TypeZMM, 512, 7}
	ZMM8  = &Register{"zmm8", TypeZMM, 512, 8}
	ZMM9  = &Register{"zmm9", TypeZMM, 512, 9}
	ZMM10 = &Register{"zmm10", TypeZMM, 512, 10}
	ZMM11 = &Register{"zmm11", TypeZMM, 512, 11}
	ZMM12 = &Register{"zmm12", TypeZMM, 512, 12}
	ZMM13 = &Register{"zmm13", TypeZMM, 512, 13}
	ZMM14 = &Register{"zmm14", TypeZMM, 512, 14}
	ZMM15 = &Register{"zmm15", TypeZMM, 512, 15}
	ZMM16 = &Register{"zmm16", TypeZMM, 512, 16}
	ZMM17 = &Register{"zmm17", TypeZMM, 512, 17}
	ZMM18 = &Register{"zmm18", TypeZMM, 512, 18}
	ZMM19 = &Register{"zmm19", TypeZMM, 512, 19}
	ZMM20 = &Register{"zmm20", TypeZMM, 512, 20}
	ZMM21 = &Register{"zmm21", TypeZMM, 512, 21}
	ZMM22 = &Register{"zmm22", TypeZMM, 512, 22}
	ZMM23 = &Register{"zmm23", TypeZMM, 512, 23}
	ZMM24 = &Register{"zmm24", TypeZMM, 512, 24}
	ZMM25 = &Register{"zmm25", TypeZMM, 512, 25}
	ZMM26 = &Register{"zmm26", TypeZMM, 512, 26}
	ZMM27 = &Register{"zmm27", TypeZMM, 512, 27}
	ZMM28 = &Register{"zmm28", TypeZMM, 512, 28}
	ZMM29 = &Register{"zmm29", TypeZMM, 512, 29}
	ZMM30 = &Register{"zmm30", TypeZMM, 512, 30}
	ZMM31 = &Register{"zmm31", TypeZMM, 512, 31}
)

// Register files, indexed by register number.
var (
	gpr8 = [...]*Register{
		AL, CL, DL, BL, SPL, BPL, SIL, DIL,
		R8B, R9B, R10B, R11B, R12B, R13B, R14B, R15B,
	}
	gpr8Legacy = [...]*Register{
		AL, CL, DL, BL, AH, CH, DH, BH,
	}
	gpr16 = [...]*Register{
		AX, CX, DX, BX, SP, BP, SI, DI,
		R8W, R9W, R10W, R11W, R12W, R13W, R14W, R15W,
	}
	gpr32 = [...]*Register{
		EAX, ECX, EDX, EBX, ESP, EBP, ESI, EDI,
		R8D, R9D, R10D, R11D, R12D, R13D, R14D, R15D,
	}
	gpr64 = [...]*Register{
		RAX, RCX, RDX, RBX, RSP, RBP, RSI, RDI,
		R8, R9, R10, R11, R12, R13, R14, R15,
	}
	segments = [...]*Register{
		ES, CS, SS, DS, FS, GS,
	}
	x87 = [...]*Register{
		ST0, ST1, ST2, ST3, ST4, ST5, ST6, ST7,
	}
	control = [...]*Register{
		CR0, CR1, CR2, CR3, CR4, CR5, CR6, CR7,
		CR8, CR9, CR10, CR11, CR12, CR13, CR14, CR15,
	}
	debug = [...]*Register{
		DR0, DR1, DR2, DR3, DR4, DR5, DR6, DR7,
		DR8, DR9, DR10, DR11, DR12, DR13, DR14, DR15,
	}
	opmask = [...]*Register{
		K0, K1, K2, K3, K4, K5, K6, K7,
	}
	mmx = [...]*Register{
		MM0, MM1, MM2, MM3, MM4, MM5, MM6, MM7,
	}
	tiles = [...]*Register{
		TMM0, TMM1, TMM2, TMM3, TMM4, TMM5, TMM6, TMM7,
	}
	xmm = [...]*Register{
		XMM0, XMM1, XMM2, XMM3, XMM4, XMM5, XMM6, XMM7,
		XMM8, XMM9, XMM10, XMM11, XMM12, XMM13, XMM14, XMM15,
		XMM16, XMM17, XMM18, XMM19, XMM20, XMM21, XMM22, XMM23,
		XMM24, XMM25, XMM26, XMM27, XMM28, XMM29, XMM30, XMM31,
	}
	ymm = [...]*Register{
		YMM0, YMM1, YMM2, YMM3, YMM4, YMM5, YMM6, YMM7,
		YMM8, YMM9, YMM10, YMM11, YMM12, YMM13, YMM14, YMM15,
		YMM16, YMM17, YMM18, YMM19, YMM20, YMM21, YMM22, YMM23,
		YMM24, YMM25, YMM26, YMM27, YMM28, YMM29, YMM30, YMM31,
	}
	zmm = [...]*Register{
		ZMM0, ZMM1, ZMM2, ZMM3, ZMM4, ZMM5, ZMM6, ZMM7,
		ZMM8, ZMM9, ZMM10, ZMM11, ZMM12, ZMM13, ZMM14, ZMM15,
		ZMM16, ZMM17, ZMM18, ZMM19, ZMM20, ZMM21, ZMM22, ZMM23,
		ZMM24, ZMM25, ZMM26, ZMM27, ZMM28, ZMM29, ZMM30, ZMM31,
	}
)

// Registers contains every register
// exactly once.
var Registers []*Register

// RegistersByName maps lower case register
// names to registers.
var RegistersByName = make(map[string]*Register)

func init() {
	add := func(regs ...*Register) {
		for _, reg := range regs {
			Registers = append(Registers, reg)
			RegistersByName[reg.Name] = reg
		}
	}

	add(gpr8[:]...)
	add(AH, CH, DH, BH)
	add(gpr16[:]...)
	add(gpr32[:]...)
	add(gpr64[:]...)
	add(IP, EIP, RIP, FLAGS, EFLAGS, RFLAGS, MXCSR)
	add(segments[:]...)
	add(x87[:]...)
	add(control[:]...)
	add(debug[:]...)
	add(opmask[:]...)
	add(mmx[:]...)
	add(tiles[:]...)
	add(xmm[:]...)
	add(ymm[:]...)
	add(zmm[:]...)
}

// GeneralPurpose returns the general purpose
// register with the given size and number.
//
// Without a REX prefix, 8-bit registers 4-7
// select AH, CH, DH, and BH.
func GeneralPurpose(bits int, num uint8, rex bool) *Register {
	if num >= 16 {
		return nil
	}

	switch bits {
	case 8:
		if !rex && num < 8 {
			return gpr8Legacy[num]
		}

		return gpr8[num]
	case 16:
		return gpr16[num]
	case 32:
		return gpr32[num]
	case 64:
		return gpr64[num]
	}

	return nil
}

// Vector returns the XMM, YMM, or ZMM
// register with the given size and number.
func Vector(bits int, num uint8) *Register {
	if num >= 32 {
		return nil
	}

	switch bits {
	case 128:
		return xmm[num]
	case 256:
		return ymm[num]
	case 512:
		return zmm[num]
	}

	return nil
}

// lookup returns regs[num], or nil if
// num is out of range.
func lookup(regs []*Register, num uint8) *Register {
	if int(num) >= len(regs) {
		return nil
	}

	return regs[num]
}

func Segment(num uint8) *Register { return lookup(segments[:], num) }
func Control(num uint8) *Register { return lookup(control[:], num) }
func Debug(num uint8) *Register   { return lookup(debug[:], num) }
func Opmask(num uint8) *Register  { return lookup(opmask[:], num) }
func MMX(num uint8) *Register     { return lookup(mmx[:], num) }
func Tile(num uint8) *Register    { return lookup(tiles[:], num) }
func X87(num uint8) *Register     { return lookup(x87[:], num) }

// InstructionPointer returns the instruction
// pointer register of the given size.
func InstructionPointer(bits int) *Register {
	switch bits {
	case 16:
		return IP
	case 32:
		return EIP
	case 64:
		return RIP
	}

	return nil
}

// Flags returns the flags register of the
// given size.
func Flags(bits int) *Register {
	switch bits {
	case 16:
		return FLAGS
	case 32:
		return EFLAGS
	case 64:
		return RFLAGS
	}

	return nil
}

// RegisterType categorises an x86
// register.
type RegisterType uint8

const (
	_ RegisterType = iota
	TypeGeneralPurpose
	TypeInstructionPointer
	TypeFlags
	TypeStatus
	TypeSegment
	TypeX87
	TypeControl
	TypeDebug
	TypeOpmask
	TypeMMX
	TypeTMM
	TypeXMM
	TypeYMM
	TypeZMM
)

func (t RegisterType) String() string {
	switch t {
	case TypeGeneralPurpose:
		return "general purpose register"
	case TypeInstructionPointer:
		return "instruction pointer register"
	case TypeFlags:
		return "flags register"
	case TypeStatus:
		return "status register"
	case TypeSegment:
		return "segment register"
	case TypeX87:
		return "x87 register"
	case TypeControl:
		return "control register"
	case TypeDebug:
		return "debug register"
	case TypeOpmask:
		return "opmask register"
	case TypeMMX:
		return "MMX register"
	case TypeTMM:
		return "TMM register"
	case TypeXMM:
		return "XMM register"
	case TypeYMM:
		return "YMM register"
	case TypeZMM:
		return "ZMM register"
	default:
		return fmt.Sprintf("RegisterType(%d)", t)
	}
}

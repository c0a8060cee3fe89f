// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"fmt"
)

// Flag effects shared by many forms.
const (
	flagsArith      = "MUST [ of-mod sf-mod zf-mod af-mod pf-mod cf-mod ]"
	flagsCarry      = "MUST [ of-mod sf-mod zf-mod af-mod pf-mod cf-tst cf-mod ]"
	flagsLogic      = "MUST [ of-0 sf-mod zf-mod af-u pf-mod cf-0 ]"
	flagsIncDec     = "MUST [ of-mod sf-mod zf-mod af-mod pf-mod ]"
	flagsMul        = "MUST [ of-mod sf-u zf-u af-u pf-u cf-mod ]"
	flagsUndefined  = "MUST [ of-u sf-u zf-u af-u pf-u cf-u ]"
	flagsShiftOne   = "MUST [ of-mod sf-mod zf-mod af-u pf-mod cf-mod ]"
	flagsShift      = "MAY [ of-u sf-mod zf-mod af-u pf-mod cf-mod ]"
	flagsRotateOne  = "MUST [ of-mod cf-mod ]"
	flagsRotate     = "MAY [ of-u cf-mod ]"
	flagsRotateCOne = "MUST [ of-mod cf-tst cf-mod ]"
	flagsRotateC    = "MAY [ of-u cf-tst cf-mod ]"
	flagsBitTest    = "MUST [ of-u sf-u af-u pf-u cf-mod ]"
	flagsBitScan    = "MUST [ of-u sf-u zf-mod af-u pf-u cf-u ]"
	flagsCount      = "MUST [ of-u sf-u zf-mod af-u pf-u cf-mod ]"
	flagsPopcnt     = "MUST [ of-0 sf-0 zf-mod af-0 pf-0 cf-0 ]"
	flagsTest       = "MUST [ of-0 sf-0 zf-mod af-0 pf-0 cf-mod ]"
	flagsCompare    = "MUST [ of-0 sf-0 zf-mod af-0 pf-mod cf-mod ]"
	flagsStrCmp     = "MUST [ of-mod sf-mod zf-mod af-mod pf-mod cf-mod df-tst ]"
	flagsRepStrCmp  = "MAY [ of-mod sf-mod zf-mod af-mod pf-mod cf-mod df-tst zf-tst ]"
	flagsDF         = "MUST [ df-tst ]"
	flagsPush       = "MUST [ of-tst sf-tst zf-tst af-tst pf-tst cf-tst tf-tst if-tst df-tst nt-tst ac-tst id-tst ]"
	flagsPop        = "MUST [ of-pop sf-pop zf-pop af-pop pf-pop cf-pop tf-pop if-pop df-pop nt-pop ac-pop id-pop ]"
	flagsLAHF       = "MUST [ sf-tst zf-tst af-tst pf-tst cf-tst ]"
	flagsSAHF       = "MUST [ sf-ah zf-ah af-ah pf-ah cf-ah ]"
	flagsX87        = "MUST [ fc0-u fc1-mod fc2-u fc3-u ]"
	flagsX87Compare = "MUST [ fc0-mod fc1-mod fc2-mod fc3-mod ]"
	flagsAndN       = "MUST [ of-0 sf-mod zf-mod af-u pf-u cf-0 ]"
	flagsBLS        = "MUST [ of-0 sf-mod zf-mod af-u pf-u cf-mod ]"
	flagsBEXTR      = "MUST [ of-0 sf-u zf-mod af-u pf-u cf-0 ]"
	flagsPCMPSTR    = "MUST [ of-mod sf-mod zf-mod af-0 pf-0 cf-mod ]"
)

var (
	lockable   = attrs(AttrLockable, AttrHLEAcqAble, AttrHLERelAble)
	stackPush  = attrs(AttrDefault64, AttrStackPush)
	stackPop   = attrs(AttrDefault64, AttrStackPop)
	mxcsr      = attrs(AttrMXCSR)
	scalar     = attrs(AttrMXCSR, AttrSimdScalar)
	aligned    = attrs(AttrRequiresAlignment)
	broadcast  = attrs(AttrBroadcastEnabled, AttrMXCSR)
	maskOp     = attrs(AttrMaskOp)
	prefetch   = attrs(AttrPrefetch)
	privileged = attrs(AttrRing0)
)

// formRows returns the instruction form
// table.
func formRows() []formRow {
	groups := [][]formRow{
		baseRows,
		aluRows(),
		conditionRows(),
		shiftRows(),
		stringRows(),
		x87Rows(),
		sseRows(),
		simdIntegerRows(),
		avxRows(),
		fmaRows(),
		bmiRows(),
		avx512Rows(),
		kmaskRows(),
		amxRows,
		xopRows,
	}

	var rows []formRow
	for _, group := range groups {
		rows = append(rows, group...)
	}

	return rows
}

var baseRows = []formRow{
	// Unary arithmetic.
	{"INC", "INC_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "FE /0", "r/m8:rw", lockable, flagsIncDec},
	{"INC", "INC_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "FF /0", "r/mv:rw", lockable, flagsIncDec},
	{"INC", "INC_GPRv_40", CategoryBinary, ExtensionBase, ISASetI86, modesNot64, "40+rd", "rvop:rw", 0, flagsIncDec},
	{"DEC", "DEC_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "FE /1", "r/m8:rw", lockable, flagsIncDec},
	{"DEC", "DEC_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "FF /1", "r/mv:rw", lockable, flagsIncDec},
	{"DEC", "DEC_GPRv_48", CategoryBinary, ExtensionBase, ISASetI86, modesNot64, "48+rd", "rvop:rw", 0, flagsIncDec},
	{"NOT", "NOT_*", CategoryLogical, ExtensionBase, ISASetI86, modesAll, "F6 /2", "r/m8:rw", lockable, ""},
	{"NOT", "NOT_*", CategoryLogical, ExtensionBase, ISASetI86, modesAll, "F7 /2", "r/mv:rw", lockable, ""},
	{"NEG", "NEG_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F6 /3", "r/m8:rw", lockable, flagsArith},
	{"NEG", "NEG_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F7 /3", "r/mv:rw", lockable, flagsArith},

	// Multiplication and division.
	{"MUL", "MUL_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F6 /4", "r/m8:r al:r:supp ax:w:supp", 0, flagsMul},
	{"MUL", "MUL_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F7 /4", "r/mv:r rAX:rw:supp rDX:w:supp", 0, flagsMul},
	{"IMUL", "IMUL_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F6 /5", "r/m8:r al:r:supp ax:w:supp", 0, flagsMul},
	{"IMUL", "IMUL_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F7 /5", "r/mv:r rAX:rw:supp rDX:w:supp", 0, flagsMul},
	{"IMUL", "IMUL_GPRv_*", CategoryBinary, ExtensionBase, ISASetI386, modesAll, "0F AF /r", "rv:rw r/mv:r", 0, flagsMul},
	{"IMUL", "IMUL_GPRv_*_IMMz", CategoryBinary, ExtensionBase, ISASetI186, modesAll, "69 /r id", "rv:w r/mv:r immz", 0, flagsMul},
	{"IMUL", "IMUL_GPRv_*_IMMb", CategoryBinary, ExtensionBase, ISASetI186, modesAll, "6B /r ib", "rv:w r/mv:r imm8", 0, flagsMul},
	{"DIV", "DIV_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F6 /6", "r/m8:r ax:rw:supp", 0, flagsUndefined},
	{"DIV", "DIV_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F7 /6", "r/mv:r rAX:rw:supp rDX:rw:supp", 0, flagsUndefined},
	{"IDIV", "IDIV_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F6 /7", "r/m8:r ax:rw:supp", 0, flagsUndefined},
	{"IDIV", "IDIV_*", CategoryBinary, ExtensionBase, ISASetI86, modesAll, "F7 /7", "r/mv:r rAX:rw:supp rDX:rw:supp", 0, flagsUndefined},

	// Test.
	{"TEST", "TEST_*_GPR8", CategoryLogical, ExtensionBase, ISASetI86, modesAll, "84 /r", "r/m8:r r8:r", 0, flagsLogic},
	{"TEST", "TEST_*_GPRv", CategoryLogical, ExtensionBase, ISASetI86, modesAll, "85 /r", "r/mv:r rv:r", 0, flagsLogic},
	{"TEST", "TEST_AL_IMMb", CategoryLogical, ExtensionBase, ISASetI86, modesAll, "A8 ib", "al:r imm8", 0, flagsLogic},
	{"TEST", "TEST_OrAX_IMMz", CategoryLogical, ExtensionBase, ISASetI86, modesAll, "A9 id", "rAX:r immz", 0, flagsLogic},
	{"TEST", "TEST_*_IMMb", CategoryLogical, ExtensionBase, ISASetI86, modesAll, "F6 /0 ib", "r/m8:r imm8", 0, flagsLogic},
	{"TEST", "TEST_*_IMMz", CategoryLogical, ExtensionBase, ISASetI86, modesAll, "F7 /0 id", "r/mv:r immz", 0, flagsLogic},

	// Data movement.
	{"MOV", "MOV_*_GPR8", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "88 /r", "r/m8:w r8:r", attrs(AttrHLERelAble), ""},
	{"MOV", "MOV_*_GPRv", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "89 /r", "r/mv:w rv:r", attrs(AttrHLERelAble), ""},
	{"MOV", "MOV_GPR8_*", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "8A /r", "r8:w r/m8:r", 0, ""},
	{"MOV", "MOV_GPRv_*", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "8B /r", "rv:w r/mv:r", 0, ""},
	{"MOV", "MOV_GPRv_SEG", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "8C /r", "rmrv:w sreg:r", 0, ""},
	{"MOV", "MOV_MEMw_SEG", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "8C /r", "m16:w sreg:r", 0, ""},
	{"MOV", "MOV_SEG_GPR16", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "8E /r", "sreg:w rmr16:r", 0, ""},
	{"MOV", "MOV_SEG_MEMw", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "8E /r", "sreg:w m16:r", 0, ""},
	{"MOV", "MOV_AL_MEMb", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "A0 cd", "al:w moffs8:r", 0, ""},
	{"MOV", "MOV_OrAX_MEMv", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "A1 cd", "rAX:w moffsv:r", 0, ""},
	{"MOV", "MOV_MEMb_AL", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "A2 cd", "moffs8:w al:r", 0, ""},
	{"MOV", "MOV_MEMv_OrAX", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "A3 cd", "moffsv:w rAX:r", 0, ""},
	{"MOV", "MOV_GPR8_IMMb", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "B0+rb ib", "r8op:w imm8u", 0, ""},
	{"MOV", "MOV_GPRv_IMMv", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "B8+rd id", "rvop:w immv", 0, ""},
	{"MOV", "MOV_*_IMMb", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "C6 /0 ib", "r/m8:w imm8", attrs(AttrHLERelAble), ""},
	{"MOV", "MOV_*_IMMz", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "C7 /0 id", "r/mv:w immz", attrs(AttrHLERelAble), ""},
	{"MOV_CR", "MOV_CR_CR_GPR32", CategoryDataXfer, ExtensionBase, ISASetI386, modesNot64, "0F 22 /r", "cr:w rmr32:r", privileged, flagsUndefined},
	{"MOV_CR", "MOV_CR_CR_GPR64", CategoryDataXfer, ExtensionBase, ISASetI386, modesOnly64, "0F 22 /r", "cr:w rmr64:r", privileged, flagsUndefined},
	{"MOV_CR", "MOV_CR_GPR32_CR", CategoryDataXfer, ExtensionBase, ISASetI386, modesNot64, "0F 20 /r", "rmr32:w cr:r", privileged, flagsUndefined},
	{"MOV_CR", "MOV_CR_GPR64_CR", CategoryDataXfer, ExtensionBase, ISASetI386, modesOnly64, "0F 20 /r", "rmr64:w cr:r", privileged, flagsUndefined},
	{"MOV_DR", "MOV_DR_DR_GPR32", CategoryDataXfer, ExtensionBase, ISASetI386, modesNot64, "0F 23 /r", "dr:w rmr32:r", privileged, ""},
	{"MOV_DR", "MOV_DR_DR_GPR64", CategoryDataXfer, ExtensionBase, ISASetI386, modesOnly64, "0F 23 /r", "dr:w rmr64:r", privileged, ""},
	{"MOV_DR", "MOV_DR_GPR32_DR", CategoryDataXfer, ExtensionBase, ISASetI386, modesNot64, "0F 21 /r", "rmr32:w dr:r", privileged, ""},
	{"MOV_DR", "MOV_DR_GPR64_DR", CategoryDataXfer, ExtensionBase, ISASetI386, modesOnly64, "0F 21 /r", "rmr64:w dr:r", privileged, ""},
	{"MOVZX", "MOVZX_GPRv_*", CategoryDataXfer, ExtensionBase, ISASetI386, modesAll, "0F B6 /r", "rv:w r/m8:r", 0, ""},
	{"MOVZX", "MOVZX_GPRv_*", CategoryDataXfer, ExtensionBase, ISASetI386, modesAll, "0F B7 /r", "rv:w r/m16:r", 0, ""},
	{"MOVSX", "MOVSX_GPRv_*", CategoryDataXfer, ExtensionBase, ISASetI386, modesAll, "0F BE /r", "rv:w r/m8:r:i8", 0, ""},
	{"MOVSX", "MOVSX_GPRv_*", CategoryDataXfer, ExtensionBase, ISASetI386, modesAll, "0F BF /r", "rv:w r/m16:r:i16", 0, ""},
	{"MOVSXD", "MOVSXD_GPRv_*", CategoryDataXfer, ExtensionLongMode, ISASetLongMode, modesOnly64, "63 /r", "rv:w r/m32:r:i32", 0, ""},
	{"ARPL", "ARPL_*_GPR16", CategorySystem, ExtensionBase, ISASetI286Real, modesNot64, "63 /r", "r/m16:rw r16:r", 0, "MUST [ zf-mod ]"},
	{"LEA", "LEA_GPRv_AGEN", CategoryMisc, ExtensionBase, ISASetI86, modesAll, "8D /r", "rv:w agen", 0, ""},
	{"XCHG", "XCHG_*_GPR8", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "86 /r", "r/m8:rw r8:rw", lockable | attrs(AttrLocked), ""},
	{"XCHG", "XCHG_*_GPRv", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "87 /r", "r/mv:rw rv:rw", lockable | attrs(AttrLocked), ""},
	{"XCHG", "XCHG_GPRv_OrAX", CategoryDataXfer, ExtensionBase, ISASetI86, modesAll, "90+rd", "rvop:rw rAX:rw", 0, ""},
	{"BSWAP", "BSWAP_GPRv", CategoryDataXfer, ExtensionBase, ISASetI486Real, modesAll, "0F C8+rd", "ryop:rw", 0, ""},
	{"CMPXCHG", "CMPXCHG_*_GPR8", CategorySemaphore, ExtensionBase, ISASetI486Real, modesAll, "0F B0 /r", "r/m8:rcw al:rcw r8:r", lockable, flagsArith},
	{"CMPXCHG", "CMPXCHG_*_GPRv", CategorySemaphore, ExtensionBase, ISASetI486Real, modesAll, "0F B1 /r", "r/mv:rcw rAX:rcw rv:r", lockable, flagsArith},
	{"XADD", "XADD_*_GPR8", CategorySemaphore, ExtensionBase, ISASetI486Real, modesAll, "0F C0 /r", "r/m8:rw r8:rw", lockable, flagsArith},
	{"XADD", "XADD_*_GPRv", CategorySemaphore, ExtensionBase, ISASetI486Real, modesAll, "0F C1 /r", "r/mv:rw rv:rw", lockable, flagsArith},

	// Conversions.
	{"CBW", "CBW", CategoryConvert, ExtensionBase, ISASetI86, modesAll, "o16 98", "ax:w:supp al:r:supp", 0, ""},
	{"CWDE", "CWDE", CategoryConvert, ExtensionBase, ISASetI386, modesAll, "o32 98", "eax:w:supp ax:r:supp", 0, ""},
	{"CDQE", "CDQE", CategoryConvert, ExtensionLongMode, ISASetLongMode, modesOnly64, "o64 98", "rax:w:supp eax:r:supp", 0, ""},
	{"CWD", "CWD", CategoryConvert, ExtensionBase, ISASetI86, modesAll, "o16 99", "dx:w:supp ax:r:supp", 0, ""},
	{"CDQ", "CDQ", CategoryConvert, ExtensionBase, ISASetI386, modesAll, "o32 99", "edx:w:supp eax:r:supp", 0, ""},
	{"CQO", "CQO", CategoryConvert, ExtensionLongMode, ISASetLongMode, modesOnly64, "o64 99", "rdx:w:supp rax:r:supp", 0, ""},

	// Bit manipulation.
	{"BT", "BT_*_GPRv", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "0F A3 /r", "r/mv:r rv:r", 0, flagsBitTest},
	{"BTS", "BTS_*_GPRv", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "0F AB /r", "r/mv:rw rv:r", lockable, flagsBitTest},
	{"BTR", "BTR_*_GPRv", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "0F B3 /r", "r/mv:rw rv:r", lockable, flagsBitTest},
	{"BTC", "BTC_*_GPRv", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "0F BB /r", "r/mv:rw rv:r", lockable, flagsBitTest},
	{"BT", "BT_*_IMMb", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "0F BA /4 ib", "r/mv:r imm8u", 0, flagsBitTest},
	{"BTS", "BTS_*_IMMb", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "0F BA /5 ib", "r/mv:rw imm8u", lockable, flagsBitTest},
	{"BTR", "BTR_*_IMMb", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "0F BA /6 ib", "r/mv:rw imm8u", lockable, flagsBitTest},
	{"BTC", "BTC_*_IMMb", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "0F BA /7 ib", "r/mv:rw imm8u", lockable, flagsBitTest},
	{"BSF", "BSF_GPRv_*", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "NFx 0F BC /r", "rv:cw r/mv:r", 0, flagsBitScan},
	{"BSR", "BSR_GPRv_*", CategoryBitByte, ExtensionBase, ISASetI386, modesAll, "NFx 0F BD /r", "rv:cw r/mv:r", 0, flagsBitScan},
	{"TZCNT", "TZCNT_GPRv_*", CategoryBMI1, ExtensionBMI1, ISASetBMI1, modesAll, "F3 0F BC /r", "rv:w r/mv:r", 0, flagsCount},
	{"LZCNT", "LZCNT_GPRv_*", CategoryBitByte, ExtensionLZCNT, ISASetLZCNT, modesAll, "F3 0F BD /r", "rv:w r/mv:r", 0, flagsCount},
	{"POPCNT", "POPCNT_GPRv_*", CategorySSE, ExtensionSSE42, ISASetPOPCNT, modesAll, "F3 0F B8 /r", "rv:w r/mv:r", 0, flagsPopcnt},
	{"SHLD", "SHLD_*_GPRv_IMMb", CategoryShift, ExtensionBase, ISASetI386, modesAll, "0F A4 /r ib", "r/mv:rw rv:r imm8u", attrs(AttrFlagsDependOnCount), flagsShift},
	{"SHLD", "SHLD_*_GPRv_CL", CategoryShift, ExtensionBase, ISASetI386, modesAll, "0F A5 /r", "r/mv:rw rv:r cl:r", attrs(AttrFlagsDependOnCount), flagsShift},
	{"SHRD", "SHRD_*_GPRv_IMMb", CategoryShift, ExtensionBase, ISASetI386, modesAll, "0F AC /r ib", "r/mv:rw rv:r imm8u", attrs(AttrFlagsDependOnCount), flagsShift},
	{"SHRD", "SHRD_*_GPRv_CL", CategoryShift, ExtensionBase, ISASetI386, modesAll, "0F AD /r", "r/mv:rw rv:r cl:r", attrs(AttrFlagsDependOnCount), flagsShift},

	// Flag operations.
	{"CLC", "CLC", CategoryFlagOp, ExtensionBase, ISASetI86, modesAll, "F8", "", 0, "MUST [ cf-0 ]"},
	{"STC", "STC", CategoryFlagOp, ExtensionBase, ISASetI86, modesAll, "F9", "", 0, "MUST [ cf-1 ]"},
	{"CMC", "CMC", CategoryFlagOp, ExtensionBase, ISASetI86, modesAll, "F5", "", 0, "MUST [ cf-tst cf-mod ]"},
	{"CLD", "CLD", CategoryFlagOp, ExtensionBase, ISASetI86, modesAll, "FC", "", 0, "MUST [ df-0 ]"},
	{"STD", "STD", CategoryFlagOp, ExtensionBase, ISASetI86, modesAll, "FD", "", 0, "MUST [ df-1 ]"},
	{"CLI", "CLI", CategoryFlagOp, ExtensionBase, ISASetI86, modesAll, "FA", "", 0, "MUST [ if-0 ]"},
	{"STI", "STI", CategoryFlagOp, ExtensionBase, ISASetI86, modesAll, "FB", "", 0, "MUST [ if-1 ]"},
	{"LAHF", "LAHF", CategoryFlagOp, ExtensionBase, ISASetLAHF, modesAll, "9F", "ah:w:supp", 0, flagsLAHF},
	{"SAHF", "SAHF", CategoryFlagOp, ExtensionBase, ISASetLAHF, modesAll, "9E", "ah:r:supp", 0, flagsSAHF},
	{"PUSHF", "PUSHF", CategoryPush, ExtensionBase, ISASetI86, modesAll, "o16 9C", "stackv:w sSP:rw", stackPush, flagsPush},
	{"PUSHFD", "PUSHFD", CategoryPush, ExtensionBase, ISASetI386, modesNot64, "o32 9C", "stackv:w sSP:rw", stackPush, flagsPush},
	{"PUSHFQ", "PUSHFQ", CategoryPush, ExtensionLongMode, ISASetLongMode, modesOnly64, "o64 9C", "stackv:w sSP:rw", stackPush, flagsPush},
	{"POPF", "POPF", CategoryPop, ExtensionBase, ISASetI86, modesAll, "o16 9D", "stackv:r sSP:rw", stackPop, flagsPop},
	{"POPFD", "POPFD", CategoryPop, ExtensionBase, ISASetI386, modesNot64, "o32 9D", "stackv:r sSP:rw", stackPop, flagsPop},
	{"POPFQ", "POPFQ", CategoryPop, ExtensionLongMode, ISASetLongMode, modesOnly64, "o64 9D", "stackv:r sSP:rw", stackPop, flagsPop},

	// Stack.
	{"PUSH", "PUSH_GPRv_50", CategoryPush, ExtensionBase, ISASetI86, modesAll, "50+rd", "rvop:r stackv:w sSP:rw", stackPush, ""},
	{"POP", "POP_GPRv_58", CategoryPop, ExtensionBase, ISASetI86, modesAll, "58+rd", "rvop:w stackv:r sSP:rw", stackPop, ""},
	{"PUSH", "PUSH_*", CategoryPush, ExtensionBase, ISASetI86, modesAll, "FF /6", "r/mv:r stackv:w sSP:rw", stackPush, ""},
	{"POP", "POP_*", CategoryPop, ExtensionBase, ISASetI86, modesAll, "8F /0", "r/mv:w stackv:r sSP:rw", stackPop, ""},
	{"PUSH", "PUSH_IMMb", CategoryPush, ExtensionBase, ISASetI186, modesAll, "6A ib", "imm8 stackv:w sSP:rw", stackPush, ""},
	{"PUSH", "PUSH_IMMz", CategoryPush, ExtensionBase, ISASetI186, modesAll, "68 id", "immz stackv:w sSP:rw", stackPush, ""},
	{"LEAVE", "LEAVE", CategoryMisc, ExtensionBase, ISASetI186, modesAll, "C9", "rBP:rw:supp sSP:rw stackv:r", stackPop, ""},
	{"ENTER", "ENTER_IMMw_IMMb", CategoryMisc, ExtensionBase, ISASetI186, modesAll, "C8 iw ib", "imm16 imm8u rBP:rw:supp sSP:rw stackv:w", stackPush, ""},

	// Control flow.
	{"JMP", "JMP_RELBRb", CategoryUncondBr, ExtensionBase, ISASetI86, modesAll, "EB cb", "rel8 rIP:rw", 0, ""},
	{"JMP", "JMP_RELBRz", CategoryUncondBr, ExtensionBase, ISASetI86, modesAll, "E9 cd", "relz rIP:rw", attrs(AttrForce64), ""},
	{"JMP", "JMP_*", CategoryUncondBr, ExtensionBase, ISASetI86, modesAll, "FF /4", "r/mv:r rIP:w", attrs(AttrForce64), ""},
	{"CALL_NEAR", "CALL_NEAR_RELBRz", CategoryCall, ExtensionBase, ISASetI86, modesAll, "E8 cd", "relz rIP:rw stackv:w sSP:rw", attrs(AttrForce64, AttrStackPush), ""},
	{"CALL_NEAR", "CALL_NEAR_*", CategoryCall, ExtensionBase, ISASetI86, modesAll, "FF /2", "r/mv:r rIP:rw stackv:w sSP:rw", attrs(AttrForce64, AttrStackPush), ""},
	{"RET_NEAR", "RET_NEAR", CategoryRet, ExtensionBase, ISASetI86, modesAll, "C3", "stackv:r sSP:rw rIP:w", stackPop, ""},
	{"RET_NEAR", "RET_NEAR_IMMw", CategoryRet, ExtensionBase, ISASetI86, modesAll, "C2 iw", "imm16 stackv:r sSP:rw rIP:w", stackPop, ""},
	{"JCXZ", "JCXZ_RELBRb", CategoryCondBr, ExtensionBase, ISASetI86, modesNot64, "a16 E3 cb", "rel8 cx:r:supp rIP:rcw", 0, ""},
	{"JECXZ", "JECXZ_RELBRb", CategoryCondBr, ExtensionBase, ISASetI386, modesAll, "a32 E3 cb", "rel8 ecx:r:supp rIP:rcw", 0, ""},
	{"JRCXZ", "JRCXZ_RELBRb", CategoryCondBr, ExtensionLongMode, ISASetLongMode, modesOnly64, "a64 E3 cb", "rel8 rcx:r:supp rIP:rcw", 0, ""},
	{"LOOP", "LOOP_RELBRb", CategoryCondBr, ExtensionBase, ISASetI86, modesAll, "E2 cb", "rel8 aCX:rw rIP:rcw", 0, ""},
	{"LOOPE", "LOOPE_RELBRb", CategoryCondBr, ExtensionBase, ISASetI86, modesAll, "E1 cb", "rel8 aCX:rw rIP:rcw", 0, "MUST [ zf-tst ]"},
	{"LOOPNE", "LOOPNE_RELBRb", CategoryCondBr, ExtensionBase, ISASetI86, modesAll, "E0 cb", "rel8 aCX:rw rIP:rcw", 0, "MUST [ zf-tst ]"},

	// Interrupts and system.
	{"INT3", "INT3", CategoryInterrupt, ExtensionBase, ISASetI86, modesAll, "CC", "", 0, "MUST [ tf-0 if-0 ]"},
	{"INT", "INT_IMMb", CategoryInterrupt, ExtensionBase, ISASetI86, modesAll, "CD ib", "imm8u", 0, "MUST [ tf-0 if-0 ]"},
	{"INTO", "INTO", CategoryInterrupt, ExtensionBase, ISASetI86, modesNot64, "CE", "", 0, "MUST [ of-tst tf-0 if-0 ]"},
	{"UD2", "UD2", CategoryMisc, ExtensionBase, ISASetPentiumReal, modesAll, "0F 0B", "", 0, ""},
	{"HLT", "HLT", CategorySystem, ExtensionBase, ISASetI86, modesAll, "F4", "", privileged, ""},
	{"NOP", "NOP_90", CategoryNop, ExtensionBase, ISASetI86, modesAll, "REX.B=0 90", "", attrs(AttrNop), ""},
	{"NOP", "NOP_*_0F1F", CategoryWideNop, ExtensionBase, ISASetPentiumReal, modesAll, "0F 1F /0", "r/mv:r", attrs(AttrNop), ""},
	{"PAUSE", "PAUSE", CategoryMisc, ExtensionPause, ISASetPause, modesAll, "F3 90", "", 0, ""},
	{"CPUID", "CPUID", CategoryMisc, ExtensionBase, ISASetI486Real, modesAll, "0F A2", "eax:rw:supp ebx:w:supp ecx:rcw:supp edx:w:supp", 0, ""},
	{"RDTSC", "RDTSC", CategorySystem, ExtensionBase, ISASetPentiumReal, modesAll, "0F 31", "eax:w:supp edx:w:supp", 0, ""},
	{"RDTSCP", "RDTSCP", CategorySystem, ExtensionRDTSCP, ISASetRDTSCP, modesAll, "0F 01 F9", "eax:w:supp edx:w:supp ecx:w:supp", 0, ""},
	{"RDMSR", "RDMSR", CategorySystem, ExtensionBase, ISASetPentiumReal, modesAll, "0F 32", "eax:w:supp edx:w:supp ecx:r:supp", privileged, ""},
	{"WRMSR", "WRMSR", CategorySystem, ExtensionBase, ISASetPentiumReal, modesAll, "0F 30", "eax:r:supp edx:r:supp ecx:r:supp", privileged, ""},
	{"SYSCALL", "SYSCALL", CategorySyscall, ExtensionLongMode, ISASetLongMode, modesOnly64, "0F 05", "rcx:w:supp r11:w:supp rIP:rw", 0, ""},
	{"SYSRET", "SYSRET", CategorySysret, ExtensionLongMode, ISASetLongMode, modesOnly64, "0F 07", "rcx:r:supp r11:r:supp rIP:w", privileged, ""},
	{"SWAPGS", "SWAPGS", CategorySystem, ExtensionLongMode, ISASetLongMode, modesOnly64, "0F 01 F8", "gs:rw:supp", privileged, ""},
	{"INVLPG", "INVLPG_MEMb", CategorySystem, ExtensionBase, ISASetI486Real, modesAll, "0F 01 /7", "m8:r", privileged, ""},
	{"IN", "IN_AL_IMMb", CategoryIO, ExtensionBase, ISASetI86, modesAll, "E4 ib", "al:w imm8u", 0, ""},
	{"IN", "IN_OeAX_IMMb", CategoryIO, ExtensionBase, ISASetI86, modesAll, "E5 ib", "eAX:w imm8u", 0, ""},
	{"IN", "IN_AL_DX", CategoryIO, ExtensionBase, ISASetI86, modesAll, "EC", "al:w dx:r", 0, ""},
	{"IN", "IN_OeAX_DX", CategoryIO, ExtensionBase, ISASetI86, modesAll, "ED", "eAX:w dx:r", 0, ""},
	{"OUT", "OUT_IMMb_AL", CategoryIO, ExtensionBase, ISASetI86, modesAll, "E6 ib", "imm8u al:r", 0, ""},
	{"OUT", "OUT_IMMb_OeAX", CategoryIO, ExtensionBase, ISASetI86, modesAll, "E7 ib", "imm8u eAX:r", 0, ""},
	{"OUT", "OUT_DX_AL", CategoryIO, ExtensionBase, ISASetI86, modesAll, "EE", "dx:r al:r", 0, ""},
	{"OUT", "OUT_DX_OeAX", CategoryIO, ExtensionBase, ISASetI86, modesAll, "EF", "dx:r eAX:r", 0, ""},
	{"ENDBR64", "ENDBR64", CategoryCET, ExtensionCET, ISASetCET, modesAll, "F3 0F 1E FA", "", 0, ""},
	{"ENDBR32", "ENDBR32", CategoryCET, ExtensionCET, ISASetCET, modesAll, "F3 0F 1E FB", "", 0, ""},

	// Cache control and state management.
	{"CLFLUSH", "CLFLUSH_MEMmprefetch", CategoryMisc, ExtensionCLFSH, ISASetCLFSH, modesAll, "NP 0F AE /7", "m8:r", 0, ""},
	{"LFENCE", "LFENCE", CategoryMisc, ExtensionSSE2, ISASetSSE2, modesAll, "NP 0F AE E8", "", 0, ""},
	{"MFENCE", "MFENCE", CategoryMisc, ExtensionSSE2, ISASetSSE2, modesAll, "NP 0F AE F0", "", 0, ""},
	{"SFENCE", "SFENCE", CategoryMisc, ExtensionSSE, ISASetSSE, modesAll, "NP 0F AE F8", "", 0, ""},
	{"LDMXCSR", "LDMXCSR_MEMd", CategorySSE, ExtensionSSE, ISASetSSE, modesAll, "NP 0F AE /2", "m32:r mxcsr:w", mxcsr, ""},
	{"STMXCSR", "STMXCSR_MEMd", CategorySSE, ExtensionSSE, ISASetSSE, modesAll, "NP 0F AE /3", "m32:w mxcsr:r", mxcsr, ""},
	{"FXSAVE", "FXSAVE_MEMmfpxenv", CategoryX87ALU, ExtensionX87, ISASetFXSAVE, modesAll, "NP 0F AE /0", "m4096:w:struct", 0, ""},
	{"FXRSTOR", "FXRSTOR_MEMmfpxenv", CategoryX87ALU, ExtensionX87, ISASetFXSAVE, modesAll, "NP 0F AE /1", "m4096:r:struct", 0, ""},
	{"XSAVE", "XSAVE_MEMmxsave", CategoryXSAVE, ExtensionXSAVE, ISASetXSAVE, modesAll, "NP 0F AE /4", "m:w:struct edx:r eax:r", 0, ""},
	{"XRSTOR", "XRSTOR_MEMmxsave", CategoryXSAVE, ExtensionXSAVE, ISASetXSAVE, modesAll, "NP 0F AE /5", "m:r:struct edx:r eax:r", 0, ""},
	{"XGETBV", "XGETBV", CategoryXSAVE, ExtensionXSAVE, ISASetXSAVE, modesAll, "NP 0F 01 D0", "ecx:r:supp eax:w:supp edx:w:supp", 0, ""},
	{"PREFETCHNTA", "PREFETCHNTA_MEMmprefetch", CategoryPrefetch, ExtensionSSE, ISASetSSEPrefetch, modesAll, "0F 18 /0", "m8:r", prefetch, ""},
	{"PREFETCHT0", "PREFETCHT0_MEMmprefetch", CategoryPrefetch, ExtensionSSE, ISASetSSEPrefetch, modesAll, "0F 18 /1", "m8:r", prefetch, ""},
	{"PREFETCHT1", "PREFETCHT1_MEMmprefetch", CategoryPrefetch, ExtensionSSE, ISASetSSEPrefetch, modesAll, "0F 18 /2", "m8:r", prefetch, ""},
	{"PREFETCHT2", "PREFETCHT2_MEMmprefetch", CategoryPrefetch, ExtensionSSE, ISASetSSEPrefetch, modesAll, "0F 18 /3", "m8:r", prefetch, ""},
	{"EMMS", "EMMS", CategoryMMX, ExtensionMMX, ISASetPentiumMMX, modesAll, "NP 0F 77", "", 0, ""},
}

var aluOps = []struct {
	name     string
	digit    int
	category Category
	flags    string
	writes   bool
}{
	{"ADD", 0, CategoryBinary, flagsArith, true},
	{"OR", 1, CategoryLogical, flagsLogic, true},
	{"ADC", 2, CategoryBinary, flagsCarry, true},
	{"SBB", 3, CategoryBinary, flagsCarry, true},
	{"AND", 4, CategoryLogical, flagsLogic, true},
	{"SUB", 5, CategoryBinary, flagsArith, true},
	{"XOR", 6, CategoryLogical, flagsLogic, true},
	{"CMP", 7, CategoryBinary, flagsArith, false},
}

// aluRows returns the forms of the eight
// classic two-operand ALU instructions.
func aluRows() []formRow {
	var rows []formRow
	for _, op := range aluOps {
		dst, lock := ":rw", lockable
		if !op.writes {
			dst, lock = ":r", 0
		}

		add := func(iform, encoding, operands string, attrs Attributes, modes modeSet) {
			rows = append(rows, formRow{op.name, op.name + "_" + iform, op.category, ExtensionBase, ISASetI86, modes, encoding, operands, attrs, op.flags})
		}

		base := op.digit * 8
		add("*_GPR8", fmt.Sprintf("%02X /r", base), "r/m8"+dst+" r8:r", lock, modesAll)
		add("*_GPRv", fmt.Sprintf("%02X /r", base+1), "r/mv"+dst+" rv:r", lock, modesAll)
		add("GPR8_*", fmt.Sprintf("%02X /r", base+2), "r8"+dst+" r/m8:r", 0, modesAll)
		add("GPRv_*", fmt.Sprintf("%02X /r", base+3), "rv"+dst+" r/mv:r", 0, modesAll)
		add("AL_IMMb", fmt.Sprintf("%02X ib", base+4), "al"+dst+" imm8", 0, modesAll)
		add("OrAX_IMMz", fmt.Sprintf("%02X id", base+5), "rAX"+dst+" immz", 0, modesAll)
		add("*_IMMb", fmt.Sprintf("80 /%d ib", op.digit), "r/m8"+dst+" imm8", lock, modesAll)
		add("*_IMMz", fmt.Sprintf("81 /%d id", op.digit), "r/mv"+dst+" immz", lock, modesAll)
		add("*_IMMb", fmt.Sprintf("82 /%d ib", op.digit), "r/m8"+dst+" imm8", lock, modesNot64)
		add("*_IMMb", fmt.Sprintf("83 /%d ib", op.digit), "r/mv"+dst+" imm8", lock, modesAll)
	}

	return rows
}

// conditions lists the condition codes
// and the flags each one tests.
var conditions = []struct {
	name  string
	code  byte
	flags string
}{
	{"O", 0x0, "MUST [ of-tst ]"},
	{"NO", 0x1, "MUST [ of-tst ]"},
	{"B", 0x2, "MUST [ cf-tst ]"},
	{"NB", 0x3, "MUST [ cf-tst ]"},
	{"Z", 0x4, "MUST [ zf-tst ]"},
	{"NZ", 0x5, "MUST [ zf-tst ]"},
	{"BE", 0x6, "MUST [ zf-tst cf-tst ]"},
	{"NBE", 0x7, "MUST [ zf-tst cf-tst ]"},
	{"S", 0x8, "MUST [ sf-tst ]"},
	{"NS", 0x9, "MUST [ sf-tst ]"},
	{"P", 0xa, "MUST [ pf-tst ]"},
	{"NP", 0xb, "MUST [ pf-tst ]"},
	{"L", 0xc, "MUST [ sf-tst of-tst ]"},
	{"NL", 0xd, "MUST [ sf-tst of-tst ]"},
	{"LE", 0xe, "MUST [ zf-tst sf-tst of-tst ]"},
	{"NLE", 0xf, "MUST [ zf-tst sf-tst of-tst ]"},
}

// fcmovConditions are the conditions
// supported by FCMOVcc, with their
// opcode and ModR/M base.
var fcmovConditions = []struct {
	name   string
	opcode byte
	modrm  byte
	flags  string
}{
	{"B", 0xda, 0xc0, "MUST [ cf-tst ]"},
	{"E", 0xda, 0xc8, "MUST [ zf-tst ]"},
	{"BE", 0xda, 0xd0, "MUST [ zf-tst cf-tst ]"},
	{"U", 0xda, 0xd8, "MUST [ pf-tst ]"},
	{"NB", 0xdb, 0xc0, "MUST [ cf-tst ]"},
	{"NE", 0xdb, 0xc8, "MUST [ zf-tst ]"},
	{"NBE", 0xdb, 0xd0, "MUST [ zf-tst cf-tst ]"},
	{"NU", 0xdb, 0xd8, "MUST [ pf-tst ]"},
}

// conditionRows returns the conditional
// jumps, moves, and sets.
func conditionRows() []formRow {
	var rows []formRow
	for _, cc := range conditions {
		rows = append(rows,
			formRow{"J" + cc.name, "J" + cc.name + "_RELBRb", CategoryCondBr, ExtensionBase, ISASetI86, modesAll, fmt.Sprintf("%02X cb", 0x70+cc.code), "rel8 rIP:rcw", 0, cc.flags},
			formRow{"J" + cc.name, "J" + cc.name + "_RELBRz", CategoryCondBr, ExtensionBase, ISASetI386, modesAll, fmt.Sprintf("0F %02X cd", 0x80+cc.code), "relz rIP:rcw", attrs(AttrForce64), cc.flags},
			formRow{"CMOV" + cc.name, "CMOV" + cc.name + "_GPRv_*", CategoryCMOV, ExtensionCMOV, ISASetCMOV, modesAll, fmt.Sprintf("0F %02X /r", 0x40+cc.code), "rv:cw r/mv:r", 0, cc.flags},
			formRow{"SET" + cc.name, "SET" + cc.name + "_*", CategorySetCC, ExtensionBase, ISASetI386, modesAll, fmt.Sprintf("0F %02X /r", 0x90+cc.code), "r/m8:w", 0, cc.flags},
		)
	}

	for _, cc := range fcmovConditions {
		rows = append(rows, formRow{"FCMOV" + cc.name, "FCMOV" + cc.name + "_ST0_X87", CategoryFCMOV, ExtensionX87, ISASetFCMOV, modesAll, fmt.Sprintf("%02X %02X+i", cc.opcode, cc.modrm), "ST:cw ST(i):r", 0, cc.flags})
	}

	return rows
}

var shiftOps = []struct {
	name     string
	digit    int
	category Category
	one      string
	count    string
}{
	{"ROL", 0, CategoryRotate, flagsRotateOne, flagsRotate},
	{"ROR", 1, CategoryRotate, flagsRotateOne, flagsRotate},
	{"RCL", 2, CategoryRotate, flagsRotateCOne, flagsRotateC},
	{"RCR", 3, CategoryRotate, flagsRotateCOne, flagsRotateC},
	{"SHL", 4, CategoryShift, flagsShiftOne, flagsShift},
	{"SHR", 5, CategoryShift, flagsShiftOne, flagsShift},
	{"SAR", 7, CategoryShift, flagsShiftOne, flagsShift},
}

// shiftRows returns the shifts and rotates.
// A count of one always updates the flags.
// Other counts leave the flags unchanged
// when the masked count is zero.
func shiftRows() []formRow {
	var rows []formRow
	byCount := attrs(AttrFlagsDependOnCount)
	for _, op := range shiftOps {
		add := func(iform, encoding, operands string, attrs Attributes, flags string) {
			rows = append(rows, formRow{op.name, op.name + "_" + iform, op.category, ExtensionBase, ISASetI86, modesAll, encoding, operands, attrs, flags})
		}

		add("*_ONE", fmt.Sprintf("D0 /%d", op.digit), "r/m8:rw 1", 0, op.one)
		add("*_ONE", fmt.Sprintf("D1 /%d", op.digit), "r/mv:rw 1", 0, op.one)
		add("*_CL", fmt.Sprintf("D2 /%d", op.digit), "r/m8:rw cl:r", byCount, op.count)
		add("*_CL", fmt.Sprintf("D3 /%d", op.digit), "r/mv:rw cl:r", byCount, op.count)
		add("*_IMMb", fmt.Sprintf("C0 /%d ib", op.digit), "r/m8:rw imm8u", byCount, op.count)
		add("*_IMMb", fmt.Sprintf("C1 /%d ib", op.digit), "r/mv:rw imm8u", byCount, op.count)
	}

	return rows
}

var stringOps = []struct {
	name     string
	opcode   byte
	operands string // Formatted with the width and accumulator.
	compares bool
}{
	{"MOVS", 0xa4, "dst%[1]s:w src%[1]s:r aSI:rw aDI:rw", false},
	{"STOS", 0xaa, "dst%[1]s:w %[2]s:r aDI:rw", false},
	{"LODS", 0xac, "%[2]s:w src%[1]s:r aSI:rw", false},
	{"SCAS", 0xae, "%[2]s:r dst%[1]s:r aDI:rw", true},
	{"CMPS", 0xa6, "src%[1]s:r dst%[1]s:r aSI:rw aDI:rw", true},
}

var stringSizes = []struct {
	suffix string
	prefix string
	width  string
	acc    string
	opcode byte
	isa    ISASet
	modes  modeSet
}{
	{"B", "", "8", "al", 0, ISASetI86, modesAll},
	{"W", "o16 ", "v", "rAX", 1, ISASetI86, modesAll},
	{"D", "o32 ", "v", "rAX", 1, ISASetI386, modesAll},
	{"Q", "o64 ", "v", "rAX", 1, ISASetLongMode, modesOnly64},
}

// stringRows returns the string instructions,
// with and without repeat prefixes.
func stringRows() []formRow {
	var rows []formRow
	for _, op := range stringOps {
		for _, size := range stringSizes {
			name := op.name + size.suffix
			operands := fmt.Sprintf(op.operands, size.width, size.acc)
			encoding := fmt.Sprintf("%02X", op.opcode+size.opcode)
			ext := ExtensionBase
			if size.isa == ISASetLongMode {
				ext = ExtensionLongMode
			}

			flags, repFlags := flagsDF, flagsDF
			if op.compares {
				flags, repFlags = flagsStrCmp, flagsRepStrCmp
			}

			rows = append(rows, formRow{name, name, CategoryStringOp, ext, size.isa, size.modes, size.prefix + encoding, operands, 0, flags})
			rep := attrs(AttrRep)
			if !op.compares {
				rows = append(rows, formRow{"REP_" + name, "REP_" + name, CategoryStringOp, ext, size.isa, size.modes, "F3 " + size.prefix + encoding, operands + " aCX:rw", rep, repFlags})
				continue
			}

			rows = append(rows,
				formRow{"REPE_" + name, "REPE_" + name, CategoryStringOp, ext, size.isa, size.modes, "F3 " + size.prefix + encoding, operands + " aCX:rw", rep, repFlags},
				formRow{"REPNE_" + name, "REPNE_" + name, CategoryStringOp, ext, size.isa, size.modes, "F2 " + size.prefix + encoding, operands + " aCX:rw", rep, repFlags},
			)
		}
	}

	return rows
}

var x87Arith = []struct {
	name  string
	digit byte
}{
	{"FADD", 0},
	{"FMUL", 1},
	{"FSUB", 4},
	{"FSUBR", 5},
	{"FDIV", 6},
	{"FDIVR", 7},
}

// x87Rows returns the x87 floating point
// instructions.
func x87Rows() []formRow {
	x87 := func(iclass, iform, encoding, operands string, attrs Attributes, flags string) formRow {
		return formRow{iclass, iform, CategoryX87ALU, ExtensionX87, ISASetX87, modesAll, encoding, operands, attrs, flags}
	}

	var rows []formRow
	for _, op := range x87Arith {
		// The reversed forms swap SUB and
		// SUBR, and DIV and DIVR.
		reversed := op.digit
		if reversed >= 4 {
			reversed ^= 1
		}

		rows = append(rows,
			x87(op.name, op.name+"_ST0_MEMmem32real", fmt.Sprintf("D8 /%d", op.digit), "ST:rw m32:r:f32", 0, flagsX87),
			x87(op.name, op.name+"_ST0_MEMm64real", fmt.Sprintf("DC /%d", op.digit), "ST:rw m64:r:f64", 0, flagsX87),
			x87(op.name, op.name+"_ST0_X87", fmt.Sprintf("D8 %02X+i", 0xc0+op.digit*8), "ST:rw ST(i):r", 0, flagsX87),
			x87(op.name, op.name+"_X87_ST0", fmt.Sprintf("DC %02X+i", 0xc0+reversed*8), "ST(i):rw ST:r", 0, flagsX87),
			x87(op.name+"P", op.name+"P_X87_ST0", fmt.Sprintf("DE %02X+i", 0xc0+reversed*8), "ST(i):rw ST:r", 0, flagsX87),
		)
	}

	control := attrs(AttrX87Control)
	rows = append(rows,
		x87("FLD", "FLD_ST0_MEMmem32real", "D9 /0", "ST:w m32:r:f32", 0, flagsX87),
		x87("FLD", "FLD_ST0_MEMm64real", "DD /0", "ST:w m64:r:f64", 0, flagsX87),
		x87("FLD", "FLD_ST0_MEMmem80real", "DB /5", "ST:w m80:r:f80", 0, flagsX87),
		x87("FLD", "FLD_ST0_X87", "D9 C0+i", "ST:w ST(i):r", 0, flagsX87),
		x87("FST", "FST_MEMmem32real_ST0", "D9 /2", "m32:w:f32 ST:r", 0, flagsX87),
		x87("FST", "FST_MEMm64real_ST0", "DD /2", "m64:w:f64 ST:r", 0, flagsX87),
		x87("FST", "FST_X87_ST0", "DD D0+i", "ST(i):w ST:r", 0, flagsX87),
		x87("FSTP", "FSTP_MEMmem32real_ST0", "D9 /3", "m32:w:f32 ST:r", 0, flagsX87),
		x87("FSTP", "FSTP_MEMm64real_ST0", "DD /3", "m64:w:f64 ST:r", 0, flagsX87),
		x87("FSTP", "FSTP_MEMmem80real_ST0", "DB /7", "m80:w:f80 ST:r", 0, flagsX87),
		x87("FSTP", "FSTP_X87_ST0", "DD D8+i", "ST(i):w ST:r", 0, flagsX87),
		x87("FILD", "FILD_ST0_MEMmem32int", "DB /0", "ST:w m32:r:i32", 0, flagsX87),
		x87("FILD", "FILD_ST0_MEMm64int", "DF /5", "ST:w m64:r:i64", 0, flagsX87),
		x87("FISTP", "FISTP_MEMmem32int_ST0", "DB /3", "m32:w:i32 ST:r", 0, flagsX87),
		x87("FISTP", "FISTP_MEMm64int_ST0", "DF /7", "m64:w:i64 ST:r", 0, flagsX87),
		x87("FBLD", "FBLD_ST0_MEMmdec", "DF /4", "ST:w m80:r:b80", 0, flagsX87),
		x87("FCOM", "FCOM_ST0_MEMmem32real", "D8 /2", "ST:r m32:r:f32", 0, flagsX87Compare),
		x87("FCOM", "FCOM_ST0_MEMm64real", "DC /2", "ST:r m64:r:f64", 0, flagsX87Compare),
		x87("FCOM", "FCOM_ST0_X87", "D8 D0+i", "ST:r ST(i):r", 0, flagsX87Compare),
		x87("FCOMP", "FCOMP_ST0_MEMmem32real", "D8 /3", "ST:r m32:r:f32", 0, flagsX87Compare),
		x87("FCOMP", "FCOMP_ST0_MEMm64real", "DC /3", "ST:r m64:r:f64", 0, flagsX87Compare),
		x87("FCOMP", "FCOMP_ST0_X87", "D8 D8+i", "ST:r ST(i):r", 0, flagsX87Compare),
		x87("FCOMPP", "FCOMPP_ST0_ST1", "DE D9", "ST:r st1:r", 0, flagsX87Compare),
		x87("FXCH", "FXCH_ST0_X87", "D9 C8+i", "ST:rw ST(i):rw", 0, flagsX87),
		x87("FCHS", "FCHS_ST0", "D9 E0", "ST:rw", 0, flagsX87),
		x87("FABS", "FABS_ST0", "D9 E1", "ST:rw", 0, flagsX87),
		x87("FLD1", "FLD1_ST0", "D9 E8", "ST:w", 0, flagsX87),
		x87("FLDZ", "FLDZ_ST0", "D9 EE", "ST:w", 0, flagsX87),
		x87("FSQRT", "FSQRT_ST0", "D9 FA", "ST:rw", 0, flagsX87),
		x87("FNINIT", "FNINIT", "DB E3", "", control, "MUST [ fc0-0 fc1-0 fc2-0 fc3-0 ]"),
		x87("FNSTSW", "FNSTSW_AX", "DF E0", "ax:w", control, ""),
		x87("FNSTSW", "FNSTSW_MEMmem16", "DD /7", "m16:w", control, ""),
		x87("FLDCW", "FLDCW_MEMmem16", "D9 /5", "m16:r", control, flagsX87),
		x87("FNSTCW", "FNSTCW_MEMmem16", "D9 /7", "m16:w", control, flagsX87),
		x87("FWAIT", "FWAIT", "9B", "", 0, ""),
	)

	fcomi := func(iclass, iform, encoding string) formRow {
		return formRow{iclass, iform, CategoryX87ALU, ExtensionX87, ISASetFCMOV, modesAll, encoding, "ST:r ST(i):r", 0, flagsCompare}
	}

	rows = append(rows,
		fcomi("FCOMI", "FCOMI_ST0_X87", "DB F0+i"),
		fcomi("FUCOMI", "FUCOMI_ST0_X87", "DB E8+i"),
		fcomi("FCOMIP", "FCOMIP_ST0_X87", "DF F0+i"),
		fcomi("FUCOMIP", "FUCOMIP_ST0_X87", "DF E8+i"),
	)

	return rows
}

var sseArith = []struct {
	name   string
	opcode byte
	action string
	evex   string // Any EVEX rounding control.
}{
	{"ADD", 0x58, "rw", "{er}"},
	{"MUL", 0x59, "rw", "{er}"},
	{"SUB", 0x5c, "rw", "{er}"},
	{"MIN", 0x5d, "rw", "{sae}"},
	{"DIV", 0x5e, "rw", "{er}"},
	{"MAX", 0x5f, "rw", "{sae}"},
	{"SQRT", 0x51, "w", "{er}"},
}

var sseLogic = []struct {
	name   string
	opcode byte
}{
	{"AND", 0x54},
	{"ANDN", 0x55},
	{"OR", 0x56},
	{"XOR", 0x57},
}

// sseRows returns the SSE family of
// floating point and data movement
// instructions.
func sseRows() []formRow {
	sse := func(iclass, iform string, ext Extension, isa ISASet, encoding, operands string, attrs Attributes) formRow {
		return formRow{iclass, iform, CategorySSE, ext, isa, modesAll, encoding, operands, attrs, ""}
	}

	var rows []formRow
	for _, op := range sseArith {
		ps, pd, ss, sd := op.name+"PS", op.name+"PD", op.name+"SS", op.name+"SD"
		rows = append(rows,
			sse(ps, ps+"_XMMps_*", ExtensionSSE, ISASetSSE, fmt.Sprintf("NP 0F %02X /r", op.opcode), "xmm1:"+op.action+":f32 xmm2/m128:r:f32", mxcsr),
			sse(pd, pd+"_XMMpd_*", ExtensionSSE2, ISASetSSE2, fmt.Sprintf("66 0F %02X /r", op.opcode), "xmm1:"+op.action+":f64 xmm2/m128:r:f64", mxcsr),
			sse(ss, ss+"_XMMss_*", ExtensionSSE, ISASetSSE, fmt.Sprintf("F3 0F %02X /r", op.opcode), "xmm1:rw:f32 xmm2/m32:r:f32", scalar),
			sse(sd, sd+"_XMMsd_*", ExtensionSSE2, ISASetSSE2, fmt.Sprintf("F2 0F %02X /r", op.opcode), "xmm1:rw:f64 xmm2/m64:r:f64", scalar),
		)
	}

	for _, op := range sseLogic {
		ps, pd := op.name+"PS", op.name+"PD"
		rows = append(rows,
			formRow{ps, ps + "_XMMps_*", CategoryLogicalFP, ExtensionSSE, ISASetSSE, modesAll, fmt.Sprintf("NP 0F %02X /r", op.opcode), "xmm1:rw:u32 xmm2/m128:r:u32", 0, ""},
			formRow{pd, pd + "_XMMpd_*", CategoryLogicalFP, ExtensionSSE2, ISASetSSE2, modesAll, fmt.Sprintf("66 0F %02X /r", op.opcode), "xmm1:rw:u64 xmm2/m128:r:u64", 0, ""},
		)
	}

	move := func(iclass, iform string, ext Extension, isa ISASet, encoding, operands string, attrs Attributes) formRow {
		return formRow{iclass, iform, CategoryDataXfer, ext, isa, modesAll, encoding, operands, attrs, ""}
	}

	rows = append(rows,
		move("MOVUPS", "MOVUPS_XMMps_*", ExtensionSSE, ISASetSSE, "NP 0F 10 /r", "xmm1:w:f32 xmm2/m128:r:f32", 0),
		move("MOVUPS", "MOVUPS_*_XMMps", ExtensionSSE, ISASetSSE, "NP 0F 11 /r", "xmm2/m128:w:f32 xmm1:r:f32", 0),
		move("MOVUPD", "MOVUPD_XMMpd_*", ExtensionSSE2, ISASetSSE2, "66 0F 10 /r", "xmm1:w:f64 xmm2/m128:r:f64", 0),
		move("MOVUPD", "MOVUPD_*_XMMpd", ExtensionSSE2, ISASetSSE2, "66 0F 11 /r", "xmm2/m128:w:f64 xmm1:r:f64", 0),
		move("MOVSS", "MOVSS_XMMss_*", ExtensionSSE, ISASetSSE, "F3 0F 10 /r", "xmm1:w:f32 xmm2/m32:r:f32", attrs(AttrSimdScalar)),
		move("MOVSS", "MOVSS_*_XMMss", ExtensionSSE, ISASetSSE, "F3 0F 11 /r", "xmm2/m32:w:f32 xmm1:r:f32", attrs(AttrSimdScalar)),
		move("MOVSD_XMM", "MOVSD_XMM_XMMsd_*", ExtensionSSE2, ISASetSSE2, "F2 0F 10 /r", "xmm1:w:f64 xmm2/m64:r:f64", attrs(AttrSimdScalar)),
		move("MOVSD_XMM", "MOVSD_XMM_*_XMMsd", ExtensionSSE2, ISASetSSE2, "F2 0F 11 /r", "xmm2/m64:w:f64 xmm1:r:f64", attrs(AttrSimdScalar)),
		move("MOVAPS", "MOVAPS_XMMps_*", ExtensionSSE, ISASetSSE, "NP 0F 28 /r", "xmm1:w:f32 xmm2/m128:r:f32", aligned),
		move("MOVAPS", "MOVAPS_*_XMMps", ExtensionSSE, ISASetSSE, "NP 0F 29 /r", "xmm2/m128:w:f32 xmm1:r:f32", aligned),
		move("MOVAPD", "MOVAPD_XMMpd_*", ExtensionSSE2, ISASetSSE2, "66 0F 28 /r", "xmm1:w:f64 xmm2/m128:r:f64", aligned),
		move("MOVAPD", "MOVAPD_*_XMMpd", ExtensionSSE2, ISASetSSE2, "66 0F 29 /r", "xmm2/m128:w:f64 xmm1:r:f64", aligned),
		move("MOVDQA", "MOVDQA_XMMdq_*", ExtensionSSE2, ISASetSSE2, "66 0F 6F /r", "xmm1:w xmm2/m128:r", aligned),
		move("MOVDQA", "MOVDQA_*_XMMdq", ExtensionSSE2, ISASetSSE2, "66 0F 7F /r", "xmm2/m128:w xmm1:r", aligned),
		move("MOVDQU", "MOVDQU_XMMdq_*", ExtensionSSE2, ISASetSSE2, "F3 0F 6F /r", "xmm1:w xmm2/m128:r", 0),
		move("MOVDQU", "MOVDQU_*_XMMdq", ExtensionSSE2, ISASetSSE2, "F3 0F 7F /r", "xmm2/m128:w xmm1:r", 0),
		move("MOVD", "MOVD_XMMdq_*", ExtensionSSE2, ISASetSSE2, "66 0F 6E /r", "xmm1:w r/m32:r", 0),
		move("MOVD", "MOVD_*_XMMd", ExtensionSSE2, ISASetSSE2, "66 0F 7E /r", "r/m32:w xmm1:r", 0),
		formRow{"MOVQ", "MOVQ_XMMdq_*", CategoryDataXfer, ExtensionSSE2, ISASetSSE2, modesOnly64, "66 REX.W 0F 6E /r", "xmm1:w r/m64:r", 0, ""},
		formRow{"MOVQ", "MOVQ_*_XMMq", CategoryDataXfer, ExtensionSSE2, ISASetSSE2, modesOnly64, "66 REX.W 0F 7E /r", "r/m64:w xmm1:r", 0, ""},
		move("MOVQ", "MOVQ_XMMdq_*", ExtensionSSE2, ISASetSSE2, "F3 0F 7E /r", "xmm1:w xmm2/m64:r", 0),
		move("MOVQ", "MOVQ_*_XMMq", ExtensionSSE2, ISASetSSE2, "66 0F D6 /r", "xmm2/m64:w xmm1:r", 0),
		move("MOVD", "MOVD_MMXq_*", ExtensionMMX, ISASetPentiumMMX, "NP 0F 6E /r", "mm1:w r/m32:r", 0),
		move("MOVD", "MOVD_*_MMXd", ExtensionMMX, ISASetPentiumMMX, "NP 0F 7E /r", "r/m32:w mm1:r", 0),
		move("MOVQ", "MOVQ_MMXq_*", ExtensionMMX, ISASetPentiumMMX, "NP 0F 6F /r", "mm1:w mm2/m64:r", 0),
		move("MOVQ", "MOVQ_*_MMXq", ExtensionMMX, ISASetPentiumMMX, "NP 0F 7F /r", "mm2/m64:w mm1:r", 0),
		move("MOVDDUP", "MOVDDUP_XMMdq_*", ExtensionSSE3, ISASetSSE3, "F2 0F 12 /r", "xmm1:w:f64 xmm2/m64:r:f64", 0),
		move("LDDQU", "LDDQU_XMMpd_MEMdq", ExtensionSSE3, ISASetSSE3, "F2 0F F0 /r", "xmm1:w m128:r", 0),
	)

	rows = append(rows,
		sse("SHUFPS", "SHUFPS_XMMps_*_IMMb", ExtensionSSE, ISASetSSE, "NP 0F C6 /r ib", "xmm1:rw:f32 xmm2/m128:r:f32 imm8u", 0),
		sse("HADDPS", "HADDPS_XMMps_*", ExtensionSSE3, ISASetSSE3, "F2 0F 7C /r", "xmm1:rw:f32 xmm2/m128:r:f32", mxcsr),
		sse("CVTSI2SD", "CVTSI2SD_XMMsd_*", ExtensionSSE2, ISASetSSE2, "F2 0F 2A /r", "xmm1:w:f64 r/my:r", scalar),
		sse("CVTTSD2SI", "CVTTSD2SI_GPRy_*", ExtensionSSE2, ISASetSSE2, "F2 0F 2C /r", "ry:w xmm2/m64:r:f64", scalar),
		sse("PSHUFD", "PSHUFD_XMMdq_*_IMMb", ExtensionSSE2, ISASetSSE2, "66 0F 70 /r ib", "xmm1:w:u32 xmm2/m128:r:u32 imm8u", 0),
		sse("PSHUFB", "PSHUFB_XMMdq_*", ExtensionSSSE3, ISASetSSSE3, "66 0F 38 00 /r", "xmm1:rw:u8 xmm2/m128:r:u8", 0),
		sse("PSHUFB", "PSHUFB_MMXq_*", ExtensionSSSE3, ISASetSSSE3, "NP 0F 38 00 /r", "mm1:rw:u8 mm2/m64:r:u8", 0),
		sse("PABSD", "PABSD_XMMdq_*", ExtensionSSSE3, ISASetSSSE3, "66 0F 38 1E /r", "xmm1:w:i32 xmm2/m128:r:i32", 0),
		sse("PALIGNR", "PALIGNR_XMMdq_*_IMMb", ExtensionSSSE3, ISASetSSSE3, "66 0F 3A 0F /r ib", "xmm1:rw:u8 xmm2/m128:r:u8 imm8u", 0),
		sse("PMULLD", "PMULLD_XMMdq_*", ExtensionSSE4, ISASetSSE41, "66 0F 38 40 /r", "xmm1:rw:i32 xmm2/m128:r:i32", 0),
		sse("PMINSD", "PMINSD_XMMdq_*", ExtensionSSE4, ISASetSSE41, "66 0F 38 39 /r", "xmm1:rw:i32 xmm2/m128:r:i32", 0),
		sse("PMOVZXBD", "PMOVZXBD_XMMdq_*", ExtensionSSE4, ISASetSSE41, "66 0F 38 31 /r", "xmm1:w:u32 xmm2/m32:r:u8", 0),
		sse("PBLENDVB", "PBLENDVB_XMMdq_*_XMM0dq", ExtensionSSE4, ISASetSSE41, "66 0F 38 10 /r", "xmm1:rw:u8 xmm2/m128:r:u8 xmm0:r:u8", 0),
		sse("BLENDVPS", "BLENDVPS_XMMps_*_XMM0dq", ExtensionSSE4, ISASetSSE41, "66 0F 38 14 /r", "xmm1:rw:f32 xmm2/m128:r:f32 xmm0:r:u32", 0),
		sse("ROUNDPS", "ROUNDPS_XMMps_*_IMMb", ExtensionSSE4, ISASetSSE41, "66 0F 3A 08 /r ib", "xmm1:w:f32 xmm2/m128:r:f32 imm8u", mxcsr),
		sse("PEXTRD", "PEXTRD_*_XMMd_IMMb", ExtensionSSE4, ISASetSSE41, "66 0F 3A 16 /r ib", "r/m32:w xmm1:r:u32 imm8u", 0),
		sse("PINSRD", "PINSRD_XMMdq_*_IMMb", ExtensionSSE4, ISASetSSE41, "66 0F 3A 22 /r ib", "xmm1:rw:u32 r/m32:r imm8u", 0),
		formRow{"PTEST", "PTEST_XMMdq_*", CategoryLogical, ExtensionSSE4, ISASetSSE41, modesAll, "66 0F 38 17 /r", "xmm1:r xmm2/m128:r", 0, flagsTest},
		formRow{"PCMPISTRI", "PCMPISTRI_XMMdq_*_IMMb", CategorySSE, ExtensionSSE42, ISASetSSE42, modesAll, "66 0F 3A 63 /r ib", "xmm1:r xmm2/m128:r imm8u ecx:w", 0, flagsPCMPSTR},
		formRow{"CRC32", "CRC32_GPRyy_*", CategorySSE, ExtensionSSE42, ISASetSSE42, modesAll, "F2 0F 38 F0 /r", "ry:rw r/m8:r", 0, ""},
		formRow{"CRC32", "CRC32_GPRyy_*", CategorySSE, ExtensionSSE42, ISASetSSE42, modesAll, "F2 0F 38 F1 /r", "ry:rw r/mv:r", 0, ""},
		formRow{"COMISS", "COMISS_XMMss_*", CategorySSE, ExtensionSSE, ISASetSSE, modesAll, "NP 0F 2F /r", "xmm1:r:f32 xmm2/m32:r:f32", scalar, flagsCompare},
		formRow{"UCOMISS", "UCOMISS_XMMss_*", CategorySSE, ExtensionSSE, ISASetSSE, modesAll, "NP 0F 2E /r", "xmm1:r:f32 xmm2/m32:r:f32", scalar, flagsCompare},
		formRow{"COMISD", "COMISD_XMMsd_*", CategorySSE, ExtensionSSE2, ISASetSSE2, modesAll, "66 0F 2F /r", "xmm1:r:f64 xmm2/m64:r:f64", scalar, flagsCompare},
		formRow{"UCOMISD", "UCOMISD_XMMsd_*", CategorySSE, ExtensionSSE2, ISASetSSE2, modesAll, "66 0F 2E /r", "xmm1:r:f64 xmm2/m64:r:f64", scalar, flagsCompare},
	)

	aes := func(iclass, iform, encoding, operands string) formRow {
		return formRow{iclass, iform, CategoryAES, ExtensionAES, ISASetAES, modesAll, encoding, operands, 0, ""}
	}

	rows = append(rows,
		aes("AESENC", "AESENC_XMMdq_*", "66 0F 38 DC /r", "xmm1:rw xmm2/m128:r"),
		aes("AESENCLAST", "AESENCLAST_XMMdq_*", "66 0F 38 DD /r", "xmm1:rw xmm2/m128:r"),
		aes("AESDEC", "AESDEC_XMMdq_*", "66 0F 38 DE /r", "xmm1:rw xmm2/m128:r"),
		aes("AESDECLAST", "AESDECLAST_XMMdq_*", "66 0F 38 DF /r", "xmm1:rw xmm2/m128:r"),
		aes("AESIMC", "AESIMC_XMMdq_*", "66 0F 38 DB /r", "xmm1:w xmm2/m128:r"),
		aes("AESKEYGENASSIST", "AESKEYGENASSIST_XMMdq_*_IMMb", "66 0F 3A DF /r ib", "xmm1:w xmm2/m128:r imm8u"),
		formRow{"PCLMULQDQ", "PCLMULQDQ_XMMdq_*_IMMb", CategoryPCLMULQDQ, ExtensionPCLMULQDQ, ISASetPCLMULQDQ, modesAll, "66 0F 3A 44 /r ib", "xmm1:rw:u64 xmm2/m128:r:u64 imm8u", 0, ""},
	)

	return rows
}

var simdInteger = []struct {
	name     string
	opcode   byte
	elem     string
	category Category
	evex     string // Any EVEX form's iclass suffix and W.
}{
	{"PADDB", 0xfc, "i8", CategorySSE, ""},
	{"PADDW", 0xfd, "i16", CategorySSE, ""},
	{"PADDD", 0xfe, "i32", CategorySSE, "W0"},
	{"PADDQ", 0xd4, "i64", CategorySSE, "W1"},
	{"PSUBB", 0xf8, "i8", CategorySSE, ""},
	{"PSUBD", 0xfa, "i32", CategorySSE, "W0"},
	{"PMULLW", 0xd5, "i16", CategorySSE, ""},
	{"PCMPEQB", 0x74, "u8", CategorySSE, ""},
	{"PCMPEQD", 0x76, "u32", CategorySSE, ""},
	{"PAND", 0xdb, "u64", CategoryLogical, "W0"},
	{"PANDN", 0xdf, "u64", CategoryLogical, "W0"},
	{"POR", 0xeb, "u64", CategoryLogical, "W0"},
	{"PXOR", 0xef, "u64", CategoryLogical, "W0"},
}

// simdIntegerRows returns the packed integer
// instructions, in their MMX, SSE2, and
// VEX encodings.
func simdIntegerRows() []formRow {
	var rows []formRow
	for _, op := range simdInteger {
		mmxISA := ISASetPentiumMMX
		if op.name == "PADDQ" {
			mmxISA = ISASetSSE2
		}

		avxCategory := CategoryAVX
		if op.category == CategoryLogical {
			avxCategory = CategoryLogical
		}

		e := op.elem
		v := "V" + op.name
		rows = append(rows,
			formRow{op.name, op.name + "_MMXq_*", CategoryMMX, ExtensionMMX, mmxISA, modesAll, fmt.Sprintf("NP 0F %02X /r", op.opcode), "mm1:rw:" + e + " mm2/m64:r:" + e, 0, ""},
			formRow{op.name, op.name + "_XMMdq_*", op.category, ExtensionSSE2, ISASetSSE2, modesAll, fmt.Sprintf("66 0F %02X /r", op.opcode), "xmm1:rw:" + e + " xmm2/m128:r:" + e, 0, ""},
			formRow{v, v + "_XMMdq_XMMdq_*", avxCategory, ExtensionAVX, ISASetAVX, modesAll, fmt.Sprintf("VEX.128.66.0F.WIG %02X /r", op.opcode), "xmm1:w:" + e + " xmmV:r:" + e + " xmm2/m128:r:" + e, 0, ""},
			formRow{v, v + "_YMMqq_YMMqq_*", CategoryAVX2, ExtensionAVX2, ISASetAVX2, modesAll, fmt.Sprintf("VEX.256.66.0F.WIG %02X /r", op.opcode), "ymm1:w:" + e + " ymmV:r:" + e + " ymm2/m256:r:" + e, 0, ""},
		)
	}

	return rows
}

// avxRows returns the VEX-encoded AVX
// and AVX2 instructions.
func avxRows() []formRow {
	avx := func(iclass, iform string, category Category, encoding, operands string, attrs Attributes) formRow {
		return formRow{iclass, iform, category, ExtensionAVX, ISASetAVX, modesAll, encoding, operands, attrs, ""}
	}

	avx2 := func(iclass, iform string, category Category, encoding, operands string, attrs Attributes) formRow {
		return formRow{iclass, iform, category, ExtensionAVX2, ISASetAVX2, modesAll, encoding, operands, attrs, ""}
	}

	var rows []formRow
	for _, op := range sseArith {
		for _, t := range []struct{ suffix, pp, elem string }{
			{"PS", "NP", "f32"},
			{"PD", "66", "f64"},
		} {
			v := "V" + op.name + t.suffix
			x := "xmm1:w:" + t.elem + " xmmV:r:" + t.elem + " xmm2/m128:r:" + t.elem
			y := "ymm1:w:" + t.elem + " ymmV:r:" + t.elem + " ymm2/m256:r:" + t.elem
			xform, yform := v+"_XMMdq_XMMdq_*", v+"_YMMqq_YMMqq_*"
			if op.name == "SQRT" {
				x = "xmm1:w:" + t.elem + " xmm2/m128:r:" + t.elem
				y = "ymm1:w:" + t.elem + " ymm2/m256:r:" + t.elem
				xform, yform = v+"_XMMdq_*", v+"_YMMqq_*"
			}

			rows = append(rows,
				avx(v, xform, CategoryAVX, fmt.Sprintf("VEX.128.%s.0F.WIG %02X /r", t.pp, op.opcode), x, mxcsr),
				avx(v, yform, CategoryAVX, fmt.Sprintf("VEX.256.%s.0F.WIG %02X /r", t.pp, op.opcode), y, mxcsr),
			)
		}

		for _, t := range []struct{ suffix, pp, elem, bits string }{
			{"SS", "F3", "f32", "32"},
			{"SD", "F2", "f64", "64"},
		} {
			v := "V" + op.name + t.suffix
			rows = append(rows,
				avx(v, v+"_XMMdq_XMMdq_*", CategoryAVX, fmt.Sprintf("VEX.LIG.%s.0F.WIG %02X /r", t.pp, op.opcode),
					"xmm1:w:"+t.elem+" xmmV:r:"+t.elem+" xmm2/m"+t.bits+":r:"+t.elem, scalar),
			)
		}
	}

	for _, op := range sseLogic {
		for _, t := range []struct{ suffix, pp, elem string }{
			{"PS", "NP", "u32"},
			{"PD", "66", "u64"},
		} {
			v := "V" + op.name + t.suffix
			rows = append(rows,
				avx(v, v+"_XMMdq_XMMdq_*", CategoryLogicalFP, fmt.Sprintf("VEX.128.%s.0F.WIG %02X /r", t.pp, op.opcode), "xmm1:w:"+t.elem+" xmmV:r:"+t.elem+" xmm2/m128:r:"+t.elem, 0),
				avx(v, v+"_YMMqq_YMMqq_*", CategoryLogicalFP, fmt.Sprintf("VEX.256.%s.0F.WIG %02X /r", t.pp, op.opcode), "ymm1:w:"+t.elem+" ymmV:r:"+t.elem+" ymm2/m256:r:"+t.elem, 0),
			)
		}
	}

	// Moves.
	for _, m := range []struct {
		name        string
		pp          string
		load, store byte
		elem        string
		attrs       Attributes
	}{
		{"VMOVUPS", "NP", 0x10, 0x11, "f32", 0},
		{"VMOVUPD", "66", 0x10, 0x11, "f64", 0},
		{"VMOVAPS", "NP", 0x28, 0x29, "f32", aligned},
		{"VMOVAPD", "66", 0x28, 0x29, "f64", aligned},
		{"VMOVDQU", "F3", 0x6f, 0x7f, "u128", 0},
		{"VMOVDQA", "66", 0x6f, 0x7f, "u128", aligned},
	} {
		x, y := ":"+m.elem, ":"+m.elem
		if m.elem == "u128" {
			x, y = "", ""
		}

		rows = append(rows,
			avx(m.name, m.name+"_XMMdq_*", CategoryDataXfer, fmt.Sprintf("VEX.128.%s.0F.WIG %02X /r", m.pp, m.load), "xmm1:w"+x+" xmm2/m128:r"+x, m.attrs),
			avx(m.name, m.name+"_*_XMMdq", CategoryDataXfer, fmt.Sprintf("VEX.128.%s.0F.WIG %02X /r", m.pp, m.store), "xmm2/m128:w"+x+" xmm1:r"+x, m.attrs),
			avx(m.name, m.name+"_YMMqq_*", CategoryDataXfer, fmt.Sprintf("VEX.256.%s.0F.WIG %02X /r", m.pp, m.load), "ymm1:w"+y+" ymm2/m256:r"+y, m.attrs),
			avx(m.name, m.name+"_*_YMMqq", CategoryDataXfer, fmt.Sprintf("VEX.256.%s.0F.WIG %02X /r", m.pp, m.store), "ymm2/m256:w"+y+" ymm1:r"+y, m.attrs),
		)
	}

	rows = append(rows,
		avx("VMOVSS", "VMOVSS_XMMdq_MEMd", CategoryDataXfer, "VEX.LIG.F3.0F.WIG 10 /r", "xmm1:w:f32 m32:r:f32", attrs(AttrSimdScalar)),
		avx("VMOVSS", "VMOVSS_XMMdq_XMMdq_XMMdq", CategoryDataXfer, "VEX.LIG.F3.0F.WIG 10 /r", "xmm1:w:f32 xmmV:r:f32 xmm2:r:f32", attrs(AttrSimdScalar)),
		avx("VMOVSS", "VMOVSS_MEMd_XMMdq", CategoryDataXfer, "VEX.LIG.F3.0F.WIG 11 /r", "m32:w:f32 xmm1:r:f32", attrs(AttrSimdScalar)),
		avx("VMOVSS", "VMOVSS_XMMdq_XMMdq_XMMdq", CategoryDataXfer, "VEX.LIG.F3.0F.WIG 11 /r", "xmm2:w:f32 xmmV:r:f32 xmm1:r:f32", attrs(AttrSimdScalar)),
		avx("VMOVSD", "VMOVSD_XMMdq_MEMq", CategoryDataXfer, "VEX.LIG.F2.0F.WIG 10 /r", "xmm1:w:f64 m64:r:f64", attrs(AttrSimdScalar)),
		avx("VMOVSD", "VMOVSD_XMMdq_XMMdq_XMMdq", CategoryDataXfer, "VEX.LIG.F2.0F.WIG 10 /r", "xmm1:w:f64 xmmV:r:f64 xmm2:r:f64", attrs(AttrSimdScalar)),
		avx("VMOVSD", "VMOVSD_MEMq_XMMdq", CategoryDataXfer, "VEX.LIG.F2.0F.WIG 11 /r", "m64:w:f64 xmm1:r:f64", attrs(AttrSimdScalar)),
		avx("VMOVSD", "VMOVSD_XMMdq_XMMdq_XMMdq", CategoryDataXfer, "VEX.LIG.F2.0F.WIG 11 /r", "xmm2:w:f64 xmmV:r:f64 xmm1:r:f64", attrs(AttrSimdScalar)),
		avx("VMOVD", "VMOVD_XMMdq_*", CategoryDataXfer, "VEX.128.66.0F.W0 6E /r", "xmm1:w r/m32:r", 0),
		avx("VMOVD", "VMOVD_*_XMMd", CategoryDataXfer, "VEX.128.66.0F.W0 7E /r", "r/m32:w xmm1:r", 0),
		formRow{"VMOVQ", "VMOVQ_XMMdq_*", CategoryDataXfer, ExtensionAVX, ISASetAVX, modesOnly64, "VEX.128.66.0F.W1 6E /r", "xmm1:w r/m64:r", 0, ""},
		formRow{"VMOVQ", "VMOVQ_*_XMMq", CategoryDataXfer, ExtensionAVX, ISASetAVX, modesOnly64, "VEX.128.66.0F.W1 7E /r", "r/m64:w xmm1:r", 0, ""},
		avx("VZEROUPPER", "VZEROUPPER", CategoryAVX, "VEX.128.NP.0F.WIG 77", "", 0),
		avx("VZEROALL", "VZEROALL", CategoryAVX, "VEX.256.NP.0F.WIG 77", "", 0),
		avx("VBROADCASTSS", "VBROADCASTSS_XMMdq_MEMd", CategoryBroadcast, "VEX.128.66.0F38.W0 18 /r", "xmm1:w:f32 m32:r:f32", 0),
		avx("VBROADCASTSS", "VBROADCASTSS_YMMqq_MEMd", CategoryBroadcast, "VEX.256.66.0F38.W0 18 /r", "ymm1:w:f32 m32:r:f32", 0),
		avx("VBROADCASTSD", "VBROADCASTSD_YMMqq_MEMq", CategoryBroadcast, "VEX.256.66.0F38.W0 19 /r", "ymm1:w:f64 m64:r:f64", 0),
		avx2("VBROADCASTSS", "VBROADCASTSS_XMMdq_XMMdq", CategoryBroadcast, "VEX.128.66.0F38.W0 18 /r", "xmm1:w:f32 xmm2:r:f32", 0),
		avx2("VBROADCASTSS", "VBROADCASTSS_YMMqq_XMMdq", CategoryBroadcast, "VEX.256.66.0F38.W0 18 /r", "ymm1:w:f32 xmm2:r:f32", 0),
		avx2("VPBROADCASTD", "VPBROADCASTD_XMMdq_*", CategoryBroadcast, "VEX.128.66.0F38.W0 58 /r", "xmm1:w:u32 xmm2/m32:r:u32", 0),
		avx2("VPBROADCASTD", "VPBROADCASTD_YMMqq_*", CategoryBroadcast, "VEX.256.66.0F38.W0 58 /r", "ymm1:w:u32 xmm2/m32:r:u32", 0),
		avx("VINSERTF128", "VINSERTF128_YMMqq_YMMqq_*_IMMb", CategoryAVX, "VEX.256.66.0F3A.W0 18 /r ib", "ymm1:w ymmV:r xmm2/m128:r imm8u", 0),
		avx("VEXTRACTF128", "VEXTRACTF128_*_YMMqq_IMMb", CategoryAVX, "VEX.256.66.0F3A.W0 19 /r ib", "xmm2/m128:w ymm1:r imm8u", 0),
		avx("VPERM2F128", "VPERM2F128_YMMqq_YMMqq_*_IMMb", CategoryAVX, "VEX.256.66.0F3A.W0 06 /r ib", "ymm1:w ymmV:r ymm2/m256:r imm8u", 0),
		avx("VPERMILPS", "VPERMILPS_XMMdq_XMMdq_*", CategoryAVX, "VEX.128.66.0F38.W0 0C /r", "xmm1:w:f32 xmmV:r:f32 xmm2/m128:r:u32", 0),
		avx("VPERMILPS", "VPERMILPS_YMMqq_YMMqq_*", CategoryAVX, "VEX.256.66.0F38.W0 0C /r", "ymm1:w:f32 ymmV:r:f32 ymm2/m256:r:u32", 0),
		avx("VBLENDVPS", "VBLENDVPS_XMMdq_XMMdq_*_XMMdq", CategoryAVX, "VEX.128.66.0F3A.W0 4A /r /is4", "xmm1:w:f32 xmmV:r:f32 xmm2/m128:r:f32 xmmIH:r:u32", 0),
		avx("VBLENDVPS", "VBLENDVPS_YMMqq_YMMqq_*_YMMqq", CategoryAVX, "VEX.256.66.0F3A.W0 4A /r /is4", "ymm1:w:f32 ymmV:r:f32 ymm2/m256:r:f32 ymmIH:r:u32", 0),
		formRow{"VPTEST", "VPTEST_XMMdq_*", CategoryLogical, ExtensionAVX, ISASetAVX, modesAll, "VEX.128.66.0F38.WIG 17 /r", "xmm1:r xmm2/m128:r", 0, flagsTest},
		formRow{"VPTEST", "VPTEST_YMMqq_*", CategoryLogical, ExtensionAVX, ISASetAVX, modesAll, "VEX.256.66.0F38.WIG 17 /r", "ymm1:r ymm2/m256:r", 0, flagsTest},
		formRow{"VTESTPS", "VTESTPS_XMMdq_*", CategoryLogicalFP, ExtensionAVX, ISASetAVX, modesAll, "VEX.128.66.0F38.W0 0E /r", "xmm1:r:f32 xmm2/m128:r:f32", 0, flagsTest},
		formRow{"VTESTPS", "VTESTPS_YMMqq_*", CategoryLogicalFP, ExtensionAVX, ISASetAVX, modesAll, "VEX.256.66.0F38.W0 0E /r", "ymm1:r:f32 ymm2/m256:r:f32", 0, flagsTest},
		formRow{"VAESENC", "VAESENC_XMMdq_XMMdq_*", CategoryAES, ExtensionAVX, ISASetAES, modesAll, "VEX.128.66.0F38.WIG DC /r", "xmm1:w xmmV:r xmm2/m128:r", 0, ""},
		formRow{"VAESDEC", "VAESDEC_XMMdq_XMMdq_*", CategoryAES, ExtensionAVX, ISASetAES, modesAll, "VEX.128.66.0F38.WIG DE /r", "xmm1:w xmmV:r xmm2/m128:r", 0, ""},
		avx2("VPERMD", "VPERMD_YMMqq_YMMqq_*", CategoryAVX2, "VEX.256.66.0F38.W0 36 /r", "ymm1:w:u32 ymmV:r:u32 ymm2/m256:r:u32", 0),
		avx2("VPERMQ", "VPERMQ_YMMqq_*_IMMb", CategoryAVX2, "VEX.256.66.0F3A.W1 00 /r ib", "ymm1:w:u64 ymm2/m256:r:u64 imm8u", 0),
		avx2("VPSLLVD", "VPSLLVD_XMMdq_XMMdq_*", CategoryAVX2, "VEX.128.66.0F38.W0 47 /r", "xmm1:w:u32 xmmV:r:u32 xmm2/m128:r:u32", 0),
		avx2("VPSLLVD", "VPSLLVD_YMMqq_YMMqq_*", CategoryAVX2, "VEX.256.66.0F38.W0 47 /r", "ymm1:w:u32 ymmV:r:u32 ymm2/m256:r:u32", 0),
	)

	// Gathers.
	gather := func(iclass, iform, encoding, operands string) formRow {
		return formRow{iclass, iform, CategoryAVX2Gather, ExtensionAVX2Gather, ISASetAVX2Gather, modesAll, encoding, operands, attrs(AttrGather), ""}
	}

	rows = append(rows,
		gather("VGATHERDPS", "VGATHERDPS_XMMps_MEMps_XMMps", "VEX.128.66.0F38.W0 92 /r /vsib", "xmm1:rcw:f32 vm32x:r:f32 xmmV:rw:u32"),
		gather("VGATHERDPS", "VGATHERDPS_YMMps_MEMps_YMMps", "VEX.256.66.0F38.W0 92 /r /vsib", "ymm1:rcw:f32 vm32y:r:f32 ymmV:rw:u32"),
		gather("VGATHERDPD", "VGATHERDPD_XMMpd_MEMpd_XMMpd", "VEX.128.66.0F38.W1 92 /r /vsib", "xmm1:rcw:f64 vm32x:r:f64 xmmV:rw:u64"),
		gather("VGATHERDPD", "VGATHERDPD_YMMpd_MEMpd_YMMpd", "VEX.256.66.0F38.W1 92 /r /vsib", "ymm1:rcw:f64 vm32x:r:f64 ymmV:rw:u64"),
		gather("VPGATHERDD", "VPGATHERDD_XMMu32_MEMd_XMMi32", "VEX.128.66.0F38.W0 90 /r /vsib", "xmm1:rcw:u32 vm32x:r:u32 xmmV:rw:u32"),
		gather("VPGATHERDD", "VPGATHERDD_YMMu32_MEMd_YMMi32", "VEX.256.66.0F38.W0 90 /r /vsib", "ymm1:rcw:u32 vm32y:r:u32 ymmV:rw:u32"),
		gather("VPGATHERQQ", "VPGATHERQQ_XMMu64_MEMq_XMMi64", "VEX.128.66.0F38.W1 91 /r /vsib", "xmm1:rcw:u64 vm64x:r:u64 xmmV:rw:u64"),
		gather("VPGATHERQQ", "VPGATHERQQ_YMMu64_MEMq_YMMi64", "VEX.256.66.0F38.W1 91 /r /vsib", "ymm1:rcw:u64 vm64y:r:u64 ymmV:rw:u64"),
	)

	return rows
}

// fmaRows returns the fused multiply-add
// instructions, in each operand order.
func fmaRows() []formRow {
	var rows []formRow
	for _, op := range []struct {
		name string
		base byte
	}{
		{"VFMADD", 0x98},
		{"VFMSUB", 0x9a},
	} {
		for i, order := range []string{"132", "213", "231"} {
			opcode := op.base + byte(i)*0x10
			for _, t := range []struct{ suffix, w, elem, bits string }{
				{"PS", "W0", "f32", "32"},
				{"PD", "W1", "f64", "64"},
			} {
				packed := op.name + order + t.suffix
				rows = append(rows,
					formRow{packed, packed + "_XMMdq_XMMdq_*", CategoryVFMA, ExtensionFMA, ISASetFMA, modesAll, fmt.Sprintf("VEX.128.66.0F38.%s %02X /r", t.w, opcode),
						"xmm1:rw:" + t.elem + " xmmV:r:" + t.elem + " xmm2/m128:r:" + t.elem, mxcsr, ""},
					formRow{packed, packed + "_YMMqq_YMMqq_*", CategoryVFMA, ExtensionFMA, ISASetFMA, modesAll, fmt.Sprintf("VEX.256.66.0F38.%s %02X /r", t.w, opcode),
						"ymm1:rw:" + t.elem + " ymmV:r:" + t.elem + " ymm2/m256:r:" + t.elem, mxcsr, ""},
				)

				s := "S" + t.suffix[1:]
				single := op.name + order + s
				rows = append(rows,
					formRow{single, single + "_XMMdq_XMMdq_*", CategoryVFMA, ExtensionFMA, ISASetFMA, modesAll, fmt.Sprintf("VEX.LIG.66.0F38.%s %02X /r", t.w, opcode+1),
						"xmm1:rw:" + t.elem + " xmmV:r:" + t.elem + " xmm2/m" + t.bits + ":r:" + t.elem, scalar, ""},
				)
			}
		}
	}

	return rows
}

// bmiRows returns the VEX-encoded general
// purpose register instructions from BMI1
// and BMI2.
func bmiRows() []formRow {
	var rows []formRow
	for _, size := range []struct {
		w     string
		bits  string
		name  string
		modes modeSet
	}{
		{"W0", "32", "GPR32d", modesAll},
		{"W1", "64", "GPR64q", modesOnly64},
	} {
		r, rV, rm := "r"+size.bits, "r"+size.bits+"V", "r/m"+size.bits
		bmi1 := func(iclass, iform, encoding, operands, flags string) formRow {
			return formRow{iclass, iclass + "_" + iform, CategoryBMI1, ExtensionBMI1, ISASetBMI1, size.modes, encoding, operands, 0, flags}
		}

		bmi2 := func(iclass, iform, encoding, operands, flags string) formRow {
			return formRow{iclass, iclass + "_" + iform, CategoryBMI2, ExtensionBMI2, ISASetBMI2, size.modes, encoding, operands, 0, flags}
		}

		n := size.name
		rows = append(rows,
			bmi1("ANDN", n+"_"+n+"_*", "VEX.LZ.NP.0F38."+size.w+" F2 /r", r+":w "+rV+":r "+rm+":r", flagsAndN),
			bmi1("BLSR", n+"_*", "VEX.LZ.NP.0F38."+size.w+" F3 /1", rV+":w "+rm+":r", flagsBLS),
			bmi1("BLSMSK", n+"_*", "VEX.LZ.NP.0F38."+size.w+" F3 /2", rV+":w "+rm+":r", flagsBLS),
			bmi1("BLSI", n+"_*", "VEX.LZ.NP.0F38."+size.w+" F3 /3", rV+":w "+rm+":r", flagsBLS),
			bmi1("BEXTR", n+"_*_"+n, "VEX.LZ.NP.0F38."+size.w+" F7 /r", r+":w "+rm+":r "+rV+":r", flagsBEXTR),
			bmi2("BZHI", n+"_*_"+n, "VEX.LZ.NP.0F38."+size.w+" F5 /r", r+":w "+rm+":r "+rV+":r", flagsBLS),
			bmi2("PDEP", n+"_"+n+"_*", "VEX.LZ.F2.0F38."+size.w+" F5 /r", r+":w "+rV+":r "+rm+":r", ""),
			bmi2("PEXT", n+"_"+n+"_*", "VEX.LZ.F3.0F38."+size.w+" F5 /r", r+":w "+rV+":r "+rm+":r", ""),
			bmi2("RORX", n+"_*_IMMb", "VEX.LZ.F2.0F3A."+size.w+" F0 /r ib", r+":w "+rm+":r imm8u", ""),
			bmi2("SARX", n+"_*_"+n, "VEX.LZ.F3.0F38."+size.w+" F7 /r", r+":w "+rm+":r "+rV+":r", ""),
			bmi2("SHLX", n+"_*_"+n, "VEX.LZ.66.0F38."+size.w+" F7 /r", r+":w "+rm+":r "+rV+":r", ""),
			bmi2("SHRX", n+"_*_"+n, "VEX.LZ.F2.0F38."+size.w+" F7 /r", r+":w "+rm+":r "+rV+":r", ""),
		)
	}

	rows = append(rows,
		formRow{"MULX", "MULX_GPR32d_GPR32d_*", CategoryBMI2, ExtensionBMI2, ISASetBMI2, modesAll, "VEX.LZ.F2.0F38.W0 F6 /r", "r32:w r32V:w r/m32:r edx:r", 0, ""},
		formRow{"MULX", "MULX_GPR64q_GPR64q_*", CategoryBMI2, ExtensionBMI2, ISASetBMI2, modesOnly64, "VEX.LZ.F2.0F38.W1 F6 /r", "r64:w r64V:w r/m64:r rdx:r", 0, ""},
	)

	return rows
}

// evexVectors lists the EVEX vector
// lengths, longest first.
var evexVectors = []struct {
	reg  string
	name string
	l    string
	bits int
	isa  ISASet
}{
	{"zmm", "ZMMz", "512", 512, ISASetAVX512F512},
	{"ymm", "YMMqq", "256", 256, ISASetAVX512F256},
	{"xmm", "XMMdq", "128", 128, ISASetAVX512F128},
}

// avx512Rows returns the EVEX-encoded
// AVX-512 instructions.
func avx512Rows() []formRow {
	evex := func(iclass, iform string, category Category, isa ISASet, encoding, operands string, attrs Attributes) formRow {
		return formRow{iclass, iform, category, ExtensionAVX512EVEX, isa, modesAll, encoding, operands, attrs, ""}
	}

	var rows []formRow
	for _, op := range sseArith {
		for _, t := range []struct{ suffix, pp, w, elem string }{
			{"PS", "NP", "W0", "f32"},
			{"PD", "66", "W1", "f64"},
		} {
			v := "V" + op.name + t.suffix
			for _, vec := range evexVectors {
				rounding := ""
				if vec.bits == 512 {
					rounding = " " + op.evex
				}

				encoding := fmt.Sprintf("EVEX.%s.%s.0F.%s %02X /r {k} {z}%s FV", vec.l, t.pp, t.w, op.opcode, rounding)
				src := fmt.Sprintf("%s2/m%d/m%sbcst:r:%s", vec.reg, vec.bits, t.elem[1:], t.elem)
				iform := v + "_" + vec.name + "_MASKmskw_" + vec.name + "_*"
				operands := vec.reg + "1:w:" + t.elem + " {k}:r " + vec.reg + "V:r:" + t.elem + " " + src
				if op.name == "SQRT" {
					iform = v + "_" + vec.name + "_MASKmskw_*"
					operands = vec.reg + "1:w:" + t.elem + " {k}:r " + src
				}

				rows = append(rows, evex(v, iform, CategoryAVX512, vec.isa, encoding, operands, broadcast))
			}
		}

		for _, t := range []struct{ suffix, pp, w, elem string }{
			{"SS", "F3", "W0", "f32"},
			{"SD", "F2", "W1", "f64"},
		} {
			v := "V" + op.name + t.suffix
			e := t.elem
			rows = append(rows, evex(v, v+"_XMMdq_MASKmskw_XMMdq_*", CategoryAVX512, ISASetAVX512FScalar,
				fmt.Sprintf("EVEX.LLIG.%s.0F.%s %02X /r {k} {z} %s T1S", t.pp, t.w, op.opcode, op.evex),
				"xmm1:w:"+e+" {k}:r xmmV:r:"+e+" xmm2/m"+e[1:]+":r:"+e, scalar))
		}
	}

	for _, m := range []struct {
		name        string
		pp          string
		w           string
		elem        string
		load, store byte
		attrs       Attributes
	}{
		{"VMOVUPS", "NP", "W0", "f32", 0x10, 0x11, 0},
		{"VMOVUPD", "66", "W1", "f64", 0x10, 0x11, 0},
		{"VMOVAPS", "NP", "W0", "f32", 0x28, 0x29, aligned},
		{"VMOVAPD", "66", "W1", "f64", 0x28, 0x29, aligned},
		{"VMOVDQU32", "F3", "W0", "u32", 0x6f, 0x7f, 0},
		{"VMOVDQU64", "F3", "W1", "u64", 0x6f, 0x7f, 0},
		{"VMOVDQA32", "66", "W0", "u32", 0x6f, 0x7f, aligned},
		{"VMOVDQA64", "66", "W1", "u64", 0x6f, 0x7f, aligned},
	} {
		for _, vec := range evexVectors {
			rows = append(rows,
				evex(m.name, m.name+"_"+vec.name+"_MASKmskw_*", CategoryDataXfer, vec.isa,
					fmt.Sprintf("EVEX.%s.%s.0F.%s %02X /r {k} {z} FVM", vec.l, m.pp, m.w, m.load),
					fmt.Sprintf("%s1:w:%s {k}:r %s2/m%d:r:%s", vec.reg, m.elem, vec.reg, vec.bits, m.elem), m.attrs),
				evex(m.name, m.name+"_*_MASKmskw_"+vec.name, CategoryDataXfer, vec.isa,
					fmt.Sprintf("EVEX.%s.%s.0F.%s %02X /r {k} FVM", vec.l, m.pp, m.w, m.store),
					fmt.Sprintf("%s2/m%d:w:%s {k}:r %s1:r:%s", vec.reg, vec.bits, m.elem, vec.reg, m.elem), m.attrs),
			)
		}
	}

	// Packed integers.
	for _, op := range simdInteger {
		if op.evex == "" {
			continue
		}

		variants := []struct{ name, w, elem string }{{"V" + op.name, op.evex, op.elem}}
		category := CategoryAVX512
		if op.category == CategoryLogical {
			category = CategoryLogical
			variants = []struct{ name, w, elem string }{
				{"V" + op.name + "D", "W0", "u32"},
				{"V" + op.name + "Q", "W1", "u64"},
			}
		}

		for _, v := range variants {
			e := v.elem
			for _, vec := range evexVectors {
				rows = append(rows, evex(v.name, v.name+"_"+vec.name+"_MASKmskw_"+vec.name+"_*", category, vec.isa,
					fmt.Sprintf("EVEX.%s.66.0F.%s %02X /r {k} {z} FV", vec.l, v.w, op.opcode),
					fmt.Sprintf("%s1:w:%s {k}:r %sV:r:%s %s2/m%d/m%sbcst:r:%s", vec.reg, e, vec.reg, e, vec.reg, vec.bits, e[1:], e),
					attrs(AttrBroadcastEnabled)))
			}
		}
	}

	for _, vec := range evexVectors {
		r, n := vec.reg, vec.name
		rows = append(rows,
			evex("VPCMPEQD", "VPCMPEQD_MASKmskw_MASKmskw_"+n+"_*", CategoryAVX512, vec.isa,
				"EVEX."+vec.l+".66.0F.W0 76 /r {k} FV",
				fmt.Sprintf("k1:w {k}:r %sV:r:u32 %s2/m%d/m32bcst:r:u32", r, r, vec.bits), attrs(AttrBroadcastEnabled)),
			evex("VPTERNLOGD", "VPTERNLOGD_"+n+"_MASKmskw_"+n+"_*_IMMb", CategoryLogical, vec.isa,
				"EVEX."+vec.l+".66.0F3A.W0 25 /r ib {k} {z} FV",
				fmt.Sprintf("%s1:rw:u32 {k}:r %sV:r:u32 %s2/m%d/m32bcst:r:u32 imm8u", r, r, r, vec.bits), attrs(AttrBroadcastEnabled)),
			evex("VBLENDMPS", "VBLENDMPS_"+n+"_MASKmskw_"+n+"_*", CategoryAVX512, vec.isa,
				"EVEX."+vec.l+".66.0F38.W0 65 /r {k} {z} FV",
				fmt.Sprintf("%s1:w:f32 {k}:r %sV:r:f32 %s2/m%d/m32bcst:r:f32", r, r, r, vec.bits), attrs(AttrBroadcastEnabled, AttrMaskAsControl)),
			evex("VBROADCASTSS", "VBROADCASTSS_"+n+"_MASKmskw_*", CategoryBroadcast, vec.isa,
				"EVEX."+vec.l+".66.0F38.W0 18 /r {k} {z} T1S",
				r+"1:w:f32 {k}:r xmm2/m32:r:f32", 0),
			evex("VPBROADCASTD", "VPBROADCASTD_"+n+"_MASKmskw_*", CategoryBroadcast, vec.isa,
				"EVEX."+vec.l+".66.0F38.W0 58 /r {k} {z} T1S",
				r+"1:w:u32 {k}:r xmm2/m32:r:u32", 0),
			evex("VPBROADCASTD", "VPBROADCASTD_"+n+"_MASKmskw_GPR32d", CategoryBroadcast, vec.isa,
				"EVEX."+vec.l+".66.0F38.W0 7C /r {k} {z}",
				r+"1:w:u32 {k}:r rmr32:r", 0),
		)
	}

	gather := func(iclass, iform string, isa ISASet, encoding, operands string) formRow {
		return formRow{iclass, iform, CategoryGather, ExtensionAVX512EVEX, isa, modesAll, encoding, operands, attrs(AttrGather), ""}
	}

	rows = append(rows,
		gather("VGATHERDPS", "VGATHERDPS_ZMMf32_MASKmskw_MEMf32", ISASetAVX512F512, "EVEX.512.66.0F38.W0 92 /r /vsib {k} T1S", "zmm1:w:f32 {k}:rw vm32z:r:f32"),
		gather("VGATHERDPS", "VGATHERDPS_YMMf32_MASKmskw_MEMf32", ISASetAVX512F256, "EVEX.256.66.0F38.W0 92 /r /vsib {k} T1S", "ymm1:w:f32 {k}:rw vm32y:r:f32"),
		gather("VGATHERDPD", "VGATHERDPD_ZMMf64_MASKmskw_MEMf64", ISASetAVX512F512, "EVEX.512.66.0F38.W1 92 /r /vsib {k} T1S", "zmm1:w:f64 {k}:rw vm32y:r:f64"),
		gather("VPGATHERDD", "VPGATHERDD_ZMMu32_MASKmskw_MEMu32", ISASetAVX512F512, "EVEX.512.66.0F38.W0 90 /r /vsib {k} T1S", "zmm1:w:u32 {k}:rw vm32z:r:u32"),
		gather("VPGATHERDD", "VPGATHERDD_YMMu32_MASKmskw_MEMu32", ISASetAVX512F256, "EVEX.256.66.0F38.W0 90 /r /vsib {k} T1S", "ymm1:w:u32 {k}:rw vm32y:r:u32"),
		gather("VPGATHERQQ", "VPGATHERQQ_ZMMu64_MASKmskw_MEMu64", ISASetAVX512F512, "EVEX.512.66.0F38.W1 91 /r /vsib {k} T1S", "zmm1:w:u64 {k}:rw vm64z:r:u64"),
		evex("VEXTRACTF32X4", "VEXTRACTF32X4_*_MASKmskw_ZMMz_IMMb", CategoryAVX512, ISASetAVX512F512,
			"EVEX.512.66.0F3A.W0 19 /r ib {k} {z} T4", "xmm2/m128:w:f32 {k}:r zmm1:r:f32 imm8u", 0),
		evex("VINSERTF32X4", "VINSERTF32X4_ZMMz_MASKmskw_ZMMz_*_IMMb", CategoryAVX512, ISASetAVX512F512,
			"EVEX.512.66.0F3A.W0 18 /r ib {k} {z} T4", "zmm1:w:f32 {k}:r zmmV:r:f32 xmm2/m128:r:f32 imm8u", 0),
	)

	return rows
}

// kmaskRows returns the VEX-encoded
// opmask instructions.
func kmaskRows() []formRow {
	var rows []formRow
	for _, size := range []struct {
		suffix   string
		pp, w    string
		isa      ISASet
		mem      string
		gprPP    string
		gprW     string
		gprBits  string
		gprModes modeSet
	}{
		{"W", "NP", "W0", ISASetAVX512FKOP, "16", "NP", "W0", "32", modesAll},
		{"B", "66", "W0", ISASetAVX512DQKOP, "8", "66", "W0", "32", modesAll},
		{"Q", "NP", "W1", ISASetAVX512BWKOP, "64", "F2", "W1", "64", modesOnly64},
		{"D", "66", "W1", ISASetAVX512BWKOP, "32", "F2", "W0", "32", modesAll},
	} {
		k := func(iclass, iform, encoding, operands, flags string, modes modeSet) formRow {
			return formRow{iclass, iform, CategoryKMask, ExtensionAVX512VEX, size.isa, modes, encoding, operands, maskOp, flags}
		}

		for _, op := range []struct {
			name   string
			opcode byte
		}{
			{"KAND", 0x41},
			{"KANDN", 0x42},
			{"KOR", 0x45},
			{"KXNOR", 0x46},
			{"KXOR", 0x47},
		} {
			name := op.name + size.suffix
			rows = append(rows, k(name, name+"_MASKmskw_MASKmskw_MASKmskw",
				fmt.Sprintf("VEX.L1.%s.0F.%s %02X /r", size.pp, size.w, op.opcode), "k1:w kV:r k2:r", "", modesAll))
		}

		vex := "VEX.L0." + size.pp + ".0F." + size.w
		gpr := "VEX.L0." + size.gprPP + ".0F." + size.gprW
		mov := "KMOV" + size.suffix
		m := "m" + size.mem
		rows = append(rows,
			k("KNOT"+size.suffix, "KNOT"+size.suffix+"_MASKmskw_MASKmskw", vex+" 44 /r", "k1:w k2:r", "", modesAll),
			k("KORTEST"+size.suffix, "KORTEST"+size.suffix+"_MASKmskw_MASKmskw", vex+" 98 /r", "k1:r k2:r", flagsTest, modesAll),
			k(mov, mov+"_MASKmskw_*", vex+" 90 /r", "k1:w k2/"+m+":r", "", modesAll),
			k(mov, mov+"_MEM"+memoryIFormNames[size.mem]+"_MASKmskw", vex+" 91 /r", m+":w k1:r", "", modesAll),
			k(mov, mov+"_MASKmskw_GPR"+size.gprBits, gpr+" 92 /r", "k1:w rmr"+size.gprBits+":r", "", size.gprModes),
			k(mov, mov+"_GPR"+size.gprBits+"_MASKmskw", gpr+" 93 /r", "r"+size.gprBits+":w k2:r", "", size.gprModes),
		)
	}

	return rows
}

var amxRows = []formRow{
	{"LDTILECFG", "LDTILECFG_MEM", CategoryAMXTile, ExtensionAMXTile, ISASetAMXTile, modesOnly64, "VEX.128.NP.0F38.W0 49 !(11):000:bbb", "m512:r:struct", 0, ""},
	{"STTILECFG", "STTILECFG_MEM", CategoryAMXTile, ExtensionAMXTile, ISASetAMXTile, modesOnly64, "VEX.128.66.0F38.W0 49 !(11):000:bbb", "m512:w:struct", 0, ""},
	{"TILERELEASE", "TILERELEASE", CategoryAMXTile, ExtensionAMXTile, ISASetAMXTile, modesOnly64, "VEX.128.NP.0F38.W0 49 C0", "", 0, ""},
	{"TILEZERO", "TILEZERO_TMMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXTile, modesOnly64, "VEX.128.F2.0F38.W0 49 11:rrr:000", "tmm1:w", 0, ""},
	{"TILELOADD", "TILELOADD_TMMu32_MEMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXTile, modesOnly64, "VEX.128.F2.0F38.W0 4B !(11):rrr:100", "tmm1:w m:r:struct", 0, ""},
	{"TILELOADDT1", "TILELOADDT1_TMMu32_MEMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXTile, modesOnly64, "VEX.128.66.0F38.W0 4B !(11):rrr:100", "tmm1:w m:r:struct", 0, ""},
	{"TILESTORED", "TILESTORED_MEMu32_TMMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXTile, modesOnly64, "VEX.128.F3.0F38.W0 4B !(11):rrr:100", "m:w:struct tmm1:r", 0, ""},
	{"TDPBSSD", "TDPBSSD_TMMi32_TMMu32_TMMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXInt8, modesOnly64, "VEX.128.F2.0F38.W0 5E 11:rrr:bbb", "tmm1:rw:i32 tmm2:r:u32 tmmV:r:u32", attrs(AttrAMXDistinctTiles), ""},
	{"TDPBSUD", "TDPBSUD_TMMi32_TMMu32_TMMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXInt8, modesOnly64, "VEX.128.F3.0F38.W0 5E 11:rrr:bbb", "tmm1:rw:i32 tmm2:r:u32 tmmV:r:u32", attrs(AttrAMXDistinctTiles), ""},
	{"TDPBUSD", "TDPBUSD_TMMi32_TMMu32_TMMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXInt8, modesOnly64, "VEX.128.66.0F38.W0 5E 11:rrr:bbb", "tmm1:rw:i32 tmm2:r:u32 tmmV:r:u32", attrs(AttrAMXDistinctTiles), ""},
	{"TDPBUUD", "TDPBUUD_TMMu32_TMMu32_TMMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXInt8, modesOnly64, "VEX.128.NP.0F38.W0 5E 11:rrr:bbb", "tmm1:rw:u32 tmm2:r:u32 tmmV:r:u32", attrs(AttrAMXDistinctTiles), ""},
	{"TDPBF16PS", "TDPBF16PS_TMMf32_TMMu32_TMMu32", CategoryAMXTile, ExtensionAMXTile, ISASetAMXBF16, modesOnly64, "VEX.128.F3.0F38.W0 5C 11:rrr:bbb", "tmm1:rw:f32 tmm2:r:u32 tmmV:r:u32", attrs(AttrAMXDistinctTiles), ""},
}

var xopRows = []formRow{
	{"VFRCZPS", "VFRCZPS_XMMdq_*", CategoryXOP, ExtensionXOP, ISASetXOP, modesAll, "XOP.128.09.W0 80 /r", "xmm1:w:f32 xmm2/m128:r:f32", 0, ""},
	{"VFRCZPS", "VFRCZPS_YMMqq_*", CategoryXOP, ExtensionXOP, ISASetXOP, modesAll, "XOP.256.09.W0 80 /r", "ymm1:w:f32 ymm2/m256:r:f32", 0, ""},
	{"VPHADDBW", "VPHADDBW_XMMdq_*", CategoryXOP, ExtensionXOP, ISASetXOP, modesAll, "XOP.128.09.W0 C1 /r", "xmm1:w:i16 xmm2/m128:r:i8", 0, ""},
	{"VPCMOV", "VPCMOV_XMMdq_XMMdq_*_XMMdq", CategoryXOP, ExtensionXOP, ISASetXOP, modesAll, "XOP.128.08.W0 A2 /r /is4", "xmm1:w xmmV:r xmm2/m128:r xmmIH:r", 0, ""},
	{"VPCMOV", "VPCMOV_YMMqq_YMMqq_*_YMMqq", CategoryXOP, ExtensionXOP, ISASetXOP, modesAll, "XOP.256.08.W0 A2 /r /is4", "ymm1:w ymmV:r ymm2/m256:r ymmIH:r", 0, ""},
	{"VPROTD", "VPROTD_XMMdq_*_IMMb", CategoryXOP, ExtensionXOP, ISASetXOP, modesAll, "XOP.128.08.W0 C2 /r ib", "xmm1:w:u32 xmm2/m128:r:u32 imm8u", 0, ""},
}

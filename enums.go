// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"fmt"
	"strings"
)

// Category is a broad grouping of
// instructions by behaviour.
type Category uint8

const (
	CategoryInvalid Category = iota
	CategoryAES
	CategoryAMXTile
	CategoryAVX
	CategoryAVX2
	CategoryAVX2Gather
	CategoryAVX512
	CategoryBinary
	CategoryBitByte
	CategoryBMI1
	CategoryBMI2
	CategoryBroadcast
	CategoryCall
	CategoryCET
	CategoryCMOV
	CategoryCondBr
	CategoryConvert
	CategoryDataXfer
	CategoryDecimal
	CategoryFCMOV
	CategoryFlagOp
	CategoryGather
	CategoryInterrupt
	CategoryIO
	CategoryKMask
	CategoryLogical
	CategoryLogicalFP
	CategoryMisc
	CategoryMMX
	CategoryNop
	CategoryPCLMULQDQ
	CategoryPop
	CategoryPrefetch
	CategoryPush
	CategoryRet
	CategoryRotate
	CategorySemaphore
	CategorySetCC
	CategoryShift
	CategorySSE
	CategoryStringOp
	CategorySyscall
	CategorySysret
	CategorySystem
	CategoryUncondBr
	CategoryVFMA
	CategoryWideNop
	CategoryX87ALU
	CategoryXOP
	CategoryXSAVE
	categoryCount
)

var categoryNames = [...]string{
	CategoryInvalid:    "INVALID",
	CategoryAES:        "AES",
	CategoryAMXTile:    "AMX_TILE",
	CategoryAVX:        "AVX",
	CategoryAVX2:       "AVX2",
	CategoryAVX2Gather: "AVX2GATHER",
	CategoryAVX512:     "AVX512",
	CategoryBinary:     "BINARY",
	CategoryBitByte:    "BITBYTE",
	CategoryBMI1:       "BMI1",
	CategoryBMI2:       "BMI2",
	CategoryBroadcast:  "BROADCAST",
	CategoryCall:       "CALL",
	CategoryCET:        "CET",
	CategoryCMOV:       "CMOV",
	CategoryCondBr:     "COND_BR",
	CategoryConvert:    "CONVERT",
	CategoryDataXfer:   "DATAXFER",
	CategoryDecimal:    "DECIMAL",
	CategoryFCMOV:      "FCMOV",
	CategoryFlagOp:     "FLAGOP",
	CategoryGather:     "GATHER",
	CategoryInterrupt:  "INTERRUPT",
	CategoryIO:         "IO",
	CategoryKMask:      "KMASK",
	CategoryLogical:    "LOGICAL",
	CategoryLogicalFP:  "LOGICAL_FP",
	CategoryMisc:       "MISC",
	CategoryMMX:        "MMX",
	CategoryNop:        "NOP",
	CategoryPCLMULQDQ:  "PCLMULQDQ",
	CategoryPop:        "POP",
	CategoryPrefetch:   "PREFETCH",
	CategoryPush:       "PUSH",
	CategoryRet:        "RET",
	CategoryRotate:     "ROTATE",
	CategorySemaphore:  "SEMAPHORE",
	CategorySetCC:      "SETCC",
	CategoryShift:      "SHIFT",
	CategorySSE:        "SSE",
	CategoryStringOp:   "STRINGOP",
	CategorySyscall:    "SYSCALL",
	CategorySysret:     "SYSRET",
	CategorySystem:     "SYSTEM",
	CategoryUncondBr:   "UNCOND_BR",
	CategoryVFMA:       "VFMA",
	CategoryWideNop:    "WIDENOP",
	CategoryX87ALU:     "X87_ALU",
	CategoryXOP:        "XOP",
	CategoryXSAVE:      "XSAVE",
}

func (c Category) String() string { return enumName(categoryNames[:], c, "Category") }

// CategoryFromInt converts v to a category,
// checking that it is in range.
func CategoryFromInt(v int) (Category, error) {
	return enumFromInt(v, 0, categoryCount, "Category")
}

// CategoryByName returns the category with
// the given name, such as "COND_BR".
func CategoryByName(name string) (Category, bool) {
	return enumByName[Category](categoryNames[:], name)
}

// Extension is the instruction set
// extension that introduced an
// instruction.
type Extension uint8

const (
	ExtensionInvalid Extension = iota
	ExtensionAES
	ExtensionAMXTile
	ExtensionAPXEVEX
	ExtensionAVX
	ExtensionAVX2
	ExtensionAVX2Gather
	ExtensionAVX512EVEX
	ExtensionAVX512VEX
	ExtensionBase
	ExtensionBMI1
	ExtensionBMI2
	ExtensionCET
	ExtensionCLFSH
	ExtensionCMOV
	ExtensionFMA
	ExtensionLongMode
	ExtensionLZCNT
	ExtensionMMX
	ExtensionPause
	ExtensionPCLMULQDQ
	ExtensionRDTSCP
	ExtensionSSE
	ExtensionSSE2
	ExtensionSSE3
	ExtensionSSE4
	ExtensionSSE42
	ExtensionSSSE3
	ExtensionX87
	ExtensionXOP
	ExtensionXSAVE
	extensionCount
)

var extensionNames = [...]string{
	ExtensionInvalid:    "INVALID",
	ExtensionAES:        "AES",
	ExtensionAMXTile:    "AMX_TILE",
	ExtensionAPXEVEX:    "APXEVEX",
	ExtensionAVX:        "AVX",
	ExtensionAVX2:       "AVX2",
	ExtensionAVX2Gather: "AVX2GATHER",
	ExtensionAVX512EVEX: "AVX512EVEX",
	ExtensionAVX512VEX:  "AVX512VEX",
	ExtensionBase:       "BASE",
	ExtensionBMI1:       "BMI1",
	ExtensionBMI2:       "BMI2",
	ExtensionCET:        "CET",
	ExtensionCLFSH:      "CLFSH",
	ExtensionCMOV:       "CMOV",
	ExtensionFMA:        "FMA",
	ExtensionLongMode:   "LONGMODE",
	ExtensionLZCNT:      "LZCNT",
	ExtensionMMX:        "MMX",
	ExtensionPause:      "PAUSE",
	ExtensionPCLMULQDQ:  "PCLMULQDQ",
	ExtensionRDTSCP:     "RDTSCP",
	ExtensionSSE:        "SSE",
	ExtensionSSE2:       "SSE2",
	ExtensionSSE3:       "SSE3",
	ExtensionSSE4:       "SSE4",
	ExtensionSSE42:      "SSE4_2",
	ExtensionSSSE3:      "SSSE3",
	ExtensionX87:        "X87",
	ExtensionXOP:        "XOP",
	ExtensionXSAVE:      "XSAVE",
}

func (e Extension) String() string { return enumName(extensionNames[:], e, "Extension") }

// ExtensionFromInt converts v to an extension,
// checking that it is in range.
func ExtensionFromInt(v int) (Extension, error) {
	return enumFromInt(v, 0, extensionCount, "Extension")
}

// ExtensionByName returns the extension
// with the given name, such as "AVX2".
func ExtensionByName(name string) (Extension, bool) {
	return enumByName[Extension](extensionNames[:], name)
}

// ISASet is a group of instructions
// introduced together by a processor
// feature.
type ISASet uint8

const (
	ISASetInvalid ISASet = iota
	ISASetAES
	ISASetAMXBF16
	ISASetAMXInt8
	ISASetAMXTile
	ISASetAVX
	ISASetAVX2
	ISASetAVX2Gather
	ISASetAVX512BWKOP
	ISASetAVX512DQKOP
	ISASetAVX512F128
	ISASetAVX512F256
	ISASetAVX512F512
	ISASetAVX512FKOP
	ISASetAVX512FScalar
	ISASetBMI1
	ISASetBMI2
	ISASetCET
	ISASetCLFSH
	ISASetCMOV
	ISASetFCMOV
	ISASetFMA
	ISASetFXSAVE
	ISASetI186
	ISASetI286Real
	ISASetI386
	ISASetI486Real
	ISASetI86
	ISASetLAHF
	ISASetLongMode
	ISASetLZCNT
	ISASetPause
	ISASetPCLMULQDQ
	ISASetPentiumMMX
	ISASetPentiumReal
	ISASetPOPCNT
	ISASetRDTSCP
	ISASetSSE
	ISASetSSE2
	ISASetSSE3
	ISASetSSE41
	ISASetSSE42
	ISASetSSEPrefetch
	ISASetSSSE3
	ISASetX87
	ISASetXOP
	ISASetXSAVE
	isaSetCount
)

var isaSetNames = [...]string{
	ISASetInvalid:       "INVALID",
	ISASetAES:           "AES",
	ISASetAMXBF16:       "AMX_BF16",
	ISASetAMXInt8:       "AMX_INT8",
	ISASetAMXTile:       "AMX_TILE",
	ISASetAVX:           "AVX",
	ISASetAVX2:          "AVX2",
	ISASetAVX2Gather:    "AVX2GATHER",
	ISASetAVX512BWKOP:   "AVX512BW_KOP",
	ISASetAVX512DQKOP:   "AVX512DQ_KOP",
	ISASetAVX512F128:    "AVX512F_128",
	ISASetAVX512F256:    "AVX512F_256",
	ISASetAVX512F512:    "AVX512F_512",
	ISASetAVX512FKOP:    "AVX512F_KOP",
	ISASetAVX512FScalar: "AVX512F_SCALAR",
	ISASetBMI1:          "BMI1",
	ISASetBMI2:          "BMI2",
	ISASetCET:           "CET",
	ISASetCLFSH:         "CLFSH",
	ISASetCMOV:          "CMOV",
	ISASetFCMOV:         "FCMOV",
	ISASetFMA:           "FMA",
	ISASetFXSAVE:        "FXSAVE",
	ISASetI186:          "I186",
	ISASetI286Real:      "I286REAL",
	ISASetI386:          "I386",
	ISASetI486Real:      "I486REAL",
	ISASetI86:           "I86",
	ISASetLAHF:          "LAHF",
	ISASetLongMode:      "LONGMODE",
	ISASetLZCNT:         "LZCNT",
	ISASetPause:         "PAUSE",
	ISASetPCLMULQDQ:     "PCLMULQDQ",
	ISASetPentiumMMX:    "PENTIUMMMX",
	ISASetPentiumReal:   "PENTIUMREAL",
	ISASetPOPCNT:        "POPCNT",
	ISASetRDTSCP:        "RDTSCP",
	ISASetSSE:           "SSE",
	ISASetSSE2:          "SSE2",
	ISASetSSE3:          "SSE3",
	ISASetSSE41:         "SSE4",
	ISASetSSE42:         "SSE42",
	ISASetSSEPrefetch:   "SSE_PREFETCH",
	ISASetSSSE3:         "SSSE3",
	ISASetX87:           "X87",
	ISASetXOP:           "XOP",
	ISASetXSAVE:         "XSAVE",
}

func (s ISASet) String() string { return enumName(isaSetNames[:], s, "ISASet") }

// ISASetFromInt converts v to an ISA set,
// checking that it is in range.
func ISASetFromInt(v int) (ISASet, error) {
	return enumFromInt(v, 0, isaSetCount, "ISASet")
}

// ISASetByName returns the ISA set with the
// given name, such as "AVX512F_512".
func ISASetByName(name string) (ISASet, bool) {
	return enumByName[ISASet](isaSetNames[:], name)
}

// Attribute is a property of an
// instruction form. Each attribute
// is one bit in Attributes.
type Attribute uint8

const (
	AttrAMXDistinctTiles Attribute = iota
	AttrBroadcastEnabled
	AttrByteOp
	AttrDefault64
	AttrFlagsDependOnCount
	AttrForce64
	AttrGather
	AttrHLEAcqAble
	AttrHLERelAble
	AttrLockable
	AttrLocked
	AttrMaskAsControl
	AttrMaskOp
	AttrMXCSR
	AttrNop
	AttrPrefetch
	AttrRep
	AttrRequiresAlignment
	AttrRing0
	AttrSimdScalar
	AttrStackPop
	AttrStackPush
	AttrX87Control
	attributeCount
)

var attributeNames = [...]string{
	AttrAMXDistinctTiles:   "AMX_DISTINCT_TILES",
	AttrBroadcastEnabled:   "BROADCAST_ENABLED",
	AttrByteOp:             "BYTEOP",
	AttrDefault64:          "DEFAULT64",
	AttrFlagsDependOnCount: "FLAGS_DEPEND_ON_COUNT",
	AttrForce64:            "FORCE64",
	AttrGather:             "GATHER",
	AttrHLEAcqAble:         "HLE_ACQ_ABLE",
	AttrHLERelAble:         "HLE_REL_ABLE",
	AttrLockable:           "LOCKABLE",
	AttrLocked:             "LOCKED",
	AttrMaskAsControl:      "MASK_AS_CONTROL",
	AttrMaskOp:             "MASKOP",
	AttrMXCSR:              "MXCSR",
	AttrNop:                "NOP",
	AttrPrefetch:           "PREFETCH",
	AttrRep:                "REP",
	AttrRequiresAlignment:  "REQUIRES_ALIGNMENT",
	AttrRing0:              "RING0",
	AttrSimdScalar:         "SIMD_SCALAR",
	AttrStackPop:           "STACKPOP",
	AttrStackPush:          "STACKPUSH",
	AttrX87Control:         "X87_CONTROL",
}

func (a Attribute) String() string { return enumName(attributeNames[:], a, "Attribute") }

// AttributeFromInt converts v to an attribute,
// checking that it is in range.
func AttributeFromInt(v int) (Attribute, error) {
	return enumFromInt(v, 0, attributeCount, "Attribute")
}

// AttributeByName returns the attribute with
// the given name, such as "LOCKABLE".
func AttributeByName(name string) (Attribute, bool) {
	return enumByName[Attribute](attributeNames[:], name)
}

// Attributes is a set of attributes.
type Attributes uint64

// Has reports whether a is in the set.
func (a Attributes) Has(attr Attribute) bool {
	return a&(1<<attr) != 0
}

// List returns the attributes in the set,
// in ascending order.
func (a Attributes) List() []Attribute {
	var out []Attribute
	for attr := Attribute(0); attr < attributeCount; attr++ {
		if a.Has(attr) {
			out = append(out, attr)
		}
	}

	return out
}

func (a Attributes) String() string {
	attrs := a.List()
	names := make([]string, len(attrs))
	for i, attr := range attrs {
		names[i] = attr.String()
	}

	return strings.Join(names, "|")
}

// attrs builds an attribute set.
func attrs(list ...Attribute) Attributes {
	var out Attributes
	for _, attr := range list {
		out |= 1 << attr
	}

	return out
}

// OperandName identifies the role an
// operand plays in an instruction.
type OperandName uint8

const (
	OperandInvalid OperandName = iota
	OperandReg0
	OperandReg1
	OperandReg2
	OperandReg3
	OperandReg4
	OperandReg5
	OperandReg6
	OperandReg7
	OperandReg8
	OperandReg9
	OperandMem0
	OperandMem1
	OperandAgen
	OperandImm0
	OperandImm1
	OperandRelbr
	operandNameCount
)

var operandNameNames = [...]string{
	OperandInvalid: "INVALID",
	OperandReg0:    "REG0",
	OperandReg1:    "REG1",
	OperandReg2:    "REG2",
	OperandReg3:    "REG3",
	OperandReg4:    "REG4",
	OperandReg5:    "REG5",
	OperandReg6:    "REG6",
	OperandReg7:    "REG7",
	OperandReg8:    "REG8",
	OperandReg9:    "REG9",
	OperandMem0:    "MEM0",
	OperandMem1:    "MEM1",
	OperandAgen:    "AGEN",
	OperandImm0:    "IMM0",
	OperandImm1:    "IMM1",
	OperandRelbr:   "RELBR",
}

func (n OperandName) String() string { return enumName(operandNameNames[:], n, "OperandName") }

// OperandNameFromInt converts v to an operand
// name, checking that it is in range.
func OperandNameFromInt(v int) (OperandName, error) {
	return enumFromInt(v, 0, operandNameCount, "OperandName")
}

// IsRegister reports whether the name
// is one of REG0 to REG9.
func (n OperandName) IsRegister() bool {
	return OperandReg0 <= n && n <= OperandReg9
}

// IsMemory reports whether the name
// is MEM0 or MEM1.
func (n OperandName) IsMemory() bool {
	return n == OperandMem0 || n == OperandMem1
}

// Visibility describes how an operand
// appears in assembly.
type Visibility uint8

const (
	VisibilityInvalid Visibility = iota
	VisibilityExplicit
	VisibilityImplicit
	VisibilitySuppressed
	visibilityCount
)

var visibilityNames = [...]string{
	VisibilityInvalid:    "INVALID",
	VisibilityExplicit:   "EXPLICIT",
	VisibilityImplicit:   "IMPLICIT",
	VisibilitySuppressed: "SUPPRESSED",
}

func (v Visibility) String() string { return enumName(visibilityNames[:], v, "Visibility") }

// VisibilityFromInt converts v to a visibility,
// checking that it is in range.
func VisibilityFromInt(v int) (Visibility, error) {
	return enumFromInt(v, 0, visibilityCount, "Visibility")
}

// OperandType describes how an operand's
// value is determined.
type OperandType uint8

const (
	OperandTypeInvalid OperandType = iota
	OperandTypeImm
	OperandTypeImmConst
	OperandTypeNTLookupFn
	OperandTypeReg
	operandTypeCount
)

var operandTypeNames = [...]string{
	OperandTypeInvalid:    "INVALID",
	OperandTypeImm:        "IMM",
	OperandTypeImmConst:   "IMM_CONST",
	OperandTypeNTLookupFn: "NT_LOOKUP_FN",
	OperandTypeReg:        "REG",
}

func (t OperandType) String() string { return enumName(operandTypeNames[:], t, "OperandType") }

// OperandTypeFromInt converts v to an operand
// type, checking that it is in range.
func OperandTypeFromInt(v int) (OperandType, error) {
	return enumFromInt(v, 0, operandTypeCount, "OperandType")
}

// ElementType is the type of each element
// in an operand.
type ElementType uint8

const (
	ElementInvalid ElementType = iota
	ElementUint
	ElementInt
	ElementSingle
	ElementDouble
	ElementLongDouble
	ElementLongBCD
	ElementStruct
	ElementVariable
	ElementFloat16
	ElementBFloat16
	elementTypeCount
)

var elementTypeNames = [...]string{
	ElementInvalid:    "INVALID",
	ElementUint:       "UINT",
	ElementInt:        "INT",
	ElementSingle:     "SINGLE",
	ElementDouble:     "DOUBLE",
	ElementLongDouble: "LONGDOUBLE",
	ElementLongBCD:    "LONGBCD",
	ElementStruct:     "STRUCT",
	ElementVariable:   "VARIABLE",
	ElementFloat16:    "FLOAT16",
	ElementBFloat16:   "BFLOAT16",
}

func (t ElementType) String() string { return enumName(elementTypeNames[:], t, "ElementType") }

// ElementTypeFromInt converts v to an element
// type, checking that it is in range.
func ElementTypeFromInt(v int) (ElementType, error) {
	return enumFromInt(v, 0, elementTypeCount, "ElementType")
}

// Action describes how an instruction
// accesses an operand.
type Action uint8

const (
	ActionInvalid Action = iota
	ActionRW             // Read and written.
	ActionR              // Read.
	ActionW              // Written.
	ActionRCW            // Read and conditionally written.
	ActionCW             // Conditionally written.
	ActionCRW            // Conditionally read and always written.
	ActionCR             // Conditionally read.
	actionCount
)

var actionNames = [...]string{
	ActionInvalid: "INVALID",
	ActionRW:      "rw",
	ActionR:       "r",
	ActionW:       "w",
	ActionRCW:     "rcw",
	ActionCW:      "cw",
	ActionCRW:     "crw",
	ActionCR:      "cr",
}

func (a Action) String() string { return enumName(actionNames[:], a, "Action") }

// ActionFromInt converts v to an action,
// checking that it is in range.
func ActionFromInt(v int) (Action, error) {
	return enumFromInt(v, 0, actionCount, "Action")
}

// Read reports whether the operand is read,
// perhaps conditionally.
func (a Action) Read() bool {
	switch a {
	case ActionRW, ActionR, ActionRCW, ActionCRW, ActionCR:
		return true
	}

	return false
}

// ReadOnly reports whether the operand is
// read and never written.
func (a Action) ReadOnly() bool {
	return a == ActionR || a == ActionCR
}

// Written reports whether the operand is
// written, perhaps conditionally.
func (a Action) Written() bool {
	switch a {
	case ActionRW, ActionW, ActionRCW, ActionCW, ActionCRW:
		return true
	}

	return false
}

// WrittenOnly reports whether the operand is
// written and never read.
func (a Action) WrittenOnly() bool {
	return a == ActionW || a == ActionCW
}

// ReadAndWritten reports whether the operand
// is both read and written.
func (a Action) ReadAndWritten() bool {
	switch a {
	case ActionRW, ActionRCW, ActionCRW:
		return true
	}

	return false
}

// ConditionalRead reports whether the
// operand is only read sometimes.
func (a Action) ConditionalRead() bool {
	return a == ActionCR || a == ActionCRW
}

// ConditionalWrite reports whether the
// operand is only written sometimes.
func (a Action) ConditionalWrite() bool {
	return a == ActionCW || a == ActionRCW
}

// enumName returns names[v], or a
// placeholder if v is out of range.
func enumName[T ~uint8 | ~uint16](names []string, v T, enum string) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}

	return fmt.Sprintf("%s(%d)", enum, v)
}

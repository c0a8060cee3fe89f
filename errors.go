// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"fmt"
)

// DecodeError describes why machine code
// could not be decoded. Exactly one kind
// is reported for each failed decode.
type DecodeError uint8

const (
	_ DecodeError = iota
	ErrBufferTooShort
	ErrGeneralError
	ErrInvalidForChip
	ErrBadRegister
	ErrBadLockPrefix
	ErrBadRepPrefix
	ErrBadLegacyPrefix
	ErrBadRexPrefix
	ErrBadMap
	ErrBadEvexVPrime
	ErrBadEvexZNoMasking
	ErrBadEvexLl
	ErrInstrTooLong
	ErrInvalidMode
	ErrBadMemopIndex
	ErrGatherRegs
	ErrBadRegMatch
	decodeErrorCount
)

var decodeErrorNames = [...]string{
	ErrBufferTooShort:    "BUFFER_TOO_SHORT",
	ErrGeneralError:      "GENERAL_ERROR",
	ErrInvalidForChip:    "INVALID_FOR_CHIP",
	ErrBadRegister:       "BAD_REGISTER",
	ErrBadLockPrefix:     "BAD_LOCK_PREFIX",
	ErrBadRepPrefix:      "BAD_REP_PREFIX",
	ErrBadLegacyPrefix:   "BAD_LEGACY_PREFIX",
	ErrBadRexPrefix:      "BAD_REX_PREFIX",
	ErrBadMap:            "BAD_MAP",
	ErrBadEvexVPrime:     "BAD_EVEX_V_PRIME",
	ErrBadEvexZNoMasking: "BAD_EVEX_Z_NO_MASKING",
	ErrBadEvexLl:         "BAD_EVEX_LL",
	ErrInstrTooLong:      "INSTR_TOO_LONG",
	ErrInvalidMode:       "INVALID_MODE",
	ErrBadMemopIndex:     "BAD_MEMOP_INDEX",
	ErrGatherRegs:        "GATHER_REGS",
	ErrBadRegMatch:       "BAD_REG_MATCH",
}

var decodeErrorMessages = [...]string{
	ErrBufferTooShort:    "buffer too short",
	ErrGeneralError:      "no instruction matches the machine code",
	ErrInvalidForChip:    "instruction is not valid for the chip",
	ErrBadRegister:       "invalid register encoding",
	ErrBadLockPrefix:     "invalid lock prefix",
	ErrBadRepPrefix:      "invalid rep prefix",
	ErrBadLegacyPrefix:   "invalid legacy prefix",
	ErrBadRexPrefix:      "invalid REX prefix",
	ErrBadMap:            "invalid opcode map",
	ErrBadEvexVPrime:     "invalid EVEX.V' bit",
	ErrBadEvexZNoMasking: "EVEX zeroing without masking",
	ErrBadEvexLl:         "invalid EVEX.L'L value",
	ErrInstrTooLong:      "instruction exceeds 15 bytes",
	ErrInvalidMode:       "instruction is not valid in this mode",
	ErrBadMemopIndex:     "invalid memory operand index",
	ErrGatherRegs:        "gather registers overlap",
	ErrBadRegMatch:       "register operands must differ",
}

func (e DecodeError) Error() string {
	if e == 0 || e >= decodeErrorCount {
		return fmt.Sprintf("DecodeError(%d)", uint8(e))
	}

	return decodeErrorMessages[e]
}

// Name returns the error kind's
// identifier, such as BAD_MAP.
func (e DecodeError) Name() string {
	if e == 0 || e >= decodeErrorCount {
		return fmt.Sprintf("DecodeError(%d)", uint8(e))
	}

	return decodeErrorNames[e]
}

// DecodeErrorFromInt converts v to a decode
// error kind, checking that it is in range.
func DecodeErrorFromInt(v int) (DecodeError, error) {
	return enumFromInt(v, 1, decodeErrorCount, "DecodeError")
}

// InvalidEnumValueError is returned when an
// integer does not identify a member of an
// enumeration.
type InvalidEnumValueError struct {
	Value int
	Enum  string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("%d is not a valid value for %s", e.Value, e.Enum)
}

// enumFromInt checks that v is in the range
// [min, count) and converts it.
func enumFromInt[T ~uint8 | ~uint16](v int, min, count T, name string) (T, error) {
	if v < int(min) || v >= int(count) {
		return 0, &InvalidEnumValueError{Value: v, Enum: name}
	}

	return T(v), nil
}

// enumByName returns the member whose
// name is given.
func enumByName[T ~uint8 | ~uint16](names []string, name string) (T, bool) {
	for i, n := range names {
		if n != "" && n == name {
			return T(i), true
		}
	}

	return 0, false
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import (
	"fmt"
)

// TupleType contains an EVEX instruction
// tuple kind, as defined in Intel x86,
// Volume 2A, Section 2.7.5.
type TupleType uint8

const (
	TupleNone TupleType = iota
	TupleFull
	TupleHalf
	TupleFullMem
	Tuple1Scalar
	Tuple1Fixed
	Tuple2
	Tuple4
	Tuple8
	TupleHalfMem
	TupleQuarterMem
	TupleEighthMem
	TupleMem128
	TupleMOVDDUP
)

// TupleTypes maps each tuple type's UID
// to the tuple type.
var TupleTypes = map[string]TupleType{
	"TupleNone":       TupleNone,
	"TupleFull":       TupleFull,
	"TupleHalf":       TupleHalf,
	"TupleFullMem":    TupleFullMem,
	"Tuple1Scalar":    Tuple1Scalar,
	"Tuple1Fixed":     Tuple1Fixed,
	"Tuple2":          Tuple2,
	"Tuple4":          Tuple4,
	"Tuple8":          Tuple8,
	"TupleHalfMem":    TupleHalfMem,
	"TupleQuarterMem": TupleQuarterMem,
	"TupleEighthMem":  TupleEighthMem,
	"TupleMem128":     TupleMem128,
	"TupleMOVDDUP":    TupleMOVDDUP,
}

func (t TupleType) UID() string {
	for uid, tuple := range TupleTypes {
		if tuple == t {
			return uid
		}
	}

	return fmt.Sprintf("TupleType(%d)", t)
}

func (t TupleType) String() string {
	switch t {
	case TupleNone:
		return "None"
	case TupleFull:
		return "Full"
	case TupleHalf:
		return "Half"
	case TupleFullMem:
		return "Full Mem"
	case Tuple1Scalar:
		return "Tuple1 Scalar"
	case Tuple1Fixed:
		return "Tuple1 Fixed"
	case Tuple2:
		return "Tuple2"
	case Tuple4:
		return "Tuple4"
	case Tuple8:
		return "Tuple8"
	case TupleHalfMem:
		return "Half Mem"
	case TupleQuarterMem:
		return "Quarter Mem"
	case TupleEighthMem:
		return "Eighth Mem"
	case TupleMem128:
		return "Mem128"
	case TupleMOVDDUP:
		return "MOVDDUP"
	default:
		return fmt.Sprintf("TupleType(%d)", t)
	}
}

// DisplacementScale returns the value N
// by which an EVEX-encoded 8-bit displacement
// is multiplied, as described in Intel x86
// manuals, Volume 2A, Section 2.7.5.
//
// vectorBits is the instruction's vector
// length and elementBits the size of each
// element in its memory operand.
func (t TupleType) DisplacementScale(vectorBits, elementBits int, broadcast bool) (n int64, err error) {
	vectorSize := int64(vectorBits)
	inputSize := int64(elementBits)
	switch t {
	case TupleNone:
		return 1, nil
	case TupleFull:
		if broadcast {
			return inputSize / 8, nil
		}

		return vectorSize / 8, nil
	case TupleHalf:
		if broadcast {
			return inputSize / 8, nil
		}

		return vectorSize / 16, nil
	case TupleFullMem:
		return vectorSize / 8, nil
	case Tuple1Scalar, Tuple1Fixed:
		return inputSize / 8, nil
	case Tuple2:
		return inputSize / 4, nil
	case Tuple4:
		return inputSize / 2, nil
	case Tuple8:
		return inputSize / 1, nil
	case TupleHalfMem:
		return vectorSize / 16, nil
	case TupleQuarterMem:
		return vectorSize / 32, nil
	case TupleEighthMem:
		return vectorSize / 64, nil
	case TupleMem128:
		return 16, nil
	case TupleMOVDDUP:
		switch vectorSize {
		case 128:
			return 8, nil
		case 256:
			return 32, nil
		case 512:
			return 64, nil
		}

		return 1, fmt.Errorf("invalid vector length %d for tuple type %s", vectorBits, t)
	default:
		return 1, fmt.Errorf("unknown tuple type: %s", t)
	}
}

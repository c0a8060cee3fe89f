// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"fmt"
	"strings"
)

// Flag identifies one bit of the RFLAGS
// register, or an x87 condition code.
type Flag uint8

const (
	FlagInvalid Flag = iota
	FlagOF
	FlagSF
	FlagZF
	FlagAF
	FlagPF
	FlagCF
	FlagDF
	FlagVIF
	FlagIOPL
	FlagIF
	FlagAC
	FlagVM
	FlagRF
	FlagNT
	FlagTF
	FlagID
	FlagVIP
	FlagFC0
	FlagFC1
	FlagFC2
	FlagFC3
	flagCount
)

var flagNames = [...]string{
	FlagInvalid: "INVALID",
	FlagOF:      "of",
	FlagSF:      "sf",
	FlagZF:      "zf",
	FlagAF:      "af",
	FlagPF:      "pf",
	FlagCF:      "cf",
	FlagDF:      "df",
	FlagVIF:     "vif",
	FlagIOPL:    "iopl",
	FlagIF:      "if",
	FlagAC:      "ac",
	FlagVM:      "vm",
	FlagRF:      "rf",
	FlagNT:      "nt",
	FlagTF:      "tf",
	FlagID:      "id",
	FlagVIP:     "vip",
	FlagFC0:     "fc0",
	FlagFC1:     "fc1",
	FlagFC2:     "fc2",
	FlagFC3:     "fc3",
}

// flagBits maps each flag to its bit
// position in RFLAGS. The x87 condition
// codes follow the architectural flags.
var flagBits = [...]uint8{
	FlagCF:   0,
	FlagPF:   2,
	FlagAF:   4,
	FlagZF:   6,
	FlagSF:   7,
	FlagTF:   8,
	FlagIF:   9,
	FlagDF:   10,
	FlagOF:   11,
	FlagIOPL: 12,
	FlagNT:   14,
	FlagRF:   16,
	FlagVM:   17,
	FlagAC:   18,
	FlagVIF:  19,
	FlagVIP:  20,
	FlagID:   21,
	FlagFC0:  22,
	FlagFC1:  23,
	FlagFC2:  24,
	FlagFC3:  25,
}

func (f Flag) String() string { return enumName(flagNames[:], f, "Flag") }

// FlagFromInt converts v to a flag, checking
// that it is in range.
func FlagFromInt(v int) (Flag, error) {
	return enumFromInt(v, 0, flagCount, "Flag")
}

// Mask returns the flag's bits in a FlagSet.
// IOPL occupies two bits.
func (f Flag) Mask() FlagSet {
	if f == FlagInvalid || f >= flagCount {
		return 0
	}

	if f == FlagIOPL {
		return 0b11 << flagBits[f]
	}

	return 1 << flagBits[f]
}

// FlagSet is a set of flags, using the
// RFLAGS bit positions.
type FlagSet uint32

const x87Flags = FlagSet(0b1111 << 22)

// Mask returns the set as an integer.
func (s FlagSet) Mask() uint32 { return uint32(s) }

// Has reports whether f is in the set.
func (s FlagSet) Has(f Flag) bool {
	m := f.Mask()
	return m != 0 && s&m == m
}

// IsSubsetOf reports whether every flag in
// s is also in other.
func (s FlagSet) IsSubsetOf(other FlagSet) bool {
	return s&^other == 0
}

func (s FlagSet) String() string {
	var names []string
	for f := FlagOF; f < flagCount; f++ {
		if s.Has(f) {
			names = append(names, f.String())
		}
	}

	return strings.Join(names, " ")
}

// FlagActionKind describes what an
// instruction does to a flag.
type FlagActionKind uint8

const (
	FlagActionInvalid FlagActionKind = iota
	FlagActionUndefined
	FlagActionTest
	FlagActionModify
	FlagActionZero
	FlagActionPop
	FlagActionAH
	FlagActionOne
	flagActionKindCount
)

var flagActionKindNames = [...]string{
	FlagActionInvalid:   "INVALID",
	FlagActionUndefined: "u",
	FlagActionTest:      "tst",
	FlagActionModify:    "mod",
	FlagActionZero:      "0",
	FlagActionPop:       "pop",
	FlagActionAH:        "ah",
	FlagActionOne:       "1",
}

func (k FlagActionKind) String() string {
	return enumName(flagActionKindNames[:], k, "FlagActionKind")
}

// FlagActionKindFromInt converts v to a flag
// action kind, checking that it is in range.
func FlagActionKindFromInt(v int) (FlagActionKind, error) {
	return enumFromInt(v, 0, flagActionKindCount, "FlagActionKind")
}

// Reads reports whether the action
// reads the flag.
func (k FlagActionKind) Reads() bool { return k == FlagActionTest }

// Writes reports whether the action
// leaves a new value in the flag.
// Undefined results count as writes.
func (k FlagActionKind) Writes() bool {
	switch k {
	case FlagActionUndefined, FlagActionModify, FlagActionZero, FlagActionPop, FlagActionAH, FlagActionOne:
		return true
	}

	return false
}

// FlagAction pairs a flag with what an
// instruction does to it.
type FlagAction struct {
	Flag   Flag
	Action FlagActionKind
}

func (a FlagAction) String() string {
	return a.Flag.String() + "-" + a.Action.String()
}

// SimpleFlag summarises an instruction
// form's effect on the flags.
type SimpleFlag struct {
	actions   []FlagAction
	read      FlagSet
	written   FlagSet
	undefined FlagSet
	may       bool
}

// FlagActions returns the individual
// flag actions.
func (f *SimpleFlag) FlagActions() []FlagAction { return f.actions }

// MayWrite reports whether the flags are
// written only under some conditions,
// such as a non-zero count.
func (f *SimpleFlag) MayWrite() bool { return f.may && f.written != 0 }

// MustWrite reports whether the flags are
// always written.
func (f *SimpleFlag) MustWrite() bool { return !f.may && f.written != 0 }

func (f *SimpleFlag) ReadFlagSet() FlagSet      { return f.read }
func (f *SimpleFlag) WrittenFlagSet() FlagSet   { return f.written }
func (f *SimpleFlag) UndefinedFlagSet() FlagSet { return f.undefined }
func (f *SimpleFlag) ReadsFlags() bool          { return f.read != 0 }
func (f *SimpleFlag) WritesFlags() bool         { return f.written != 0 }

// x87Only reports whether the only flags
// affected are the x87 condition codes.
func (f *SimpleFlag) x87Only() bool {
	return (f.read | f.written).IsSubsetOf(x87Flags)
}

func (f *SimpleFlag) String() string {
	var b strings.Builder
	if f.may {
		b.WriteString("MAY [")
	} else {
		b.WriteString("MUST [")
	}

	for _, action := range f.actions {
		b.WriteByte(' ')
		b.WriteString(action.String())
	}

	b.WriteString(" ]")

	return b.String()
}

// ParseSimpleFlag parses a flag description
// such as "MUST [ of-mod sf-mod cf-tst ]".
func ParseSimpleFlag(s string) (*SimpleFlag, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 || fields[1] != "[" || fields[len(fields)-1] != "]" {
		return nil, fmt.Errorf("invalid flags %q: want MAY or MUST followed by a bracketed list", s)
	}

	f := new(SimpleFlag)
	switch fields[0] {
	case "MAY":
		f.may = true
	case "MUST":
	default:
		return nil, fmt.Errorf("invalid flags %q: bad qualifier %q", s, fields[0])
	}

	for _, field := range fields[2 : len(fields)-1] {
		flagName, actionName, ok := strings.Cut(field, "-")
		if !ok {
			return nil, fmt.Errorf("invalid flags %q: bad flag action %q", s, field)
		}

		flag, ok := enumByName[Flag](flagNames[:], flagName)
		if !ok || flag == FlagInvalid {
			return nil, fmt.Errorf("invalid flags %q: unknown flag %q", s, flagName)
		}

		action, ok := enumByName[FlagActionKind](flagActionKindNames[:], actionName)
		if !ok || action == FlagActionInvalid {
			return nil, fmt.Errorf("invalid flags %q: unknown flag action %q", s, actionName)
		}

		f.actions = append(f.actions, FlagAction{Flag: flag, Action: action})
		if action.Reads() {
			f.read |= flag.Mask()
		}
		if action.Writes() {
			f.written |= flag.Mask()
		}
		if action == FlagActionUndefined {
			f.undefined |= flag.Mask()
		}
	}

	if len(f.actions) == 0 {
		return nil, fmt.Errorf("invalid flags %q: no flag actions", s)
	}

	return f, nil
}

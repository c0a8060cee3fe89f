// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"fmt"
)

// MachineMode is the processor's operating
// mode while it executes the decoded code.
type MachineMode uint8

const (
	_ MachineMode = iota
	ModeLong64
	ModeLongCompat32
	ModeLongCompat16
	ModeLegacy32
	ModeLegacy16
	ModeReal16
	ModeReal32
	machineModeCount
)

var machineModeNames = [...]string{
	ModeLong64:       "LONG_64",
	ModeLongCompat32: "LONG_COMPAT_32",
	ModeLongCompat16: "LONG_COMPAT_16",
	ModeLegacy32:     "LEGACY_32",
	ModeLegacy16:     "LEGACY_16",
	ModeReal16:       "REAL_16",
	ModeReal32:       "REAL_32",
}

func (m MachineMode) String() string {
	if m == 0 || m >= machineModeCount {
		return fmt.Sprintf("MachineMode(%d)", uint8(m))
	}

	return machineModeNames[m]
}

// MachineModeFromInt converts v to a machine
// mode, checking that it is in range.
func MachineModeFromInt(v int) (MachineMode, error) {
	return enumFromInt(v, 1, machineModeCount, "MachineMode")
}

// CodeSize returns the default operand
// and address size of the mode in bits.
func (m MachineMode) CodeSize() int {
	switch m {
	case ModeLong64:
		return 64
	case ModeLongCompat32, ModeLegacy32, ModeReal32:
		return 32
	case ModeLongCompat16, ModeLegacy16, ModeReal16:
		return 16
	}

	return 0
}

// AddressWidth is the width of the stack
// address, in bits.
type AddressWidth uint8

const (
	AddressWidth16 AddressWidth = 16
	AddressWidth32 AddressWidth = 32
	AddressWidth64 AddressWidth = 64
)

func (w AddressWidth) String() string {
	switch w {
	case AddressWidth16, AddressWidth32, AddressWidth64:
		return fmt.Sprintf("%db", uint8(w))
	}

	return fmt.Sprintf("AddressWidth(%d)", uint8(w))
}

// AddressWidthFromInt converts a number
// of bits to an address width.
func AddressWidthFromInt(v int) (AddressWidth, error) {
	switch v {
	case 16, 32, 64:
		return AddressWidth(v), nil
	}

	return 0, &InvalidEnumValueError{Value: v, Enum: "AddressWidth"}
}

// State is the environment in which
// machine code is decoded. The zero
// State is invalid.
type State struct {
	mode  MachineMode
	width AddressWidth
}

// NewState returns the state for the given
// machine mode and stack address width.
//
// 64-bit long mode always uses a 64-bit
// stack. Other modes accept any width.
func NewState(mode MachineMode, width AddressWidth) (State, error) {
	if mode == 0 || mode >= machineModeCount {
		return State{}, fmt.Errorf("invalid machine mode %s", mode)
	}

	switch width {
	case AddressWidth16, AddressWidth32, AddressWidth64:
	default:
		return State{}, fmt.Errorf("invalid stack address width %s", width)
	}

	if mode == ModeLong64 && width != AddressWidth64 {
		return State{}, fmt.Errorf("invalid state: machine mode %s cannot use a %d-bit stack address width", mode, uint8(width))
	}

	return State{mode: mode, width: width}, nil
}

// MustState is like NewState, but panics
// if the state is invalid.
func MustState(mode MachineMode, width AddressWidth) State {
	s, err := NewState(mode, width)
	if err != nil {
		panic(err.Error())
	}

	return s
}

func (s State) Mode() MachineMode               { return s.mode }
func (s State) StackAddressWidth() AddressWidth { return s.width }

// Long64 reports whether the state is
// 64-bit long mode.
func (s State) Long64() bool { return s.mode == ModeLong64 }

func (s State) valid() bool { return s.mode != 0 }

func (s State) String() string {
	return fmt.Sprintf("%s/%s", s.mode, s.width)
}

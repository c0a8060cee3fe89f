// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"errors"
	"testing"
)

func TestDecodeErrorNames(t *testing.T) {
	for v := 1; v < int(decodeErrorCount); v++ {
		e, err := DecodeErrorFromInt(v)
		if err != nil {
			t.Fatalf("DecodeErrorFromInt(%d): %v", v, err)
		}

		if e.Name() == "" || e.Error() == "" || e.Name() == e.Error() {
			t.Errorf("DecodeError(%d): name %q, message %q", v, e.Name(), e.Error())
		}
	}

	if got := ErrBadMap.Name(); got != "BAD_MAP" {
		t.Errorf("ErrBadMap.Name(): got %q", got)
	}

	for _, v := range []int{0, -1, int(decodeErrorCount)} {
		_, err := DecodeErrorFromInt(v)
		var invalid *InvalidEnumValueError
		if !errors.As(err, &invalid) || invalid.Value != v || invalid.Enum != "DecodeError" {
			t.Errorf("DecodeErrorFromInt(%d): got %v", v, err)
		}
	}

	if got, want := DecodeError(200).Error(), "DecodeError(200)"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

func TestDecodeErrorMatching(t *testing.T) {
	_, err := Decode([]byte{0xf0, 0x90}, state64, nil)
	if !errors.Is(err, ErrBadLockPrefix) {
		t.Fatalf("got %v, want %v", err, ErrBadLockPrefix)
	}

	var kind DecodeError
	if !errors.As(err, &kind) || kind.Name() != "BAD_LOCK_PREFIX" {
		t.Errorf("errors.As: got %v", kind)
	}
}

func TestNewState(t *testing.T) {
	tests := []struct {
		Name  string
		Mode  MachineMode
		Width AddressWidth
		OK    bool
	}{
		{"long 64", ModeLong64, AddressWidth64, true},
		{"compat 32", ModeLongCompat32, AddressWidth32, true},
		{"legacy 16 with 32-bit stack", ModeLegacy16, AddressWidth32, true},
		{"real 16", ModeReal16, AddressWidth16, true},
		{"long 64 with 32-bit stack", ModeLong64, AddressWidth32, false},
		{"legacy 32 with 64-bit stack", ModeLegacy32, AddressWidth64, true},
		{"long 64 with 16-bit stack", ModeLong64, AddressWidth16, false},
		{"invalid mode", 0, AddressWidth32, false},
		{"invalid width", ModeLegacy32, 8, false},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			state, err := NewState(test.Mode, test.Width)
			if (err == nil) != test.OK {
				t.Fatalf("got error %v", err)
			}

			if !test.OK {
				return
			}

			if state.Mode() != test.Mode || state.StackAddressWidth() != test.Width {
				t.Errorf("got %s", state)
			}

			if state.Long64() != (test.Mode == ModeLong64) {
				t.Errorf("Long64: got %v", state.Long64())
			}
		})
	}
}

func TestNewStateAllPairs(t *testing.T) {
	for mode := ModeLong64; mode < machineModeCount; mode++ {
		for _, width := range []AddressWidth{AddressWidth16, AddressWidth32, AddressWidth64} {
			_, err := NewState(mode, width)
			wantErr := mode == ModeLong64 && width != AddressWidth64
			if (err != nil) != wantErr {
				t.Errorf("NewState(%s, %s): got error %v", mode, width, err)
			}
		}
	}
}

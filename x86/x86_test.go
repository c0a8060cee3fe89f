// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import (
	"testing"
)

func TestVEX2(t *testing.T) {
	// c5 65 58 f1 (vaddpd ymm14, ymm3, ymm1).
	v := VEX2(0x65)
	if v.R() {
		t.Errorf("VEX2(0x65).R(): got true, want false")
	}
	if !v.X() || !v.B() {
		t.Errorf("VEX2(0x65): X and B must be set, got %s", v)
	}
	if got := v.M_MMMM(); got != 1 {
		t.Errorf("VEX2(0x65).M_MMMM(): got %d, want 1", got)
	}
	if v.W() {
		t.Errorf("VEX2(0x65).W(): got true, want false")
	}
	if got := v.VVVV(); got != 0b1100 {
		t.Errorf("VEX2(0x65).VVVV(): got %04b, want 1100", got)
	}
	if !v.L() {
		t.Errorf("VEX2(0x65).L(): got false, want true")
	}
	if got := v.PP(); got != 0b01 {
		t.Errorf("VEX2(0x65).PP(): got %02b, want 01", got)
	}
}

func TestEVEX(t *testing.T) {
	// 62 11 e5 28 58 f7 (vaddpd ymm14, ymm3, ymm31).
	p := EVEX{0x11, 0xe5, 0x28}
	checks := []struct {
		Name string
		Got  bool
		Want bool
	}{
		{"R", p.R(), false},
		{"X", p.X(), false},
		{"B", p.B(), false},
		{"R'", p.Rp(), true},
		{"W", p.W(), true},
		{"On", p.On(), true},
		{"z", p.Z(), false},
		{"L'", p.Lp(), false},
		{"L", p.L(), true},
		{"b", p.Br(), false},
		{"V'", p.Vp(), true},
	}

	for _, check := range checks {
		if check.Got != check.Want {
			t.Errorf("EVEX.%s: got %v, want %v", check.Name, check.Got, check.Want)
		}
	}

	if got := p.MMM(); got != 1 {
		t.Errorf("EVEX.mmm: got %d, want 1", got)
	}
	if got := p.VVVV(); got != 0b1100 {
		t.Errorf("EVEX.vvvv: got %04b, want 1100", got)
	}
	if got := p.PP(); got != 0b01 {
		t.Errorf("EVEX.pp: got %02b, want 01", got)
	}
	if got := p.LL(); got != 0b01 {
		t.Errorf("EVEX.L'L: got %02b, want 01", got)
	}
	if got := p.AAA(); got != 0 {
		t.Errorf("EVEX.aaa: got %d, want 0", got)
	}
}

func TestREX(t *testing.T) {
	tests := []struct {
		REX  REX
		Want string
	}{
		{0x40, "0100WRXB"},
		{0x48, "0100WRXB"},
		{0x4f, "0100WRXB"},
	}

	for _, test := range tests {
		got := test.REX.String()
		for i := 4; i < 8; i++ {
			set := (test.REX>>(7-i))&1 == 1
			if set != (got[i] != '0') {
				t.Errorf("REX(%#x).String(): got %q, bit %d mismatch", byte(test.REX), got, 7-i)
			}
		}
	}

	if !IsREX(0x4a) || IsREX(0x50) {
		t.Errorf("IsREX: misclassified 0x4a or 0x50")
	}
}

func TestModRMAndSIB(t *testing.T) {
	m := ModRM(0x17) // 00 010 111
	if m.Mod() != 0 || m.Reg() != 2 || m.RM() != 7 {
		t.Errorf("ModRM(0x17): got %s", m)
	}

	s := SIB(0x8c) // 10 001 100
	if s.Scale() != 2 || s.Index() != 1 || s.Base() != 4 {
		t.Errorf("SIB(0x8c): got %s", s)
	}
}

func TestMapValidFor(t *testing.T) {
	tests := []struct {
		Map   Map
		Space Space
		Want  bool
	}{
		{Map0, SpaceLegacy, true},
		{Map0F3A, SpaceLegacy, true},
		{Map0, SpaceVEX, false},
		{Map0F38, SpaceVEX, true},
		{Map5, SpaceVEX, false},
		{Map5, SpaceEVEX, true},
		{Map(4), SpaceEVEX, false},
		{Map(7), SpaceEVEX, false},
		{MapXOP8, SpaceXOP, true},
		{Map0F, SpaceXOP, false},
	}

	for _, test := range tests {
		if got := test.Map.ValidFor(test.Space); got != test.Want {
			t.Errorf("%s.ValidFor(%s): got %v, want %v", test.Map, test.Space, got, test.Want)
		}
	}
}

func TestDisplacementScale(t *testing.T) {
	tests := []struct {
		Tuple     TupleType
		Vector    int
		Element   int
		Broadcast bool
		Want      int64
	}{
		{TupleFull, 512, 32, false, 64},
		{TupleFull, 512, 32, true, 4},
		{TupleFull, 256, 64, true, 8},
		{TupleHalf, 512, 32, false, 32},
		{TupleFullMem, 128, 8, false, 16},
		{Tuple1Scalar, 128, 64, false, 8},
		{Tuple2, 256, 32, false, 8},
		{Tuple4, 512, 32, false, 16},
		{Tuple8, 512, 32, false, 32},
		{TupleQuarterMem, 512, 8, false, 16},
		{TupleMem128, 512, 64, false, 16},
		{TupleMOVDDUP, 128, 64, false, 8},
	}

	for _, test := range tests {
		got, err := test.Tuple.DisplacementScale(test.Vector, test.Element, test.Broadcast)
		if err != nil {
			t.Errorf("%s.DisplacementScale(%d, %d, %v): %v", test.Tuple, test.Vector, test.Element, test.Broadcast, err)
			continue
		}

		if got != test.Want {
			t.Errorf("%s.DisplacementScale(%d, %d, %v): got %d, want %d", test.Tuple, test.Vector, test.Element, test.Broadcast, got, test.Want)
		}
	}

	if uid := Tuple1Scalar.UID(); TupleTypes[uid] != Tuple1Scalar {
		t.Errorf("Tuple1Scalar.UID(): got %q", uid)
	}
}

func TestRegisterLookup(t *testing.T) {
	tests := []struct {
		Name string
		Got  *Register
		Want *Register
	}{
		{"8-bit legacy", GeneralPurpose(8, 4, false), AH},
		{"8-bit REX", GeneralPurpose(8, 4, true), SPL},
		{"8-bit extended", GeneralPurpose(8, 12, false), R12B},
		{"16-bit", GeneralPurpose(16, 7, false), DI},
		{"32-bit", GeneralPurpose(32, 2, false), EDX},
		{"64-bit", GeneralPurpose(64, 15, true), R15},
		{"bad size", GeneralPurpose(24, 0, false), nil},
		{"xmm", Vector(128, 31), XMM31},
		{"ymm", Vector(256, 3), YMM3},
		{"zmm", Vector(512, 0), ZMM0},
		{"segment", Segment(4), FS},
		{"bad segment", Segment(6), nil},
		{"control", Control(8), CR8},
		{"opmask", Opmask(7), K7},
		{"rip", InstructionPointer(64), RIP},
		{"eflags", Flags(32), EFLAGS},
	}

	for _, test := range tests {
		if test.Got != test.Want {
			t.Errorf("%s: got %v, want %v", test.Name, test.Got, test.Want)
		}
	}

	for _, reg := range Registers {
		if RegistersByName[reg.Name] != reg {
			t.Errorf("RegistersByName[%q]: got %v, want %v", reg.Name, RegistersByName[reg.Name], reg)
		}
	}
}

func TestMemoryString(t *testing.T) {
	tests := []struct {
		Name string
		Mem  Memory
		Want string
	}{
		{
			Name: "base",
			Mem:  Memory{Base: RDI},
			Want: "[rdi]",
		},
		{
			Name: "full",
			Mem:  Memory{Segment: FS, Base: RDI, Index: RAX, Scale: 4, Displacement: 0x10, DisplacementBits: 8},
			Want: "fs:[rdi+rax*4+0x10]",
		},
		{
			Name: "negative",
			Mem:  Memory{Base: RBP, Displacement: -8, DisplacementBits: 8},
			Want: "[rbp-0x8]",
		},
		{
			Name: "absolute",
			Mem:  Memory{Displacement: 0x1000, DisplacementBits: 32},
			Want: "[0x1000]",
		},
	}

	for _, test := range tests {
		if got := test.Mem.String(); got != test.Want {
			t.Errorf("%s: got %q, want %q", test.Name, got, test.Want)
		}
	}
}

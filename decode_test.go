// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"firefly-os.dev/xed/x86"
)

var (
	state64 = MustState(ModeLong64, AddressWidth64)
	state32 = MustState(ModeLegacy32, AddressWidth32)
	state16 = MustState(ModeReal16, AddressWidth16)
)

// decoded summarises an instruction for
// comparison.
type decoded struct {
	IClass   string
	Length   int
	Operands []string
}

func summarise(inst *Inst) decoded {
	d := decoded{
		IClass: inst.IClass().String(),
		Length: inst.Length(),
	}

	for _, v := range inst.Operands() {
		d.Operands = append(d.Operands, v.String())
	}

	return d
}

func TestDecode(t *testing.T) {
	tests := []struct {
		Name  string
		Code  []byte
		State State
		Want  decoded
	}{
		{
			Name:  "nop",
			Code:  []byte{0x90},
			State: state64,
			Want:  decoded{IClass: "NOP", Length: 1},
		},
		{
			Name:  "pause",
			Code:  []byte{0xf3, 0x90},
			State: state64,
			Want:  decoded{IClass: "PAUSE", Length: 2},
		},
		{
			Name:  "xchg r8",
			Code:  []byte{0x41, 0x90},
			State: state64,
			Want:  decoded{IClass: "XCHG", Length: 2, Operands: []string{"r8d", "eax"}},
		},
		{
			Name:  "lzcnt",
			Code:  []byte{0xf3, 0x0f, 0xbd, 0x17},
			State: state64,
			Want:  decoded{IClass: "LZCNT", Length: 4, Operands: []string{"edx", "[rdi]", "rflags"}},
		},
		{
			Name:  "add with REX.W",
			Code:  []byte{0x48, 0x01, 0xd8},
			State: state64,
			Want:  decoded{IClass: "ADD", Length: 3, Operands: []string{"rax", "rbx", "rflags"}},
		},
		{
			Name:  "locked add",
			Code:  []byte{0xf0, 0x01, 0x18},
			State: state64,
			Want:  decoded{IClass: "ADD", Length: 3, Operands: []string{"[rax]", "ebx", "rflags"}},
		},
		{
			Name:  "lea with SIB",
			Code:  []byte{0x8d, 0x44, 0x24, 0x08},
			State: state64,
			Want:  decoded{IClass: "LEA", Length: 4, Operands: []string{"eax", "[rsp+0x8]"}},
		},
		{
			Name:  "RIP-relative",
			Code:  []byte{0x8b, 0x05, 0x10, 0x00, 0x00, 0x00},
			State: state64,
			Want:  decoded{IClass: "MOV", Length: 6, Operands: []string{"eax", "[rip+0x10]"}},
		},
		{
			Name:  "EIP-relative",
			Code:  []byte{0x67, 0x8b, 0x05, 0x10, 0x00, 0x00, 0x00},
			State: state64,
			Want:  decoded{IClass: "MOV", Length: 7, Operands: []string{"eax", "[eip+0x10]"}},
		},
		{
			Name:  "negative displacement",
			Code:  []byte{0x48, 0x8b, 0x45, 0xf8},
			State: state64,
			Want:  decoded{IClass: "MOV", Length: 4, Operands: []string{"rax", "[rbp-0x8]"}},
		},
		{
			Name:  "SIB index",
			Code:  []byte{0x8b, 0x04, 0x88},
			State: state64,
			Want:  decoded{IClass: "MOV", Length: 3, Operands: []string{"eax", "[rax+rcx*4]"}},
		},
		{
			Name:  "segment override",
			Code:  []byte{0x64, 0x48, 0x8b, 0x04, 0x25, 0x28, 0x00, 0x00, 0x00},
			State: state64,
			Want:  decoded{IClass: "MOV", Length: 9, Operands: []string{"rax", "fs:[0x28]"}},
		},
		{
			Name:  "mov imm64",
			Code:  []byte{0x48, 0xb8, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
			State: state64,
			Want:  decoded{IClass: "MOV", Length: 10, Operands: []string{"rax", "0x807060504030201"}},
		},
		{
			Name:  "jmp rel32",
			Code:  []byte{0xe9, 0x80, 0x00, 0x00, 0x00},
			State: state64,
			Want:  decoded{IClass: "JMP", Length: 5, Operands: []string{"0x80", "rip"}},
		},
		{
			Name:  "jmp rel8",
			Code:  []byte{0xeb, 0xfe},
			State: state64,
			Want:  decoded{IClass: "JMP", Length: 2, Operands: []string{"-0x2", "rip"}},
		},
		{
			Name:  "push",
			Code:  []byte{0x55},
			State: state64,
			Want:  decoded{IClass: "PUSH", Length: 1, Operands: []string{"rbp", "[rsp]", "rsp"}},
		},
		{
			Name:  "inc in 32-bit mode",
			Code:  []byte{0x40},
			State: state32,
			Want:  decoded{IClass: "INC", Length: 1, Operands: []string{"eax", "eflags"}},
		},
		{
			Name:  "16-bit addressing",
			Code:  []byte{0x8b, 0x00},
			State: state16,
			Want:  decoded{IClass: "MOV", Length: 2, Operands: []string{"ax", "[bx+si*1]"}},
		},
		{
			Name:  "16-bit absolute",
			Code:  []byte{0x8b, 0x06, 0x34, 0x12},
			State: state16,
			Want:  decoded{IClass: "MOV", Length: 4, Operands: []string{"ax", "[0x1234]"}},
		},
		{
			Name:  "VEX",
			Code:  []byte{0xc5, 0xf8, 0x58, 0xc2},
			State: state64,
			Want:  decoded{IClass: "VADDPS", Length: 4, Operands: []string{"xmm0", "xmm0", "xmm2"}},
		},
		{
			Name:  "EVEX",
			Code:  []byte{0x62, 0xf1, 0x74, 0x48, 0x58, 0xc2},
			State: state64,
			Want:  decoded{IClass: "VADDPS", Length: 6, Operands: []string{"zmm0", "k0", "zmm1", "zmm2"}},
		},
		{
			Name:  "VEX gather",
			Code:  []byte{0xc4, 0xe2, 0x71, 0x90, 0x14, 0x80},
			State: state64,
			Want:  decoded{IClass: "VPGATHERDD", Length: 6, Operands: []string{"xmm2", "[rax+xmm0*4]", "xmm1"}},
		},
		{
			Name:  "AMX distinct tiles",
			Code:  []byte{0xc4, 0xe2, 0x73, 0x5e, 0xc2},
			State: state64,
			Want:  decoded{IClass: "TDPBSSD", Length: 5, Operands: []string{"tmm0", "tmm2", "tmm1"}},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			inst, err := Decode(test.Code, test.State, nil)
			if err != nil {
				t.Fatalf("Decode(% x): %v", test.Code, err)
			}

			got := summarise(inst)
			if diff := cmp.Diff(test.Want, got); diff != "" {
				t.Fatalf("Decode(% x): (-want, +got)\n%s", test.Code, diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		Name  string
		Code  []byte
		State State
		Want  DecodeError
	}{
		{
			Name:  "empty",
			Code:  nil,
			State: state64,
			Want:  ErrBufferTooShort,
		},
		{
			Name:  "prefix only",
			Code:  []byte{0x66},
			State: state64,
			Want:  ErrBufferTooShort,
		},
		{
			Name:  "missing ModRM",
			Code:  []byte{0xf3, 0x0f, 0xbd},
			State: state64,
			Want:  ErrBufferTooShort,
		},
		{
			Name:  "too many prefixes",
			Code:  []byte{0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x90},
			State: state64,
			Want:  ErrInstrTooLong,
		},
		{
			Name:  "lock on nop",
			Code:  []byte{0xf0, 0x90},
			State: state64,
			Want:  ErrBadLockPrefix,
		},
		{
			Name:  "lock on register add",
			Code:  []byte{0xf0, 0x01, 0xd8},
			State: state64,
			Want:  ErrBadLockPrefix,
		},
		{
			Name:  "3DNow!",
			Code:  []byte{0x0f, 0x0f, 0xc0, 0x90},
			State: state64,
			Want:  ErrGeneralError,
		},
		{
			Name:  "invalid in 64-bit mode",
			Code:  []byte{0x82, 0xc0, 0x01},
			State: state64,
			Want:  ErrInvalidMode,
		},
		{
			Name:  "operand size before VEX",
			Code:  []byte{0x66, 0xc5, 0xf8, 0x58, 0xc2},
			State: state64,
			Want:  ErrBadLegacyPrefix,
		},
		{
			Name:  "lock before VEX",
			Code:  []byte{0xf0, 0xc5, 0xf8, 0x58, 0xc2},
			State: state64,
			Want:  ErrBadLockPrefix,
		},
		{
			Name:  "REX before VEX",
			Code:  []byte{0x48, 0xc5, 0xf8, 0x58, 0xc2},
			State: state64,
			Want:  ErrBadRexPrefix,
		},
		{
			Name:  "VEX map zero",
			Code:  []byte{0xc4, 0xe0, 0x78, 0x58, 0xc2},
			State: state64,
			Want:  ErrBadMap,
		},
		{
			Name:  "repne on lzcnt",
			Code:  []byte{0xf2, 0x0f, 0xbd, 0xc0},
			State: state64,
			Want:  ErrBadRepPrefix,
		},
		{
			Name:  "EVEX V' clear without vvvv",
			Code:  []byte{0x62, 0xf1, 0x7c, 0x40, 0x10, 0xc1},
			State: state64,
			Want:  ErrBadEvexVPrime,
		},
		{
			Name:  "segment register 7",
			Code:  []byte{0x8e, 0xf8},
			State: state64,
			Want:  ErrBadRegister,
		},
		{
			Name:  "control register 1",
			Code:  []byte{0x0f, 0x22, 0xc8},
			State: state64,
			Want:  ErrBadRegister,
		},
		{
			Name:  "AMX tiles not distinct",
			Code:  []byte{0xc4, 0xe2, 0x73, 0x5e, 0xc0},
			State: state64,
			Want:  ErrBadRegMatch,
		},
		{
			Name:  "EVEX zeroing without masking",
			Code:  []byte{0x62, 0xf1, 0x74, 0xc8, 0x58, 0xc2},
			State: state64,
			Want:  ErrBadEvexZNoMasking,
		},
		{
			Name:  "EVEX vector length 3",
			Code:  []byte{0x62, 0xf1, 0x74, 0x68, 0x58, 0xc2},
			State: state64,
			Want:  ErrBadEvexLl,
		},
		{
			Name:  "gather destination is index",
			Code:  []byte{0xc4, 0xe2, 0x71, 0x90, 0x04, 0x80},
			State: state64,
			Want:  ErrGatherRegs,
		},
		{
			Name:  "gather destination is mask",
			Code:  []byte{0xc4, 0xe2, 0x71, 0x90, 0x0c, 0x80},
			State: state64,
			Want:  ErrGatherRegs,
		},
		{
			Name:  "gather without SIB",
			Code:  []byte{0xc4, 0xe2, 0x71, 0x90, 0x10},
			State: state64,
			Want:  ErrBadMemopIndex,
		},
		{
			Name:  "invalid state",
			Code:  []byte{0x90},
			State: State{},
			Want:  ErrInvalidMode,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			inst, err := Decode(test.Code, test.State, nil)
			if err == nil {
				t.Fatalf("Decode(% x): got %s, want error %v", test.Code, inst, test.Want)
			}

			if !errors.Is(err, test.Want) {
				t.Fatalf("Decode(% x): got error %v, want %v", test.Code, err, test.Want)
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	codes := [][]byte{
		{0x90},
		{0xf3, 0x0f, 0xbd, 0x17},
		{0x48, 0x01, 0xd8},
		{0x8d, 0x44, 0x24, 0x08},
		{0x8b, 0x05, 0x10, 0x00, 0x00, 0x00},
		{0xe9, 0x80, 0x00, 0x00, 0x00},
		{0x48, 0xb8, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		{0xc5, 0xf8, 0x58, 0xc2},
		{0x62, 0xf1, 0x74, 0x48, 0x58, 0xc2},
		{0xc4, 0xe2, 0x71, 0x90, 0x14, 0x80},
	}

	for _, code := range codes {
		for n := 0; n < len(code); n++ {
			_, err := Decode(code[:n], state64, nil)
			if err != ErrBufferTooShort {
				t.Errorf("Decode(% x): got error %v, want %v", code[:n], err, ErrBufferTooShort)
			}
		}

		// Trailing bytes are ignored.
		padded := append(append([]byte(nil), code...), 0xcc, 0xcc)
		inst, err := Decode(padded, state64, nil)
		if err != nil {
			t.Errorf("Decode(% x): %v", padded, err)
			continue
		}

		if inst.Length() != len(code) {
			t.Errorf("Decode(% x): got length %d, want %d", padded, inst.Length(), len(code))
		}
	}
}

func TestDecodeDetails(t *testing.T) {
	t.Run("lzcnt", func(t *testing.T) {
		inst, err := Decode([]byte{0xf3, 0x0f, 0xbd, 0x17}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if got := inst.Reg(OperandReg0); got != x86.EDX {
			t.Errorf("REG0: got %v, want edx", got)
		}

		mem, ok := inst.MemoryOperand(0)
		if !ok {
			t.Fatal("no memory operand")
		}

		if mem.Base != x86.RDI || mem.Index != nil || mem.Bits() != 32 || mem.Length() != 4 {
			t.Errorf("memory: got %#v with %d bits", &mem.Memory, mem.Bits())
		}

		if !mem.Read() || mem.Written() {
			t.Errorf("memory: got action %v, want r", mem.Action())
		}

		if got := inst.RepPrefix(); got != 0 {
			t.Errorf("RepPrefix: got %v, want none", got)
		}

		if inst.EffectiveOperandSize() != 32 || inst.EffectiveAddressSize() != 64 {
			t.Errorf("sizes: got %d/%d, want 32/64", inst.EffectiveOperandSize(), inst.EffectiveAddressSize())
		}

		if !inst.UsesRFLAGS() {
			t.Error("UsesRFLAGS: got false")
		}
	})

	t.Run("jmp", func(t *testing.T) {
		inst, err := Decode([]byte{0xe9, 0x80, 0x00, 0x00, 0x00}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if inst.BranchDisplacement() != 0x80 || inst.BranchDisplacementBits() != 32 {
			t.Errorf("displacement: got %#x/%d", inst.BranchDisplacement(), inst.BranchDisplacementBits())
		}

		target, ok := inst.BranchTarget(0x1000)
		if !ok || target != 0x1085 {
			t.Errorf("BranchTarget: got %#x, %v, want 0x1085", target, ok)
		}
	})

	t.Run("lea", func(t *testing.T) {
		inst, err := Decode([]byte{0x8d, 0x44, 0x24, 0x08}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		mem, ok := inst.MemoryOperand(0)
		if !ok || !mem.IsAgen() || mem.Name() != OperandAgen {
			t.Fatalf("got memory operand %v, %v", mem, ok)
		}

		if mem.Displacement != 8 || mem.DisplacementBits != 8 {
			t.Errorf("displacement: got %#x/%d, want 0x8/8", mem.Displacement, mem.DisplacementBits)
		}
	})

	t.Run("stack segment", func(t *testing.T) {
		inst, err := Decode([]byte{0x8b, 0x46, 0x04}, state16, nil)
		if err != nil {
			t.Fatal(err)
		}

		mem, _ := inst.MemoryOperand(0)
		if got := mem.EffectiveSegment(); got != x86.SS {
			t.Errorf("EffectiveSegment: got %v, want ss", got)
		}

		inst, err = Decode([]byte{0x8b, 0x04}, state16, nil)
		if err != nil {
			t.Fatal(err)
		}

		mem, _ = inst.MemoryOperand(0)
		if got := mem.EffectiveSegment(); got != x86.DS {
			t.Errorf("EffectiveSegment: got %v, want ds", got)
		}
	})

	t.Run("EVEX merge masking", func(t *testing.T) {
		inst, err := Decode([]byte{0x62, 0xf1, 0x74, 0x49, 0x58, 0xc2}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if !inst.Masking() || !inst.Merging() || inst.Zeroing() {
			t.Errorf("masking: got %v/%v/%v, want true/true/false", inst.Masking(), inst.Merging(), inst.Zeroing())
		}

		dst, _ := inst.Operand(0)
		if action, _ := dst.Action(); action != ActionRCW {
			t.Errorf("destination: got action %v, want rcw", action)
		}

		if inst.VectorLengthBits() != 512 {
			t.Errorf("VectorLengthBits: got %d, want 512", inst.VectorLengthBits())
		}

		if got := inst.AVX512DestElements(); got != 16 {
			t.Errorf("AVX512DestElements: got %d, want 16", got)
		}
	})

	t.Run("EVEX zeroing", func(t *testing.T) {
		inst, err := Decode([]byte{0x62, 0xf1, 0x74, 0xc9, 0x58, 0xc2}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if !inst.Masking() || inst.Merging() || !inst.Zeroing() {
			t.Errorf("masking: got %v/%v/%v, want true/false/true", inst.Masking(), inst.Merging(), inst.Zeroing())
		}

		dst, _ := inst.Operand(0)
		if action, _ := dst.Action(); action != ActionW {
			t.Errorf("destination: got action %v, want w", action)
		}
	})

	t.Run("EVEX broadcast", func(t *testing.T) {
		// vaddps zmm0, zmm1, dword ptr [rax]{1to16}
		inst, err := Decode([]byte{0x62, 0xf1, 0x74, 0x58, 0x58, 0x00}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if !inst.UsesEmbeddedBroadcast() || !inst.IsBroadcast() || inst.IsBroadcastInstruction() {
			t.Errorf("broadcast: got %v/%v/%v", inst.UsesEmbeddedBroadcast(), inst.IsBroadcast(), inst.IsBroadcastInstruction())
		}

		mem, _ := inst.MemoryOperand(0)
		if mem.Bits() != 32 {
			t.Errorf("memory: got %d bits, want 32", mem.Bits())
		}
	})

	t.Run("EVEX compressed displacement", func(t *testing.T) {
		// vaddps zmm0, zmm1, [rax+0x40]
		inst, err := Decode([]byte{0x62, 0xf1, 0x74, 0x48, 0x58, 0x40, 0x01}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		mem, _ := inst.MemoryOperand(0)
		if mem.Displacement != 0x40 {
			t.Errorf("displacement: got %#x, want 0x40", mem.Displacement)
		}
	})

	t.Run("xacquire", func(t *testing.T) {
		inst, err := Decode([]byte{0xf2, 0xf0, 0x01, 0x18}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if !inst.IsXacquire() || inst.IsXrelease() {
			t.Errorf("got xacquire %v, xrelease %v", inst.IsXacquire(), inst.IsXrelease())
		}
	})

	t.Run("xrelease", func(t *testing.T) {
		inst, err := Decode([]byte{0xf3, 0x89, 0x18}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if inst.IsXacquire() || !inst.IsXrelease() {
			t.Errorf("got xacquire %v, xrelease %v", inst.IsXacquire(), inst.IsXrelease())
		}
	})

	t.Run("shift by zero", func(t *testing.T) {
		inst, err := Decode([]byte{0xc1, 0xe0, 0x00}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if inst.UsesRFLAGS() {
			t.Error("UsesRFLAGS: got true for a zero count")
		}

		inst, err = Decode([]byte{0xc1, 0xe0, 0x20}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if inst.UsesRFLAGS() {
			t.Error("UsesRFLAGS: got true for a masked count of zero")
		}

		inst, err = Decode([]byte{0x48, 0xc1, 0xe0, 0x20}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if !inst.UsesRFLAGS() {
			t.Error("UsesRFLAGS: got false for a 64-bit count of 32")
		}
	})

	t.Run("x87 flags", func(t *testing.T) {
		// fadd st(0), st(1)
		inst, err := Decode([]byte{0xd8, 0xc1}, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if inst.UsesRFLAGS() {
			t.Error("UsesRFLAGS: got true for an x87 instruction")
		}
	})
}

func TestDecodeFeatures(t *testing.T) {
	lzcnt := []byte{0xf3, 0x0f, 0xbd, 0x17}

	var none FeatureMask
	_, err := Decode(lzcnt, state64, &none)
	if err != ErrInvalidForChip {
		t.Fatalf("empty mask: got error %v, want %v", err, ErrInvalidForChip)
	}

	old := FeatureMaskFromChip(ChipPentium4)
	_, err = Decode(lzcnt, state64, &old)
	if err != ErrInvalidForChip {
		t.Fatalf("PENTIUM4: got error %v, want %v", err, ErrInvalidForChip)
	}

	haswell := FeatureMaskFromChip(ChipHaswell)
	inst, err := Decode(lzcnt, state64, &haswell)
	if err != nil {
		t.Fatalf("HASWELL: %v", err)
	}

	if chip, ok := inst.InputChip(); !ok || chip != ChipHaswell {
		t.Errorf("InputChip: got %v, %v, want HASWELL", chip, ok)
	}

	if inst.ValidForChip(ChipPentium4) || !inst.ValidForChip(ChipHaswell) {
		t.Errorf("ValidForChip: got PENTIUM4 %v, HASWELL %v", inst.ValidForChip(ChipPentium4), inst.ValidForChip(ChipHaswell))
	}

	// Growing the mask never rejects an
	// instruction the smaller mask accepts.
	codes := [][]byte{
		{0x90},
		lzcnt,
		{0xc5, 0xf8, 0x58, 0xc2},
		{0x62, 0xf1, 0x74, 0x48, 0x58, 0xc2},
	}

	chips := Chips()
	for _, code := range codes {
		for i, small := range chips {
			smallMask := FeatureMaskFromChip(small)
			for _, large := range chips[i+1:] {
				largeMask := FeatureMaskFromChip(large)
				if !smallMask.IsSubsetOf(&largeMask) {
					continue
				}

				_, errSmall := Decode(code, state64, &smallMask)
				_, errLarge := Decode(code, state64, &largeMask)
				if errSmall == nil && errLarge != nil {
					t.Errorf("Decode(% x): accepted by %s but rejected by %s: %v", code, small, large, errLarge)
				}
			}
		}
	}
}

func TestDecodeDeterministic(t *testing.T) {
	code := []byte{0x62, 0xf1, 0x74, 0x49, 0x58, 0x40, 0x01}
	first, err := Decode(code, state64, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		inst, err := Decode(code, state64, nil)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(summarise(first), summarise(inst)); diff != "" {
			t.Fatalf("Decode(% x): (-first, +got)\n%s", code, diff)
		}
	}
}

func TestDecodeConcurrent(t *testing.T) {
	codes := [][]byte{
		{0xf3, 0x0f, 0xbd, 0x17},
		{0x62, 0xf1, 0x74, 0x49, 0x58, 0x40, 0x01},
		{0xc4, 0xe2, 0x71, 0x90, 0x14, 0x80},
		{0x64, 0x48, 0x8b, 0x04, 0x25, 0x28, 0x00, 0x00, 0x00},
	}

	var g errgroup.Group
	results := make([][]decoded, 8)
	for i := range results {
		i := i
		g.Go(func() error {
			for _, code := range codes {
				inst, err := Decode(code, state64, nil)
				if err != nil {
					return fmt.Errorf("Decode(% x): %v", code, err)
				}

				results[i] = append(results[i], summarise(inst))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(results); i++ {
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Errorf("goroutine %d: (-first, +got)\n%s", i, diff)
		}
	}
}

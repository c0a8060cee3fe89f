// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package disasm

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"rsc.io/diff"

	"firefly-os.dev/xed"
)

var (
	state64 = xed.MustState(xed.ModeLong64, xed.AddressWidth64)
	state32 = xed.MustState(xed.ModeLegacy32, xed.AddressWidth32)
	state16 = xed.MustState(xed.ModeReal16, xed.AddressWidth16)
)

// decodeHex decodes a space-separated hex
// string into an instruction.
func decodeHex(t *testing.T, s string, state xed.State) *xed.Inst {
	t.Helper()
	code, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}

	inst, err := xed.Decode(code, state, nil)
	if err != nil {
		t.Fatalf("Decode(%s): %v", s, err)
	}

	return inst
}

var execute = NewSymbols(Symbol{Name: "execute", Addr: 0x1000, Size: 0x100})

func TestFormat(t *testing.T) {
	tests := []struct {
		Name  string
		Code  string
		State xed.State
		Edit  func(*Options)
		Intel string
		ATT   string
	}{
		{
			Name:  "lzcnt",
			Code:  "f3 0f bd 17",
			Intel: "lzcnt edx, dword ptr [rdi]",
			ATT:   "lzcntl (%rdi), %edx",
		},
		{
			Name:  "nop",
			Code:  "90",
			Intel: "nop",
			ATT:   "nop",
		},
		{
			Name:  "registers",
			Code:  "48 01 d8",
			Intel: "add rax, rbx",
			ATT:   "add %rbx, %rax",
		},
		{
			Name:  "lock",
			Code:  "f0 01 18",
			Intel: "lock add dword ptr [rax], ebx",
			ATT:   "lock addl %ebx, (%rax)",
		},
		{
			Name:  "xacquire",
			Code:  "f2 f0 01 18",
			Intel: "xacquire lock add dword ptr [rax], ebx",
			ATT:   "xacquire lock addl %ebx, (%rax)",
		},
		{
			Name:  "lea",
			Code:  "8d 44 24 08",
			Intel: "lea eax, [rsp+0x8]",
			ATT:   "lea 0x8(%rsp), %eax",
		},
		{
			Name:  "negative displacement",
			Code:  "48 8b 45 f8",
			Intel: "mov rax, qword ptr [rbp-0x8]",
			ATT:   "movq -0x8(%rbp), %rax",
		},
		{
			Name:  "positive displacement",
			Code:  "48 8b 45 f8",
			Edit:  func(o *Options) { o.PositiveMemoryDisplacement = true },
			Intel: "mov rax, qword ptr [rbp+0xfffffffffffffff8]",
			ATT:   "movq 0xfffffffffffffff8(%rbp), %rax",
		},
		{
			Name:  "scaled index",
			Code:  "8b 04 88",
			Intel: "mov eax, dword ptr [rax+rcx*4]",
			ATT:   "movl (%rax,%rcx,4), %eax",
		},
		{
			Name:  "segment override",
			Code:  "64 48 8b 04 25 28 00 00 00",
			Intel: "mov rax, qword ptr fs:[0x28]",
			ATT:   "movq %fs:0x28, %rax",
		},
		{
			Name:  "imm64",
			Code:  "48 b8 01 02 03 04 05 06 07 08",
			Intel: "mov rax, 0x807060504030201",
			ATT:   "mov $0x807060504030201, %rax",
		},
		{
			Name:  "sign-extended immediate",
			Code:  "48 83 c0 ff",
			Intel: "add rax, 0xffffffffffffffff",
			ATT:   "add $0xffffffffffffffff, %rax",
		},
		{
			Name:  "encoded immediate",
			Code:  "48 83 c0 ff",
			Edit:  func(o *Options) { o.SignExtendSignedImmediates = false },
			Intel: "add rax, 0xff",
			ATT:   "add $0xff, %rax",
		},
		{
			Name:  "upper-case hex",
			Code:  "48 83 c0 ff",
			Edit:  func(o *Options) { o.LowercaseHex = false },
			Intel: "add rax, 0xFFFFFFFFFFFFFFFF",
			ATT:   "add $0xFFFFFFFFFFFFFFFF, %rax",
		},
		{
			Name:  "shift by one",
			Code:  "d1 e0",
			Intel: "shl eax, 0x1",
			ATT:   "shl $0x1, %eax",
		},
		{
			Name:  "push",
			Code:  "55",
			Intel: "push rbp",
			ATT:   "push %rbp",
		},
		{
			Name:  "ret",
			Code:  "c3",
			Intel: "ret",
			ATT:   "ret",
		},
		{
			Name:  "32-bit inc",
			Code:  "40",
			State: state32,
			Intel: "inc eax",
			ATT:   "inc %eax",
		},
		{
			Name:  "16-bit addressing",
			Code:  "8b 00",
			State: state16,
			Intel: "mov ax, word ptr [bx+si*1]",
			ATT:   "movw (%bx,%si,1), %ax",
		},
		{
			Name:  "omitted unit scale",
			Code:  "8b 00",
			State: state16,
			Edit:  func(o *Options) { o.OmitUnitScale = true },
			Intel: "mov ax, word ptr [bx+si]",
			ATT:   "movw (%bx,%si), %ax",
		},
		{
			Name:  "16-bit absolute",
			Code:  "8b 06 34 12",
			State: state16,
			Intel: "mov ax, word ptr [0x1234]",
			ATT:   "movw 0x1234, %ax",
		},
		{
			Name:  "VEX",
			Code:  "c5 f8 58 c2",
			Intel: "vaddps xmm0, xmm0, xmm2",
			ATT:   "vaddps %xmm2, %xmm0, %xmm0",
		},
		{
			Name:  "EVEX unmasked",
			Code:  "62 f1 74 48 58 c2",
			Intel: "vaddps zmm0, zmm1, zmm2",
			ATT:   "vaddps %zmm2, %zmm1, %zmm0",
		},
		{
			Name:  "EVEX k0",
			Code:  "62 f1 74 48 58 c2",
			Edit:  func(o *Options) { o.WriteMaskCurlyK0 = true },
			Intel: "vaddps zmm0{k0}, zmm1, zmm2",
			ATT:   "vaddps %zmm2, %zmm1, %zmm0{%k0}",
		},
		{
			Name:  "EVEX merging",
			Code:  "62 f1 74 49 58 c2",
			Intel: "vaddps zmm0{k1}, zmm1, zmm2",
			ATT:   "vaddps %zmm2, %zmm1, %zmm0{%k1}",
		},
		{
			Name:  "EVEX zeroing",
			Code:  "62 f1 74 c9 58 c2",
			Intel: "vaddps zmm0{k1}{z}, zmm1, zmm2",
			ATT:   "vaddps %zmm2, %zmm1, %zmm0{%k1}{z}",
		},
		{
			Name:  "EVEX broadcast",
			Code:  "62 f1 74 58 58 00",
			Intel: "vaddps zmm0, zmm1, dword ptr [rax]{1to16}",
			ATT:   "vaddps (%rax){1to16}, %zmm1, %zmm0",
		},
		{
			Name:  "EVEX compressed displacement",
			Code:  "62 f1 74 48 58 40 01",
			Intel: "vaddps zmm0, zmm1, zmmword ptr [rax+0x40]",
			ATT:   "vaddps 0x40(%rax), %zmm1, %zmm0",
		},
		{
			Name:  "branch",
			Code:  "e9 80 00 00 00",
			Intel: "jmp 0x1085",
			ATT:   "jmp 0x1085",
		},
		{
			Name:  "branch to symbol",
			Code:  "e9 80 00 00 00",
			Edit:  func(o *Options) { o.Resolver = execute },
			Intel: "jmp <execute+0x85>",
			ATT:   "jmp <execute+0x85>",
		},
		{
			Name: "branch to symbol with address",
			Code: "e9 80 00 00 00",
			Edit: func(o *Options) {
				o.Resolver = execute
				o.HexAddressBeforeSymbol = true
			},
			Intel: "jmp 0x1085 <execute+0x85>",
			ATT:   "jmp 0x1085 <execute+0x85>",
		},
		{
			Name:  "branch to symbol start",
			Code:  "eb fe",
			Edit:  func(o *Options) { o.Resolver = execute },
			Intel: "jmp <execute>",
			ATT:   "jmp <execute>",
		},
		{
			Name:  "branch without symbol",
			Code:  "e9 00 10 00 00",
			Edit:  func(o *Options) { o.Resolver = execute },
			Intel: "jmp 0x2005",
			ATT:   "jmp 0x2005",
		},
		{
			Name:  "resolve nothing",
			Code:  "e9 80 00 00 00",
			Edit:  func(o *Options) { o.Resolver = ResolveNothing },
			Intel: "jmp 0x1085",
			ATT:   "jmp 0x1085",
		},
		{
			Name:  "RIP-relative symbol",
			Code:  "8b 05 10 00 00 00",
			Edit:  func(o *Options) { o.Resolver = execute },
			Intel: "mov eax, dword ptr [rip+0x10] # <execute+0x16>",
			ATT:   "movl 0x10(%rip), %eax # <execute+0x16>",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			state := test.State
			if state == (xed.State{}) {
				state = state64
			}

			inst := decodeHex(t, test.Code, state)
			opts := DefaultOptions()
			opts.Address = 0x1000
			if test.Edit != nil {
				test.Edit(&opts)
			}

			for _, want := range []struct {
				Syntax Syntax
				Text   string
			}{
				{SyntaxIntel, test.Intel},
				{SyntaxATT, test.ATT},
			} {
				opts.Syntax = want.Syntax
				got, err := Format(inst, &opts)
				if err != nil {
					t.Fatalf("Format(%s): %v", want.Syntax, err)
				}

				if got != want.Text {
					t.Errorf("Format(%s):\n got %q\nwant %q", want.Syntax, got, want.Text)
				}
			}
		})
	}
}

func TestFormatXED(t *testing.T) {
	inst := decodeHex(t, "f3 0f bd 17", state64)
	got, err := Format(inst, &Options{Syntax: SyntaxXED, LowercaseHex: true})
	if err != nil {
		t.Fatal(err)
	}

	want := "LZCNT_GPRv_MEMv REG0=edx:w MEM0=dword ptr [rdi]:r REG1=rflags:w:SUPP"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestFormatDefaults(t *testing.T) {
	inst := decodeHex(t, "48 83 c0 ff", state64)
	got, err := Format(inst, nil)
	if err != nil {
		t.Fatal(err)
	}

	if want := "add rax, 0xffffffffffffffff"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := Format(inst, &Options{Syntax: 9}); err == nil {
		t.Error("Format accepted an invalid syntax")
	}
}

func TestResolverCalls(t *testing.T) {
	var calls []uint64
	counter := ResolverFunc(func(addr uint64, buf *SymbolBuffer) (uint64, bool, error) {
		calls = append(calls, addr)
		return 0, false, nil
	})

	tests := []struct {
		Code string
		Want []uint64
	}{
		{"90", nil},
		{"48 01 d8", nil},
		{"e9 80 00 00 00", []uint64{0x1085}},
		{"8b 05 10 00 00 00", []uint64{0x1016}},
	}

	for _, test := range tests {
		calls = nil
		inst := decodeHex(t, test.Code, state64)
		_, err := Format(inst, &Options{Address: 0x1000, Resolver: counter})
		if err != nil {
			t.Fatalf("%s: %v", test.Code, err)
		}

		if len(calls) != len(test.Want) {
			t.Errorf("%s: got calls %#x, want %#x", test.Code, calls, test.Want)
			continue
		}

		for i := range calls {
			if calls[i] != test.Want[i] {
				t.Errorf("%s: got calls %#x, want %#x", test.Code, calls, test.Want)
			}
		}
	}
}

func TestResolverError(t *testing.T) {
	errBoom := errors.New("boom")
	failing := ResolverFunc(func(uint64, *SymbolBuffer) (uint64, bool, error) {
		return 0, false, errBoom
	})

	inst := decodeHex(t, "e9 80 00 00 00", state64)
	for _, syntax := range []Syntax{SyntaxIntel, SyntaxATT, SyntaxXED} {
		got, err := Format(inst, &Options{Syntax: syntax, Resolver: failing})
		if !errors.Is(err, errBoom) {
			t.Errorf("Format(%s): got %q, %v, want %v", syntax, got, err, errBoom)
		}
	}
}

func TestResolverPanic(t *testing.T) {
	type marker struct{ reason string }
	panicking := ResolverFunc(func(uint64, *SymbolBuffer) (uint64, bool, error) {
		panic(marker{"resolver failed"})
	})

	inst := decodeHex(t, "e9 80 00 00 00", state64)
	defer func() {
		v := recover()
		if v != (marker{"resolver failed"}) {
			t.Errorf("got panic %v", v)
		}
	}()

	Format(inst, &Options{Resolver: panicking})
	t.Error("Format did not panic")
}

func TestSymbolBuffer(t *testing.T) {
	var buf SymbolBuffer
	long := strings.Repeat("a", SymbolBufferSize+88)
	n, err := buf.WriteString(long)
	if n != len(long) || err != nil {
		t.Fatalf("WriteString: got %d, %v", n, err)
	}

	if buf.Len() != SymbolBufferSize || !buf.Truncated() {
		t.Errorf("got length %d, truncated %v", buf.Len(), buf.Truncated())
	}

	n, err = buf.Write([]byte("more"))
	if n != 4 || err != nil || buf.Len() != SymbolBufferSize {
		t.Errorf("Write when full: got %d, %v, length %d", n, err, buf.Len())
	}

	buf.Reset()
	buf.WriteString("short")
	if buf.String() != "short" || buf.Truncated() {
		t.Errorf("after Reset: got %q, truncated %v", buf.String(), buf.Truncated())
	}

	verbose := ResolverFunc(func(addr uint64, buf *SymbolBuffer) (uint64, bool, error) {
		buf.WriteString(long)
		return 0, true, nil
	})

	inst := decodeHex(t, "e9 80 00 00 00", state64)
	got, err := Format(inst, &Options{Resolver: verbose, LowercaseHex: true})
	if err != nil {
		t.Fatal(err)
	}

	want := "jmp <" + long[:SymbolBufferSize] + ">"
	if got != want {
		t.Errorf("got %d bytes, want %d bytes", len(got), len(want))
	}
}

func TestSymbols(t *testing.T) {
	symbols := NewSymbols(
		Symbol{Name: "second", Addr: 0x2000},
		Symbol{Name: "first", Addr: 0x1000, Size: 0x10},
	)

	tests := []struct {
		Addr   uint64
		Name   string
		Offset uint64
		Found  bool
	}{
		{Addr: 0xfff},
		{Addr: 0x1000, Name: "first", Found: true},
		{Addr: 0x100f, Name: "first", Offset: 0xf, Found: true},
		{Addr: 0x1010},
		{Addr: 0x2000, Name: "second", Found: true},
		{Addr: 0x9000, Name: "second", Offset: 0x7000, Found: true},
	}

	for _, test := range tests {
		var buf SymbolBuffer
		offset, found, err := symbols.Resolve(test.Addr, &buf)
		if err != nil || found != test.Found || offset != test.Offset || buf.String() != test.Name {
			t.Errorf("Resolve(%#x): got %q+%#x, %v, %v", test.Addr, buf.String(), offset, found, err)
		}
	}
}

func TestParseSyntax(t *testing.T) {
	for _, s := range []Syntax{SyntaxIntel, SyntaxATT, SyntaxXED} {
		got, err := ParseSyntax(strings.ToUpper(s.String()))
		if err != nil || got != s {
			t.Errorf("ParseSyntax(%s): got %v, %v", s, got, err)
		}
	}

	if _, err := ParseSyntax("gas"); err == nil {
		t.Error("ParseSyntax(gas): got no error")
	}
}

func TestListing(t *testing.T) {
	code, err := hex.DecodeString(strings.ReplaceAll("55 48 89 e5 31 c0 e8 05 00 00 00 5d c3 e9", " ", ""))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Address = 0x1000
	err = Listing(&buf, code, state64, nil, &opts)
	if err != nil {
		t.Fatal(err)
	}

	want := "" +
		"1000:\t55\tpush rbp\n" +
		"1001:\t48 89 e5\tmov rbp, rsp\n" +
		"1004:\t31 c0\txor eax, eax\n" +
		"1006:\te8 05 00 00 00\tcall 0x1010\n" +
		"100b:\t5d\tpop rbp\n" +
		"100c:\tc3\tret\n" +
		"100d:\te9\t(bad)\n"

	if got := buf.String(); got != want {
		t.Fatalf("Listing:\n%s", diff.Format(got, want))
	}
}

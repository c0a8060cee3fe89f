// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		Name     string
		Encoding string
		Want     *Encoding
	}{
		{
			Name:     "opcode only",
			Encoding: "37",
			Want: &Encoding{
				Syntax: "37",
				Opcode: 0x37,
			},
		},
		{
			Name:     "always REX.W",
			Encoding: "REX.W + 03 /r",
			Want: &Encoding{
				Syntax: "REX.W + 03 /r",
				REX_W:  true,
				Opcode: 0x03,
				ModRM:  true,
			},
		},
		{
			Name:     "register modifier",
			Encoding: "o32 B8+rd id",
			Want: &Encoding{
				Syntax:           "o32 B8+rd id",
				OperandSize:      32,
				Opcode:           0xb8,
				RegisterModifier: true,
			},
		},
		{
			Name:     "NOP",
			Encoding: "NP REX.B=0 90",
			Want: &Encoding{
				Syntax:        "NP REX.B=0 90",
				NoVEXPrefixes: true,
				NoREX_B:       true,
				Opcode:        0x90,
			},
		},
		{
			Name:     "fixed ModRM mod",
			Encoding: "F3 0F 38 DD 11:rrr:bbb",
			Want: &Encoding{
				Syntax:            "F3 0F 38 DD 11:rrr:bbb",
				MandatoryPrefixes: []Prefix{0xf3},
				Map:               Map0F38,
				Opcode:            0xdd,
				ModRM:             true,
				ModRMmod:          0b11 + 1,
			},
		},
		{
			Name:     "constrained ModRM mod",
			Encoding: "F3 0F 38 DD !(11):rrr:bbb",
			Want: &Encoding{
				Syntax:            "F3 0F 38 DD !(11):rrr:bbb",
				MandatoryPrefixes: []Prefix{0xf3},
				Map:               Map0F38,
				Opcode:            0xdd,
				ModRM:             true,
				ModRMmod:          ModRMmodNotRegister,
			},
		},
		{
			Name:     "fixed ModRM reg",
			Encoding: "F3 0F 38 DD 11:101:bbb",
			Want: &Encoding{
				Syntax:            "F3 0F 38 DD 11:101:bbb",
				MandatoryPrefixes: []Prefix{0xf3},
				Map:               Map0F38,
				Opcode:            0xdd,
				ModRM:             true,
				ModRMmod:          0b11 + 1,
				ModRMreg:          0b101 + 1,
			},
		},
		{
			Name:     "fixed ModRM byte",
			Encoding: "0F 01 F8",
			Want: &Encoding{
				Syntax:   "0F 01 F8",
				Map:      Map0F,
				Opcode:   0x01,
				ModRM:    true,
				ModRMmod: 0b11 + 1,
				ModRMreg: 0b111 + 1,
				ModRMrm:  0b000 + 1,
			},
		},
		{
			Name:     "stack index",
			Encoding: "D9 C0+i",
			Want: &Encoding{
				Syntax:     "D9 C0+i",
				Opcode:     0xd9,
				StackIndex: true,
				ModRM:      true,
				ModRMmod:   0b11 + 1,
				ModRMreg:   0b000 + 1,
			},
		},
		{
			Name:     "complex prefix",
			Encoding: "NFx 66 0F AE /7",
			Want: &Encoding{
				Syntax:            "NFx 66 0F AE /7",
				NoRepPrefixes:     true,
				MandatoryPrefixes: []Prefix{0x66},
				Map:               Map0F,
				Opcode:            0xae,
				ModRM:             true,
				ModRMreg:          7 + 1,
			},
		},
		{
			Name:     "code offset",
			Encoding: "E9 cd",
			Want: &Encoding{
				Syntax:     "E9 cd",
				Opcode:     0xe9,
				CodeOffset: true,
			},
		},
		{
			Name:     "VEX",
			Encoding: "VEX.128.66.0F38.W0 13 /r",
			Want: &Encoding{
				Syntax: "VEX.128.66.0F38.W0 13 /r",
				Space:  SpaceVEX,
				Map:    Map0F38,
				VEXpp:  0b01,
				Opcode: 0x13,
				ModRM:  true,
			},
		},
		{
			Name:     "VEX gather",
			Encoding: "VEX.256.66.0F38.W0 92 /r /vsib",
			Want: &Encoding{
				Syntax: "VEX.256.66.0F38.W0 92 /r /vsib",
				Space:  SpaceVEX,
				Map:    Map0F38,
				VEX_L:  true,
				VEXpp:  0b01,
				Opcode: 0x92,
				ModRM:  true,
				VSIB:   true,
			},
		},
		{
			Name:     "EVEX",
			Encoding: "EVEX.512.NP.0F.W0 58 /r {k} {z} {er} FV",
			Want: &Encoding{
				Syntax:   "EVEX.512.NP.0F.W0 58 /r {k} {z} {er} FV",
				Space:    SpaceEVEX,
				Map:      Map0F,
				EVEX_Lp:  true,
				Opcode:   0x58,
				ModRM:    true,
				Mask:     true,
				Zero:     true,
				Rounding: true,
				Tuple:    TupleFull,
			},
		},
		{
			Name:     "EVEX scalar",
			Encoding: "EVEX.LLIG.F3.0F.W0 58 /r {k} {z} {er} T1S",
			Want: &Encoding{
				Syntax:   "EVEX.LLIG.F3.0F.W0 58 /r {k} {z} {er} T1S",
				Space:    SpaceEVEX,
				Map:      Map0F,
				VEX_LIG:  true,
				VEXpp:    0b10,
				Opcode:   0x58,
				ModRM:    true,
				Mask:     true,
				Zero:     true,
				Rounding: true,
				Tuple:    Tuple1Scalar,
			},
		},
		{
			Name:     "XOP",
			Encoding: "XOP.128.09.W0 81 /r",
			Want: &Encoding{
				Syntax: "XOP.128.09.W0 81 /r",
				Space:  SpaceXOP,
				Map:    MapXOP9,
				Opcode: 0x81,
				ModRM:  true,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			got, err := ParseEncoding(test.Encoding)
			if err != nil {
				t.Fatalf("ParseEncoding(%q): got unexpected error: %v", test.Encoding, err)
			}

			if diff := cmp.Diff(test.Want, got); diff != "" {
				t.Fatalf("ParseEncoding(%q): (-want, +got)\n%s", test.Encoding, diff)
			}
		})
	}
}

func TestParseEncodingErrors(t *testing.T) {
	tests := []struct {
		Name     string
		Encoding string
	}{
		{
			Name:     "no opcode",
			Encoding: "NP",
		},
		{
			Name:     "escape only",
			Encoding: "0F 38",
		},
		{
			Name:     "bad clause",
			Encoding: "90 /q",
		},
		{
			Name:     "512-bit VEX",
			Encoding: "VEX.512.66.0F.W0 58 /r",
		},
		{
			Name:     "XOP legacy map",
			Encoding: "XOP.128.0F.W0 81 /r",
		},
		{
			Name:     "VEX without map",
			Encoding: "VEX.128.66.W0 58 /r",
		},
		{
			Name:     "too many opcode bytes",
			Encoding: "0F 01 F8 F9",
		},
		{
			Name:     "bad ModRM field",
			Encoding: "0F 01 11:1010:bbb",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			got, err := ParseEncoding(test.Encoding)
			if err == nil {
				t.Fatalf("ParseEncoding(%q): got %#v, want error", test.Encoding, got)
			}
		})
	}
}

func TestEncodingSpecificity(t *testing.T) {
	parse := func(s string) *Encoding {
		t.Helper()
		e, err := ParseEncoding(s)
		if err != nil {
			t.Fatalf("ParseEncoding(%q): %v", s, err)
		}

		return e
	}

	// LZCNT must be tried before BSR.
	lzcnt := parse("F3 0F BD /r")
	bsr := parse("NFx 0F BD /r")
	if lzcnt.Specificity() <= bsr.Specificity() {
		t.Errorf("LZCNT specificity %d is not above BSR specificity %d", lzcnt.Specificity(), bsr.Specificity())
	}

	// PAUSE must be tried before NOP.
	pause := parse("F3 90")
	nop := parse("NP REX.B=0 90")
	if pause.Specificity() <= nop.Specificity() {
		t.Errorf("PAUSE specificity %d is not above NOP specificity %d", pause.Specificity(), nop.Specificity())
	}

	if got := lzcnt.MandatoryPrefix(); got != PrefixRepeat {
		t.Errorf("LZCNT mandatory prefix: got %s, want %s", got, PrefixRepeat)
	}
}

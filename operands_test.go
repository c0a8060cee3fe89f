// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseOperand(t *testing.T) {
	type parsed struct {
		Encoding   OperandEncoding
		Action     Action
		Visibility Visibility
		Width16    int
		Width64    int
		Element    ElementType
		ElemBits   int
		Broadcast  bool
	}

	tests := []struct {
		Template string
		Want     parsed
	}{
		{
			Template: "rv:rw",
			Want:     parsed{EncodingModRMreg, ActionRW, VisibilityExplicit, 16, 64, ElementUint, 0, false},
		},
		{
			Template: "rmr8:w",
			Want:     parsed{EncodingModRMrm, ActionW, VisibilityExplicit, 8, 8, ElementUint, 8, false},
		},
		{
			Template: "rvop:r",
			Want:     parsed{EncodingRegisterModifier, ActionR, VisibilityExplicit, 16, 64, ElementUint, 0, false},
		},
		{
			Template: "ryV:r",
			Want:     parsed{EncodingVEXvvvv, ActionR, VisibilityExplicit, 32, 64, ElementUint, 0, false},
		},
		{
			Template: "immz",
			Want:     parsed{EncodingImmediate, ActionInvalid, VisibilityExplicit, 16, 32, ElementInvalid, 0, false},
		},
		{
			Template: "rel8",
			Want:     parsed{EncodingCodeOffset, ActionInvalid, VisibilityExplicit, 8, 8, ElementInvalid, 0, false},
		},
		{
			Template: "xmm1:rw:f32",
			Want:     parsed{EncodingModRMreg, ActionRW, VisibilityExplicit, 128, 128, ElementSingle, 32, false},
		},
		{
			Template: "m512/m32bcst:r:f32",
			Want:     parsed{EncodingModRMrm, ActionR, VisibilityExplicit, 512, 512, ElementSingle, 32, true},
		},
		{
			Template: "vm32x:r:u32",
			Want:     parsed{EncodingSIB, ActionR, VisibilityExplicit, 128, 128, ElementUint, 32, false},
		},
		{
			Template: "vm64y:r:u32",
			Want:     parsed{EncodingSIB, ActionR, VisibilityExplicit, 128, 128, ElementUint, 32, false},
		},
		{
			Template: "rSP:rw:supp",
			Want:     parsed{EncodingImplicit, ActionRW, VisibilitySuppressed, 16, 64, ElementUint, 0, false},
		},
		{
			Template: "ST(i):r",
			Want:     parsed{EncodingStackIndex, ActionR, VisibilityExplicit, 80, 80, ElementInvalid, 0, false},
		},
		{
			Template: "{k}:r",
			Want:     parsed{EncodingEVEXaaa, ActionR, VisibilityExplicit, 64, 64, ElementUint, 64, false},
		},
		{
			Template: "xmmIH:r",
			Want:     parsed{EncodingVEXis4, ActionR, VisibilityExplicit, 128, 128, ElementUint, 128, false},
		},
	}

	for _, test := range tests {
		t.Run(test.Template, func(t *testing.T) {
			op, err := parseOperand(test.Template)
			if err != nil {
				t.Fatalf("parseOperand: %v", err)
			}

			elem, _ := op.ElementType()
			got := parsed{
				Encoding:   op.Encoding(),
				Action:     op.Action(),
				Visibility: op.Visibility(),
				Width16:    op.WidthBits(16),
				Width64:    op.WidthBits(64),
				Element:    elem,
				ElemBits:   op.ElementBits(),
				Broadcast:  op.IsBroadcastable(),
			}

			if diff := cmp.Diff(test.Want, got); diff != "" {
				t.Errorf("(-want, +got)\n%s", diff)
			}
		})
	}
}

func TestParseOperandErrors(t *testing.T) {
	tests := []string{
		"rv",
		"xmm1",
		"rq:r",
		"m12:r",
		"m32/m16bcst:r",
		"m512/m24bcst:r",
		"vm16x:r",
		"vm32q:r",
		"rv:r:w",
		"rv:r:loud",
	}

	for _, template := range tests {
		if op, err := parseOperand(template); err == nil {
			t.Errorf("parseOperand(%q): got %s, want error", template, op)
		}
	}
}

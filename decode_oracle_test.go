// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"testing"

	"golang.org/x/arch/x86/x86asm"
	"golang.org/x/sync/errgroup"
)

var legacyCodes = []struct {
	State State
	Code  []byte
}{
	{state64, []byte{0x90}},
	{state64, []byte{0xf3, 0x0f, 0xbd, 0x17}},
	{state64, []byte{0x48, 0x01, 0xd8}},
	{state64, []byte{0xf0, 0x01, 0x18}},
	{state64, []byte{0x8d, 0x44, 0x24, 0x08}},
	{state64, []byte{0x8b, 0x05, 0x10, 0x00, 0x00, 0x00}},
	{state64, []byte{0x67, 0x8b, 0x05, 0x10, 0x00, 0x00, 0x00}},
	{state64, []byte{0x48, 0x8b, 0x45, 0xf8}},
	{state64, []byte{0x8b, 0x04, 0x88}},
	{state64, []byte{0x64, 0x48, 0x8b, 0x04, 0x25, 0x28, 0x00, 0x00, 0x00}},
	{state64, []byte{0x48, 0xb8, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}},
	{state64, []byte{0xe9, 0x80, 0x00, 0x00, 0x00}},
	{state64, []byte{0xeb, 0xfe}},
	{state64, []byte{0x55}},
	{state64, []byte{0x66, 0x81, 0xc3, 0x34, 0x12}},
	{state64, []byte{0xc1, 0xe0, 0x05}},
	{state64, []byte{0xd8, 0xc1}},
	{state64, []byte{0x0f, 0xa2}},
	{state32, []byte{0x40}},
	{state32, []byte{0x81, 0xc3, 0x78, 0x56, 0x34, 0x12}},
	{state32, []byte{0x66, 0x68, 0x34, 0x12}},
	{state16, []byte{0x8b, 0x00}},
	{state16, []byte{0x8b, 0x06, 0x34, 0x12}},
	{state16, []byte{0x66, 0xb8, 0x78, 0x56, 0x34, 0x12}},
}

// TestDecodeLength checks instruction lengths
// against an independent decoder.
func TestDecodeLength(t *testing.T) {
	for _, test := range legacyCodes {
		inst, err := Decode(test.Code, test.State, nil)
		if err != nil {
			t.Errorf("Decode(% x): %v", test.Code, err)
			continue
		}

		want, err := x86asm.Decode(test.Code, test.State.Mode().CodeSize())
		if err != nil {
			continue
		}

		if inst.Length() != want.Len {
			t.Errorf("Decode(% x): got length %d, want %d (%s)", test.Code, inst.Length(), want.Len, x86asm.IntelSyntax(want, 0, nil))
		}
	}
}

func TestDecodeConcurrentLegacy(t *testing.T) {
	want := make([]decoded, len(legacyCodes))
	for i, test := range legacyCodes {
		inst, err := Decode(test.Code, test.State, nil)
		if err != nil {
			t.Fatalf("Decode(% x): %v", test.Code, err)
		}

		want[i] = summarise(inst)
	}

	var g errgroup.Group
	for worker := 0; worker < 8; worker++ {
		g.Go(func() error {
			for i, test := range legacyCodes {
				inst, err := Decode(test.Code, test.State, nil)
				if err != nil {
					return err
				}

				got := summarise(inst)
				if got.IClass != want[i].IClass || got.Length != want[i].Length {
					t.Errorf("Decode(% x): got %s/%d, want %s/%d", test.Code, got.IClass, got.Length, want[i].IClass, want[i].Length)
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

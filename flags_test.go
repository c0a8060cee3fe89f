// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSimpleFlag(t *testing.T) {
	tests := []struct {
		Name      string
		Flags     string
		May       bool
		Read      FlagSet
		Written   FlagSet
		Undefined FlagSet
	}{
		{
			Name:    "arithmetic",
			Flags:   "MUST [ of-mod sf-mod zf-mod af-mod pf-mod cf-mod ]",
			Written: FlagOF.Mask() | FlagSF.Mask() | FlagZF.Mask() | FlagAF.Mask() | FlagPF.Mask() | FlagCF.Mask(),
		},
		{
			Name:    "carry",
			Flags:   "MUST [ cf-tst cf-mod ]",
			Read:    FlagCF.Mask(),
			Written: FlagCF.Mask(),
		},
		{
			Name:      "shift",
			Flags:     "MAY [ of-u cf-mod ]",
			May:       true,
			Written:   FlagOF.Mask() | FlagCF.Mask(),
			Undefined: FlagOF.Mask(),
		},
		{
			Name:  "condition",
			Flags: "MUST [ zf-tst sf-tst of-tst ]",
			Read:  FlagZF.Mask() | FlagSF.Mask() | FlagOF.Mask(),
		},
		{
			Name:    "x87",
			Flags:   "MUST [ fc0-mod fc3-0 ]",
			Written: FlagFC0.Mask() | FlagFC3.Mask(),
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			f, err := ParseSimpleFlag(test.Flags)
			if err != nil {
				t.Fatalf("ParseSimpleFlag(%q): %v", test.Flags, err)
			}

			if f.String() != test.Flags {
				t.Errorf("String: got %q, want %q", f.String(), test.Flags)
			}

			if f.MayWrite() != (test.May && test.Written != 0) || f.MustWrite() != (!test.May && test.Written != 0) {
				t.Errorf("got MayWrite %v, MustWrite %v", f.MayWrite(), f.MustWrite())
			}

			got := []FlagSet{f.ReadFlagSet(), f.WrittenFlagSet(), f.UndefinedFlagSet()}
			want := []FlagSet{test.Read, test.Written, test.Undefined}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("flag sets (read, written, undefined): (-want, +got)\n%s", diff)
			}
		})
	}
}

func TestParseSimpleFlagErrors(t *testing.T) {
	tests := []string{
		"",
		"MUST",
		"MUST [ ]",
		"MUST of-mod",
		"SOMETIMES [ of-mod ]",
		"MUST [ of ]",
		"MUST [ xf-mod ]",
		"MUST [ of-set ]",
		"MUST [ INVALID-mod ]",
	}

	for _, flags := range tests {
		if f, err := ParseSimpleFlag(flags); err == nil {
			t.Errorf("ParseSimpleFlag(%q): got %s, want error", flags, f)
		}
	}
}

func TestFlagMask(t *testing.T) {
	tests := []struct {
		Flag Flag
		Want uint32
	}{
		{FlagCF, 1 << 0},
		{FlagZF, 1 << 6},
		{FlagOF, 1 << 11},
		{FlagIOPL, 0b11 << 12},
		{FlagID, 1 << 21},
		{FlagInvalid, 0},
	}

	for _, test := range tests {
		if got := test.Flag.Mask().Mask(); got != test.Want {
			t.Errorf("%s.Mask(): got %#x, want %#x", test.Flag, got, test.Want)
		}
	}

	set := FlagCF.Mask() | FlagIOPL.Mask()
	if got, want := set.String(), "cf iopl"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}

	if !FlagCF.Mask().IsSubsetOf(set) || set.IsSubsetOf(FlagCF.Mask()) {
		t.Error("IsSubsetOf: got wrong result")
	}
}

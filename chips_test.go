// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"strings"
	"testing"
)

func TestChipByName(t *testing.T) {
	for _, chip := range Chips() {
		for _, name := range []string{chip.String(), strings.ToLower(chip.String())} {
			got, ok := ChipByName(name)
			if !ok || got != chip {
				t.Errorf("ChipByName(%q): got %v, %v", name, got, ok)
			}
		}
	}

	if chip, ok := ChipByName("Z80"); ok {
		t.Errorf("ChipByName(Z80): got %s", chip)
	}

	if _, err := ChipFromInt(int(chipCount)); err == nil {
		t.Error("ChipFromInt: accepted an invalid chip")
	}
}

func TestChipInheritance(t *testing.T) {
	chains := [][]Chip{
		{ChipI86, ChipI386, ChipPentium, ChipPentium4, ChipCore2, ChipNehalem, ChipHaswell, ChipSkylakeServer, ChipSapphireRapids, ChipAll},
		{ChipCore2, ChipBulldozer, ChipAll},
	}

	for _, chain := range chains {
		for i := 1; i < len(chain); i++ {
			parent := FeatureMaskFromChip(chain[i-1])
			child := FeatureMaskFromChip(chain[i])
			if !parent.IsSubsetOf(&child) {
				t.Errorf("%s is not a subset of %s", chain[i-1], chain[i])
			}

			if child.IsSubsetOf(&parent) {
				t.Errorf("%s adds nothing to %s", chain[i], chain[i-1])
			}
		}
	}

	all := FeatureMaskFromChip(ChipAll)
	for s := ISASet(1); s < isaSetCount; s++ {
		if !all.Has(s) {
			t.Errorf("ALL is missing %s", s)
		}
	}

	if got := len(ChipAll.ISASets()); got != int(isaSetCount)-1 {
		t.Errorf("ALL.ISASets: got %d sets, want %d", got, isaSetCount-1)
	}

	haswell := FeatureMaskFromChip(ChipHaswell)
	if !haswell.Has(ISASetLZCNT) {
		t.Error("HASWELL lacks LZCNT")
	}

	if chip, ok := haswell.Chip(); !ok || chip != ChipHaswell {
		t.Errorf("Chip: got %v, %v", chip, ok)
	}

	empty := FeatureMaskFromChip(ChipInvalid)
	if _, ok := empty.Chip(); ok || empty.Has(ISASetI86) {
		t.Error("invalid chip has a non-empty mask")
	}
}

func TestFeatureMaskEdits(t *testing.T) {
	var mask FeatureMask
	mask.Enable(ISASetLZCNT)
	if !mask.Has(ISASetLZCNT) || mask.Has(ISASetI86) {
		t.Fatal("Enable: wrong contents")
	}

	mask.Enable(ISASetInvalid)
	if mask.Has(ISASetInvalid) {
		t.Error("Enable: accepted the invalid ISA set")
	}

	mask.Disable(ISASetLZCNT)
	if mask.Has(ISASetLZCNT) {
		t.Error("Disable: LZCNT still present")
	}

	var empty FeatureMask
	if !mask.IsSubsetOf(&empty) {
		t.Error("empty masks are not subsets of each other")
	}
}

func TestLoadChipsErrors(t *testing.T) {
	tests := []struct {
		Name string
		TOML string
		Want string
	}{
		{
			Name: "syntax",
			TOML: "[[chip]\n",
			Want: "failed to parse chips",
		},
		{
			Name: "unknown field",
			TOML: "[[chip]]\nname = \"I86\"\ncolour = \"red\"\n",
			Want: "unexpected field",
		},
		{
			Name: "unknown chip",
			TOML: "[[chip]]\nname = \"Z80\"\n",
			Want: "unknown chip",
		},
		{
			Name: "duplicate",
			TOML: "[[chip]]\nname = \"I86\"\n[[chip]]\nname = \"I86\"\n",
			Want: "defined twice",
		},
		{
			Name: "parent order",
			TOML: "[[chip]]\nname = \"I386\"\ninherits = \"I86\"\n",
			Want: "is not defined before it",
		},
		{
			Name: "unknown ISA set",
			TOML: "[[chip]]\nname = \"I86\"\nisa = [\"WARP_DRIVE\"]\n",
			Want: "unknown ISA set",
		},
		{
			Name: "missing chip",
			TOML: "[[chip]]\nname = \"I86\"\n",
			Want: "is not defined",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := loadChips(test.TOML)
			if err == nil {
				t.Fatal("got no error")
			}

			if !strings.Contains(err.Error(), test.Want) {
				t.Errorf("got error %q, want %q", err, test.Want)
			}
		})
	}
}

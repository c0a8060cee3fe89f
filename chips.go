// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Chip is a processor model, used to
// restrict decoding to the instructions
// it supports.
type Chip uint8

const (
	ChipInvalid Chip = iota
	ChipI86
	ChipI386
	ChipPentium
	ChipPentium4
	ChipCore2
	ChipNehalem
	ChipHaswell
	ChipSkylakeServer
	ChipSapphireRapids
	ChipBulldozer
	ChipAll
	chipCount
)

var chipNames = [...]string{
	ChipInvalid:        "INVALID",
	ChipI86:            "I86",
	ChipI386:           "I386",
	ChipPentium:        "PENTIUM",
	ChipPentium4:       "PENTIUM4",
	ChipCore2:          "CORE2",
	ChipNehalem:        "NEHALEM",
	ChipHaswell:        "HASWELL",
	ChipSkylakeServer:  "SKYLAKE_SERVER",
	ChipSapphireRapids: "SAPPHIRE_RAPIDS",
	ChipBulldozer:      "BULLDOZER",
	ChipAll:            "ALL",
}

func (c Chip) String() string { return enumName(chipNames[:], c, "Chip") }

// ChipFromInt converts v to a chip, checking
// that it is in range.
func ChipFromInt(v int) (Chip, error) {
	return enumFromInt(v, 0, chipCount, "Chip")
}

// ChipByName returns the chip with the given
// name, ignoring case.
func ChipByName(name string) (Chip, bool) {
	return enumByName[Chip](chipNames[:], strings.ToUpper(name))
}

// Chips returns every valid chip.
func Chips() []Chip {
	out := make([]Chip, 0, chipCount-1)
	for c := ChipI86; c < chipCount; c++ {
		out = append(out, c)
	}

	return out
}

// ISASets returns the ISA sets the chip
// supports, in ascending order.
func (c Chip) ISASets() []ISASet {
	mask := FeatureMaskFromChip(c)
	var out []ISASet
	for s := ISASet(1); s < isaSetCount; s++ {
		if mask.Has(s) {
			out = append(out, s)
		}
	}

	return out
}

// FeatureMask is a set of ISA sets. When
// passed to Decode, instructions outside
// the set are rejected.
//
// The zero FeatureMask contains no ISA
// sets.
type FeatureMask struct {
	bits [(int(isaSetCount) + 63) / 64]uint64
	chip Chip
}

// FeatureMaskFromChip returns the ISA sets
// supported by the chip. An invalid chip
// has no ISA sets.
func FeatureMaskFromChip(chip Chip) FeatureMask {
	EnsureTablesReady()
	if chip == ChipInvalid || chip >= chipCount {
		return FeatureMask{}
	}

	return tables.chips[chip]
}

// Enable adds the ISA set to the mask.
func (m *FeatureMask) Enable(s ISASet) {
	if s == ISASetInvalid || s >= isaSetCount {
		return
	}

	m.bits[s/64] |= 1 << (s % 64)
}

// Disable removes the ISA set from the mask.
func (m *FeatureMask) Disable(s ISASet) {
	if s == ISASetInvalid || s >= isaSetCount {
		return
	}

	m.bits[s/64] &^= 1 << (s % 64)
}

// Has reports whether the ISA set is
// in the mask.
func (m *FeatureMask) Has(s ISASet) bool {
	if s == ISASetInvalid || s >= isaSetCount {
		return false
	}

	return m.bits[s/64]&(1<<(s%64)) != 0
}

// Chip returns the chip the mask was
// derived from, if any.
func (m *FeatureMask) Chip() (Chip, bool) {
	return m.chip, m.chip != ChipInvalid
}

// IsSubsetOf reports whether every ISA set
// in m is also in other.
func (m *FeatureMask) IsSubsetOf(other *FeatureMask) bool {
	for i := range m.bits {
		if m.bits[i]&^other.bits[i] != 0 {
			return false
		}
	}

	return true
}

//go:embed chips.toml
var chipsTOML string

// chipsFile is the structure of chips.toml.
type chipsFile struct {
	Chips []struct {
		Name     string   `toml:"name"`
		Inherits string   `toml:"inherits"`
		ISA      []string `toml:"isa"`
		All      bool     `toml:"all"`
	} `toml:"chip"`
}

// loadChips parses the chip definitions.
func loadChips(data string) ([chipCount]FeatureMask, error) {
	var out [chipCount]FeatureMask
	var file chipsFile
	md, err := toml.Decode(data, &file)
	if err != nil {
		return out, fmt.Errorf("failed to parse chips: %v", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return out, fmt.Errorf("failed to parse chips: unexpected field %q", undecoded[0].String())
	}

	seen := make(map[Chip]bool)
	for _, def := range file.Chips {
		chip, ok := enumByName[Chip](chipNames[:], def.Name)
		if !ok || chip == ChipInvalid {
			return out, fmt.Errorf("invalid chip %q: unknown chip", def.Name)
		}

		if seen[chip] {
			return out, fmt.Errorf("invalid chip %q: defined twice", def.Name)
		}

		seen[chip] = true
		var mask FeatureMask
		if def.Inherits != "" {
			parent, ok := enumByName[Chip](chipNames[:], def.Inherits)
			if !ok || !seen[parent] {
				return out, fmt.Errorf("invalid chip %q: parent %q is not defined before it", def.Name, def.Inherits)
			}

			mask = out[parent]
		}

		for _, name := range def.ISA {
			s, ok := ISASetByName(name)
			if !ok || s == ISASetInvalid {
				return out, fmt.Errorf("invalid chip %q: unknown ISA set %q", def.Name, name)
			}

			mask.Enable(s)
		}

		if def.All {
			for s := ISASet(1); s < isaSetCount; s++ {
				mask.Enable(s)
			}
		}

		mask.chip = chip
		out[chip] = mask
	}

	for c := ChipI86; c < chipCount; c++ {
		if !seen[c] {
			return out, fmt.Errorf("chip %s is not defined", c)
		}
	}

	return out, nil
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"strings"

	"firefly-os.dev/xed"
	"firefly-os.dev/xed/disasm"
)

var modeNames = map[string]xed.MachineMode{
	"long64":   xed.ModeLong64,
	"compat32": xed.ModeLongCompat32,
	"compat16": xed.ModeLongCompat16,
	"legacy32": xed.ModeLegacy32,
	"legacy16": xed.ModeLegacy16,
	"real16":   xed.ModeReal16,
	"real32":   xed.ModeReal32,
}

// decodeFlags are the flags shared by
// the commands that decode machine code.
type decodeFlags struct {
	mode   string
	width  int
	chip   string
	syntax string
}

func (f *decodeFlags) register(flags *flag.FlagSet) {
	flags.StringVar(&f.mode, "mode", "long64", "The machine mode (long64, compat32, compat16, legacy32, legacy16, real16, or real32).")
	flags.IntVar(&f.width, "width", 0, "The stack address width in bits (default: the mode's code size).")
	flags.StringVar(&f.chip, "chip", "", "Reject instructions not supported by the named chip.")
	flags.StringVar(&f.syntax, "syntax", "intel", "The assembly syntax (intel, att, or xed).")
}

func (f *decodeFlags) state() (xed.State, error) {
	mode, ok := modeNames[strings.ToLower(f.mode)]
	if !ok {
		return xed.State{}, fmt.Errorf("invalid mode %q", f.mode)
	}

	bits := f.width
	if bits == 0 {
		bits = mode.CodeSize()
	}

	width, err := xed.AddressWidthFromInt(bits)
	if err != nil {
		return xed.State{}, fmt.Errorf("invalid stack address width: %v", err)
	}

	return xed.NewState(mode, width)
}

// features returns the feature mask for
// the selected chip, or nil if no chip
// was selected.
func (f *decodeFlags) features() (*xed.FeatureMask, error) {
	if f.chip == "" {
		return nil, nil
	}

	chip, ok := xed.ChipByName(f.chip)
	if !ok {
		return nil, fmt.Errorf("unknown chip %q", f.chip)
	}

	mask := xed.FeatureMaskFromChip(chip)

	return &mask, nil
}

func (f *decodeFlags) options() (disasm.Options, error) {
	opts := disasm.DefaultOptions()
	syntax, err := disasm.ParseSyntax(f.syntax)
	if err != nil {
		return opts, err
	}

	opts.Syntax = syntax

	return opts, nil
}

// parseHex decodes machine code written in
// hexadecimal, ignoring spaces and any 0x
// prefix.
func parseHex(s string) ([]byte, error) {
	clean := strings.Join(strings.Fields(s), "")
	clean = strings.TrimPrefix(strings.ToLower(clean), "0x")
	code, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %v", s, err)
	}

	if len(code) == 0 {
		return nil, fmt.Errorf("invalid hex %q: no bytes", s)
	}

	return code, nil
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"firefly-os.dev/xed"
)

// chipsMain prints the chips, with
// the ISA sets each one supports.
func chipsMain(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet("chips", flag.ExitOnError)

	var help, isaSets bool
	flags.BoolVar(&help, "h", false, "Show this message and exit.")
	flags.BoolVar(&isaSets, "isa", false, "List each chip's ISA sets.")

	flags.Usage = func() {
		log.Printf("Usage:\n  %s %s [OPTIONS] [CHIP...]\n\n", program, flags.Name())
		flags.PrintDefaults()
		os.Exit(2)
	}

	err := flags.Parse(args)
	if err != nil || help {
		flags.Usage()
	}

	chips := xed.Chips()
	if flags.NArg() > 0 {
		chips = chips[:0:0]
		for _, name := range flags.Args() {
			chip, ok := xed.ChipByName(name)
			if !ok {
				return fmt.Errorf("unknown chip %q", name)
			}

			chips = append(chips, chip)
		}
	}

	maxWidth := 0
	for _, chip := range chips {
		if maxWidth < len(chip.String()) {
			maxWidth = len(chip.String())
		}
	}

	for _, chip := range chips {
		sets := chip.ISASets()
		if !isaSets {
			_, err = fmt.Fprintf(w, "%-*s  %d ISA sets\n", maxWidth, chip, len(sets))
		} else {
			names := make([]string, len(sets))
			for i, set := range sets {
				names[i] = set.String()
			}

			_, err = fmt.Fprintf(w, "%-*s  %s\n", maxWidth, chip, strings.Join(names, " "))
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"firefly-os.dev/xed/disasm"
)

// disasmMain disassembles a stream of
// machine code.
func disasmMain(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet("disasm", flag.ExitOnError)

	var help bool
	var addr uint64
	var df decodeFlags
	flags.BoolVar(&help, "h", false, "Show this message and exit.")
	flags.Uint64Var(&addr, "addr", 0, "The address of the first byte.")
	df.register(flags)

	flags.Usage = func() {
		log.Printf("Usage:\n  %s %s [OPTIONS] HEXSTREAM\n\n", program, flags.Name())
		flags.PrintDefaults()
		os.Exit(2)
	}

	err := flags.Parse(args)
	if err != nil || help {
		flags.Usage()
	}

	if flags.NArg() == 0 {
		flags.Usage()
	}

	code, err := parseHex(strings.Join(flags.Args(), ""))
	if err != nil {
		return err
	}

	state, err := df.state()
	if err != nil {
		return err
	}

	features, err := df.features()
	if err != nil {
		return err
	}

	opts, err := df.options()
	if err != nil {
		return err
	}

	opts.Address = addr

	return disasm.Listing(w, code, state, features, &opts)
}

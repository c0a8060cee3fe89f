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

	"firefly-os.dev/xed"
)

// formsMain prints the instruction forms,
// either all of them or those of the
// given instruction classes.
func formsMain(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet("forms", flag.ExitOnError)

	var help, flagInfo bool
	flags.BoolVar(&help, "h", false, "Show this message and exit.")
	flags.BoolVar(&flagInfo, "flags", false, "Print each form's effect on the flags.")

	flags.Usage = func() {
		log.Printf("Usage:\n  %s %s [OPTIONS] [ICLASS...]\n\n", program, flags.Name())
		flags.PrintDefaults()
		os.Exit(2)
	}

	err := flags.Parse(args)
	if err != nil || help {
		flags.Usage()
	}

	var forms []*xed.Form
	if flags.NArg() == 0 {
		forms = xed.Forms()
	}

	for _, name := range flags.Args() {
		iclass, ok := xed.IClassByName(name)
		if !ok {
			return fmt.Errorf("unknown instruction class %q", name)
		}

		forms = append(forms, iclass.Forms()...)
	}

	for _, form := range forms {
		_, err = fmt.Fprintln(w, form)
		if err != nil {
			return err
		}

		if !flagInfo {
			continue
		}

		if info, ok := form.Flags(); ok {
			fmt.Fprintf(w, "\tflags: %s\n", info)
		}
	}

	return nil
}

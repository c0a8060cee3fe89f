// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package disasm

import (
	"errors"
	"fmt"
	"io"

	"firefly-os.dev/xed"
)

// Listing writes a disassembly of code to
// w, one instruction per line, starting at
// opts.Address.
//
// Each instruction is decoded on its own.
// Bytes that do not decode are shown as
// "(bad)" and skipped one at a time.
func Listing(w io.Writer, code []byte, state xed.State, features *xed.FeatureMask, opts *Options) error {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}

	o := *opts
	for len(code) > 0 {
		inst, err := xed.Decode(code, state, features)
		if err != nil {
			var kind xed.DecodeError
			if !errors.As(err, &kind) {
				return err
			}

			_, err = fmt.Fprintf(w, "%x:\t%02x\t(bad)\n", o.Address, code[0])
			if err != nil {
				return err
			}

			code = code[1:]
			o.Address++
			continue
		}

		text, err := Format(inst, &o)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(w, "%x:\t% x\t%s\n", o.Address, inst.Bytes(), text)
		if err != nil {
			return err
		}

		code = code[inst.Length():]
		o.Address += uint64(inst.Length())
	}

	return nil
}

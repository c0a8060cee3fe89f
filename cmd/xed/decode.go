// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"firefly-os.dev/xed"
	"firefly-os.dev/xed/disasm"
)

// instRecord is the YAML form of a
// decoded instruction.
type instRecord struct {
	Bytes     string          `yaml:"bytes"`
	IClass    string          `yaml:"iclass"`
	IForm     string          `yaml:"iform"`
	Category  string          `yaml:"category"`
	Extension string          `yaml:"extension"`
	ISASet    string          `yaml:"isa-set"`
	Length    int             `yaml:"length"`
	Text      string          `yaml:"text"`
	Operands  []operandRecord `yaml:"operands,omitempty"`
}

type operandRecord struct {
	Name       string `yaml:"name"`
	Value      string `yaml:"value"`
	Action     string `yaml:"action,omitempty"`
	Visibility string `yaml:"visibility"`
	Bits       int    `yaml:"bits"`
}

func newInstRecord(inst *xed.Inst, text string) *instRecord {
	rec := &instRecord{
		Bytes:     fmt.Sprintf("% x", inst.Bytes()),
		IClass:    inst.IClass().String(),
		IForm:     inst.IForm().String(),
		Category:  inst.Category().String(),
		Extension: inst.Extension().String(),
		ISASet:    inst.ISASet().String(),
		Length:    inst.Length(),
		Text:      text,
	}

	for i := range inst.Operands() {
		v, _ := inst.Operand(i)
		op := operandRecord{
			Name:       v.Name().String(),
			Visibility: v.Visibility().String(),
			Bits:       v.Bits(),
		}

		switch {
		case v.Register() != nil:
			op.Value = v.Register().Name
		case v.IsMemory():
			m, _ := v.Memory()
			op.Value = m.Memory.String()
		default:
			op.Value = fmt.Sprintf("%#x", v.Immediate())
		}

		if action, ok := v.Action(); ok {
			op.Action = action.String()
		}

		rec.Operands = append(rec.Operands, op)
	}

	return rec
}

// decoded is the result of decoding
// one argument.
type decoded struct {
	inst *xed.Inst
	text string
	err  error
}

// decodeOne decodes the first instruction
// in the hex string.
func decodeOne(s string, state xed.State, features *xed.FeatureMask, opts *disasm.Options) decoded {
	code, err := parseHex(s)
	if err != nil {
		return decoded{err: err}
	}

	inst, err := xed.Decode(code, state, features)
	if err != nil {
		var kind xed.DecodeError
		if errors.As(err, &kind) {
			return decoded{err: fmt.Errorf("failed to decode the instruction: %s", kind.Name())}
		}

		return decoded{err: fmt.Errorf("failed to decode the instruction: %v", err)}
	}

	text, err := disasm.Format(inst, opts)
	if err != nil {
		return decoded{err: fmt.Errorf("failed to format the instruction: %v", err)}
	}

	return decoded{inst: inst, text: text}
}

// decodeMain decodes one instruction from
// each argument.
func decodeMain(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet("decode", flag.ExitOnError)

	var help, asYAML bool
	var df decodeFlags
	flags.BoolVar(&help, "h", false, "Show this message and exit.")
	flags.BoolVar(&asYAML, "yaml", false, "Print each instruction as a YAML document.")
	df.register(flags)

	flags.Usage = func() {
		log.Printf("Usage:\n  %s %s [OPTIONS] HEX...\n\n", program, flags.Name())
		flags.PrintDefaults()
		os.Exit(2)
	}

	err := flags.Parse(args)
	if err != nil || help {
		flags.Usage()
	}

	hexes := flags.Args()
	if len(hexes) == 0 {
		flags.Usage()
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

	// Each argument is decoded independently.
	// Results are printed in argument order.
	results := make([]decoded, len(hexes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range hexes {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = decodeOne(s, state, features, &opts)
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return err
	}

	var enc *yaml.Encoder
	if asYAML {
		enc = yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
	}

	for _, res := range results {
		if res.err != nil {
			return res.err
		}

		if enc != nil {
			err = enc.Encode(newInstRecord(res.inst, res.text))
			if err != nil {
				return fmt.Errorf("failed to write YAML: %v", err)
			}

			continue
		}

		_, err = fmt.Fprintf(w, "% x\t%s\n", res.inst.Bytes(), res.text)
		if err != nil {
			return err
		}
	}

	return nil
}

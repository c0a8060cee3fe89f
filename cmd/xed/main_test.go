// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
	"rsc.io/diff"
)

func run(t *testing.T, fun func(context.Context, io.Writer, []string) error, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := fun(context.Background(), &buf, args)
	return buf.String(), err
}

func TestDecode(t *testing.T) {
	tests := []struct {
		Name string
		Args []string
		Want string
	}{
		{
			Name: "intel",
			Args: []string{"f30fbd17"},
			Want: "f3 0f bd 17\tlzcnt edx, dword ptr [rdi]\n",
		},
		{
			Name: "att",
			Args: []string{"-syntax", "att", "f3 0f bd 17"},
			Want: "f3 0f bd 17\tlzcntl (%rdi), %edx\n",
		},
		{
			Name: "xed",
			Args: []string{"-syntax", "xed", "0xf30fbd17"},
			Want: "f3 0f bd 17\tLZCNT_GPRv_MEMv REG0=edx:w MEM0=dword ptr [rdi]:r REG1=rflags:w:SUPP\n",
		},
		{
			Name: "in order",
			Args: []string{"55", "4889e5", "90", "c3"},
			Want: "55\tpush rbp\n48 89 e5\tmov rbp, rsp\n90\tnop\nc3\tret\n",
		},
		{
			Name: "first instruction only",
			Args: []string{"9090"},
			Want: "90\tnop\n",
		},
		{
			Name: "32-bit",
			Args: []string{"-mode", "legacy32", "40"},
			Want: "40\tinc eax\n",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			got, err := run(t, decodeMain, test.Args...)
			if err != nil {
				t.Fatal(err)
			}

			if got != test.Want {
				t.Errorf("decode %s:\n%s", strings.Join(test.Args, " "), diff.Format(got, test.Want))
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		Name string
		Args []string
		Want string
	}{
		{
			Name: "bad lock",
			Args: []string{"f090"},
			Want: "failed to decode the instruction: BAD_LOCK_PREFIX",
		},
		{
			Name: "short",
			Args: []string{"e9"},
			Want: "failed to decode the instruction: BUFFER_TOO_SHORT",
		},
		{
			Name: "chip",
			Args: []string{"-chip", "i86", "f30fbd17"},
			Want: "failed to decode the instruction: INVALID_FOR_CHIP",
		},
		{
			Name: "first failure",
			Args: []string{"90", "f090", "e9"},
			Want: "failed to decode the instruction: BAD_LOCK_PREFIX",
		},
		{
			Name: "hex",
			Args: []string{"9g"},
			Want: `invalid hex "9g"`,
		},
		{
			Name: "mode",
			Args: []string{"-mode", "long32", "90"},
			Want: `invalid mode "long32"`,
		},
		{
			Name: "width",
			Args: []string{"-mode", "long64", "-width", "32", "90"},
			Want: "invalid state",
		},
		{
			Name: "chip name",
			Args: []string{"-chip", "z80", "90"},
			Want: `unknown chip "z80"`,
		},
		{
			Name: "syntax",
			Args: []string{"-syntax", "gas", "90"},
			Want: `invalid syntax "gas"`,
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := run(t, decodeMain, test.Args...)
			if err == nil {
				t.Fatalf("decode %s: got no error", strings.Join(test.Args, " "))
			}

			if !strings.Contains(err.Error(), test.Want) {
				t.Errorf("decode %s: got error %q, want %q", strings.Join(test.Args, " "), err, test.Want)
			}
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	got, err := run(t, decodeMain, "-yaml", "f30fbd17", "90")
	if err != nil {
		t.Fatal(err)
	}

	var records []instRecord
	dec := yaml.NewDecoder(strings.NewReader(got))
	for {
		var rec instRecord
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("failed to parse YAML: %v\n%s", err, got)
		}

		records = append(records, rec)
	}

	want := []instRecord{
		{
			Bytes:     "f3 0f bd 17",
			IClass:    "LZCNT",
			IForm:     "LZCNT_GPRv_MEMv",
			Category:  "BITBYTE",
			Extension: "LZCNT",
			ISASet:    "LZCNT",
			Length:    4,
			Text:      "lzcnt edx, dword ptr [rdi]",
			Operands: []operandRecord{
				{Name: "REG0", Value: "edx", Action: "w", Visibility: "EXPLICIT", Bits: 32},
				{Name: "MEM0", Value: "[rdi]", Action: "r", Visibility: "EXPLICIT", Bits: 32},
				{Name: "REG1", Value: "rflags", Action: "w", Visibility: "SUPPRESSED", Bits: 64},
			},
		},
		{
			Bytes:     "90",
			IClass:    "NOP",
			IForm:     "NOP_90",
			Category:  "NOP",
			Extension: "BASE",
			ISASet:    "I86",
			Length:    1,
			Text:      "nop",
		},
	}

	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("decode -yaml: (-want, +got)\n%s", diff)
	}
}

func TestDisasm(t *testing.T) {
	got, err := run(t, disasmMain, "-addr", "0x1000", "55 4889e5", "31c0 5d c3 e9")
	if err != nil {
		t.Fatal(err)
	}

	want := "" +
		"1000:\t55\tpush rbp\n" +
		"1001:\t48 89 e5\tmov rbp, rsp\n" +
		"1004:\t31 c0\txor eax, eax\n" +
		"1006:\t5d\tpop rbp\n" +
		"1007:\tc3\tret\n" +
		"1008:\te9\t(bad)\n"

	if got != want {
		t.Errorf("disasm:\n%s", diff.Format(got, want))
	}
}

func TestForms(t *testing.T) {
	got, err := run(t, formsMain, "-flags", "LZCNT")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "LZCNT_") {
		t.Fatalf("forms LZCNT: got\n%s", got)
	}

	for _, line := range lines {
		if !strings.HasPrefix(line, "LZCNT_") && !strings.HasPrefix(line, "\tflags: ") {
			t.Errorf("forms LZCNT: unexpected line %q", line)
		}
	}

	_, err = run(t, formsMain, "NOTANINSTRUCTION")
	if err == nil {
		t.Error("forms accepted an unknown instruction class")
	}
}

func TestChips(t *testing.T) {
	got, err := run(t, chipsMain, "-isa", "haswell")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(got, "HASWELL  ") || !strings.Contains(got, " I86 ") || !strings.Contains(got, " LZCNT ") {
		t.Errorf("chips -isa haswell: got %q", got)
	}

	got, err = run(t, chipsMain)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 11 {
		t.Errorf("chips: got %d lines, want 11:\n%s", len(lines), got)
	}

	_, err = run(t, chipsMain, "z80")
	if err == nil {
		t.Error("chips accepted an unknown chip")
	}
}

func TestCommands(t *testing.T) {
	want := []string{"chips", "decode", "disasm", "forms"}
	got := append([]string(nil), commandsNames...)
	sort.Strings(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("commands: (-want, +got)\n%s", diff)
	}

	for _, name := range got {
		cmd := commandsMap[name]
		if cmd == nil || cmd.Name != name || cmd.Func == nil || cmd.Description == "" {
			t.Errorf("command %q: got %+v", name, cmd)
		}
	}
}

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

// Command xed decodes and disassembles x86 machine code.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
)

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	log.SetPrefix("")
}

type Command struct {
	Name        string
	Description string
	Func        func(ctx context.Context, w io.Writer, args []string) error
}

var (
	commandsNames = make([]string, 0, 4)
	commandsMap   = make(map[string]*Command)

	program = filepath.Base(os.Args[0])
)

func RegisterCommand(name, description string, fun func(ctx context.Context, w io.Writer, args []string) error) {
	if commandsMap[name] != nil {
		panic("command " + name + " already registered")
	}

	if fun == nil {
		panic("command " + name + " registered with nil implementation")
	}

	commandsNames = append(commandsNames, name)
	commandsMap[name] = &Command{Name: name, Description: description, Func: fun}
}

func init() {
	RegisterCommand("decode", "Decode one instruction from each hex argument", decodeMain)
	RegisterCommand("disasm", "Disassemble a stream of machine code", disasmMain)
	RegisterCommand("forms", "Print the instruction forms", formsMain)
	RegisterCommand("chips", "Print the chips and their ISA sets", chipsMain)
}

// usage lists the commands and exits.
func usage() {
	fmt.Fprintf(os.Stderr, "Usage\n  %s COMMAND [OPTIONS]\n\n", program)
	fmt.Fprintf(os.Stderr, "Commands:\n")
	maxWidth := 0
	for _, name := range commandsNames {
		maxWidth = max(maxWidth, len(name))
	}

	for _, name := range commandsNames {
		fmt.Fprintf(os.Stderr, "  %-*s  %s\n", maxWidth, name, commandsMap[name].Description)
	}

	os.Exit(2)
}

func main() {
	sort.Strings(commandsNames)

	var help bool
	flag.BoolVar(&help, "h", false, "Show this message and exit.")
	flag.Usage = usage
	flag.Parse()

	var cmd *Command
	if args := flag.Args(); len(args) > 0 {
		cmd = commandsMap[args[0]]
	}

	if help || cmd == nil {
		flag.Usage()
	}

	log.SetPrefix(cmd.Name + ": ")
	err := cmd.Func(context.Background(), os.Stdout, flag.Args()[1:])
	if err != nil {
		log.Fatal(err)
	}
}

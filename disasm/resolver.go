// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package disasm

import (
	"sort"
)

// Resolver finds the symbol containing an
// address.
//
// Resolve writes the symbol's name to buf
// and returns the address's offset from the
// start of the symbol. If no symbol contains
// the address, Resolve returns false. Any
// error stops formatting.
type Resolver interface {
	Resolve(addr uint64, buf *SymbolBuffer) (offset uint64, found bool, err error)
}

// ResolverFunc adapts a function to the
// Resolver interface.
type ResolverFunc func(addr uint64, buf *SymbolBuffer) (offset uint64, found bool, err error)

func (fun ResolverFunc) Resolve(addr uint64, buf *SymbolBuffer) (offset uint64, found bool, err error) {
	return fun(addr, buf)
}

// ResolveNothing is a resolver that never
// finds a symbol.
var ResolveNothing Resolver = ResolverFunc(func(uint64, *SymbolBuffer) (uint64, bool, error) {
	return 0, false, nil
})

// SymbolBufferSize is the capacity of a
// SymbolBuffer, in bytes.
const SymbolBufferSize = 512

// SymbolBuffer receives a symbol name from a
// Resolver. Writes beyond its capacity are
// discarded without error.
type SymbolBuffer struct {
	buf       [SymbolBufferSize]byte
	n         int
	truncated bool
}

// Write appends as much of p as fits.
// It always reports success.
func (b *SymbolBuffer) Write(p []byte) (int, error) {
	n := copy(b.buf[b.n:], p)
	b.n += n
	if n < len(p) {
		b.truncated = true
	}

	return len(p), nil
}

// WriteString appends as much of s as fits.
// It always reports success.
func (b *SymbolBuffer) WriteString(s string) (int, error) {
	n := copy(b.buf[b.n:], s)
	b.n += n
	if n < len(s) {
		b.truncated = true
	}

	return len(s), nil
}

func (b *SymbolBuffer) Len() int        { return b.n }
func (b *SymbolBuffer) Truncated() bool { return b.truncated }
func (b *SymbolBuffer) String() string  { return string(b.buf[:b.n]) }

// Reset empties the buffer.
func (b *SymbolBuffer) Reset() {
	b.n = 0
	b.truncated = false
}

// Symbol is a named range of addresses.
type Symbol struct {
	Name string
	Addr uint64
	Size uint64 // Zero extends to the next symbol.
}

// Symbols is a Resolver backed by a set
// of symbols.
type Symbols struct {
	sorted []Symbol
}

// NewSymbols returns a resolver for the
// given symbols.
func NewSymbols(symbols ...Symbol) *Symbols {
	sorted := append([]Symbol(nil), symbols...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Addr < sorted[j].Addr
	})

	return &Symbols{sorted: sorted}
}

func (s *Symbols) Resolve(addr uint64, buf *SymbolBuffer) (offset uint64, found bool, err error) {
	// Find the last symbol starting at
	// or before addr.
	i := sort.Search(len(s.sorted), func(i int) bool {
		return s.sorted[i].Addr > addr
	}) - 1
	if i < 0 {
		return 0, false, nil
	}

	sym := s.sorted[i]
	offset = addr - sym.Addr
	if sym.Size != 0 && offset >= sym.Size {
		return 0, false, nil
	}

	buf.WriteString(sym.Name)

	return offset, true, nil
}

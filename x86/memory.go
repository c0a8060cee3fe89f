// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package x86

import (
	"fmt"
	"strings"
)

// Memory represents an x86 memory
// reference.
type Memory struct {
	Segment          *Register
	Base             *Register
	Index            *Register
	Scale            uint8 // 1, 2, 4, or 8 when Index is set.
	Displacement     int64
	DisplacementBits int // Zero when no displacement was encoded.
}

// String returns the reference in the
// bracketed form used by Intel syntax,
// with any segment override.
func (m *Memory) String() string {
	var b strings.Builder
	if m.Segment != nil {
		b.WriteString(m.Segment.Name)
		b.WriteByte(':')
	}

	b.WriteByte('[')
	terms := 0
	if m.Base != nil {
		b.WriteString(m.Base.Name)
		terms++
	}

	if m.Index != nil {
		if terms > 0 {
			b.WriteByte('+')
		}

		fmt.Fprintf(&b, "%s*%d", m.Index.Name, m.Scale)
		terms++
	}

	switch {
	case terms == 0:
		fmt.Fprintf(&b, "%#x", uint64(m.Displacement))
	case m.Displacement < 0:
		fmt.Fprintf(&b, "-%#x", uint64(-m.Displacement))
	case m.Displacement > 0:
		fmt.Fprintf(&b, "+%#x", m.Displacement)
	}

	b.WriteByte(']')

	return b.String()
}

func (m *Memory) GoString() string {
	first := true
	var s strings.Builder
	join := func() {
		if !first {
			s.WriteString(", ")
		}

		first = false
	}

	s.WriteByte('{')
	if m.Segment != nil {
		first = false
		fmt.Fprintf(&s, "Segment: %s", m.Segment)
	}
	if m.Base != nil {
		join()
		fmt.Fprintf(&s, "Base: %s", m.Base)
	}
	if m.Index != nil {
		join()
		fmt.Fprintf(&s, "Index: %s, Scale: %d", m.Index, m.Scale)
	}
	if m.DisplacementBits != 0 || first {
		join()
		fmt.Fprintf(&s, "Displacement: %#x/%d", m.Displacement, m.DisplacementBits)
	}
	s.WriteByte('}')

	return s.String()
}

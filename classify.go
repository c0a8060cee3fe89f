// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

// Instruction classifiers, by extension
// and ISA set.

func (f *Form) IsAMX() bool {
	switch f.isa {
	case ISASetAMXTile, ISASetAMXInt8, ISASetAMXBF16:
		return true
	}

	return f.extension == ExtensionAMXTile
}

func (f *Form) IsAPX() bool { return f.extension == ExtensionAPXEVEX }

func (f *Form) IsAVX() bool {
	switch f.extension {
	case ExtensionAVX, ExtensionAVX2, ExtensionAVX2Gather, ExtensionFMA:
		return true
	}

	return false
}

func (f *Form) IsAVX512() bool {
	switch f.extension {
	case ExtensionAVX512EVEX, ExtensionAVX512VEX:
		return true
	}

	return false
}

// IsAVX512MaskOp reports whether the form
// operates on opmask registers.
func (f *Form) IsAVX512MaskOp() bool {
	switch f.isa {
	case ISASetAVX512FKOP, ISASetAVX512DQKOP, ISASetAVX512BWKOP:
		return true
	}

	return false
}

func (f *Form) IsSSE() bool {
	switch f.extension {
	case ExtensionSSE, ExtensionSSE2, ExtensionSSE3, ExtensionSSSE3, ExtensionSSE4, ExtensionSSE42:
		return true
	}

	return false
}

func (inst *Inst) IsAMX() bool          { return inst.form.IsAMX() }
func (inst *Inst) IsAPX() bool          { return inst.form.IsAPX() }
func (inst *Inst) IsAVX() bool          { return inst.form.IsAVX() }
func (inst *Inst) IsAVX512() bool       { return inst.form.IsAVX512() }
func (inst *Inst) IsAVX512MaskOp() bool { return inst.form.IsAVX512MaskOp() }
func (inst *Inst) IsSSE() bool          { return inst.form.IsSSE() }

// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"encoding/binary"

	"golang.org/x/crypto/cryptobyte"

	"firefly-os.dev/xed/x86"
)

// MaxInstructionLength is the length in
// bytes of the longest valid instruction.
const MaxInstructionLength = 15

// Decode decodes the instruction at the
// start of code, in the given machine
// state.
//
// If features is non-nil, instructions
// whose ISA set is not in the mask are
// rejected with ErrInvalidForChip. A nil
// mask accepts every ISA set.
//
// Any error returned is a DecodeError.
// The returned Inst refers to code, which
// must not be modified while the Inst is
// in use.
func Decode(code []byte, state State, features *FeatureMask) (*Inst, error) {
	EnsureTablesReady()
	if !state.valid() {
		return nil, ErrInvalidMode
	}

	window := code
	if len(window) > MaxInstructionLength {
		window = window[:MaxInstructionLength]
	}

	d := &decoder{
		state: state,
		mode:  state.mode.CodeSize(),
		long:  len(code) > MaxInstructionLength,
		size:  len(window),
		s:     cryptobyte.String(window),
	}

	inst, err := d.decode()
	if err != nil {
		return nil, err
	}

	if features != nil {
		if !features.Has(inst.form.isa) {
			return nil, ErrInvalidForChip
		}

		inst.chip, _ = features.Chip()
	}

	n := d.pos()
	inst.code = code[:n:n]

	return inst, nil
}

// decoder holds the state of a single
// call to Decode.
type decoder struct {
	state State
	mode  int  // Code size in bits.
	long  bool // Whether the input exceeds the maximum length.
	size  int  // Length of the decode window.
	s     cryptobyte.String

	// Legacy prefixes.
	nprefixes int
	lock      bool
	osz       bool
	asz       bool
	rep       x86.Prefix // The last F2 or F3 prefix.
	seg       x86.Prefix // The last segment override.
	rex       x86.REX
	hasREX    bool

	// Opcode.
	space  x86.Space
	opMap  x86.Map
	opcode byte
	vex    x86.VEX // Also holds XOP payloads.
	evex   x86.EVEX

	// Register number extensions, as
	// single bits. These are always zero
	// outside 64-bit mode.
	r, x, b, rp, vp uint8

	vvvv uint8 // Decoded register number.

	modrm    x86.ModRM
	hasModRM bool // Whether a ModR/M byte is available.
	sib      x86.SIB
	hasSIB   bool

	form  *Form
	sizes sizes
	vl    int

	// Values read after the opcode.
	mem       x86.Memory
	moffs     uint64
	imm       [2]uint64
	immBits   [2]int
	relbr     int64
	relbrBits int
	is4       byte
}

// pos returns the number of bytes
// consumed.
func (d *decoder) pos() int {
	return d.size - len(d.s)
}

// errShort returns the error for running
// out of input.
func (d *decoder) errShort() error {
	if d.long {
		return ErrInstrTooLong
	}

	return ErrBufferTooShort
}

// peek returns the byte i bytes past the
// current position, without consuming it.
func (d *decoder) peek(i int) (byte, bool) {
	if i >= len(d.s) {
		return 0, false
	}

	return d.s[i], true
}

func (d *decoder) readByte() (byte, error) {
	var b uint8
	if !d.s.ReadUint8(&b) {
		return 0, d.errShort()
	}

	return b, nil
}

// readUint reads an n-byte little-endian
// value.
func (d *decoder) readUint(n int) (uint64, error) {
	var b []byte
	if !d.s.ReadBytes(&b, n) {
		return 0, d.errShort()
	}

	switch n {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	}

	return 0, ErrGeneralError
}

// signExtend interprets the low bits of
// v as a signed integer.
func signExtend(v uint64, bits int) int64 {
	shift := 64 - bits
	return int64(v<<shift) >> shift
}

func bit(b bool) uint8 {
	if b {
		return 1
	}

	return 0
}

func (d *decoder) decode() (*Inst, error) {
	err := d.readPrefixes()
	if err != nil {
		return nil, err
	}

	err = d.readOpcode()
	if err != nil {
		return nil, err
	}

	err = d.selectForm()
	if err != nil {
		return nil, err
	}

	err = d.checkPrefixes()
	if err != nil {
		return nil, err
	}

	if d.form.encoding.ModRM {
		d.s.Skip(1)
	}

	err = d.readOperandBytes()
	if err != nil {
		return nil, err
	}

	inst := d.newInst()
	err = d.resolveOperands(inst)
	if err != nil {
		return nil, err
	}

	err = d.checkOperands(inst)
	if err != nil {
		return nil, err
	}

	return inst, nil
}

// readPrefixes consumes the legacy and
// REX prefixes. A REX prefix only counts
// if it is the last prefix.
func (d *decoder) readPrefixes() error {
	for {
		b, ok := d.peek(0)
		if !ok {
			return d.errShort()
		}

		switch {
		case x86.IsLegacy(b):
			d.s.Skip(1)
			d.nprefixes++
			d.rex, d.hasREX = 0, false
			switch p := x86.Prefix(b); p {
			case x86.PrefixLock:
				d.lock = true
			case x86.PrefixRepeat, x86.PrefixRepeatNot:
				d.rep = p
			case x86.PrefixOperandSize:
				d.osz = true
			case x86.PrefixAddressSize:
				d.asz = true
			default:
				d.seg = p
			}
		case d.mode == 64 && x86.IsREX(b):
			d.s.Skip(1)
			d.nprefixes++
			d.rex, d.hasREX = x86.REX(b), true
		default:
			return nil
		}
	}
}

// readOpcode consumes any VEX, EVEX, or
// XOP prefix, the escape bytes, and the
// opcode byte.
func (d *decoder) readOpcode() error {
	b, _ := d.peek(0)
	switch b {
	case 0xc4, 0xc5, 0x62:
		// Outside 64-bit mode these are
		// LES, LDS, and BOUND unless the
		// next byte looks like a register
		// ModR/M.
		if d.mode != 64 {
			next, ok := d.peek(1)
			if !ok {
				return d.errShort()
			}

			if x86.ModRM(next).Mod() != 0b11 {
				break
			}
		}

		return d.readVEX(b)
	case 0x8f:
		// POP r/m uses a reg field of zero,
		// which is never a valid XOP map.
		next, ok := d.peek(1)
		if !ok {
			return d.errShort()
		}

		if next&0b1_1111 >= 8 {
			return d.readVEX(b)
		}
	}

	d.space = x86.SpaceLegacy
	d.opMap = x86.Map0
	op, err := d.readByte()
	if err != nil {
		return err
	}

	if op == 0x0f {
		op, err = d.readByte()
		if err != nil {
			return err
		}

		switch op {
		case 0x38:
			d.opMap = x86.Map0F38
			op, err = d.readByte()
		case 0x3a:
			d.opMap = x86.Map0F3A
			op, err = d.readByte()
		case 0x0f:
			// 3DNow! is not supported.
			return ErrGeneralError
		default:
			d.opMap = x86.Map0F
		}

		if err != nil {
			return err
		}
	}

	if d.hasREX {
		d.r = bit(d.rex.R())
		d.x = bit(d.rex.X())
		d.b = bit(d.rex.B())
	}

	d.opcode = op

	return nil
}

// readVEX consumes a VEX, EVEX, or XOP
// prefix, starting with its escape byte,
// followed by the opcode byte.
func (d *decoder) readVEX(escape byte) error {
	switch {
	case d.lock:
		return ErrBadLockPrefix
	case d.osz || d.rep != 0:
		return ErrBadLegacyPrefix
	case d.hasREX:
		return ErrBadRexPrefix
	}

	d.s.Skip(1)
	long := d.mode == 64
	switch escape {
	case 0xc5:
		p0, err := d.readByte()
		if err != nil {
			return err
		}

		d.space = x86.SpaceVEX
		d.vex = x86.VEX2(p0)
		d.opMap = x86.Map0F
	case 0xc4, 0x8f:
		var p []byte
		if !d.s.ReadBytes(&p, 2) {
			return d.errShort()
		}

		d.space = x86.SpaceVEX
		if escape == 0x8f {
			d.space = x86.SpaceXOP
		}

		d.vex = x86.VEX{p[0], p[1]}
		d.opMap = x86.Map(d.vex.M_MMMM())
		if !d.opMap.ValidFor(d.space) {
			return ErrBadMap
		}
	case 0x62:
		var p []byte
		if !d.s.ReadBytes(&p, 3) {
			return d.errShort()
		}

		d.space = x86.SpaceEVEX
		d.evex = x86.EVEX{p[0], p[1], p[2]}
		if !d.evex.On() {
			return ErrGeneralError
		}

		d.opMap = x86.Map(d.evex.MMM())
		if !d.opMap.ValidFor(d.space) {
			return ErrBadMap
		}
	}

	// The extension bits are stored
	// inverted.
	if d.space == x86.SpaceEVEX {
		d.vvvv = ^d.evex.VVVV() & 0b1111
		if long {
			d.r = bit(!d.evex.R())
			d.x = bit(!d.evex.X())
			d.b = bit(!d.evex.B())
			d.rp = bit(!d.evex.Rp())
			d.vp = bit(!d.evex.Vp())
			d.vvvv |= d.vp << 4
		}
	} else {
		d.vvvv = ^d.vex.VVVV() & 0b1111
		if long {
			d.r = bit(!d.vex.R())
			d.x = bit(!d.vex.X())
			d.b = bit(!d.vex.B())
		}
	}

	if !long {
		d.vvvv &= 0b111
	}

	op, err := d.readByte()
	if err != nil {
		return err
	}

	d.opcode = op

	return nil
}

// Reasons a form does not match.
type mismatch uint8

const (
	matched mismatch = iota
	mismatchForm
	mismatchShort // The ModR/M byte is missing.
	mismatchLL    // EVEX.L'L is 0b11.
	mismatchMode  // The form is invalid in this mode.
)

// selectForm chooses the first candidate
// form that matches the instruction.
func (d *decoder) selectForm() error {
	forms := tables.candidates[candidateKey{d.space, d.opMap, d.opcode}]
	if len(forms) == 0 {
		return ErrGeneralError
	}

	// Peek at the ModR/M byte, if the
	// opcode has one.
	for _, f := range forms {
		if f.encoding.ModRM {
			d.modrm = x86.ModRM(d.peekOr(0))
			_, d.hasModRM = d.peek(0)
			break
		}
	}

	var short, ll, mode bool
	for _, f := range forms {
		switch d.match(f) {
		case matched:
			d.form = f
			d.sizes = d.sizesFor(f)
			d.vl = d.vectorLength(f)
			return nil
		case mismatchShort:
			short = true
		case mismatchLL:
			ll = true
		case mismatchMode:
			mode = true
		}
	}

	switch {
	case short:
		return d.errShort()
	case ll:
		return ErrBadEvexLl
	case mode:
		return ErrInvalidMode
	}

	return ErrGeneralError
}

func (d *decoder) peekOr(i int) byte {
	b, _ := d.peek(i)
	return b
}

// register reports whether the ModR/M
// byte selects a register.
func (d *decoder) register() bool {
	return d.hasModRM && d.modrm.Mod() == 0b11
}

func (d *decoder) match(f *Form) mismatch {
	enc := f.encoding
	if enc.ModRM {
		if !d.hasModRM {
			return mismatchShort
		}

		switch mod := d.modrm.Mod(); enc.ModRMmod {
		case 0:
		case x86.ModRMmodNotRegister:
			if mod == 0b11 {
				return mismatchForm
			}
		default:
			if mod != enc.ModRMmod-1 {
				return mismatchForm
			}
		}

		if enc.ModRMreg != 0 && d.modrm.Reg() != enc.ModRMreg-1 {
			return mismatchForm
		}

		if enc.ModRMrm != 0 && !enc.StackIndex && d.modrm.RM() != enc.ModRMrm-1 {
			return mismatchForm
		}
	}

	switch d.space {
	case x86.SpaceLegacy:
		switch prefix := enc.MandatoryPrefix(); prefix {
		case x86.PrefixRepeat, x86.PrefixRepeatNot:
			if d.rep != prefix {
				return mismatchForm
			}
		case x86.PrefixOperandSize:
			if !d.osz || d.rep != 0 {
				return mismatchForm
			}
		default:
			if enc.NoVEXPrefixes && (d.osz || d.rep != 0) {
				return mismatchForm
			}
		}

		if enc.REX_W && !d.rex.W() {
			return mismatchForm
		}

		if enc.NoREX_B && d.rex.B() {
			return mismatchForm
		}
	case x86.SpaceVEX, x86.SpaceXOP:
		if d.vex.PP() != enc.VEXpp {
			return mismatchForm
		}

		if !enc.VEX_WIG && d.vex.W() != enc.VEX_W {
			return mismatchForm
		}

		if !enc.VEX_LIG && d.vex.L() != enc.VEX_L {
			return mismatchForm
		}
	case x86.SpaceEVEX:
		if d.evex.PP() != enc.VEXpp {
			return mismatchForm
		}

		if !enc.VEX_WIG && d.evex.W() != enc.VEX_W {
			return mismatchForm
		}

		if !enc.VEX_LIG {
			ll := d.evex.LL()
			if d.evex.Br() && d.register() && f.hasRounding {
				ll = 0b10
			}

			if ll == 0b11 {
				return mismatchLL
			}

			var want byte
			switch {
			case enc.EVEX_Lp:
				want = 0b10
			case enc.VEX_L:
				want = 0b01
			}

			if ll != want {
				return mismatchForm
			}
		}

		if d.evex.Br() {
			if d.register() && !f.hasRounding {
				return mismatchForm
			}

			if !d.register() && !f.hasBroadcast {
				return mismatchForm
			}
		}

		if d.evex.AAA() != 0 && !enc.Mask {
			return mismatchForm
		}
	}

	s := d.sizesFor(f)
	if enc.OperandSize != 0 && s.eosz != int(enc.OperandSize) {
		return mismatchForm
	}

	if enc.AddressSize != 0 && s.easz != int(enc.AddressSize) {
		return mismatchForm
	}

	if !f.modes.has(d.mode) {
		return mismatchMode
	}

	return matched
}

// sizesFor returns the effective sizes
// the form would have.
func (d *decoder) sizesFor(f *Form) sizes {
	s := sizes{
		stack: int(d.state.width),
		mode:  d.mode,
	}

	// A mandatory 66 prefix does not
	// change the operand size.
	osz := d.osz && f.encoding.MandatoryPrefix() != x86.PrefixOperandSize
	switch {
	case d.space != x86.SpaceLegacy:
		s.eosz = 32
		if d.mode == 64 && d.vexW() {
			s.eosz = 64
		}
	case d.mode == 64:
		switch {
		case d.rex.W(), f.Has(AttrForce64):
			s.eosz = 64
		case osz:
			s.eosz = 16
		case f.Has(AttrDefault64):
			s.eosz = 64
		default:
			s.eosz = 32
		}
	case d.mode == 32:
		s.eosz = 32
		if osz {
			s.eosz = 16
		}
	default:
		s.eosz = 16
		if osz {
			s.eosz = 32
		}
	}

	switch d.mode {
	case 64:
		s.easz = 64
		if d.asz {
			s.easz = 32
		}
	case 32:
		s.easz = 32
		if d.asz {
			s.easz = 16
		}
	default:
		s.easz = 16
		if d.asz {
			s.easz = 32
		}
	}

	return s
}

func (d *decoder) vexW() bool {
	if d.space == x86.SpaceEVEX {
		return d.evex.W()
	}

	return d.vex.W()
}

// vectorLength returns the vector length
// in bits, or zero for instructions with
// no vector operands.
func (d *decoder) vectorLength(f *Form) int {
	switch d.space {
	case x86.SpaceVEX, x86.SpaceXOP:
		if d.vex.L() {
			return 256
		}

		return 128
	case x86.SpaceEVEX:
		if d.evex.Br() && d.register() && f.hasRounding {
			return 512
		}

		switch d.evex.LL() {
		case 0b00:
			return 128
		case 0b01:
			return 256
		}

		return 512
	}

	if f.hasVector {
		return 128
	}

	return 0
}

// checkPrefixes rejects prefix combinations
// the chosen form does not allow.
func (d *decoder) checkPrefixes() error {
	f := d.form
	if d.lock && !f.Has(AttrLockable) {
		return ErrBadLockPrefix
	}

	if f.encoding.NoRepPrefixes && d.rep != 0 {
		return ErrBadRepPrefix
	}

	if d.space != x86.SpaceEVEX {
		return nil
	}

	if d.evex.LL() == 0b11 && !(d.evex.Br() && d.register() && f.hasRounding) {
		return ErrBadEvexLl
	}

	if d.evex.Z() && (d.evex.AAA() == 0 || !f.encoding.Zero) {
		return ErrBadEvexZNoMasking
	}

	// EVEX.V' is stored inverted and
	// must be clear unless it extends a
	// register number.
	if !d.evex.Vp() && (d.mode != 64 || (!f.usesVVVV && !f.encoding.VSIB)) {
		return ErrBadEvexVPrime
	}

	return nil
}

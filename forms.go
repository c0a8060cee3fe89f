// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package xed

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"firefly-os.dev/xed/x86"
)

// IClass is an instruction class, such
// as ADD. The zero IClass is invalid.
type IClass uint16

func (c IClass) String() string {
	EnsureTablesReady()
	return enumName(tables.iclassNames, c, "IClass")
}

// IClassFromInt converts v to an instruction
// class, checking that it is in range.
func IClassFromInt(v int) (IClass, error) {
	EnsureTablesReady()
	return enumFromInt(v, 0, IClass(len(tables.iclassNames)), "IClass")
}

// IClassByName returns the instruction
// class with the given name, such as
// "LZCNT".
func IClassByName(name string) (IClass, bool) {
	EnsureTablesReady()
	c, ok := tables.iclasses[name]
	return c, ok
}

// IClasses returns every valid instruction
// class, in ascending order.
func IClasses() []IClass {
	EnsureTablesReady()
	out := make([]IClass, 0, len(tables.iclassNames)-1)
	for c := 1; c < len(tables.iclassNames); c++ {
		out = append(out, IClass(c))
	}

	return out
}

// MaxIForm returns the number of instruction
// forms in the instruction class.
func (c IClass) MaxIForm() int {
	EnsureTablesReady()
	if int(c) >= len(tables.formsByIClass) {
		return 0
	}

	return len(tables.formsByIClass[c])
}

// Forms returns the instruction forms in
// the instruction class, in dispatch order.
func (c IClass) Forms() []*Form {
	EnsureTablesReady()
	if int(c) >= len(tables.formsByIClass) {
		return nil
	}

	return tables.formsByIClass[c]
}

// IForm is an instruction form, such as
// LZCNT_GPRv_MEMv. The zero IForm is
// invalid.
type IForm uint16

func (f IForm) String() string {
	EnsureTablesReady()
	return enumName(tables.iformNames, f, "IForm")
}

// IFormFromInt converts v to an instruction
// form, checking that it is in range.
func IFormFromInt(v int) (IForm, error) {
	EnsureTablesReady()
	return enumFromInt(v, 0, IForm(len(tables.iformNames)), "IForm")
}

// IFormByName returns the instruction form
// with the given name.
func IFormByName(name string) (IForm, bool) {
	EnsureTablesReady()
	f, ok := tables.iforms[name]
	return f, ok
}

// Form returns the instruction form's
// description, or nil if the form is
// invalid.
func (f IForm) Form() *Form {
	EnsureTablesReady()
	if f == 0 || int(f) >= len(tables.forms) {
		return nil
	}

	return tables.forms[f]
}

// Category returns the category of the
// instruction form.
func (f IForm) Category() Category {
	if form := f.Form(); form != nil {
		return form.category
	}

	return CategoryInvalid
}

// ISASet returns the ISA set of the
// instruction form.
func (f IForm) ISASet() ISASet {
	if form := f.Form(); form != nil {
		return form.isa
	}

	return ISASetInvalid
}

// Forms returns every instruction form,
// ordered by IForm.
func Forms() []*Form {
	EnsureTablesReady()
	return tables.forms[1:]
}

// modeSet is a set of code sizes in
// which a form is valid.
type modeSet uint8

const (
	mode16 modeSet = 1 << iota
	mode32
	mode64

	modesAll    = mode16 | mode32 | mode64
	modesNot64  = mode16 | mode32
	modesOnly64 = mode64
)

func (s modeSet) has(codeSize int) bool {
	switch codeSize {
	case 16:
		return s&mode16 != 0
	case 32:
		return s&mode32 != 0
	case 64:
		return s&mode64 != 0
	}

	return false
}

func (s modeSet) String() string {
	var out []string
	for _, size := range []int{16, 32, 64} {
		if s.has(size) {
			out = append(out, fmt.Sprintf("m%d", size))
		}
	}

	return strings.Join(out, "|")
}

// Form describes one decodable shape of
// an instruction. Forms are shared by all
// decoded instructions and are read-only.
type Form struct {
	iclass    IClass
	iform     IForm
	dispatch  int
	category  Category
	extension Extension
	isa       ISASet
	modes     modeSet
	encoding  *x86.Encoding
	operands  []*Operand
	attrs     Attributes
	flags     *SimpleFlag

	// Derived from the operands.
	usesVVVV     bool
	usesModRM    bool
	hasMemory    bool
	hasMask      bool
	hasRounding  bool
	hasBroadcast bool
	hasVector    bool
	immediates   int
	destElements int
}

func (f *Form) IClass() IClass             { return f.iclass }
func (f *Form) IForm() IForm               { return f.iform }
func (f *Form) Dispatch() int              { return f.dispatch }
func (f *Form) Category() Category         { return f.category }
func (f *Form) Extension() Extension       { return f.extension }
func (f *Form) ISASet() ISASet             { return f.isa }
func (f *Form) Attributes() Attributes     { return f.attrs }
func (f *Form) Operands() []*Operand       { return f.operands }
func (f *Form) Encoding() *x86.Encoding    { return f.encoding }
func (f *Form) Has(attr Attribute) bool    { return f.attrs.Has(attr) }
func (f *Form) ValidIn(m MachineMode) bool { return f.modes.has(m.CodeSize()) }

// Operand returns the i'th operand
// template, if it exists.
func (f *Form) Operand(i int) (*Operand, bool) {
	if i < 0 || i >= len(f.operands) {
		return nil, false
	}

	return f.operands[i], true
}

// Flags returns the form's effect on the
// flags, if it has any.
func (f *Form) Flags() (*SimpleFlag, bool) {
	return f.flags, f.flags != nil
}

func (f *Form) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s %s [%s]", f.iform, f.category, f.extension, f.isa, f.modes, f.encoding.Syntax)
	for _, op := range f.operands {
		b.WriteByte(' ')
		b.WriteString(op.String())
	}

	return b.String()
}

// candidateKey identifies the forms that
// share an opcode.
type candidateKey struct {
	space  x86.Space
	opMap  x86.Map
	opcode byte
}

// tables holds the instruction form data,
// populated by EnsureTablesReady.
var tables struct {
	once sync.Once

	forms         []*Form // Indexed by IForm.
	iformNames    []string
	iforms        map[string]IForm
	iclassNames   []string
	iclasses      map[string]IClass
	formsByIClass [][]*Form
	candidates    map[candidateKey][]*Form
	chips         [chipCount]FeatureMask
}

// EnsureTablesReady populates the instruction
// form tables. It is safe to call any number
// of times from any number of goroutines, and
// returns once the tables are ready.
//
// EnsureTablesReady panics if the table data
// is malformed.
func EnsureTablesReady() {
	tables.once.Do(func() {
		err := buildTables(formRows())
		if err != nil {
			panic("xed: " + err.Error())
		}

		tables.chips, err = loadChips(chipsTOML)
		if err != nil {
			panic("xed: " + err.Error())
		}
	})
}

// formRow is one entry in the instruction
// form table, before expansion.
//
// Rows with a combined register or memory
// operand, such as "r/mv", expand into
// a register form and a memory form. The
// "*" in the iform name is replaced with
// the name of the operand chosen.
type formRow struct {
	iclass    string
	iform     string
	category  Category
	extension Extension
	isa       ISASet
	modes     modeSet
	encoding  string
	operands  string
	attrs     Attributes
	flags     string
}

// formVariant is one form produced by
// expanding a row.
type formVariant struct {
	row      *formRow
	iform    string
	encoding x86.Encoding
	operands []string
	attrs    Attributes
}

// memoryAttrs only apply to memory forms.
var memoryAttrs = attrs(AttrLockable, AttrLocked, AttrHLEAcqAble, AttrHLERelAble)

// expandRow splits a row into its
// register and memory variants.
func expandRow(row *formRow) ([]formVariant, error) {
	enc, err := x86.ParseEncoding(row.encoding)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(row.operands)
	combined := -1
	var reg, mem string
	for i, token := range tokens {
		syntax, mods, _ := strings.Cut(token, ":")
		r, m, ok := splitCombined(syntax)
		if !ok {
			continue
		}

		if combined >= 0 {
			return nil, fmt.Errorf("multiple register or memory operands")
		}

		combined = i
		reg, mem = r, m
		if mods != "" {
			reg += ":" + mods
			mem += ":" + mods
		}
	}

	hasStar := strings.Contains(row.iform, "*")
	if combined < 0 {
		if hasStar {
			return nil, fmt.Errorf("iform %q has a placeholder but no register or memory operand", row.iform)
		}

		v := formVariant{row: row, iform: row.iform, encoding: *enc, operands: tokens, attrs: row.attrs}
		return []formVariant{v}, nil
	}

	if !hasStar {
		return nil, fmt.Errorf("iform %q has no placeholder for its register or memory operand", row.iform)
	}

	if enc.ModRMmod != 0 {
		return nil, fmt.Errorf("register or memory operand with a fixed ModR/M.mod")
	}

	regName, err := iformOperandName(reg)
	if err != nil {
		return nil, err
	}

	memName, err := iformOperandName(mem)
	if err != nil {
		return nil, err
	}

	regTokens := append([]string(nil), tokens...)
	regTokens[combined] = reg
	regEnc := *enc
	regEnc.ModRMmod = 0b11 + 1

	memTokens := append([]string(nil), tokens...)
	memTokens[combined] = mem
	memEnc := *enc
	memEnc.ModRMmod = x86.ModRMmodNotRegister

	out := []formVariant{
		{row: row, iform: strings.Replace(row.iform, "*", regName, 1), encoding: regEnc, operands: regTokens, attrs: row.attrs &^ memoryAttrs},
		{row: row, iform: strings.Replace(row.iform, "*", memName, 1), encoding: memEnc, operands: memTokens, attrs: row.attrs},
	}

	return out, nil
}

// splitCombined splits a combined register
// or memory syntax, such as "xmm2/m128" or
// "r/mv", into its register and memory
// syntaxes.
func splitCombined(syntax string) (reg, mem string, ok bool) {
	if rest, ok := strings.CutPrefix(syntax, "r/m"); ok {
		return "rmr" + rest, "m" + rest, true
	}

	reg, mem, ok = strings.Cut(syntax, "/")
	if !ok || (strings.HasPrefix(reg, "m") && !strings.HasPrefix(reg, "mm")) {
		return "", "", false
	}

	return reg, mem, true
}

// iformOperandName returns the name used
// in iforms for a register or memory
// operand.
func iformOperandName(token string) (string, error) {
	syntax, _, _ := strings.Cut(token, ":")
	if rest, ok := strings.CutPrefix(syntax, "rmr"); ok {
		return "GPR" + rest, nil
	}

	for _, prefix := range []string{"xmm", "ymm", "zmm", "mm", "k"} {
		if strings.HasPrefix(syntax, prefix) {
			return registerIFormNames[prefix], nil
		}
	}

	if rest, ok := strings.CutPrefix(syntax, "m"); ok {
		rest, _, _ = strings.Cut(rest, "/")
		if name, ok := memoryIFormNames[rest]; ok {
			return "MEM" + name, nil
		}
	}

	return "", fmt.Errorf("invalid register or memory operand %q", syntax)
}

var registerIFormNames = map[string]string{
	"xmm": "XMMdq",
	"ymm": "YMMqq",
	"zmm": "ZMMz",
	"mm":  "MMXq",
	"k":   "MASKmskw",
}

var memoryIFormNames = map[string]string{
	"8":   "b",
	"16":  "w",
	"32":  "d",
	"64":  "q",
	"80":  "t",
	"128": "dq",
	"256": "qq",
	"512": "z",
	"v":   "v",
	"y":   "y",
	"z":   "z",
}

// buildForm parses a form variant.
func buildForm(v *formVariant) (*Form, error) {
	enc := v.encoding
	f := &Form{
		category:  v.row.category,
		extension: v.row.extension,
		isa:       v.row.isa,
		modes:     v.row.modes,
		encoding:  &enc,
		attrs:     v.attrs,
	}

	if v.row.flags != "" {
		flags, err := ParseSimpleFlag(v.row.flags)
		if err != nil {
			return nil, err
		}

		f.flags = flags
	}

	ops := append([]string(nil), v.operands...)
	if f.flags != nil && !f.flags.x87Only() && !strings.Contains(v.row.operands, "rFLAGS") {
		ops = append(ops, "rFLAGS:"+flagsAction(f.flags).String()+":supp")
	}

	if len(ops) > MaxOperands {
		return nil, fmt.Errorf("%d operands exceeds the maximum of %d", len(ops), MaxOperands)
	}

	var regs, mems, imms int
	for _, token := range ops {
		op, err := parseOperand(token)
		if err != nil {
			return nil, err
		}

		switch op.kind {
		case kindMemory, kindVSIB, kindMoffs, kindString, kindStack:
			if mems == 2 {
				return nil, fmt.Errorf("too many memory operands")
			}

			op.name = OperandMem0 + OperandName(mems)
			mems++
			f.hasMemory = true
		case kindAgen:
			if mems == 2 {
				return nil, fmt.Errorf("too many memory operands")
			}

			op.name = OperandAgen
			mems++
		case kindImm, kindImmConst:
			if imms == 2 {
				return nil, fmt.Errorf("too many immediate operands")
			}

			op.name = OperandImm0 + OperandName(imms)
			imms++
			if op.kind == kindImm {
				f.immediates++
			}
		case kindRelbr:
			op.name = OperandRelbr
		default:
			op.name = OperandReg0 + OperandName(regs)
			regs++
		}

		switch op.encoding {
		case EncodingVEXvvvv:
			f.usesVVVV = true
		case EncodingModRMreg, EncodingModRMrm, EncodingStackIndex, EncodingSIB:
			f.usesModRM = true
		case EncodingEVEXaaa:
			f.hasMask = true
		}

		if op.bcstBits != 0 {
			f.hasBroadcast = true
		}

		if op.kind == kindVector {
			f.hasVector = true
		}

		if op.kind == kindVSIB && !enc.VSIB {
			return nil, fmt.Errorf("vector SIB operand without /vsib")
		}

		f.operands = append(f.operands, op)
	}

	if f.usesModRM && !enc.ModRM {
		return nil, fmt.Errorf("ModR/M operand without a ModR/M encoding")
	}

	// Constrain ModR/M.mod for forms
	// that use only one kind of r/m.
	if enc.ModRMmod == 0 && enc.ModRM {
		for _, op := range f.operands {
			switch {
			case op.kind == kindMemory || op.kind == kindVSIB || op.kind == kindAgen:
				enc.ModRMmod = x86.ModRMmodNotRegister
			case op.encoding == EncodingModRMrm:
				enc.ModRMmod = 0b11 + 1
			}
		}
	}

	if enc.Mask && !f.hasMask {
		return nil, fmt.Errorf("{k} encoding without a {k} operand")
	}

	f.hasRounding = enc.Rounding || enc.Suppress
	if len(f.operands) == 0 {
		return f, nil
	}

	dst := f.operands[0]
	if dst.kind == kindVector && dst.elemBits != 0 {
		f.destElements = dst.bits / dst.elemBits
	}

	// A gather loads no more elements
	// than its destination holds.
	for _, op := range f.operands {
		if op.kind == kindVSIB && dst.kind == kindVector && op.bits > dst.bits {
			op.bits = dst.bits
		}
	}

	if dst.width == widthFixed && dst.bits == 8 && enc.Space == x86.SpaceLegacy {
		switch dst.kind {
		case kindGPR, kindMemory, kindFixed, kindString:
			f.attrs |= attrs(AttrByteOp)
		}
	}

	return f, nil
}

// flagsAction returns the action on the
// flags register implied by a flag effect.
func flagsAction(f *SimpleFlag) Action {
	switch {
	case f.ReadsFlags() && f.WritesFlags() && f.MayWrite():
		return ActionRCW
	case f.ReadsFlags() && f.WritesFlags():
		return ActionRW
	case f.WritesFlags() && f.MayWrite():
		return ActionCW
	case f.WritesFlags():
		return ActionW
	}

	return ActionR
}

// buildTables expands, parses, and indexes
// the form table.
func buildTables(rows []formRow) error {
	type built struct {
		form   *Form
		iclass string
		iform  string
	}

	var all []built
	seen := make(map[string]bool)
	for i := range rows {
		row := &rows[i]
		variants, err := expandRow(row)
		if err != nil {
			return fmt.Errorf("invalid form %s (%s): %v", row.iform, row.encoding, err)
		}

		for j := range variants {
			v := &variants[j]
			form, err := buildForm(v)
			if err != nil {
				return fmt.Errorf("invalid form %s (%s): %v", v.iform, row.encoding, err)
			}

			name := v.iform
			if seen[name] {
				name = fmt.Sprintf("%s_%02X", name, form.encoding.Opcode)
			}

			if seen[name] {
				return fmt.Errorf("invalid form %s (%s): duplicate iform", name, row.encoding)
			}

			seen[name] = true
			all = append(all, built{form: form, iclass: row.iclass, iform: name})
		}
	}

	// Intern the names in sorted order.
	iclassNames := []string{"INVALID"}
	iformNames := []string{"INVALID"}
	iclasses := make(map[string]IClass)
	iforms := make(map[string]IForm)
	for _, b := range all {
		if _, ok := iclasses[b.iclass]; !ok {
			iclasses[b.iclass] = 0
			iclassNames = append(iclassNames, b.iclass)
		}

		iformNames = append(iformNames, b.iform)
	}

	sort.Strings(iclassNames[1:])
	sort.Strings(iformNames[1:])
	for i, name := range iclassNames[1:] {
		iclasses[name] = IClass(i + 1)
	}

	for i, name := range iformNames[1:] {
		iforms[name] = IForm(i + 1)
	}

	forms := make([]*Form, len(iformNames))
	formsByIClass := make([][]*Form, len(iclassNames))
	candidates := make(map[candidateKey][]*Form)
	for _, b := range all {
		form := b.form
		form.iclass = iclasses[b.iclass]
		form.iform = iforms[b.iform]
		form.dispatch = len(formsByIClass[form.iclass])
		forms[form.iform] = form
		formsByIClass[form.iclass] = append(formsByIClass[form.iclass], form)

		enc := form.encoding
		key := candidateKey{space: enc.Space, opMap: enc.Map, opcode: enc.Opcode}
		if !enc.RegisterModifier {
			candidates[key] = append(candidates[key], form)
			continue
		}

		if enc.Opcode&0b111 != 0 {
			return fmt.Errorf("invalid form %s (%s): register modifier on opcode %#02x", b.iform, enc.Syntax, enc.Opcode)
		}

		for i := byte(0); i < 8; i++ {
			key.opcode = enc.Opcode + i
			candidates[key] = append(candidates[key], form)
		}
	}

	for _, list := range candidates {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].encoding.Specificity() > list[j].encoding.Specificity()
		})
	}

	tables.forms = forms
	tables.iformNames = iformNames
	tables.iforms = iforms
	tables.iclassNames = iclassNames
	tables.iclasses = iclasses
	tables.formsByIClass = formsByIClass
	tables.candidates = candidates

	return nil
}

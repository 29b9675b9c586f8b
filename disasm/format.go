// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

// Format is one of the Dalvik instruction encoding formats. Every format
// reports its length in 16-bit code units; branch-carrying formats also
// report their signed branch offset (in code units, relative to the
// instruction address).
type Format interface {
	// Len returns the instruction length in 16-bit code units.
	Len() int
	// BranchOffset returns the signed branch offset carried by the
	// format, and whether the format carries one at all.
	BranchOffset() (int32, bool)
}

// F10x is a single code unit with no arguments (nop, return-void).
type F10x struct{}

// F12x carries two 4-bit register numbers.
type F12x struct {
	VA uint8
	VB uint8
}

// F11n carries a 4-bit register and a signed 4-bit literal.
type F11n struct {
	VA      uint8
	Literal int8
}

// F11x carries a single 8-bit register.
type F11x struct {
	VA uint8
}

// F10t is an unconditional branch with a signed 8-bit offset.
type F10t struct {
	Offset int8
}

// F20t is an unconditional branch with a signed 16-bit offset.
type F20t struct {
	Offset int16
}

// F20bc carries an 8-bit verification error kind and a 16-bit index.
// It appears only in optimized DEX variants, never in the table of
// decodable opcodes.
type F20bc struct {
	VA  uint8
	Idx uint16
}

// F22x carries an 8-bit and a 16-bit register number.
type F22x struct {
	VA uint8
	VB uint16
}

// F21t is a one-register conditional branch with a signed 16-bit offset.
type F21t struct {
	VA     uint8
	Offset int16
}

// F21s carries an 8-bit register and a signed 16-bit literal.
type F21s struct {
	VA      uint8
	Literal int16
}

// F21h carries an 8-bit register and a signed 16-bit literal that is
// shifted into the high bits of the destination.
type F21h struct {
	VA      uint8
	Literal int16
}

// F21c carries an 8-bit register and a 16-bit constant-pool index
// (string, type, field, method handle or method type).
type F21c struct {
	VA  uint8
	Idx uint16
}

// F23x carries three 8-bit registers.
type F23x struct {
	VA uint8
	VB uint8
	VC uint8
}

// F22b carries two 8-bit registers and a signed 8-bit literal.
type F22b struct {
	VA      uint8
	VB      uint8
	Literal int8
}

// F22t is a two-register conditional branch with a signed 16-bit offset.
type F22t struct {
	VA     uint8
	VB     uint8
	Offset int16
}

// F22s carries two 4-bit registers and a signed 16-bit literal.
type F22s struct {
	VA      uint8
	VB      uint8
	Literal int16
}

// F22c carries two 4-bit registers and a 16-bit constant-pool index
// (type or instance field).
type F22c struct {
	VA  uint8
	VB  uint8
	Idx uint16
}

// F22cs is the optimized-DEX sibling of F22c carrying a field byte
// offset.
type F22cs struct {
	VA  uint8
	VB  uint8
	Idx uint16
}

// F30t is an unconditional branch with a signed 32-bit offset.
type F30t struct {
	Offset int32
}

// F32x carries two 16-bit register numbers.
type F32x struct {
	VA uint16
	VB uint16
}

// F31i carries an 8-bit register and a 32-bit literal.
type F31i struct {
	VA      uint8
	Literal int32
}

// F31t carries an 8-bit register and a signed 32-bit offset; it is the
// origin format of the switch and fill-array-data payload references.
type F31t struct {
	VA     uint8
	Offset int32
}

// F31c carries an 8-bit register and a 32-bit string index.
type F31c struct {
	VA  uint8
	Idx uint32
}

// F35c is the five-register argument-list call format; Args holds the
// C..G register nibbles, of which the first Argc are meaningful.
type F35c struct {
	Argc uint8
	Args [5]uint8
	Idx  uint16
}

// F35ms and F35mi are optimized-DEX siblings of F35c (vtable and inline
// indices).
type F35ms struct {
	Argc uint8
	Args [5]uint8
	Idx  uint16
}

type F35mi struct {
	Argc uint8
	Args [5]uint8
	Idx  uint16
}

// F3rc is the register-range call format: Argc consecutive registers
// starting at First.
type F3rc struct {
	Argc  uint8
	First uint16
	Idx   uint16
}

// F3rms and F3rmi are optimized-DEX siblings of F3rc.
type F3rms struct {
	Argc  uint8
	First uint16
	Idx   uint16
}

type F3rmi struct {
	Argc  uint8
	First uint16
	Idx   uint16
}

// F45cc is the invoke-polymorphic format: argument registers plus a
// method index and a prototype index.
type F45cc struct {
	Argc  uint8
	VG    uint8
	Args  [5]uint8
	Meth  uint16
	Proto uint16
}

// F4rcc is the register-range form of F45cc.
type F4rcc struct {
	Argc  uint8
	First uint16
	Meth  uint16
	Proto uint16
}

// F51l carries an 8-bit register and a 64-bit literal.
type F51l struct {
	VA      uint8
	Literal int64
}

func (F10x) Len() int  { return 1 }
func (F12x) Len() int  { return 1 }
func (F11n) Len() int  { return 1 }
func (F11x) Len() int  { return 1 }
func (F10t) Len() int  { return 1 }
func (F20t) Len() int  { return 2 }
func (F20bc) Len() int { return 2 }
func (F22x) Len() int  { return 2 }
func (F21t) Len() int  { return 2 }
func (F21s) Len() int  { return 2 }
func (F21h) Len() int  { return 2 }
func (F21c) Len() int  { return 2 }
func (F23x) Len() int  { return 2 }
func (F22b) Len() int  { return 2 }
func (F22t) Len() int  { return 2 }
func (F22s) Len() int  { return 2 }
func (F22c) Len() int  { return 2 }
func (F22cs) Len() int { return 2 }
func (F30t) Len() int  { return 3 }
func (F32x) Len() int  { return 3 }
func (F31i) Len() int  { return 3 }
func (F31t) Len() int  { return 3 }
func (F31c) Len() int  { return 3 }
func (F35c) Len() int  { return 3 }
func (F35ms) Len() int { return 3 }
func (F35mi) Len() int { return 3 }
func (F3rc) Len() int  { return 3 }
func (F3rms) Len() int { return 3 }
func (F3rmi) Len() int { return 3 }
func (F45cc) Len() int { return 4 }
func (F4rcc) Len() int { return 4 }
func (F51l) Len() int  { return 5 }

func (f F10t) BranchOffset() (int32, bool) { return int32(f.Offset), true }
func (f F20t) BranchOffset() (int32, bool) { return int32(f.Offset), true }
func (f F21t) BranchOffset() (int32, bool) { return int32(f.Offset), true }
func (f F22t) BranchOffset() (int32, bool) { return int32(f.Offset), true }
func (f F30t) BranchOffset() (int32, bool) { return f.Offset, true }
func (f F31t) BranchOffset() (int32, bool) { return f.Offset, true }

func (F10x) BranchOffset() (int32, bool)  { return 0, false }
func (F12x) BranchOffset() (int32, bool)  { return 0, false }
func (F11n) BranchOffset() (int32, bool)  { return 0, false }
func (F11x) BranchOffset() (int32, bool)  { return 0, false }
func (F20bc) BranchOffset() (int32, bool) { return 0, false }
func (F22x) BranchOffset() (int32, bool)  { return 0, false }
func (F21s) BranchOffset() (int32, bool)  { return 0, false }
func (F21h) BranchOffset() (int32, bool)  { return 0, false }
func (F21c) BranchOffset() (int32, bool)  { return 0, false }
func (F23x) BranchOffset() (int32, bool)  { return 0, false }
func (F22b) BranchOffset() (int32, bool)  { return 0, false }
func (F22s) BranchOffset() (int32, bool)  { return 0, false }
func (F22c) BranchOffset() (int32, bool)  { return 0, false }
func (F22cs) BranchOffset() (int32, bool) { return 0, false }
func (F32x) BranchOffset() (int32, bool)  { return 0, false }
func (F31i) BranchOffset() (int32, bool)  { return 0, false }
func (F31c) BranchOffset() (int32, bool)  { return 0, false }
func (F35c) BranchOffset() (int32, bool)  { return 0, false }
func (F35ms) BranchOffset() (int32, bool) { return 0, false }
func (F35mi) BranchOffset() (int32, bool) { return 0, false }
func (F3rc) BranchOffset() (int32, bool)  { return 0, false }
func (F3rms) BranchOffset() (int32, bool) { return 0, false }
func (F3rmi) BranchOffset() (int32, bool) { return 0, false }
func (F45cc) BranchOffset() (int32, bool) { return 0, false }
func (F4rcc) BranchOffset() (int32, bool) { return 0, false }
func (F51l) BranchOffset() (int32, bool)  { return 0, false }

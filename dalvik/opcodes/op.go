// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package opcodes provides the closed table of Dalvik opcodes: every valid
// 8-bit opcode value with its symbolic name and its encoding-format kind.
// The reserved ranges (0x3e-0x43, 0x73, 0x79-0x7a, 0xe3-0xf9) are absent
// from the table; New reports them as invalid.
// https://source.android.com/docs/core/runtime/dalvik-bytecode
package opcodes

import (
	"fmt"
)

// Kind identifies the encoding format of an opcode. The name follows the
// Dalvik convention: code-unit count, register count, extra payload letter.
type Kind uint8

const (
	K10x Kind = iota
	K12x
	K11n
	K11x
	K10t
	K20t
	K22x
	K21t
	K21s
	K21h
	K21c
	K23x
	K22b
	K22t
	K22s
	K22c
	K30t
	K32x
	K31i
	K31t
	K31c
	K35c
	K3rc
	K45cc
	K4rcc
	K51l
)

var kindStrMap = map[Kind]string{
	K10x: "10x", K12x: "12x", K11n: "11n", K11x: "11x", K10t: "10t",
	K20t: "20t", K22x: "22x", K21t: "21t", K21s: "21s", K21h: "21h",
	K21c: "21c", K23x: "23x", K22b: "22b", K22t: "22t", K22s: "22s",
	K22c: "22c", K30t: "30t", K32x: "32x", K31i: "31i", K31t: "31t",
	K31c: "31c", K35c: "35c", K3rc: "3rc", K45cc: "45cc", K4rcc: "4rcc",
	K51l: "51l",
}

func (k Kind) String() string {
	str, ok := kindStrMap[k]
	if !ok {
		str = fmt.Sprintf("<unknown format kind %d>", uint8(k))
	}
	return str
}

// Len returns the instruction length for the format kind, in 16-bit code
// units.
func (k Kind) Len() int {
	switch k {
	case K10x, K12x, K11n, K11x, K10t:
		return 1
	case K20t, K22x, K21t, K21s, K21h, K21c, K23x, K22b, K22t, K22s, K22c:
		return 2
	case K30t, K32x, K31i, K31t, K31c, K35c, K3rc:
		return 3
	case K45cc, K4rcc:
		return 4
	case K51l:
		return 5
	}
	panic(fmt.Sprintf("opcodes: format kind %d has no length", uint8(k)))
}

// Op describes a Dalvik opcode.
type Op struct {
	Code byte
	Name string
	Kind Kind
}

func (o Op) String() string {
	return o.Name
}

// IsValid returns whether o is an opcode present in the table.
func (o Op) IsValid() bool {
	return o.Name != ""
}

// IsInvoke returns whether o references a method through the DEX method
// table: the invoke-kind (0x6e-0x72), invoke-kind/range (0x74-0x78) and
// invoke-polymorphic (0xfa, 0xfb) families.
func (o Op) IsInvoke() bool {
	return (o.Code >= InvokeVirtual && o.Code <= InvokeInterface) ||
		(o.Code >= InvokeVirtualRange && o.Code <= InvokeInterfaceRange) ||
		o.Code == InvokePolymorphic || o.Code == InvokePolymorphicRange
}

var ops [256]Op

func newOp(code byte, name string, kind Kind) byte {
	if ops[code].IsValid() {
		panic(fmt.Sprintf("opcodes: duplicate opcode %#x", code))
	}
	ops[code] = Op{
		Code: code,
		Name: name,
		Kind: kind,
	}
	return code
}

// InvalidOpcodeError is returned by New for reserved or unused opcode
// values.
type InvalidOpcodeError byte

func (e InvalidOpcodeError) Error() string {
	return fmt.Sprintf("opcodes: invalid opcode %#x", byte(e))
}

// New returns the Op description for the given opcode value. It returns an
// InvalidOpcodeError if the value is reserved.
func New(code byte) (Op, error) {
	op := ops[code]
	if !op.IsValid() {
		return op, InvalidOpcodeError(code)
	}
	return op, nil
}

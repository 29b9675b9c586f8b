// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"reflect"
	"testing"

	"github.com/dexflow/dexflow/dalvik/opcodes"
)

func TestDecodeEmptyStream(t *testing.T) {
	ins, n, err := Decode(nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ins != nil || n != 0 {
		t.Fatalf("want nil instruction at end of stream, got %v (len %d)", ins, n)
	}
}

func TestDecodeNop(t *testing.T) {
	ins, n, err := Decode([]uint16{0x0000}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("nop length: got %d, want 1", n)
	}
	reg, ok := ins.(*Regular)
	if !ok {
		t.Fatalf("want Regular, got %T", ins)
	}
	if reg.Op.Code != opcodes.Nop {
		t.Fatalf("want nop, got %s", reg.Op.Name)
	}
	if _, ok := reg.Format.(F10x); !ok {
		t.Fatalf("want F10x, got %T", reg.Format)
	}
}

func TestDecodeBadOpcode(t *testing.T) {
	_, _, err := Decode([]uint16{0x003e}, 0)
	berr, ok := err.(BadOpcodeError)
	if !ok {
		t.Fatalf("want BadOpcodeError, got %v (%T)", err, err)
	}
	if berr.Offset != 0 || berr.Byte != 0x3e {
		t.Fatalf("got %+v, want offset=0 byte=0x3e", berr)
	}
}

func TestDecodeTruncatedInvoke(t *testing.T) {
	_, _, err := Decode([]uint16{0x006e}, 0)
	terr, ok := err.(TooShortError)
	if !ok {
		t.Fatalf("want TooShortError, got %v (%T)", err, err)
	}
	if terr.Op.Code != opcodes.InvokeVirtual {
		t.Fatalf("got opcode %s, want invoke-virtual", terr.Op.Name)
	}
	if terr.Expected != 3 || terr.Actual != 1 {
		t.Fatalf("got expected=%d actual=%d, want 3/1", terr.Expected, terr.Actual)
	}
}

func TestDecodeInvokeVirtual(t *testing.T) {
	ins, n, err := Decode([]uint16{0x006e, 0x0006, 0x0000}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("invoke-virtual length: got %d, want 3", n)
	}
	reg := ins.(*Regular)
	if reg.Op.Code != opcodes.InvokeVirtual {
		t.Fatalf("want invoke-virtual, got %s", reg.Op.Name)
	}
	f, ok := reg.Format.(F35c)
	if !ok {
		t.Fatalf("want F35c, got %T", reg.Format)
	}
	if f.Idx != 6 {
		t.Fatalf("method index: got %d, want 6", f.Idx)
	}
}

func TestDecodeArgRegisters(t *testing.T) {
	// invoke-static {v4, v5, v6, v7, v1}, meth@0023
	// A=5, G=1, word2 nibbles F|E|D|C = 7|6|5|4.
	ins, _, err := Decode([]uint16{0x5171, 0x0023, 0x7654}, 0)
	if err != nil {
		t.Fatal(err)
	}
	f := ins.(*Regular).Format.(F35c)
	if f.Argc != 5 {
		t.Fatalf("argc: got %d, want 5", f.Argc)
	}
	want := [5]uint8{4, 5, 6, 7, 1}
	if f.Args != want {
		t.Fatalf("args: got %v, want %v", f.Args, want)
	}
	if f.Idx != 0x23 {
		t.Fatalf("idx: got %#x, want 0x23", f.Idx)
	}
}

func TestDecodeRangeInvoke(t *testing.T) {
	// invoke-virtual/range {v10 .. v12}, meth@0042
	ins, n, err := Decode([]uint16{0x0374, 0x0042, 0x000a}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("length: got %d, want 3", n)
	}
	f := ins.(*Regular).Format.(F3rc)
	if f.Argc != 3 || f.Idx != 0x42 || f.First != 10 {
		t.Fatalf("got %+v, want argc=3 idx=0x42 first=10", f)
	}
}

func TestDecodePolymorphicInvoke(t *testing.T) {
	ins, n, err := Decode([]uint16{0x04fa, 0x1234, 0x3210, 0x0007}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("length: got %d, want 4", n)
	}
	f := ins.(*Regular).Format.(F45cc)
	if f.Meth != 0x1234 || f.Proto != 0x0007 {
		t.Fatalf("got meth=%#x proto=%#x, want 0x1234/0x0007", f.Meth, f.Proto)
	}

	ins, n, err = Decode([]uint16{0x03fb, 0x4321, 0x0008, 0x0009}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("length: got %d, want 4", n)
	}
	rf := ins.(*Regular).Format.(F4rcc)
	if rf.Argc != 3 || rf.Meth != 0x4321 || rf.First != 8 || rf.Proto != 9 {
		t.Fatalf("got %+v, want argc=3 meth=0x4321 first=8 proto=9", rf)
	}
}

func TestDecodeWideLiteral(t *testing.T) {
	// const-wide v2, 0x1122334455667788: little-endian code units.
	ins, n, err := Decode([]uint16{0x0218, 0x7788, 0x5566, 0x3344, 0x1122}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("length: got %d, want 5", n)
	}
	f := ins.(*Regular).Format.(F51l)
	if f.VA != 2 {
		t.Fatalf("register: got %d, want 2", f.VA)
	}
	if f.Literal != 0x1122334455667788 {
		t.Fatalf("literal: got %#x, want 0x1122334455667788", f.Literal)
	}
}

func TestDecodeConst32(t *testing.T) {
	// const v1, 0x80000001 (negative as signed).
	ins, _, err := Decode([]uint16{0x0114, 0x0001, 0x8000}, 0)
	if err != nil {
		t.Fatal(err)
	}
	f := ins.(*Regular).Format.(F31i)
	if f.Literal != -2147483647 {
		t.Fatalf("literal: got %d, want -2147483647", f.Literal)
	}
}

func TestBranchOffsets(t *testing.T) {
	for _, tc := range []struct {
		name string
		code []uint16
		want int32
	}{
		{"goto back", []uint16{0xfe28}, -2},
		{"goto/16", []uint16{0x0029, 0xfffc}, -4},
		{"goto/32", []uint16{0x002a, 0x0005, 0x0000}, 5},
		{"if-eqz", []uint16{0x0138, 0x0004}, 4},
		{"if-lt", []uint16{0x2134, 0xfff0}, -16},
		{"packed-switch", []uint16{0x002b, 0x0008, 0x0000}, 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ins, _, err := Decode(tc.code, 0)
			if err != nil {
				t.Fatal(err)
			}
			off, ok := ins.(*Regular).Format.BranchOffset()
			if !ok {
				t.Fatalf("format %T should carry a branch offset", ins.(*Regular).Format)
			}
			if off != tc.want {
				t.Fatalf("offset: got %d, want %d", off, tc.want)
			}
		})
	}
}

func TestNoBranchOffset(t *testing.T) {
	for _, code := range [][]uint16{
		{0x000e},                 // return-void
		{0x0112},                 // const/4
		{0x016e, 0x0000, 0x0000}, // invoke-virtual
	} {
		ins, _, err := Decode(code, 0)
		if err != nil {
			t.Fatal(err)
		}
		reg := ins.(*Regular)
		if _, has := reg.Format.BranchOffset(); has {
			t.Errorf("%s: unexpected branch offset", reg.Op.Name)
		}
	}
}

func TestDecodePackedSwitchPayload(t *testing.T) {
	// size=2, first_key=10, offsets 4 and 7.
	code := []uint16{
		0x0100,
		0x0002,
		0x000a, 0x0000,
		0x0004, 0x0000,
		0x0007, 0x0000,
	}
	ins, n, err := Decode(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 2*2 + 4; n != want {
		t.Fatalf("payload length: got %d, want %d", n, want)
	}
	p := ins.(*SwitchPayload)
	want := map[int32]int32{10: 4, 11: 7}
	if !reflect.DeepEqual(p.KV, want) {
		t.Fatalf("kv: got %v, want %v", p.KV, want)
	}
}

func TestDecodeSparseSwitchPayload(t *testing.T) {
	// size=2, keys -1 and 100, then offsets 3 and 9.
	code := []uint16{
		0x0200,
		0x0002,
		0xffff, 0xffff,
		0x0064, 0x0000,
		0x0003, 0x0000,
		0x0009, 0x0000,
	}
	ins, n, err := Decode(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 2*4 + 2; n != want {
		t.Fatalf("payload length: got %d, want %d", n, want)
	}
	p := ins.(*SwitchPayload)
	want := map[int32]int32{-1: 3, 100: 9}
	if !reflect.DeepEqual(p.KV, want) {
		t.Fatalf("kv: got %v, want %v", p.KV, want)
	}
}

func TestDecodeFillArrayPayload(t *testing.T) {
	// element_width=2, size=3, data 0x0102 0x0304 0x0506.
	code := []uint16{
		0x0300,
		0x0002,
		0x0003, 0x0000,
		0x0201, 0x0403, 0x0605,
	}
	ins, n, err := Decode(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 3 + 4; n != want {
		t.Fatalf("payload length: got %d, want %d", n, want)
	}
	p := ins.(*FillArrayPayload)
	if p.ElementWidth != 2 {
		t.Fatalf("element width: got %d, want 2", p.ElementWidth)
	}
	want := [][]byte{{1, 2}, {3, 4}, {5, 6}}
	if !reflect.DeepEqual(p.Data, want) {
		t.Fatalf("data: got %v, want %v", p.Data, want)
	}
}

func TestDecodeFillArrayPayloadOddBytes(t *testing.T) {
	// element_width=1, size=3: ceil(3/2)=2 code units, last byte is pad.
	code := []uint16{
		0x0300,
		0x0001,
		0x0003, 0x0000,
		0x0201, 0x0003,
	}
	ins, n, err := Decode(code, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 2 + 4; n != want {
		t.Fatalf("payload length: got %d, want %d", n, want)
	}
	p := ins.(*FillArrayPayload)
	want := [][]byte{{1}, {2}, {3}}
	if !reflect.DeepEqual(p.Data, want) {
		t.Fatalf("data: got %v, want %v", p.Data, want)
	}
}

func TestDecodeBadPayload(t *testing.T) {
	_, _, err := Decode([]uint16{0x0400}, 0)
	perr, ok := err.(BadPayloadError)
	if !ok {
		t.Fatalf("want BadPayloadError, got %v (%T)", err, err)
	}
	if perr.Offset != 0 {
		t.Fatalf("offset: got %d, want 0", perr.Offset)
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	_, _, err := Decode([]uint16{0x0100, 0x0002, 0x000a}, 0)
	if _, ok := err.(TooShortError); !ok {
		t.Fatalf("want TooShortError, got %v (%T)", err, err)
	}
}

func TestDecodeLengths(t *testing.T) {
	// Representative opcodes from rows of the decision table.
	for _, tc := range []struct {
		code []uint16
		n    int
	}{
		{[]uint16{0x2101}, 1},                                // move
		{[]uint16{0x0102, 0x0002}, 2},                        // move/from16
		{[]uint16{0x0003, 0x0001, 0x0002}, 3},                // move/16
		{[]uint16{0x010a}, 1},                                // move-result
		{[]uint16{0x000e}, 1},                                // return-void
		{[]uint16{0x7112}, 1},                                // const/4
		{[]uint16{0x0013, 0x0100}, 2},                        // const/16
		{[]uint16{0x0015, 0x0040}, 2},                        // const/high16
		{[]uint16{0x001a, 0x0001}, 2},                        // const-string
		{[]uint16{0x001b, 0x0001, 0x0000}, 3},                // const-string/jumbo
		{[]uint16{0x3220, 0x0004}, 2},                        // instance-of
		{[]uint16{0x0226, 0x0003, 0x0000}, 3},                // fill-array-data
		{[]uint16{0x0527}, 1},                                // throw
		{[]uint16{0x312d, 0x0201}, 2},                        // cmpl-float
		{[]uint16{0x0244, 0x0301}, 2},                        // aget
		{[]uint16{0x1052, 0x0002}, 2},                        // iget
		{[]uint16{0x0060, 0x0000}, 2},                        // sget
		{[]uint16{0x107b}, 1},                                // neg-int
		{[]uint16{0x0290, 0x0301}, 2},                        // add-int
		{[]uint16{0x21b0}, 1},                                // add-int/2addr
		{[]uint16{0x32d0, 0x0064}, 2},                        // add-int/lit16
		{[]uint16{0x01d8, 0x0a02}, 2},                        // add-int/lit8
		{[]uint16{0x00fc, 0x0000, 0x0000}, 3},                // invoke-custom
		{[]uint16{0x00fd, 0x0000, 0x0000}, 3},                // invoke-custom/range
		{[]uint16{0x00fe, 0x0000}, 2},                        // const-method-handle
		{[]uint16{0x00ff, 0x0000}, 2},                        // const-method-type
	} {
		ins, n, err := Decode(tc.code, 0)
		if err != nil {
			t.Errorf("%#04x: unexpected error: %v", tc.code[0], err)
			continue
		}
		if n != tc.n {
			t.Errorf("%#04x (%s): length got %d, want %d",
				tc.code[0], ins.(*Regular).Op.Name, n, tc.n)
		}
		if cu := ins.CodeUnits(); cu != n {
			t.Errorf("%#04x: CodeUnits()=%d disagrees with decode length %d", tc.code[0], cu, n)
		}
	}
}

func TestDecodeAtOffset(t *testing.T) {
	code := []uint16{0x000e, 0x0112, 0x000e}
	ins, n, err := Decode(code, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("length: got %d, want 1", n)
	}
	if got := ins.(*Regular).Op.Code; got != opcodes.Const4 {
		t.Fatalf("got opcode %#x, want const/4", got)
	}
}

// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opcodes

import (
	"testing"
)

func TestNew(t *testing.T) {
	op1, err := New(Nop)
	if err != nil {
		t.Fatalf("unexpected error from New: %v", err)
	}
	if op1.Name != "nop" {
		t.Fatalf("0x00: unexpected Op name. got=%s, want=nop", op1.Name)
	}
	if !op1.IsValid() {
		t.Fatalf("0x00: opcode %v is invalid (should be valid)", op1)
	}

	op2, err := New(0x3e)
	if err == nil {
		t.Fatalf("0x3e: expected error while getting Op value")
	}
	if op2.IsValid() {
		t.Fatalf("0x3e: opcode %v is valid (should be invalid)", op2)
	}
}

func TestReservedRanges(t *testing.T) {
	reserved := []byte{0x3e, 0x3f, 0x40, 0x41, 0x42, 0x43, 0x73, 0x79, 0x7a, 0xe3, 0xf0, 0xf9}
	for _, code := range reserved {
		if _, err := New(code); err == nil {
			t.Errorf("%#x: expected InvalidOpcodeError", code)
		}
	}
}

func TestTableComplete(t *testing.T) {
	// Every value outside the documented reserved ranges decodes.
	isReserved := func(b int) bool {
		switch {
		case b >= 0x3e && b <= 0x43:
			return true
		case b == 0x73:
			return true
		case b >= 0x79 && b <= 0x7a:
			return true
		case b >= 0xe3 && b <= 0xf9:
			return true
		}
		return false
	}
	for b := 0; b < 256; b++ {
		op, err := New(byte(b))
		if isReserved(b) {
			if err == nil {
				t.Errorf("%#x: want invalid, got %q", b, op.Name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%#x: want valid opcode, got error %v", b, err)
			continue
		}
		if got := op.Kind.Len(); got < 1 || got > 5 {
			t.Errorf("%#x (%s): bad length %d", b, op.Name, got)
		}
	}
}

func TestIsInvoke(t *testing.T) {
	for _, code := range []byte{InvokeVirtual, InvokeSuper, InvokeDirect, InvokeStatic,
		InvokeInterface, InvokeVirtualRange, InvokeStaticRange, InvokeInterfaceRange,
		InvokePolymorphic, InvokePolymorphicRange} {
		op, err := New(code)
		if err != nil {
			t.Fatal(err)
		}
		if !op.IsInvoke() {
			t.Errorf("%s: want IsInvoke", op.Name)
		}
	}
	for _, code := range []byte{Nop, ReturnVoid, Goto, InvokeCustom, InvokeCustomRange, ConstString} {
		op, err := New(code)
		if err != nil {
			t.Fatal(err)
		}
		if op.IsInvoke() {
			t.Errorf("%s: IsInvoke should be false", op.Name)
		}
	}
}

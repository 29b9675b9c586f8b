// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"errors"
	"fmt"

	"github.com/dexflow/dexflow/dalvik/opcodes"
)

// ErrEnd reports that the code-unit stream ended where at least one more
// code unit was required.
var ErrEnd = errors.New("disasm: code ended")

// TooShortError reports a code-unit stream that ends in the middle of an
// instruction.
type TooShortError struct {
	Offset   int
	Op       opcodes.Op
	Expected int
	Actual   int
}

func (e TooShortError) Error() string {
	return fmt.Sprintf("disasm: instruction at %d too short for %s: expected %d code units, found %d",
		e.Offset, e.Op.Name, e.Expected, e.Actual)
}

// BadOpcodeError reports a reserved or unused opcode value.
type BadOpcodeError struct {
	Offset int
	Byte   byte
}

func (e BadOpcodeError) Error() string {
	return fmt.Sprintf("disasm: opcode %#02x at offset %d does not exist", e.Byte, e.Offset)
}

// BadPayloadError reports a 0x00 pseudo-instruction whose high byte is not
// one of the three defined payload selectors.
type BadPayloadError struct {
	Offset int
}

func (e BadPayloadError) Error() string {
	return fmt.Sprintf("disasm: malformed payload at offset %d", e.Offset)
}

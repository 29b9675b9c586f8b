// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm provides functions for decoding Dalvik bytecode into
// typed instruction records. The stream is a sequence of unsigned 16-bit
// code units; opcode 0x00 with a non-zero high byte multiplexes the three
// inline payload tables (packed-switch, sparse-switch, fill-array-data).
package disasm

import (
	"github.com/dexflow/dexflow/dalvik/opcodes"
)

// Instruction is the tagged result of decoding one instruction: a Regular
// instruction, a SwitchPayload or a FillArrayPayload.
type Instruction interface {
	// CodeUnits returns the number of 16-bit code units the instruction
	// occupies in the stream.
	CodeUnits() int
}

// Regular is an ordinary instruction: an opcode with its decoded format.
type Regular struct {
	Op     opcodes.Op
	Format Format
}

func (r *Regular) CodeUnits() int { return r.Format.Len() }

// SwitchPayload is a packed-switch or sparse-switch table. KV maps each
// case key to its branch offset in code units, relative to the address of
// the originating switch instruction (not to the payload).
type SwitchPayload struct {
	KV    map[int32]int32
	Units int
}

func (s *SwitchPayload) CodeUnits() int { return s.Units }

// FillArrayPayload is the inline literal array referenced by
// fill-array-data. Data holds the element byte vectors, each ElementWidth
// bytes wide.
type FillArrayPayload struct {
	ElementWidth int
	Data         [][]byte
	Units        int
}

func (f *FillArrayPayload) CodeUnits() int { return f.Units }

const (
	packedSwitchSelector  = 0x01
	sparseSwitchSelector  = 0x02
	fillArrayDataSelector = 0x03
)

// state is a cursor over the code-unit stream for a single instruction.
type state struct {
	code []uint16
	pos  int
}

func (s *state) next() (uint16, error) {
	if s.pos >= len(s.code) {
		return 0, ErrEnd
	}
	w := s.code[s.pos]
	s.pos++
	return w, nil
}

// dword assembles a 32-bit value from two consecutive code units, the
// lower-index unit supplying the less-significant half.
func (s *state) dword() (uint32, error) {
	lo, err := s.next()
	if err != nil {
		return 0, err
	}
	hi, err := s.next()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

func (s *state) qword() (uint64, error) {
	lo, err := s.dword()
	if err != nil {
		return 0, err
	}
	hi, err := s.dword()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func wordToBytes(w uint16) (uint8, uint8) {
	return uint8(w), uint8(w >> 8)
}

func byteToNibbles(b uint8) (uint8, uint8) {
	return b >> 4, b & 0x0f
}

// Decode decodes the instruction starting at offset (in code units) of
// code. It returns the instruction and its length in code units. At the
// end of the stream it returns a nil instruction and a nil error.
//
// Decode fails with a BadOpcodeError for reserved opcode values, a
// BadPayloadError for a malformed 0x00 pseudo-instruction, and a
// TooShortError when the stream ends mid-instruction. It never reads past
// the instruction it decodes.
func Decode(code []uint16, offset int) (Instruction, int, error) {
	if offset >= len(code) {
		return nil, 0, nil
	}
	s := &state{code: code, pos: offset + 1}
	opcodeByte, immediate := wordToBytes(code[offset])

	if opcodeByte == 0x00 && immediate != 0 {
		payload, err := decodePayload(s, offset, immediate)
		if err != nil {
			return nil, 0, err
		}
		return payload, payload.CodeUnits(), nil
	}

	op, err := opcodes.New(opcodeByte)
	if err != nil {
		return nil, 0, BadOpcodeError{Offset: offset, Byte: opcodeByte}
	}
	if avail := len(code) - offset; avail < op.Kind.Len() {
		return nil, 0, TooShortError{Offset: offset, Op: op, Expected: op.Kind.Len(), Actual: avail}
	}

	format, err := decodeFormat(s, op.Kind, immediate)
	if err != nil {
		// The length was checked up front, so the cursor cannot run out
		// here; keep the guard anyway.
		return nil, 0, TooShortError{Offset: offset, Op: op, Expected: op.Kind.Len(), Actual: len(code) - offset}
	}
	logger.Printf("decoded %s at %d", op.Name, offset)
	return &Regular{Op: op, Format: format}, op.Kind.Len(), nil
}

func decodeFormat(s *state, kind opcodes.Kind, immediate uint8) (Format, error) {
	switch kind {
	case opcodes.K10x:
		return F10x{}, nil
	case opcodes.K12x:
		a, b := byteToNibbles(immediate)
		return F12x{VA: a, VB: b}, nil
	case opcodes.K11n:
		a, lit := byteToNibbles(immediate)
		return F11n{VA: a, Literal: int8(lit<<4) >> 4}, nil
	case opcodes.K11x:
		return F11x{VA: immediate}, nil
	case opcodes.K10t:
		return F10t{Offset: int8(immediate)}, nil
	case opcodes.K20t:
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F20t{Offset: int16(w)}, nil
	case opcodes.K22x:
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F22x{VA: immediate, VB: w}, nil
	case opcodes.K21t:
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F21t{VA: immediate, Offset: int16(w)}, nil
	case opcodes.K21s:
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F21s{VA: immediate, Literal: int16(w)}, nil
	case opcodes.K21h:
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F21h{VA: immediate, Literal: int16(w)}, nil
	case opcodes.K21c:
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F21c{VA: immediate, Idx: w}, nil
	case opcodes.K23x:
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		b, c := wordToBytes(w)
		return F23x{VA: immediate, VB: b, VC: c}, nil
	case opcodes.K22b:
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		b, lit := wordToBytes(w)
		return F22b{VA: immediate, VB: b, Literal: int8(lit)}, nil
	case opcodes.K22t:
		a, b := byteToNibbles(immediate)
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F22t{VA: a, VB: b, Offset: int16(w)}, nil
	case opcodes.K22s:
		a, b := byteToNibbles(immediate)
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F22s{VA: a, VB: b, Literal: int16(w)}, nil
	case opcodes.K22c:
		a, b := byteToNibbles(immediate)
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F22c{VA: a, VB: b, Idx: w}, nil
	case opcodes.K30t:
		d, err := s.dword()
		if err != nil {
			return nil, err
		}
		return F30t{Offset: int32(d)}, nil
	case opcodes.K32x:
		a, err := s.next()
		if err != nil {
			return nil, err
		}
		b, err := s.next()
		if err != nil {
			return nil, err
		}
		return F32x{VA: a, VB: b}, nil
	case opcodes.K31i:
		d, err := s.dword()
		if err != nil {
			return nil, err
		}
		return F31i{VA: immediate, Literal: int32(d)}, nil
	case opcodes.K31t:
		d, err := s.dword()
		if err != nil {
			return nil, err
		}
		return F31t{VA: immediate, Offset: int32(d)}, nil
	case opcodes.K31c:
		d, err := s.dword()
		if err != nil {
			return nil, err
		}
		return F31c{VA: immediate, Idx: d}, nil
	case opcodes.K35c:
		argc, g := byteToNibbles(immediate)
		idx, err := s.next()
		if err != nil {
			return nil, err
		}
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		return F35c{
			Argc: argc,
			Args: argRegisters(w, g),
			Idx:  idx,
		}, nil
	case opcodes.K3rc:
		idx, err := s.next()
		if err != nil {
			return nil, err
		}
		first, err := s.next()
		if err != nil {
			return nil, err
		}
		return F3rc{Argc: immediate, First: first, Idx: idx}, nil
	case opcodes.K45cc:
		argc, g := byteToNibbles(immediate)
		meth, err := s.next()
		if err != nil {
			return nil, err
		}
		w, err := s.next()
		if err != nil {
			return nil, err
		}
		proto, err := s.next()
		if err != nil {
			return nil, err
		}
		return F45cc{
			Argc:  argc,
			VG:    g,
			Args:  argRegisters(w, g),
			Meth:  meth,
			Proto: proto,
		}, nil
	case opcodes.K4rcc:
		meth, err := s.next()
		if err != nil {
			return nil, err
		}
		first, err := s.next()
		if err != nil {
			return nil, err
		}
		proto, err := s.next()
		if err != nil {
			return nil, err
		}
		return F4rcc{Argc: immediate, First: first, Meth: meth, Proto: proto}, nil
	case opcodes.K51l:
		q, err := s.qword()
		if err != nil {
			return nil, err
		}
		return F51l{VA: immediate, Literal: int64(q)}, nil
	}
	panic("disasm: opcode table names a format kind the decoder does not handle")
}

// argRegisters unpacks the C..F register nibbles of the second data word
// of a 35c/45cc encoding and appends the G nibble from the first word.
func argRegisters(w uint16, g uint8) [5]uint8 {
	return [5]uint8{
		uint8(w) & 0x0f,
		uint8(w>>4) & 0x0f,
		uint8(w>>8) & 0x0f,
		uint8(w>>12) & 0x0f,
		g,
	}
}

func decodePayload(s *state, offset int, selector uint8) (Instruction, error) {
	switch selector {
	case packedSwitchSelector:
		size, err := s.next()
		if err != nil {
			return nil, tooShortPayload(s, offset)
		}
		firstKey, err := s.dword()
		if err != nil {
			return nil, tooShortPayload(s, offset)
		}
		kv := make(map[int32]int32, size)
		for i := uint16(0); i < size; i++ {
			off, err := s.dword()
			if err != nil {
				return nil, tooShortPayload(s, offset)
			}
			kv[int32(firstKey)+int32(i)] = int32(off)
		}
		return &SwitchPayload{KV: kv, Units: int(size)*2 + 4}, nil

	case sparseSwitchSelector:
		size, err := s.next()
		if err != nil {
			return nil, tooShortPayload(s, offset)
		}
		// Canonical DEX layout: all keys first, then all offsets.
		keys := make([]int32, size)
		for i := range keys {
			k, err := s.dword()
			if err != nil {
				return nil, tooShortPayload(s, offset)
			}
			keys[i] = int32(k)
		}
		kv := make(map[int32]int32, size)
		for i := range keys {
			off, err := s.dword()
			if err != nil {
				return nil, tooShortPayload(s, offset)
			}
			kv[keys[i]] = int32(off)
		}
		return &SwitchPayload{KV: kv, Units: int(size)*4 + 2}, nil

	case fillArrayDataSelector:
		width, err := s.next()
		if err != nil {
			return nil, tooShortPayload(s, offset)
		}
		size, err := s.dword()
		if err != nil {
			return nil, tooShortPayload(s, offset)
		}
		words := (int(size)*int(width) + 1) / 2
		raw := make([]byte, 0, words*2)
		for i := 0; i < words; i++ {
			w, err := s.next()
			if err != nil {
				return nil, tooShortPayload(s, offset)
			}
			lo, hi := wordToBytes(w)
			raw = append(raw, lo, hi)
		}
		data := make([][]byte, 0, size)
		for i := 0; i+int(width) <= len(raw) && len(data) < int(size); i += int(width) {
			data = append(data, raw[i:i+int(width)])
		}
		return &FillArrayPayload{
			ElementWidth: int(width),
			Data:         data,
			Units:        words + 4,
		}, nil
	}
	return nil, BadPayloadError{Offset: offset}
}

func tooShortPayload(s *state, offset int) error {
	nop, _ := opcodes.New(opcodes.Nop)
	return TooShortError{
		Offset:   offset,
		Op:       nop,
		Expected: s.pos - offset + 1,
		Actual:   len(s.code) - offset,
	}
}

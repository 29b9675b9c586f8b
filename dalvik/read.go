// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dalvik

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/dexflow/dexflow/dalvik/uleb128"
)

// to avoid memory attack
const maxInitialCap = 10 * 1024

func getInitialCap(count uint32) uint32 {
	if count > maxInitialCap {
		return maxInitialCap
	}
	return count
}

// reader is a bounds-checked cursor over the DEX byte image. DEX sections
// are located by absolute file offsets, so the cursor can be re-seated
// anywhere with seek.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) seek(off uint32) error {
	if int(off) > len(r.data) {
		return ErrUnexpectedEOF
	}
	r.pos = int(off)
	return nil
}

func (r *reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if r.pos+n > len(r.data) {
		return nil, ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) uleb() (uint32, error) {
	return uleb128.ReadUint32(r)
}

// mutf8 reads a NUL-terminated modified-UTF-8 string at the cursor. Each
// byte sequence encodes a UTF-16 code unit; surrogate pairs are combined
// by the utf16 decoder.
func (r *reader) mutf8() (string, error) {
	var units []uint16
	for {
		b0, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		switch {
		case b0 == 0x00:
			return string(utf16.Decode(units)), nil
		case b0&0x80 == 0:
			units = append(units, uint16(b0))
		case b0&0xe0 == 0xc0:
			b1, err := r.ReadByte()
			if err != nil {
				return "", err
			}
			units = append(units, uint16(b0&0x1f)<<6|uint16(b1&0x3f))
		case b0&0xf0 == 0xe0:
			b1, err := r.ReadByte()
			if err != nil {
				return "", err
			}
			b2, err := r.ReadByte()
			if err != nil {
				return "", err
			}
			units = append(units, uint16(b0&0x0f)<<12|uint16(b1&0x3f)<<6|uint16(b2&0x3f))
		default:
			return "", ErrBadString
		}
	}
}

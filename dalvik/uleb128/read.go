// Copyright 2024 The dexflow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uleb128 provides functions for reading the variable-length
// integers used throughout the DEX format: unsigned LEB128, the uleb128p1
// variant (value encoded plus one), and signed LEB128.
// https://source.android.com/docs/core/runtime/dex-format#leb128
package uleb128

import (
	"io"
)

// ReadUint32 reads a ULEB128 encoded unsigned 32-bit integer from r, and
// returns the integer value, and the error (if any).
func ReadUint32(r io.ByteReader) (uint32, error) {
	var (
		shift uint
		res   uint32
	)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return res, err
		}

		cur := uint32(b)
		res |= (cur & 0x7f) << shift
		if cur&0x80 == 0 {
			return res, nil
		}
		shift += 7
	}
}

// ReadUint32p1 reads a uleb128p1 encoded value from r. The encoding stores
// the value plus one, so -1 is representable in a single byte.
func ReadUint32p1(r io.ByteReader) (int32, error) {
	n, err := ReadUint32(r)
	return int32(n) - 1, err
}

// ReadInt32 reads a SLEB128 encoded signed 32-bit integer from r, and
// returns the integer value, and the error (if any).
func ReadInt32(r io.ByteReader) (int32, error) {
	var (
		shift uint
		sign  int32 = -1
		res   int32
	)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return res, err
		}

		cur := int32(b)
		res |= (cur & 0x7f) << shift
		shift += 7
		sign <<= 7
		if cur&0x80 == 0 {
			break
		}
	}

	if ((sign >> 1) & res) != 0 {
		res |= sign
	}
	return res, nil
}
